package config

import (
	"fmt"
	"time"
)

// 变化源取值
const (
	SourceAuto    = "auto"
	SourceNative  = "native"
	SourcePolling = "polling"
)

// NetChangeConfig 网络变化通知配置
type NetChangeConfig struct {
	// AvailabilityWindow 可用性变化防抖窗口
	// 默认值: 150ms
	AvailabilityWindow Duration `json:"availability_window"`

	// Source 变化源: auto / native / polling
	// 默认值: auto
	Source string `json:"source"`

	// PollInterval 轮询变化源的轮询间隔
	// 默认值: 2s
	PollInterval Duration `json:"poll_interval"`
}

// DefaultNetChangeConfig 返回默认的网络变化通知配置
func DefaultNetChangeConfig() NetChangeConfig {
	return NetChangeConfig{
		AvailabilityWindow: Duration(150 * time.Millisecond),
		Source:             SourceAuto,
		PollInterval:       Duration(2 * time.Second),
	}
}

// Validate 验证网络变化通知配置
func (c *NetChangeConfig) Validate() error {
	if c.AvailabilityWindow <= 0 {
		return fmt.Errorf("netchange: availability_window must be > 0")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("netchange: poll_interval must be > 0")
	}
	switch c.Source {
	case SourceAuto, SourceNative, SourcePolling:
	default:
		return fmt.Errorf("netchange: unknown source %q", c.Source)
	}
	return nil
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enabled 是否启用 Prometheus 指标
	Enabled bool `json:"enabled"`

	// ListenAddr 指标 HTTP 监听地址（仅命令行工具使用）
	ListenAddr string `json:"listen_addr"`
}

// DefaultMetricsConfig 返回默认的指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:    false,
		ListenAddr: "127.0.0.1:9464",
	}
}

// Validate 验证指标配置
func (c *MetricsConfig) Validate() error {
	if c.Enabled && c.ListenAddr == "" {
		return fmt.Errorf("metrics: listen_addr required when enabled")
	}
	return nil
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别: debug / info / warn / error
	Level string `json:"level"`

	// File 日志文件，空表示 stderr
	File string `json:"file,omitempty"`
}

// DefaultLogConfig 返回默认的日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{Level: "info"}
}

// Validate 验证日志配置
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("log: unknown level %q", c.Level)
	}
}
