// Package config 提供统一的配置管理
//
// 主 Config 结构体嵌入所有子配置，每个子配置在独立文件中定义，
// 支持从 JSON 文件加载。
//
// 使用示例：
//
//	cfg, err := config.Load("netchange.json")
//	if err != nil {
//	    return err
//	}
//	n := netchange.NewNotifier(netchange.ConfigFromUnified(cfg), nil)
//
// JSON 示例：
//
//	{
//	  "netchange": {"availability_window": "150ms", "source": "auto", "poll_interval": "2s"},
//	  "metrics":   {"enabled": true, "listen_addr": "127.0.0.1:9464"},
//	  "log":       {"level": "debug"}
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config 统一配置
type Config struct {
	// NetChange 网络变化通知配置
	NetChange NetChangeConfig `json:"netchange"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`

	// Log 日志配置
	Log LogConfig `json:"log"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		NetChange: DefaultNetChangeConfig(),
		Metrics:   DefaultMetricsConfig(),
		Log:       DefaultLogConfig(),
	}
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if err := c.NetChange.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	return c.Log.Validate()
}

// FromJSON 从 JSON 数据创建配置
//
// 未出现在 JSON 中的字段保持默认值。
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load 从 JSON 文件加载配置
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: 用户指定的配置文件路径是预期行为
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return FromJSON(data)
}
