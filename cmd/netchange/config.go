package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dep2p/go-netchange/config"
)

// ============================================================================
//                              配置加载（CLI 专用）
// ============================================================================

// 环境变量（NETCHANGE_ 前缀）
const (
	envPrefix       = "NETCHANGE_"
	envWindow       = "WINDOW"
	envSource       = "SOURCE"
	envPollInterval = "POLL_INTERVAL"
	envLogLevel     = "LOG_LEVEL"
	envMetrics      = "METRICS"
)

// loadConfig 合并配置文件、环境变量和命令行参数
func loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := applyEnvOverrides(cfg, os.Getenv); err != nil {
		return nil, err
	}
	applyFlagOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides 应用环境变量覆盖
//
// 支持的环境变量：
//   - NETCHANGE_WINDOW: 可用性防抖窗口（如 150ms）
//   - NETCHANGE_SOURCE: auto / native / polling
//   - NETCHANGE_POLL_INTERVAL: 轮询间隔
//   - NETCHANGE_LOG_LEVEL: 日志级别
//   - NETCHANGE_METRICS: 指标监听地址，设置即启用
func applyEnvOverrides(cfg *config.Config, getenv func(string) string) error {
	if v := getenv(envPrefix + envWindow); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, envWindow, err)
		}
		cfg.NetChange.AvailabilityWindow = config.Duration(d)
	}

	if v := getenv(envPrefix + envSource); v != "" {
		cfg.NetChange.Source = strings.ToLower(strings.TrimSpace(v))
	}

	if v := getenv(envPrefix + envPollInterval); v != "" {
		d, err := parseDurationOrSeconds(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, envPollInterval, err)
		}
		cfg.NetChange.PollInterval = config.Duration(d)
	}

	if v := getenv(envPrefix + envLogLevel); v != "" {
		cfg.Log.Level = v
	}

	if v := getenv(envPrefix + envMetrics); v != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.ListenAddr = v
	}
	return nil
}

// applyFlagOverrides 应用显式设置的命令行参数
func applyFlagOverrides(cfg *config.Config) {
	if isFlagSet("window") {
		cfg.NetChange.AvailabilityWindow = config.Duration(*window)
	}
	if isFlagSet("source") {
		cfg.NetChange.Source = *sourceMode
	}
	if isFlagSet("poll") {
		cfg.NetChange.PollInterval = config.Duration(*pollInterval)
	}
	if isFlagSet("log-level") {
		cfg.Log.Level = *logLevel
	}
	if isFlagSet("log") {
		cfg.Log.File = *logFile
	}
	if isFlagSet("metrics") && *metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.ListenAddr = *metricsAddr
	}
}

// parseDurationOrSeconds 解析时长，纯数字按秒处理
func parseDurationOrSeconds(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
