package netchange

import (
	"time"

	"github.com/dep2p/go-netchange/config"
	"github.com/dep2p/go-netchange/internal/core/netchange/source"
)

// ============================================================================
//                              通知器配置
// ============================================================================

// Config 网络变化通知配置
type Config struct {
	// AvailabilityWindow 可用性变化防抖窗口
	// 窗口内的所有 AvailabilityChanged 事件合并为一次通知
	// 默认值: 150ms
	AvailabilityWindow time.Duration

	// Source 变化源选择: auto / native / polling
	// 默认值: auto
	Source source.Mode

	// PollInterval 轮询变化源的轮询间隔
	// 默认值: 2s
	PollInterval time.Duration
}

// DefaultAvailabilityWindow 默认防抖窗口
const DefaultAvailabilityWindow = 150 * time.Millisecond

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		AvailabilityWindow: DefaultAvailabilityWindow,
		Source:             source.ModeAuto,
		PollInterval:       source.DefaultPollInterval,
	}
}

// Validate 验证配置
//
// 只修正无效值，不返回错误。
func (c *Config) Validate() error {
	if c.AvailabilityWindow <= 0 {
		c.AvailabilityWindow = DefaultAvailabilityWindow
	}
	if !c.Source.Valid() {
		c.Source = source.ModeAuto
	}
	if c.PollInterval <= 0 {
		c.PollInterval = source.DefaultPollInterval
	}
	return nil
}

// SourceConfig 转换为变化源配置
func (c *Config) SourceConfig() *source.Config {
	return &source.Config{
		Mode:         c.Source,
		PollInterval: c.PollInterval,
	}
}

// ConfigFromUnified 从统一配置创建
func ConfigFromUnified(cfg *config.Config) *Config {
	if cfg == nil {
		return DefaultConfig()
	}
	c := &Config{
		AvailabilityWindow: cfg.NetChange.AvailabilityWindow.Duration(),
		Source:             source.Mode(cfg.NetChange.Source),
		PollInterval:       cfg.NetChange.PollInterval.Duration(),
	}
	_ = c.Validate()
	return c
}

// WithAvailabilityWindow 设置防抖窗口
func (c *Config) WithAvailabilityWindow(d time.Duration) *Config {
	c.AvailabilityWindow = d
	return c
}

// WithSource 设置变化源
func (c *Config) WithSource(mode source.Mode) *Config {
	c.Source = mode
	return c
}

// WithPollInterval 设置轮询间隔
func (c *Config) WithPollInterval(d time.Duration) *Config {
	c.PollInterval = d
	return c
}
