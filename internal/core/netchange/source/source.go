package source

import (
	"time"

	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
)

// Mode 变化源选择
type Mode string

const (
	// ModeAuto 优先原生实现，打开失败时回退到轮询
	ModeAuto Mode = "auto"

	// ModeNative 只使用原生实现
	ModeNative Mode = "native"

	// ModePolling 只使用轮询
	ModePolling Mode = "polling"
)

// Valid 是否为已知取值
func (m Mode) Valid() bool {
	switch m {
	case ModeAuto, ModeNative, ModePolling:
		return true
	default:
		return false
	}
}

// DefaultPollInterval 默认轮询间隔
const DefaultPollInterval = 2 * time.Second

// Config 变化源配置
type Config struct {
	// Mode 变化源选择
	// 默认: auto
	Mode Mode

	// PollInterval 轮询间隔
	// 默认: 2s
	PollInterval time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Mode:         ModeAuto,
		PollInterval: DefaultPollInterval,
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if !c.Mode.Valid() {
		c.Mode = ModeAuto
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	return nil
}

// New 根据配置和平台创建变化源
func New(cfg *Config) pkgif.ChangeSource {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	_ = cfg.Validate()

	polling := NewPollingSource(cfg.PollInterval)

	switch cfg.Mode {
	case ModePolling:
		return polling
	case ModeNative:
		if native := newNativeSource(cfg); native != nil {
			return native
		}
		logger.Warn("当前平台没有原生网络变化源，使用轮询")
		return polling
	default:
		native := newNativeSource(cfg)
		if native == nil {
			return polling
		}
		return &fallbackSource{primary: native, fallback: polling}
	}
}

// fallbackSource 原生源打开失败时回退到轮询
type fallbackSource struct {
	primary  pkgif.ChangeSource
	fallback pkgif.ChangeSource
}

// Open 实现 ChangeSource
func (s *fallbackSource) Open() (pkgif.SourceHandle, error) {
	h, err := s.primary.Open()
	if err == nil {
		return h, nil
	}
	logger.Warn("原生网络变化源不可用，回退到轮询", "error", err)
	return s.fallback.Open()
}
