package netchange

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-netchange/config"
	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
)

// 变化源选择
const (
	// SourceAuto 优先原生实现，打开失败时回退到轮询
	SourceAuto = config.SourceAuto

	// SourceNative 只使用原生实现（netlink / routing socket）
	SourceNative = config.SourceNative

	// SourcePolling 只使用轮询
	SourcePolling = config.SourcePolling
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	config *config.Config

	source     pkgif.ChangeSource
	checker    pkgif.AvailabilityChecker
	clock      clock.Clock
	registerer prometheus.Registerer

	fxOptions []fx.Option
}

func newOptions() *options {
	return &options{config: config.NewConfig()}
}

func (o *options) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	return o.config.Validate()
}

// WithConfig 使用统一配置（例如 config.Load 的结果）
//
// 之后的选项在此基础上覆盖。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return fmt.Errorf("config is nil")
		}
		copied := *cfg
		o.config = &copied
		return nil
	}
}

// WithAvailabilityWindow 设置可用性防抖窗口
func WithAvailabilityWindow(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return fmt.Errorf("availability window must be positive, got %s", d)
		}
		o.config.NetChange.AvailabilityWindow = config.Duration(d)
		return nil
	}
}

// WithSource 选择变化源: SourceAuto / SourceNative / SourcePolling
func WithSource(mode string) Option {
	return func(o *options) error {
		switch mode {
		case SourceAuto, SourceNative, SourcePolling:
		default:
			return fmt.Errorf("unknown source %q", mode)
		}
		o.config.NetChange.Source = mode
		return nil
	}
}

// WithPollInterval 设置轮询间隔
func WithPollInterval(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return fmt.Errorf("poll interval must be positive, got %s", d)
		}
		o.config.NetChange.PollInterval = config.Duration(d)
		return nil
	}
}

// WithChangeSource 使用自定义变化源，忽略 WithSource
func WithChangeSource(src pkgif.ChangeSource) Option {
	return func(o *options) error {
		o.source = src
		return nil
	}
}

// WithAvailabilityChecker 使用自定义可用性查询
func WithAvailabilityChecker(checker pkgif.AvailabilityChecker) Option {
	return func(o *options) error {
		o.checker = checker
		return nil
	}
}

// WithClock 设置时钟
func WithClock(clk clock.Clock) Option {
	return func(o *options) error {
		o.clock = clk
		return nil
	}
}

// WithRegisterer 将指标注册到指定 Registry
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) error {
		o.registerer = reg
		return nil
	}
}

// WithFxOptions 追加自定义 Fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.fxOptions = append(o.fxOptions, opts...)
		return nil
	}
}
