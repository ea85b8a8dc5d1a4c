package netchange

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-netchange/config"
	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
)

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("netchange",
		fx.Provide(
			ProvideNotifier,
			func(n *Notifier) pkgif.NetworkChangeNotifier { return n },
		),
		fx.Invoke(registerLifecycle),
	)
}

// notifierParams 通知器依赖参数
type notifierParams struct {
	fx.In

	Config     *Config                   `optional:"true"`
	UnifiedCfg *config.Config            `optional:"true"`
	Source     pkgif.ChangeSource        `optional:"true"`
	Checker    pkgif.AvailabilityChecker `optional:"true"`
	Clock      clock.Clock               `optional:"true"`
	Registerer prometheus.Registerer     `optional:"true"`
}

// ProvideNotifier 提供网络变化通知器
//
// 组件配置优先于统一配置；未提供 ChangeSource 时按配置选择平台变化源。
func ProvideNotifier(params notifierParams) *Notifier {
	cfg := params.Config
	if cfg == nil {
		cfg = ConfigFromUnified(params.UnifiedCfg)
	}

	var opts []Option
	if params.Checker != nil {
		opts = append(opts, WithAvailabilityChecker(params.Checker))
	}
	if params.Clock != nil {
		opts = append(opts, WithClock(params.Clock))
	}
	if params.Registerer != nil {
		opts = append(opts, WithRegisterer(params.Registerer))
	}

	return NewNotifier(cfg, params.Source, opts...)
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC       fx.Lifecycle
	Notifier *Notifier
}

// registerLifecycle 注册生命周期
//
// 变化源由订阅数驱动打开，启动时无需操作；停止时释放所有订阅。
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return input.Notifier.Close()
		},
	})
}
