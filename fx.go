package netchange

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	core "github.com/dep2p/go-netchange/internal/core/netchange"
	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
	"github.com/dep2p/go-netchange/pkg/lib/log"
)

var fxLogger = log.Logger("netchange/fx")

// buildFxApp 构建 Fx 应用
//
// 注入统一配置和可选的外部依赖，加载 netchange 模块，
// 并把通知器实例写回 svc。
func buildFxApp(o *options, svc *Service) (*fx.App, error) {
	modules := []fx.Option{
		fx.Supply(o.config),
	}

	if o.source != nil {
		src := o.source
		modules = append(modules, fx.Provide(func() pkgif.ChangeSource { return src }))
	}
	if o.checker != nil {
		checker := o.checker
		modules = append(modules, fx.Provide(func() pkgif.AvailabilityChecker { return checker }))
	}
	if o.clock != nil {
		clk := o.clock
		modules = append(modules, fx.Provide(func() clock.Clock { return clk }))
	}
	if o.registerer != nil {
		reg := o.registerer
		modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
	}

	modules = append(modules,
		core.Module(),
		fx.Populate(&svc.notifier),
	)
	modules = append(modules, o.fxOptions...)

	// 静默 Fx 自身的日志
	modules = append(modules,
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		fxLogger.Error("构建 Fx 应用失败", "error", err)
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	return app, nil
}
