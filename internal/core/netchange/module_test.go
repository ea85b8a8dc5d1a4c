package netchange

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-netchange/config"
	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_Provides 测试模块提供的类型
func TestModule_Provides(t *testing.T) {
	src := newFakeSource()

	var notifier pkgif.NetworkChangeNotifier
	var concrete *Notifier

	app := fxtest.New(t,
		fx.Provide(func() pkgif.ChangeSource { return src }),
		Module(),
		fx.Populate(&notifier, &concrete),
	)
	app.RequireStart()

	require.NotNil(t, notifier)
	assert.Same(t, concrete, notifier)

	_, err := notifier.SubscribeAddress(context.Background(), func(context.Context) {})
	require.NoError(t, err)
	assert.True(t, concrete.Stats().Open)

	app.RequireStop()

	// 停止时释放所有订阅
	opens, closes := src.counts()
	assert.Equal(t, 1, opens)
	assert.Equal(t, 1, closes)
	assert.Zero(t, concrete.Stats().AddressSubscribers)
}

// TestModule_UnifiedConfig 测试从统一配置读取参数
func TestModule_UnifiedConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.NetChange.AvailabilityWindow = config.Duration(time.Second)
	cfg.NetChange.Source = config.SourcePolling

	var n *Notifier
	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(func() pkgif.ChangeSource { return newFakeSource() }),
		fx.Provide(func() clock.Clock { return clock.NewMock() }),
		Module(),
		fx.Populate(&n),
	)
	defer app.RequireStart().RequireStop()

	assert.Equal(t, time.Second, n.config.AvailabilityWindow)
	assert.EqualValues(t, config.SourcePolling, n.config.Source)
	assert.IsType(t, &clock.Mock{}, n.clock)
}

// TestModule_ComponentConfigWins 测试组件配置优先于统一配置
func TestModule_ComponentConfigWins(t *testing.T) {
	unified := config.NewConfig()
	unified.NetChange.AvailabilityWindow = config.Duration(time.Second)

	var n *Notifier
	app := fxtest.New(t,
		fx.Supply(unified),
		fx.Supply(DefaultConfig().WithAvailabilityWindow(300*time.Millisecond)),
		fx.Provide(func() pkgif.ChangeSource { return newFakeSource() }),
		Module(),
		fx.Populate(&n),
	)
	defer app.RequireStart().RequireStop()

	assert.Equal(t, 300*time.Millisecond, n.config.AvailabilityWindow)
}
