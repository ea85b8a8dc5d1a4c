package netchange

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/multierr"

	core "github.com/dep2p/go-netchange/internal/core/netchange"
	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
	"github.com/dep2p/go-netchange/pkg/lib/log"
)

var logger = log.Logger("netchange")

// 公共类型别名
type (
	// AddressHandler 地址变化处理函数
	AddressHandler = pkgif.AddressHandler

	// AvailabilityHandler 可用性变化处理函数，available 为窗口结束时的可用性
	AvailabilityHandler = pkgif.AvailabilityHandler

	// Subscription 订阅凭证，Close 等同于取消订阅
	Subscription = pkgif.ChangeSubscription

	// Stats 通知器状态快照
	Stats = core.Stats
)

// Service 基于 Fx 组装的网络变化通知服务
//
// 实现 pkg/interfaces.NetworkChangeNotifier。
type Service struct {
	app      *fx.App
	notifier *core.Notifier

	mu      sync.Mutex
	started bool
	stopped bool
}

var _ pkgif.NetworkChangeNotifier = (*Service)(nil)

// New 创建服务（不启动）
func New(opts ...Option) (*Service, error) {
	o := newOptions()
	if err := o.apply(opts...); err != nil {
		return nil, err
	}

	svc := &Service{}
	app, err := buildFxApp(o, svc)
	if err != nil {
		return nil, err
	}
	svc.app = app
	return svc, nil
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	if s.stopped {
		return ErrNotifierClosed
	}

	if err := s.app.Start(ctx); err != nil {
		// 启动失败时回滚已启动的部分
		return multierr.Append(err, s.app.Stop(context.Background()))
	}
	s.started = true
	logger.Debug("网络变化服务已启动")
	return nil
}

// Stop 停止服务，移除所有订阅并释放变化源
//
// 停止后不能重新启动。
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	s.started = false
	s.stopped = true

	// 通知器关闭失败（变化源 Close 失败）和 Fx 停止失败都要报告
	err := s.app.Stop(ctx)
	logger.Debug("网络变化服务已停止", "error", err)
	return err
}

// Close 实现 NetworkChangeNotifier，等同于 Stop(context.Background())
//
// 未启动的服务直接关闭通知器。
func (s *Service) Close() error {
	err := s.Stop(context.Background())
	if !errors.Is(err, ErrNotStarted) {
		return err
	}

	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	return s.notifier.Close()
}

// SubscribeAddress 订阅地址变化
func (s *Service) SubscribeAddress(ctx context.Context, handler AddressHandler) (Subscription, error) {
	return s.notifier.SubscribeAddress(ctx, handler)
}

// UnsubscribeAddress 取消地址变化订阅
func (s *Service) UnsubscribeAddress(sub Subscription) error {
	return s.notifier.UnsubscribeAddress(sub)
}

// SubscribeAvailability 订阅可用性变化
func (s *Service) SubscribeAvailability(ctx context.Context, handler AvailabilityHandler) (Subscription, error) {
	return s.notifier.SubscribeAvailability(ctx, handler)
}

// UnsubscribeAvailability 取消可用性变化订阅
func (s *Service) UnsubscribeAvailability(sub Subscription) error {
	return s.notifier.UnsubscribeAvailability(sub)
}

// Stats 获取状态快照
func (s *Service) Stats() Stats {
	return s.notifier.Stats()
}

// Err 返回最近一次读取故障
func (s *Service) Err() error {
	return s.notifier.Err()
}
