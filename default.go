package netchange

import (
	"context"
	"sync"
)

var (
	defaultOnce    sync.Once
	defaultService *Service
	defaultErr     error
)

// Default 返回进程级通知服务
//
// 首次调用时以默认配置创建并启动，之后返回同一实例。
func Default() (*Service, error) {
	defaultOnce.Do(func() {
		svc, err := New()
		if err == nil {
			err = svc.Start(context.Background())
		}
		if err != nil {
			defaultErr = err
			logger.Error("创建默认网络变化服务失败", "error", err)
			return
		}
		defaultService = svc
	})
	return defaultService, defaultErr
}

// SubscribeAddress 在默认服务上订阅地址变化
func SubscribeAddress(ctx context.Context, handler AddressHandler) (Subscription, error) {
	svc, err := Default()
	if err != nil {
		return nil, err
	}
	return svc.SubscribeAddress(ctx, handler)
}

// UnsubscribeAddress 在默认服务上取消地址变化订阅
func UnsubscribeAddress(sub Subscription) error {
	svc, err := Default()
	if err != nil {
		return err
	}
	return svc.UnsubscribeAddress(sub)
}

// SubscribeAvailability 在默认服务上订阅可用性变化
func SubscribeAvailability(ctx context.Context, handler AvailabilityHandler) (Subscription, error) {
	svc, err := Default()
	if err != nil {
		return nil, err
	}
	return svc.SubscribeAvailability(ctx, handler)
}

// UnsubscribeAvailability 在默认服务上取消可用性变化订阅
func UnsubscribeAvailability(sub Subscription) error {
	svc, err := Default()
	if err != nil {
		return err
	}
	return svc.UnsubscribeAvailability(sub)
}
