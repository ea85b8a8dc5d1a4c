// Package interfaces 定义 go-netchange 公共接口
//
// 本文件定义网络变化通知接口，对应 internal/core/netchange/ 实现。
// 包括：ChangeSource（平台变化源）、SourceHandle（已打开的监听资源）、
// AvailabilityChecker（可用性查询）、NetworkChangeNotifier（订阅入口）
package interfaces

//go:generate mockgen -source=netchange.go -destination=mocks/mock_netchange.go -package=mocks

import (
	"context"
	"errors"
)

// ErrSourceClosed 监听资源已关闭
//
// SourceHandle.ReadNext 在 Close 之后必须尽快返回此错误（或包装此错误）。
var ErrSourceClosed = errors.New("netchange: source handle closed")

// ════════════════════════════════════════════════════════════════════════════
// 变化类型
// ════════════════════════════════════════════════════════════════════════════

// ChangeKind 已分类的网络变化类型
type ChangeKind int

const (
	// ChangeNone 无关事件，读取方应忽略
	ChangeNone ChangeKind = iota

	// ChangeAddressAdded 接口地址添加
	ChangeAddressAdded

	// ChangeAddressRemoved 接口地址移除
	ChangeAddressRemoved

	// ChangeAvailabilityChanged 链路/路由变化，网络可用性可能改变
	ChangeAvailabilityChanged
)

// String 返回变化类型字符串
func (k ChangeKind) String() string {
	switch k {
	case ChangeNone:
		return "none"
	case ChangeAddressAdded:
		return "address_added"
	case ChangeAddressRemoved:
		return "address_removed"
	case ChangeAvailabilityChanged:
		return "availability_changed"
	default:
		return "unknown"
	}
}

// IsAddressChange 是否为地址变化
func (k ChangeKind) IsAddressChange() bool {
	return k == ChangeAddressAdded || k == ChangeAddressRemoved
}

// ════════════════════════════════════════════════════════════════════════════
// ChangeSource 接口（平台变化源）
// ════════════════════════════════════════════════════════════════════════════

// ChangeSource 平台网络变化源
//
// Linux 上为 NETLINK_ROUTE socket，BSD/macOS 上为 routing socket，
// 其他平台回退为轮询。
type ChangeSource interface {
	// Open 获取平台监听资源
	// 失败时返回的错误应包含平台诊断信息
	Open() (SourceHandle, error)
}

// SourceHandle 已打开的平台监听资源
type SourceHandle interface {
	// ReadNext 阻塞读取下一个已分类的变化事件
	//
	// Close 之后必须尽快返回 ErrSourceClosed。
	ReadNext() (ChangeKind, error)

	// Close 释放资源
	// 每次成功 Open 最多调用一次
	Close() error
}

// AvailabilityChecker 网络可用性查询
type AvailabilityChecker interface {
	// IsNetworkAvailable 是否存在可用的网络接口
	IsNetworkAvailable() bool
}

// AvailabilityCheckerFunc 函数适配器
type AvailabilityCheckerFunc func() bool

// IsNetworkAvailable 实现 AvailabilityChecker
func (f AvailabilityCheckerFunc) IsNetworkAvailable() bool {
	return f()
}

// ════════════════════════════════════════════════════════════════════════════
// NetworkChangeNotifier 接口（订阅入口）
// ════════════════════════════════════════════════════════════════════════════

// AddressHandler 地址变化处理函数
//
// ctx 为订阅时捕获的上下文（不含取消信号）；订阅时传入 nil ctx 则为 context.Background()。
type AddressHandler func(ctx context.Context)

// AvailabilityHandler 可用性变化处理函数
//
// available 为防抖窗口结束时查询到的当前可用性。
type AvailabilityHandler func(ctx context.Context, available bool)

// ChangeSubscription 订阅凭证
type ChangeSubscription interface {
	// Close 取消订阅，等同于调用对应的 Unsubscribe
	Close() error
}

// NetworkChangeNotifier 网络变化通知服务
//
// 首个订阅者（任一类型）打开变化源，最后一个订阅者离开时关闭。
// 处理函数总是在内部锁之外被调用，可以在处理函数中再次订阅或取消订阅。
type NetworkChangeNotifier interface {
	// SubscribeAddress 订阅地址变化
	// handler 为 nil 时忽略，返回 (nil, nil)
	SubscribeAddress(ctx context.Context, handler AddressHandler) (ChangeSubscription, error)

	// UnsubscribeAddress 取消地址变化订阅
	// 未知订阅为空操作
	UnsubscribeAddress(sub ChangeSubscription) error

	// SubscribeAvailability 订阅可用性变化
	SubscribeAvailability(ctx context.Context, handler AvailabilityHandler) (ChangeSubscription, error)

	// UnsubscribeAvailability 取消可用性变化订阅
	UnsubscribeAvailability(sub ChangeSubscription) error

	// Close 移除所有订阅并释放变化源
	Close() error
}
