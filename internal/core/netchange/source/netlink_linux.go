//go:build linux

package source

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vishvananda/netlink"

	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
)

const (
	// updateBuffer 每类更新 channel 的缓冲
	updateBuffer = 64

	// maxResubscribe 连续重新订阅上限，超过后按读取故障返回
	maxResubscribe = 3
)

// 订阅分组
const (
	groupAddr  = "addr"
	groupLink  = "link"
	groupRoute = "route"
)

// rtnlSubscriber 订阅 rtnetlink 更新
//
// done 关闭时订阅结束；订阅 goroutine 退出时关闭 ch。
type rtnlSubscriber interface {
	SubscribeAddr(ch chan<- netlink.AddrUpdate, done <-chan struct{}, cberr func(error)) error
	SubscribeLink(ch chan<- netlink.LinkUpdate, done <-chan struct{}, cberr func(error)) error
	SubscribeRoute(ch chan<- netlink.RouteUpdate, done <-chan struct{}, cberr func(error)) error
}

// rtnl 基于 vishvananda/netlink 的订阅
type rtnl struct{}

func (rtnl) SubscribeAddr(ch chan<- netlink.AddrUpdate, done <-chan struct{}, cberr func(error)) error {
	return netlink.AddrSubscribeWithOptions(ch, done, netlink.AddrSubscribeOptions{ErrorCallback: cberr})
}

func (rtnl) SubscribeLink(ch chan<- netlink.LinkUpdate, done <-chan struct{}, cberr func(error)) error {
	return netlink.LinkSubscribeWithOptions(ch, done, netlink.LinkSubscribeOptions{ErrorCallback: cberr})
}

func (rtnl) SubscribeRoute(ch chan<- netlink.RouteUpdate, done <-chan struct{}, cberr func(error)) error {
	return netlink.RouteSubscribeWithOptions(ch, done, netlink.RouteSubscribeOptions{ErrorCallback: cberr})
}

// ============================================================================
//                              NetlinkSource
// ============================================================================

// NetlinkSource Linux rtnetlink 变化源
//
// 订阅地址、链路和路由三类更新：地址新增/删除映射为地址事件，
// 链路和路由变化映射为可用性事件。
type NetlinkSource struct {
	rtnl rtnlSubscriber
}

var _ pkgif.ChangeSource = (*NetlinkSource)(nil)

// NewNetlinkSource 创建 netlink 变化源
func NewNetlinkSource() *NetlinkSource {
	return &NetlinkSource{rtnl: rtnl{}}
}

func newNativeSource(_ *Config) pkgif.ChangeSource {
	return NewNetlinkSource()
}

// Open 实现 ChangeSource
func (s *NetlinkSource) Open() (pkgif.SourceHandle, error) {
	h := &netlinkHandle{
		rtnl: s.rtnl,
		done: make(chan struct{}),
	}

	for _, group := range []string{groupAddr, groupLink, groupRoute} {
		if err := h.subscribe(group); err != nil {
			// 结束已建立的订阅
			close(h.done)
			return nil, fmt.Errorf("netlink subscribe %s: %w", group, err)
		}
	}

	logger.Debug("netlink 变化源已打开")
	return h, nil
}

// netlinkHandle netlink 订阅句柄
//
// 订阅 channel 和 failures 只由读取 goroutine 访问。
type netlinkHandle struct {
	rtnl rtnlSubscriber

	addrs  chan netlink.AddrUpdate
	links  chan netlink.LinkUpdate
	routes chan netlink.RouteUpdate

	// failures 自上次收到更新以来的连续订阅中断次数
	failures int

	errMu   sync.Mutex
	lastErr error

	done      chan struct{}
	closeOnce sync.Once
}

func (h *netlinkHandle) subscribe(group string) error {
	switch group {
	case groupAddr:
		ch := make(chan netlink.AddrUpdate, updateBuffer)
		if err := h.rtnl.SubscribeAddr(ch, h.done, h.onError); err != nil {
			return err
		}
		h.addrs = ch
	case groupLink:
		ch := make(chan netlink.LinkUpdate, updateBuffer)
		if err := h.rtnl.SubscribeLink(ch, h.done, h.onError); err != nil {
			return err
		}
		h.links = ch
	case groupRoute:
		ch := make(chan netlink.RouteUpdate, updateBuffer)
		if err := h.rtnl.SubscribeRoute(ch, h.done, h.onError); err != nil {
			return err
		}
		h.routes = ch
	}
	return nil
}

// onError 订阅 goroutine 的错误回调，可能并发调用
func (h *netlinkHandle) onError(err error) {
	select {
	case <-h.done:
		return
	default:
	}

	logger.Debug("netlink 订阅错误", "error", err)
	h.errMu.Lock()
	h.lastErr = err
	h.errMu.Unlock()
}

func (h *netlinkHandle) takeErr() error {
	h.errMu.Lock()
	defer h.errMu.Unlock()
	err := h.lastErr
	h.lastErr = nil
	return err
}

// ReadNext 实现 SourceHandle
func (h *netlinkHandle) ReadNext() (pkgif.ChangeKind, error) {
	select {
	case <-h.done:
		return pkgif.ChangeNone, pkgif.ErrSourceClosed
	default:
	}

	select {
	case <-h.done:
		return pkgif.ChangeNone, pkgif.ErrSourceClosed

	case u, ok := <-h.addrs:
		if !ok {
			return h.lost(groupAddr)
		}
		h.failures = 0
		if u.NewAddr {
			return pkgif.ChangeAddressAdded, nil
		}
		return pkgif.ChangeAddressRemoved, nil

	case _, ok := <-h.links:
		if !ok {
			return h.lost(groupLink)
		}
		h.failures = 0
		return pkgif.ChangeAvailabilityChanged, nil

	case _, ok := <-h.routes:
		if !ok {
			return h.lost(groupRoute)
		}
		h.failures = 0
		return pkgif.ChangeAvailabilityChanged, nil
	}
}

// lost 处理意外结束的订阅
//
// 订阅 goroutine 接收失败（典型是 ENOBUFS，内核丢弃了消息）后会关闭 channel。
// 期间的更新已丢失，重新订阅并按可用性变化上报；连续中断过多时返回故障。
func (h *netlinkHandle) lost(group string) (pkgif.ChangeKind, error) {
	select {
	case <-h.done:
		return pkgif.ChangeNone, pkgif.ErrSourceClosed
	default:
	}

	cause := h.takeErr()
	if cause == nil {
		cause = errors.New("update channel closed")
	}

	h.failures++
	if h.failures > maxResubscribe {
		return pkgif.ChangeNone, fmt.Errorf("netlink %s subscription ended %d times in a row: %w",
			group, h.failures, cause)
	}

	if err := h.subscribe(group); err != nil {
		return pkgif.ChangeNone, fmt.Errorf("netlink resubscribe %s after %v: %w", group, cause, err)
	}

	logger.Warn("netlink 订阅中断，已重新订阅，按可用性变化处理",
		"group", group,
		"attempt", h.failures,
		"cause", cause)
	return pkgif.ChangeAvailabilityChanged, nil
}

// Close 实现 SourceHandle
//
// 关闭 done 结束全部订阅，并唤醒阻塞中的 ReadNext。
func (h *netlinkHandle) Close() error {
	closed := false
	h.closeOnce.Do(func() {
		close(h.done)
		closed = true
	})
	if !closed {
		return pkgif.ErrSourceClosed
	}
	return nil
}
