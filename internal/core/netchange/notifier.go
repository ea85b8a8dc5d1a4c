package netchange

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/dep2p/go-netchange/internal/core/netchange/source"
	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
	"github.com/dep2p/go-netchange/pkg/lib/log"
)

var logger = log.Logger("core/netchange")

// ============================================================================
//                              Notifier
// ============================================================================

// Notifier 网络变化通知器
//
// 所有状态（变化源句柄、代数、两个订阅集合、防抖器）由同一把 gate 保护。
// 首个订阅者打开变化源并启动读取 goroutine，最后一个订阅者离开时关闭；
// 处理函数总是在释放 gate 之后调用。
type Notifier struct {
	gate sync.Mutex

	config  *Config
	source  pkgif.ChangeSource
	checker pkgif.AvailabilityChecker
	clock   clock.Clock
	metrics *metrics

	// 当前打开的句柄，nil 表示关闭
	handle pkgif.SourceHandle

	// generation 当前句柄的代数，0 表示关闭；读取 goroutine 用它判断自己是否过期
	generation atomic.Uint64
	lastGen    uint64

	address      *registry[pkgif.AddressHandler]
	availability *registry[pkgif.AvailabilityHandler]
	debouncer    *debouncer

	// fault 最近一次读取故障
	fault error

	nextID atomic.Uint64
	closed bool
}

// 确保实现接口
var _ pkgif.NetworkChangeNotifier = (*Notifier)(nil)

// Option 通知器选项
type Option func(n *Notifier)

// WithClock 设置时钟（测试时注入 clock.Mock）
func WithClock(clk clock.Clock) Option {
	return func(n *Notifier) {
		n.clock = clk
	}
}

// WithAvailabilityChecker 设置可用性查询
func WithAvailabilityChecker(checker pkgif.AvailabilityChecker) Option {
	return func(n *Notifier) {
		n.checker = checker
	}
}

// WithRegisterer 设置 Prometheus 注册器
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(n *Notifier) {
		n.metrics = newMetrics(reg)
	}
}

// NewNotifier 创建网络变化通知器
//
// src 为 nil 时按配置选择平台变化源。
func NewNotifier(config *Config, src pkgif.ChangeSource, opts ...Option) *Notifier {
	if config == nil {
		config = DefaultConfig()
	}
	_ = config.Validate()

	n := &Notifier{
		config:       config,
		source:       src,
		address:      newRegistry[pkgif.AddressHandler](),
		availability: newRegistry[pkgif.AvailabilityHandler](),
	}
	for _, opt := range opts {
		opt(n)
	}

	if n.source == nil {
		n.source = source.New(config.SourceConfig())
	}
	if n.checker == nil {
		n.checker = source.NewInterfaceChecker()
	}
	if n.clock == nil {
		n.clock = clock.New()
	}
	if n.metrics == nil {
		n.metrics = newMetrics(nil)
	}
	return n
}

// ============================================================================
//                              订阅
// ============================================================================

type subscriptionKind int

const (
	kindAddress subscriptionKind = iota
	kindAvailability
)

// subscription 订阅凭证
type subscription struct {
	id       uint64
	kind     subscriptionKind
	notifier *Notifier
}

// Close 取消订阅
func (s *subscription) Close() error {
	return s.notifier.unsubscribe(s, s.kind)
}

// SubscribeAddress 订阅地址变化
//
// ctx 的值在处理函数中可见（取消信号不会传递）；ctx 为 nil 时处理函数收到 context.Background()。
// handler 为 nil 时忽略，返回 (nil, nil)。
func (n *Notifier) SubscribeAddress(ctx context.Context, handler pkgif.AddressHandler) (pkgif.ChangeSubscription, error) {
	if handler == nil {
		return nil, nil
	}

	n.gate.Lock()
	defer n.gate.Unlock()

	if err := n.ensureOpenLocked(); err != nil {
		return nil, err
	}

	id := n.nextID.Add(1)
	n.address.add(id, handler, captureContext(ctx))
	n.updateGaugesLocked()

	logger.Debug("新增地址变化订阅", "subscription", id, "count", n.address.len())
	return &subscription{id: id, kind: kindAddress, notifier: n}, nil
}

// SubscribeAvailability 订阅可用性变化
func (n *Notifier) SubscribeAvailability(ctx context.Context, handler pkgif.AvailabilityHandler) (pkgif.ChangeSubscription, error) {
	if handler == nil {
		return nil, nil
	}

	n.gate.Lock()
	defer n.gate.Unlock()

	if err := n.ensureOpenLocked(); err != nil {
		return nil, err
	}

	if n.debouncer == nil {
		n.debouncer = newDebouncer(n.clock, n.config.AvailabilityWindow, n.onAvailabilityTimer)
	}

	id := n.nextID.Add(1)
	n.availability.add(id, handler, captureContext(ctx))
	n.updateGaugesLocked()

	logger.Debug("新增可用性变化订阅", "subscription", id, "count", n.availability.len())
	return &subscription{id: id, kind: kindAvailability, notifier: n}, nil
}

// UnsubscribeAddress 取消地址变化订阅
//
// nil、未知或已取消的订阅为空操作。
func (n *Notifier) UnsubscribeAddress(sub pkgif.ChangeSubscription) error {
	return n.unsubscribe(sub, kindAddress)
}

// UnsubscribeAvailability 取消可用性变化订阅
func (n *Notifier) UnsubscribeAvailability(sub pkgif.ChangeSubscription) error {
	return n.unsubscribe(sub, kindAvailability)
}

func (n *Notifier) unsubscribe(sub pkgif.ChangeSubscription, kind subscriptionKind) error {
	s, ok := sub.(*subscription)
	if !ok || s == nil || s.notifier != n || s.kind != kind {
		return nil
	}

	n.gate.Lock()
	defer n.gate.Unlock()

	var remaining int
	switch kind {
	case kindAddress:
		if !n.address.has(s.id) {
			return nil
		}
		remaining = n.address.len() - 1 + n.availability.len()
	case kindAvailability:
		if !n.availability.has(s.id) {
			return nil
		}
		remaining = n.address.len() + n.availability.len() - 1
	}

	// 先关闭变化源，失败时保持订阅不变
	if remaining == 0 && n.handle != nil {
		if err := n.closeLocked(); err != nil {
			return err
		}
	}

	switch kind {
	case kindAddress:
		n.address.remove(s.id)
	case kindAvailability:
		n.availability.remove(s.id)
		if n.availability.len() == 0 && n.debouncer != nil {
			n.debouncer.stop()
			n.debouncer = nil
			n.metrics.setPending(false)
		}
	}
	n.updateGaugesLocked()

	logger.Debug("取消订阅",
		"subscription", s.id,
		"address", n.address.len(),
		"availability", n.availability.len())
	return nil
}

// ============================================================================
//                              生命周期
// ============================================================================

// ensureOpenLocked 按需打开变化源（持有 gate）
func (n *Notifier) ensureOpenLocked() error {
	if n.closed {
		return ErrNotifierClosed
	}
	if n.handle != nil {
		if n.fault == nil {
			return nil
		}
		// 读取 goroutine 已因故障退出，句柄不再被读取，换一个新代数重新打开
		n.discardFaultedLocked()
	}

	h, err := n.source.Open()
	if err != nil {
		n.metrics.sourceFailed("open")
		logger.Warn("打开网络变化源失败", "error", err)
		return newUnavailableError("open", err)
	}

	n.lastGen++
	gen := n.lastGen
	n.handle = h
	n.fault = nil
	n.generation.Store(gen)
	n.metrics.opened()

	go n.readLoop(h, gen)

	logger.Info("网络变化源已打开", "generation", gen)
	return nil
}

// discardFaultedLocked 丢弃读取故障后的句柄（持有 gate）
//
// 关闭失败只记录日志：该句柄已没有读取者，不能让它阻止重新打开。
func (n *Notifier) discardFaultedLocked() {
	gen := n.generation.Load()
	if err := n.handle.Close(); err != nil && !errors.Is(err, pkgif.ErrSourceClosed) {
		n.metrics.sourceFailed("close")
		logger.Warn("关闭故障句柄失败，直接丢弃", "generation", gen, "error", err)
	} else {
		n.metrics.closed()
	}
	n.handle = nil
	n.generation.Store(0)
	logger.Info("读取故障后重新打开网络变化源", "generation", gen, "fault", n.fault)
}

// closeLocked 关闭变化源（持有 gate）
//
// 关闭失败时句柄和代数保持不变。
func (n *Notifier) closeLocked() error {
	gen := n.generation.Load()
	if err := n.handle.Close(); err != nil {
		n.metrics.sourceFailed("close")
		logger.Warn("关闭网络变化源失败", "generation", gen, "error", err)
		return newUnavailableError("close", err)
	}

	n.handle = nil
	n.generation.Store(0)
	n.metrics.closed()

	logger.Info("网络变化源已关闭", "generation", gen)
	return nil
}

// Close 移除所有订阅并关闭变化源
//
// 之后的订阅调用返回 ErrNotifierClosed。重复调用返回 nil。
func (n *Notifier) Close() error {
	n.gate.Lock()
	defer n.gate.Unlock()

	if n.closed {
		return nil
	}
	n.closed = true

	var errs error
	if n.debouncer != nil {
		n.debouncer.stop()
		n.debouncer = nil
	}
	if n.handle != nil {
		if err := n.closeLocked(); err != nil {
			errs = multierr.Append(errs, err)
			// 通知器已不可用，直接放弃句柄。代数清零后读取 goroutine 在 ReadNext
			// 返回时退出；若该句柄的 ReadNext 永不返回，goroutine 会一直阻塞。
			logger.Warn("放弃未能关闭的网络变化源，读取 goroutine 可能仍阻塞在该句柄上",
				"generation", n.generation.Load(),
				"error", err)
			n.handle = nil
			n.generation.Store(0)
		}
	}
	n.address.clear()
	n.availability.clear()
	n.updateGaugesLocked()
	n.metrics.setPending(false)

	return errs
}

// ============================================================================
//                              诊断
// ============================================================================

// Stats 通知器状态快照
type Stats struct {
	// Open 变化源是否打开
	Open bool

	// Generation 当前句柄代数，关闭时为 0
	Generation uint64

	// AddressSubscribers 地址变化订阅数
	AddressSubscribers int

	// AvailabilitySubscribers 可用性变化订阅数
	AvailabilitySubscribers int

	// DebounceActive 防抖器是否存在
	DebounceActive bool

	// DebouncePending 是否有待投递的可用性通知
	DebouncePending bool

	// LastFault 最近一次读取故障
	LastFault error
}

// Stats 获取状态快照
func (n *Notifier) Stats() Stats {
	n.gate.Lock()
	defer n.gate.Unlock()

	st := Stats{
		Open:                    n.handle != nil,
		Generation:              n.generation.Load(),
		AddressSubscribers:      n.address.len(),
		AvailabilitySubscribers: n.availability.len(),
		DebounceActive:          n.debouncer != nil,
		LastFault:               n.fault,
	}
	if n.debouncer != nil {
		st.DebouncePending = n.debouncer.pending
	}
	return st
}

// Err 返回最近一次读取故障
//
// 读取故障会终止当前读取 goroutine；下一次订阅调用会以新代数重新打开变化源，
// 已有订阅保持不变并随之恢复通知。
func (n *Notifier) Err() error {
	n.gate.Lock()
	defer n.gate.Unlock()
	return n.fault
}

func (n *Notifier) updateGaugesLocked() {
	n.metrics.setSubscribers(n.address.len(), n.availability.len())
}
