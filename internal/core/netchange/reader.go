package netchange

import (
	"errors"

	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
)

// readLoop 读取循环
//
// 绑定到打开时的代数 gen：关闭句柄会让阻塞的 ReadNext 返回，
// 随后代数检查失败，goroutine 退出，不会再从已关闭的句柄读取。
func (n *Notifier) readLoop(h pkgif.SourceHandle, gen uint64) {
	logger.Debug("读取循环已启动", "generation", gen)
	defer logger.Debug("读取循环已退出", "generation", gen)

	for n.isCurrent(gen) {
		kind, err := h.ReadNext()
		if err != nil {
			if errors.Is(err, pkgif.ErrSourceClosed) || !n.isCurrent(gen) {
				return
			}
			n.recordFault(gen, err)
			return
		}

		if kind == pkgif.ChangeNone {
			continue
		}
		if !n.processEvent(gen, kind) {
			return
		}
	}
}

func (n *Notifier) isCurrent(gen uint64) bool {
	return n.generation.Load() == gen
}

// processEvent 分类并路由一个事件
//
// 返回 false 表示代数已过期，事件被丢弃，读取循环应退出。
func (n *Notifier) processEvent(gen uint64, kind pkgif.ChangeKind) bool {
	n.gate.Lock()
	if n.generation.Load() != gen {
		n.gate.Unlock()
		n.metrics.eventStale()
		logger.Debug("丢弃过期事件", "kind", kind.String(), "generation", gen)
		return false
	}

	n.metrics.eventRead(kind)
	logger.Debug("收到网络变化事件", "kind", kind.String(), "generation", gen)

	switch kind {
	case pkgif.ChangeAddressAdded, pkgif.ChangeAddressRemoved:
		subs := n.address.snapshot()
		n.gate.Unlock()
		n.dispatchAddress(subs)
		return true

	case pkgif.ChangeAvailabilityChanged:
		if n.debouncer != nil {
			if n.debouncer.trigger() {
				n.metrics.setPending(true)
			} else {
				n.metrics.eventCoalesced()
			}
		}
	}

	n.gate.Unlock()
	return true
}

// onAvailabilityTimer 防抖定时器触发
func (n *Notifier) onAvailabilityTimer(d *debouncer) {
	n.gate.Lock()
	// 定时器可能属于已被替换的防抖器
	if n.debouncer != d || !d.take() {
		n.gate.Unlock()
		return
	}
	n.metrics.setPending(false)
	subs := n.availability.snapshot()
	n.gate.Unlock()

	if len(subs) == 0 {
		return
	}

	available := n.checker.IsNetworkAvailable()
	logger.Debug("投递可用性变化", "available", available, "subscribers", len(subs))
	n.dispatchAvailability(subs, available)
}

// recordFault 记录读取故障
func (n *Notifier) recordFault(gen uint64, err error) {
	n.gate.Lock()
	defer n.gate.Unlock()

	if n.generation.Load() != gen {
		return
	}
	n.fault = newUnavailableError("read", err)
	n.metrics.sourceFailed("read")
	logger.Error("网络变化读取失败，停止监听直到下一次订阅",
		"generation", gen,
		"error", err)
}
