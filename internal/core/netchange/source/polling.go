package source

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
)

// ============================================================================
//                              PollingSource
// ============================================================================

// PollingSource 基于轮询的变化源
//
// 跨平台实现：按固定间隔比较 net.Interfaces() 快照，
// 地址增删映射为地址事件，接口出现/消失或启停映射为可用性事件。
type PollingSource struct {
	interval time.Duration
	clock    clock.Clock
	list     interfaceLister
}

var _ pkgif.ChangeSource = (*PollingSource)(nil)

// NewPollingSource 创建轮询变化源
func NewPollingSource(interval time.Duration) *PollingSource {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &PollingSource{
		interval: interval,
		clock:    clock.New(),
		list:     systemInterfaces,
	}
}

// Open 实现 ChangeSource
//
// 记录初始快照，之后的变化相对于它计算。
func (s *PollingSource) Open() (pkgif.SourceHandle, error) {
	ifaces, err := s.list()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}

	logger.Debug("轮询变化源已打开", "poll_interval", s.interval)

	return &pollingHandle{
		src:    s,
		last:   indexInterfaces(ifaces),
		ticker: s.clock.Ticker(s.interval),
		done:   make(chan struct{}),
	}, nil
}

// pollingHandle 轮询句柄
//
// ReadNext 只由一个读取 goroutine 调用，queue 无需加锁。
type pollingHandle struct {
	src    *PollingSource
	last   map[string]interfaceInfo
	ticker *clock.Ticker
	queue  []pkgif.ChangeKind

	done      chan struct{}
	closeOnce sync.Once
}

// ReadNext 实现 SourceHandle
func (h *pollingHandle) ReadNext() (pkgif.ChangeKind, error) {
	for {
		select {
		case <-h.done:
			return pkgif.ChangeNone, pkgif.ErrSourceClosed
		default:
		}

		if len(h.queue) > 0 {
			kind := h.queue[0]
			h.queue = h.queue[1:]
			return kind, nil
		}

		select {
		case <-h.done:
			return pkgif.ChangeNone, pkgif.ErrSourceClosed
		case <-h.ticker.C:
			ifaces, err := h.src.list()
			if err != nil {
				logger.Warn("获取网络接口失败", "error", err)
				continue
			}
			current := indexInterfaces(ifaces)
			h.queue = diffInterfaces(h.last, current)
			h.last = current
		}
	}
}

// Close 实现 SourceHandle
func (h *pollingHandle) Close() error {
	closed := false
	h.closeOnce.Do(func() {
		h.ticker.Stop()
		close(h.done)
		closed = true
	})
	if !closed {
		return pkgif.ErrSourceClosed
	}
	return nil
}

func indexInterfaces(ifaces []interfaceInfo) map[string]interfaceInfo {
	out := make(map[string]interfaceInfo, len(ifaces))
	for _, iface := range ifaces {
		out[iface.Name] = iface
	}
	return out
}

// diffInterfaces 比较两个快照
func diffInterfaces(prev, curr map[string]interfaceInfo) []pkgif.ChangeKind {
	var kinds []pkgif.ChangeKind

	for name, newInfo := range curr {
		oldInfo, existed := prev[name]
		if !existed {
			kinds = append(kinds, pkgif.ChangeAvailabilityChanged)
			for range newInfo.Addrs {
				kinds = append(kinds, pkgif.ChangeAddressAdded)
			}
			continue
		}

		if changedLinkState(oldInfo.Flags, newInfo.Flags) {
			kinds = append(kinds, pkgif.ChangeAvailabilityChanged)
		}

		oldAddrs := make(map[string]bool, len(oldInfo.Addrs))
		for _, addr := range oldInfo.Addrs {
			oldAddrs[addr] = true
		}
		newAddrs := make(map[string]bool, len(newInfo.Addrs))
		for _, addr := range newInfo.Addrs {
			newAddrs[addr] = true
			if !oldAddrs[addr] {
				kinds = append(kinds, pkgif.ChangeAddressAdded)
			}
		}
		for addr := range oldAddrs {
			if !newAddrs[addr] {
				kinds = append(kinds, pkgif.ChangeAddressRemoved)
			}
		}
	}

	for name, oldInfo := range prev {
		if _, exists := curr[name]; exists {
			continue
		}
		kinds = append(kinds, pkgif.ChangeAvailabilityChanged)
		for range oldInfo.Addrs {
			kinds = append(kinds, pkgif.ChangeAddressRemoved)
		}
	}

	return kinds
}

func changedLinkState(prev, curr net.Flags) bool {
	const mask = net.FlagUp | net.FlagRunning
	return prev&mask != curr&mask
}
