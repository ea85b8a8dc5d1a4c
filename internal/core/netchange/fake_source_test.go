package netchange

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
)

// fakeSource 可观测的变化源
type fakeSource struct {
	mu       sync.Mutex
	opens    int
	closes   int
	openErr  error
	closeErr error
	handles  []*fakeHandle
}

func newFakeSource() *fakeSource {
	return &fakeSource{}
}

func (s *fakeSource) Open() (pkgif.SourceHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.openErr != nil {
		return nil, s.openErr
	}
	s.opens++
	h := &fakeHandle{
		src:    s,
		events: make(chan pkgif.ChangeKind, 64),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
	}
	s.handles = append(s.handles, h)
	return h, nil
}

func (s *fakeSource) setOpenErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openErr = err
}

func (s *fakeSource) setCloseErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeErr = err
}

func (s *fakeSource) counts() (opens, closes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opens, s.closes
}

// current 最近打开的句柄
func (s *fakeSource) current() *fakeHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.handles) == 0 {
		return nil
	}
	return s.handles[len(s.handles)-1]
}

// emit 向最近打开的句柄推送事件
func (s *fakeSource) emit(kinds ...pkgif.ChangeKind) {
	h := s.current()
	for _, k := range kinds {
		h.events <- k
	}
}

// fakeHandle 通过 channel 驱动的句柄
type fakeHandle struct {
	src    *fakeSource
	events chan pkgif.ChangeKind
	errs   chan error
	done   chan struct{}
	closed atomic.Bool
}

func (h *fakeHandle) ReadNext() (pkgif.ChangeKind, error) {
	select {
	case <-h.done:
		return pkgif.ChangeNone, pkgif.ErrSourceClosed
	case k := <-h.events:
		return k, nil
	case err := <-h.errs:
		return pkgif.ChangeNone, err
	}
}

func (h *fakeHandle) Close() error {
	h.src.mu.Lock()
	defer h.src.mu.Unlock()

	if h.src.closeErr != nil {
		return h.src.closeErr
	}
	if !h.closed.CompareAndSwap(false, true) {
		return pkgif.ErrSourceClosed
	}
	h.src.closes++
	close(h.done)
	return nil
}

// testAvailability 可切换的可用性
type testAvailability struct {
	v atomic.Bool
}

func (a *testAvailability) IsNetworkAvailable() bool {
	return a.v.Load()
}

// newTestNotifier 创建使用 fakeSource 和 clock.Mock 的通知器
func newTestNotifier(t *testing.T, opts ...Option) (*Notifier, *fakeSource, *clock.Mock) {
	t.Helper()

	src := newFakeSource()
	mock := clock.NewMock()
	avail := &testAvailability{}
	avail.v.Store(true)

	all := append([]Option{WithClock(mock), WithAvailabilityChecker(avail)}, opts...)
	n := NewNotifier(DefaultConfig(), src, all...)
	t.Cleanup(func() { _ = n.Close() })
	return n, src, mock
}

// counter 线程安全计数
type counter struct {
	n atomic.Int64
}

func (c *counter) inc() {
	c.n.Add(1)
}

func (c *counter) get() int64 {
	return c.n.Load()
}

const (
	waitFor = time.Second
	tick    = 5 * time.Millisecond
)
