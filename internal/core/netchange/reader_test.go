package netchange

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
)

// TestNotifier_AddressNotCoalesced 测试每个地址事件都投递给每个订阅者
func TestNotifier_AddressNotCoalesced(t *testing.T) {
	n, src, _ := newTestNotifier(t)

	var a, b counter
	_, err := n.SubscribeAddress(context.Background(), func(context.Context) { a.inc() })
	require.NoError(t, err)
	_, err = n.SubscribeAddress(context.Background(), func(context.Context) { b.inc() })
	require.NoError(t, err)

	src.emit(
		pkgif.ChangeAddressAdded,
		pkgif.ChangeAddressRemoved,
		pkgif.ChangeAddressAdded,
		pkgif.ChangeNone,
		pkgif.ChangeAddressRemoved,
	)

	require.Eventually(t, func() bool { return a.get() == 4 && b.get() == 4 }, waitFor, tick)
	assert.Equal(t, float64(2), testutil.ToFloat64(n.metrics.events.WithLabelValues("address_added")))
	assert.Equal(t, float64(8), testutil.ToFloat64(n.metrics.dispatches.WithLabelValues("address")))
}

// TestNotifier_AddressNotRoutedToAvailability 测试地址事件不触发可用性通知
func TestNotifier_AddressNotRoutedToAvailability(t *testing.T) {
	n, src, mock := newTestNotifier(t)

	rec := &availabilityRecorder{}
	_, err := n.SubscribeAvailability(context.Background(), rec.handle)
	require.NoError(t, err)
	var addr counter
	_, err = n.SubscribeAddress(context.Background(), func(context.Context) { addr.inc() })
	require.NoError(t, err)

	src.emit(pkgif.ChangeAddressAdded)
	require.Eventually(t, func() bool { return addr.get() == 1 }, waitFor, tick)
	assert.False(t, n.Stats().DebouncePending)

	mock.Add(DefaultAvailabilityWindow)
	assert.Zero(t, rec.count())
}

// TestNotifier_StaleGeneration 测试过期代数的事件被丢弃
func TestNotifier_StaleGeneration(t *testing.T) {
	n, _, _ := newTestNotifier(t)

	var calls counter
	sub, err := n.SubscribeAddress(context.Background(), func(context.Context) { calls.inc() })
	require.NoError(t, err)
	oldGen := n.Stats().Generation
	require.NoError(t, sub.Close())

	_, err = n.SubscribeAddress(context.Background(), func(context.Context) { calls.inc() })
	require.NoError(t, err)
	require.NotEqual(t, oldGen, n.Stats().Generation)

	// 旧读取 goroutine 在关闭后读到的事件
	assert.False(t, n.processEvent(oldGen, pkgif.ChangeAddressAdded))
	assert.False(t, n.processEvent(oldGen, pkgif.ChangeAvailabilityChanged))

	assert.Zero(t, calls.get())
	assert.Equal(t, float64(2), testutil.ToFloat64(n.metrics.staleEvents))
}

// TestNotifier_StaleAfterClose 测试关闭后代数为 0，任何事件都过期
func TestNotifier_StaleAfterClose(t *testing.T) {
	n, _, _ := newTestNotifier(t)

	sub, err := n.SubscribeAddress(context.Background(), func(context.Context) {})
	require.NoError(t, err)
	gen := n.Stats().Generation
	require.NoError(t, sub.Close())

	assert.False(t, n.isCurrent(gen))
	assert.False(t, n.processEvent(gen, pkgif.ChangeAddressRemoved))
}

// TestNotifier_ReaderFault 测试读取故障被记录且不影响订阅调用
func TestNotifier_ReaderFault(t *testing.T) {
	n, src, _ := newTestNotifier(t)

	sub, err := n.SubscribeAddress(context.Background(), func(context.Context) {})
	require.NoError(t, err)
	require.NoError(t, n.Err())

	src.current().errs <- errors.New("recvmsg: connection reset")

	require.Eventually(t, func() bool { return n.Err() != nil }, waitFor, tick)

	err = n.Err()
	assert.ErrorIs(t, err, ErrReaderFault)
	assert.ErrorIs(t, err, ErrNetworkInformationUnavailable)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, err, n.Stats().LastFault)
	assert.Equal(t, float64(1), testutil.ToFloat64(n.metrics.sourceErrors.WithLabelValues("read")))

	// 订阅数归零后重新订阅，故障被清除
	require.NoError(t, sub.Close())
	sub, err = n.SubscribeAddress(context.Background(), func(context.Context) {})
	require.NoError(t, err)
	defer sub.Close()
	assert.NoError(t, n.Err())
}

// TestNotifier_ReaderFaultReopens 测试读取故障后有订阅者在时，下一次订阅重新打开变化源
func TestNotifier_ReaderFaultReopens(t *testing.T) {
	n, src, _ := newTestNotifier(t)

	var longLived, fresh counter
	sub, err := n.SubscribeAddress(context.Background(), func(context.Context) { longLived.inc() })
	require.NoError(t, err)
	defer sub.Close()

	faulted := src.current()
	oldGen := n.Stats().Generation
	faulted.errs <- errors.New("recvmsg: no buffer space available")
	require.Eventually(t, func() bool { return n.Err() != nil }, waitFor, tick)

	// 长期订阅者仍在，新的订阅触发重新打开
	sub2, err := n.SubscribeAddress(context.Background(), func(context.Context) { fresh.inc() })
	require.NoError(t, err)
	defer sub2.Close()

	opens, closes := src.counts()
	assert.Equal(t, 2, opens)
	assert.Equal(t, 1, closes)
	assert.True(t, faulted.closed.Load())
	assert.NotSame(t, faulted, src.current())

	st := n.Stats()
	assert.True(t, st.Open)
	assert.NotEqual(t, oldGen, st.Generation)
	assert.NoError(t, st.LastFault)

	src.emit(pkgif.ChangeAddressAdded)
	require.Eventually(t, func() bool {
		return longLived.get() == 1 && fresh.get() == 1
	}, waitFor, tick)
}

// TestNotifier_ReaderFaultReopenCloseError 测试故障句柄关闭失败时仍重新打开
func TestNotifier_ReaderFaultReopenCloseError(t *testing.T) {
	n, src, _ := newTestNotifier(t)

	var calls counter
	sub, err := n.SubscribeAddress(context.Background(), func(context.Context) { calls.inc() })
	require.NoError(t, err)
	defer sub.Close()

	faulted := src.current()
	faulted.errs <- errors.New("read: i/o error")
	require.Eventually(t, func() bool { return n.Err() != nil }, waitFor, tick)

	src.setCloseErr(errors.New("EBADF"))
	_, err = n.SubscribeAvailability(context.Background(), func(context.Context, bool) {})
	src.setCloseErr(nil)
	require.NoError(t, err)

	opens, _ := src.counts()
	assert.Equal(t, 2, opens)
	assert.NoError(t, n.Err())

	src.emit(pkgif.ChangeAddressRemoved)
	require.Eventually(t, func() bool { return calls.get() == 1 }, waitFor, tick)
}

// TestNotifier_ReaderFaultReopenFails 测试故障后重新打开失败时返回错误并保留故障
func TestNotifier_ReaderFaultReopenFails(t *testing.T) {
	n, src, _ := newTestNotifier(t)

	sub, err := n.SubscribeAddress(context.Background(), func(context.Context) {})
	require.NoError(t, err)
	defer sub.Close()

	src.current().errs <- errors.New("read: i/o error")
	require.Eventually(t, func() bool { return n.Err() != nil }, waitFor, tick)

	src.setOpenErr(errors.New("socket: too many open files"))
	_, err = n.SubscribeAddress(context.Background(), func(context.Context) {})
	assert.ErrorIs(t, err, ErrNetworkInformationUnavailable)

	st := n.Stats()
	assert.False(t, st.Open)
	assert.Equal(t, 1, st.AddressSubscribers)
	assert.Error(t, st.LastFault)

	// 变化源恢复后下一次订阅成功打开
	src.setOpenErr(nil)
	sub2, err := n.SubscribeAddress(context.Background(), func(context.Context) {})
	require.NoError(t, err)
	defer sub2.Close()
	assert.True(t, n.Stats().Open)
	assert.NoError(t, n.Err())
}

// TestNotifier_ReaderExitsOnClose 测试关闭句柄后不再投递事件
func TestNotifier_ReaderExitsOnClose(t *testing.T) {
	n, src, _ := newTestNotifier(t)

	var calls counter
	sub, err := n.SubscribeAddress(context.Background(), func(context.Context) { calls.inc() })
	require.NoError(t, err)
	h := src.current()

	require.NoError(t, sub.Close())

	h.events <- pkgif.ChangeAddressAdded
	assert.Never(t, func() bool { return calls.get() > 0 }, 30*tick, tick)
	assert.NoError(t, n.Err())
}

// TestNotifier_ReadLoopStaleEvent 测试读取循环遇到过期代数时不投递
func TestNotifier_ReadLoopStaleEvent(t *testing.T) {
	n, _, _ := newTestNotifier(t)

	var calls counter
	_, err := n.SubscribeAddress(context.Background(), func(context.Context) { calls.inc() })
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	h := &sequenceHandle{kinds: []pkgif.ChangeKind{pkgif.ChangeAddressAdded}}
	go func() {
		defer wg.Done()
		n.readLoop(h, n.Stats().Generation+100)
	}()
	wg.Wait()

	assert.Zero(t, calls.get())
	assert.Zero(t, h.reads)
}

// sequenceHandle 按顺序返回事件，随后返回 ErrSourceClosed
type sequenceHandle struct {
	kinds []pkgif.ChangeKind
	reads int
}

func (h *sequenceHandle) ReadNext() (pkgif.ChangeKind, error) {
	if h.reads >= len(h.kinds) {
		return pkgif.ChangeNone, pkgif.ErrSourceClosed
	}
	h.reads++
	return h.kinds[h.reads-1], nil
}

func (h *sequenceHandle) Close() error {
	return nil
}
