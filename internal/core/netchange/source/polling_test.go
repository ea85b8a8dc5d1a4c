package source

import (
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
)

const upFlags = net.FlagUp | net.FlagRunning

// fakeInterfaces 可变的接口列表
type fakeInterfaces struct {
	mu     sync.Mutex
	ifaces []interfaceInfo
	err    error
}

func (f *fakeInterfaces) set(ifaces ...interfaceInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ifaces = ifaces
	f.err = nil
}

func (f *fakeInterfaces) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeInterfaces) list() ([]interfaceInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]interfaceInfo, len(f.ifaces))
	copy(out, f.ifaces)
	return out, nil
}

func newTestPollingSource(ifaces *fakeInterfaces) (*PollingSource, *clock.Mock) {
	mock := clock.NewMock()
	src := NewPollingSource(time.Second)
	src.clock = mock
	src.list = ifaces.list
	return src, mock
}

// readAll 读出一次轮询产生的所有事件
func readAll(t *testing.T, h pkgif.SourceHandle, n int) []pkgif.ChangeKind {
	t.Helper()
	var kinds []pkgif.ChangeKind
	for i := 0; i < n; i++ {
		kind, err := h.ReadNext()
		require.NoError(t, err)
		kinds = append(kinds, kind)
	}
	return kinds
}

// TestPollingSource_AddressChanges 测试地址增删
func TestPollingSource_AddressChanges(t *testing.T) {
	ifaces := &fakeInterfaces{}
	ifaces.set(interfaceInfo{Name: "eth0", Flags: upFlags, Addrs: []string{"10.0.0.1/24"}})

	src, mock := newTestPollingSource(ifaces)
	h, err := src.Open()
	require.NoError(t, err)
	defer h.Close()

	ifaces.set(interfaceInfo{Name: "eth0", Flags: upFlags, Addrs: []string{"10.0.0.2/24"}})
	mock.Add(time.Second)

	kinds := readAll(t, h, 2)
	assert.ElementsMatch(t, []pkgif.ChangeKind{
		pkgif.ChangeAddressAdded,
		pkgif.ChangeAddressRemoved,
	}, kinds)
}

// TestPollingSource_LinkChanges 测试接口启停
func TestPollingSource_LinkChanges(t *testing.T) {
	ifaces := &fakeInterfaces{}
	ifaces.set(interfaceInfo{Name: "eth0", Flags: upFlags})

	src, mock := newTestPollingSource(ifaces)
	h, err := src.Open()
	require.NoError(t, err)
	defer h.Close()

	ifaces.set(interfaceInfo{Name: "eth0", Flags: net.FlagUp})
	mock.Add(time.Second)

	kind, err := h.ReadNext()
	require.NoError(t, err)
	assert.Equal(t, pkgif.ChangeAvailabilityChanged, kind)
}

// TestPollingSource_ListErrorSkipsTick 测试单次列举失败不会终止读取
func TestPollingSource_ListErrorSkipsTick(t *testing.T) {
	ifaces := &fakeInterfaces{}
	ifaces.set()

	src, mock := newTestPollingSource(ifaces)
	h, err := src.Open()
	require.NoError(t, err)
	defer h.Close()

	result := make(chan pkgif.ChangeKind, 1)
	go func() {
		kind, _ := h.ReadNext()
		result <- kind
	}()

	ifaces.fail(errors.New("boom"))
	mock.Add(time.Second)

	ifaces.set(interfaceInfo{Name: "wlan0", Flags: upFlags})
	require.Eventually(t, func() bool {
		mock.Add(time.Second)
		select {
		case kind := <-result:
			assert.Equal(t, pkgif.ChangeAvailabilityChanged, kind)
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

// TestPollingSource_CloseUnblocksRead 测试关闭唤醒阻塞的读取
func TestPollingSource_CloseUnblocksRead(t *testing.T) {
	ifaces := &fakeInterfaces{}
	src, _ := newTestPollingSource(ifaces)

	h, err := src.Open()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := h.ReadNext()
		done <- err
	}()

	require.NoError(t, h.Close())

	select {
	case err := <-done:
		assert.ErrorIs(t, err, pkgif.ErrSourceClosed)
	case <-time.After(time.Second):
		t.Fatal("ReadNext did not return after Close")
	}

	assert.ErrorIs(t, h.Close(), pkgif.ErrSourceClosed)
}

// TestPollingSource_OpenError 测试打开时列举失败
func TestPollingSource_OpenError(t *testing.T) {
	ifaces := &fakeInterfaces{}
	ifaces.fail(errors.New("no interfaces"))
	src, _ := newTestPollingSource(ifaces)

	_, err := src.Open()
	assert.Error(t, err)
}

// TestDiffInterfaces 测试快照比较
func TestDiffInterfaces(t *testing.T) {
	tests := []struct {
		name string
		old  []interfaceInfo
		new  []interfaceInfo
		want []pkgif.ChangeKind
	}{
		{
			name: "无变化",
			old:  []interfaceInfo{{Name: "eth0", Flags: upFlags, Addrs: []string{"a"}}},
			new:  []interfaceInfo{{Name: "eth0", Flags: upFlags, Addrs: []string{"a"}}},
			want: nil,
		},
		{
			name: "新接口",
			old:  nil,
			new:  []interfaceInfo{{Name: "eth0", Flags: upFlags, Addrs: []string{"a", "b"}}},
			want: []pkgif.ChangeKind{
				pkgif.ChangeAvailabilityChanged,
				pkgif.ChangeAddressAdded,
				pkgif.ChangeAddressAdded,
			},
		},
		{
			name: "接口消失",
			old:  []interfaceInfo{{Name: "eth0", Flags: upFlags, Addrs: []string{"a"}}},
			new:  nil,
			want: []pkgif.ChangeKind{
				pkgif.ChangeAvailabilityChanged,
				pkgif.ChangeAddressRemoved,
			},
		},
		{
			name: "只有非链路标志变化",
			old:  []interfaceInfo{{Name: "eth0", Flags: upFlags}},
			new:  []interfaceInfo{{Name: "eth0", Flags: upFlags | net.FlagMulticast}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diffInterfaces(indexInterfaces(tt.old), indexInterfaces(tt.new))
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}
