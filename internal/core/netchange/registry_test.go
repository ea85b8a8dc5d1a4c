package netchange

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegistry 测试订阅集合
func TestRegistry(t *testing.T) {
	r := newRegistry[func()]()
	assert.Nil(t, r.snapshot())

	r.add(1, func() {}, nil)
	r.add(2, func() {}, context.Background())
	assert.Equal(t, 2, r.len())
	assert.True(t, r.has(1))

	snap := r.snapshot()
	assert.Len(t, snap, 2)

	s, ok := r.remove(1)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), s.id)
	_, ok = r.remove(1)
	assert.False(t, ok)

	// 快照不受后续修改影响
	assert.Len(t, snap, 2)
	assert.Equal(t, 1, r.len())

	r.clear()
	assert.Zero(t, r.len())
}

// TestRegistry_SnapshotOrder 测试快照按订阅顺序排列
func TestRegistry_SnapshotOrder(t *testing.T) {
	r := newRegistry[int]()
	for id := uint64(1); id <= 32; id++ {
		r.add(id, int(id), nil)
	}
	r.remove(7)
	r.remove(20)
	r.add(33, 33, nil)

	var got []uint64
	for _, s := range r.snapshot() {
		got = append(got, s.id)
		assert.Equal(t, int(s.id), s.handler)
	}

	require.Len(t, got, 31)
	assert.True(t, slices.IsSorted(got))
	assert.Equal(t, uint64(1), got[0])
	assert.Equal(t, uint64(33), got[len(got)-1])
	assert.NotContains(t, got, uint64(7))
	assert.NotContains(t, got, uint64(20))
}

// TestCaptureContext 测试上下文捕获
func TestCaptureContext(t *testing.T) {
	//nolint:staticcheck // nil ctx 是受支持的输入
	assert.Nil(t, captureContext(nil))

	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, 42))
	captured := captureContext(ctx)
	cancel()

	assert.NoError(t, captured.Err())
	assert.Equal(t, 42, captured.Value(ctxKey{}))
}
