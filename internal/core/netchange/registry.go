package netchange

import (
	"cmp"
	"context"
	"slices"
)

// subscriber 一个订阅条目
type subscriber[H any] struct {
	id      uint64
	handler H

	// ctx 订阅时捕获的上下文，nil 表示不恢复上下文
	ctx context.Context
}

// registry 订阅者集合
//
// 自身不加锁，所有方法都必须在持有 Notifier.gate 时调用。
// 计数变化（0→1, 1→0）由 Notifier 处理，registry 不管理资源。
type registry[H any] struct {
	subs map[uint64]subscriber[H]
}

func newRegistry[H any]() *registry[H] {
	return &registry[H]{subs: make(map[uint64]subscriber[H])}
}

func (r *registry[H]) add(id uint64, handler H, ctx context.Context) {
	r.subs[id] = subscriber[H]{id: id, handler: handler, ctx: ctx}
}

// remove 移除条目，返回被移除的条目
func (r *registry[H]) remove(id uint64) (subscriber[H], bool) {
	s, ok := r.subs[id]
	if ok {
		delete(r.subs, id)
	}
	return s, ok
}

func (r *registry[H]) has(id uint64) bool {
	_, ok := r.subs[id]
	return ok
}

func (r *registry[H]) len() int {
	return len(r.subs)
}

// snapshot 返回当前条目的副本，供锁外遍历
//
// 按 id 升序，即订阅顺序。
func (r *registry[H]) snapshot() []subscriber[H] {
	if len(r.subs) == 0 {
		return nil
	}
	out := make([]subscriber[H], 0, len(r.subs))
	for _, s := range r.subs {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b subscriber[H]) int {
		return cmp.Compare(a.id, b.id)
	})
	return out
}

func (r *registry[H]) clear() {
	r.subs = make(map[uint64]subscriber[H])
}

// captureContext 捕获调用方上下文
//
// 保留值（trace id、pprof 标签等），去掉取消信号；nil 表示不捕获。
func captureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithoutCancel(ctx)
}
