package netchange

import (
	"context"
	"runtime/debug"
	"runtime/pprof"

	pkgif "github.com/dep2p/go-netchange/pkg/interfaces"
)

// dispatchAddress 向地址订阅者快照投递通知
//
// 必须在释放 gate 之后调用。
func (n *Notifier) dispatchAddress(subs []subscriber[pkgif.AddressHandler]) {
	for _, s := range subs {
		h := s.handler
		n.invoke("address", s.id, s.ctx, func(ctx context.Context) {
			h(ctx)
		})
	}
	n.metrics.dispatched("address", len(subs))
}

// dispatchAvailability 向可用性订阅者快照投递通知
func (n *Notifier) dispatchAvailability(subs []subscriber[pkgif.AvailabilityHandler], available bool) {
	for _, s := range subs {
		h := s.handler
		n.invoke("availability", s.id, s.ctx, func(ctx context.Context) {
			h(ctx, available)
		})
	}
	n.metrics.dispatched("availability", len(subs))
}

// invoke 调用单个处理函数
//
// 有捕获上下文时在该上下文中运行（恢复 pprof 标签），否则以 context.Background() 直接调用。
// 处理函数 panic 被隔离，不影响同一快照中的其他订阅者。
func (n *Notifier) invoke(kind string, id uint64, captured context.Context, call func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			n.metrics.handlerPanicked(kind)
			logger.Error("订阅者处理函数 panic",
				"kind", kind,
				"subscription", id,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	if captured == nil {
		call(context.Background())
		return
	}
	runInContext(captured, call)
}

// runInContext 在捕获的上下文中执行 fn
func runInContext(ctx context.Context, fn func(ctx context.Context)) {
	pprof.SetGoroutineLabels(ctx)
	defer pprof.SetGoroutineLabels(context.Background())
	fn(ctx)
}
