package netchange

import (
	"time"

	"github.com/benbjohnson/clock"
)

// debouncer 可重新武装的单次定时器
//
// 窗口从突发中的第一个事件开始计时，窗口内的后续事件不会推迟触发时间。
// 所有方法都必须在持有 Notifier.gate 时调用；fire 回调在定时器的 goroutine 上运行，
// 由回调自己获取 gate。
type debouncer struct {
	clock  clock.Clock
	window time.Duration
	fire   func(d *debouncer)

	timer   *clock.Timer
	pending bool
	stopped bool
}

func newDebouncer(clk clock.Clock, window time.Duration, fire func(d *debouncer)) *debouncer {
	return &debouncer{
		clock:  clk,
		window: window,
		fire:   fire,
	}
}

// trigger 记录一次事件
//
// 返回 true 表示本次事件武装了定时器，false 表示已合并进当前窗口。
func (d *debouncer) trigger() bool {
	if d.stopped || d.pending {
		return false
	}
	d.pending = true
	if d.timer == nil {
		d.timer = d.clock.AfterFunc(d.window, func() { d.fire(d) })
	} else {
		d.timer.Reset(d.window)
	}
	return true
}

// take 定时器触发时调用：若有待投递通知则清除标记并返回 true
func (d *debouncer) take() bool {
	if d.stopped || !d.pending {
		return false
	}
	d.pending = false
	return true
}

// stop 停止定时器并清除待投递标记
func (d *debouncer) stop() {
	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
}
