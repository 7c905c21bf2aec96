package scheduler

import (
	"sync"
	"time"
)

// Debouncer は連打されたタスクを1回にまとめる（後端デバウンス）。
// Scheduleの度にタイマーを張り直すので、静かになってからwindow経過で実行。
// 保留タイマーは常に1本だけ。
type Debouncer struct {
	window time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Schedule はwindow経過後のtask実行を予約する。既存の予約は取り消す。
func (d *Debouncer) Schedule(task func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()

		task()
	})
}

// CancelPending は保留中の予約を取り消す。無ければ何もしない。
func (d *Debouncer) CancelPending() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending は予約が保留中か。
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
