package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CoalescesBurstIntoOneRun(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var runs int64
	for i := 0; i < 5; i++ {
		d.Schedule(func() { atomic.AddInt64(&runs, 1) })
		time.Sleep(2 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&runs) == 1
	}, time.Second, 5*time.Millisecond)

	// しばらく待っても増えない
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(1), atomic.LoadInt64(&runs))
}

func TestDebouncer_ScheduleResetsTimer(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var runs int64
	d.Schedule(func() { atomic.AddInt64(&runs, 1) })

	// 窓の途中で予約し直すと前の予約は消える
	time.Sleep(30 * time.Millisecond)
	d.Schedule(func() { atomic.AddInt64(&runs, 1) })

	// 最初の予約の期限（50ms）を過ぎても未実行
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int64(0), atomic.LoadInt64(&runs))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&runs) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncer_CancelPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var runs int64
	d.Schedule(func() { atomic.AddInt64(&runs, 1) })
	assert.True(t, d.Pending())

	d.CancelPending()
	assert.False(t, d.Pending())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int64(0), atomic.LoadInt64(&runs))
}

func TestDebouncer_CancelPendingWithoutSchedule(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	// 予約が無くても落ちない
	d.CancelPending()
	assert.False(t, d.Pending())
}
