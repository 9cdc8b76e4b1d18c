// internal/tuner/debounce_test.go
package tuner

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var fired int32
	var got int64
	for v := int64(1); v <= 10; v++ {
		v := v
		d.Trigger(func() {
			atomic.AddInt32(&fired, 1)
			atomic.StoreInt64(&got, v)
		})
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&fired) == 1
	}, time.Second, 5*time.Millisecond)

	// Give a spurious second fire time to show up.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
	assert.Equal(t, int64(10), atomic.LoadInt64(&got), "only the last value may fire")
}

func TestDebouncerSeparatedTriggersBothFire(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired int32
	d.Trigger(func() { atomic.AddInt32(&fired, 1) })

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&fired) == 1
	}, time.Second, 5*time.Millisecond)

	d.Trigger(func() { atomic.AddInt32(&fired, 1) })

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&fired) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired int32
	d.Trigger(func() { atomic.AddInt32(&fired, 1) })
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&fired))
}

func TestDebouncerConcurrentTriggersFireOnce(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var fired int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Trigger(func() { atomic.AddInt32(&fired, 1) })
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&fired) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestDebounceGroupKeysAreIndependent(t *testing.T) {
	g := NewDebounceGroup(20 * time.Millisecond)

	var low, high int32
	g.Trigger("eq_low_hz", func() { atomic.AddInt32(&low, 1) })
	g.Trigger("eq_high_hz", func() { atomic.AddInt32(&high, 1) })

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&low) == 1 && atomic.LoadInt32(&high) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDebounceGroupSameKeyCoalesces(t *testing.T) {
	g := NewDebounceGroup(30 * time.Millisecond)

	var fired int32
	var got int64
	for v := int64(1); v <= 5; v++ {
		v := v
		g.Trigger("comp_thr", func() {
			atomic.AddInt32(&fired, 1)
			atomic.StoreInt64(&got, v)
		})
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&fired) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
	assert.Equal(t, int64(5), atomic.LoadInt64(&got))
}

func TestDebounceGroupStopAll(t *testing.T) {
	g := NewDebounceGroup(20 * time.Millisecond)

	var fired int32
	g.Trigger("a", func() { atomic.AddInt32(&fired, 1) })
	g.Trigger("b", func() { atomic.AddInt32(&fired, 1) })
	g.StopAll()

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&fired))
}
