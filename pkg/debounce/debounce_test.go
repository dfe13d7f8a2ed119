package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	values []int
}

func (r *recorder) record(v int) func() {
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.values = append(r.values, v)
	}
}

func (r *recorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.values))
	copy(out, r.values)
	return out
}

func TestCallCoalescesBurstToLastValue(t *testing.T) {
	d := New(40 * time.Millisecond)
	rec := &recorder{}

	for i := 1; i <= 5; i++ {
		d.Call(rec.record(i))
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, []int{5}, rec.snapshot())
}

func TestCancelDropsPendingInvocation(t *testing.T) {
	d := New(30 * time.Millisecond)
	rec := &recorder{}

	d.Call(rec.record(1))
	d.Cancel()

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestFlushRunsPendingImmediately(t *testing.T) {
	d := New(time.Hour)
	rec := &recorder{}

	d.Call(rec.record(7))
	d.Flush()

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []int{7}, rec.snapshot())
}

func TestCallIgnoresNil(t *testing.T) {
	d := New(10 * time.Millisecond)
	d.Call(nil)
	d.Cancel()
}
