package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunBatches_CoversAllIndexes(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[int]bool)

	err := RunBatches(context.Background(), 10, 3, func(_ context.Context, index int) error {
		mu.Lock()
		seen[index] = true
		mu.Unlock()
		return nil
	})

	assert.NoError(t, err)
	assert.Len(t, seen, 10)
	for i := 0; i < 10; i++ {
		assert.True(t, seen[i])
	}
}

func TestRunBatches_BoundsConcurrency(t *testing.T) {
	var inFlight, peak int64

	err := RunBatches(context.Background(), 20, 4, func(_ context.Context, _ int) error {
		cur := atomic.AddInt64(&inFlight, 1)
		for {
			old := atomic.LoadInt64(&peak)
			if cur <= old || atomic.CompareAndSwapInt64(&peak, old, cur) {
				break
			}
		}
		atomic.AddInt64(&inFlight, -1)
		return nil
	})

	assert.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(4))
}

func TestRunBatches_ReturnsLowestFailedIndex(t *testing.T) {
	boom := errors.New("boom")

	err := RunBatches(context.Background(), 9, 3, func(_ context.Context, index int) error {
		if index == 4 || index == 5 {
			return boom
		}
		return nil
	})

	var indexed *IndexedError
	assert.ErrorAs(t, err, &indexed)
	assert.Equal(t, 4, indexed.Index)
	assert.ErrorIs(t, err, boom)
}

func TestRunBatches_StopsAfterFailedBatch(t *testing.T) {
	var calls int64

	err := RunBatches(context.Background(), 10, 2, func(_ context.Context, index int) error {
		atomic.AddInt64(&calls, 1)
		if index == 0 {
			return errors.New("first batch fails")
		}
		return nil
	})

	assert.Error(t, err)
	// Only the failing batch ran.
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestRunBatches_SequentialForNonPositiveBatchSize(t *testing.T) {
	for _, batchSize := range []int{0, -1, 1} {
		var inFlight, peak int64
		err := RunBatches(context.Background(), 5, batchSize, func(_ context.Context, _ int) error {
			cur := atomic.AddInt64(&inFlight, 1)
			if cur > atomic.LoadInt64(&peak) {
				atomic.StoreInt64(&peak, cur)
			}
			atomic.AddInt64(&inFlight, -1)
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), peak)
	}
}

func TestRunBatches_ZeroTotal(t *testing.T) {
	err := RunBatches(context.Background(), 0, 4, func(_ context.Context, _ int) error {
		t.Fatal("should not be called")
		return nil
	})
	assert.NoError(t, err)
}
