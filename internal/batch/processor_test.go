package batch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamar-Folarin/portfolio-service/internal/config"
)

func TestProcessor_ProcessesEveryItemInOrderedSlots(t *testing.T) {
	p := NewProcessor[int](&config.BatchConfig{Size: 3})
	items := []int{1, 2, 3, 4, 5, 6, 7}
	out := make([]int, len(items))

	err := p.ProcessItems(context.Background(), items, func(ctx context.Context, i int, item int) error {
		out[i] = item * 10
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30, 40, 50, 60, 70}, out)

	progress := <-p.GetProgress()
	assert.Equal(t, 3, progress.TotalBatches)
	assert.Equal(t, 3, progress.ProcessedBatches)
	assert.Equal(t, 7, progress.ProcessedItems)
}

func TestProcessor_BatchSettlesBeforeNext(t *testing.T) {
	p := NewProcessor[int](&config.BatchConfig{Size: 2})
	items := []int{0, 1, 2, 3, 4}

	var finished int32
	seen := make([]int32, len(items))
	err := p.ProcessItems(context.Background(), items, func(ctx context.Context, i int, item int) error {
		seen[i] = atomic.LoadInt32(&finished)
		atomic.AddInt32(&finished, 1)
		return nil
	})

	require.NoError(t, err)
	for i := range items {
		assert.GreaterOrEqual(t, seen[i], int32((i/2)*2), "item %d started before earlier batches settled", i)
	}
}

func TestProcessor_CollectsErrorsAndContinues(t *testing.T) {
	p := NewProcessor[int](nil)
	var calls int32

	err := p.ProcessItems(context.Background(), []int{1, 2, 3}, func(ctx context.Context, i int, item int) error {
		atomic.AddInt32(&calls, 1)
		if item == 2 {
			return errors.New("item 2 failed")
		}
		return nil
	})

	assert.ErrorContains(t, err, "item 2 failed")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestProcessor_StopsWhenCancelled(t *testing.T) {
	p := NewProcessor[int](&config.BatchConfig{Size: 1})
	ctx, cancel := context.WithCancel(context.Background())

	var calls int32
	err := p.ProcessItems(ctx, []int{1, 2, 3}, func(ctx context.Context, i int, item int) error {
		atomic.AddInt32(&calls, 1)
		cancel()
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestProcessor_Empty(t *testing.T) {
	p := NewProcessor[string](nil)
	assert.NoError(t, p.ProcessItems(context.Background(), nil, func(ctx context.Context, i int, item string) error {
		t.Fatal("should not be called")
		return nil
	}))
}
