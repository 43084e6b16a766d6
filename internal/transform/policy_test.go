package transform

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name    string
		n       int64
		workers int
		want    []taskRange
	}{
		{"no tasks", 0, 4, nil},
		{"even split", 8, 4, []taskRange{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"remainder goes first", 7, 3, []taskRange{{0, 3}, {3, 5}, {5, 7}}},
		{"more workers than tasks", 2, 8, []taskRange{{0, 1}, {1, 2}}},
		{"zero workers treated as one", 3, 0, []taskRange{{0, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, partition(tt.n, tt.workers))
		})
	}
}

func TestPartition_CoversEveryTaskOnce(t *testing.T) {
	for n := int64(1); n <= 40; n++ {
		for w := 1; w <= 9; w++ {
			seen := make([]int, n)
			var prevEnd int64
			for _, r := range partition(n, w) {
				require.Equal(t, prevEnd, r.start)
				require.Less(t, r.start, r.end)
				for i := r.start; i < r.end; i++ {
					seen[i]++
				}
				prevEnd = r.end
			}
			for i, c := range seen {
				require.Equal(t, 1, c, "n=%d w=%d task=%d", n, w, i)
			}
		}
	}
}

func TestSequential_RunsInOrder(t *testing.T) {
	var order []int64
	workers := 0

	err := sequential{}.run(context.Background(), 5, func() taskFunc {
		workers++
		return func(i int64) error {
			order = append(order, i)
			return nil
		}
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, order)
	assert.Equal(t, 1, workers)
}

func TestParallel_WorkerSetupOncePerWorker(t *testing.T) {
	var setups atomic.Int32
	var mu sync.Mutex
	done := make(map[int64]int)

	err := parallel{n: 4}.run(context.Background(), 23, func() taskFunc {
		setups.Add(1)
		return func(i int64) error {
			mu.Lock()
			done[i]++
			mu.Unlock()
			return nil
		}
	})
	require.NoError(t, err)
	assert.Equal(t, int32(4), setups.Load())
	assert.Len(t, done, 23)
	for i, c := range done {
		assert.Equal(t, 1, c, "task %d", i)
	}
}

func TestParallel_PropagatesError(t *testing.T) {
	boom := errors.New("boom")

	err := parallel{n: 3}.run(context.Background(), 30, func() taskFunc {
		return func(i int64) error {
			if i == 12 {
				return boom
			}
			return nil
		}
	})
	assert.ErrorIs(t, err, boom)
}

func TestParallel_NoTasks(t *testing.T) {
	called := false
	err := parallel{n: 3}.run(context.Background(), 0, func() taskFunc {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestPolicyFor(t *testing.T) {
	assert.Equal(t, 1, policyFor(Options{Strategy: BulkSequential, Workers: 8}).workers())
	assert.Equal(t, 8, policyFor(Options{Strategy: BulkParallel, Workers: 8}).workers())
	assert.GreaterOrEqual(t, policyFor(Options{Strategy: BulkParallel}).workers(), 1)
}
