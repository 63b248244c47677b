// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package workerpool

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerialParallelForRunsWholeRange(t *testing.T) {
	var got []int
	Serial{}.ParallelFor(5, func(start, end int) {
		for i := start; i < end; i++ {
			got = append(got, i)
		}
	})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestSerialParallelForEmptyRange(t *testing.T) {
	calls := 0
	Serial{}.ParallelFor(0, func(start, end int) { calls++ })
	assert.Equal(t, 0, calls)
}

func TestPoolParallelForCoversEveryIndexExactlyOnce(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	const n = 97
	seen := make([]int32, n)
	var mu sync.Mutex
	var touched []int

	pool.ParallelFor(n, func(start, end int) {
		mu.Lock()
		for i := start; i < end; i++ {
			seen[i]++
			touched = append(touched, i)
		}
		mu.Unlock()
	})

	for i, count := range seen {
		assert.Equal(t, int32(1), count, "index %d touched %d times", i, count)
	}

	sort.Ints(touched)
	assert.Len(t, touched, n)
}

func TestPoolParallelForSmallNUsesFewerChunksThanWorkers(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	var mu sync.Mutex
	var calls int
	pool.ParallelFor(3, func(start, end int) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	assert.LessOrEqual(t, calls, 3)
}

func TestPoolReusedAcrossCalls(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	for i := 0; i < 10; i++ {
		sum := 0
		var mu sync.Mutex
		pool.ParallelFor(10, func(start, end int) {
			mu.Lock()
			sum += end - start
			mu.Unlock()
		})
		assert.Equal(t, 10, sum)
	}
}

func TestPoolCloseIsIdempotent(t *testing.T) {
	pool := New(2)
	pool.Close()
	assert.NotPanics(t, func() { pool.Close() })
}
