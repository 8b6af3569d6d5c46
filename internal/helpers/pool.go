package helpers

import (
	"fmt"
	"sync"
)

type PoolStats struct {
	creates int
	resets  int
	hits    int
}

func (s PoolStats) String() string {
	return fmt.Sprint("creates: ", s.creates, ", resets: ", s.resets, ", hits: ", s.hits)
}

func (s PoolStats) Creates() int { return s.creates }
func (s PoolStats) Hits() int    { return s.hits }

const _poolCapacity = 256

// CreatePool returns get/release/stats closures over a bounded ring of
// reusable values. Releasing into a full ring drops the value.
func CreatePool[T any](create func() T, reset func(*T)) (func() *T, func(*T), func() PoolStats) {
	availableBuffer := [_poolCapacity]*T{}
	startIndex := 0
	size := 0

	lock := sync.Mutex{}

	creates := 0
	resets := 0
	hits := 0

	var get = func() *T {
		lock.Lock()
		defer lock.Unlock()

		if size > 0 {
			result := availableBuffer[startIndex]
			availableBuffer[startIndex] = nil
			startIndex = (startIndex + 1) % _poolCapacity
			size--

			hits++
			return result
		}

		creates++
		result := create()
		return &result
	}

	var release = func(t *T) {
		reset(t)

		lock.Lock()
		defer lock.Unlock()

		resets++
		if size == _poolCapacity {
			return
		}
		availableBuffer[(startIndex+size)%_poolCapacity] = t
		size++
	}

	var stats = func() PoolStats {
		lock.Lock()
		defer lock.Unlock()
		return PoolStats{creates, resets, hits}
	}

	return get, release, stats
}
