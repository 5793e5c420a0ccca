package utils

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Test PartitionMap
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				kMin, kMax := pm.GetBucketRange(np)
				histo[kMax-kMin]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Non-positive parallel degree collapses to a single partition
		pm := NewPartitionMap(0, 30)
		assert.Equal(t, 1, pm.ParallelDegree)
		assert.Equal(t, [2]int{0, 30}, pm.Partitions[0])
	}
}

func TestPartitionMapRun(t *testing.T) {
	for _, NP := range []int{1, 3, 8} {
		var (
			pm      = NewPartitionMap(NP, 100)
			visited = make([]int, 100)
			mu      sync.Mutex
			calls   int
		)
		pm.Run(func(np, kMin, kMax int) {
			for k := kMin; k < kMax; k++ {
				visited[k]++
			}
			mu.Lock()
			calls++
			mu.Unlock()
		})
		assert.Equal(t, NP, calls)
		for k := range visited {
			assert.Equal(t, 1, visited[k], "index %d", k)
		}
	}
}

func TestLimitParallelDegree(t *testing.T) {
	numCPU := NumCPU
	defer func() { NumCPU = numCPU }()
	NumCPU = func() int { return 8 }
	assert.Equal(t, 1, LimitParallelDegree(0, 10))
	assert.Equal(t, 1, LimitParallelDegree(-4, 10))
	assert.Equal(t, 2, LimitParallelDegree(64, 2))
	assert.Equal(t, 4, LimitParallelDegree(4, 10))
	assert.Equal(t, 8, LimitParallelDegree(1024, 4096))
	NumCPU = func() int { return 1 }
	assert.Equal(t, 1, LimitParallelDegree(64, 2))
}

func TestFirstNonFinite(t *testing.T) {
	assert.Equal(t, -1, FirstNonFinite([]float64{0, 1, -2}))
	assert.Equal(t, 1, FirstNonFinite([]float64{0, math.Inf(-1), math.NaN()}))
	assert.Equal(t, 2, FirstNonFinite([]float64{0, 1, math.NaN()}))
}
