package matrix

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBlockAccumulates(t *testing.T) {
	bs := NewBlockSparse(3, 3)
	var block [BlockDim * BlockDim]float64
	for k := range block {
		block[k] = float64(k)
	}
	require.NoError(t, bs.AddBlock(1, 2, block))
	require.NoError(t, bs.AddBlock(1, 2, block))
	got := bs.Block(1, 2)
	for k := range got {
		assert.Equal(t, 2*float64(k), got[k])
	}
}

func TestAddBlockRejectsOutOfRange(t *testing.T) {
	bs := NewBlockSparse(2, 2)
	err := bs.AddBlock(5, 0, [BlockDim * BlockDim]float64{})
	assert.Error(t, err)
}

func TestAddBlockConcurrentDisjointRows(t *testing.T) {
	n := 64
	bs := NewBlockSparse(n, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var block [BlockDim * BlockDim]float64
			block[0] = float64(i + 1)
			for iter := 0; iter < 10; iter++ {
				_ = bs.AddBlock(i, i, block)
			}
		}(i)
	}
	wg.Wait()
	for i := 0; i < n; i++ {
		got := bs.Block(i, i)
		assert.Equal(t, 10*float64(i+1), got[0])
	}
}

func TestToCSRRoundTripsDiagonal(t *testing.T) {
	bs := NewBlockSparse(2, 2)
	var block [BlockDim * BlockDim]float64
	block[0] = 3
	block[5] = 7
	require.NoError(t, bs.AddBlock(0, 0, block))
	csr := bs.ToCSR()
	rows, cols := csr.Dims()
	assert.Equal(t, 8, rows)
	assert.Equal(t, 8, cols)
	assert.Equal(t, 3.0, csr.At(0, 0))
	assert.Equal(t, 7.0, csr.At(1, 1))
	assert.Equal(t, 0.0, csr.At(2, 2))
}

func TestResetClearsBlocks(t *testing.T) {
	bs := NewBlockSparse(2, 2)
	var block [BlockDim * BlockDim]float64
	block[0] = 1
	require.NoError(t, bs.AddBlock(0, 0, block))
	bs.Reset()
	got := bs.Block(0, 0)
	assert.Equal(t, [BlockDim * BlockDim]float64{}, got)
}
