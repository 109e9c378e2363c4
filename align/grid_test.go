package align

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrid_ResizeFillGetSet(t *testing.T) {
	g := NewGrid()
	g.Resize(3, 4, math.Inf(-1))

	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			v, err := g.At(i, j)
			assert.NoError(t, err)
			assert.True(t, math.IsInf(v, -1))
		}
	}

	assert.NoError(t, g.Set(1, 2, 7.5))
	v, err := g.At(1, 2)
	assert.NoError(t, err)
	assert.Equal(t, 7.5, v)

	// Unchecked hot-path accessors agree with the bounds-checked ones.
	assert.Equal(t, 7.5, g.get(1, 2))
	g.set(0, 0, 3.0)
	got, _ := g.At(0, 0)
	assert.Equal(t, 3.0, got)
}

func TestGrid_OutOfRange(t *testing.T) {
	g := NewGrid()
	g.Resize(2, 2, 0)

	_, err := g.At(2, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)

	err = g.Set(-1, 0, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestGrid_ResizeReusesBackingWhenLargeEnough(t *testing.T) {
	g := NewGrid()
	g.Resize(10, 10, 1)
	backing := g.data
	g.Resize(2, 2, 2)
	assert.Same(t, &backing[0], &g.data[0], "shrinking should reuse the same backing array")
	for i := 0; i < 4; i++ {
		assert.Equal(t, 2.0, g.data[i])
	}
}

func TestBestNodeGrid_ResizeFill(t *testing.T) {
	g := NewBestNodeGrid()
	g.Resize(2, 2, math.Inf(-1))
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			n := g.get(i, j)
			assert.True(t, math.IsInf(n.score, -1))
			assert.Equal(t, 0, n.nextP)
			assert.Equal(t, 0, n.nextQ)
		}
	}
	g.set(0, 1, bestNode{score: 4, nextP: 1, nextQ: 1})
	got := g.get(0, 1)
	assert.Equal(t, 4.0, got.score)
	assert.Equal(t, 1, got.nextP)
}
