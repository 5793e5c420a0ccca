package NavierStokes2D

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	for _, geom := range []Geometry{
		{Nx: 0, Ny: 4, H: 1},
		{Nx: 4, Ny: -1, H: 1},
		{Nx: 4, Ny: 4, H: 0},
		{Nx: 4, Ny: 4, H: math.NaN()},
		{Nx: 4, Ny: 4, H: math.Inf(1)},
	} {
		_, err := NewGrid(geom)
		assert.Error(t, err, "%+v", geom)
	}
	g, err := NewGrid(Geometry{Nx: 1, Ny: 1, H: 2})
	require.NoError(t, err)
	assert.Equal(t, [2]float64{2, 2}, g.Extent())
}

func TestGridDivergence(t *testing.T) {
	var (
		rng  = rand.New(rand.NewSource(3))
		g, _ = NewGrid(Geometry{Nx: 5, Ny: 4, H: 0.5})
	)
	g.U.Set(2, 1, 1)
	g.U.Set(3, 1, 2)
	g.V.Set(2, 1, -1)
	g.V.Set(2, 2, 0.5)
	// (2-1)/0.5 + (0.5+1)/0.5
	assert.InDelta(t, 5., g.Divergence(2, 1), 1.e-15)
	u, v := g.CellVelocity(2, 1)
	assert.Equal(t, [2]float64{1.5, -0.25}, [2]float64{u, v})

	randomize(g.U.Field, rng)
	randomize(g.V.Field, rng)
	div := make([]float64, g.Nx*g.Ny)
	g.DivergenceInto(div)
	var maxDiv float64
	for j := 0; j < g.Ny; j++ {
		for i := 0; i < g.Nx; i++ {
			assert.Equal(t, g.Divergence(i, j), div[i+j*g.Nx])
			maxDiv = math.Max(maxDiv, math.Abs(div[i+j*g.Nx]))
		}
	}
	assert.Equal(t, maxDiv, g.MaxDivergence())
	assert.Equal(t, g.Divergence(1, 1), g.View().Divergence(1, 1))
	assert.Panics(t, func() { g.Divergence(5, 0) })
	assert.Panics(t, func() { g.Divergence(0, -1) })
}

func TestGridVelocity(t *testing.T) {
	g, _ := NewGrid(Geometry{Nx: 4, Ny: 4, H: 1})
	g.U.Fill(2)
	g.V.Fill(-1)
	u, v := g.Velocity(2.2, 1.7)
	assert.InDelta(t, 2., u, 1.e-15)
	assert.InDelta(t, -1., v, 1.e-15)
	assert.InDelta(t, math.Sqrt(5), g.MaxSpeed(), 1.e-15)
	u, v = g.View().Velocity(2.2, 1.7)
	assert.InDelta(t, 2., u, 1.e-15)
	assert.InDelta(t, -1., v, 1.e-15)
}
