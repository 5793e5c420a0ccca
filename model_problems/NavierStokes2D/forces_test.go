package NavierStokes2D

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/macflow/types"
)

func TestForcesGravity(t *testing.T) {
	var (
		geom = Geometry{Nx: 4, Ny: 4, H: 1}
		g, _ = NewGrid(geom)
		fc   = NewForces(geom, [2]float64{1, -2}, 0, 0, 0, 1)
	)
	res := fc.Apply(g, 0.5)
	assert.Equal(t, [2]DiffusionResult{}, res)
	for j := 0; j < g.Ny; j++ {
		assert.Equal(t, 0., g.U.At(0, j))
		assert.Equal(t, 0., g.U.At(g.Nx, j))
		for i := 1; i < g.Nx; i++ {
			assert.Equal(t, 0.5, g.U.At(i, j))
		}
	}
	for i := 0; i < g.Nx; i++ {
		assert.Equal(t, 0., g.V.At(i, 0))
		assert.Equal(t, 0., g.V.At(i, g.Ny))
		for j := 1; j < g.Ny; j++ {
			assert.Equal(t, -1., g.V.At(i, j))
		}
	}
}

func TestForcesViscosity(t *testing.T) {
	var (
		geom = Geometry{Nx: 9, Ny: 9, H: 1}
		g, _ = NewGrid(geom)
		tol  = 1.e-13
		dt   = 0.2
		nu   = 0.5
		a    = nu * dt / (geom.H * geom.H)
		fc   = NewForces(geom, [2]float64{}, nu, 1000, tol, 1)
	)
	g.U.Set(4, 4, 1)
	NewBoundaryEnforcer(types.BC_NoSlip).EnforceVelocity(g)
	res := fc.Apply(g, dt)
	require.Less(t, res[0].MaxChange, tol)
	assert.Greater(t, res[0].Iterations, 1)
	// Nothing to diffuse in v
	assert.Equal(t, DiffusionResult{Iterations: 1}, res[1])

	q := g.U.At(4, 4)
	assert.Less(t, q, 1.)
	assert.Greater(t, g.U.At(3, 4), 0.)
	assert.Greater(t, g.U.At(4, 5), 0.)
	// The implicit system (1 - nu*dt*Laplacian) q = q* holds at the spike
	nbr := g.U.ghostAt(5, 4) + g.U.ghostAt(3, 4) + g.U.ghostAt(4, 5) + g.U.ghostAt(4, 3)
	assert.InDelta(t, 1., (1+4*a)*q-a*nbr, 1.e-11)
	for j := 0; j < g.Ny; j++ {
		assert.Equal(t, 0., g.U.At(0, j))
		assert.Equal(t, 0., g.U.At(g.Nx, j))
	}
}

func TestForcesWallDrag(t *testing.T) {
	var (
		geom = Geometry{Nx: 6, Ny: 6, H: 1}
		near = map[types.BCFLAG]float64{}
	)
	for _, mode := range []types.BCFLAG{types.BC_NoSlip, types.BC_FreeSlip} {
		g, _ := NewGrid(geom)
		g.U.Fill(1)
		NewBoundaryEnforcer(mode).EnforceVelocity(g)
		NewForces(geom, [2]float64{}, 1, 1000, 1.e-12, 1).Apply(g, 0.5)
		near[mode] = g.U.At(3, 0)
	}
	// Only a no-slip wall drags the tangential velocity along it
	assert.Less(t, near[types.BC_NoSlip], near[types.BC_FreeSlip])
	assert.Greater(t, near[types.BC_NoSlip], 0.)
}

func TestForcesParallel(t *testing.T) {
	var (
		rng  = rand.New(rand.NewSource(10))
		geom = Geometry{Nx: 10, Ny: 12, H: 0.5}
		gs   = make([]*Grid, 2)
	)
	for n := range gs {
		gs[n], _ = NewGrid(geom)
	}
	randomize(gs[0].U.Field, rng)
	randomize(gs[0].V.Field, rng)
	NewBoundaryEnforcer(types.BC_NoSlip).EnforceVelocity(gs[0])
	gs[1].U.CopyFrom(gs[0].U.Field)
	gs[1].V.CopyFrom(gs[0].V.Field)

	withCPUs(t, 4)
	par := NewForces(geom, [2]float64{0, -1}, 0.1, 50, 1.e-10, 4)
	require.Equal(t, 4, par.uRows.ParallelDegree)
	require.Equal(t, 4, par.vRows.ParallelDegree)
	r1 := NewForces(geom, [2]float64{0, -1}, 0.1, 50, 1.e-10, 1).Apply(gs[0], 0.1)
	r4 := par.Apply(gs[1], 0.1)
	assert.Equal(t, r1, r4)
	assert.Equal(t, gs[0].U.Data(), gs[1].U.Data())
	assert.Equal(t, gs[0].V.Data(), gs[1].V.Data())
}
