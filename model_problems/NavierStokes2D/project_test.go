package NavierStokes2D

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/macflow/types"
)

func TestProjectUniformPressure(t *testing.T) {
	var (
		rng  = rand.New(rand.NewSource(6))
		g, _ = NewGrid(Geometry{Nx: 6, Ny: 5, H: 0.3})
	)
	randomize(g.U.Field, rng)
	randomize(g.V.Field, rng)
	u, v := g.View().U().CopyData(), g.View().V().CopyData()
	g.P.Fill(3.7)
	Project(g.U, g.V, g.P, 0.1, 1.3)
	assert.Equal(t, u, g.U.Data())
	assert.Equal(t, v, g.V.Data())
}

func TestProjectGradient(t *testing.T) {
	var (
		g, _    = NewGrid(Geometry{Nx: 4, Ny: 3, H: 0.5})
		dt, rho = 0.1, 2.
	)
	for j := 0; j < g.Ny; j++ {
		for i := 0; i < g.Nx; i++ {
			g.P.Set(i, j, 2*float64(i))
		}
	}
	Project(g.U, g.V, g.P, dt, rho)
	for j := 0; j < g.Ny; j++ {
		// Wall faces are never corrected
		assert.Equal(t, 0., g.U.At(0, j))
		assert.Equal(t, 0., g.U.At(g.Nx, j))
		for i := 1; i < g.Nx; i++ {
			assert.InDelta(t, -dt/rho*2/g.H, g.U.At(i, j), 1.e-15)
		}
	}
	assert.Equal(t, 0., g.V.MaxAbs())

	other := Geometry{Nx: 3, Ny: 3, H: 0.5}
	assert.Panics(t, func() { Project(NewUField(other), g.V, g.P, dt, rho) })
}

func TestProjectRemovesDivergence(t *testing.T) {
	var (
		rng     = rand.New(rand.NewSource(7))
		geom    = Geometry{Nx: 12, Ny: 10, H: 0.5}
		g, _    = NewGrid(geom)
		be      = NewBoundaryEnforcer(types.BC_NoSlip)
		tol     = 1.e-9
		ps      = NewPressureSolver(geom, 10000, tol, 1, be)
		dt, rho = 0.1, 2.
	)
	randomize(g.U.Field, rng)
	randomize(g.V.Field, rng)
	be.EnforceVelocity(g)
	require.Greater(t, g.MaxDivergence(), 0.1)

	res := ps.Solve(g, dt, rho)
	require.True(t, res.Converged)
	assert.Equal(t, ps.Pressure(), g.P.Data())
	Project(g.U, g.V, g.P, dt, rho)
	// div = dt/rho * (rhs - Lp), and the solve stops with |rhs - Lp| < tol*rho/dt
	assert.Less(t, g.MaxDivergence(), tol+1.e-12)
	normal, tangential := be.MaxWallVelocity(g)
	assert.Equal(t, 0., normal)
	assert.Equal(t, 0., tangential)
}
