package NavierStokes2D

import (
	"math"

	"github.com/notargets/macflow/utils"
)

/*
PressureSolver finds the pressure that makes the intermediate velocity
divergence free:

	Laplacian(p) = (rho/dt) * div(u*)

Jacobi relaxation on the padded (Nx+2) x (Ny+2) buffers:

	p'(i,j) = (pE + pW + pN + pS - h^2 * rhs(i,j)) / 4

Each sweep reads only the previous buffer and writes only the next one,
then the two are swapped. The ghost ring is mirrored before every sweep,
giving the zero normal gradient at the walls.
*/
type PressureSolver struct {
	Geometry
	MaxIterations int
	Tolerance     float64
	OnIteration   func(iteration int, maxChange float64) // For testing
	bc            *BoundaryEnforcer
	rows          *utils.PartitionMap
	div, rhs      []float64
	prev, next    []float64 // Padded buffers
	maxChange     []float64 // One for each partition
}

// PressureResult describes one solve. Hitting the iteration cap without
// reaching the tolerance is reported here, it is not an error.
type PressureResult struct {
	Iterations int
	MaxChange  float64
	Converged  bool
}

func NewPressureSolver(geom Geometry, maxIterations int, tolerance float64,
	parallelDegree int, bc *BoundaryEnforcer) (ps *PressureSolver) {
	var (
		N       = geom.Nx * geom.Ny
		NPadded = (geom.Nx + 2) * (geom.Ny + 2)
	)
	ps = &PressureSolver{
		Geometry:      geom,
		MaxIterations: maxIterations,
		Tolerance:     tolerance,
		bc:            bc,
		rows:          utils.NewPartitionMap(utils.LimitParallelDegree(parallelDegree, geom.Ny), geom.Ny),
		div:           make([]float64, N),
		rhs:           make([]float64, N),
		prev:          make([]float64, NPadded),
		next:          make([]float64, NPadded),
	}
	ps.maxChange = make([]float64, ps.rows.ParallelDegree)
	return
}

// Solve computes the divergence of the grid velocity and relaxes g.P,
// starting from the pressure already in g.P. Tolerance bounds the divergence
// left after projection: the sweeps stop once the pressure change is below
// Tolerance*rho*h^2/(4*dt), which bounds the residual of the Poisson equation
// by Tolerance*rho/dt.
func (ps *PressureSolver) Solve(g *Grid, dt, rho float64) (res PressureResult) {
	var (
		scale = rho / dt
	)
	g.DivergenceInto(ps.div)
	for k, d := range ps.div {
		ps.rhs[k] = scale * d
	}
	ps.Load(g.P.Data())
	res = ps.relax(ps.rhs, ps.Tolerance*rho*ps.H*ps.H/(4*dt))
	ps.unpad(g.P.Data())
	return
}

// Relax runs Jacobi sweeps against rhs, length Nx*Ny, starting from the
// currently loaded pressure, until the largest change is below Tolerance.
func (ps *PressureSolver) Relax(rhs []float64) (res PressureResult) {
	return ps.relax(rhs, ps.Tolerance)
}

func (ps *PressureSolver) relax(rhs []float64, threshold float64) (res PressureResult) {
	for it := 1; it <= ps.MaxIterations; it++ {
		ps.bc.MirrorPressure(ps.prev, ps.Nx, ps.Ny)
		ps.rows.Run(func(np, jMin, jMax int) {
			ps.maxChange[np] = ps.sweep(rhs, jMin, jMax)
		})
		res.Iterations, res.MaxChange = it, 0
		for _, mc := range ps.maxChange {
			res.MaxChange = math.Max(res.MaxChange, mc)
		}
		ps.prev, ps.next = ps.next, ps.prev
		if ps.OnIteration != nil {
			ps.OnIteration(it, res.MaxChange)
		}
		if res.MaxChange < threshold || res.MaxChange == 0 {
			res.Converged = true
			break
		}
	}
	return
}

func (ps *PressureSolver) sweep(rhs []float64, jMin, jMax int) (maxChange float64) {
	var (
		w      = ps.Nx + 2
		h2     = ps.H * ps.H
		pp, pn = ps.prev, ps.next
	)
	for j := jMin; j < jMax; j++ {
		for i := 0; i < ps.Nx; i++ {
			k := (i + 1) + (j+1)*w
			p := 0.25 * (pp[k+1] + pp[k-1] + pp[k+w] + pp[k-w] - h2*rhs[i+j*ps.Nx])
			maxChange = math.Max(maxChange, math.Abs(p-pp[k]))
			pn[k] = p
		}
	}
	return
}

// unpad copies the interior of the current pressure buffer into p, index
// i + j*Nx.
func (ps *PressureSolver) unpad(p []float64) {
	var (
		w = ps.Nx + 2
	)
	for j := 0; j < ps.Ny; j++ {
		copy(p[j*ps.Nx:(j+1)*ps.Nx], ps.prev[1+(j+1)*w:1+(j+1)*w+ps.Nx])
	}
}

// Pressure returns a copy of the current relaxed pressure, index i + j*Nx.
func (ps *PressureSolver) Pressure() (p []float64) {
	p = make([]float64, ps.Nx*ps.Ny)
	ps.unpad(p)
	return
}

// Source is the right hand side of the last Solve, (rho/dt)*div, index
// i + j*Nx. It is overwritten by the next Solve.
func (ps *PressureSolver) Source() []float64 { return ps.rhs }

// Load sets the starting pressure for Relax, index i + j*Nx.
func (ps *PressureSolver) Load(p []float64) {
	var (
		w = ps.Nx + 2
	)
	for j := 0; j < ps.Ny; j++ {
		copy(ps.prev[1+(j+1)*w:], p[j*ps.Nx:(j+1)*ps.Nx])
	}
}
