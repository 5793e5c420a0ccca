package NavierStokes2D

import (
	"context"
	"fmt"
	"time"

	"github.com/notargets/macflow/InputParameters"
	"github.com/notargets/macflow/types"
	"github.com/notargets/macflow/utils"
)

/*
NavierStokes advances an incompressible, viscous flow in a closed box.
Each step runs, strictly in order:
  - Advect: semi-Lagrangian transport of the velocity by itself
  - Forces: gravity and viscous diffusion, completing u*
  - walls on u*, so no fluid is drawn through them
  - Pressure: Jacobi solve of Laplacian(p) = (rho/dt) div(u*)
  - Project: u = u* - dt/rho grad(p)
  - walls on the published field
*/
type NavierStokes struct {
	// Input parameters
	Title          string
	Density        float64
	Viscosity      float64
	Gravity        [2]float64
	DT             float64
	Case           InitType
	ParallelDegree int
	ReportInterval int
	Verbose        bool
	PhaseHook      func(Phase) // For testing
	BC             *BoundaryEnforcer
	Advector       *Advector
	Forces         *Forces
	Pressure       *PressureSolver
	grid           *Grid // Read through View
	poisson        *PoissonOperator
	phase          Phase
	steps          int
	time           float64
	failure        error
}

type StepStats struct {
	Step             int
	Time             float64
	Pressure         PressureResult
	PressureResidual float64 // max |Laplacian(p) - (rho/dt) div(u*)|
	Diffusion        [2]DiffusionResult
	MaxDivergence    float64
	MaxSpeed         float64
	CFL              float64 // max trace speed * dt / h, accuracy only
}

// NewNavierStokes validates ip and allocates every field the run will use.
// Configuration errors are returned before anything is allocated.
func NewNavierStokes(ip *InputParameters.InputParametersNS2D, verbose bool) (c *NavierStokes, err error) {
	var (
		bc   types.BCFLAG
		geom = Geometry{Nx: ip.Nx, Ny: ip.Ny, H: ip.CellSize}
	)
	if err = ip.Validate(); err != nil {
		return
	}
	if bc, err = types.NewBoundaryMode(ip.Boundary); err != nil {
		return
	}
	c = &NavierStokes{
		Title:          ip.Title,
		Density:        ip.Density,
		Viscosity:      ip.Viscosity,
		Gravity:        ip.Gravity,
		DT:             ip.TimeStep,
		ParallelDegree: utils.LimitParallelDegree(ip.ParallelDegree, ip.Ny),
		ReportInterval: ip.ReportInterval,
		Verbose:        verbose,
		BC:             NewBoundaryEnforcer(bc),
	}
	if c.Case, err = NewInitType(ip.InitType); err != nil {
		return nil, err
	}
	if c.grid, err = NewGrid(geom); err != nil {
		return nil, err
	}
	c.poisson = NewPoissonOperator(geom)
	c.Advector = NewAdvector(geom, c.ParallelDegree)
	c.Forces = NewForces(geom, ip.Gravity, ip.Viscosity,
		ip.MaxDiffusionIterations, ip.DiffusionTolerance, c.ParallelDegree)
	c.Pressure = NewPressureSolver(geom, ip.MaxPressureIterations, ip.PressureTolerance,
		c.ParallelDegree, c.BC)

	c.Case.Seed(c.grid, ip.InitParams, ip.InitialPressure)
	c.BC.EnforceVelocity(c.grid)
	if err = c.checkFinite(); err != nil {
		return nil, err
	}

	if verbose {
		fmt.Printf("Incompressible Navier Stokes in 2 Dimensions, MAC grid\n")
		fmt.Printf("Using %d go routines in parallel\n", c.ParallelDegree)
		fmt.Printf("Solving %s\n", c.Case.Print())
		fmt.Printf("Walls: %s\n", c.BC.Mode)
		fmt.Printf("Grid = %d x %d, h = %8.5f, dt = %8.5f, rho = %8.5f, nu = %8.5f\n\n",
			geom.Nx, geom.Ny, geom.H, c.DT, c.Density, c.Viscosity)
	}
	return
}

func (c *NavierStokes) Phase() Phase { return c.phase }

func (c *NavierStokes) Steps() int { return c.steps }

func (c *NavierStokes) Time() float64 { return c.time }

// View is the published state. It reads the live fields, so it must not be
// used while a step is in flight.
func (c *NavierStokes) View() View { return c.grid.View() }

// Step advances the solution by one time step. A step is never partially
// applied from the caller's point of view. Once a non-finite value has been
// found every later call returns the same error.
func (c *NavierStokes) Step() (stats StepStats, err error) {
	var (
		g   = c.grid
		geo = g.Geometry
	)
	if c.failure != nil {
		return stats, c.failure
	}
	c.enter(Advecting)
	maxTrace := c.Advector.Advect(g, c.DT)

	c.enter(ApplyingForces)
	stats.Diffusion = c.Forces.Apply(g, c.DT)
	c.BC.EnforceVelocity(g)

	c.enter(PressureSolving)
	stats.Pressure = c.Pressure.Solve(g, c.DT, c.Density)
	stats.PressureResidual = c.poisson.Residual(g.P.Data(), c.Pressure.Source())

	c.enter(Projecting)
	Project(g.U, g.V, g.P, c.DT, c.Density)

	c.enter(EnforcingBoundary)
	c.BC.EnforceVelocity(g)
	c.enter(Idle)

	c.steps++
	c.time += c.DT
	stats.Step, stats.Time = c.steps, c.time
	stats.MaxDivergence = g.MaxDivergence()
	stats.MaxSpeed = g.MaxSpeed()
	stats.CFL = maxTrace * c.DT / geo.H
	if err = c.checkFinite(); err != nil {
		c.failure = err
	}
	return
}

func (c *NavierStokes) checkFinite() (err error) {
	for _, f := range []*Field{c.grid.U.Field, c.grid.V.Field, c.grid.P.Field} {
		if k := utils.FirstNonFinite(f.Data()); k >= 0 {
			return &InstabilityError{
				Step:  c.steps,
				Field: f.Name,
				I:     k % f.Nx,
				J:     k / f.Nx,
				Value: f.Data()[k],
			}
		}
	}
	return
}

// Solve runs steps time steps, or until ctx is done. Cancellation is only
// checked between steps.
func (c *NavierStokes) Solve(ctx context.Context, steps int) (stats StepStats, err error) {
	var (
		elapsed time.Duration
		start   time.Time
		taken   int
	)
	if c.Verbose {
		c.PrintInitialization(steps)
	}
	for taken < steps {
		if err = ctx.Err(); err != nil {
			break
		}
		start = time.Now()
		stats, err = c.Step()
		elapsed += time.Since(start)
		if err != nil {
			break
		}
		taken++
		if c.Verbose && (taken == 1 || taken == steps || (c.ReportInterval > 0 && taken%c.ReportInterval == 0)) {
			c.PrintUpdate(stats)
		}
	}
	if c.Verbose {
		c.PrintFinal(elapsed, taken, err)
	}
	return
}

func (c *NavierStokes) PrintInitialization(steps int) {
	fmt.Printf("Solving %d steps from time = %8.5f\n", steps, c.time)
	fmt.Printf("    step      time  p_iter   p_change    p_resid")
	fmt.Printf("    max_div  max_speed        CFL\n")
}

func (c *NavierStokes) PrintUpdate(stats StepStats) {
	format := "%11.4e"
	fmt.Printf("%8d%10.4f%8d", stats.Step, stats.Time, stats.Pressure.Iterations)
	fmt.Printf(format, stats.Pressure.MaxChange)
	fmt.Printf(format, stats.PressureResidual)
	fmt.Printf(format, stats.MaxDivergence)
	fmt.Printf(format, stats.MaxSpeed)
	fmt.Printf(format, stats.CFL)
	if !stats.Pressure.Converged {
		fmt.Printf("  (pressure not converged)")
	}
	fmt.Printf("\n")
}

func (c *NavierStokes) PrintFinal(elapsed time.Duration, steps int, err error) {
	if err != nil {
		fmt.Printf("\nStopped after %d steps: %s\n", steps, err.Error())
	}
	if steps == 0 {
		return
	}
	rate := float64(elapsed.Microseconds()) / float64(c.grid.Nx*c.grid.Ny*steps)
	fmt.Printf("\nRate of execution = %8.5f us/(cell*step) over %d steps\n", rate, steps)
	fmt.Printf("%s\n", utils.GetMemUsage())
}
