package NavierStokes2D

import (
	"math"

	"github.com/notargets/macflow/utils"
)

/*
Semi-Lagrangian advection of the velocity field by itself:
  - every sample position x is traced back to x - dt*vel(x), where vel
    interpolates both components at x
  - the pre-step component is sampled at the traced position
  - results go to scratch fields, the authoritative fields are only
    overwritten once the whole sweep is complete

Wall faces carry the normal velocity and are left to the boundary enforcer.
*/
type Advector struct {
	uNew     UField
	vNew     VField
	uRows    *utils.PartitionMap
	vRows    *utils.PartitionMap
	maxSpeed []float64 // One for each partition
}

func NewAdvector(geom Geometry, parallelDegree int) (a *Advector) {
	a = &Advector{
		uNew:  NewUField(geom),
		vNew:  NewVField(geom),
		uRows: utils.NewPartitionMap(utils.LimitParallelDegree(parallelDegree, geom.Ny), geom.Ny),
		vRows: utils.NewPartitionMap(utils.LimitParallelDegree(parallelDegree, geom.Ny+1), geom.Ny+1),
	}
	np := a.uRows.ParallelDegree
	if a.vRows.ParallelDegree > np {
		np = a.vRows.ParallelDegree
	}
	a.maxSpeed = make([]float64, np)
	return
}

// Advect replaces g.U and g.V with the advected intermediate velocity and
// returns the largest trace speed seen, for CFL reporting.
func (a *Advector) Advect(g *Grid, dt float64) (maxSpeed float64) {
	var (
		nx, ny = g.Nx, g.Ny
	)
	a.uNew.CopyFrom(g.U.Field)
	a.vNew.CopyFrom(g.V.Field)
	for n := range a.maxSpeed {
		a.maxSpeed[n] = 0
	}
	a.uRows.Run(func(np, jMin, jMax int) {
		for j := jMin; j < jMax; j++ {
			for i := 1; i < nx; i++ {
				a.uNew.Set(i, j, a.trace(g, g.U.Field, i, j, dt, np))
			}
		}
	})
	a.vRows.Run(func(np, jMin, jMax int) {
		for j := jMin; j < jMax; j++ {
			if j == 0 || j == ny {
				continue
			}
			for i := 0; i < nx; i++ {
				a.vNew.Set(i, j, a.trace(g, g.V.Field, i, j, dt, np))
			}
		}
	})
	g.U.CopyFrom(a.uNew.Field)
	g.V.CopyFrom(a.vNew.Field)
	for _, s := range a.maxSpeed {
		maxSpeed = math.Max(maxSpeed, s)
	}
	return
}

func (a *Advector) trace(g *Grid, f *Field, i, j int, dt float64, np int) float64 {
	x, y := f.Position(i, j)
	u, v := g.Velocity(x, y)
	a.maxSpeed[np] = math.Max(a.maxSpeed[np], math.Hypot(u, v))
	return f.Sample(x-dt*u, y-dt*v)
}
