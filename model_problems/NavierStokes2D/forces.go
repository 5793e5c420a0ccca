package NavierStokes2D

import (
	"math"

	"github.com/notargets/macflow/utils"
)

// Forces applies gravity and viscous diffusion to the advected velocity,
// completing the intermediate field handed to the pressure solve.
type Forces struct {
	Gravity       [2]float64
	Viscosity     float64
	MaxIterations int
	Tolerance     float64
	uStar, uWork  UField
	vStar, vWork  VField
	uRows, vRows  *utils.PartitionMap
	maxChange     []float64
}

type DiffusionResult struct {
	Iterations int
	MaxChange  float64
}

func NewForces(geom Geometry, gravity [2]float64, viscosity float64,
	maxIterations int, tolerance float64, parallelDegree int) (fc *Forces) {
	fc = &Forces{
		Gravity:       gravity,
		Viscosity:     viscosity,
		MaxIterations: maxIterations,
		Tolerance:     tolerance,
	}
	if viscosity > 0 {
		fc.uStar, fc.uWork = NewUField(geom), NewUField(geom)
		fc.vStar, fc.vWork = NewVField(geom), NewVField(geom)
		fc.uRows = utils.NewPartitionMap(utils.LimitParallelDegree(parallelDegree, geom.Ny), geom.Ny)
		fc.vRows = utils.NewPartitionMap(utils.LimitParallelDegree(parallelDegree, geom.Ny+1), geom.Ny+1)
		fc.maxChange = make([]float64, max(fc.uRows.ParallelDegree, fc.vRows.ParallelDegree))
	}
	return
}

func (fc *Forces) Apply(g *Grid, dt float64) (res [2]DiffusionResult) {
	fc.applyGravity(g, dt)
	if fc.Viscosity > 0 {
		res[0] = fc.diffuse(g.U.Field, fc.uStar.Field, fc.uWork.Field, fc.uRows, 1, g.Nx, 0, g.Ny, dt)
		res[1] = fc.diffuse(g.V.Field, fc.vStar.Field, fc.vWork.Field, fc.vRows, 0, g.Nx, 1, g.Ny, dt)
	}
	return
}

func (fc *Forces) applyGravity(g *Grid, dt float64) {
	var (
		gx, gy = fc.Gravity[0] * dt, fc.Gravity[1] * dt
	)
	if gx != 0 {
		for j := 0; j < g.Ny; j++ {
			for i := 1; i < g.Nx; i++ {
				g.U.Add(i, j, gx)
			}
		}
	}
	if gy != 0 {
		for j := 1; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				g.V.Add(i, j, gy)
			}
		}
	}
}

/*
diffuse solves (1 - nu*dt*Laplacian) q = q* for the samples with
iMin <= i < iMax and jMin <= j < jMax by Jacobi iteration:

	q'(i,j) = (q*(i,j) + a*(qE + qW + qN + qS)) / (1 + 4a),  a = nu*dt/h^2

Neighbours outside the field come from the ghost rule, so no-slip walls pull
the tangential velocity towards zero and free-slip walls do not. Samples
outside the solve range, the wall faces, are held fixed.
*/
func (fc *Forces) diffuse(f, star, work *Field, rows *utils.PartitionMap,
	iMin, iMax, jMin, jMax int, dt float64) (res DiffusionResult) {
	var (
		a     = fc.Viscosity * dt / (f.H * f.H)
		denom = 1 + 4*a
		src   = f
		dst   = work
	)
	star.CopyFrom(f)
	work.CopyFrom(f)
	for it := 1; it <= fc.MaxIterations; it++ {
		rows.Run(func(np, rMin, rMax int) {
			var maxChange float64
			for j := max(rMin, jMin); j < min(rMax, jMax); j++ {
				for i := iMin; i < iMax; i++ {
					nbr := src.ghostAt(i+1, j) + src.ghostAt(i-1, j) + src.ghostAt(i, j+1) + src.ghostAt(i, j-1)
					k := i + j*f.Nx
					q := (star.data[k] + a*nbr) / denom
					maxChange = math.Max(maxChange, math.Abs(q-src.data[k]))
					dst.data[k] = q
				}
			}
			fc.maxChange[np] = maxChange
		})
		res.Iterations, res.MaxChange = it, 0
		for np := 0; np < rows.ParallelDegree; np++ {
			res.MaxChange = math.Max(res.MaxChange, fc.maxChange[np])
		}
		src, dst = dst, src
		if res.MaxChange < fc.Tolerance || res.MaxChange == 0 {
			break
		}
	}
	if src != f {
		f.CopyFrom(src)
	}
	return
}
