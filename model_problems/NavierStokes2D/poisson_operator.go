package NavierStokes2D

import (
	"math"

	"github.com/james-bowman/sparse"
)

// PoissonOperator is the discrete Laplacian the Jacobi sweeps relax against,
// assembled as a sparse matrix: the 5-point stencil on cell centers with a
// zero normal gradient at the walls. Unknown k is cell i + j*Nx. The solver
// uses it to report the residual of each pressure solve.
type PoissonOperator struct {
	Geometry
	A *sparse.CSR
}

func NewPoissonOperator(geom Geometry) (po *PoissonOperator) {
	var (
		nx, ny = geom.Nx, geom.Ny
		N      = nx * ny
		oh2    = 1. / (geom.H * geom.H)
		dok    = sparse.NewDOK(N, N)
	)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			var (
				k    = i + j*nx
				diag float64
			)
			for _, nbr := range [4][2]int{{i + 1, j}, {i - 1, j}, {i, j + 1}, {i, j - 1}} {
				ii, jj := nbr[0], nbr[1]
				if ii < 0 || ii >= nx || jj < 0 || jj >= ny {
					continue // Mirrored ghost, contributes nothing
				}
				dok.Set(k, ii+jj*nx, oh2)
				diag -= oh2
			}
			dok.Set(k, k, diag)
		}
	}
	po = &PoissonOperator{
		Geometry: geom,
		A:        dok.ToCSR(),
	}
	return
}

// Apply returns A*p.
func (po *PoissonOperator) Apply(p []float64) (Ap []float64) {
	Ap = make([]float64, po.Nx*po.Ny)
	for k := range Ap {
		Ap[k] = po.row(k, p)
	}
	return
}

// Residual is the largest |(A*p)_k - rhs_k| over all cells.
func (po *PoissonOperator) Residual(p, rhs []float64) (res float64) {
	for k := range rhs {
		res = math.Max(res, math.Abs(po.row(k, p)-rhs[k]))
	}
	return
}

func (po *PoissonOperator) row(k int, p []float64) (sum float64) {
	raw := po.A.RawMatrix()
	for n := raw.Indptr[k]; n < raw.Indptr[k+1]; n++ {
		sum += raw.Data[n] * p[raw.Ind[n]]
	}
	return
}
