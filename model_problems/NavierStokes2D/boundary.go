package NavierStokes2D

import (
	"math"

	"github.com/notargets/macflow/types"
)

/*
The domain is enclosed by solid walls on all four sides.
  - Normal velocity is stored on the wall faces and forced to zero.
  - Tangential velocity is not stored on the walls. It is represented by
    a ghost sample past the wall: the negated neighbour for no-slip, so
    the value sampled on the wall is zero, or the neighbour itself for
    free-slip.
  - Pressure has a zero normal gradient, the ghost ring of the padded
    pressure buffer mirrors the adjacent interior cell.
*/
type BoundaryEnforcer struct {
	Mode types.BCFLAG
}

func NewBoundaryEnforcer(mode types.BCFLAG) *BoundaryEnforcer {
	return &BoundaryEnforcer{Mode: mode}
}

func (be *BoundaryEnforcer) tangentialGhost() float64 {
	if be.Mode == types.BC_NoSlip {
		return -1
	}
	return 1
}

func (be *BoundaryEnforcer) EnforceVelocity(g *Grid) {
	var (
		nx, ny = g.Nx, g.Ny
		uD, vD = g.U.data, g.V.data
		nu     = nx + 1
	)
	for j := 0; j < ny; j++ {
		uD[j*nu] = 0
		uD[nx+j*nu] = 0
	}
	for i := 0; i < nx; i++ {
		vD[i] = 0
		vD[i+ny*nx] = 0
	}
	tg := be.tangentialGhost()
	g.U.Ghost = [2]float64{1, tg}
	g.V.Ghost = [2]float64{tg, 1}
	g.P.Ghost = [2]float64{1, 1}
}

// MirrorPressure fills the ghost ring of a padded (nx+2) x (ny+2) pressure
// buffer from the adjacent interior cells. Corners are never read.
func (be *BoundaryEnforcer) MirrorPressure(buf []float64, nx, ny int) {
	var (
		w = nx + 2
	)
	for j := 1; j <= ny; j++ {
		buf[j*w] = buf[1+j*w]
		buf[nx+1+j*w] = buf[nx+j*w]
	}
	for i := 1; i <= nx; i++ {
		buf[i] = buf[i+w]
		buf[i+(ny+1)*w] = buf[i+ny*w]
	}
}

// MaxWallVelocity reports the largest normal velocity stored on the walls
// and the largest tangential velocity sampled along them.
func (be *BoundaryEnforcer) MaxWallVelocity(g *Grid) (normal, tangential float64) {
	var (
		nx, ny = g.Nx, g.Ny
		ext    = g.Extent()
	)
	for j := 0; j < ny; j++ {
		normal = math.Max(normal, math.Max(math.Abs(g.U.At(0, j)), math.Abs(g.U.At(nx, j))))
		_, y := g.V.Position(0, j)
		y += 0.5 * g.H
		tangential = math.Max(tangential, math.Abs(g.V.Sample(0, y)))
		tangential = math.Max(tangential, math.Abs(g.V.Sample(ext[0], y)))
	}
	for i := 0; i < nx; i++ {
		normal = math.Max(normal, math.Max(math.Abs(g.V.At(i, 0)), math.Abs(g.V.At(i, ny))))
		x, _ := g.U.Position(i, 0)
		x += 0.5 * g.H
		tangential = math.Max(tangential, math.Abs(g.U.Sample(x, 0)))
		tangential = math.Max(tangential, math.Abs(g.U.Sample(x, ext[1])))
	}
	return
}
