package NavierStokes2D

import (
	"fmt"
	"math"
	"strings"
)

type InitType uint

const (
	ZERO InitType = iota
	JET
	IMPULSE
	VORTEX
)

var (
	InitNames = map[string]InitType{
		"zero":    ZERO,
		"rest":    ZERO,
		"jet":     JET,
		"impulse": IMPULSE,
		"vortex":  VORTEX,
	}
	InitPrintNames = []string{"Fluid at rest", "Jet from the left wall", "Point impulse at the domain center", "Solid body vortex"}
)

func NewInitType(label string) (it InitType, err error) {
	var (
		ok bool
	)
	if len(label) == 0 {
		return ZERO, nil
	}
	label = strings.ToLower(label)
	if it, ok = InitNames[label]; !ok {
		err = fmt.Errorf("unable to use init type named %s", label)
	}
	return
}

func (it InitType) Print() string {
	if int(it) < len(InitPrintNames) {
		return InitPrintNames[it]
	}
	return fmt.Sprintf("InitType(%d)", uint(it))
}

/*
Parameters read from InitParams, with their defaults:

	JET:     JetSpeed 1, JetWidth 4, JetHeight 4 (cells)
	IMPULSE: ImpulseSpeed 1
	VORTEX:  VortexSpeed 1 (angular velocity), VortexRadius min(Nx,Ny)/4 (cells)
*/
func (it InitType) Seed(g *Grid, params map[string]float64, initialPressure float64) {
	param := func(name string, def float64) float64 {
		if val, ok := params[name]; ok {
			return val
		}
		return def
	}
	g.U.Zero()
	g.V.Zero()
	g.P.Fill(initialPressure)
	switch it {
	case ZERO:
	case JET:
		var (
			speed  = param("JetSpeed", 1)
			width  = cellCount(param("JetWidth", 4), g.Nx)
			height = cellCount(param("JetHeight", 4), g.Ny)
			j0     = max((g.Ny-height)/2, 0)
		)
		// Faces inside and on the right edge of the leftmost width cells
		for j := j0; j < min(j0+height, g.Ny); j++ {
			for i := 1; i <= min(width, g.Nx); i++ {
				g.U.Set(i, j, speed)
			}
		}
	case IMPULSE:
		g.V.Set(g.Nx/2, g.Ny/2, param("ImpulseSpeed", 1))
	case VORTEX:
		var (
			omega  = param("VortexSpeed", 1)
			radius = param("VortexRadius", float64(min(g.Nx, g.Ny))/4) * g.H
			ext    = g.Extent()
			xc, yc = 0.5 * ext[0], 0.5 * ext[1]
		)
		inside := func(x, y float64) bool { return math.Hypot(x-xc, y-yc) <= radius }
		for j := 0; j < g.U.Ny; j++ {
			for i := 0; i < g.U.Nx; i++ {
				if x, y := g.U.Position(i, j); inside(x, y) {
					g.U.Set(i, j, -omega*(y-yc))
				}
			}
		}
		for j := 0; j < g.V.Ny; j++ {
			for i := 0; i < g.V.Nx; i++ {
				if x, y := g.V.Position(i, j); inside(x, y) {
					g.V.Set(i, j, omega*(x-xc))
				}
			}
		}
	default:
		panic("unknown case type")
	}
}

// cellCount converts a block size read from the input file to a number of
// cells in [0, n].
func cellCount(val float64, n int) int {
	if !(val > 0) {
		return 0
	}
	return int(math.Min(val, float64(n)))
}
