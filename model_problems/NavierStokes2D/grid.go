package NavierStokes2D

import (
	"fmt"
	"math"
)

// Geometry is fixed for the life of a run: Nx by Ny cells of side H.
type Geometry struct {
	Nx, Ny int
	H      float64
}

func (geom Geometry) Validate() (err error) {
	if geom.Nx < 1 || geom.Ny < 1 {
		return fmt.Errorf("grid must have at least one cell in each direction, have %dx%d", geom.Nx, geom.Ny)
	}
	if !(geom.H > 0) || math.IsInf(geom.H, 0) {
		return fmt.Errorf("cell spacing must be positive and finite, have %v", geom.H)
	}
	return
}

func (geom Geometry) Extent() [2]float64 {
	return [2]float64{float64(geom.Nx) * geom.H, float64(geom.Ny) * geom.H}
}

// Grid owns the three staggered fields. The solver is its only writer.
type Grid struct {
	Geometry
	U UField
	V VField
	P PField
}

func NewGrid(geom Geometry) (g *Grid, err error) {
	if err = geom.Validate(); err != nil {
		return
	}
	g = &Grid{
		Geometry: geom,
		U:        NewUField(geom),
		V:        NewVField(geom),
		P:        NewPField(geom),
	}
	return
}

// Velocity interpolates both velocity components at (x, y), each from its
// own staggered samples.
func (g *Grid) Velocity(x, y float64) (u, v float64) {
	return g.U.Sample(x, y), g.V.Sample(x, y)
}

// CellVelocity averages the face velocities of cell (i, j) to its center.
func (g *Grid) CellVelocity(i, j int) (u, v float64) {
	u = 0.5 * (g.U.At(i, j) + g.U.At(i+1, j))
	v = 0.5 * (g.V.At(i, j) + g.V.At(i, j+1))
	return
}

func (g *Grid) Divergence(i, j int) float64 {
	var (
		uD, vD = g.U.data, g.V.data
		nu     = g.Nx + 1
		ku     = i + j*nu
		kv     = i + j*g.Nx
	)
	if i < 0 || i >= g.Nx || j < 0 || j >= g.Ny {
		panic(fmt.Errorf("cell (%d,%d) out of bounds for %dx%d grid", i, j, g.Nx, g.Ny))
	}
	return (uD[ku+1]-uD[ku])/g.H + (vD[kv+g.Nx]-vD[kv])/g.H
}

// DivergenceInto fills div, length Nx*Ny with index i + j*Nx, with the
// divergence of every cell.
func (g *Grid) DivergenceInto(div []float64) {
	var (
		uD, vD = g.U.data, g.V.data
		nx, nu = g.Nx, g.Nx + 1
		oh     = 1. / g.H
	)
	for j := 0; j < g.Ny; j++ {
		for i := 0; i < nx; i++ {
			ku, kv := i+j*nu, i+j*nx
			div[i+j*nx] = (uD[ku+1]-uD[ku])*oh + (vD[kv+nx]-vD[kv])*oh
		}
	}
}

func (g *Grid) MaxDivergence() (maxDiv float64) {
	for j := 0; j < g.Ny; j++ {
		for i := 0; i < g.Nx; i++ {
			maxDiv = math.Max(maxDiv, math.Abs(g.Divergence(i, j)))
		}
	}
	return
}

// MaxSpeed is the largest cell-centered velocity magnitude.
func (g *Grid) MaxSpeed() (maxSpeed float64) {
	for j := 0; j < g.Ny; j++ {
		for i := 0; i < g.Nx; i++ {
			u, v := g.CellVelocity(i, j)
			maxSpeed = math.Max(maxSpeed, math.Hypot(u, v))
		}
	}
	return
}

// View is the published, read-only state of a grid.
type View struct {
	g *Grid
}

func (g *Grid) View() View { return View{g} }

func (vw View) Geometry() Geometry { return vw.g.Geometry }
func (vw View) U() FieldView       { return FieldView{vw.g.U.Field} }
func (vw View) V() FieldView       { return FieldView{vw.g.V.Field} }
func (vw View) P() FieldView       { return FieldView{vw.g.P.Field} }

func (vw View) Velocity(x, y float64) (u, v float64) { return vw.g.Velocity(x, y) }

func (vw View) CellVelocity(i, j int) (u, v float64) { return vw.g.CellVelocity(i, j) }

func (vw View) Divergence(i, j int) float64 { return vw.g.Divergence(i, j) }
