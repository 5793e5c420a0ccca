package NavierStokes2D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

/*
Storage layout for every field on the MAC grid:
  - one row per sample in y, one column per sample in x
  - sample (i, j) is x index i, y index j and lives at data[i + j*Nx]
  - sample (i, j) sits at ((i+Offset[0])*H, (j+Offset[1])*H)

Pressure sits at cell centers, u on the vertical faces and v on the
horizontal faces, so the three fields have different shapes and offsets.
*/
type Field struct {
	Name   string
	M      *mat.Dense
	Nx, Ny int        // Number of samples in x and y
	H      float64    // Cell spacing
	Offset [2]float64 // Position of sample (0,0) in cell units
	Extent [2]float64 // Domain width and height, sampling clamps to [0, Extent]
	Cells  [2]int     // Domain size in cells
	Ghost  [2]float64 // Sign applied to the edge sample when sampling beyond the last row/column in x, y
	data   []float64
}

func newField(name string, nx, ny int, geom Geometry, offset [2]float64) (f *Field) {
	f = &Field{
		Name:   name,
		M:      mat.NewDense(ny, nx, nil),
		Nx:     nx,
		Ny:     ny,
		H:      geom.H,
		Offset: offset,
		Extent: geom.Extent(),
		Cells:  [2]int{geom.Nx, geom.Ny},
		Ghost:  [2]float64{1, 1},
	}
	f.data = f.M.RawMatrix().Data
	return
}

// UField holds horizontal velocity on the vertical cell faces, (Nx+1) x Ny.
type UField struct{ *Field }

// VField holds vertical velocity on the horizontal cell faces, Nx x (Ny+1).
type VField struct{ *Field }

// PField holds pressure at the cell centers, Nx x Ny.
type PField struct{ *Field }

func NewUField(geom Geometry) UField {
	return UField{newField("u", geom.Nx+1, geom.Ny, geom, [2]float64{0, 0.5})}
}

func NewVField(geom Geometry) VField {
	return VField{newField("v", geom.Nx, geom.Ny+1, geom, [2]float64{0.5, 0})}
}

func NewPField(geom Geometry) PField {
	return PField{newField("p", geom.Nx, geom.Ny, geom, [2]float64{0.5, 0.5})}
}

func (f *Field) Shape() (nx, ny int) { return f.Nx, f.Ny }

// Data is the row-major backing store, index i + j*Nx.
func (f *Field) Data() []float64 { return f.data }

func (f *Field) Index(i, j int) int {
	if i < 0 || i >= f.Nx || j < 0 || j >= f.Ny {
		panic(fmt.Errorf("index (%d,%d) out of bounds for field %s with shape %dx%d", i, j, f.Name, f.Nx, f.Ny))
	}
	return i + j*f.Nx
}

func (f *Field) At(i, j int) float64 { return f.data[f.Index(i, j)] }

func (f *Field) Set(i, j int, val float64) { f.data[f.Index(i, j)] = val }

func (f *Field) Add(i, j int, val float64) { f.data[f.Index(i, j)] += val }

func (f *Field) Position(i, j int) (x, y float64) {
	x = (float64(i) + f.Offset[0]) * f.H
	y = (float64(j) + f.Offset[1]) * f.H
	return
}

// CopyFrom copies the samples and ghost rule of src, which must have the same shape.
func (f *Field) CopyFrom(src *Field) {
	if src.Nx != f.Nx || src.Ny != f.Ny {
		panic(fmt.Errorf("shape mismatch copying %s %dx%d into %s %dx%d",
			src.Name, src.Nx, src.Ny, f.Name, f.Nx, f.Ny))
	}
	copy(f.data, src.data)
	f.Ghost = src.Ghost
}

func (f *Field) Fill(val float64) {
	for i := range f.data {
		f.data[i] = val
	}
}

func (f *Field) Zero() { f.Fill(0) }

func (f *Field) MaxAbs() float64 { return floats.Norm(f.data, math.Inf(1)) }

// ghostAt reads sample (i, j), allowing indices one past either end in
// each direction. A missing sample is the nearest stored one times the ghost
// sign for that axis.
func (f *Field) ghostAt(i, j int) float64 {
	sign := 1.
	if i < 0 {
		i, sign = 0, sign*f.Ghost[0]
	} else if i >= f.Nx {
		i, sign = f.Nx-1, sign*f.Ghost[0]
	}
	if j < 0 {
		j, sign = 0, sign*f.Ghost[1]
	} else if j >= f.Ny {
		j, sign = f.Ny-1, sign*f.Ghost[1]
	}
	return sign * f.data[i+j*f.Nx]
}

// Sample bilinearly interpolates the field at (x, y). The position is
// clamped to the domain first. Sampling at a stored sample position returns
// that sample unchanged.
func (f *Field) Sample(x, y float64) float64 {
	var (
		fx, fy = f.fractionalIndex(x, 0), f.fractionalIndex(y, 1)
		i0, j0 = int(math.Floor(fx)), int(math.Floor(fy))
		tx, ty = fx - float64(i0), fy - float64(j0)
	)
	// Interpolate along x first, so a ghost row that negates its neighbour
	// cancels exactly on the wall
	r0 := (1-tx)*f.ghostAt(i0, j0) + tx*f.ghostAt(i0+1, j0)
	r1 := (1-tx)*f.ghostAt(i0, j0+1) + tx*f.ghostAt(i0+1, j0+1)
	return (1-ty)*r0 + ty*r1
}

func (f *Field) fractionalIndex(pos float64, axis int) (fi float64) {
	switch {
	case !(pos > 0): // NaN lands on the low wall
		return -f.Offset[axis]
	case pos >= f.Extent[axis]:
		return float64(f.Cells[axis]) - f.Offset[axis]
	}
	fi = pos/f.H - f.Offset[axis]
	// Positions computed as (i+offset)*h do not always divide back to an
	// exact integer
	if r := math.Round(fi); math.Abs(fi-r) < sampleSnap {
		fi = r
	}
	return
}

const sampleSnap = 1.e-10

// FieldView is a read-only view of one field, for renderers and other
// consumers of the published state. As a mat.Matrix, rows are y samples and
// columns are x samples.
type FieldView struct {
	f *Field
}

func (fv FieldView) Dims() (r, c int)       { return fv.f.M.Dims() }
func (fv FieldView) At(r, c int) float64    { return fv.f.M.At(r, c) }
func (fv FieldView) T() mat.Matrix          { return mat.Transpose{Matrix: fv} }
func (fv FieldView) Name() string           { return fv.f.Name }
func (fv FieldView) Shape() (nx, ny int)    { return fv.f.Shape() }
func (fv FieldView) Value(i, j int) float64 { return fv.f.At(i, j) }
func (fv FieldView) Sample(x, y float64) float64 {
	return fv.f.Sample(x, y)
}
func (fv FieldView) Position(i, j int) (x, y float64) { return fv.f.Position(i, j) }

// CopyData returns a copy of the row-major samples.
func (fv FieldView) CopyData() (data []float64) {
	data = make([]float64, len(fv.f.data))
	copy(data, fv.f.data)
	return
}
