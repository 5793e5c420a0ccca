package NavierStokes2D

// Snapshot is a copy of the published state at the end of a step, laid out
// for serialization. Each field is a list of rows, one per y sample.
type Snapshot struct {
	Title string      `json:"Title"`
	Step  int         `json:"Step"`
	Time  float64     `json:"Time"`
	Nx    int         `json:"Nx"`
	Ny    int         `json:"Ny"`
	H     float64     `json:"H"`
	U     [][]float64 `json:"U"`
	V     [][]float64 `json:"V"`
	P     [][]float64 `json:"P"`
}

func (c *NavierStokes) Snapshot() (s *Snapshot) {
	vw := c.View()
	geom := vw.Geometry()
	s = &Snapshot{
		Title: c.Title,
		Step:  c.steps,
		Time:  c.time,
		Nx:    geom.Nx,
		Ny:    geom.Ny,
		H:     geom.H,
		U:     rows(vw.U()),
		V:     rows(vw.V()),
		P:     rows(vw.P()),
	}
	return
}

func rows(fv FieldView) (R [][]float64) {
	var (
		nx, ny = fv.Shape()
		data   = fv.CopyData()
	)
	R = make([][]float64, ny)
	for j := range R {
		R[j] = data[j*nx : (j+1)*nx]
	}
	return
}
