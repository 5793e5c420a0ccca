package InputParameters

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/macflow/types"
)

// Parameters obtained from the YAML input file
type InputParametersNS2D struct {
	Title                  string             `yaml:"Title"`
	Nx                     int                `yaml:"Nx"`
	Ny                     int                `yaml:"Ny"`
	CellSize               float64            `yaml:"CellSize"`
	Density                float64            `yaml:"Density"`
	Viscosity              float64            `yaml:"Viscosity"`
	Gravity                [2]float64         `yaml:"Gravity"`
	TimeStep               float64            `yaml:"TimeStep"`
	Steps                  int                `yaml:"Steps"`
	Boundary               string             `yaml:"Boundary"`
	MaxPressureIterations  int                `yaml:"MaxPressureIterations"`
	PressureTolerance      float64            `yaml:"PressureTolerance"`
	MaxDiffusionIterations int                `yaml:"MaxDiffusionIterations"`
	DiffusionTolerance     float64            `yaml:"DiffusionTolerance"`
	InitType               string             `yaml:"InitType"`
	InitialPressure        float64            `yaml:"InitialPressure"`
	InitParams             map[string]float64 `yaml:"InitParams"` // Parameters of the seeding rule, e.g. JetSpeed
	ParallelDegree         int                `yaml:"ParallelDegree"`
	ReportInterval         int                `yaml:"ReportInterval"`
}

// NewInputParametersNS2D returns the parameters used when a field is left out
// of the input file.
func NewInputParametersNS2D() *InputParametersNS2D {
	return &InputParametersNS2D{
		Title:                  "Untitled",
		Nx:                     32,
		Ny:                     32,
		CellSize:               1,
		Density:                1,
		TimeStep:               0.1,
		Steps:                  100,
		Boundary:               types.BC_NoSlip.String(),
		MaxPressureIterations:  10000,
		PressureTolerance:      1.e-5,
		MaxDiffusionIterations: 200,
		DiffusionTolerance:     1.e-8,
		InitType:               "zero",
		ParallelDegree:         1,
		ReportInterval:         10,
	}
}

// Parse overlays the YAML document onto ip, so fields absent from data keep
// their current values.
func (ip *InputParametersNS2D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// Validate rejects any configuration that cannot be stepped. It is called
// before the solver allocates its fields.
func (ip *InputParametersNS2D) Validate() (err error) {
	var problems []string
	positive := func(name string, val float64) {
		if !(val > 0) || math.IsInf(val, 0) {
			problems = append(problems, fmt.Sprintf("%s must be positive and finite, have %v", name, val))
		}
	}
	if ip.Nx < 1 || ip.Ny < 1 {
		problems = append(problems, fmt.Sprintf("grid dimensions must be at least 1x1, have %dx%d", ip.Nx, ip.Ny))
	}
	positive("CellSize", ip.CellSize)
	positive("Density", ip.Density)
	positive("TimeStep", ip.TimeStep)
	if ip.Viscosity < 0 || math.IsNaN(ip.Viscosity) || math.IsInf(ip.Viscosity, 0) {
		problems = append(problems, fmt.Sprintf("Viscosity must be non-negative and finite, have %v", ip.Viscosity))
	}
	for n, g := range ip.Gravity {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			problems = append(problems, fmt.Sprintf("Gravity[%d] must be finite, have %v", n, g))
		}
	}
	if ip.MaxPressureIterations < 1 {
		problems = append(problems, fmt.Sprintf("MaxPressureIterations must be at least 1, have %d", ip.MaxPressureIterations))
	}
	if ip.PressureTolerance < 0 || math.IsNaN(ip.PressureTolerance) {
		problems = append(problems, fmt.Sprintf("PressureTolerance must be non-negative, have %v", ip.PressureTolerance))
	}
	if ip.Viscosity > 0 && ip.MaxDiffusionIterations < 1 {
		problems = append(problems, fmt.Sprintf("MaxDiffusionIterations must be at least 1 with viscosity, have %d", ip.MaxDiffusionIterations))
	}
	for _, key := range ip.initParamKeys() {
		if val := ip.InitParams[key]; math.IsNaN(val) || math.IsInf(val, 0) {
			problems = append(problems, fmt.Sprintf("InitParams[%s] must be finite, have %v", key, val))
		}
	}
	if _, bcErr := types.NewBoundaryMode(ip.Boundary); bcErr != nil {
		problems = append(problems, bcErr.Error())
	}
	if len(problems) != 0 {
		err = fmt.Errorf("invalid input parameters: %s", strings.Join(problems, "; "))
	}
	return
}

func (ip *InputParametersNS2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d x %d]\t\t= Grid Cells\n", ip.Nx, ip.Ny)
	fmt.Printf("%8.5f\t\t= CellSize\n", ip.CellSize)
	fmt.Printf("%8.5f\t\t= TimeStep\n", ip.TimeStep)
	fmt.Printf("%8.5f\t\t= Density\n", ip.Density)
	fmt.Printf("%8.5f\t\t= Viscosity\n", ip.Viscosity)
	fmt.Printf("[%g, %g]\t\t= Gravity\n", ip.Gravity[0], ip.Gravity[1])
	fmt.Printf("[%s]\t= Boundary\n", ip.Boundary)
	fmt.Printf("[%d, %g]\t= Pressure Iterations, Tolerance\n", ip.MaxPressureIterations, ip.PressureTolerance)
	if ip.Viscosity > 0 {
		fmt.Printf("[%d, %g]\t= Diffusion Iterations, Tolerance\n", ip.MaxDiffusionIterations, ip.DiffusionTolerance)
	}
	fmt.Printf("[%s]\t\t= InitType\n", ip.InitType)
	for _, key := range ip.initParamKeys() {
		fmt.Printf("InitParams[%s] = %v\n", key, ip.InitParams[key])
	}
}

func (ip *InputParametersNS2D) initParamKeys() (keys []string) {
	keys = make([]string, 0, len(ip.InitParams))
	for k := range ip.InitParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}
