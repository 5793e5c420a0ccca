package NavierStokes2D

import "fmt"

// Phase is the stage of the step in flight. Callers between steps only ever
// see Idle.
type Phase uint8

const (
	Idle Phase = iota
	Advecting
	ApplyingForces
	PressureSolving
	Projecting
	EnforcingBoundary
)

var (
	phaseNames = []string{"Idle", "Advecting", "ApplyingForces", "PressureSolving", "Projecting", "EnforcingBoundary"}
	// The only legal successor of each phase
	nextPhase = map[Phase]Phase{
		Idle:              Advecting,
		Advecting:         ApplyingForces,
		ApplyingForces:    PressureSolving,
		PressureSolving:   Projecting,
		Projecting:        EnforcingBoundary,
		EnforcingBoundary: Idle,
	}
)

func (ph Phase) String() string {
	if int(ph) < len(phaseNames) {
		return phaseNames[ph]
	}
	return fmt.Sprintf("Phase(%d)", uint8(ph))
}

func (c *NavierStokes) enter(ph Phase) {
	if nextPhase[c.phase] != ph {
		panic(fmt.Errorf("illegal phase transition %s -> %s", c.phase, ph))
	}
	c.phase = ph
	if c.PhaseHook != nil {
		c.PhaseHook(ph)
	}
}
