package types

import (
	"fmt"
	"strings"
)

// BCFLAG selects how the solid walls enclosing the domain treat velocity.
// Both modes block flow through the wall; they differ only in the tangential
// component.
type BCFLAG uint8

const (
	BC_NoSlip   BCFLAG = iota // tangential velocity is zero on the wall
	BC_FreeSlip               // tangential velocity is unconstrained
)

var BCNameMap = map[string]BCFLAG{
	"solid-no-slip":   BC_NoSlip,
	"no-slip":         BC_NoSlip,
	"noslip":          BC_NoSlip,
	"wall":            BC_NoSlip,
	"solid-free-slip": BC_FreeSlip,
	"free-slip":       BC_FreeSlip,
	"freeslip":        BC_FreeSlip,
	"slip":            BC_FreeSlip,
}

func (bc BCFLAG) String() string {
	switch bc {
	case BC_NoSlip:
		return "solid-no-slip"
	case BC_FreeSlip:
		return "solid-free-slip"
	}
	return fmt.Sprintf("BCFLAG(%d)", uint8(bc))
}

// NewBoundaryMode parses a boundary mode label, case insensitive. An empty
// label defaults to no-slip walls.
func NewBoundaryMode(label string) (bc BCFLAG, err error) {
	var ok bool
	if len(label) == 0 {
		return BC_NoSlip, nil
	}
	if bc, ok = BCNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown boundary mode %q, must be one of solid-no-slip, solid-free-slip", label)
	}
	return
}
