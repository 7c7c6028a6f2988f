// Package r3 builds individualized R3 schedules in four strictly ordered
// sub-steps, each locking cells the next must respect: AIRP session
// assignment, Learning Center placement, graduation-requirement placement,
// and a final anchors pass that carries forward any cell left unfilled.
package r3

import "errors"

// ErrAIRPCapacityInfeasible indicates the AIRP session count/capacity bounds
// cannot admit every R3 (resident count above sessions × max capacity, or
// below sessions × min capacity).
var ErrAIRPCapacityInfeasible = errors.New("r3: AIRP session capacity cannot admit every resident")

// ErrCOREBlockUnset indicates the Learning Center phase ran without
// config.Config.COREBlock set.
var ErrCOREBlockUnset = errors.New("r3: CORE exam block not configured")
