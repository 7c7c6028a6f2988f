// Package pipeline orchestrates the nine build phases, in the strict order
// each phase's postcondition establishes the next phase's precondition:
// track derivation is folded into each builder call, then R1, R2, R3
// (AIRP, LC, deficiency placement, anchors), R4 (fixed commitments,
// deficiency fill, capacity fill), the night-float overlay, the sampler
// resolver, and finally the validator. Nothing here runs concurrently with
// anything else in this package; concurrency is an internal affair of
// individual phases (validate.Validate, validate.CheckStaffing).
package pipeline

import "errors"

// ErrCardinalityMismatch indicates the resident roster does not partition
// cleanly into the R1/R2/R3/R4 track cardinalities the run was configured
// with.
var ErrCardinalityMismatch = errors.New("pipeline: resident roster does not match configured track cardinalities")
