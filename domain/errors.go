// Package domain defines the residency scheduling data model: residents,
// rotation codes, sections, hospital systems, the schedule grid, the block
// calendar, graduation requirement tables, staffing envelopes, and the
// night-float rule set. It is the shared vocabulary every solver phase reads
// and writes; nothing in this package talks to a workbook or a survey file
// (see package external for those boundaries).
package domain

import "errors"

// Sentinel errors for domain model operations. Callers branch on these via
// errors.Is; messages are not part of the contract.
var (
	// ErrEmptyResidentName indicates a Resident was constructed with no name key.
	ErrEmptyResidentName = errors.New("domain: resident name is empty")

	// ErrUnknownRotation indicates a rotation code was referenced that is not
	// present in the rotation catalog.
	ErrUnknownRotation = errors.New("domain: unknown rotation code")

	// ErrDuplicateResident indicates two residents were registered under the
	// same name key.
	ErrDuplicateResident = errors.New("domain: duplicate resident name")

	// ErrPGYIneligible indicates a rotation's eligible-PGY set does not contain
	// the target resident's future PGY.
	ErrPGYIneligible = errors.New("domain: rotation not eligible for resident PGY")

	// ErrWeekOutOfRange indicates a week index fell outside [0, 52).
	ErrWeekOutOfRange = errors.New("domain: week index out of range")

	// ErrBlockOutOfRange indicates a block number fell outside [1, 13].
	ErrBlockOutOfRange = errors.New("domain: block number out of range")

	// ErrCellLocked indicates a write targeted a cell already locked by an
	// earlier phase (see Grid.Lock / Grid.Set).
	ErrCellLocked = errors.New("domain: cell locked by a prior phase")

	// ErrCellOccupied indicates a write targeted a cell that already holds a
	// rotation code and the caller did not request an overwrite.
	ErrCellOccupied = errors.New("domain: cell already assigned")

	// ErrInvalidEnvelope indicates a staffing envelope entry has min > max or
	// a negative bound.
	ErrInvalidEnvelope = errors.New("domain: invalid staffing envelope bounds")

	// ErrCOREBlockUnset indicates Config.COREBlock was not provided before a
	// phase that requires it (R3 Learning Center placement).
	ErrCOREBlockUnset = errors.New("domain: CORE exam block not configured")

	// ErrUnknownResident indicates a grid or roster operation referenced a
	// resident name that was never registered.
	ErrUnknownResident = errors.New("domain: unknown resident")
)
