// Package track derives junior-year rotation sequences from a short base
// sequence: a 52-week track is a pure function of (base sequence, track
// index), never stored explicitly, and cached per catalog for reuse across
// R1/R2 assignment.
//
// Errors:
//
//	ErrEmptyBaseSequence - base sequence has zero entries.
//	ErrInvalidTrackIndex - track index is outside [1, N].
//	ErrInvalidBlock      - block number is outside [1, 13].
package track

import "errors"

var (
	// ErrEmptyBaseSequence indicates a track catalog was built from a base
	// sequence with no entries.
	ErrEmptyBaseSequence = errors.New("track: base sequence is empty")

	// ErrInvalidTrackIndex indicates a derivation was requested for a track
	// index outside [1, N].
	ErrInvalidTrackIndex = errors.New("track: track index out of range")

	// ErrInvalidBlock indicates a derivation was requested for a block
	// number outside [1, 13].
	ErrInvalidBlock = errors.New("track: block number out of range")
)
