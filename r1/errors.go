// Package r1 produces the trivial R1-to-track bijection and writes each
// track's sampler placeholder cells (Msamp) into the grid. The assignment
// itself is unconstrained — every bijection is hard-feasible — so the only
// optimization available is a weak objective bump toward sampler cells
// falling in under-staffed sections when a resident expressed a sampler
// preference.
package r1

import "errors"

// ErrResidentTrackMismatch indicates the number of R1 residents does not
// equal the number of R1 tracks, which the trivial bijection requires.
var ErrResidentTrackMismatch = errors.New("r1: resident count does not match track count")
