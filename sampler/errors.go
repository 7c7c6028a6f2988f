// Package sampler resolves every R1 Msamp placeholder block into its final
// rotation sequence once the night-float overlay is known, so the four-week
// allocation can be ordered to fill the coverage gap NF pulls create.
package sampler

import "errors"

// ErrMalformedRun indicates an Msamp placeholder run was not exactly four
// contiguous weeks, which the sampler resolution rule requires.
var ErrMalformedRun = errors.New("sampler: Msamp run is not exactly four contiguous weeks")
