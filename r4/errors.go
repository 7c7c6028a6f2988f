// Package r4 builds R4 schedules in three strictly ordered sub-steps:
// fixed commitments (research/CEP, FSE, pathway hard blocks), graduation
// deficiency fill, and capacity fill. Each sub-step locks cells the next
// must respect.
package r4

import "errors"

var ErrResearchCEPCapExceeded = errors.New("r4: research/CEP request exceeds the configured cap")
var ErrT32ResearchIneligible = errors.New("r4: T32 residents are ineligible for research/CEP months")
var ErrInsufficientBlocks = errors.New("r4: not enough open blocks remain for a hard commitment")
