// Package config centralizes the cross-phase tunables behind one Config
// struct, instead of scattering magic numbers across solver call sites.
package config

import "errors"

// ErrCOREBlockRequired indicates the pipeline was asked to run the R3
// Learning Center phase without Config.COREBlock set.
var ErrCOREBlockRequired = errors.New("config: CORE exam block must be set before running R3")

// Config holds every cross-phase tunable.
type Config struct {
	// TargetYear governs the block calendar: the Overview tab's
	// target-year cell.
	TargetYear int

	// COREBlock is the block number before which every rising R3 receives
	// LC. Zero means "unset"; the pipeline refuses to run the R3 Learning
	// Center phase without it.
	COREBlock int

	// AIRPCapacityMin / AIRPCapacityMax bound how many R3s may be assigned
	// to a single AIRP session.
	AIRPCapacityMin int
	AIRPCapacityMax int

	// R2DeficitPenaltyWeight is λ in the R2 matcher objective: minimize
	// Σ rank-cost + λ·Σ deficit_penalty. Kept small so preference rank
	// dominates the deficit term.
	R2DeficitPenaltyWeight float64

	// SoftPreferenceWeight is the weight of section top/bottom
	// preferences relative to graduation-deficit urgency in the R3 greedy
	// placement objective.
	SoftPreferenceWeight float64

	// NFMinSpacingWeeks overrides domain.DefaultNFRuleSet.MinSpacingWeeks
	// when non-zero.
	NFMinSpacingWeeks int

	// ResearchCEPCapMonths is the default research/CEP cap, liftable
	// per-resident via ResearchCEPSupplementaryFunding.
	ResearchCEPCapMonths int

	// FSEBreastMonths is the exact month count a breast FSE requires.
	FSEBreastMonths int

	// ESNRNeuroBlocks is the contiguous neuro window length for ESNR R4s.
	ESNRNeuroBlocks int

	// NRDRMnucBlocks / ESIRMirBlocks are the hard block counts for the
	// NRDR Mnuc sextet and ESIR Mir octet; named in blocks, not weeks
	// (each block is 4 weeks).
	NRDRMnucBlocks int
	ESIRMirBlocks  int
}

// DefaultConfig provides the standard tunables. TargetYear and COREBlock
// have no sensible default and are left zero; the pipeline must reject a
// run that has not set them (ErrCOREBlockRequired, domain.ErrCalendarYearUnset).
var DefaultConfig = Config{
	AIRPCapacityMin:        3,
	AIRPCapacityMax:        4,
	R2DeficitPenaltyWeight: 0.05,
	SoftPreferenceWeight:   0.1,
	NFMinSpacingWeeks:      4,
	ResearchCEPCapMonths:   2,
	FSEBreastMonths:        6,
	ESNRNeuroBlocks:        6,
	NRDRMnucBlocks:         6,
	ESIRMirBlocks:          8,
}

var active = DefaultConfig

// Set replaces the active configuration. Must be called once, before phase 1
// runs; the pipeline treats Config as immutable thereafter.
func Set(c Config) { active = c }

// Get returns the active configuration.
func Get() Config { return active }

// Validate checks the fields every phase unconditionally requires before the
// pipeline may start.
func (c Config) Validate() error {
	if c.COREBlock == 0 {
		return ErrCOREBlockRequired
	}
	return nil
}
