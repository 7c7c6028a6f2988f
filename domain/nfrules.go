package domain

// NFRuleSet is the night-float rule set: per-PGY weekly counts and shift
// kinds, minimum spacing, preferred source rotations, and the no-call
// exclusion. A single package-level DefaultNFRuleSet captures the standard
// numbers; a driver may override it via Config if a given academic year's
// rules differ.
type NFRuleSet struct {
	// CountByPGYKind[pgy][kind] is the exact (or, for R3, maximum — see
	// MaxTotal) required count of that NF kind for residents at that PGY.
	CountByPGYKind map[int]map[NightFloatKind]int

	// MaxTotal caps the *combined* count across all kinds for a PGY; zero
	// means "no combined cap, only per-kind counts apply." R3 uses this
	// (at most 3 total across {Mnf, Snf2}) instead of an exact per-kind
	// count.
	MaxTotal map[int]int

	// MinSpacingWeeks is the minimum week gap between any two NF weeks for
	// the same resident.
	MinSpacingWeeks int

	// SourceRotations lists the rotations NF pulls preferentially from:
	// residents on these are preferred sources, encoded as a reward
	// in the solver objective rather than a hard constraint.
	SourceRotations []string
}

// DefaultNFRuleSet is the standard night-float rule set:
//   - R2: exactly 2 weeks of Mnf.
//   - R3: at most 3 weeks total across {Mnf, Snf2}.
//   - R4: exactly 2 weeks of Snf2.
//   - Minimum spacing: 4 weeks.
//   - Preferred sources: {Pcmb, Mb, Mucic, Peds, Mnuc}.
var DefaultNFRuleSet = NFRuleSet{
	CountByPGYKind: map[int]map[NightFloatKind]int{
		2: {Mnf: 2},
		4: {Snf2: 2},
	},
	MaxTotal:        map[int]int{3: 3},
	MinSpacingWeeks: 4,
	SourceRotations: []string{CodePcmb, CodeMb, CodeMucic, CodePeds, CodeMnuc},
}

// IsSourceRotation reports whether code is a preferred NF source rotation.
func (n NFRuleSet) IsSourceRotation(code string) bool {
	for _, c := range n.SourceRotations {
		if c == code {
			return true
		}
	}
	return false
}

// RequiredCount returns the exact required count of kind for a PGY, or
// (0, false) when no exact per-kind rule applies (e.g. R3, which is governed
// by MaxTotal instead).
func (n NFRuleSet) RequiredCount(pgy int, kind NightFloatKind) (int, bool) {
	byKind, ok := n.CountByPGYKind[pgy]
	if !ok {
		return 0, false
	}
	c, ok := byKind[kind]
	return c, ok
}
