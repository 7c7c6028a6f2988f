package r3

import "radsched/internal/obslog"

// Anchors reports residents left with a remaining deficit after placement,
// carrying their unfilled weeks forward as explicit anchors for a later
// phase or human review rather than silently dropping them. In practice this
// is empty for a well-formed R3 cohort; a non-empty result signals the
// placement engine ran out of feasible blocks before exhausting a deficit.
func Anchors(remaining map[string]map[Section]int, logger obslog.Logger) map[string]map[Section]int {
	if logger == nil {
		logger = obslog.Nop{}
	}
	out := make(map[string]map[Section]int)
	for name, byScn := range remaining {
		for section, weeks := range byScn {
			if weeks <= 0 {
				continue
			}
			if out[name] == nil {
				out[name] = map[Section]int{}
			}
			out[name][section] = weeks
		}
	}
	if len(out) > 0 {
		logger.Warn("r3", "unfilled graduation deficit carried forward", obslog.Fields{"residents": len(out)})
	}
	return out
}
