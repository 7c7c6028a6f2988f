package r1

import (
	"radsched/domain"
	"radsched/internal/obslog"
	"radsched/track"
)

// Result is the outcome of an R1 assignment run.
type Result struct {
	// Assignment maps resident name to track index (1-based).
	Assignment map[string]int
	// ObjectiveScore counts, over residents with a sampler preference, the
	// Msamp blocks on their track where the preferred code's envelope has no
	// upper bound or at most one slot of headroom; higher is better. Purely
	// informational — every bijection is feasible regardless of score.
	ObjectiveScore int
}

// Assign builds the trivial R1-to-track bijection, weakly preferring
// bijections that route a resident expressing a sampler preference into a
// track whose Msamp block falls in an under-staffed section, then commits
// every derived cell to grid and locks it under phase "r1".
//
// residents and cat must have matching cardinality (R1s == R1 tracks); this
// is a hard precondition of the trivial bijection, not a constraint to
// relax.
func Assign(residents []*domain.Resident, cat *track.Catalog, grid *domain.Grid, bc *domain.BlockCalendar, env *domain.Envelope, logger obslog.Logger) (Result, error) {
	if logger == nil {
		logger = obslog.Nop{}
	}
	names := make([]string, len(residents))
	for i, r := range residents {
		names[i] = r.Name
	}
	names = domain.SortedNames(names)
	if len(names) != cat.ClassSize() {
		return Result{}, ErrResidentTrackMismatch
	}

	byName := make(map[string]*domain.Resident, len(residents))
	for _, r := range residents {
		byName[r.Name] = r
	}

	// Baseline bijection: sorted name order maps directly to track index.
	assignment := make(map[string]int, len(names))
	trackOf := make([]string, len(names)+1) // trackOf[i] = resident assigned to track i
	for i, name := range names {
		assignment[name] = i + 1
		trackOf[i+1] = name
	}

	score := func(a map[string]int) int {
		total := 0
		for name, t := range a {
			total += samplerFit(byName[name], t, cat, env)
		}
		return total
	}

	improved := true
	for improved {
		improved = false
		for i := 1; i <= cat.ClassSize(); i++ {
			for j := i + 1; j <= cat.ClassSize(); j++ {
				ri, rj := trackOf[i], trackOf[j]
				current := samplerFit(byName[ri], i, cat, env) + samplerFit(byName[rj], j, cat, env)
				swapped := samplerFit(byName[ri], j, cat, env) + samplerFit(byName[rj], i, cat, env)
				if swapped > current {
					trackOf[i], trackOf[j] = rj, ri
					assignment[ri], assignment[rj] = j, i
					improved = true
				}
			}
		}
	}

	for name, t := range assignment {
		seq, err := cat.Sequence(t)
		if err != nil {
			return Result{}, err
		}
		for b := 1; b <= 13; b++ {
			rng, err := bc.Range(b)
			if err != nil {
				return Result{}, err
			}
			for w := rng.Start; w < rng.End; w++ {
				if err := grid.SetLocked(name, w, seq[b], "r1"); err != nil {
					return Result{}, err
				}
			}
		}
	}

	result := Result{Assignment: assignment, ObjectiveScore: score(assignment)}
	logger.Info("r1", "bijection committed", obslog.Fields{"residents": len(names), "objective": result.ObjectiveScore})
	return result, nil
}

// samplerFit scores how well track t's Msamp block suits resident's
// expressed sampler preference and section under-staffing. Zero when the
// resident expressed no preference or the track has no Msamp block in its
// derived sequence.
func samplerFit(r *domain.Resident, t int, cat *track.Catalog, env *domain.Envelope) int {
	if r == nil || r.Preference.SamplerAIRPreference == "" {
		return 0
	}
	seq, err := cat.Sequence(t)
	if err != nil {
		return 0
	}
	score := 0
	for b := 1; b <= 13; b++ {
		if seq[b] != domain.CodeMsamp {
			continue
		}
		if env == nil {
			continue
		}
		for _, code := range []string{domain.CodeMucic, domain.CodeMir} {
			if code != r.Preference.SamplerAIRPreference {
				continue
			}
			lo, hi := env.Bounds(code, (b-1)*4)
			headroom := hi - lo
			if hi < 0 || headroom <= 1 {
				score++ // under-staffed or tightly bounded section: bump
			}
		}
	}
	return score
}
