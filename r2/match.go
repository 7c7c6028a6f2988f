package r2

import (
	"sort"

	"radsched/config"
	"radsched/domain"
	"radsched/internal/obslog"
)

// Eligibility reports whether resident name may be assigned track t (1-based),
// per the pathway eligibility mask (e.g. ESIR residents require the
// ESIR-compatible track).
type Eligibility func(name string, track int) bool

// DeficitPenalty scores how much assigning resident name to track t discounts
// against the resident's historical section deficits (higher is worse); fed
// into the objective at weight Config.R2DeficitPenaltyWeight.
type DeficitPenalty func(name string, track int) float64

// Result is the outcome of a completed R2 match.
type Result struct {
	// Assignment maps resident name to track index (1-based).
	Assignment map[string]int
	// TotalPenalty is Σ (rank-1) + λ·Σ deficit_penalty over the chosen
	// assignment; lower is better.
	TotalPenalty float64
}

// Match assigns N rising R2s to N R2 tracks. It first proves a perfect
// matching respecting eligible exists via an augmenting-path feasibility
// check over the bipartite resident/track adjacency, then searches among
// feasible reassignments by pairwise swap for the rank+deficit objective
// minimum.
// Ties are broken deterministically: residents and the initial matching are
// both ordered by name-lexical order before any swap runs.
func Match(residents []*domain.Resident, trackCount int, eligible Eligibility, penalty DeficitPenalty, cfg config.Config, logger obslog.Logger) (Result, error) {
	if logger == nil {
		logger = obslog.Nop{}
	}
	if eligible == nil {
		eligible = func(string, int) bool { return true }
	}
	if penalty == nil {
		penalty = func(string, int) float64 { return 0 }
	}

	byName := make(map[string]*domain.Resident, len(residents))
	names := make([]string, 0, len(residents))
	for _, r := range residents {
		byName[r.Name] = r
		names = append(names, r.Name)
	}
	names = domain.SortedNames(names)
	if len(names) != trackCount {
		return Result{}, ErrCardinalityMismatch
	}

	if err := proveFeasible(names, trackCount, eligible); err != nil {
		return Result{}, err
	}

	rankCost := func(name string, t int) float64 {
		rank, ok := byName[name].Preference.TrackRank[t]
		if !ok {
			return float64(trackCount) // unranked track: treat as least preferred
		}
		return float64(rank - 1)
	}
	pairCost := func(name string, t int) float64 {
		return rankCost(name, t) + cfg.R2DeficitPenaltyWeight*penalty(name, t)
	}

	prefOrder := func(name string) []int {
		order := make([]int, trackCount)
		for t := 1; t <= trackCount; t++ {
			order[t-1] = t
		}
		sort.SliceStable(order, func(a, b int) bool { return rankCost(name, order[a]) < rankCost(name, order[b]) })
		return order
	}

	// Deterministic assignment: serial dictatorship in name-lexical order,
	// each resident claiming their most-preferred still-unclaimed eligible
	// track. Falls back to a deterministic augmenting search (guaranteed to
	// succeed, since proveFeasible already established Hall's condition
	// holds) on the rare input where greedy claiming alone paints a later
	// resident into a corner.
	assignment, ok := serialDictatorship(names, trackCount, eligible, prefOrder)
	if !ok {
		assignment = augmentingMatch(names, trackCount, eligible, prefOrder)
	}

	trackOf := make([]string, trackCount+1)
	for name, t := range assignment {
		trackOf[t] = name
	}

	improved := true
	for improved {
		improved = false
		for i := 1; i <= trackCount; i++ {
			for j := i + 1; j <= trackCount; j++ {
				ri, rj := trackOf[i], trackOf[j]
				if !eligible(ri, j) || !eligible(rj, i) {
					continue
				}
				current := pairCost(ri, i) + pairCost(rj, j)
				swapped := pairCost(ri, j) + pairCost(rj, i)
				if swapped < current {
					trackOf[i], trackOf[j] = rj, ri
					assignment[ri], assignment[rj] = j, i
					improved = true
				}
			}
		}
	}

	total := 0.0
	for name, t := range assignment {
		total += pairCost(name, t)
	}

	logger.Info("r2", "track match committed", obslog.Fields{"residents": len(names), "penalty": total})
	return Result{Assignment: assignment, TotalPenalty: total}, nil
}

// proveFeasible proves a perfect matching respecting eligible exists, via
// Kuhn's augmenting-path algorithm over the bipartite resident/track
// adjacency (an edge exists wherever eligible reports true). A maximum
// matching of size len(names) proves Hall's condition holds; this is the
// hard feasibility sub-problem, solved independently of which particular
// matching the penalty-minimizing assignment below settles on. Every
// resident is tried as an augmenting root regardless of earlier failures,
// so the unmatched set reported on failure reflects the true maximum
// matching rather than the order residents happened to be tried in.
func proveFeasible(names []string, trackCount int, eligible Eligibility) error {
	trackOwner := make(map[int]string, trackCount)

	var augment func(name string, visited map[int]bool) bool
	augment = func(name string, visited map[int]bool) bool {
		for t := 1; t <= trackCount; t++ {
			if !eligible(name, t) || visited[t] {
				continue
			}
			visited[t] = true
			owner, taken := trackOwner[t]
			if !taken || augment(owner, visited) {
				trackOwner[t] = name
				return true
			}
		}
		return false
	}

	matched := make(map[string]bool, len(names))
	for _, name := range names {
		if augment(name, make(map[int]bool, trackCount)) {
			matched[name] = true
		}
	}
	if len(matched) == len(names) {
		return nil
	}

	unmatched := make([]string, 0, len(names)-len(matched))
	for _, name := range names {
		if !matched[name] {
			unmatched = append(unmatched, name)
		}
	}
	sort.Strings(unmatched)
	return &ErrInfeasible{UnmatchableResidents: unmatched}
}

// serialDictatorship processes names in order, each claiming its
// most-preferred still-unclaimed eligible track per prefOrder. Reports false
// if some resident is left with no unclaimed eligible track.
func serialDictatorship(names []string, trackCount int, eligible Eligibility, prefOrder func(string) []int) (map[string]int, bool) {
	taken := make(map[int]bool, trackCount)
	assignment := make(map[string]int, len(names))
	for _, name := range names {
		claimed := false
		for _, t := range prefOrder(name) {
			if taken[t] || !eligible(name, t) {
				continue
			}
			assignment[name] = t
			taken[t] = true
			claimed = true
			break
		}
		if !claimed {
			return assignment, false
		}
	}
	return assignment, true
}

// augmentingMatch computes a maximum bipartite matching via Kuhn's augmenting
// path algorithm, trying each resident's tracks in prefOrder. Processing
// order (names, then prefOrder per resident) is fixed, so the result is
// deterministic for identical input. Guaranteed to find a perfect matching
// when one exists.
func augmentingMatch(names []string, trackCount int, eligible Eligibility, prefOrder func(string) []int) map[string]int {
	trackOwner := make(map[int]string, trackCount)
	assignment := make(map[string]int, len(names))

	var augment func(name string, visited map[int]bool) bool
	augment = func(name string, visited map[int]bool) bool {
		for _, t := range prefOrder(name) {
			if !eligible(name, t) || visited[t] {
				continue
			}
			visited[t] = true
			owner, taken := trackOwner[t]
			if !taken || augment(owner, visited) {
				trackOwner[t] = name
				assignment[name] = t
				return true
			}
		}
		return false
	}

	for _, name := range names {
		augment(name, make(map[int]bool, trackCount))
	}
	return assignment
}
