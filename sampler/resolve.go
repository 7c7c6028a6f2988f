package sampler

import (
	"sort"

	"radsched/domain"
	"radsched/internal/obslog"
	"radsched/nf"
)

// Result reports, per resident, the week-indexed code each resolved Msamp
// cell received.
type Result struct {
	Resolved map[string]map[int]string
}

// permutations of {Pcbi, second, Mnuc, Mnuc} without generating the same
// multiset arrangement twice (the two Mnuc slots are interchangeable).
func permutations(second string) [][4]string {
	base := [4]string{domain.CodePcbi, second, domain.CodeMnuc, domain.CodeMnuc}
	seen := map[[4]string]bool{}
	out := make([][4]string, 0, 12)
	var idx = [4]int{0, 1, 2, 3}
	var permute func(k int)
	permute = func(k int) {
		if k == len(idx) {
			var p [4]string
			for i, j := range idx {
				p[i] = base[j]
			}
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
			return
		}
		for i := k; i < len(idx); i++ {
			idx[k], idx[i] = idx[i], idx[k]
			permute(k + 1)
			idx[k], idx[i] = idx[i], idx[k]
		}
	}
	permute(0)
	sort.Slice(out, func(a, b int) bool {
		for i := 0; i < 4; i++ {
			if out[a][i] != out[b][i] {
				return out[a][i] < out[b][i]
			}
		}
		return false
	})
	return out
}

func weightOf(code string) float64 {
	if code == domain.CodeMnuc {
		return 2
	}
	return 1
}

// pullCoverage returns, for each of the four weeks, how many residents
// system-wide are on night float that week — the "gap" the sampler aims to
// fill.
func pullCoverage(weeks [4]int, nfResult nf.Result) [4]float64 {
	var out [4]float64
	for i, w := range weeks {
		count := 0
		for _, byWeek := range nfResult.Assignments {
			if _, ok := byWeek[w]; ok {
				count++
			}
		}
		out[i] = float64(count)
	}
	return out
}

// bestPermutation picks the week-1 code sequence whose weight shape best
// warp-aligns with the NF pull-coverage shape across the same four weeks —
// the sampler's heaviest-weighted week (Mnuc, 2 slots) lands where upper-level
// NF pulls leave the biggest coverage gap.
func bestPermutation(weeks [4]int, second string, nfResult nf.Result) [4]string {
	pull := pullCoverage(weeks, nfResult)
	best := [4]string{}
	bestCost := -1.0
	for _, perm := range permutations(second) {
		series := make([]float64, 4)
		for i, code := range perm {
			series[i] = weightOf(code)
		}
		cost := warpDistance(pull[:], series)
		if bestCost < 0 || cost < bestCost {
			bestCost, best = cost, perm
		}
	}
	return best
}

// findRuns returns every maximal contiguous run of domain.CodeMsamp in
// resident's row, as [start, end) absolute week ranges.
func findRuns(grid *domain.Grid, resident string) ([][2]int, error) {
	row, err := grid.WeekRow(resident)
	if err != nil {
		return nil, err
	}
	var runs [][2]int
	start := -1
	for w, code := range row {
		if code == domain.CodeMsamp {
			if start < 0 {
				start = w
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, [2]int{start, w})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, [2]int{start, len(row)})
	}
	return runs, nil
}

// Resolve rewrites every R1's Msamp placeholder weeks into Pcbi (1 week),
// Mucic or Mir per SamplerAIRPreference (1 week), and Mnuc (2 weeks), using
// nfResult to order the four weeks so the sampler covers the gap NF pulls
// create.
func Resolve(residents []*domain.Resident, grid *domain.Grid, nfResult nf.Result, logger obslog.Logger) (Result, error) {
	if logger == nil {
		logger = obslog.Nop{}
	}
	result := Result{Resolved: map[string]map[int]string{}}

	names := make([]string, 0, len(residents))
	byName := make(map[string]*domain.Resident, len(residents))
	for _, r := range residents {
		byName[r.Name] = r
		names = append(names, r.Name)
	}
	names = domain.SortedNames(names)

	for _, name := range names {
		runs, err := findRuns(grid, name)
		if err != nil {
			return Result{}, err
		}
		if len(runs) == 0 {
			continue
		}
		second := byName[name].Preference.SamplerAIRPreference
		if second != domain.CodeMucic && second != domain.CodeMir {
			second = domain.CodeMucic
		}
		result.Resolved[name] = map[int]string{}
		for _, run := range runs {
			if run[1]-run[0] != 4 {
				return Result{}, ErrMalformedRun
			}
			var weeks [4]int
			for i := 0; i < 4; i++ {
				weeks[i] = run[0] + i
			}
			perm := bestPermutation(weeks, second, nfResult)
			for i, w := range weeks {
				if err := grid.ResolvePlaceholder(name, w, domain.CodeMsamp, perm[i], "sampler"); err != nil {
					return Result{}, err
				}
				result.Resolved[name][w] = perm[i]
			}
		}
	}

	logger.Info("sampler", "Msamp placeholders resolved", obslog.Fields{"residents": len(result.Resolved)})
	return result, nil
}
