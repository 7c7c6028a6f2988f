package r4

import (
	"sort"

	"radsched/config"
	"radsched/domain"
	"radsched/internal/obslog"
)

// CapacityResult reports how many Mx, Peds, and MSK top-up blocks each
// resident received, plus how many remaining weeks were filled purely to
// satisfy the staffing envelope.
type CapacityResult struct {
	MxBlocks       map[string]int
	PedsTopUps     map[string]int
	MSKTopUps      map[string]int
	EnvelopeWeeks  map[string]int
}

type capacityEngine struct {
	grid    *domain.Grid
	bc      *domain.BlockCalendar
	env     *domain.Envelope
	byName  map[string]*domain.Resident
}

func (e *capacityEngine) openBlock(resident string) (int, error) {
	for b := 1; b <= 13; b++ {
		rng, err := e.bc.Range(b)
		if err != nil {
			return 0, err
		}
		open := true
		for w := rng.Start; w < rng.End; w++ {
			code, err := e.grid.Get(resident, w)
			if err != nil {
				return 0, err
			}
			if code != domain.Unassigned {
				open = false
				break
			}
		}
		if open {
			return b, nil
		}
	}
	return 0, nil
}

func (e *capacityEngine) placeBlock(resident, code string, block int) error {
	rng, err := e.bc.Range(block)
	if err != nil {
		return err
	}
	for w := rng.Start; w < rng.End; w++ {
		if err := e.grid.SetLocked(resident, w, code, "r4-capacity"); err != nil {
			return err
		}
	}
	return nil
}

func (e *capacityEngine) openWeek(resident string) (int, bool, error) {
	for w := 0; w < e.grid.Weeks(); w++ {
		code, err := e.grid.Get(resident, w)
		if err != nil {
			return 0, false, err
		}
		if code == domain.Unassigned {
			return w, true, nil
		}
	}
	return 0, false, nil
}

// mskTotal sums a resident's existing Vb/Mb/Ser blocks across the grid.
func (e *capacityEngine) mskTotal(resident string) (int, error) {
	total := 0
	row, err := e.grid.WeekRow(resident)
	if err != nil {
		return 0, err
	}
	for _, code := range row {
		switch code {
		case domain.CodeVb, domain.CodeMb, domain.CodeSer:
			total++
		}
	}
	return total / 4, nil
}

// FillCapacity is the final R4 sub-step: every non-T32, non-dual-pathway R4
// gets at least one Mx block; any Mx quota an ineligible resident would have
// absorbed is redistributed to residents flagged HarshR2Year. Residents with
// only one historical Peds block get a top-up Peds block; residents below 3
// total MSK blocks get a top-up MSK block where a block is open. Remaining
// open cells are filled week-by-week to satisfy the staffing envelope,
// preferring the code furthest below its minimum.
func FillCapacity(residents []*domain.Resident, grid *domain.Grid, bc *domain.BlockCalendar, env *domain.Envelope, cfg config.Config, logger obslog.Logger) (CapacityResult, error) {
	if logger == nil {
		logger = obslog.Nop{}
	}
	byName := make(map[string]*domain.Resident, len(residents))
	names := make([]string, 0, len(residents))
	for _, r := range residents {
		byName[r.Name] = r
		names = append(names, r.Name)
	}
	names = domain.SortedNames(names)

	e := &capacityEngine{grid: grid, bc: bc, env: env, byName: byName}
	result := CapacityResult{
		MxBlocks:      map[string]int{},
		PedsTopUps:    map[string]int{},
		MSKTopUps:     map[string]int{},
		EnvelopeWeeks: map[string]int{},
	}

	unclaimedMx := 0
	harsh := make([]string, 0)
	for _, name := range names {
		r := byName[name]
		dualPathway := len(r.Pathways) > 1
		if r.Pathways.Has(domain.T32) || dualPathway {
			unclaimedMx++
			continue
		}
		block, err := e.openBlock(name)
		if err != nil {
			return CapacityResult{}, err
		}
		if block == 0 {
			continue
		}
		if err := e.placeBlock(name, domain.CodeMx, block); err != nil {
			return CapacityResult{}, err
		}
		result.MxBlocks[name]++
		if r.Preference.HarshR2Year {
			harsh = append(harsh, name)
		}
	}
	harsh = domain.SortedNames(harsh)
	for i := 0; i < unclaimedMx && len(harsh) > 0; i++ {
		name := harsh[i%len(harsh)]
		block, err := e.openBlock(name)
		if err != nil {
			return CapacityResult{}, err
		}
		if block == 0 {
			continue
		}
		if err := e.placeBlock(name, domain.CodeMx, block); err != nil {
			return CapacityResult{}, err
		}
		result.MxBlocks[name]++
	}

	for _, name := range names {
		r := byName[name]
		if r.Historical[domain.SectionPeds]/4 == 1 {
			block, err := e.openBlock(name)
			if err != nil {
				return CapacityResult{}, err
			}
			if block == 0 {
				continue
			}
			if err := e.placeBlock(name, domain.CodePeds, block); err != nil {
				return CapacityResult{}, err
			}
			result.PedsTopUps[name]++
		}
		total, err := e.mskTotal(name)
		if err != nil {
			return CapacityResult{}, err
		}
		if total < 3 {
			block, err := e.openBlock(name)
			if err != nil {
				return CapacityResult{}, err
			}
			if block == 0 {
				continue
			}
			if err := e.placeBlock(name, domain.CodeVb, block); err != nil {
				return CapacityResult{}, err
			}
			result.MSKTopUps[name]++
		}
	}

	for _, name := range names {
		for {
			w, ok, err := e.openWeek(name)
			if err != nil {
				return CapacityResult{}, err
			}
			if !ok {
				break
			}
			code := bestEnvelopeCode(env, grid, w)
			if code == "" {
				code = domain.CodeMx
			}
			if err := grid.SetLocked(name, w, code, "r4-capacity"); err != nil {
				return CapacityResult{}, err
			}
			result.EnvelopeWeeks[name]++
		}
	}

	logger.Info("r4", "capacity fill complete", obslog.Fields{"residents": len(names)})
	return result, nil
}

// bestEnvelopeCode returns the registered code whose minimum headcount is
// least satisfied in week w, or "" if no registered code is below its
// minimum.
func bestEnvelopeCode(env *domain.Envelope, grid *domain.Grid, w int) string {
	if env == nil {
		return ""
	}
	codes := env.Codes()
	sort.Strings(codes)
	best, bestGap := "", -1
	for _, code := range codes {
		lo, _ := env.Bounds(code, w)
		if lo <= 0 {
			continue
		}
		gap := lo - grid.HeadcountAt(code, w)
		if gap <= 0 {
			continue
		}
		if gap > bestGap {
			bestGap, best = gap, code
		}
	}
	return best
}
