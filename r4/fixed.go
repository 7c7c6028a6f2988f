package r4

import (
	"radsched/config"
	"radsched/domain"
	"radsched/internal/obslog"
)

// FixedCommitmentsResult reports, per resident, the rotation code and block
// range locked by each hard commitment this sub-step wrote.
type FixedCommitmentsResult struct {
	Locked map[string][]LockedRun
}

// LockedRun names one contiguous commitment: code across blocks
// [BlockStart, BlockEnd).
type LockedRun struct {
	Code       string
	BlockStart int
	BlockEnd   int
}

// fixedEngine holds the grid/calendar/catalog the commitment writers share.
type fixedEngine struct {
	grid    *domain.Grid
	bc      *domain.BlockCalendar
	cfg     config.Config
	locked  map[string][]LockedRun
}

// openRun finds the first run of n contiguous blocks within [from, to)
// (1-indexed, to exclusive) where every week of every block is still
// Unassigned for resident. Returns 0 if no such run exists.
func (e *fixedEngine) openRun(resident string, n, from, to int) (int, error) {
	for start := from; start+n <= to; start++ {
		ok := true
		for b := start; b < start+n; b++ {
			rng, err := e.bc.Range(b)
			if err != nil {
				return 0, err
			}
			for w := rng.Start; w < rng.End; w++ {
				code, err := e.grid.Get(resident, w)
				if err != nil {
					return 0, err
				}
				if code != domain.Unassigned {
					ok = false
					break
				}
			}
			if !ok {
				break
			}
		}
		if ok {
			return start, nil
		}
	}
	return 0, nil
}

func (e *fixedEngine) lockRun(resident, code string, start, n int) error {
	for b := start; b < start+n; b++ {
		rng, err := e.bc.Range(b)
		if err != nil {
			return err
		}
		for w := rng.Start; w < rng.End; w++ {
			if err := e.grid.SetLocked(resident, w, code, "r4-fixed"); err != nil {
				return err
			}
		}
	}
	e.locked[resident] = append(e.locked[resident], LockedRun{Code: code, BlockStart: start, BlockEnd: start + n})
	return nil
}

// AssignFixedCommitments writes research/CEP months, FSE blocks, and the
// three pathway hard blocks (NRDR Mnuc sextet, ESIR Mir octet, ESNR neuro
// window), in that order, for every R4. Residents are processed in lexical
// name order so a later commitment's choice of open blocks is reproducible.
func AssignFixedCommitments(residents []*domain.Resident, cfg config.Config, grid *domain.Grid, bc *domain.BlockCalendar, logger obslog.Logger) (FixedCommitmentsResult, error) {
	if logger == nil {
		logger = obslog.Nop{}
	}
	e := &fixedEngine{grid: grid, bc: bc, cfg: cfg, locked: map[string][]LockedRun{}}

	byName := make(map[string]*domain.Resident, len(residents))
	names := make([]string, 0, len(residents))
	for _, r := range residents {
		byName[r.Name] = r
		names = append(names, r.Name)
	}
	names = domain.SortedNames(names)

	for _, name := range names {
		r := byName[name]
		if r.Preference.ResearchCEPRequested {
			if r.Pathways.Has(domain.T32) {
				return FixedCommitmentsResult{}, ErrT32ResearchIneligible
			}
			months := cfg.ResearchCEPCapMonths
			if r.Preference.ResearchCEPSupplementaryFunding {
				months = cfg.ResearchCEPCapMonths * 2
			}
			start, err := e.openRun(name, months, 1, 14)
			if err != nil {
				return FixedCommitmentsResult{}, err
			}
			if start == 0 {
				return FixedCommitmentsResult{}, ErrInsufficientBlocks
			}
			if err := e.lockRun(name, domain.CodeCEP, start, months); err != nil {
				return FixedCommitmentsResult{}, err
			}
		}
	}

	fseRequested := make([]string, 0)
	for _, name := range names {
		if byName[name].Preference.FSEChoice != "" {
			fseRequested = append(fseRequested, name)
		}
	}
	firstHalf, secondHalf := domain.PartitionByName(fseRequested)
	inFirstHalf := make(map[string]bool, len(firstHalf))
	for _, n := range firstHalf {
		inFirstHalf[n] = true
	}
	for _, name := range append(append([]string{}, firstHalf...), secondHalf...) {
		r := byName[name]
		months := cfg.FSEBreastMonths
		window := [2]int{7, 14}
		if inFirstHalf[name] {
			window = [2]int{1, 7}
		}
		start, err := e.openRun(name, months, window[0], window[1])
		if err != nil {
			return FixedCommitmentsResult{}, err
		}
		if start == 0 {
			// fall back to the full year if the preferred half has no room
			start, err = e.openRun(name, months, 1, 14)
			if err != nil {
				return FixedCommitmentsResult{}, err
			}
		}
		if start == 0 {
			return FixedCommitmentsResult{}, ErrInsufficientBlocks
		}
		if err := e.lockRun(name, r.Preference.FSEChoice, start, months); err != nil {
			return FixedCommitmentsResult{}, err
		}
	}

	for _, name := range names {
		r := byName[name]
		if r.Pathways.Has(domain.NRDR) {
			start, err := e.openRun(name, cfg.NRDRMnucBlocks, 1, 14)
			if err != nil {
				return FixedCommitmentsResult{}, err
			}
			if start == 0 {
				return FixedCommitmentsResult{}, ErrInsufficientBlocks
			}
			if err := e.lockRun(name, domain.CodeMnuc, start, cfg.NRDRMnucBlocks); err != nil {
				return FixedCommitmentsResult{}, err
			}
		}
		if r.Pathways.Has(domain.ESIR) {
			start, err := e.openRun(name, cfg.ESIRMirBlocks, 1, 14)
			if err != nil {
				return FixedCommitmentsResult{}, err
			}
			if start == 0 {
				return FixedCommitmentsResult{}, ErrInsufficientBlocks
			}
			if err := e.lockRun(name, domain.CodeMir, start, cfg.ESIRMirBlocks); err != nil {
				return FixedCommitmentsResult{}, err
			}
		}
		if r.Pathways.Has(domain.ESNR) {
			// Up to one block in the window may carry Smr instead of Mneu;
			// which one, if any, is a human call made at review time, so
			// every block starts as Mneu here.
			start, err := e.openRun(name, cfg.ESNRNeuroBlocks, 1, 14)
			if err != nil {
				return FixedCommitmentsResult{}, err
			}
			if start == 0 {
				return FixedCommitmentsResult{}, ErrInsufficientBlocks
			}
			if err := e.lockRun(name, domain.CodeMneu, start, cfg.ESNRNeuroBlocks); err != nil {
				return FixedCommitmentsResult{}, err
			}
		}
	}

	logger.Info("r4", "fixed commitments locked", obslog.Fields{"residents": len(names)})
	return FixedCommitmentsResult{Locked: e.locked}, nil
}
