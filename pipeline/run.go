package pipeline

import (
	"radsched/config"
	"radsched/domain"
	"radsched/internal/obslog"
	"radsched/nf"
	"radsched/r1"
	"radsched/r2"
	"radsched/r3"
	"radsched/r4"
	"radsched/sampler"
	"radsched/track"
	"radsched/validate"
)

// Input bundles everything a Run needs: the full resident roster (all four
// PGY cohorts together, partitioned internally by FuturePGY), the derived
// domain reference data, and the track catalogs each base-sequence-driven
// phase derives its cells from.
type Input struct {
	Residents []*domain.Resident
	Catalog   *domain.RotationCatalog
	Reqs      *domain.RequirementTable
	Env       *domain.Envelope
	BC        *domain.BlockCalendar

	R1Tracks *track.Catalog
	R2Tracks *track.Catalog

	R2Eligible        r2.Eligibility
	R2DeficitScore    r2.DeficitPenalty
	AIRPSessionBlocks []int
	XmasIRLast        map[string]bool

	NFRules domain.NFRuleSet
	Cfg     config.Config
	Logger  obslog.Logger
}

// Result is the outcome of a completed Run: the mutated grid, the NF
// overlay, and the validation report.
type Result struct {
	Grid   *domain.Grid
	NF     nf.Result
	Report validate.Report
}

// Run executes all nine phases in sequence against a fresh grid. Each
// phase's error return aborts the run immediately; nothing downstream of a
// failing phase is attempted, since every phase's precondition is the
// previous phase's postcondition.
func Run(in Input) (Result, error) {
	logger := in.Logger
	if logger == nil {
		logger = obslog.Nop{}
	}
	if err := in.Cfg.Validate(); err != nil {
		return Result{}, err
	}

	byPGY := map[int][]*domain.Resident{}
	names := make([]string, 0, len(in.Residents))
	for _, r := range in.Residents {
		byPGY[r.FuturePGY] = append(byPGY[r.FuturePGY], r)
		names = append(names, r.Name)
	}
	names = domain.SortedNames(names)
	grid := domain.NewGrid(names, in.BC.TotalWeeks())

	r1s, r2s, r3s, r4s := byPGY[1], byPGY[2], byPGY[3], byPGY[4]

	logger.Info("pipeline", "phase 1: R1 assignment", obslog.Fields{"residents": len(r1s)})
	if _, err := r1.Assign(r1s, in.R1Tracks, grid, in.BC, in.Env, logger); err != nil {
		return Result{}, err
	}

	logger.Info("pipeline", "phase 2: R2 track match", obslog.Fields{"residents": len(r2s)})
	r2Result, err := r2.Match(r2s, in.R2Tracks.ClassSize(), in.R2Eligible, in.R2DeficitScore, in.Cfg, logger)
	if err != nil {
		return Result{}, err
	}
	if err := commitTrackAssignment(r2Result.Assignment, in.R2Tracks, grid, in.BC, "r2"); err != nil {
		return Result{}, err
	}

	logger.Info("pipeline", "phase 3: R3 builder", obslog.Fields{"residents": len(r3s)})
	airpResult, err := r3.AssignAIRP(r3s, in.AIRPSessionBlocks, in.Cfg, grid, in.BC, logger)
	if err != nil {
		return Result{}, err
	}
	if err := r3.AssignLC(r3s, in.Cfg, grid, in.BC, logger); err != nil {
		return Result{}, err
	}
	r3Deficits := sectionDeficits(r3s, in.Reqs, []domain.Section{
		domain.SectionMSK, domain.SectionPeds, domain.SectionIR,
		domain.SectionNeuro, domain.SectionBody, domain.SectionChest, domain.SectionCardiac,
	})
	placement, err := r3.PlaceGraduationRequirements(r3s, r3Deficits, in.Catalog, grid, in.BC, in.Env, in.Cfg, in.XmasIRLast, logger)
	if err != nil {
		return Result{}, err
	}
	r3.Anchors(placement.Remaining, logger)

	logger.Info("pipeline", "phase 4: R4 builder", obslog.Fields{"residents": len(r4s)})
	if _, err := r4.AssignFixedCommitments(r4s, in.Cfg, grid, in.BC, logger); err != nil {
		return Result{}, err
	}
	if _, err := r4.FillDeficiencies(r4s, in.Catalog, grid, in.BC, in.Reqs, in.Cfg, logger); err != nil {
		return Result{}, err
	}
	if _, err := r4.FillCapacity(r4s, grid, in.BC, in.Env, in.Cfg, logger); err != nil {
		return Result{}, err
	}

	logger.Info("pipeline", "phase 5: night-float overlay", nil)
	airpBlockOf := airpBlocksFor(airpResult.Assignment, in.AIRPSessionBlocks)
	nfResult, err := nf.Solve(in.Residents, grid, in.BC, in.NFRules, in.Cfg, airpBlockOf, logger)
	if err != nil {
		return Result{}, err
	}

	logger.Info("pipeline", "phase 6: sampler resolution", nil)
	if _, err := sampler.Resolve(r1s, grid, nfResult, logger); err != nil {
		return Result{}, err
	}

	logger.Info("pipeline", "phase 7: validation", nil)
	report := validate.Validate(in.Residents, grid, in.Catalog, in.Reqs, in.Env, in.BC, nfResult, in.NFRules, logger)

	return Result{Grid: grid, NF: nfResult, Report: report}, nil
}

// commitTrackAssignment writes every derived cell of cat's sequence for each
// resident's assigned track into grid, locked under phase. Mirrors r1's
// inline commit, pulled out here because R2's matcher (unlike R1's
// bijection) returns only the logical assignment.
func commitTrackAssignment(assignment map[string]int, cat *track.Catalog, grid *domain.Grid, bc *domain.BlockCalendar, phase string) error {
	for name, t := range assignment {
		seq, err := cat.Sequence(t)
		if err != nil {
			return err
		}
		for b := 1; b <= 13; b++ {
			rng, err := bc.Range(b)
			if err != nil {
				return err
			}
			for w := rng.Start; w < rng.End; w++ {
				if err := grid.SetLocked(name, w, seq[b], phase); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// sectionDeficits computes each resident's remaining graduation-requirement
// deficit across sections, crediting only historical weeks (the live grid
// has not yet accrued any in-year weeks toward these sections when this
// phase runs, since R3 placement is the first phase that writes them).
func sectionDeficits(residents []*domain.Resident, reqs *domain.RequirementTable, sections []domain.Section) map[string]map[domain.Section]int {
	out := make(map[string]map[domain.Section]int, len(residents))
	for _, r := range residents {
		byScn := map[domain.Section]int{}
		for _, section := range sections {
			target := reqs.TargetWeeks(r.Pathways, section)
			credited := domain.CreditedWeeks(section, r.Historical[section], nil, r.Pathways)
			if deficit := target - credited; deficit > 0 {
				byScn[section] = deficit
			}
		}
		out[r.Name] = byScn
	}
	return out
}

// airpBlocksFor reports, for every R3, which block their AIRP session landed
// in, so the NF solver's AIRP-block layer can keep each attendee off NF
// during their own AIRP block.
func airpBlocksFor(sessionOf map[string]int, sessionBlocks []int) map[string]int {
	out := make(map[string]int, len(sessionOf))
	for name, session := range sessionOf {
		if session >= 1 && session <= len(sessionBlocks) {
			out[name] = sessionBlocks[session-1]
		}
	}
	return out
}
