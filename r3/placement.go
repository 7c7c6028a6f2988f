package r3

import (
	"sort"
	"time"

	"radsched/config"
	"radsched/domain"
	"radsched/internal/obslog"
)

// Section is an alias kept local so callers can read this file without
// importing domain just for the type name in doc comments.
type Section = domain.Section

// PlacementResult reports, per resident, how many weeks of each section's
// deficit were placed this run and how many remain (carried forward to the
// anchors pass as unassigned blocks).
type PlacementResult struct {
	Placed    map[string]map[Section]int
	Remaining map[string]map[Section]int
}

// placementEngine drives the greedy best-first block filler, an explicit
// struct (rather than closures) holding the precomputed lookups the urgency
// function and constraint checks both need.
type placementEngine struct {
	catalog     *domain.RotationCatalog
	grid        *domain.Grid
	bc          *domain.BlockCalendar
	env         *domain.Envelope
	cfg         config.Config
	byName      map[string]*domain.Resident
	sectionCode map[Section][]string // candidate rotation codes per section
	lcBlock     int
	xmasBlock   int
	xmasIRLast  map[string]bool
	deficits    map[string]map[Section]int
}

func (e *placementEngine) blockPressure(section Section, block int) int {
	n := 0
	for name, byScn := range e.deficits {
		if byScn[section] <= 0 {
			continue
		}
		r := e.byName[name]
		for _, code := range e.sectionCode[section] {
			if rc, err := e.catalog.Lookup(code); err == nil && rc.EligibleFor(r.FuturePGY) {
				n++
				break
			}
		}
	}
	return n
}

// urgency combines remaining-deficit magnitude, block pressure, and the
// resident's soft section preference weight.
func (e *placementEngine) urgency(name string, section Section, block int) float64 {
	r := e.byName[name]
	remaining := e.deficits[name][section]
	score := float64(remaining) + float64(e.blockPressure(section, block))
	for _, top := range r.Preference.SectionTop {
		if top == section {
			score += e.cfg.SoftPreferenceWeight
		}
	}
	for _, bottom := range r.Preference.SectionBottom {
		if bottom == section {
			score -= e.cfg.SoftPreferenceWeight
		}
	}
	return score
}

// canPlace checks the hard constraints on placing code in resident's block:
// hospital-exclusivity, the no-Zir-before-LC policy, and the no-Zir-over-
// Christmas carve-out for a resident who had IR over Christmas last year.
func (e *placementEngine) canPlace(name, code string, block int) (bool, error) {
	if code == domain.CodeZir {
		if block < e.lcBlock {
			return false, nil
		}
		if block == e.xmasBlock && e.xmasIRLast[name] {
			return false, nil
		}
	}
	rng, err := e.bc.Range(block)
	if err != nil {
		return false, err
	}
	rc, err := e.catalog.Lookup(code)
	if err != nil {
		return false, err
	}
	if rc.Hospital != domain.OTHER {
		seen, err := e.grid.HospitalSystemsInBlock(name, rng, e.catalog)
		if err != nil {
			return false, err
		}
		for sys := range seen {
			if sys != rc.Hospital {
				return false, nil
			}
		}
	}
	for w := rng.Start; w < rng.End; w++ {
		existing, err := e.grid.Get(name, w)
		if err != nil {
			return false, err
		}
		if existing != domain.Unassigned {
			return false, nil
		}
	}
	return true, nil
}

func (e *placementEngine) place(name, code string, block int) error {
	rng, err := e.bc.Range(block)
	if err != nil {
		return err
	}
	for w := rng.Start; w < rng.End; w++ {
		if err := e.grid.SetLocked(name, w, code, "r3-placement"); err != nil {
			return err
		}
	}
	return nil
}

// PlaceGraduationRequirements runs the greedy best-first block filler: for
// every (resident, section) pair with remaining deficit, it repeatedly picks
// the highest-urgency placement among open blocks and candidate rotation
// codes until the deficit is cleared or no feasible block remains. NRDR
// residents accrue Mnuc directly (no substitution is registered for NRDR, so
// domain.ApplicableSubstitutions already excludes the 4:1 codes from their
// candidate set). xmasIRLast flags residents who had IR over Christmas the
// previous year, gating the no-Zir-over-Christmas carve-out.
func PlaceGraduationRequirements(
	residents []*domain.Resident,
	deficits map[string]map[Section]int,
	catalog *domain.RotationCatalog,
	grid *domain.Grid,
	bc *domain.BlockCalendar,
	env *domain.Envelope,
	cfg config.Config,
	xmasIRLast map[string]bool,
	logger obslog.Logger,
) (PlacementResult, error) {
	if logger == nil {
		logger = obslog.Nop{}
	}
	if xmasIRLast == nil {
		xmasIRLast = map[string]bool{}
	}
	byName := make(map[string]*domain.Resident, len(residents))
	for _, r := range residents {
		byName[r.Name] = r
	}

	sectionCode := map[Section][]string{
		domain.SectionBreast: {domain.CodePcbi},
		domain.SectionNucMed: {domain.CodeMnuc, domain.CodeMai, domain.CodeMch},
		domain.SectionMSK:    {domain.CodeMb, domain.CodeVb, domain.CodeSer},
		domain.SectionPeds:   {domain.CodePeds},
		domain.SectionIR:     {domain.CodeZir},
	}

	xmasBlock, err := christmasBlock(bc)
	if err != nil {
		xmasBlock = 0
	}

	e := &placementEngine{
		catalog:     catalog,
		grid:        grid,
		bc:          bc,
		env:         env,
		cfg:         cfg,
		byName:      byName,
		sectionCode: sectionCode,
		lcBlock:     cfg.COREBlock - 1,
		xmasBlock:   xmasBlock,
		xmasIRLast:  xmasIRLast,
		deficits:    deficits,
	}

	placed := make(map[string]map[Section]int, len(residents))
	for name := range deficits {
		placed[name] = map[Section]int{}
	}

	type task struct {
		name    string
		section Section
	}
	tasks := make([]task, 0)
	for name, byScn := range deficits {
		for section, weeks := range byScn {
			if weeks > 0 {
				tasks = append(tasks, task{name, section})
			}
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].name != tasks[j].name {
			return tasks[i].name < tasks[j].name
		}
		return tasks[i].section < tasks[j].section
	})

	for _, t := range tasks {
		substitutable := map[string]bool{}
		for _, rule := range domain.ApplicableSubstitutions(byName[t.name].Pathways) {
			for _, from := range rule.From {
				substitutable[from] = true
			}
		}
		for e.deficits[t.name][t.section] > 0 {
			bestBlock, bestCode, bestScore := 0, "", -1.0
			for block := 1; block <= 13; block++ {
				for _, code := range e.sectionCode[t.section] {
					if t.section == domain.SectionNucMed && code != domain.CodeMnuc && !substitutable[code] {
						continue
					}
					rc, err := catalog.Lookup(code)
					if err != nil || !rc.EligibleFor(byName[t.name].FuturePGY) {
						continue
					}
					ok, err := e.canPlace(t.name, code, block)
					if err != nil {
						return PlacementResult{}, err
					}
					if !ok {
						continue
					}
					score := e.urgency(t.name, t.section, block)
					if score > bestScore {
						bestScore, bestBlock, bestCode = score, block, code
					}
				}
			}
			if bestBlock == 0 {
				break // no feasible block remains; carried to anchors as unfilled
			}
			if err := e.place(t.name, bestCode, bestBlock); err != nil {
				return PlacementResult{}, err
			}
			rng, err := bc.Range(bestBlock)
			if err != nil {
				return PlacementResult{}, err
			}
			weeks := rng.Weeks()
			placed[t.name][t.section] += weeks
			e.deficits[t.name][t.section] -= weeks
		}
	}

	logger.Info("r3", "graduation requirements placed", obslog.Fields{"tasks": len(tasks)})
	return PlacementResult{Placed: placed, Remaining: e.deficits}, nil
}

// christmasBlock returns the block number containing December 25 of the
// calendar's target year.
func christmasBlock(bc *domain.BlockCalendar) (int, error) {
	christmas := time.Date(bc.TargetYear, time.December, 25, 0, 0, 0, 0, time.UTC)
	days := int(christmas.Sub(bc.NFStart).Hours() / 24)
	week := days / 7
	return bc.BlockOf(week)
}
