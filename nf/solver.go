package nf

import (
	"sort"

	"radsched/config"
	"radsched/domain"
	"radsched/internal/obslog"
)

// Result is the night-float overlay: week-indexed NF kinds per resident. It
// is deliberately separate from domain.Grid rather than written into it —
// night float sits on top of a resident's base-schedule rotation, it does
// not replace the cell's code.
type Result struct {
	Assignments map[string]map[int]domain.NightFloatKind
}

type nfEngine struct {
	grid        *domain.Grid
	bc          *domain.BlockCalendar
	rules       domain.NFRuleSet
	byName      map[string]*domain.Resident
	airpBlockOf map[string]int // resident -> block of their AIRP session, 0 if none
	lcBlock     int
	coreBlock   int
	assigned    map[string]map[int]domain.NightFloatKind
	weeksOf     map[string][]int // sorted week list per resident, for spacing checks
}

func newNFEngine(residents []*domain.Resident, grid *domain.Grid, bc *domain.BlockCalendar, rules domain.NFRuleSet, cfg config.Config, airpBlockOf map[string]int) *nfEngine {
	byName := make(map[string]*domain.Resident, len(residents))
	for _, r := range residents {
		byName[r.Name] = r
	}
	if airpBlockOf == nil {
		airpBlockOf = map[string]int{}
	}
	return &nfEngine{
		grid:        grid,
		bc:          bc,
		rules:       rules,
		byName:      byName,
		airpBlockOf: airpBlockOf,
		lcBlock:     cfg.COREBlock - 1,
		coreBlock:   cfg.COREBlock,
		assigned:    map[string]map[int]domain.NightFloatKind{},
		weeksOf:     map[string][]int{},
	}
}

// union concatenates name slices without aliasing any input's backing array.
func union(groups ...[]string) []string {
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	out := make([]string, 0, total)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func (e *nfEngine) blockWeeks(b int) []int {
	rng, err := e.bc.Range(b)
	if err != nil {
		return nil
	}
	out := make([]int, 0, rng.Weeks())
	for w := rng.Start; w < rng.End; w++ {
		out = append(out, w)
	}
	return out
}

func (e *nfEngine) isSpaced(name string, week int) bool {
	for _, w := range e.weeksOf[name] {
		d := w - week
		if d < 0 {
			d = -d
		}
		if d < e.rules.MinSpacingWeeks {
			return false
		}
	}
	return true
}

func (e *nfEngine) eligible(name string, week int) bool {
	r := e.byName[name]
	if r == nil {
		return false
	}
	if r.Preference.NoCallWeeks != nil && r.Preference.NoCallWeeks[week] {
		return false
	}
	if e.assigned[name][week] != "" {
		return false
	}
	code, err := e.grid.Get(name, week)
	if err != nil {
		return false
	}
	if code == domain.CodeAIRP || code == domain.CodeLC {
		return false
	}
	return e.isSpaced(name, week)
}

func (e *nfEngine) isSource(name string, week int) bool {
	code, err := e.grid.Get(name, week)
	if err != nil {
		return false
	}
	return e.rules.IsSourceRotation(code)
}

func (e *nfEngine) remainingFor(name string, kind domain.NightFloatKind) int {
	r := e.byName[name]
	if r == nil {
		return 0
	}
	have := e.assigned[name]
	count := 0
	for _, k := range have {
		if k == kind {
			count++
		}
	}
	if exact, ok := e.rules.RequiredCount(r.FuturePGY, kind); ok {
		return exact - count
	}
	if max, ok := e.rules.MaxTotal[r.FuturePGY]; ok {
		total := len(have)
		return max - total
	}
	return 0
}

func (e *nfEngine) assign(name string, week int, kind domain.NightFloatKind) {
	if e.assigned[name] == nil {
		e.assigned[name] = map[int]domain.NightFloatKind{}
	}
	e.assigned[name][week] = kind
	e.weeksOf[name] = append(e.weeksOf[name], week)
	sort.Ints(e.weeksOf[name])
}

// fillWindow assigns kind to the named residents within weeks, preferring
// weeks where the resident's base rotation is a preferred NF source, falling
// back to any eligible week when no source week remains (the first
// infeasibility relaxation: drop the source-set reward).
func (e *nfEngine) fillWindow(names []string, weeks []int, kind domain.NightFloatKind) {
	sorted := domain.SortedNames(names)
	for _, name := range sorted {
		need := e.remainingFor(name, kind)
		for pass := 0; pass < 2 && need > 0; pass++ {
			for _, w := range weeks {
				if need <= 0 {
					break
				}
				if !e.eligible(name, w) {
					continue
				}
				if pass == 0 && !e.isSource(name, w) {
					continue
				}
				e.assign(name, w, kind)
				need--
			}
		}
	}
}

// Solve runs the seven-layer night-float overlay. rules is typically
// domain.DefaultNFRuleSet, overridden via cfg.NFMinSpacingWeeks when set.
// airpBlockOf maps an R3's name to the block number of the AIRP session they
// personally attend (omit or leave unset for residents not on AIRP this
// year); it gates layer 4's avoidance rule.
func Solve(residents []*domain.Resident, grid *domain.Grid, bc *domain.BlockCalendar, rules domain.NFRuleSet, cfg config.Config, airpBlockOf map[string]int, logger obslog.Logger) (Result, error) {
	if logger == nil {
		logger = obslog.Nop{}
	}
	if cfg.NFMinSpacingWeeks > 0 {
		rules.MinSpacingWeeks = cfg.NFMinSpacingWeeks
	}
	e := newNFEngine(residents, grid, bc, rules, cfg, airpBlockOf)

	var r2, r3, r4, t32 []string
	for _, r := range residents {
		switch {
		case r.Pathways.Has(domain.T32):
			t32 = append(t32, r.Name)
		case r.FuturePGY == 2:
			r2 = append(r2, r.Name)
		case r.FuturePGY == 3:
			r3 = append(r3, r.Name)
		case r.FuturePGY == 4:
			r4 = append(r4, r.Name)
		}
	}
	nonT32 := func(names []string) []string {
		out := make([]string, 0, len(names))
		for _, n := range names {
			if !e.byName[n].Pathways.Has(domain.T32) {
				out = append(out, n)
			}
		}
		return out
	}

	// Layer 1: LC/CORE blocks — only R2 Mnf and R4 Snf2.
	lcCoreWeeks := append(e.blockWeeks(e.lcBlock), e.blockWeeks(e.coreBlock)...)
	e.fillWindow(nonT32(r2), lcCoreWeeks, domain.Mnf)
	e.fillWindow(nonT32(r4), lcCoreWeeks, domain.Snf2)

	// Layer 2: post-CORE blocks — R2 or R3 Mnf, R3 Snf2.
	coreRng, err := bc.Range(e.coreBlock)
	if err != nil {
		return Result{}, err
	}
	postCore := make([]int, 0)
	for w := coreRng.End; w < bc.TotalWeeks(); w++ {
		postCore = append(postCore, w)
	}
	e.fillWindow(nonT32(r2), postCore, domain.Mnf)
	e.fillWindow(nonT32(r3), postCore, domain.Mnf)
	e.fillWindow(nonT32(r3), postCore, domain.Snf2)

	// Layer 3: block 1 — only R3 Mnf.
	e.fillWindow(nonT32(r3), e.blockWeeks(1), domain.Mnf)

	// Layer 4: AIRP blocks — avoid the R3s personally attending that session.
	airpBlocks := map[int]bool{}
	for _, b := range e.airpBlockOf {
		airpBlocks[b] = true
	}
	for b := range airpBlocks {
		weeks := e.blockWeeks(b)
		attendees := map[string]bool{}
		for name, blk := range e.airpBlockOf {
			if blk == b {
				attendees[name] = true
			}
		}
		free := make([]string, 0)
		for _, name := range union(r2, r3, r4) {
			if !attendees[name] {
				free = append(free, name)
			}
		}
		e.fillWindow(nonT32(free), weeks, domain.Mnf)
		e.fillWindow(nonT32(free), weeks, domain.Snf2)
	}

	// Layer 5: general fill over every remaining week, everyone but T32.
	allWeeks := make([]int, bc.TotalWeeks())
	for w := range allWeeks {
		allWeeks[w] = w
	}
	all := union(r2, r3, r4)
	e.fillWindow(all, allWeeks, domain.Mnf)
	e.fillWindow(all, allWeeks, domain.Snf2)

	// Layer 6: T32 residents, held until last as a flexibility reserve.
	e.fillWindow(t32, allWeeks, domain.Mnf)
	e.fillWindow(t32, allWeeks, domain.Snf2)

	// Layer 7: spacing post-check. fillWindow's isSpaced guard makes a
	// violation structurally impossible, but the check is run explicitly so
	// a future change to the fill logic cannot silently break the invariant.
	var violators []string
	for name, weeks := range e.weeksOf {
		for i := 1; i < len(weeks); i++ {
			if weeks[i]-weeks[i-1] < rules.MinSpacingWeeks {
				violators = append(violators, name)
				break
			}
		}
	}
	if len(violators) > 0 {
		sort.Strings(violators)
		return Result{}, &ErrHardInfeasible{Residents: violators}
	}

	var unmet []string
	for _, r := range residents {
		need := 0
		for kind := range map[domain.NightFloatKind]bool{domain.Mnf: true, domain.Snf2: true} {
			if _, ok := e.rules.RequiredCount(r.FuturePGY, kind); ok {
				need += e.remainingFor(r.Name, kind)
			}
		}
		if need > 0 {
			unmet = append(unmet, r.Name)
		}
	}
	if len(unmet) > 0 {
		sort.Strings(unmet)
		logger.Warn("nf", "hard NF requirement unmet after relaxation", obslog.Fields{"residents": len(unmet)})
		return Result{}, &ErrHardInfeasible{Residents: unmet}
	}

	logger.Info("nf", "night float overlay complete", obslog.Fields{"residents": len(residents)})
	return Result{Assignments: e.assigned}, nil
}
