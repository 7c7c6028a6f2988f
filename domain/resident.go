package domain

// PreferenceRecord holds the per-resident digest produced by the (external)
// preference-survey parser, plus the (external) R3-4 Recs authoritative
// pathway overrides. Its fields are read by every solver phase but never
// written by one; phases only read and annotate the Resident they belong to.
type PreferenceRecord struct {
	// TrackRank[t] is resident's rank for track index t (rank 1 = most
	// preferred). Used by the R2 matcher.
	TrackRank map[int]int

	// SectionTop / SectionBottom are soft top/bottom section preferences
	// used as an R3 placement objective.
	SectionTop    []Section
	SectionBottom []Section

	// AIRPSessionRank[session] is the resident's rank for an AIRP session
	// index.
	AIRPSessionRank map[int]int

	// NoCallWeeks lists week indices the resident must not receive NF.
	NoCallWeeks map[int]bool

	// VacationWeeks lists week indices already committed to vacation.
	VacationWeeks map[int]bool

	// FSEChoice names the resident's requested FSE focus, if any.
	FSEChoice string

	// ResearchCEPRequested indicates the resident asked for a research/CEP
	// month; ResearchCEPSupplementaryFunding lifts the 2-month cap.
	ResearchCEPRequested            bool
	ResearchCEPSupplementaryFunding bool

	// SamplerAIRPreference records which of {Mucic, Mir} an R1 prefers for
	// the one-week sampler slot; empty means no preference expressed.
	SamplerAIRPreference string

	// HarshR2Year is an explicit human-curated annotation (never inferred)
	// used by the R4 capacity filler to redistribute unfilled Mx quota to a
	// resident whose R2 year was unusually demanding.
	HarshR2Year bool
}

// HistoricalWeeks tabulates, per section, the number of weeks a resident has
// already been credited prior to the target year. It feeds the graduation
// deficit computation together with the requirement table.
type HistoricalWeeks map[Section]int

// Resident is the immutable, once-populated identity record. FuturePGY is
// always the target-year level (workbook column B), never the prior-year
// level (column A) — callers constructing a Resident from the Historical
// tab must read the correct column; see external.RosterSource.
type Resident struct {
	Name       string
	FuturePGY  int
	Pathways   PathwaySet
	Preference PreferenceRecord
	Historical HistoricalWeeks
}

// NewResident validates and constructs a Resident. name must be non-empty;
// the PGY range is not validated here (rotation eligibility checks catch an
// out-of-catalog PGY naturally).
func NewResident(name string, futurePGY int, pathways PathwaySet, pref PreferenceRecord, hist HistoricalWeeks) (Resident, error) {
	if name == "" {
		return Resident{}, ErrEmptyResidentName
	}
	if hist == nil {
		hist = HistoricalWeeks{}
	}
	return Resident{
		Name:       name,
		FuturePGY:  futurePGY,
		Pathways:   pathways,
		Preference: pref,
		Historical: hist,
	}, nil
}

// Roster is an ordered, name-indexed collection of residents. Order is
// preserved from load for human-facing output; lookups are O(1) via index.
type Roster struct {
	byName map[string]*Resident
	order  []string
}

// NewRoster builds a Roster from residents, rejecting duplicate names.
func NewRoster(residents []Resident) (*Roster, error) {
	r := &Roster{byName: make(map[string]*Resident, len(residents)), order: make([]string, 0, len(residents))}
	for i := range residents {
		res := residents[i]
		if _, exists := r.byName[res.Name]; exists {
			return nil, ErrDuplicateResident
		}
		r.byName[res.Name] = &res
		r.order = append(r.order, res.Name)
	}
	return r, nil
}

// Get returns the resident by name.
func (r *Roster) Get(name string) (*Resident, bool) {
	res, ok := r.byName[name]
	return res, ok
}

// Names returns resident names in load order.
func (r *Roster) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ByPGY returns the names of residents at the given future PGY, in the
// Roster's stable load order (solvers sort further by name where a
// deterministic tie-break is required).
func (r *Roster) ByPGY(pgy int) []string {
	out := make([]string, 0)
	for _, name := range r.order {
		if r.byName[name].FuturePGY == pgy {
			out = append(out, name)
		}
	}
	return out
}

// Len reports the roster size.
func (r *Roster) Len() int { return len(r.order) }
