package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"radsched/domain"
)

// jsonResident mirrors domain.Resident in a wire-friendly shape: the
// workbook parser this module depends on (out of scope, per the system's
// own boundary) is expected to produce exactly this shape from the
// Historical tab. JSON fixtures stand in for the workbook/survey files in
// this implementation, since no spreadsheet-format library is available;
// a production deployment swaps this adapter for one backed by the real
// workbook reader without touching any phase package.
type jsonResident struct {
	Name       string               `json:"name"`
	FuturePGY  int                  `json:"future_pgy"`
	Pathways   []string             `json:"pathways"`
	Historical map[string]int       `json:"historical"`
	Preference jsonPreferenceRecord `json:"preference"`
}

type jsonPreferenceRecord struct {
	TrackRank                       map[string]int `json:"track_rank"`
	SectionTop                      []string        `json:"section_top"`
	SectionBottom                   []string        `json:"section_bottom"`
	AIRPSessionRank                 map[string]int `json:"airp_session_rank"`
	NoCallWeeks                     []int           `json:"no_call_weeks"`
	VacationWeeks                   []int           `json:"vacation_weeks"`
	FSEChoice                       string          `json:"fse_choice"`
	ResearchCEPRequested            bool            `json:"research_cep_requested"`
	ResearchCEPSupplementaryFunding bool            `json:"research_cep_supplementary_funding"`
	SamplerAIRPreference            string          `json:"sampler_air_preference"`
	HarshR2Year                     bool            `json:"harsh_r2_year"`
}

var pathwayNames = map[string]domain.Pathway{
	"ESIR": domain.ESIR,
	"ESNR": domain.ESNR,
	"T32":  domain.T32,
	"NRDR": domain.NRDR,
}

func decodePathways(names []string) (domain.PathwaySet, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := domain.PathwaySet{}
	for _, n := range names {
		p, ok := pathwayNames[n]
		if !ok {
			return nil, fmt.Errorf("external: unknown pathway %q", n)
		}
		out[p] = true
	}
	return out, nil
}

func decodePreference(in jsonPreferenceRecord) domain.PreferenceRecord {
	trackRank := map[int]int{}
	for k, v := range in.TrackRank {
		var t int
		fmt.Sscanf(k, "%d", &t)
		trackRank[t] = v
	}
	airpRank := map[int]int{}
	for k, v := range in.AIRPSessionRank {
		var s int
		fmt.Sscanf(k, "%d", &s)
		airpRank[s] = v
	}
	noCall := map[int]bool{}
	for _, w := range in.NoCallWeeks {
		noCall[w] = true
	}
	vacation := map[int]bool{}
	for _, w := range in.VacationWeeks {
		vacation[w] = true
	}
	sectionTop := make([]domain.Section, 0, len(in.SectionTop))
	for _, s := range in.SectionTop {
		sectionTop = append(sectionTop, domain.Section(s))
	}
	sectionBottom := make([]domain.Section, 0, len(in.SectionBottom))
	for _, s := range in.SectionBottom {
		sectionBottom = append(sectionBottom, domain.Section(s))
	}
	return domain.PreferenceRecord{
		TrackRank:                       trackRank,
		SectionTop:                      sectionTop,
		SectionBottom:                   sectionBottom,
		AIRPSessionRank:                 airpRank,
		NoCallWeeks:                     noCall,
		VacationWeeks:                   vacation,
		FSEChoice:                       in.FSEChoice,
		ResearchCEPRequested:            in.ResearchCEPRequested,
		ResearchCEPSupplementaryFunding: in.ResearchCEPSupplementaryFunding,
		SamplerAIRPreference:            in.SamplerAIRPreference,
		HarshR2Year:                     in.HarshR2Year,
	}
}

// JSONRosterSource reads a roster fixture: a JSON array of jsonResident.
type JSONRosterSource struct {
	R io.Reader
}

var _ RosterSource = JSONRosterSource{}

func (s JSONRosterSource) LoadRoster(ctx context.Context) ([]domain.Resident, error) {
	var raw []jsonResident
	if err := json.NewDecoder(s.R).Decode(&raw); err != nil {
		return nil, fmt.Errorf("external: decode roster: %w", err)
	}
	out := make([]domain.Resident, 0, len(raw))
	for _, jr := range raw {
		pathways, err := decodePathways(jr.Pathways)
		if err != nil {
			return nil, err
		}
		hist := make(domain.HistoricalWeeks, len(jr.Historical))
		for section, weeks := range jr.Historical {
			hist[domain.Section(section)] = weeks
		}
		r, err := domain.NewResident(jr.Name, jr.FuturePGY, pathways, decodePreference(jr.Preference), hist)
		if err != nil {
			return nil, fmt.Errorf("external: build resident %s: %w", jr.Name, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// jsonRotationCode mirrors domain.RotationCode for the Key-tab fixture.
type jsonRotationCode struct {
	Code           string `json:"code"`
	Section        string `json:"section"`
	Hospital       string `json:"hospital"`
	EligiblePGY    []int  `json:"eligible_pgy"`
	ParticipatesNF bool   `json:"participates_nf"`
}

var hospitalNames = map[string]domain.HospitalSystem{
	"UCSF":  domain.UCSF,
	"ZSFG":  domain.ZSFG,
	"VA":    domain.VA,
	"OTHER": domain.OTHER,
	"":      domain.OTHER,
}

// JSONCatalogSource reads the rotation catalog fixture.
type JSONCatalogSource struct {
	R io.Reader
}

var _ RotationCatalogSource = JSONCatalogSource{}

func (s JSONCatalogSource) LoadRotationCatalog(ctx context.Context) (*domain.RotationCatalog, error) {
	var raw []jsonRotationCode
	if err := json.NewDecoder(s.R).Decode(&raw); err != nil {
		return nil, fmt.Errorf("external: decode rotation catalog: %w", err)
	}
	entries := make([]domain.RotationCode, 0, len(raw))
	for _, jc := range raw {
		eligible := map[int]bool{}
		for _, pgy := range jc.EligiblePGY {
			eligible[pgy] = true
		}
		hospital, ok := hospitalNames[jc.Hospital]
		if !ok {
			return nil, fmt.Errorf("external: unknown hospital system %q", jc.Hospital)
		}
		entries = append(entries, domain.RotationCode{
			Code:           jc.Code,
			Section:        domain.Section(jc.Section),
			Hospital:       hospital,
			EligiblePGY:    eligible,
			ParticipatesNF: jc.ParticipatesNF,
		})
	}
	return domain.NewRotationCatalog(entries), nil
}

// jsonEnvelopeRow is one (code, week, lo, hi) staffing-bound fixture row.
type jsonEnvelopeRow struct {
	Code string `json:"code"`
	Week int    `json:"week"`
	Lo   int    `json:"lo"`
	Hi   int    `json:"hi"`
}

// JSONEnvelopeSource reads the staffing envelope fixture.
type JSONEnvelopeSource struct {
	R io.Reader
}

var _ EnvelopeSource = JSONEnvelopeSource{}

func (s JSONEnvelopeSource) LoadEnvelope(ctx context.Context, weeks int) (*domain.Envelope, error) {
	var raw []jsonEnvelopeRow
	if err := json.NewDecoder(s.R).Decode(&raw); err != nil {
		return nil, fmt.Errorf("external: decode envelope: %w", err)
	}
	env := domain.NewEnvelope(weeks)
	for _, row := range raw {
		if err := env.Set(row.Code, row.Week, row.Lo, row.Hi); err != nil {
			return nil, fmt.Errorf("external: set envelope %s week %d: %w", row.Code, row.Week, err)
		}
	}
	return env, nil
}

// jsonScheduleOutput is the output document the JSONScheduleSink produces:
// every resident's written-out weekly codes and NF weeks, keyed by week index.
type jsonScheduleOutput struct {
	Grid map[string]map[int]string                `json:"grid"`
	NF   map[string]map[int]domain.NightFloatKind `json:"night_float"`
}

// JSONScheduleSink writes the final grid and NF overlay as a JSON document,
// standing in for the output-workbook writer's Base Schedule and Night
// Float tabs.
type JSONScheduleSink struct {
	W io.Writer
}

var _ ScheduleSink = JSONScheduleSink{}

func (s JSONScheduleSink) WriteSchedule(ctx context.Context, grid *domain.Grid, nfAssignments map[string]map[int]domain.NightFloatKind) error {
	residents := grid.Residents()
	snapshot := make(map[string]map[int]string, len(residents))
	for _, name := range residents {
		row, err := grid.WeekRow(name)
		if err != nil {
			return fmt.Errorf("external: read week row for %s: %w", name, err)
		}
		byWeek := make(map[int]string, len(row))
		for w, code := range row {
			if code != domain.Unassigned {
				byWeek[w] = code
			}
		}
		snapshot[name] = byWeek
	}

	out := jsonScheduleOutput{
		Grid: snapshot,
		NF:   nfAssignments,
	}
	enc := json.NewEncoder(s.W)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("external: encode schedule output: %w", err)
	}
	return nil
}

// Bundle holds everything the input-workbook side of a build needs, decoded
// together so the CLI driver reads one file rather than three. The real
// workbook has these as separate tabs (Historical, Key, Base Schedule); this
// fixture format folds them into one document for the adapter's sake.
type Bundle struct {
	Roster   []domain.Resident
	Catalog  *domain.RotationCatalog
	Envelope *domain.Envelope
}

type jsonBundle struct {
	Roster   []jsonResident     `json:"roster"`
	Catalog  []jsonRotationCode `json:"catalog"`
	Envelope []jsonEnvelopeRow  `json:"envelope"`
}

// LoadBundle decodes the combined input-workbook fixture r into a Bundle.
func LoadBundle(r io.Reader, weeks int) (Bundle, error) {
	var raw jsonBundle
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Bundle{}, fmt.Errorf("external: decode bundle: %w", err)
	}

	rosterBuf, err := json.Marshal(raw.Roster)
	if err != nil {
		return Bundle{}, fmt.Errorf("external: re-marshal roster section: %w", err)
	}
	residents, err := (JSONRosterSource{R: bytes.NewReader(rosterBuf)}).LoadRoster(context.Background())
	if err != nil {
		return Bundle{}, err
	}

	catalogBuf, err := json.Marshal(raw.Catalog)
	if err != nil {
		return Bundle{}, fmt.Errorf("external: re-marshal catalog section: %w", err)
	}
	catalog, err := (JSONCatalogSource{R: bytes.NewReader(catalogBuf)}).LoadRotationCatalog(context.Background())
	if err != nil {
		return Bundle{}, err
	}

	envBuf, err := json.Marshal(raw.Envelope)
	if err != nil {
		return Bundle{}, fmt.Errorf("external: re-marshal envelope section: %w", err)
	}
	env, err := (JSONEnvelopeSource{R: bytes.NewReader(envBuf)}).LoadEnvelope(context.Background(), weeks)
	if err != nil {
		return Bundle{}, err
	}

	return Bundle{Roster: residents, Catalog: catalog, Envelope: env}, nil
}

// jsonSurveyRow is one resident's preference-survey response, keyed by name
// so ApplySurvey can overlay it onto a roster already built from the
// Historical tab.
type jsonSurveyRow struct {
	Name       string               `json:"name"`
	Preference jsonPreferenceRecord `json:"preference"`
}

// JSONSurveySource reads the separate preference-survey fixture.
type JSONSurveySource struct {
	R io.Reader
}

var _ SurveySource = JSONSurveySource{}

func (s JSONSurveySource) LoadSurvey(ctx context.Context) (map[string]domain.PreferenceRecord, error) {
	var raw []jsonSurveyRow
	if err := json.NewDecoder(s.R).Decode(&raw); err != nil {
		return nil, fmt.Errorf("external: decode survey: %w", err)
	}
	out := make(map[string]domain.PreferenceRecord, len(raw))
	for _, row := range raw {
		out[row.Name] = decodePreference(row.Preference)
	}
	return out, nil
}

// ApplySurvey overlays each resident's survey-sourced preference record onto
// the roster (survey-first order: a later R3-4 Recs-tab pathway override,
// applied separately via domain.MergePathways, still takes precedence over
// anything here). Residents absent from the survey keep whatever preference
// record the roster already carried.
func ApplySurvey(residents []domain.Resident, survey map[string]domain.PreferenceRecord) []domain.Resident {
	out := make([]domain.Resident, len(residents))
	for i, r := range residents {
		if pref, ok := survey[r.Name]; ok {
			r.Preference = pref
		}
		out[i] = r
	}
	return out
}

// JSONTrackSource reads R1/R2 Tracks tab fixtures: one base sequence per
// PGY, keyed "1" or "2". Each derivation family is named, but this fixture
// format carries exactly one named sequence per PGY ("base"), since the
// program runs a single track family per class year.
type JSONTrackSource struct {
	R io.Reader
}

var _ TrackSource = JSONTrackSource{}

func (s JSONTrackSource) LoadTracks(ctx context.Context, pgy int) (map[string][]string, error) {
	var raw map[string][]string
	if err := json.NewDecoder(s.R).Decode(&raw); err != nil {
		return nil, fmt.Errorf("external: decode tracks: %w", err)
	}
	key := fmt.Sprintf("%d", pgy)
	seq, ok := raw[key]
	if !ok {
		return nil, fmt.Errorf("external: no base sequence registered for PGY %d", pgy)
	}
	return map[string][]string{"base": seq}, nil
}

// jsonPathwayOverride is one resident's R3-4 Recs-tab authoritative pathway
// row.
type jsonPathwayOverride struct {
	Name     string   `json:"name"`
	Pathways []string `json:"pathways"`
}

// JSONPathwayOverrideSource reads the R3-4 Recs tab fixture.
type JSONPathwayOverrideSource struct {
	R io.Reader
}

var _ PathwayOverrideSource = JSONPathwayOverrideSource{}

func (s JSONPathwayOverrideSource) LoadPathwayOverrides(ctx context.Context) (map[string]domain.PathwaySet, error) {
	var raw []jsonPathwayOverride
	if err := json.NewDecoder(s.R).Decode(&raw); err != nil {
		return nil, fmt.Errorf("external: decode pathway overrides: %w", err)
	}
	out := make(map[string]domain.PathwaySet, len(raw))
	for _, row := range raw {
		pathways, err := decodePathways(row.Pathways)
		if err != nil {
			return nil, err
		}
		if pathways == nil {
			pathways = domain.PathwaySet{}
		}
		out[row.Name] = pathways
	}
	return out, nil
}

// ApplyPathwayOverrides applies the recs-tab authoritative pathway set to
// every resident named in overrides, per domain.MergePathways (recs-provided
// wholesale-overwrites survey-advisory, never merely adds to it). Residents
// absent from overrides keep whatever pathway set the roster already
// carried.
func ApplyPathwayOverrides(residents []domain.Resident, overrides map[string]domain.PathwaySet) []domain.Resident {
	out := make([]domain.Resident, len(residents))
	for i, r := range residents {
		if recs, ok := overrides[r.Name]; ok {
			r.Pathways = domain.MergePathways(r.Pathways, recs, true)
		}
		out[i] = r
	}
	return out
}

