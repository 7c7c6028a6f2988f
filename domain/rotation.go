package domain

// Section is a coarse clinical grouping used for graduation accounting and
// quartile-based deficiency analysis. Multiple rotation codes may credit the
// same section (e.g. Vb, Mb, Ser all credit MSK).
type Section string

// Canonical sections. Additional sections may be registered by a catalog
// loader; these constants exist for the rules that are hard-coded elsewhere
// (graduation hard blocks, the NucMed substitution set).
const (
	SectionBreast  Section = "Breast"
	SectionNucMed  Section = "NucMed"
	SectionMSK     Section = "MSK"
	SectionPeds    Section = "Peds"
	SectionIR      Section = "IR"
	SectionNeuro   Section = "Neuro"
	SectionBody    Section = "Body"
	SectionChest   Section = "Chest"
	SectionCardiac Section = "Cardiac"
)

// NightFloatKind enumerates the shift kinds the NF overlay solver writes.
type NightFloatKind string

const (
	Mnf  NightFloatKind = "Mnf"
	Snf  NightFloatKind = "Snf"
	Snf2 NightFloatKind = "Snf2"
)

// Well-known rotation codes referenced by name in hard-coded rules
// (graduation hard blocks, sampler resolution, NF source-set). Catalog
// entries for these must exist before the pipeline runs a phase that names
// them; see RotationCatalog.MustHave.
const (
	CodeMsamp = "Msamp" // R1 placeholder resolved by the sampler
	CodeAIRP  = "AIRP"
	CodeLC    = "LC"
	CodePcbi  = "Pcbi"
	CodeMucic = "Mucic"
	CodeMir   = "Mir"
	CodeMnuc  = "Mnuc"
	CodeMai   = "Mai"
	CodeMch   = "Mch"
	CodeMb    = "Mb"
	CodeVb    = "Vb"
	CodeSer   = "Ser"
	CodePeds  = "Peds"
	CodeMx    = "Mx"
	CodeZir   = "Zir"
	CodePcmb  = "Pcmb"
	CodeCEP   = "CEP"
	CodeMneu  = "Mneu"
	CodeSmr   = "Smr"
)

// RotationCode describes one entry of the "Key" tab: a short symbolic
// identifier together with the attributes every solver phase and the
// validator need.
type RotationCode struct {
	Code           string
	Section        Section
	Hospital       HospitalSystem
	EligiblePGY    map[int]bool
	ParticipatesNF bool
}

// EligibleFor reports whether this rotation may be assigned to a resident at
// the given future PGY level.
func (r RotationCode) EligibleFor(pgy int) bool {
	return r.EligiblePGY[pgy]
}

// RotationCatalog is the in-memory form of the "Key" tab: code -> attributes.
// It is built once (typically by an external.RotationCatalogSource adapter)
// and treated as read-only configuration thereafter.
type RotationCatalog struct {
	byCode map[string]RotationCode
}

// NewRotationCatalog builds a catalog from a flat list of entries, applying
// the payroll-alias override for any code beginning with "P".
func NewRotationCatalog(entries []RotationCode) *RotationCatalog {
	cat := &RotationCatalog{byCode: make(map[string]RotationCode, len(entries))}
	for _, e := range entries {
		if len(e.Code) > 0 && e.Code[0] == 'P' {
			RegisterPayrollAlias(e.Code)
		}
		e.Hospital = HospitalSystemOf(e.Code, e.Hospital)
		cat.byCode[e.Code] = e
	}
	return cat
}

// Lookup returns the catalog entry for code, or ErrUnknownRotation.
func (c *RotationCatalog) Lookup(code string) (RotationCode, error) {
	rc, ok := c.byCode[code]
	if !ok {
		return RotationCode{}, ErrUnknownRotation
	}
	return rc, nil
}

// MustHave validates that every code in codes exists in the catalog. Used at
// pipeline bootstrap to fail fast rather than discovering a missing
// hard-coded code mid-phase.
func (c *RotationCatalog) MustHave(codes ...string) error {
	for _, code := range codes {
		if _, ok := c.byCode[code]; !ok {
			return ErrUnknownRotation
		}
	}
	return nil
}

// SectionOf is a convenience wrapper returning the empty Section when the
// rotation is unknown; callers that must fail on an
// unknown code should use Lookup directly.
func (c *RotationCatalog) SectionOf(code string) Section {
	if rc, ok := c.byCode[code]; ok {
		return rc.Section
	}
	return ""
}
