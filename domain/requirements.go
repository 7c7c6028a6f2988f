package domain

// GraduationRequirement names a target number of credited weeks for one
// (pathway-context, section) pair. "Pathway-context" is deliberately looser
// than Pathway: a resident's generic (no-pathway)
// requirement is keyed under PathwayNone.
type GraduationRequirement struct {
	Pathway Pathway
	HasNone bool // true when this row applies to residents with no matching pathway
	Section Section
	Weeks   int
}

// PathwayNone is a sentinel "pathway" used to key the generic requirement
// row (applies regardless of which, if any, pathways a resident carries).
const PathwayNone Pathway = -1

// RequirementTable is the in-memory "graduation requirement table" a
// lookup from (pathway-or-none, section) to a target week count, built once
// from workbook configuration and treated as read-only thereafter.
type RequirementTable struct {
	rows map[requirementKey]int
}

type requirementKey struct {
	pathway Pathway
	section Section
}

// NewRequirementTable builds a table from rows. Later rows win on duplicate
// keys, matching a "last write wins" override semantic a config loader can
// rely on.
func NewRequirementTable(rows []GraduationRequirement) *RequirementTable {
	t := &RequirementTable{rows: make(map[requirementKey]int, len(rows))}
	for _, row := range rows {
		key := requirementKey{section: row.Section}
		if row.HasNone {
			key.pathway = PathwayNone
		} else {
			key.pathway = row.Pathway
		}
		t.rows[key] = row.Weeks
	}
	return t
}

// TargetWeeks returns the target week count for a section given a resident's
// pathway set. When the resident carries multiple pathways with requirements
// for the same section, the maximum target applies (the stricter
// obligation), falling back to the generic PathwayNone row when the
// resident carries no matching pathway row.
func (t *RequirementTable) TargetWeeks(pathways PathwaySet, section Section) int {
	best := -1
	found := false
	for _, p := range []Pathway{ESIR, ESNR, T32, NRDR} {
		if !pathways.Has(p) {
			continue
		}
		if w, ok := t.rows[requirementKey{pathway: p, section: section}]; ok {
			found = true
			if w > best {
				best = w
			}
		}
	}
	if found {
		return best
	}
	if w, ok := t.rows[requirementKey{pathway: PathwayNone, section: section}]; ok {
		return w
	}
	return 0
}

// SubstitutionRule describes the NucMed weighted-credit rule: N weeks of any
// code in From credit as one week of To, except when ForbiddenFor applies to
// the resident's pathway set (the NRDR carve-out).
type SubstitutionRule struct {
	From         []string
	To           Section
	Ratio        int // N weeks of From == 1 week of To-equivalent
	ForbiddenFor Pathway
	ForbiddenHas bool
}

// SubstitutionRules is the rule-set encoding of the 4:1 NucMed substitution:
// data, not a hard-coded branch.
var SubstitutionRules = []SubstitutionRule{
	{
		From:         []string{CodeMai, CodeMch, CodePeds, CodeMx},
		To:           SectionNucMed,
		Ratio:        4,
		ForbiddenFor: NRDR,
		ForbiddenHas: true,
	},
}

// ApplicableSubstitutions returns the subset of SubstitutionRules that apply
// to a resident given their pathway set (i.e. excludes any rule whose
// ForbiddenFor pathway the resident carries).
func ApplicableSubstitutions(pathways PathwaySet) []SubstitutionRule {
	out := make([]SubstitutionRule, 0, len(SubstitutionRules))
	for _, rule := range SubstitutionRules {
		if rule.ForbiddenHas && pathways.Has(rule.ForbiddenFor) {
			continue
		}
		out = append(out, rule)
	}
	return out
}

// CreditedWeeks computes total credited weeks for a section given raw
// per-code week counts (e.g. historical + current-year base-schedule tallies
// already bucketed by rotation code) and the resident's pathway set. Direct
// credit (codes whose own catalog section equals `section`) is summed as-is;
// substitution credit is added on top per ApplicableSubstitutions, each
// substitution source floor-divided by its Ratio.
func CreditedWeeks(section Section, directWeeks int, byCode map[string]int, pathways PathwaySet) int {
	total := directWeeks
	for _, rule := range ApplicableSubstitutions(pathways) {
		if rule.To != section {
			continue
		}
		subWeeks := 0
		for _, code := range rule.From {
			subWeeks += byCode[code]
		}
		total += subWeeks / rule.Ratio
	}
	return total
}
