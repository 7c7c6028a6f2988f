package validate

import (
	"fmt"

	"radsched/domain"
)

// CheckGraduation computes cumulative credited weeks per section (historical
// plus current-year base-schedule cells; NF overlay weeks are excluded, since
// NF sits on top of a base rotation rather than replacing it) for every R4
// and every T32 junior, and compares the total against reqs.
func CheckGraduation(residents []*domain.Resident, grid *domain.Grid, catalog *domain.RotationCatalog, reqs *domain.RequirementTable) []Finding {
	var out []Finding
	names := make([]string, 0, len(residents))
	byName := make(map[string]*domain.Resident, len(residents))
	for _, r := range residents {
		byName[r.Name] = r
		names = append(names, r.Name)
	}
	names = domain.SortedNames(names)

	sections := []domain.Section{
		domain.SectionBreast, domain.SectionNucMed, domain.SectionMSK,
		domain.SectionPeds, domain.SectionIR, domain.SectionNeuro,
		domain.SectionBody, domain.SectionChest, domain.SectionCardiac,
	}

	for _, name := range names {
		r := byName[name]
		if r.FuturePGY != 4 && !r.Pathways.Has(domain.T32) {
			continue
		}
		row, err := grid.WeekRow(name)
		if err != nil {
			out = append(out, Finding{Check: "graduation", Severity: SeverityError, Resident: name, Week: -1, Message: err.Error()})
			continue
		}
		byCode := map[string]int{}
		for _, code := range row {
			if code == domain.Unassigned {
				continue
			}
			byCode[code]++
		}

		for _, section := range sections {
			target := reqs.TargetWeeks(r.Pathways, section)
			if target == 0 {
				continue
			}
			direct := r.Historical[section]
			for code, weeks := range byCode {
				if catalog.SectionOf(code) == section {
					direct += weeks
				}
			}
			credited := domain.CreditedWeeks(section, direct, byCode, r.Pathways)
			if credited < target {
				out = append(out, Finding{
					Check: "graduation", Severity: SeverityError, Resident: name, Week: -1,
					Message: fmt.Sprintf("%s: %d of %d %s weeks credited", name, credited, target, section),
				})
			}
		}
	}

	sortFindings(out)
	return out
}
