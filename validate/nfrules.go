package validate

import (
	"fmt"
	"sort"

	"radsched/domain"
	"radsched/nf"
)

// CheckNFRules verifies, per resident, the required NF count per kind (or
// combined max for R3), minimum spacing, and that no assignment landed on a
// no-call week.
func CheckNFRules(residents []*domain.Resident, result nf.Result, rules domain.NFRuleSet) []Finding {
	var out []Finding
	names := make([]string, 0, len(residents))
	byName := make(map[string]*domain.Resident, len(residents))
	for _, r := range residents {
		byName[r.Name] = r
		names = append(names, r.Name)
	}
	names = domain.SortedNames(names)

	for _, name := range names {
		r := byName[name]
		assignment := result.Assignments[name]

		weeks := make([]int, 0, len(assignment))
		for w, kind := range assignment {
			weeks = append(weeks, w)
			if r.Preference.NoCallWeeks != nil && r.Preference.NoCallWeeks[w] {
				out = append(out, Finding{
					Check: "nf", Severity: SeverityError, Resident: name, Week: w,
					Message: fmt.Sprintf("%s assigned %s in a declared no-call week %d", name, kind, w),
				})
			}
		}
		sort.Ints(weeks)
		for i := 1; i < len(weeks); i++ {
			if weeks[i]-weeks[i-1] < rules.MinSpacingWeeks {
				out = append(out, Finding{
					Check: "nf", Severity: SeverityError, Resident: name, Week: weeks[i],
					Message: fmt.Sprintf("%s has NF weeks %d and %d closer than the %d-week minimum", name, weeks[i-1], weeks[i], rules.MinSpacingWeeks),
				})
			}
		}

		byKind := map[domain.NightFloatKind]int{}
		for _, kind := range assignment {
			byKind[kind]++
		}
		for kind, exact := range rules.CountByPGYKind[r.FuturePGY] {
			if byKind[kind] != exact {
				out = append(out, Finding{
					Check: "nf", Severity: SeverityError, Resident: name, Week: -1,
					Message: fmt.Sprintf("%s has %d %s weeks, requires exactly %d", name, byKind[kind], kind, exact),
				})
			}
		}
		if max, ok := rules.MaxTotal[r.FuturePGY]; ok && len(assignment) > max {
			out = append(out, Finding{
				Check: "nf", Severity: SeverityError, Resident: name, Week: -1,
				Message: fmt.Sprintf("%s has %d total NF weeks, exceeds the %d maximum", name, len(assignment), max),
			})
		}
	}

	sortFindings(out)
	return out
}
