package validate

import (
	"fmt"

	"radsched/domain"
)

// CheckHospitalConflict flags any (resident, block) whose cells span more
// than one non-OTHER hospital system.
func CheckHospitalConflict(residents []*domain.Resident, grid *domain.Grid, catalog *domain.RotationCatalog, bc *domain.BlockCalendar) []Finding {
	var out []Finding
	names := make([]string, 0, len(residents))
	for _, r := range residents {
		names = append(names, r.Name)
	}
	names = domain.SortedNames(names)

	for _, name := range names {
		for b := 1; b <= 13; b++ {
			rng, err := bc.Range(b)
			if err != nil {
				continue
			}
			seen, err := grid.HospitalSystemsInBlock(name, rng, catalog)
			if err != nil {
				out = append(out, Finding{Check: "hospital", Severity: SeverityError, Resident: name, Week: rng.Start, Message: err.Error()})
				continue
			}
			if len(seen) > 1 {
				out = append(out, Finding{
					Check: "hospital", Severity: SeverityError, Resident: name, Week: rng.Start,
					Message: fmt.Sprintf("%s carries %d hospital systems in block %d", name, len(seen), b),
				})
			}
		}
	}

	sortFindings(out)
	return out
}
