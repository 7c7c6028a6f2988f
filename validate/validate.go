package validate

import (
	"sync"

	"radsched/domain"
	"radsched/internal/obslog"
	"radsched/nf"
)

// Validate runs all four checks concurrently and concatenates their
// findings in a fixed order (staffing, graduation, hospital, NF) regardless
// of which goroutine finishes first, so the report is reproducible.
func Validate(
	residents []*domain.Resident,
	grid *domain.Grid,
	catalog *domain.RotationCatalog,
	reqs *domain.RequirementTable,
	env *domain.Envelope,
	bc *domain.BlockCalendar,
	nfResult nf.Result,
	rules domain.NFRuleSet,
	logger obslog.Logger,
) Report {
	if logger == nil {
		logger = obslog.Nop{}
	}

	var staffing, graduation, hospital, nfFindings []Finding
	var wg sync.WaitGroup
	wg.Add(4)
	go func() { defer wg.Done(); staffing = CheckStaffing(grid, env) }()
	go func() { defer wg.Done(); graduation = CheckGraduation(residents, grid, catalog, reqs) }()
	go func() { defer wg.Done(); hospital = CheckHospitalConflict(residents, grid, catalog, bc) }()
	go func() { defer wg.Done(); nfFindings = CheckNFRules(residents, nfResult, rules) }()
	wg.Wait()

	findings := make([]Finding, 0, len(staffing)+len(graduation)+len(hospital)+len(nfFindings))
	findings = append(findings, staffing...)
	findings = append(findings, graduation...)
	findings = append(findings, hospital...)
	findings = append(findings, nfFindings...)

	report := Report{Findings: findings}
	if !report.OK() {
		logger.Warn("validate", "aggregate report has error-severity findings", obslog.Fields{"findings": len(findings)})
	} else {
		logger.Info("validate", "aggregate report ok", obslog.Fields{"findings": len(findings)})
	}
	return report
}
