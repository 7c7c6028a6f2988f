package validate

import (
	"fmt"

	"github.com/exascience/pargo/parallel"

	"radsched/domain"
)

// CheckStaffing compares, for every (rotation code, week) pair registered in
// env, the live grid headcount against its envelope bounds. Weeks are swept
// in parallel (each goroutine only ever writes its own disjoint slice index,
// so the result is independent of scheduling order); findings are sorted
// before return for deterministic output.
func CheckStaffing(grid *domain.Grid, env *domain.Envelope) []Finding {
	codes := env.Codes()
	weeks := env.Weeks()
	perWeek := make([][]Finding, weeks)

	parallel.Range(0, weeks, 0, func(low, high int) {
		for w := low; w < high; w++ {
			var local []Finding
			for _, code := range codes {
				lo, hi := env.Bounds(code, w)
				headcount := grid.HeadcountAt(code, w)
				if headcount < lo {
					local = append(local, Finding{
						Check: "staffing", Severity: SeverityError, Week: w,
						Message: fmt.Sprintf("%s understaffed in week %d: have %d, need >= %d", code, w, headcount, lo),
					})
				}
				if hi >= 0 && headcount > hi {
					local = append(local, Finding{
						Check: "staffing", Severity: SeverityError, Week: w,
						Message: fmt.Sprintf("%s overstaffed in week %d: have %d, max %d", code, w, headcount, hi),
					})
				}
			}
			perWeek[w] = local
		}
	})

	var out []Finding
	for _, fs := range perWeek {
		out = append(out, fs...)
	}
	sortFindings(out)
	return out
}
