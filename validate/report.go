// Package validate runs the four independent post-build checks — staffing,
// graduation, hospital conflict, and NF rules — and aggregates their
// findings into one report.
package validate

import "sort"

// Severity orders a finding's urgency. Only Error severity fails the
// aggregate report's OK check.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Finding is one offending (resident, week) observation from a single
// check.
type Finding struct {
	Check    string
	Severity Severity
	Message  string
	Resident string
	Week     int // -1 when the finding is not week-specific
}

// Report aggregates findings from every check that ran.
type Report struct {
	Findings []Finding
}

// OK reports whether the report has zero Error-severity findings.
func (r Report) OK() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return false
		}
	}
	return true
}

func sortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Resident != findings[j].Resident {
			return findings[i].Resident < findings[j].Resident
		}
		return findings[i].Week < findings[j].Week
	})
}
