package validate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"radsched/domain"
	"radsched/nf"
	"radsched/validate"
)

func TestCheckStaffing_FlagsUnderstaffedWeek(t *testing.T) {
	grid := domain.NewGrid([]string{"Amy"}, 4)
	env := domain.NewEnvelope(4)
	require.NoError(t, env.Set(domain.CodeMnuc, 0, 2, 4))

	findings := validate.CheckStaffing(grid, env)
	require.NotEmpty(t, findings)
	require.Equal(t, validate.SeverityError, findings[0].Severity)
}

func TestCheckGraduation_FlagsShortfall(t *testing.T) {
	grid := domain.NewGrid([]string{"Amy"}, 4)
	cat := domain.NewRotationCatalog([]domain.RotationCode{
		{Code: domain.CodePcbi, Section: domain.SectionBreast, Hospital: domain.UCSF, EligiblePGY: map[int]bool{4: true}},
	})
	reqs := domain.NewRequirementTable([]domain.GraduationRequirement{
		{HasNone: true, Section: domain.SectionBreast, Weeks: 8},
	})
	r, err := domain.NewResident("Amy", 4, nil, domain.PreferenceRecord{}, domain.HistoricalWeeks{domain.SectionBreast: 0})
	require.NoError(t, err)

	findings := validate.CheckGraduation([]*domain.Resident{&r}, grid, cat, reqs)
	require.Len(t, findings, 1)
	require.Equal(t, "graduation", findings[0].Check)
}

func TestCheckGraduation_SkipsJuniorsWithoutT32(t *testing.T) {
	grid := domain.NewGrid([]string{"Amy"}, 4)
	cat := domain.NewRotationCatalog(nil)
	reqs := domain.NewRequirementTable([]domain.GraduationRequirement{
		{HasNone: true, Section: domain.SectionBreast, Weeks: 8},
	})
	r, err := domain.NewResident("Amy", 2, nil, domain.PreferenceRecord{}, nil)
	require.NoError(t, err)

	findings := validate.CheckGraduation([]*domain.Resident{&r}, grid, cat, reqs)
	require.Empty(t, findings)
}

func TestCheckNFRules_FlagsNoCallViolation(t *testing.T) {
	r, err := domain.NewResident("Amy", 2, nil, domain.PreferenceRecord{NoCallWeeks: map[int]bool{3: true}}, nil)
	require.NoError(t, err)

	result := nf.Result{Assignments: map[string]map[int]domain.NightFloatKind{
		"Amy": {3: domain.Mnf, 10: domain.Mnf},
	}}
	findings := validate.CheckNFRules([]*domain.Resident{&r}, result, domain.DefaultNFRuleSet)

	found := false
	for _, f := range findings {
		if f.Week == 3 {
			found = true
		}
	}
	require.True(t, found)
}

func TestValidate_AggregatesAllFourChecks(t *testing.T) {
	grid := domain.NewGrid([]string{"Amy"}, 4)
	env := domain.NewEnvelope(4)
	cat := domain.NewRotationCatalog(nil)
	reqs := domain.NewRequirementTable(nil)
	bc, err := domain.DeriveBlockCalendar(2026)
	require.NoError(t, err)
	r, err := domain.NewResident("Amy", 3, nil, domain.PreferenceRecord{}, nil)
	require.NoError(t, err)

	report := validate.Validate([]*domain.Resident{&r}, grid, cat, reqs, env, bc, nf.Result{Assignments: map[string]map[int]domain.NightFloatKind{}}, domain.DefaultNFRuleSet, nil)
	require.True(t, report.OK())
}
