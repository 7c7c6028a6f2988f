package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"radsched/domain"
)

// TestCreditedWeeks_NRDRForbidsSubstitution checks that an NRDR resident's
// Mai/Mch/Mb/Mucic weeks do NOT convert to NucMed credit at 4:1; only direct
// Mnuc weeks count.
func TestCreditedWeeks_NRDRForbidsSubstitution(t *testing.T) {
	pathways := domain.PathwaySet{}.With(domain.NRDR)
	byCode := map[string]int{domain.CodeMai: 4, domain.CodeMch: 4, domain.CodeMb: 4, domain.CodeMucic: 4}

	credited := domain.CreditedWeeks(domain.SectionNucMed, 16, byCode, pathways)
	require.Equal(t, 16, credited, "NRDR must not receive substitution credit")
}

// TestCreditedWeeks_NonNRDRSubstitutes checks the 4:1 rule applies for a
// resident without NRDR.
func TestCreditedWeeks_NonNRDRSubstitutes(t *testing.T) {
	pathways := domain.PathwaySet{}.With(domain.T32)
	byCode := map[string]int{domain.CodeMai: 4, domain.CodeMx: 4}

	credited := domain.CreditedWeeks(domain.SectionNucMed, 10, byCode, pathways)
	require.Equal(t, 10+2, credited)
}

func TestRequirementTable_TargetWeeks_PrefersStricterPathway(t *testing.T) {
	table := domain.NewRequirementTable([]domain.GraduationRequirement{
		{HasNone: true, Section: domain.SectionNucMed, Weeks: 20},
		{Pathway: domain.NRDR, Section: domain.SectionNucMed, Weeks: 48},
	})

	generic := table.TargetWeeks(domain.PathwaySet{}, domain.SectionNucMed)
	require.Equal(t, 20, generic)

	nrdr := table.TargetWeeks(domain.PathwaySet{}.With(domain.NRDR), domain.SectionNucMed)
	require.Equal(t, 48, nrdr)
}

func TestMergePathways_RecsOverrideSurvey(t *testing.T) {
	survey := domain.PathwaySet{}.With(domain.T32)
	recs := domain.PathwaySet{}.With(domain.ESIR)

	merged := domain.MergePathways(survey, recs, true)
	require.True(t, merged.Has(domain.ESIR))
	require.False(t, merged.Has(domain.T32))

	unmerged := domain.MergePathways(survey, recs, false)
	require.True(t, unmerged.Has(domain.T32))
}

func TestHospitalSystemOf_PayrollAliasCollapsesToUCSF(t *testing.T) {
	domain.RegisterPayrollAlias("Pcbi")
	require.Equal(t, domain.UCSF, domain.HospitalSystemOf("Pcbi", domain.ZSFG))
}
