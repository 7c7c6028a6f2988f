package r4_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"radsched/config"
	"radsched/domain"
	"radsched/r4"
)

func TestFillDeficiencies_PlacesBreastDirect(t *testing.T) {
	cfg := config.DefaultConfig
	cfg.COREBlock = 10
	// July 1, 2024 is a Monday, so block 1 of that year is 4 weeks long.
	bc, err := domain.DeriveBlockCalendar(2024)
	require.NoError(t, err)
	grid := domain.NewGrid([]string{"Amy"}, bc.TotalWeeks())
	cat := domain.NewRotationCatalog([]domain.RotationCode{
		{Code: domain.CodePcbi, Section: domain.SectionBreast, Hospital: domain.UCSF, EligiblePGY: map[int]bool{4: true}},
	})
	reqs := domain.NewRequirementTable([]domain.GraduationRequirement{
		{HasNone: true, Section: domain.SectionBreast, Weeks: 4},
	})

	residents := []*domain.Resident{
		r4resident(t, "Amy", nil, domain.PreferenceRecord{}),
	}
	result, err := r4.FillDeficiencies(residents, cat, grid, bc, reqs, cfg, nil)
	require.NoError(t, err)
	require.Equal(t, 0, result.Remaining["Amy"][domain.SectionBreast])

	row, err := grid.WeekRow("Amy")
	require.NoError(t, err)
	filled := 0
	for _, code := range row {
		if code == domain.CodePcbi {
			filled++
		}
	}
	require.Equal(t, 4, filled)
}

func TestFillDeficiencies_NRDRForbidsSubstitution(t *testing.T) {
	cfg := config.DefaultConfig
	cfg.COREBlock = 10
	bc, err := domain.DeriveBlockCalendar(2026)
	require.NoError(t, err)
	grid := domain.NewGrid([]string{"Amy"}, bc.TotalWeeks())
	cat := domain.NewRotationCatalog([]domain.RotationCode{
		{Code: domain.CodeMnuc, Section: domain.SectionNucMed, Hospital: domain.UCSF, EligiblePGY: map[int]bool{4: true}},
	})
	reqs := domain.NewRequirementTable([]domain.GraduationRequirement{
		{Pathway: domain.NRDR, Section: domain.SectionNucMed, Weeks: 4},
	})

	residents := []*domain.Resident{
		r4resident(t, "Amy", domain.PathwaySet{domain.NRDR: true}, domain.PreferenceRecord{}),
	}
	_, err = r4.FillDeficiencies(residents, cat, grid, bc, reqs, cfg, nil)
	require.NoError(t, err)

	row, err := grid.WeekRow("Amy")
	require.NoError(t, err)
	for _, code := range row {
		require.NotEqual(t, domain.CodeMai, code)
		require.NotEqual(t, domain.CodeMch, code)
	}
}
