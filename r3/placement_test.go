package r3_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"radsched/config"
	"radsched/domain"
	"radsched/r3"
)

func placementCatalog() *domain.RotationCatalog {
	return domain.NewRotationCatalog([]domain.RotationCode{
		{Code: domain.CodePcbi, Section: domain.SectionBreast, Hospital: domain.UCSF, EligiblePGY: map[int]bool{3: true}},
		{Code: domain.CodeMnuc, Section: domain.SectionNucMed, Hospital: domain.UCSF, EligiblePGY: map[int]bool{3: true}},
		{Code: domain.CodeZir, Section: domain.SectionIR, Hospital: domain.ZSFG, EligiblePGY: map[int]bool{3: true}},
	})
}

func TestPlaceGraduationRequirements_FillsBreastDeficit(t *testing.T) {
	cat := placementCatalog()
	cfg := config.DefaultConfig
	cfg.COREBlock = 10
	// July 1, 2024 is a Monday, so block 1 of that year is 4 weeks long.
	bc, err := domain.DeriveBlockCalendar(2024)
	require.NoError(t, err)
	grid := domain.NewGrid([]string{"Amy"}, bc.TotalWeeks())

	r, err := domain.NewResident("Amy", 3, nil, domain.PreferenceRecord{}, nil)
	require.NoError(t, err)

	deficits := map[string]map[domain.Section]int{"Amy": {domain.SectionBreast: 4}}
	result, err := r3.PlaceGraduationRequirements([]*domain.Resident{&r}, deficits, cat, grid, bc, nil, cfg, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 4, result.Placed["Amy"][domain.SectionBreast])
	require.Equal(t, 0, result.Remaining["Amy"][domain.SectionBreast])
}

func TestPlaceGraduationRequirements_NeverPlacesZirBeforeLC(t *testing.T) {
	cat := placementCatalog()
	cfg := config.DefaultConfig
	cfg.COREBlock = 3 // LC block = 2
	bc, err := domain.DeriveBlockCalendar(2026)
	require.NoError(t, err)
	grid := domain.NewGrid([]string{"Amy"}, bc.TotalWeeks())

	r, err := domain.NewResident("Amy", 3, nil, domain.PreferenceRecord{}, nil)
	require.NoError(t, err)

	deficits := map[string]map[domain.Section]int{"Amy": {domain.SectionIR: 4}}
	_, err = r3.PlaceGraduationRequirements([]*domain.Resident{&r}, deficits, cat, grid, bc, nil, cfg, nil, nil)
	require.NoError(t, err)

	for b := 1; b < cfg.COREBlock-1; b++ {
		rng, err := bc.Range(b)
		require.NoError(t, err)
		for w := rng.Start; w < rng.End; w++ {
			code, err := grid.Get("Amy", w)
			require.NoError(t, err)
			require.NotEqual(t, domain.CodeZir, code)
		}
	}
}

func TestAnchors_ReportsOnlyPositiveRemainders(t *testing.T) {
	remaining := map[string]map[domain.Section]int{
		"Amy": {domain.SectionBreast: 0, domain.SectionNucMed: 4},
	}
	out := r3.Anchors(remaining, nil)
	require.Equal(t, map[domain.Section]int{domain.SectionNucMed: 4}, out["Amy"])
	require.NotContains(t, out["Amy"], domain.SectionBreast)
}
