package r3_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"radsched/config"
	"radsched/domain"
	"radsched/r3"
)

func r3resident(t *testing.T, name string, rank map[int]int) *domain.Resident {
	t.Helper()
	r, err := domain.NewResident(name, 3, nil, domain.PreferenceRecord{AIRPSessionRank: rank}, nil)
	require.NoError(t, err)
	return &r
}

func TestAssignAIRP_RespectsCapacityAndRank(t *testing.T) {
	residents := []*domain.Resident{
		r3resident(t, "Amy", map[int]int{1: 1, 2: 2}),
		r3resident(t, "Bo", map[int]int{1: 1, 2: 2}),
		r3resident(t, "Cy", map[int]int{1: 1, 2: 2}),
		r3resident(t, "Dee", map[int]int{1: 2, 2: 1}),
	}
	cfg := config.DefaultConfig
	cfg.COREBlock = 10
	cfg.AIRPCapacityMin = 2 // 4 residents over 2 sessions cannot reach the default minimum of 3 each
	bc, err := domain.DeriveBlockCalendar(2026)
	require.NoError(t, err)
	grid := domain.NewGrid([]string{"Amy", "Bo", "Cy", "Dee"}, bc.TotalWeeks())

	result, err := r3.AssignAIRP(residents, []int{2, 3}, cfg, grid, bc, nil)
	require.NoError(t, err)
	require.Len(t, result.Assignment, 4)

	counts := map[int]int{}
	for _, s := range result.Assignment {
		counts[s]++
	}
	for s, n := range counts {
		require.GreaterOrEqual(t, n, cfg.AIRPCapacityMin, "session %d under minimum", s)
		require.LessOrEqual(t, n, cfg.AIRPCapacityMax, "session %d over maximum", s)
	}

	rng, err := bc.Range(3) // session 2 is the second entry of []int{2, 3}: block 3
	require.NoError(t, err)
	code, err := grid.Get("Amy", rng.Start)
	require.NoError(t, err)
	if result.Assignment["Amy"] == 2 {
		require.Equal(t, domain.CodeAIRP, code)
	}
}

func TestAssignAIRP_RejectsCapacityInfeasible(t *testing.T) {
	residents := []*domain.Resident{
		r3resident(t, "Amy", nil),
		r3resident(t, "Bo", nil),
		r3resident(t, "Cy", nil),
		r3resident(t, "Dee", nil),
		r3resident(t, "Ed", nil),
	}
	cfg := config.DefaultConfig
	cfg.COREBlock = 10
	bc, err := domain.DeriveBlockCalendar(2026)
	require.NoError(t, err)
	grid := domain.NewGrid([]string{"Amy", "Bo", "Cy", "Dee", "Ed"}, bc.TotalWeeks())

	_, err = r3.AssignAIRP(residents, []int{2}, cfg, grid, bc, nil)
	require.ErrorIs(t, err, r3.ErrAIRPCapacityInfeasible)
}

func TestAssignLC_RejectsUnsetCOREBlock(t *testing.T) {
	bc, err := domain.DeriveBlockCalendar(2026)
	require.NoError(t, err)
	grid := domain.NewGrid([]string{"Amy"}, bc.TotalWeeks())
	err = r3.AssignLC([]*domain.Resident{r3resident(t, "Amy", nil)}, config.DefaultConfig, grid, bc, nil)
	require.ErrorIs(t, err, r3.ErrCOREBlockUnset)
}

func TestAssignLC_LocksBlockBeforeCORE(t *testing.T) {
	cfg := config.DefaultConfig
	cfg.COREBlock = 6
	bc, err := domain.DeriveBlockCalendar(2026)
	require.NoError(t, err)
	grid := domain.NewGrid([]string{"Amy"}, bc.TotalWeeks())

	err = r3.AssignLC([]*domain.Resident{r3resident(t, "Amy", nil)}, cfg, grid, bc, nil)
	require.NoError(t, err)

	rng, err := bc.Range(5)
	require.NoError(t, err)
	code, err := grid.Get("Amy", rng.Start)
	require.NoError(t, err)
	require.Equal(t, domain.CodeLC, code)
}
