package r1_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"radsched/domain"
	"radsched/r1"
	"radsched/track"
)

func threeR1s(t *testing.T) []*domain.Resident {
	t.Helper()
	var out []*domain.Resident
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		r, err := domain.NewResident(name, 1, nil, domain.PreferenceRecord{}, nil)
		require.NoError(t, err)
		out = append(out, &r)
	}
	return out
}

func TestAssign_RejectsMismatchedCardinality(t *testing.T) {
	residents := threeR1s(t)
	cat, err := track.NewCatalog([]string{"Mnuc", "Sbi"}, track.WithClassSize(2))
	require.NoError(t, err)
	bc, err := domain.DeriveBlockCalendar(2026)
	require.NoError(t, err)
	grid := domain.NewGrid([]string{"Alice", "Bob", "Carol"}, bc.TotalWeeks())

	_, err = r1.Assign(residents, cat, grid, bc, nil, nil)
	require.ErrorIs(t, err, r1.ErrResidentTrackMismatch)
}

func TestAssign_ProducesBijectionAndWritesGrid(t *testing.T) {
	residents := threeR1s(t)
	cat, err := track.NewCatalog([]string{"Mnuc", "Sbi", "Msamp"}, track.WithClassSize(3))
	require.NoError(t, err)
	bc, err := domain.DeriveBlockCalendar(2026)
	require.NoError(t, err)
	grid := domain.NewGrid([]string{"Alice", "Bob", "Carol"}, bc.TotalWeeks())

	result, err := r1.Assign(residents, cat, grid, bc, nil, nil)
	require.NoError(t, err)
	require.Len(t, result.Assignment, 3)

	seen := map[int]bool{}
	for _, t2 := range result.Assignment {
		require.False(t, seen[t2], "each track must be used exactly once")
		seen[t2] = true
	}

	row, err := grid.WeekRow("Alice")
	require.NoError(t, err)
	require.NotEqual(t, domain.Unassigned, row[0])

	owner, err := grid.LockedBy("Alice", 0)
	require.NoError(t, err)
	require.Equal(t, "r1", owner)
}
