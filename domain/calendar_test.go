package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"radsched/domain"
)

// TestDeriveBlockCalendar_ThursdayJuly1 checks that July 1 falling on
// Thursday yields a Block 1 longer than 4 weeks and a correspondingly
// truncated Block 13, with all 13 blocks still totaling 52 weeks.
func TestDeriveBlockCalendar_ThursdayJuly1(t *testing.T) {
	// July 1, 2027 is a Thursday.
	bc, err := domain.DeriveBlockCalendar(2027)
	require.NoError(t, err)

	b1, err := bc.Range(1)
	require.NoError(t, err)
	require.Greater(t, b1.Weeks(), 4)

	b13, err := bc.Range(13)
	require.NoError(t, err)
	require.Less(t, b13.Weeks(), 4)

	require.Equal(t, 52, bc.TotalWeeks())
}

// TestDeriveBlockCalendar_MiddleBlocksAreFourWeeks checks blocks 2-12 are
// always exactly 4 weeks regardless of the July 1 weekday bucket.
func TestDeriveBlockCalendar_MiddleBlocksAreFourWeeks(t *testing.T) {
	for _, year := range []int{2024, 2025, 2026, 2027, 2028, 2029, 2030} {
		bc, err := domain.DeriveBlockCalendar(year)
		require.NoError(t, err)
		for b := 2; b <= 12; b++ {
			rng, err := bc.Range(b)
			require.NoError(t, err)
			require.Equalf(t, 4, rng.Weeks(), "year %d block %d", year, b)
		}
		require.Equal(t, 52, bc.TotalWeeks())
	}
}

// TestDeriveBlockCalendar_BlockOf checks week-to-block lookup round-trips.
func TestDeriveBlockCalendar_BlockOf(t *testing.T) {
	bc, err := domain.DeriveBlockCalendar(2026)
	require.NoError(t, err)
	for b := 1; b <= 13; b++ {
		rng, err := bc.Range(b)
		require.NoError(t, err)
		for w := rng.Start; w < rng.End; w++ {
			got, err := bc.BlockOf(w)
			require.NoError(t, err)
			require.Equal(t, b, got)
		}
	}
}

// TestDeriveBlockCalendar_UnsetYear ensures a zero year is rejected rather
// than silently deriving a bogus calendar.
func TestDeriveBlockCalendar_UnsetYear(t *testing.T) {
	_, err := domain.DeriveBlockCalendar(0)
	require.ErrorIs(t, err, domain.ErrCalendarYearUnset)
}
