package track_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"radsched/track"
)

func TestNewCatalog_RejectsEmptyBase(t *testing.T) {
	_, err := track.NewCatalog(nil)
	require.ErrorIs(t, err, track.ErrEmptyBaseSequence)
}

// TestRotationAt_MatchesFormula checks the derivation round-trip property:
// for any base sequence with L >= N, the derived sequence at block b matches
// ((t-1)+(b-1)*2) mod L directly.
func TestRotationAt_MatchesFormula(t *testing.T) {
	base := []string{"A", "B", "C", "D", "E", "F"}
	cat, err := track.NewCatalog(base, track.WithClassSize(3))
	require.NoError(t, err)

	for t2 := 1; t2 <= 3; t2++ {
		for b := 1; b <= 13; b++ {
			got, err := cat.RotationAt(t2, b)
			require.NoError(t, err)
			want := base[((t2-1)+(b-1)*2)%len(base)]
			require.Equal(t, want, got)
		}
	}
}

func TestCatalog_DuplicateAndMissedWarnings(t *testing.T) {
	base := []string{"A", "B"}

	dup, err := track.NewCatalog(base, track.WithClassSize(4))
	require.NoError(t, err)
	require.True(t, dup.DuplicateTrackWarning())
	require.False(t, dup.MissedRotationWarning())

	missed, err := track.NewCatalog([]string{"A", "B", "C", "D"}, track.WithClassSize(2))
	require.NoError(t, err)
	require.True(t, missed.MissedRotationWarning())
	require.False(t, missed.DuplicateTrackWarning())
}

func TestCatalog_OutOfRangeIndices(t *testing.T) {
	cat, err := track.NewCatalog([]string{"A", "B", "C"})
	require.NoError(t, err)

	_, err = cat.RotationAt(0, 1)
	require.ErrorIs(t, err, track.ErrInvalidTrackIndex)

	_, err = cat.RotationAt(1, 14)
	require.ErrorIs(t, err, track.ErrInvalidBlock)
}

func TestWithClassSize_PanicsOnNonPositive(t *testing.T) {
	require.Panics(t, func() { track.WithClassSize(0) })
}

func TestCatalog_SequenceIsCachedConsistently(t *testing.T) {
	cat, err := track.NewCatalog([]string{"A", "B", "C", "D"})
	require.NoError(t, err)

	seq1, err := cat.Sequence(2)
	require.NoError(t, err)
	seq2, err := cat.Sequence(2)
	require.NoError(t, err)
	require.Equal(t, seq1, seq2)
}
