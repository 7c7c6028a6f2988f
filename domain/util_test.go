package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"radsched/domain"
)

func TestPartitionByName_OddLengthGivesFirstHalfTheCeiling(t *testing.T) {
	first, second := domain.PartitionByName([]string{"Carol", "Alice", "Bob"})
	require.Equal(t, []string{"Alice", "Bob"}, first)
	require.Equal(t, []string{"Carol"}, second)
}

func TestPartitionByName_EvenLengthSplitsInHalf(t *testing.T) {
	first, second := domain.PartitionByName([]string{"Dan", "Carol", "Bob", "Alice"})
	require.Equal(t, []string{"Alice", "Bob"}, first)
	require.Equal(t, []string{"Carol", "Dan"}, second)
}

func TestSortedNames_Deterministic(t *testing.T) {
	got := domain.SortedNames([]string{"Zed", "Amy", "Mike"})
	require.Equal(t, []string{"Amy", "Mike", "Zed"}, got)
}
