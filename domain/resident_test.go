package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"radsched/domain"
)

func TestNewResident_RejectsEmptyName(t *testing.T) {
	_, err := domain.NewResident("", 3, nil, domain.PreferenceRecord{}, nil)
	require.ErrorIs(t, err, domain.ErrEmptyResidentName)
}

func TestNewResident_NilHistoricalDefaultsToEmptyMap(t *testing.T) {
	res, err := domain.NewResident("Alice", 3, nil, domain.PreferenceRecord{}, nil)
	require.NoError(t, err)
	require.NotNil(t, res.Historical)
	require.Len(t, res.Historical, 0)
}

func TestNewRoster_RejectsDuplicateNames(t *testing.T) {
	a, _ := domain.NewResident("Alice", 2, nil, domain.PreferenceRecord{}, nil)
	b, _ := domain.NewResident("Alice", 3, nil, domain.PreferenceRecord{}, nil)

	_, err := domain.NewRoster([]domain.Resident{a, b})
	require.ErrorIs(t, err, domain.ErrDuplicateResident)
}

func TestRoster_ByPGYFiltersAndPreservesLoadOrder(t *testing.T) {
	alice, _ := domain.NewResident("Alice", 2, nil, domain.PreferenceRecord{}, nil)
	bob, _ := domain.NewResident("Bob", 3, nil, domain.PreferenceRecord{}, nil)
	carol, _ := domain.NewResident("Carol", 2, nil, domain.PreferenceRecord{}, nil)

	roster, err := domain.NewRoster([]domain.Resident{alice, bob, carol})
	require.NoError(t, err)
	require.Equal(t, 3, roster.Len())
	require.Equal(t, []string{"Alice", "Carol"}, roster.ByPGY(2))

	got, ok := roster.Get("Bob")
	require.True(t, ok)
	require.Equal(t, 3, got.FuturePGY)

	_, ok = roster.Get("Nobody")
	require.False(t, ok)
}
