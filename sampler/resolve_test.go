package sampler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"radsched/domain"
	"radsched/nf"
	"radsched/sampler"
)

func TestResolve_RewritesMsampIntoCorrectComposition(t *testing.T) {
	grid := domain.NewGrid([]string{"Amy"}, 8)
	for w := 0; w < 4; w++ {
		require.NoError(t, grid.SetLocked("Amy", w, domain.CodeMsamp, "r1"))
	}
	r, err := domain.NewResident("Amy", 1, nil, domain.PreferenceRecord{SamplerAIRPreference: domain.CodeMir}, nil)
	require.NoError(t, err)

	result, err := sampler.Resolve([]*domain.Resident{&r}, grid, nf.Result{Assignments: map[string]map[int]domain.NightFloatKind{}}, nil)
	require.NoError(t, err)

	counts := map[string]int{}
	for w := 0; w < 4; w++ {
		code, err := grid.Get("Amy", w)
		require.NoError(t, err)
		counts[code]++
	}
	require.Equal(t, 1, counts[domain.CodePcbi])
	require.Equal(t, 1, counts[domain.CodeMir])
	require.Equal(t, 2, counts[domain.CodeMnuc])
	require.Len(t, result.Resolved["Amy"], 4)
}

func TestResolve_DefaultsSecondSlotToMucic(t *testing.T) {
	grid := domain.NewGrid([]string{"Bo"}, 4)
	for w := 0; w < 4; w++ {
		require.NoError(t, grid.SetLocked("Bo", w, domain.CodeMsamp, "r1"))
	}
	r, err := domain.NewResident("Bo", 1, nil, domain.PreferenceRecord{}, nil)
	require.NoError(t, err)

	_, err = sampler.Resolve([]*domain.Resident{&r}, grid, nf.Result{Assignments: map[string]map[int]domain.NightFloatKind{}}, nil)
	require.NoError(t, err)

	found := false
	for w := 0; w < 4; w++ {
		code, err := grid.Get("Bo", w)
		require.NoError(t, err)
		if code == domain.CodeMucic {
			found = true
		}
	}
	require.True(t, found)
}
