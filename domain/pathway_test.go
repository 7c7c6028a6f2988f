package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"radsched/domain"
)

func TestPathwaySet_NilSetHasNoMembers(t *testing.T) {
	var s domain.PathwaySet
	require.False(t, s.Has(domain.ESIR))
}

func TestPathwaySet_WithLeavesReceiverUntouched(t *testing.T) {
	base := domain.PathwaySet{}.With(domain.T32)
	extended := base.With(domain.NRDR)

	require.True(t, base.Has(domain.T32))
	require.False(t, base.Has(domain.NRDR))
	require.True(t, extended.Has(domain.T32))
	require.True(t, extended.Has(domain.NRDR))
}

func TestMergePathways_EmptyRecsOverridesNonEmptySurvey(t *testing.T) {
	survey := domain.PathwaySet{}.With(domain.ESIR)
	merged := domain.MergePathways(survey, domain.PathwaySet{}, true)
	require.False(t, merged.Has(domain.ESIR))
	require.Len(t, merged, 0)
}
