package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"radsched/domain"
)

func TestRotationCatalog_LookupAndMustHave(t *testing.T) {
	cat := domain.NewRotationCatalog([]domain.RotationCode{
		{Code: domain.CodeMnuc, Section: domain.SectionNucMed, Hospital: domain.UCSF,
			EligiblePGY: map[int]bool{2: true, 3: true}},
	})

	rc, err := cat.Lookup(domain.CodeMnuc)
	require.NoError(t, err)
	require.Equal(t, domain.SectionNucMed, rc.Section)
	require.True(t, rc.EligibleFor(2))
	require.False(t, rc.EligibleFor(4))

	require.NoError(t, cat.MustHave(domain.CodeMnuc))
	require.ErrorIs(t, cat.MustHave("Bogus"), domain.ErrUnknownRotation)

	_, err = cat.Lookup("Bogus")
	require.ErrorIs(t, err, domain.ErrUnknownRotation)
}

func TestRotationCatalog_PayrollPrefixAutoRegistersAlias(t *testing.T) {
	cat := domain.NewRotationCatalog([]domain.RotationCode{
		{Code: "Pzzz", Section: domain.SectionBody, Hospital: domain.ZSFG},
	})
	rc, err := cat.Lookup("Pzzz")
	require.NoError(t, err)
	require.Equal(t, domain.UCSF, rc.Hospital, "P-prefixed codes collapse to UCSF regardless of declared hospital")
}

func TestRotationCatalog_SectionOfUnknownReturnsEmpty(t *testing.T) {
	cat := domain.NewRotationCatalog(nil)
	require.Equal(t, domain.Section(""), cat.SectionOf("Bogus"))
}
