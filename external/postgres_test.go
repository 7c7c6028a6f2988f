package external_test

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"radsched/domain"
	"radsched/external"
)

func TestPostgresRosterSource_LoadRoster(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT name, future_pgy FROM residents ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "future_pgy"}).
			AddRow("Alvarez", 1).
			AddRow("Boyd", 2))
	mock.ExpectQuery(`SELECT resident, section, weeks FROM historical_weeks`).
		WillReturnRows(sqlmock.NewRows([]string{"resident", "section", "weeks"}).
			AddRow("Boyd", "Mnuc", 4))

	source := external.PostgresRosterSource{DB: db}
	residents, err := source.LoadRoster(context.Background())
	require.NoError(t, err)
	require.Len(t, residents, 2)
	require.Equal(t, "Alvarez", residents[0].Name)
	require.Equal(t, 1, residents[0].FuturePGY)
	require.Equal(t, "Boyd", residents[1].Name)
	require.Equal(t, 4, residents[1].Historical[domain.Section("Mnuc")])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRosterSource_LoadRoster_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT name, future_pgy FROM residents ORDER BY name`).
		WillReturnError(errors.New("connection refused"))

	source := external.PostgresRosterSource{DB: db}
	_, err = source.LoadRoster(context.Background())
	require.Error(t, err)
}

func TestPostgresEnvelopeSource_LoadEnvelope(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT code, week, lo, hi FROM staffing_envelope`).
		WillReturnRows(sqlmock.NewRows([]string{"code", "week", "lo", "hi"}).
			AddRow("Mnuc", 0, 1, 2).
			AddRow("Mnuc", 1, 1, 2))

	source := external.PostgresEnvelopeSource{DB: db}
	env, err := source.LoadEnvelope(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, env)

	require.NoError(t, mock.ExpectationsWereMet())
}
