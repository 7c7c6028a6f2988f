package external

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"radsched/domain"
)

// PostgresConfig holds the connection parameters for the roster mirror
// database. Host/Port/User/Password/DBName/SSLMode mirror the libpq
// connection-string fields directly; there is no env-var fallback here,
// the caller builds the config from whatever source it prefers.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (c PostgresConfig) dsn() string {
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// OpenPostgres opens (but does not ping) a connection pool against the
// roster mirror. Callers that need an early connectivity check should call
// db.PingContext themselves; a schedule build proceeds without one and
// surfaces any failure on the first query.
func OpenPostgres(cfg PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("external: open postgres: %w", err)
	}
	return db, nil
}

// PostgresRosterSource reads the resident roster from a roster mirror
// table maintained outside the workbook (residents(name, future_pgy) plus
// one historical_weeks(resident, section, weeks) row per section/resident
// pair). It is an alternative to the workbook-backed RosterSource for
// programs that keep roster data in a database of record rather than a
// spreadsheet.
type PostgresRosterSource struct {
	DB *sql.DB
}

var _ RosterSource = PostgresRosterSource{}

func (s PostgresRosterSource) LoadRoster(ctx context.Context) ([]domain.Resident, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT name, future_pgy FROM residents ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("external: query residents: %w", err)
	}
	defer rows.Close()

	type seed struct {
		name string
		pgy  int
	}
	var seeds []seed
	for rows.Next() {
		var s seed
		if err := rows.Scan(&s.name, &s.pgy); err != nil {
			return nil, fmt.Errorf("external: scan resident row: %w", err)
		}
		seeds = append(seeds, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("external: iterate resident rows: %w", err)
	}

	hist, err := s.loadHistorical(ctx)
	if err != nil {
		return nil, err
	}

	residents := make([]domain.Resident, 0, len(seeds))
	for _, sd := range seeds {
		r, err := domain.NewResident(sd.name, sd.pgy, nil, domain.PreferenceRecord{}, hist[sd.name])
		if err != nil {
			return nil, fmt.Errorf("external: build resident %s: %w", sd.name, err)
		}
		residents = append(residents, r)
	}
	return residents, nil
}

func (s PostgresRosterSource) loadHistorical(ctx context.Context) (map[string]domain.HistoricalWeeks, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT resident, section, weeks FROM historical_weeks`)
	if err != nil {
		return nil, fmt.Errorf("external: query historical_weeks: %w", err)
	}
	defer rows.Close()

	out := map[string]domain.HistoricalWeeks{}
	for rows.Next() {
		var name, section string
		var weeks int
		if err := rows.Scan(&name, &section, &weeks); err != nil {
			return nil, fmt.Errorf("external: scan historical_weeks row: %w", err)
		}
		if out[name] == nil {
			out[name] = domain.HistoricalWeeks{}
		}
		out[name][domain.Section(section)] = weeks
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("external: iterate historical_weeks rows: %w", err)
	}
	return out, nil
}

// PostgresEnvelopeSource reads the staffing envelope from a
// staffing_envelope(code, week, lo, hi) table, an alternative to parsing
// the Base Schedule tab's envelope block directly.
type PostgresEnvelopeSource struct {
	DB *sql.DB
}

var _ EnvelopeSource = PostgresEnvelopeSource{}

func (s PostgresEnvelopeSource) LoadEnvelope(ctx context.Context, weeks int) (*domain.Envelope, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT code, week, lo, hi FROM staffing_envelope`)
	if err != nil {
		return nil, fmt.Errorf("external: query staffing_envelope: %w", err)
	}
	defer rows.Close()

	env := domain.NewEnvelope(weeks)
	for rows.Next() {
		var code string
		var week, lo, hi int
		if err := rows.Scan(&code, &week, &lo, &hi); err != nil {
			return nil, fmt.Errorf("external: scan staffing_envelope row: %w", err)
		}
		if err := env.Set(code, week, lo, hi); err != nil {
			return nil, fmt.Errorf("external: set envelope %s week %d: %w", code, week, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("external: iterate staffing_envelope rows: %w", err)
	}
	return env, nil
}
