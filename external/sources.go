// Package external names the boundary between this module and the input
// workbook, the preference survey, and the output workbook — all out of
// scope per the core's own rules, and reached only through these
// interfaces. A driver wires a concrete adapter (workbook reader, Postgres
// mirror, or a test double) behind each one; no phase package imports a
// concrete adapter directly.
package external

import (
	"context"

	"radsched/domain"
)

// RosterSource supplies the resident roster: name, future PGY, and
// historical weeks per section, read from the workbook's Historical tab
// (column B for future PGY, never column A).
type RosterSource interface {
	LoadRoster(ctx context.Context) ([]domain.Resident, error)
}

// RotationCatalogSource supplies the Key tab: code, section, hospital
// system, eligible PGYs, NF participation.
type RotationCatalogSource interface {
	LoadRotationCatalog(ctx context.Context) (*domain.RotationCatalog, error)
}

// TrackSource supplies R1/R2 track base sequences and their
// derivation-metadata. Explicit grid cells are never read as values from
// this source — they are formula-derived and recomputed by the core.
type TrackSource interface {
	LoadTracks(ctx context.Context, pgy int) (map[string][]string, error)
}

// PreferenceDigestSource supplies the manually curated preference summary
// per resident (the Preferences tab).
type PreferenceDigestSource interface {
	LoadPreferences(ctx context.Context) (map[string]domain.PreferenceRecord, error)
}

// PathwayOverrideSource supplies the R3-4 Recs tab's authoritative pathway
// flags, which override anything the preference survey advised.
type PathwayOverrideSource interface {
	LoadPathwayOverrides(ctx context.Context) (map[string]domain.PathwaySet, error)
}

// EnvelopeSource supplies the Base Schedule tab's staffing envelope block.
type EnvelopeSource interface {
	LoadEnvelope(ctx context.Context, weeks int) (*domain.Envelope, error)
}

// SurveySource supplies the separate preference-survey file: track
// rankings, section top/bottom, AIRP rankings, no-call ranges, vacation,
// FSE choice, research/CEP request. Missing or unparseable cells are
// logged by the adapter, not returned as a fatal error.
type SurveySource interface {
	LoadSurvey(ctx context.Context) (map[string]domain.PreferenceRecord, error)
}

// ScheduleSink is the write target: the output workbook's Base Schedule and
// Night Float tabs. The input workbook is never mutated directly — an
// adapter copies it first and writes into the copy.
type ScheduleSink interface {
	WriteSchedule(ctx context.Context, grid *domain.Grid, nfAssignments map[string]map[int]domain.NightFloatKind) error
}
