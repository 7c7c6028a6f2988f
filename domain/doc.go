// Package domain is the residency scheduling data model: Resident,
// RotationCode, Section, HospitalSystem, Grid (the schedule grid),
// BlockCalendar, RequirementTable, Envelope (staffing), and NFRuleSet.
//
// Everything here is read by every solver phase; only Grid is written, and
// only through the phase-locking discipline: a phase writes a cell via
// Set/SetLocked and locks it before the next phase runs, and every later
// write to a locked cell fails with ErrCellLocked rather than silently
// clobbering a prior phase's decision. The one exception is
// Grid.ResolvePlaceholder, which rewrites a locked cell still holding a
// named placeholder code.
//
// Pathway flags are modeled as an independent set (PathwaySet), not an enum,
// since they are not mutually exclusive. The NucMed 4:1 substitution rule
// and the "P"-prefix hospital-system alias are both modeled as data
// (SubstitutionRules, the payroll-alias table) rather than branches.
package domain
