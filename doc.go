// Package radsched builds an academic-year rotation schedule for a
// diagnostic radiology residency program.
//
// A build runs nine phases in strict order against one shared domain.Grid:
// R1 track-derived assignment, R2 track matching (bipartite, via an
// augmenting-path feasibility check internal to r2), R3 (AIRP placement,
// Learning Center block, graduation-requirement placement, research/
// elective anchors), R4 (fixed commitments, deficiency fill, capacity
// fill), a night-float overlay, R1 sampler resolution (warp-distance
// curve matching internal to sampler), and finally validation across
// staffing, graduation, hospital-conflict, and night-float rules.
//
// Package layout:
//
//	domain     - grid, calendar, rotation catalog, requirements, envelope
//	config     - cross-phase tunables
//	track      - R1/R2 base-sequence derivation
//	r1/r2/r3/r4 - the four builder phases, one package per PGY cohort
//	nf         - the night-float overlay solver
//	sampler    - R1 placeholder resolution
//	validate   - the four post-build checks
//	pipeline   - phase orchestration
//	external   - the workbook/survey/output boundary
//	cmd/radsched - the CLI driver
package radsched
