package domain

import "sync"

// Unassigned is the marker held by a grid cell with no rotation code yet.
const Unassigned = ""

// gridCell holds one (resident, week) slot: the rotation code (or
// Unassigned) and, once a phase has finished with it, the name of the phase
// that locked it. Locking is advisory: Set refuses to overwrite a
// locked cell regardless of which phase calls it.
type gridCell struct {
	code   string
	locked bool
	owner  string
}

// Grid is the schedule grid: a dense matrix indexed by
// (resident, week-index in [0, weeks)). It is the single mutable resource
// the pipeline passes between phases; each phase has exclusive write
// access to the rows belonging to the residents it processes, enforced here
// only at the cell-lock level, not at the row level (row ownership is a
// pipeline-level convention, not a Grid invariant).
type Grid struct {
	mu        sync.RWMutex
	weeks     int
	residents []string
	index     map[string]int
	cells     map[string][]gridCell
}

// NewGrid allocates an empty Grid for the given residents and week horizon.
func NewGrid(residentNames []string, weeks int) *Grid {
	g := &Grid{
		weeks:     weeks,
		residents: append([]string(nil), residentNames...),
		index:     make(map[string]int, len(residentNames)),
		cells:     make(map[string][]gridCell, len(residentNames)),
	}
	for i, name := range residentNames {
		g.index[name] = i
		g.cells[name] = make([]gridCell, weeks)
	}
	return g
}

// Weeks returns the grid's week horizon.
func (g *Grid) Weeks() int { return g.weeks }

// Residents returns the resident names in load order.
func (g *Grid) Residents() []string {
	out := make([]string, len(g.residents))
	copy(out, g.residents)
	return out
}

func (g *Grid) validCell(resident string, week int) error {
	if _, ok := g.index[resident]; !ok {
		return ErrUnknownResident
	}
	if week < 0 || week >= g.weeks {
		return ErrWeekOutOfRange
	}
	return nil
}

// Get returns the rotation code at (resident, week), or Unassigned.
func (g *Grid) Get(resident string, week int) (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if err := g.validCell(resident, week); err != nil {
		return "", err
	}
	return g.cells[resident][week].code, nil
}

// Set writes code into (resident, week). It fails with ErrCellLocked if the
// cell was locked by a previous call to Lock or SetLocked, and with
// ErrCellOccupied if the cell already holds a non-empty code and overwrite
// is false.
func (g *Grid) Set(resident string, week int, code string, overwrite bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.validCell(resident, week); err != nil {
		return err
	}
	cell := &g.cells[resident][week]
	if cell.locked {
		return ErrCellLocked
	}
	if cell.code != Unassigned && !overwrite {
		return ErrCellOccupied
	}
	cell.code = code
	return nil
}

// Lock marks (resident, week) as owned by phase, preventing further writes
// other than ResolvePlaceholder's; the grid has no unlock or reset. The cell's current code is left as-is; call Set
// before Lock to assign-then-lock in one logical step.
func (g *Grid) Lock(resident string, week int, phase string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.validCell(resident, week); err != nil {
		return err
	}
	cell := &g.cells[resident][week]
	if cell.locked {
		return ErrCellLocked
	}
	cell.locked = true
	cell.owner = phase
	return nil
}

// SetLocked assigns code and locks the cell atomically, as every phase does
// at the moment it finalizes a cell.
func (g *Grid) SetLocked(resident string, week int, code string, phase string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.validCell(resident, week); err != nil {
		return err
	}
	cell := &g.cells[resident][week]
	if cell.locked {
		return ErrCellLocked
	}
	cell.code = code
	cell.locked = true
	cell.owner = phase
	return nil
}

// ResolvePlaceholder overwrites a locked cell only if its current code
// equals placeholder, re-locking it under phase. It exists for exactly one
// pattern: a phase writes a provisional code (Msamp) and locks it, and a
// later phase resolves that placeholder into its final code once downstream
// information (the night-float overlay) is available.
func (g *Grid) ResolvePlaceholder(resident string, week int, placeholder, code, phase string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.validCell(resident, week); err != nil {
		return err
	}
	cell := &g.cells[resident][week]
	if cell.code != placeholder {
		return ErrCellOccupied
	}
	cell.code = code
	cell.locked = true
	cell.owner = phase
	return nil
}

// LockedBy returns the phase name that locked (resident, week), or "" if
// unlocked.
func (g *Grid) LockedBy(resident string, week int) (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if err := g.validCell(resident, week); err != nil {
		return "", err
	}
	return g.cells[resident][week].owner, nil
}

// WeekRow returns a copy of resident's full week row (index-aligned with
// week 0..weeks-1), for read-only consumers like the validator.
func (g *Grid) WeekRow(resident string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.index[resident]; !ok {
		return nil, ErrUnknownResident
	}
	row := g.cells[resident]
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = c.code
	}
	return out, nil
}

// HeadcountAt returns the number of residents assigned code in week w.
func (g *Grid) HeadcountAt(code string, w int) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, name := range g.residents {
		if w >= 0 && w < g.weeks && g.cells[name][w].code == code {
			n++
		}
	}
	return n
}

// HospitalSystemsInBlock returns the set of distinct HospitalSystem values
// (via catalog lookup) appearing across resident's cells within block b's
// week range, used for the hospital-exclusivity check. Unknown rotation
// codes and Unassigned cells are skipped rather than erroring, since this
// helper is also used mid-build before every cell is filled.
func (g *Grid) HospitalSystemsInBlock(resident string, rng BlockRange, catalog *RotationCatalog) (map[HospitalSystem]bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.index[resident]; !ok {
		return nil, ErrUnknownResident
	}
	seen := map[HospitalSystem]bool{}
	row := g.cells[resident]
	for w := rng.Start; w < rng.End && w < len(row); w++ {
		code := row[w].code
		if code == Unassigned {
			continue
		}
		rc, err := catalog.Lookup(code)
		if err != nil {
			continue
		}
		if rc.Hospital != OTHER {
			seen[rc.Hospital] = true
		}
	}
	return seen, nil
}
