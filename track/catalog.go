package track

// Catalog derives the 13-block rotation sequence for each track index from a
// short base sequence, caching each track's derived sequence so repeated
// lookups by R1/R2 assignment are O(1) after the first pass.
type Catalog struct {
	base      []string
	classSize int
	cache     map[int][14]string // track index -> block 1..13 populated, index 0 unused
}

// NewCatalog builds a Catalog from a base sequence of rotation codes. By
// default classSize is len(base); pass WithClassSize to override it for the
// L != N cases (duplicate-track or missed-rotation warnings apply).
func NewCatalog(base []string, opts ...Option) (*Catalog, error) {
	if len(base) == 0 {
		return nil, ErrEmptyBaseSequence
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	classSize := o.classSize
	if classSize == 0 {
		classSize = len(base)
	}
	return &Catalog{
		base:      append([]string(nil), base...),
		classSize: classSize,
		cache:     make(map[int][14]string),
	}, nil
}

// ClassSize returns N, the number of tracks this catalog serves.
func (c *Catalog) ClassSize() int { return c.classSize }

// BaseLen returns L, the base sequence length.
func (c *Catalog) BaseLen() int { return len(c.base) }

// DuplicateTrackWarning reports whether L < N: at least two residents will
// share an identical derived sequence.
func (c *Catalog) DuplicateTrackWarning() bool { return len(c.base) < c.classSize }

// MissedRotationWarning reports whether L > N: some base-sequence entries
// are unreachable by any track's derivation.
func (c *Catalog) MissedRotationWarning() bool { return len(c.base) > c.classSize }

// RotationAt derives the rotation code for track t at block b, per the
// formula ((t-1) + (b-1)*2) mod L. Results are cached per track index.
func (c *Catalog) RotationAt(t, b int) (string, error) {
	if t < 1 || t > c.classSize {
		return "", ErrInvalidTrackIndex
	}
	if b < 1 || b > 13 {
		return "", ErrInvalidBlock
	}
	if seq, ok := c.cache[t]; ok {
		return seq[b], nil
	}
	seq := c.deriveSequence(t)
	c.cache[t] = seq
	return seq[b], nil
}

// Sequence returns the full 13-block derived sequence for track t (index 0
// is the zero value and unused; blocks 1..13 are populated).
func (c *Catalog) Sequence(t int) ([14]string, error) {
	if t < 1 || t > c.classSize {
		return [14]string{}, ErrInvalidTrackIndex
	}
	if seq, ok := c.cache[t]; ok {
		return seq, nil
	}
	seq := c.deriveSequence(t)
	c.cache[t] = seq
	return seq, nil
}

func (c *Catalog) deriveSequence(t int) [14]string {
	var seq [14]string
	l := len(c.base)
	for b := 1; b <= 13; b++ {
		idx := ((t - 1) + (b-1)*2) % l
		seq[b] = c.base[idx]
	}
	return seq
}
