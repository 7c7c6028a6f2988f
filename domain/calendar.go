package domain

import (
	"errors"
	"time"
)

// ErrCalendarYearUnset indicates BlockCalendar derivation was asked to run
// before the Overview tab's target-year cell was set.
var ErrCalendarYearUnset = errors.New("domain: target academic year is unset")

// BlockRange names the half-open week range [Start, End) a block covers
// within the 52-week grid.
type BlockRange struct {
	Start, End int
}

// Weeks reports the range's length.
func (r BlockRange) Weeks() int { return r.End - r.Start }

// BlockCalendar maps block number b in [1, 13] to a contiguous week range,
// derived once per academic year and cached: the derivation is pure, so the
// same target year always yields the same calendar.
type BlockCalendar struct {
	TargetYear int
	NFStart    time.Time
	ranges     [14]BlockRange // index 0 unused; 1..13 populated
}

// lastSundayOfJune returns the last Sunday on or before June 30 of year.
func lastSundayOfJune(year int) time.Time {
	d := time.Date(year, time.June, 30, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// firstSundayOfJuly returns the first Sunday on or after July 1 of year.
func firstSundayOfJuly(year int) time.Time {
	d := time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// DeriveBlockCalendar computes the NF-start date and block week ranges for
// the academic year beginning July 1 of targetYear:
//
//	DOW of July 1 | NF start               | Block 1 weeks
//	Mon           | last Sunday in June    | 4
//	Tue/Wed       | last Sunday in June    | 3
//	Thu/Fri       | first Sunday in July   | 5
//	Sat/Sun       | first Sunday in July   | 4
//
// Blocks 2-12 are always exactly 4 weeks. Block 13 absorbs whatever slack
// Block 1 did not take, so that the 13 blocks always total 52 weeks: Block13
// weeks = 8 - Block1 weeks.
func DeriveBlockCalendar(targetYear int) (*BlockCalendar, error) {
	if targetYear == 0 {
		return nil, ErrCalendarYearUnset
	}
	july1 := time.Date(targetYear, time.July, 1, 0, 0, 0, 0, time.UTC)

	var nfStart time.Time
	var block1Weeks int
	switch july1.Weekday() {
	case time.Monday:
		nfStart = lastSundayOfJune(targetYear)
		block1Weeks = 4
	case time.Tuesday, time.Wednesday:
		nfStart = lastSundayOfJune(targetYear)
		block1Weeks = 3
	case time.Thursday, time.Friday:
		nfStart = firstSundayOfJuly(targetYear)
		block1Weeks = 5
	default: // Saturday, Sunday
		nfStart = firstSundayOfJuly(targetYear)
		block1Weeks = 4
	}

	block13Weeks := 8 - block1Weeks

	bc := &BlockCalendar{TargetYear: targetYear, NFStart: nfStart}
	week := 0
	bc.ranges[1] = BlockRange{Start: week, End: week + block1Weeks}
	week += block1Weeks
	for b := 2; b <= 12; b++ {
		bc.ranges[b] = BlockRange{Start: week, End: week + 4}
		week += 4
	}
	bc.ranges[13] = BlockRange{Start: week, End: week + block13Weeks}

	return bc, nil
}

// Range returns the week range for block b, or an error if b is out of
// [1, 13].
func (bc *BlockCalendar) Range(b int) (BlockRange, error) {
	if b < 1 || b > 13 {
		return BlockRange{}, ErrBlockOutOfRange
	}
	return bc.ranges[b], nil
}

// BlockOf returns the block number containing week w, or an error if w is
// not covered by any block.
func (bc *BlockCalendar) BlockOf(w int) (int, error) {
	for b := 1; b <= 13; b++ {
		if w >= bc.ranges[b].Start && w < bc.ranges[b].End {
			return b, nil
		}
	}
	return 0, ErrWeekOutOfRange
}

// TotalWeeks returns the sum of all 13 block lengths (52, by construction).
func (bc *BlockCalendar) TotalWeeks() int {
	return bc.ranges[13].End
}
