// Package ledger holds the filter, ordering and summary rules for purchase
// records. Everything here is pure: the server applies the same Filter to its
// store query and summarizes the rows it gets back, and the client applies it
// to records already in memory.
package ledger

import (
	"strconv"
	"strings"
	"time"

	"kakeibo/internal/models"
)

const (
	minYear = 1
	maxYear = 9999
)

// Filter scopes a set of purchases. A nil Year means no date window; Month is
// only meaningful together with Year. A nil Category means every category.
type Filter struct {
	Year     *int
	Month    *int
	Category *string
}

// DateRange is an inclusive [Start, End] date window.
type DateRange struct {
	Start models.Date
	End   models.Date
}

// Contains reports whether d falls inside the range, both ends included.
func (r DateRange) Contains(d models.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// YearRange returns Jan 1 through Dec 31 of year.
func YearRange(year int) DateRange {
	return DateRange{
		Start: models.NewDate(year, time.January, 1),
		End:   models.NewDate(year, time.December, 31),
	}
}

// MonthRange returns the first through the last day of the month.
func MonthRange(year int, month time.Month) DateRange {
	return DateRange{
		Start: models.NewDate(year, month, 1),
		End:   models.NewDate(year, month+1, 0),
	}
}

// ForYear builds a year-only filter.
func ForYear(year int) Filter {
	return Filter{Year: &year}
}

// ForMonth builds a year+month filter.
func ForMonth(year int, month time.Month) Filter {
	m := int(month)
	return Filter{Year: &year, Month: &m}
}

// WithCategory returns a copy of f that also requires category equality.
func (f Filter) WithCategory(category string) Filter {
	f.Category = &category
	return f
}

// Range resolves the date window of the filter. ok is false when the filter
// has no date window, including a month given without a year.
func (f Filter) Range() (r DateRange, ok bool) {
	if f.Year == nil {
		return DateRange{}, false
	}
	if f.Month != nil {
		return MonthRange(*f.Year, time.Month(*f.Month)), true
	}
	return YearRange(*f.Year), true
}

// Matches reports whether p satisfies both the date window and the category
// predicate. Category comparison is exact and case-sensitive.
func (f Filter) Matches(p models.Purchase) bool {
	if r, ok := f.Range(); ok && !r.Contains(p.Date) {
		return false
	}
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	return true
}

// IsEmpty reports whether the filter matches everything.
func (f Filter) IsEmpty() bool {
	_, hasRange := f.Range()
	return !hasRange && f.Category == nil
}

// ParseFilter builds a Filter from raw query values. Values that do not parse
// are dropped instead of failing: a bad or out-of-range year drops the whole
// date window, and a bad month with a good year falls back to the year
// window. A blank category means no category predicate; any other value is
// matched exactly, surrounding spaces included.
func ParseFilter(year, month, category string) Filter {
	var f Filter

	if y, ok := parseBounded(year, minYear, maxYear); ok {
		f.Year = &y
		if m, ok := parseBounded(month, 1, 12); ok {
			f.Month = &m
		}
	}

	if strings.TrimSpace(category) != "" {
		f.Category = &category
	}
	return f
}

func parseBounded(s string, lo, hi int) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, false
	}
	return n, true
}
