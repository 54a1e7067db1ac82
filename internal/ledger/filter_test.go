package ledger

import (
	"testing"
	"time"

	"kakeibo/internal/models"
)

func TestFilter_Range(t *testing.T) {
	t.Run("year", func(t *testing.T) {
		r, ok := ForYear(2023).Range()
		if !ok {
			t.Fatal("expected a range")
		}
		if r.Start.String() != "2023-01-01" || r.End.String() != "2023-12-31" {
			t.Errorf("unexpected range %s..%s", r.Start, r.End)
		}
	})

	t.Run("month lengths", func(t *testing.T) {
		cases := []struct {
			year  int
			month time.Month
			end   string
		}{
			{2024, time.February, "2024-02-29"},
			{2023, time.February, "2023-02-28"},
			{1900, time.February, "1900-02-28"},
			{2000, time.February, "2000-02-29"},
			{2024, time.April, "2024-04-30"},
			{2024, time.December, "2024-12-31"},
		}
		for _, tc := range cases {
			r, ok := ForMonth(tc.year, tc.month).Range()
			if !ok {
				t.Fatalf("%d-%d: expected a range", tc.year, tc.month)
			}
			if r.End.String() != tc.end {
				t.Errorf("%d-%d: expected end %s, got %s", tc.year, tc.month, tc.end, r.End)
			}
			if r.Start.Day() != 1 || r.Start.Month() != tc.month {
				t.Errorf("%d-%d: unexpected start %s", tc.year, tc.month, r.Start)
			}
		}
	})

	t.Run("month without year has no range", func(t *testing.T) {
		m := 3
		if _, ok := (Filter{Month: &m}).Range(); ok {
			t.Error("expected no range")
		}
	})

	t.Run("empty filter matches everything", func(t *testing.T) {
		f := Filter{}
		if !f.IsEmpty() {
			t.Error("expected empty filter")
		}
		if !f.Matches(purchase("a", "1999-01-01", "anything", "1")) {
			t.Error("expected match")
		}
	})
}

func TestDateRange_Contains(t *testing.T) {
	r := MonthRange(2024, time.June)
	for date, want := range map[string]bool{
		"2024-05-31": false,
		"2024-06-01": true,
		"2024-06-15": true,
		"2024-06-30": true,
		"2024-07-01": false,
	} {
		if got := r.Contains(models.MustParseDate(date)); got != want {
			t.Errorf("%s: expected %v, got %v", date, want, got)
		}
	}
}

func TestParseFilter(t *testing.T) {
	t.Run("year and month", func(t *testing.T) {
		f := ParseFilter("2024", "2", "")
		if f.Year == nil || *f.Year != 2024 || f.Month == nil || *f.Month != 2 {
			t.Errorf("unexpected filter %+v", f)
		}
		if f.Category != nil {
			t.Errorf("expected no category, got %q", *f.Category)
		}
	})

	t.Run("non-numeric year drops the window", func(t *testing.T) {
		f := ParseFilter("abc", "2", "食費")
		if _, ok := f.Range(); ok {
			t.Error("expected no date window")
		}
		if f.Category == nil || *f.Category != "食費" {
			t.Error("category should survive a bad year")
		}
	})

	t.Run("month without year is ignored", func(t *testing.T) {
		f := ParseFilter("", "5", "")
		if !f.IsEmpty() {
			t.Errorf("expected empty filter, got %+v", f)
		}
	})

	t.Run("bad month falls back to year", func(t *testing.T) {
		for _, month := range []string{"13", "0", "x", "-1"} {
			f := ParseFilter("2024", month, "")
			r, ok := f.Range()
			if !ok {
				t.Fatalf("month %q: expected year window", month)
			}
			if r.Start.String() != "2024-01-01" || r.End.String() != "2024-12-31" {
				t.Errorf("month %q: unexpected range %s..%s", month, r.Start, r.End)
			}
		}
	})

	t.Run("out of range year is ignored", func(t *testing.T) {
		for _, year := range []string{"0", "10000", "-5"} {
			if _, ok := ParseFilter(year, "", "").Range(); ok {
				t.Errorf("year %q: expected no window", year)
			}
		}
	})

	t.Run("blank category is absent", func(t *testing.T) {
		for _, category := range []string{"", " ", "\t", "\u3000"} {
			if f := ParseFilter("", "", category); f.Category != nil {
				t.Errorf("category %q: expected no category predicate, got %q", category, *f.Category)
			}
		}
	})

	t.Run("category kept verbatim", func(t *testing.T) {
		f := ParseFilter("", "", "食費 ")
		if f.Category == nil || *f.Category != "食費 " {
			t.Errorf("expected category with trailing space, got %v", f.Category)
		}
	})
}
