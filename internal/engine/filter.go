package engine

import (
	"fmt"
	"time"

	"salesdash/internal/models"
)

const dayLayout = "2006-01-02"

// DateRange is an inclusive time interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether Start <= t <= End.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// FilterSpec holds the active filters: allowed value sets per categorical
// column and inclusive ranges per date column. Entries combine with AND.
type FilterSpec struct {
	Values map[string]map[string]struct{}
	Dates  map[string]DateRange
}

// Len returns the number of active entries.
func (s FilterSpec) Len() int {
	return len(s.Values) + len(s.Dates)
}

// BuildFilterSpec turns a client selection into a FilterSpec. Only columns
// present in opts may be filtered.
func BuildFilterSpec(opts models.FilterOptions, sel models.Selection) (FilterSpec, error) {
	spec := FilterSpec{
		Values: make(map[string]map[string]struct{}, len(sel.Categories)),
		Dates:  make(map[string]DateRange, 1),
	}

	offered := make(map[string]struct{}, len(opts.Categorical))
	for _, f := range opts.Categorical {
		offered[f.Column] = struct{}{}
	}
	for col, values := range sel.Categories {
		if _, ok := offered[col]; !ok {
			return FilterSpec{}, fmt.Errorf("%w: %q", ErrFilterNotOffered, col)
		}
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}
		spec.Values[col] = set
	}

	if d := sel.DateRange; d != nil {
		if opts.DateRange == nil || d.Column != opts.DateRange.Column {
			return FilterSpec{}, fmt.Errorf("%w: %q", ErrFilterNotOffered, d.Column)
		}
		r, err := parseRange(d.Start, d.End)
		if err != nil {
			return FilterSpec{}, err
		}
		spec.Dates[d.Column] = r
	}
	return spec, nil
}

// parseRange parses the selection bounds. A date-only end bound covers the
// whole of that day.
func parseRange(start, end string) (DateRange, error) {
	lo, ok := parseDate(start)
	if !ok {
		return DateRange{}, fmt.Errorf("%w: start %q", ErrInvalidRange, start)
	}
	hi, ok := parseDate(end)
	if !ok {
		return DateRange{}, fmt.Errorf("%w: end %q", ErrInvalidRange, end)
	}
	if hi.Equal(truncateDay(hi)) {
		hi = hi.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if lo.After(hi) {
		return DateRange{}, fmt.Errorf("%w: %s after %s", ErrInvalidRange, start, end)
	}
	return DateRange{Start: lo, End: hi}, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Apply returns the rows of t that pass every entry of spec. Entries naming
// a column the table lacks match no rows.
func Apply(t *Table, spec FilterSpec) *Table {
	if spec.Len() == 0 {
		return t
	}

	type valueCheck struct {
		col     *Column
		allowed map[string]struct{}
	}
	type dateCheck struct {
		col *Column
		r   DateRange
	}
	var (
		values []valueCheck
		dates  []dateCheck
	)
	for name, allowed := range spec.Values {
		c, ok := t.Column(name)
		if !ok {
			return t.Select(nil)
		}
		values = append(values, valueCheck{c, allowed})
	}
	for name, r := range spec.Dates {
		c, ok := t.Column(name)
		if !ok {
			return t.Select(nil)
		}
		dates = append(dates, dateCheck{c, r})
	}

	keep := make([]int, 0, t.Len())
rows:
	for i := 0; i < t.Len(); i++ {
		for _, v := range values {
			if v.col.Missing(i) {
				continue rows
			}
			if _, ok := v.allowed[v.col.Value(i)]; !ok {
				continue rows
			}
		}
		for _, d := range dates {
			ts, ok := d.col.Time(i)
			if !ok || !d.r.Contains(ts) {
				continue rows
			}
		}
		keep = append(keep, i)
	}
	return t.Select(keep)
}
