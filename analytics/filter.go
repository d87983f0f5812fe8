// Package analytics computes the dashboard numbers from an in-memory slice of
// transactions. Every function is pure: it never mutates its input and returns
// zero values rather than errors when the input is empty.
package analytics

import (
	"errors"
	"sort"
	"strings"
	"time"

	"retail-bi/models"
)

// ErrInvalidPeriod is returned when a period ends before it starts.
var ErrInvalidPeriod = errors.New("period end is before its start")

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsAll reports whether a filter value means "no filter".
func IsAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "all") || strings.EqualFold(v, "semua")
}

// Matches reports whether t passes every predicate set in c.
func Matches(t models.Transaction, c models.FilterCriteria) bool {
	day := Day(t.OrderDate)
	if !c.Start.IsZero() && day.Before(Day(c.Start)) {
		return false
	}
	if !c.End.IsZero() && day.After(Day(c.End)) {
		return false
	}
	if !IsAll(c.Region) && t.Region != c.Region {
		return false
	}
	if !IsAll(c.Category) && t.Category != c.Category {
		return false
	}
	if !IsAll(c.Segment) && t.Segment != c.Segment {
		return false
	}
	return true
}

// Filter returns the rows matching c. The result is never nil.
func Filter(rows []models.Transaction, c models.FilterCriteria) []models.Transaction {
	out := make([]models.Transaction, 0, len(rows)/4)
	for _, t := range rows {
		if Matches(t, c) {
			out = append(out, t)
		}
	}
	return out
}

// NewPeriod builds the inclusive period [start, end] on calendar days.
func NewPeriod(start, end time.Time) (models.Period, error) {
	p := models.Period{Start: Day(start), End: Day(end)}
	if p.End.Before(p.Start) {
		return models.Period{}, ErrInvalidPeriod
	}
	return p, nil
}

// PreviousPeriod returns the window of the same length that ends the day
// before p starts. A single-day period yields the single preceding day.
func PreviousPeriod(p models.Period) models.Period {
	days := p.Days()
	if days < 1 {
		days = 1
	}
	end := Day(p.Start).AddDate(0, 0, -1)
	return models.Period{Start: end.AddDate(0, 0, -(days - 1)), End: end}
}

// DateBounds returns the first and last order day in rows.
func DateBounds(rows []models.Transaction) (first, last time.Time) {
	for i, t := range rows {
		day := Day(t.OrderDate)
		if i == 0 || day.Before(first) {
			first = day
		}
		if i == 0 || day.After(last) {
			last = day
		}
	}
	return first, last
}

// ResolvePeriod fills the open ends of c's date range from the bounds of the
// whole data set, the way the dashboard's date picker defaults to them.
func ResolvePeriod(all []models.Transaction, c models.FilterCriteria) (models.PeriodPair, error) {
	start, end := c.Start, c.End
	if start.IsZero() || end.IsZero() {
		first, last := DateBounds(all)
		if start.IsZero() {
			start = first
		}
		if end.IsZero() {
			end = last
		}
	}
	if start.IsZero() || end.IsZero() {
		return models.PeriodPair{}, nil
	}
	current, err := NewPeriod(start, end)
	if err != nil {
		return models.PeriodPair{}, err
	}
	return models.PeriodPair{Current: current, Previous: PreviousPeriod(current)}, nil
}

// FilterWithPrevious applies c to all and also returns the rows of the
// preceding window under the same region, category and segment filters.
func FilterWithPrevious(all []models.Transaction, c models.FilterCriteria) (current, previous []models.Transaction, pair models.PeriodPair, err error) {
	pair, err = ResolvePeriod(all, c)
	if err != nil {
		return nil, nil, models.PeriodPair{}, err
	}
	if pair.Current.Start.IsZero() {
		return []models.Transaction{}, []models.Transaction{}, pair, nil
	}

	cur := c
	cur.Start, cur.End = pair.Current.Start, pair.Current.End
	prev := c
	prev.Start, prev.End = pair.Previous.Start, pair.Previous.End

	return Filter(all, cur), Filter(all, prev), pair, nil
}

// Options lists the distinct regions, categories and segments in rows, sorted,
// along with the date bounds.
func Options(rows []models.Transaction) models.FilterOptions {
	regions := map[string]struct{}{}
	categories := map[string]struct{}{}
	segments := map[string]struct{}{}
	for _, t := range rows {
		if t.Region != "" {
			regions[t.Region] = struct{}{}
		}
		if t.Category != "" {
			categories[t.Category] = struct{}{}
		}
		if t.Segment != "" {
			segments[t.Segment] = struct{}{}
		}
	}
	first, last := DateBounds(rows)
	return models.FilterOptions{
		Regions:    sortedKeys(regions),
		Categories: sortedKeys(categories),
		Segments:   sortedKeys(segments),
		MinDate:    first,
		MaxDate:    last,
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
