package models

import "time"

// FilterCriteria holds the dashboard sidebar selections.
// A zero Start or End leaves that side of the date range open, and an empty
// (or "All") Region, Category or Segment passes every row.
type FilterCriteria struct {
	Start    time.Time `json:"start_date,omitempty"`
	End      time.Time `json:"end_date,omitempty"`
	Region   string    `json:"region,omitempty"`
	Category string    `json:"category,omitempty"`
	Segment  string    `json:"segment,omitempty"`
}

// HasDateRange reports whether both ends of the date range are set.
func (f FilterCriteria) HasDateRange() bool {
	return !f.Start.IsZero() && !f.End.IsZero()
}

// Period is an inclusive range of calendar days.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of calendar days covered, counting both ends.
func (p Period) Days() int {
	if p.Start.IsZero() || p.End.IsZero() || p.End.Before(p.Start) {
		return 0
	}
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// PeriodPair is a current window and the equally long window right before it.
type PeriodPair struct {
	Current  Period `json:"current"`
	Previous Period `json:"previous"`
}

// FilterOptions lists the values a client can offer in its filter controls.
type FilterOptions struct {
	Regions    []string  `json:"regions"`
	Categories []string  `json:"categories"`
	Segments   []string  `json:"segments"`
	MinDate    time.Time `json:"min_date"`
	MaxDate    time.Time `json:"max_date"`
}
