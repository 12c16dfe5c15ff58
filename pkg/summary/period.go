// Package summary implements the pure parts of the dashboard summary: period
// arithmetic, gap-free date filling for chart series and top-N category
// bucketing. Database rollups feed these functions; they never touch storage
// themselves.
package summary

import "time"

// DateLayout is the wire format for per-day series entries.
const DateLayout = "2006-01-02"

// Period is an inclusive date range. Start and End are expected at midnight;
// NewPeriod enforces that.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod truncates both bounds to midnight UTC.
func NewPeriod(start, end time.Time) Period {
	return Period{Start: midnight(start), End: midnight(end)}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Days returns the number of calendar days in the period, inclusive.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// Previous returns the period of identical length immediately preceding p;
// its End lands on the day before p.Start so the two ranges never overlap.
func (p Period) Previous() Period {
	offset := int(p.End.Sub(p.Start).Hours()/24) + 1
	return Period{
		Start: p.Start.AddDate(0, 0, -offset),
		End:   p.End.AddDate(0, 0, -offset),
	}
}

// ExclusiveEnd returns the first instant after the period, for use in
// half-open datetime comparisons.
func (p Period) ExclusiveEnd() time.Time {
	return p.End.AddDate(0, 0, 1)
}
