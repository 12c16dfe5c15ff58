package summary

// DayPoint is one entry of the per-day income/expense series. Amounts are
// miliunits; Date uses DateLayout so lexical order matches chronological
// order.
type DayPoint struct {
	Date    string `json:"date"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

// FillMissingDays expands the sparse per-day rollup into a contiguous series
// covering the whole period: exactly p.Days() entries, ascending, with zero
// income and expense for calendar days that had no transactions. Charting
// downstream assumes a gap-free series, so an empty input still produces the
// full zero-filled range.
func FillMissingDays(points []DayPoint, p Period) []DayPoint {
	byDate := make(map[string]DayPoint, len(points))
	for _, pt := range points {
		byDate[pt.Date] = pt
	}

	filled := make([]DayPoint, 0, p.Days())
	for day := p.Start; !day.After(p.End); day = day.AddDate(0, 0, 1) {
		key := day.Format(DateLayout)
		if pt, ok := byDate[key]; ok {
			filled = append(filled, pt)
			continue
		}
		filled = append(filled, DayPoint{Date: key})
	}
	return filled
}
