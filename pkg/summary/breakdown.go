package summary

// CategoryAmount is one category's absolute expense total in miliunits.
type CategoryAmount struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// OtherBucket is the synthetic category that absorbs everything beyond the
// top ranks of a breakdown.
const OtherBucket = "Other"

// TopWithOther keeps the first n entries of a breakdown already sorted by
// descending magnitude. When more categories exist the remainder collapses
// into a single OtherBucket entry summing their amounts, so a list of more
// than n categories always comes back with n+1 entries.
func TopWithOther(breakdown []CategoryAmount, n int) []CategoryAmount {
	if len(breakdown) <= n {
		return breakdown
	}

	top := make([]CategoryAmount, n, n+1)
	copy(top, breakdown[:n])

	var rest int64
	for _, c := range breakdown[n:] {
		rest += c.Amount
	}
	return append(top, CategoryAmount{Name: OtherBucket, Amount: rest})
}
