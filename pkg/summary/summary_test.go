package summary

import (
	"testing"
	"time"
)

func mustDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPeriodDays(t *testing.T) {
	p := NewPeriod(mustDate("2024-03-01"), mustDate("2024-03-31"))
	if p.Days() != 31 {
		t.Fatalf("expected 31 days got %d", p.Days())
	}
	one := NewPeriod(mustDate("2024-03-05"), mustDate("2024-03-05"))
	if one.Days() != 1 {
		t.Fatalf("expected 1 day got %d", one.Days())
	}
}

func TestPeriodPrevious(t *testing.T) {
	p := NewPeriod(mustDate("2024-03-11"), mustDate("2024-03-20"))
	prev := p.Previous()
	if got := prev.Start.Format(DateLayout); got != "2024-03-01" {
		t.Errorf("previous start: got %s", got)
	}
	if got := prev.End.Format(DateLayout); got != "2024-03-10" {
		t.Errorf("previous end: got %s", got)
	}
	if prev.Days() != p.Days() {
		t.Errorf("previous period length %d != %d", prev.Days(), p.Days())
	}
	// no overlap: previous must end the day before the current start
	if !prev.ExclusiveEnd().Equal(p.Start) {
		t.Errorf("periods overlap or leave a gap: prev end %v, start %v", prev.End, p.Start)
	}
}

func TestFillMissingDaysEmptyInput(t *testing.T) {
	p := NewPeriod(mustDate("2024-01-01"), mustDate("2024-01-10"))
	filled := FillMissingDays(nil, p)

	if len(filled) != 10 {
		t.Fatalf("expected 10 entries got %d", len(filled))
	}
	prev := ""
	for i, pt := range filled {
		if pt.Income != 0 || pt.Expense != 0 {
			t.Errorf("entry %d not zero-filled: %+v", i, pt)
		}
		if pt.Date <= prev {
			t.Errorf("dates not strictly ascending at %d: %s after %s", i, pt.Date, prev)
		}
		prev = pt.Date
	}
}

func TestFillMissingDaysGapFree(t *testing.T) {
	p := NewPeriod(mustDate("2024-02-27"), mustDate("2024-03-02"))
	sparse := []DayPoint{
		{Date: "2024-02-28", Income: 5000, Expense: -2000},
		{Date: "2024-03-01", Income: 0, Expense: -7000},
	}
	filled := FillMissingDays(sparse, p)

	want := []DayPoint{
		{Date: "2024-02-27"},
		{Date: "2024-02-28", Income: 5000, Expense: -2000},
		{Date: "2024-02-29"}, // leap day
		{Date: "2024-03-01", Expense: -7000},
		{Date: "2024-03-02"},
	}
	if len(filled) != len(want) {
		t.Fatalf("expected %d entries got %d", len(want), len(filled))
	}
	for i := range want {
		if filled[i] != want[i] {
			t.Errorf("entry %d: expected %+v got %+v", i, want[i], filled[i])
		}
	}
}

func TestFillMissingDaysSingleDay(t *testing.T) {
	p := NewPeriod(mustDate("2024-06-15"), mustDate("2024-06-15"))
	filled := FillMissingDays(nil, p)
	if len(filled) != 1 || filled[0].Date != "2024-06-15" {
		t.Fatalf("expected single zero entry for 2024-06-15, got %+v", filled)
	}
}

func TestTopWithOther(t *testing.T) {
	breakdown := []CategoryAmount{
		{Name: "Rent", Amount: 900000},
		{Name: "Food", Amount: 400000},
		{Name: "Transport", Amount: 150000},
		{Name: "Fun", Amount: 90000},
		{Name: "Misc", Amount: 10000},
	}
	got := TopWithOther(breakdown, 3)
	if len(got) != 4 {
		t.Fatalf("expected 4 entries got %d", len(got))
	}
	if got[3].Name != OtherBucket || got[3].Amount != 100000 {
		t.Fatalf("expected Other=100000 got %+v", got[3])
	}
	if got[0].Name != "Rent" || got[2].Name != "Transport" {
		t.Fatalf("top ranks reordered: %+v", got[:3])
	}
}

func TestTopWithOtherSmallInput(t *testing.T) {
	breakdown := []CategoryAmount{{Name: "Food", Amount: 100}}
	if got := TopWithOther(breakdown, 3); len(got) != 1 {
		t.Fatalf("expected 1 entry got %d", len(got))
	}
	if got := TopWithOther(nil, 3); len(got) != 0 {
		t.Fatalf("expected empty breakdown got %+v", got)
	}
	exact := []CategoryAmount{{Name: "A", Amount: 1}, {Name: "B", Amount: 2}, {Name: "C", Amount: 3}}
	if got := TopWithOther(exact, 3); len(got) != 3 {
		t.Fatalf("expected 3 entries without Other, got %d", len(got))
	}
}
