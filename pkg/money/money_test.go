package money

import "testing"

func TestMiliunitsRoundTrip(t *testing.T) {
	// 1.001 and 8.2 sit just below their scaled integer as floats; a
	// truncating conversion drops a miliunit on each.
	values := []float64{0, 1, 1.001, 8.2, 10.5, 123.456, -99.999, -8.2, 250000}
	for _, v := range values {
		got := FromMiliunits(ToMiliunits(v))
		if got != v {
			t.Errorf("round trip for %v: got %v", v, got)
		}
	}
}

func TestToMiliunitsRounds(t *testing.T) {
	if got := ToMiliunits(1.001); got != 1001 {
		t.Fatalf("expected 1001 got %d", got)
	}
	if got := ToMiliunits(8.2); got != 8200 {
		t.Fatalf("expected 8200 got %d", got)
	}
	if got := ToMiliunits(-1.001); got != -1001 {
		t.Fatalf("expected -1001 got %d", got)
	}
}

func TestFromMiliunits(t *testing.T) {
	if got := FromMiliunits(10500); got != 10.5 {
		t.Fatalf("expected 10.5 got %v", got)
	}
	if got := FromMiliunits(-2000); got != -2 {
		t.Fatalf("expected -2 got %v", got)
	}
}

func TestItemTotal(t *testing.T) {
	// amount=10, quantity=3, discount=5, tax=2 -> 10*3 - 5 + 2 = 27
	if got := ItemTotal(10, 3, 5, 2); got != 27 {
		t.Fatalf("expected 27 got %d", got)
	}
	if got := ItemTotal(1500, 2, 0, 300); got != 3300 {
		t.Fatalf("expected 3300 got %d", got)
	}
}

func TestPercentageDifference(t *testing.T) {
	cases := []struct {
		name              string
		current, previous float64
		want              float64
	}{
		{"both zero", 0, 0, 0},
		{"previous zero current not", 500, 0, 100},
		{"previous zero current negative", -500, 0, 100},
		{"doubled", 200, 100, 100},
		{"halved", 50, 100, -50},
		{"negative previous", -50, -100, -50},
	}
	for _, tc := range cases {
		if got := PercentageDifference(tc.current, tc.previous); got != tc.want {
			t.Errorf("%s: expected %v got %v", tc.name, tc.want, got)
		}
	}
}
