package taxfolio

import "testing"

func TestLedger_Holdings(t *testing.T) {
	l := newTestLedger(t,
		NewBuy(MustParse("2023-01-01"), "ETH", "USD", 10, 100, 1),
		NewBuy(MustParse("2023-02-01"), "ETH", "EUR", 2, 95, 1),
		NewSell(MustParse("2023-06-01"), "ETH", "USD", 4, 150, 1),
		NewBuy(MustParse("2023-03-01"), "AAPL", "USD", 5, 150, 1),
		NewSell(MustParse("2023-07-01"), "SOL", "USD", 3, 20, 0),
	)
	holdings := l.Holdings()

	testCases := []struct {
		key  PositionKey
		want Quantity
	}{
		{PositionKey{"ETH", "USD"}, Q(6)},
		{PositionKey{"ETH", "EUR"}, Q(2)},
		{PositionKey{"AAPL", "USD"}, Q(5)},
		{PositionKey{"SOL", "USD"}, Q(-3)}, // sold without a recorded buy
	}
	for _, tc := range testCases {
		t.Run(tc.key.String(), func(t *testing.T) {
			if got := holdings[tc.key]; !got.Equal(tc.want) {
				t.Errorf("holdings[%s] = %s, want %s", tc.key, got, tc.want)
			}
		})
	}
	if len(holdings) != 4 {
		t.Errorf("holdings has %d positions, want 4", len(holdings))
	}
}

// Holdings must not depend on the relative order of same-day records.
func TestLedger_Holdings_OrderIndependent(t *testing.T) {
	on := MustParse("2023-06-01")
	a := NewBuy(on, "ETH", "USD", 3, 100, 0)
	b := NewSell(on, "ETH", "USD", 2, 110, 0)
	c := NewBuy(on, "ETH", "USD", 5, 105, 0)

	first := newTestLedger(t, a, b, c).Holdings()
	second := newTestLedger(t, c, a, b).Holdings()

	if len(first) != len(second) {
		t.Fatalf("holdings differ in size: %d vs %d", len(first), len(second))
	}
	for key, want := range first {
		if got := second[key]; !got.Equal(want) {
			t.Errorf("holdings[%s] = %s after reorder, want %s", key, got, want)
		}
	}
}
