package taxfolio

import (
	"errors"
	"testing"
)

// newTestLedger builds a ledger and fails the test on invalid records.
func newTestLedger(t *testing.T, records ...Transaction) *Ledger {
	t.Helper()
	l, err := NewLedger(records...)
	if err != nil {
		t.Fatalf("NewLedger() failed: %v", err)
	}
	return l
}

func TestNewLedger_SortsChronologically(t *testing.T) {
	// records deliberately out of order, with two same-day records whose
	// ingestion order must be preserved.
	l := newTestLedger(t,
		NewSell(MustParse("2023-06-01"), "ETH", "USD", 1, 150, 0),
		NewBuy(MustParse("2023-01-01"), "ETH", "USD", 10, 100, 1),
		NewBuy(MustParse("2023-06-01"), "ETH", "USD", 5, 160, 0),
	)

	var dates []string
	var sides []Side
	for _, tx := range l.Transactions() {
		dates = append(dates, tx.Date.String())
		sides = append(sides, tx.Side)
	}
	wantDates := []string{"2023-01-01", "2023-06-01", "2023-06-01"}
	for i, want := range wantDates {
		if dates[i] != want {
			t.Fatalf("record %d on %s, want %s", i, dates[i], want)
		}
	}
	// same-day tie-break: the sell was ingested before the buy.
	if sides[1] != Sell || sides[2] != Buy {
		t.Errorf("same-day order not preserved: got %v", sides)
	}
}

func TestNewLedger_InvalidRecord(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
	}{
		{"zero quantity", NewBuy(MustParse("2023-01-01"), "ETH", "USD", 0, 100, 0)},
		{"negative quantity", NewBuy(MustParse("2023-01-01"), "ETH", "USD", -1, 100, 0)},
		{"negative price", NewBuy(MustParse("2023-01-01"), "ETH", "USD", 1, -100, 0)},
		{"negative fees", NewBuy(MustParse("2023-01-01"), "ETH", "USD", 1, 100, -1)},
		{"missing asset", NewBuy(MustParse("2023-01-01"), "", "USD", 1, 100, 0)},
		{"missing currency", NewBuy(MustParse("2023-01-01"), "ETH", "", 1, 100, 0)},
		{"missing date", NewBuy(Date{}, "ETH", "USD", 1, 100, 0)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLedger(tc.tx)
			var invalid *InvalidRecordError
			if !errors.As(err, &invalid) {
				t.Fatalf("NewLedger() error = %v, want InvalidRecordError", err)
			}
		})
	}
}

func TestLedger_Views(t *testing.T) {
	eth1 := NewBuy(MustParse("2023-01-01"), "ETH", "USD", 10, 100, 1)
	aapl := NewBuy(MustParse("2023-02-01"), "AAPL", "USD", 5, 150, 1)
	eth2 := NewSell(MustParse("2023-06-01"), "ETH", "USD", 4, 150, 1)
	other := Transaction{
		Date: MustParse("2023-03-01"), Activity: "FEE_CHARGED", Asset: "ETH",
		Side: Buy, Debit: "USD", Quantity: Q(1), Price: M(0, "USD"), Fees: M(2, "USD"),
	}
	l := newTestLedger(t, eth1, aapl, eth2, other)

	testCases := []struct {
		name string
		view *Ledger
		want int
	}{
		{"by asset", l.ByAsset("ETH"), 3},
		{"by asset set", l.ByAsset("ETH", "AAPL"), 4},
		{"by side", l.BySide(Sell), 1},
		{"by asset and side", l.ByAsset("ETH").BySide(Buy), 2},
		{"by activity", l.ByActivity(OrderActivities()...), 3},
		{"between", l.Between(NewRange(MustParse("2023-01-01"), MustParse("2023-02-28"))), 2},
		{"prefix", l.Prefix(2), 2},
		{"prefix beyond len", l.Prefix(10), 4},
		{"prefix zero", l.Prefix(0), 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.view.Len(); got != tc.want {
				t.Errorf("view has %d records, want %d", got, tc.want)
			}
		})
	}

	// views must not disturb the parent ledger.
	if l.Len() != 4 {
		t.Errorf("parent ledger has %d records after filtering, want 4", l.Len())
	}
}

func TestLedger_Assets(t *testing.T) {
	l := newTestLedger(t,
		NewBuy(MustParse("2023-01-01"), "ETH", "USD", 1, 100, 0),
		NewBuy(MustParse("2023-01-02"), "AAPL", "USD", 1, 150, 0),
		NewSell(MustParse("2023-01-03"), "ETH", "USD", 1, 120, 0),
	)
	got := l.Assets()
	want := []string{"AAPL", "ETH"}
	if len(got) != len(want) {
		t.Fatalf("Assets() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Assets() = %v, want %v", got, want)
		}
	}
}
