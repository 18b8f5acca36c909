package taxfolio

import "testing"

func TestLedger_Gains(t *testing.T) {
	l := newTestLedger(t,
		NewBuy(MustParse("2023-01-01"), "ETH", "USD", 10, 100, 1),
		NewSell(MustParse("2023-06-01"), "ETH", "USD", 4, 150, 1),
	)

	gains := l.Gains("ETH")
	g, ok := gains["USD"]
	if !ok {
		t.Fatalf("no USD gains in %v", gains)
	}
	// proceeds 4×150 minus the full accumulated cost 10×100.
	if want := M(-400, "USD"); !g.Gains.Equal(want) {
		t.Errorf("gains = %s, want %s", g.Gains.Amount(), want.Amount())
	}
	if want := Q(6); !g.Quantity.Equal(want) {
		t.Errorf("remaining quantity = %s, want %s", g.Quantity, want)
	}
	if want := M(2, "USD"); !g.Fees.Equal(want) {
		t.Errorf("fees = %s, want %s", g.Fees.Amount(), want.Amount())
	}
}

func TestLedger_Gains_NoSells(t *testing.T) {
	l := newTestLedger(t,
		NewBuy(MustParse("2023-01-01"), "ETH", "USD", 10, 100, 1),
		NewBuy(MustParse("2023-02-01"), "ETH", "EUR", 2, 95, 2),
	)

	gains := l.Gains("ETH")
	if len(gains) != 2 {
		t.Fatalf("gains has %d currencies, want 2", len(gains))
	}
	for currency, g := range gains {
		if !g.Gains.IsZero() {
			t.Errorf("%s gains = %s, want zero", currency, g.Gains.Amount())
		}
	}
	if want := Q(10); !gains["USD"].Quantity.Equal(want) {
		t.Errorf("USD quantity = %s, want %s", gains["USD"].Quantity, want)
	}
	if want := M(2, "EUR"); !gains["EUR"].Fees.Equal(want) {
		t.Errorf("EUR fees = %s, want %s", gains["EUR"].Fees.Amount(), want.Amount())
	}
}
