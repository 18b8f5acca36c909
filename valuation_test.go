package taxfolio

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValuator_Value(t *testing.T) {
	l := newTestLedger(t,
		NewBuy(MustParse("2023-01-01"), "ETH", "USD", 10, 100, 1),
		NewBuy(MustParse("2023-02-01"), "SOL", "EUR", 5, 20, 0),
	)

	prices := NewPriceTable()
	prices.Append("ETH-USD", MustParse("2023-06-01"), decimal.NewFromInt(150))
	prices.Append("SOL-USD", MustParse("2023-06-01"), decimal.NewFromInt(30))
	rates := NewRateTable()
	rates.Append(MustParse("2023-06-01"), "EUR", "USD", decimal.NewFromFloat(1.1))

	v := &Valuator{Market: prices, Fx: rates, Symbols: DefaultSymbols(), Home: "USD"}
	value, err := v.Value(l, MustParse("2023-06-01"))
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}
	// 10×150 + 5×30×1.1
	if want := M(1665, "USD"); !value.Equal(want) {
		t.Errorf("value = %s, want %s", value.Amount(), want.Amount())
	}
}

func TestValuator_Value_Partial(t *testing.T) {
	// a position that cannot be valued is reported, not silently zeroed, and
	// the others still contribute.
	l := newTestLedger(t,
		NewBuy(MustParse("2023-01-01"), "ETH", "USD", 10, 100, 1),
		NewBuy(MustParse("2023-02-01"), "SOL", "USD", 5, 20, 0),
	)

	prices := NewPriceTable()
	prices.Append("ETH-USD", MustParse("2023-06-01"), decimal.NewFromInt(150))

	v := &Valuator{Market: prices, Fx: NewRateTable(), Symbols: DefaultSymbols(), Home: "USD"}
	value, err := v.Value(l, MustParse("2023-06-01"))
	var missing *MissingMarketPriceError
	if !errors.As(err, &missing) {
		t.Fatalf("Value() error = %v, want MissingMarketPriceError", err)
	}
	if missing.Ticker != "SOL-USD" {
		t.Errorf("missing price for %s, want SOL-USD", missing.Ticker)
	}
	if want := M(1500, "USD"); !value.Equal(want) {
		t.Errorf("partial value = %s, want %s", value.Amount(), want.Amount())
	}
}

func TestValuator_Value_UnresolvedSymbol(t *testing.T) {
	l := newTestLedger(t,
		NewBuy(MustParse("2023-01-01"), "OBSCURE", "USD", 1, 100, 0),
	)

	v := &Valuator{Market: NewPriceTable(), Fx: NewRateTable(), Symbols: SymbolMap{}, Home: "USD"}
	_, err := v.Value(l, MustParse("2023-06-01"))
	var missing *MissingMarketPriceError
	if !errors.As(err, &missing) {
		t.Fatalf("Value() error = %v, want MissingMarketPriceError", err)
	}
	if missing.Asset != "OBSCURE" || missing.Ticker != "" {
		t.Errorf("error names %s/%s, want OBSCURE with no ticker", missing.Asset, missing.Ticker)
	}
}

func TestValuator_Value_SkipsClosedPositions(t *testing.T) {
	l := newTestLedger(t,
		NewBuy(MustParse("2023-01-01"), "ETH", "USD", 10, 100, 0),
		NewSell(MustParse("2023-02-01"), "ETH", "USD", 10, 120, 0),
	)

	// no prices at all: a closed position must not require any.
	v := &Valuator{Market: NewPriceTable(), Fx: NewRateTable(), Symbols: DefaultSymbols(), Home: "USD"}
	value, err := v.Value(l, MustParse("2023-06-01"))
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}
	if !value.IsZero() {
		t.Errorf("value = %s, want zero", value.Amount())
	}
}
