package taxfolio

import (
	"iter"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// history stores a chronological series of values, each associated with a
// specific date. Dates are unique and the series is always sorted.
type history struct {
	days   []Date
	values []decimal.Decimal
}

// Append adds a point to the history. An existing value at that date is
// overwritten.
func (h *history) Append(on Date, v decimal.Decimal) {
	if i := slices.Index(h.days, on); i >= 0 {
		h.values[i] = v
		return
	}
	h.days, h.values = append(h.days, on), append(h.values, v)
	sort.Sort(chronological{h})
}

// AsOf returns the last value recorded on or before the given date.
func (h *history) AsOf(on Date) (decimal.Decimal, bool) {
	// index of the first day strictly after 'on'
	i := sort.Search(len(h.days), func(i int) bool { return h.days[i].After(on) })
	if i == 0 {
		return decimal.Decimal{}, false
	}
	return h.values[i-1], true
}

// Values returns an iterator over all date/value pairs, in chronological order.
func (h *history) Values() iter.Seq2[Date, decimal.Decimal] {
	return func(yield func(Date, decimal.Decimal) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// chronological is a private implementation to keep a history sorted.
type chronological struct{ *history }

func (s chronological) Len() int           { return len(s.days) }
func (s chronological) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }
func (s chronological) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// RateTable is an in-memory [FxRateGateway] backed by per-pair daily rate
// histories.
type RateTable struct {
	pairs map[string]*history // indexed by src+dst pair, e.g. "USDEUR"
}

// NewRateTable creates an empty rate table.
func NewRateTable() *RateTable {
	return &RateTable{pairs: make(map[string]*history)}
}

// Append records the rate of the src/dst pair on a date: the number of dst
// units per src unit.
func (t *RateTable) Append(on Date, src, dst string, rate decimal.Decimal) {
	pair := src + dst
	h := t.pairs[pair]
	if h == nil {
		h = &history{}
		t.pairs[pair] = h
	}
	h.Append(on, rate)
}

// Rate returns the last recorded rate for the pair on or before the date.
// Identical currencies convert at 1. When the direct pair is unknown, the
// inverse pair is tried. A pair with no recorded rate at that date fails
// with [MissingFxRateError].
func (t *RateTable) Rate(on Date, src, dst string) (Quantity, error) {
	if src == dst {
		return Q(1), nil
	}
	if h := t.pairs[src+dst]; h != nil {
		if rate, ok := h.AsOf(on); ok {
			return Q(rate), nil
		}
	}
	if h := t.pairs[dst+src]; h != nil {
		if inverse, ok := h.AsOf(on); ok && !inverse.IsZero() {
			return Q(1).Div(Q(inverse)), nil
		}
	}
	return Quantity{}, &MissingFxRateError{Date: on, Src: src, Dst: dst}
}

var _ FxRateGateway = (*RateTable)(nil)

// PriceTable is an in-memory [MarketDataGateway] backed by per-ticker daily
// closing price histories.
type PriceTable struct {
	tickers map[string]*history
}

// NewPriceTable creates an empty price table.
func NewPriceTable() *PriceTable {
	return &PriceTable{tickers: make(map[string]*history)}
}

// Append records the closing price of a ticker on a date.
func (t *PriceTable) Append(ticker string, on Date, price decimal.Decimal) {
	h := t.tickers[ticker]
	if h == nil {
		h = &history{}
		t.tickers[ticker] = h
	}
	h.Append(on, price)
}

// Price returns the last recorded closing price for the ticker on or before
// the date. A ticker with no recorded price at that date fails with
// [MissingMarketPriceError].
func (t *PriceTable) Price(ticker string, on Date) (Quantity, error) {
	if h := t.tickers[ticker]; h != nil {
		if price, ok := h.AsOf(on); ok {
			return Q(price), nil
		}
	}
	return Quantity{}, &MissingMarketPriceError{Asset: ticker, Ticker: ticker, Date: on}
}

var _ MarketDataGateway = (*PriceTable)(nil)

// Tickers returns the tickers known to the table, sorted.
func (t *PriceTable) Tickers() []string {
	tickers := make([]string, 0, len(t.tickers))
	for ticker := range t.tickers {
		tickers = append(tickers, ticker)
	}
	slices.Sort(tickers)
	return tickers
}
