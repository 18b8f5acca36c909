package taxfolio

import "errors"

// FxRateGateway provides point-in-time exchange rates. Rate returns the
// number of dst units per src unit on the given date. Implementations must
// return Q(1) when src equals dst and fail with [MissingFxRateError] when no
// rate is recorded for the pair at that date; they must never default to a
// rate of 1.0 for distinct currencies.
type FxRateGateway interface {
	Rate(on Date, src, dst string) (Quantity, error)
}

// MarketDataGateway provides historical daily closing prices.
// Implementations fail with [MissingMarketPriceError] when no price is
// recorded for the ticker at that date.
type MarketDataGateway interface {
	Price(ticker string, on Date) (Quantity, error)
}

// Valuator marks holdings to market, expressing everything in the home
// currency.
type Valuator struct {
	Market  MarketDataGateway
	Fx      FxRateGateway
	Symbols SymbolResolver
	Home    string // home/reporting currency
}

// Value computes the market value of the ledger's holdings on the given
// date, in the home currency.
//
// Positions that cannot be valued, because the asset has no known ticker, no
// recorded price, or no exchange rate, are skipped and reported in the
// returned error, one [MissingMarketPriceError] or [MissingFxRateError] per
// position. The returned value covers the remaining positions, so a caller
// gets a partial valuation with an explicit account of what is missing
// instead of a silent zero.
func (v *Valuator) Value(l *Ledger, on Date) (Money, error) {
	return v.value(l.Holdings(), on)
}

func (v *Valuator) value(holdings Holdings, on Date) (Money, error) {
	total := M(0, v.Home)
	var errs error
	for _, key := range holdings.Keys() {
		quantity := holdings[key]
		if quantity.IsZero() {
			continue
		}
		ticker, ok := v.Symbols.Resolve(key.Asset)
		if !ok {
			errs = errors.Join(errs, &MissingMarketPriceError{Asset: key.Asset})
			continue
		}
		price, err := v.Market.Price(ticker, on)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		rate, err := v.Fx.Rate(on, key.Currency, v.Home)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		total = total.Add(M(price.Mul(rate).Mul(quantity).value, v.Home))
	}
	return total, errs
}
