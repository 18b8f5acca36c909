package taxfolio

// Gains accumulates the disposal side of a position against its acquisition
// cost: total realized gains, remaining quantity, and fees paid on both
// sides, all in the position's currency.
type Gains struct {
	Gains    Money
	Fees     Money
	Quantity Quantity
}

// Gains computes realized gains for the given asset, grouped by credit
// currency: the sum of sell proceeds minus the accumulated acquisition cost
// in the same currency. The remaining quantity is the acquired quantity minus
// the sold quantity, and fees accumulate over both buys and sells.
//
// When the asset has never been sold, the result carries zero gains per
// acquisition currency, with the acquired quantity and fees.
func (l *Ledger) Gains(asset string) map[string]Gains {
	costs := l.CostBasis(asset)

	proceeds := make(map[string]Money)
	sold := make(map[string]Quantity)
	fees := make(map[string]Money)
	for _, tx := range l.records {
		if tx.Side != Sell || tx.Asset != asset {
			continue
		}
		proceeds[tx.Credit] = proceeds[tx.Credit].Add(tx.Price.Mul(tx.Quantity))
		sold[tx.Credit] = sold[tx.Credit].Add(tx.Quantity)
		fees[tx.Credit] = fees[tx.Credit].Add(tx.Fees)
	}

	gains := make(map[string]Gains)
	if len(proceeds) == 0 {
		for currency, c := range costs {
			gains[currency] = Gains{Fees: c.Fees, Quantity: c.Quantity}
		}
		return gains
	}
	for currency, p := range proceeds {
		c := costs[currency]
		gains[currency] = Gains{
			Gains:    p.Sub(c.Cost),
			Fees:     fees[currency].Add(c.Fees),
			Quantity: c.Quantity.Sub(sold[currency]),
		}
	}
	return gains
}
