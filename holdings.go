package taxfolio

import (
	"slices"
	"strings"
)

// Holdings maps each position to its signed held quantity: positive when the
// position is held, negative when more was sold than bought.
type Holdings map[PositionKey]Quantity

// Holdings nets buy and sell quantities into per-position signed quantities:
// a buy adds to (asset, debit currency), a sell subtracts from (asset, credit
// currency). The sum is commutative, so the result does not depend on the
// relative order of same-day records.
func (l *Ledger) Holdings() Holdings {
	holdings := make(Holdings)
	for _, tx := range l.records {
		switch tx.Side {
		case Buy:
			key := PositionKey{Asset: tx.Asset, Currency: tx.Debit}
			holdings[key] = holdings[key].Add(tx.Quantity)
		case Sell:
			key := PositionKey{Asset: tx.Asset, Currency: tx.Credit}
			holdings[key] = holdings[key].Sub(tx.Quantity)
		}
	}
	return holdings
}

// Keys returns the position keys sorted by asset then currency.
func (h Holdings) Keys() []PositionKey {
	keys := make([]PositionKey, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b PositionKey) int {
		if c := strings.Compare(a.Asset, b.Asset); c != 0 {
			return c
		}
		return strings.Compare(a.Currency, b.Currency)
	})
	return keys
}
