package taxfolio

import "fmt"

// CostBasis accumulates the acquisition side of a position: the total amount
// spent on buys, the total quantity acquired, and the fees paid, all in the
// position's currency.
type CostBasis struct {
	Cost     Money
	Fees     Money
	Quantity Quantity
}

// CostBasis computes the accumulated acquisition cost for the given asset,
// grouped by debit currency. Only BUY rows contribute: sell rows representing
// currency-to-currency trades are excluded by design, a documented limitation
// of the engine.
func (l *Ledger) CostBasis(asset string) map[string]CostBasis {
	costs := make(map[string]CostBasis)
	for _, tx := range l.records {
		if tx.Side != Buy || tx.Asset != asset {
			continue
		}
		c := costs[tx.Debit]
		c.Cost = c.Cost.Add(tx.Price.Mul(tx.Quantity))
		c.Fees = c.Fees.Add(tx.Fees)
		c.Quantity = c.Quantity.Add(tx.Quantity)
		costs[tx.Debit] = c
	}
	return costs
}

// SingleCostBasis returns the asset's cost basis when it was acquired in one
// currency only. Aggregating a cost basis across settlement currencies is not
// modeled: an asset acquired in several currencies fails with
// [UnsupportedOperationError], the caller must query per currency with
// [Ledger.CostBasis] instead.
func (l *Ledger) SingleCostBasis(asset string) (CostBasis, error) {
	costs := l.CostBasis(asset)
	if len(costs) > 1 {
		return CostBasis{}, &UnsupportedOperationError{
			Op:     "cost basis of " + asset,
			Reason: fmt.Sprintf("acquired in %d currencies, query per currency", len(costs)),
		}
	}
	for _, c := range costs {
		return c, nil
	}
	return CostBasis{}, nil
}

// AverageCost returns the acquisition cost of the asset in the given
// currency. When averaged is true the cost is the fees-inclusive net cost per
// acquired unit, otherwise the raw net cost.
//
// An averaged query over a position with zero acquired quantity fails with
// [UndefinedAverageCostError]; it never degrades to a NaN or a silent zero.
func (l *Ledger) AverageCost(asset, currency string, averaged bool) (Money, error) {
	c, ok := l.CostBasis(asset)[currency]
	net := c.Cost.Add(c.Fees)
	if !averaged {
		return M(net.Amount(), currency), nil
	}
	if !ok || c.Quantity.IsZero() {
		return Money{}, &UndefinedAverageCostError{Asset: asset, Currency: currency}
	}
	return net.Div(c.Quantity), nil
}
