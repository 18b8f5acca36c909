package taxfolio

import "errors"

// DisposalEvent is the outcome of one sell transaction in the tax year.
//
// Proceeds, AvgCost, PoolCost, PoolValue and Gain are expressed in the home
// currency; Price and Fees keep the transaction's settlement currency.
// PoolCost and PoolValue are zero-valued placeholders when the per-asset
// path was taken. When the event could not be computed, Err carries the
// typed failure and the monetary fields are meaningless.
type DisposalEvent struct {
	Date     Date
	Asset    string
	Currency string
	Quantity Quantity
	Price    Money // unit price of the sell
	Fees     Money
	Rate     Quantity // exchange rate applied to the proceeds

	Proceeds  Money // quantity×price − fees, in home currency
	AvgCost   Money // per-unit average acquisition cost as of the event
	PoolCost  Money // pooled acquisition cost as of the event
	PoolValue Money // pooled market value at the event date
	Gain      Money // realized disposal gain

	Err error
}

// Key returns the position key of the disposed asset.
func (e DisposalEvent) Key() PositionKey {
	return PositionKey{Asset: e.Asset, Currency: e.Currency}
}

// DisposalReport is the per-year disposal gains report: one event per sell
// transaction of the year, in chronological order.
//
// A failed event does not abort its siblings: it stays in the report with
// its Err set, and is excluded from the reduced total.
type DisposalReport struct {
	Year   int
	Home   string
	Events []DisposalEvent
}

// Total reduces the report to the sum of disposal gains over all clean
// events, in the home currency.
func (r *DisposalReport) Total() Money {
	total := M(0, r.Home)
	for _, ev := range r.Events {
		if ev.Err != nil {
			continue
		}
		total = total.Add(ev.Gain)
	}
	return total
}

// Err returns the joined per-event failures, or nil when every event
// computed cleanly.
func (r *DisposalReport) Err() error {
	var errs error
	for _, ev := range r.Events {
		errs = errors.Join(errs, ev.Err)
	}
	return errs
}

// ByPosition groups the events by disposed position, preserving
// chronological order within each group.
func (r *DisposalReport) ByPosition() map[PositionKey][]DisposalEvent {
	grouped := make(map[PositionKey][]DisposalEvent)
	for _, ev := range r.Events {
		grouped[ev.Key()] = append(grouped[ev.Key()], ev)
	}
	return grouped
}

// DisposalCalculator computes tax-year disposal gains over a ledger.
//
// Assets belonging to Pool are treated as one fungible pool: the gain of a
// pooled disposal is the proceeds minus the share of the pooled acquisition
// cost proportional to the proceeds' share of the pool's market value. All
// other assets use their own average acquisition cost.
type DisposalCalculator struct {
	Valuator *Valuator
	Pool     PooledGroup
}

// NewDisposalCalculator creates a calculator valuing pooled holdings with
// the given valuator and pooling the given group.
func NewDisposalCalculator(v *Valuator, pool PooledGroup) *DisposalCalculator {
	return &DisposalCalculator{Valuator: v, Pool: pool}
}

// running accumulates the home-converted acquisition state of a position as
// the chronological pass advances.
type running struct {
	cost Money // fees-inclusive buy cost, converted to home at the buy dates
	qty  Quantity
	err  error // rate failures met while accumulating; poisons dependent events
}

// Disposals computes the disposal report for the given tax year.
//
// The ledger is walked once in chronological order, maintaining running
// acquisition state per position and for the pool, so each event reads its
// "as of" snapshot in constant time instead of re-aggregating a ledger
// prefix. State is updated after the event is emitted: the as-of boundary is
// strictly before the event's own row, for both paths.
//
// The report always carries every event of the year; the returned error is
// the join of the per-event failures, nil when all events are clean.
func (c *DisposalCalculator) Disposals(l *Ledger, year int) (*DisposalReport, error) {
	home := c.Valuator.Home
	basis := make(map[PositionKey]*running)
	pool := &running{cost: M(0, home)}
	poolHoldings := make(Holdings)

	report := &DisposalReport{Year: year, Home: home}
	for _, tx := range l.records {
		if tx.Side == Sell && tx.Date.Year() == year {
			report.Events = append(report.Events, c.dispose(tx, basis, pool, poolHoldings))
		}
		c.accumulate(tx, basis, pool, poolHoldings)
	}
	return report, report.Err()
}

// accumulate folds one transaction into the running state.
func (c *DisposalCalculator) accumulate(tx Transaction, basis map[PositionKey]*running, pool *running, poolHoldings Holdings) {
	home := c.Valuator.Home
	pooled := c.Pool.Contains(tx.Asset)
	key := tx.Key()

	switch tx.Side {
	case Buy:
		r := basis[key]
		if r == nil {
			r = &running{cost: M(0, home)}
			basis[key] = r
		}
		rate, err := c.Valuator.Fx.Rate(tx.Date, tx.Debit, home)
		if err != nil {
			r.err = errors.Join(r.err, err)
			if pooled {
				pool.err = errors.Join(pool.err, err)
			}
		} else {
			net := tx.Price.Mul(tx.Quantity).Add(tx.Fees).Mul(rate)
			r.cost = r.cost.Add(M(net.value, home))
			if pooled {
				pool.cost = pool.cost.Add(M(net.value, home))
			}
		}
		r.qty = r.qty.Add(tx.Quantity)
		if pooled {
			poolHoldings[key] = poolHoldings[key].Add(tx.Quantity)
		}
	case Sell:
		if pooled {
			poolHoldings[key] = poolHoldings[key].Sub(tx.Quantity)
		}
	}
}

// dispose computes the event for one sell of the tax year, against the
// running state as of strictly before the sell's own row.
func (c *DisposalCalculator) dispose(tx Transaction, basis map[PositionKey]*running, pool *running, poolHoldings Holdings) DisposalEvent {
	home := c.Valuator.Home
	ev := DisposalEvent{
		Date:     tx.Date,
		Asset:    tx.Asset,
		Currency: tx.Credit,
		Quantity: tx.Quantity,
		Price:    tx.Price,
		Fees:     tx.Fees,
	}

	rate, err := c.Valuator.Fx.Rate(tx.Date, tx.Credit, home)
	if err != nil {
		ev.Err = err
		return ev
	}
	ev.Rate = rate
	ev.Proceeds = M(tx.Price.Mul(tx.Quantity).Sub(tx.Fees).Mul(rate).value, home)

	r := basis[tx.Key()]
	if r != nil && r.err != nil {
		ev.Err = r.err
		return ev
	}
	if r != nil && !r.qty.IsZero() {
		ev.AvgCost = r.cost.Div(r.qty)
	}

	if c.Pool.Contains(tx.Asset) {
		if pool.err != nil {
			ev.Err = pool.err
			return ev
		}
		value, err := c.Valuator.value(poolHoldings, tx.Date)
		if err != nil {
			ev.Err = err
			return ev
		}
		if value.IsZero() {
			ev.Err = &ZeroPoolValueError{Asset: tx.Asset, Date: tx.Date}
			return ev
		}
		ev.PoolCost, ev.PoolValue = pool.cost, value
		ev.Gain = ev.Proceeds.Sub(pool.cost.Mul(ev.Proceeds.DivPrice(value)))
		return ev
	}

	if r == nil || r.qty.IsZero() {
		ev.Err = &UndefinedAverageCostError{Asset: tx.Asset, Currency: tx.Credit}
		return ev
	}
	ev.Gain = ev.Proceeds.Sub(ev.AvgCost.Mul(tx.Quantity))
	return ev
}
