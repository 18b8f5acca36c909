// Package renderer renders taxfolio reports as markdown, suitable for
// terminal display.
package renderer

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/etnz/taxfolio"
)

// Transactions renders the ledger's transactions as a markdown table.
func Transactions(l *taxfolio.Ledger) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Transactions\n\n")
	fmt.Fprintln(&b, "| Date | Asset | Order | Currency | Quantity | Price | Fees |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|---:|---:|---:|")
	for _, tx := range l.Transactions() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			tx.Date,
			tx.Asset,
			tx.Side,
			tx.Currency(),
			tx.Quantity,
			tx.Price.Amount(),
			tx.Fees.Amount(),
		)
	}
	return b.String()
}

// Holdings renders the held quantity, realized gains and fees of every
// position as a markdown table.
func Holdings(l *taxfolio.Ledger) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Holdings\n\n")
	fmt.Fprintln(&b, "| Asset | Quantity | Gains | Fees |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, asset := range l.Assets() {
		for currency, g := range sorted(l.Gains(asset)) {
			fmt.Fprintf(&b, "| %s-%s | %s | %s | %s |\n",
				asset, currency, g.Quantity, g.Gains.SignedString(), g.Fees.Amount())
		}
	}
	return b.String()
}

// Gains renders the realized gains of every position as a markdown table.
func Gains(l *taxfolio.Ledger) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Realized Gains\n\n")
	fmt.Fprintln(&b, "| Asset | Gains | Fees |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, asset := range l.Assets() {
		for currency, g := range sorted(l.Gains(asset)) {
			fmt.Fprintf(&b, "| %s-%s | %s | %s |\n",
				asset, currency, g.Gains.SignedString(), g.Fees.Amount())
		}
	}
	return b.String()
}

// Disposals renders the per-year disposal report: the itemized events, with
// an explicit marker for events that failed, and the reduced total over the
// clean events.
func Disposals(r *taxfolio.DisposalReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Disposal Gains %d\n\n", r.Year)

	fmt.Fprintln(&b, "| Date | Asset | Quantity | Price | Fees | Avg Cost | Pool Cost | Pool Value | Rate | Gain |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|---:|---:|")
	for _, ev := range r.Events {
		if ev.Err != nil {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | ⚠️ %s |||||\n",
				ev.Date, ev.Key(), ev.Quantity, ev.Price.Amount(), ev.Fees.Amount(), ev.Err)
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			ev.Date,
			ev.Key(),
			ev.Quantity,
			ev.Price.Amount(),
			ev.Fees.Amount(),
			money(ev.AvgCost),
			money(ev.PoolCost),
			money(ev.PoolValue),
			ev.Rate,
			ev.Gain.SignedString(),
		)
	}

	fmt.Fprintf(&b, "\nTotal disposal gain (%s): **%s**\n", r.Home, r.Total().SignedString())
	if err := r.Err(); err != nil {
		fmt.Fprintf(&b, "\nSome events could not be computed and are excluded from the total:\n\n```\n%s\n```\n", err)
	}
	return b.String()
}

// money renders a money value, or a dash for the zero-valued placeholder.
func money(m taxfolio.Money) string {
	if m.IsZero() {
		return "-"
	}
	return m.String()
}

// sorted yields the map entries in currency order.
func sorted(gains map[string]taxfolio.Gains) iter.Seq2[string, taxfolio.Gains] {
	currencies := make([]string, 0, len(gains))
	for c := range gains {
		currencies = append(currencies, c)
	}
	slices.Sort(currencies)
	return func(yield func(string, taxfolio.Gains) bool) {
		for _, c := range currencies {
			if !yield(c, gains[c]) {
				return
			}
		}
	}
}
