package taxfolio

import (
	"iter"
	"slices"
	"sort"
)

// Ledger is an immutable list of transactions.
//
// In a Ledger transactions are always in chronological order; records on the
// same day keep their original ingestion order. All filtering methods return
// new read-only views sharing no mutable state with the receiver, so a view
// can safely be consumed concurrently with its parent.
type Ledger struct {
	records []Transaction
}

// NewLedger creates a ledger from the given records. Each record is
// validated, then the whole set is stable-sorted by date, preserving the
// ingestion order of same-day records.
func NewLedger(records ...Transaction) (*Ledger, error) {
	for _, tx := range records {
		if err := tx.Validate(); err != nil {
			return nil, err
		}
	}
	l := &Ledger{records: slices.Clone(records)}
	l.stableSort()
	return l, nil
}

// stableSort sorts the ledger by transaction date. The sort is stable, meaning
// transactions on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.records, func(i, j int) bool {
		return l.records[i].Date.Before(l.records[j].Date)
	})
}

// Len returns the number of records in this view.
func (l *Ledger) Len() int { return len(l.records) }

// Transactions returns an iterator that yields each transaction in
// chronological order, with its index in this view.
func (l *Ledger) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.records {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// filter returns a new view keeping records matching the predicate, in order.
func (l *Ledger) filter(keep func(Transaction) bool) *Ledger {
	out := make([]Transaction, 0, len(l.records))
	for _, tx := range l.records {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	return &Ledger{records: out}
}

// ByActivity returns the view restricted to records of the given activity kinds.
func (l *Ledger) ByActivity(kinds ...Activity) *Ledger {
	return l.filter(func(tx Transaction) bool {
		return slices.Contains(kinds, tx.Activity)
	})
}

// ByAsset returns the view restricted to records of the given assets.
func (l *Ledger) ByAsset(assets ...string) *Ledger {
	return l.filter(func(tx Transaction) bool {
		return slices.Contains(assets, tx.Asset)
	})
}

// BySide returns the view restricted to records of the given order side.
func (l *Ledger) BySide(side Side) *Ledger {
	return l.filter(func(tx Transaction) bool { return tx.Side == side })
}

// Between returns the view restricted to records within the date range,
// boundaries included.
func (l *Ledger) Between(r Range) *Ledger {
	return l.filter(func(tx Transaction) bool { return r.Contains(tx.Date) })
}

// Prefix returns the view of the first n records in chronological order.
// If n exceeds the ledger size the whole view is returned.
func (l *Ledger) Prefix(n int) *Ledger {
	if n > len(l.records) {
		n = len(l.records)
	}
	if n < 0 {
		n = 0
	}
	return &Ledger{records: l.records[:n:n]}
}

// OldestTransactionDate returns the date of the earliest record in this view,
// or the zero date when the view is empty.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.records) == 0 {
		return Date{}
	}
	return l.records[0].Date
}

// NewestTransactionDate returns the date of the latest record in this view,
// or the zero date when the view is empty.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.records) == 0 {
		return Date{}
	}
	return l.records[len(l.records)-1].Date
}

// Assets returns the distinct asset symbols seen in this view, sorted.
func (l *Ledger) Assets() []string {
	seen := make(map[string]struct{})
	for _, tx := range l.records {
		seen[tx.Asset] = struct{}{}
	}
	assets := make([]string, 0, len(seen))
	for a := range seen {
		assets = append(assets, a)
	}
	slices.Sort(assets)
	return assets
}

// Currencies returns the distinct settlement currencies seen in this view, sorted.
func (l *Ledger) Currencies() []string {
	seen := make(map[string]struct{})
	for _, tx := range l.records {
		seen[tx.Currency()] = struct{}{}
	}
	currencies := make([]string, 0, len(seen))
	for c := range seen {
		currencies = append(currencies, c)
	}
	slices.Sort(currencies)
	return currencies
}
