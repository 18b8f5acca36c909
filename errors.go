package taxfolio

import "fmt"

// This file defines the error taxonomy of the engine. All computation
// failures surface as one of these typed errors, carrying the offending
// position and date, and are never silently defaulted.

// InvalidRecordError reports a malformed ledger record, at ingestion or
// construction time.
type InvalidRecordError struct {
	Line   int    // 1-based line in the source file, 0 when not file-based
	Field  string // offending field, may be empty
	Reason string
}

func (e *InvalidRecordError) Error() string {
	msg := "invalid record"
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d", msg, e.Line)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s, field %s", msg, e.Field)
	}
	return fmt.Sprintf("%s: %s", msg, e.Reason)
}

// MissingFxRateError reports that no exchange rate is recorded for a
// currency pair at a given date.
type MissingFxRateError struct {
	Date Date
	Src  string
	Dst  string
}

func (e *MissingFxRateError) Error() string {
	return fmt.Sprintf("no exchange rate for %s/%s on %s", e.Src, e.Dst, e.Date)
}

// MissingMarketPriceError reports that no market price is recorded for an
// asset at a given date, or that the asset has no known market ticker.
type MissingMarketPriceError struct {
	Asset  string
	Ticker string // empty when the asset could not be resolved to a ticker
	Date   Date
}

func (e *MissingMarketPriceError) Error() string {
	if e.Ticker == "" {
		return fmt.Sprintf("no market ticker known for asset %s", e.Asset)
	}
	return fmt.Sprintf("no market price for %s (%s) on %s", e.Asset, e.Ticker, e.Date)
}

// UndefinedAverageCostError reports an average-cost query over a position
// with zero accumulated quantity.
type UndefinedAverageCostError struct {
	Asset    string
	Currency string
}

func (e *UndefinedAverageCostError) Error() string {
	return fmt.Sprintf("average cost of %s-%s is undefined: no acquired quantity", e.Asset, e.Currency)
}

// ZeroPoolValueError reports a pooled disposal whose pool market value is
// zero at the event date, making proportional allocation impossible.
type ZeroPoolValueError struct {
	Asset string
	Date  Date
}

func (e *ZeroPoolValueError) Error() string {
	return fmt.Sprintf("pooled holdings have zero market value on %s, cannot allocate cost for %s disposal", e.Date, e.Asset)
}

// UnsupportedOperationError reports a query the engine deliberately does not
// model.
type UnsupportedOperationError struct {
	Op     string
	Reason string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation %s: %s", e.Op, e.Reason)
}
