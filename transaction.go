package taxfolio

import "fmt"

// Side identifies the direction of an executed order.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// ParseSide parses a string into a Side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case Buy, Sell:
		return Side(s), nil
	default:
		return "", fmt.Errorf("unknown order side: %q", s)
	}
}

// Activity identifies the kind of ledger row in a broker export.
type Activity string

const (
	// OrderExecuted is a one-off investment order execution.
	OrderExecuted Activity = "INVEST_ORDER_EXECUTED"
	// RecurringOrderExecuted is a scheduled investment order execution.
	RecurringOrderExecuted Activity = "INVEST_RECURRING_ORDER_EXECUTED"
)

// OrderActivities returns the activity kinds admitted to the engine by
// default: only rows representing an executed investment order.
func OrderActivities() []Activity {
	return []Activity{OrderExecuted, RecurringOrderExecuted}
}

// Transaction is a single executed order from a broker export. It is
// immutable once ingested.
//
// A BUY settles in the debit currency, a SELL settles in the credit
// currency: Price and Fees are denominated in the settlement currency.
type Transaction struct {
	Date     Date
	Activity Activity
	Asset    string
	Side     Side
	Debit    string // debit currency
	Credit   string // credit currency
	Quantity Quantity
	Price    Money // price per unit, in the settlement currency
	Fees     Money // fees and commission, in the settlement currency
}

// NewBuy creates a buy transaction settling in the debit currency.
func NewBuy(on Date, asset, debitCurrency string, quantity, price, fees float64) Transaction {
	return Transaction{
		Date:     on,
		Activity: OrderExecuted,
		Asset:    asset,
		Side:     Buy,
		Debit:    debitCurrency,
		Quantity: Q(quantity),
		Price:    M(price, debitCurrency),
		Fees:     M(fees, debitCurrency),
	}
}

// NewSell creates a sell transaction settling in the credit currency.
func NewSell(on Date, asset, creditCurrency string, quantity, price, fees float64) Transaction {
	return Transaction{
		Date:     on,
		Activity: OrderExecuted,
		Asset:    asset,
		Side:     Sell,
		Credit:   creditCurrency,
		Quantity: Q(quantity),
		Price:    M(price, creditCurrency),
		Fees:     M(fees, creditCurrency),
	}
}

// Currency returns the settlement currency of the transaction: the debit
// currency for a buy, the credit currency for a sell.
func (t Transaction) Currency() string {
	if t.Side == Sell {
		return t.Credit
	}
	return t.Debit
}

// Key returns the position key the transaction settles against.
func (t Transaction) Key() PositionKey {
	return PositionKey{Asset: t.Asset, Currency: t.Currency()}
}

// Validate checks the transaction for correctness.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return &InvalidRecordError{Field: "DATE", Reason: "missing date"}
	}
	if t.Asset == "" {
		return &InvalidRecordError{Field: "ASSET", Reason: "missing asset symbol"}
	}
	if t.Side != Buy && t.Side != Sell {
		return &InvalidRecordError{Field: "BUY_SELL", Reason: fmt.Sprintf("unknown order side %q", t.Side)}
	}
	if t.Currency() == "" {
		return &InvalidRecordError{Field: "CURRENCY", Reason: "missing settlement currency"}
	}
	if !t.Quantity.IsPositive() {
		return &InvalidRecordError{Field: "QUANTITY", Reason: fmt.Sprintf("quantity %s is not positive", t.Quantity)}
	}
	if t.Price.IsNegative() {
		return &InvalidRecordError{Field: "PRICE_PER_UNIT", Reason: fmt.Sprintf("price %s is negative", t.Price.Amount())}
	}
	if t.Fees.IsNegative() {
		return &InvalidRecordError{Field: "FEES_COMMISSION", Reason: fmt.Sprintf("fees %s are negative", t.Fees.Amount())}
	}
	return nil
}

// PositionKey identifies a position: an asset held in a specific currency.
type PositionKey struct {
	Asset    string
	Currency string
}

func (k PositionKey) String() string { return k.Asset + "-" + k.Currency }
