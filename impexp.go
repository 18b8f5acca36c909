package taxfolio

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// this file contains functions to handle the ingestion and import/export
// formats. Broker exports are ingested from CSV; the canonical ledger and
// the market data tables are persisted as human readable JSONL files, easy
// to diff and merge.

// export column names, after normalization of spaces and slashes.
const (
	colDate     = "DATE"
	colActivity = "ACTIVITY_TYPE"
	colAsset    = "ASSET"
	colSide     = "BUY_SELL"
	colDebit    = "DEBIT_CURRENCY"
	colCredit   = "CREDIT_CURRENCY"
	colQuantity = "QUANTITY"
	colPrice    = "PRICE_PER_UNIT"
	colFees     = "FEES_COMMISSION"
)

var exportColumns = []string{colDate, colActivity, colAsset, colSide, colDebit, colCredit, colQuantity, colPrice, colFees}

// ReadExport parses a single broker CSV export: semicolon separated, dates
// in DD/MM/YYYY form, with the {DATE, ACTIVITY TYPE, ASSET, BUY/SELL, DEBIT
// CURRENCY, CREDIT CURRENCY, QUANTITY, PRICE PER UNIT, FEES/COMMISSION}
// header contract. Spaces and slashes in header names are normalized to
// underscores before matching.
//
// Records are returned in file order; malformed rows fail with
// [InvalidRecordError] carrying the line number.
func ReadExport(r io.Reader) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read export header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToUpper(strings.TrimSpace(name))
		name = strings.ReplaceAll(name, " ", "_")
		name = strings.ReplaceAll(name, "/", "_")
		index[name] = i
	}
	for _, col := range exportColumns {
		if _, ok := index[col]; !ok {
			return nil, &InvalidRecordError{Line: 1, Field: col, Reason: "missing column"}
		}
	}

	var records []Transaction
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &InvalidRecordError{Line: line, Reason: err.Error()}
		}
		tx, err := parseExportRow(row, index, line)
		if err != nil {
			return nil, err
		}
		records = append(records, tx)
	}
	return records, nil
}

func parseExportRow(row []string, index map[string]int, line int) (Transaction, error) {
	field := func(col string) string { return strings.TrimSpace(row[index[col]]) }

	on, err := ParseDate(field(colDate))
	if err != nil {
		return Transaction{}, &InvalidRecordError{Line: line, Field: colDate, Reason: err.Error()}
	}
	side, err := ParseSide(field(colSide))
	if err != nil {
		return Transaction{}, &InvalidRecordError{Line: line, Field: colSide, Reason: err.Error()}
	}
	quantity, err := ParseQuantity(field(colQuantity))
	if err != nil {
		return Transaction{}, &InvalidRecordError{Line: line, Field: colQuantity, Reason: fmt.Sprintf("not a number: %q", field(colQuantity))}
	}
	price, err := decimal.NewFromString(field(colPrice))
	if err != nil {
		return Transaction{}, &InvalidRecordError{Line: line, Field: colPrice, Reason: fmt.Sprintf("not a number: %q", field(colPrice))}
	}
	fees, err := decimal.NewFromString(field(colFees))
	if err != nil {
		return Transaction{}, &InvalidRecordError{Line: line, Field: colFees, Reason: fmt.Sprintf("not a number: %q", field(colFees))}
	}

	tx := Transaction{
		Date:     on,
		Activity: Activity(field(colActivity)),
		Asset:    field(colAsset),
		Side:     side,
		Debit:    field(colDebit),
		Credit:   field(colCredit),
		Quantity: quantity,
	}
	tx.Price = M(price, tx.Currency())
	tx.Fees = M(fees, tx.Currency())

	if err := tx.Validate(); err != nil {
		var invalid *InvalidRecordError
		if errors.As(err, &invalid) {
			invalid.Line = line
		}
		return Transaction{}, err
	}
	return tx, nil
}

// ReadExportDir reads all *.CSV exports of a folder, merges them, keeps only
// executed-order activities, and returns the chronological ledger.
func ReadExportDir(dir string) (*Ledger, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.CSV"))
	if err != nil {
		return nil, err
	}
	more, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	matches = append(matches, more...)

	var records []Transaction
	for _, path := range matches {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("cannot open export %q: %w", path, err)
		}
		txs, err := ReadExport(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("cannot read export %q: %w", path, err)
		}
		records = append(records, txs...)
	}
	l, err := NewLedger(records...)
	if err != nil {
		return nil, err
	}
	return l.ByActivity(OrderActivities()...), nil
}

// jtransaction is the wire form of a Transaction in the ledger JSONL format.
type jtransaction struct {
	Date     Date            `json:"date"`
	Activity Activity        `json:"activity"`
	Asset    string          `json:"asset"`
	Side     Side            `json:"side"`
	Debit    string          `json:"debit,omitempty"`
	Credit   string          `json:"credit,omitempty"`
	Quantity Quantity        `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Fees     decimal.Decimal `json:"fees"`
}

// EncodeLedger writes the ledger to 'w', one JSON transaction per line, in
// chronological order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for _, tx := range l.Transactions() {
		jt := jtransaction{
			Date:     tx.Date,
			Activity: tx.Activity,
			Asset:    tx.Asset,
			Side:     tx.Side,
			Debit:    tx.Debit,
			Credit:   tx.Credit,
			Quantity: tx.Quantity,
			Price:    tx.Price.Amount(),
			Fees:     tx.Fees.Amount(),
		}
		data, err := json.Marshal(jt)
		if err != nil {
			return fmt.Errorf("cannot marshal transaction on %s: %w", tx.Date, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write ledger format: %w", err)
		}
	}
	return nil
}

// DecodeLedger reads a ledger from 'r' in the JSONL format written by
// [EncodeLedger].
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var records []Transaction
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var jt jtransaction
		if err := json.Unmarshal([]byte(raw), &jt); err != nil {
			return nil, &InvalidRecordError{Line: line, Reason: err.Error()}
		}
		tx := Transaction{
			Date:     jt.Date,
			Activity: jt.Activity,
			Asset:    jt.Asset,
			Side:     jt.Side,
			Debit:    jt.Debit,
			Credit:   jt.Credit,
			Quantity: jt.Quantity,
		}
		tx.Price = M(jt.Price, tx.Currency())
		tx.Fees = M(jt.Fees, tx.Currency())
		records = append(records, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewLedger(records...)
}

// jseries is the wire form of a dated series in the JSONL market data
// formats: one object per line, the series keyed by ISO date.
type jseries struct {
	Ticker  string                     `json:"ticker,omitempty"`
	Pair    string                     `json:"pair,omitempty"`
	History map[string]decimal.Decimal `json:"history"`
}

func decodeSeries(r io.Reader, accept func(js jseries) error) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var js jseries
		if err := json.Unmarshal([]byte(raw), &js); err != nil {
			return fmt.Errorf("cannot parse market data line %q: %w", raw, err)
		}
		if err := accept(js); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func encodeSeries(w io.Writer, js jseries) error {
	data, err := json.Marshal(js)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// DecodePrices reads a price table from 'r': one JSON object per line, with
// a 'ticker' and a 'history' of date to closing price.
func DecodePrices(r io.Reader) (*PriceTable, error) {
	t := NewPriceTable()
	err := decodeSeries(r, func(js jseries) error {
		if js.Ticker == "" {
			return fmt.Errorf("price series without ticker")
		}
		for day, price := range js.History {
			on, err := ParseDate(day)
			if err != nil {
				return err
			}
			t.Append(js.Ticker, on, price)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// EncodePrices writes the price table to 'w' in the format read by
// [DecodePrices].
func EncodePrices(w io.Writer, t *PriceTable) error {
	for _, ticker := range t.Tickers() {
		js := jseries{Ticker: ticker, History: make(map[string]decimal.Decimal)}
		for day, price := range t.tickers[ticker].Values() {
			js.History[day.String()] = price
		}
		if err := encodeSeries(w, js); err != nil {
			return fmt.Errorf("cannot write price series %q: %w", ticker, err)
		}
	}
	return nil
}

// DecodeRates reads a rate table from 'r': one JSON object per line, with a
// 'pair' (e.g. "USDEUR") and a 'history' of date to rate.
func DecodeRates(r io.Reader) (*RateTable, error) {
	t := NewRateTable()
	err := decodeSeries(r, func(js jseries) error {
		if len(js.Pair) != 6 {
			return fmt.Errorf("invalid currency pair %q", js.Pair)
		}
		src, dst := js.Pair[:3], js.Pair[3:]
		for day, rate := range js.History {
			on, err := ParseDate(day)
			if err != nil {
				return err
			}
			t.Append(on, src, dst, rate)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// EncodeRates writes the rate table to 'w' in the format read by
// [DecodeRates].
func EncodeRates(w io.Writer, t *RateTable) error {
	pairs := make([]string, 0, len(t.pairs))
	for pair := range t.pairs {
		pairs = append(pairs, pair)
	}
	slices.Sort(pairs)
	for _, pair := range pairs {
		js := jseries{Pair: pair, History: make(map[string]decimal.Decimal)}
		for day, rate := range t.pairs[pair].Values() {
			js.History[day.String()] = rate
		}
		if err := encodeSeries(w, js); err != nil {
			return fmt.Errorf("cannot write rate series %q: %w", pair, err)
		}
	}
	return nil
}
