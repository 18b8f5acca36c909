package taxfolio

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const sampleExport = `DATE;ACTIVITY TYPE;ASSET;BUY/SELL;DEBIT CURRENCY;CREDIT CURRENCY;QUANTITY;PRICE PER UNIT;FEES/COMMISSION
01/01/2023;INVEST_ORDER_EXECUTED;ETH;BUY;USD;;10;100;1
15/02/2023;INVEST_RECURRING_ORDER_EXECUTED;AAPL;BUY;USD;;5;150;0.5
01/06/2023;INVEST_ORDER_EXECUTED;ETH;SELL;;USD;4;150;1
`

func TestReadExport(t *testing.T) {
	records, err := ReadExport(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("ReadExport() failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("read %d records, want 3", len(records))
	}

	first := records[0]
	if want := MustParse("2023-01-01"); first.Date != want {
		t.Errorf("date = %s, want %s", first.Date, want)
	}
	if first.Activity != OrderExecuted || first.Asset != "ETH" || first.Side != Buy {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.Currency() != "USD" {
		t.Errorf("settlement currency = %s, want USD", first.Currency())
	}
	if want := M(100, "USD"); !first.Price.Equal(want) {
		t.Errorf("price = %s, want %s", first.Price.Amount(), want.Amount())
	}

	sell := records[2]
	if sell.Side != Sell || sell.Currency() != "USD" {
		t.Errorf("unexpected sell record: %+v", sell)
	}
}

func TestReadExport_Invalid(t *testing.T) {
	header := "DATE;ACTIVITY TYPE;ASSET;BUY/SELL;DEBIT CURRENCY;CREDIT CURRENCY;QUANTITY;PRICE PER UNIT;FEES/COMMISSION\n"

	testCases := []struct {
		name  string
		body  string
		line  int
		field string
	}{
		{"bad date", "2023 jan 1;INVEST_ORDER_EXECUTED;ETH;BUY;USD;;10;100;1\n", 2, colDate},
		{"bad side", "01/01/2023;INVEST_ORDER_EXECUTED;ETH;SWAP;USD;;10;100;1\n", 2, colSide},
		{"bad quantity", "01/01/2023;INVEST_ORDER_EXECUTED;ETH;BUY;USD;;ten;100;1\n", 2, colQuantity},
		{"zero quantity", "01/01/2023;INVEST_ORDER_EXECUTED;ETH;BUY;USD;;0;100;1\n", 2, colQuantity},
		{"missing currency", "01/01/2023;INVEST_ORDER_EXECUTED;ETH;BUY;;;10;100;1\n", 2, "CURRENCY"},
		{"second row", "01/01/2023;INVEST_ORDER_EXECUTED;ETH;BUY;USD;;10;100;1\n01/01/2023;INVEST_ORDER_EXECUTED;ETH;BUY;USD;;10;oops;1\n", 3, colPrice},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadExport(strings.NewReader(header + tc.body))
			var invalid *InvalidRecordError
			if !errors.As(err, &invalid) {
				t.Fatalf("ReadExport() error = %v, want InvalidRecordError", err)
			}
			if invalid.Line != tc.line {
				t.Errorf("error on line %d, want %d", invalid.Line, tc.line)
			}
			if invalid.Field != tc.field {
				t.Errorf("error on field %q, want %q", invalid.Field, tc.field)
			}
		})
	}
}

func TestReadExport_MissingColumn(t *testing.T) {
	_, err := ReadExport(strings.NewReader("DATE;ASSET\n"))
	var invalid *InvalidRecordError
	if !errors.As(err, &invalid) {
		t.Fatalf("ReadExport() error = %v, want InvalidRecordError", err)
	}
	if invalid.Line != 1 {
		t.Errorf("error on line %d, want 1", invalid.Line)
	}
}

func TestLedgerRoundTrip(t *testing.T) {
	l := newTestLedger(t,
		NewBuy(MustParse("2023-01-01"), "ETH", "USD", 10, 100.5, 1),
		NewSell(MustParse("2023-06-01"), "ETH", "USD", 4, 150, 1),
	)

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatalf("EncodeLedger() failed: %v", err)
	}

	got, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger() failed: %v", err)
	}
	if got.Len() != l.Len() {
		t.Fatalf("decoded %d records, want %d", got.Len(), l.Len())
	}
	for i, tx := range l.Transactions() {
		dec := got.records[i]
		if dec.Date != tx.Date || dec.Asset != tx.Asset || dec.Side != tx.Side {
			t.Errorf("record %d = %+v, want %+v", i, dec, tx)
		}
		if !dec.Price.Equal(tx.Price) || !dec.Quantity.Equal(tx.Quantity) {
			t.Errorf("record %d price/quantity mismatch", i)
		}
	}
}

func TestMarketDataRoundTrip(t *testing.T) {
	prices, err := DecodePrices(strings.NewReader(
		`{"ticker":"ETH-USD","history":{"2023-01-01":150,"2023-03-01":180}}` + "\n"))
	if err != nil {
		t.Fatalf("DecodePrices() failed: %v", err)
	}
	price, err := prices.Price("ETH-USD", MustParse("2023-02-01"))
	if err != nil {
		t.Fatalf("Price() failed: %v", err)
	}
	if want := Q(150); !price.Equal(want) {
		t.Errorf("price = %s, want %s", price, want)
	}

	var buf bytes.Buffer
	if err := EncodePrices(&buf, prices); err != nil {
		t.Fatalf("EncodePrices() failed: %v", err)
	}
	again, err := DecodePrices(&buf)
	if err != nil {
		t.Fatalf("DecodePrices() on encoded output failed: %v", err)
	}
	if price, _ := again.Price("ETH-USD", MustParse("2023-03-01")); !price.Equal(Q(180)) {
		t.Errorf("price after round trip = %s, want 180", price)
	}

	rates, err := DecodeRates(strings.NewReader(
		`{"pair":"EURUSD","history":{"2023-01-01":1.1}}` + "\n"))
	if err != nil {
		t.Fatalf("DecodeRates() failed: %v", err)
	}
	rate, err := rates.Rate(MustParse("2023-06-01"), "EUR", "USD")
	if err != nil {
		t.Fatalf("Rate() failed: %v", err)
	}
	if want := Q(1.1); !rate.Equal(want) {
		t.Errorf("rate = %s, want %s", rate, want)
	}
}

func TestDecodeRates_InvalidPair(t *testing.T) {
	_, err := DecodeRates(strings.NewReader(`{"pair":"EUR","history":{}}` + "\n"))
	if err == nil {
		t.Fatal("DecodeRates() accepted an invalid pair")
	}
}
