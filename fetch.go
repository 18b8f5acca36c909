package taxfolio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// defaultClosePath extracts the last close of an intraday chart series as
// served by ls-tc style endpoints.
const defaultClosePath = "$.series.intraday.data[-1:][1]"

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}

// FetchClose fetches a JSON document and extracts a closing price from it
// with a jsonpath expression. An empty expression uses the intraday chart
// layout of ls-tc style endpoints.
func FetchClose(client *http.Client, addr, expr string) (float64, error) {
	if expr == "" {
		expr = defaultClosePath
	}
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("error in wget %q: %w", addr, err)
	}
	jval, err := jsonpath.Get(expr, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %q %w", addr, expr, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("error parsing %q: %q %s %v", addr, expr, "not a float", jval)
	}
	return val, nil
}

// Fetch updates the table with today's closing price of each ticker, from
// the given ticker to endpoint address mapping. Tickers that fail to fetch
// are reported in the returned error, the others are still updated.
func (t *PriceTable) Fetch(client *http.Client, endpoints map[string]string, expr string) error {
	var errs error
	for ticker, addr := range endpoints {
		val, err := FetchClose(client, addr, expr)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("could not fetch %s: %w", ticker, err))
			continue
		}
		t.Append(ticker, Today(), decimal.NewFromFloat(val))
	}
	return errs
}
