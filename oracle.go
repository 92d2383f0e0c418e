package moneybook

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

const usdRateEnv = "MONEYBOOK_USD_RATE"

var usdRateFlag = flag.String("usd-rate", "", "KRW per USD rate applied to USD quotes.\n If missing it is read from the environment variable \""+usdRateEnv+"\", defaulting to 1450.")

func usdRate() decimal.Decimal {
	s := *usdRateFlag
	if s == "" {
		s = os.Getenv(usdRateEnv)
	}
	if s != "" {
		if d, err := decimal.NewFromString(s); err == nil && d.IsPositive() {
			return d
		}
	}
	// The original application pins this rate; a forex feed is out of scope.
	return decimal.NewFromInt(1450)
}

// Quote is the single current price the oracle returns for a ticker.
type Quote struct {
	Price    decimal.Decimal
	Currency string
	Name     string
	Ticker   string
}

// Oracle is the client of the external market price service. It answers a
// ticker query with a single current price, converted to the book's
// reporting currency.
type Oracle struct {
	BaseURL string
	Client  *http.Client
}

// NewOracle creates a price oracle client with a day-keyed response cache,
// so that repeated refreshes in one day do not hammer the service.
func NewOracle(baseURL string) *Oracle {
	return &Oracle{
		BaseURL: baseURL,
		Client:  &http.Client{Transport: &diskCache{base: http.DefaultTransport}},
	}
}

// LookUp queries the oracle for a ticker and returns its quote in the
// reporting currency. USD prices are converted with the configured rate
// and rounded to whole units.
func (o *Oracle) LookUp(query string) (*Quote, error) {
	addr := fmt.Sprintf("%s/api/stock/search?q=%s", o.BaseURL, url.QueryEscape(query))
	var jobj any
	if err := jwget(o.Client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("could not look up %q: %w", query, err)
	}

	price, err := jsonNumber(jobj, "$.price")
	if err != nil {
		return nil, fmt.Errorf("could not parse quote for %q: %w", query, err)
	}
	currency, _ := jsonString(jobj, "$.currency")
	name, _ := jsonString(jobj, "$.name")
	ticker, _ := jsonString(jobj, "$.ticker")

	q := &Quote{
		Price:    decimal.NewFromFloat(price),
		Currency: currency,
		Name:     name,
		Ticker:   ticker,
	}
	if q.Currency == "USD" {
		q.Price = q.Price.Mul(usdRate()).Round(0)
		q.Currency = DefaultCurrency
	}
	return q, nil
}

// RefreshQuotes looks up a quote for every active market asset carrying a
// ticker and records the refreshed values in one batch stamped with the
// given day: value = price x quantity (quantity defaults to 1), unit
// price = price. One ticker's failure does not block the others.
func (b *Book) RefreshQuotes(o *Oracle, on Date) ([]*Asset, error) {
	var updates []ValueUpdate
	var errs error
	for _, a := range b.Assets {
		if a.Retired() || a.Ticker == "" || !a.Type.Market() {
			continue
		}
		q, err := o.LookUp(a.Ticker)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		qty := a.Quantity
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		updates = append(updates, ValueUpdate{
			AssetID:   a.ID,
			Value:     q.Price.Mul(qty),
			UnitPrice: q.Price,
		})
	}
	applied, err := b.RecordValues(updates, on)
	return applied, errors.Join(errs, err)
}

// jsonNumber extracts a float64 at a jsonpath from a parsed JSON value.
func jsonNumber(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("missing %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("%q is not a number: %v", path, jval)
	}
	return val, nil
}

// jsonString extracts a string at a jsonpath from a parsed JSON value.
func jsonString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("missing %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("%q is not a string: %v", path, jval)
	}
	return val, nil
}

// jwget performs a GET request and decodes the JSON response into v.
func jwget(client *http.Client, addr string, v any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s for %q", resp.Status, addr)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// diskCache implements a simple disk cache for HTTP responses.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// diskCache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache
	if err := c.put(key, resp); err != nil {
		return resp, nil // cache write failures are ignored
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache.
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)
	dump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.WriteFile(file, dump, 0644); err != nil {
		return err
	}
	// reload the body for the caller, DumpResponse has consumed it
	restored, err := http.ReadResponse(bufio.NewReader(bytes.NewBuffer(dump)), resp.Request)
	if err != nil {
		return err
	}
	*resp = *restored
	return nil
}
