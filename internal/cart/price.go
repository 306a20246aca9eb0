package cart

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Prices outside these bounds are treated as malformed. The exponent is
// checked before any comparison, since comparing rescales to a common exponent.
const (
	minPriceExponent = -8
	maxPriceExponent = 9
)

// MaxPrice is the largest accepted line price.
var MaxPrice = decimal.New(1, 9)

// NormalizePrice parses a catalog price string. ok is false when the value is
// missing, unparseable, negative or out of range, in which case the returned
// price is zero.
func NormalizePrice(s string) (price decimal.Decimal, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp < minPriceExponent || exp > maxPriceExponent {
		return decimal.Zero, false
	}
	if d.GreaterThan(MaxPrice) {
		return decimal.Zero, false
	}
	return d, true
}

// ParsePrice normalises a raw JSON price that may be a string or a number.
func ParsePrice(raw json.RawMessage) decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero
		}
		d, _ := NormalizePrice(s)
		return d
	}

	d, _ := NormalizePrice(string(raw))
	return d
}

// ParseCategory accepts a single category string or a list of them.
func ParseCategory(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}
	return nil
}
