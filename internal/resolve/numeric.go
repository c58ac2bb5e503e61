package resolve

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// separatorStripper removes every space-class rune, covering the plain and
// non-breaking thousands separators used in Swedish bookkeeping exports.
var separatorStripper = runes.Remove(runes.In(unicode.Zs))

// ParseAmount converts an amount-like field into a float. It accepts the
// numeric types produced by JSON decoding and database scans, plus strings
// with space/NBSP thousands separators and a single comma as decimal
// separator. Values that cannot be parsed report ok=false, never an error.
func ParseAmount(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		return parseAmountString(t)
	}
	return 0, false
}

func parseAmountString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	stripped, _, err := transform.String(separatorStripper, s)
	if err != nil {
		return 0, false
	}
	if strings.Count(stripped, ",") == 1 && !strings.Contains(stripped, ".") {
		stripped = strings.Replace(stripped, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// NormalizeName lowercases a variable name and strips everything that is not
// a letter or digit, so lookups survive punctuation and casing differences
// between mapping tables and bookkeeping rows.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
