package export

import (
	"math"
	"strconv"
)

// FormatGrouped renders a rounded amount with a plain space as thousands
// separator and no decimals, the way the paper forms print figures.
func FormatGrouped(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, d)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// SRUValue rounds to whole crowns and strips the sign. Sub-crown noise is
// dropped entirely: ok=false means the row is not written. The SRU format
// never prints a minus; sign is pre-encoded by which field a value maps to.
func SRUValue(v float64) (int64, bool) {
	if math.Abs(v) < 0.5 {
		return 0, false
	}
	n := int64(math.Round(math.Abs(v)))
	return n, true
}
