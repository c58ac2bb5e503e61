package resolve

import (
	"regexp"
	"strings"
)

// guardPattern matches the single trailing conditional guard the grammar
// allows: "(IF>0)" or "(IF<0)", case-insensitive, optional "=" tolerated.
var guardPattern = regexp.MustCompile(`(?i)\(\s*IF\s*([<>])=?\s*0\s*\)\s*$`)

// Evaluate resolves a formula expression against the context. The grammar is
// deliberately restricted: an optional trailing guard, then terms joined by
// "+". Each term resolves through the context's source priority and finally
// as a numeric literal. If no term resolves the whole expression is
// unresolved (ok=false), which is distinct from resolving to zero; a term
// that fails inside an otherwise resolvable sum contributes zero.
func Evaluate(expr string, ctx *Context) (float64, bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, false
	}

	guard := ""
	if m := guardPattern.FindStringSubmatch(expr); m != nil {
		guard = m[1]
		expr = strings.TrimSpace(guardPattern.ReplaceAllString(expr, ""))
	}

	sum := 0.0
	found := false
	for _, term := range strings.Split(expr, "+") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if v, ok := ctx.Resolve(term); ok {
			sum += v
			found = true
			continue
		}
		if v, ok := ParseAmount(term); ok {
			sum += v
			found = true
		}
	}
	if !found {
		return 0, false
	}

	switch guard {
	case ">":
		if sum > 0 {
			return sum, true
		}
		return 0, false
	case "<":
		// Negative sums are surfaced as their magnitude: the forms print
		// losses as positive figures in a dedicated field.
		if sum < 0 {
			return -sum, true
		}
		return 0, false
	}
	return sum, true
}
