// Package resolve implements the variable resolution engine behind the
// annual-filing exports: value stores over bookkeeping rows, the per-request
// resolution context, and the restricted formula evaluator. Everything here
// is pure computation over immutable inputs so the PDF, SRU and XBRL
// renderers derive identical numbers from the same context.
package resolve

import (
	"sort"
	"strings"
)

// Source identifies which collection a resolved value came from.
type Source string

const (
	SourceManual          Source = "manual"
	SourceTaxAdjustment   Source = "tax_adjustment"
	SourceIncomeStatement Source = "income_statement"
	SourceBalanceSheet    Source = "balance_sheet"
	SourceLiteral         Source = "literal"
)

// Row is one bookkeeping row as delivered by the caller: a loose field map
// with a variable name and some amount-like field.
type Row map[string]any

// nameFields are the keys that may carry the variable name, tried in order.
var nameFields = []string{"variable_name", "variable", "name"}

// amountFields is the ordered extractor list for the numeric value of a row.
// The order is part of the contract; the heuristic scan in Lookup only runs
// after all of these missed.
var amountFields = []string{"amount", "current", "current_amount", "value"}

// Store indexes one row collection by normalized variable name.
type Store struct {
	source Source
	index  map[string]Row
}

// NewStore builds an index over rows. Later rows win on name collisions,
// matching how callers append corrections after the originals.
func NewStore(source Source, rows []Row) *Store {
	index := make(map[string]Row, len(rows))
	for _, row := range rows {
		name, ok := rowName(row)
		if !ok {
			continue
		}
		index[NormalizeName(name)] = row
	}
	return &Store{source: source, index: index}
}

// Source reports which collection this store was built from.
func (s *Store) Source() Source {
	return s.source
}

// Len reports the number of indexed variables.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.index)
}

// Lookup resolves a variable to its numeric value. The amount fields are
// tried in declared priority order; when none is present, any remaining
// field whose key mentions current/amount/value is scanned in stable key
// order. A row without a parseable number resolves to not-found, not zero.
func (s *Store) Lookup(name string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	row, ok := s.index[NormalizeName(name)]
	if !ok {
		return 0, false
	}
	return rowAmount(row)
}

// Has reports whether the variable exists in the store regardless of whether
// its amount parses. Used for presence checks such as checkbox defaults.
func (s *Store) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[NormalizeName(name)]
	return ok
}

func rowName(row Row) (string, bool) {
	for _, field := range nameFields {
		if v, ok := row[field]; ok {
			if name, ok := v.(string); ok && name != "" {
				return name, true
			}
		}
	}
	return "", false
}

func rowAmount(row Row) (float64, bool) {
	for _, field := range amountFields {
		if v, ok := row[field]; ok {
			if f, ok := ParseAmount(v); ok {
				return f, true
			}
		}
	}
	// Heuristic fallback over the remaining keys, in stable order so two
	// evaluations of the same row always agree.
	keys := make([]string, 0, len(row))
	for k := range row {
		if isAmountLikeKey(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if f, ok := ParseAmount(row[k]); ok {
			return f, true
		}
	}
	return 0, false
}

func isAmountLikeKey(k string) bool {
	norm := NormalizeName(k)
	return strings.Contains(norm, "current") ||
		strings.Contains(norm, "amount") ||
		strings.Contains(norm, "value")
}
