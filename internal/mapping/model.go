// Package mapping loads the declarative variable mappings that drive the
// annual-filing exports.
package mapping

import "strings"

// Section routes a mapping row into one of the two physical SRU
// sub-documents.
type Section string

const (
	// SectionINK2R is the räkenskapsschema sub-document.
	SectionINK2R Section = "INK2R"
	// SectionINK2S is the skattemässiga justeringar sub-document.
	SectionINK2S Section = "INK2S"
)

// ink2sPrefix is the field-label prefix convention that routes a row to the
// tax-adjustment sub-document.
const ink2sPrefix = "4."

// Row binds one output field to a variable expression. OrderKey is the
// declared output position and is preserved exactly; it is never re-derived
// from the numeric field code.
type Row struct {
	OrderKey   int    `json:"order_key"`
	FieldID    string `json:"field_id"`
	Label      string `json:"label"`
	Expression string `json:"expression"`
	IsCheckbox bool   `json:"is_checkbox"`
	AlwaysShow *bool  `json:"always_show"`
}

// Section derives the sub-document from the prefix convention. The label
// carries the form numbering ("4.3a ..."); rows without a label fall back to
// the field identifier.
func (r Row) Section() Section {
	id := r.Label
	if id == "" {
		id = r.FieldID
	}
	if strings.HasPrefix(id, ink2sPrefix) {
		return SectionINK2S
	}
	return SectionINK2R
}

// Visible reports whether a resolved amount should be emitted. An explicit
// always_show wins; the default shows any non-zero amount.
func (r Row) Visible(amount float64) bool {
	if r.AlwaysShow != nil {
		return *r.AlwaysShow
	}
	return amount != 0
}
