// Package export holds the shared contract for the filing renderers. Each
// target walks the same ordered mapping rows against the same immutable
// resolution context, so every renderer re-derives identical numbers and
// differs only in display formatting.
package export

import "time"

// Target names one output artifact kind.
type Target string

const (
	TargetPDF  Target = "pdf"
	TargetSRU  Target = "sru"
	TargetXBRL Target = "xbrl"
)

// Meta carries the filing identity stamped into headers and contexts.
type Meta struct {
	OrgNr           string
	CompanyName     string
	FiscalYearStart time.Time
	FiscalYearEnd   time.Time
	// FormVersion is the period suffix of the form identifiers, e.g.
	// "2024P4" producing blocks INK2R-2024P4 and INK2S-2024P4.
	FormVersion string
	Program     string
	Created     time.Time
}
