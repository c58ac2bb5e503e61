package filing

import "github.com/cemyet/summare-sub001/internal/resolve"

// The paired yes/no variables behind the "övriga upplysningar" question.
// When neither appears in the adjustment rows nor the overrides, the filing
// defaults to answering "No" (SRU codes 8040/8041).
const (
	DisclosureYesVariable = "ink_ovriga_upplysningar_ja"
	DisclosureNoVariable  = "ink_ovriga_upplysningar_nej"
)

// injectDisclosureDefaults returns the adjustment rows with the default "No"
// pair appended when both variables are entirely absent. This runs before
// the resolution context is built so every renderer sees the same answer.
func injectDisclosureDefaults(adjustments []resolve.Row, overrides map[string]any) []resolve.Row {
	store := resolve.NewStore(resolve.SourceTaxAdjustment, adjustments)
	if store.Has(DisclosureYesVariable) || store.Has(DisclosureNoVariable) {
		return adjustments
	}
	for name := range overrides {
		norm := resolve.NormalizeName(name)
		if norm == resolve.NormalizeName(DisclosureYesVariable) || norm == resolve.NormalizeName(DisclosureNoVariable) {
			return adjustments
		}
	}
	return append(adjustments,
		resolve.Row{"variable_name": DisclosureYesVariable, "amount": 0.0},
		resolve.Row{"variable_name": DisclosureNoVariable, "amount": 1.0},
	)
}
