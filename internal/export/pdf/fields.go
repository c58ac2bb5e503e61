// Package pdf formats resolved filing values into form field assignments.
// The actual widget manipulation happens in the external fill service; this
// package only decides which fields get which text.
package pdf

import (
	"github.com/cemyet/summare-sub001/internal/export"
	"github.com/cemyet/summare-sub001/internal/mapping"
	"github.com/cemyet/summare-sub001/internal/resolve"
)

// CheckboxOn is the on-state marker the fill service expects for AcroForm
// checkboxes.
const CheckboxOn = "Yes"

// Build walks the mapping rows in declared order and produces the field
// assignments. Unresolved expressions and hidden rows are skipped entirely;
// no placeholder is written.
func Build(rows []mapping.Row, ctx *resolve.Context) map[string]string {
	fields := make(map[string]string, len(rows))
	for _, row := range rows {
		v, ok := resolve.Evaluate(row.Expression, ctx)
		if !ok {
			continue
		}
		if !row.Visible(v) {
			continue
		}
		if row.IsCheckbox {
			if v != 0 {
				fields[row.FieldID] = CheckboxOn
			}
			continue
		}
		fields[row.FieldID] = export.FormatGrouped(v)
	}
	return fields
}
