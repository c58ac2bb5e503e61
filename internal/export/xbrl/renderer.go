// Package xbrl renders the filing values as an XBRL instance. It walks the
// same mapping rows as the other targets, so the facts carry the exact
// numbers the PDF and SRU outputs show.
package xbrl

import (
	"fmt"
	"io"
	"math"

	"github.com/cemyet/summare-sub001/internal/export"
	"github.com/cemyet/summare-sub001/internal/mapping"
	"github.com/cemyet/summare-sub001/internal/resolve"
)

const (
	contextID = "period0"
	unitID    = "SEK"
)

// Renderer writes XBRL instances for one filing.
type Renderer struct {
	meta export.Meta
}

// NewRenderer constructs a renderer for the filing identity.
func NewRenderer(meta export.Meta) *Renderer {
	return &Renderer{meta: meta}
}

// Render writes the instance document. Unresolved and hidden rows produce no
// fact. Unlike the SRU file, facts keep their sign; the taxonomy encodes
// direction per element.
func (r *Renderer) Render(out io.Writer, rows []mapping.Row, ctx *resolve.Context) error {
	if _, err := fmt.Fprint(out, xmlHeader); err != nil {
		return fmt.Errorf("xbrl: write header: %w", err)
	}
	if err := r.writeContext(out); err != nil {
		return err
	}
	for _, row := range rows {
		v, ok := resolve.Evaluate(row.Expression, ctx)
		if !ok || !row.Visible(v) {
			continue
		}
		if row.IsCheckbox {
			if v != 0 {
				if _, err := fmt.Fprintf(out, "  <sru:Falt%s contextRef=%q>true</sru:Falt%s>\n",
					row.FieldID, contextID, row.FieldID); err != nil {
					return fmt.Errorf("xbrl: write fact: %w", err)
				}
			}
			continue
		}
		if _, err := fmt.Fprintf(out, "  <sru:Falt%s contextRef=%q unitRef=%q decimals=\"0\">%d</sru:Falt%s>\n",
			row.FieldID, contextID, unitID, int64(math.Round(v)), row.FieldID); err != nil {
			return fmt.Errorf("xbrl: write fact: %w", err)
		}
	}
	if _, err := fmt.Fprintln(out, "</xbrli:xbrl>"); err != nil {
		return fmt.Errorf("xbrl: write footer: %w", err)
	}
	return nil
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>
<xbrli:xbrl xmlns:xbrli="http://www.xbrl.org/2003/instance" xmlns:sru="http://www.skatteverket.se/sru">
`

func (r *Renderer) writeContext(out io.Writer) error {
	_, err := fmt.Fprintf(out, `  <xbrli:context id=%q>
    <xbrli:entity>
      <xbrli:identifier scheme="http://www.bolagsverket.se">%s</xbrli:identifier>
    </xbrli:entity>
    <xbrli:period>
      <xbrli:startDate>%s</xbrli:startDate>
      <xbrli:endDate>%s</xbrli:endDate>
    </xbrli:period>
  </xbrli:context>
  <xbrli:unit id=%q>
    <xbrli:measure>iso4217:SEK</xbrli:measure>
  </xbrli:unit>
`,
		contextID,
		r.meta.OrgNr,
		r.meta.FiscalYearStart.Format("2006-01-02"),
		r.meta.FiscalYearEnd.Format("2006-01-02"),
		unitID,
	)
	if err != nil {
		return fmt.Errorf("xbrl: write context: %w", err)
	}
	return nil
}
