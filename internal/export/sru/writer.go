// Package sru writes the Skatteverket SRU transfer files: the BLANKETTER
// payload with one block per sub-form and the INFO manifest describing the
// delivery.
package sru

import (
	"fmt"
	"io"

	"github.com/cemyet/summare-sub001/internal/export"
	"github.com/cemyet/summare-sub001/internal/mapping"
	"github.com/cemyet/summare-sub001/internal/resolve"
)

// File names are fixed by the SRU specification.
const (
	BlanketterFileName = "BLANKETTER.SRU"
	InfoFileName       = "INFO.SRU"
)

// Writer renders SRU files for one filing.
type Writer struct {
	meta export.Meta
}

// NewWriter constructs a writer for the filing identity.
func NewWriter(meta export.Meta) *Writer {
	return &Writer{meta: meta}
}

// WriteBlanketter writes both form blocks and the end-of-file marker. Rows
// are routed to INK2R or INK2S purely by their field-label prefix and keep
// their declared order inside each block.
func (w *Writer) WriteBlanketter(out io.Writer, rows []mapping.Row, ctx *resolve.Context) error {
	var ink2r, ink2s []mapping.Row
	for _, row := range rows {
		if row.Section() == mapping.SectionINK2S {
			ink2s = append(ink2s, row)
		} else {
			ink2r = append(ink2r, row)
		}
	}

	if err := w.writeBlock(out, "INK2R", ink2r, ctx); err != nil {
		return err
	}
	if err := w.writeBlock(out, "INK2S", ink2s, ctx); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, "#FIL_SLUT"); err != nil {
		return fmt.Errorf("sru: write file end: %w", err)
	}
	return nil
}

func (w *Writer) writeBlock(out io.Writer, form string, rows []mapping.Row, ctx *resolve.Context) error {
	stamp := w.meta.Created
	if _, err := fmt.Fprintf(out, "#BLANKETT %s-%s\n", form, w.meta.FormVersion); err != nil {
		return fmt.Errorf("sru: write block header: %w", err)
	}
	if _, err := fmt.Fprintf(out, "#IDENTITET %s %s %s\n",
		w.meta.OrgNr, stamp.Format("20060102"), stamp.Format("150405")); err != nil {
		return fmt.Errorf("sru: write identity: %w", err)
	}
	if _, err := fmt.Fprintf(out, "#NAMN %s\n", w.meta.CompanyName); err != nil {
		return fmt.Errorf("sru: write name: %w", err)
	}
	for _, row := range rows {
		v, ok := resolve.Evaluate(row.Expression, ctx)
		if !ok || !row.Visible(v) {
			continue
		}
		n, ok := export.SRUValue(v)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(out, "#UPPGIFT %s %d\n", row.FieldID, n); err != nil {
			return fmt.Errorf("sru: write uppgift: %w", err)
		}
	}
	if _, err := fmt.Fprintln(out, "#BLANKETTSLUT"); err != nil {
		return fmt.Errorf("sru: write block end: %w", err)
	}
	return nil
}

// WriteInfo writes the companion manifest naming the produced file and its
// creation timestamp, plus the sender identity block.
func (w *Writer) WriteInfo(out io.Writer) error {
	stamp := w.meta.Created
	lines := []string{
		"#DATABESKRIVNING_START",
		"#PRODUKT SRU",
		fmt.Sprintf("#SKAPAD %s %s", stamp.Format("20060102"), stamp.Format("150405")),
		fmt.Sprintf("#PROGRAM %s", w.meta.Program),
		fmt.Sprintf("#FILNAMN %s", BlanketterFileName),
		"#DATABESKRIVNING_SLUT",
		"#MEDIELEV_START",
		fmt.Sprintf("#ORGNR %s", w.meta.OrgNr),
		fmt.Sprintf("#NAMN %s", w.meta.CompanyName),
		"#MEDIELEV_SLUT",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("sru: write info: %w", err)
		}
	}
	return nil
}
