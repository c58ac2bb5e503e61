// Package adjustment decides whether a corrective bookkeeping voucher must be
// produced after the tax calculation, and generates its balanced line pairs.
package adjustment

import (
	"github.com/cemyet/summare-sub001/internal/resolve"
)

// Ledger accounts used by the correction voucher (BAS chart).
const (
	AccountPayrollTaxExpense   = "7533" // Särskild löneskatt på pensionskostnader
	AccountPayrollTaxLiability = "2514" // Beräknad särskild löneskatt
	AccountTaxExpense          = "8910" // Skatt på årets resultat
	AccountTaxLiability        = "2510" // Skatteskulder
	AccountYearResultPL        = "8999" // Årets resultat (resultaträkning)
	AccountYearResultBS        = "2099" // Årets resultat (balansräkning)
)

// accountNames holds the voucher line descriptions per account.
var accountNames = map[string]string{
	AccountPayrollTaxExpense:   "Särskild löneskatt på pensionskostnader",
	AccountPayrollTaxLiability: "Beräknad särskild löneskatt",
	AccountTaxExpense:          "Skatt på årets resultat",
	AccountTaxLiability:        "Skatteskulder",
	AccountYearResultPL:        "Årets resultat",
	AccountYearResultBS:        "Årets resultat",
}

// Variable names the original result and tax expense are filed under in the
// income statement rows.
const (
	varResult     = "SumAretsResultat"
	varTaxExpense = "SkattAretsResultat"
)

// VoucherLine is one debit or credit posting of the correction voucher.
type VoucherLine struct {
	Account     string  `json:"account"`
	Description string  `json:"description"`
	Debit       float64 `json:"debit"`
	Credit      float64 `json:"credit"`
}

// Instruction is the computed correction voucher. Lines always balance:
// the debit total equals the credit total.
type Instruction struct {
	SpecialPayrollTax float64       `json:"special_payroll_tax"`
	TaxDelta          float64       `json:"tax_delta"`
	ResultDelta       float64       `json:"result_delta"`
	Lines             []VoucherLine `json:"lines"`
}

// Needed reports whether a voucher document should be generated at all.
func (i Instruction) Needed() bool {
	return i.SpecialPayrollTax != 0 || i.TaxDelta != 0 || i.ResultDelta != 0
}

// DebitTotal sums all debit postings.
func (i Instruction) DebitTotal() float64 {
	total := 0.0
	for _, l := range i.Lines {
		total += l.Debit
	}
	return total
}

// CreditTotal sums all credit postings.
func (i Instruction) CreditTotal() float64 {
	total := 0.0
	for _, l := range i.Lines {
		total += l.Credit
	}
	return total
}

// Snapshot carries the pre-override figures nested under the report payload.
type Snapshot struct {
	Result     *float64
	TaxExpense *float64
}

// Inputs collects everything the calculator may consult. The original result
// and tax expense resolve through a fallback chain: explicit fields, nested
// snapshot, immutable snapshot rows, and as a discouraged last resort the
// live current rows.
type Inputs struct {
	SpecialPayrollTax *float64
	CalculatedTax     *float64
	AdjustedResult    *float64

	OriginalResult *float64
	OriginalTax    *float64
	Snapshot       *Snapshot
	SnapshotRows   []resolve.Row
	CurrentRows    []resolve.Row
}
