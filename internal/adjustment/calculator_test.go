package adjustment

import (
	"math"
	"testing"

	"github.com/cemyet/summare-sub001/internal/resolve"
)

func f(v float64) *float64 { return &v }

func TestComputeBalancedVoucher(t *testing.T) {
	calc := NewCalculator(nil)
	instr := calc.Compute(Inputs{
		SpecialPayrollTax: f(-15194),
		CalculatedTax:     f(120000),
		AdjustedResult:    f(500000),
		OriginalResult:    f(553622.39),
		OriginalTax:       f(-100000),
	})

	if !instr.Needed() {
		t.Fatalf("expected a voucher to be needed")
	}
	if instr.SpecialPayrollTax != 15194 {
		t.Fatalf("payroll tax surfaced as %v, want 15194", instr.SpecialPayrollTax)
	}
	if instr.TaxDelta != 20000 {
		t.Fatalf("tax delta = %v, want 20000", instr.TaxDelta)
	}
	if instr.ResultDelta != 53622 {
		t.Fatalf("result delta = %v, want 53622", instr.ResultDelta)
	}
	if len(instr.Lines) != 6 {
		t.Fatalf("expected 6 lines, got %d", len(instr.Lines))
	}
	if instr.DebitTotal() != instr.CreditTotal() {
		t.Fatalf("voucher unbalanced: debit %v credit %v", instr.DebitTotal(), instr.CreditTotal())
	}
}

func TestComputeBalanceInvariantAcrossSigns(t *testing.T) {
	calc := NewCalculator(nil)
	cases := []Inputs{
		{SpecialPayrollTax: f(-15194)},
		{CalculatedTax: f(90000), OriginalTax: f(-100000)},
		{CalculatedTax: f(110000), OriginalTax: f(-100000)},
		{AdjustedResult: f(600000), OriginalResult: f(550000)},
		{AdjustedResult: f(500000), OriginalResult: f(550000)},
		{SpecialPayrollTax: f(-1), CalculatedTax: f(2), OriginalTax: f(0), AdjustedResult: f(10), OriginalResult: f(0)},
	}
	for i, in := range cases {
		instr := calc.Compute(in)
		if d, c := instr.DebitTotal(), instr.CreditTotal(); math.Abs(d-c) > 1e-9 {
			t.Fatalf("case %d unbalanced: debit %v credit %v", i, d, c)
		}
	}
}

func TestComputeSignSelectsAccountSide(t *testing.T) {
	calc := NewCalculator(nil)

	up := calc.Compute(Inputs{CalculatedTax: f(110000), OriginalTax: f(-100000)})
	if up.Lines[0].Account != AccountTaxExpense || up.Lines[0].Debit != 10000 {
		t.Fatalf("positive tax delta should debit %s, got %+v", AccountTaxExpense, up.Lines[0])
	}

	down := calc.Compute(Inputs{CalculatedTax: f(90000), OriginalTax: f(-100000)})
	if down.Lines[0].Account != AccountTaxLiability || down.Lines[0].Debit != 10000 {
		t.Fatalf("negative tax delta should debit %s, got %+v", AccountTaxLiability, down.Lines[0])
	}

	decreased := calc.Compute(Inputs{AdjustedResult: f(500000), OriginalResult: f(550000)})
	if decreased.ResultDelta != 50000 {
		t.Fatalf("result delta = %v, want 50000", decreased.ResultDelta)
	}
	if decreased.Lines[0].Account != AccountYearResultPL {
		t.Fatalf("decreased result should debit %s, got %+v", AccountYearResultPL, decreased.Lines[0])
	}
}

func TestComputeToleranceCollapsesToExactZero(t *testing.T) {
	calc := NewCalculator(nil)
	instr := calc.Compute(Inputs{
		CalculatedTax:  f(100000.3),
		OriginalTax:    f(-100000),
		AdjustedResult: f(553622.2),
		OriginalResult: f(553622.39),
	})
	if instr.TaxDelta != 0 || math.Signbit(instr.TaxDelta) {
		t.Fatalf("tax delta = %v, want exact 0", instr.TaxDelta)
	}
	if instr.ResultDelta != 0 || math.Signbit(instr.ResultDelta) {
		t.Fatalf("result delta = %v, want exact 0", instr.ResultDelta)
	}
	if instr.Needed() {
		t.Fatalf("all-zero instruction must not require a voucher")
	}
	if len(instr.Lines) != 0 {
		t.Fatalf("all-zero instruction must not emit lines")
	}
}

func TestOriginalValueFallbackChain(t *testing.T) {
	calc := NewCalculator(nil)
	snapshotRows := []resolve.Row{
		{"variable_name": "SumAretsResultat", "amount": 400000.0},
	}
	currentRows := []resolve.Row{
		{"variable_name": "SumAretsResultat", "amount": 999999.0},
	}

	// Explicit field outranks everything.
	in := Inputs{
		AdjustedResult: f(100000),
		OriginalResult: f(300000),
		Snapshot:       &Snapshot{Result: f(200000)},
		SnapshotRows:   snapshotRows,
		CurrentRows:    currentRows,
	}
	if got := calc.Compute(in).ResultDelta; got != 200000 {
		t.Fatalf("explicit field ignored, delta = %v", got)
	}

	// Nested snapshot next.
	in.OriginalResult = nil
	if got := calc.Compute(in).ResultDelta; got != 100000 {
		t.Fatalf("nested snapshot ignored, delta = %v", got)
	}

	// Then the immutable snapshot rows.
	in.Snapshot = nil
	if got := calc.Compute(in).ResultDelta; got != 300000 {
		t.Fatalf("snapshot rows ignored, delta = %v", got)
	}

	// Live rows only as a last resort.
	in.SnapshotRows = nil
	if got := calc.Compute(in).ResultDelta; got != 899999 {
		t.Fatalf("live-row fallback broken, delta = %v", got)
	}

	// Nothing found: no result delta at all.
	in.CurrentRows = nil
	if got := calc.Compute(in).ResultDelta; got != 0 {
		t.Fatalf("unresolved original should yield 0, got %v", got)
	}
}
