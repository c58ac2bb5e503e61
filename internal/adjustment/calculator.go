package adjustment

import (
	"log/slog"
	"math"

	"github.com/cemyet/summare-sub001/internal/resolve"
)

// deltaTolerance collapses sub-crown noise from floating point arithmetic.
const deltaTolerance = 0.5

// accountPair names which account is debited and which credited.
type accountPair struct {
	debit  string
	credit string
}

// Posting sides are an explicit table, not inferred arithmetic: the sign of
// a delta selects the pair, the magnitude is always posted positive.
var (
	payrollTaxSides = accountPair{debit: AccountPayrollTaxExpense, credit: AccountPayrollTaxLiability}

	taxDeltaSides = map[bool]accountPair{
		true:  {debit: AccountTaxExpense, credit: AccountTaxLiability},
		false: {debit: AccountTaxLiability, credit: AccountTaxExpense},
	}

	// A positive result delta means the result decreased after adjustments.
	resultDeltaSides = map[bool]accountPair{
		true:  {debit: AccountYearResultPL, credit: AccountYearResultBS},
		false: {debit: AccountYearResultBS, credit: AccountYearResultPL},
	}
)

// Calculator derives the correction voucher from resolved tax figures.
type Calculator struct {
	logger *slog.Logger
}

// NewCalculator constructs a calculator. A nil logger disables fallback
// diagnostics.
func NewCalculator(logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{logger: logger}
}

// Compute derives the three adjustment values and their voucher lines.
func (c *Calculator) Compute(in Inputs) Instruction {
	instr := Instruction{}

	if in.SpecialPayrollTax != nil {
		// Stored negative in the adjustment rows, surfaced positive.
		instr.SpecialPayrollTax = normalizeDelta(math.Abs(*in.SpecialPayrollTax))
	}

	originalTax, taxFound := c.originalValue(in, varTaxExpense, in.OriginalTax, snapshotTax(in.Snapshot))
	if in.CalculatedTax != nil {
		if !taxFound {
			c.logger.Warn("original tax expense unresolved, treating as zero",
				slog.String("variable", varTaxExpense))
		}
		instr.TaxDelta = normalizeDelta(*in.CalculatedTax - math.Abs(originalTax))
	}

	originalResult, resultFound := c.originalValue(in, varResult, in.OriginalResult, snapshotResult(in.Snapshot))
	if in.AdjustedResult != nil && resultFound {
		// Positive delta: the result decreased as a consequence of the
		// adjustments.
		instr.ResultDelta = normalizeDelta(originalResult - *in.AdjustedResult)
	}

	instr.Lines = buildLines(instr)
	return instr
}

// originalValue walks the fallback chain for a pre-override figure.
func (c *Calculator) originalValue(in Inputs, variable string, explicit, nested *float64) (float64, bool) {
	if explicit != nil {
		return *explicit, true
	}
	if nested != nil {
		return *nested, true
	}
	if len(in.SnapshotRows) > 0 {
		store := resolve.NewStore(resolve.SourceIncomeStatement, in.SnapshotRows)
		if v, ok := store.Lookup(variable); ok {
			return v, true
		}
	}
	if len(in.CurrentRows) > 0 {
		store := resolve.NewStore(resolve.SourceIncomeStatement, in.CurrentRows)
		if v, ok := store.Lookup(variable); ok {
			// The live rows may already reflect manual edits. Kept for
			// compatibility with older callers, never the preferred path.
			c.logger.Warn("original figure resolved from live rows",
				slog.String("variable", variable))
			return v, true
		}
	}
	return 0, false
}

func buildLines(instr Instruction) []VoucherLine {
	var lines []VoucherLine
	if instr.SpecialPayrollTax != 0 {
		lines = append(lines, linePair(payrollTaxSides, instr.SpecialPayrollTax)...)
	}
	if instr.TaxDelta != 0 {
		lines = append(lines, linePair(taxDeltaSides[instr.TaxDelta > 0], math.Abs(instr.TaxDelta))...)
	}
	if instr.ResultDelta != 0 {
		lines = append(lines, linePair(resultDeltaSides[instr.ResultDelta > 0], math.Abs(instr.ResultDelta))...)
	}
	return lines
}

func linePair(sides accountPair, amount float64) []VoucherLine {
	return []VoucherLine{
		{Account: sides.debit, Description: accountNames[sides.debit], Debit: amount},
		{Account: sides.credit, Description: accountNames[sides.credit], Credit: amount},
	}
}

// normalizeDelta rounds to whole crowns and collapses sub-tolerance values
// to exactly zero, never a negative zero.
func normalizeDelta(v float64) float64 {
	if math.Abs(v) < deltaTolerance {
		return 0
	}
	r := math.Round(v)
	if r == 0 {
		return 0
	}
	return r
}

func snapshotTax(s *Snapshot) *float64 {
	if s == nil {
		return nil
	}
	return s.TaxExpense
}

func snapshotResult(s *Snapshot) *float64 {
	if s == nil {
		return nil
	}
	return s.Result
}
