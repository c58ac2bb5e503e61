package filing

import "time"

// ExportRequest carries everything one export needs: the filing identity,
// the bookkeeping row collections and the manual overrides. The engine
// treats the collections as read-only; the request is the unit of isolation
// between concurrent exports.
type ExportRequest struct {
	FilingID        string    `json:"filing_id" validate:"required"`
	OrgNr           string    `json:"orgnr" validate:"required,min=10,max=13"`
	CompanyName     string    `json:"company_name" validate:"required"`
	FiscalYearStart time.Time `json:"fiscal_year_start" validate:"required"`
	FiscalYearEnd   time.Time `json:"fiscal_year_end" validate:"required"`
	FormVersion     string    `json:"form_version" validate:"required"`
	Targets         []string  `json:"targets" validate:"required,min=1,dive,oneof=pdf sru xbrl"`

	IncomeStatement []map[string]any `json:"income_statement"`
	BalanceSheet    []map[string]any `json:"balance_sheet"`
	TaxAdjustments  []map[string]any `json:"tax_adjustments"`
	ManualOverrides map[string]any   `json:"manual_overrides"`
}

// SnapshotDTO carries the nested pre-override figures of a voucher request.
type SnapshotDTO struct {
	Result     *float64 `json:"result"`
	TaxExpense *float64 `json:"tax_expense"`
}

// VoucherRequest asks whether a correcting voucher is needed and what its
// lines are. The original figures resolve through the documented fallback
// chain; sending OriginalSnapshot rows is the supported path, the live
// current rows exist only for older callers.
type VoucherRequest struct {
	SpecialPayrollTax *float64 `json:"special_payroll_tax"`
	CalculatedTax     *float64 `json:"calculated_tax"`
	AdjustedResult    *float64 `json:"adjusted_result"`

	OriginalResult   *float64         `json:"original_result"`
	OriginalTax      *float64         `json:"original_tax"`
	Snapshot         *SnapshotDTO     `json:"snapshot"`
	OriginalSnapshot []map[string]any `json:"original_snapshot"`
	CurrentRows      []map[string]any `json:"current_rows"`
}
