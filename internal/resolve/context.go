package resolve

// Context aggregates every value source available to one export request.
// It is built once per request and never mutated afterwards; concurrent
// renderers may share it freely because all access is read-only.
type Context struct {
	overrides   map[string]float64
	adjustments *Store
	income      *Store
	balance     *Store
}

// NewContext constructs the resolution context. Manual overrides outrank all
// row collections; unparseable override values are dropped here so they
// resolve as absent rather than poisoning later lookups.
func NewContext(overrides map[string]any, adjustments, income, balance []Row) *Context {
	parsed := make(map[string]float64, len(overrides))
	for name, v := range overrides {
		if f, ok := ParseAmount(v); ok {
			parsed[NormalizeName(name)] = f
		}
	}
	return &Context{
		overrides:   parsed,
		adjustments: NewStore(SourceTaxAdjustment, adjustments),
		income:      NewStore(SourceIncomeStatement, income),
		balance:     NewStore(SourceBalanceSheet, balance),
	}
}

// Resolve looks a variable up across the sources in priority order:
// manual override, tax adjustments, income statement, balance sheet.
func (c *Context) Resolve(name string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	if v, ok := c.overrides[NormalizeName(name)]; ok {
		return v, true
	}
	if v, ok := c.adjustments.Lookup(name); ok {
		return v, true
	}
	if v, ok := c.income.Lookup(name); ok {
		return v, true
	}
	return c.balance.Lookup(name)
}

// ResolveWithSource behaves like Resolve but also reports which source
// supplied the value.
func (c *Context) ResolveWithSource(name string) (float64, Source, bool) {
	if c == nil {
		return 0, "", false
	}
	if v, ok := c.overrides[NormalizeName(name)]; ok {
		return v, SourceManual, true
	}
	if v, ok := c.adjustments.Lookup(name); ok {
		return v, SourceTaxAdjustment, true
	}
	if v, ok := c.income.Lookup(name); ok {
		return v, SourceIncomeStatement, true
	}
	if v, ok := c.balance.Lookup(name); ok {
		return v, SourceBalanceSheet, true
	}
	return 0, "", false
}

// Has reports whether the variable is present in any source, without
// requiring its amount to parse.
func (c *Context) Has(name string) bool {
	if c == nil {
		return false
	}
	if _, ok := c.overrides[NormalizeName(name)]; ok {
		return true
	}
	return c.adjustments.Has(name) || c.income.Has(name) || c.balance.Has(name)
}
