package mapping

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cemyet/summare-sub001/internal/shared"
)

// Known mapping tables. Table names are interpolated into SQL, so anything
// outside this set is rejected up front.
const (
	TablePDF  = "variable_mapping_pdf"
	TableSRU  = "variable_mapping_sru"
	TableXBRL = "variable_mapping_xbrl"
)

var knownTables = map[string]bool{
	TablePDF:  true,
	TableSRU:  true,
	TableXBRL: true,
}

// Repository reads mapping tables from the configuration store.
type Repository interface {
	FetchRows(ctx context.Context, table string) ([]Row, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a Postgres-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

// FetchRows returns the rows of one mapping table in declared order. Any
// failure is surfaced as configuration-unavailable: exports must not run on
// a partial table.
func (r *repository) FetchRows(ctx context.Context, table string) ([]Row, error) {
	if !knownTables[table] {
		return nil, fmt.Errorf("mapping: unknown table %q: %w", table, shared.ErrConfigurationUnavailable)
	}
	query := fmt.Sprintf(
		`SELECT order_key, field_id, label, variable_expression, is_checkbox, always_show FROM %s ORDER BY order_key`,
		table,
	)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("mapping: fetch %s: %w: %v", table, shared.ErrConfigurationUnavailable, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.OrderKey, &row.FieldID, &row.Label, &row.Expression, &row.IsCheckbox, &row.AlwaysShow); err != nil {
			return nil, fmt.Errorf("mapping: scan %s: %w: %v", table, shared.ErrConfigurationUnavailable, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mapping: iterate %s: %w: %v", table, shared.ErrConfigurationUnavailable, err)
	}
	return out, nil
}
