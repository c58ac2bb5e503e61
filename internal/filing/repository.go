package filing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cemyet/summare-sub001/internal/export"
	"github.com/cemyet/summare-sub001/internal/platform/db"
	"github.com/cemyet/summare-sub001/internal/shared"
)

// ArtifactRepository persists rendered artifacts.
type ArtifactRepository interface {
	SaveAll(ctx context.Context, artifacts []Artifact) error
	Get(ctx context.Context, id uuid.UUID) (Artifact, error)
}

type artifactRepository struct {
	db *pgxpool.Pool
}

// NewArtifactRepository constructs a Postgres-backed artifact repository.
func NewArtifactRepository(pool *pgxpool.Pool) ArtifactRepository {
	return &artifactRepository{db: pool}
}

// SaveAll stores the artifacts of one export atomically: either the full set
// lands or nothing does.
func (r *artifactRepository) SaveAll(ctx context.Context, artifacts []Artifact) error {
	if len(artifacts) == 0 {
		return nil
	}
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, a := range artifacts {
			_, err := tx.Exec(ctx,
				`INSERT INTO filing_artifacts (id, filing_id, target, file_name, content_type, content, created_at)
				 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
				a.ID, a.FilingID, string(a.Target), a.FileName, a.ContentType, a.Content, a.CreatedAt)
			if err != nil {
				if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.ConstraintName == "uq_filing_artifacts_target_file" {
					return shared.ErrArtifactExists
				}
				return fmt.Errorf("filing: insert artifact: %w", err)
			}
		}
		return nil
	})
}

// Get fetches one artifact by id.
func (r *artifactRepository) Get(ctx context.Context, id uuid.UUID) (Artifact, error) {
	var a Artifact
	var target string
	err := r.db.QueryRow(ctx,
		`SELECT id, filing_id, target, file_name, content_type, content, created_at
		 FROM filing_artifacts WHERE id=$1`, id).
		Scan(&a.ID, &a.FilingID, &target, &a.FileName, &a.ContentType, &a.Content, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Artifact{}, ErrArtifactNotFound
		}
		return Artifact{}, fmt.Errorf("filing: get artifact: %w", err)
	}
	a.Target = export.Target(target)
	return a, nil
}
