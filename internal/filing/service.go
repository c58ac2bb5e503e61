package filing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cemyet/summare-sub001/internal/adjustment"
	"github.com/cemyet/summare-sub001/internal/export"
	"github.com/cemyet/summare-sub001/internal/export/pdf"
	"github.com/cemyet/summare-sub001/internal/export/sru"
	"github.com/cemyet/summare-sub001/internal/export/xbrl"
	"github.com/cemyet/summare-sub001/internal/mapping"
	"github.com/cemyet/summare-sub001/internal/resolve"
)

// programName is stamped into the SRU manifest.
const programName = "summare"

// FormFiller fills the tax form template with field values and returns the
// document bytes. The PDF widget mechanics live behind this interface.
type FormFiller interface {
	Fill(ctx context.Context, form string, fields map[string]string) ([]byte, error)
}

// Service runs exports and voucher calculations.
type Service struct {
	mappings  mapping.Repository
	artifacts ArtifactRepository
	formFill  FormFiller
	calc      *adjustment.Calculator
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires the export service. All collaborators are passed in
// explicitly; the service holds no process-wide state.
func NewService(mappings mapping.Repository, artifacts ArtifactRepository, formFill FormFiller, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		mappings:  mappings,
		artifacts: artifacts,
		formFill:  formFill,
		calc:      adjustment.NewCalculator(logger),
		logger:    logger,
		now:       time.Now,
	}
}

// Export renders the requested targets. The resolution context is built
// once and shared read-only across the renderers, which run concurrently;
// all of them therefore agree on every number. A mapping-table failure
// aborts the whole export with no partial output.
func (s *Service) Export(ctx context.Context, req ExportRequest) (Result, error) {
	adjustments := injectDisclosureDefaults(toRows(req.TaxAdjustments), req.ManualOverrides)
	rctx := resolve.NewContext(
		req.ManualOverrides,
		adjustments,
		toRows(req.IncomeStatement),
		toRows(req.BalanceSheet),
	)
	meta := export.Meta{
		OrgNr:           req.OrgNr,
		CompanyName:     req.CompanyName,
		FiscalYearStart: req.FiscalYearStart,
		FiscalYearEnd:   req.FiscalYearEnd,
		FormVersion:     req.FormVersion,
		Program:         programName,
		Created:         s.now().UTC(),
	}

	results := make([][]Artifact, len(req.Targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, target := range req.Targets {
		i, target := i, target
		g.Go(func() error {
			artifacts, err := s.renderTarget(gctx, export.Target(target), req, meta, rctx)
			if err != nil {
				return err
			}
			results[i] = artifacts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var all []Artifact
	for _, artifacts := range results {
		all = append(all, artifacts...)
	}
	if s.artifacts != nil {
		if err := s.artifacts.SaveAll(ctx, all); err != nil {
			return Result{}, fmt.Errorf("filing: store artifacts: %w", err)
		}
	}
	s.logger.Info("filing exported",
		slog.String("filing_id", req.FilingID),
		slog.String("targets", strings.Join(req.Targets, ",")),
		slog.Int("artifacts", len(all)))
	return Result{Artifacts: all}, nil
}

func (s *Service) renderTarget(ctx context.Context, target export.Target, req ExportRequest, meta export.Meta, rctx *resolve.Context) ([]Artifact, error) {
	switch target {
	case export.TargetPDF:
		return s.renderPDF(ctx, req, meta, rctx)
	case export.TargetSRU:
		return s.renderSRU(ctx, req, meta, rctx)
	case export.TargetXBRL:
		return s.renderXBRL(ctx, req, meta, rctx)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, target)
}

func (s *Service) renderPDF(ctx context.Context, req ExportRequest, meta export.Meta, rctx *resolve.Context) ([]Artifact, error) {
	rows, err := s.mappings.FetchRows(ctx, mapping.TablePDF)
	if err != nil {
		return nil, err
	}
	fields := pdf.Build(rows, rctx)
	content, err := s.formFill.Fill(ctx, "INK2-"+meta.FormVersion, fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormFillUnavailable, err)
	}
	return []Artifact{s.artifact(req, export.TargetPDF, "INK2-"+meta.FormVersion+".pdf", "application/pdf", content, meta.Created)}, nil
}

func (s *Service) renderSRU(ctx context.Context, req ExportRequest, meta export.Meta, rctx *resolve.Context) ([]Artifact, error) {
	rows, err := s.mappings.FetchRows(ctx, mapping.TableSRU)
	if err != nil {
		return nil, err
	}
	writer := sru.NewWriter(meta)
	var blanketter, info strings.Builder
	if err := writer.WriteBlanketter(&blanketter, rows, rctx); err != nil {
		return nil, err
	}
	if err := writer.WriteInfo(&info); err != nil {
		return nil, err
	}
	return []Artifact{
		s.artifact(req, export.TargetSRU, sru.BlanketterFileName, "text/plain; charset=utf-8", []byte(blanketter.String()), meta.Created),
		s.artifact(req, export.TargetSRU, sru.InfoFileName, "text/plain; charset=utf-8", []byte(info.String()), meta.Created),
	}, nil
}

func (s *Service) renderXBRL(ctx context.Context, req ExportRequest, meta export.Meta, rctx *resolve.Context) ([]Artifact, error) {
	rows, err := s.mappings.FetchRows(ctx, mapping.TableXBRL)
	if err != nil {
		return nil, err
	}
	var buf strings.Builder
	if err := xbrl.NewRenderer(meta).Render(&buf, rows, rctx); err != nil {
		return nil, err
	}
	return []Artifact{s.artifact(req, export.TargetXBRL, "INK2-"+meta.FormVersion+".xbrl", "application/xml", []byte(buf.String()), meta.Created)}, nil
}

func (s *Service) artifact(req ExportRequest, target export.Target, name, contentType string, content []byte, created time.Time) Artifact {
	return Artifact{
		ID:          uuid.New(),
		FilingID:    req.FilingID,
		Target:      target,
		FileName:    name,
		ContentType: contentType,
		Content:     content,
		CreatedAt:   created,
	}
}

// Artifact returns a stored artifact by id.
func (s *Service) Artifact(ctx context.Context, id uuid.UUID) (Artifact, error) {
	if s.artifacts == nil {
		return Artifact{}, ErrArtifactNotFound
	}
	return s.artifacts.Get(ctx, id)
}

// Voucher computes the correcting bookkeeping instruction for the request.
func (s *Service) Voucher(_ context.Context, req VoucherRequest) adjustment.Instruction {
	in := adjustment.Inputs{
		SpecialPayrollTax: req.SpecialPayrollTax,
		CalculatedTax:     req.CalculatedTax,
		AdjustedResult:    req.AdjustedResult,
		OriginalResult:    req.OriginalResult,
		OriginalTax:       req.OriginalTax,
		SnapshotRows:      toRows(req.OriginalSnapshot),
		CurrentRows:       toRows(req.CurrentRows),
	}
	if req.Snapshot != nil {
		in.Snapshot = &adjustment.Snapshot{Result: req.Snapshot.Result, TaxExpense: req.Snapshot.TaxExpense}
	}
	return s.calc.Compute(in)
}

func toRows(in []map[string]any) []resolve.Row {
	if len(in) == 0 {
		return nil
	}
	rows := make([]resolve.Row, len(in))
	for i, m := range in {
		rows[i] = resolve.Row(m)
	}
	return rows
}
