package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/cemyet/summare-sub001/internal/filing"
	"github.com/cemyet/summare-sub001/internal/shared"
)

// ExportRenderJob renders filing exports off the request path.
type ExportRenderJob struct {
	service *filing.Service
	logger  *slog.Logger
}

// NewExportRenderJob constructs the job handler.
func NewExportRenderJob(service *filing.Service, logger *slog.Logger) *ExportRenderJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportRenderJob{service: service, logger: logger}
}

// Handle processes TaskExportRender tasks. Configuration failures are not
// retried: a missing mapping table will not heal on its own.
func (j *ExportRenderJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload ExportRenderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	result, err := j.service.Export(ctx, payload.Request)
	if err != nil {
		j.logger.Error("async export failed",
			slog.String("filing_id", payload.Request.FilingID),
			slog.Any("error", err))
		if errors.Is(err, shared.ErrConfigurationUnavailable) {
			return asynq.SkipRetry
		}
		return err
	}
	j.logger.Info("async export rendered",
		slog.String("filing_id", payload.Request.FilingID),
		slog.Int("artifacts", len(result.Artifacts)))
	return nil
}
