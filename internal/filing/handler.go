package filing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/cemyet/summare-sub001/internal/platform/httpx"
	"github.com/cemyet/summare-sub001/internal/shared"
)

// Enqueuer submits an export for asynchronous rendering.
type Enqueuer interface {
	EnqueueExportRender(ctx context.Context, req ExportRequest) (string, error)
}

// Handler exposes the filing endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	enqueuer Enqueuer
	validate *validator.Validate
}

// NewHandler constructs the handler. The enqueuer may be nil when async
// rendering is not configured.
func NewHandler(logger *slog.Logger, service *Service, enqueuer Enqueuer) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:   logger,
		service:  service,
		enqueuer: enqueuer,
		validate: validator.New(),
	}
}

// MountRoutes registers the filing routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/export", h.export)
	r.Post("/export/async", h.exportAsync)
	r.Post("/voucher", h.voucher)
	r.Get("/artifacts/{id}", h.artifact)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	result, err := h.service.Export(r.Context(), req)
	if err != nil {
		h.respondExportError(w, req.FilingID, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) exportAsync(w http.ResponseWriter, r *http.Request) {
	if h.enqueuer == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Unavailable", "async rendering not configured")
		return
	}
	var req ExportRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	taskID, err := h.enqueuer.EnqueueExportRender(r.Context(), req)
	if err != nil {
		h.logger.Error("enqueue export", slog.String("filing_id", req.FilingID), slog.Any("error", err))
		httpx.Problem(w, http.StatusServiceUnavailable, "Unavailable", "could not enqueue export")
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]string{"task_id": taskID})
}

func (h *Handler) voucher(w http.ResponseWriter, r *http.Request) {
	var req VoucherRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	instr := h.service.Voucher(r.Context(), req)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"needed":      instr.Needed(),
		"instruction": instr,
	})
}

func (h *Handler) artifact(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", "artifact id must be a UUID")
		return
	}
	artifact, err := h.service.Artifact(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrArtifactNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "artifact not found")
			return
		}
		h.logger.Error("load artifact", slog.String("id", id.String()), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Content)
}

func (h *Handler) respondExportError(w http.ResponseWriter, filingID string, err error) {
	switch {
	case errors.Is(err, shared.ErrConfigurationUnavailable):
		// The whole export fails; callers retry or fix configuration
		// rather than ship an incomplete filing.
		h.logger.Error("export configuration unavailable", slog.String("filing_id", filingID), slog.Any("error", err))
		httpx.Problem(w, http.StatusServiceUnavailable, "Configuration Unavailable", "mapping tables could not be read")
	case errors.Is(err, ErrUnknownTarget):
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request", err.Error())
	case errors.Is(err, ErrFormFillUnavailable):
		h.logger.Error("form fill unavailable", slog.String("filing_id", filingID), slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Form Fill Unavailable", "the PDF fill service did not respond")
	default:
		h.logger.Error("export failed", slog.String("filing_id", filingID), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
