package filing

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/cemyet/summare-sub001/internal/mapping"
	"github.com/cemyet/summare-sub001/internal/shared"
)

type fakeEnqueuer struct {
	enqueued []ExportRequest
	err      error
}

func (f *fakeEnqueuer) EnqueueExportRender(ctx context.Context, req ExportRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.enqueued = append(f.enqueued, req)
	return "task-1", nil
}

func newTestRouter(svc *Service, enq Enqueuer) http.Handler {
	h := NewHandler(nil, svc, enq)
	r := chi.NewRouter()
	r.Route("/api/v1/filings", h.MountRoutes)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestExportEndpoint(t *testing.T) {
	repo := &fakeMappingRepo{tables: map[string][]mapping.Row{
		mapping.TableSRU: {
			{OrderKey: 1, FieldID: "7670", Label: "4.3a Särskild löneskatt", Expression: "justering_sarskild_loneskatt"},
		},
	}}
	svc := testService(repo, &fakeArtifactRepo{}, nil)
	router := newTestRouter(svc, nil)

	req := exportRequest()
	req.Targets = []string{"sru"}
	rec := postJSON(t, router, "/api/v1/filings/export", req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Artifacts, 2)
}

func TestExportEndpointValidation(t *testing.T) {
	router := newTestRouter(testService(&fakeMappingRepo{}, nil, nil), nil)

	rec := postJSON(t, router, "/api/v1/filings/export", map[string]any{"orgnr": "165560269986"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	bad := exportRequest()
	bad.Targets = []string{"fax"}
	rec = postJSON(t, router, "/api/v1/filings/export", bad)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportEndpointConfigUnavailable(t *testing.T) {
	svc := testService(&fakeMappingRepo{err: shared.ErrConfigurationUnavailable}, nil, nil)
	router := newTestRouter(svc, nil)

	req := exportRequest()
	req.Targets = []string{"sru"}
	rec := postJSON(t, router, "/api/v1/filings/export", req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestExportAsyncEndpoint(t *testing.T) {
	enq := &fakeEnqueuer{}
	svc := testService(&fakeMappingRepo{}, nil, nil)
	router := newTestRouter(svc, enq)

	req := exportRequest()
	rec := postJSON(t, router, "/api/v1/filings/export/async", req)
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, enq.enqueued, 1)
	require.Equal(t, req.FilingID, enq.enqueued[0].FilingID)

	noQueue := newTestRouter(svc, nil)
	rec = postJSON(t, noQueue, "/api/v1/filings/export/async", req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestVoucherEndpoint(t *testing.T) {
	router := newTestRouter(testService(&fakeMappingRepo{}, nil, nil), nil)

	tax := -15194.0
	rec := postJSON(t, router, "/api/v1/filings/voucher", VoucherRequest{SpecialPayrollTax: &tax})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Needed      bool `json:"needed"`
		Instruction struct {
			SpecialPayrollTax float64 `json:"special_payroll_tax"`
		} `json:"instruction"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Needed)
	require.Equal(t, 15194.0, resp.Instruction.SpecialPayrollTax)
}

func TestArtifactEndpoint(t *testing.T) {
	repo := &fakeMappingRepo{tables: map[string][]mapping.Row{}}
	artifacts := &fakeArtifactRepo{}
	svc := testService(repo, artifacts, &fakeFormFiller{})
	router := newTestRouter(svc, nil)

	req := exportRequest()
	req.Targets = []string{"pdf"}
	result, err := svc.Export(context.Background(), req)
	require.NoError(t, err)

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/filings/artifacts/"+result.Artifacts[0].ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, getReq)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	missing := httptest.NewRequest(http.MethodGet, "/api/v1/filings/artifacts/not-a-uuid", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, missing)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
