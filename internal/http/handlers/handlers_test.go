package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"studio/internal/domain"
	"studio/internal/history"
	"studio/internal/ledger"
	"studio/internal/orchestrator"
	"studio/internal/pricing"
	"studio/internal/registry"
	"studio/internal/transport"
)

type scriptedClient struct {
	submit transport.SubmitResult
	status transport.JobStatus
}

func (c *scriptedClient) Submit(ctx context.Context, req domain.GenerationRequest) (transport.SubmitResult, error) {
	return c.submit, nil
}

func (c *scriptedClient) PollStatus(ctx context.Context, remoteID string) (transport.JobStatus, error) {
	return c.status, nil
}

func (c *scriptedClient) Cancel(ctx context.Context, remoteID string) error {
	return nil
}

func newTestApp(t *testing.T, client transport.Client, grant int) *App {
	t.Helper()
	if client == nil {
		client = &scriptedClient{submit: transport.SubmitResult{ResultRef: "https://cdn/out.mp4", State: "success"}}
	}
	engine := pricing.NewDefaultEngine(zerolog.Nop())
	reg := registry.New(zerolog.Nop())
	orch := orchestrator.New(reg, engine, client, nil, zerolog.Nop(), orchestrator.Options{
		PollInterval:    2 * time.Millisecond,
		MaxPollAttempts: 20,
	})
	return &App{
		Logger:       zerolog.Nop(),
		Engine:       engine,
		Orchestrator: orch,
		Registry:     reg,
		Ledger:       ledger.NewMemory(grant, zerolog.Nop()),
	}
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestQuoteCreate(t *testing.T) {
	app := newTestApp(t, nil, 1000)

	body := `{"model_id":"kling","model_variant":"kling-2.6","mode":"t2v","duration_sec":10,"audio":true}`
	req := httptest.NewRequest("POST", "/v1/quotes", strings.NewReader(body))
	rr := httptest.NewRecorder()

	app.QuoteCreate(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	var quote quoteResponse
	decodeBody(t, rr, &quote)
	if quote.Credits != 368 {
		t.Fatalf("credits = %d, want 368 (184 base + 100%% audio)", quote.Credits)
	}
	if !quote.AudioApplied || quote.Unpriced {
		t.Fatalf("quote flags wrong: %+v", quote)
	}
}

func TestQuoteUnknownModelIsUnpricedNotError(t *testing.T) {
	app := newTestApp(t, nil, 1000)

	body := `{"model_id":"does-not-exist","mode":"t2v","duration_sec":5}`
	req := httptest.NewRequest("POST", "/v1/quotes", strings.NewReader(body))
	rr := httptest.NewRecorder()

	app.QuoteCreate(rr, req)

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	var quote quoteResponse
	decodeBody(t, rr, &quote)
	if !quote.Unpriced || quote.Credits != 0 {
		t.Fatalf("quote = %+v, want unpriced with zero credits", quote)
	}
}

func TestQuoteRejectsMalformedPayload(t *testing.T) {
	app := newTestApp(t, nil, 1000)

	req := httptest.NewRequest("POST", "/v1/quotes", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()

	app.QuoteCreate(rr, req)

	if rr.Code != 400 {
		t.Fatalf("unexpected status code: got %d, want 400", rr.Code)
	}
}

func TestGenerationsCreateDebitsAndQueues(t *testing.T) {
	app := newTestApp(t, nil, 1000)

	body := `{"model_id":"kling","model_variant":"kling-2.5-turbo","mode":"t2v","prompt":"a cat","duration_sec":5}`
	req := httptest.NewRequest("POST", "/v1/generations", strings.NewReader(body))
	rr := httptest.NewRecorder()

	app.GenerationsCreate(rr, req)

	if rr.Code != 202 {
		t.Fatalf("unexpected status code: got %d, want 202: %s", rr.Code, rr.Body.String())
	}
	var resp generationResponse
	decodeBody(t, rr, &resp)
	if resp.LocalID == "" {
		t.Fatal("missing local_id")
	}
	if resp.Credits != 70 {
		t.Fatalf("credits = %d, want 70", resp.Credits)
	}
	if resp.Balance != 930 {
		t.Fatalf("balance = %d, want 930", resp.Balance)
	}
	if _, ok := app.Registry.Get(resp.LocalID); !ok {
		t.Fatal("card not registered")
	}
}

func TestGenerationsCreateInsufficientCredits(t *testing.T) {
	app := newTestApp(t, nil, 10)

	body := `{"model_id":"kling","model_variant":"kling-2.5-turbo","mode":"t2v","prompt":"a cat","duration_sec":5}`
	req := httptest.NewRequest("POST", "/v1/generations", strings.NewReader(body))
	rr := httptest.NewRecorder()

	app.GenerationsCreate(rr, req)

	if rr.Code != 402 {
		t.Fatalf("unexpected status code: got %d, want 402", rr.Code)
	}
	if got := app.Ledger.Balance("default"); got != 10 {
		t.Fatalf("balance = %d, want untouched 10", got)
	}
	if got := len(app.Registry.List()); got != 0 {
		t.Fatalf("registry has %d cards, want 0", got)
	}
}

func TestGenerationsCreateUnknownModelRejected(t *testing.T) {
	app := newTestApp(t, nil, 1000)

	body := `{"model_id":"does-not-exist","mode":"t2v","prompt":"a cat"}`
	req := httptest.NewRequest("POST", "/v1/generations", strings.NewReader(body))
	rr := httptest.NewRecorder()

	app.GenerationsCreate(rr, req)

	if rr.Code != 422 {
		t.Fatalf("unexpected status code: got %d, want 422", rr.Code)
	}
	if got := app.Ledger.Balance("default"); got != 1000 {
		t.Fatalf("balance = %d, want refunded 1000", got)
	}
}

func TestGenerationsCreateRefundsOnValidationFailure(t *testing.T) {
	app := newTestApp(t, nil, 1000)

	// i2v without a start frame passes pricing but fails submission checks.
	body := `{"model_id":"kling","model_variant":"kling-2.5-turbo","mode":"i2v","prompt":"a cat","duration_sec":5}`
	req := httptest.NewRequest("POST", "/v1/generations", strings.NewReader(body))
	rr := httptest.NewRecorder()

	app.GenerationsCreate(rr, req)

	if rr.Code != 400 {
		t.Fatalf("unexpected status code: got %d, want 400: %s", rr.Code, rr.Body.String())
	}
	if got := app.Ledger.Balance("default"); got != 1000 {
		t.Fatalf("balance = %d, want refunded 1000", got)
	}
}

func TestJobStatusNotFound(t *testing.T) {
	app := newTestApp(t, nil, 1000)

	req := withURLParam(httptest.NewRequest("GET", "/v1/jobs/nope", nil), "local_id", "nope")
	rr := httptest.NewRecorder()

	app.JobStatus(rr, req)

	if rr.Code != 404 {
		t.Fatalf("unexpected status code: got %d, want 404", rr.Code)
	}
}

func TestJobCancelRefundsRunningJob(t *testing.T) {
	client := &scriptedClient{
		submit: transport.SubmitResult{RemoteID: "task-1"},
		status: transport.JobStatus{State: "processing", Progress: 20},
	}
	app := newTestApp(t, client, 1000)

	body := `{"model_id":"kling","model_variant":"kling-2.5-turbo","mode":"t2v","prompt":"a cat","duration_sec":5}`
	rr := httptest.NewRecorder()
	app.GenerationsCreate(rr, httptest.NewRequest("POST", "/v1/generations", strings.NewReader(body)))
	if rr.Code != 202 {
		t.Fatalf("create failed: %d %s", rr.Code, rr.Body.String())
	}
	var created generationResponse
	decodeBody(t, rr, &created)
	if got := app.Ledger.Balance("default"); got != 930 {
		t.Fatalf("balance after create = %d, want 930", got)
	}

	req := withURLParam(httptest.NewRequest("POST", "/v1/jobs/"+created.LocalID+"/cancel", nil), "local_id", created.LocalID)
	rr = httptest.NewRecorder()
	app.JobCancel(rr, req)

	if rr.Code != 200 {
		t.Fatalf("cancel status code: got %d, want 200", rr.Code)
	}
	var card jobCardResponse
	decodeBody(t, rr, &card)
	if card.Status != string(domain.JobStatusCancelled) {
		t.Fatalf("status = %q, want cancelled", card.Status)
	}
	if got := app.Ledger.Balance("default"); got != 1000 {
		t.Fatalf("balance after cancel = %d, want refunded 1000", got)
	}

	// A second cancel must not refund again.
	req = withURLParam(httptest.NewRequest("POST", "/v1/jobs/"+created.LocalID+"/cancel", nil), "local_id", created.LocalID)
	rr = httptest.NewRecorder()
	app.JobCancel(rr, req)
	if rr.Code != 200 {
		t.Fatalf("second cancel status code: got %d, want 200", rr.Code)
	}
	if got := app.Ledger.Balance("default"); got != 1000 {
		t.Fatalf("balance after double cancel = %d, want 1000", got)
	}
}

func TestModelsListsCatalog(t *testing.T) {
	app := newTestApp(t, nil, 1000)

	rr := httptest.NewRecorder()
	app.Models(rr, httptest.NewRequest("GET", "/v1/models", nil))

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	var payload struct {
		Items []modelResponse `json:"items"`
	}
	decodeBody(t, rr, &payload)
	if len(payload.Items) == 0 {
		t.Fatal("expected at least one model")
	}
	var found bool
	for _, m := range payload.Items {
		if m.ID == "veo-3.1" {
			found = true
			if m.FixedSec != 8 {
				t.Fatalf("veo-3.1 fixed duration = %v, want 8", m.FixedSec)
			}
		}
	}
	if !found {
		t.Fatal("veo-3.1 missing from catalog response")
	}
}

func TestHistoryAnswersEmptyWithoutDatabase(t *testing.T) {
	app := newTestApp(t, nil, 1000)

	rr := httptest.NewRecorder()
	app.HistoryList(rr, httptest.NewRequest("GET", "/v1/history", nil))

	if rr.Code != 200 {
		t.Fatalf("unexpected status code: got %d, want 200", rr.Code)
	}
	var payload struct {
		Items []history.Record `json:"items"`
	}
	decodeBody(t, rr, &payload)
	if payload.Items == nil || len(payload.Items) != 0 {
		t.Fatalf("items = %#v, want empty list", payload.Items)
	}
}
