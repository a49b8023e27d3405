package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"studio/internal/history"
	"studio/internal/ledger"
	"studio/internal/orchestrator"
	"studio/internal/pricing"
	"studio/internal/registry"
)

// HistoryStore hydrates past generations for the job list.
type HistoryStore interface {
	ListRecent(ctx context.Context, limit int) ([]history.Record, error)
}

type App struct {
	Logger       zerolog.Logger
	Engine       *pricing.Engine
	Orchestrator *orchestrator.Orchestrator
	Registry     *registry.Registry
	Ledger       ledger.Ledger
	History      HistoryStore // nil when no database is configured
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, msg string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": slug, "message": msg},
	})
}

// accountFor identifies the credit account behind the request. Clients pass
// X-Account-ID; everything else shares the default bucket.
func (a *App) accountFor(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get("X-Account-ID")); v != "" {
		return v
	}
	return "default"
}
