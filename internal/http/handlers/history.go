package handlers

import (
	"net/http"
	"strconv"

	"studio/internal/history"
)

// HistoryList returns persisted past generations. Without a database the
// endpoint still answers, with an empty list, so clients need no special case.
func (a *App) HistoryList(w http.ResponseWriter, r *http.Request) {
	if a.History == nil {
		a.json(w, http.StatusOK, map[string]any{"items": []history.Record{}})
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	items, err := a.History.ListRecent(r.Context(), limit)
	if err != nil {
		a.Logger.Error().Err(err).Msg("history: list failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load history")
		return
	}
	if items == nil {
		items = []history.Record{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
