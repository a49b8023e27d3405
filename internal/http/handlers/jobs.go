package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"studio/internal/domain"
)

type jobCardResponse struct {
	LocalID   string    `json:"local_id"`
	RemoteID  string    `json:"remote_id,omitempty"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
	ResultRef string    `json:"result_ref,omitempty"`
	Error     string    `json:"error,omitempty"`
	Credits   int       `json:"credits"`
	ModelID   string    `json:"model_id"`
	Mode      string    `json:"mode"`
	Prompt    string    `json:"prompt,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toJobCardResponse(card domain.JobCard) jobCardResponse {
	return jobCardResponse{
		LocalID:   card.LocalID,
		RemoteID:  card.RemoteID,
		Status:    string(card.Status),
		Progress:  card.Progress,
		ResultRef: card.ResultRef,
		Error:     card.Error,
		Credits:   card.Credits,
		ModelID:   card.Request.ModelID,
		Mode:      string(card.Request.Mode),
		Prompt:    card.Request.Prompt,
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
}

// JobsList returns all tracked cards, newest first.
func (a *App) JobsList(w http.ResponseWriter, r *http.Request) {
	cards := a.Registry.List()
	items := make([]jobCardResponse, 0, len(cards))
	for _, card := range cards {
		items = append(items, toJobCardResponse(card))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) JobStatus(w http.ResponseWriter, r *http.Request) {
	localID := chi.URLParam(r, "local_id")
	if localID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "local_id required")
		return
	}
	card, ok := a.Registry.Get(localID)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "job not found")
		return
	}
	a.json(w, http.StatusOK, toJobCardResponse(card))
}

// JobCancel aborts a running job and refunds its credits. Cancelling a job
// that already finished is a no-op and keeps the charge.
func (a *App) JobCancel(w http.ResponseWriter, r *http.Request) {
	localID := chi.URLParam(r, "local_id")
	if localID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "local_id required")
		return
	}

	card, ok := a.Registry.Get(localID)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "job not found")
		return
	}
	wasRunning := !card.Status.IsTerminal()

	if err := a.Orchestrator.Cancel(r.Context(), localID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "job not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "cancel failed")
		return
	}

	if wasRunning && card.Credits > 0 {
		a.Ledger.Refund(a.accountFor(r), card.Credits)
	}

	updated, _ := a.Registry.Get(localID)
	a.json(w, http.StatusOK, toJobCardResponse(updated))
}
