package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"studio/internal/domain"
)

type generationResponse struct {
	LocalID string `json:"local_id"`
	Status  string `json:"status"`
	Credits int    `json:"credits"`
	Balance int    `json:"balance"`
}

// GenerationsCreate quotes, debits and submits in one step. The debit happens
// before submission; a submission that fails validation refunds immediately,
// while failures after acceptance are settled by the cancel flow.
func (a *App) GenerationsCreate(w http.ResponseWriter, r *http.Request) {
	var payload generationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if payload.ModelID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "model_id required")
		return
	}

	req := payload.toDomain()
	quote := a.Engine.Quote(payload.ModelID, req)
	if quote.Unpriced || quote.Credits <= 0 {
		a.error(w, http.StatusUnprocessableEntity, "unpriced_model", "model has no price rule")
		return
	}

	account := a.accountFor(r)
	if err := a.Ledger.Debit(account, quote.Credits); err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			a.error(w, http.StatusPaymentRequired, "insufficient_credits", err.Error())
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "ledger debit failed")
		return
	}

	localID, err := a.Orchestrator.Start(r.Context(), req)
	if err != nil {
		a.Ledger.Refund(account, quote.Credits)
		switch {
		case errors.Is(err, domain.ErrUnknownModel):
			a.error(w, http.StatusBadRequest, "unknown_model", err.Error())
		case errors.Is(err, domain.ErrUnsupportedMode):
			a.error(w, http.StatusBadRequest, "unsupported_mode", err.Error())
		case errors.Is(err, domain.ErrMissingAsset):
			a.error(w, http.StatusBadRequest, "missing_asset", err.Error())
		case errors.Is(err, domain.ErrUnpricedModel):
			a.error(w, http.StatusUnprocessableEntity, "unpriced_model", err.Error())
		default:
			a.error(w, http.StatusInternalServerError, "internal", "failed to start generation")
		}
		return
	}

	a.json(w, http.StatusAccepted, generationResponse{
		LocalID: localID,
		Status:  string(domain.JobStatusQueued),
		Credits: quote.Credits,
		Balance: a.Ledger.Balance(account),
	})
}
