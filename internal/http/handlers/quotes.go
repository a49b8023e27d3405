package handlers

import (
	"encoding/json"
	"net/http"

	"studio/internal/domain"
	"studio/internal/middleware"
	"studio/internal/pricing"
)

type generationPayload struct {
	ModelID        string  `json:"model_id"`
	ModelVariant   string  `json:"model_variant"`
	Mode           string  `json:"mode"`
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt"`
	DurationSec    float64 `json:"duration_sec"`
	Quality        string  `json:"quality"`
	Resolution     string  `json:"resolution"`
	AspectRatio    string  `json:"aspect_ratio"`
	Audio          bool    `json:"audio"`
	SoundPreset    string  `json:"sound_preset"`
	Style          string  `json:"style"`
	VariantCount   int     `json:"variant_count"`
	StartFrame     string  `json:"start_frame"`
	EndFrame       string  `json:"end_frame"`
	ReferenceVideo string  `json:"reference_video"`
	MotionVideo    string  `json:"motion_video"`
	CharacterImage string  `json:"character_image"`
}

func (p generationPayload) toDomain() domain.GenerationRequest {
	return domain.GenerationRequest{
		ModelID:        p.ModelID,
		ModelVariant:   p.ModelVariant,
		Mode:           domain.Mode(p.Mode),
		Prompt:         p.Prompt,
		NegativePrompt: p.NegativePrompt,
		DurationSec:    p.DurationSec,
		Quality:        p.Quality,
		Resolution:     p.Resolution,
		AspectRatio:    p.AspectRatio,
		Audio:          p.Audio,
		SoundPreset:    p.SoundPreset,
		Style:          p.Style,
		VariantCount:   p.VariantCount,
		StartFrame:     p.StartFrame,
		EndFrame:       p.EndFrame,
		ReferenceVideo: p.ReferenceVideo,
		MotionVideo:    p.MotionVideo,
		CharacterImage: p.CharacterImage,
	}
}

type quoteResponse struct {
	Credits          int     `json:"credits"`
	Unpriced         bool    `json:"unpriced,omitempty"`
	ModelID          string  `json:"model_id"`
	VariantID        string  `json:"variant_id,omitempty"`
	EffectiveSec     float64 `json:"effective_duration_sec"`
	AudioApplied     bool    `json:"audio_applied"`
	EstimatedDisplay string  `json:"estimated_display,omitempty"`
}

func toQuoteResponse(q pricing.PriceQuote) quoteResponse {
	return quoteResponse{
		Credits:          q.Credits,
		Unpriced:         q.Unpriced,
		ModelID:          q.ModelID,
		VariantID:        q.VariantID,
		EffectiveSec:     q.EffectiveDurationSec,
		AudioApplied:     q.AudioApplied,
		EstimatedDisplay: q.EstimatedDisplay,
	}
}

// QuoteCreate prices a request without submitting it. Unknown models quote
// zero with the unpriced flag instead of failing, so the UI can still render.
func (a *App) QuoteCreate(w http.ResponseWriter, r *http.Request) {
	var payload generationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if payload.ModelID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "model_id required")
		return
	}

	quote := a.Engine.Quote(payload.ModelID, payload.toDomain())
	quote.EstimatedDisplay = pricing.DisplayEstimate(quote.Credits, middleware.CountryFromContext(r.Context()))
	a.json(w, http.StatusOK, toQuoteResponse(quote))
}
