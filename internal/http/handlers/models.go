package handlers

import (
	"net/http"

	"studio/internal/catalog"
)

type modelVariantResponse struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type modelResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name,omitempty"`
	Modes        []string               `json:"modes"`
	Durations    []float64              `json:"durations,omitempty"`
	FixedSec     float64                `json:"fixed_duration_sec,omitempty"`
	Qualities    []string               `json:"qualities,omitempty"`
	AspectRatios []string               `json:"aspect_ratios,omitempty"`
	AudioSupport string                 `json:"audio_support"`
	SoundPresets []string               `json:"sound_presets,omitempty"`
	Variants     []modelVariantResponse `json:"variants,omitempty"`
}

func (a *App) Models(w http.ResponseWriter, r *http.Request) {
	profiles := a.Engine.Catalog().Models()
	items := make([]modelResponse, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, toModelResponse(p))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func toModelResponse(p catalog.Profile) modelResponse {
	m := modelResponse{
		ID:           p.ID,
		Name:         p.Name,
		Durations:    p.DurationsSec,
		FixedSec:     p.FixedDurationSec,
		Qualities:    p.Qualities,
		AspectRatios: p.AspectRatios,
		AudioSupport: string(p.AudioSupport),
		SoundPresets: p.SoundPresets,
	}
	for _, mode := range p.Modes {
		m.Modes = append(m.Modes, string(mode))
	}
	for _, v := range p.Variants {
		m.Variants = append(m.Variants, modelVariantResponse{ID: v.ID, Name: v.Name})
	}
	return m
}
