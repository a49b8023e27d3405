package pricing

import (
	"math"

	"github.com/rs/zerolog"

	"studio/internal/catalog"
	"studio/internal/domain"
)

// PriceQuote is the engine's output. Credits is the settlement amount in
// whole credit units; EstimatedDisplay is informational only and must never
// be used for settlement. A quote with Unpriced set carries zero credits and
// must be rejected before submission.
type PriceQuote struct {
	Credits              int
	Unpriced             bool
	ModelID              string
	VariantID            string
	EffectiveDurationSec float64
	AudioApplied         bool
	EstimatedDisplay     string
}

// Engine resolves capabilities and computes deterministic price quotes from
// a static rule table. Quoting never fails: anomalies are logged and flagged
// on the quote instead.
type Engine struct {
	catalog *catalog.Catalog
	rules   map[string]ModelPricing
	logger  zerolog.Logger
}

// NewEngine builds a pricing engine over the given catalog and rule table.
func NewEngine(cat *catalog.Catalog, rules map[string]ModelPricing, logger zerolog.Logger) *Engine {
	return &Engine{catalog: cat, rules: rules, logger: logger}
}

// NewDefaultEngine wires the built-in catalog and price table.
func NewDefaultEngine(logger zerolog.Logger) *Engine {
	return NewEngine(catalog.Default(), DefaultRules, logger)
}

// Catalog exposes the engine's catalog for capability lookups.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Quote computes the price for one request. Identical inputs always yield
// identical credits; fractional prices round up so partial units are never
// charged.
func (e *Engine) Quote(modelID string, req domain.GenerationRequest) PriceQuote {
	cap := e.catalog.Resolve(modelID, req.ModelVariant)
	quote := PriceQuote{ModelID: cap.ModelID, VariantID: cap.VariantID}

	if !cap.Known {
		e.logger.Warn().Str("model", modelID).Msg("pricing: unknown model, quoting zero")
		quote.Unpriced = true
		return quote
	}

	mp, ok := e.lookupRule(cap)
	if !ok {
		e.logger.Warn().Str("model", cap.ModelID).Str("variant", cap.VariantID).
			Msg("pricing: no rule for model, quoting zero")
		quote.Unpriced = true
		return quote
	}

	eff := clampDuration(req.DurationSec, cap.DurationsFor(req.Mode))
	quote.EffectiveDurationSec = eff

	audio := req.Audio
	switch cap.AudioSupport {
	case domain.AudioAlways:
		audio = true
	case domain.AudioNone:
		audio = false
	}

	base, err := mp.Rule.Price(eff, e.qualityFor(cap, req))
	if err != nil {
		e.logger.Warn().Err(err).Str("model", cap.ModelID).Str("variant", cap.VariantID).
			Msg("pricing: rule lookup failed, quoting zero")
		quote.Unpriced = true
		return quote
	}

	if cap.AudioSupport == domain.AudioToggle && audio {
		base += mp.AudioAdd + base*mp.AudioPct
		quote.AudioApplied = true
	}

	base *= float64(req.Variants())

	quote.Credits = int(math.Ceil(base))
	if quote.Credits < 0 {
		quote.Credits = 0
	}
	return quote
}

func (e *Engine) lookupRule(cap catalog.Capability) (ModelPricing, bool) {
	if cap.VariantID != "" {
		if mp, ok := e.rules[cap.VariantID]; ok {
			return mp, true
		}
	}
	mp, ok := e.rules[cap.ModelID]
	return mp, ok
}

func (e *Engine) qualityFor(cap catalog.Capability, req domain.GenerationRequest) string {
	if req.Quality != "" {
		return req.Quality
	}
	if req.Resolution != "" {
		return req.Resolution
	}
	if len(cap.Qualities) > 0 {
		return cap.Qualities[0]
	}
	return ""
}
