package pricing

import (
	"fmt"
	"math"
	"sort"
)

// Rule computes the per-unit base price in credits for one generation,
// before the audio surcharge and variant multiplication. The duration passed
// in has already been clamped to the model's selectable set; per-second
// rules additionally clamp to their own [min, max] window.
type Rule interface {
	Price(durationSec float64, quality string) (float64, error)
}

// FlatRule prices a request from a single number or a duration-keyed table,
// regardless of quality.
type FlatRule struct {
	PerRequest float64             // used when Table is empty
	Table      map[float64]float64 // duration seconds -> credits
}

func (r FlatRule) Price(durationSec float64, _ string) (float64, error) {
	if len(r.Table) == 0 {
		return r.PerRequest, nil
	}
	if p, ok := r.Table[durationSec]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("flat rule: no price for duration %vs", durationSec)
}

// PerSecondRule prices a request linearly by output duration at a
// quality-dependent rate. Duration is clamped to [MinSec, MaxSec] before
// pricing; RoundUpTo, when set, rounds the result up to the next multiple.
type PerSecondRule struct {
	Rates       map[string]float64 // quality -> credits per second
	DefaultRate float64
	MinSec      float64
	MaxSec      float64
	RoundUpTo   float64
}

func (r PerSecondRule) Price(durationSec float64, quality string) (float64, error) {
	rate := r.DefaultRate
	if v, ok := r.Rates[quality]; ok {
		rate = v
	}
	if rate <= 0 {
		return 0, fmt.Errorf("per-second rule: no rate for quality %q", quality)
	}
	d := durationSec
	if r.MinSec > 0 && d < r.MinSec {
		d = r.MinSec
	}
	if r.MaxSec > 0 && d > r.MaxSec {
		d = r.MaxSec
	}
	price := rate * d
	if r.RoundUpTo > 0 {
		price = math.Ceil(price/r.RoundUpTo) * r.RoundUpTo
	}
	return price, nil
}

// TieredRule prices a request by a discrete quality-tier lookup, optionally
// scaled per duration within each tier.
type TieredRule struct {
	Tiers       map[string]map[float64]float64 // tier -> duration -> credits
	DefaultTier string
}

func (r TieredRule) Price(durationSec float64, quality string) (float64, error) {
	tier, ok := r.Tiers[quality]
	if !ok {
		tier, ok = r.Tiers[r.DefaultTier]
	}
	if !ok {
		return 0, fmt.Errorf("tiered rule: no tier for quality %q", quality)
	}
	if p, ok := tier[durationSec]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("tiered rule: no price for duration %vs", durationSec)
}

// ModelPricing binds a rule to its model-specific audio surcharge. The
// surcharge applies only when the resolved capability is audio-toggle and
// the request asks for audio; always-on audio is folded into the base rate.
type ModelPricing struct {
	Rule     Rule
	AudioAdd float64 // flat adder in credits
	AudioPct float64 // fraction of the base price, e.g. 1 doubles it
}

// clampDuration substitutes the closest allowed duration for the requested
// one, preferring the smaller absolute difference and breaking ties toward
// the lower value. An empty allowed set leaves the request untouched.
func clampDuration(requested float64, allowed []float64) float64 {
	if len(allowed) == 0 {
		return requested
	}
	sorted := make([]float64, len(allowed))
	copy(sorted, allowed)
	sort.Float64s(sorted)

	best := sorted[0]
	bestDiff := math.Abs(requested - best)
	for _, cand := range sorted[1:] {
		if diff := math.Abs(requested - cand); diff < bestDiff {
			best, bestDiff = cand, diff
		}
	}
	return best
}
