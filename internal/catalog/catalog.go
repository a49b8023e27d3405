package catalog

import (
	"studio/internal/domain"
)

// AspectSource is the sentinel aspect ratio meaning "inherit from the
// uploaded asset" rather than a real ratio.
const AspectSource = "source"

// Profile declares what one model can do. Profiles are configuration data;
// all behavior lives in the resolver and the pricing engine.
type Profile struct {
	ID   string
	Name string

	Modes            []domain.Mode
	DurationsSec     []float64
	ModeDurations    map[domain.Mode][]float64
	FixedDurationSec float64
	Qualities        []string
	AspectRatios     []string
	ModeAspectRatios map[domain.Mode][]string
	AudioSupport     domain.AudioSupport
	StyleOptions     []string
	SoundPresets     []string

	Variants []Variant
}

// Variant is a named sub-configuration of a model. Zero-valued fields
// inherit from the parent profile.
type Variant struct {
	ID   string
	Name string

	Modes            []domain.Mode
	DurationsSec     []float64
	FixedDurationSec float64
	Qualities        []string
	AudioSupport     domain.AudioSupport
	SoundPresets     []string
}

// Capability is the resolved descriptor for a (model, variant) pair.
type Capability struct {
	ModelID   string
	VariantID string
	Known     bool

	Modes            []domain.Mode
	DurationsSec     []float64
	ModeDurations    map[domain.Mode][]float64
	FixedDurationSec float64
	Qualities        []string
	AspectRatios     []string
	ModeAspectRatios map[domain.Mode][]string
	AudioSupport     domain.AudioSupport
	StyleOptions     []string
	SoundPresets     []string
}

// SupportsMode reports whether the capability includes the given mode.
func (c Capability) SupportsMode(m domain.Mode) bool {
	for _, mode := range c.Modes {
		if mode == m {
			return true
		}
	}
	return false
}

// DurationsFor returns the selectable durations for a mode. A fixed-duration
// model yields exactly its fixed value regardless of the declared options.
func (c Capability) DurationsFor(m domain.Mode) []float64 {
	if c.FixedDurationSec > 0 {
		return []float64{c.FixedDurationSec}
	}
	if d, ok := c.ModeDurations[m]; ok && len(d) > 0 {
		return d
	}
	return c.DurationsSec
}

// AspectRatiosFor returns the aspect ratio options for a mode.
func (c Capability) AspectRatiosFor(m domain.Mode) []string {
	if a, ok := c.ModeAspectRatios[m]; ok && len(a) > 0 {
		return a
	}
	return c.AspectRatios
}

// Catalog is an immutable, indexed collection of model profiles.
type Catalog struct {
	profiles []Profile
	index    map[string]int
}

// New builds a catalog from the given profiles. Later duplicates of the same
// model id are ignored.
func New(profiles []Profile) *Catalog {
	c := &Catalog{profiles: profiles, index: make(map[string]int, len(profiles))}
	for i, p := range profiles {
		if _, ok := c.index[p.ID]; !ok {
			c.index[p.ID] = i
		}
	}
	return c
}

// Models returns the declared profiles in catalog order.
func (c *Catalog) Models() []Profile {
	out := make([]Profile, len(c.profiles))
	copy(out, c.profiles)
	return out
}

// Resolve returns the normalized capability for a model and optional variant.
// It never fails: an unknown model id resolves to a minimal text-to-video
// fallback so callers can degrade gracefully, and a variant id that does not
// belong to the model is replaced by the model's first declared variant.
func (c *Catalog) Resolve(modelID, variantID string) Capability {
	i, ok := c.index[modelID]
	if !ok {
		return Capability{
			ModelID:      modelID,
			Modes:        []domain.Mode{domain.ModeTextToVideo},
			AudioSupport: domain.AudioNone,
		}
	}
	p := c.profiles[i]

	cap := Capability{
		ModelID:          p.ID,
		Known:            true,
		Modes:            p.Modes,
		DurationsSec:     p.DurationsSec,
		ModeDurations:    p.ModeDurations,
		FixedDurationSec: p.FixedDurationSec,
		Qualities:        p.Qualities,
		AspectRatios:     p.AspectRatios,
		ModeAspectRatios: p.ModeAspectRatios,
		AudioSupport:     p.AudioSupport,
		StyleOptions:     p.StyleOptions,
		SoundPresets:     p.SoundPresets,
	}
	if cap.AudioSupport == "" {
		cap.AudioSupport = domain.AudioNone
	}

	if len(p.Variants) == 0 {
		return cap
	}
	v := p.Variants[0]
	for _, cand := range p.Variants {
		if cand.ID == variantID {
			v = cand
			break
		}
	}
	cap.VariantID = v.ID
	if len(v.Modes) > 0 {
		cap.Modes = v.Modes
	}
	if len(v.DurationsSec) > 0 {
		cap.DurationsSec = v.DurationsSec
	}
	if v.FixedDurationSec > 0 {
		cap.FixedDurationSec = v.FixedDurationSec
	}
	if len(v.Qualities) > 0 {
		cap.Qualities = v.Qualities
	}
	if v.AudioSupport != "" {
		cap.AudioSupport = v.AudioSupport
	}
	if len(v.SoundPresets) > 0 {
		cap.SoundPresets = v.SoundPresets
	}
	return cap
}
