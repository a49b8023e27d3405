package catalog

import "studio/internal/domain"

// DefaultProfiles is the built-in video model roster. It mirrors the
// aggregator's current offering; changing it requires a matching entry in
// the pricing tables.
var DefaultProfiles = []Profile{
	{
		ID:               "veo-3.1",
		Name:             "Veo 3.1",
		Modes:            []domain.Mode{domain.ModeTextToVideo, domain.ModeImageToVideo, domain.ModeStartEnd, domain.ModeExtend},
		FixedDurationSec: 8,
		Qualities:        []string{"fast", "quality"},
		// Veo rejects 1:1 uploads, keep only the supported ratios.
		AspectRatios: []string{"16:9", "9:16"},
		AudioSupport: domain.AudioAlways,
	},
	{
		ID:           "kling",
		Name:         "Kling",
		Modes:        []domain.Mode{domain.ModeTextToVideo, domain.ModeImageToVideo},
		DurationsSec: []float64{5, 10},
		AspectRatios: []string{"1:1", "16:9", "9:16"},
		AudioSupport: domain.AudioNone,
		Variants: []Variant{
			{ID: "kling-2.6", Name: "Kling 2.6", AudioSupport: domain.AudioToggle},
			{ID: "kling-2.5-turbo", Name: "Kling 2.5 Turbo"},
			{ID: "kling-2.1", Name: "Kling 2.1", Qualities: []string{"standard", "pro", "master"}},
		},
	},
	{
		ID:           "sora-2",
		Name:         "Sora 2",
		Modes:        []domain.Mode{domain.ModeImageToVideo},
		DurationsSec: []float64{10, 15},
		AspectRatios: []string{"portrait", "landscape"},
		AudioSupport: domain.AudioAlways,
	},
	{
		ID:           "sora-2-pro",
		Name:         "Sora 2 Pro",
		Modes:        []domain.Mode{domain.ModeImageToVideo},
		DurationsSec: []float64{10, 15},
		Qualities:    []string{"standard", "high"},
		AspectRatios: []string{"portrait", "landscape"},
		AudioSupport: domain.AudioAlways,
	},
	{
		ID:           "wan",
		Name:         "WAN",
		Modes:        []domain.Mode{domain.ModeTextToVideo, domain.ModeImageToVideo, domain.ModeVideoToVideo},
		DurationsSec: []float64{5, 10, 15},
		AspectRatios: []string{"16:9", "9:16"},
		ModeAspectRatios: map[domain.Mode][]string{
			domain.ModeVideoToVideo: {AspectSource},
		},
		AudioSupport: domain.AudioNone,
		SoundPresets: []string{"ambient", "cinematic", "upbeat"},
		Variants: []Variant{
			{ID: "wan-2.6", Name: "WAN 2.6", Qualities: []string{"720p", "1080p"}},
			{ID: "wan-2.5", Name: "WAN 2.5", Qualities: []string{"720p", "1080p"}},
			{ID: "wan-2.2", Name: "WAN 2.2 A14B Turbo", Qualities: []string{"480p", "580p", "720p"}},
		},
	},
	{
		ID:           "bytedance-pro",
		Name:         "Bytedance Pro",
		Modes:        []domain.Mode{domain.ModeImageToVideo},
		DurationsSec: []float64{5, 10},
		Qualities:    []string{"720p", "1080p"},
		AspectRatios: []string{"16:9", "9:16"},
		AudioSupport: domain.AudioNone,
	},
	{
		ID:           "kling-motion-control",
		Name:         "Kling Motion Control",
		Modes:        []domain.Mode{domain.ModeMotionTransfer},
		Qualities:    []string{"720p", "1080p"},
		AspectRatios: []string{AspectSource},
		AudioSupport: domain.AudioNone,
	},
	{
		ID:           "kling-ai-avatar",
		Name:         "Kling AI Avatar",
		Modes:        []domain.Mode{domain.ModeImageToVideo},
		DurationsSec: []float64{5, 10, 15},
		AspectRatios: []string{"16:9", "9:16", "1:1"},
		AudioSupport: domain.AudioAlways,
		Variants: []Variant{
			{ID: "kling-ai-avatar-standard", Name: "Kling AI Avatar Standard", Qualities: []string{"720p"}},
			{ID: "kling-ai-avatar-pro", Name: "Kling AI Avatar Pro", Qualities: []string{"1080p"}},
		},
	},
}

// Default returns a catalog over the built-in profiles.
func Default() *Catalog {
	return New(DefaultProfiles)
}
