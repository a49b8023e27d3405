package catalog

import (
	"testing"

	"studio/internal/domain"
)

func testCatalog() *Catalog {
	return New([]Profile{
		{
			ID:           "clipper",
			Modes:        []domain.Mode{domain.ModeTextToVideo, domain.ModeImageToVideo},
			DurationsSec: []float64{5, 10},
			Qualities:    []string{"720p", "1080p"},
			AspectRatios: []string{"16:9", "9:16"},
			ModeAspectRatios: map[domain.Mode][]string{
				domain.ModeImageToVideo: {AspectSource},
			},
			AudioSupport: domain.AudioToggle,
			Variants: []Variant{
				{ID: "clipper-fast", AudioSupport: domain.AudioNone},
				{ID: "clipper-pro", Qualities: []string{"1080p", "4K"}, DurationsSec: []float64{10}},
			},
		},
		{
			ID:               "snapshot",
			Modes:            []domain.Mode{domain.ModeTextToVideo},
			FixedDurationSec: 8,
			DurationsSec:     []float64{5, 10},
			AudioSupport:     domain.AudioAlways,
		},
	})
}

func TestResolveUnknownModelFallsBack(t *testing.T) {
	cap := testCatalog().Resolve("does-not-exist", "")
	if cap.Known {
		t.Fatalf("unknown model resolved as known")
	}
	if len(cap.Modes) != 1 || cap.Modes[0] != domain.ModeTextToVideo {
		t.Fatalf("fallback modes = %v, want text-to-video only", cap.Modes)
	}
	if len(cap.DurationsSec) != 0 || len(cap.Qualities) != 0 {
		t.Fatalf("fallback must not carry duration/quality options")
	}
	if cap.AudioSupport != domain.AudioNone {
		t.Fatalf("fallback audio = %q, want none", cap.AudioSupport)
	}
}

func TestResolveAppliesVariantOverrides(t *testing.T) {
	cap := testCatalog().Resolve("clipper", "clipper-pro")
	if cap.VariantID != "clipper-pro" {
		t.Fatalf("variant = %q, want clipper-pro", cap.VariantID)
	}
	if got := cap.DurationsFor(domain.ModeTextToVideo); len(got) != 1 || got[0] != 10 {
		t.Fatalf("durations = %v, want [10]", got)
	}
	if len(cap.Qualities) != 2 || cap.Qualities[1] != "4K" {
		t.Fatalf("qualities = %v, want variant override", cap.Qualities)
	}
	// Inherited from the parent profile.
	if cap.AudioSupport != domain.AudioToggle {
		t.Fatalf("audio = %q, want inherited toggle", cap.AudioSupport)
	}
}

func TestResolveForeignVariantUsesFirstDeclared(t *testing.T) {
	cap := testCatalog().Resolve("clipper", "belongs-to-another-model")
	if cap.VariantID != "clipper-fast" {
		t.Fatalf("variant = %q, want first declared clipper-fast", cap.VariantID)
	}
	if cap.AudioSupport != domain.AudioNone {
		t.Fatalf("audio = %q, want clipper-fast override", cap.AudioSupport)
	}
}

func TestFixedDurationWinsOverDeclaredOptions(t *testing.T) {
	cap := testCatalog().Resolve("snapshot", "")
	got := cap.DurationsFor(domain.ModeTextToVideo)
	if len(got) != 1 || got[0] != 8 {
		t.Fatalf("durations = %v, want fixed [8]", got)
	}
}

func TestModeAspectRatioOverride(t *testing.T) {
	cap := testCatalog().Resolve("clipper", "")
	if got := cap.AspectRatiosFor(domain.ModeImageToVideo); len(got) != 1 || got[0] != AspectSource {
		t.Fatalf("i2v ratios = %v, want [%s]", got, AspectSource)
	}
	if got := cap.AspectRatiosFor(domain.ModeTextToVideo); len(got) != 2 {
		t.Fatalf("t2v ratios = %v, want model defaults", got)
	}
}

func TestDefaultCatalogHasVariantsResolved(t *testing.T) {
	cap := Default().Resolve("kling", "kling-2.6")
	if !cap.Known || cap.VariantID != "kling-2.6" {
		t.Fatalf("kling 2.6 not resolvable: %+v", cap)
	}
	if cap.AudioSupport != domain.AudioToggle {
		t.Fatalf("kling 2.6 audio = %q, want toggle", cap.AudioSupport)
	}
}
