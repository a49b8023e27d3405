package domain

// Mode enumerates generation modes a model may support.
type Mode string

const (
	ModeTextToVideo    Mode = "t2v"
	ModeImageToVideo   Mode = "i2v"
	ModeVideoToVideo   Mode = "v2v"
	ModeStartEnd       Mode = "start_end"
	ModeMotionTransfer Mode = "motion"
	ModeExtend         Mode = "extend"
)

// AudioSupport describes how a model treats the audio flag.
type AudioSupport string

const (
	AudioNone   AudioSupport = "none"   // flag is inapplicable
	AudioToggle AudioSupport = "toggle" // user-controllable, priced as a surcharge
	AudioAlways AudioSupport = "always" // forced on, folded into the base rate
)

// GenerationRequest describes one job to submit. It is treated as immutable
// once handed to the orchestrator. Fields the resolved capability does not
// support for the chosen mode are ignored rather than rejected, to tolerate
// stale caller state.
type GenerationRequest struct {
	ModelID        string
	ModelVariant   string
	Mode           Mode
	Prompt         string
	NegativePrompt string

	DurationSec  float64
	Quality      string
	Resolution   string
	AspectRatio  string
	Audio        bool
	SoundPreset  string
	Style        string
	VariantCount int

	// Opaque asset handles; never interpreted by pricing or lifecycle logic.
	StartFrame     string
	EndFrame       string
	ReferenceVideo string
	MotionVideo    string
	CharacterImage string
}

// Variants returns the effective variant count, defaulting to one.
func (r GenerationRequest) Variants() int {
	if r.VariantCount < 1 {
		return 1
	}
	return r.VariantCount
}
