package pricing

// DefaultRules is the built-in price table in credits. Keys are variant ids
// where a model declares variants, otherwise model ids; the engine looks up
// the variant first. Every catalog profile must have an entry here.
var DefaultRules = map[string]ModelPricing{
	// Veo 3.1: fixed 8s clip, priced by the fast/quality toggle. Audio is
	// always on and already folded into the rates.
	"veo-3.1": {
		Rule: TieredRule{
			Tiers: map[string]map[float64]float64{
				"fast":    {8: 100},
				"quality": {8: 420},
			},
			DefaultTier: "fast",
		},
	},

	// Kling 2.6 is the only variant with an audio toggle; audio doubles the
	// clip price (92 -> 184, 184 -> 368).
	"kling-2.6": {
		Rule:     FlatRule{Table: map[float64]float64{5: 92, 10: 184}},
		AudioPct: 1,
	},
	"kling-2.5-turbo": {
		Rule: FlatRule{Table: map[float64]float64{5: 70, 10: 140}},
	},
	"kling-2.1": {
		Rule: TieredRule{
			Tiers: map[string]map[float64]float64{
				"standard": {5: 42, 10: 84},
				"pro":      {5: 84, 10: 167},
				"master":   {5: 267, 10: 534},
			},
			DefaultTier: "standard",
		},
	},

	// Sora 2 charges one clip price for either duration.
	"sora-2": {
		Rule: FlatRule{PerRequest: 50},
	},
	"sora-2-pro": {
		Rule: TieredRule{
			Tiers: map[string]map[float64]float64{
				"standard": {10: 250, 15: 450},
				"high":     {10: 550, 15: 1050},
			},
			DefaultTier: "standard",
		},
	},

	"wan-2.2": {
		Rule: TieredRule{
			Tiers: map[string]map[float64]float64{
				"480p": {5: 67, 10: 134, 15: 200},
				"580p": {5: 100, 10: 200, 15: 300},
				"720p": {5: 134, 10: 268, 15: 402},
			},
			DefaultTier: "480p",
		},
	},
	"wan-2.5": {
		Rule: TieredRule{
			Tiers: map[string]map[float64]float64{
				"720p":  {5: 100, 10: 200, 15: 300},
				"1080p": {5: 168, 10: 335, 15: 500},
			},
			DefaultTier: "720p",
		},
	},
	"wan-2.6": {
		Rule: TieredRule{
			Tiers: map[string]map[float64]float64{
				"720p":  {5: 118, 10: 235, 15: 351},
				"1080p": {5: 175, 10: 351, 15: 528},
			},
			DefaultTier: "720p",
		},
	},

	"bytedance-pro": {
		Rule: TieredRule{
			Tiers: map[string]map[float64]float64{
				"720p":  {5: 27, 10: 61},
				"1080p": {5: 61, 10: 121},
			},
			DefaultTier: "720p",
		},
	},

	// Motion transfer: pure per-second pricing over the measured length of
	// the uploaded clip, clamped to the model's window; the result rounds
	// up to the next multiple of 5 credits.
	"kling-motion-control": {
		Rule: PerSecondRule{
			Rates:     map[string]float64{"720p": 16, "1080p": 22},
			MinSec:    3,
			MaxSec:    30,
			RoundUpTo: 5,
		},
	},

	"kling-ai-avatar-standard": {
		Rule: PerSecondRule{Rates: map[string]float64{"720p": 14}, DefaultRate: 14},
	},
	"kling-ai-avatar-pro": {
		Rule: PerSecondRule{Rates: map[string]float64{"1080p": 27}, DefaultRate: 27},
	},
}
