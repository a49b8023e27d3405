package infra

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("KIE_API_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("KIE_BASE_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8080")
	}
	if cfg.KieBaseURL != "https://api.kie.ai" {
		t.Fatalf("KieBaseURL mismatch: got %q", cfg.KieBaseURL)
	}
	if cfg.PollIntervalSec != 2 || cfg.MaxPollAttempts != 180 {
		t.Fatalf("poll defaults mismatch: %d / %d", cfg.PollIntervalSec, cfg.MaxPollAttempts)
	}
	if cfg.CreditGrant != 1000 {
		t.Fatalf("CreditGrant mismatch: got %d", cfg.CreditGrant)
	}
}

func TestLoadConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("KIE_API_KEY", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing KIE_API_KEY")
	}
}

func TestLoadConfigRejectsNonPositivePollInterval(t *testing.T) {
	t.Setenv("KIE_API_KEY", "test-key")
	t.Setenv("POLL_INTERVAL_SECONDS", "-1")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for non-positive poll interval")
	}
}

func TestLoadConfigHonorsOverrides(t *testing.T) {
	t.Setenv("KIE_API_KEY", "test-key")
	t.Setenv("PORT", "1919")
	t.Setenv("MAX_POLL_ATTEMPTS", "12")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "1919" {
		t.Fatalf("Port mismatch: got %q", cfg.Port)
	}
	if cfg.MaxPollAttempts != 12 {
		t.Fatalf("MaxPollAttempts mismatch: got %d", cfg.MaxPollAttempts)
	}
	if cfg.RateLimitPerMin != 5 {
		t.Fatalf("RateLimitPerMin mismatch: got %d", cfg.RateLimitPerMin)
	}
}
