package config

import (
	"strings"
	"testing"
)

func TestDefaultThresholds(t *testing.T) {
	thresholds := DefaultThresholds()

	if thresholds.OrgSubstring != "microsoft" {
		t.Errorf("DefaultThresholds().OrgSubstring = %q, want %q", thresholds.OrgSubstring, "microsoft")
	}
	if thresholds.MinContributions != 50 {
		t.Errorf("DefaultThresholds().MinContributions = %d, want 50", thresholds.MinContributions)
	}
	if thresholds.MinRepositories != 5 {
		t.Errorf("DefaultThresholds().MinRepositories = %d, want 5", thresholds.MinRepositories)
	}
	if thresholds.Workers != 10 {
		t.Errorf("DefaultThresholds().Workers = %d, want 10", thresholds.Workers)
	}
}

func TestGetThresholds(t *testing.T) {
	t.Run("returns defaults when no overrides", func(t *testing.T) {
		cfg := &Config{}
		thresholds := cfg.GetThresholds()

		if thresholds.MinContributions != 50 {
			t.Errorf("GetThresholds().MinContributions = %d, want 50", thresholds.MinContributions)
		}
		if thresholds.OrgSubstring != "microsoft" {
			t.Errorf("GetThresholds().OrgSubstring = %q, want %q", thresholds.OrgSubstring, "microsoft")
		}
	})

	t.Run("merges partial overrides", func(t *testing.T) {
		contributions := 25
		cfg := &Config{
			Scoring: &ScoringOverrides{
				MinContributions: &contributions,
			},
		}
		thresholds := cfg.GetThresholds()

		// Overridden value
		if thresholds.MinContributions != 25 {
			t.Errorf("GetThresholds().MinContributions = %d, want 25", thresholds.MinContributions)
		}
		// Default values preserved
		if thresholds.MinRepositories != 5 {
			t.Errorf("GetThresholds().MinRepositories = %d, want 5", thresholds.MinRepositories)
		}
		if thresholds.OrgSubstring != "microsoft" {
			t.Errorf("GetThresholds().OrgSubstring = %q, want %q", thresholds.OrgSubstring, "microsoft")
		}
	})

	t.Run("ignores non-positive worker override", func(t *testing.T) {
		workers := 0
		cfg := &Config{
			Scoring: &ScoringOverrides{
				Workers: &workers,
			},
		}
		if got := cfg.GetThresholds().Workers; got != 10 {
			t.Errorf("GetThresholds().Workers = %d, want default 10", got)
		}
	})
}

func TestMergeConfig(t *testing.T) {
	t.Run("local format wins", func(t *testing.T) {
		global := &Config{DefaultFormat: "table"}
		local := &Config{DefaultFormat: "json"}

		merged := mergeConfig(global, local)
		if merged.DefaultFormat != "json" {
			t.Errorf("merged DefaultFormat = %q, want %q", merged.DefaultFormat, "json")
		}
	})

	t.Run("unset local preserves global", func(t *testing.T) {
		org := "acme"
		global := &Config{
			DefaultFormat: "markdown",
			Scoring:       &ScoringOverrides{OrgSubstring: &org},
		}
		local := &Config{}

		merged := mergeConfig(global, local)
		if merged.DefaultFormat != "markdown" {
			t.Errorf("merged DefaultFormat = %q, want %q", merged.DefaultFormat, "markdown")
		}
		if merged.Scoring == nil || merged.Scoring.OrgSubstring == nil || *merged.Scoring.OrgSubstring != "acme" {
			t.Errorf("merged Scoring did not preserve global override: %+v", merged.Scoring)
		}
	})

	t.Run("local scoring overrides global", func(t *testing.T) {
		globalContribs := 50
		localContribs := 10
		global := &Config{Scoring: &ScoringOverrides{MinContributions: &globalContribs}}
		local := &Config{Scoring: &ScoringOverrides{MinContributions: &localContribs}}

		merged := mergeConfig(global, local)
		if *merged.Scoring.MinContributions != 10 {
			t.Errorf("merged MinContributions = %d, want 10", *merged.Scoring.MinContributions)
		}
	})

	t.Run("all-nil scoring collapses to nil", func(t *testing.T) {
		merged := mergeConfig(&Config{}, &Config{})
		if merged.Scoring != nil {
			t.Errorf("expected nil Scoring, got %+v", merged.Scoring)
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DefaultFormat != "table" {
		t.Errorf("DefaultConfig().DefaultFormat = %q, want %q", cfg.DefaultFormat, "table")
	}
	if cfg.Scoring == nil {
		t.Fatal("DefaultConfig().Scoring is nil")
	}
	if *cfg.Scoring.MinContributions != 50 {
		t.Errorf("DefaultConfig() MinContributions = %d, want 50", *cfg.Scoring.MinContributions)
	}
}

func TestToYAML(t *testing.T) {
	cfg := DefaultConfig()

	out, err := cfg.ToYAML()
	if err != nil {
		t.Fatalf("ToYAML() error: %v", err)
	}
	for _, want := range []string{"default_format: table", "org_substring: microsoft", "min_contributions: 50"} {
		if !strings.Contains(out, want) {
			t.Errorf("ToYAML() missing %q:\n%s", want, out)
		}
	}
}

func TestGetGitHubToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "test-token-value")

	cfg := &Config{}
	if got := cfg.GetGitHubToken(); got != "test-token-value" {
		t.Errorf("GetGitHubToken() = %q, want %q", got, "test-token-value")
	}
}

func TestMinimalConfig(t *testing.T) {
	content := MinimalConfig()
	if !strings.Contains(content, "default_format: table") {
		t.Error("MinimalConfig() should set the default format")
	}
	if !strings.Contains(content, "min_contributions") {
		t.Error("MinimalConfig() should document the scoring overrides")
	}
}
