package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.DefaultFormat != "cli" {
		t.Errorf("expected default format cli, got %s", cfg.Output.DefaultFormat)
	}
	if cfg.Output.Variation != 0.10 {
		t.Errorf("expected 10%% variation, got %v", cfg.Output.Variation)
	}
}

func TestSaveLoadRoundTripFormats(t *testing.T) {
	for _, name := range []string{"config.json", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := Default()
			cfg.Catalog.Path = "/etc/reuse-cost/catalog.hcl"
			cfg.Server.Burst = 3
			if err := cfg.Save(path); err != nil {
				t.Fatalf("save: %v", err)
			}

			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if loaded.Catalog.Path != cfg.Catalog.Path {
				t.Errorf("catalog path lost: %q", loaded.Catalog.Path)
			}
			if loaded.Server.Burst != 3 {
				t.Errorf("burst lost: %d", loaded.Server.Burst)
			}
		})
	}
}

func TestLoadYAMLKeepsDefaultsForOmittedSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yml")
	if err := os.WriteFile(path, []byte("output:\n  default_format: json\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("expected json, got %s", cfg.Output.DefaultFormat)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr to survive, got %s", cfg.Server.Addr)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("REUSE_COST_CATALOG=/tmp/rates.hcl\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAddr, ":9999")
	t.Setenv(EnvRPS, "2.5")
	t.Cleanup(func() { os.Unsetenv(EnvCatalog) })

	cfg := Default()
	if err := cfg.ApplyEnv(envFile); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Catalog.Path != "/tmp/rates.hcl" {
		t.Errorf("expected catalog from .env, got %q", cfg.Catalog.Path)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("expected addr override, got %q", cfg.Server.Addr)
	}
	if cfg.Server.RateLimit != 2.5 {
		t.Errorf("expected rate limit 2.5, got %v", cfg.Server.RateLimit)
	}
}

func TestApplyEnvMissingDotEnvIsIgnored(t *testing.T) {
	cfg := Default()
	if err := cfg.ApplyEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
}

func TestApplyEnvRejectsBadRateLimit(t *testing.T) {
	t.Setenv(EnvRPS, "fast")
	if err := Default().ApplyEnv(""); err == nil {
		t.Fatal("expected error for non-numeric rate limit")
	}
}

func TestYAMLEncodesEffectiveConfig(t *testing.T) {
	cfg := Default()
	cfg.Output.DefaultFormat = "markdown"
	data, err := cfg.YAML()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "default_format: markdown") {
		t.Errorf("unexpected yaml:\n%s", data)
	}
}
