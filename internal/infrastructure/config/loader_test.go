package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/vitals-go/internal/domain"
)

func TestLoadWritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	t.Setenv(envLanguage, "")

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("defaults not written: %v", err)
	}
	if diff := cmp.Diff(domain.DefaultVitalTable(), cfg.VitalTable()); diff != "" {
		t.Errorf("default table mismatch (-want +got):\n%s", diff)
	}
	if cfg.Preferences.Language != domain.LanguageEnglish || cfg.Evaluation.Policy != domain.PolicyAll {
		t.Errorf("unexpected preferences %+v / %+v", cfg.Preferences, cfg.Evaluation)
	}
	if !cfg.History.Enabled || cfg.History.RetentionDays != domain.DefaultHistoryRetainDays {
		t.Errorf("unexpected history settings %+v", cfg.History)
	}
}

func TestLoadParsesOverridesAndHydrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(envLanguage, "")
	raw := `
preferences:
  language: de
vitals:
  pulse_rate:
    lower_limit: 50
    upper_limit: 110
    tolerance_percent: 2
    critical_message: "Pulse Rate is out of range!"
    warning_message: "Warning: Approaching abnormal pulse rate!"
catalog:
  fr:
    "Temperature critical!": "Température critique !"
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Preferences.Language != domain.LanguageGerman {
		t.Errorf("language = %s", cfg.Preferences.Language)
	}
	if cfg.Evaluation.Policy != domain.PolicyAll {
		t.Errorf("policy not hydrated: %q", cfg.Evaluation.Policy)
	}
	table := cfg.VitalTable()
	if got := table[domain.VitalPulseRate].LowerLimit; got != 50 {
		t.Errorf("pulse lower limit = %v, want 50", got)
	}
	if got := table[domain.VitalSpo2]; got != domain.DefaultVitalTable()[domain.VitalSpo2] {
		t.Errorf("spo2 should keep defaults, got %+v", got)
	}
	if got := cfg.Catalog["fr"]["Temperature critical!"]; got != "Température critique !" {
		t.Errorf("catalog entry = %q", got)
	}
}

func TestApplyEnvLanguage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(envLanguage, "de")

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Preferences.Language != domain.LanguageEnglish {
		t.Errorf("Load() language = %s, want file value en", cfg.Preferences.Language)
	}
	if got := ApplyEnv(cfg).Preferences.Language; got != domain.LanguageGerman {
		t.Errorf("ApplyEnv() language = %s, want de", got)
	}
}

func TestSaveDoesNotPersistEnvLanguage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(envLanguage, "de")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.SetPolicy("short_circuit"); err != nil {
		t.Fatal(err)
	}
	if err := loader.Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "language: de") {
		t.Errorf("env language written to file:\n%s", raw)
	}
	if !strings.Contains(string(raw), "policy: short_circuit") {
		t.Errorf("policy not saved:\n%s", raw)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("vitals: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(envLanguage, "")
	loader := NewFileLoader(path)

	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig() error = %v", err)
	}
	if err := cfg.SetPolicy("short_circuit"); err != nil {
		t.Fatal(err)
	}
	if err := loader.Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPathPrefersOverrideThenEnv(t *testing.T) {
	t.Setenv(envConfigPath, "/tmp/from-env.yaml")
	if got := NewFileLoader("").Path(); got != "/tmp/from-env.yaml" {
		t.Errorf("env path = %q", got)
	}
	if got := NewFileLoader("/tmp/explicit.yaml").Path(); got != "/tmp/explicit.yaml" {
		t.Errorf("override path = %q", got)
	}
}

func TestBackupAndReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(envLanguage, "")
	if err := os.WriteFile(path, []byte("preferences:\n  language: de\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	loader := NewFileLoader(path)

	backup, err := loader.Backup()
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if raw, _ := os.ReadFile(backup); string(raw) != "preferences:\n  language: de\n" {
		t.Errorf("backup content = %q", raw)
	}

	if _, err := loader.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Preferences.Language != domain.LanguageEnglish {
		t.Errorf("language after reset = %s", cfg.Preferences.Language)
	}
}
