package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/doeshing/vitals-go/internal/app"
	"github.com/doeshing/vitals-go/internal/domain"
)

func newTestContainer(t *testing.T) *app.Container {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("VITALS_LANGUAGE", "")
	c, err := app.BuildContainer(context.Background(), app.Options{
		ConfigPath: filepath.Join(dir, "config.yaml"),
		LogOutput:  &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("BuildContainer() error = %v", err)
	}
	return c
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTranslateCommand(t *testing.T) {
	c := newTestContainer(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"german", []string{"Temperature critical!", "--language", "de"}, "Temperatur kritisch!"},
		{"english default", []string{"Temperature critical!"}, "Temperature critical!"},
		{"unknown language", []string{"Oxygen Saturation out of range!", "-l", "fr"}, "Oxygen Saturation out of range!"},
		{"unknown key", []string{"Not a key"}, "Not a key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewTranslateCommand(c), tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCatalogCoverage(t *testing.T) {
	c := newTestContainer(t)
	out, err := execute(t, NewCatalogCommand(c))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"de: 7/7", "en: 7/7"} {
		if !strings.Contains(out, want) {
			t.Errorf("coverage %q missing %q", out, want)
		}
	}
}

func TestConfigDiffAndSetRange(t *testing.T) {
	c := newTestContainer(t)

	out, err := execute(t, NewConfigCommand(c), "diff")
	if err != nil {
		t.Fatalf("diff error = %v", err)
	}
	if !strings.Contains(out, MsgNoDifferencesFromDefault) {
		t.Errorf("fresh config should match defaults, got %q", out)
	}

	if _, err := execute(t, NewConfigCommand(c), "set-range", "pulse_rate", "--lower", "50", "--upper", "110"); err != nil {
		t.Fatalf("set-range error = %v", err)
	}
	cfg, err := c.ConfigProvider.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	got := cfg.VitalTable()[domain.VitalPulseRate]
	if got.LowerLimit != 50 || got.UpperLimit != 110 || got.CriticalMessageKey != domain.MsgPulseRateCritical {
		t.Errorf("unexpected pulse range %+v", got)
	}

	out, err = execute(t, NewConfigCommand(c), "diff")
	if err != nil {
		t.Fatalf("diff error = %v", err)
	}
	if strings.Contains(out, MsgNoDifferencesFromDefault) {
		t.Error("diff should report the pulse rate override")
	}
}

func TestConfigRejectsInvalidRange(t *testing.T) {
	c := newTestContainer(t)

	tests := []struct {
		name string
		args []string
	}{
		{"inverted limits", []string{"set-range", "spo2", "--lower", "100", "--upper", "90"}},
		{"tolerance above 100", []string{"set-range", "spo2", "--lower", "90", "--upper", "100", "--tolerance", "150"}},
		{"unknown vital", []string{"set-range", "glucose", "--lower", "1", "--upper", "2"}},
		{"missing limits", []string{"set-range", "spo2", "--lower", "90"}},
		{"unknown policy", []string{"set-policy", "first"}},
		{"set validates ranges", []string{"set", "vitals.temperature.lower_limit", "200"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, NewConfigCommand(c), tt.args...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestConfigGet(t *testing.T) {
	c := newTestContainer(t)
	out, err := execute(t, NewConfigCommand(c), "get", "--key", "vitals.spo2.lower_limit")
	if err != nil {
		t.Fatalf("get error = %v", err)
	}
	if strings.TrimSpace(out) != "90" {
		t.Errorf("got %q, want 90", out)
	}
}

func TestHistoryRetainUpdatesConfig(t *testing.T) {
	c := newTestContainer(t)
	out, err := execute(t, NewHistoryCommand(c), "retain", "--days", "7")
	if err != nil {
		t.Fatalf("retain error = %v", err)
	}
	if !strings.Contains(out, "Retained last 7 days") {
		t.Errorf("unexpected output %q", out)
	}
	cfg, _ := c.ConfigProvider.Load(context.Background())
	if cfg.History.RetentionDays != 7 {
		t.Errorf("retention = %d, want 7", cfg.History.RetentionDays)
	}

	if _, err := execute(t, NewHistoryCommand(c), "retain", "--days", "0"); err == nil {
		t.Error("expected error for zero days")
	}
}

func TestDoctorCommand(t *testing.T) {
	c := newTestContainer(t)
	out, err := execute(t, NewDoctorCommand(c))
	if err != nil {
		t.Fatalf("doctor error = %v\n%s", err, out)
	}
	for _, want := range []string{"[OK] Config file", "[OK] Vital ranges", "[OK] History"} {
		if !strings.Contains(out, want) {
			t.Errorf("report %q missing %q", out, want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "vitals version ") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestHistoryClearNeedsConfirmation(t *testing.T) {
	c := newTestContainer(t)
	ok, err := c.Evaluator.VitalsOk(context.Background(), domain.Readings{Temperature: 98.1, PulseRate: 70, Spo2: 98})
	if err != nil || !ok {
		t.Fatalf("VitalsOk() = %v, %v", ok, err)
	}

	cmd := NewHistoryCommand(c)
	cmd.SetIn(strings.NewReader("n\n"))
	if _, err := execute(t, cmd, "clear"); err != nil {
		t.Fatalf("clear error = %v", err)
	}
	if recs, _ := c.HistoryStore.Records(0, ""); len(recs) != 1 {
		t.Fatalf("declined clear removed records: %d left", len(recs))
	}

	cmd = NewHistoryCommand(c)
	cmd.SetIn(strings.NewReader("y\n"))
	if _, err := execute(t, cmd, "clear"); err != nil {
		t.Fatalf("clear error = %v", err)
	}
	if recs, _ := c.HistoryStore.Records(0, ""); len(recs) != 0 {
		t.Errorf("confirmed clear left %d records", len(recs))
	}
}

func TestMutationsKeepEnvLanguageOutOfFile(t *testing.T) {
	c := newTestContainer(t)
	t.Setenv("VITALS_LANGUAGE", "de")

	if _, err := execute(t, NewConfigCommand(c), "set-policy", "short_circuit"); err != nil {
		t.Fatalf("set-policy error = %v", err)
	}
	if _, err := execute(t, NewHistoryCommand(c), "retain", "--days", "10"); err != nil {
		t.Fatalf("retain error = %v", err)
	}

	raw, err := os.ReadFile(c.ConfigLoader.Path())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "language: de") {
		t.Errorf("env language written to file:\n%s", raw)
	}

	out, err := execute(t, NewConfigCommand(c), "get", "--key", "preferences.language")
	if err != nil {
		t.Fatalf("get error = %v", err)
	}
	if strings.TrimSpace(out) != "en" {
		t.Errorf("config get language = %q, want en", out)
	}
}
