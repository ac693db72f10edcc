package doctor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/doeshing/vitals-go/internal/domain"
	"github.com/doeshing/vitals-go/internal/infrastructure/i18n"
)

func TestRunReportsHealthyDefaults(t *testing.T) {
	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: domain.Config{
			ConfigFormatVersion: "1",
			Preferences:         domain.Preferences{Language: domain.LanguageGerman},
			History:             domain.HistorySettings{Enabled: true},
		}},
		Catalog:      i18n.NewCatalog(nil),
		HistoryStore: &stubHistory{path: "/tmp/history.db"},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Failed() {
		t.Fatalf("unexpected failure: %+v", report.Checks)
	}
	for _, c := range report.Checks {
		if c.Status != domain.HealthOK {
			t.Errorf("check %s = %s (%s), want ok", c.Name, c.Status, c.Details)
		}
	}
}

func TestRunFlagsInvalidRangeAndUntranslatedLanguage(t *testing.T) {
	cfg := domain.Config{Preferences: domain.Preferences{Language: "fr"}}
	if err := cfg.SetVitalRange(domain.VitalSpo2, domain.VitalRange{LowerLimit: 90, UpperLimit: 100, TolerancePercent: 1.5}); err != nil {
		t.Fatal(err)
	}

	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: cfg},
		Catalog:        i18n.NewCatalog(nil),
	}
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.Failed() {
		t.Fatal("expected a failed check for missing message keys")
	}

	byName := map[string]domain.HealthCheck{}
	for _, c := range report.Checks {
		byName[c.Name] = c
	}
	if got := byName["Vital ranges"]; got.Status != domain.HealthError {
		t.Errorf("vital ranges = %+v", got)
	}
	if got := byName["Message catalog"]; got.Status != domain.HealthWarn || !strings.Contains(got.Details, "fall back to english") {
		t.Errorf("message catalog = %+v", got)
	}
	if got := byName["History"]; got.Status != domain.HealthWarn {
		t.Errorf("history = %+v", got)
	}
}

func TestRunStopsOnConfigError(t *testing.T) {
	svc := &Service{ConfigProvider: stubConfigProvider{err: errors.New("permission denied")}}
	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(report.Checks) != 1 || report.Checks[0].Status != domain.HealthError {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestRunReportsHistoryFailure(t *testing.T) {
	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: domain.Config{History: domain.HistorySettings{Enabled: true}}},
		Catalog:        i18n.NewCatalog(nil),
		HistoryStore:   &stubHistory{err: errors.New("database is locked")},
	}
	report, _ := svc.Run(context.Background())
	if !report.Failed() {
		t.Fatal("expected history failure to fail the report")
	}
}

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type stubHistory struct {
	path string
	err  error
}

func (s *stubHistory) Save(domain.EvaluationRecord) error { return s.err }
func (s *stubHistory) Records(int, domain.VitalStatus) ([]domain.EvaluationRecord, error) {
	return nil, s.err
}
func (s *stubHistory) Clear() error             { return s.err }
func (s *stubHistory) ExportJSON(string) error  { return s.err }
func (s *stubHistory) PruneOlderThan(int) error { return s.err }
func (s *stubHistory) Path() string             { return s.path }
