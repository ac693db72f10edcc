package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	configapp "github.com/doeshing/vitals-go/internal/application/config"
	"github.com/doeshing/vitals-go/internal/domain"
	"github.com/doeshing/vitals-go/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Catalog        ports.MessageCatalog
	HistoryStore   ports.HistoryRepository
}

// Run executes checks and returns a report. The error is non-nil only when
// the configuration itself cannot be loaded.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded format %s", cfg.ConfigFormatVersion)))

	if err := configapp.Validate(cfg); err != nil {
		checks = append(checks, fail("Vital ranges", err.Error()))
	} else {
		checks = append(checks, ok("Vital ranges", describeTable(cfg.VitalTable())))
	}

	checks = append(checks, s.catalogCheck(cfg.Preferences.Language))
	if cfg.History.Enabled {
		checks = append(checks, s.historyCheck())
	} else {
		checks = append(checks, warn("History", "disabled in config"))
	}
	checks = append(checks, textfileCheck(cfg.Metrics.Textfile))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) catalogCheck(lang domain.Language) domain.HealthCheck {
	if s.Catalog == nil {
		return warn("Message catalog", "catalog not initialized")
	}
	if lang == domain.LanguageEnglish {
		return ok("Message catalog", "english")
	}
	missing := s.Catalog.Missing(lang)
	switch {
	case len(missing) == 0:
		return ok("Message catalog", fmt.Sprintf("%s complete", lang))
	case len(missing) == len(s.Catalog.Keys()):
		return warn("Message catalog", fmt.Sprintf("no %s entries, messages fall back to english", lang))
	default:
		return warn("Message catalog", fmt.Sprintf("%s missing %d entries: %s", lang, len(missing), strings.Join(missing, ", ")))
	}
}

func (s *Service) historyCheck() domain.HealthCheck {
	if s.HistoryStore == nil {
		return warn("History", "history store not initialized")
	}
	if _, err := s.HistoryStore.Records(1, ""); err != nil {
		return fail("History", err.Error())
	}
	return ok("History", s.HistoryStore.Path())
}

func textfileCheck(path string) domain.HealthCheck {
	if path == "" {
		return ok("Metrics textfile", "not configured")
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		return warn("Metrics textfile", err.Error())
	}
	if !info.IsDir() {
		return warn("Metrics textfile", fmt.Sprintf("%s is not a directory", filepath.Dir(path)))
	}
	return ok("Metrics textfile", path)
}

func describeTable(table domain.VitalTable) string {
	parts := make([]string, 0, len(domain.EvaluationOrder))
	for _, kind := range domain.EvaluationOrder {
		r := table[kind]
		parts = append(parts, fmt.Sprintf("%s [%g, %g] ±%g%%", kind, r.LowerLimit, r.UpperLimit, r.TolerancePercent))
	}
	return strings.Join(parts, "; ")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
