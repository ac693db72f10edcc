package app

import (
	"context"
	"fmt"
	"io"
	"os"

	configapp "github.com/doeshing/vitals-go/internal/application/config"
	"github.com/doeshing/vitals-go/internal/application/doctor"
	"github.com/doeshing/vitals-go/internal/application/vitals"
	"github.com/doeshing/vitals-go/internal/domain"
	"github.com/doeshing/vitals-go/internal/infrastructure/config"
	"github.com/doeshing/vitals-go/internal/infrastructure/history"
	"github.com/doeshing/vitals-go/internal/infrastructure/i18n"
	"github.com/doeshing/vitals-go/internal/infrastructure/metrics"
	"github.com/doeshing/vitals-go/internal/pkg/logger"
	"github.com/doeshing/vitals-go/internal/ports"
)

// Options controls container construction.
type Options struct {
	ConfigPath string
	Verbose    bool
	LogOutput  io.Writer
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	// Config is the effective configuration, environment overrides included.
	// Commands that save must reload through ConfigProvider instead.
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Localizer      *i18n.Localizer
	Evaluator      *vitals.Evaluator
	DoctorService  *doctor.Service
	HistoryStore   ports.HistoryRepository
	Metrics        *metrics.Metrics
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph. An invalid range table is
// reported here so it never reaches classification.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := configapp.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", cfgLoader.Path(), err)
	}
	cfg = config.ApplyEnv(cfg)

	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	log := logger.New(out, opts.Verbose)

	classifier, err := vitals.NewClassifier(cfg.VitalTable())
	if err != nil {
		return nil, err
	}
	catalog := i18n.NewCatalog(cfg.Catalog)
	localizer := i18n.NewLocalizer(catalog, cfg.Preferences.Language)
	historyStore := history.NewSQLiteStore(cfg.History.Path)
	recorder := metrics.NewMetrics()

	evaluator := &vitals.Evaluator{
		Classifier: classifier,
		Presenter:  &vitals.Presenter{Translator: localizer},
		Language:   localizer,
		Policy:     cfg.Evaluation.Policy,
		Metrics:    recorder,
		Logger:     log,
	}
	if cfg.History.Enabled {
		evaluator.History = historyStore
		if err := historyStore.PruneOlderThan(cfg.History.RetentionDays); err != nil {
			log.Warn("history pruning failed", map[string]interface{}{
				"path":  historyStore.Path(),
				"error": err.Error(),
			})
		}
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Catalog:        catalog,
		HistoryStore:   historyStore,
	}

	log.Debug("container ready", map[string]interface{}{
		"config":   cfgLoader.Path(),
		"language": localizer.Language(),
		"policy":   cfg.Evaluation.Policy,
		"history":  historyStore.Path(),
	})

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Localizer:      localizer,
		Evaluator:      evaluator,
		DoctorService:  doctorService,
		HistoryStore:   historyStore,
		Metrics:        recorder,
		Logger:         log,
	}, nil
}
