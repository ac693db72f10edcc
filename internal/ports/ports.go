// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The vitals classifier and evaluator in the application layer depend only on
// these interfaces. Concrete adapters (YAML config, SQLite history, Prometheus
// metrics, terminal output) live in the infrastructure layer.
package ports

import (
	"context"

	"github.com/doeshing/vitals-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.vitals/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Translator resolves a message key to localized text.
// Implementations never fail; unknown entries fall back to English.
type Translator interface {
	Translate(lang domain.Language, key string) string
}

// MessageCatalog is a Translator that can report its coverage.
type MessageCatalog interface {
	Translator
	Languages() []domain.Language
	Keys() []string
	Missing(lang domain.Language) []string
}

// LanguageProvider exposes the currently selected message language.
type LanguageProvider interface {
	Language() domain.Language
}

// MessageSink receives localized status messages.
type MessageSink interface {
	Emit(result domain.VitalResult) error
}

// HistoryRepository persists evaluation outcomes.
type HistoryRepository interface {
	Save(record domain.EvaluationRecord) error
	Records(limit int, status domain.VitalStatus) ([]domain.EvaluationRecord, error)
	Clear() error
	ExportJSON(dest string) error
	PruneOlderThan(days int) error
	Path() string
}

// MetricsRecorder counts classifications and evaluations.
type MetricsRecorder interface {
	ObserveClassification(kind domain.VitalKind, status domain.VitalStatus)
	ObserveEvaluation(allOk bool)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
