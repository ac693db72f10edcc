package vitals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/vitals-go/internal/domain"
	"github.com/doeshing/vitals-go/internal/ports"
)

// Evaluator checks a full set of readings in the fixed order
// temperature, pulse rate, spo2.
type Evaluator struct {
	Classifier *Classifier
	Presenter  *Presenter
	Language   ports.LanguageProvider
	Policy     domain.EvalPolicy
	History    ports.HistoryRepository
	Metrics    ports.MetricsRecorder
	Logger     ports.Logger
	Now        func() time.Time
}

// VitalsOk reports whether every reading is within its range.
func (e *Evaluator) VitalsOk(ctx context.Context, readings domain.Readings) (bool, error) {
	eval, err := e.EvaluateAll(ctx, readings)
	return eval.AllOk, err
}

// EvaluateAll classifies each reading and emits one message per non-ok
// vital. With PolicyShortCircuit evaluation stops at the first non-ok vital.
// History and metrics failures are logged and do not fail the evaluation.
func (e *Evaluator) EvaluateAll(ctx context.Context, readings domain.Readings) (domain.Evaluation, error) {
	if e.Classifier == nil || e.Presenter == nil || e.Logger == nil {
		return domain.Evaluation{}, errors.New("vitals.Evaluator dependencies not satisfied")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return domain.Evaluation{}, err
	}

	policy, err := domain.ParseEvalPolicy(string(e.Policy))
	if err != nil {
		return domain.Evaluation{}, err
	}
	lang := domain.LanguageEnglish
	if e.Language != nil {
		lang = e.Language.Language()
	}

	eval := domain.Evaluation{
		Readings: readings,
		Language: lang,
		Policy:   policy,
		AllOk:    true,
	}

	for _, kind := range domain.EvaluationOrder {
		value := readings.Value(kind)
		result := domain.VitalResult{
			Kind:   kind,
			Value:  value,
			Status: e.Classifier.Classify(kind, value),
		}
		e.Logger.Debug("classified vital", map[string]interface{}{
			"vital":  kind,
			"value":  value,
			"status": result.Status,
		})
		if e.Metrics != nil {
			e.Metrics.ObserveClassification(kind, result.Status)
		}

		if err := e.Presenter.Present(lang, e.Classifier.Range(kind), &result); err != nil {
			return eval, fmt.Errorf("emit %s message: %w", kind, err)
		}
		eval.Results = append(eval.Results, result)

		if result.Status != domain.StatusOk {
			eval.AllOk = false
			if policy == domain.PolicyShortCircuit {
				break
			}
		}
	}

	if e.Metrics != nil {
		e.Metrics.ObserveEvaluation(eval.AllOk)
	}
	e.record(eval)
	return eval, nil
}

func (e *Evaluator) record(eval domain.Evaluation) {
	if e.History == nil {
		return
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	rec := domain.EvaluationRecord{
		ID:        uuid.NewString(),
		Timestamp: now(),
		Readings:  eval.Readings,
		Statuses:  make(map[domain.VitalKind]domain.VitalStatus, len(eval.Results)),
		Language:  eval.Language,
		Policy:    eval.Policy,
		AllOk:     eval.AllOk,
	}
	for _, r := range eval.Results {
		rec.Statuses[r.Kind] = r.Status
	}
	if err := e.History.Save(rec); err != nil {
		e.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}
