package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/doeshing/vitals-go/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	for kind := range cfg.Vitals {
		if _, err := domain.ParseVitalKind(string(kind)); err != nil {
			return fmt.Errorf("vitals: %w", err)
		}
	}
	if err := ValidateTable(cfg.VitalTable()); err != nil {
		return err
	}
	if _, err := domain.ParseEvalPolicy(string(cfg.Evaluation.Policy)); err != nil {
		return fmt.Errorf("evaluation.policy: %w", err)
	}
	if err := validateCatalog(cfg.Catalog); err != nil {
		return err
	}
	if cfg.History.RetentionDays < 0 {
		return fmt.Errorf("history.retention_days must be >= 0")
	}
	return nil
}

// ValidateTable checks that every vital has a range and that each range
// satisfies lower < upper and 0 <= tolerance <= 100.
func ValidateTable(table domain.VitalTable) error {
	for _, kind := range domain.EvaluationOrder {
		r, err := table.Range(kind)
		if err != nil {
			return err
		}
		if err := validateRange(r); err != nil {
			return fmt.Errorf("vitals.%s: %w", kind, err)
		}
	}
	return nil
}

func validateRange(r domain.VitalRange) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	reasons := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		reasons = append(reasons, describe(fe, r))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidRange, strings.Join(reasons, "; "))
}

func describe(fe validator.FieldError, r domain.VitalRange) string {
	switch fe.Tag() {
	case "ltfield":
		return fmt.Sprintf("lower_limit %g must be below upper_limit %g", r.LowerLimit, r.UpperLimit)
	case "gte", "lte":
		return fmt.Sprintf("tolerance_percent %g must be within [0,100]", r.TolerancePercent)
	case "required":
		return fmt.Sprintf("%s must be set", strings.ToLower(fe.Field()))
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

func validateCatalog(catalog map[domain.Language]map[string]string) error {
	for lang, entries := range catalog {
		if strings.TrimSpace(string(lang)) == "" {
			return fmt.Errorf("catalog: language tag cannot be empty")
		}
		for key := range entries {
			if key == "" {
				return fmt.Errorf("catalog.%s: message key cannot be empty", lang)
			}
		}
	}
	return nil
}
