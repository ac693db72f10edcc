package helpers

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/doeshing/vitals-go/internal/domain"
)

// VitalStatistic counts statuses recorded for one vital
type VitalStatistic struct {
	Kind     domain.VitalKind `json:"vital"`
	Ok       int              `json:"ok"`
	Warning  int              `json:"warning"`
	Critical int              `json:"critical"`
	Skipped  int              `json:"skipped"`
}

// CalculateVitalStatistics tallies statuses per vital in evaluation order.
// A vital missing from a record (short-circuited) counts as skipped.
func CalculateVitalStatistics(records []domain.EvaluationRecord) []VitalStatistic {
	stats := make([]VitalStatistic, len(domain.EvaluationOrder))
	for i, kind := range domain.EvaluationOrder {
		stats[i].Kind = kind
		for _, rec := range records {
			switch rec.Statuses[kind] {
			case domain.StatusOk:
				stats[i].Ok++
			case domain.StatusWarning:
				stats[i].Warning++
			case domain.StatusCritical:
				stats[i].Critical++
			default:
				stats[i].Skipped++
			}
		}
	}
	return stats
}

// CalculateOkRate returns the share of all-ok evaluations as a percentage
func CalculateOkRate(records []domain.EvaluationRecord) float64 {
	if len(records) == 0 {
		return 0.0
	}
	ok := 0
	for _, rec := range records {
		if rec.AllOk {
			ok++
		}
	}
	return float64(ok) / float64(len(records)) * 100.0
}

// LanguageUsage counts evaluations per language, most used first
func LanguageUsage(records []domain.EvaluationRecord) []LanguageCount {
	counts := make(map[domain.Language]int)
	for _, rec := range records {
		counts[rec.Language]++
	}
	usage := make([]LanguageCount, 0, len(counts))
	for lang, n := range counts {
		usage = append(usage, LanguageCount{Language: lang, Count: n})
	}
	slices.SortFunc(usage, func(a, b LanguageCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(string(a.Language), string(b.Language))
	})
	return usage
}

// LanguageCount pairs a language with its evaluation count
type LanguageCount struct {
	Language domain.Language `json:"language"`
	Count    int             `json:"count"`
}
