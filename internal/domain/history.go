package domain

import "time"

// EvaluationRecord captures one persisted EvaluateAll outcome.
type EvaluationRecord struct {
	ID        string                    `json:"id"`
	Timestamp time.Time                 `json:"timestamp"`
	Readings  Readings                  `json:"readings"`
	Statuses  map[VitalKind]VitalStatus `json:"statuses"`
	Language  Language                  `json:"language"`
	Policy    EvalPolicy                `json:"policy"`
	AllOk     bool                      `json:"all_ok"`
}
