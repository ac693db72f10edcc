// Package vitals classifies vital readings against configured ranges and
// reports localized status messages for the ones that are out of range.
package vitals

import (
	configapp "github.com/doeshing/vitals-go/internal/application/config"
	"github.com/doeshing/vitals-go/internal/domain"
)

// Classifier maps a single reading to a VitalStatus. It has no side effects.
type Classifier struct {
	table domain.VitalTable
}

// NewClassifier validates table and returns a classifier bound to a copy of it.
func NewClassifier(table domain.VitalTable) (*Classifier, error) {
	if err := configapp.ValidateTable(table); err != nil {
		return nil, err
	}
	owned := make(domain.VitalTable, len(table))
	for kind, r := range table {
		owned[kind] = r
	}
	return &Classifier{table: owned}, nil
}

// MustClassifier is NewClassifier for startup code; it panics on an invalid table.
func MustClassifier(table domain.VitalTable) *Classifier {
	c, err := NewClassifier(table)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns Ok inside the inclusive limits. Outside them the reading is
// a Warning when it falls inside the symmetric tolerance band and Critical
// otherwise.
func (c *Classifier) Classify(kind domain.VitalKind, value float64) domain.VitalStatus {
	r := c.Range(kind)
	if r.Contains(value) {
		return domain.StatusOk
	}
	lower, upper := r.Thresholds()
	if value >= lower && value <= upper {
		return domain.StatusWarning
	}
	return domain.StatusCritical
}

// Range returns the range for kind. A missing kind is a programming error.
func (c *Classifier) Range(kind domain.VitalKind) domain.VitalRange {
	r, err := c.table.Range(kind)
	if err != nil {
		panic(err)
	}
	return r
}
