package vitals

import (
	"math"
	"testing"

	"github.com/doeshing/vitals-go/internal/domain"
)

func TestClassifyWithinLimitsIsOk(t *testing.T) {
	c := MustClassifier(domain.DefaultVitalTable())
	for kind, r := range domain.DefaultVitalTable() {
		for v := r.LowerLimit; v <= r.UpperLimit; v += 0.005 {
			if got := c.Classify(kind, v); got != domain.StatusOk {
				t.Fatalf("Classify(%s, %v) = %s, want ok", kind, v, got)
			}
		}
		if got := c.Classify(kind, r.UpperLimit); got != domain.StatusOk {
			t.Errorf("Classify(%s, upper) = %s, want ok", kind, got)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		kind  domain.VitalKind
		value float64
		want  domain.VitalStatus
	}{
		{"temperature below lower limit", domain.VitalTemperature, 94, domain.StatusCritical},
		{"temperature above upper limit", domain.VitalTemperature, 103, domain.StatusCritical},
		{"temperature at lower limit", domain.VitalTemperature, 95, domain.StatusOk},
		// 95.015, 100.485, 99.4 and 75 are sometimes listed as warnings. Ok is
		// inclusive and the band lies inside the limits, so they are Ok or
		// Critical here; keep these expectations.
		{"temperature just above lower limit", domain.VitalTemperature, 95.015, domain.StatusOk},
		{"temperature just below upper limit", domain.VitalTemperature, 100.485, domain.StatusOk},
		{"temperature normal", domain.VitalTemperature, 98.1, domain.StatusOk},
		{"pulse rate below lower limit", domain.VitalPulseRate, 59, domain.StatusCritical},
		{"pulse rate above upper limit", domain.VitalPulseRate, 101, domain.StatusCritical},
		{"pulse rate near upper limit", domain.VitalPulseRate, 99.4, domain.StatusOk},
		{"pulse rate normal", domain.VitalPulseRate, 70, domain.StatusOk},
		{"spo2 below lower limit", domain.VitalSpo2, 89, domain.StatusCritical},
		{"spo2 far below lower limit", domain.VitalSpo2, 75, domain.StatusCritical},
		{"spo2 at lower limit", domain.VitalSpo2, 90, domain.StatusOk},
		{"spo2 at upper limit", domain.VitalSpo2, 100, domain.StatusOk},
		{"nan reading", domain.VitalSpo2, math.NaN(), domain.StatusCritical},
		{"infinite reading", domain.VitalTemperature, math.Inf(1), domain.StatusCritical},
	}

	c := MustClassifier(domain.DefaultVitalTable())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.kind, tt.value); got != tt.want {
				t.Errorf("Classify(%s, %v) = %s, want %s", tt.kind, tt.value, got, tt.want)
			}
		})
	}
}

// The symmetric band always sits inside the limits when the tolerance is in
// [0,100], so an out-of-range reading never lands in it.
func TestClassifyOutOfRangeIsCriticalForAnyValidTolerance(t *testing.T) {
	for tol := 0.0; tol <= 100; tol += 0.5 {
		table := domain.DefaultVitalTable()
		r := table[domain.VitalPulseRate]
		r.TolerancePercent = tol
		table[domain.VitalPulseRate] = r
		c := MustClassifier(table)

		for _, v := range []float64{r.LowerLimit - 0.001, r.LowerLimit - 10, r.UpperLimit + 0.001, r.UpperLimit + 10} {
			if got := c.Classify(domain.VitalPulseRate, v); got != domain.StatusCritical {
				t.Fatalf("tolerance %v: Classify(%v) = %s, want critical", tol, v, got)
			}
		}
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	c := MustClassifier(domain.DefaultVitalTable())
	for _, v := range []float64{94, 98.1, 103} {
		first := c.Classify(domain.VitalTemperature, v)
		second := c.Classify(domain.VitalTemperature, v)
		if first != second {
			t.Errorf("Classify(%v) not stable: %s then %s", v, first, second)
		}
	}
}

func TestNewClassifierRejectsIncompleteTable(t *testing.T) {
	table := domain.DefaultVitalTable()
	delete(table, domain.VitalPulseRate)
	if _, err := NewClassifier(table); err == nil {
		t.Fatal("expected error for missing pulse rate range")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("MustClassifier did not panic")
		}
	}()
	MustClassifier(table)
}

func TestNewClassifierCopiesTable(t *testing.T) {
	table := domain.DefaultVitalTable()
	c := MustClassifier(table)

	r := table[domain.VitalTemperature]
	r.UpperLimit = 110
	table[domain.VitalTemperature] = r

	if got := c.Classify(domain.VitalTemperature, 105); got != domain.StatusCritical {
		t.Errorf("classifier observed caller mutation: got %s", got)
	}
}

func TestRangePanicsForUnknownVital(t *testing.T) {
	c := MustClassifier(domain.DefaultVitalTable())
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown vital")
		}
	}()
	c.Classify(domain.VitalKind("blood_pressure"), 120)
}
