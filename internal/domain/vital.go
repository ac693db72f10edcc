package domain

import (
	"errors"
	"fmt"
)

// VitalKind identifies one of the measured vitals.
type VitalKind string

const (
	VitalTemperature VitalKind = "temperature"
	VitalPulseRate   VitalKind = "pulse_rate"
	VitalSpo2        VitalKind = "spo2"
)

// EvaluationOrder is the fixed order in which readings are checked.
var EvaluationOrder = []VitalKind{VitalTemperature, VitalPulseRate, VitalSpo2}

// ParseVitalKind maps a config or flag name to a VitalKind.
func ParseVitalKind(name string) (VitalKind, error) {
	switch VitalKind(name) {
	case VitalTemperature, VitalPulseRate, VitalSpo2:
		return VitalKind(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVital, name)
}

// VitalStatus is the classification outcome for a single reading.
type VitalStatus string

const (
	StatusOk       VitalStatus = "ok"
	StatusWarning  VitalStatus = "warning"
	StatusCritical VitalStatus = "critical"
)

// VitalRange holds the limits and message keys for one vital.
type VitalRange struct {
	LowerLimit         float64 `yaml:"lower_limit" validate:"ltfield=UpperLimit"`
	UpperLimit         float64 `yaml:"upper_limit"`
	TolerancePercent   float64 `yaml:"tolerance_percent" validate:"gte=0,lte=100"`
	CriticalMessageKey string  `yaml:"critical_message" validate:"required"`
	WarningMessageKey  string  `yaml:"warning_message" validate:"required"`
}

// Contains reports whether value lies inside the inclusive limits.
func (r VitalRange) Contains(value float64) bool {
	return value >= r.LowerLimit && value <= r.UpperLimit
}

// Thresholds returns the symmetric approaching-warning band.
func (r VitalRange) Thresholds() (lower, upper float64) {
	band := (r.UpperLimit - r.LowerLimit) * (1 - r.TolerancePercent/100)
	return r.LowerLimit + band, r.UpperLimit - band
}

// MessageKey returns the key reported for status, or "" for ok.
func (r VitalRange) MessageKey(status VitalStatus) string {
	switch status {
	case StatusWarning:
		return r.WarningMessageKey
	case StatusCritical:
		return r.CriticalMessageKey
	default:
		return ""
	}
}

// VitalTable is the validated range configuration for every VitalKind.
type VitalTable map[VitalKind]VitalRange

// Range returns the configured range for kind.
func (t VitalTable) Range(kind VitalKind) (VitalRange, error) {
	r, ok := t[kind]
	if !ok {
		return VitalRange{}, fmt.Errorf("%w: %s", ErrMissingRange, kind)
	}
	return r, nil
}

// Readings is a single set of measurements.
type Readings struct {
	Temperature float64 `json:"temperature"`
	PulseRate   float64 `json:"pulse_rate"`
	Spo2        float64 `json:"spo2"`
}

// Value returns the reading for kind.
func (r Readings) Value(kind VitalKind) float64 {
	switch kind {
	case VitalTemperature:
		return r.Temperature
	case VitalPulseRate:
		return r.PulseRate
	case VitalSpo2:
		return r.Spo2
	}
	panic(fmt.Sprintf("readings: unknown vital %q", kind))
}

// VitalResult is the outcome for one vital within an evaluation.
type VitalResult struct {
	Kind       VitalKind   `json:"kind"`
	Value      float64     `json:"value"`
	Status     VitalStatus `json:"status"`
	MessageKey string      `json:"message_key,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// Evaluation aggregates the results of one EvaluateAll call.
type Evaluation struct {
	Readings Readings      `json:"readings"`
	Language Language      `json:"language"`
	Policy   EvalPolicy    `json:"policy"`
	Results  []VitalResult `json:"results"`
	AllOk    bool          `json:"all_ok"`
}

// EvalPolicy controls whether evaluation stops at the first failing vital.
type EvalPolicy string

const (
	PolicyAll          EvalPolicy = "all"
	PolicyShortCircuit EvalPolicy = "short_circuit"
)

// ParseEvalPolicy accepts "" as PolicyAll.
func ParseEvalPolicy(name string) (EvalPolicy, error) {
	switch EvalPolicy(name) {
	case "", PolicyAll:
		return PolicyAll, nil
	case PolicyShortCircuit:
		return PolicyShortCircuit, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// Language is an open set of message catalog tags.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageGerman  Language = "de"
)

// Sentinel errors.
var (
	ErrMissingRange  = errors.New("missing vital range")
	ErrInvalidRange  = errors.New("invalid vital range")
	ErrUnknownVital  = errors.New("unknown vital")
	ErrUnknownPolicy = errors.New("unknown evaluation policy")
)
