package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// jsonFloat encodes NaN and ±Inf as the strings "NaN", "+Inf" and "-Inf",
// which encoding/json rejects as numbers.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(data, `"`))
	if raw == "null" {
		*f = jsonFloat(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

type readingsJSON struct {
	Temperature jsonFloat `json:"temperature"`
	PulseRate   jsonFloat `json:"pulse_rate"`
	Spo2        jsonFloat `json:"spo2"`
}

// MarshalJSON keeps non-finite readings encodable.
func (r Readings) MarshalJSON() ([]byte, error) {
	return json.Marshal(readingsJSON{
		Temperature: jsonFloat(r.Temperature),
		PulseRate:   jsonFloat(r.PulseRate),
		Spo2:        jsonFloat(r.Spo2),
	})
}

func (r *Readings) UnmarshalJSON(data []byte) error {
	var aux readingsJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Readings{
		Temperature: float64(aux.Temperature),
		PulseRate:   float64(aux.PulseRate),
		Spo2:        float64(aux.Spo2),
	}
	return nil
}

type vitalResultJSON struct {
	Kind       VitalKind   `json:"kind"`
	Value      jsonFloat   `json:"value"`
	Status     VitalStatus `json:"status"`
	MessageKey string      `json:"message_key,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// MarshalJSON keeps non-finite values encodable.
func (v VitalResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(vitalResultJSON{
		Kind:       v.Kind,
		Value:      jsonFloat(v.Value),
		Status:     v.Status,
		MessageKey: v.MessageKey,
		Message:    v.Message,
	})
}

func (v *VitalResult) UnmarshalJSON(data []byte) error {
	var aux vitalResultJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*v = VitalResult{
		Kind:       aux.Kind,
		Value:      float64(aux.Value),
		Status:     aux.Status,
		MessageKey: aux.MessageKey,
		Message:    aux.Message,
	}
	return nil
}
