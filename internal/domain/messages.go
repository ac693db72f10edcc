package domain

// Message keys. The English text doubles as the key.
const (
	MsgTemperatureCritical = "Temperature critical!"
	MsgPulseRateCritical   = "Pulse Rate is out of range!"
	MsgSpo2Critical        = "Oxygen Saturation out of range!"
	MsgTemperatureWarning  = "Warning: Approaching hypothermia or hyperthermia!"
	MsgPulseRateWarning    = "Warning: Approaching abnormal pulse rate!"
	MsgSpo2Warning         = "Warning: Approaching low oxygen saturation!"
	MsgAllVitalsOk         = "All tests passed."
)

// DefaultVitalTable returns the built-in range table.
func DefaultVitalTable() VitalTable {
	return VitalTable{
		VitalTemperature: {
			LowerLimit:         95,
			UpperLimit:         102,
			TolerancePercent:   1.5,
			CriticalMessageKey: MsgTemperatureCritical,
			WarningMessageKey:  MsgTemperatureWarning,
		},
		VitalPulseRate: {
			LowerLimit:         60,
			UpperLimit:         100,
			TolerancePercent:   1.5,
			CriticalMessageKey: MsgPulseRateCritical,
			WarningMessageKey:  MsgPulseRateWarning,
		},
		VitalSpo2: {
			LowerLimit:         90,
			UpperLimit:         100,
			TolerancePercent:   1.5,
			CriticalMessageKey: MsgSpo2Critical,
			WarningMessageKey:  MsgSpo2Warning,
		},
	}
}
