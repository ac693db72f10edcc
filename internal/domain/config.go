package domain

// Config mirrors ~/.vitals/config.yaml.
type Config struct {
	ConfigFormatVersion string                         `yaml:"config_format_version"`
	Preferences         Preferences                    `yaml:"preferences"`
	Evaluation          EvaluationSettings             `yaml:"evaluation"`
	Vitals              map[VitalKind]VitalRange       `yaml:"vitals"`
	Catalog             map[Language]map[string]string `yaml:"catalog,omitempty"`
	History             HistorySettings                `yaml:"history"`
	Metrics             MetricsSettings                `yaml:"metrics"`
}

// Preferences captures user level toggles.
type Preferences struct {
	Language Language `yaml:"language"`
}

// EvaluationSettings controls EvaluateAll.
type EvaluationSettings struct {
	Policy EvalPolicy `yaml:"policy"`
}

// HistorySettings controls evaluation history persistence.
type HistorySettings struct {
	Enabled       bool   `yaml:"enabled"`
	Path          string `yaml:"path,omitempty"`
	RetentionDays int    `yaml:"retention_days"`
}

// MetricsSettings controls the Prometheus textfile export.
type MetricsSettings struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// VitalTable returns the configured ranges layered over the defaults.
func (c Config) VitalTable() VitalTable {
	table := DefaultVitalTable()
	for kind, r := range c.Vitals {
		table[kind] = r
	}
	return table
}
