package domain

import "fmt"

// SetLanguage updates the preferred message language.
func (c *Config) SetLanguage(lang Language) error {
	if lang == "" {
		return fmt.Errorf("language cannot be empty")
	}
	c.Preferences.Language = lang
	return nil
}

// SetPolicy updates the evaluation policy.
func (c *Config) SetPolicy(name string) error {
	policy, err := ParseEvalPolicy(name)
	if err != nil {
		return err
	}
	c.Evaluation.Policy = policy
	return nil
}

// SetVitalRange overrides the range for kind.
// Returns an error if the limits are inverted or the tolerance is out of bounds.
func (c *Config) SetVitalRange(kind VitalKind, r VitalRange) error {
	if _, err := ParseVitalKind(string(kind)); err != nil {
		return err
	}
	if r.LowerLimit >= r.UpperLimit {
		return fmt.Errorf("%w: %s lower limit %g must be below upper limit %g", ErrInvalidRange, kind, r.LowerLimit, r.UpperLimit)
	}
	if r.TolerancePercent < 0 || r.TolerancePercent > 100 {
		return fmt.Errorf("%w: %s tolerance %g must be within [0,100]", ErrInvalidRange, kind, r.TolerancePercent)
	}
	if c.Vitals == nil {
		c.Vitals = make(map[VitalKind]VitalRange)
	}
	c.Vitals[kind] = r
	return nil
}

// SetTranslation adds or replaces a catalog entry for lang.
func (c *Config) SetTranslation(lang Language, key, text string) error {
	if lang == "" || key == "" {
		return fmt.Errorf("language and key are required")
	}
	if c.Catalog == nil {
		c.Catalog = make(map[Language]map[string]string)
	}
	if c.Catalog[lang] == nil {
		c.Catalog[lang] = make(map[string]string)
	}
	c.Catalog[lang][key] = text
	return nil
}

// SetHistoryRetention updates the retention window in days.
func (c *Config) SetHistoryRetention(days int) error {
	if days < 0 {
		return fmt.Errorf("retention days must be >= 0")
	}
	c.History.RetentionDays = days
	return nil
}
