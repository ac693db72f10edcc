// Package i18n holds the message catalog and the active-language selector.
package i18n

import (
	"maps"
	"slices"

	"github.com/doeshing/vitals-go/internal/domain"
	"github.com/doeshing/vitals-go/internal/ports"
)

// Catalog maps a language tag and message key to display text.
// It is built once at startup and read-only afterwards.
type Catalog struct {
	entries map[domain.Language]map[string]string
}

// NewCatalog returns the built-in English and German catalog with extra
// layered on top. Entries in extra replace built-in ones.
func NewCatalog(extra map[domain.Language]map[string]string) *Catalog {
	entries := defaultEntries()
	for lang, msgs := range extra {
		if entries[lang] == nil {
			entries[lang] = make(map[string]string, len(msgs))
		}
		for key, text := range msgs {
			entries[lang][key] = text
		}
	}
	return &Catalog{entries: entries}
}

// Translate returns the entry for (lang, key), else the English entry,
// else key unchanged.
func (c *Catalog) Translate(lang domain.Language, key string) string {
	if text, ok := c.entries[lang][key]; ok {
		return text
	}
	if text, ok := c.entries[domain.LanguageEnglish][key]; ok {
		return text
	}
	return key
}

// Languages lists catalog language tags in sorted order.
func (c *Catalog) Languages() []domain.Language {
	return slices.Sorted(maps.Keys(c.entries))
}

// Keys lists the English message keys in sorted order.
func (c *Catalog) Keys() []string {
	return slices.Sorted(maps.Keys(c.entries[domain.LanguageEnglish]))
}

// Missing returns the English keys lang has no entry for.
func (c *Catalog) Missing(lang domain.Language) []string {
	var missing []string
	for _, key := range c.Keys() {
		if _, ok := c.entries[lang][key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func defaultEntries() map[domain.Language]map[string]string {
	return map[domain.Language]map[string]string{
		domain.LanguageEnglish: {
			domain.MsgTemperatureCritical: "Temperature critical!",
			domain.MsgPulseRateCritical:   "Pulse Rate is out of range!",
			domain.MsgSpo2Critical:        "Oxygen Saturation out of range!",
			domain.MsgTemperatureWarning:  "Warning: Approaching hypothermia or hyperthermia!",
			domain.MsgPulseRateWarning:    "Warning: Approaching abnormal pulse rate!",
			domain.MsgSpo2Warning:         "Warning: Approaching low oxygen saturation!",
			domain.MsgAllVitalsOk:         "All tests passed.",
		},
		domain.LanguageGerman: {
			domain.MsgTemperatureCritical: "Temperatur kritisch!",
			domain.MsgPulseRateCritical:   "Pulsrate ist außerhalb des Bereichs!",
			domain.MsgSpo2Critical:        "Sauerstoffsättigung außerhalb des Bereichs!",
			domain.MsgTemperatureWarning:  "Warnung: Annäherung an Unterkühlung oder Hyperthermie!",
			domain.MsgPulseRateWarning:    "Warnung: Annäherung an abnormale Pulsrate!",
			domain.MsgSpo2Warning:         "Warnung: Annäherung an niedrige Sauerstoffsättigung!",
			domain.MsgAllVitalsOk:         "Alle Tests bestanden.",
		},
	}
}

var _ ports.MessageCatalog = (*Catalog)(nil)
