package i18n

import (
	"sync"

	"github.com/doeshing/vitals-go/internal/domain"
	"github.com/doeshing/vitals-go/internal/ports"
)

// Localizer carries the active language for one host. Unknown tags are
// accepted and fall back to English at lookup time.
type Localizer struct {
	catalog *Catalog

	mu   sync.RWMutex
	lang domain.Language
}

// NewLocalizer returns a Localizer starting in lang ("" means English).
func NewLocalizer(catalog *Catalog, lang domain.Language) *Localizer {
	if catalog == nil {
		catalog = NewCatalog(nil)
	}
	if lang == "" {
		lang = domain.LanguageEnglish
	}
	return &Localizer{catalog: catalog, lang: lang}
}

// SetLanguage switches the active language.
func (l *Localizer) SetLanguage(lang domain.Language) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lang = lang
}

// Language returns the active language.
func (l *Localizer) Language() domain.Language {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lang
}

// Text translates key in the active language.
func (l *Localizer) Text(key string) string {
	return l.catalog.Translate(l.Language(), key)
}

// Translate implements ports.Translator.
func (l *Localizer) Translate(lang domain.Language, key string) string {
	return l.catalog.Translate(lang, key)
}

// Catalog returns the backing catalog.
func (l *Localizer) Catalog() *Catalog {
	return l.catalog
}

var (
	_ ports.Translator       = (*Localizer)(nil)
	_ ports.LanguageProvider = (*Localizer)(nil)
)
