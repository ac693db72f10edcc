package vitals

import (
	"github.com/doeshing/vitals-go/internal/domain"
	"github.com/doeshing/vitals-go/internal/ports"
)

// Presenter turns a classified result into a localized message and hands it
// to the sink. Ok results produce no message.
type Presenter struct {
	Translator ports.Translator
	Sink       ports.MessageSink
}

// Present fills MessageKey and Message on result and emits it when not ok.
func (p *Presenter) Present(lang domain.Language, r domain.VitalRange, result *domain.VitalResult) error {
	key := r.MessageKey(result.Status)
	if key == "" {
		return nil
	}
	result.MessageKey = key
	result.Message = key
	if p.Translator != nil {
		result.Message = p.Translator.Translate(lang, key)
	}
	if p.Sink == nil {
		return nil
	}
	return p.Sink.Emit(*result)
}
