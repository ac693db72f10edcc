package cli

import (
	"fmt"
	"io"

	"github.com/doeshing/vitals-go/internal/domain"
	"github.com/doeshing/vitals-go/internal/ports"
)

// writerSink prints one localized status message per line.
type writerSink struct {
	out     io.Writer
	markers bool
}

// NewWriterSink builds a MessageSink for stdout/stderr. With markers each line
// is prefixed by the status it reports.
func NewWriterSink(out io.Writer, markers bool) ports.MessageSink {
	return &writerSink{out: out, markers: markers}
}

func (s *writerSink) Emit(result domain.VitalResult) error {
	if result.Message == "" {
		return nil
	}
	if s.markers {
		_, err := fmt.Fprintf(s.out, "%s %s\n", marker(result.Status), result.Message)
		return err
	}
	_, err := fmt.Fprintln(s.out, result.Message)
	return err
}

func marker(status domain.VitalStatus) string {
	switch status {
	case domain.StatusCritical:
		return "[!!]"
	case domain.StatusWarning:
		return "[! ]"
	default:
		return "[ok]"
	}
}
