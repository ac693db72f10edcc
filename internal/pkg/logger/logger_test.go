package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestStdLoggerGatesDebugOnVerbose(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	New(&buf, true).Debug("shown", map[string]interface{}{"vital": "spo2"})
	if !strings.Contains(buf.String(), "[DEBUG] shown vital=spo2") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestStdLoggerSortsFieldsAndPrintsError(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Error("save failed", errors.New("disk full"), map[string]interface{}{"b": 2, "a": 1})

	out := buf.String()
	if !strings.Contains(out, `[ERROR] save failed error="disk full" a=1 b=2`) {
		t.Fatalf("unexpected output %q", out)
	}
}
