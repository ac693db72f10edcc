package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/vitals-go/internal/domain"
	"github.com/doeshing/vitals-go/internal/ports"
)

// IsTerminal reports whether out is an interactive terminal.
func IsTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RenderEvaluation prints the summary after the per-vital messages have been
// emitted. Verbose adds one line per evaluated vital.
func RenderEvaluation(out io.Writer, eval domain.Evaluation, tr ports.Translator, verbose bool) {
	if verbose {
		for _, r := range eval.Results {
			fmt.Fprintf(out, "%-12s %8.3f  %s\n", r.Kind, r.Value, strings.ToUpper(string(r.Status)))
		}
		if skipped := len(domain.EvaluationOrder) - len(eval.Results); skipped > 0 {
			fmt.Fprintf(out, "(%d vital(s) not evaluated, policy %s)\n", skipped, eval.Policy)
		}
	}
	if eval.AllOk {
		fmt.Fprintln(out, tr.Translate(eval.Language, domain.MsgAllVitalsOk))
	}
}

// RenderEvaluationJSON prints eval as indented JSON.
func RenderEvaluationJSON(out io.Writer, eval domain.Evaluation) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(eval)
}
