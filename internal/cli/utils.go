// Package cli renders prediction and recommendation states for the terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/paperscope/internal/controller"
	"github.com/hyperjump/paperscope/internal/format"
	"github.com/hyperjump/paperscope/internal/models"
	"github.com/hyperjump/paperscope/pkg/utils"
)

// OutputFormat is the format for result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact is one tab-separated row per line, for piping into other tools.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// DefaultBarWidth is the confidence bar width used by text output.
const DefaultBarWidth = 24

// maxTitleLen bounds titles in text output.
const maxTitleLen = 120

// ParseOutputFormat validates s. Empty selects OutputText.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return OutputText, nil
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (use text, compact or json)", s)
	}
}

// Writer renders controller states in one output format.
type Writer struct {
	Format   OutputFormat
	BarWidth int
}

type failureJSON struct {
	Error string `json:"error"`
}

// WritePredictions writes a prediction state to w.
func (wr Writer) WritePredictions(w io.Writer, state controller.State[models.Prediction]) error {
	if state.Phase == controller.Failure {
		return wr.writeFailure(w, state.Message)
	}
	rows := format.PredictionRows(state.Results)
	switch wr.Format {
	case OutputJSON:
		return writeJSON(w, rows)
	case OutputCompact:
		for _, r := range rows {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%d\n", r.Label, r.Score, r.Percent); err != nil {
				return err
			}
		}
		return nil
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, format.EmptyPredictions)
		return err
	}
	width := wr.BarWidth
	if width <= 0 {
		width = DefaultBarWidth
	}
	labelWidth := 0
	for _, r := range rows {
		if n := len([]rune(r.Label)); n > labelWidth {
			labelWidth = n
		}
	}
	fmt.Fprintf(w, "\nPredicted subjects (%d)\n\n", len(rows))
	for _, r := range rows {
		pad := strings.Repeat(" ", labelWidth-len([]rune(r.Label)))
		fmt.Fprintf(w, "%s%s  %s · %3d%%  %s\n", r.Label, pad, r.Score, r.Percent, format.Bar(r.Percent, width))
	}
	fmt.Fprintln(w)
	return nil
}

// WriteRecommendations writes a recommendation state to w.
func (wr Writer) WriteRecommendations(w io.Writer, state controller.State[models.Recommendation]) error {
	if state.Phase == controller.Failure {
		return wr.writeFailure(w, state.Message)
	}
	rows := format.RecommendationRows(state.Results)
	switch wr.Format {
	case OutputJSON:
		return writeJSON(w, rows)
	case OutputCompact:
		for _, r := range rows {
			if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", r.Rank, r.Score, r.Title); err != nil {
				return err
			}
		}
		return nil
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, format.EmptyRecommendations)
		return err
	}
	fmt.Fprintf(w, "\nRecommended papers (%d)\n", len(rows))
	for _, r := range rows {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "%d. %s\n", r.Rank, utils.Truncate(r.Title, maxTitleLen))
		fmt.Fprintf(w, "   Similarity: %s\n", r.Score)
	}
	fmt.Fprintln(w)
	return nil
}

// WriteHealth writes a backend health report to w.
func (wr Writer) WriteHealth(w io.Writer, h *models.Health) error {
	if wr.Format == OutputJSON {
		return writeJSON(w, h)
	}
	fmt.Fprintf(w, "Status:        %s\n", h.Status)
	if h.ModelDir != "" {
		fmt.Fprintf(w, "Model dir:     %s\n", h.ModelDir)
	}
	fmt.Fprintf(w, "Saved model:   %s\n", yesNo(h.SavedModelExists))
	fmt.Fprintf(w, "Embeddings:    %s\n", yesNo(h.EmbeddingsExists))
	fmt.Fprintf(w, "Sentences:     %s\n", yesNo(h.SentencesExists))
	fmt.Fprintf(w, "Label vocab:   %s\n", yesNo(h.LabelVocabExists))
	return nil
}

func (wr Writer) writeFailure(w io.Writer, msg string) error {
	if wr.Format == OutputJSON {
		return writeJSON(w, failureJSON{Error: msg})
	}
	_, err := fmt.Fprintf(w, "Error: %s\n", msg)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
