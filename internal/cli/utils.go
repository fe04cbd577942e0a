// Package cli provides CLI output helpers for Ruigo.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyperjump/ruigo/internal/models"
)

// OutputFormat is the format for similarity result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
	// OutputCompact is one word per line, score first.
	OutputCompact OutputFormat = "compact"
)

// ParseOutputFormat validates a format flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case "", OutputText:
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	case OutputCompact:
		return OutputCompact, nil
	}
	return "", fmt.Errorf("unknown output format %q (text, json, compact)", s)
}

// WriteSimilarityResults writes a similarity response to w in the given format.
func WriteSimilarityResults(w io.Writer, response *models.SimilarityResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		for _, result := range response.Results {
			fmt.Fprintf(w, "%.4f\t%s\n", result.Score, result.Word)
		}
		return nil
	default:
		writeSimilarityResultsText(w, response)
		return nil
	}
}

func writeSimilarityResultsText(w io.Writer, response *models.SimilarityResponse) {
	suffix := ""
	if response.Cached {
		suffix = ", cached"
	}
	if response.OOV {
		suffix += ", out of vocabulary"
	}
	fmt.Fprintf(w, "\n%d words similar to %q (%dms%s)\n\n",
		response.Total, response.Query, response.QueryTime, suffix)
	if len(response.Results) == 0 {
		fmt.Fprintln(w, "  (no results)")
		return
	}
	for i, result := range response.Results {
		fmt.Fprintf(w, "%3d. %-24s %.4f\n", i+1, result.Word, result.Score)
	}
	fmt.Fprintln(w)
}

// WriteWord writes a single stored word record to w.
func WriteWord(w io.Writer, word *models.Word, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(word)
	}
	pos := strings.Join(word.PartOfSpeech(), ",")
	if pos == "" {
		pos = "unspecified"
	}
	fmt.Fprintf(w, "word: %s\npos: %s\ndimensions: %d\n", word.Word, pos, len(word.Embedding))
	return nil
}

// PrintSimilarityResults prints results to stdout in text format.
func PrintSimilarityResults(response *models.SimilarityResponse) {
	_ = WriteSimilarityResults(os.Stdout, response, OutputText)
}

// Truncate truncates s to maxLen and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
