package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/ruigo/internal/models"
)

func sampleResponse() *models.SimilarityResponse {
	return &models.SimilarityResponse{
		Query: "dog",
		Results: []*models.SimilarWord{
			{Word: "cat", Score: 0.9939},
			{Word: "wolf", Score: 0.8712},
		},
		Total:     2,
		QueryTime: 3,
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"json", OutputJSON, false},
		{"compact", OutputCompact, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) err=%v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteSimilarityResults_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSimilarityResults(&buf, sampleResponse(), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"dog", "cat", "0.9939", "wolf"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSimilarityResults_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	resp := &models.SimilarityResponse{Query: "dog"}
	if err := WriteSimilarityResults(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "no results") {
		t.Errorf("output=%q", buf.String())
	}
}

func TestWriteSimilarityResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSimilarityResults(&buf, sampleResponse(), OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.SimilarityResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Query != "dog" || len(decoded.Results) != 2 {
		t.Errorf("decoded=%+v", decoded)
	}
}

func TestWriteSimilarityResults_Compact(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSimilarityResults(&buf, sampleResponse(), OutputCompact); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines=%v", lines)
	}
	if !strings.HasPrefix(lines[0], "0.9939\tcat") {
		t.Errorf("first line=%q", lines[0])
	}
}

func TestWriteWord_Text(t *testing.T) {
	var buf bytes.Buffer
	word := &models.Word{Word: "walk", IsNoun: true, IsVerb: true, Embedding: []float32{1, 2, 3}}
	if err := WriteWord(&buf, word, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "noun,verb") || !strings.Contains(out, "dimensions: 3") {
		t.Errorf("output=%q", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s      string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 5, "hello..."},
		{"hello", 0, "hello"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.s, tt.maxLen); got != tt.want {
			t.Errorf("Truncate(%q, %d)=%q, want %q", tt.s, tt.maxLen, got, tt.want)
		}
	}
}

func TestTruncateWords(t *testing.T) {
	if got := TruncateWords("a b c d", 2); got != "a b..." {
		t.Errorf("got %q", got)
	}
	if got := TruncateWords("a b", 5); got != "a b" {
		t.Errorf("got %q", got)
	}
}
