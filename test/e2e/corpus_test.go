package e2e

import (
	"strings"
	"testing"
)

func TestBuildCorpus(t *testing.T) {
	c := BuildCorpus()
	if len(c.Words) == 0 || len(c.TestCases) == 0 {
		t.Fatal("corpus must have words and test cases")
	}
	seen := make(map[string]bool)
	dims := len(c.Words[0].Embedding)
	for _, w := range c.Words {
		if seen[w.Word] {
			t.Errorf("duplicate word %q", w.Word)
		}
		seen[w.Word] = true
		if len(w.Embedding) != dims {
			t.Errorf("%q has %d dims, want %d", w.Word, len(w.Embedding), dims)
		}
	}
	for _, tc := range c.TestCases {
		if !seen[tc.Query] {
			t.Errorf("test case query %q not in corpus", tc.Query)
		}
		for _, w := range tc.ExpectedWords {
			if !seen[w] {
				t.Errorf("expected word %q not in corpus", w)
			}
		}
	}
}

func TestCorpusCSV(t *testing.T) {
	c := BuildCorpus()
	csv := c.CSV()
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	if len(lines) != len(c.Words)+1 {
		t.Fatalf("lines=%d, want %d", len(lines), len(c.Words)+1)
	}
	if lines[0] != "word,noun,verb,embd" {
		t.Errorf("header=%q", lines[0])
	}
}
