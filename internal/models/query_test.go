package models

import "testing"

func TestSimilarityQuery_Validate(t *testing.T) {
	tests := []struct {
		name      string
		query     SimilarityQuery
		wantErr   bool
		wantLimit int
	}{
		{
			name:    "empty word",
			query:   SimilarityQuery{},
			wantErr: true,
		},
		{
			name:      "defaults applied",
			query:     SimilarityQuery{Word: "dog", MinSimilarity: NoMinSimilarity},
			wantLimit: DefaultLimit,
		},
		{
			name:      "limit clamped to max",
			query:     SimilarityQuery{Word: "dog", Limit: 5000, MinSimilarity: NoMinSimilarity},
			wantLimit: MaxLimit,
		},
		{
			name:      "negative limit defaulted",
			query:     SimilarityQuery{Word: "dog", Limit: -3, MinSimilarity: NoMinSimilarity},
			wantLimit: DefaultLimit,
		},
		{
			name:    "invalid pos",
			query:   SimilarityQuery{Word: "dog", POS: "adjective"},
			wantErr: true,
		},
		{
			name:      "valid noun filter",
			query:     SimilarityQuery{Word: "dog", POS: POSNoun, Limit: 5},
			wantLimit: 5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.query.Limit != tt.wantLimit {
				t.Errorf("limit=%d, want %d", tt.query.Limit, tt.wantLimit)
			}
		})
	}
}

func TestSimilarityQuery_ValidateClampsThreshold(t *testing.T) {
	q := SimilarityQuery{Word: "dog", MinSimilarity: -5}
	if err := q.Validate(); err != nil {
		t.Fatal(err)
	}
	if q.MinSimilarity != NoMinSimilarity {
		t.Errorf("MinSimilarity=%v, want %v", q.MinSimilarity, NoMinSimilarity)
	}
}

func TestSimilarityQuery_CacheKey(t *testing.T) {
	a := SimilarityQuery{Word: "dog", POS: POSNoun, Limit: 10, MinSimilarity: 0.5}
	b := SimilarityQuery{Word: "dog", POS: POSNoun, Limit: 10, MinSimilarity: 0.5}
	if a.CacheKey() != b.CacheKey() {
		t.Error("identical queries must produce identical cache keys")
	}
	c := SimilarityQuery{Word: "dog", POS: POSVerb, Limit: 10, MinSimilarity: 0.5}
	if a.CacheKey() == c.CacheKey() {
		t.Error("different pos filters must produce different cache keys")
	}
	d := SimilarityQuery{Word: "dog", POS: POSNoun, Limit: 20, MinSimilarity: 0.5}
	if a.CacheKey() == d.CacheKey() {
		t.Error("different limits must produce different cache keys")
	}
}

func TestParsePOSFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    POSFilter
		wantErr bool
	}{
		{"", POSAny, false},
		{"none", POSAny, false},
		{"noun", POSNoun, false},
		{"NOUN", POSNoun, false},
		{"verb", POSVerb, false},
		{" verb ", POSVerb, false},
		{"adjective", POSAny, true},
	}
	for _, tt := range tests {
		got, err := ParsePOSFilter(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePOSFilter(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePOSFilter(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePOSFilter(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWord_PartOfSpeech(t *testing.T) {
	w := Word{Word: "run", IsNoun: true, IsVerb: true}
	pos := w.PartOfSpeech()
	if len(pos) != 2 || pos[0] != "noun" || pos[1] != "verb" {
		t.Errorf("PartOfSpeech=%v", pos)
	}
	if got := (&Word{Word: "x"}).PartOfSpeech(); got != nil {
		t.Errorf("expected nil for unflagged word, got %v", got)
	}
}
