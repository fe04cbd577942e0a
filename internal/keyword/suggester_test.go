package keyword

import (
	"errors"
	"testing"
)

// staticDictionary is a WordDictionary over a fixed word list.
type staticDictionary struct {
	words []string
	err   error
}

func (d *staticDictionary) AllWords() ([]string, error) {
	return d.words, d.err
}

func (d *staticDictionary) ContainsWord(word string) (bool, error) {
	for _, w := range d.words {
		if w == word {
			return true, nil
		}
	}
	return false, nil
}

func TestSuggester_SuggestsNearbyWords(t *testing.T) {
	dict := &staticDictionary{words: []string{"receive", "learning", "dog", "cat"}}
	s := NewSuggester(dict)

	got := s.Suggest("recieve")
	if len(got) == 0 {
		t.Fatal("expected a suggestion for a transposition typo")
	}
	if got[0].Word != "receive" {
		t.Errorf("best suggestion=%q", got[0].Word)
	}
	if got[0].Distance != 1 {
		t.Errorf("distance=%d, want 1", got[0].Distance)
	}
}

func TestSuggester_KnownWordYieldsNothing(t *testing.T) {
	dict := &staticDictionary{words: []string{"dog", "dot"}}
	s := NewSuggester(dict)
	if got := s.Suggest("dog"); len(got) != 0 {
		t.Errorf("got=%v, want none for a known word", got)
	}
}

func TestSuggester_DistanceBound(t *testing.T) {
	dict := &staticDictionary{words: []string{"completely"}}
	s := NewSuggester(dict, WithMaxDistance(1))
	if got := s.Suggest("cat"); len(got) != 0 {
		t.Errorf("got=%v, want none beyond the distance bound", got)
	}
}

func TestSuggester_OrderAndLimit(t *testing.T) {
	dict := &staticDictionary{words: []string{"cart", "carp", "card", "care", "cab"}}
	s := NewSuggester(dict, WithMaxSuggestions(3))

	got := s.Suggest("car")
	if len(got) != 3 {
		t.Fatalf("len=%d, want 3", len(got))
	}
	// All distance-1 candidates, so alphabetical order decides.
	if got[0].Word != "cab" || got[1].Word != "card" || got[2].Word != "care" {
		t.Errorf("order: %s %s %s", got[0].Word, got[1].Word, got[2].Word)
	}
}

func TestSuggester_IsKnown(t *testing.T) {
	dict := &staticDictionary{words: []string{"Dog"}}
	s := NewSuggester(dict)
	if !s.IsKnown("dog") {
		t.Error("lookup should be case-insensitive")
	}
	if s.IsKnown("zebra") {
		t.Error("unknown word reported as known")
	}
}

func TestSuggester_RefreshPicksUpNewWords(t *testing.T) {
	dict := &staticDictionary{words: []string{"dog"}}
	s := NewSuggester(dict)
	if len(s.Suggest("doge")) == 0 {
		t.Fatal("expected suggestion from initial vocabulary")
	}

	dict.words = []string{"dog", "doge"}
	if err := s.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := s.Suggest("doge"); len(got) != 0 {
		t.Errorf("got=%v, refreshed vocabulary contains the token", got)
	}
}

func TestSuggester_DictionaryError(t *testing.T) {
	dict := &staticDictionary{err: errors.New("index closed")}
	s := NewSuggester(dict)
	if got := s.Suggest("anything"); got != nil {
		t.Errorf("got=%v, want nil when the dictionary fails", got)
	}
}
