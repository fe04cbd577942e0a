package keyword

import (
	"sort"
	"strings"
	"sync"
)

// Suggestion is a vocabulary word close to an unknown token.
type Suggestion struct {
	Word     string
	Distance int
}

// Suggester proposes vocabulary words for tokens that are not in the corpus.
// It caches the word list from the dictionary; call Refresh after the
// vocabulary changes.
type Suggester struct {
	dictionary WordDictionary

	maxDistance    int
	maxSuggestions int

	wordsCache []string
	wordSet    map[string]struct{}
	cacheMu    sync.RWMutex
	cacheValid bool
}

// SuggesterOption configures a Suggester.
type SuggesterOption func(*Suggester)

// WithMaxDistance sets the maximum edit distance for suggestions.
func WithMaxDistance(d int) SuggesterOption {
	return func(s *Suggester) {
		if d > 0 {
			s.maxDistance = d
		}
	}
}

// WithMaxSuggestions sets the maximum number of suggestions returned.
func WithMaxSuggestions(n int) SuggesterOption {
	return func(s *Suggester) {
		if n > 0 {
			s.maxSuggestions = n
		}
	}
}

// NewSuggester creates a Suggester over the given dictionary.
func NewSuggester(dict WordDictionary, opts ...SuggesterOption) *Suggester {
	s := &Suggester{
		dictionary:     dict,
		maxDistance:    2,
		maxSuggestions: 5,
		wordSet:        make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh reloads the cached word list from the dictionary.
func (s *Suggester) Refresh() error {
	words, err := s.dictionary.AllWords()
	if err != nil {
		return err
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.wordsCache = words
	s.wordSet = make(map[string]struct{}, len(words))
	for _, w := range words {
		s.wordSet[strings.ToLower(w)] = struct{}{}
	}
	s.cacheValid = true
	return nil
}

// Suggest returns vocabulary words within the edit distance bound of token,
// nearest first, ties broken alphabetically. A token that is itself in the
// vocabulary yields no suggestions.
func (s *Suggester) Suggest(token string) []Suggestion {
	if !s.ensureCache() {
		return nil
	}

	tokenLower := strings.ToLower(token)

	s.cacheMu.RLock()
	words := s.wordsCache
	_, known := s.wordSet[tokenLower]
	s.cacheMu.RUnlock()

	if known {
		return nil
	}

	suggestions := make([]Suggestion, 0)
	for _, word := range words {
		wordLower := strings.ToLower(word)
		if wordLower == tokenLower {
			continue
		}
		// Length difference is a lower bound on the edit distance.
		lenDiff := len(wordLower) - len(tokenLower)
		if lenDiff < 0 {
			lenDiff = -lenDiff
		}
		if lenDiff > s.maxDistance {
			continue
		}
		distance := DamerauLevenshteinDistance(tokenLower, wordLower)
		if distance <= s.maxDistance {
			suggestions = append(suggestions, Suggestion{Word: word, Distance: distance})
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Distance != suggestions[j].Distance {
			return suggestions[i].Distance < suggestions[j].Distance
		}
		return suggestions[i].Word < suggestions[j].Word
	})
	if len(suggestions) > s.maxSuggestions {
		suggestions = suggestions[:s.maxSuggestions]
	}
	return suggestions
}

// IsKnown reports whether token is in the cached vocabulary.
func (s *Suggester) IsKnown(token string) bool {
	if !s.ensureCache() {
		return false
	}
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	_, ok := s.wordSet[strings.ToLower(token)]
	return ok
}

func (s *Suggester) ensureCache() bool {
	s.cacheMu.RLock()
	valid := s.cacheValid
	s.cacheMu.RUnlock()
	if valid {
		return true
	}
	return s.Refresh() == nil
}
