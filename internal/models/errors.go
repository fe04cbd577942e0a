package models

import (
	"errors"
	"fmt"
)

// ErrUnknownWord is returned when a query word is not in the corpus and the
// embedding source cannot produce a vector for it.
var ErrUnknownWord = errors.New("unknown word")

// ErrSourceUnavailable is returned when the embedding source or the word
// store times out or is unreachable. Safe for the caller to retry.
var ErrSourceUnavailable = errors.New("embedding source unavailable")

// DimensionError reports a word record whose embedding dimension disagrees
// with the corpus-wide dimension. Such records are skipped at load time.
type DimensionError struct {
	Word string
	Got  int
	Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("word %q: embedding dimension %d, corpus dimension %d", e.Word, e.Got, e.Want)
}

// IsDimensionError reports whether err is a DimensionError.
func IsDimensionError(err error) bool {
	var de *DimensionError
	return errors.As(err, &de)
}
