package embedding

import (
	"testing"
)

func TestWordTokenizer_Tokenize(t *testing.T) {
	tok := &WordTokenizer{}
	ids, attn, _ := tok.Tokenize("dog", 10)
	if len(ids) != 10 {
		t.Errorf("len(ids)=%d", len(ids))
	}
	if ids[0] != 101 {
		t.Errorf("expected CLS 101, got %d", ids[0])
	}
	if attn[0] != 1 || attn[1] != 1 || attn[2] != 1 {
		t.Errorf("attention=%v", attn[:3])
	}
	if ids[2] != 102 {
		t.Errorf("expected SEP 102 after single token, got %d", ids[2])
	}
}

func TestSplitPieces(t *testing.T) {
	pieces := SplitPieces("self-evident")
	if len(pieces) != 2 || pieces[0] != "self" || pieces[1] != "evident" {
		t.Errorf("pieces=%v", pieces)
	}
	if len(SplitPieces("")) != 0 {
		t.Error("empty string should return no pieces")
	}
}

func TestHashString(t *testing.T) {
	h := HashString("abc")
	if h == 0 {
		t.Error("hash should be non-zero")
	}
	if HashString("abc") != HashString("abc") {
		t.Error("hash should be deterministic")
	}
}
