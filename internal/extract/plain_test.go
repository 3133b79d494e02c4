package extract

import (
	"errors"
	"testing"
)

func TestExtractPlain(t *testing.T) {
	text, meta, err := extractPlain([]byte("first line\nsecond line"))
	if err != nil {
		t.Fatalf("extractPlain: %v", err)
	}
	if text != "first line\nsecond line" {
		t.Errorf("got %q", text)
	}
	if meta["lines"] != 2 {
		t.Errorf("lines = %v", meta["lines"])
	}
}

func TestExtractPlain_whitespaceOnly(t *testing.T) {
	for _, content := range [][]byte{nil, []byte(""), []byte("  \t \n  ")} {
		_, _, err := extractPlain(content)
		var ee *EmptyResultError
		if !errors.As(err, &ee) {
			t.Errorf("%q: expected EmptyResultError, got %v", content, err)
		}
	}
}
