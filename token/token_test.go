package token

import (
	"io"
	"testing"
)

func TestNewSetsLineNumber(t *testing.T) {
	tok := New(7)
	if tok.Ln != 7 {
		t.Errorf("New(7).Ln = %d, want 7", tok.Ln)
	}
	if tok.Tag != Period {
		t.Errorf("New(7).Tag = %d, want Period (zero value)", tok.Tag)
	}
}

func TestEOFSentinel(t *testing.T) {
	if EOF.Tag != Error {
		t.Errorf("EOF.Tag = %d, want Error", EOF.Tag)
	}
	if EOF.Err != io.EOF {
		t.Errorf("EOF.Err = %v, want io.EOF", EOF.Err)
	}
}

func TestUnexpectedCharSentinel(t *testing.T) {
	if UnexpectedChar.Tag != Error {
		t.Errorf("UnexpectedChar.Tag = %d, want Error", UnexpectedChar.Tag)
	}
	if UnexpectedChar.Err == nil {
		t.Error("UnexpectedChar.Err = nil, want non-nil")
	}
}
