// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package token

import "testing"

func TestSliceStreamPeekNextSeek(t *testing.T) {
	toks := []Token{
		{ID: 0, Kind: KindInt},
		{ID: 1, Kind: KindIdent},
		{ID: 2, Kind: KindSemicolon},
	}
	s := NewSliceStream(toks, litSource{"int", "x", ";"})

	if got := s.Peek().Kind; got != KindInt {
		t.Fatalf("Peek() = %v, want KindInt", got)
	}
	if got := s.PeekAt(1).Kind; got != KindIdent {
		t.Fatalf("PeekAt(1) = %v, want KindIdent", got)
	}

	mark := s.Pos()
	if got := s.Next().Kind; got != KindInt {
		t.Fatalf("Next() = %v, want KindInt", got)
	}
	if got := s.Next().Kind; got != KindIdent {
		t.Fatalf("Next() = %v, want KindIdent", got)
	}

	s.Seek(mark)
	if got := s.Peek().Kind; got != KindInt {
		t.Fatalf("after Seek, Peek() = %v, want KindInt", got)
	}
}

func TestSliceStreamSynthesizesEOFPastEnd(t *testing.T) {
	toks := []Token{{ID: 0, Kind: KindSemicolon}}
	s := NewSliceStream(toks, litSource{";"})

	s.Next()
	if got := s.Peek().Kind; got != KindEOF {
		t.Fatalf("Peek() past end = %v, want KindEOF", got)
	}
	if got := s.Next().Kind; got != KindEOF {
		t.Fatalf("Next() past end = %v, want KindEOF", got)
	}
	if got := s.PeekAt(5).Kind; got != KindEOF {
		t.Fatalf("PeekAt far past end = %v, want KindEOF", got)
	}
}

func TestKindIsDeclarationStart(t *testing.T) {
	tests := []struct {
		k    Kind
		want bool
	}{
		{KindInt, true},
		{KindStatic, true},
		{KindConst, true},
		{KindIdent, true},
		{KindSemicolon, false},
		{KindStar, false},
	}
	for _, test := range tests {
		if got := test.k.IsDeclarationStart(); got != test.want {
			t.Errorf("%v.IsDeclarationStart() = %v, want %v", test.k, got, test.want)
		}
	}
}
