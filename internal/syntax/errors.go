// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"errors"

	"github.com/glepnir/arocc/internal/diag"
	"github.com/glepnir/arocc/internal/token"
)

// errParsingFailed is the "abort current declaration" control signal
// spec.md §7 describes: grammar errors that leave no salvageable type
// raise it, the Coordinator recovers at the next declaration boundary.
// It carries no data — the diagnostic was already submitted to the
// sink at the point of failure; this is purely a control-flow signal.
var errParsingFailed = errors.New("parsing failed")

// expect consumes the next token if it has kind k, reporting a
// mismatch and returning errParsingFailed otherwise. This is the one
// place spec.md §7's "missing required token" abort path originates
// from the Declarator Parser and Coordinator.
func expect(s token.Stream, k token.Kind, at diag.Site, sink diag.Sink) (token.Token, error) {
	t := s.Peek()
	if t.Kind != k {
		at.Report(sink, diag.TagExpectedToken, diag.ExpectedActual{Expected: k.String(), Actual: t.Kind.String()})
		return t, errParsingFailed
	}
	return s.Next(), nil
}

// nextExternDecl implements spec.md §7's recovery procedure: skip
// tokens, tracking paren/bracket/brace depth, until the cursor is back
// at depth zero and sitting on a token that begins a declaration (or
// is a plain identifier — token.Kind.IsDeclarationStart already covers
// both per spec.md §7's "begins a declaration or is an identifier").
// EOF always stops the scan.
func nextExternDecl(s token.Stream) {
	depth := 0
	for {
		t := s.Peek()
		if t.Kind == token.KindEOF {
			return
		}
		if depth == 0 && t.Kind.IsDeclarationStart() {
			return
		}
		switch t.Kind {
		case token.KindLParen, token.KindLBracket, token.KindLBrace:
			depth++
		case token.KindRParen, token.KindRBracket, token.KindRBrace:
			if depth > 0 {
				depth--
			}
		case token.KindSemicolon:
			if depth == 0 {
				s.Next()
				return
			}
		}
		s.Next()
	}
}

// skipBalanced consumes tokens from an already-consumed opening
// delimiter of kind open to its matching close, inclusive of the
// closing token. Used to skip a function-definition body: statement
// parsing is declared out of scope (spec.md §1 "the expression
// evaluator and statement parser" are external collaborators), so a
// function body is treated as an opaque balanced `{...}` run here.
func skipBalanced(s token.Stream, open, close token.Kind) {
	depth := 1
	for depth > 0 {
		t := s.Next()
		if t.Kind == token.KindEOF {
			return
		}
		switch t.Kind {
		case open:
			depth++
		case close:
			depth--
		}
	}
}
