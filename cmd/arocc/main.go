// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command arocc is a smoke-test driver for the type system and
// declarator parser: it builds a fixed token.Stream in memory, runs it
// through the Declaration Coordinator, and prints the resulting AST's
// dumped types alongside any diagnostics. There is no preprocessor or
// file reader here (spec.md §1 Non-goals put both out of scope), so
// this is deliberately not a general-purpose C front end invocation —
// it exists to demonstrate that token, diag, types and syntax compose.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glepnir/arocc/internal/diag"
	"github.com/glepnir/arocc/internal/profile"
	"github.com/glepnir/arocc/internal/syntax"
	"github.com/glepnir/arocc/internal/target"
	"github.com/glepnir/arocc/internal/token"
	"github.com/glepnir/arocc/internal/types"
)

// demoSource backs a fixed token slice with the literal spellings the
// Declarator Parser and Coordinator need (identifiers, for typedef
// lookup and declaration naming; locations, for diagnostics). There is
// no tokenizer in this module (spec.md §1), so main builds the slice
// directly rather than lexing text.
type demoSource struct {
	lexemes   []string
	locations []string
}

func (s *demoSource) Lexeme(i int) string {
	if i < 0 || i >= len(s.lexemes) {
		return ""
	}
	return s.lexemes[i]
}

func (s *demoSource) Location(i int) string {
	if i < 0 || i >= len(s.locations) {
		return "<eof>"
	}
	return s.locations[i]
}

// tokBuilder accumulates a token slice and its parallel demoSource
// lexeme/location tables, so the handful of sample declarations below
// read as a sequence of kind/lexeme pairs instead of raw token.Token
// literals.
type tokBuilder struct {
	toks []token.Token
	src  demoSource
}

func (b *tokBuilder) add(k token.Kind, lexeme string) {
	id := uint32(len(b.toks))
	b.toks = append(b.toks, token.Token{ID: id, Kind: k})
	b.src.lexemes = append(b.src.lexemes, lexeme)
	b.src.locations = append(b.src.locations, fmt.Sprintf("demo.c:%d", id+1))
}

// buildDemoUnit assembles a handful of representative declarations:
//
//	typedef int my_int;
//	const my_int *p;
//	int a[3][4];
//	int f(int x, ...);
func buildDemoUnit() ([]token.Token, *demoSource) {
	var b tokBuilder

	// typedef int my_int;
	b.add(token.KindTypedef, "typedef")
	b.add(token.KindInt, "int")
	b.add(token.KindIdent, "my_int")
	b.add(token.KindSemicolon, ";")

	// const my_int *p;
	b.add(token.KindConst, "const")
	b.add(token.KindIdent, "my_int")
	b.add(token.KindStar, "*")
	b.add(token.KindIdent, "p")
	b.add(token.KindSemicolon, ";")

	// int a[3][4];
	b.add(token.KindInt, "int")
	b.add(token.KindIdent, "a")
	b.add(token.KindLBracket, "[")
	b.add(token.KindIntConst, "3")
	b.add(token.KindRBracket, "]")
	b.add(token.KindLBracket, "[")
	b.add(token.KindIntConst, "4")
	b.add(token.KindRBracket, "]")
	b.add(token.KindSemicolon, ";")

	// int f(int x, ...);
	b.add(token.KindInt, "int")
	b.add(token.KindIdent, "f")
	b.add(token.KindLParen, "(")
	b.add(token.KindInt, "int")
	b.add(token.KindIdent, "x")
	b.add(token.KindComma, ",")
	b.add(token.KindEllipsis, "...")
	b.add(token.KindRParen, ")")
	b.add(token.KindSemicolon, ";")

	b.add(token.KindEOF, "")
	return b.toks, &b.src
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("arocc: ")

	toks, src := buildDemoUnit()
	stream := token.NewSliceStream(toks, src)

	rec := profile.NewRecorder()
	sink := profile.RecordingSink{Sink: &diag.List{}, Recorder: rec}
	recordedStream := profile.RecordingStream{Stream: stream, Recorder: rec}

	arena := types.NewArena()
	ctx := target.Native()

	p := syntax.NewParser(recordedStream, arena, sink, 0, ctx).
		WithDeclarationObserver(rec.ObserveDeclaration)
	ast := p.ParseTranslationUnit()

	for _, idx := range ast.Roots {
		n := ast.Get(idx)
		name := src.Lexeme(int(n.NameTok))
		if name == "" {
			name = "<anonymous>"
		}
		fmt.Printf("%-8s %-10s %s\n", n.Tag, name, types.Dump(n.Type))
	}

	list := sink.Sink.(*diag.List)
	for _, r := range list.Records {
		fmt.Fprintf(os.Stderr, "diag: %s\n", r)
	}

	prof := rec.Export(time.Unix(0, 0))
	fmt.Printf("tokens consumed: %d, declarations: %d, sample types: %d\n",
		rec.TokensConsumed(), rec.Declarations(), len(prof.SampleType))

	if list.HasErrors() {
		os.Exit(1)
	}
}
