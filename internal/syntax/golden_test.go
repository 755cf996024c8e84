// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"github.com/glepnir/arocc/internal/diag"
	"github.com/glepnir/arocc/internal/target"
	"github.com/glepnir/arocc/internal/token"
	"github.com/glepnir/arocc/internal/types"
)

// wordKeywords is the tiny test-only lexicon golden_test.go's
// wordTokenizer uses: testdata/declarators.txtar spells each
// declaration as whitespace-separated words, one token per word, so
// the fixtures read like C instead of like a token.Kind literal dump.
var wordKeywords = map[string]token.Kind{
	"void": token.KindVoid, "char": token.KindChar, "short": token.KindShort,
	"int": token.KindInt, "long": token.KindLong, "float": token.KindFloat,
	"double": token.KindDouble, "signed": token.KindSigned, "unsigned": token.KindUnsigned,
	"_Bool": token.KindBool, "_Complex": token.KindComplex,
	"struct": token.KindStruct, "union": token.KindUnion, "enum": token.KindEnum,
	"_Atomic": token.KindAtomicKw,
	"const":   token.KindConst, "volatile": token.KindVolatile, "restrict": token.KindRestrict,
	"typedef": token.KindTypedef, "extern": token.KindExtern, "static": token.KindStatic,
	"auto": token.KindAuto, "register": token.KindRegister, "_Thread_local": token.KindThreadLocal,
	"inline": token.KindInline, "_Noreturn": token.KindNoreturn,
	"_Alignas": token.KindAlignas, "_Static_assert": token.KindStaticAssert, "sizeof": token.KindSizeof,
	"...": token.KindEllipsis,
	"*":   token.KindStar, "(": token.KindLParen, ")": token.KindRParen,
	"[": token.KindLBracket, "]": token.KindRBracket,
	"{": token.KindLBrace, "}": token.KindRBrace,
	",": token.KindComma, ";": token.KindSemicolon, ":": token.KindColon, "=": token.KindAssign,
}

// wordSource is the token.Source double golden fixtures parse against:
// each token's lexeme is the literal word it was tokenized from.
type wordSource struct{ words []string }

func (s *wordSource) Lexeme(i int) string {
	if i < 0 || i >= len(s.words) {
		return ""
	}
	return s.words[i]
}

func (s *wordSource) Location(i int) string { return "golden.c:" + strconv.Itoa(i+1) }

// wordTokenizer splits decl on whitespace and classifies each word
// into a token.Kind: an exact keyword/punctuator match from
// wordKeywords, an integer constant if it parses as one, else a plain
// identifier. This is deliberately not a real C lexer (spec.md §1
// keeps the preprocessor out of scope) — just enough to drive the
// fixtures in testdata/declarators.txtar.
func wordTokenizer(decl string) ([]token.Token, *wordSource) {
	words := strings.Fields(decl)
	src := &wordSource{words: words}
	toks := make([]token.Token, len(words))
	for i, w := range words {
		kind, ok := wordKeywords[w]
		if !ok {
			if _, err := strconv.ParseInt(w, 10, 64); err == nil {
				kind = token.KindIntConst
			} else {
				kind = token.KindIdent
			}
		}
		toks[i] = token.Token{ID: uint32(i), Kind: kind}
	}
	return toks, src
}

// TestGoldenDeclarators runs every "<case>.decl" fixture in
// testdata/declarators.txtar through the full Coordinator/Declarator
// Parser pipeline and checks the dumped type of the last parsed root
// against its paired "<case>.want.dump" or "<case>.want.longdump"
// file, per the txtar's own header comment.
func TestGoldenDeclarators(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "declarators.txtar"))
	if err != nil {
		t.Fatalf("reading golden archive: %v", err)
	}
	arc := txtar.Parse(data)

	files := make(map[string]string, len(arc.Files))
	for _, f := range arc.Files {
		files[f.Name] = strings.TrimRight(string(f.Data), "\n")
	}

	var cases []string
	for name := range files {
		if strings.HasSuffix(name, ".decl") {
			cases = append(cases, strings.TrimSuffix(name, ".decl"))
		}
	}

	for _, name := range cases {
		name := name
		t.Run(name, func(t *testing.T) {
			decl, ok := files[name+".decl"]
			if !ok {
				t.Fatalf("missing %s.decl", name)
			}

			wantDump, isLong := files[name+".want.dump"]
			wantLong, hasLong := files[name+".want.longdump"]
			if !isLong && !hasLong {
				t.Fatalf("%s has neither .want.dump nor .want.longdump", name)
			}

			toks, src := wordTokenizer(decl)
			stream := token.NewSliceStream(toks, src)

			var sink diag.List
			p := NewParser(stream, types.NewArena(), &sink, 0, target.Native())
			ast := p.ParseTranslationUnit()

			if len(ast.Roots) == 0 {
				t.Fatalf("no roots parsed for %q (diagnostics: %v)", decl, sink.Records)
			}
			got := ast.Get(ast.Roots[len(ast.Roots)-1]).Type

			if hasLong {
				if diff := cmp.Diff(wantLong, types.LongDump(got)); diff != "" {
					t.Errorf("LongDump mismatch for %q (-want +got):\n%s", decl, diff)
				}
				return
			}
			if diff := cmp.Diff(wantDump, types.Dump(got)); diff != "" {
				t.Errorf("Dump mismatch for %q (-want +got):\n%s", decl, diff)
			}
		})
	}
}
