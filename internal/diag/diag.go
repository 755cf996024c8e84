// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag implements the diagnostic sink boundary (spec.md §6):
// a tagged record type plus a Sink interface the parsing core submits
// to synchronously. It never itself decides whether a diagnostic is
// fatal; that is the Coordinator's call per spec.md §7.
package diag

import "fmt"

// Tag identifies the kind of diagnostic. The set is closed but grows
// with the parser; unlike token.Kind there is no single upstream
// grammar to enumerate against, so new tags are added as the
// Specifier Builder, Declarator Parser, and Coordinator need them.
type Tag uint16

const (
	_ Tag = iota

	// Specifier Builder (spec.md §4.1).
	TagCannotCombine     // "cannot combine 'X' with 'Y'"
	TagDuplicateSpecifier // duplicate signed/unsigned/etc.
	TagMissingTypeSpecifier
	TagIsolatedComplex // bare `complex` or `complex long` with no base float

	// Type Operations / combine (spec.md §4.2).
	TagArrayOfFunctions
	TagArrayOfIncomplete
	TagArrayQualifierNotOutermost
	TagStaticArrayNested
	TagFuncReturnsArray
	TagFuncReturnsFunc
	TagRestrictNonPointer

	// Declaration Coordinator (spec.md §4.4).
	TagMultipleStorageClass
	TagThreadLocalIncompatible
	TagDuplicateFunctionSpecifier
	TagFuncSpecifierOnNonFunction
	TagInitializerOnTypedef
	TagInitializerOnFunction
	TagExternWithInitializerDowngraded
	TagNestedFunctionDefinition
	TagVoidParameterMisuse
	TagKRUnboundParameter
	TagEllipsisWithoutParameter

	// Grammar-level, abort-current-declaration (spec.md §7).
	TagExpectedToken
	TagMalformedDeclarator

	// _Static_assert.
	TagStaticAssertFailed
)

// Payload is one of: nil, a string (lexeme interpolation), or
// ExpectedActual (token-mismatch errors), matching spec.md §6.
type Payload interface{}

// ExpectedActual is the Payload shape for token-mismatch diagnostics.
type ExpectedActual struct {
	Expected string
	Actual   string
}

// Record is one diagnostic submission: {tag, source_id, location,
// optional extra payload} (spec.md §6).
type Record struct {
	Tag      Tag
	SourceID uint32
	Location string
	Extra    Payload
}

func (r Record) String() string {
	switch p := r.Extra.(type) {
	case nil:
		return fmt.Sprintf("%s: %s", r.Location, r.Tag)
	case ExpectedActual:
		return fmt.Sprintf("%s: %s: expected %s, got %s", r.Location, r.Tag, p.Expected, p.Actual)
	default:
		return fmt.Sprintf("%s: %s: %v", r.Location, r.Tag, p)
	}
}

func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Tag(%d)", uint16(t))
}

var tagNames = map[Tag]string{
	TagCannotCombine:                    "cannot combine specifier",
	TagDuplicateSpecifier:                "duplicate type specifier",
	TagMissingTypeSpecifier:              "missing type specifier",
	TagIsolatedComplex:                   "isolated complex with no base floating type",
	TagArrayOfFunctions:                  "array of functions is not allowed",
	TagArrayOfIncomplete:                 "array element has incomplete type",
	TagArrayQualifierNotOutermost:        "qualifier on non-outermost array constructor",
	TagStaticArrayNested:                 "static array bound nested in another array",
	TagFuncReturnsArray:                  "function cannot return array type",
	TagFuncReturnsFunc:                   "function cannot return function type",
	TagRestrictNonPointer:                "restrict requires a pointer type",
	TagMultipleStorageClass:              "multiple storage classes in declaration specifiers",
	TagThreadLocalIncompatible:           "_Thread_local incompatible with storage class",
	TagDuplicateFunctionSpecifier:        "duplicate function specifier",
	TagFuncSpecifierOnNonFunction:        "function specifier on non-function",
	TagInitializerOnTypedef:              "illegal initializer on typedef",
	TagInitializerOnFunction:             "illegal initializer on function type",
	TagExternWithInitializerDowngraded:   "'extern' with initializer, storage class downgraded",
	TagNestedFunctionDefinition:          "function definition is not allowed here",
	TagVoidParameterMisuse:               "'void' must be the only and unnamed parameter",
	TagKRUnboundParameter:                "K&R parameter not given a type, defaulting to int",
	TagEllipsisWithoutParameter:          "'...' must follow at least one named parameter",
	TagExpectedToken:                     "expected token",
	TagMalformedDeclarator:               "malformed declarator",
	TagStaticAssertFailed:                "static assertion failed",
}

// Sink receives diagnostic records. Its only ordering guarantee is the
// order of submission (spec.md §5).
type Sink interface {
	Report(Record)
}

// Site bundles the source id and rendered location the parser already
// has in hand at a call site, so leaf operations like Type combine
// (internal/types) can tag a diagnostic without themselves depending
// on a token.Stream/token.Source.
type Site struct {
	SourceID uint32
	Location string
}

// Report submits a diagnostic at this site through sink.
func (s Site) Report(sink Sink, tag Tag, extra Payload) {
	sink.Report(Record{Tag: tag, SourceID: s.SourceID, Location: s.Location, Extra: extra})
}

// List is the simplest Sink: an append-only slice, the shape used by
// every test in this module and by cmd/arocc's smoke driver.
type List struct {
	Records []Record
}

func (l *List) Report(r Record) { l.Records = append(l.Records, r) }

// HasErrors reports whether any diagnostic was submitted. The core
// does not itself classify tags as warnings vs. errors (spec.md §7
// leaves that to callers); this is a convenience for tests.
func (l *List) HasErrors() bool { return len(l.Records) > 0 }
