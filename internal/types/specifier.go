// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"fmt"

	"github.com/glepnir/arocc/internal/diag"
	"github.com/glepnir/arocc/internal/token"
)

// specKind is the Specifier Builder's state (spec.md §4.1): a single
// small integer naming every partial state reachable by a legal
// prefix of type-specifier keywords, the same "one enum, no hidden
// extension point" shape as Specifier itself.
type specKind uint8

const (
	kindNone specKind = iota
	kindVoid
	kindBool

	kindChar
	kindSignedChar
	kindUnsignedChar

	kindShort
	kindUnsignedShort

	kindSigned   // bare `signed`, refines to int at finalize
	kindUnsigned // bare `unsigned`, refines to uint at finalize
	kindInt
	kindUnsignedInt

	kindLong
	kindUnsignedLong
	kindLongLong
	kindUnsignedLongLong

	kindFloat
	kindDouble
	kindLongDouble

	kindComplex     // bare `_Complex`, no base float yet
	kindComplexLong // `_Complex long`, waiting for `double`
	kindComplexFloat
	kindComplexDouble
	kindComplexLongDouble

	// kindInjected marks that a struct/union/enum specifier, a typedef
	// name, or an `_Atomic(type-name)` specifier form was accepted.
	// Builder.injected then holds the resolved Type directly; none of
	// the keyword-combination logic below applies to it (spec.md §4.1:
	// "legal only from none").
	kindInjected
)

var kindDisplay = map[specKind]string{
	kindNone: "none", kindVoid: "void", kindBool: "_Bool",
	kindChar: "char", kindSignedChar: "signed char", kindUnsignedChar: "unsigned char",
	kindShort: "short", kindUnsignedShort: "unsigned short",
	kindSigned: "signed", kindUnsigned: "unsigned",
	kindInt: "int", kindUnsignedInt: "unsigned int",
	kindLong: "long", kindUnsignedLong: "unsigned long",
	kindLongLong: "long long", kindUnsignedLongLong: "unsigned long long",
	kindFloat: "float", kindDouble: "double", kindLongDouble: "long double",
	kindComplex: "_Complex", kindComplexLong: "_Complex long",
	kindComplexFloat: "_Complex float", kindComplexDouble: "_Complex double",
	kindComplexLongDouble: "_Complex long double",
	kindInjected:          "a type name",
}

func (k specKind) String() string {
	if s, ok := kindDisplay[k]; ok {
		return s
	}
	return "<invalid specifier kind>"
}

// Builder is the Specifier Builder of spec.md §4.1: it absorbs
// type-specifier tokens in any legal order via Combine, and an
// already-resolved struct/union/enum/typedef/_Atomic(type) type via
// InjectType, then produces a canonical Type via Finalize. A fresh
// Builder is created per decl-specifier sequence; it carries no
// position of its own, taking a diag.Site at each call the way
// Combine (combine.go) does.
type Builder struct {
	kind     specKind
	injected Type
}

// NewBuilder returns an empty Builder ready to absorb the first
// type-specifier token of a decl-specifier sequence.
func NewBuilder() *Builder { return &Builder{} }

// Combine offers one type-specifier keyword token to the Builder,
// implementing the `combine(new_token_kind) → ok | error` transition
// table of spec.md §4.1. k must satisfy k.IsTypeSpecifier() other than
// KindStruct/KindUnion/KindEnum/KindAtomicKw, which go through
// InjectType once the Coordinator has resolved their descriptor.
func (b *Builder) Combine(k token.Kind, at diag.Site, sink diag.Sink) {
	switch k {
	case token.KindVoid:
		b.toSingleton(kindVoid, at, sink)
	case token.KindBool:
		b.toSingleton(kindBool, at, sink)
	case token.KindChar:
		b.combineChar(at, sink)
	case token.KindShort:
		b.combineShort(at, sink)
	case token.KindInt:
		b.combineInt(at, sink)
	case token.KindLong:
		b.combineLong(at, sink)
	case token.KindSigned:
		b.combineSigned(at, sink)
	case token.KindUnsigned:
		b.combineUnsigned(at, sink)
	case token.KindFloat:
		b.combineFloat(at, sink)
	case token.KindDouble:
		b.combineDouble(at, sink)
	case token.KindComplex:
		b.combineComplex(at, sink)
	default:
		b.cannotCombine(k.String(), at, sink)
	}
}

// InjectType accepts an already-resolved descriptor type (struct,
// union, enum, a typedef's aliased type, or `_Atomic(type-name)`).
// Legal only when the Builder has seen nothing yet (spec.md §4.1).
func (b *Builder) InjectType(t Type, at diag.Site, sink diag.Sink) {
	if b.kind != kindNone {
		b.cannotCombine("a type name", at, sink)
		return
	}
	b.kind = kindInjected
	b.injected = t
}

// IsEmpty reports whether the Builder has not yet absorbed any
// specifier, which the Coordinator uses to decide whether a following
// identifier could still start a typedef-name specifier (spec.md
// §4.4: "the Builder's current state permits a type").
func (b *Builder) IsEmpty() bool { return b.kind == kindNone }

func (b *Builder) toSingleton(k specKind, at diag.Site, sink diag.Sink) {
	if b.kind != kindNone {
		b.cannotCombine(k.String(), at, sink)
		return
	}
	b.kind = k
}

func (b *Builder) combineChar(at diag.Site, sink diag.Sink) {
	switch b.kind {
	case kindNone:
		b.kind = kindChar
	case kindSigned:
		b.kind = kindSignedChar
	case kindUnsigned:
		b.kind = kindUnsignedChar
	default:
		b.cannotCombine("char", at, sink)
	}
}

func (b *Builder) combineShort(at diag.Site, sink diag.Sink) {
	switch b.kind {
	case kindNone, kindSigned, kindInt:
		b.kind = kindShort
	case kindUnsigned, kindUnsignedInt:
		b.kind = kindUnsignedShort
	case kindShort, kindUnsignedShort:
		b.duplicate("short", at, sink)
	default:
		b.cannotCombine("short", at, sink)
	}
}

func (b *Builder) combineInt(at diag.Site, sink diag.Sink) {
	switch b.kind {
	case kindNone, kindSigned:
		b.kind = kindInt
	case kindUnsigned:
		b.kind = kindUnsignedInt
	case kindShort, kindUnsignedShort, kindLong, kindUnsignedLong, kindLongLong, kindUnsignedLongLong:
		// redundant `int` after short/long/long long: no state change.
	case kindInt, kindUnsignedInt:
		b.duplicate("int", at, sink)
	default:
		b.cannotCombine("int", at, sink)
	}
}

func (b *Builder) combineLong(at diag.Site, sink diag.Sink) {
	switch b.kind {
	case kindNone, kindSigned, kindInt:
		b.kind = kindLong
	case kindUnsigned, kindUnsignedInt:
		b.kind = kindUnsignedLong
	case kindLong:
		b.kind = kindLongLong
	case kindUnsignedLong:
		b.kind = kindUnsignedLongLong
	case kindDouble:
		b.kind = kindLongDouble
	case kindComplex:
		b.kind = kindComplexLong
	case kindLongLong, kindUnsignedLongLong:
		b.duplicate("long", at, sink)
	default:
		b.cannotCombine("long", at, sink)
	}
}

func (b *Builder) combineSigned(at diag.Site, sink diag.Sink) {
	switch b.kind {
	case kindNone:
		b.kind = kindSigned
	case kindChar:
		b.kind = kindSignedChar
	case kindShort, kindInt, kindLong, kindLongLong:
		// already signed by default; `signed` is a legal no-op here.
	case kindSigned, kindSignedChar:
		b.duplicate("signed", at, sink)
	default:
		b.cannotCombine("signed", at, sink)
	}
}

func (b *Builder) combineUnsigned(at diag.Site, sink diag.Sink) {
	switch b.kind {
	case kindNone:
		b.kind = kindUnsigned
	case kindChar:
		b.kind = kindUnsignedChar
	case kindShort:
		b.kind = kindUnsignedShort
	case kindInt:
		b.kind = kindUnsignedInt
	case kindLong:
		b.kind = kindUnsignedLong
	case kindLongLong:
		b.kind = kindUnsignedLongLong
	case kindUnsigned, kindUnsignedChar, kindUnsignedShort, kindUnsignedInt,
		kindUnsignedLong, kindUnsignedLongLong:
		b.duplicate("unsigned", at, sink)
	default:
		b.cannotCombine("unsigned", at, sink)
	}
}

func (b *Builder) combineFloat(at diag.Site, sink diag.Sink) {
	switch b.kind {
	case kindNone:
		b.kind = kindFloat
	case kindComplex:
		b.kind = kindComplexFloat
	default:
		b.cannotCombine("float", at, sink)
	}
}

func (b *Builder) combineDouble(at diag.Site, sink diag.Sink) {
	switch b.kind {
	case kindNone:
		b.kind = kindDouble
	case kindLong:
		b.kind = kindLongDouble
	case kindComplex:
		b.kind = kindComplexDouble
	case kindComplexLong:
		b.kind = kindComplexLongDouble
	default:
		b.cannotCombine("double", at, sink)
	}
}

func (b *Builder) combineComplex(at diag.Site, sink diag.Sink) {
	switch b.kind {
	case kindNone:
		b.kind = kindComplex
	case kindLong:
		b.kind = kindComplexLong
	case kindFloat:
		b.kind = kindComplexFloat
	case kindDouble:
		b.kind = kindComplexDouble
	case kindLongDouble:
		b.kind = kindComplexLongDouble
	default:
		b.cannotCombine("_Complex", at, sink)
	}
}

func (b *Builder) cannotCombine(incoming string, at diag.Site, sink diag.Sink) {
	at.Report(sink, diag.TagCannotCombine, fmt.Sprintf("%s with %s", incoming, b.kind))
}

func (b *Builder) duplicate(incoming string, at diag.Site, sink diag.Sink) {
	at.Report(sink, diag.TagDuplicateSpecifier, incoming)
}

// Finalize implements `finalize() → Type` (spec.md §4.1): it maps the
// terminal kind to a canonical Type, diagnosing the two error states
// (no type specifier at all, or an isolated `_Complex`/`_Complex long`
// with no base floating type) while still returning a best-effort Type
// so callers never have to special-case a nil result.
func (b *Builder) Finalize(at diag.Site, sink diag.Sink) Type {
	switch b.kind {
	case kindNone:
		at.Report(sink, diag.TagMissingTypeSpecifier, nil)
		return Basic(Int)
	case kindInjected:
		return b.injected
	case kindVoid:
		return Basic(Void)
	case kindBool:
		return Basic(Bool)
	case kindChar:
		return Basic(Char)
	case kindSignedChar:
		return Basic(SChar)
	case kindUnsignedChar:
		return Basic(UChar)
	case kindShort:
		return Basic(Short)
	case kindUnsignedShort:
		return Basic(UShort)
	case kindSigned, kindInt:
		return Basic(Int)
	case kindUnsigned, kindUnsignedInt:
		return Basic(UInt)
	case kindLong:
		return Basic(Long)
	case kindUnsignedLong:
		return Basic(ULong)
	case kindLongLong:
		return Basic(LongLong)
	case kindUnsignedLongLong:
		return Basic(ULongLong)
	case kindFloat:
		return Basic(Float)
	case kindDouble:
		return Basic(Double)
	case kindLongDouble:
		return Basic(LongDouble)
	case kindComplexFloat:
		return Basic(ComplexFloat)
	case kindComplexDouble:
		return Basic(ComplexDouble)
	case kindComplexLongDouble:
		return Basic(ComplexLongDouble)
	case kindComplex, kindComplexLong:
		at.Report(sink, diag.TagIsolatedComplex, nil)
		return Basic(ComplexDouble)
	}
	return Basic(Int)
}
