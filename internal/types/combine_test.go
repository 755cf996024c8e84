// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/glepnir/arocc/internal/diag"
)

func TestCombineGraftsOuterIntoInnermostSlot(t *testing.T) {
	a := NewArena()
	var sink diag.List
	at := diag.Site{SourceID: 0, Location: "t.c:1"}

	// inner: "array of 3 pointers to <hole>" (i.e. *int a[3] before the
	// declarator's base type is grafted in).
	inner := a.NewArray(a.NewPointer(Basic(Void)), 3)
	got := Combine(inner, Basic(Int), at, &sink)

	if got.Specifier != Array {
		t.Fatalf("Combine result specifier = %v, want Array", got.Specifier)
	}
	elem := got.ArrayDesc().Elem
	if elem.Specifier != Pointer {
		t.Fatalf("array elem specifier = %v, want Pointer", elem.Specifier)
	}
	if elem.Elem().Specifier != Int {
		t.Fatalf("pointer elem specifier = %v, want Int", elem.Elem().Specifier)
	}
	if len(sink.Records) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Records)
	}
}

func TestCombineFunctionReturningArrayDiagnoses(t *testing.T) {
	a := NewArena()
	var sink diag.List
	at := diag.Site{SourceID: 0, Location: "t.c:1"}

	inner := a.NewFunc(Basic(Void), nil)
	Combine(inner, a.NewArray(Basic(Void), 4), at, &sink)

	if len(sink.Records) != 1 || sink.Records[0].Tag != diag.TagFuncReturnsArray {
		t.Fatalf("diagnostics = %v, want exactly one TagFuncReturnsArray", sink.Records)
	}
}

func TestValidateArrayElemOfFunctionDiagnoses(t *testing.T) {
	a := NewArena()
	var sink diag.List
	at := diag.Site{SourceID: 0, Location: "t.c:1"}

	ValidateArrayElem(a.NewFunc(Basic(Int), nil), at, &sink)
	if len(sink.Records) != 1 || sink.Records[0].Tag != diag.TagArrayOfFunctions {
		t.Fatalf("diagnostics = %v, want exactly one TagArrayOfFunctions", sink.Records)
	}
}

func TestValidateArrayElemQualifiedNestedArrayDiagnoses(t *testing.T) {
	a := NewArena()
	var sink diag.List
	at := diag.Site{SourceID: 0, Location: "t.c:1"}

	nested := a.NewArray(Basic(Int), 4)
	nested.Qual = QualConst
	ValidateArrayElem(nested, at, &sink)

	if len(sink.Records) != 1 || sink.Records[0].Tag != diag.TagArrayQualifierNotOutermost {
		t.Fatalf("diagnostics = %v, want exactly one TagArrayQualifierNotOutermost", sink.Records)
	}
}

func TestValidateRestrictOnNonPointerDiagnoses(t *testing.T) {
	var sink diag.List
	at := diag.Site{SourceID: 0, Location: "t.c:1"}

	tp := Basic(Int)
	tp.Qual = QualRestrict
	ValidateRestrict(tp, at, &sink)

	if len(sink.Records) != 1 || sink.Records[0].Tag != diag.TagRestrictNonPointer {
		t.Fatalf("diagnostics = %v, want exactly one TagRestrictNonPointer", sink.Records)
	}
}

func TestValidateRestrictOnPointerIsSilent(t *testing.T) {
	a := NewArena()
	var sink diag.List
	at := diag.Site{SourceID: 0, Location: "t.c:1"}

	ptr := a.NewPointer(Basic(Int))
	ptr.Qual = QualRestrict
	ValidateRestrict(ptr, at, &sink)

	if len(sink.Records) != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Records)
	}
}
