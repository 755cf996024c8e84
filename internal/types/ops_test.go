// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/glepnir/arocc/internal/target"
)

func TestIsIntIsFloat(t *testing.T) {
	for _, s := range []Specifier{Bool, Char, SChar, UChar, Short, UShort, Int, UInt, Long, ULong, LongLong, ULongLong} {
		if !Basic(s).IsInt() {
			t.Errorf("Basic(%v).IsInt() = false, want true", s)
		}
		if Basic(s).IsFloat() {
			t.Errorf("Basic(%v).IsFloat() = true, want false", s)
		}
	}
	for _, s := range []Specifier{Float, Double, LongDouble, ComplexFloat, ComplexDouble, ComplexLongDouble} {
		if !Basic(s).IsFloat() {
			t.Errorf("Basic(%v).IsFloat() = false, want true", s)
		}
		if Basic(s).IsInt() {
			t.Errorf("Basic(%v).IsInt() = true, want false", s)
		}
	}
}

func TestIsUnsignedInt(t *testing.T) {
	linux386 := target.New(target.OSLinux, target.Arch386, target.CharSignednessDefault)
	linuxARM := target.New(target.OSLinux, target.ArchARM, target.CharSignednessDefault)

	tests := []struct {
		name string
		t    Type
		ctx  target.Context
		want bool
	}{
		{"uint", Basic(UInt), linux386, true},
		{"int", Basic(Int), linux386, false},
		{"char on 386 default signed", Basic(Char), linux386, false},
		{"char on arm default unsigned", Basic(Char), linuxARM, true},
	}
	for _, test := range tests {
		if got := test.t.IsUnsignedInt(test.ctx); got != test.want {
			t.Errorf("%s: IsUnsignedInt() = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestElemType(t *testing.T) {
	a := NewArena()
	ptr := a.NewPointer(Basic(Int))
	if elem, ok := ptr.ElemType(); !ok || elem.Specifier != Int {
		t.Errorf("ElemType(pointer) = %v, %v, want Int, true", elem, ok)
	}

	arr := a.NewArray(Basic(Char), 4)
	if elem, ok := arr.ElemType(); !ok || elem.Specifier != Char {
		t.Errorf("ElemType(array) = %v, %v, want Char, true", elem, ok)
	}

	if _, ok := Basic(Int).ElemType(); ok {
		t.Errorf("ElemType(int) reported ok=true, want false")
	}
}

func TestIntegerPromotion(t *testing.T) {
	ctx := target.Native()
	tests := []struct {
		in   Specifier
		want Specifier
	}{
		{Bool, Int}, {Char, Int}, {SChar, Int}, {UChar, Int}, {Short, Int},
		{Int, Int}, {UInt, UInt}, {Long, Long},
	}
	for _, test := range tests {
		if got := IntegerPromotion(Basic(test.in), ctx).Specifier; got != test.want {
			t.Errorf("IntegerPromotion(%v) = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestHasIncompleteSize(t *testing.T) {
	a := NewArena()
	r := NewRecord(a, "s")
	incomplete := NewStruct(r)
	if !HasIncompleteSize(incomplete) {
		t.Errorf("HasIncompleteSize(incomplete struct) = false, want true")
	}
	r.SetFields(nil)
	if HasIncompleteSize(incomplete) {
		t.Errorf("HasIncompleteSize(complete struct) = true, want false")
	}

	if !HasIncompleteSize(a.NewIncompleteArray(Basic(Int))) {
		t.Errorf("HasIncompleteSize(incomplete array) = false, want true")
	}
	if HasIncompleteSize(Basic(Int)) {
		t.Errorf("HasIncompleteSize(int) = true, want false")
	}
}

func TestSizeofFundamentalAndLong(t *testing.T) {
	ctx := target.New(target.OSLinux, target.Arch386, target.CharSignednessDefault)
	tests := []struct {
		s    Specifier
		want uint32
	}{
		{Char, 1}, {Short, 2}, {Int, 4}, {Long, 4}, {LongLong, 8}, {Double, 8},
	}
	for _, test := range tests {
		got := Sizeof(Basic(test.s), ctx)
		if got == nil || *got != test.want {
			t.Errorf("Sizeof(%v) on 386 = %v, want %d", test.s, got, test.want)
		}
	}

	ctx64 := target.New(target.OSLinux, target.ArchAMD64, target.CharSignednessDefault)
	if got := Sizeof(Basic(Long), ctx64); got == nil || *got != 8 {
		t.Errorf("Sizeof(long) on amd64/linux = %v, want 8", got)
	}
}

func TestSizeofIncompleteReturnsNil(t *testing.T) {
	a := NewArena()
	incompleteArray := a.NewIncompleteArray(Basic(Int))
	if got := Sizeof(incompleteArray, target.Native()); got != nil {
		t.Errorf("Sizeof(incomplete array) = %v, want nil", got)
	}
}

func TestSizeofArrayMultipliesElemSize(t *testing.T) {
	a := NewArena()
	arr := a.NewArray(Basic(Int), 4)
	got := Sizeof(arr, target.Native())
	if got == nil || *got != 16 {
		t.Errorf("Sizeof([4]int) = %v, want 16", got)
	}
}

func TestAlignofHonorsExplicitOverride(t *testing.T) {
	tp := Basic(Int)
	tp.Alignment = 16
	got := Alignof(tp, target.Native())
	if got == nil || *got != 16 {
		t.Errorf("Alignof(_Alignas(16) int) = %v, want 16", got)
	}
}
