// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "testing"

func TestEqlFundamental(t *testing.T) {
	if !Eql(Basic(Int), Basic(Int), true) {
		t.Errorf("Eql(int, int) = false, want true")
	}
	if Eql(Basic(Int), Basic(UInt), true) {
		t.Errorf("Eql(int, unsigned int) = true, want false")
	}
}

func TestEqlQualifiers(t *testing.T) {
	a := Basic(Int)
	a.Qual = QualConst
	b := Basic(Int)

	if Eql(a, b, true) {
		t.Errorf("Eql with checkQualifiers=true ignored a qualifier difference")
	}
	if !Eql(a, b, false) {
		t.Errorf("Eql with checkQualifiers=false = false, want true")
	}
}

func TestEqlPointerRecursesOnElement(t *testing.T) {
	ar := NewArena()
	a := ar.NewPointer(Basic(Int))
	b := ar.NewPointer(Basic(Int))
	c := ar.NewPointer(Basic(Char))

	if !Eql(a, b, true) {
		t.Errorf("Eql(*int, *int) = false, want true")
	}
	if Eql(a, c, true) {
		t.Errorf("Eql(*int, *char) = true, want false")
	}
}

func TestEqlArrayChecksLength(t *testing.T) {
	ar := NewArena()
	a := ar.NewArray(Basic(Int), 3)
	b := ar.NewArray(Basic(Int), 4)
	c := ar.NewArray(Basic(Int), 3)

	if Eql(a, b, true) {
		t.Errorf("Eql([3]int, [4]int) = true, want false")
	}
	if !Eql(a, c, true) {
		t.Errorf("Eql([3]int, [3]int) = false, want true")
	}
}

func TestEqlRecordIsIdentity(t *testing.T) {
	a := NewArena()
	r1 := NewRecord(a, "s")
	r2 := NewRecord(a, "s")
	r1.SetFields([]Field{{Name: "x", Type: Basic(Int)}})
	r2.SetFields([]Field{{Name: "x", Type: Basic(Int)}})

	s1 := NewStruct(r1)
	s1Alias := NewStruct(r1)
	s2 := NewStruct(r2)

	if !Eql(s1, s1Alias, true) {
		t.Errorf("Eql of two Types wrapping the same *Record = false, want true")
	}
	if Eql(s1, s2, true) {
		t.Errorf("Eql of two distinct *Record with identical fields = true, want false (identity only)")
	}
}

func TestEqlFuncIgnoresParamNames(t *testing.T) {
	a := NewArena()
	f1 := a.NewFunc(Basic(Void), []Param{{Name: "a", Type: Basic(Int)}})
	f2 := a.NewFunc(Basic(Void), []Param{{Name: "b", Type: Basic(Int)}})
	f3 := a.NewFunc(Basic(Void), []Param{{Name: "a", Type: Basic(Char)}})

	if !Eql(f1, f2, true) {
		t.Errorf("Eql(fn(a: int), fn(b: int)) = false, want true (names ignored)")
	}
	if Eql(f1, f3, true) {
		t.Errorf("Eql(fn(int), fn(char)) = true, want false")
	}
}
