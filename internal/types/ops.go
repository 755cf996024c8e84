// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "github.com/glepnir/arocc/internal/target"

// IsCallable implements spec.md §4.2 `is_callable`: returns t if it is
// already a function type, recurses through a pointer to its pointee,
// and returns (Type{}, false) otherwise.
func IsCallable(t Type) (Type, bool) {
	if t.Specifier.isFuncKind() {
		return t, true
	}
	if t.Specifier == Pointer {
		return IsCallable(t.Elem())
	}
	return Type{}, false
}

// IsInt reports whether t is one of the integer specifiers
// (Bool included, matching C's arithmetic-conversion treatment of
// _Bool as an integer type for these queries).
func (t Type) IsInt() bool {
	switch t.Specifier {
	case Bool, Char, SChar, UChar, Short, UShort, Int, UInt, Long, ULong, LongLong, ULongLong:
		return true
	}
	return false
}

// IsFloat reports whether t is one of the floating-point specifiers,
// real or complex.
func (t Type) IsFloat() bool {
	switch t.Specifier {
	case Float, Double, LongDouble, ComplexFloat, ComplexDouble, ComplexLongDouble:
		return true
	}
	return false
}

// IsArray reports whether t is any of the array specifiers: the three
// fixed-layout forms plus the two VLA forms.
func (t Type) IsArray() bool { return t.Specifier.isArrayKind() || t.Specifier == VariableLenArray || t.Specifier == UnspecifiedVariableLenArray }

// IsFunc reports whether t is any of the three function specifiers.
func (t Type) IsFunc() bool { return t.Specifier.isFuncKind() }

// IsEnumOrRecord reports whether t is struct, union, or enum.
func (t Type) IsEnumOrRecord() bool {
	return t.Specifier == Struct || t.Specifier == Union || t.Specifier == Enum
}

// IsPointer reports whether t is a plain pointer (not an
// unspecified-VLA, which shares the same payload shape but a distinct
// specifier tag).
func (t Type) IsPointer() bool { return t.Specifier == Pointer }

// IsUnsignedInt implements spec.md §4.2 `is_unsigned_int`: true for
// the explicitly-unsigned integer specifiers, false for schar and the
// other signed integers, and target-dependent for bare char.
func (t Type) IsUnsignedInt(ctx target.Context) bool {
	switch t.Specifier {
	case UChar, UShort, UInt, ULong, ULongLong:
		return true
	case SChar, Short, Int, Long, LongLong:
		return false
	case Char:
		return !ctx.CharIsSigned()
	}
	return false
}

// ElemType implements spec.md §4.2 `elem_type`: for pointer and
// unspecified-VLA it is the referenced element; for the array variants
// and VLA it is the descriptor's element. The second return is false
// if t has no element type (spec.md: "undefined otherwise").
func (t Type) ElemType() (Type, bool) {
	switch t.Specifier {
	case Pointer, UnspecifiedVariableLenArray:
		return t.Elem(), true
	case Array, StaticArray, IncompleteArray:
		return t.arr.Elem, true
	case VariableLenArray:
		return t.vla.Elem, true
	}
	return Type{}, false
}

// IntegerPromotion implements the C integer-promotion rules (spec.md
// §4.2): bool/char/schar/uchar/short promote to int; ushort promotes
// to int if int can represent every ushort value on this target, else
// to uint; everything int-or-wider is unchanged. t must satisfy IsInt.
func IntegerPromotion(t Type, ctx target.Context) Type {
	switch t.Specifier {
	case Bool, Char, SChar, UChar, Short:
		return Basic(Int)
	case UShort:
		if Sizeof(Basic(UShort), ctx) != nil && Sizeof(Basic(Int), ctx) != nil &&
			*Sizeof(Basic(UShort), ctx) < *Sizeof(Basic(Int), ctx) {
			return Basic(Int)
		}
		return Basic(UInt)
	default:
		return t
	}
}

// fundamentalSizes gives the target-independent byte size for every
// fundamental specifier except long/ulong (target.Context.LongWidth)
// and the three pointer-width-derived forms handled directly in
// Sizeof.
var fundamentalSizes = map[Specifier]uint32{
	Void: 0, Bool: 1,
	Char: 1, SChar: 1, UChar: 1,
	Short: 2, UShort: 2,
	Int: 4, UInt: 4,
	LongLong: 8, ULongLong: 8,
	Float: 4, Double: 8, LongDouble: 16,
	ComplexFloat: 8, ComplexDouble: 16, ComplexLongDouble: 32,
}

// HasIncompleteSize reports whether sizeof(t) has no defined value:
// variable_len_array, unspecified_variable_len_array, incomplete_array,
// and incomplete struct/union/enum (spec.md §4.2, and the invariant
// "sizeof returns none iff has_incomplete_size returns true").
func HasIncompleteSize(t Type) bool {
	switch t.Specifier {
	case VariableLenArray, UnspecifiedVariableLenArray, IncompleteArray:
		return true
	case Struct, Union:
		return !t.rec.IsComplete()
	case Enum:
		return !t.enm.IsComplete()
	}
	return false
}

// Sizeof implements spec.md §4.2 `sizeof`. It returns nil exactly when
// HasIncompleteSize(t) is true.
func Sizeof(t Type, ctx target.Context) *uint32 {
	if HasIncompleteSize(t) {
		return nil
	}
	u32 := func(v uint32) *uint32 { return &v }

	switch t.Specifier {
	case Long, ULong:
		return u32(ctx.LongWidth())
	case Pointer, UnspecifiedVariableLenArray, StaticArray:
		return u32(ctx.PointerWidth())
	case Array:
		elemSize := Sizeof(t.arr.Elem, ctx)
		if elemSize == nil {
			return nil
		}
		return u32(*elemSize * uint32(t.arr.Length))
	case Struct, Union:
		return u32(t.rec.size)
	case Enum:
		return Sizeof(t.enm.Tag, ctx)
	}
	if sz, ok := fundamentalSizes[t.Specifier]; ok {
		return u32(sz)
	}
	return nil
}

// Alignof returns t's alignment: the explicit override if non-zero,
// else the natural alignment, which this port takes to equal size for
// every fundamental and pointer-like type, and the Record's cached
// alignment for struct/union (spec.md §3 "alignment ... 0 means
// natural alignment for the specifier").
func Alignof(t Type, ctx target.Context) *uint32 {
	if t.Alignment != 0 {
		a := t.Alignment
		return &a
	}
	switch t.Specifier {
	case Struct, Union:
		if !t.rec.IsComplete() {
			return nil
		}
		a := t.rec.align
		return &a
	case Enum:
		return Alignof(t.enm.Tag, ctx)
	}
	return Sizeof(t, ctx)
}
