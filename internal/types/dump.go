// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// dumpNames gives the canonical tag spelling spec.md §3 lists for each
// fundamental specifier — the dump format renders the tag itself
// (`int`, `ulong_long`, `complex_long_double`, ...), not a
// human-readable phrase, on purpose: spec.md §6 calls this "a
// deliberately foreign syntax" precisely so a reader can't confuse it
// with real C source.
var dumpNames = [nspecifier]string{
	Void: "void", Bool: "bool",
	Char: "char", SChar: "schar", UChar: "uchar",
	Short: "short", UShort: "ushort",
	Int: "int", UInt: "uint",
	Long: "long", ULong: "ulong",
	LongLong: "long_long", ULongLong: "ulong_long",
	Float: "float", Double: "double", LongDouble: "long_double",
	ComplexFloat: "complex_float", ComplexDouble: "complex_double", ComplexLongDouble: "complex_long_double",
}

// Dump renders t in the textual format spec.md §6 specifies:
// `*T` for pointers, `[N]T` for arrays, `fn (param-list) ReturnType`
// for functions (variadic appends ", ..." before the closing paren,
// anonymous parameters omit "name: "), qualifiers as lowercase words
// before the type, and `_Alignas(N)` appended when Alignment != 0.
// Named struct/union/enum types are rendered by name only — matching
// the teacher's own `Tconv`/`ShortString` distinction between a short,
// cycle-safe rendering and the fully expanded one (LongDump, below),
// since a named record can reference itself (spec.md §9).
func Dump(t Type) string {
	var b strings.Builder
	b.WriteString(t.Qual.String())
	b.WriteString(dumpBody(t, false))
	if t.Alignment != 0 {
		fmt.Fprintf(&b, " _Alignas(%d)", t.Alignment)
	}
	return b.String()
}

// LongDump is Dump's fully-expanded counterpart: anonymous *and*
// named struct/union/enum field lists are spelled out recursively,
// guarding against the cycles a named record may legitimately contain
// by printing "..." the second time a given descriptor is encountered
// on the current path. It is the form used for structural debugging
// and for the fingerprint cache below, where the cost of walking a
// wide struct hierarchy repeatedly is worth memoizing.
func LongDump(t Type) string {
	if ak, ok := dumpCacheKey(t); ok {
		if cached, ok := ak.arena.dumpCache.Load(ak.key); ok {
			return cached.(string)
		}
		s := longDump(t, map[any]bool{})
		ak.arena.dumpCache.Store(ak.key, s)
		return s
	}
	return longDump(t, map[any]bool{})
}

func dumpBody(t Type, long bool) string {
	switch t.Specifier {
	case Pointer:
		return "*" + dumpRec(t.Elem(), long)
	case UnspecifiedVariableLenArray:
		return "[*]" + dumpRec(t.Elem(), long)
	case Array:
		return "[" + strconv.FormatUint(t.arr.Length, 10) + "]" + dumpRec(t.arr.Elem, long)
	case StaticArray:
		return "[static " + strconv.FormatUint(t.arr.Length, 10) + "]" + dumpRec(t.arr.Elem, long)
	case IncompleteArray:
		return "[]" + dumpRec(t.arr.Elem, long)
	case VariableLenArray:
		length := "n"
		if s, ok := t.vla.Length.(fmt.Stringer); ok {
			length = s.String()
		}
		return "[" + length + "]" + dumpRec(t.vla.Elem, long)
	case Func, VarArgsFunc, OldStyleFunc:
		return dumpFunc(t, long)
	case Struct:
		return dumpRecord("struct", t.rec, long)
	case Union:
		return dumpRecord("union", t.rec, long)
	case Enum:
		return dumpEnum(t.enm, long)
	default:
		return dumpNames[t.Specifier]
	}
}

func dumpRec(t Type, long bool) string {
	var b strings.Builder
	b.WriteString(t.Qual.String())
	b.WriteString(dumpBody(t, long))
	if t.Alignment != 0 {
		fmt.Fprintf(&b, " _Alignas(%d)", t.Alignment)
	}
	return b.String()
}

func dumpFunc(t Type, long bool) string {
	fn := t.fn
	parts := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		if p.Name == "" {
			parts[i] = dumpRec(p.Type, long)
		} else {
			parts[i] = p.Name + ": " + dumpRec(p.Type, long)
		}
	}
	body := "fn (" + strings.Join(parts, ", ")
	if t.Specifier == VarArgsFunc {
		if len(parts) > 0 {
			body += ", ..."
		} else {
			body += "..."
		}
	}
	body += ") " + dumpRec(fn.Return, long)
	return body
}

func dumpRecord(kw string, r *Record, long bool) string {
	name := r.Name
	if name == "" {
		name = "<anonymous>"
	}
	if !long && r.Name != "" {
		return kw + " " + name
	}
	if !r.complete {
		return kw + " " + name + " <incomplete>"
	}
	fields := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		field := f.Name + ": " + dumpRec(f.Type, long)
		if f.BitWidth != 0 {
			field += fmt.Sprintf(":%d", f.BitWidth)
		}
		fields[i] = field
	}
	return kw + " " + name + " { " + strings.Join(fields, "; ") + " }"
}

func dumpEnum(e *Enum, long bool) string {
	name := e.Name
	if name == "" {
		name = "<anonymous>"
	}
	if !long && e.Name != "" {
		return "enum " + name
	}
	if !e.complete {
		return "enum " + name + " <incomplete>"
	}
	labels := make([]string, len(e.Enumerators))
	for i, en := range e.Enumerators {
		labels[i] = fmt.Sprintf("%s=%d", en.Name, en.Value)
	}
	return "enum " + name + " { " + strings.Join(labels, ", ") + " }"
}

// longDump is the cycle-guarded recursive expansion used by LongDump.
// The guard is keyed on descriptor identity (the *Record/*Enum
// pointer), matching the teacher's own pattern of tracking visited
// nodes by pointer identity during recursive Type printing.
func longDump(t Type, seen map[any]bool) string {
	switch t.Specifier {
	case Struct, Union:
		if seen[t.rec] {
			kw := "struct"
			if t.Specifier == Union {
				kw = "union"
			}
			return kw + " " + recordNameOr(t.rec.Name, "<anonymous>") + " { ... }"
		}
		seen[t.rec] = true
		defer delete(seen, t.rec)
		return longDumpBody(t, seen)
	case Enum:
		return dumpEnum(t.enm, true)
	case Pointer, UnspecifiedVariableLenArray:
		return t.Qual.String() + dumpPrefix(t) + longDump(t.Elem(), seen)
	case Array, StaticArray, IncompleteArray:
		return t.Qual.String() + arrayPrefix(t) + longDump(t.arr.Elem, seen)
	case VariableLenArray:
		return t.Qual.String() + vlaPrefix(t) + longDump(t.vla.Elem, seen)
	case Func, VarArgsFunc, OldStyleFunc:
		return t.Qual.String() + dumpFuncLong(t, seen)
	default:
		return t.Qual.String() + dumpNames[t.Specifier]
	}
}

func recordNameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func dumpPrefix(t Type) string {
	if t.Specifier == UnspecifiedVariableLenArray {
		return "[*]"
	}
	return "*"
}

func arrayPrefix(t Type) string {
	switch t.Specifier {
	case StaticArray:
		return "[static " + strconv.FormatUint(t.arr.Length, 10) + "]"
	case IncompleteArray:
		return "[]"
	default:
		return "[" + strconv.FormatUint(t.arr.Length, 10) + "]"
	}
}

func vlaPrefix(t Type) string {
	length := "n"
	if s, ok := t.vla.Length.(fmt.Stringer); ok {
		length = s.String()
	}
	return "[" + length + "]"
}

func dumpFuncLong(t Type, seen map[any]bool) string {
	fn := t.fn
	parts := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		if p.Name == "" {
			parts[i] = longDump(p.Type, seen)
		} else {
			parts[i] = p.Name + ": " + longDump(p.Type, seen)
		}
	}
	body := "fn (" + strings.Join(parts, ", ")
	if t.Specifier == VarArgsFunc {
		if len(parts) > 0 {
			body += ", ..."
		} else {
			body += "..."
		}
	}
	body += ") " + longDump(fn.Return, seen)
	return body
}

func longDumpBody(t Type, seen map[any]bool) string {
	kw := "struct"
	if t.Specifier == Union {
		kw = "union"
	}
	return dumpRecordFields(kw, t.rec, seen)
}

func dumpRecordFields(kw string, r *Record, seen map[any]bool) string {
	name := recordNameOr(r.Name, "<anonymous>")
	if !r.complete {
		return kw + " " + name + " <incomplete>"
	}
	fields := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		field := f.Name + ": " + longDump(f.Type, seen)
		if f.BitWidth != 0 {
			field += fmt.Sprintf(":%d", f.BitWidth)
		}
		fields[i] = field
	}
	return kw + " " + name + " { " + strings.Join(fields, "; ") + " }"
}

// LongDump results for struct/union/enum types are memoized per-Arena
// (types.Arena.dumpCache/dumpGeneration), keyed by a blake2b-256 digest
// of the descriptor's identity and current generation. Record/Enum
// completion (SetFields/SetEnumerators) mutates the descriptor in
// place (invariant 7) and bumps that generation through
// Arena.invalidateDump, so a stale cache entry is never observed.
// Keeping the maps on the owning Arena rather than as package-level
// state means the cache is reclaimed along with the Arena and its
// descriptors once a translation unit is discarded (spec.md §3
// "Ownership & lifecycle"), instead of retaining every struct/union/
// enum ever dumped for the life of the process.
func dumpCacheKey(t Type) (arenaAndKey, bool) {
	var descriptor any
	var a *Arena
	switch t.Specifier {
	case Struct, Union:
		descriptor, a = t.rec, t.rec.arena
	case Enum:
		descriptor, a = t.enm, t.enm.arena
	default:
		return arenaAndKey{}, false
	}
	gen, _ := a.dumpGeneration.Load(descriptor)
	genVal, _ := gen.(uint64)
	h, _ := blake2b.New256(nil)
	fmt.Fprintf(h, "%p:%d", descriptor, genVal)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return arenaAndKey{arena: a, key: out}, true
}

// arenaAndKey pairs a dump cache key with the Arena whose dumpCache it
// indexes, since the cache itself is per-Arena rather than global.
type arenaAndKey struct {
	arena *Arena
	key   [32]byte
}
