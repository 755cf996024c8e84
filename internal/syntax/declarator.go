// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"github.com/glepnir/arocc/internal/diag"
	"github.com/glepnir/arocc/internal/token"
	"github.com/glepnir/arocc/internal/types"
)

// Declarator is the result of parsing one declarator or abstract
// declarator (spec.md §4.3): the declared name's token index (0 for
// abstract), the fully assembled Type, and two convenience flags
// mirroring the spec's "a flag that the outermost constructor is a
// function, and a flag that it was given in K&R old-style form" —
// both are derived directly from the final assembled Type's own
// specifier rather than threaded through the recursive parse.
type Declarator struct {
	NameTok uint32
	Type    types.Type
}

// IsFunc reports whether the outermost derived constructor is a
// function, the test spec.md §4.4 uses to recognize a function
// definition.
func (d Declarator) IsFunc() bool { return d.Type.IsFunc() }

// IsOldStyle reports whether the outermost function constructor was
// given in K&R identifier-list form.
func (d Declarator) IsOldStyle() bool { return d.Type.Specifier == types.OldStyleFunc }

// parseDeclarator implements the `declarator` production of spec.md
// §4.3:
//
//	declarator  = pointer? ( IDENT | '(' declarator ')' ) direct-declarator*
//	pointer     = '*' type-qual* pointer?
//
// base is the decl-specifier base type the Specifier Builder already
// finalized.
func (p *Parser) parseDeclarator(base types.Type) (Declarator, error) {
	base, err := p.parsePointerPrefix(base)
	if err != nil {
		return Declarator{}, err
	}

	switch p.stream.Peek().Kind {
	case token.KindIdent:
		nameTok := p.stream.Next().ID
		full, err := p.parseDirectDeclaratorSuffixes(base)
		if err != nil {
			return Declarator{}, err
		}
		return Declarator{NameTok: nameTok, Type: full}, nil

	case token.KindLParen:
		p.stream.Next()
		inner, err := p.parseDeclarator(base)
		if err != nil {
			return Declarator{}, err
		}
		if _, err := expect(p.stream, token.KindRParen, p.site(), p.sink); err != nil {
			return Declarator{}, err
		}
		outer, err := p.parseDirectDeclaratorSuffixes(base)
		if err != nil {
			return Declarator{}, err
		}
		combined := types.Combine(inner.Type, outer, p.site(), p.sink)
		return Declarator{NameTok: inner.NameTok, Type: combined}, nil

	default:
		// Abstract declarator: no identifier. A bare base with no
		// suffixes is itself a legal (trivial) abstract declarator.
		full, err := p.parseDirectDeclaratorSuffixes(base)
		if err != nil {
			return Declarator{}, err
		}
		return Declarator{Type: full}, nil
	}
}

// parseAbstractDeclarator is identical recursive descent but never
// consumes an identifier; used for parameter types and anywhere else
// a bare type-name is expected (spec.md §4.3 "Abstract declarator").
func (p *Parser) parseAbstractDeclarator(base types.Type) (Declarator, error) {
	base, err := p.parsePointerPrefix(base)
	if err != nil {
		return Declarator{}, err
	}
	if p.stream.Peek().Kind == token.KindLParen {
		// Only treat '(' as a parenthesized sub-declarator if it is not
		// actually the start of a parameter list belonging to a later
		// direct-declarator: that distinction is exactly the `identifier
		// | '(' declarator ')'` ambiguity spec.md §4.3 names. The choice is
		// made up front by looksLikeAbstractParenSuffix: a '(' it judges
		// to open a parameter list (a function suffix, not a
		// sub-declarator) is left unconsumed for the suffix parsing below.
		if !p.looksLikeAbstractParenSuffix() {
			p.stream.Next()
			inner, err := p.parseAbstractDeclarator(base)
			if err != nil {
				return Declarator{}, err
			}
			if _, err := expect(p.stream, token.KindRParen, p.site(), p.sink); err != nil {
				return Declarator{}, err
			}
			outer, err := p.parseDirectDeclaratorSuffixes(base)
			if err != nil {
				return Declarator{}, err
			}
			return Declarator{Type: types.Combine(inner.Type, outer, p.site(), p.sink)}, nil
		}
	}
	full, err := p.parseDirectDeclaratorSuffixes(base)
	if err != nil {
		return Declarator{}, err
	}
	return Declarator{Type: full}, nil
}

// looksLikeAbstractParenSuffix reports whether a '(' at the current
// position is actually a function-suffix parameter list rather than a
// parenthesized sub-declarator: true when the very next token closes
// the parens immediately (`()`) or starts a decl-specifier (a
// prototyped parameter), since an abstract sub-declarator can never be
// empty in a way that's ambiguous with those.
func (p *Parser) looksLikeAbstractParenSuffix() bool {
	next := p.stream.PeekAt(1)
	if next.Kind == token.KindRParen {
		return true
	}
	return p.isTypeStartToken(next)
}

// parsePointerPrefix consumes zero or more `'*' type-qual*` prefixes,
// each one wrapping base in a fresh pointer Type (spec.md §4.3 "Each
// pointer prefix wraps the current base type in a new pointer Type
// whose pointee is a freshly allocated copy of the previous base").
func (p *Parser) parsePointerPrefix(base types.Type) (types.Type, error) {
	for p.stream.Peek().Kind == token.KindStar {
		p.stream.Next()
		ptr := p.arena.NewPointer(base)
		ptr.Qual = p.parseQualifierList()
		types.ValidateRestrict(ptr, p.site(), p.sink)
		base = ptr
	}
	return base, nil
}

// parseQualifierList consumes a run of qualifier keywords and folds
// them into a single Qualifiers bitset.
func (p *Parser) parseQualifierList() types.Qualifiers {
	var q types.Qualifiers
	for {
		switch p.stream.Peek().Kind {
		case token.KindConst:
			q = q.With(types.QualConst, true)
		case token.KindVolatile:
			q = q.With(types.QualVolatile, true)
		case token.KindRestrict:
			q = q.With(types.QualRestrict, true)
		case token.KindAtomicQual:
			q = q.With(types.QualAtomic, true)
		default:
			return q
		}
		p.stream.Next()
	}
}

// parseDirectDeclaratorSuffixes implements the `direct-decl*`
// repetition, folded right-to-left by plain recursion: the first
// suffix encountered wraps whatever the remaining suffixes (parsed
// first, recursively) produce, which is what gives `int a[3][4]` the
// correct "array of 3 arrays of 4 ints" nesting rather than the
// reverse.
func (p *Parser) parseDirectDeclaratorSuffixes(base types.Type) (types.Type, error) {
	switch p.stream.Peek().Kind {
	case token.KindLBracket:
		p.stream.Next()
		info, err := p.parseArrayBounds()
		if err != nil {
			return types.Type{}, err
		}
		if _, err := expect(p.stream, token.KindRBracket, p.site(), p.sink); err != nil {
			return types.Type{}, err
		}
		elem, err := p.parseDirectDeclaratorSuffixes(base)
		if err != nil {
			return types.Type{}, err
		}
		types.ValidateArrayElem(elem, p.site(), p.sink)
		return info.build(p.arena, elem), nil

	case token.KindLParen:
		p.stream.Next()
		params, err := p.parseParamList()
		if err != nil {
			return types.Type{}, err
		}
		if _, err := expect(p.stream, token.KindRParen, p.site(), p.sink); err != nil {
			return types.Type{}, err
		}
		ret, err := p.parseDirectDeclaratorSuffixes(base)
		if err != nil {
			return types.Type{}, err
		}
		types.ValidateFuncReturn(ret, p.site(), p.sink)
		switch {
		case params.OldStyle:
			krParams := make([]types.Param, len(params.OldStyleNames))
			for i, tok := range params.OldStyleNames {
				// Implicit-int default (classic K&R); explicit param-type
				// declarations between ')' and '{' overwrite this.
				krParams[i] = types.Param{Name: p.lexemeOrEmpty(tok), Type: types.Basic(types.Int)}
			}
			return p.arena.NewOldStyleFunc(ret, krParams), nil
		case params.Variadic:
			return p.arena.NewVarArgsFunc(ret, params.Params), nil
		default:
			return p.arena.NewFunc(ret, params.Params), nil
		}

	default:
		return base, nil
	}
}

// arrayKind distinguishes the four array-bound shapes spec.md §4.3
// names, before the final Type is built (the length/"static"/unspecified
// facts are known before the element type, which is parsed afterward by
// the recursive suffix call).
type arrayKind uint8

const (
	arrayFixed arrayKind = iota
	arrayStatic
	arrayIncomplete
	arrayVLA
	arrayUnspecifiedVLA
)

type arrayBounds struct {
	kind   arrayKind
	length uint64
	lenRef types.ExprRef
	qual   types.Qualifiers
}

func (b arrayBounds) build(a *types.Arena, elem types.Type) types.Type {
	elem.Qual = b.qual
	switch b.kind {
	case arrayStatic:
		return a.NewStaticArray(elem, b.length)
	case arrayIncomplete:
		return a.NewIncompleteArray(elem)
	case arrayVLA:
		return a.NewVLA(elem, b.lenRef)
	case arrayUnspecifiedVLA:
		return a.NewUnspecifiedVLA(elem)
	default:
		return a.NewArray(elem, b.length)
	}
}

// parseArrayBounds implements spec.md §4.3 "Array bounds": optional
// qualifiers and `static` in either order, then a length expression,
// an empty bound, or a bare `*`.
func (p *Parser) parseArrayBounds() (arrayBounds, error) {
	var b arrayBounds
	isStatic := false
loop:
	for {
		switch p.stream.Peek().Kind {
		case token.KindStatic:
			isStatic = true
			p.stream.Next()
		case token.KindConst, token.KindVolatile, token.KindRestrict, token.KindAtomicQual:
			b.qual = b.qual.With(p.parseQualifierList(), true)
		default:
			break loop
		}
	}

	if p.stream.Peek().Kind == token.KindStar && p.stream.PeekAt(1).Kind == token.KindRBracket {
		p.stream.Next()
		b.kind = arrayUnspecifiedVLA
		return b, nil
	}

	if p.stream.Peek().Kind == token.KindRBracket {
		b.kind = arrayIncomplete
		return b, nil
	}

	if v, ok := (token.ConstEvaluator{}).Eval(p.stream); ok {
		b.length = uint64(v)
		if isStatic {
			b.kind = arrayStatic
		} else {
			b.kind = arrayFixed
		}
		return b, nil
	}

	// Non-constant bound: a real implementation would hand this token
	// run to the expression evaluator (spec.md §1, out of scope here);
	// this port advances past it and records no ExprRef.
	for p.stream.Peek().Kind != token.KindRBracket && p.stream.Peek().Kind != token.KindEOF {
		p.stream.Next()
	}
	b.kind = arrayVLA
	return b, nil
}

// paramList is the result of parsing one `(param-list)` suffix.
type paramList struct {
	Params        []types.Param
	Variadic      bool
	OldStyle      bool
	OldStyleNames []uint32
}

// parseParamList implements spec.md §4.3 "Parameter list".
func (p *Parser) parseParamList() (paramList, error) {
	if p.stream.Peek().Kind == token.KindRParen {
		return paramList{}, nil
	}

	if !p.isTypeStart() && p.stream.Peek().Kind == token.KindIdent {
		// Old-style (K&R) identifier list: names only, types are bound by
		// the declarations between ')' and '{' (SPEC_FULL.md §5).
		var names []uint32
		for {
			tok, err := expect(p.stream, token.KindIdent, p.site(), p.sink)
			if err != nil {
				return paramList{}, err
			}
			names = append(names, tok.ID)
			if p.stream.Peek().Kind != token.KindComma {
				break
			}
			p.stream.Next()
		}
		return paramList{OldStyle: true, OldStyleNames: names}, nil
	}

	var params []types.Param
	variadic := false
	for {
		if p.stream.Peek().Kind == token.KindEllipsis {
			if len(params) == 0 {
				// spec.md §4.3: "`...` (only allowed after at least one
				// real parameter)". A bare `(...)` is malformed; report
				// and recover by dropping the ellipsis, leaving a
				// zero-parameter (non-variadic) prototype.
				p.site().Report(p.sink, diag.TagEllipsisWithoutParameter, nil)
				p.stream.Next()
				break
			}
			p.stream.Next()
			variadic = true
			break
		}
		spec, err := p.parseDeclSpecifiers()
		if err != nil {
			return paramList{}, err
		}
		decl, err := p.parseAbstractOrNamedDeclarator(spec.Type)
		if err != nil {
			return paramList{}, err
		}
		params = append(params, types.Param{
			Name:     p.lexemeOrEmpty(decl.NameTok),
			Type:     adjustParamType(p.arena, decl.Type),
			Register: spec.Storage == storageRegister,
		})
		if p.stream.Peek().Kind != token.KindComma {
			break
		}
		p.stream.Next()
	}

	params = p.validateVoidParameter(params, variadic)
	return paramList{Params: params, Variadic: variadic}, nil
}

// validateVoidParameter implements spec.md §4.3's `void` parameter
// rule: a single unqualified, unnamed `void` parameter means a
// zero-parameter prototype; `void` anywhere else is an error.
func (p *Parser) validateVoidParameter(params []types.Param, variadic bool) []types.Param {
	if len(params) == 1 && !variadic && params[0].Type.Specifier == types.Void &&
		params[0].Type.Qual == 0 && params[0].Name == "" {
		return nil
	}
	for _, prm := range params {
		if prm.Type.Specifier == types.Void {
			p.site().Report(p.sink, diag.TagVoidParameterMisuse, nil)
		}
	}
	return params
}

// parseAbstractOrNamedDeclarator parses a parameter's declarator,
// which may or may not carry a name.
func (p *Parser) parseAbstractOrNamedDeclarator(base types.Type) (Declarator, error) {
	if p.stream.Peek().Kind == token.KindIdent || p.stream.Peek().Kind == token.KindStar ||
		(p.stream.Peek().Kind == token.KindLParen && !p.looksLikeAbstractParenSuffix()) {
		return p.parseDeclarator(base)
	}
	return p.parseAbstractDeclarator(base)
}

// adjustParamType implements spec.md §4.3's parameter-adjustment
// rules: function parameters decay to pointer-to-function, array
// parameters (any variant) decay to pointer-to-element.
func adjustParamType(a *types.Arena, t types.Type) types.Type {
	if t.IsFunc() {
		return a.NewPointer(t)
	}
	if t.IsArray() {
		elem, _ := t.ElemType()
		return a.NewPointer(elem)
	}
	return t
}
