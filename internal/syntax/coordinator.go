// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"fmt"

	"github.com/glepnir/arocc/internal/diag"
	"github.com/glepnir/arocc/internal/target"
	"github.com/glepnir/arocc/internal/token"
	"github.com/glepnir/arocc/internal/types"
)

// storageClass is the closed set of C storage-class specifiers
// spec.md §4.4 validates (mutually exclusive; `_Thread_local` combines
// only with `extern`, `static`, or no storage class).
type storageClass uint8

const (
	storageNone storageClass = iota
	storageTypedef
	storageExtern
	storageStatic
	storageAuto
	storageRegister
)

func storageClassFor(k token.Kind) storageClass {
	switch k {
	case token.KindTypedef:
		return storageTypedef
	case token.KindExtern:
		return storageExtern
	case token.KindStatic:
		return storageStatic
	case token.KindAuto:
		return storageAuto
	case token.KindRegister:
		return storageRegister
	}
	return storageNone
}

func qualFor(k token.Kind) types.Qualifiers {
	switch k {
	case token.KindConst:
		return types.QualConst
	case token.KindVolatile:
		return types.QualVolatile
	case token.KindRestrict:
		return types.QualRestrict
	case token.KindAtomicQual:
		return types.QualAtomic
	}
	return 0
}

// declSpecResult is the accumulated state of one decl-specifier
// sequence: the Specifier Builder's finalized Type plus the
// orthogonal storage-class/thread-local/function-specifier/alignment
// facts spec.md §4.4 tracks alongside it.
type declSpecResult struct {
	Type        types.Type
	Storage     storageClass
	ThreadLocal bool
	Inline      bool
	Noreturn    bool
	Align       uint32 // from _Alignas; 0 = no override
}

// Parser is the Declaration Coordinator of spec.md §4.4: it drives the
// decl-specifier loop, delegates type words to types.Builder, and
// calls into the Declarator Parser (declarator.go) for each
// init-declarator.
type Parser struct {
	stream token.Stream
	sink   diag.Sink
	arena  *types.Arena
	ctx    target.Context
	scope  *Scope
	ast    *AST

	sourceID uint32

	inFunctionBody bool

	// onDeclaration, if set, is called once per external declaration
	// that parses successfully. internal/profile.Recorder hooks in
	// here via WithDeclarationObserver; nil is the common case.
	onDeclaration func()
}

// WithDeclarationObserver installs fn to be called once per
// successfully parsed external declaration. It returns p for chaining
// at construction time.
func (p *Parser) WithDeclarationObserver(fn func()) *Parser {
	p.onDeclaration = fn
	return p
}

// NewParser returns a Parser ready to consume stream from its current
// position.
func NewParser(stream token.Stream, arena *types.Arena, sink diag.Sink, sourceID uint32, ctx target.Context) *Parser {
	return &Parser{
		stream:   stream,
		sink:     sink,
		arena:    arena,
		ctx:      ctx,
		scope:    NewScope(),
		ast:      NewAST(arena),
		sourceID: sourceID,
	}
}

// site builds the diag.Site for whatever token the stream is
// currently sitting on.
func (p *Parser) site() diag.Site {
	return diag.Site{SourceID: p.sourceID, Location: p.stream.Source().Location(p.stream.Pos())}
}

func (p *Parser) lexemeOrEmpty(tok uint32) string {
	if tok == 0 {
		return ""
	}
	return p.stream.Source().Lexeme(int(tok))
}

// isTypeStartToken reports whether t can begin or continue a
// decl-specifier sequence: any type-specifier/qualifier keyword, or an
// identifier that resolves to a visible typedef name (spec.md §4.4's
// "the Builder's current state permits a type" ambiguity between a
// typedef-name specifier and a K&R parameter name / ordinary
// identifier).
func (p *Parser) isTypeStartToken(t token.Token) bool {
	if t.Kind.IsTypeSpecifier() || t.Kind.IsQualifier() {
		return true
	}
	if t.Kind == token.KindIdent {
		_, ok := p.scope.LookupTypedef(p.lexemeOrEmpty(t.ID))
		return ok
	}
	return false
}

func (p *Parser) isTypeStart() bool { return p.isTypeStartToken(p.stream.Peek()) }

// ParseTranslationUnit drives spec.md §4.4's top-level loop: parse one
// external declaration at a time, resynchronizing at the next
// declaration boundary (spec.md §7) whenever one aborts.
func (p *Parser) ParseTranslationUnit() *AST {
	for p.stream.Peek().Kind != token.KindEOF {
		if err := p.parseExternalDeclaration(); err != nil {
			nextExternDecl(p.stream)
		} else if p.onDeclaration != nil {
			p.onDeclaration()
		}
	}
	return p.ast
}

func (p *Parser) parseExternalDeclaration() error {
	switch p.stream.Peek().Kind {
	case token.KindSemicolon:
		p.stream.Next()
		return nil
	case token.KindStaticAssert:
		return p.parseStaticAssert()
	}

	spec, err := p.parseDeclSpecifiers()
	if err != nil {
		return err
	}
	if p.stream.Peek().Kind == token.KindSemicolon {
		p.stream.Next()
		return nil
	}

	decl, err := p.parseDeclarator(spec.Type)
	if err != nil {
		return err
	}

	switch {
	case spec.Storage == storageTypedef:
		return p.finishTypedef(spec, decl)
	case decl.IsFunc() && p.stream.Peek().Kind == token.KindLBrace:
		return p.finishFunctionBody(spec, decl)
	case decl.IsFunc() && decl.IsOldStyle():
		return p.parseOldStyleFunctionDefinition(spec, decl)
	default:
		return p.finishInitDeclaratorList(spec, decl)
	}
}

// parseDeclSpecifiers implements spec.md §4.4's decl-specifier loop:
// storage class, `_Thread_local`, function specifiers, `_Alignas`,
// qualifiers, and type-specifier words (delegated to types.Builder) in
// any order, until a token is reached that cannot extend the
// sequence.
func (p *Parser) parseDeclSpecifiers() (declSpecResult, error) {
	var res declSpecResult
	var qual types.Qualifiers
	builder := types.NewBuilder()
	storageSeen := false

specLoop:
	for {
		t := p.stream.Peek()
		switch {
		case t.Kind.IsStorageClass():
			sc := storageClassFor(t.Kind)
			if storageSeen && sc != res.Storage {
				p.site().Report(p.sink, diag.TagMultipleStorageClass, nil)
			}
			res.Storage = sc
			storageSeen = true
			p.stream.Next()

		case t.Kind == token.KindThreadLocal:
			if res.Storage != storageNone && res.Storage != storageExtern && res.Storage != storageStatic {
				p.site().Report(p.sink, diag.TagThreadLocalIncompatible, nil)
			}
			res.ThreadLocal = true
			p.stream.Next()

		case t.Kind == token.KindInline:
			if res.Inline {
				p.site().Report(p.sink, diag.TagDuplicateFunctionSpecifier, nil)
			}
			res.Inline = true
			p.stream.Next()

		case t.Kind == token.KindNoreturn:
			// Open Question 2: diagnose the duplicate, keep the first.
			if res.Noreturn {
				p.site().Report(p.sink, diag.TagDuplicateFunctionSpecifier, nil)
			} else {
				res.Noreturn = true
			}
			p.stream.Next()

		case t.Kind == token.KindAlignas:
			p.stream.Next()
			align, err := p.parseAlignas()
			if err != nil {
				return res, err
			}
			if align > res.Align {
				res.Align = align
			}

		case t.Kind == token.KindAtomicKw && p.stream.PeekAt(1).Kind == token.KindLParen:
			p.stream.Next()
			p.stream.Next()
			inner, err := p.parseTypeName()
			if err != nil {
				return res, err
			}
			if _, err := expect(p.stream, token.KindRParen, p.site(), p.sink); err != nil {
				return res, err
			}
			inner.Qual = inner.Qual.With(types.QualAtomic, true)
			builder.InjectType(inner, p.site(), p.sink)

		case t.Kind.IsQualifier():
			qual = qual.With(qualFor(t.Kind), true)
			p.stream.Next()

		case t.Kind == token.KindStruct || t.Kind == token.KindUnion:
			p.stream.Next()
			rt, err := p.parseStructOrUnionSpecifier(t.Kind == token.KindUnion)
			if err != nil {
				return res, err
			}
			builder.InjectType(rt, p.site(), p.sink)

		case t.Kind == token.KindEnum:
			p.stream.Next()
			et, err := p.parseEnumSpecifier()
			if err != nil {
				return res, err
			}
			builder.InjectType(et, p.site(), p.sink)

		case t.Kind.IsTypeSpecifier():
			p.stream.Next()
			builder.Combine(t.Kind, p.site(), p.sink)

		case t.Kind == token.KindIdent && builder.IsEmpty():
			entry, ok := p.scope.LookupTypedef(p.lexemeOrEmpty(t.ID))
			if !ok {
				break specLoop
			}
			p.stream.Next()
			builder.InjectType(entry.Type, p.site(), p.sink)

		default:
			break specLoop
		}
	}

	res.Type = builder.Finalize(p.site(), p.sink)
	res.Type.Qual = res.Type.Qual.With(qual, true)
	res.Type.Alignment = res.Align
	return res, nil
}

// parseAlignas implements `_Alignas ( type-name | constant-expression )`.
func (p *Parser) parseAlignas() (uint32, error) {
	if _, err := expect(p.stream, token.KindLParen, p.site(), p.sink); err != nil {
		return 0, err
	}
	var align uint32
	if p.isTypeStart() {
		t, err := p.parseTypeName()
		if err != nil {
			return 0, err
		}
		if a := types.Alignof(t, p.ctx); a != nil {
			align = *a
		}
	} else if v, ok := (token.ConstEvaluator{}).Eval(p.stream); ok && v > 0 {
		align = uint32(v)
	}
	_, err := expect(p.stream, token.KindRParen, p.site(), p.sink)
	return align, err
}

// parseTypeName parses a bare type-name: decl-specifiers followed by
// an optional abstract declarator (used by `_Atomic(type-name)` and
// `_Alignas(type-name)`).
func (p *Parser) parseTypeName() (types.Type, error) {
	spec, err := p.parseDeclSpecifiers()
	if err != nil {
		return types.Type{}, err
	}
	d, err := p.parseAbstractDeclarator(spec.Type)
	if err != nil {
		return types.Type{}, err
	}
	return d.Type, nil
}

// parseStaticAssert implements the supplemented `_Static_assert`
// feature (SPEC_FULL.md §5): evaluate the condition with the same
// placeholder constant evaluator array bounds use, and report failure
// when it folds to a known zero. The diagnostic payload carries the
// folded condition value and the message lexeme (spec.md §8 scenario 7:
// a message "containing '0' \"fail\"").
func (p *Parser) parseStaticAssert() error {
	p.stream.Next()
	site := p.site()
	if _, err := expect(p.stream, token.KindLParen, site, p.sink); err != nil {
		return err
	}
	v, ok := (token.ConstEvaluator{}).Eval(p.stream)
	failed := ok && v == 0
	message := ""
	if p.stream.Peek().Kind == token.KindComma {
		p.stream.Next()
		message = p.lexemeOrEmpty(p.stream.Peek().ID)
		if _, err := expect(p.stream, token.KindStringLiteral, p.site(), p.sink); err != nil {
			return err
		}
	}
	if failed {
		site.Report(p.sink, diag.TagStaticAssertFailed, fmt.Sprintf("'%d' %s", v, message))
	}
	if _, err := expect(p.stream, token.KindRParen, p.site(), p.sink); err != nil {
		return err
	}
	idx := p.ast.New(TagStaticAssert, types.Type{}, 0)
	p.ast.AddRoot(idx)
	_, err := expect(p.stream, token.KindSemicolon, p.site(), p.sink)
	return err
}

// recordType wraps an already-built Record in Struct or Union.
func recordType(isUnion bool, r *types.Record) types.Type {
	if isUnion {
		return types.NewUnion(r)
	}
	return types.NewStruct(r)
}

// parseStructOrUnionSpecifier parses `struct`/`union` tag-name and
// optional body, registering a forward-reference-capable Record in
// scope before its fields are parsed so a self-referential member
// (`struct node *next;`) resolves (spec.md §9).
func (p *Parser) parseStructOrUnionSpecifier(isUnion bool) (types.Type, error) {
	kind := EntryStruct
	if isUnion {
		kind = EntryUnion
	}

	tagName := ""
	if p.stream.Peek().Kind == token.KindIdent {
		tagName = p.lexemeOrEmpty(p.stream.Peek().ID)
		p.stream.Next()
	}

	if p.stream.Peek().Kind != token.KindLBrace {
		if tagName == "" {
			p.site().Report(p.sink, diag.TagMalformedDeclarator, nil)
			return types.Basic(types.Int), nil
		}
		if entry, ok := p.scope.LookupTag(kind, tagName); ok {
			return entry.Type, nil
		}
		r := types.NewRecord(p.arena, tagName)
		rt := recordType(isUnion, r)
		p.scope.Push(Entry{Kind: kind, Name: tagName, Type: rt})
		return rt, nil
	}

	p.stream.Next() // consume '{'

	var r *types.Record
	if tagName != "" {
		if entry, ok := p.scope.LookupTag(kind, tagName); ok {
			r = entry.Type.RecordDesc()
		}
	}
	if r == nil {
		r = types.NewRecord(p.arena, tagName)
	}
	rt := recordType(isUnion, r)
	if tagName != "" {
		p.scope.Push(Entry{Kind: kind, Name: tagName, Type: rt})
	}

	fields, err := p.parseFieldList()
	if err != nil {
		return rt, err
	}
	r.SetFields(fields)
	return rt, nil
}

// parseFieldList parses a struct/union member-declaration list,
// supporting bit-field widths via the same placeholder constant
// evaluator array bounds use (SPEC_FULL.md §5).
func (p *Parser) parseFieldList() ([]types.Field, error) {
	var fields []types.Field
	for p.stream.Peek().Kind != token.KindRBrace && p.stream.Peek().Kind != token.KindEOF {
		spec, err := p.parseDeclSpecifiers()
		if err != nil {
			return nil, err
		}
		for {
			var name string
			var nameTok uint32
			ft := spec.Type
			if p.stream.Peek().Kind != token.KindColon {
				d, err := p.parseAbstractOrNamedDeclarator(spec.Type)
				if err != nil {
					return nil, err
				}
				ft = d.Type
				nameTok = d.NameTok
				name = p.lexemeOrEmpty(nameTok)
			}
			var width uint32
			if p.stream.Peek().Kind == token.KindColon {
				p.stream.Next()
				if v, ok := (token.ConstEvaluator{}).Eval(p.stream); ok && v > 0 {
					width = uint32(v)
				}
			}
			fields = append(fields, types.Field{Name: name, Type: ft, BitWidth: width})
			if p.stream.Peek().Kind != token.KindComma {
				break
			}
			p.stream.Next()
		}
		if _, err := expect(p.stream, token.KindSemicolon, p.site(), p.sink); err != nil {
			return nil, err
		}
	}
	_, err := expect(p.stream, token.KindRBrace, p.site(), p.sink)
	return fields, err
}

// parseEnumSpecifier parses `enum` tag-name and optional body.
// Enumerators without an explicit `= constant` continue the previous
// value (or start at 0), matching C's default enumerator sequencing.
func (p *Parser) parseEnumSpecifier() (types.Type, error) {
	tagName := ""
	if p.stream.Peek().Kind == token.KindIdent {
		tagName = p.lexemeOrEmpty(p.stream.Peek().ID)
		p.stream.Next()
	}

	if p.stream.Peek().Kind != token.KindLBrace {
		if tagName == "" {
			p.site().Report(p.sink, diag.TagMalformedDeclarator, nil)
			return types.Basic(types.Int), nil
		}
		if entry, ok := p.scope.LookupTag(EntryEnum, tagName); ok {
			return entry.Type, nil
		}
		e := types.NewEnum(p.arena, tagName)
		et := types.NewEnumType(e)
		p.scope.Push(Entry{Kind: EntryEnum, Name: tagName, Type: et})
		return et, nil
	}

	p.stream.Next() // consume '{'
	e := types.NewEnum(p.arena, tagName)
	et := types.NewEnumType(e)
	if tagName != "" {
		p.scope.Push(Entry{Kind: EntryEnum, Name: tagName, Type: et})
	}

	var enumerators []types.Enumerator
	var next uint64
	for p.stream.Peek().Kind != token.KindRBrace && p.stream.Peek().Kind != token.KindEOF {
		nameTok := p.stream.Peek().ID
		name := p.lexemeOrEmpty(nameTok)
		if _, err := expect(p.stream, token.KindIdent, p.site(), p.sink); err != nil {
			return et, err
		}
		val := next
		if p.stream.Peek().Kind == token.KindAssign {
			p.stream.Next()
			if v, ok := (token.ConstEvaluator{}).Eval(p.stream); ok {
				val = uint64(v)
			}
		}
		enumerators = append(enumerators, types.Enumerator{Name: name, Type: et, Value: val})
		p.scope.Push(Entry{Kind: EntrySymbol, Name: name, Type: et, Tok: nameTok})
		next = val + 1
		if p.stream.Peek().Kind != token.KindComma {
			break
		}
		p.stream.Next()
	}
	if _, err := expect(p.stream, token.KindRBrace, p.site(), p.sink); err != nil {
		return et, err
	}
	e.SetEnumerators(types.Basic(types.Int), enumerators)
	return et, nil
}

// finishTypedef registers a comma-separated typedef-name list in
// scope. An initializer on a typedef is illegal (spec.md §4.4).
func (p *Parser) finishTypedef(spec declSpecResult, first Declarator) error {
	decl := first
	for {
		if p.stream.Peek().Kind == token.KindAssign {
			p.site().Report(p.sink, diag.TagInitializerOnTypedef, nil)
			p.stream.Next()
			p.skipInitializer()
		}
		name := p.lexemeOrEmpty(decl.NameTok)
		p.scope.Push(Entry{Kind: EntryTypedef, Name: name, Type: decl.Type, Tok: decl.NameTok})
		idx := p.ast.New(TagTypedef, decl.Type, decl.NameTok)
		p.ast.AddRoot(idx)

		if p.stream.Peek().Kind != token.KindComma {
			break
		}
		p.stream.Next()
		next, err := p.parseDeclarator(spec.Type)
		if err != nil {
			return err
		}
		decl = next
	}
	_, err := expect(p.stream, token.KindSemicolon, p.site(), p.sink)
	return err
}

// finishInitDeclaratorList handles a non-typedef, non-function-definition
// declaration: a comma-separated declarator list, each with an optional
// initializer that is skipped rather than evaluated (spec.md §1, the
// expression evaluator is out of scope).
func (p *Parser) finishInitDeclaratorList(spec declSpecResult, first Declarator) error {
	decl := first
	for {
		p.finishOneDeclarator(spec, decl)
		if p.stream.Peek().Kind != token.KindComma {
			break
		}
		p.stream.Next()
		next, err := p.parseDeclarator(spec.Type)
		if err != nil {
			return err
		}
		decl = next
	}
	_, err := expect(p.stream, token.KindSemicolon, p.site(), p.sink)
	return err
}

func (p *Parser) finishOneDeclarator(spec declSpecResult, decl Declarator) {
	hasInit := p.stream.Peek().Kind == token.KindAssign
	if hasInit {
		p.stream.Next()
		p.skipInitializer()
	}

	name := p.lexemeOrEmpty(decl.NameTok)

	if decl.IsFunc() {
		if hasInit {
			p.site().Report(p.sink, diag.TagInitializerOnFunction, nil)
		}
		p.scope.Push(Entry{Kind: EntrySymbol, Name: name, Type: decl.Type, Tok: decl.NameTok})
		tag := fnTag(false, spec.Storage == storageStatic, spec.Inline, spec.Noreturn)
		idx := p.ast.New(tag, decl.Type, decl.NameTok)
		p.ast.AddRoot(idx)
		return
	}

	if spec.Inline || spec.Noreturn {
		p.site().Report(p.sink, diag.TagFuncSpecifierOnNonFunction, nil)
	}

	storage := spec.Storage
	if hasInit && storage == storageExtern {
		p.site().Report(p.sink, diag.TagExternWithInitializerDowngraded, nil)
		storage = storageNone
	}

	p.scope.Push(Entry{Kind: EntrySymbol, Name: name, Type: decl.Type, Tok: decl.NameTok})
	idx := p.ast.New(varTag(storage, spec.ThreadLocal), decl.Type, decl.NameTok)
	p.ast.AddRoot(idx)
}

func varTag(storage storageClass, threadLocal bool) Tag {
	switch {
	case threadLocal && storage == storageExtern:
		return TagVarThreadLocalExtern
	case threadLocal && storage == storageStatic:
		return TagVarThreadLocalStatic
	case threadLocal:
		return TagVarThreadLocal
	case storage == storageExtern:
		return TagVarExtern
	case storage == storageStatic:
		return TagVarStatic
	default:
		return TagVar
	}
}

// skipInitializer advances past an initializer (`= ...`) up to, but not
// including, the top-level comma or semicolon that ends it. Like
// skipBalanced (errors.go), this treats the initializer as opaque: the
// expression evaluator is out of scope (spec.md §1).
func (p *Parser) skipInitializer() {
	depth := 0
	for {
		t := p.stream.Peek()
		if t.Kind == token.KindEOF {
			return
		}
		if depth == 0 && (t.Kind == token.KindComma || t.Kind == token.KindSemicolon) {
			return
		}
		switch t.Kind {
		case token.KindLParen, token.KindLBracket, token.KindLBrace:
			depth++
		case token.KindRParen, token.KindRBracket, token.KindRBrace:
			if depth > 0 {
				depth--
			}
		}
		p.stream.Next()
	}
}

// finishFunctionBody registers the function's own name in scope before
// its body (so recursive calls resolve, spec.md §4.4), diagnoses a
// nested definition, and skips the body as an opaque balanced-brace
// run.
func (p *Parser) finishFunctionBody(spec declSpecResult, decl Declarator) error {
	if p.inFunctionBody {
		p.site().Report(p.sink, diag.TagNestedFunctionDefinition, nil)
	}

	name := p.lexemeOrEmpty(decl.NameTok)
	p.scope.Push(Entry{Kind: EntrySymbol, Name: name, Type: decl.Type, Tok: decl.NameTok})
	tag := fnTag(true, spec.Storage == storageStatic, spec.Inline, spec.Noreturn)
	idx := p.ast.New(tag, decl.Type, decl.NameTok)
	p.ast.AddRoot(idx)

	if _, err := expect(p.stream, token.KindLBrace, p.site(), p.sink); err != nil {
		return err
	}
	mark := p.scope.Mark()
	wasInFunc := p.inFunctionBody
	p.inFunctionBody = true
	skipBalanced(p.stream, token.KindLBrace, token.KindRBrace)
	p.inFunctionBody = wasInFunc
	p.scope.PopTo(mark)
	return nil
}

// parseOldStyleFunctionDefinition implements the K&R parameter-binding
// supplement (SPEC_FULL.md §5): after the old-style `f(a, b)`
// identifier-list declarator, zero or more param-type declarations bind
// each name's real type before the body.
func (p *Parser) parseOldStyleFunctionDefinition(spec declSpecResult, decl Declarator) error {
	fn := decl.Type.FuncDesc()
	bound := make(map[string]bool, len(fn.Params))

	for p.stream.Peek().Kind != token.KindLBrace && p.stream.Peek().Kind != token.KindEOF {
		pspec, err := p.parseDeclSpecifiers()
		if err != nil {
			return err
		}
		for {
			pd, err := p.parseDeclarator(pspec.Type)
			if err != nil {
				return err
			}
			name := p.lexemeOrEmpty(pd.NameTok)
			for i := range fn.Params {
				if fn.Params[i].Name == name {
					fn.Params[i].Type = adjustParamType(p.arena, pd.Type)
					fn.Params[i].Register = pspec.Storage == storageRegister
					bound[name] = true
					break
				}
			}
			if p.stream.Peek().Kind != token.KindComma {
				break
			}
			p.stream.Next()
		}
		if _, err := expect(p.stream, token.KindSemicolon, p.site(), p.sink); err != nil {
			return err
		}
	}

	for _, prm := range fn.Params {
		if !bound[prm.Name] {
			p.site().Report(p.sink, diag.TagKRUnboundParameter, prm.Name)
		}
	}

	return p.finishFunctionBody(spec, decl)
}
