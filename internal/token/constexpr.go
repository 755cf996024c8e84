// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package token

import "strconv"

// ConstEvaluator is the minimal constant-expression placeholder
// SPEC_FULL.md §5 describes: just enough integer arithmetic to drive
// array-bound, bit-field-width, and `_Static_assert` condition parsing
// in tests, explicitly not a general constant-expression evaluator
// (casts, `sizeof`, the ternary operator, and floating constants are
// out of scope, matching spec.md §1's Non-goals).
//
// Eval consumes tokens directly off s starting at the current
// position and stops at the first token outside the grammar below
// (typically `]`, `)`, `,`, or `;`), leaving the cursor there whether
// or not evaluation succeeded.
//
//	or    = and ('||' and)*
//	and   = eq ('&&' eq)*
//	eq    = rel (('==' | '!=') rel)*
//	rel   = add (('<' | '>' | '<=' | '>=') add)*
//	add   = mul (('+' | '-') mul)*
//	mul   = unary (('*' | '/' | '%') unary)*
//	unary = ('-' | '+' | '!' | '~') unary | primary
//	primary = int-const | '(' or ')'
type ConstEvaluator struct{}

// Eval evaluates one constant expression, returning ok=false if the
// token stream does not match the grammar above (e.g. it references an
// identifier, a cast, or `sizeof` — anything this placeholder does not
// model).
func (ConstEvaluator) Eval(s Stream) (value int64, ok bool) {
	p := &constParser{s: s, ok: true}
	v := p.or()
	return v, p.ok
}

type constParser struct {
	s  Stream
	ok bool
}

func (p *constParser) fail() int64 {
	p.ok = false
	return 0
}

func (p *constParser) or() int64 {
	v := p.and()
	for p.ok && p.s.Peek().Kind == KindPipePipe {
		p.s.Next()
		rhs := p.and()
		v = boolToInt(v != 0 || rhs != 0)
	}
	return v
}

func (p *constParser) and() int64 {
	v := p.eq()
	for p.ok && p.s.Peek().Kind == KindAmpAmp {
		p.s.Next()
		rhs := p.eq()
		v = boolToInt(v != 0 && rhs != 0)
	}
	return v
}

func (p *constParser) eq() int64 {
	v := p.rel()
	for p.ok {
		switch p.s.Peek().Kind {
		case KindEqEq:
			p.s.Next()
			v = boolToInt(v == p.rel())
		case KindNotEq:
			p.s.Next()
			v = boolToInt(v != p.rel())
		default:
			return v
		}
	}
	return v
}

func (p *constParser) rel() int64 {
	v := p.add()
	for p.ok {
		switch p.s.Peek().Kind {
		case KindLess:
			p.s.Next()
			v = boolToInt(v < p.add())
		case KindGreater:
			p.s.Next()
			v = boolToInt(v > p.add())
		case KindLessEq:
			p.s.Next()
			v = boolToInt(v <= p.add())
		case KindGreaterEq:
			p.s.Next()
			v = boolToInt(v >= p.add())
		default:
			return v
		}
	}
	return v
}

func (p *constParser) add() int64 {
	v := p.mul()
	for p.ok {
		switch p.s.Peek().Kind {
		case KindPlus:
			p.s.Next()
			v += p.mul()
		case KindMinus:
			p.s.Next()
			v -= p.mul()
		default:
			return v
		}
	}
	return v
}

func (p *constParser) mul() int64 {
	v := p.unary()
	for p.ok {
		switch p.s.Peek().Kind {
		case KindStar:
			p.s.Next()
			v *= p.unary()
		case KindSlash:
			p.s.Next()
			rhs := p.unary()
			if rhs == 0 {
				return p.fail()
			}
			v /= rhs
		case KindPercent:
			p.s.Next()
			rhs := p.unary()
			if rhs == 0 {
				return p.fail()
			}
			v %= rhs
		default:
			return v
		}
	}
	return v
}

func (p *constParser) unary() int64 {
	switch p.s.Peek().Kind {
	case KindMinus:
		p.s.Next()
		return -p.unary()
	case KindPlus:
		p.s.Next()
		return p.unary()
	case KindBang:
		p.s.Next()
		return boolToInt(p.unary() == 0)
	case KindTilde:
		p.s.Next()
		return ^p.unary()
	default:
		return p.primary()
	}
}

func (p *constParser) primary() int64 {
	t := p.s.Peek()
	switch t.Kind {
	case KindIntConst:
		p.s.Next()
		v, err := parseIntLexeme(p.s.Source().Lexeme(int(t.ID)))
		if err != nil {
			return p.fail()
		}
		return v
	case KindLParen:
		p.s.Next()
		v := p.or()
		if p.s.Peek().Kind != KindRParen {
			return p.fail()
		}
		p.s.Next()
		return v
	default:
		return p.fail()
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// parseIntLexeme strips the usual C integer-suffix letters (u/U/l/L)
// before delegating to strconv, so lexemes like "10u" or "0xffL"
// evaluate the way the preprocessor's literal handling would.
func parseIntLexeme(lexeme string) (int64, error) {
	end := len(lexeme)
	for end > 0 {
		c := lexeme[end-1]
		if c == 'u' || c == 'U' || c == 'l' || c == 'L' {
			end--
			continue
		}
		break
	}
	v, err := strconv.ParseInt(lexeme[:end], 0, 64)
	if err != nil {
		uv, uerr := strconv.ParseUint(lexeme[:end], 0, 64)
		if uerr != nil {
			return 0, err
		}
		return int64(uv), nil
	}
	return v, nil
}
