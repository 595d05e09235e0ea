package tslparser

import (
	"surge/internal/diag"
	"surge/internal/tslast"
	"surge/internal/tsltoken"
)

// parseClassBody parses a class declaration or expression starting at the
// 'class' keyword (spec.md §4.7 ClassLowerer input shape: name, optional
// superclass, decorated members).
func (p *Parser) parseClassBody() (*tslast.ClassDecl, bool) {
	start := p.advance().Span // class
	decl := &tslast.ClassDecl{}

	if p.at(tsltoken.Ident) {
		decl.Name = p.advance().Text
	}

	if _, ok := p.accept(tsltoken.KwExtends); ok {
		superExpr, ok := p.parseCallChainNoCall()
		if !ok {
			return nil, false
		}
		decl.Extends = superExpr
	}
	if _, ok := p.accept(tsltoken.KwImplements); ok {
		// interface list is a type-level concern; skip the comma-separated names
		for {
			p.skipTypeAnnotation()
			if _, ok := p.accept(tsltoken.Comma); !ok {
				break
			}
		}
	}

	if _, ok := p.expect(tsltoken.LBrace, diag.UnsupportedKind, "expected '{' to start class body"); !ok {
		return decl, false
	}

	for !p.at(tsltoken.RBrace) && !p.at(tsltoken.EOF) {
		if _, ok := p.accept(tsltoken.Semicolon); ok {
			continue
		}
		before := p.pos
		member, ok := p.parseClassMember()
		if ok {
			decl.Members = append(decl.Members, member)
		}
		if p.pos == before {
			p.advance()
		}
	}

	end, ok := p.expect(tsltoken.RBrace, diag.UnsupportedKind, "expected '}' to close class body")
	if !ok {
		return decl, false
	}
	decl.Span = start.Cover(end.Span)
	return decl, true
}

func (p *Parser) parseClassMember() (tslast.ClassMember, bool) {
	var decorators []*tslast.Expr
	for p.at(tsltoken.At) {
		p.advance()
		dec, ok := p.parseCallChain()
		if !ok {
			return tslast.ClassMember{}, false
		}
		decorators = append(decorators, dec)
	}

	start := p.peek().Span
	member := tslast.ClassMember{Decorators: decorators, Visibility: tslast.VisibilityPublic}

	for {
		switch p.peek().Kind {
		case tsltoken.KwPublic:
			member.Visibility = tslast.VisibilityPublic
			p.advance()
			continue
		case tsltoken.KwPrivate:
			member.Visibility = tslast.VisibilityPrivate
			p.advance()
			continue
		case tsltoken.KwProtected:
			member.Visibility = tslast.VisibilityProtected
			p.advance()
			continue
		case tsltoken.KwStatic:
			member.Static = true
			p.advance()
			continue
		case tsltoken.KwReadonly:
			p.advance()
			continue
		}
		break
	}

	isGetter, isSetter := false, false
	if p.at(tsltoken.KwGet) && p.peekAt(1).Kind != tsltoken.LParen {
		isGetter = true
		p.advance()
	} else if p.at(tsltoken.KwSet) && p.peekAt(1).Kind != tsltoken.LParen {
		isSetter = true
		p.advance()
	}

	isGenerator := false
	if p.at(tsltoken.Star) {
		isGenerator = true
		p.advance()
	}

	nameTok := p.advance()
	member.Name = nameTok.Text

	if nameTok.Kind == tsltoken.Ident && nameTok.Text == "constructor" {
		member.Kind = tslast.MemberConstructor
	} else if isGetter {
		member.Kind = tslast.MemberGetter
	} else if isSetter {
		member.Kind = tslast.MemberSetter
	} else {
		member.Kind = tslast.MemberMethod
	}

	if p.at(tsltoken.LParen) {
		params, ok := p.tryParseParamList()
		if !ok {
			return member, false
		}
		p.skipTypeAnnotation()
		var body *tslast.Block
		if p.at(tsltoken.LBrace) {
			var ok bool
			body, ok = p.parseBlock()
			if !ok {
				return member, false
			}
		} else {
			p.err(diag.UnsupportedFunctionWithoutBody, "class method has no body")
			p.accept(tsltoken.Semicolon)
		}
		member.Fn = &tslast.Expr{
			Kind: tslast.ExprFunction,
			Span: p.spanFrom(start),
			Data: tslast.FunctionData{Name: member.Name, Params: params, Body: body, IsGenerator: isGenerator},
		}
		member.Span = member.Fn.Span
		return member, true
	}

	// field declaration
	p.skipTypeAnnotation()
	if _, ok := p.accept(tsltoken.Assign); ok {
		init, ok := p.parseAssignExpr()
		if !ok {
			return member, false
		}
		member.FieldInit = init
	}
	p.accept(tsltoken.Semicolon)
	member.Kind = tslast.MemberField
	member.Span = p.spanFrom(start)
	return member, true
}
