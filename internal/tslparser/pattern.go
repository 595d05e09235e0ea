package tslparser

import (
	"surge/internal/diag"
	"surge/internal/tslast"
	"surge/internal/tsltoken"
)

// parsePattern parses a binding target: an identifier, or an array/object
// destructuring pattern (spec.md §4.6 destructuring lowering).
func (p *Parser) parsePattern() (*tslast.Pattern, bool) {
	switch {
	case p.at(tsltoken.LBracket):
		return p.parseArrayPattern()
	case p.at(tsltoken.LBrace):
		return p.parseObjectPattern()
	case p.at(tsltoken.Ident):
		tok := p.advance()
		pat := &tslast.Pattern{Kind: tslast.PatternIdent, Name: tok.Text}
		return p.parsePatternDefault(pat)
	default:
		p.err(diag.InvalidAmbientIdentifierName, "expected a binding identifier or destructuring pattern")
		return nil, false
	}
}

func (p *Parser) parsePatternDefault(pat *tslast.Pattern) (*tslast.Pattern, bool) {
	if _, ok := p.accept(tsltoken.Assign); ok {
		def, ok := p.parseAssignExpr()
		if !ok {
			return pat, false
		}
		pat.Default = def
	}
	return pat, true
}

func (p *Parser) parseArrayPattern() (*tslast.Pattern, bool) {
	p.advance() // [
	pat := &tslast.Pattern{Kind: tslast.PatternArray}
	for !p.at(tsltoken.RBracket) && !p.at(tsltoken.EOF) {
		if _, ok := p.accept(tsltoken.Comma); ok {
			pat.Elements = append(pat.Elements, nil) // elision
			continue
		}
		if p.at(tsltoken.DotDotDot) {
			p.advance()
			rest, ok := p.parsePattern()
			if !ok {
				return pat, false
			}
			pat.Rest = rest
			break
		}
		el, ok := p.parsePattern()
		if !ok {
			return pat, false
		}
		pat.Elements = append(pat.Elements, el)
		if !p.at(tsltoken.RBracket) {
			p.accept(tsltoken.Comma)
		}
	}
	p.expect(tsltoken.RBracket, diag.UnsupportedKind, "expected ']' to close array pattern")
	return p.parsePatternDefault(pat)
}

func (p *Parser) parseObjectPattern() (*tslast.Pattern, bool) {
	p.advance() // {
	pat := &tslast.Pattern{Kind: tslast.PatternObject}
	for !p.at(tsltoken.RBrace) && !p.at(tsltoken.EOF) {
		if p.at(tsltoken.DotDotDot) {
			p.advance()
			rest, ok := p.parsePattern()
			if !ok {
				return pat, false
			}
			pat.Rest = rest
			break
		}
		keyTok, ok := p.expect(tsltoken.Ident, diag.InvalidAmbientIdentifierName, "expected property name in object pattern")
		if !ok {
			return pat, false
		}
		var value *tslast.Pattern
		if _, ok := p.accept(tsltoken.Colon); ok {
			value, ok = p.parsePattern()
			if !ok {
				return pat, false
			}
		} else {
			value, _ = p.parsePatternDefault(&tslast.Pattern{Kind: tslast.PatternIdent, Name: keyTok.Text})
		}
		pat.Props = append(pat.Props, tslast.PatternProp{Key: keyTok.Text, Value: value})
		if !p.at(tsltoken.RBrace) {
			p.accept(tsltoken.Comma)
		}
	}
	p.expect(tsltoken.RBrace, diag.UnsupportedKind, "expected '}' to close object pattern")
	return p.parsePatternDefault(pat)
}
