package tslparser

import (
	"strconv"

	"surge/internal/diag"
	"surge/internal/source"
	"surge/internal/tslast"
	"surge/internal/tsltoken"
)

// parseExpr parses a possibly-comma-joined sequence expression.
func (p *Parser) parseExpr() (*tslast.Expr, bool) {
	first, ok := p.parseAssignExpr()
	if !ok {
		return nil, false
	}
	if !p.at(tsltoken.Comma) {
		return first, true
	}
	start := first.Span
	exprs := []*tslast.Expr{first}
	for {
		if _, ok := p.accept(tsltoken.Comma); !ok {
			break
		}
		e, ok := p.parseAssignExpr()
		if !ok {
			return nil, false
		}
		exprs = append(exprs, e)
	}
	return &tslast.Expr{Kind: tslast.ExprSequence, Span: p.spanFrom(start), Data: tslast.SequenceData{Exprs: exprs}}, true
}

var assignOps = map[tsltoken.Kind]tslast.AssignOp{
	tsltoken.Assign:        tslast.AssignPlain,
	tsltoken.PlusAssign:    tslast.AssignAdd,
	tsltoken.MinusAssign:   tslast.AssignSub,
	tsltoken.StarAssign:    tslast.AssignMul,
	tsltoken.SlashAssign:   tslast.AssignDiv,
	tsltoken.PercentAssign: tslast.AssignMod,
	tsltoken.AmpAssign:     tslast.AssignBitAnd,
	tsltoken.PipeAssign:    tslast.AssignBitOr,
	tsltoken.CaretAssign:   tslast.AssignBitXor,
	tsltoken.ShlAssign:     tslast.AssignShl,
	tsltoken.ShrAssign:     tslast.AssignShr,
	tsltoken.UShrAssign:    tslast.AssignUShr,
	tsltoken.AndAssign:     tslast.AssignAnd,
	tsltoken.OrAssign:      tslast.AssignOr,
	tsltoken.QQAssign:      tslast.AssignNullish,
}

func (p *Parser) parseAssignExpr() (*tslast.Expr, bool) {
	if arrow, ok, is := p.tryParseArrow(false); is {
		return arrow, ok
	}
	if p.at(tsltoken.KwYield) {
		return p.parseYield()
	}

	left, ok := p.parseConditional()
	if !ok {
		return nil, false
	}
	if op, isAssign := assignOps[p.peek().Kind]; isAssign {
		p.advance()
		right, ok := p.parseAssignExpr()
		if !ok {
			return nil, false
		}
		return &tslast.Expr{
			Kind: tslast.ExprAssign,
			Span: left.Span.Cover(right.Span),
			Data: tslast.AssignData{Op: op, Target: left, Value: right},
		}, true
	}
	return left, true
}

func (p *Parser) parseYield() (*tslast.Expr, bool) {
	start := p.advance().Span // yield
	delegate := false
	if p.at(tsltoken.Star) {
		p.advance()
		delegate = true
	}
	if p.atAny(tsltoken.Semicolon, tsltoken.RParen, tsltoken.RBrace, tsltoken.RBracket, tsltoken.Comma, tsltoken.EOF) {
		return &tslast.Expr{Kind: tslast.ExprYield, Span: start, Data: tslast.YieldData{Delegate: delegate}}, true
	}
	operand, ok := p.parseAssignExpr()
	if !ok {
		return nil, false
	}
	return &tslast.Expr{Kind: tslast.ExprYield, Span: start.Cover(operand.Span), Data: tslast.YieldData{Operand: operand, Delegate: delegate}}, true
}

// tryParseArrow attempts to parse an arrow function at the current position.
// Returns is=false if the current tokens are not an arrow function head, in
// which case the parser position is unchanged.
func (p *Parser) tryParseArrow(isAsync bool) (*tslast.Expr, bool, bool) {
	save := p.pos
	async := isAsync
	if p.at(tsltoken.KwAsync) && !isAsync {
		if p.peekAt(1).Kind == tsltoken.Ident && p.peekAt(2).Kind == tsltoken.Arrow {
			p.advance()
			async = true
		} else if p.peekAt(1).Kind == tsltoken.LParen {
			p.advance()
			async = true
		}
	}

	start := p.peek().Span
	if p.at(tsltoken.Ident) && p.peekAt(1).Kind == tsltoken.Arrow {
		name := p.advance()
		p.advance() // =>
		fn, ok := p.parseArrowBody(start, []tslast.Param{{Name: name.Text}}, async)
		return fn, ok, true
	}

	if p.at(tsltoken.LParen) {
		params, ok := p.tryParseParamList()
		if !ok || !p.at(tsltoken.Arrow) {
			p.pos = save
			return nil, false, false
		}
		p.advance() // =>
		fn, ok := p.parseArrowBody(start, params, async)
		return fn, ok, true
	}

	p.pos = save
	return nil, false, false
}

func (p *Parser) parseArrowBody(start source.Span, params []tslast.Param, isAsync bool) (*tslast.Expr, bool) {
	data := tslast.FunctionData{Params: params, IsArrow: true, IsAsync: isAsync}
	if p.at(tsltoken.LBrace) {
		body, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		data.Body = body
	} else {
		expr, ok := p.parseAssignExpr()
		if !ok {
			return nil, false
		}
		data.ExprBody = expr
	}
	return &tslast.Expr{Kind: tslast.ExprFunction, Span: p.spanFrom(start), Data: data}, true
}

// tryParseParamList parses a "(a, b = 1, ...rest)" parameter list, consuming
// the parens. Returns ok=false (with position unwound by the caller via its
// own saved pos) on malformed input.
func (p *Parser) tryParseParamList() ([]tslast.Param, bool) {
	p.advance() // (
	var params []tslast.Param
	for !p.at(tsltoken.RParen) && !p.at(tsltoken.EOF) {
		param, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if !p.at(tsltoken.RParen) {
			if _, ok := p.accept(tsltoken.Comma); !ok {
				return nil, false
			}
		}
	}
	if _, ok := p.accept(tsltoken.RParen); !ok {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseParam() (tslast.Param, bool) {
	var vis tslast.Visibility = tslast.VisibilityPublic
	propertyShort := false
	switch p.peek().Kind {
	case tsltoken.KwPublic:
		p.advance()
		propertyShort = true
	case tsltoken.KwPrivate:
		p.advance()
		vis = tslast.VisibilityPrivate
		propertyShort = true
	case tsltoken.KwProtected:
		p.advance()
		vis = tslast.VisibilityProtected
		propertyShort = true
	}
	if p.at(tsltoken.KwReadonly) {
		p.advance()
	}

	rest := false
	if p.at(tsltoken.DotDotDot) {
		p.advance()
		rest = true
	}

	if p.at(tsltoken.LBracket) || p.at(tsltoken.LBrace) {
		pat, ok := p.parsePattern()
		if !ok {
			return tslast.Param{}, false
		}
		p.skipTypeAnnotation()
		return tslast.Param{Pattern: pat, Rest: rest, Visibility: vis, PropertyShort: propertyShort}, true
	}

	nameTok, ok := p.expect(tsltoken.Ident, diag.MissingFunctionName, "expected parameter name")
	if !ok {
		return tslast.Param{}, false
	}
	p.skipTypeAnnotation()
	param := tslast.Param{Name: nameTok.Text, Rest: rest, Visibility: vis, PropertyShort: propertyShort}
	if _, ok := p.accept(tsltoken.Assign); ok {
		def, ok := p.parseAssignExpr()
		if !ok {
			return tslast.Param{}, false
		}
		param.Default = def
	}
	return param, true
}

// skipTypeAnnotation consumes a TSL ": Type" annotation without building a
// type node; TypeOracle (tslcheck) resolves types from the symbol, not from
// re-parsing this text, so the parser only needs to skip past it.
func (p *Parser) skipTypeAnnotation() {
	if p.at(tsltoken.QuestionMark) {
		p.advance() // optional marker
	}
	if _, ok := p.accept(tsltoken.Colon); !ok {
		return
	}
	depth := 0
	for !p.at(tsltoken.EOF) {
		switch p.peek().Kind {
		case tsltoken.LParen, tsltoken.LBracket, tsltoken.LBrace:
			depth++
		case tsltoken.RParen, tsltoken.RBracket, tsltoken.RBrace:
			if depth == 0 {
				return
			}
			depth--
		case tsltoken.Comma, tsltoken.Assign, tsltoken.Semicolon:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}

func (p *Parser) parseConditional() (*tslast.Expr, bool) {
	cond, ok := p.parseBinary(0)
	if !ok {
		return nil, false
	}
	if _, ok := p.accept(tsltoken.QuestionMark); !ok {
		return cond, true
	}
	then, ok := p.parseAssignExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(tsltoken.Colon, diag.UnsupportedKind, "expected ':' in conditional expression"); !ok {
		return nil, false
	}
	els, ok := p.parseAssignExpr()
	if !ok {
		return nil, false
	}
	return &tslast.Expr{Kind: tslast.ExprTernary, Span: cond.Span.Cover(els.Span), Data: tslast.TernaryData{Cond: cond, Then: then, Else: els}}, true
}

type binOpInfo struct {
	prec     int
	op       tslast.BinaryOp
	logical  bool
	rightAssoc bool
}

var binaryPrec = map[tsltoken.Kind]binOpInfo{
	tsltoken.QuestionQuestion: {1, tslast.OpNullish, true, false},
	tsltoken.PipePipe:         {2, tslast.OpOr, true, false},
	tsltoken.AmpAmp:           {3, tslast.OpAnd, true, false},
	tsltoken.Pipe:             {4, tslast.OpBitOr, false, false},
	tsltoken.Caret:            {5, tslast.OpBitXor, false, false},
	tsltoken.Amp:              {6, tslast.OpBitAnd, false, false},
	tsltoken.Eq:               {7, tslast.OpEq, false, false},
	tsltoken.NotEq:            {7, tslast.OpNotEq, false, false},
	tsltoken.EqEq:             {7, tslast.OpStrictEq, false, false},
	tsltoken.NotEqEq:          {7, tslast.OpStrictNotEq, false, false},
	tsltoken.Lt:               {8, tslast.OpLt, false, false},
	tsltoken.Gt:               {8, tslast.OpGt, false, false},
	tsltoken.LtEq:             {8, tslast.OpLtEq, false, false},
	tsltoken.GtEq:             {8, tslast.OpGtEq, false, false},
	tsltoken.Shl:              {9, tslast.OpShl, false, false},
	tsltoken.Shr:              {9, tslast.OpShr, false, false},
	tsltoken.UShr:             {9, tslast.OpUShr, false, false},
	tsltoken.Plus:             {10, tslast.OpAdd, false, false},
	tsltoken.Minus:            {10, tslast.OpSub, false, false},
	tsltoken.Star:             {11, tslast.OpMul, false, false},
	tsltoken.Slash:            {11, tslast.OpDiv, false, false},
	tsltoken.Percent:          {11, tslast.OpMod, false, false},
	tsltoken.StarStar:         {12, tslast.OpPow, false, true},
}

func (p *Parser) parseBinary(minPrec int) (*tslast.Expr, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	for {
		if p.at(tsltoken.KwInstanceof) {
			if 8 < minPrec {
				break
			}
			p.advance()
			right, ok := p.parseUnary()
			if !ok {
				return nil, false
			}
			left = &tslast.Expr{Kind: tslast.ExprInstanceOf, Span: left.Span.Cover(right.Span), Data: tslast.InstanceOfData{Left: left, Right: right}}
			continue
		}
		info, isBin := binaryPrec[p.peek().Kind]
		if !isBin || info.prec < minPrec {
			break
		}
		p.advance()
		nextMin := info.prec + 1
		if info.rightAssoc {
			nextMin = info.prec
		}
		right, ok := p.parseBinary(nextMin)
		if !ok {
			return nil, false
		}
		kind := tslast.ExprBinary
		if info.logical {
			kind = tslast.ExprLogical
		}
		left = &tslast.Expr{Kind: kind, Span: left.Span.Cover(right.Span), Data: tslast.BinaryData{Op: info.op, Left: left, Right: right}}
	}
	return left, true
}

func (p *Parser) parseUnary() (*tslast.Expr, bool) {
	start := p.peek().Span
	switch p.peek().Kind {
	case tsltoken.Plus:
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &tslast.Expr{Kind: tslast.ExprUnary, Span: start.Cover(operand.Span), Data: tslast.UnaryData{Op: tslast.OpPos, Operand: operand}}, true
	case tsltoken.Minus:
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &tslast.Expr{Kind: tslast.ExprUnary, Span: start.Cover(operand.Span), Data: tslast.UnaryData{Op: tslast.OpNeg, Operand: operand}}, true
	case tsltoken.Bang:
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &tslast.Expr{Kind: tslast.ExprUnary, Span: start.Cover(operand.Span), Data: tslast.UnaryData{Op: tslast.OpNot, Operand: operand}}, true
	case tsltoken.Tilde:
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &tslast.Expr{Kind: tslast.ExprUnary, Span: start.Cover(operand.Span), Data: tslast.UnaryData{Op: tslast.OpBitNot, Operand: operand}}, true
	case tsltoken.KwTypeof:
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &tslast.Expr{Kind: tslast.ExprTypeOf, Span: start.Cover(operand.Span), Data: tslast.TypeOfData{Operand: operand}}, true
	case tsltoken.KwDelete:
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &tslast.Expr{Kind: tslast.ExprDelete, Span: start.Cover(operand.Span), Data: tslast.DeleteData{Operand: operand}}, true
	case tsltoken.KwVoid:
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &tslast.Expr{Kind: tslast.ExprUnary, Span: start.Cover(operand.Span), Data: tslast.UnaryData{Op: tslast.OpNot, Operand: operand}}, true
	case tsltoken.KwAwait:
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &tslast.Expr{Kind: tslast.ExprAwait, Span: start.Cover(operand.Span), Data: tslast.AwaitData{Operand: operand}}, true
	case tsltoken.PlusPlus, tsltoken.MinusMinus:
		inc := p.peek().Kind == tsltoken.PlusPlus
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &tslast.Expr{Kind: tslast.ExprUpdate, Span: start.Cover(operand.Span), Data: tslast.UpdateData{Inc: inc, Prefix: true, Operand: operand}}, true
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (*tslast.Expr, bool) {
	expr, ok := p.parseCallChain()
	if !ok {
		return nil, false
	}
	if p.atAny(tsltoken.PlusPlus, tsltoken.MinusMinus) {
		inc := p.peek().Kind == tsltoken.PlusPlus
		end := p.advance().Span
		return &tslast.Expr{Kind: tslast.ExprUpdate, Span: expr.Span.Cover(end), Data: tslast.UpdateData{Inc: inc, Prefix: false, Operand: expr}}, true
	}
	return expr, true
}

func (p *Parser) parseCallChain() (*tslast.Expr, bool) {
	expr, ok := p.parseNewOrPrimary()
	if !ok {
		return nil, false
	}
	for {
		switch p.peek().Kind {
		case tsltoken.Dot:
			p.advance()
			nameTok, ok := p.expect(tsltoken.Ident, diag.UnsupportedProperty, "expected property name after '.'")
			if !ok {
				return nil, false
			}
			expr = &tslast.Expr{Kind: tslast.ExprMember, Span: expr.Span.Cover(nameTok.Span), Data: tslast.MemberData{Object: expr, Property: nameTok.Text}}
		case tsltoken.QuestionDot:
			p.advance()
			if p.at(tsltoken.LParen) {
				args, spreads, end, ok := p.parseArgs()
				if !ok {
					return nil, false
				}
				expr = &tslast.Expr{Kind: tslast.ExprCall, Span: expr.Span.Cover(end), Data: tslast.CallData{Callee: expr, Args: args, Spreads: spreads, Optional: true}}
				continue
			}
			nameTok, ok := p.expect(tsltoken.Ident, diag.UnsupportedProperty, "expected property name after '?.'")
			if !ok {
				return nil, false
			}
			expr = &tslast.Expr{Kind: tslast.ExprMember, Span: expr.Span.Cover(nameTok.Span), Data: tslast.MemberData{Object: expr, Property: nameTok.Text, Optional: true}}
		case tsltoken.LBracket:
			p.advance()
			idx, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			end, ok := p.expect(tsltoken.RBracket, diag.UnsupportedKind, "expected ']' to close index expression")
			if !ok {
				return nil, false
			}
			expr = &tslast.Expr{Kind: tslast.ExprIndexAccess, Span: expr.Span.Cover(end.Span), Data: tslast.IndexData{Object: expr, Index: idx}}
		case tsltoken.LParen:
			args, spreads, end, ok := p.parseArgs()
			if !ok {
				return nil, false
			}
			expr = &tslast.Expr{Kind: tslast.ExprCall, Span: expr.Span.Cover(end), Data: tslast.CallData{Callee: expr, Args: args, Spreads: spreads}}
		case tsltoken.TemplateString:
			tmpl, ok := p.parseTemplate()
			if !ok {
				return nil, false
			}
			expr = &tslast.Expr{Kind: tslast.ExprTaggedTemplate, Span: expr.Span.Cover(tmpl.Span), Data: tslast.TaggedTemplateData{Tag: expr, Template: tmpl}}
		default:
			return expr, true
		}
	}
}

func (p *Parser) parseArgs() ([]*tslast.Expr, []bool, source.Span, bool) {
	p.advance() // (
	var args []*tslast.Expr
	var spreads []bool
	for !p.at(tsltoken.RParen) && !p.at(tsltoken.EOF) {
		spread := false
		if p.at(tsltoken.DotDotDot) {
			p.advance()
			spread = true
		}
		arg, ok := p.parseAssignExpr()
		if !ok {
			return nil, nil, source.Span{}, false
		}
		args = append(args, arg)
		spreads = append(spreads, spread)
		if !p.at(tsltoken.RParen) {
			if _, ok := p.accept(tsltoken.Comma); !ok {
				break
			}
		}
	}
	end, ok := p.expect(tsltoken.RParen, diag.UnsupportedKind, "expected ')' to close argument list")
	if !ok {
		return nil, nil, source.Span{}, false
	}
	return args, spreads, end.Span, true
}

func (p *Parser) parseNewOrPrimary() (*tslast.Expr, bool) {
	if p.at(tsltoken.KwNew) {
		start := p.advance().Span
		callee, ok := p.parseCallChainNoCall()
		if !ok {
			return nil, false
		}
		var args []*tslast.Expr
		end := callee.Span
		if p.at(tsltoken.LParen) {
			var ok bool
			args, _, end, ok = p.parseArgs()
			if !ok {
				return nil, false
			}
		}
		return &tslast.Expr{Kind: tslast.ExprNew, Span: start.Cover(end), Data: tslast.NewData{Callee: callee, Args: args}}, true
	}
	return p.parsePrimary()
}

// parseCallChainNoCall parses a member-access chain for `new X.Y.Z(...)`
// without consuming the final call parens (the caller does).
func (p *Parser) parseCallChainNoCall() (*tslast.Expr, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for p.at(tsltoken.Dot) {
		p.advance()
		nameTok, ok := p.expect(tsltoken.Ident, diag.UnsupportedProperty, "expected property name after '.'")
		if !ok {
			return nil, false
		}
		expr = &tslast.Expr{Kind: tslast.ExprMember, Span: expr.Span.Cover(nameTok.Span), Data: tslast.MemberData{Object: expr, Property: nameTok.Text}}
	}
	return expr, true
}

func (p *Parser) parsePrimary() (*tslast.Expr, bool) {
	tok := p.peek()
	switch tok.Kind {
	case tsltoken.Number:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Text, 64)
		return &tslast.Expr{Kind: tslast.ExprNumberLit, Span: tok.Span, Data: tslast.NumberData{Text: tok.Text, Value: v}}, true
	case tsltoken.String:
		p.advance()
		return &tslast.Expr{Kind: tslast.ExprStringLit, Span: tok.Span, Data: tslast.StringData{Value: tok.Text}}, true
	case tsltoken.TemplateString:
		return p.parseTemplate()
	case tsltoken.KwTrue:
		p.advance()
		return &tslast.Expr{Kind: tslast.ExprBoolLit, Span: tok.Span, Data: tslast.BoolData{Value: true}}, true
	case tsltoken.KwFalse:
		p.advance()
		return &tslast.Expr{Kind: tslast.ExprBoolLit, Span: tok.Span, Data: tslast.BoolData{Value: false}}, true
	case tsltoken.KwNull:
		p.advance()
		return &tslast.Expr{Kind: tslast.ExprNullLit, Span: tok.Span}, true
	case tsltoken.KwUndefined:
		p.advance()
		return &tslast.Expr{Kind: tslast.ExprUndefinedLit, Span: tok.Span}, true
	case tsltoken.KwThis:
		p.advance()
		return &tslast.Expr{Kind: tslast.ExprThis, Span: tok.Span, Data: tslast.ThisData{}}, true
	case tsltoken.KwSuper:
		p.advance()
		return &tslast.Expr{Kind: tslast.ExprSuper, Span: tok.Span, Data: tslast.SuperData{}}, true
	case tsltoken.Ident:
		p.advance()
		return &tslast.Expr{Kind: tslast.ExprIdent, Span: tok.Span, Data: tslast.IdentData{Name: tok.Text}}, true
	case tsltoken.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		end, ok := p.expect(tsltoken.RParen, diag.UnsupportedKind, "expected ')' to close parenthesized expression")
		if !ok {
			return nil, false
		}
		return &tslast.Expr{Kind: tslast.ExprGroup, Span: tok.Span.Cover(end.Span), Data: tslast.GroupData{Inner: inner}}, true
	case tsltoken.LBracket:
		return p.parseArrayLit()
	case tsltoken.LBrace:
		return p.parseObjectLit()
	case tsltoken.KwFunction:
		return p.parseFunctionExpr(false)
	case tsltoken.KwAsync:
		if arrow, ok, is := p.tryParseArrow(false); is {
			return arrow, ok
		}
		p.advance()
		return p.parseFunctionExpr(true)
	case tsltoken.KwClass:
		decl, ok := p.parseClassBody()
		if !ok {
			return nil, false
		}
		return &tslast.Expr{Kind: tslast.ExprClassExpr, Span: decl.Span, Data: tslast.ClassExprData{Decl: decl}}, true
	}
	p.err(diag.UnsupportedKind, "expected an expression")
	return nil, false
}

func (p *Parser) parseFunctionExpr(isAsync bool) (*tslast.Expr, bool) {
	start := p.advance().Span // function
	isGenerator := false
	if p.at(tsltoken.Star) {
		p.advance()
		isGenerator = true
	}
	name := ""
	if p.at(tsltoken.Ident) {
		name = p.advance().Text
	}
	params, ok := p.tryParseParamList()
	if !ok {
		return nil, false
	}
	p.skipTypeAnnotation()
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return &tslast.Expr{
		Kind: tslast.ExprFunction,
		Span: p.spanFrom(start),
		Data: tslast.FunctionData{Name: name, Params: params, Body: body, IsGenerator: isGenerator, IsAsync: isAsync},
	}, true
}

func (p *Parser) parseArrayLit() (*tslast.Expr, bool) {
	start := p.advance().Span // [
	data := tslast.ArrayLitData{}
	for !p.at(tsltoken.RBracket) && !p.at(tsltoken.EOF) {
		if p.at(tsltoken.Comma) {
			p.advance()
			data.Elements = append(data.Elements, nil)
			data.SpreadFlags = append(data.SpreadFlags, false)
			continue
		}
		spread := false
		if p.at(tsltoken.DotDotDot) {
			p.advance()
			spread = true
		}
		el, ok := p.parseAssignExpr()
		if !ok {
			return nil, false
		}
		data.Elements = append(data.Elements, el)
		data.SpreadFlags = append(data.SpreadFlags, spread)
		if !p.at(tsltoken.RBracket) {
			p.accept(tsltoken.Comma)
		}
	}
	end, ok := p.expect(tsltoken.RBracket, diag.UnsupportedKind, "expected ']' to close array literal")
	if !ok {
		return nil, false
	}
	return &tslast.Expr{Kind: tslast.ExprArrayLit, Span: start.Cover(end.Span), Data: data}, true
}

func (p *Parser) parseObjectLit() (*tslast.Expr, bool) {
	start := p.advance().Span // {
	data := tslast.ObjectLitData{}
	for !p.at(tsltoken.RBrace) && !p.at(tsltoken.EOF) {
		if p.at(tsltoken.DotDotDot) {
			p.advance()
			val, ok := p.parseAssignExpr()
			if !ok {
				return nil, false
			}
			data.Props = append(data.Props, tslast.ObjectProp{Spread: true, Value: val})
			if !p.at(tsltoken.RBrace) {
				p.accept(tsltoken.Comma)
			}
			continue
		}
		var prop tslast.ObjectProp
		if p.at(tsltoken.LBracket) {
			p.advance()
			key, ok := p.parseAssignExpr()
			if !ok {
				return nil, false
			}
			if _, ok := p.expect(tsltoken.RBracket, diag.UnsupportedKind, "expected ']' after computed property key"); !ok {
				return nil, false
			}
			prop.Computed = key
		} else {
			keyTok := p.advance()
			prop.Key = keyTok.Text
		}
		if _, ok := p.accept(tsltoken.Colon); ok {
			val, ok := p.parseAssignExpr()
			if !ok {
				return nil, false
			}
			prop.Value = val
		} else if p.at(tsltoken.LParen) {
			// method shorthand: name(params) { body }
			params, ok := p.tryParseParamList()
			if !ok {
				return nil, false
			}
			p.skipTypeAnnotation()
			body, ok := p.parseBlock()
			if !ok {
				return nil, false
			}
			prop.Value = &tslast.Expr{Kind: tslast.ExprFunction, Data: tslast.FunctionData{Params: params, Body: body}}
		} else {
			prop.Shorthand = true
			prop.Value = &tslast.Expr{Kind: tslast.ExprIdent, Data: tslast.IdentData{Name: prop.Key}}
		}
		data.Props = append(data.Props, prop)
		if !p.at(tsltoken.RBrace) {
			p.accept(tsltoken.Comma)
		}
	}
	end, ok := p.expect(tsltoken.RBrace, diag.UnsupportedKind, "expected '}' to close object literal")
	if !ok {
		return nil, false
	}
	return &tslast.Expr{Kind: tslast.ExprObjectLit, Span: start.Cover(end.Span), Data: data}, true
}

// parseTemplate builds a TemplateData expr from a single TemplateString
// token whose raw text was captured whole by the lexer, including `${...}`
// interpolations, which this function re-lexes and re-parses as nested
// expressions.
func (p *Parser) parseTemplate() (*tslast.Expr, bool) {
	tok := p.advance()
	cooked, raw, exprSrcs := splitTemplateParts(tok.Text)
	data := tslast.TemplateData{Cooked: cooked, Raw: raw}
	for _, src := range exprSrcs {
		sub := ParseExprSource(tok.Span.File, src)
		if sub != nil {
			data.Exprs = append(data.Exprs, sub)
		}
	}
	return &tslast.Expr{Kind: tslast.ExprTemplateLit, Span: tok.Span, Data: data}, true
}
