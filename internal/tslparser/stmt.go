package tslparser

import (
	"strconv"

	"surge/internal/diag"
	"surge/internal/source"
	"surge/internal/tslast"
	"surge/internal/tsltoken"
)

func (p *Parser) parseBlock() (*tslast.Block, bool) {
	start, ok := p.expect(tsltoken.LBrace, diag.UnsupportedKind, "expected '{' to start block")
	if !ok {
		return nil, false
	}
	block := &tslast.Block{}
	for !p.at(tsltoken.RBrace) && !p.at(tsltoken.EOF) {
		before := p.pos
		stmt, ok := p.parseStmt()
		if ok && stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if p.pos == before {
			p.advance()
		}
	}
	end, ok := p.expect(tsltoken.RBrace, diag.UnsupportedKind, "expected '}' to close block")
	if !ok {
		return block, false
	}
	block.Span = start.Span.Cover(end.Span)
	return block, true
}

func (p *Parser) parseStmt() (*tslast.Stmt, bool) {
	directives, doc := p.parseLeadingDirectives()
	stmt, ok := p.parseStmtInner()
	if stmt != nil {
		stmt.Doc = doc
		stmt.Directives = directives
	}
	return stmt, ok
}

func (p *Parser) parseStmtInner() (*tslast.Stmt, bool) {
	start := p.peek().Span
	switch p.peek().Kind {
	case tsltoken.LBrace:
		block, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		return &tslast.Stmt{Kind: tslast.StmtBlock, Span: block.Span, Data: tslast.BlockStmtData{Block: block}}, true
	case tsltoken.Semicolon:
		p.advance()
		return &tslast.Stmt{Kind: tslast.StmtEmpty, Span: start, Data: tslast.EmptyData{}}, true
	case tsltoken.KwVar, tsltoken.KwLet, tsltoken.KwConst:
		return p.parseVarDecl()
	case tsltoken.KwFunction:
		return p.parseFunctionDecl(false)
	case tsltoken.KwAsync:
		if p.peekAt(1).Kind == tsltoken.KwFunction {
			p.advance()
			return p.parseFunctionDecl(true)
		}
	case tsltoken.KwClass:
		decl, ok := p.parseClassBody()
		if !ok {
			return nil, false
		}
		return &tslast.Stmt{Kind: tslast.StmtClassDecl, Span: decl.Span, Data: tslast.ClassDeclData{Decl: decl}}, true
	case tsltoken.KwIf:
		return p.parseIf()
	case tsltoken.KwWhile:
		return p.parseWhile()
	case tsltoken.KwDo:
		return p.parseDoWhile()
	case tsltoken.KwFor:
		return p.parseFor()
	case tsltoken.KwSwitch:
		return p.parseSwitch()
	case tsltoken.KwBreak:
		p.advance()
		label := p.optionalLabel()
		p.accept(tsltoken.Semicolon)
		return &tslast.Stmt{Kind: tslast.StmtBreak, Span: p.spanFrom(start), Data: tslast.BreakData{Label: label}}, true
	case tsltoken.KwContinue:
		p.advance()
		label := p.optionalLabel()
		p.accept(tsltoken.Semicolon)
		return &tslast.Stmt{Kind: tslast.StmtContinue, Span: p.spanFrom(start), Data: tslast.ContinueData{Label: label}}, true
	case tsltoken.KwTry:
		return p.parseTry()
	case tsltoken.KwThrow:
		p.advance()
		val, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		p.accept(tsltoken.Semicolon)
		return &tslast.Stmt{Kind: tslast.StmtThrow, Span: p.spanFrom(start), Data: tslast.ThrowData{Value: val}}, true
	case tsltoken.KwReturn:
		p.advance()
		var values []*tslast.Expr
		if !p.atAny(tsltoken.Semicolon, tsltoken.RBrace, tsltoken.EOF) {
			v, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			if seq, isSeq := v.Data.(tslast.SequenceData); isSeq {
				values = seq.Exprs
			} else {
				values = []*tslast.Expr{v}
			}
		}
		p.accept(tsltoken.Semicolon)
		return &tslast.Stmt{Kind: tslast.StmtReturn, Span: p.spanFrom(start), Data: tslast.ReturnData{Values: values}}, true
	case tsltoken.KwEnum:
		return p.parseEnum(false)
	case tsltoken.KwDeclare:
		return p.parseAmbient()
	case tsltoken.KwNamespace, tsltoken.KwModule:
		return p.parseNamespace()
	case tsltoken.KwImport:
		return p.parseImport()
	case tsltoken.KwExport:
		return p.parseExport()
	}
	expr, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	p.accept(tsltoken.Semicolon)
	return &tslast.Stmt{Kind: tslast.StmtExpr, Span: p.spanFrom(start), Data: tslast.ExprStmtData{Expr: expr}}, true
}

func (p *Parser) optionalLabel() string {
	if p.at(tsltoken.Ident) && p.peek().Span.Start == p.lastSpan.End {
		return p.advance().Text
	}
	return ""
}

func (p *Parser) parseVarDecl() (*tslast.Stmt, bool) {
	start := p.peek().Span
	var kind tslast.VarKind
	switch p.advance().Kind {
	case tsltoken.KwVar:
		kind = tslast.VarVar
	case tsltoken.KwLet:
		kind = tslast.VarLet
	case tsltoken.KwConst:
		kind = tslast.VarConst
	}
	var decls []tslast.VarDeclarator
	for {
		d, ok := p.parseDeclarator()
		if !ok {
			return nil, false
		}
		decls = append(decls, d)
		if _, ok := p.accept(tsltoken.Comma); !ok {
			break
		}
	}
	p.accept(tsltoken.Semicolon)
	return &tslast.Stmt{Kind: tslast.StmtVarDecl, Span: p.spanFrom(start), Data: tslast.VarDeclData{VarKind: kind, Declarators: decls}}, true
}

func (p *Parser) parseDeclarator() (tslast.VarDeclarator, bool) {
	if p.at(tsltoken.LBracket) || p.at(tsltoken.LBrace) {
		pat, ok := p.parsePattern()
		if !ok {
			return tslast.VarDeclarator{}, false
		}
		p.skipTypeAnnotation()
		var init *tslast.Expr
		if _, ok := p.accept(tsltoken.Assign); ok {
			init, ok = p.parseAssignExpr()
			if !ok {
				return tslast.VarDeclarator{}, false
			}
		}
		return tslast.VarDeclarator{Pattern: pat, Init: init}, true
	}
	nameTok, ok := p.expect(tsltoken.Ident, diag.MissingFunctionName, "expected a binding name")
	if !ok {
		return tslast.VarDeclarator{}, false
	}
	p.skipTypeAnnotation()
	d := tslast.VarDeclarator{Name: nameTok.Text}
	if _, ok := p.accept(tsltoken.Assign); ok {
		init, ok := p.parseAssignExpr()
		if !ok {
			return tslast.VarDeclarator{}, false
		}
		d.Init = init
	}
	return d, true
}

func (p *Parser) parseFunctionDecl(isAsync bool) (*tslast.Stmt, bool) {
	start := p.advance().Span // function
	isGenerator := false
	if p.at(tsltoken.Star) {
		p.advance()
		isGenerator = true
	}
	nameTok, ok := p.expect(tsltoken.Ident, diag.MissingFunctionName, "function declaration has no name")
	if !ok {
		return nil, false
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
	fn := &tslast.Expr{
		Kind: tslast.ExprFunction,
		Span: p.spanFrom(start),
		Data: tslast.FunctionData{Name: nameTok.Text, Params: params, Body: body, IsGenerator: isGenerator, IsAsync: isAsync},
	}
	return &tslast.Stmt{Kind: tslast.StmtFunctionDecl, Span: fn.Span, Data: tslast.FunctionDeclData{Name: nameTok.Text, Fn: fn}}, true
}

func (p *Parser) parseIf() (*tslast.Stmt, bool) {
	start := p.advance().Span // if
	if _, ok := p.expect(tsltoken.LParen, diag.UnsupportedKind, "expected '(' after 'if'"); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(tsltoken.RParen, diag.UnsupportedKind, "expected ')' after if condition"); !ok {
		return nil, false
	}
	then, ok := p.parseStmt()
	if !ok {
		return nil, false
	}
	var els *tslast.Stmt
	if _, ok := p.accept(tsltoken.KwElse); ok {
		els, ok = p.parseStmt()
		if !ok {
			return nil, false
		}
	}
	return &tslast.Stmt{Kind: tslast.StmtIf, Span: p.spanFrom(start), Data: tslast.IfData{Cond: cond, Then: then, Else: els}}, true
}

func (p *Parser) parseWhile() (*tslast.Stmt, bool) {
	start := p.advance().Span
	if _, ok := p.expect(tsltoken.LParen, diag.UnsupportedKind, "expected '(' after 'while'"); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(tsltoken.RParen, diag.UnsupportedKind, "expected ')' after while condition"); !ok {
		return nil, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return nil, false
	}
	return &tslast.Stmt{Kind: tslast.StmtWhile, Span: p.spanFrom(start), Data: tslast.WhileData{Cond: cond, Body: body}}, true
}

func (p *Parser) parseDoWhile() (*tslast.Stmt, bool) {
	start := p.advance().Span // do
	body, ok := p.parseStmt()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(tsltoken.KwWhile, diag.UnsupportedKind, "expected 'while' after do-block"); !ok {
		return nil, false
	}
	if _, ok := p.expect(tsltoken.LParen, diag.UnsupportedKind, "expected '(' after 'while'"); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(tsltoken.RParen, diag.UnsupportedKind, "expected ')' after condition"); !ok {
		return nil, false
	}
	p.accept(tsltoken.Semicolon)
	return &tslast.Stmt{Kind: tslast.StmtDoWhile, Span: p.spanFrom(start), Data: tslast.DoWhileData{Body: body, Cond: cond}}, true
}

// parseFor handles classic C-style for, for-of, and for-in. Every for-of is
// given ForOfGeneric; no later pass picks another for-of kind.
func (p *Parser) parseFor() (*tslast.Stmt, bool) {
	start := p.advance().Span // for
	if _, ok := p.expect(tsltoken.LParen, diag.UnsupportedKind, "expected '(' after 'for'"); !ok {
		return nil, false
	}

	var kind tslast.VarKind
	hasDecl := false
	switch p.peek().Kind {
	case tsltoken.KwVar:
		kind, hasDecl = tslast.VarVar, true
		p.advance()
	case tsltoken.KwLet:
		kind, hasDecl = tslast.VarLet, true
		p.advance()
	case tsltoken.KwConst:
		kind, hasDecl = tslast.VarConst, true
		p.advance()
	}

	if hasDecl && (p.at(tsltoken.LBracket) || p.at(tsltoken.LBrace)) {
		pat, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		return p.finishForOfOrIn(start, kind, "", pat, nil)
	}

	if hasDecl && p.at(tsltoken.Ident) {
		nameTok := p.advance()
		p.skipTypeAnnotation()
		if p.atAny(tsltoken.KwOf, tsltoken.KwIn) {
			return p.finishForOfOrIn(start, kind, nameTok.Text, nil, nil)
		}
		// classic for: re-synthesize the declarator we already consumed
		decl := tslast.VarDeclarator{Name: nameTok.Text}
		if _, ok := p.accept(tsltoken.Assign); ok {
			init, ok := p.parseAssignExpr()
			if !ok {
				return nil, false
			}
			decl.Init = init
		}
		decls := []tslast.VarDeclarator{decl}
		for {
			if _, ok := p.accept(tsltoken.Comma); !ok {
				break
			}
			d, ok := p.parseDeclarator()
			if !ok {
				return nil, false
			}
			decls = append(decls, d)
		}
		initStmt := &tslast.Stmt{Kind: tslast.StmtVarDecl, Data: tslast.VarDeclData{VarKind: kind, Declarators: decls}}
		return p.finishClassicFor(start, initStmt)
	}

	if !hasDecl && !p.at(tsltoken.Semicolon) {
		expr, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if p.atAny(tsltoken.KwOf, tsltoken.KwIn) {
			if id, isIdent := expr.Data.(tslast.IdentData); isIdent {
				return p.finishForOfOrIn(start, tslast.VarVar, id.Name, nil, nil)
			}
		}
		initStmt := &tslast.Stmt{Kind: tslast.StmtExpr, Data: tslast.ExprStmtData{Expr: expr}}
		return p.finishClassicFor(start, initStmt)
	}

	return p.finishClassicFor(start, nil)
}

func (p *Parser) finishForOfOrIn(start source.Span, kind tslast.VarKind, name string, pat *tslast.Pattern, _ any) (*tslast.Stmt, bool) {
	isOf := p.at(tsltoken.KwOf)
	p.advance() // of/in
	iterable, ok := p.parseAssignExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(tsltoken.RParen, diag.UnsupportedKind, "expected ')' after for-of/for-in header"); !ok {
		return nil, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return nil, false
	}
	if isOf {
		return &tslast.Stmt{
			Kind: tslast.StmtForOf,
			Span: p.spanFrom(start),
			Data: tslast.ForOfData{VarKind: kind, Name: name, Pattern: pat, Iterable: iterable, Body: body, Kind: tslast.ForOfGeneric},
		}, true
	}
	return &tslast.Stmt{
		Kind: tslast.StmtForIn,
		Span: p.spanFrom(start),
		Data: tslast.ForInData{VarKind: kind, Name: name, Object: iterable, Body: body},
	}, true
}

func (p *Parser) finishClassicFor(start source.Span, init *tslast.Stmt) (*tslast.Stmt, bool) {
	if _, ok := p.expect(tsltoken.Semicolon, diag.UnsupportedKind, "expected ';' after for-loop initializer"); !ok {
		return nil, false
	}
	var cond *tslast.Expr
	if !p.at(tsltoken.Semicolon) {
		var ok bool
		cond, ok = p.parseExpr()
		if !ok {
			return nil, false
		}
	}
	if _, ok := p.expect(tsltoken.Semicolon, diag.UnsupportedKind, "expected ';' after for-loop condition"); !ok {
		return nil, false
	}
	var post *tslast.Expr
	if !p.at(tsltoken.RParen) {
		var ok bool
		post, ok = p.parseExpr()
		if !ok {
			return nil, false
		}
	}
	if _, ok := p.expect(tsltoken.RParen, diag.UnsupportedKind, "expected ')' to close for-loop header"); !ok {
		return nil, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return nil, false
	}
	return &tslast.Stmt{Kind: tslast.StmtFor, Span: p.spanFrom(start), Data: tslast.ForData{Init: init, Cond: cond, Post: post, Body: body}}, true
}

func (p *Parser) parseSwitch() (*tslast.Stmt, bool) {
	start := p.advance().Span // switch
	if _, ok := p.expect(tsltoken.LParen, diag.UnsupportedKind, "expected '(' after 'switch'"); !ok {
		return nil, false
	}
	disc, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(tsltoken.RParen, diag.UnsupportedKind, "expected ')' after switch discriminant"); !ok {
		return nil, false
	}
	if _, ok := p.expect(tsltoken.LBrace, diag.UnsupportedKind, "expected '{' to start switch body"); !ok {
		return nil, false
	}
	var cases []tslast.SwitchCase
	for !p.at(tsltoken.RBrace) && !p.at(tsltoken.EOF) {
		var test *tslast.Expr
		if _, ok := p.accept(tsltoken.KwCase); ok {
			var ok bool
			test, ok = p.parseExpr()
			if !ok {
				return nil, false
			}
		} else if _, ok := p.accept(tsltoken.KwDefault); !ok {
			p.err(diag.UnsupportedKind, "expected 'case' or 'default'")
			return nil, false
		}
		p.expect(tsltoken.Colon, diag.UnsupportedKind, "expected ':' after case label")
		var body []*tslast.Stmt
		for !p.atAny(tsltoken.KwCase, tsltoken.KwDefault, tsltoken.RBrace, tsltoken.EOF) {
			before := p.pos
			stmt, ok := p.parseStmt()
			if ok && stmt != nil {
				body = append(body, stmt)
			}
			if p.pos == before {
				p.advance()
			}
		}
		cases = append(cases, tslast.SwitchCase{Test: test, Body: body})
	}
	end, ok := p.expect(tsltoken.RBrace, diag.UnsupportedKind, "expected '}' to close switch body")
	if !ok {
		return nil, false
	}
	return &tslast.Stmt{Kind: tslast.StmtSwitch, Span: start.Cover(end.Span), Data: tslast.SwitchData{Disc: disc, Cases: cases}}, true
}

func (p *Parser) parseTry() (*tslast.Stmt, bool) {
	start := p.advance().Span // try
	tryBlock, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	var catch *tslast.CatchClause
	if _, ok := p.accept(tsltoken.KwCatch); ok {
		c := &tslast.CatchClause{}
		if _, ok := p.accept(tsltoken.LParen); ok {
			if p.at(tsltoken.Ident) {
				c.Param = p.advance().Text
			}
			p.skipTypeAnnotation()
			p.expect(tsltoken.RParen, diag.UnsupportedKind, "expected ')' after catch binding")
		}
		body, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		c.Body = body
		catch = c
	}
	var finally *tslast.Block
	if _, ok := p.accept(tsltoken.KwFinally); ok {
		var ok bool
		finally, ok = p.parseBlock()
		if !ok {
			return nil, false
		}
	}
	return &tslast.Stmt{Kind: tslast.StmtTry, Span: p.spanFrom(start), Data: tslast.TryData{Try: tryBlock, Catch: catch, Finally: finally}}, true
}

func (p *Parser) parseEnum(isConst bool) (*tslast.Stmt, bool) {
	start := p.advance().Span // enum
	nameTok, ok := p.expect(tsltoken.Ident, diag.MissingClassName, "enum declaration has no name")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(tsltoken.LBrace, diag.UnsupportedKind, "expected '{' to start enum body"); !ok {
		return nil, false
	}
	var members []tslast.EnumMember
	for !p.at(tsltoken.RBrace) && !p.at(tsltoken.EOF) {
		memberTok, ok := p.expect(tsltoken.Ident, diag.MissingClassName, "expected enum member name")
		if !ok {
			return nil, false
		}
		m := tslast.EnumMember{Name: memberTok.Text}
		if _, ok := p.accept(tsltoken.Assign); ok {
			switch p.peek().Kind {
			case tsltoken.String:
				tok := p.advance()
				m.StringValue = tok.Text
				m.IsString = true
				m.HasInit = true
			case tsltoken.Number:
				tok := p.advance()
				m.NumberValue = parseFloatOrZero(tok.Text)
				m.HasInit = true
			default:
				p.parseAssignExpr() // tolerate computed initializers; value resolved by tslcheck
				m.HasInit = true
			}
		}
		members = append(members, m)
		if !p.at(tsltoken.RBrace) {
			p.accept(tsltoken.Comma)
		}
	}
	end, ok := p.expect(tsltoken.RBrace, diag.UnsupportedKind, "expected '}' to close enum body")
	if !ok {
		return nil, false
	}
	return &tslast.Stmt{Kind: tslast.StmtEnumDecl, Span: start.Cover(end.Span), Data: tslast.EnumDeclData{Name: nameTok.Text, Const: isConst, Members: members}}, true
}

func (p *Parser) parseAmbient() (*tslast.Stmt, bool) {
	p.advance() // declare
	stmt, ok := p.parseStmtInner()
	if ok && stmt != nil {
		switch d := stmt.Data.(type) {
		case tslast.VarDeclData:
			d.Ambient = true
			stmt.Data = d
		}
	}
	return stmt, ok
}

func (p *Parser) parseNamespace() (*tslast.Stmt, bool) {
	start := p.advance().Span // namespace/module
	nameTok, ok := p.expect(tsltoken.Ident, diag.MissingClassName, "namespace declaration has no name")
	if !ok {
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return &tslast.Stmt{Kind: tslast.StmtNamespaceDecl, Span: start.Cover(body.Span), Data: tslast.NamespaceDeclData{Name: nameTok.Text, Body: body.Stmts}}, true
}

func (p *Parser) parseImport() (*tslast.Stmt, bool) {
	start := p.advance().Span // import
	data := tslast.ImportDeclData{}

	if p.at(tsltoken.String) {
		pathTok := p.advance()
		data.ModulePath = pathTok.Text
		data.SideEffectOnly = true
		p.accept(tsltoken.Semicolon)
		return &tslast.Stmt{Kind: tslast.StmtImportDecl, Span: p.spanFrom(start), Data: data}, true
	}

	if p.at(tsltoken.Star) {
		p.advance()
		p.expect(tsltoken.KwAs, diag.UnsupportedImportType, "expected 'as' after 'import *'")
		nameTok, ok := p.expect(tsltoken.Ident, diag.MissingFunctionName, "expected namespace binding name")
		if !ok {
			return nil, false
		}
		data.NamespaceName = nameTok.Text
	} else if p.at(tsltoken.Ident) {
		defaultTok := p.advance()
		data.DefaultLocal = defaultTok.Text
		if _, ok := p.accept(tsltoken.Comma); ok {
			if !p.parseImportBraceGroup(&data) {
				return nil, false
			}
		}
	} else if p.at(tsltoken.LBrace) {
		if !p.parseImportBraceGroup(&data) {
			return nil, false
		}
	}

	p.expect(tsltoken.KwFrom, diag.UnsupportedImportType, "expected 'from' in import declaration")
	pathTok, ok := p.expect(tsltoken.String, diag.MissingSourceFile, "expected a module path string")
	if !ok {
		return nil, false
	}
	data.ModulePath = pathTok.Text
	p.accept(tsltoken.Semicolon)
	return &tslast.Stmt{Kind: tslast.StmtImportDecl, Span: p.spanFrom(start), Data: data}, true
}

func (p *Parser) parseImportBraceGroup(data *tslast.ImportDeclData) bool {
	if _, ok := p.expect(tsltoken.LBrace, diag.UnsupportedImportType, "expected '{' in named import list"); !ok {
		return false
	}
	for !p.at(tsltoken.RBrace) && !p.at(tsltoken.EOF) {
		nameTok, ok := p.expect(tsltoken.Ident, diag.MissingFunctionName, "expected an imported name")
		if !ok {
			return false
		}
		spec := tslast.ImportSpecifier{ImportedName: nameTok.Text, LocalName: nameTok.Text}
		if _, ok := p.accept(tsltoken.KwAs); ok {
			localTok, ok := p.expect(tsltoken.Ident, diag.MissingFunctionName, "expected a local binding name after 'as'")
			if !ok {
				return false
			}
			spec.LocalName = localTok.Text
		}
		data.Named = append(data.Named, spec)
		if !p.at(tsltoken.RBrace) {
			p.accept(tsltoken.Comma)
		}
	}
	_, ok := p.expect(tsltoken.RBrace, diag.UnsupportedImportType, "expected '}' to close named import list")
	return ok
}

func (p *Parser) parseExport() (*tslast.Stmt, bool) {
	start := p.advance().Span // export
	if _, ok := p.accept(tsltoken.KwDefault); ok {
		p.err(diag.UnsupportedDefaultExport, "default export is not supported")
		expr, ok := p.parseAssignExpr()
		if !ok {
			return nil, false
		}
		p.accept(tsltoken.Semicolon)
		return &tslast.Stmt{
			Kind: tslast.StmtExportDecl,
			Span: p.spanFrom(start),
			Data: tslast.ExportDeclData{Default: true, Inner: &tslast.Stmt{Kind: tslast.StmtExpr, Data: tslast.ExprStmtData{Expr: expr}}},
		}, true
	}
	inner, ok := p.parseStmtInner()
	if !ok {
		return nil, false
	}
	return &tslast.Stmt{Kind: tslast.StmtExportDecl, Span: p.spanFrom(start), Data: tslast.ExportDeclData{Inner: inner}}, true
}

func parseFloatOrZero(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
