// StatementLowerer: spec.md §4.6. Each TSL statement kind lowers to zero or
// more internal/luaast statements, appended onto the enclosing block's
// blockBuilder so the Hoister (hoist.go) can see every declaration in
// source order before the block is finalized.
package lower

import (
	"surge/internal/diag"
	"surge/internal/luaast"
	"surge/internal/lualib"
	"surge/internal/scope"
	"surge/internal/symbols"
	"surge/internal/tslast"
)

// lowerBlock lowers a *tslast.Block under a freshly pushed scope of kind,
// returning the finished, hoisted luaast.Block.
func (l *Lowerer) lowerBlock(block *tslast.Block, kind scope.Kind) luaast.Block {
	b := l.newBlockBuilder(kind)
	if block != nil {
		for _, s := range block.Stmts {
			l.lowerStmt(b, s)
		}
	}
	return l.finishBlock(b)
}

// lowerStmtsInto lowers a bare statement list (e.g. a switch case's body) into
// an existing blockBuilder without pushing a new scope, used where TSL's
// grammar shares a scope across several statement lists (switch cases).
func (l *Lowerer) lowerStmtsInto(b *blockBuilder, stmts []*tslast.Stmt) {
	for _, s := range stmts {
		l.lowerStmt(b, s)
	}
}

func (l *Lowerer) lowerStmt(b *blockBuilder, s *tslast.Stmt) {
	if s == nil {
		return
	}
	switch s.Kind {
	case tslast.StmtEmpty:
		return
	case tslast.StmtExpr:
		l.lowerExprStmt(b, s.Data.(tslast.ExprStmtData))
	case tslast.StmtVarDecl:
		l.lowerVarDecl(b, s.Data.(tslast.VarDeclData), s)
	case tslast.StmtBlock:
		d := s.Data.(tslast.BlockStmtData)
		inner := l.lowerBlock(d.Block, scope.Block)
		b.append(luaast.Do(inner))
	case tslast.StmtIf:
		l.lowerIf(b, s.Data.(tslast.IfData))
	case tslast.StmtWhile:
		l.lowerWhile(b, s.Data.(tslast.WhileData))
	case tslast.StmtDoWhile:
		l.lowerDoWhile(b, s.Data.(tslast.DoWhileData))
	case tslast.StmtFor:
		l.lowerFor(b, s.Data.(tslast.ForData))
	case tslast.StmtForOf:
		l.lowerForOf(b, s.Data.(tslast.ForOfData))
	case tslast.StmtForIn:
		l.lowerForIn(b, s.Data.(tslast.ForInData))
	case tslast.StmtSwitch:
		l.lowerSwitch(b, s.Data.(tslast.SwitchData))
	case tslast.StmtBreak:
		l.lowerBreak(b)
	case tslast.StmtContinue:
		l.lowerContinue(b)
	case tslast.StmtTry:
		l.lowerTry(b, s.Data.(tslast.TryData))
	case tslast.StmtThrow:
		l.lowerThrow(b, s.Data.(tslast.ThrowData), s)
	case tslast.StmtReturn:
		l.lowerReturn(b, s.Data.(tslast.ReturnData))
	case tslast.StmtFunctionDecl:
		l.lowerFunctionDecl(b, s.Data.(tslast.FunctionDeclData))
	case tslast.StmtClassDecl:
		l.lowerClassDecl(b, s.Data.(tslast.ClassDeclData).Decl)
	case tslast.StmtEnumDecl:
		l.lowerEnumDecl(b, s.Data.(tslast.EnumDeclData), s.Span)
	case tslast.StmtNamespaceDecl:
		l.lowerNamespaceDecl(b, s.Data.(tslast.NamespaceDeclData), s.Span)
	case tslast.StmtImportDecl:
		l.lowerImportDecl(b, s.Data.(tslast.ImportDeclData))
	case tslast.StmtExportDecl:
		l.lowerExportDecl(b, s.Data.(tslast.ExportDeclData))
	}
}

// lowerExprStmt lowers a bare expression statement, special-casing plain
// (non-compound, non-destructuring) assignment and update-in-statement
// position so they emit a direct Lua assignment instead of the IIFE the
// general expression-position lowering needs to yield a value.
func (l *Lowerer) lowerExprStmt(b *blockBuilder, d tslast.ExprStmtData) {
	switch d.Expr.Kind {
	case tslast.ExprAssign:
		a := d.Expr.Data.(tslast.AssignData)
		if a.Op == tslast.AssignPlain {
			if isDestructureTarget(a.Target) {
				tmp := l.tempIdent("assign")
				b.append(luaast.Local([]luaast.Ident{tmp}, l.lowerExpr(a.Value)))
				b.append(l.destructureAssignStmts(a.Target, identExpr(tmp))...)
				return
			}
			b.append(luaast.Assign([]luaast.Expr{l.lowerExpr(a.Target)}, l.lowerExpr(a.Value)))
			return
		}
		b.append(luaast.Assign([]luaast.Expr{l.lowerExpr(a.Target)}, l.compoundValue(a)))
	case tslast.ExprUpdate:
		u := d.Expr.Data.(tslast.UpdateData)
		target := l.lowerExpr(u.Operand)
		op := luaast.OpAdd
		if !u.Inc {
			op = luaast.OpSub
		}
		b.append(luaast.Assign([]luaast.Expr{target}, luaast.Binary(op, target, luaast.Number("1"))))
	default:
		b.append(luaast.Stmt{Kind: luaast.StmtExprStmt, Data: luaast.ExprStmtData{Call: l.lowerExpr(d.Expr)}})
	}
}

func (l *Lowerer) lowerVarDecl(b *blockBuilder, d tslast.VarDeclData, stmt *tslast.Stmt) {
	for _, decl := range d.Declarators {
		if decl.Pattern != nil {
			l.lowerDestructuringDecl(b, decl)
			continue
		}
		id := l.ident(decl.Symbol, decl.Name, nil)
		l.scopes.RecordDeclaration(decl.Symbol)
		var values []luaast.Expr
		if decl.Init != nil {
			values = []luaast.Expr{l.lowerExpr(decl.Init)}
		}
		b.append(luaast.Local([]luaast.Ident{id}, values...))
		b.markLocal([]symbols.SymbolID{decl.Symbol}, stmt.Span)
		if decl.Symbol.IsValid() {
			l.maybeExport(decl.Name, decl.Symbol)
		}
	}
}

// lowerDestructuringDecl lowers `let [a,b] = expr` / `let {a,b} = expr` by
// binding expr to a temporary then assigning each pattern element from it
// (spec.md §4.5 Destructuring assignment, applied at declaration time).
func (l *Lowerer) lowerDestructuringDecl(b *blockBuilder, decl tslast.VarDeclarator) {
	tmp := l.tempIdent("destructure")
	var rhs luaast.Expr
	if decl.Init != nil {
		rhs = l.lowerExpr(decl.Init)
	} else {
		rhs = luaast.Nil()
	}
	b.append(luaast.Local([]luaast.Ident{tmp}, rhs))
	l.bindPattern(b, decl.Pattern, identExpr(tmp), true)
}

// bindPattern recursively lowers one destructuring pattern against source,
// emitting `local`/assignment statements for each leaf binding.
func (l *Lowerer) bindPattern(b *blockBuilder, p *tslast.Pattern, source luaast.Expr, declare bool) {
	if p == nil {
		return
	}
	switch p.Kind {
	case tslast.PatternIdent:
		id := l.ident(p.Symbol, p.Name, nil)
		val := source
		if p.Default != nil {
			val = defaultOr(source, l.lowerExpr(p.Default))
		}
		if declare {
			l.scopes.RecordDeclaration(p.Symbol)
			b.append(luaast.Local([]luaast.Ident{id}, val))
		} else {
			b.append(luaast.Assign([]luaast.Expr{identExpr(id)}, val))
		}
	case tslast.PatternArray:
		for i, elem := range p.Elements {
			if elem == nil {
				continue
			}
			if elem.Kind == tslast.PatternRest {
				l.bindPattern(b, elem.Rest, l.restSliceExpr(source, i+1), declare)
				continue
			}
			el := luaast.Index(source, luaast.Number(itoaLua(i+1)))
			l.bindPattern(b, elem, el, declare)
		}
	case tslast.PatternObject:
		for _, prop := range p.Props {
			var field luaast.Expr
			if prop.Computed != nil {
				field = luaast.Index(source, l.lowerExpr(prop.Computed))
			} else {
				field = luaast.Dot(source, prop.Key)
			}
			l.bindPattern(b, prop.Value, field, declare)
		}
	case tslast.PatternRest:
		l.bindPattern(b, p.Rest, source, declare)
	}
}

// restSliceExpr builds the IIFE that copies source[fromIndex .. #source]
// into a fresh 1-based array, for an array-destructuring rest element whose
// 1-based position in the pattern is fromIndex (spec.md §4.5 Destructuring
// assignment).
func (l *Lowerer) restSliceExpr(source luaast.Expr, fromIndex int) luaast.Expr {
	result := luaast.Ident{Name: "____TS__rest"}
	i := luaast.Ident{Name: "____TS__i"}
	body := luaast.Block{Stmts: []luaast.Stmt{
		luaast.Local([]luaast.Ident{result}, luaast.Table()),
		{Kind: luaast.StmtNumericFor, Data: luaast.NumericForData{
			Var:   i,
			Start: luaast.Number(itoaLua(fromIndex)),
			Limit: luaast.Unary(luaast.OpLen, source),
			Body: luaast.Block{Stmts: []luaast.Stmt{
				luaast.Assign(
					[]luaast.Expr{luaast.Index(identExpr(result), luaast.Binary(luaast.OpAdd, luaast.Binary(luaast.OpSub, identExpr(i), luaast.Number(itoaLua(fromIndex))), luaast.Number("1")))},
					luaast.Index(source, identExpr(i)),
				),
			}},
		}},
		luaast.Return(identExpr(result)),
	}}
	fn := luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Body: body}}
	return luaast.Call(luaast.Paren(fn))
}

// defaultOr builds `(function() local v = source; if v == nil then v = def end return v end)()`.
func defaultOr(source, def luaast.Expr) luaast.Expr {
	v := luaast.Ident{Name: "____TS__v"}
	body := luaast.Block{Stmts: []luaast.Stmt{
		luaast.Local([]luaast.Ident{v}, source),
		{Kind: luaast.StmtIf, Data: luaast.IfData{
			Clauses: []luaast.IfClause{{
				Cond: luaast.Binary(luaast.OpEq, identExpr(v), luaast.Nil()),
				Body: luaast.Block{Stmts: []luaast.Stmt{luaast.Assign([]luaast.Expr{identExpr(v)}, def)}},
			}},
		}},
		luaast.Return(identExpr(v)),
	}}
	fn := luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Body: body}}
	return luaast.Call(luaast.Paren(fn))
}

func itoaLua(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// maybeExport records name/sym onto ____exports only when this declaration
// sits directly under an `export` (pendingExport), consuming the flag so a
// nested declaration inside an exported statement's body never leaks in.
func (l *Lowerer) maybeExport(name string, sym symbols.SymbolID) {
	if !l.pendingExport {
		return
	}
	l.pendingExport = false
	l.exported = append(l.exported, exportedBinding{name: name, sym: sym})
}

func (l *Lowerer) lowerIf(b *blockBuilder, d tslast.IfData) {
	clause := luaast.IfClause{Cond: l.lowerExpr(d.Cond), Body: l.lowerSingleAsBlock(d.Then)}
	stmt := luaast.Stmt{Kind: luaast.StmtIf, Data: luaast.IfData{Clauses: []luaast.IfClause{clause}}}
	if d.Else != nil {
		if d.Else.Kind == tslast.StmtIf {
			elseStmt := l.lowerIfChain(d.Else.Data.(tslast.IfData))
			ifData := stmt.Data.(luaast.IfData)
			ifData.Clauses = append(ifData.Clauses, elseStmt.Clauses...)
			ifData.Else = elseStmt.Else
			stmt.Data = ifData
		} else {
			elseBlock := l.lowerSingleAsBlock(d.Else)
			ifData := stmt.Data.(luaast.IfData)
			ifData.Else = &elseBlock
			stmt.Data = ifData
		}
	}
	b.append(stmt)
}

func (l *Lowerer) lowerIfChain(d tslast.IfData) luaast.IfData {
	out := luaast.IfData{Clauses: []luaast.IfClause{{Cond: l.lowerExpr(d.Cond), Body: l.lowerSingleAsBlock(d.Then)}}}
	if d.Else != nil {
		if d.Else.Kind == tslast.StmtIf {
			rest := l.lowerIfChain(d.Else.Data.(tslast.IfData))
			out.Clauses = append(out.Clauses, rest.Clauses...)
			out.Else = rest.Else
		} else {
			eb := l.lowerSingleAsBlock(d.Else)
			out.Else = &eb
		}
	}
	return out
}

// lowerSingleAsBlock lowers a statement that may or may not itself be a
// StmtBlock into one luaast.Block, pushing its own Conditional scope.
func (l *Lowerer) lowerSingleAsBlock(s *tslast.Stmt) luaast.Block {
	if s == nil {
		return luaast.Block{}
	}
	if s.Kind == tslast.StmtBlock {
		return l.lowerBlock(s.Data.(tslast.BlockStmtData).Block, scope.Conditional)
	}
	b := l.newBlockBuilder(scope.Conditional)
	l.lowerStmt(b, s)
	return l.finishBlock(b)
}

func (l *Lowerer) pushLoop(kind scope.Kind) *loopCtx {
	lc := &loopCtx{kind: kind}
	l.loopStack = append(l.loopStack, lc)
	return lc
}

func (l *Lowerer) popLoop() { l.loopStack = l.loopStack[:len(l.loopStack)-1] }

func (l *Lowerer) currentLoop() *loopCtx {
	if len(l.loopStack) == 0 {
		return nil
	}
	return l.loopStack[len(l.loopStack)-1]
}

// loopBody lowers a loop's body block, wrapping it with a trailing
// continue-label if any continue statement inside targeted this loop
// (spec.md §4.6 `__continue{scopeId}`).
func (l *Lowerer) loopBody(s *tslast.Stmt, lc *loopCtx) luaast.Block {
	block := l.lowerSingleAsBlockKind(s, scope.Loop)
	if lc.continueName != "" {
		block.Stmts = append(block.Stmts, luaast.Label(lc.continueName))
	}
	return block
}

func (l *Lowerer) lowerSingleAsBlockKind(s *tslast.Stmt, kind scope.Kind) luaast.Block {
	if s != nil && s.Kind == tslast.StmtBlock {
		return l.lowerBlock(s.Data.(tslast.BlockStmtData).Block, kind)
	}
	b := l.newBlockBuilder(kind)
	l.lowerStmt(b, s)
	return l.finishBlock(b)
}

func (l *Lowerer) lowerWhile(b *blockBuilder, d tslast.WhileData) {
	lc := l.pushLoop(scope.Loop)
	cond := l.lowerExpr(d.Cond)
	body := l.loopBody(d.Body, lc)
	l.popLoop()
	b.append(luaast.Stmt{Kind: luaast.StmtWhile, Data: luaast.WhileData{Cond: cond, Body: body}})
}

func (l *Lowerer) lowerDoWhile(b *blockBuilder, d tslast.DoWhileData) {
	lc := l.pushLoop(scope.Loop)
	body := l.loopBody(d.Body, lc)
	cond := l.lowerExpr(d.Cond)
	l.popLoop()
	b.append(luaast.Stmt{Kind: luaast.StmtRepeat, Data: luaast.RepeatData{Body: body, Cond: luaast.Unary(luaast.OpNot, luaast.Paren(cond))}})
}

func (l *Lowerer) lowerFor(b *blockBuilder, d tslast.ForData) {
	// Wrapped in its own `do ... end` so the init variable's scope matches
	// TSL's block-scoped for-init (spec.md §4.6).
	inner := l.newBlockBuilder(scope.Block)
	if d.Init != nil {
		l.lowerStmt(inner, d.Init)
	}
	lc := l.pushLoop(scope.Loop)
	var cond luaast.Expr
	if d.Cond != nil {
		cond = l.lowerExpr(d.Cond)
	} else {
		cond = luaast.True()
	}
	bodyBuilder := l.newBlockBuilder(scope.Loop)
	if d.Body != nil {
		if d.Body.Kind == tslast.StmtBlock {
			for _, s := range d.Body.Data.(tslast.BlockStmtData).Block.Stmts {
				l.lowerStmt(bodyBuilder, s)
			}
		} else {
			l.lowerStmt(bodyBuilder, d.Body)
		}
	}
	if d.Post != nil {
		bodyBuilder.append(luaast.Stmt{Kind: luaast.StmtExprStmt, Data: luaast.ExprStmtData{Call: l.lowerExpr(d.Post)}})
	}
	if lc.continueName != "" {
		bodyBuilder.append(luaast.Label(lc.continueName))
	}
	body := l.finishBlock(bodyBuilder)
	l.popLoop()
	inner.append(luaast.Stmt{Kind: luaast.StmtWhile, Data: luaast.WhileData{Cond: cond, Body: body}})
	b.append(luaast.Do(l.finishBlock(inner)))
}

func (l *Lowerer) lowerForOf(b *blockBuilder, d tslast.ForOfData) {
	lc := l.pushLoop(scope.Loop)
	iterExpr := l.lowerExpr(d.Iterable)

	var names []luaast.Ident
	if d.Pattern != nil {
		names = []luaast.Ident{l.tempIdent("forOf")}
	} else {
		names = append(names, l.ident(d.Symbol, d.Name, nil))
		for i, n := range d.Names {
			sym := symbols.NoSymbolID
			if i < len(d.Symbols) {
				sym = d.Symbols[i]
			}
			names = append(names, l.ident(sym, n, nil))
		}
	}

	var iterCall luaast.Expr
	switch d.Kind {
	case tslast.ForOfArray:
		iterCall = luaast.Call(identExpr(luaast.Ident{Name: "ipairs"}), iterExpr)
	case tslast.ForOfLuaIterator:
		iterCall = iterExpr
	default:
		iterCall = luaast.Call(identExpr(luaast.Ident{Name: l.useFeature(lualib.FeatureIterator)}), iterExpr)
	}

	bodyBuilder := l.newBlockBuilder(scope.Loop)
	if d.Pattern != nil {
		l.bindPattern(bodyBuilder, d.Pattern, identExpr(names[0]), true)
	}
	if d.Body != nil {
		if d.Body.Kind == tslast.StmtBlock {
			for _, s := range d.Body.Data.(tslast.BlockStmtData).Block.Stmts {
				l.lowerStmt(bodyBuilder, s)
			}
		} else {
			l.lowerStmt(bodyBuilder, d.Body)
		}
	}
	if lc.continueName != "" {
		bodyBuilder.append(luaast.Label(lc.continueName))
	}
	body := l.finishBlock(bodyBuilder)
	l.popLoop()
	b.append(luaast.Stmt{Kind: luaast.StmtGenericFor, Data: luaast.GenericForData{Names: names, Exprs: []luaast.Expr{iterCall}, Body: body}})
}

func (l *Lowerer) lowerForIn(b *blockBuilder, d tslast.ForInData) {
	l.report(diag.ForbiddenForIn, d.Object.Span, "for-in loops are not supported")
	lc := l.pushLoop(scope.Loop)
	obj := l.lowerExpr(d.Object)
	name := l.ident(d.Symbol, d.Name, nil)
	body := l.lowerSingleAsBlockKind(d.Body, scope.Loop)
	if lc.continueName != "" {
		body.Stmts = append(body.Stmts, luaast.Label(lc.continueName))
	}
	l.popLoop()
	b.append(luaast.Stmt{Kind: luaast.StmtGenericFor, Data: luaast.GenericForData{
		Names: []luaast.Ident{name}, Exprs: []luaast.Expr{luaast.Call(identExpr(luaast.Ident{Name: "pairs"}), obj)}, Body: body,
	}})
}

func (l *Lowerer) lowerBreak(b *blockBuilder) {
	lc := l.currentLoop()
	if lc != nil && lc.kind == scope.Switch {
		b.append(luaast.Goto(lc.switchEnd))
		return
	}
	b.append(luaast.Break())
}

func (l *Lowerer) lowerContinue(b *blockBuilder) {
	for i := len(l.loopStack) - 1; i >= 0; i-- {
		lc := l.loopStack[i]
		if lc.kind != scope.Loop {
			continue
		}
		if lc.continueName == "" {
			lc.continueName = "__continue" + itoaLua(l.nextGotoSuffix())
		}
		b.append(luaast.Goto(lc.continueName))
		return
	}
}

func (l *Lowerer) lowerThrow(b *blockBuilder, d tslast.ThrowData, stmt *tslast.Stmt) {
	if d.Value == nil || !(d.Value.Kind == tslast.ExprNew || d.Value.Kind == tslast.ExprStringLit || d.Value.Kind == tslast.ExprCall) {
		l.report(diag.InvalidThrowExpression, stmt.Span, "throw expression is not a valid Error construction")
	}
	b.append(luaast.Stmt{Kind: luaast.StmtExprStmt, Data: luaast.ExprStmtData{
		Call: luaast.Call(identExpr(luaast.Ident{Name: "error"}), l.lowerExpr(d.Value)),
	}})
}

func (l *Lowerer) lowerReturn(b *blockBuilder, d tslast.ReturnData) {
	vals := make([]luaast.Expr, len(d.Values))
	for i, v := range d.Values {
		vals[i] = l.lowerExpr(v)
	}
	if sc := l.scopes.FindNearestOfKinds(scope.Function | scope.File); sc != nil {
		sc.FunctionReturned = true
	}
	b.append(luaast.Return(vals...))
}

func (l *Lowerer) lowerFunctionDecl(b *blockBuilder, d tslast.FunctionDeclData) {
	id := l.ident(d.Symbol, d.Name, nil)
	fn := l.lowerFunctionExpr(d.Fn.Data.(tslast.FunctionData), false)
	l.scopes.RecordDeclaration(d.Symbol)
	b.append(luaast.Local([]luaast.Ident{id}, fn))
	b.markFunc(d.Symbol)
	l.scopes.RecordFuncDef(d.Symbol, &scope.FuncDefInfo{})
	if d.Symbol.IsValid() {
		l.maybeExport(d.Name, d.Symbol)
	}
}

func (l *Lowerer) lowerImportDecl(b *blockBuilder, d tslast.ImportDeclData) {
	l.lowerImport(b, d)
}

func (l *Lowerer) lowerExportDecl(b *blockBuilder, d tslast.ExportDeclData) {
	if d.ReExport != nil {
		l.lowerImport(b, *d.ReExport)
		return
	}
	if d.Inner == nil {
		return
	}
	l.pendingExport = true
	l.lowerStmt(b, d.Inner)
	l.pendingExport = false
}
