package lower

import (
	"fmt"

	"surge/internal/luaast"
	"surge/internal/scope"
	"surge/internal/tslast"
)

// lowerSwitch lowers a switch statement to the goto-chain shape spec.md
// §4.6 specifies: a dispatch sequence of `if disc == test then goto caseN
// end`, a shared `do...end` body holding every case's statements behind its
// label in source order (JS switch cases share one block scope), and a
// trailing end label `break` targets.
func (l *Lowerer) lowerSwitch(b *blockBuilder, d tslast.SwitchData) {
	suffix := l.nextGotoSuffix()
	endLabel := fmt.Sprintf("____TS_switch%d_end", suffix)
	lc := l.pushLoop(scope.Switch)
	lc.switchEnd = endLabel

	tmp := l.tempIdent("switch")
	b.append(luaast.Local([]luaast.Ident{tmp}, l.lowerExpr(d.Disc)))

	caseLabels := make([]string, len(d.Cases))
	defaultIdx := -1
	for i, c := range d.Cases {
		caseLabels[i] = fmt.Sprintf("____TS_switch%d_case%d", suffix, i)
		if c.Test == nil {
			defaultIdx = i
		}
	}
	for i, c := range d.Cases {
		if c.Test == nil {
			continue
		}
		cond := luaast.Binary(luaast.OpEq, identExpr(tmp), l.lowerExpr(c.Test))
		b.append(luaast.Stmt{Kind: luaast.StmtIf, Data: luaast.IfData{
			Clauses: []luaast.IfClause{{Cond: cond, Body: luaast.Block{Stmts: []luaast.Stmt{luaast.Goto(caseLabels[i])}}}},
		}})
	}
	if defaultIdx >= 0 {
		b.append(luaast.Goto(caseLabels[defaultIdx]))
	} else {
		b.append(luaast.Goto(endLabel))
	}

	body := l.newBlockBuilder(scope.Switch)
	for i, c := range d.Cases {
		body.append(luaast.Label(caseLabels[i]))
		l.lowerStmtsInto(body, c.Body)
	}
	finished := l.finishBlock(body)
	finished.Stmts = append(finished.Stmts, luaast.Label(endLabel))
	b.append(luaast.Do(finished))
	l.popLoop()
}

// lowerTry lowers try/catch/finally to pcall (spec.md §4.6): the try block
// becomes a zero-argument function passed to pcall, the catch clause binds
// the error value under an `if not ok` guard, and a bare finally block runs
// unconditionally afterward. A try with no catch re-raises the pcall error
// after finally runs, so control flow observed by an outer handler matches
// the uncaught-throw case.
func (l *Lowerer) lowerTry(b *blockBuilder, d tslast.TryData) {
	tryBody := l.lowerBlock(d.Try, scope.Try)
	tryFn := luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Body: tryBody}}

	ok := l.tempIdent("ok")
	errv := l.tempIdent("err")
	b.append(luaast.Local([]luaast.Ident{ok, errv}, luaast.Call(identExpr(luaast.Ident{Name: "pcall"}), tryFn)))

	if d.Catch != nil {
		catchBuilder := l.newBlockBuilder(scope.Catch)
		if d.Catch.Param != "" {
			catchID := l.ident(d.Catch.Symbol, d.Catch.Param, nil)
			l.scopes.RecordDeclaration(d.Catch.Symbol)
			catchBuilder.append(luaast.Local([]luaast.Ident{catchID}, identExpr(errv)))
		}
		if d.Catch.Body != nil {
			for _, s := range d.Catch.Body.Stmts {
				l.lowerStmt(catchBuilder, s)
			}
		}
		catchBody := l.finishBlock(catchBuilder)
		b.append(luaast.Stmt{Kind: luaast.StmtIf, Data: luaast.IfData{
			Clauses: []luaast.IfClause{{Cond: luaast.Unary(luaast.OpNot, identExpr(ok)), Body: catchBody}},
		}})
	}

	if d.Finally != nil {
		finallyBody := l.lowerBlock(d.Finally, scope.Block)
		b.append(luaast.Do(finallyBody))
	}

	if d.Catch == nil {
		rethrow := luaast.Block{Stmts: []luaast.Stmt{
			{Kind: luaast.StmtExprStmt, Data: luaast.ExprStmtData{
				Call: luaast.Call(identExpr(luaast.Ident{Name: "error"}), identExpr(errv)),
			}},
		}}
		b.append(luaast.Stmt{Kind: luaast.StmtIf, Data: luaast.IfData{
			Clauses: []luaast.IfClause{{Cond: luaast.Unary(luaast.OpNot, identExpr(ok)), Body: rethrow}},
		}})
	}
}
