package lower

import (
	"surge/internal/luaast"
	"surge/internal/scope"
	"surge/internal/tslast"
	"surge/internal/types"
)

// lowerArgs lowers a call/new argument list, routing through table.unpack
// when any argument is a spread (spec.md §4.5 Spread), since Lua only
// expands a multi-value expression when it is the final call argument.
func (l *Lowerer) lowerArgs(args []*tslast.Expr, spreads []bool) []luaast.Expr {
	hasSpread := false
	for _, sp := range spreads {
		if sp {
			hasSpread = true
			break
		}
	}
	if !hasSpread {
		return l.lowerExprList(args)
	}
	arr := l.lowerArrayLit(tslast.ArrayLitData{Elements: args, SpreadFlags: spreads})
	return []luaast.Expr{luaast.Call(identExpr(luaast.Ident{Name: "table.unpack"}), arr)}
}

// lowerCall lowers a call expression, deciding between `obj:method(...)`
// and `obj.method(...)` from the callee's resolved signature context
// (spec.md §4.5 Call, §3 ContextType): a @noSelf-marked signature never
// receives an implicit self argument.
func (l *Lowerer) lowerCall(e *tslast.Expr, d tslast.CallData) luaast.Expr {
	args := l.lowerArgs(d.Args, d.Spreads)
	self := identExpr(luaast.Ident{Name: "self"})

	// super(...) invokes the base class's synthesized constructor against
	// the already-allocated self, rather than the this-call's own ____super
	// value (which has no .new of its own to speak of in this position).
	if d.Callee.Kind == tslast.ExprSuper && len(l.classStack) > 0 {
		cls := l.classStack[len(l.classStack)-1]
		superCtor := luaast.Dot(luaast.Dot(identExpr(cls), "____super"), "____construct")
		return luaast.Call(superCtor, append([]luaast.Expr{self}, args...)...)
	}

	if d.Callee.Kind == tslast.ExprMember {
		member := d.Callee.Data.(tslast.MemberData)
		if member.Object.Kind == tslast.ExprSuper && len(l.classStack) > 0 {
			cls := l.classStack[len(l.classStack)-1]
			target := luaast.Dot(luaast.Dot(luaast.Dot(identExpr(cls), "____super"), "prototype"), member.Property)
			return luaast.Call(target, append([]luaast.Expr{self}, args...)...)
		}
		useSelf := true
		if l.oracle != nil {
			if sig, ok := l.oracle.ResolvedSignature(d.Callee); ok && sig.Context == types.ContextVoid {
				useSelf = false
			}
		}
		obj := l.lowerExpr(member.Object)
		if useSelf {
			return luaast.MethodCall(obj, member.Property, args...)
		}
		return luaast.Call(luaast.Dot(obj, member.Property), args...)
	}
	return luaast.Call(l.lowerExpr(d.Callee), args...)
}

// lowerNew lowers `new Ctor(args)` to `Ctor.new(args)`, the calling
// convention internal/lualib's class snippets establish for constructors
// (spec.md §4.7).
func (l *Lowerer) lowerNew(d tslast.NewData) luaast.Expr {
	callee := l.lowerExpr(d.Callee)
	return luaast.Call(luaast.Dot(callee, "new"), l.lowerExprList(d.Args)...)
}

// lowerFunctionExpr lowers a function/arrow/method literal (spec.md §4.5
// Function). isMethod adds the implicit leading `self` parameter that every
// non-arrow class/object method receives; arrow functions never do, since
// Lua closures already capture an enclosing `self` local lexically.
func (l *Lowerer) lowerFunctionExpr(d tslast.FunctionData, isMethod bool) luaast.Expr {
	b := l.newBlockBuilder(scope.Function)
	var params []luaast.Ident
	if isMethod && !d.IsArrow {
		params = append(params, luaast.Ident{Name: "self"})
	}
	hasDots := false
	for _, p := range d.Params {
		switch {
		case p.Rest:
			hasDots = true
			name := l.ident(p.Symbol, p.Name, nil)
			l.scopes.RecordDeclaration(p.Symbol)
			b.append(luaast.Local([]luaast.Ident{name}, luaast.Table(luaast.Field{Kind: luaast.FieldPositional, Value: luaast.VarArg()})))
		case p.Pattern != nil:
			tmp := l.tempIdent("param")
			params = append(params, tmp)
			l.bindPattern(b, p.Pattern, identExpr(tmp), true)
		default:
			id := l.ident(p.Symbol, p.Name, nil)
			l.scopes.RecordDeclaration(p.Symbol)
			params = append(params, id)
			if p.Default != nil {
				b.append(luaast.Stmt{Kind: luaast.StmtIf, Data: luaast.IfData{
					Clauses: []luaast.IfClause{{
						Cond: luaast.Binary(luaast.OpEq, identExpr(id), luaast.Nil()),
						Body: luaast.Block{Stmts: []luaast.Stmt{luaast.Assign([]luaast.Expr{identExpr(id)}, l.lowerExpr(p.Default))}},
					}},
				}})
			}
		}
	}
	switch {
	case d.ExprBody != nil:
		b.append(luaast.Return(l.lowerExpr(d.ExprBody)))
	case d.Body != nil:
		for _, s := range d.Body.Stmts {
			l.lowerStmt(b, s)
		}
	}
	body := l.finishBlock(b)
	return luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Params: params, HasDots: hasDots, Body: body}}
}
