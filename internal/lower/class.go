// ClassLowerer: spec.md §4.7. Every class becomes a prototype table built
// by the lualib class runtime (__TS__Class/__TS__ClassExtends), with
// fields folded into a synthesized `____construct`, methods assigned onto
// `prototype`, and getters/setters registered into `____getters`/
// `____setters` so internal/lualib's class_index/class_new_index snippets
// route property access through them.
package lower

import (
	"surge/internal/luaast"
	"surge/internal/lualib"
	"surge/internal/scope"
	"surge/internal/symbols"
	"surge/internal/tslast"
)

func (l *Lowerer) lowerClassDecl(b *blockBuilder, decl *tslast.ClassDecl) {
	name := l.ident(decl.Symbol, decl.Name, nil)
	l.emitClass(b, decl, name)
	l.scopes.RecordDeclaration(decl.Symbol)
	b.markLocal([]symbols.SymbolID{decl.Symbol}, decl.Span)
	if decl.Symbol.IsValid() {
		l.maybeExport(decl.Name, decl.Symbol)
	}
}

// lowerClassExpr lowers a class used in expression position (`const C =
// class extends Base {...}`) as an IIFE that builds the class table and
// returns it.
func (l *Lowerer) lowerClassExpr(decl *tslast.ClassDecl) luaast.Expr {
	inner := l.newBlockBuilder(scope.Block)
	name := luaast.Ident{Name: decl.Name}
	if name.Name == "" {
		name = l.tempIdent("class")
	}
	l.emitClass(inner, decl, name)
	inner.append(luaast.Return(identExpr(name)))
	body := l.finishBlock(inner)
	fn := luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Body: body}}
	return luaast.Call(luaast.Paren(fn))
}

// emitClass appends decl's full construction sequence onto b, bound to
// name: the base __TS__Class table (extended via __TS__ClassExtends when
// decl.Extends is set), every member assigned in declaration order, and
// the synthesized constructor/new pair.
func (l *Lowerer) emitClass(b *blockBuilder, decl *tslast.ClassDecl, name luaast.Ident) {
	l.useFeature(lualib.FeatureClassExtends)
	b.append(luaast.Local([]luaast.Ident{name}, luaast.Call(identExpr(luaast.Ident{Name: "__TS__Class"}), luaast.String(decl.Name))))

	if decl.Extends != nil {
		base := l.lowerExpr(decl.Extends)
		b.append(luaast.Stmt{Kind: luaast.StmtExprStmt, Data: luaast.ExprStmtData{
			Call: luaast.Call(identExpr(luaast.Ident{Name: "__TS__ClassExtends"}), identExpr(name), base),
		}})
	}

	l.classStack = append(l.classStack, name)
	defer func() { l.classStack = l.classStack[:len(l.classStack)-1] }()

	var ctor *tslast.ClassMember
	var fields []tslast.ClassMember
	for i := range decl.Members {
		m := &decl.Members[i]
		switch m.Kind {
		case tslast.MemberConstructor:
			ctor = m
		case tslast.MemberField:
			if m.Static {
				l.emitStaticField(b, name, *m)
			} else {
				fields = append(fields, *m)
			}
		case tslast.MemberMethod:
			l.emitMethod(b, name, *m)
		case tslast.MemberGetter:
			l.emitAccessor(b, name, *m, "____getters")
		case tslast.MemberSetter:
			l.emitAccessor(b, name, *m, "____setters")
		}
	}

	l.emitConstructPair(b, name, decl, ctor, fields)
}

func (l *Lowerer) emitMethod(b *blockBuilder, name luaast.Ident, m tslast.ClassMember) {
	target := luaast.Dot(luaast.Dot(identExpr(name), "prototype"), m.Name)
	if m.Static {
		target = luaast.Dot(identExpr(name), m.Name)
	}
	fn := l.lowerFunctionExpr(m.Fn.Data.(tslast.FunctionData), !m.Static)
	b.append(luaast.Assign([]luaast.Expr{target}, fn))
}

func (l *Lowerer) emitStaticField(b *blockBuilder, name luaast.Ident, m tslast.ClassMember) {
	val := luaast.Nil()
	if m.FieldInit != nil {
		val = l.lowerExpr(m.FieldInit)
	}
	b.append(luaast.Assign([]luaast.Expr{luaast.Dot(identExpr(name), m.Name)}, val))
}

func (l *Lowerer) emitAccessor(b *blockBuilder, name luaast.Ident, m tslast.ClassMember, table string) {
	fn := l.lowerFunctionExpr(m.Fn.Data.(tslast.FunctionData), true)
	b.append(luaast.Assign([]luaast.Expr{luaast.Index(luaast.Dot(identExpr(name), table), luaast.String(m.Name))}, fn))
}

// emitConstructPair synthesizes `name.____construct` (takes an
// already-allocated self, runs field initializers then the constructor
// body) and `name.new` (allocates self via setmetatable and calls
// ____construct), following the split TSTL-style constructor convention
// that lets `super(...)` (lowered in calls.go) invoke the base's
// ____construct against the same self instead of allocating a new one.
func (l *Lowerer) emitConstructPair(b *blockBuilder, name luaast.Ident, decl *tslast.ClassDecl, ctor *tslast.ClassMember, fields []tslast.ClassMember) {
	self := luaast.Ident{Name: "self"}
	inner := l.newBlockBuilder(scope.Function)

	var params []luaast.Ident
	hasDots := false
	if ctor != nil {
		fn := ctor.Fn.Data.(tslast.FunctionData)
		for _, p := range fn.Params {
			switch {
			case p.Rest:
				hasDots = true
				pname := l.ident(p.Symbol, p.Name, nil)
				l.scopes.RecordDeclaration(p.Symbol)
				inner.append(luaast.Local([]luaast.Ident{pname}, luaast.Table(luaast.Field{Kind: luaast.FieldPositional, Value: luaast.VarArg()})))
			case p.Pattern != nil:
				tmp := l.tempIdent("param")
				params = append(params, tmp)
				l.bindPattern(inner, p.Pattern, identExpr(tmp), true)
			default:
				id := l.ident(p.Symbol, p.Name, nil)
				l.scopes.RecordDeclaration(p.Symbol)
				params = append(params, id)
				if p.Default != nil {
					inner.append(luaast.Stmt{Kind: luaast.StmtIf, Data: luaast.IfData{
						Clauses: []luaast.IfClause{{
							Cond: luaast.Binary(luaast.OpEq, identExpr(id), luaast.Nil()),
							Body: luaast.Block{Stmts: []luaast.Stmt{luaast.Assign([]luaast.Expr{identExpr(id)}, l.lowerExpr(p.Default))}},
						}},
					}})
				}
				if p.PropertyShort {
					inner.append(luaast.Assign([]luaast.Expr{luaast.Dot(identExpr(self), p.Name)}, identExpr(id)))
				}
			}
		}
	} else if decl.Extends != nil {
		hasDots = true
		inner.append(luaast.Stmt{Kind: luaast.StmtExprStmt, Data: luaast.ExprStmtData{
			Call: luaast.Call(luaast.Dot(luaast.Dot(identExpr(name), "____super"), "____construct"), identExpr(self), luaast.VarArg()),
		}})
	}

	for _, f := range fields {
		val := luaast.Nil()
		if f.FieldInit != nil {
			val = l.lowerExpr(f.FieldInit)
		}
		inner.append(luaast.Assign([]luaast.Expr{luaast.Dot(identExpr(self), f.Name)}, val))
	}

	if ctor != nil {
		fn := ctor.Fn.Data.(tslast.FunctionData)
		if fn.Body != nil {
			for _, s := range fn.Body.Stmts {
				l.lowerStmt(inner, s)
			}
		}
	}

	constructParams := append([]luaast.Ident{self}, params...)
	constructBody := l.finishBlock(inner)
	construct := luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Params: constructParams, HasDots: hasDots, Body: constructBody}}
	b.append(luaast.Assign([]luaast.Expr{luaast.Dot(identExpr(name), "____construct")}, construct))

	newBuilder := l.newBlockBuilder(scope.Function)
	newSelf := luaast.Ident{Name: "self"}
	newBuilder.append(luaast.Local([]luaast.Ident{newSelf}, luaast.Call(identExpr(luaast.Ident{Name: "setmetatable"}), luaast.Table(), luaast.Dot(identExpr(name), "prototype"))))
	forwardArgs := make([]luaast.Expr, len(params)+1)
	forwardArgs[0] = identExpr(newSelf)
	for i, p := range params {
		forwardArgs[i+1] = identExpr(p)
	}
	constructCall := luaast.Call(luaast.Dot(identExpr(name), "____construct"), forwardArgs...)
	if hasDots {
		constructCall = luaast.Call(luaast.Dot(identExpr(name), "____construct"), append(forwardArgs, luaast.VarArg())...)
	}
	newBuilder.append(luaast.Stmt{Kind: luaast.StmtExprStmt, Data: luaast.ExprStmtData{Call: constructCall}})
	newBuilder.append(luaast.Return(identExpr(newSelf)))
	newBody := l.finishBlock(newBuilder)
	newFn := luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Params: params, HasDots: hasDots, Body: newBody}}
	b.append(luaast.Assign([]luaast.Expr{luaast.Dot(identExpr(name), "new")}, newFn))
}
