// ModuleLowerer: spec.md §4.8. Lowers a whole checked file to the
// returned-table chunk convention every emitted Lua module follows: plain
// locals for every top-level declaration, a trailing `____exports.Name =
// Name` for each binding an `export` actually named, and a final `return
// ____exports` (skipped entirely for a file with nothing exported, or
// replaced by a bare `return <expr>` for a JSON source per spec.md §9).
package lower

import (
	"strconv"

	"surge/internal/diag"
	"surge/internal/luaast"
	"surge/internal/scope"
	"surge/internal/source"
	"surge/internal/symbols"
	"surge/internal/tslast"
)

// lowerModule is spec.md §6's TransformSourceFile entry point's sole
// callee: it owns the one File-kind scope.Stack entry every other lowering
// pass assumes exists.
func (l *Lowerer) lowerModule(file *tslast.File) luaast.Block {
	b := l.newBlockBuilder(scope.File)

	if file.IsJSON {
		b.append(luaast.Return(l.lowerExpr(file.JSONExpr)))
		return l.finishBlock(b)
	}

	for _, s := range file.Stmts {
		l.lowerStmt(b, s)
	}

	if len(l.exported) > 0 {
		exports := luaast.Ident{Name: "____exports"}
		b.append(luaast.Local([]luaast.Ident{exports}, luaast.Table()))
		for _, ex := range l.exported {
			b.append(luaast.Assign(
				[]luaast.Expr{luaast.Dot(identExpr(exports), ex.name)},
				identExpr(l.ident(ex.sym, ex.name, nil)),
			))
		}
		b.append(luaast.Return(identExpr(exports)))
	}

	return l.finishBlock(b)
}

// lowerEnumDecl builds a plain forward/reverse-mapped table for a numeric
// enum, or a forward-only one for a string enum (spec.md §4.8 Enums); a
// const enum only ever needs the forward direction since member access
// folds to the literal value at the use site (internal/tslcheck.Oracle's
// ConstantValueOf, consulted from expr.go's lowerMember).
func (l *Lowerer) lowerEnumDecl(b *blockBuilder, d tslast.EnumDeclData, span source.Span) {
	name := l.ident(d.Symbol, d.Name, nil)
	b.append(luaast.Local([]luaast.Ident{name}, luaast.Table()))
	l.scopes.RecordDeclaration(d.Symbol)
	b.markLocal([]symbols.SymbolID{d.Symbol}, span)

	hasNumeric, hasString := false, false
	next := 0.0
	for _, m := range d.Members {
		if m.IsString {
			hasString = true
			b.append(luaast.Assign([]luaast.Expr{luaast.Dot(identExpr(name), m.Name)}, luaast.String(m.StringValue)))
			continue
		}
		hasNumeric = true
		val := m.NumberValue
		if !m.HasInit {
			val = next
		}
		next = val + 1
		lit := luaast.Number(strconv.FormatFloat(val, 'g', -1, 64))
		b.append(luaast.Assign([]luaast.Expr{luaast.Dot(identExpr(name), m.Name)}, lit))
		if !d.Const {
			b.append(luaast.Assign([]luaast.Expr{luaast.Index(identExpr(name), lit)}, luaast.String(m.Name)))
		}
	}
	if hasNumeric && hasString {
		l.report(diag.HeterogeneousEnum, span, "enum %q mixes numeric and string members", d.Name)
	}
	if d.Symbol.IsValid() {
		l.maybeExport(d.Name, d.Symbol)
	}
}

// lowerNamespaceDecl flattens a namespace's body directly into the
// enclosing block (spec.md §4.8 Namespaces): its members become ordinary
// locals of the surrounding scope, then every member the namespace itself
// exports gets copied onto the namespace table. A `Merged` namespace (a
// second `namespace Foo {}` block for a symbol already declared) reuses the
// existing table instead of re-declaring the local.
func (l *Lowerer) lowerNamespaceDecl(b *blockBuilder, d tslast.NamespaceDeclData, span source.Span) {
	name := l.ident(d.Symbol, d.Name, nil)
	if !d.Merged {
		b.append(luaast.Local([]luaast.Ident{name}, luaast.Table()))
		l.scopes.RecordDeclaration(d.Symbol)
		b.markLocal([]symbols.SymbolID{d.Symbol}, span)
	}

	savedExported := l.exported
	l.exported = nil
	for _, s := range d.Body {
		l.lowerStmt(b, s)
	}
	for _, ex := range l.exported {
		b.append(luaast.Assign(
			[]luaast.Expr{luaast.Dot(identExpr(name), ex.name)},
			identExpr(l.ident(ex.sym, ex.name, nil)),
		))
	}
	l.exported = savedExported

	if d.Symbol.IsValid() {
		l.maybeExport(d.Name, d.Symbol)
	}
}

// lowerImport lowers an import declaration to a `require` call plus one
// local per binding it introduces (spec.md §4.8 Imports): a namespace
// import binds the whole required table, a default import binds its
// `.default` field, and named imports bind each specifier by its exported
// name.
func (l *Lowerer) lowerImport(b *blockBuilder, d tslast.ImportDeclData) {
	requireCall := luaast.Call(identExpr(luaast.Ident{Name: "require"}), luaast.String(d.ModulePath))

	if d.SideEffectOnly && d.DefaultLocal == "" && d.NamespaceName == "" && len(d.Named) == 0 {
		b.append(luaast.Stmt{Kind: luaast.StmtExprStmt, Data: luaast.ExprStmtData{Call: requireCall}})
		return
	}

	mod := l.tempIdent("import")
	b.append(luaast.Local([]luaast.Ident{mod}, requireCall))

	if d.NamespaceName != "" {
		ns := luaast.Ident{Name: d.NamespaceName}
		b.append(luaast.Local([]luaast.Ident{ns}, identExpr(mod)))
	}
	if d.DefaultLocal != "" {
		id := luaast.Ident{Name: d.DefaultLocal}
		b.append(luaast.Local([]luaast.Ident{id}, luaast.Dot(identExpr(mod), "default")))
	}
	for _, spec := range d.Named {
		id := l.ident(spec.Symbol, spec.LocalName, nil)
		l.scopes.RecordDeclaration(spec.Symbol)
		b.append(luaast.Local([]luaast.Ident{id}, luaast.Dot(identExpr(mod), spec.ImportedName)))
	}
}
