package tslcheck

import (
	"surge/internal/diag"
	"surge/internal/scope"
	"surge/internal/source"
	"surge/internal/tslast"
	"surge/internal/types"
)

// declareHoisted pre-binds every name a later statement in this block could
// reference before its own textual declaration: function/class/enum/
// namespace declarations and import bindings. var/let/const stay bound at
// their own statement (TDZ is not modeled; spec.md's lowering never depends
// on it).
func (c *checker) declareHoisted(stmts []*tslast.Stmt) {
	for _, s := range stmts {
		switch d := s.Data.(type) {
		case tslast.FunctionDeclData:
			c.declare(d.Name, s.Span)
		case tslast.ClassDeclData:
			if d.Decl != nil {
				c.declare(d.Decl.Name, s.Span)
			}
		case tslast.EnumDeclData:
			c.declare(d.Name, s.Span)
		case tslast.NamespaceDeclData:
			if _, seen := c.env[len(c.env)-1][d.Name]; seen {
				d.Merged = true
				s.Data = d
				continue
			}
			c.declare(d.Name, s.Span)
		case tslast.ImportDeclData:
			if d.DefaultLocal != "" {
				c.declare(d.DefaultLocal, s.Span)
			}
			if d.NamespaceName != "" {
				c.declare(d.NamespaceName, s.Span)
			}
			for _, spec := range d.Named {
				c.declare(spec.LocalName, s.Span)
			}
		case tslast.ExportDeclData:
			if d.Inner != nil {
				c.declareHoisted([]*tslast.Stmt{d.Inner})
			}
		}
	}
}

// collectExports resolves every top-level `export`-wrapped name into
// c.exports; run after the full file body has been walked so var
// declarators (bound lazily at their own statement) are already resolvable.
func (c *checker) collectExports(stmts []*tslast.Stmt) {
	for _, s := range stmts {
		d, ok := s.Data.(tslast.ExportDeclData)
		if !ok || d.Inner == nil {
			continue
		}
		name := exportedName(d.Inner)
		if name == "" {
			continue
		}
		if id, ok := c.resolve(name, s.Span); ok {
			c.exports[name] = id
		}
	}
}

func exportedName(s *tslast.Stmt) string {
	switch d := s.Data.(type) {
	case tslast.FunctionDeclData:
		return d.Name
	case tslast.ClassDeclData:
		if d.Decl != nil {
			return d.Decl.Name
		}
	case tslast.EnumDeclData:
		return d.Name
	case tslast.NamespaceDeclData:
		return d.Name
	case tslast.VarDeclData:
		if len(d.Declarators) == 1 {
			return d.Declarators[0].Name
		}
	}
	return ""
}

func (c *checker) walkStmt(s *tslast.Stmt) {
	if s == nil {
		return
	}
	switch d := s.Data.(type) {
	case tslast.ExprStmtData:
		c.walkExpr(d.Expr)
	case tslast.VarDeclData:
		for i := range d.Declarators {
			c.bindDeclarator(&d.Declarators[i], s.Span)
		}
	case tslast.BlockStmtData:
		c.walkBlock(d.Block)
	case tslast.IfData:
		c.walkExpr(d.Cond)
		c.walkStmtScoped(d.Then)
		if d.Else != nil {
			c.walkStmtScoped(d.Else)
		}
	case tslast.WhileData:
		c.walkExpr(d.Cond)
		c.pushScope(scope.Loop)
		c.walkStmt(d.Body)
		c.popScope()
	case tslast.DoWhileData:
		c.pushScope(scope.Loop)
		c.walkStmt(d.Body)
		c.popScope()
		c.walkExpr(d.Cond)
	case tslast.ForData:
		c.pushScope(scope.Loop)
		if d.Init != nil {
			c.walkStmt(d.Init)
		}
		if d.Cond != nil {
			c.walkExpr(d.Cond)
		}
		if d.Post != nil {
			c.walkExpr(d.Post)
		}
		c.walkStmt(d.Body)
		c.popScope()
	case tslast.ForOfData:
		c.walkExpr(d.Iterable)
		c.pushScope(scope.Loop)
		elemTy := c.elementTypeOf(c.typeOf(d.Iterable))
		if d.Pattern != nil {
			c.bindPattern(d.Pattern, s.Span, elemTy)
		} else if d.Name != "" {
			id := c.declare(d.Name, s.Span)
			c.setType(id, elemTy)
		}
		c.walkStmt(d.Body)
		c.popScope()
	case tslast.ForInData:
		c.walkExpr(d.Object)
		c.pushScope(scope.Loop)
		if d.Name != "" {
			id := c.declare(d.Name, s.Span)
			c.setType(id, c.types.Intern(types.Type{Kind: types.KindString}))
		}
		c.walkStmt(d.Body)
		c.popScope()
	case tslast.SwitchData:
		c.walkExpr(d.Disc)
		c.pushScope(scope.Switch)
		for _, cs := range d.Cases {
			if cs.Test != nil {
				c.walkExpr(cs.Test)
			}
			for _, st := range cs.Body {
				c.walkStmt(st)
			}
		}
		c.popScope()
	case tslast.TryData:
		c.walkBlock(d.Try)
		if d.Catch != nil {
			c.pushScope(scope.Catch)
			if d.Catch.Param != "" {
				d.Catch.Symbol = c.declare(d.Catch.Param, s.Span)
			}
			c.walkBlock(d.Catch.Body)
			c.popScope()
		}
		if d.Finally != nil {
			c.walkBlock(d.Finally)
		}
	case tslast.ThrowData:
		c.walkExpr(d.Value)
		if d.Value != nil && !c.types.IsString(c.typeOf(d.Value)) {
			c.report(diag.InvalidThrowExpression, s.Span, "throw expects a string-typed value")
		}
	case tslast.ReturnData:
		for _, v := range d.Values {
			c.walkExpr(v)
		}
	case tslast.FunctionDeclData:
		c.walkFunction(d.Fn)
	case tslast.ClassDeclData:
		c.walkClass(d.Decl)
	case tslast.EnumDeclData:
		c.bindEnum(d, s.Span)
	case tslast.NamespaceDeclData:
		c.pushScope(scope.Block)
		c.declareHoisted(d.Body)
		for _, st := range d.Body {
			c.walkStmt(st)
		}
		c.popScope()
	case tslast.ImportDeclData:
		// bindings already declared by declareHoisted; they stay untyped,
		// since the checker does not read Options.Imports.
	case tslast.ExportDeclData:
		if d.Inner != nil {
			c.walkStmt(d.Inner)
		}
	case tslast.EmptyData, tslast.BreakData, tslast.ContinueData:
		// no-op
	}
}

// walkStmtScoped wraps a conditional branch's body in its own scope when it
// isn't already a block, so `if (x) let y = 1;`-shaped single statements
// don't leak a binding into the enclosing scope.
func (c *checker) walkStmtScoped(s *tslast.Stmt) {
	if s == nil {
		return
	}
	if _, isBlock := s.Data.(tslast.BlockStmtData); isBlock {
		c.walkStmt(s)
		return
	}
	c.pushScope(scope.Conditional)
	c.walkStmt(s)
	c.popScope()
}

func (c *checker) walkBlock(b *tslast.Block) {
	if b == nil {
		return
	}
	c.pushScope(scope.Block)
	c.declareHoisted(b.Stmts)
	for _, s := range b.Stmts {
		c.walkStmt(s)
	}
	c.popScope()
}

func (c *checker) bindDeclarator(d *tslast.VarDeclarator, pos source.Span) {
	var initTy types.TypeID
	if d.Init != nil {
		c.walkExpr(d.Init)
		initTy = c.typeOf(d.Init)
	}
	if d.Pattern != nil {
		c.bindPattern(d.Pattern, pos, initTy)
		return
	}
	id := c.declare(d.Name, pos)
	d.Symbol = id
	c.setType(id, initTy)
}

// bindPattern declares every binding name inside a (possibly nested)
// destructuring pattern, propagating a best-effort element/member type down
// from hint (spec.md §4.5 destructuring lowering consults these types to
// decide 1-based array indexing vs. table field access).
func (c *checker) bindPattern(pat *tslast.Pattern, pos source.Span, hint types.TypeID) {
	if pat == nil {
		return
	}
	switch pat.Kind {
	case tslast.PatternIdent:
		id := c.declare(pat.Name, pos)
		pat.Symbol = id
		c.setType(id, hint)
		if pat.Default != nil {
			c.walkExpr(pat.Default)
		}
	case tslast.PatternArray:
		elemHint := c.elementTypeOf(hint)
		for _, el := range pat.Elements {
			if el != nil {
				c.bindPattern(el, pos, elemHint)
			}
		}
		if pat.Rest != nil {
			c.bindPattern(pat.Rest, pos, hint)
		}
	case tslast.PatternObject:
		for _, prop := range pat.Props {
			memberHint := c.memberTypeOf(hint, prop.Key)
			if prop.Computed != nil {
				c.walkExpr(prop.Computed)
			}
			c.bindPattern(prop.Value, pos, memberHint)
		}
		if pat.Rest != nil {
			c.bindPattern(pat.Rest, pos, types.NoType)
		}
	}
}

func (c *checker) walkFunction(fn *tslast.Expr) {
	if fn == nil {
		return
	}
	data, ok := fn.Data.(tslast.FunctionData)
	if !ok {
		return
	}
	c.pushScope(scope.Function)
	var paramTypes []types.TypeID
	for i := range data.Params {
		p := &data.Params[i]
		if p.Pattern != nil {
			c.bindPattern(p.Pattern, fn.Span, types.NoType)
		} else if p.Name != "" {
			id := c.declare(p.Name, fn.Span)
			p.Symbol = id
			if p.Default != nil {
				c.walkExpr(p.Default)
			}
		}
		paramTypes = append(paramTypes, types.NoType)
	}
	if data.Body != nil {
		c.declareHoisted(data.Body.Stmts)
		for _, s := range data.Body.Stmts {
			c.walkStmt(s)
		}
	}
	if data.ExprBody != nil {
		c.walkExpr(data.ExprBody)
	}
	c.popScope()
	fn.Data = data

	sig := types.Type{Kind: types.KindFunction, Params: paramTypes, Returns: c.inferReturns(data)}
	c.exprTy[fn] = c.types.Intern(sig)
}

func (c *checker) inferReturns(data tslast.FunctionData) []types.TypeID {
	if data.ExprBody != nil {
		return []types.TypeID{c.typeOf(data.ExprBody)}
	}
	var returns []types.TypeID
	if data.Body != nil {
		collectReturnTypes(data.Body.Stmts, c, &returns)
	}
	if len(returns) == 0 {
		return []types.TypeID{c.types.Intern(types.Type{Kind: types.KindVoid})}
	}
	return returns
}

func collectReturnTypes(stmts []*tslast.Stmt, c *checker, out *[]types.TypeID) {
	for _, s := range stmts {
		switch d := s.Data.(type) {
		case tslast.ReturnData:
			for _, v := range d.Values {
				*out = append(*out, c.typeOf(v))
			}
		case tslast.BlockStmtData:
			if d.Block != nil {
				collectReturnTypes(d.Block.Stmts, c, out)
			}
		case tslast.IfData:
			if d.Then != nil {
				collectReturnTypes([]*tslast.Stmt{d.Then}, c, out)
			}
			if d.Else != nil {
				collectReturnTypes([]*tslast.Stmt{d.Else}, c, out)
			}
		case tslast.WhileData:
			collectReturnTypes([]*tslast.Stmt{d.Body}, c, out)
		case tslast.ForData:
			collectReturnTypes([]*tslast.Stmt{d.Body}, c, out)
		case tslast.ForOfData:
			collectReturnTypes([]*tslast.Stmt{d.Body}, c, out)
		case tslast.ForInData:
			collectReturnTypes([]*tslast.Stmt{d.Body}, c, out)
		case tslast.TryData:
			if d.Try != nil {
				collectReturnTypes(d.Try.Stmts, c, out)
			}
			if d.Catch != nil && d.Catch.Body != nil {
				collectReturnTypes(d.Catch.Body.Stmts, c, out)
			}
		}
	}
}

func (c *checker) walkClass(decl *tslast.ClassDecl) {
	if decl == nil {
		return
	}
	if decl.Extends != nil {
		c.walkExpr(decl.Extends)
	}
	members := make(map[string]types.TypeID, len(decl.Members))
	c.pushScope(scope.Function) // class body shares constructor-like scoping for `this`
	for i := range decl.Members {
		m := &decl.Members[i]
		for _, dec := range m.Decorators {
			c.walkExpr(dec)
		}
		switch m.Kind {
		case tslast.MemberField:
			if m.FieldInit != nil {
				c.walkExpr(m.FieldInit)
				members[m.Name] = c.typeOf(m.FieldInit)
			} else {
				members[m.Name] = types.NoType
			}
		default:
			if m.Fn != nil {
				c.walkFunction(m.Fn)
				members[m.Name] = c.typeOf(m.Fn)
			}
		}
	}
	c.popScope()
	if decl.Name != "" {
		if id, ok := c.resolve(decl.Name, decl.Span); ok {
			decl.Symbol = id
			c.setType(id, c.types.Intern(types.Type{Kind: types.KindClass, Name: decl.Name, Members: members}))
		}
	}
}

func (c *checker) bindEnum(d tslast.EnumDeclData, pos source.Span) {
	numeric := make(map[string]float64, len(d.Members))
	strs := make(map[string]string, len(d.Members))
	names := make([]string, 0, len(d.Members))
	next := 0.0
	allNumeric := true
	for _, m := range d.Members {
		names = append(names, m.Name)
		if m.IsString {
			strs[m.Name] = m.StringValue
			allNumeric = false
			continue
		}
		if m.HasInit {
			next = m.NumberValue
		}
		numeric[m.Name] = next
		next++
	}
	id, ok := c.resolve(d.Name, pos)
	if !ok {
		id = c.declare(d.Name, pos)
	}
	c.setType(id, c.types.Intern(types.Type{
		Kind:        types.KindEnum,
		Name:        d.Name,
		EnumMembers: names,
		EnumNumeric: numeric,
		EnumString:  strs,
		EnumIsConst: d.Const && allNumeric,
	}))
}

func (c *checker) elementTypeOf(t types.TypeID) types.TypeID {
	ty := c.types.Get(t)
	if ty.Kind == types.KindArray {
		return ty.Elem
	}
	return types.NoType
}

func (c *checker) memberTypeOf(t types.TypeID, name string) types.TypeID {
	ty := c.types.Get(t)
	if ty.Members == nil {
		return types.NoType
	}
	if m, ok := ty.Members[name]; ok {
		return m
	}
	return types.NoType
}
