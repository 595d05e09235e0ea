package tslcheck

import (
	"surge/internal/tslast"
	"surge/internal/types"
)

// typeOf returns the previously inferred type for expr, or NoType if expr
// is nil or was never walked.
func (c *checker) typeOf(expr *tslast.Expr) types.TypeID {
	if expr == nil {
		return types.NoType
	}
	if t, ok := c.exprTy[expr]; ok {
		return t
	}
	return types.NoType
}

func (c *checker) prim(k types.Kind) types.TypeID {
	return c.types.Intern(types.Type{Kind: k})
}

// walkExpr resolves identifier references and infers a structural type for
// expr, recording both as a side effect. Returns the inferred TypeID for
// convenience at call sites that need it immediately.
func (c *checker) walkExpr(expr *tslast.Expr) types.TypeID {
	if expr == nil {
		return types.NoType
	}
	var t types.TypeID
	switch d := expr.Data.(type) {
	case tslast.IdentData:
		if id, ok := c.resolve(d.Name, expr.Span); ok {
			d.Symbol = id
			expr.Data = d
			t = c.typeOfSymbol(id)
		} else {
			t = types.NoType
		}
	case tslast.NumberData:
		t = c.prim(types.KindNumber)
	case tslast.StringData:
		t = c.prim(types.KindString)
	case tslast.BoolData:
		t = c.prim(types.KindBoolean)
	case tslast.ThisData, tslast.SuperData:
		t = types.NoType
	case tslast.TemplateData:
		for _, e := range d.Exprs {
			c.walkExpr(e)
		}
		t = c.prim(types.KindString)
	case tslast.ArrayLitData:
		t = c.inferArrayLit(d)
	case tslast.ObjectLitData:
		t = c.inferObjectLit(d)
	case tslast.GroupData:
		t = c.walkExpr(d.Inner)
	case tslast.SequenceData:
		for _, e := range d.Exprs {
			t = c.walkExpr(e)
		}
	case tslast.AssignData:
		rt := c.walkExpr(d.Value)
		c.walkExpr(d.Target)
		t = rt
		if id, ok := d.Target.Data.(tslast.IdentData); ok && id.Symbol.IsValid() {
			c.setType(id.Symbol, rt)
		}
	case tslast.BinaryData:
		t = c.inferBinary(d)
		if d.Op == tslast.OpAdd && c.types.IsString(t) {
			d.Op = tslast.OpConcat
			expr.Data = d
		}
	case tslast.TernaryData:
		c.walkExpr(d.Cond)
		thenTy := c.walkExpr(d.Then)
		elseTy := c.walkExpr(d.Else)
		if thenTy == elseTy {
			t = thenTy
		} else {
			t = types.NoType
		}
	case tslast.UnaryData:
		t = c.inferUnary(d)
	case tslast.TypeOfData:
		c.walkExpr(d.Operand)
		t = c.prim(types.KindString)
	case tslast.DeleteData:
		c.walkExpr(d.Operand)
		t = c.prim(types.KindBoolean)
	case tslast.AwaitData:
		t = c.walkExpr(d.Operand)
	case tslast.UpdateData:
		t = c.walkExpr(d.Operand)
	case tslast.InstanceOfData:
		c.walkExpr(d.Left)
		c.walkExpr(d.Right)
		t = c.prim(types.KindBoolean)
	case tslast.MemberData:
		objTy := c.walkExpr(d.Object)
		t = c.memberTypeOf(objTy, d.Property)
	case tslast.IndexData:
		objTy := c.walkExpr(d.Object)
		c.walkExpr(d.Index)
		t = c.elementTypeOf(objTy)
	case tslast.CallData:
		calleeTy := c.walkExpr(d.Callee)
		for _, a := range d.Args {
			c.walkExpr(a)
		}
		t = c.firstReturnOf(calleeTy)
	case tslast.NewData:
		c.walkExpr(d.Callee)
		for _, a := range d.Args {
			c.walkExpr(a)
		}
		if id, ok := d.Callee.Data.(tslast.IdentData); ok {
			t = c.typeOfSymbol(id.Symbol)
		}
	case tslast.FunctionData:
		c.walkFunction(expr)
		return c.typeOf(expr)
	case tslast.ClassExprData:
		c.walkClass(d.Decl)
		if d.Decl != nil {
			t = c.typeOfSymbol(d.Decl.Symbol)
		}
	case tslast.YieldData:
		if d.Operand != nil {
			c.walkExpr(d.Operand)
		}
		t = types.NoType
	case tslast.TaggedTemplateData:
		c.walkExpr(d.Tag)
		if d.Template != nil {
			c.walkExpr(d.Template)
		}
		t = types.NoType
	default:
		t = types.NoType
	}
	c.exprTy[expr] = t
	return t
}

func (c *checker) inferArrayLit(d tslast.ArrayLitData) types.TypeID {
	var elem types.TypeID
	first := true
	mixed := false
	for _, e := range d.Elements {
		if e == nil {
			continue
		}
		et := c.walkExpr(e)
		if first {
			elem = et
			first = false
		} else if et != elem {
			mixed = true
		}
	}
	if mixed {
		elem = types.NoType
	}
	return c.types.Intern(types.Type{Kind: types.KindArray, Elem: elem})
}

func (c *checker) inferObjectLit(d tslast.ObjectLitData) types.TypeID {
	members := make(map[string]types.TypeID, len(d.Props))
	for _, p := range d.Props {
		if p.Spread {
			c.walkExpr(p.Value)
			continue
		}
		if p.Computed != nil {
			c.walkExpr(p.Computed)
		}
		if p.Value != nil {
			members[p.Key] = c.walkExpr(p.Value)
		}
	}
	return c.types.Intern(types.Type{Kind: types.KindObject, Members: members})
}

// inferBinary implements spec.md §4.5's `+` string-concatenation rule: the
// result is string-typed if either operand is, else the operator is
// numeric/bitwise and the result is number-typed. Comparisons and equality
// always yield boolean.
func (c *checker) inferBinary(d tslast.BinaryData) types.TypeID {
	lt := c.walkExpr(d.Left)
	rt := c.walkExpr(d.Right)
	switch d.Op {
	case tslast.OpAdd:
		if c.types.IsString(lt) || c.types.IsString(rt) {
			return c.prim(types.KindString)
		}
		return c.prim(types.KindNumber)
	case tslast.OpSub, tslast.OpMul, tslast.OpDiv, tslast.OpMod, tslast.OpPow,
		tslast.OpBitAnd, tslast.OpBitOr, tslast.OpBitXor, tslast.OpShl, tslast.OpShr, tslast.OpUShr:
		return c.prim(types.KindNumber)
	case tslast.OpEq, tslast.OpNotEq, tslast.OpStrictEq, tslast.OpStrictNotEq,
		tslast.OpLt, tslast.OpGt, tslast.OpLtEq, tslast.OpGtEq:
		return c.prim(types.KindBoolean)
	case tslast.OpAnd:
		return rt
	case tslast.OpOr, tslast.OpNullish:
		if lt == rt {
			return lt
		}
		return types.NoType
	}
	return types.NoType
}

func (c *checker) inferUnary(d tslast.UnaryData) types.TypeID {
	ot := c.walkExpr(d.Operand)
	switch d.Op {
	case tslast.OpNot:
		return c.prim(types.KindBoolean)
	case tslast.OpNeg, tslast.OpPos, tslast.OpBitNot:
		return c.prim(types.KindNumber)
	}
	return ot
}

func (c *checker) firstReturnOf(t types.TypeID) types.TypeID {
	ty := c.types.Get(t)
	if ty.Kind != types.KindFunction || len(ty.Returns) == 0 {
		return types.NoType
	}
	return ty.Returns[0]
}
