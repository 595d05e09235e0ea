// ExpressionLowerer: spec.md §4.5. Maps one checked tslast.Expr to one
// luaast.Expr, consulting the TypeOracle wherever the target shape depends
// on a type (array vs. map indexing, const-enum folding, string
// concatenation) rather than on syntax alone.
package lower

import (
	"strconv"

	"surge/internal/diag"
	"surge/internal/luaast"
	"surge/internal/lualib"
	"surge/internal/tslast"
	"surge/internal/types"
)

func (l *Lowerer) lowerExpr(e *tslast.Expr) luaast.Expr {
	if e == nil {
		return luaast.Nil()
	}
	switch e.Kind {
	case tslast.ExprIdent:
		return l.lowerIdent(e.Data.(tslast.IdentData))
	case tslast.ExprNumberLit:
		d := e.Data.(tslast.NumberData)
		return luaast.Number(strconv.FormatFloat(d.Value, 'g', -1, 64))
	case tslast.ExprStringLit:
		return luaast.String(e.Data.(tslast.StringData).Value)
	case tslast.ExprBoolLit:
		if e.Data.(tslast.BoolData).Value {
			return luaast.True()
		}
		return luaast.False()
	case tslast.ExprNullLit, tslast.ExprUndefinedLit:
		return luaast.Nil()
	case tslast.ExprTemplateLit:
		return l.lowerTemplate(e.Data.(tslast.TemplateData))
	case tslast.ExprTaggedTemplate:
		return l.lowerTaggedTemplate(e.Data.(tslast.TaggedTemplateData))
	case tslast.ExprArrayLit:
		return l.lowerArrayLit(e.Data.(tslast.ArrayLitData))
	case tslast.ExprObjectLit:
		return l.lowerObjectLit(e.Data.(tslast.ObjectLitData))
	case tslast.ExprFunction:
		return l.lowerFunctionExpr(e.Data.(tslast.FunctionData), false)
	case tslast.ExprClassExpr:
		return l.lowerClassExpr(e.Data.(tslast.ClassExprData).Decl)
	case tslast.ExprCall:
		return l.lowerCall(e, e.Data.(tslast.CallData))
	case tslast.ExprNew:
		return l.lowerNew(e.Data.(tslast.NewData))
	case tslast.ExprMember:
		return l.lowerMember(e, e.Data.(tslast.MemberData))
	case tslast.ExprIndexAccess:
		return l.lowerIndexAccess(e.Data.(tslast.IndexData))
	case tslast.ExprTernary:
		return l.lowerTernary(e.Data.(tslast.TernaryData))
	case tslast.ExprBinary, tslast.ExprLogical:
		if e.Data.(tslast.BinaryData).Op == tslast.OpShr {
			l.report(diag.UnsupportedForTarget, e.Span, "signed right shift '>>' is not supported; use '>>>'")
		}
		return l.lowerBinary(e.Data.(tslast.BinaryData))
	case tslast.ExprUnary:
		return l.lowerUnary(e.Data.(tslast.UnaryData))
	case tslast.ExprUpdate:
		return l.lowerUpdate(e.Data.(tslast.UpdateData))
	case tslast.ExprAssign:
		return l.lowerAssignExpr(e.Data.(tslast.AssignData))
	case tslast.ExprSpread:
		return l.lowerExpr(e.Data.(tslast.SpreadData).Operand)
	case tslast.ExprYield:
		d := e.Data.(tslast.YieldData)
		if d.Delegate {
			return luaast.Call(identExpr(luaast.Ident{Name: "coroutine.yield"}), l.lowerExpr(d.Operand))
		}
		return luaast.Call(identExpr(luaast.Ident{Name: "coroutine.yield"}), l.lowerExpr(d.Operand))
	case tslast.ExprAwait:
		return l.lowerExpr(e.Data.(tslast.AwaitData).Operand)
	case tslast.ExprTypeOf:
		return luaast.Call(identExpr(luaast.Ident{Name: "type"}), l.lowerExpr(e.Data.(tslast.TypeOfData).Operand))
	case tslast.ExprInstanceOf:
		return l.lowerInstanceOf(e.Data.(tslast.InstanceOfData))
	case tslast.ExprDelete:
		return l.lowerDelete(e.Data.(tslast.DeleteData))
	case tslast.ExprGroup:
		return luaast.Paren(l.lowerExpr(e.Data.(tslast.GroupData).Inner))
	case tslast.ExprThis:
		return identExpr(luaast.Ident{Name: "self"})
	case tslast.ExprSuper:
		if len(l.classStack) > 0 {
			return luaast.Dot(identExpr(l.classStack[len(l.classStack)-1]), "____super")
		}
		return identExpr(luaast.Ident{Name: "____super"})
	case tslast.ExprSequence:
		return l.lowerSequence(e.Data.(tslast.SequenceData))
	default:
		return luaast.Nil()
	}
}

func (l *Lowerer) lowerExprList(es []*tslast.Expr) []luaast.Expr {
	out := make([]luaast.Expr, len(es))
	for i, e := range es {
		out[i] = l.lowerExpr(e)
	}
	return out
}

// lowerIdent resolves spec.md §4.5's special-cased globals alongside
// ordinary symbol references.
func (l *Lowerer) lowerIdent(d tslast.IdentData) luaast.Expr {
	switch d.Name {
	case "undefined":
		return luaast.Nil()
	case "NaN":
		return luaast.Binary(luaast.OpDiv, luaast.Number("0"), luaast.Number("0"))
	case "Infinity":
		return luaast.Binary(luaast.OpDiv, luaast.Number("1"), luaast.Number("0"))
	case "globalThis":
		return identExpr(luaast.Ident{Name: "_G"})
	}
	return identExpr(l.ident(d.Symbol, d.Name, nil))
}

// lowerMember lowers `obj.prop`, folding array/string `.length` to `#obj`,
// Math constants to their Lua equivalents, and const-enum member access to
// its literal value (spec.md §4.5 Property access).
func (l *Lowerer) lowerMember(e *tslast.Expr, d tslast.MemberData) luaast.Expr {
	if d.Property == "length" {
		t := l.oracleTypeOf(d.Object)
		if t.Kind == types.KindArray || t.Kind == types.KindString {
			return luaast.Unary(luaast.OpLen, l.lowerExpr(d.Object))
		}
	}
	if ident, ok := d.Object.Data.(tslast.IdentData); ok && ident.Name == "Math" {
		if lua, ok := mathMember[d.Property]; ok {
			return identExpr(luaast.Ident{Name: lua})
		}
	}
	objType := l.oracleTypeOf(d.Object)
	if objType.Kind == types.KindEnum && objType.EnumIsConst {
		if o := l.oracle; o != nil {
			if v, ok := o.ConstantValueOf(l.exprTypeID(d.Object), d.Property); ok {
				return constLiteral(v)
			}
		}
	}
	return luaast.Dot(l.lowerExpr(d.Object), d.Property)
}

var mathMember = map[string]string{
	"PI":      "math.pi",
	"floor":   "math.floor",
	"ceil":    "math.ceil",
	"abs":     "math.abs",
	"max":     "math.max",
	"min":     "math.min",
	"random":  "math.random",
	"sqrt":    "math.sqrt",
}

func constLiteral(v any) luaast.Expr {
	switch t := v.(type) {
	case float64:
		return luaast.Number(strconv.FormatFloat(t, 'g', -1, 64))
	case string:
		return luaast.String(t)
	default:
		return luaast.Nil()
	}
}

func (l *Lowerer) oracleTypeOf(e *tslast.Expr) types.Type {
	if l.oracle == nil {
		return types.Type{}
	}
	return l.oracle.Interner().Get(l.oracle.TypeOf(e))
}

func (l *Lowerer) exprTypeID(e *tslast.Expr) types.TypeID {
	if l.oracle == nil {
		return types.NoType
	}
	return l.oracle.TypeOf(e)
}

// lowerIndexAccess lowers `obj[index]`, converting a statically-array index
// to Lua's 1-based convention by adding one (spec.md §8 "1-based arrays").
// A constant-folded `n - 1 + 1` is collapsed back to `n` so round-tripped
// loop indices stay readable.
func (l *Lowerer) lowerIndexAccess(d tslast.IndexData) luaast.Expr {
	obj := l.lowerExpr(d.Object)
	t := l.oracleTypeOf(d.Object)
	if t.Kind != types.KindArray && t.Kind != types.KindTuple {
		return luaast.Index(obj, l.lowerExpr(d.Index))
	}
	idx := l.lowerExpr(d.Index)
	return luaast.Index(obj, plusOne(idx))
}

// plusOne builds `idx + 1`, collapsing the common `(n - 1) + 1` shape
// produced by re-indexing an already-1-based loop variable.
func plusOne(idx luaast.Expr) luaast.Expr {
	if idx.Kind == luaast.ExprBinary {
		b := idx.Data.(luaast.BinaryData)
		if b.Op == luaast.OpSub {
			if n, ok := b.Right.Data.(luaast.NumberData); ok && n.Text == "1" {
				return b.Left
			}
		}
	}
	return luaast.Binary(luaast.OpAdd, idx, luaast.Number("1"))
}

func (l *Lowerer) lowerTernary(d tslast.TernaryData) luaast.Expr {
	condT := l.oracleTypeOf(d.Then)
	strictNulls := l.host == nil || l.host.StrictNullChecks
	safe := l.oracle == nil || !l.oracle.Interner().MaybeFalsy(l.exprTypeID(d.Then), strictNulls)
	cond := l.lowerExpr(d.Cond)
	then := l.lowerExpr(d.Then)
	els := l.lowerExpr(d.Else)
	if safe && condT.Kind != types.KindInvalid {
		return luaast.Binary(luaast.OpOr, luaast.Binary(luaast.OpAnd, cond, then), els)
	}
	return l.ternaryIIFE(cond, then, els)
}

func (l *Lowerer) ternaryIIFE(cond, then, els luaast.Expr) luaast.Expr {
	body := luaast.Block{Stmts: []luaast.Stmt{
		{Kind: luaast.StmtIf, Data: luaast.IfData{
			Clauses: []luaast.IfClause{{Cond: cond, Body: luaast.Block{Stmts: []luaast.Stmt{luaast.Return(then)}}}},
			Else:    &luaast.Block{Stmts: []luaast.Stmt{luaast.Return(els)}},
		}},
	}}
	fn := luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Body: body}}
	return luaast.Call(luaast.Paren(fn))
}

func (l *Lowerer) lowerBinary(d tslast.BinaryData) luaast.Expr {
	left := l.lowerExpr(d.Left)
	right := l.lowerExpr(d.Right)
	switch d.Op {
	case tslast.OpAdd:
		return luaast.Binary(luaast.OpAdd, left, right)
	case tslast.OpConcat:
		return luaast.Binary(luaast.OpConcat, l.toStringExpr(d.Left, left), l.toStringExpr(d.Right, right))
	case tslast.OpSub:
		return luaast.Binary(luaast.OpSub, left, right)
	case tslast.OpMul:
		return luaast.Binary(luaast.OpMul, left, right)
	case tslast.OpDiv:
		return luaast.Binary(luaast.OpDiv, left, right)
	case tslast.OpMod:
		return luaast.Binary(luaast.OpMod, left, right)
	case tslast.OpPow:
		return luaast.Binary(luaast.OpPow, left, right)
	case tslast.OpEq, tslast.OpStrictEq:
		return luaast.Binary(luaast.OpEq, left, right)
	case tslast.OpNotEq, tslast.OpStrictNotEq:
		return luaast.Binary(luaast.OpNotEq, left, right)
	case tslast.OpLt:
		return luaast.Binary(luaast.OpLt, left, right)
	case tslast.OpGt:
		return luaast.Binary(luaast.OpGt, left, right)
	case tslast.OpLtEq:
		return luaast.Binary(luaast.OpLtEq, left, right)
	case tslast.OpGtEq:
		return luaast.Binary(luaast.OpGtEq, left, right)
	case tslast.OpAnd:
		return luaast.Binary(luaast.OpAnd, left, right)
	case tslast.OpOr:
		return luaast.Binary(luaast.OpOr, left, right)
	case tslast.OpNullish:
		return l.nullishIIFE(left, right)
	case tslast.OpBitAnd, tslast.OpBitOr, tslast.OpBitXor, tslast.OpShl, tslast.OpShr, tslast.OpUShr:
		return l.lowerBitwise(d.Op, left, right)
	default:
		return luaast.Binary(luaast.OpEq, left, right)
	}
}

// toStringExpr wraps an operand of a concatenation with tostring unless the
// checker already established it is a string.
func (l *Lowerer) toStringExpr(src *tslast.Expr, lowered luaast.Expr) luaast.Expr {
	if l.oracleTypeOf(src).Kind == types.KindString {
		return lowered
	}
	if lowered.Kind == luaast.ExprString {
		return lowered
	}
	return luaast.Call(identExpr(luaast.Ident{Name: "tostring"}), lowered)
}

func (l *Lowerer) nullishIIFE(left, right luaast.Expr) luaast.Expr {
	v := l.tempIdent("nullish")
	body := luaast.Block{Stmts: []luaast.Stmt{
		luaast.Local([]luaast.Ident{v}, left),
		{Kind: luaast.StmtIf, Data: luaast.IfData{
			Clauses: []luaast.IfClause{{Cond: luaast.Binary(luaast.OpEq, identExpr(v), luaast.Nil()), Body: luaast.Block{Stmts: []luaast.Stmt{luaast.Return(right)}}}},
			Else:    &luaast.Block{Stmts: []luaast.Stmt{luaast.Return(identExpr(v))}},
		}},
	}}
	fn := luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Body: body}}
	return luaast.Call(luaast.Paren(fn))
}

// lowerBitwise routes to native Lua 5.3+ bitwise operators when the target
// supports them, or to a bit32-shaped call otherwise (spec.md §4.5 Bitwise
// operators, host.LuaTarget.SupportsNativeBitwise).
func (l *Lowerer) lowerBitwise(op tslast.BinaryOp, left, right luaast.Expr) luaast.Expr {
	if l.host != nil && l.host.Target().SupportsNativeBitwise() {
		switch op {
		case tslast.OpBitAnd:
			return luaast.Binary(luaast.OpBAnd, left, right)
		case tslast.OpBitOr:
			return luaast.Binary(luaast.OpBOr, left, right)
		case tslast.OpBitXor:
			return luaast.Binary(luaast.OpBXor, left, right)
		case tslast.OpShl:
			return luaast.Binary(luaast.OpShl, left, right)
		default:
			return luaast.Binary(luaast.OpShr, left, right)
		}
	}
	name := map[tslast.BinaryOp]string{
		tslast.OpBitAnd: "bit32.band",
		tslast.OpBitOr:  "bit32.bor",
		tslast.OpBitXor: "bit32.bxor",
		tslast.OpShl:    "bit32.lshift",
		tslast.OpShr:    "bit32.arshift",
		tslast.OpUShr:   "bit32.rshift",
	}[op]
	return luaast.Call(identExpr(luaast.Ident{Name: name}), left, right)
}

func (l *Lowerer) lowerUnary(d tslast.UnaryData) luaast.Expr {
	v := l.lowerExpr(d.Operand)
	switch d.Op {
	case tslast.OpNeg:
		return luaast.Unary(luaast.OpNeg, v)
	case tslast.OpPos:
		return v
	case tslast.OpNot:
		return luaast.Unary(luaast.OpNot, v)
	case tslast.OpBitNot:
		if l.host != nil && l.host.Target().SupportsNativeBitwise() {
			return luaast.Unary(luaast.OpBNot, v)
		}
		return luaast.Call(identExpr(luaast.Ident{Name: "bit32.bnot"}), v)
	default:
		return v
	}
}

// lowerUpdate lowers prefix/postfix ++/-- as an IIFE that snapshots the
// pre-update value for postfix forms (spec.md §4.5 Compound assignment).
func (l *Lowerer) lowerUpdate(d tslast.UpdateData) luaast.Expr {
	target := l.lowerExpr(d.Operand)
	op := luaast.OpAdd
	if !d.Inc {
		op = luaast.OpSub
	}
	newVal := luaast.Binary(op, target, luaast.Number("1"))
	if d.Prefix {
		body := luaast.Block{Stmts: []luaast.Stmt{
			luaast.Assign([]luaast.Expr{target}, newVal),
			luaast.Return(target),
		}}
		fn := luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Body: body}}
		return luaast.Call(luaast.Paren(fn))
	}
	old := l.tempIdent("old")
	body := luaast.Block{Stmts: []luaast.Stmt{
		luaast.Local([]luaast.Ident{old}, target),
		luaast.Assign([]luaast.Expr{target}, luaast.Binary(op, identExpr(old), luaast.Number("1"))),
		luaast.Return(identExpr(old)),
	}}
	fn := luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Body: body}}
	return luaast.Call(luaast.Paren(fn))
}

// lowerAssignExpr lowers an assignment used in expression position (e.g.
// `a = b = 1`). A plain, simple-target assignment used as a bare statement
// is instead special-cased in lowerStmt to avoid the IIFE wrapper.
func (l *Lowerer) lowerAssignExpr(d tslast.AssignData) luaast.Expr {
	if d.Op == tslast.AssignPlain && isDestructureTarget(d.Target) {
		return l.destructureAssignIIFE(d)
	}
	target := l.lowerExpr(d.Target)
	value := l.compoundValue(d)
	body := luaast.Block{Stmts: []luaast.Stmt{
		luaast.Assign([]luaast.Expr{target}, value),
		luaast.Return(target),
	}}
	fn := luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Body: body}}
	return luaast.Call(luaast.Paren(fn))
}

func isDestructureTarget(e *tslast.Expr) bool {
	return e != nil && (e.Kind == tslast.ExprArrayLit || e.Kind == tslast.ExprObjectLit)
}

func (l *Lowerer) destructureAssignIIFE(d tslast.AssignData) luaast.Expr {
	tmp := l.tempIdent("assign")
	var stmts []luaast.Stmt
	stmts = append(stmts, luaast.Local([]luaast.Ident{tmp}, l.lowerExpr(d.Value)))
	stmts = append(stmts, l.destructureAssignStmts(d.Target, identExpr(tmp))...)
	stmts = append(stmts, luaast.Return(identExpr(tmp)))
	fn := luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Body: luaast.Block{Stmts: stmts}}}
	return luaast.Call(luaast.Paren(fn))
}

// destructureAssignStmts recurses over an array/object literal used as a
// (re-)assignment target, emitting plain `target = source` statements for
// every leaf instead of declaring new locals (spec.md §4.5 Destructuring
// assignment applied to an existing binding, as opposed to bindPattern's
// declaration-time counterpart in stmt.go).
func (l *Lowerer) destructureAssignStmts(target *tslast.Expr, source luaast.Expr) []luaast.Stmt {
	if target == nil {
		return nil
	}
	switch target.Kind {
	case tslast.ExprArrayLit:
		d := target.Data.(tslast.ArrayLitData)
		var out []luaast.Stmt
		for i, el := range d.Elements {
			if el == nil {
				continue
			}
			if d.SpreadFlags[i] {
				out = append(out, l.destructureAssignStmts(el, l.restSliceExpr(source, i+1))...)
				continue
			}
			out = append(out, l.destructureAssignStmts(el, luaast.Index(source, luaast.Number(itoaLua(i+1))))...)
		}
		return out
	case tslast.ExprObjectLit:
		d := target.Data.(tslast.ObjectLitData)
		var out []luaast.Stmt
		for _, p := range d.Props {
			var field luaast.Expr
			if p.Computed != nil {
				field = luaast.Index(source, l.lowerExpr(p.Computed))
			} else {
				field = luaast.Dot(source, p.Key)
			}
			out = append(out, l.destructureAssignStmts(p.Value, field)...)
		}
		return out
	default:
		return []luaast.Stmt{luaast.Assign([]luaast.Expr{l.lowerExpr(target)}, source)}
	}
}

func (l *Lowerer) compoundValue(d tslast.AssignData) luaast.Expr {
	target := l.lowerExpr(d.Target)
	value := l.lowerExpr(d.Value)
	opMap := map[tslast.AssignOp]luaast.BinOp{
		tslast.AssignAdd: luaast.OpAdd, tslast.AssignSub: luaast.OpSub, tslast.AssignMul: luaast.OpMul,
		tslast.AssignDiv: luaast.OpDiv, tslast.AssignMod: luaast.OpMod,
	}
	if op, ok := opMap[d.Op]; ok {
		if d.Op == tslast.AssignAdd && l.oracleTypeOf(d.Target).Kind == types.KindString {
			return luaast.Binary(luaast.OpConcat, target, l.toStringExpr(d.Value, value))
		}
		return luaast.Binary(op, target, value)
	}
	switch d.Op {
	case tslast.AssignBitAnd, tslast.AssignBitOr, tslast.AssignBitXor, tslast.AssignShl, tslast.AssignShr, tslast.AssignUShr:
		return l.lowerBitwise(bitAssignToBinary[d.Op], target, value)
	case tslast.AssignAnd:
		return luaast.Binary(luaast.OpAnd, target, value)
	case tslast.AssignOr:
		return luaast.Binary(luaast.OpOr, target, value)
	case tslast.AssignNullish:
		return l.nullishIIFE(target, value)
	default:
		return value
	}
}

var bitAssignToBinary = map[tslast.AssignOp]tslast.BinaryOp{
	tslast.AssignBitAnd: tslast.OpBitAnd, tslast.AssignBitOr: tslast.OpBitOr, tslast.AssignBitXor: tslast.OpBitXor,
	tslast.AssignShl: tslast.OpShl, tslast.AssignShr: tslast.OpShr, tslast.AssignUShr: tslast.OpUShr,
}

func (l *Lowerer) lowerInstanceOf(d tslast.InstanceOfData) luaast.Expr {
	return luaast.Call(identExpr(luaast.Ident{Name: l.useFeature(lualib.FeatureClassInstanceOf)}), l.lowerExpr(d.Left), l.lowerExpr(d.Right))
}

func (l *Lowerer) lowerDelete(d tslast.DeleteData) luaast.Expr {
	target := l.lowerExpr(d.Operand)
	body := luaast.Block{Stmts: []luaast.Stmt{
		luaast.Assign([]luaast.Expr{target}, luaast.Nil()),
		luaast.Return(luaast.True()),
	}}
	fn := luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Body: body}}
	return luaast.Call(luaast.Paren(fn))
}

func (l *Lowerer) lowerSequence(d tslast.SequenceData) luaast.Expr {
	if len(d.Exprs) == 0 {
		return luaast.Nil()
	}
	var stmts []luaast.Stmt
	for _, e := range d.Exprs[:len(d.Exprs)-1] {
		stmts = append(stmts, luaast.Stmt{Kind: luaast.StmtExprStmt, Data: luaast.ExprStmtData{Call: l.lowerExpr(e)}})
	}
	stmts = append(stmts, luaast.Return(l.lowerExpr(d.Exprs[len(d.Exprs)-1])))
	fn := luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Body: luaast.Block{Stmts: stmts}}}
	return luaast.Call(luaast.Paren(fn))
}

// lowerTemplate flattens a template literal into a chain of `..`
// concatenations, tostring-wrapping every interpolated, non-string operand
// (spec.md §4.5 Template literal / §4.1 flatten-concat target shape).
func (l *Lowerer) lowerTemplate(d tslast.TemplateData) luaast.Expr {
	result := luaast.String(d.Cooked[0])
	for i, e := range d.Exprs {
		v := l.toStringExpr(e, l.lowerExpr(e))
		result = luaast.Binary(luaast.OpConcat, result, v)
		result = luaast.Binary(luaast.OpConcat, result, luaast.String(d.Cooked[i+1]))
	}
	return result
}

// lowerTaggedTemplate lowers `tag\`...\`` to `tag(stringsTable, ...values)`,
// where stringsTable is a 1-based array of cooked parts carrying a `raw`
// field with the uncooked parts alongside.
func (l *Lowerer) lowerTaggedTemplate(d tslast.TaggedTemplateData) luaast.Expr {
	tmpl := d.Template.Data.(tslast.TemplateData)
	cookedFields := make([]luaast.Field, len(tmpl.Cooked))
	for i, s := range tmpl.Cooked {
		cookedFields[i] = luaast.Field{Kind: luaast.FieldPositional, Value: luaast.String(s)}
	}
	rawFields := make([]luaast.Field, len(tmpl.Raw))
	for i, s := range tmpl.Raw {
		rawFields[i] = luaast.Field{Kind: luaast.FieldPositional, Value: luaast.String(s)}
	}
	cookedFields = append(cookedFields, luaast.Field{Kind: luaast.FieldNamed, Name: "raw", Value: luaast.Table(rawFields...)})
	args := append([]luaast.Expr{luaast.Table(cookedFields...)}, l.lowerExprList(tmpl.Exprs)...)
	return luaast.Call(l.lowerExpr(d.Tag), args...)
}

// lowerArrayLit builds a table constructor directly when no element spreads,
// or an IIFE that copies every source (plain value or spread iterable) into
// a fresh 1-based array when any does (spec.md §4.5 Spread).
func (l *Lowerer) lowerArrayLit(d tslast.ArrayLitData) luaast.Expr {
	hasSpread := false
	for _, sp := range d.SpreadFlags {
		if sp {
			hasSpread = true
			break
		}
	}
	if !hasSpread {
		fields := make([]luaast.Field, len(d.Elements))
		for i, e := range d.Elements {
			if e == nil {
				fields[i] = luaast.Field{Kind: luaast.FieldPositional, Value: luaast.Nil()}
				continue
			}
			fields[i] = luaast.Field{Kind: luaast.FieldPositional, Value: l.lowerExpr(e)}
		}
		return luaast.Table(fields...)
	}
	result := l.tempIdent("array")
	idx := l.tempIdent("i")
	stmts := []luaast.Stmt{luaast.Local([]luaast.Ident{result}, luaast.Table()), luaast.Local([]luaast.Ident{idx}, luaast.Number("1"))}
	for i, e := range d.Elements {
		if e == nil {
			continue
		}
		v := l.lowerExpr(e)
		if d.SpreadFlags[i] {
			item := l.tempIdent("spreadItem")
			stmts = append(stmts, luaast.Stmt{Kind: luaast.StmtGenericFor, Data: luaast.GenericForData{
				Names: []luaast.Ident{l.tempIdent("_"), item},
				Exprs: []luaast.Expr{luaast.Call(identExpr(luaast.Ident{Name: "ipairs"}), v)},
				Body: luaast.Block{Stmts: []luaast.Stmt{
					luaast.Assign([]luaast.Expr{luaast.Index(identExpr(result), identExpr(idx))}, identExpr(item)),
					luaast.Assign([]luaast.Expr{identExpr(idx)}, luaast.Binary(luaast.OpAdd, identExpr(idx), luaast.Number("1"))),
				}},
			}})
			continue
		}
		stmts = append(stmts,
			luaast.Assign([]luaast.Expr{luaast.Index(identExpr(result), identExpr(idx))}, v),
			luaast.Assign([]luaast.Expr{identExpr(idx)}, luaast.Binary(luaast.OpAdd, identExpr(idx), luaast.Number("1"))),
		)
	}
	stmts = append(stmts, luaast.Return(identExpr(result)))
	fn := luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Body: luaast.Block{Stmts: stmts}}}
	return luaast.Call(luaast.Paren(fn))
}

// lowerObjectLit builds a table constructor directly when no property
// spreads, or an IIFE that merges each source via lualib.FeatureObjectAssign
// when any does.
func (l *Lowerer) lowerObjectLit(d tslast.ObjectLitData) luaast.Expr {
	hasSpread := false
	for _, p := range d.Props {
		if p.Spread {
			hasSpread = true
			break
		}
	}
	if !hasSpread {
		fields := make([]luaast.Field, len(d.Props))
		for i, p := range d.Props {
			if p.Computed != nil {
				fields[i] = luaast.Field{Kind: luaast.FieldComputed, Key: l.lowerExpr(p.Computed), Value: l.lowerExpr(p.Value)}
				continue
			}
			fields[i] = luaast.Field{Kind: luaast.FieldNamed, Name: p.Key, Value: l.lowerExpr(p.Value)}
		}
		return luaast.Table(fields...)
	}
	result := l.tempIdent("obj")
	stmts := []luaast.Stmt{luaast.Local([]luaast.Ident{result}, luaast.Table())}
	for _, p := range d.Props {
		if p.Spread {
			stmts = append(stmts, luaast.Stmt{Kind: luaast.StmtExprStmt, Data: luaast.ExprStmtData{
				Call: luaast.Call(identExpr(luaast.Ident{Name: l.useFeature(lualib.FeatureObjectAssign)}), identExpr(result), l.lowerExpr(p.Value)),
			}})
			continue
		}
		var target luaast.Expr
		if p.Computed != nil {
			target = luaast.Index(identExpr(result), l.lowerExpr(p.Computed))
		} else {
			target = luaast.Dot(identExpr(result), p.Key)
		}
		stmts = append(stmts, luaast.Assign([]luaast.Expr{target}, l.lowerExpr(p.Value)))
	}
	stmts = append(stmts, luaast.Return(identExpr(result)))
	fn := luaast.Expr{Kind: luaast.ExprFunction, Data: luaast.FunctionData{Body: luaast.Block{Stmts: stmts}}}
	return luaast.Call(luaast.Paren(fn))
}
