package luaast

// ExprKind enumerates Lua expression kinds (spec.md §3).
type ExprKind uint8

const (
	ExprNil ExprKind = iota
	ExprTrue
	ExprFalse
	ExprNumber
	ExprString
	ExprVarArg   // "..."
	ExprIdent
	ExprTable
	ExprFunction
	ExprBinary
	ExprUnary
	ExprCall
	ExprMethodCall
	ExprIndex // t[k]
	ExprDot   // t.k
	ExprParen
)

// Expr is a single Lua expression node.
type Expr struct {
	Kind   ExprKind
	Origin Origin
	Data   any
}

// NumberData/StringData hold literal payloads.
type NumberData struct{ Text string } // printed verbatim, already Lua-syntax
type StringData struct{ Value string }

// IdentData wraps an Ident used in expression position.
type IdentData struct{ Ident Ident }

// TableData holds a table constructor `{ ... }`.
type TableData struct{ Fields []Field }

// FunctionData holds a function expression/literal.
type FunctionData struct {
	Params   []Ident
	HasDots  bool // trailing "..."
	Body     Block
}

// BinaryData holds a binary expression.
type BinaryData struct {
	Op          BinOp
	Left, Right Expr
}

// UnaryData holds a unary expression.
type UnaryData struct {
	Op      UnOp
	Operand Expr
}

// CallData holds `f(args...)`.
type CallData struct {
	Callee Expr
	Args   []Expr
}

// MethodCallData holds `obj:method(args...)`.
type MethodCallData struct {
	Object Expr
	Method string
	Args   []Expr
}

// IndexData holds `t[k]`.
type IndexData struct {
	Object Expr
	Key    Expr
}

// DotData holds `t.k`.
type DotData struct {
	Object Expr
	Key    string
}

// ParenData holds a parenthesized expression (truncates a multi-value
// expression to its first result, as in real Lua).
type ParenData struct{ Inner Expr }

// Nil/True/False/VarArg helpers for terse construction.
func Nil() Expr      { return Expr{Kind: ExprNil} }
func True() Expr     { return Expr{Kind: ExprTrue} }
func False() Expr    { return Expr{Kind: ExprFalse} }
func VarArg() Expr   { return Expr{Kind: ExprVarArg} }
func Number(text string) Expr { return Expr{Kind: ExprNumber, Data: NumberData{Text: text}} }
func String(v string) Expr    { return Expr{Kind: ExprString, Data: StringData{Value: v}} }
func Identifier(id Ident) Expr { return Expr{Kind: ExprIdent, Data: IdentData{Ident: id}, Origin: id.Origin} }
func Table(fields ...Field) Expr { return Expr{Kind: ExprTable, Data: TableData{Fields: fields}} }
func Binary(op BinOp, l, r Expr) Expr { return Expr{Kind: ExprBinary, Data: BinaryData{Op: op, Left: l, Right: r}} }
func Unary(op UnOp, e Expr) Expr      { return Expr{Kind: ExprUnary, Data: UnaryData{Op: op, Operand: e}} }
func Call(callee Expr, args ...Expr) Expr { return Expr{Kind: ExprCall, Data: CallData{Callee: callee, Args: args}} }
func MethodCall(obj Expr, method string, args ...Expr) Expr {
	return Expr{Kind: ExprMethodCall, Data: MethodCallData{Object: obj, Method: method, Args: args}}
}
func Index(obj, key Expr) Expr { return Expr{Kind: ExprIndex, Data: IndexData{Object: obj, Key: key}} }
func Dot(obj Expr, key string) Expr { return Expr{Kind: ExprDot, Data: DotData{Object: obj, Key: key}} }
func Paren(e Expr) Expr { return Expr{Kind: ExprParen, Data: ParenData{Inner: e}} }

// FlattenConcat collapses a left-fold of ".." concatenations into a single
// flat operand list (spec.md §4.1 "flatten-concat"). Nothing in this
// module calls it.
func FlattenConcat(e Expr) []Expr {
	if e.Kind != ExprBinary {
		return []Expr{e}
	}
	b := e.Data.(BinaryData)
	if b.Op != OpConcat {
		return []Expr{e}
	}
	return append(FlattenConcat(b.Left), FlattenConcat(b.Right)...)
}
