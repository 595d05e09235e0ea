package luaast

// StmtKind enumerates Lua statement kinds (spec.md §3).
type StmtKind uint8

const (
	StmtLocal StmtKind = iota
	StmtAssign
	StmtExprStmt // a bare call used as a statement
	StmtDo
	StmtIf
	StmtWhile
	StmtRepeat
	StmtNumericFor
	StmtGenericFor
	StmtReturn
	StmtBreak
	StmtGoto
	StmtLabel
)

// Stmt is a single Lua statement node.
type Stmt struct {
	Kind   StmtKind
	Origin Origin
	Data   any
}

// Block is a sequence of Lua statements (spec.md §3 "block").
type Block struct {
	Stmts []Stmt
}

// LocalData holds `local a, b = x, y` (Values may be shorter than Names, or
// empty for a bare forward declaration the Hoister emits).
type LocalData struct {
	Names  []Ident
	Values []Expr
}

// AssignData holds `a, b = x, y`. Targets must be ExprIdent/ExprIndex/
// ExprDot per spec.md §3's well-formedness invariant.
type AssignData struct {
	Targets []Expr
	Values  []Expr
}

// ExprStmtData wraps a call used as a statement.
type ExprStmtData struct{ Call Expr }

// DoData holds a `do ... end` block (spec.md §4.6: used to preserve lexical
// scoping for plain TSL blocks and to scope for-loop init variables).
type DoData struct{ Body Block }

// IfClause is one `if`/`elseif` arm.
type IfClause struct {
	Cond Expr
	Body Block
}

// IfData holds an if/elseif/else chain.
type IfData struct {
	Clauses []IfClause
	Else    *Block // nil if absent
}

// WhileData holds `while cond do body end`.
type WhileData struct {
	Cond Expr
	Body Block
}

// RepeatData holds `repeat body until cond` (spec.md §4.6 do/while lowering).
type RepeatData struct {
	Body Block
	Cond Expr
}

// NumericForData holds `for i = start, limit, step do body end`
// (spec.md §4.6 @forRange lowering).
type NumericForData struct {
	Var         Ident
	Start, Limit Expr
	Step        *Expr // nil means the implicit step of 1
	Body        Block
}

// GenericForData holds `for v1, v2, ... in expr do body end`
// (spec.md §4.6 for-of/for-in lowerings).
type GenericForData struct {
	Names []Ident
	Exprs []Expr
	Body  Block
}

// ReturnData holds a return statement with zero or more values.
type ReturnData struct{ Values []Expr }

// BreakData marks a `break` statement.
type BreakData struct{}

// GotoData/LabelData implement spec.md §4.6's switch/continue lowering via
// goto.
type GotoData struct{ Label string }
type LabelData struct{ Name string }

// Constructors for terse call-site construction.
func Local(names []Ident, values ...Expr) Stmt {
	return Stmt{Kind: StmtLocal, Data: LocalData{Names: names, Values: values}}
}
func Assign(targets []Expr, values ...Expr) Stmt {
	return Stmt{Kind: StmtAssign, Data: AssignData{Targets: targets, Values: values}}
}
func ExprStmt(call Expr) Stmt { return Stmt{Kind: StmtExprStmt, Data: ExprStmtData{Call: call}} }
func Do(body Block) Stmt      { return Stmt{Kind: StmtDo, Data: DoData{Body: body}} }
func Return(values ...Expr) Stmt { return Stmt{Kind: StmtReturn, Data: ReturnData{Values: values}} }
func Break() Stmt             { return Stmt{Kind: StmtBreak, Data: BreakData{}} }
func Goto(label string) Stmt  { return Stmt{Kind: StmtGoto, Data: GotoData{Label: label}} }
func Label(name string) Stmt  { return Stmt{Kind: StmtLabel, Data: LabelData{Name: name}} }
