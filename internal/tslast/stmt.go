package tslast

import (
	"surge/internal/source"
	"surge/internal/symbols"
)

// StmtKind enumerates TSL statement kinds (spec.md §4.6).
type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtVarDecl
	StmtBlock
	StmtIf
	StmtWhile
	StmtDoWhile
	StmtFor
	StmtForOf
	StmtForIn
	StmtSwitch
	StmtBreak
	StmtContinue
	StmtTry
	StmtThrow
	StmtReturn
	StmtFunctionDecl
	StmtClassDecl
	StmtEnumDecl
	StmtNamespaceDecl
	StmtImportDecl
	StmtExportDecl
	StmtEmpty
)

// Directive is one parsed doc-comment directive (spec.md §4.2/§3).
type DirectiveKind uint8

const (
	DirectiveExtension DirectiveKind = iota
	DirectiveMetaExtension
	DirectivePureAbstract
	DirectiveNoResolution
	DirectiveNoSelf
	DirectiveNoSelfInFile
	DirectivePhantom
	DirectiveTupleReturn
	DirectiveLuaIterator
	DirectiveLuaTable
	DirectiveForRange
	DirectiveVararg
	DirectiveCompileMembersOnly
	DirectiveCustomConstructor
)

// Directive carries the kind plus whatever string arguments followed it.
type Directive struct {
	Kind DirectiveKind
	Args []string
}

// Stmt is a single TSL statement node.
type Stmt struct {
	Kind       StmtKind
	Span       source.Span
	Doc        string      // raw leading doc-comment text, pre-DirectiveTable
	Directives []Directive // parsed once by internal/directive, cached here
	Data       StmtData
}

// StmtData is the interface every kind-specific payload implements.
type StmtData interface{ stmtData() }

// Block is a sequence of statements sharing one lexical scope.
type Block struct {
	Stmts []*Stmt
	Span  source.Span
}

// ExprStmtData wraps a bare expression statement.
type ExprStmtData struct{ Expr *Expr }

func (ExprStmtData) stmtData() {}

// VarKind distinguishes var/let/const declarations.
type VarKind uint8

const (
	VarVar VarKind = iota
	VarLet
	VarConst
)

// VarDeclarator is one `name = init` (or pattern) clause of a declaration.
type VarDeclarator struct {
	Name    string
	Symbol  symbols.SymbolID
	Pattern *Pattern // non-nil when destructuring
	Init    *Expr
}

// VarDeclData holds a var/let/const declaration statement.
type VarDeclData struct {
	VarKind     VarKind
	Declarators []VarDeclarator
	Ambient     bool // `declare` context (spec.md §4.4 InvalidAmbientIdentifierName)
}

func (VarDeclData) stmtData() {}

// BlockStmtData wraps a `{ ... }` block statement.
type BlockStmtData struct{ Block *Block }

func (BlockStmtData) stmtData() {}

// IfData holds an if/else statement.
type IfData struct {
	Cond       *Expr
	Then       *Stmt
	Else       *Stmt // nil if absent
}

func (IfData) stmtData() {}

// WhileData holds a while loop.
type WhileData struct {
	Cond *Expr
	Body *Stmt
}

func (WhileData) stmtData() {}

// DoWhileData holds a do/while loop.
type DoWhileData struct {
	Body *Stmt
	Cond *Expr
}

func (DoWhileData) stmtData() {}

// ForData holds a classic C-style for loop.
type ForData struct {
	Init      *Stmt // VarDecl or ExprStmt, may be nil
	Cond      *Expr // may be nil
	Post      *Expr // may be nil
	Body      *Stmt
}

func (ForData) stmtData() {}

// ForOfKind selects which of spec.md §4.6's four for-of lowerings applies.
// The parser sets ForOfGeneric and no later pass changes it, so every for-of
// lowers through __TS__iterator; the other kinds are not chosen for any input.
type ForOfKind uint8

const (
	ForOfGeneric ForOfKind = iota // __TS__iterator(expr)
	ForOfArray                    // ipairs(expr)
	ForOfLuaIterator               // tupleReturn + @luaIterator
	ForOfRange                      // @forRange
)

// ForOfData holds a for-of loop over an iterable.
type ForOfData struct {
	VarKind    VarKind
	Name       string
	Symbol     symbols.SymbolID
	Pattern    *Pattern // non-nil for destructuring for-of targets
	Names      []string // extra binding names for LuaIterator tuple returns
	Symbols    []symbols.SymbolID
	Iterable   *Expr
	Body       *Stmt
	Kind       ForOfKind
}

func (ForOfData) stmtData() {}

// ForInData holds a for-in loop (forbidden on array types, spec.md §4.6).
type ForInData struct {
	VarKind VarKind
	Name    string
	Symbol  symbols.SymbolID
	Object  *Expr
	Body    *Stmt
}

func (ForInData) stmtData() {}

// SwitchCase is one `case expr:`/`default:` arm.
type SwitchCase struct {
	Test *Expr // nil marks `default:`
	Body []*Stmt
}

// SwitchData holds a switch statement (spec.md §4.6, lowered to goto chain).
type SwitchData struct {
	Disc  *Expr
	Cases []SwitchCase
}

func (SwitchData) stmtData() {}

// BreakData/ContinueData optionally carry a label (unused by TSL surface
// syntax today, kept for forward compatibility with labelled loops).
type BreakData struct{ Label string }
type ContinueData struct{ Label string }

func (BreakData) stmtData()    {}
func (ContinueData) stmtData() {}

// CatchClause is the `catch (e) { ... }` clause of a try statement.
type CatchClause struct {
	Param  string // empty if the catch binds no parameter
	Symbol symbols.SymbolID
	Body   *Block
}

// TryData holds a try/catch/finally statement.
type TryData struct {
	Try     *Block
	Catch   *CatchClause // nil if absent
	Finally *Block       // nil if absent
}

func (TryData) stmtData() {}

// ThrowData holds a throw statement. Non-string throw expressions are a
// checker-time error (spec.md §7 InvalidThrowExpression).
type ThrowData struct{ Value *Expr }

func (ThrowData) stmtData() {}

// ReturnData holds a return statement, possibly with multiple tuple-return
// values (spec.md §4.6 Return).
type ReturnData struct{ Values []*Expr }

func (ReturnData) stmtData() {}

// FunctionDeclData wraps a named function/class-method declaration at
// statement level; the shared shape lives in Expr's FunctionData.
type FunctionDeclData struct {
	Name   string
	Symbol symbols.SymbolID
	Fn     *Expr // FunctionData-backed Expr
}

func (FunctionDeclData) stmtData() {}

// ClassDeclData wraps a class declaration at statement level.
type ClassDeclData struct{ Decl *ClassDecl }

func (ClassDeclData) stmtData() {}

// EnumMember is one `Name = value` (or bare `Name`) member of an enum.
type EnumMember struct {
	Name        string
	NumberValue float64
	StringValue string
	IsString    bool
	HasInit     bool
}

// EnumDeclData holds an enum declaration (spec.md §4.8 Enums).
type EnumDeclData struct {
	Name    string
	Symbol  symbols.SymbolID
	Const   bool
	Members []EnumMember
}

func (EnumDeclData) stmtData() {}

// NamespaceDeclData holds a namespace declaration (spec.md §4.8 Namespaces).
type NamespaceDeclData struct {
	Name   string
	Symbol symbols.SymbolID
	Body   []*Stmt
	Merged bool // true if a prior declaration of the same symbol already ran
}

func (NamespaceDeclData) stmtData() {}

// ImportSpecifier is one named import binding.
type ImportSpecifier struct {
	ImportedName string
	LocalName    string
	Symbol       symbols.SymbolID
}

// ImportDeclData holds an import declaration (spec.md §4.8 Imports).
type ImportDeclData struct {
	ModulePath    string
	DefaultLocal  string // empty if no default import
	NamespaceName string // `import * as ns` local name, empty if absent
	Named         []ImportSpecifier
	SideEffectOnly bool
}

func (ImportDeclData) stmtData() {}

// ExportDeclData holds an export declaration wrapping the exported
// statement, or a bare re-export list.
type ExportDeclData struct {
	Inner   *Stmt // the wrapped class/function/var/enum/namespace decl, or nil
	Default bool
	ReExport *ImportDeclData // non-nil for `export { x } from "./m"`
}

func (ExportDeclData) stmtData() {}

// EmptyData marks a no-op statement (bare `;`).
type EmptyData struct{}

func (EmptyData) stmtData() {}
