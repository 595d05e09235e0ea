// Package tslcheck is a minimal static checker over internal/tslast,
// implementing the TypeOracle surface (spec.md §6) well enough to drive
// every lowering decision internal/lower makes: array-vs-not element types,
// string-typed `+`, tuple-return signatures, const-enum folding, and
// context type for `@noSelf`/`@noSelfInFile`.
//
// Grounded on the teacher's internal/sema/check.go entry-point shape (a
// Result-returning Check walking the AST once, keyed maps instead of
// mutated nodes) and internal/symbols/resolve.go's declare-then-resolve
// idiom, rewritten against tslast's pointer nodes instead of ast.ExprID and
// trimmed of everything TSL has no counterpart for: borrow checking,
// contracts, const generics, async/await.
package tslcheck

import (
	"surge/internal/diag"
	"surge/internal/scope"
	"surge/internal/source"
	"surge/internal/symbols"
	"surge/internal/tslast"
	"surge/internal/types"
)

// Options configures one file's check.
type Options struct {
	Reporter diag.Reporter
	// Imports maps an already-checked module's export name to its exported
	// symbol's declared type, keyed by module path (spec.md §6 exportsOf).
	Imports map[string]*Exports
}

// Exports is what one file's Check publishes for importers to consult.
type Exports struct {
	Names map[string]symbols.SymbolID
	Types map[symbols.SymbolID]types.TypeID
}

// Result stores everything the TypeOracle needs to answer queries about one
// checked file.
type Result struct {
	Types      *types.Interner
	Tracker    *symbols.Tracker
	ExprTypes  map[*tslast.Expr]types.TypeID
	SymbolType map[symbols.SymbolID]types.TypeID
	Exports    *Exports
	Scopes     *scope.Stack
}

// declSite is the Handle symbols.Tracker mints an id against: one per
// binding occurrence (parameter, declarator, function/class name, import
// specifier, catch binding, enum/namespace name).
type declSite struct {
	Name string
}

// checker holds per-file mutable state threaded through the single
// declare-then-resolve walk.
type checker struct {
	opts    Options
	types   *types.Interner
	tracker *symbols.Tracker
	scopes  *scope.Stack
	env     []map[string]symbols.SymbolID // one frame per scope.Stack level
	exprTy  map[*tslast.Expr]types.TypeID
	symTy   map[symbols.SymbolID]types.TypeID
	exports map[string]symbols.SymbolID
}

// Check walks file once, binding every identifier to a stable SymbolID and
// inferring a structural TypeID for every expression it can decide without
// full bidirectional inference (spec.md §6's reduced TypeOracle surface).
func Check(file *tslast.File, opts Options) Result {
	c := &checker{
		opts:    opts,
		types:   types.NewInterner(),
		tracker: symbols.NewTracker(),
		scopes:  scope.New(),
		exprTy:  make(map[*tslast.Expr]types.TypeID),
		symTy:   make(map[symbols.SymbolID]types.TypeID),
		exports: make(map[string]symbols.SymbolID),
	}
	c.pushScope(scope.File)
	c.declareHoisted(file.Stmts)
	for _, s := range file.Stmts {
		c.walkStmt(s)
	}
	c.collectExports(file.Stmts)
	// The file scope is deliberately left on the stack (never popped) so
	// the returned Result's Scopes still exposes its Declarations/
	// References/FuncDefs to the Hoister and to Oracle queries made after
	// Check returns.

	return Result{
		Types:      c.types,
		Tracker:    c.tracker,
		ExprTypes:  c.exprTy,
		SymbolType: c.symTy,
		Exports:    &Exports{Names: c.exports, Types: c.symTy},
		Scopes:     c.scopes,
	}
}

func (c *checker) pushScope(kind scope.Kind) *scope.Scope {
	sc := c.scopes.Push(kind)
	c.env = append(c.env, make(map[string]symbols.SymbolID))
	return sc
}

func (c *checker) popScope() *scope.Scope {
	c.env = c.env[:len(c.env)-1]
	return c.scopes.Pop()
}

// declare mints a fresh SymbolID for name at pos, shadowing any outer
// binding within the current scope frame.
func (c *checker) declare(name string, pos source.Span) symbols.SymbolID {
	id := c.tracker.Resolve(&declSite{Name: name}, pos)
	c.env[len(c.env)-1][name] = id
	c.scopes.RecordDeclaration(id)
	return id
}

// resolve looks up name from the innermost scope outward, recording the
// reference on every enclosing scope per spec.md §4.3. Returns NoSymbolID
// and false, without reporting a diagnostic, if name is never declared in
// this file (imports from other files are not modeled as declarations, so
// an unresolved name is not necessarily an error — the caller decides).
func (c *checker) resolve(name string, pos source.Span) (symbols.SymbolID, bool) {
	for i := len(c.env) - 1; i >= 0; i-- {
		if id, ok := c.env[i][name]; ok {
			c.scopes.RecordReference(id, pos)
			return id, true
		}
	}
	return symbols.NoSymbolID, false
}

func (c *checker) setType(id symbols.SymbolID, t types.TypeID) {
	if id.IsValid() {
		c.symTy[id] = t
	}
}

func (c *checker) typeOfSymbol(id symbols.SymbolID) types.TypeID {
	if t, ok := c.symTy[id]; ok {
		return t
	}
	return types.NoType
}

func (c *checker) report(code diag.Code, sp source.Span, msg string) {
	if c.opts.Reporter == nil {
		return
	}
	c.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
}
