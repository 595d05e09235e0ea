// Package luaast is the Lua AST model of spec.md §4.1: a closed sum type of
// node variants with optional TSL origin back-pointers, printed by
// internal/luaprint and never mutated once built — it has no visitor
// protocol baked in, per spec.md ("traversal is performed by the Printer
// externally").
//
// The Kind+Data tagged-union shape is grounded on the teacher's
// internal/hir/expr.go Expr{Kind, Type, Span, Data ExprData} pattern
// (vovakirdan-surge), reused here for both statements and expressions.
package luaast

import (
	"surge/internal/symbols"
)

// Origin is a non-owning handle to the TSL node an emitted Lua node came
// from, kept only for diagnostics/position (spec.md §9: "The TSL AST is
// immutable during transformation; therefore back-references are safe as
// non-owning handles"). It is opaque here — internal/lower fills it with a
// concrete *tslast.Expr/*tslast.Stmt.
type Origin any

// BinOp is the closed set of Lua binary operators (spec.md §3).
type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpConcat
	OpEq
	OpNotEq
	OpLt
	OpGt
	OpLtEq
	OpGtEq
	OpAnd
	OpOr
	OpBAnd
	OpBOr
	OpBXor
	OpShl
	OpShr
)

// UnOp is the closed set of Lua unary operators.
type UnOp uint8

const (
	OpNeg UnOp = iota
	OpNot
	OpLen
	OpBNot
)

// Ident is a Lua identifier. It carries an optional SymbolId and original
// text for diagnostics/exported-name resolution (spec.md §3).
type Ident struct {
	Name     string
	SymbolID symbols.SymbolID // NoSymbolID if this identifier names no TSL symbol
	Original string           // pre-mangling text, empty if unchanged
	Origin   Origin
}

// Clone returns a copy of id preserving its SymbolID and Original text
// (spec.md §4.1 "clone-identifier").
func (id Ident) Clone() Ident { return id }

// WithOrigin returns a copy of id with its origin replaced
// (spec.md §4.1 "set-origin-position").
func (id Ident) WithOrigin(o Origin) Ident { id.Origin = o; return id }

// Field is one entry of a table constructor.
type FieldKind uint8

const (
	FieldPositional FieldKind = iota // { expr, ... }
	FieldNamed                       // { name = expr }
	FieldComputed                    // { [expr] = expr }
)

// Field is one table-constructor entry.
type Field struct {
	Kind  FieldKind
	Name  string
	Key   Expr // FieldComputed only
	Value Expr
}
