package tslast

import (
	"surge/internal/source"
	"surge/internal/symbols"
	"surge/internal/types"
)

// ClassMemberKind distinguishes the member shapes ClassLowerer emits
// (spec.md §4.7).
type ClassMemberKind uint8

const (
	MemberField ClassMemberKind = iota
	MemberMethod
	MemberGetter
	MemberSetter
	MemberConstructor
)

// ClassMember is one member of a class body.
type ClassMember struct {
	Kind       ClassMemberKind
	Name       string
	Span       source.Span
	Static     bool
	Visibility Visibility
	Decorators []*Expr

	// MemberField
	FieldInit *Expr
	FieldType types.TypeID

	// MemberMethod/Getter/Setter/Constructor
	Fn *Expr // FunctionData-backed Expr
}

// ClassDecl is a class declaration or expression (spec.md §4.7).
type ClassDecl struct {
	Name       string
	Symbol     symbols.SymbolID
	Span       source.Span
	Extends    *Expr // callee expression naming the superclass, nil if none
	Members    []ClassMember
	Decorators []*Expr
	Doc        string
	Directives []Directive
}
