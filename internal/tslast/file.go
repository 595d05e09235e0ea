package tslast

import "surge/internal/source"

// File is one parsed TSL source file (spec.md §2 Data flow: "the Host
// invokes the transformer with one source file").
type File struct {
	SourceFile source.FileID
	Path       string
	Stmts      []*Stmt
	Doc        string // doc comment of the first top-level statement (spec.md §4.2)
	Directives []Directive
	IsJSON     bool // spec.md §9: JSON files lower to `return <expr>`, no exports table
	JSONExpr   *Expr
}
