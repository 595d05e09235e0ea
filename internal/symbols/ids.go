// Package symbols implements spec.md §4.4's SymbolTracker and NameMangler:
// stable integer ids for TSL symbols, first-seen position tracking, and
// reserved/invalid Lua identifier detection with deterministic replacement.
//
// Grounded on the teacher's internal/symbols/ids.go SymbolID shape
// (vovakirdan-surge); the arena/scope-tree half of that package is replaced
// by internal/scope, which implements the explicit push/pop stack spec.md
// §4.3 specifies.
package symbols

// SymbolID identifies a TSL symbol for the lifetime of one file's
// transformation (spec.md §3 invariant: "A symbol id, once assigned, never
// changes").
type SymbolID uint32

// NoSymbolID marks the absence of a symbol reference.
const NoSymbolID SymbolID = 0

// IsValid reports whether id refers to an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }
