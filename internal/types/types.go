// Package types models the TSL type system surface the core lowering passes
// need to consult: enough structural shape to decide array-vs-not, tuple
// returns, string concatenation, and context-type (self/no-self) questions.
// Grounded on the teacher's internal/types TypeID-interning shape
// (vovakirdan-surge), stripped of generics/contracts/union-tag machinery
// Surge needs that TSL, for this transpiler, does not.
package types

// TypeID indexes into an Interner's type table.
type TypeID uint32

// NoType marks the absence of a resolved type.
const NoType TypeID = 0

// Kind enumerates the structural type shapes the lowerer distinguishes.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAny
	KindUnknown
	KindNever
	KindVoid
	KindNull
	KindUndefined
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindTuple
	KindObject
	KindClass
	KindEnum
	KindFunction
	KindUnion
)

// Type is the structural description of a single TypeID.
type Type struct {
	Kind Kind

	// KindArray: Elem is the element type.
	Elem TypeID

	// KindTuple: Elems are the member types in order.
	Elems []TypeID

	// KindFunction: parameter/return shape plus ContextType (spec.md §3/§4.5).
	Params  []TypeID
	Returns []TypeID // >1 member means the signature is a tuple return
	Context ContextKind

	// KindClass/KindObject: declared member types by name, and the class this
	// extends (NoType if none).
	Members map[string]TypeID
	Extends TypeID

	// KindEnum: member name -> constant value (numeric or string), used for
	// const-enum folding (spec.md §4.5 Property access).
	EnumMembers   []string
	EnumNumeric   map[string]float64
	EnumString    map[string]string
	EnumIsConst   bool

	// KindUnion: member types.
	UnionMembers []TypeID

	Name string
}

// ContextKind models spec.md's ContextType: whether a function-typed value
// receives an implicit this/self parameter.
type ContextKind uint8

const (
	ContextNone ContextKind = iota
	ContextVoid
	ContextNonVoid
	ContextMixed
)

// Interner owns the Type table for one compilation.
type Interner struct {
	types []Type
}

// NewInterner creates an Interner whose only pre-seeded entry is the
// KindInvalid type at index 0 (NoType); every other type, primitives
// included, gets its id from Intern.
func NewInterner() *Interner {
	in := &Interner{types: make([]Type, 1, 32)} // index 0 reserved for NoType
	in.types[0] = Type{Kind: KindInvalid}
	return in
}

// Intern stores t and returns a fresh TypeID for it.
func (in *Interner) Intern(t Type) TypeID {
	in.types = append(in.types, t)
	return TypeID(len(in.types) - 1)
}

// Get resolves a TypeID to its structural description.
func (in *Interner) Get(id TypeID) Type {
	if int(id) >= len(in.types) {
		return Type{Kind: KindInvalid}
	}
	return in.types[id]
}

// IsArray reports whether id names an array type (spec.md §8 "1-based arrays").
func (in *Interner) IsArray(id TypeID) bool { return in.Get(id).Kind == KindArray }

// IsString reports whether id names the string primitive type.
func (in *Interner) IsString(id TypeID) bool { return in.Get(id).Kind == KindString }

// IsNumber reports whether id names the number primitive type.
func (in *Interner) IsNumber(id TypeID) bool { return in.Get(id).Kind == KindNumber }

// MaybeFalsy reports whether a value of type id could be a falsy-but-true-ish
// TSL value under the ternary-fusion rule of spec.md §4.5 (undefined, null,
// boolean, void, any, never, or a non-literal under non-strict null checks).
func (in *Interner) MaybeFalsy(id TypeID, strictNullChecks bool) bool {
	t := in.Get(id)
	switch t.Kind {
	case KindUndefined, KindNull, KindBoolean, KindVoid, KindAny, KindNever, KindUnknown:
		return true
	default:
		return !strictNullChecks
	}
}
