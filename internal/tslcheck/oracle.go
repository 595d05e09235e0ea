package tslcheck

import (
	"surge/internal/symbols"
	"surge/internal/tslast"
	"surge/internal/types"
)

// Oracle answers spec.md §6's TypeOracle questions from a Result already
// produced by Check. internal/lower depends on this interface, never on
// *checker, so the ExpressionLowerer/StatementLowerer/ClassLowerer stay
// decoupled from how types get inferred.
type Oracle struct {
	res *Result
}

// NewOracle wraps a finished Check Result for querying.
func NewOracle(res *Result) *Oracle { return &Oracle{res: res} }

// Interner exposes the type table backing this oracle's answers, for
// callers (internal/lower's ExpressionLowerer) that need to inspect a
// TypeID's structural Kind directly rather than through one of the
// question-shaped helpers below.
func (o *Oracle) Interner() *types.Interner { return o.res.Types }

// TypeOf returns the structural type previously inferred for expr.
func (o *Oracle) TypeOf(expr *tslast.Expr) types.TypeID {
	if expr == nil {
		return types.NoType
	}
	if t, ok := o.res.ExprTypes[expr]; ok {
		return t
	}
	return types.NoType
}

// SymbolOf returns the resolved symbol for an identifier expression, or
// NoSymbolID if expr isn't an IdentData or was never resolved.
func (o *Oracle) SymbolOf(expr *tslast.Expr) symbols.SymbolID {
	if expr == nil {
		return symbols.NoSymbolID
	}
	if id, ok := expr.Data.(tslast.IdentData); ok {
		return id.Symbol
	}
	return symbols.NoSymbolID
}

// SymbolDeclarations returns the first-seen span for id, the closest
// tslast equivalent of spec.md's "declarations of a symbol" (this checker
// does not track redeclaration/merging beyond namespace Merged).
func (o *Oracle) SymbolDeclarations(id symbols.SymbolID) []symbols.Info {
	info := o.res.Tracker.Info(id)
	if !id.IsValid() {
		return nil
	}
	return []symbols.Info{info}
}

// ExportsOf returns the set of symbols this file exports, for building
// cross-file import resolution in internal/buildpipeline.
func (o *Oracle) ExportsOf() *Exports { return o.res.Exports }

// FullyQualifiedName renders a best-effort qualified name for id, using the
// declaration site's recorded name (TSL has no module-qualification scheme
// beyond file path, which the caller already knows).
func (o *Oracle) FullyQualifiedName(id symbols.SymbolID) string {
	info := o.res.Tracker.Info(id)
	if site, ok := info.Handle.(*declSite); ok {
		return site.Name
	}
	return ""
}

// ResolvedSignature returns the function signature type for a call's
// callee expression, or the zero Type if the callee's type isn't a
// function (spec.md §6 resolvedSignature, used to decide tuple-return and
// context-type emission).
func (o *Oracle) ResolvedSignature(callee *tslast.Expr) (types.Type, bool) {
	t := o.res.Types.Get(o.TypeOf(callee))
	if t.Kind != types.KindFunction {
		return types.Type{}, false
	}
	return t, true
}

// ReturnTypeOfSignature returns the first return type of sig, or NoType for
// a void/no-return signature.
func (o *Oracle) ReturnTypeOfSignature(sig types.Type) types.TypeID {
	if len(sig.Returns) == 0 {
		return types.NoType
	}
	return sig.Returns[0]
}

// SignaturesOfType returns the single signature stored for a function-typed
// TypeID (TSL, unlike the original TypeOracle, does not model overload
// sets — spec.md §9's UnsupportedOverloadAssignment diagnostic covers the
// one construct that would need one).
func (o *Oracle) SignaturesOfType(t types.TypeID) []types.Type {
	ty := o.res.Types.Get(t)
	if ty.Kind != types.KindFunction {
		return nil
	}
	return []types.Type{ty}
}

// GetContextualType returns the expected type propagating into expr from
// its syntactic position (spec.md §3 ContextType: used to decide @noSelf
// function-value conversions). This checker infers outward, not inward, so
// the only contextual type available is the target's own inferred type.
func (o *Oracle) GetContextualType(expr *tslast.Expr) types.TypeID {
	return o.TypeOf(expr)
}

// BaseConstraintOf returns NoType: TSL as modeled here has no generic type
// parameters, so there is no constraint to report (spec.md §1 Non-goal:
// generics are out of scope for the core lowering).
func (o *Oracle) BaseConstraintOf(types.TypeID) types.TypeID { return types.NoType }

// BaseTypesOf returns the Extends chain of a class/object type, walking to
// the root.
func (o *Oracle) BaseTypesOf(t types.TypeID) []types.TypeID {
	var chain []types.TypeID
	for t != types.NoType {
		ty := o.res.Types.Get(t)
		if ty.Extends == types.NoType {
			break
		}
		chain = append(chain, ty.Extends)
		t = ty.Extends
	}
	return chain
}

// ConstantValueOf returns the folded constant for a const-enum member
// access (spec.md §4.5 Property access: const enums fold to their literal
// value at the use site instead of an index into an emitted table).
func (o *Oracle) ConstantValueOf(enumType types.TypeID, member string) (any, bool) {
	ty := o.res.Types.Get(enumType)
	if ty.Kind != types.KindEnum || !ty.EnumIsConst {
		return nil, false
	}
	if v, ok := ty.EnumNumeric[member]; ok {
		return v, true
	}
	if v, ok := ty.EnumString[member]; ok {
		return v, true
	}
	return nil, false
}

// TypeToTypeNode and TypeFromTypeNode are necessarily degenerate here:
// internal/tslparser discards type-annotation text after skipping it
// (types.TypeID resolution comes from literal/usage inference, never from
// re-parsed annotation syntax), so there is no TypeNode AST to convert
// to or from. Both are identity functions over TypeID, kept so callers
// written against the TypeOracle interface compile unchanged.
func (o *Oracle) TypeToTypeNode(t types.TypeID) types.TypeID   { return t }
func (o *Oracle) TypeFromTypeNode(t types.TypeID) types.TypeID { return t }

// EmitResolver answers spec.md §6's import/export emission questions:
// whether a declaration needs to survive into the emitted Lua chunk at
// all. TSL (per this checker) has no type-only imports to elide, so every
// value import/export is significant.
type EmitResolver struct{ o *Oracle }

// EmitResolver returns the import/export-emission helper bound to this
// oracle.
func (o *Oracle) EmitResolver() *EmitResolver { return &EmitResolver{o: o} }

// IsValueAliasDeclaration reports whether an import specifier's local
// binding is ever referenced as a value (as opposed to a type-only
// import this frontend doesn't model, so always true here).
func (r *EmitResolver) IsValueAliasDeclaration(spec tslast.ImportSpecifier) bool {
	return true
}

// IsReferencedAliasDeclaration mirrors IsValueAliasDeclaration: without a
// separate type-checking pass there's no alias that exists purely for
// types, so every import alias counts as referenced if the checker ever
// recorded a reference against it.
func (r *EmitResolver) IsReferencedAliasDeclaration(id symbols.SymbolID) bool {
	sc := r.o.res.Scopes.Peek()
	if sc == nil {
		return true
	}
	_, ok := sc.References[id]
	return ok
}

// IsTopLevelValueImportEqualsWithEntityName always reports false: TSL's
// import grammar (internal/tslparser) has no `import x = require(...)`
// form, only ES module import/export declarations.
func (r *EmitResolver) IsTopLevelValueImportEqualsWithEntityName(*tslast.Stmt) bool {
	return false
}

// ModuleExportsSomeValue reports whether exports is non-empty, used to
// decide whether ModuleLowerer needs to emit a `return { ... }` table at
// all for a given file.
func (r *EmitResolver) ModuleExportsSomeValue(exports *Exports) bool {
	return exports != nil && len(exports.Names) > 0
}
