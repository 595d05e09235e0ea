package diag

import (
	"fmt"
)

// Code is the closed set of error/warning kinds spec.md §7 names. Unlike the
// open-ended lexer/parser Code ranges this package once carried, every kind
// the lowering pipeline can raise is listed here; there is no catch-all.
type Code uint16

const (
	UnknownCode Code = 0

	// Unsupported*: a TSL construct has no Lua representation for the
	// configured target, ever or under the current options (1000s).
	UnsupportedKind                     Code = 1001
	UnsupportedProperty                 Code = 1002
	UnsupportedForTarget                Code = 1003
	UnsupportedOverloadAssignment       Code = 1004
	UnsupportedSelfFunctionConversion   Code = 1005
	UnsupportedNoSelfFunctionConversion Code = 1006
	UnsupportedFunctionWithoutBody      Code = 1007
	UnsupportedObjectDestructuringInForOf  Code = 1008
	UnsupportedNonDestructuringLuaIterator Code = 1009
	UnsupportedImportType                  Code = 1010
	UnsupportedDefaultExport               Code = 1011

	// Invalid*: a construct is present but malformed or used in a context
	// its own declaration forbids (2000s).
	InvalidJSONFileContent          Code = 2001
	InvalidDecoratorContext         Code = 2002
	InvalidDecoratorArgumentNumber  Code = 2003
	InvalidExtensionMetaExtension   Code = 2004
	InvalidExtendsExtension         Code = 2005
	InvalidExtendsLuaTable          Code = 2006
	InvalidInstanceOfExtension      Code = 2007
	InvalidInstanceOfLuaTable       Code = 2008
	InvalidAmbientIdentifierName    Code = 2009
	InvalidExportsExtension         Code = 2010
	InvalidExportDeclaration        Code = 2011
	InvalidThrowExpression          Code = 2012
	InvalidForRangeCall             Code = 2013
	InvalidPropertyCall             Code = 2014
	InvalidElementCall              Code = 2015
	InvalidNewExpressionOnExtension Code = 2016

	// Missing*: a required piece of a declaration is absent (3000s).
	MissingClassName      Code = 3001
	MissingMetaExtension  Code = 3002
	MissingFunctionName   Code = 3003
	MissingSourceFile     Code = 3004
	MissingForOfVariables Code = 3005

	// Undefined*: a lookup against the ScopeStack/TypeOracle came back
	// empty where the lowering requires a result (4000s).
	UndefinedScope              Code = 4001
	UndefinedTypeNode           Code = 4002
	UndefinedFunctionDefinition Code = 4003

	// Forbidden*/misc structural rule violations (5000s).
	HeterogeneousEnum                Code = 5001
	UnknownSuperType                 Code = 5002
	UnresolvableRequirePath          Code = 5003
	ForbiddenStaticClassPropertyName Code = 5004
	ForbiddenLuaTableUseException    Code = 5005
	ForbiddenLuaTableNonDeclaration  Code = 5006
	ForbiddenLuaTableSetExpression   Code = 5007
	ForbiddenForIn                   Code = 5008
	ForbiddenEllipsisDestruction     Code = 5009
	DefaultImportsNotSupported       Code = 5010
	ReferencedBeforeDeclaration      Code = 5011
	CouldNotCast                     Code = 5012

	// Module graph errors: raised by internal/project/dag while resolving
	// the import graph across files of a build, ahead of and independent
	// from per-file lowering (6000s).
	ProjDuplicateModule  Code = 6001
	ProjMissingModule    Code = 6002
	ProjSelfImport       Code = 6003
	ProjImportCycle      Code = 6004
	ProjDependencyFailed Code = 6005

	// Warnings: non-fatal, emitted as SevWarning (9000s).
	WarningUnknownDirective          Code = 9001
	WarningDeprecatedDirectiveSyntax Code = 9002
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	UnsupportedKind:                     "unsupported language feature",
	UnsupportedProperty:                 "unsupported property access",
	UnsupportedForTarget:                "construct not supported for the configured Lua target",
	UnsupportedOverloadAssignment:       "cannot assign to an overloaded function group",
	UnsupportedSelfFunctionConversion:   "cannot convert a self-function to a non-self-function type",
	UnsupportedNoSelfFunctionConversion: "cannot convert a non-self-function to a self-function type",
	UnsupportedFunctionWithoutBody:      "function has no body",
	UnsupportedObjectDestructuringInForOf:  "object destructuring is not supported in a for-of loop",
	UnsupportedNonDestructuringLuaIterator: "LuaIterator function must return a destructuring expression",
	UnsupportedImportType:                  "unsupported import kind",
	UnsupportedDefaultExport:               "default export is not supported",

	InvalidJSONFileContent:          "invalid JSON file content",
	InvalidDecoratorContext:         "decorator is not valid in this context",
	InvalidDecoratorArgumentNumber:  "decorator called with the wrong number of arguments",
	InvalidExtensionMetaExtension:   "@extension and @metaExtension cannot both be applied",
	InvalidExtendsExtension:         "cannot extend a class annotated @extension",
	InvalidExtendsLuaTable:          "cannot extend a class annotated @luaTable",
	InvalidInstanceOfExtension:      "instanceof against an @extension class is not supported",
	InvalidInstanceOfLuaTable:       "instanceof against a @luaTable class is not supported",
	InvalidAmbientIdentifierName:    "identifier is not a valid ambient declaration name",
	InvalidExportsExtension:        "an @extension declaration cannot be exported",
	InvalidExportDeclaration:       "invalid export declaration",
	InvalidThrowExpression:         "throw expression is not a valid Error construction",
	InvalidForRangeCall:            "@forRange callee must be a direct call expression",
	InvalidPropertyCall:            "property call target is not a function",
	InvalidElementCall:             "element-access call target is not a function",
	InvalidNewExpressionOnExtension: "cannot 'new' an @extension class",

	MissingClassName:      "class declaration has no name",
	MissingMetaExtension:  "@metaExtension class has no corresponding extended class",
	MissingFunctionName:   "function declaration has no name",
	MissingSourceFile:     "source file could not be located",
	MissingForOfVariables: "for-of loop declares no binding variables",

	UndefinedScope:              "no enclosing scope matches the requested kind",
	UndefinedTypeNode:           "type node could not be resolved",
	UndefinedFunctionDefinition: "function definition not found for symbol",

	HeterogeneousEnum:                "enum members mix string and numeric values",
	UnknownSuperType:                 "superclass type could not be resolved",
	UnresolvableRequirePath:          "import path does not resolve to a known module",
	ForbiddenStaticClassPropertyName: "static class member uses a reserved name",
	ForbiddenLuaTableUseException:    "@luaTable class used where a value is required",
	ForbiddenLuaTableNonDeclaration:  "@luaTable member access requires a plain declaration",
	ForbiddenLuaTableSetExpression:   "@luaTable field cannot be target of a compound assignment",
	ForbiddenForIn:                   "for-in loops are not supported",
	ForbiddenEllipsisDestruction:     "rest element not supported in this destructuring position",
	DefaultImportsNotSupported:       "default imports are not supported",
	ReferencedBeforeDeclaration:      "referenced before its declaration",
	CouldNotCast:                     "expression could not be cast to the target type",

	ProjDuplicateModule:  "duplicate module definition",
	ProjMissingModule:    "imported module not found",
	ProjSelfImport:       "module imports itself",
	ProjImportCycle:      "import cycle detected",
	ProjDependencyFailed: "dependency module has errors",

	WarningUnknownDirective:          "unknown directive name",
	WarningDeprecatedDirectiveSyntax: "deprecated '!' directive syntax, use '@tag(...)' instead",
}

// ID renders the stable, category-prefixed diagnostic code shown to users,
// e.g. "UNS1001", "INV2004", "WRN9002".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("UNS%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("INV%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("MIS%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("UND%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("FRB%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("WRN%04d", ic)
	}
	return "E0000"
}

// Title returns the human-readable description of c.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsWarning reports whether c belongs to the warning range (9000s); callers
// use this to pick SevWarning over SevError when constructing a Diagnostic.
func (c Code) IsWarning() bool {
	return c >= 9000 && c < 10000
}
