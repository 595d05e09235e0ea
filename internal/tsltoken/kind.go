// Package tsltoken defines the lexical token vocabulary of TSL, the typed
// source language this module transpiles to Lua.
package tsltoken

// Kind identifies the lexical category of a token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident
	Number
	String
	TemplateString
	Regex

	// Keywords
	KwVar
	KwLet
	KwConst
	KwFunction
	KwReturn
	KwIf
	KwElse
	KwFor
	KwOf
	KwIn
	KwWhile
	KwDo
	KwSwitch
	KwCase
	KwDefault
	KwBreak
	KwContinue
	KwClass
	KwExtends
	KwImplements
	KwInterface
	KwNew
	KwThis
	KwSuper
	KwStatic
	KwPublic
	KwPrivate
	KwProtected
	KwReadonly
	KwGet
	KwSet
	KwImport
	KwExport
	KwFrom
	KwAs
	KwDefaultExport
	KwNamespace
	KwModule
	KwDeclare
	KwEnum
	KwTry
	KwCatch
	KwFinally
	KwThrow
	KwTypeof
	KwInstanceof
	KwNull
	KwUndefined
	KwTrue
	KwFalse
	KwVoid
	KwDelete
	KwYield
	KwAsync
	KwAwait
	KwSpreadKw // "..." handled as operator, kept for clarity in grammar tables

	// Punctuation / operators
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Dot
	DotDotDot // ...
	Colon
	QuestionMark
	QuestionDot
	QuestionQuestion
	Arrow // =>

	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	AmpAssign
	PipeAssign
	CaretAssign
	ShlAssign
	ShrAssign
	UShrAssign
	AndAssign // &&=
	OrAssign  // ||=
	QQAssign  // ??=

	Plus
	Minus
	Star
	Slash
	Percent
	StarStar

	Eq
	NotEq
	EqEq  // ===
	NotEqEq

	Lt
	Gt
	LtEq
	GtEq

	AmpAmp
	PipePipe
	Bang

	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr
	UShr

	PlusPlus
	MinusMinus

	At // decorator sigil
)

var names = map[Kind]string{
	Invalid: "invalid", EOF: "eof",
	Ident: "ident", Number: "number", String: "string", TemplateString: "template", Regex: "regex",
	KwVar: "var", KwLet: "let", KwConst: "const", KwFunction: "function", KwReturn: "return",
	KwIf: "if", KwElse: "else", KwFor: "for", KwOf: "of", KwIn: "in", KwWhile: "while", KwDo: "do",
	KwSwitch: "switch", KwCase: "case", KwDefault: "default", KwBreak: "break", KwContinue: "continue",
	KwClass: "class", KwExtends: "extends", KwImplements: "implements", KwInterface: "interface",
	KwNew: "new", KwThis: "this", KwSuper: "super", KwStatic: "static",
	KwPublic: "public", KwPrivate: "private", KwProtected: "protected", KwReadonly: "readonly",
	KwGet: "get", KwSet: "set", KwImport: "import", KwExport: "export", KwFrom: "from", KwAs: "as",
	KwNamespace: "namespace", KwModule: "module", KwDeclare: "declare", KwEnum: "enum",
	KwTry: "try", KwCatch: "catch", KwFinally: "finally", KwThrow: "throw",
	KwTypeof: "typeof", KwInstanceof: "instanceof", KwNull: "null", KwUndefined: "undefined",
	KwTrue: "true", KwFalse: "false", KwVoid: "void", KwDelete: "delete",
	KwYield: "yield", KwAsync: "async", KwAwait: "await",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
	Semicolon: ";", Comma: ",", Dot: ".", DotDotDot: "...", Colon: ":",
	QuestionMark: "?", QuestionDot: "?.", QuestionQuestion: "??", Arrow: "=>",
	Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	PercentAssign: "%=", AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=",
	ShlAssign: "<<=", ShrAssign: ">>=", UShrAssign: ">>>=", AndAssign: "&&=", OrAssign: "||=", QQAssign: "??=",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", StarStar: "**",
	Eq: "==", NotEq: "!=", EqEq: "===", NotEqEq: "!==",
	Lt: "<", Gt: ">", LtEq: "<=", GtEq: ">=",
	AmpAmp: "&&", PipePipe: "||", Bang: "!",
	Amp: "&", Pipe: "|", Caret: "^", Tilde: "~", Shl: "<<", Shr: ">>", UShr: ">>>",
	PlusPlus: "++", MinusMinus: "--", At: "@",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "?"
}

// Keywords maps identifier text to its keyword Kind.
var Keywords = map[string]Kind{
	"var": KwVar, "let": KwLet, "const": KwConst, "function": KwFunction, "return": KwReturn,
	"if": KwIf, "else": KwElse, "for": KwFor, "of": KwOf, "in": KwIn, "while": KwWhile, "do": KwDo,
	"switch": KwSwitch, "case": KwCase, "default": KwDefault, "break": KwBreak, "continue": KwContinue,
	"class": KwClass, "extends": KwExtends, "implements": KwImplements, "interface": KwInterface,
	"new": KwNew, "this": KwThis, "super": KwSuper, "static": KwStatic,
	"public": KwPublic, "private": KwPrivate, "protected": KwProtected, "readonly": KwReadonly,
	"get": KwGet, "set": KwSet, "import": KwImport, "export": KwExport, "from": KwFrom, "as": KwAs,
	"namespace": KwNamespace, "module": KwModule, "declare": KwDeclare, "enum": KwEnum,
	"try": KwTry, "catch": KwCatch, "finally": KwFinally, "throw": KwThrow,
	"typeof": KwTypeof, "instanceof": KwInstanceof, "null": KwNull, "undefined": KwUndefined,
	"true": KwTrue, "false": KwFalse, "void": KwVoid, "delete": KwDelete,
	"yield": KwYield, "async": KwAsync, "await": KwAwait,
}

// IsKeyword reports whether text names a reserved TSL keyword.
func IsKeyword(text string) bool {
	_, ok := Keywords[text]
	return ok
}
