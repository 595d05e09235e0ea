package symbols

import (
	"fmt"
	"regexp"
	"strings"
)

// validIdent matches a syntactically valid Lua identifier (spec.md §4.4).
var validIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// luaKeywords is the closed set of reserved Lua words.
var luaKeywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "goto": true,
	"if": true, "in": true, "local": true, "nil": true, "not": true,
	"or": true, "repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}

// luaBuiltinGlobals is the closed set of standard Lua global names that
// would silently shadow a runtime built-in if reused as a local.
var luaBuiltinGlobals = map[string]bool{
	"_G": true, "_VERSION": true, "assert": true, "collectgarbage": true,
	"dofile": true, "error": true, "getmetatable": true, "ipairs": true,
	"load": true, "loadfile": true, "loadstring": true, "next": true,
	"pairs": true, "pcall": true, "print": true, "rawequal": true,
	"rawget": true, "rawlen": true, "rawset": true, "require": true,
	"select": true, "setmetatable": true, "tonumber": true, "tostring": true,
	"type": true, "unpack": true, "xpcall": true,
	"coroutine": true, "string": true, "table": true, "math": true,
	"io": true, "os": true, "debug": true, "utf8": true, "bit32": true,
}

// IsUnsafe reports whether name is a Lua keyword, a Lua built-in global, or
// not a syntactically valid Lua identifier (spec.md §4.4).
func IsUnsafe(name string) bool {
	if !validIdent.MatchString(name) {
		return true
	}
	return luaKeywords[name] || luaBuiltinGlobals[name]
}

// Mangle produces the deterministic safe replacement for an unsafe,
// non-exported, non-ambient name: "____" followed by a byte-wise hex escape
// of each invalid character (spec.md §4.4). For names that are merely
// reserved (valid identifier syntax but a keyword/global), only the prefix
// is added and the name's bytes are kept as they are, so the mapping stays a
// pure function of the original text.
func Mangle(name string) string {
	var sb strings.Builder
	sb.WriteString("____")
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isPlainLuaByte(c, i == 0) {
			sb.WriteByte(c)
			continue
		}
		fmt.Fprintf(&sb, "%02x", c)
	}
	return sb.String()
}

func isPlainLuaByte(c byte, first bool) bool {
	switch {
	case c == '_':
		return true
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	default:
		return false
	}
}
