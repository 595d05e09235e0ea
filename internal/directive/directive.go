// Package directive implements spec.md §4.2's DirectiveTable: it parses and
// validates doc-comment directives attached to symbols, types, signatures,
// nodes, and files, collecting them from two syntaxes:
//
//   - legacy "!"-prefixed text lines (deprecated; parsing one emits a
//     Warning)
//   - structured "@tag(args)" doc lines
//
// Grounded on the teacher's internal/directive Registry (mutex-guarded,
// append-only, queried by filter) (vovakirdan-surge), rewritten because the
// teacher's directives are build-scenario markers keyed by namespace while
// spec.md's are a closed enum of per-declaration compiler directives.
package directive

import (
	"strings"

	"surge/internal/tslast"
)

// names maps a directive's canonical tag spelling to its Kind. Unknown tag
// names are warned but ignored (spec.md §4.2).
var names = map[string]tslast.DirectiveKind{
	"extension":          tslast.DirectiveExtension,
	"metaExtension":       tslast.DirectiveMetaExtension,
	"pureAbstract":        tslast.DirectivePureAbstract,
	"noResolution":        tslast.DirectiveNoResolution,
	"noSelf":              tslast.DirectiveNoSelf,
	"noSelfInFile":        tslast.DirectiveNoSelfInFile,
	"phantom":             tslast.DirectivePhantom,
	"tupleReturn":         tslast.DirectiveTupleReturn,
	"luaIterator":         tslast.DirectiveLuaIterator,
	"luaTable":            tslast.DirectiveLuaTable,
	"forRange":            tslast.DirectiveForRange,
	"vararg":              tslast.DirectiveVararg,
	"compileMembersOnly":  tslast.DirectiveCompileMembersOnly,
	"customConstructor":   tslast.DirectiveCustomConstructor,
}

// legacyNames maps the older "!directive arg1 arg2" text-line syntax to the
// same closed enum (spec.md: "doc-comment text lines beginning with !
// (deprecated, emit a warning)").
var legacyNames = names

// Warning is a non-fatal diagnostic produced while parsing directives
// (spec.md §7 Warnings: unknown directive name, deprecated "!" syntax).
type Warning struct {
	Message string
}

// Parse extracts directives from a raw doc-comment block, returning the
// parsed directives in source order plus any warnings encountered.
func Parse(doc string) ([]tslast.Directive, []Warning) {
	if doc == "" {
		return nil, nil
	}
	var out []tslast.Directive
	var warnings []Warning
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "!"):
			d, w, ok := parseTag(strings.TrimSpace(line[1:]), legacyNames)
			warnings = append(warnings, Warning{Message: "directive: deprecated '!' syntax, use '@" + tagHead(line[1:]) + "' instead"})
			if ok {
				out = append(out, d)
			} else if w != "" {
				warnings = append(warnings, Warning{Message: w})
			}
		case strings.HasPrefix(line, "@"):
			d, w, ok := parseTag(line[1:], names)
			if ok {
				out = append(out, d)
			} else if w != "" {
				warnings = append(warnings, Warning{Message: w})
			}
		}
	}
	return out, warnings
}

func tagHead(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " ("); i >= 0 {
		return s[:i]
	}
	return s
}

func parseTag(s string, table map[string]tslast.DirectiveKind) (tslast.Directive, string, bool) {
	s = strings.TrimSpace(s)
	name := s
	rest := ""
	if i := strings.IndexAny(s, " ("); i >= 0 {
		name = s[:i]
		rest = strings.TrimSpace(s[i:])
	}
	kind, ok := table[name]
	if !ok {
		return tslast.Directive{}, "directive: unknown directive name '" + name + "'", false
	}
	return tslast.Directive{Kind: kind, Args: parseArgs(rest)}, "", true
}

func parseArgs(rest string) []string {
	rest = strings.TrimSpace(rest)
	rest = strings.TrimPrefix(rest, "(")
	rest = strings.TrimSuffix(rest, ")")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil
	}
	parts := strings.Split(rest, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Table answers directive queries for the set of directives already parsed
// onto an AST node (spec.md §4.2). Construction of the slice is done once by
// Parse at parse time; Table is a thin, repeatedly-constructible query view
// over it so callers don't re-scan doc text at every lowering decision.
type Table struct {
	directives []tslast.Directive
}

// Of builds a Table over an already-parsed directive slice.
func Of(directives []tslast.Directive) Table { return Table{directives: directives} }

// Has reports whether kind is present.
func (t Table) Has(kind tslast.DirectiveKind) bool {
	for _, d := range t.directives {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// Args returns the argument list of the first directive of kind, and
// whether it was found.
func (t Table) Args(kind tslast.DirectiveKind) ([]string, bool) {
	for _, d := range t.directives {
		if d.Kind == kind {
			return d.Args, true
		}
	}
	return nil, false
}

// Merge combines own directives with a parent's (spec.md §4.2:
// "For property-signature-hosted function types, directives on the parent
// property symbol also apply"), own directives taking precedence on
// duplicate kinds.
func Merge(own, parent []tslast.Directive) []tslast.Directive {
	seen := make(map[tslast.DirectiveKind]bool, len(own))
	out := make([]tslast.Directive, 0, len(own)+len(parent))
	for _, d := range own {
		seen[d.Kind] = true
		out = append(out, d)
	}
	for _, d := range parent {
		if !seen[d.Kind] {
			out = append(out, d)
		}
	}
	return out
}
