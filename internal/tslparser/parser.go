// Package tslparser is a recursive-descent, Pratt-expression parser that
// turns a token stream from internal/tsllexer into an internal/tslast tree.
// It is the one frontend component spec.md leaves unnamed (TSL source text
// in, AST out) because every downstream component — DirectiveTable,
// ScopeStack, SymbolTracker, the Lowerers — consumes tslast, never tokens.
//
// Grounded on the teacher's internal/parser idiom (vovakirdan-surge): a
// Parser struct wrapping a token stream with Peek/at/expect/advance helpers,
// a resync-on-error top-level loop, and Pratt-style parseBinaryExpr for
// expressions. Rewritten against tslast's pointer-based nodes instead of the
// teacher's ast.Builder arena, and against TSL grammar instead of Surge's.
package tslparser

import (
	"surge/internal/diag"
	"surge/internal/directive"
	"surge/internal/source"
	"surge/internal/tslast"
	"surge/internal/tsllexer"
	"surge/internal/tsltoken"
)

// Options configures a parse.
type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint
}

// Result is the outcome of parsing one file.
type Result struct {
	File *tslast.File
	Bag  *diag.Bag
}

// Parser holds per-file parsing state.
type Parser struct {
	toks     []tsltoken.Token
	pos      int
	file     source.FileID
	opts     Options
	errs     uint
	lastSpan source.Span
}

// ParseFile tokenizes src and parses it into a tslast.File.
func ParseFile(file source.FileID, path string, src string, opts Options) Result {
	toks := tsllexer.New(file, src).Tokenize()
	p := &Parser{toks: toks, file: file, opts: opts}

	f := &tslast.File{SourceFile: file, Path: path}
	doc, warnings := directive.Parse(p.leadingFileDoc())
	f.Doc = p.leadingFileDoc()
	f.Directives = doc
	p.reportDirectiveWarnings(warnings, p.peek().Span)

	for !p.at(tsltoken.EOF) {
		before := p.pos
		stmt, ok := p.parseStmt()
		if ok && stmt != nil {
			f.Stmts = append(f.Stmts, stmt)
		}
		if p.pos == before {
			p.advance() // forced progress on unparsable input
		}
	}

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{File: f, Bag: bag}
}

func (p *Parser) leadingFileDoc() string {
	if len(p.toks) == 0 {
		return ""
	}
	return p.toks[0].LeadingDoc
}

func (p *Parser) peek() tsltoken.Token {
	if p.pos >= len(p.toks) {
		return tsltoken.Token{Kind: tsltoken.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) tsltoken.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return tsltoken.Token{Kind: tsltoken.EOF}
	}
	return p.toks[i]
}

func (p *Parser) at(k tsltoken.Kind) bool { return p.peek().Kind == k }

func (p *Parser) atAny(kinds ...tsltoken.Kind) bool {
	cur := p.peek().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *Parser) advance() tsltoken.Token {
	t := p.peek()
	if t.Kind != tsltoken.EOF {
		p.pos++
		p.lastSpan = t.Span
	}
	return t
}

func (p *Parser) accept(k tsltoken.Kind) (tsltoken.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return tsltoken.Token{}, false
}

func (p *Parser) expect(k tsltoken.Kind, code diag.Code, msg string) (tsltoken.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return tsltoken.Token{Kind: tsltoken.Invalid, Span: p.currentErrorSpan()}, false
}

func (p *Parser) currentErrorSpan() source.Span {
	t := p.peek()
	if t.Kind == tsltoken.EOF {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return t.Span
}

func (p *Parser) err(code diag.Code, msg string) {
	p.errs++
	if p.opts.Reporter == nil {
		return
	}
	if p.opts.MaxErrors > 0 && p.errs > p.opts.MaxErrors {
		return
	}
	p.opts.Reporter.Report(code, diag.SevError, p.currentErrorSpan(), msg, nil, nil)
}

func (p *Parser) reportDirectiveWarnings(warnings []directive.Warning, sp source.Span) {
	if p.opts.Reporter == nil {
		return
	}
	for _, w := range warnings {
		code := diag.WarningUnknownDirective
		if isDeprecatedSyntaxWarning(w.Message) {
			code = diag.WarningDeprecatedDirectiveSyntax
		}
		p.opts.Reporter.Report(code, diag.SevWarning, sp, w.Message, nil, nil)
	}
}

func isDeprecatedSyntaxWarning(msg string) bool {
	return len(msg) > 10 && msg[:10] == "directive:" && containsStr(msg, "deprecated")
}

func containsStr(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

// span covers from start to the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

// parseDirectivesFor parses the LeadingDoc of the token about to be consumed
// as the start of a declaration, attaching them to the returned Stmt.
func (p *Parser) parseLeadingDirectives() ([]tslast.Directive, string) {
	doc := p.peek().LeadingDoc
	ds, warnings := directive.Parse(doc)
	p.reportDirectiveWarnings(warnings, p.peek().Span)
	return ds, doc
}
