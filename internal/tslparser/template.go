package tslparser

import (
	"strings"

	"surge/internal/source"
	"surge/internal/tslast"
	"surge/internal/tsllexer"
)

// splitTemplateParts splits a backtick-delimited template literal's raw text
// (backticks included) into its cooked/raw string segments and the source
// text of each `${...}` interpolation, in source order.
func splitTemplateParts(raw string) (cooked []string, rawParts []string, exprSrcs []string) {
	body := raw
	if strings.HasPrefix(body, "`") {
		body = body[1:]
	}
	if strings.HasSuffix(body, "`") {
		body = body[:len(body)-1]
	}

	var cur strings.Builder
	i := 0
	for i < len(body) {
		if body[i] == '\\' && i+1 < len(body) {
			cur.WriteByte(body[i])
			cur.WriteByte(body[i+1])
			i += 2
			continue
		}
		if body[i] == '$' && i+1 < len(body) && body[i+1] == '{' {
			rawParts = append(rawParts, cur.String())
			cooked = append(cooked, decodeTemplateEscapes(cur.String()))
			cur.Reset()
			depth := 1
			j := i + 2
			start := j
			for j < len(body) && depth > 0 {
				switch body[j] {
				case '{':
					depth++
				case '}':
					depth--
					if depth == 0 {
						exprSrcs = append(exprSrcs, body[start:j])
					}
				}
				j++
			}
			i = j
			continue
		}
		cur.WriteByte(body[i])
		i++
	}
	rawParts = append(rawParts, cur.String())
	cooked = append(cooked, decodeTemplateEscapes(cur.String()))
	return cooked, rawParts, exprSrcs
}

func decodeTemplateEscapes(s string) string {
	s = strings.ReplaceAll(s, `\`+"`", "`")
	s = strings.ReplaceAll(s, `\$`, "$")
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\t`, "\t")
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}

// ParseExprSource parses a standalone expression fragment, used for
// `${...}` template interpolations, which the lexer captures whole and the
// parser re-lexes independently. Returns nil on malformed input; the caller
// already holds the enclosing parser's diagnostic reporter, so failures here
// are reported against the template token's span instead.
func ParseExprSource(file source.FileID, src string) *tslast.Expr {
	sub := &Parser{toks: tsllexer.New(file, src).Tokenize(), file: file}
	expr, ok := sub.parseExpr()
	if !ok {
		return nil
	}
	return expr
}
