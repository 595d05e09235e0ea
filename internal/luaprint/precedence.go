package luaprint

import (
	"strings"

	"surge/internal/luaast"
)

// unaryPrec sits between the arithmetic/concat operators and `^`, matching
// Lua's own precedence table (spec.md §3 "operator precedence is fixed by
// the language and the Printer must reproduce it exactly").
const unaryPrec = 11

// callableMinPrec is the precedence a callee/indexed object must have to
// print unparenthesized in `x(...)`/`x:m(...)`/`x[k]`/`x.k` position: only
// atoms, calls, indices and already-parenthesized expressions qualify.
// Everything looser (a binary/unary expression, a bare function or table
// literal) needs explicit parens there or Lua parses the wrong grouping
// entirely (`a^b()` is `a^(b())`, not `(a^b)()`).
const callableMinPrec = 13

// opInfo returns op's printed text, precedence (Lua's table, higher binds
// tighter) and whether it's right-associative.
func opInfo(op luaast.BinOp) (text string, prec int, rightAssoc bool) {
	switch op {
	case luaast.OpOr:
		return "or", 1, false
	case luaast.OpAnd:
		return "and", 2, false
	case luaast.OpLt:
		return "<", 3, false
	case luaast.OpGt:
		return ">", 3, false
	case luaast.OpLtEq:
		return "<=", 3, false
	case luaast.OpGtEq:
		return ">=", 3, false
	case luaast.OpEq:
		return "==", 3, false
	case luaast.OpNotEq:
		return "~=", 3, false
	case luaast.OpBOr:
		return "|", 4, false
	case luaast.OpBXor:
		return "~", 5, false
	case luaast.OpBAnd:
		return "&", 6, false
	case luaast.OpShl:
		return "<<", 7, false
	case luaast.OpShr:
		return ">>", 7, false
	case luaast.OpConcat:
		return "..", 8, true
	case luaast.OpAdd:
		return "+", 9, false
	case luaast.OpSub:
		return "-", 9, false
	case luaast.OpMul:
		return "*", 10, false
	case luaast.OpDiv:
		return "/", 10, false
	case luaast.OpMod:
		return "%", 10, false
	case luaast.OpPow:
		return "^", 12, true
	default:
		return "?", 0, false
	}
}

// prec returns e's own top-level operator precedence, or a value above
// every real operator for anything that never needs parens on its own
// account (atoms, calls, already-parenthesized expressions).
func prec(e luaast.Expr) int {
	switch e.Kind {
	case luaast.ExprBinary:
		_, pr, _ := opInfo(e.Data.(luaast.BinaryData).Op)
		return pr
	case luaast.ExprUnary:
		return unaryPrec
	case luaast.ExprFunction, luaast.ExprTable:
		return 0
	default:
		return 20
	}
}

func (p *printer) binary(d luaast.BinaryData) {
	text, pr, rightAssoc := opInfo(d.Op)
	leftMin, rightMin := pr, pr
	if rightAssoc {
		leftMin = pr + 1
	} else {
		rightMin = pr + 1
	}
	p.expr(d.Left, leftMin)
	p.w.Space()
	p.w.WriteString(text)
	p.w.Space()
	p.expr(d.Right, rightMin)
}

func (p *printer) unary(d luaast.UnaryData) {
	switch d.Op {
	case luaast.OpNeg:
		p.w.WriteString("-")
	case luaast.OpNot:
		p.w.WriteString("not ")
	case luaast.OpLen:
		p.w.WriteString("#")
	case luaast.OpBNot:
		p.w.WriteString("~")
	}
	// A nested unary, or a negative number literal, printed flush against
	// this operator can misparse (`--` opens a Lua comment) or merge into
	// one token; keep it parenthesized.
	negNumber := d.Operand.Kind == luaast.ExprNumber && strings.HasPrefix(d.Operand.Data.(luaast.NumberData).Text, "-")
	if d.Operand.Kind == luaast.ExprUnary || negNumber {
		p.w.WriteString("(")
		p.exprInner(d.Operand)
		p.w.WriteString(")")
		return
	}
	p.expr(d.Operand, unaryPrec)
}
