package luaprint

import (
	"strconv"
	"strings"

	"surge/internal/luaast"
)

// Print renders block to Lua source text (spec.md §5: "the Printer
// consumes a LuaBlock and a LuaLibRegistry bundle and produces the final
// .lua text"). Bundling the lualib prologue is internal/lualib.Emit's job,
// not this package's: Print only ever sees one chunk's own statements.
func Print(block luaast.Block, opt Options) []byte {
	p := &printer{w: NewWriter(opt)}
	p.block(block)
	return p.w.Bytes()
}

type printer struct{ w *Writer }

func (p *printer) block(b luaast.Block) {
	for _, s := range b.Stmts {
		p.stmt(s)
	}
}

func (p *printer) indented(b luaast.Block) {
	p.w.IndentPush()
	p.block(b)
	p.w.IndentPop()
}

func (p *printer) stmt(s luaast.Stmt) {
	switch s.Kind {
	case luaast.StmtLocal:
		d := s.Data.(luaast.LocalData)
		p.w.WriteString("local ")
		p.identList(d.Names)
		if len(d.Values) > 0 {
			p.w.WriteString(" = ")
			p.exprList(d.Values)
		}
		p.w.Newline()

	case luaast.StmtAssign:
		d := s.Data.(luaast.AssignData)
		p.exprList(d.Targets)
		p.w.WriteString(" = ")
		p.exprList(d.Values)
		p.w.Newline()

	case luaast.StmtExprStmt:
		d := s.Data.(luaast.ExprStmtData)
		p.expr(d.Call, 0)
		p.w.Newline()

	case luaast.StmtDo:
		d := s.Data.(luaast.DoData)
		p.w.WriteString("do")
		p.w.Newline()
		p.indented(d.Body)
		p.w.WriteString("end")
		p.w.Newline()

	case luaast.StmtIf:
		p.ifStmt(s.Data.(luaast.IfData))

	case luaast.StmtWhile:
		d := s.Data.(luaast.WhileData)
		p.w.WriteString("while ")
		p.expr(d.Cond, 0)
		p.w.WriteString(" do")
		p.w.Newline()
		p.indented(d.Body)
		p.w.WriteString("end")
		p.w.Newline()

	case luaast.StmtRepeat:
		d := s.Data.(luaast.RepeatData)
		p.w.WriteString("repeat")
		p.w.Newline()
		p.indented(d.Body)
		p.w.WriteString("until ")
		p.expr(d.Cond, 0)
		p.w.Newline()

	case luaast.StmtNumericFor:
		d := s.Data.(luaast.NumericForData)
		p.w.WriteString("for ")
		p.w.WriteString(d.Var.Name)
		p.w.WriteString(" = ")
		p.expr(d.Start, 0)
		p.w.WriteString(", ")
		p.expr(d.Limit, 0)
		if d.Step != nil {
			p.w.WriteString(", ")
			p.expr(*d.Step, 0)
		}
		p.w.WriteString(" do")
		p.w.Newline()
		p.indented(d.Body)
		p.w.WriteString("end")
		p.w.Newline()

	case luaast.StmtGenericFor:
		d := s.Data.(luaast.GenericForData)
		p.w.WriteString("for ")
		p.identList(d.Names)
		p.w.WriteString(" in ")
		p.exprList(d.Exprs)
		p.w.WriteString(" do")
		p.w.Newline()
		p.indented(d.Body)
		p.w.WriteString("end")
		p.w.Newline()

	case luaast.StmtReturn:
		d := s.Data.(luaast.ReturnData)
		p.w.WriteString("return")
		if len(d.Values) > 0 {
			p.w.Space()
			p.exprList(d.Values)
		}
		p.w.Newline()

	case luaast.StmtBreak:
		p.w.WriteString("break")
		p.w.Newline()

	case luaast.StmtGoto:
		d := s.Data.(luaast.GotoData)
		p.w.WriteString("goto ")
		p.w.WriteString(d.Label)
		p.w.Newline()

	case luaast.StmtLabel:
		d := s.Data.(luaast.LabelData)
		p.w.WriteString("::")
		p.w.WriteString(d.Name)
		p.w.WriteString("::")
		p.w.Newline()
	}
}

func (p *printer) ifStmt(d luaast.IfData) {
	for i, c := range d.Clauses {
		if i == 0 {
			p.w.WriteString("if ")
		} else {
			p.w.WriteString("elseif ")
		}
		p.expr(c.Cond, 0)
		p.w.WriteString(" then")
		p.w.Newline()
		p.indented(c.Body)
	}
	if d.Else != nil {
		p.w.WriteString("else")
		p.w.Newline()
		p.indented(*d.Else)
	}
	p.w.WriteString("end")
	p.w.Newline()
}

func (p *printer) identList(ids []luaast.Ident) {
	for i, id := range ids {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.w.WriteString(id.Name)
	}
}

func (p *printer) exprList(es []luaast.Expr) {
	for i, e := range es {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.expr(e, 0)
	}
}

// expr prints e, wrapping it in parens if its top-level operator binds
// looser than minPrec requires (spec.md §5 "the Printer never relies on
// Lua's own operator precedence to recover meaning it didn't print
// explicitly").
func (p *printer) expr(e luaast.Expr, minPrec int) {
	if prec(e) < minPrec {
		p.w.WriteString("(")
		p.exprInner(e)
		p.w.WriteString(")")
		return
	}
	p.exprInner(e)
}

func (p *printer) exprInner(e luaast.Expr) {
	switch e.Kind {
	case luaast.ExprNil:
		p.w.WriteString("nil")
	case luaast.ExprTrue:
		p.w.WriteString("true")
	case luaast.ExprFalse:
		p.w.WriteString("false")
	case luaast.ExprVarArg:
		p.w.WriteString("...")
	case luaast.ExprNumber:
		p.w.WriteString(e.Data.(luaast.NumberData).Text)
	case luaast.ExprString:
		p.w.WriteString(quoteLuaString(e.Data.(luaast.StringData).Value))
	case luaast.ExprIdent:
		p.w.WriteString(e.Data.(luaast.IdentData).Ident.Name)
	case luaast.ExprTable:
		p.table(e.Data.(luaast.TableData))
	case luaast.ExprFunction:
		p.function(e.Data.(luaast.FunctionData))
	case luaast.ExprBinary:
		p.binary(e.Data.(luaast.BinaryData))
	case luaast.ExprUnary:
		p.unary(e.Data.(luaast.UnaryData))
	case luaast.ExprCall:
		d := e.Data.(luaast.CallData)
		p.expr(d.Callee, callableMinPrec)
		p.w.WriteString("(")
		p.exprList(d.Args)
		p.w.WriteString(")")
	case luaast.ExprMethodCall:
		d := e.Data.(luaast.MethodCallData)
		p.expr(d.Object, callableMinPrec)
		p.w.WriteString(":")
		p.w.WriteString(d.Method)
		p.w.WriteString("(")
		p.exprList(d.Args)
		p.w.WriteString(")")
	case luaast.ExprIndex:
		d := e.Data.(luaast.IndexData)
		p.expr(d.Object, callableMinPrec)
		p.w.WriteString("[")
		p.expr(d.Key, 0)
		p.w.WriteString("]")
	case luaast.ExprDot:
		d := e.Data.(luaast.DotData)
		p.expr(d.Object, callableMinPrec)
		p.w.WriteString(".")
		p.w.WriteString(d.Key)
	case luaast.ExprParen:
		p.w.WriteString("(")
		p.expr(e.Data.(luaast.ParenData).Inner, 0)
		p.w.WriteString(")")
	}
}

func (p *printer) table(d luaast.TableData) {
	if len(d.Fields) == 0 {
		p.w.WriteString("{}")
		return
	}
	p.w.WriteString("{ ")
	for i, f := range d.Fields {
		if i > 0 {
			p.w.WriteString(", ")
		}
		switch f.Kind {
		case luaast.FieldPositional:
			p.expr(f.Value, 0)
		case luaast.FieldNamed:
			p.w.WriteString(f.Name)
			p.w.WriteString(" = ")
			p.expr(f.Value, 0)
		case luaast.FieldComputed:
			p.w.WriteString("[")
			p.expr(f.Key, 0)
			p.w.WriteString("] = ")
			p.expr(f.Value, 0)
		}
	}
	p.w.WriteString(" }")
}

func (p *printer) function(d luaast.FunctionData) {
	p.w.WriteString("function(")
	for i, pr := range d.Params {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.w.WriteString(pr.Name)
	}
	if d.HasDots {
		if len(d.Params) > 0 {
			p.w.WriteString(", ")
		}
		p.w.WriteString("...")
	}
	p.w.WriteString(")")
	p.w.Newline()
	p.indented(d.Body)
	p.w.WriteString("end")
}

// quoteLuaString renders v as a double-quoted Lua string literal, escaping
// the characters Lua's lexer treats specially inside one.
func quoteLuaString(v string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range v {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if r < 0x20 {
				sb.WriteString(`\` + strconv.Itoa(int(r)))
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
