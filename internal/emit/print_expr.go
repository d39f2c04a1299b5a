package emit

import (
	"strings"

	"hush/internal/ast"
	"hush/internal/source"
)

// printExpr prints id, parenthesised when it binds looser than min.
func (p *printer) printExpr(id ast.ExprID, min prec) {
	p.printOperand(id, min, false)
}

func (p *printer) printOperand(id ast.ExprID, min prec, force bool) {
	if id == ast.NoExprID {
		p.fail(source.Span{}, "missing operand")
	}
	if force || p.exprPrec(id) < min {
		p.writer.WriteString("(")
		p.printExprInner(id)
		p.writer.WriteString(")")
		return
	}
	p.printExprInner(id)
}

func (p *printer) printExprInner(id ast.ExprID) {
	ex := p.expr(id)
	exprs := p.builder.Exprs
	w := p.writer
	w.Mark(ex.Span)

	switch ex.Kind {
	case ast.ExprIdent:
		w.WriteString(p.name(need(exprs.Ident(id)).Name))

	case ast.ExprLit:
		w.WriteString(need(exprs.Literal(id)).Raw)

	case ast.ExprThis:
		w.WriteString("this")

	case ast.ExprSuper:
		w.WriteString("super")

	case ast.ExprPrivateName:
		w.WriteString("#" + p.name(need(exprs.PrivateName(id)).Name))

	case ast.ExprTemplate:
		p.printTemplate(need(exprs.Template(id)))

	case ast.ExprArray:
		p.printArray(need(exprs.Array(id)))

	case ast.ExprObject:
		p.printObject(need(exprs.Object(id)))

	case ast.ExprFunction:
		p.printFunction(need(exprs.Function(id)))

	case ast.ExprArrow:
		p.printArrow(need(exprs.Arrow(id)))

	case ast.ExprClass:
		p.printClass(need(exprs.Class(id)))

	case ast.ExprMember:
		d := need(exprs.Member(id))
		p.printMemberTarget(d.Target)
		if d.Optional {
			w.WriteString("?.")
		} else {
			w.WriteString(".")
		}
		if d.Private {
			w.WriteString("#")
		}
		w.WriteString(p.name(d.Name))

	case ast.ExprIndex:
		d := need(exprs.Index(id))
		p.printMemberTarget(d.Target)
		if d.Optional {
			w.WriteString("?.")
		}
		w.WriteString("[")
		p.printExpr(d.Index, precSeq)
		w.WriteString("]")

	case ast.ExprCall:
		d := need(exprs.Call(id))
		p.printExpr(d.Callee, precCall)
		if d.Optional {
			w.WriteString("?.")
		}
		p.printArgs(d.Args)

	case ast.ExprNew:
		d := need(exprs.Construct(id))
		w.WriteString("new ")
		p.printOperand(d.Callee, precCall, p.containsCall(d.Callee))
		if d.HasArgs {
			p.printArgs(d.Args)
		}

	case ast.ExprUnary:
		d := need(exprs.Unary(id))
		w.WriteString(d.Op.String())
		if d.Op.IsKeyword() || p.needsSignSpace(d.Op, d.Operand) {
			w.WriteString(" ")
		}
		p.printExpr(d.Operand, precUnary)

	case ast.ExprUpdate:
		d := need(exprs.Update(id))
		if d.Prefix {
			w.WriteString(d.Op.String())
			p.printExpr(d.Operand, precNew)
			return
		}
		p.printExpr(d.Operand, precNew)
		w.WriteString(d.Op.String())

	case ast.ExprBinary:
		p.printBinary(need(exprs.Binary(id)))

	case ast.ExprAssign:
		d := need(exprs.Assign(id))
		p.printExpr(d.Left, precNew)
		w.WriteString(" " + d.Op.String() + " ")
		p.printExpr(d.Right, precAssign)

	case ast.ExprConditional:
		d := need(exprs.Conditional(id))
		p.printExpr(d.Cond, precCoalesce)
		w.WriteString(" ? ")
		p.printExpr(d.Then, precAssign)
		w.WriteString(" : ")
		p.printExpr(d.Else, precAssign)

	case ast.ExprSequence:
		d := need(exprs.Sequence(id))
		for i, el := range d.Exprs {
			if i > 0 {
				w.WriteString(", ")
			}
			p.printExpr(el, precAssign)
		}

	case ast.ExprSpread:
		w.WriteString("...")
		p.printExpr(need(exprs.Spread(id)).Arg, precAssign)

	case ast.ExprYield:
		d := need(exprs.Yield(id))
		w.WriteString("yield")
		if d.Delegate {
			w.WriteString("*")
		}
		if d.Arg != ast.NoExprID {
			w.WriteString(" ")
			p.printExpr(d.Arg, precAssign)
		}

	case ast.ExprParen:
		w.WriteString("(")
		p.printExpr(need(exprs.Paren(id)).Inner, precSeq)
		w.WriteString(")")

	case ast.ExprMeta:
		d := need(exprs.Meta(id))
		w.WriteString(p.name(d.Meta) + "." + p.name(d.Prop))

	case ast.ExprImportCall:
		d := need(exprs.ImportCall(id))
		w.WriteString("import(")
		p.printExpr(d.Arg, precAssign)
		if d.Options != ast.NoExprID {
			w.WriteString(", ")
			p.printExpr(d.Options, precAssign)
		}
		w.WriteString(")")

	default:
		p.fail(ex.Span, "unknown expression kind %s", ex.Kind)
	}
}

// printMemberTarget prints the object of a member or index access. An
// integer literal needs parentheses, `1.x` would read as a number.
func (p *printer) printMemberTarget(target ast.ExprID) {
	if lit, ok := p.builder.Exprs.Literal(target); ok && lit.Kind == ast.LitNumber && isPlainInteger(lit.Raw) {
		p.printOperand(target, precCall, true)
		return
	}
	p.printExpr(target, precCall)
}

func isPlainInteger(raw string) bool {
	if raw == "" {
		return false
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}

// containsCall reports whether a `new` callee has a call in its member
// chain: `new (f())()` must keep the parentheses around `f()`.
func (p *printer) containsCall(id ast.ExprID) bool {
	exprs := p.builder.Exprs
	for {
		switch p.expr(id).Kind {
		case ast.ExprCall, ast.ExprImportCall:
			return true
		case ast.ExprMember:
			id = need(exprs.Member(id)).Target
		case ast.ExprIndex:
			id = need(exprs.Index(id)).Target
		case ast.ExprTemplate:
			tag := need(exprs.Template(id)).Tag
			if tag == ast.NoExprID {
				return false
			}
			id = tag
		default:
			return false
		}
	}
}

// needsSignSpace keeps `- -x` and `+ ++x` from fusing into `--x` / `+++x`.
func (p *printer) needsSignSpace(op ast.UnaryOp, operand ast.ExprID) bool {
	if op != ast.UnaryNeg && op != ast.UnaryPlus {
		return false
	}
	sign := op.String()
	exprs := p.builder.Exprs
	if u, ok := exprs.Unary(operand); ok {
		return u.Op.String() == sign
	}
	if u, ok := exprs.Update(operand); ok && u.Prefix {
		return strings.HasPrefix(u.Op.String(), sign)
	}
	if lit, ok := exprs.Literal(operand); ok {
		return strings.HasPrefix(lit.Raw, sign)
	}
	return false
}

func (p *printer) printBinary(d *ast.ExprBinaryData) {
	pr := binaryPrec(d.Op)
	leftMin, rightMin := pr, pr+1
	if d.Op == ast.BinaryExp {
		// правоассоциативный; унарный слева недопустим: (-a) ** b
		leftMin, rightMin = precPostfix, precExp
	}
	p.printOperand(d.Left, leftMin, p.mixesCoalesce(d.Op, d.Left))
	p.writer.WriteString(" " + d.Op.String() + " ")
	p.printOperand(d.Right, rightMin, p.mixesCoalesce(d.Op, d.Right))
}

// mixesCoalesce reports an operand that cannot share a level with op
// without parentheses: `??` next to `||` or `&&`.
func (p *printer) mixesCoalesce(op ast.BinaryOp, operand ast.ExprID) bool {
	child, ok := p.builder.Exprs.Binary(operand)
	if !ok {
		return false
	}
	logical := func(o ast.BinaryOp) bool { return o == ast.BinaryLogicalAnd || o == ast.BinaryLogicalOr }
	return (op == ast.BinaryCoalesce && logical(child.Op)) || (logical(op) && child.Op == ast.BinaryCoalesce)
}

func (p *printer) printArgs(args []ast.ExprID) {
	p.writer.WriteString("(")
	for i, arg := range args {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		p.printExpr(arg, precAssign)
	}
	p.writer.WriteString(")")
}

func (p *printer) printTemplate(d *ast.ExprTemplateData) {
	w := p.writer
	if d.Tag != ast.NoExprID {
		p.printExpr(d.Tag, precCall)
	}
	if len(d.Quasis) != len(d.Exprs)+1 {
		p.fail(source.Span{}, "template with %d quasis and %d substitutions", len(d.Quasis), len(d.Exprs))
	}
	w.WriteString("`")
	for i, q := range d.Quasis {
		w.WriteString(q)
		if i < len(d.Exprs) {
			w.WriteString("${")
			p.printExpr(d.Exprs[i], precSeq)
			w.WriteString("}")
		}
	}
	w.WriteString("`")
}

func (p *printer) printArray(d *ast.ExprArrayData) {
	w := p.writer
	w.WriteString("[")
	for i, el := range d.Elems {
		if i > 0 {
			w.WriteString(", ")
		}
		if el == ast.NoExprID {
			continue
		}
		p.printExpr(el, precAssign)
	}
	if n := len(d.Elems); n > 0 && d.Elems[n-1] == ast.NoExprID {
		// последняя дырка теряется без завершающей запятой
		w.WriteString(",")
	}
	w.WriteString("]")
}

// printObject prints plain objects on one line; objects with methods or
// accessors get one property per line.
func (p *printer) printObject(d *ast.ExprObjectData) {
	w := p.writer
	if len(d.Props) == 0 {
		w.WriteString("{}")
		return
	}
	multiline := false
	for _, prop := range d.Props {
		switch prop.Kind {
		case ast.PropMethod, ast.PropGetter, ast.PropSetter:
			multiline = true
		}
	}

	if !multiline {
		w.WriteString("{ ")
		for i := range d.Props {
			if i > 0 {
				w.WriteString(", ")
			}
			p.printProperty(&d.Props[i])
		}
		w.WriteString(" }")
		return
	}

	w.WriteString("{")
	w.Newline()
	w.IndentPush()
	for i := range d.Props {
		p.printProperty(&d.Props[i])
		if i < len(d.Props)-1 {
			w.WriteString(",")
		}
		w.Newline()
	}
	w.IndentPop()
	w.WriteString("}")
}

func (p *printer) printProperty(prop *ast.Property) {
	w := p.writer
	w.Mark(prop.Span)
	switch prop.Kind {
	case ast.PropInit:
		p.printKey(prop.Key, prop.Computed)
		w.WriteString(": ")
		p.printExpr(prop.Value, precAssign)
	case ast.PropShorthand:
		if prop.Value == ast.NoExprID || prop.Value == prop.Key {
			p.printKey(prop.Key, false)
			return
		}
		// `{a = 1}` в паттерне: Value = Assign(Key, default)
		p.printExpr(prop.Value, precAssign)
	case ast.PropMethod:
		p.printMethod("", prop.Key, prop.Computed, prop.Value)
	case ast.PropGetter:
		p.printMethod("get ", prop.Key, prop.Computed, prop.Value)
	case ast.PropSetter:
		p.printMethod("set ", prop.Key, prop.Computed, prop.Value)
	case ast.PropSpread:
		w.WriteString("...")
		p.printExpr(prop.Value, precAssign)
	default:
		p.fail(prop.Span, "unknown property kind %d", prop.Kind)
	}
}

func (p *printer) printKey(key ast.ExprID, computed bool) {
	if computed {
		p.writer.WriteString("[")
		p.printExpr(key, precAssign)
		p.writer.WriteString("]")
		return
	}
	p.printExpr(key, precPrimary)
}

// startsWith returns the kind of the leftmost primary expression of id,
// the node whose first token opens the printed text.
func (p *printer) startsWith(id ast.ExprID) ast.ExprKind {
	exprs := p.builder.Exprs
	for {
		ex := p.expr(id)
		switch ex.Kind {
		case ast.ExprBinary:
			id = need(exprs.Binary(id)).Left
		case ast.ExprAssign:
			id = need(exprs.Assign(id)).Left
		case ast.ExprConditional:
			id = need(exprs.Conditional(id)).Cond
		case ast.ExprSequence:
			d := need(exprs.Sequence(id))
			if len(d.Exprs) == 0 {
				return ex.Kind
			}
			id = d.Exprs[0]
		case ast.ExprCall:
			id = need(exprs.Call(id)).Callee
		case ast.ExprMember:
			id = need(exprs.Member(id)).Target
		case ast.ExprIndex:
			id = need(exprs.Index(id)).Target
		case ast.ExprTemplate:
			tag := need(exprs.Template(id)).Tag
			if tag == ast.NoExprID {
				return ex.Kind
			}
			id = tag
		case ast.ExprUpdate:
			d := need(exprs.Update(id))
			if d.Prefix {
				return ex.Kind
			}
			id = d.Operand
		default:
			return ex.Kind
		}
	}
}
