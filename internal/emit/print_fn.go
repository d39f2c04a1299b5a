package emit

import (
	"hush/internal/ast"
	"hush/internal/source"
)

func (p *printer) printFunction(fn *ast.ExprFunctionData) {
	w := p.writer
	if fn.Async {
		w.WriteString("async ")
	}
	w.WriteString("function")
	if fn.Generator {
		w.WriteString("*")
	}
	if fn.Name != source.NoStringID {
		w.WriteString(" ")
		w.Mark(fn.NameSpan)
		w.WriteString(p.name(fn.Name))
	}
	p.printParams(fn.Params)
	w.WriteString(" ")
	p.printBlock(fn.Body)
}

func (p *printer) printParams(params []ast.Param) {
	w := p.writer
	w.WriteString("(")
	for i, param := range params {
		if i > 0 {
			w.WriteString(", ")
		}
		p.printExpr(param.Pattern, precAssign)
	}
	w.WriteString(")")
}

func (p *printer) printArrow(fn *ast.ExprArrowData) {
	w := p.writer
	if fn.Async {
		w.WriteString("async ")
	}
	p.printParams(fn.Params)
	w.WriteString(" => ")
	if fn.Expr == ast.NoExprID {
		p.printBlock(fn.Body)
		return
	}
	// тело `{...}` прочиталось бы как блок
	p.printOperand(fn.Expr, precAssign, p.startsWith(fn.Expr) == ast.ExprObject)
}

// printMethod prints an object or class method; prefix is "get ", "set " or "".
func (p *printer) printMethod(prefix string, key ast.ExprID, computed bool, value ast.ExprID) {
	w := p.writer
	fn, ok := p.builder.Exprs.Function(value)
	if !ok || fn == nil {
		p.fail(p.expr(key).Span, "method without a function body")
	}
	w.WriteString(prefix)
	if fn.Async {
		w.WriteString("async ")
	}
	if fn.Generator {
		w.WriteString("*")
	}
	p.printKey(key, computed)
	p.printParams(fn.Params)
	w.WriteString(" ")
	p.printBlock(fn.Body)
}

func (p *printer) printClass(class *ast.ExprClassData) {
	w := p.writer
	w.WriteString("class")
	if class.Name != source.NoStringID {
		w.WriteString(" ")
		w.Mark(class.NameSpan)
		w.WriteString(p.name(class.Name))
	}
	if class.Super != ast.NoExprID {
		w.WriteString(" extends ")
		p.printExpr(class.Super, precNew)
	}
	w.WriteString(" {")
	if len(class.Members) == 0 {
		w.WriteString("}")
		return
	}
	w.Newline()
	w.IndentPush()
	for i := range class.Members {
		p.printClassMember(&class.Members[i])
		w.Newline()
	}
	w.IndentPop()
	w.WriteString("}")
}

func (p *printer) printClassMember(m *ast.ClassMember) {
	w := p.writer
	w.Mark(m.Span)
	if m.Static {
		w.WriteString("static ")
	}
	switch m.Kind {
	case ast.ClassMethod:
		p.printMethod("", m.Key, m.Computed, m.Value)
	case ast.ClassGetter:
		p.printMethod("get ", m.Key, m.Computed, m.Value)
	case ast.ClassSetter:
		p.printMethod("set ", m.Key, m.Computed, m.Value)
	case ast.ClassField:
		p.printKey(m.Key, m.Computed)
		if m.Value != ast.NoExprID {
			w.WriteString(" = ")
			p.printExpr(m.Value, precAssign)
		}
		w.WriteString(";")
	case ast.ClassStaticBlock:
		p.printBlock(m.Body)
	default:
		p.fail(m.Span, "unknown class member kind %d", m.Kind)
	}
}
