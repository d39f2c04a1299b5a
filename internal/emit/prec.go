package emit

import (
	"fmt"

	"hush/internal/ast"
)

// Binding strength of an expression's outermost operator. An operand whose
// precedence is below the minimum its position requires gets parentheses.
type prec uint8

const (
	precSeq prec = iota
	precAssign
	precCond
	precCoalesce
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEq
	precRel
	precShift
	precAdd
	precMul
	precExp
	precUnary
	precPostfix
	precNew // new F без скобок
	precCall
	precPrimary
)

func binaryPrec(op ast.BinaryOp) prec {
	switch op {
	case ast.BinaryCoalesce:
		return precCoalesce
	case ast.BinaryLogicalOr:
		return precOr
	case ast.BinaryLogicalAnd:
		return precAnd
	case ast.BinaryBitOr:
		return precBitOr
	case ast.BinaryBitXor:
		return precBitXor
	case ast.BinaryBitAnd:
		return precBitAnd
	case ast.BinaryEq, ast.BinaryNotEq, ast.BinaryStrictEq, ast.BinaryStrictNotEq:
		return precEq
	case ast.BinaryLt, ast.BinaryGt, ast.BinaryLtEq, ast.BinaryGtEq, ast.BinaryIn, ast.BinaryInstanceof:
		return precRel
	case ast.BinaryShl, ast.BinaryShr, ast.BinaryUShr:
		return precShift
	case ast.BinaryAdd, ast.BinarySub:
		return precAdd
	case ast.BinaryMul, ast.BinaryDiv, ast.BinaryMod:
		return precMul
	case ast.BinaryExp:
		return precExp
	default:
		return precSeq
	}
}

// exprPrec returns the precedence of the node's outermost operator.
func (p *printer) exprPrec(id ast.ExprID) prec {
	ex := p.expr(id)
	switch ex.Kind {
	case ast.ExprSequence:
		return precSeq
	case ast.ExprAssign, ast.ExprArrow, ast.ExprYield, ast.ExprSpread:
		return precAssign
	case ast.ExprConditional:
		return precCond
	case ast.ExprBinary:
		return binaryPrec(need(p.builder.Exprs.Binary(id)).Op)
	case ast.ExprUnary:
		return precUnary
	case ast.ExprUpdate:
		if need(p.builder.Exprs.Update(id)).Prefix {
			return precUnary
		}
		return precPostfix
	case ast.ExprNew:
		if need(p.builder.Exprs.Construct(id)).HasArgs {
			return precCall
		}
		return precNew
	case ast.ExprMember, ast.ExprIndex, ast.ExprCall, ast.ExprImportCall:
		return precCall
	case ast.ExprTemplate:
		if need(p.builder.Exprs.Template(id)).Tag != ast.NoExprID {
			return precCall
		}
		return precPrimary
	default:
		return precPrimary
	}
}

// need unwraps a payload accessor; a missing payload means the tree is broken.
func need[T any](d *T, ok bool) *T {
	if !ok || d == nil {
		var zero T
		panic(&Error{Msg: fmt.Sprintf("malformed node: no %T payload", zero)})
	}
	return d
}
