package ast

import (
	"hush/internal/source"
)

// Exprs manages allocation of expressions and their per-kind payloads.
type Exprs struct {
	Arena        *Arena[Expr]
	Idents       *Arena[ExprIdentData]
	Literals     *Arena[ExprLiteralData]
	PrivateNames *Arena[ExprPrivateNameData]
	Templates    *Arena[ExprTemplateData]
	Arrays       *Arena[ExprArrayData]
	Objects      *Arena[ExprObjectData]
	Functions    *Arena[ExprFunctionData]
	Arrows       *Arena[ExprArrowData]
	Classes      *Arena[ExprClassData]
	Members      *Arena[ExprMemberData]
	Indices      *Arena[ExprIndexData]
	Calls        *Arena[ExprCallData]
	News         *Arena[ExprNewData]
	Unaries      *Arena[ExprUnaryData]
	Updates      *Arena[ExprUpdateData]
	Binaries     *Arena[ExprBinaryData]
	Assigns      *Arena[ExprAssignData]
	Conditionals *Arena[ExprConditionalData]
	Sequences    *Arena[ExprSequenceData]
	Spreads      *Arena[ExprSpreadData]
	Yields       *Arena[ExprYieldData]
	Parens       *Arena[ExprParenData]
	Metas        *Arena[ExprMetaData]
	ImportCalls  *Arena[ExprImportCallData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
// Rare kinds get a smaller initial capacity.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	rare := capHint/16 + 1
	return &Exprs{
		Arena:        NewArena[Expr](capHint),
		Idents:       NewArena[ExprIdentData](capHint),
		Literals:     NewArena[ExprLiteralData](capHint),
		PrivateNames: NewArena[ExprPrivateNameData](rare),
		Templates:    NewArena[ExprTemplateData](rare),
		Arrays:       NewArena[ExprArrayData](rare),
		Objects:      NewArena[ExprObjectData](rare),
		Functions:    NewArena[ExprFunctionData](rare),
		Arrows:       NewArena[ExprArrowData](rare),
		Classes:      NewArena[ExprClassData](rare),
		Members:      NewArena[ExprMemberData](capHint),
		Indices:      NewArena[ExprIndexData](rare),
		Calls:        NewArena[ExprCallData](capHint),
		News:         NewArena[ExprNewData](rare),
		Unaries:      NewArena[ExprUnaryData](rare),
		Updates:      NewArena[ExprUpdateData](rare),
		Binaries:     NewArena[ExprBinaryData](capHint),
		Assigns:      NewArena[ExprAssignData](rare),
		Conditionals: NewArena[ExprConditionalData](rare),
		Sequences:    NewArena[ExprSequenceData](rare),
		Spreads:      NewArena[ExprSpreadData](rare),
		Yields:       NewArena[ExprYieldData](rare),
		Parens:       NewArena[ExprParenData](rare),
		Metas:        NewArena[ExprMetaData](rare),
		ImportCalls:  NewArena[ExprImportCallData](rare),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewThis creates a `this` expression.
func (e *Exprs) NewThis(span source.Span) ExprID {
	return e.new(ExprThis, span, NoPayloadID)
}

// NewSuper creates a `super` expression.
func (e *Exprs) NewSuper(span source.Span) ExprID {
	return e.new(ExprSuper, span, NoPayloadID)
}

// Replace overwrites the node in slot id with a new kind and payload.
// The id and the span stay the same, so parents keep pointing at it.
func (e *Exprs) Replace(id ExprID, kind ExprKind, payload PayloadID) {
	expr := e.Get(id)
	if expr == nil {
		return
	}
	expr.Kind = kind
	expr.Payload = payload
}

// ReplaceWithVoidZero turns the node in slot id into `void 0`. The new
// literal and the unary both carry the span of the replaced node.
func (e *Exprs) ReplaceWithVoidZero(id ExprID) {
	expr := e.Get(id)
	if expr == nil {
		return
	}
	zero := e.NewLiteral(expr.Span, LitNumber, "0")
	payload := e.Unaries.Allocate(ExprUnaryData{Op: UnaryVoid, Operand: zero})
	e.Replace(id, ExprUnary, PayloadID(payload))
}

// IsVoidZero reports whether id is the expression `void 0`.
func (e *Exprs) IsVoidZero(id ExprID) bool {
	un, ok := e.Unary(id)
	if !ok || un.Op != UnaryVoid {
		return false
	}
	lit, ok := e.Literal(un.Operand)
	return ok && lit.Kind == LitNumber && lit.Raw == "0"
}

// NewIdent creates an ident expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

// Ident returns the ident data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

// NewLiteral creates a literal expression.
func (e *Exprs) NewLiteral(span source.Span, kind LitKind, raw string) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Kind: kind, Raw: raw})
	return e.new(ExprLit, span, PayloadID(payload))
}

// Literal returns the literal data for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

// NewPrivateName creates a private name expression.
func (e *Exprs) NewPrivateName(span source.Span, name source.StringID) ExprID {
	payload := e.PrivateNames.Allocate(ExprPrivateNameData{Name: name})
	return e.new(ExprPrivateName, span, PayloadID(payload))
}

// PrivateName returns the private name data for the given expression ID.
func (e *Exprs) PrivateName(id ExprID) (*ExprPrivateNameData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprPrivateName {
		return nil, false
	}
	return e.PrivateNames.Get(uint32(expr.Payload)), true
}

// NewTemplate creates a template expression.
func (e *Exprs) NewTemplate(span source.Span, data ExprTemplateData) ExprID {
	payload := e.Templates.Allocate(data)
	return e.new(ExprTemplate, span, PayloadID(payload))
}

// Template returns the template data for the given expression ID.
func (e *Exprs) Template(id ExprID) (*ExprTemplateData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTemplate {
		return nil, false
	}
	return e.Templates.Get(uint32(expr.Payload)), true
}

// NewArray creates an array expression.
func (e *Exprs) NewArray(span source.Span, elems []ExprID, trailingComma bool) ExprID {
	payload := e.Arrays.Allocate(ExprArrayData{Elems: elems, TrailingComma: trailingComma})
	return e.new(ExprArray, span, PayloadID(payload))
}

// Array returns the array data for the given expression ID.
func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprArray {
		return nil, false
	}
	return e.Arrays.Get(uint32(expr.Payload)), true
}

// NewObject creates an object expression.
func (e *Exprs) NewObject(span source.Span, props []Property) ExprID {
	payload := e.Objects.Allocate(ExprObjectData{Props: props})
	return e.new(ExprObject, span, PayloadID(payload))
}

// Object returns the object data for the given expression ID.
func (e *Exprs) Object(id ExprID) (*ExprObjectData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprObject {
		return nil, false
	}
	return e.Objects.Get(uint32(expr.Payload)), true
}

// NewFunction creates a function expression.
func (e *Exprs) NewFunction(span source.Span, data ExprFunctionData) ExprID {
	payload := e.Functions.Allocate(data)
	return e.new(ExprFunction, span, PayloadID(payload))
}

// Function returns the function data for the given expression ID.
func (e *Exprs) Function(id ExprID) (*ExprFunctionData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprFunction {
		return nil, false
	}
	return e.Functions.Get(uint32(expr.Payload)), true
}

// NewArrow creates an arrow expression.
func (e *Exprs) NewArrow(span source.Span, data ExprArrowData) ExprID {
	payload := e.Arrows.Allocate(data)
	return e.new(ExprArrow, span, PayloadID(payload))
}

// Arrow returns the arrow data for the given expression ID.
func (e *Exprs) Arrow(id ExprID) (*ExprArrowData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprArrow {
		return nil, false
	}
	return e.Arrows.Get(uint32(expr.Payload)), true
}

// NewClass creates a class expression.
func (e *Exprs) NewClass(span source.Span, data ExprClassData) ExprID {
	payload := e.Classes.Allocate(data)
	return e.new(ExprClass, span, PayloadID(payload))
}

// Class returns the class data for the given expression ID.
func (e *Exprs) Class(id ExprID) (*ExprClassData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprClass {
		return nil, false
	}
	return e.Classes.Get(uint32(expr.Payload)), true
}

// NewMember creates a member expression.
func (e *Exprs) NewMember(span source.Span, data ExprMemberData) ExprID {
	payload := e.Members.Allocate(data)
	return e.new(ExprMember, span, PayloadID(payload))
}

// Member returns the member data for the given expression ID.
func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMember {
		return nil, false
	}
	return e.Members.Get(uint32(expr.Payload)), true
}

// NewIndex creates an index expression.
func (e *Exprs) NewIndex(span source.Span, target, index ExprID, optional bool) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Target: target, Index: index, Optional: optional})
	return e.new(ExprIndex, span, PayloadID(payload))
}

// Index returns the index data for the given expression ID.
func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(expr.Payload)), true
}

// NewCall creates a call expression.
func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID, optional bool) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: args, Optional: optional})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// NewConstruct creates a `new` expression.
func (e *Exprs) NewConstruct(span source.Span, callee ExprID, args []ExprID, hasArgs bool) ExprID {
	payload := e.News.Allocate(ExprNewData{Callee: callee, Args: args, HasArgs: hasArgs})
	return e.new(ExprNew, span, PayloadID(payload))
}

// Construct returns the `new` data for the given expression ID.
func (e *Exprs) Construct(id ExprID) (*ExprNewData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprNew {
		return nil, false
	}
	return e.News.Get(uint32(expr.Payload)), true
}

// NewUnary creates a unary expression.
func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

// Unary returns the unary data for the given expression ID.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewUpdate creates an update expression.
func (e *Exprs) NewUpdate(span source.Span, op UpdateOp, prefix bool, operand ExprID) ExprID {
	payload := e.Updates.Allocate(ExprUpdateData{Op: op, Prefix: prefix, Operand: operand})
	return e.new(ExprUpdate, span, PayloadID(payload))
}

// Update returns the update data for the given expression ID.
func (e *Exprs) Update(id ExprID) (*ExprUpdateData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUpdate {
		return nil, false
	}
	return e.Updates.Get(uint32(expr.Payload)), true
}

// NewBinary creates a binary expression.
func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewAssign creates an assign expression.
func (e *Exprs) NewAssign(span source.Span, op AssignOp, left, right ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Op: op, Left: left, Right: right})
	return e.new(ExprAssign, span, PayloadID(payload))
}

// Assign returns the assign data for the given expression ID.
func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAssign {
		return nil, false
	}
	return e.Assigns.Get(uint32(expr.Payload)), true
}

// NewConditional creates a conditional expression.
func (e *Exprs) NewConditional(span source.Span, cond, then, els ExprID) ExprID {
	payload := e.Conditionals.Allocate(ExprConditionalData{Cond: cond, Then: then, Else: els})
	return e.new(ExprConditional, span, PayloadID(payload))
}

// Conditional returns the conditional data for the given expression ID.
func (e *Exprs) Conditional(id ExprID) (*ExprConditionalData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprConditional {
		return nil, false
	}
	return e.Conditionals.Get(uint32(expr.Payload)), true
}

// NewSequence creates a sequence expression.
func (e *Exprs) NewSequence(span source.Span, exprs []ExprID) ExprID {
	payload := e.Sequences.Allocate(ExprSequenceData{Exprs: exprs})
	return e.new(ExprSequence, span, PayloadID(payload))
}

// Sequence returns the sequence data for the given expression ID.
func (e *Exprs) Sequence(id ExprID) (*ExprSequenceData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSequence {
		return nil, false
	}
	return e.Sequences.Get(uint32(expr.Payload)), true
}

// NewSpread creates a spread expression.
func (e *Exprs) NewSpread(span source.Span, arg ExprID) ExprID {
	payload := e.Spreads.Allocate(ExprSpreadData{Arg: arg})
	return e.new(ExprSpread, span, PayloadID(payload))
}

// Spread returns the spread data for the given expression ID.
func (e *Exprs) Spread(id ExprID) (*ExprSpreadData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSpread {
		return nil, false
	}
	return e.Spreads.Get(uint32(expr.Payload)), true
}

// NewYield creates a yield expression.
func (e *Exprs) NewYield(span source.Span, arg ExprID, delegate bool) ExprID {
	payload := e.Yields.Allocate(ExprYieldData{Arg: arg, Delegate: delegate})
	return e.new(ExprYield, span, PayloadID(payload))
}

// Yield returns the yield data for the given expression ID.
func (e *Exprs) Yield(id ExprID) (*ExprYieldData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprYield {
		return nil, false
	}
	return e.Yields.Get(uint32(expr.Payload)), true
}

// NewParen creates a paren expression.
func (e *Exprs) NewParen(span source.Span, inner ExprID) ExprID {
	payload := e.Parens.Allocate(ExprParenData{Inner: inner})
	return e.new(ExprParen, span, PayloadID(payload))
}

// Paren returns the paren data for the given expression ID.
func (e *Exprs) Paren(id ExprID) (*ExprParenData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprParen {
		return nil, false
	}
	return e.Parens.Get(uint32(expr.Payload)), true
}

// NewMeta creates a meta expression.
func (e *Exprs) NewMeta(span source.Span, meta, prop source.StringID) ExprID {
	payload := e.Metas.Allocate(ExprMetaData{Meta: meta, Prop: prop})
	return e.new(ExprMeta, span, PayloadID(payload))
}

// Meta returns the meta data for the given expression ID.
func (e *Exprs) Meta(id ExprID) (*ExprMetaData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMeta {
		return nil, false
	}
	return e.Metas.Get(uint32(expr.Payload)), true
}

// NewImportCall creates an import call expression.
func (e *Exprs) NewImportCall(span source.Span, arg, options ExprID) ExprID {
	payload := e.ImportCalls.Allocate(ExprImportCallData{Arg: arg, Options: options})
	return e.new(ExprImportCall, span, PayloadID(payload))
}

// ImportCall returns the import call data for the given expression ID.
func (e *Exprs) ImportCall(id ExprID) (*ExprImportCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprImportCall {
		return nil, false
	}
	return e.ImportCalls.Get(uint32(expr.Payload)), true
}
