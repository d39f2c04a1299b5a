package parser

import (
	"strconv"
	"strings"

	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/source"
	"hush/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	var tok token.Token
	if p.back != nil {
		tok = *p.back
		p.back = nil
	} else {
		tok = p.lx.Next()
	}
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: возвращает лучший span для диагностики.
// На EOF указываем сразу после последнего съеденного токена.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
// note, если задан, дополняет диагностику.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string, note func(b *diag.ReportBuilder)) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.emitDiagnostic(code, diag.SevError, diagSpan, msg, note)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// expectClose: как expect, но с заметкой, указывающей на открывающий токен.
func (p *Parser) expectClose(k token.Kind, code diag.Code, msg string, open token.Token) (token.Token, bool) {
	return p.expect(k, code, msg, func(b *diag.ReportBuilder) {
		b.WithNote(open.Span, "unclosed '"+open.Text+"' opened here")
	})
}

// eat съедает токен, если он есть.
func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

// errUnexpected: стандартная ошибка про лишний токен.
func (p *Parser) errUnexpected(context string) {
	tok := p.peek()
	what := "'" + tok.Text + "'"
	if tok.Kind == token.EOF {
		what = "end of input"
	}
	p.err(diag.SynUnexpectedToken, "unexpected "+what+" "+context)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	return p.emitDiagnostic(code, sev, sp, msg, nil)
}

func (p *Parser) emitDiagnostic(code diag.Code, sev diag.Severity, sp source.Span, msg string, note func(b *diag.ReportBuilder)) bool {
	if p.opts.Reporter == nil {
		return false // нет reporter - ничего не записали
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() {
		if !p.aborted {
			p.aborted = true
			diag.ReportError(p.opts.Reporter, diag.SynTooManyErrors, sp, "too many errors, stopping").Emit()
		}
		return false // достигли максимального количества ошибок
	}
	b := diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg)
	if note != nil {
		note(b)
	}
	b.Emit()
	return true
}

// consumeSemicolon реализует автоматическую вставку ';': точка с запятой
// необязательна перед '}', в конце файла и после перевода строки.
func (p *Parser) consumeSemicolon() bool {
	if _, ok := p.eat(token.Semicolon); ok {
		return true
	}
	tok := p.peek()
	if tok.Kind == token.RBrace || tok.Kind == token.EOF || tok.NewlineBefore() {
		return true
	}
	p.emitDiagnostic(diag.SynExpectSemicolon, diag.SevError, tok.Span, "expected ';' or a line break before '"+tok.Text+"'", func(b *diag.ReportBuilder) {
		end := source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
		b.WithNote(end, "previous statement ends here")
	})
	return false
}

// intern: имя идентификатора с раскрытыми \u escape-последовательностями.
func (p *Parser) intern(tok token.Token) source.StringID {
	return p.arenas.Strings.Intern(identName(tok.Text))
}

// internPrivate: имя #private без ведущей '#'.
func (p *Parser) internPrivate(tok token.Token) source.StringID {
	return p.arenas.Strings.Intern(identName(strings.TrimPrefix(tok.Text, "#")))
}

func identName(raw string) string {
	if !strings.Contains(raw, `\u`) {
		return raw
	}
	var sb strings.Builder
	for i := 0; i < len(raw); {
		if raw[i] != '\\' || i+1 >= len(raw) || raw[i+1] != 'u' {
			sb.WriteByte(raw[i])
			i++
			continue
		}
		i += 2
		var hex string
		if i < len(raw) && raw[i] == '{' {
			end := strings.IndexByte(raw[i:], '}')
			if end < 0 {
				return raw
			}
			hex = raw[i+1 : i+end]
			i += end + 1
		} else {
			if i+4 > len(raw) {
				return raw
			}
			hex = raw[i : i+4]
			i += 4
		}
		r, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return raw
		}
		sb.WriteRune(rune(r))
	}
	return sb.String()
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.arenas.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}

func (p *Parser) stmtSpan(id ast.StmtID) source.Span {
	if s := p.arenas.Stmts.Get(id); s != nil {
		return s.Span
	}
	return source.Span{}
}

// spanFrom: от начала start до конца последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}
