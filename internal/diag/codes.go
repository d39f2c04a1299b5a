package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedTemplate     Code = 1005
	LexUnterminatedRegExp       Code = 1006
	LexBadEscape                Code = 1007

	// Синтаксические
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynExpectExpression    Code = 2002
	SynExpectIdentifier    Code = 2003
	SynExpectSemicolon     Code = 2004
	SynUnclosedParen       Code = 2005
	SynUnclosedBrace       Code = 2006
	SynUnclosedBracket     Code = 2007
	SynInvalidAssignTarget Code = 2008
	SynInvalidArrowParams  Code = 2009
	SynIllegalBreak        Code = 2010
	SynIllegalReturn       Code = 2011
	SynMissingInitializer  Code = 2012
	SynTooManyErrors       Code = 2013

	// Переписывание
	RewriteInfo    Code = 3000
	RewriteApplied Code = 3001
	RewriteSkipped Code = 3002

	// Эмиттер
	EmitInfo        Code = 4000
	EmitInvalidNode Code = 4001
	EmitSourceMap   Code = 4002

	// Граница (сериализация результата)
	BoundaryInfo      Code = 5000
	BoundarySerialize Code = 5001

	// Ввод-вывод CLI
	IOInfo      Code = 6000
	IOLoadError Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		LexUnterminatedTemplate:     "Unterminated template literal",
		LexUnterminatedRegExp:       "Unterminated regular expression",
		LexBadEscape:                "Invalid escape sequence",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectExpression:         "Expected expression",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectSemicolon:          "Expected semicolon",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBrace:            "Unclosed brace",
		SynUnclosedBracket:          "Unclosed bracket",
		SynInvalidAssignTarget:      "Invalid assignment target",
		SynInvalidArrowParams:       "Invalid arrow function parameters",
		SynIllegalBreak:             "Illegal break or continue",
		SynIllegalReturn:            "Illegal return",
		SynMissingInitializer:       "Missing initializer in const declaration",
		SynTooManyErrors:            "Too many errors",
		RewriteInfo:                 "Rewrite information",
		RewriteApplied:              "Member access rewritten",
		RewriteSkipped:              "Rewrite skipped",
		EmitInfo:                    "Emitter information",
		EmitInvalidNode:             "Invalid syntax tree node",
		EmitSourceMap:               "Source map generation failed",
		BoundaryInfo:                "Boundary information",
		BoundarySerialize:           "Failed to serialize output",
		IOInfo:                      "I/O information",
		IOLoadError:                 "Failed to load input file",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RWR%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("EMT%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("BND%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
