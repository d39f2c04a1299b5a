package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"hush/internal/source"
	"hush/internal/token"
)

// TokenOutput is one token of `hush tokenize --format json`.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

// untilEOF отрезает всё после первого EOF.
func untilEOF(tokens []token.Token) []token.Token {
	for i, tok := range tokens {
		if tok.Kind == token.EOF {
			return tokens[:i+1]
		}
	}
	return tokens
}

func leadingKinds(tok token.Token) []string {
	if len(tok.Leading) == 0 {
		return nil
	}
	kinds := make([]string, len(tok.Leading))
	for i, tr := range tok.Leading {
		kinds[i] = tr.Kind.String()
	}
	return kinds
}

// FormatTokensPretty prints one token per line with its resolved range.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	var line strings.Builder
	for i, tok := range untilEOF(tokens) {
		line.Reset()
		fmt.Fprintf(&line, "%3d: %-15s", i+1, tok.Kind)
		if tok.Text != "" {
			fmt.Fprintf(&line, " %q", tok.Text)
		}
		start, end := fs.Resolve(tok.Span)
		fmt.Fprintf(&line, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if kinds := leadingKinds(tok); kinds != nil {
			fmt.Fprintf(&line, " (leading: %s)", strings.Join(kinds, ", "))
		}
		line.WriteByte('\n')
		if _, err := io.WriteString(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes the tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	tokens = untilEOF(tokens)
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    tok.Span,
			Leading: leadingKinds(tok),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
