package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"hush/internal/ast"
	"hush/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Role     string          `json:"role,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

// FormatASTPretty печатает дерево с отступами ├─ / └─, по узлу на строку.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := BuildAST(builder, fileID)
	if err != nil {
		return err
	}

	header := "File"
	if f := fileOf(fs, root.Span); f != nil {
		header = f.FormatPath("auto", fs.BaseDir())
	}
	fmt.Fprintf(w, "%s (span: %s)\n", header, formatSpan(root.Span, fs))
	writePrettyChildren(w, root.Children, "", fs)
	return nil
}

func writePrettyChildren(w io.Writer, children []ASTNodeOutput, prefix string, fs *source.FileSet) {
	for i := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, nodeLabel(&children[i], fs))
		writePrettyChildren(w, children[i].Children, prefix+next, fs)
	}
}

func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	root, err := BuildAST(builder, fileID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

// FormatASTTree рисует дерево сверху вниз, см. renderTree.
func FormatASTTree(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := BuildAST(builder, fileID)
	if err != nil {
		return err
	}
	block := renderTree(buildFileTreeNode(&root, fs))
	for _, line := range block.lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// nodeLabel: `role: Type Kind "text" key=value (span: l:c-l:c)`.
func nodeLabel(n *ASTNodeOutput, fs *source.FileSet) string {
	var sb strings.Builder
	if n.Role != "" {
		sb.WriteString(n.Role + ": ")
	}
	sb.WriteString(n.Type)
	if n.Kind != "" {
		sb.WriteString(" " + n.Kind)
	}
	if n.Text != "" {
		fmt.Fprintf(&sb, " %q", n.Text)
	}
	keys := make([]string, 0, len(n.Fields))
	for k := range n.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, n.Fields[k])
	}
	if !n.Span.IsZero() {
		fmt.Fprintf(&sb, " (span: %s)", formatSpan(n.Span, fs))
	}
	return sb.String()
}

// formatSpan formats a source.Span into a string.
// If fs is non-nil, it resolves the span to start and end positions and returns "startLine:startCol-endLine:endCol".
// If fs is nil, it returns "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
