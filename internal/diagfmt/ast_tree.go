package diagfmt

import (
	"strings"

	"hush/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

type treeBlock struct {
	lines []string
	width int
	root  int
}

// buildFileTreeNode converts the output tree into treeNodes. Labels are kept
// short (role, kind, text) since renderTree lays siblings side by side.
func buildFileTreeNode(root *ASTNodeOutput, fs *source.FileSet) *treeNode {
	label := "File"
	if f := fileOf(fs, root.Span); f != nil {
		label = f.FormatPath("basename", "")
	}
	node := &treeNode{label: label}
	for i := range root.Children {
		node.children = append(node.children, buildTreeNode(&root.Children[i]))
	}
	return node
}

func buildTreeNode(n *ASTNodeOutput) *treeNode {
	parts := make([]string, 0, 3)
	if n.Role != "" {
		parts = append(parts, n.Role+":")
	}
	if n.Kind != "" {
		parts = append(parts, n.Kind)
	} else {
		parts = append(parts, n.Type)
	}
	if n.Text != "" {
		parts = append(parts, n.Text)
	}
	node := &treeNode{label: strings.Join(parts, " ")}
	for i := range n.Children {
		node.children = append(node.children, buildTreeNode(&n.Children[i]))
	}
	return node
}

// renderTree converts a treeNode into a treeBlock containing an ASCII-art representation.
//
// The returned treeBlock.lines is a slice of strings representing the rendered lines of
// the node and its descendants arranged as a tree with connector characters. The block's
// width is the horizontal extent of the rendered lines and root is the column index of
// the root node's vertical connector within those lines.
func renderTree(node *treeNode) treeBlock {
	label := node.label
	labelWidth := len(label)

	if len(node.children) == 0 {
		return treeBlock{
			lines: []string{label},
			width: labelWidth,
			root:  labelWidth / 2,
		}
	}

	childBlocks := make([]treeBlock, len(node.children))
	maxChildHeight := 0
	for i, child := range node.children {
		childBlocks[i] = renderTree(child)
		if len(childBlocks[i].lines) > maxChildHeight {
			maxChildHeight = len(childBlocks[i].lines)
		}
	}

	const spacing = 3

	positions := make([]int, len(childBlocks))
	totalWidth := 0
	for i, block := range childBlocks {
		positions[i] = totalWidth + block.root
		totalWidth += block.width
		if i != len(childBlocks)-1 {
			totalWidth += spacing
		}
	}

	childrenCenter := (positions[0] + positions[len(positions)-1]) / 2
	rootPos := labelWidth / 2
	shift := childrenCenter - rootPos

	childPrefix := 0
	if shift < 0 {
		childPrefix = -shift
		for i := range positions {
			positions[i] += childPrefix
		}
		totalWidth += childPrefix
		shift = 0
		rootPos = labelWidth / 2
	} else {
		rootPos += shift
	}

	width := totalWidth
	rootLine := label
	if shift > 0 {
		rootLine = strings.Repeat(" ", shift) + label
	}
	if len(rootLine) < width {
		rootLine += strings.Repeat(" ", width-len(rootLine))
	} else if len(rootLine) > width {
		width = len(rootLine)
		for i := range positions {
			if positions[i] >= width {
				width = positions[i] + 1
			}
		}
		if len(rootLine) < width {
			rootLine += strings.Repeat(" ", width-len(rootLine))
		}
	}

	connector := make([]byte, width)
	for i := range connector {
		connector[i] = ' '
	}
	if rootPos >= width {
		needed := rootPos - width + 1
		rootLine += strings.Repeat(" ", needed)
		connector = append(connector, make([]byte, needed)...)
		for i := width; i < len(connector); i++ {
			connector[i] = ' '
		}
		width = len(connector)
	}
	connector[rootPos] = '|'
	for _, pos := range positions {
		switch {
		case pos < rootPos:
			connector[pos] = '/'
		case pos > rootPos:
			connector[pos] = '\\'
		default:
			connector[pos] = '|'
		}
	}
	connectorLine := string(connector)

	childLines := make([]string, maxChildHeight)
	for row := range maxChildHeight {
		var sb strings.Builder
		if childPrefix > 0 {
			sb.WriteString(strings.Repeat(" ", childPrefix))
		}
		for i, block := range childBlocks {
			line := ""
			if row < len(block.lines) {
				line = block.lines[row]
			}
			if len(line) < block.width {
				line += strings.Repeat(" ", block.width-len(line))
			}
			sb.WriteString(line)
			if i != len(childBlocks)-1 {
				sb.WriteString(strings.Repeat(" ", spacing))
			}
		}
		rowStr := sb.String()
		if len(rowStr) < width {
			rowStr += strings.Repeat(" ", width-len(rowStr))
		}
		childLines[row] = rowStr
	}

	lines := make([]string, 0, 2+len(childLines))
	lines = append(lines, rootLine, connectorLine)
	lines = append(lines, childLines...)

	return treeBlock{
		lines: lines,
		width: width,
		root:  rootPos,
	}
}
