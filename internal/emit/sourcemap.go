package emit

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"hush/internal/source"
)

// SourceMap is a revision 3 source map for one emitted unit.
type SourceMap struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

type segment struct {
	genLine, genCol int
	srcLine, srcCol int
}

// mapBuilder collects segments in generated order; all of them point into sf.
type mapBuilder struct {
	sf   *source.File
	segs []segment
}

func newMapBuilder(sf *source.File) *mapBuilder {
	return &mapBuilder{sf: sf}
}

func (m *mapBuilder) add(genLine, genCol int, sp source.Span) {
	if sp.File != m.sf.ID {
		return
	}
	lc := m.sf.LineCol(sp.Start)
	seg := segment{
		genLine: genLine,
		genCol:  genCol,
		srcLine: int(lc.Line) - 1,
		srcCol:  m.utf16Col(lc),
	}
	if n := len(m.segs); n > 0 {
		last := m.segs[n-1]
		if last.genLine == seg.genLine && last.genCol == seg.genCol {
			// внешний узел уже отмечен в этой позиции
			return
		}
	}
	m.segs = append(m.segs, seg)
}

// utf16Col converts a 1-based byte column into a 0-based UTF-16 column.
func (m *mapBuilder) utf16Col(lc source.LineCol) int {
	line := m.sf.GetLine(lc.Line)
	limit := min(int(lc.Col)-1, len(line))
	col := 0
	for i := 0; i < limit; {
		r, size := utf8.DecodeRuneInString(line[i:])
		col += utf16Len(r)
		i += size
	}
	return col
}

func (m *mapBuilder) build(file string) *SourceMap {
	return &SourceMap{
		Version:        3,
		File:           file,
		Sources:        []string{m.sf.DisplayName()},
		SourcesContent: []string{string(m.sf.Content)},
		Names:          []string{},
		Mappings:       m.mappings(),
	}
}

// mappings encodes the segments: lines separated by ';', segments by ',',
// every field a base64 VLQ delta against the previous segment.
func (m *mapBuilder) mappings() string {
	var sb strings.Builder
	line := 0
	prevGenCol, prevSrcLine, prevSrcCol := 0, 0, 0
	first := true
	for _, seg := range m.segs {
		for line < seg.genLine {
			sb.WriteByte(';')
			line++
			prevGenCol = 0
			first = true
		}
		if !first {
			sb.WriteByte(',')
		}
		first = false
		writeVLQ(&sb, seg.genCol-prevGenCol)
		writeVLQ(&sb, 0) // единственный source
		writeVLQ(&sb, seg.srcLine-prevSrcLine)
		writeVLQ(&sb, seg.srcCol-prevSrcCol)
		prevGenCol, prevSrcLine, prevSrcCol = seg.genCol, seg.srcLine, seg.srcCol
	}
	return sb.String()
}

const base64Digits = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

func writeVLQ(sb *strings.Builder, v int) {
	u := v << 1
	if v < 0 {
		u = (-v << 1) | 1
	}
	for {
		digit := u & 0x1f
		u >>= 5
		if u > 0 {
			digit |= 0x20
		}
		sb.WriteByte(base64Digits[digit])
		if u == 0 {
			return
		}
	}
}

// Marshal returns the JSON form of the map.
func (sm *SourceMap) Marshal() ([]byte, error) {
	return json.Marshal(sm)
}
