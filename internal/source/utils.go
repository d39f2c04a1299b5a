package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fortio.org/safecast"
)

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 1, 1+len(content)/32)
	for i, b := range content {
		if b == '\n' {
			out = append(out, mustU32(i+1))
		}
	}
	return out
}

// toLineCol resolves a byte offset against a line-start index.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	// первая строка, чьё начало > off; нужная строка перед ней
	i := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] > off })
	line := i - 1
	if line < 0 {
		line = 0
	}
	return LineCol{Line: mustU32(line + 1), Col: off - lineIdx[line] + 1}
}

func normalizePath(p string) string {
	if p == "" {
		return ""
	}
	return filepath.ToSlash(filepath.Clean(p))
}

func mustU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}

// AbsolutePath returns the slash-normalized absolute form of p.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath returns p relative to baseDir. Paths that escape baseDir fall back to absolute.
func RelativePath(p, baseDir string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(abs), nil
	}
	return normalizePath(rel), nil
}

// BaseName returns the last element of p.
func BaseName(p string) string {
	return filepath.Base(p)
}

func workingDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}
