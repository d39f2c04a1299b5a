package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"fortio.org/safecast"
)

// nextBase hands out process-wide offset bases. It only grows.
var nextBase atomic.Uint64

// reserveBase claims n+1 offsets so that even empty units get distinct bases.
func reserveBase(n int) uint64 {
	size, err := safecast.Conv[uint64](n)
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return nextBase.Add(size+1) - (size + 1)
}

// FileSet is an append-only registry of source units.
// Add and the lookup methods are safe for concurrent use.
type FileSet struct {
	mu      sync.RWMutex
	files   []*File
	index   map[string]FileID // name -> latest id
	baseDir string            // базовая директория для относительных путей
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		index: make(map[string]FileID),
	}
}

// NewFileSetWithBase создаёт FileSet с заданной базовой директорией.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir возвращает базовую директорию или текущую рабочую, если она не задана.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		return workingDir()
	}
	return fileSet.baseDir
}

// Add registers content under name and returns a fresh FileID.
// An empty name registers an anonymous unit. Add never fails and never
// rewrites content; registering the same name twice yields two units.
func (fileSet *FileSet) Add(name string, content []byte, flags FileFlags) FileID {
	normalized := normalizePath(name)
	if normalized == "" {
		flags |= FileAnonymous
	}
	f := &File{
		Name:    normalized,
		Content: content,
		Base:    reserveBase(len(content)),
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	}

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	f.ID = FileID(mustU32(len(fileSet.files) + 1))
	fileSet.files = append(fileSet.files, f)
	if normalized != "" {
		fileSet.index[normalized] = f.ID
	}
	return f.ID
}

// AddVirtual adds an in-memory unit with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Load reads a file from disk and registers it as is.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return NoFileID, err
	}
	flags := FileFlags(0)
	if bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}) {
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		flags |= FileHasCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// Get returns the unit for id, or nil when id is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	if id == NoFileID || int(id) > len(fileSet.files) {
		return nil
	}
	return fileSet.files[id-1]
}

// GetLatest returns the most recent FileID registered under path.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Len returns the number of registered units.
func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.LineCol(span.Start), f.LineCol(span.End)
}

// LineCol resolves a byte offset inside the unit.
func (f *File) LineCol(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Global maps a unit-local offset into the process-wide offset space.
func (f *File) Global(off uint32) uint64 {
	return f.Base + uint64(off)
}

// DisplayName returns the name used in diagnostics and source maps.
func (f *File) DisplayName() string {
	if f.Flags&FileAnonymous != 0 {
		return AnonymousName
	}
	return f.Name
}

// GetLine возвращает строку с заданным номером (1-based) без перевода строки.
// Если строки нет, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || int(lineNum) > len(f.LineIdx) {
		return ""
	}
	start := f.LineIdx[lineNum-1]
	end := mustU32(len(f.Content))
	if int(lineNum) < len(f.LineIdx) {
		end = f.LineIdx[lineNum] - 1
	}
	if start > end {
		return ""
	}
	line := f.Content[start:end]
	line = bytes.TrimSuffix(line, []byte{'\r'})
	return string(line)
}

// FormatPath форматирует путь к файлу в зависимости от режима.
// mode: "absolute", "relative", "basename", "auto"
func (f *File) FormatPath(mode, baseDir string) string {
	if f.Flags&FileAnonymous != 0 {
		return AnonymousName
	}
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Name); err == nil {
			return abs
		}
	case "relative":
		if baseDir == "" {
			baseDir = workingDir()
		}
		if rel, err := RelativePath(f.Name, baseDir); err == nil {
			return rel
		}
	case "basename":
		return BaseName(f.Name)
	case "auto":
		if len(f.Name) >= 40 && filepath.IsAbs(f.Name) {
			return BaseName(f.Name)
		}
	}
	return f.Name
}
