package driver

import (
	"fortio.org/safecast"

	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/lexer"
	"hush/internal/parser"
	"hush/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse loads filePath and parses it without rewriting. Syntax errors end
// up in Bag; only I/O failures are returned as errors.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	return parseFile(fs, fs.Get(fileID), maxDiagnostics)
}

// ParseSource is Parse for in-memory input such as stdin.
func ParseSource(name string, content []byte, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	return parseFile(fs, fs.Get(fs.AddVirtual(name, content)), maxDiagnostics)
}

func parseFile(fs *source.FileSet, file *source.File, maxDiagnostics int) (*ParseResult, error) {
	bagMax, err := safecast.Conv[uint16](maxDiagnostics)
	if err != nil {
		return nil, err
	}
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(bagMax)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.HintsFor(len(file.Content)))

	opts := parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	}
	result := parser.ParseFile(fs, lx, builder, opts)

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  result.File,
		Bag:     bag,
	}, nil
}
