package driver

import (
	"fortio.org/safecast"

	"hush/internal/diag"
	"hush/internal/lexer"
	"hush/internal/source"
	"hush/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bagMax, err := safecast.Conv[uint16](maxDiagnostics)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(bagMax)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	// Токенизация: собираем все токены до EOF. Регулярные выражения
	// без парсера не распознаются: `/` всегда оператор.
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
