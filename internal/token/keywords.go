package token

var keywords = map[string]Kind{
	"break":      KwBreak,
	"case":       KwCase,
	"catch":      KwCatch,
	"class":      KwClass,
	"const":      KwConst,
	"continue":   KwContinue,
	"debugger":   KwDebugger,
	"default":    KwDefault,
	"delete":     KwDelete,
	"do":         KwDo,
	"else":       KwElse,
	"export":     KwExport,
	"extends":    KwExtends,
	"finally":    KwFinally,
	"for":        KwFor,
	"function":   KwFunction,
	"if":         KwIf,
	"import":     KwImport,
	"in":         KwIn,
	"instanceof": KwInstanceof,
	"new":        KwNew,
	"return":     KwReturn,
	"super":      KwSuper,
	"switch":     KwSwitch,
	"this":       KwThis,
	"throw":      KwThrow,
	"try":        KwTry,
	"typeof":     KwTypeof,
	"var":        KwVar,
	"void":       KwVoid,
	"while":      KwWhile,
	"with":       KwWith,
	"true":       KwTrue,
	"false":      KwFalse,
	"null":       KwNull,
}

// LookupKeyword возвращает тип ключевого слова, если ident зарезервирован.
// Контекстные слова (let, async, of, ...) не входят в таблицу.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
