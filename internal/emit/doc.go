// Package emit prints a JavaScript syntax tree back to source text and can
// record a v3 source map while doing so.
//
// Назначение: сериализация дерева после rewrite-прохода.
// Не делает: сохранения комментариев и исходного форматирования; вывод
// канонический (4 пробела, точки с запятой, скобки по приоритетам).
// Зависимости: internal/ast, internal/source.
package emit
