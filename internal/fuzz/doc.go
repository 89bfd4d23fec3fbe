// Package fuzztests houses Go fuzz harnesses that exercise the lu
// pipeline (source -> lexer -> parser -> analyzer -> lowering -> vm). Its
// goal is to guard against panics and hangs on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через все фазы.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
