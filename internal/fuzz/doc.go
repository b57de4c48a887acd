// Package fuzztests houses Go fuzz harnesses for the whilec pipeline
// (source -> lexer -> parser -> passes -> codegen). They guard against
// panics and hangs on arbitrary input and check that obfuscation keeps
// program behaviour.
//
// Назначение: прогонять произвольные байты через FileSet, лексер, парсер и
// весь конвейер с включёнными проходами.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
