package ui

import "fmt"

// Status symbols prefixed to messages on stderr.
const (
	SymbolSuccess = "✓"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

func withSymbol(symbol, msg string) string {
	return symbol + " " + msg
}

// Success marks msg as done.
func Success(msg string) string { return withSymbol(SymbolSuccess, msg) }

func Successf(format string, args ...interface{}) string {
	return Success(fmt.Sprintf(format, args...))
}

// Warning marks msg as a non-fatal problem.
func Warning(msg string) string { return withSymbol(SymbolWarning, msg) }

func Warningf(format string, args ...interface{}) string {
	return Warning(fmt.Sprintf(format, args...))
}

func Infof(format string, args ...interface{}) string {
	return withSymbol(SymbolInfo, fmt.Sprintf(format, args...))
}

// Header renders a bold section title.
func Header(msg string) string { return Bold.Render(msg) }

// FilePath and Link use the accent color so they stand out in status lines.
func FilePath(path string) string { return Accent.Render(path) }

func Link(link string) string { return Accent.Render(link) }

// Hint renders secondary text.
func Hint(msg string) string { return Muted.Render(msg) }

// Count returns a count with the right noun, e.g. "3 links".
func Count(n int, singular, plural string) string {
	noun := plural
	if n == 1 {
		noun = singular
	}
	return fmt.Sprintf("%d %s", n, noun)
}
