package compiler

import "github.com/bep/godartsass/v2"

var (
	ParseDiagnostic  = parseDiagnostic
	SourceSyntax     = sourceSyntax
	SassCompileError = sassCompileError
	FileURL          = fileURL
	ExtractInlineMap = extractInlineMap
)

// SassError builds a dart-sass failure pointing at offset/column of url.
func SassError(msg, url, context string, offset, column int) godartsass.SassError {
	var e godartsass.SassError
	e.Message = msg
	e.Span.Url = url
	e.Span.Context = context
	e.Span.Start.Offset = offset
	e.Span.Start.Column = column
	return e
}
