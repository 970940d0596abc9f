package diag

import (
	"latch/internal/source"
)

// Note attaches a secondary span with context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a structured finding produced by the semantic core. The core
// only constructs these records; rendering belongs to the driver layer.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
