package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"latch/internal/diag"
	"latch/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	pathColor    = color.New(color.Bold)
	caretColor   = color.New(color.FgGreen)
)

// I/O diagnostics can carry an empty span that points at no file.
func knownFile(fs *source.FileSet, span source.Span) bool {
	return int(span.File) < fs.Len() && span.End > 0
}

// Pretty formats diagnostics for humans. It walks bag.Items() (call
// bag.Sort() first for deterministic output) and prints, per diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline for the span, and the
// notes in the same layout when opts.ShowNotes is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printHeading(w, fs, d.Primary, d.Severity, d.Code, d.Message, opts)
		printContext(w, fs, d.Primary, opts)
		if !opts.ShowNotes {
			continue
		}
		for _, note := range d.Notes {
			if !knownFile(fs, note.Span) {
				fmt.Fprintf(w, "  note: %s\n", note.Msg)
				continue
			}
			start, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				displayPath(fs.Get(note.Span.File).Path, opts.PathMode), start.Line, start.Col, note.Msg)
			printContext(w, fs, note.Span, opts)
		}
	}
}

func printHeading(w io.Writer, fs *source.FileSet, span source.Span, sev diag.Severity, code diag.Code, msg string, opts PrettyOpts) {
	sevText := sev.String()
	if opts.Color {
		sevText = severityColor(sev).Sprint(sevText)
	}
	if !knownFile(fs, span) {
		fmt.Fprintf(w, "%s %s: %s\n", sevText, code.ID(), msg)
		return
	}

	start, _ := fs.Resolve(span)
	path := displayPath(fs.Get(span.File).Path, opts.PathMode)
	if opts.Color {
		path = pathColor.Sprint(path)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sevText, code.ID(), msg)
}

// printContext shows the first line the span touches with an underline.
func printContext(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	if !knownFile(fs, span) {
		return
	}
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	text, ok := lineText(f, start.Line)
	if !ok {
		return
	}

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	if rest := len(text) - int(start.Col-1); width > rest && rest > 0 {
		width = rest
	}

	underline := "^" + strings.Repeat("~", max(width-1, 0))
	if opts.Color {
		underline = caretColor.Sprint(underline)
	}
	fmt.Fprintf(w, "  %s\n", strings.TrimRight(text, "\n"))
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", int(start.Col-1)), underline)
}

func lineText(f *source.File, line uint32) (string, bool) {
	if line == 0 || int(line) > len(f.LineIdx) {
		return "", false
	}
	lo := f.LineIdx[line-1]
	hi := uint32(len(f.Content))
	if int(line) < len(f.LineIdx) {
		hi = f.LineIdx[line]
	}
	return string(f.Content[lo:hi]), true
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func displayPath(path string, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeBasename:
		return filepath.Base(path)
	}
	return path
}
