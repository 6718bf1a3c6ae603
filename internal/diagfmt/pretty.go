package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"surgelint/internal/diag"
	"surgelint/internal/source"
)

var (
	errStyle  = color.New(color.FgRed, color.Bold)
	warnStyle = color.New(color.FgYellow, color.Bold)
	infoStyle = color.New(color.FgCyan, color.Bold)
	pathStyle = color.New(color.Bold)
	noteStyle = color.New(color.FgBlue)
	fixStyle  = color.New(color.FgGreen)
)

func severityStyle(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errStyle
	case diag.SevWarning:
		return warnStyle
	default:
		return infoStyle
	}
}

func paint(c *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

// Pretty renders diagnostics in a human-readable form. It walks
// bag.Items() and expects bag.Sort() to have run. Each diagnostic
// prints as
//
//	<path>:<line>:<col>: <severity>[<code>]: <message>
//
// followed by the source line with a ^~~~ underline over the span,
// then notes and fix titles when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	head := paint(severityStyle(d.Severity), opts.Color, d.Severity.String()) +
		"[" + string(d.Code) + "]: " + d.Message

	if spanMissing(d.Primary, fs) {
		fmt.Fprintf(w, "%s\n", head)
	} else {
		fmt.Fprintf(w, "%s: %s\n", paint(pathStyle, opts.Color, location(d.Primary, fs, opts.PathMode)), head)
		writeSnippet(w, d.Primary, fs, opts, severityStyle(d.Severity))
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			if spanMissing(n.Span, fs) {
				fmt.Fprintf(w, "  %s %s\n", paint(noteStyle, opts.Color, "note:"), n.Msg)
				continue
			}
			fmt.Fprintf(w, "  %s %s (%s)\n",
				paint(noteStyle, opts.Color, "note:"), n.Msg, location(n.Span, fs, opts.PathMode))
		}
	}
	if opts.ShowFixes {
		for _, f := range d.Fixes {
			fmt.Fprintf(w, "  %s %s [%s, %s]\n",
				paint(fixStyle, opts.Color, "fix:"), f.Title, f.ID, f.Applicability)
		}
	}
}

// spanMissing reports whether the span carries no usable location
// (I/O and config findings use the zero span).
func spanMissing(span source.Span, fs *source.FileSet) bool {
	if int(span.File) >= fs.Len() {
		return true
	}
	return span.File == 0 && span.Start == 0 && span.End == 0
}

func location(span source.Span, fs *source.FileSet, mode PathMode) string {
	f := fs.Get(span.File)
	var path string
	switch mode {
	case PathModeAbsolute:
		path = f.FormatPath("absolute", "")
	case PathModeRelative:
		path = f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		path = f.FormatPath("basename", "")
	default:
		path = f.FormatPath("auto", fs.BaseDir())
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// writeSnippet prints the first source line of the span with a caret
// underline aligned by display width.
func writeSnippet(w io.Writer, span source.Span, fs *source.FileSet, opts PrettyOpts, style *color.Color) {
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)

	line := file.GetLine(start.Line)
	if line == "" && span.Start != span.End {
		return
	}
	// Tabs collapse to one space so byte offsets keep lining up with
	// the underline.
	display := strings.ReplaceAll(line, "\t", " ")
	fmt.Fprintf(w, "  %s\n", display)

	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	prefix := strings.ReplaceAll(line[:col], "\t", " ")
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))

	width := int(span.End - span.Start)
	if start.Line != end.Line || col+width > len(line) {
		width = len(line) - col
	}
	marker := "^"
	if width > 1 {
		covered := strings.ReplaceAll(line[col:col+width], "\t", " ")
		if w := runewidth.StringWidth(covered); w > 1 {
			marker += strings.Repeat("~", w-1)
		}
	}
	fmt.Fprintf(w, "  %s%s\n", pad, paint(style, opts.Color, marker))
}

// WriteSummary prints the closing totals line.
func WriteSummary(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	var errs, warns, infos int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		default:
			infos++
		}
	}
	if errs == 0 && warns == 0 && infos == 0 {
		fmt.Fprintln(w, "no findings")
		return
	}
	parts := make([]string, 0, 3)
	if errs > 0 {
		parts = append(parts, paint(errStyle, opts.Color, fmt.Sprintf("%d error(s)", errs)))
	}
	if warns > 0 {
		parts = append(parts, paint(warnStyle, opts.Color, fmt.Sprintf("%d warning(s)", warns)))
	}
	if infos > 0 {
		parts = append(parts, paint(infoStyle, opts.Color, fmt.Sprintf("%d note(s)", infos)))
	}
	fmt.Fprintln(w, strings.Join(parts, ", "))
}
