package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"whilec/internal/diag"
	"whilec/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Faint),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	  3 | x := y + 1
//	    |      ^
//
// затем заметки в том же формате. Порядок — как в bag (обычно после bag.Sort()).
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	p := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	var sb strings.Builder
	for _, d := range items {
		sb.WriteString(header(fs, d.Primary, opts.PathMode))
		fmt.Fprintf(&sb, "%s %s: %s\n", p.severity(d.Severity).Sprint(d.Severity), p.code.Sprint(d.Code.ID()), p.bold.Sprint(d.Message))
		snippet(&sb, fs, d.Primary, p)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(&sb, "  %s %s%s\n", p.note.Sprint("note:"), header(fs, n.Span, opts.PathMode), n.Msg)
				snippet(&sb, fs, n.Span, p)
			}
		}
	}
	if hidden := len(bag.Items()) - len(items) + bag.Dropped(); hidden > 0 {
		fmt.Fprintf(&sb, "... and %d more diagnostics\n", hidden)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func header(fs *source.FileSet, span source.Span, mode PathMode) string {
	f := fileOf(fs, span)
	if f == nil {
		return ""
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d: ", formatPath(f, mode), start.Line, start.Col)
}

// snippet prints the first line of span with a caret run under it.
func snippet(sb *strings.Builder, fs *source.FileSet, span source.Span, p palette) {
	f := fileOf(fs, span)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" && span.Empty() {
		return
	}
	col := clamp(int(start.Col)-1, len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = clamp(int(end.Col)-1, len(line))
	}
	if stop < col {
		stop = col
	}

	num := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(sb, " %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), line)

	width := runewidth.StringWidth(line[col:stop])
	if width < 1 {
		width = 1
	}
	marks := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(sb, " %s %s %s%s\n", pad, p.gutter.Sprint("|"), indent(line[:col]), p.caret.Sprint(marks))
}

// indent keeps tabs so the caret lines up with tab-indented source.
func indent(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
