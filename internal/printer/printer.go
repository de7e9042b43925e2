// Package printer writes styled, human-oriented CLI output.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
)

// ANSI color codes (Tokyo Night palette)
const (
	ColorReset     = "\033[0m"
	ColorRed       = "\033[38;2;215;95;107m"  // #d75f6b
	ColorGreen     = "\033[38;2;158;206;106m" // #9ece6a
	ColorYellow    = "\033[38;2;224;175;104m" // #e0af68
	ColorBlue      = "\033[38;2;122;162;247m" // #7aa2f7
	ColorGray      = "\033[38;2;86;95;137m"   // #565f89
	ColorBold      = "\033[1m"
	ColorUnderline = "\033[4m"
)

// Symbols
const (
	Check = "✔"
	Cross = "✘"
	Dot   = "•"
	Undo  = "↶"
	Redo  = "↷"
)

type ctxKey struct{}

// Printer handles formatted output with colors and styles
type Printer struct {
	writer io.Writer
}

// New creates a new Printer that writes to the given writer
func New(w io.Writer) *Printer {
	return &Printer{writer: w}
}

// NewContext returns a context with the printer attached
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx retrieves the printer from context, or creates a default one
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) writeln(s string) {
	_, _ = io.WriteString(p.writer, s+"\n")
}

// FatalError prints a formatted error box. It does not exit.
func (p *Printer) FatalError(err error) {
	if err == nil {
		return
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		p.validationBox(err, fieldErrs)
		return
	}

	p.writeln(colorize(ColorRed, "╭ Error"))
	p.writeln(colorize(ColorRed, "│") + " " + colorize(ColorGray, err.Error()))
	p.writeln(colorize(ColorRed, "╵"))
}

// validationBox lists each field error under the message that wrapped them,
// e.g. "load config: invalid config".
func (p *Printer) validationBox(wrapped error, fieldErrs criterio.FieldErrors) {
	prefix := ""
	if idx := strings.Index(wrapped.Error(), fieldErrs.Error()); idx > 0 {
		prefix = strings.TrimSuffix(wrapped.Error()[:idx], ": ")
	}

	bar := colorize(ColorRed, "│")

	p.writeln(colorize(ColorRed, "╭ Validation Error"))
	if prefix != "" {
		p.writeln(bar + " " + colorize(ColorGray, prefix))
		p.writeln(bar)
	}

	for _, fe := range fieldErrs {
		line := bar + " " + colorize(ColorRed, Cross) + " "
		if fe.Field != "" {
			line += colorize(ColorGray, fe.Field+": ")
		}
		p.writeln(line + fe.Err.Error())
	}

	p.writeln(colorize(ColorRed, "╵"))
}

// Errorf prints an error message in red
func (p *Printer) Errorf(format string, args ...any) {
	p.writeln(colorize(ColorRed, Cross+" "+fmt.Sprintf(format, args...)))
}

// Successf prints a success message in green
func (p *Printer) Successf(format string, args ...any) {
	p.writeln(colorize(ColorGreen, Check+" "+fmt.Sprintf(format, args...)))
}

// Infof prints an info message in gray
func (p *Printer) Infof(format string, args ...any) {
	p.writeln(colorize(ColorGray, Dot+" "+fmt.Sprintf(format, args...)))
}

// Warnf prints a warning message in yellow
func (p *Printer) Warnf(format string, args ...any) {
	p.writeln(colorize(ColorYellow, Dot+" "+fmt.Sprintf(format, args...)))
}

// Printf prints a plain message without colors
func (p *Printer) Printf(format string, args ...any) {
	p.writeln(fmt.Sprintf(format, args...))
}

// Section prints a section header (bold + underlined)
func (p *Printer) Section(title string) {
	p.writeln(ColorBold + ColorUnderline + title + ColorReset)
}

// History prints the undo/redo indicator, dimming directions that are
// unavailable.
func (p *Printer) History(undoDepth, redoDepth int) {
	p.writeln(HistoryLine(undoDepth, redoDepth))
}

// HistoryLine renders the undo/redo indicator.
func HistoryLine(undoDepth, redoDepth int) string {
	step := func(symbol, label string, n int) string {
		text := fmt.Sprintf("%s %s (%d)", symbol, label, n)
		if n == 0 {
			return colorize(ColorGray, text)
		}
		return colorize(ColorBlue, text)
	}
	return step(Undo, "undo", undoDepth) + "  " + step(Redo, "redo", redoDepth)
}

// CheckItem prints a success item with green checkmark
func (p *Printer) CheckItem(label, detail string) {
	p.item(ColorGreen, Check, label, detail)
}

// WarnItem prints a warning item with yellow dot
func (p *Printer) WarnItem(label, detail string) {
	p.item(ColorYellow, Dot, label, detail)
}

// FailItem prints a failure item with red cross
func (p *Printer) FailItem(label, detail string) {
	p.item(ColorRed, Cross, label, detail)
}

func (p *Printer) item(color, symbol, label, detail string) {
	line := "  " + colorize(color, symbol) + " " + label
	if detail != "" {
		line += ": " + detail
	}
	p.writeln(line)
}

// Bold makes text bold
func Bold(text string) string {
	return ColorBold + text + ColorReset
}

// Gray renders text in the muted color.
func Gray(text string) string {
	return colorize(ColorGray, text)
}

func colorize(color, text string) string {
	return color + text + ColorReset
}

// StatusOK returns a green checkmark with msg for use in tables.
func StatusOK(msg string) string {
	return ColorGreen + Check + ColorReset + " " + msg
}

// StatusWarn returns a yellow dot with msg for use in tables.
func StatusWarn(msg string) string {
	return ColorYellow + Dot + ColorReset + " " + msg
}
