package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// style is an ANSI SGR escape sequence.
type style string

const (
	styleReset  style = "\033[0m"
	styleRed    style = "\033[31m"
	styleYellow style = "\033[33m"
	styleCyan   style = "\033[36m"
	styleWhite  style = "\033[37m"
	styleGray   style = "\033[90m"
	styleBold   style = "\033[1m"
)

// colorEnabled controls whether Format emits escapes. Setting NO_COLOR
// turns colors off from the start.
var colorEnabled = os.Getenv("NO_COLOR") == ""

// DisableColors disables ANSI color output.
func DisableColors() { colorEnabled = false }

// EnableColors enables ANSI color output.
func EnableColors() { colorEnabled = true }

func (s style) paint(text string) string {
	if !colorEnabled || text == "" {
		return text
	}
	return string(s) + text + string(styleReset)
}

func red(text string) string    { return styleRed.paint(text) }
func yellow(text string) string { return styleYellow.paint(text) }
func cyan(text string) string   { return styleCyan.paint(text) }
func white(text string) string  { return styleWhite.paint(text) }
func gray(text string) string   { return styleGray.paint(text) }
func bold(text string) string   { return styleBold.paint(text) }

// textWidth is where Format wraps detail text.
const textWidth = 70

// Format renders the error for a terminal:
//
//	ERROR E103: Invalid router mode [config]
//
//	  einblatt.yaml:2:9
//
//	      1 │ router:
//	  →   2 │   mode: tabs
//	        │         ^
//
//	  router.mode is "tabs"
//
//	  Hint: Set router.mode to "browser", "hash" or "memory".
//	  Cause: unknown mode
func (e *Error) Format() string {
	var b strings.Builder
	b.WriteString("\n")
	e.writeHeader(&b)
	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", cyan(e.Location.String()))
		writeSource(&b, e.Location, e.Context)
	}
	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, textWidth) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n", yellow("Hint: "), e.Suggestion)
	}
	if e.Wrapped != nil {
		fmt.Fprintf(&b, "  %s%s\n", gray("Cause: "), e.Wrapped.Error())
	}
	return b.String()
}

func (e *Error) writeHeader(b *strings.Builder) {
	if e.Code == "" {
		b.WriteString(red(bold("ERROR: ")))
	} else {
		b.WriteString(red(bold("ERROR ")))
		b.WriteString(white(bold(e.Code + ": ")))
	}
	b.WriteString(white(e.Message))
	if e.Category != "" {
		b.WriteString(gray(" [" + string(e.Category) + "]"))
	}
	b.WriteString("\n\n")
}

// writeSource prints the context lines behind a line-number gutter, with an
// arrow on loc's line and a caret under its column.
func writeSource(b *strings.Builder, loc *Location, lines []string) {
	if len(lines) == 0 {
		return
	}
	bar := gray(" │ ")
	first := contextStart(loc.Line)
	for i, line := range lines {
		n := first + i
		if n != loc.Line {
			fmt.Fprintf(b, "    %4d%s%s\n", n, bar, line)
			continue
		}
		fmt.Fprintf(b, "  %s%4d%s%s\n", red("→ "), n, bar, line)
		if loc.Column > 0 {
			fmt.Fprintf(b, "        %s%s%s\n", bar, strings.Repeat(" ", loc.Column-1), red("^"))
		}
	}
	b.WriteString("\n")
}

// FormatCompact returns the error on one line, prefixed with its location
// the way compilers report positions.
func (e *Error) FormatCompact() string {
	parts := make([]string, 0, 3)
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	return strings.Join(append(parts, e.Message), ": ")
}

// jsonError is the wire shape of FormatJSON.
type jsonError struct {
	Code       string    `json:"code,omitempty"`
	Category   Category  `json:"category"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	Location   *Location `json:"location,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	Cause      string    `json:"cause,omitempty"`
}

// FormatJSON returns the error as a JSON object.
func (e *Error) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Location:   e.Location,
		Suggestion: e.Suggestion,
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Error())
	}
	return string(data)
}

// wrapText breaks text into lines of at most width bytes at word
// boundaries. A single word longer than width gets a line of its own.
func wrapText(text string, width int) []string {
	var (
		lines []string
		line  []string
		n     int
	)
	for _, word := range strings.Fields(text) {
		if len(line) > 0 && n+1+len(word) > width {
			lines = append(lines, strings.Join(line, " "))
			line, n = line[:0], 0
		}
		if len(line) > 0 {
			n++
		}
		line = append(line, word)
		n += len(word)
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return lines
}

// PrintError prints a formatted error to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}

// Fprint writes err to w, using Format when err carries an *Error.
func Fprint(w io.Writer, err error) {
	var e *Error
	if stderrors.As(err, &e) {
		fmt.Fprint(w, e.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", red(bold("ERROR:")), err.Error())
}
