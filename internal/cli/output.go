package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// ANSI styles used by the terminal renderer.
const (
	styleReset  = "\033[0m"
	styleRed    = "\033[31m"
	styleGreen  = "\033[32m"
	styleYellow = "\033[33m"
	styleCyan   = "\033[36m"
	styleBold   = "\033[1m"
	styleDim    = "\033[2m"
)

var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

// Output renders command results either as JSON or as styled text.
type Output struct {
	writer       io.Writer
	jsonMode     bool
	colorEnabled bool
}

// NewOutput creates an Output for cmd. Color is used only for text output
// to a terminal and can be turned off with --no-color.
func NewOutput(cmd *cobra.Command) *Output {
	jsonMode, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	return &Output{
		writer:       cmd.OutOrStdout(),
		jsonMode:     jsonMode,
		colorEnabled: !jsonMode && !noColor && isTerminal(),
	}
}

func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsJSON reports whether --json was given.
func (o *Output) IsJSON() bool {
	return o.jsonMode
}

// JSON writes data as indented JSON.
func (o *Output) JSON(data interface{}) error {
	encoder := json.NewEncoder(o.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Println prints its operands followed by a newline.
func (o *Output) Println(args ...interface{}) {
	fmt.Fprintln(o.writer, args...)
}

// Printf prints a formatted message.
func (o *Output) Printf(format string, args ...interface{}) {
	fmt.Fprintf(o.writer, format, args...)
}

// Success prints a line in green.
func (o *Output) Success(format string, args ...interface{}) {
	o.line(styleGreen, format, args...)
}

// Error prints a line in red.
func (o *Output) Error(format string, args ...interface{}) {
	o.line(styleRed, format, args...)
}

// Warning prints a line in yellow.
func (o *Output) Warning(format string, args ...interface{}) {
	o.line(styleYellow, format, args...)
}

// Info prints a line in cyan.
func (o *Output) Info(format string, args ...interface{}) {
	o.line(styleCyan, format, args...)
}

// Bold prints a bold line, used for section titles.
func (o *Output) Bold(format string, args ...interface{}) {
	o.line(styleBold, format, args...)
}

// Dim prints a dimmed line, used for secondary details.
func (o *Output) Dim(format string, args ...interface{}) {
	o.line(styleDim, format, args...)
}

func (o *Output) line(style, format string, args ...interface{}) {
	fmt.Fprintln(o.writer, o.paint(style, fmt.Sprintf(format, args...)))
}

func (o *Output) paint(style, text string) string {
	if !o.colorEnabled || style == "" {
		return text
	}
	return style + text + styleReset
}

// Cyan returns text in cyan.
func (o *Output) Cyan(text string) string {
	return o.paint(styleCyan, text)
}

// BoldText returns text in bold.
func (o *Output) BoldText(text string) string {
	return o.paint(styleBold, text)
}

// DimText returns dimmed text.
func (o *Output) DimText(text string) string {
	return o.paint(styleDim, text)
}

// FormatPnL renders a signed result in reais, green when positive and red
// when negative.
func (o *Output) FormatPnL(pnl float64) string {
	switch {
	case pnl > 0:
		return o.paint(styleGreen, FormatPnL(pnl))
	case pnl < 0:
		return o.paint(styleRed, FormatPnL(pnl))
	default:
		return FormatPnL(pnl)
	}
}

// displayWidth counts the visible runes of s.
func displayWidth(s string) int {
	return utf8.RuneCountInString(ansiEscape.ReplaceAllString(s, ""))
}

func padRight(s string, width int) string {
	if n := width - displayWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := width - displayWidth(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

// Field is one labelled value of a Summary.
type Field struct {
	Label string
	Value string
}

// Summary prints fields inside a titled frame with the labels aligned.
func (o *Output) Summary(title string, fields []Field) {
	labelWidth := 0
	for _, f := range fields {
		if w := displayWidth(f.Label); w > labelWidth {
			labelWidth = w
		}
	}
	lines := make([]string, len(fields))
	inner := displayWidth(title)
	for i, f := range fields {
		lines[i] = padRight(f.Label, labelWidth) + "  " + f.Value
		if w := displayWidth(lines[i]); w > inner {
			inner = w
		}
	}

	rule := strings.Repeat("─", inner+2)
	edge := o.paint(styleDim, "│")
	o.Printf("%s\n", o.paint(styleDim, "┌"+rule+"┐"))
	o.Printf("%s %s %s\n", edge, o.paint(styleBold, padRight(title, inner)), edge)
	o.Printf("%s\n", o.paint(styleDim, "├"+rule+"┤"))
	for _, l := range lines {
		o.Printf("%s %s %s\n", edge, padRight(l, inner), edge)
	}
	o.Printf("%s\n", o.paint(styleDim, "└"+rule+"┘"))
}

// Table collects rows and prints them as aligned columns.
type Table struct {
	output  *Output
	headers []string
	rows    [][]string
	right   map[int]bool
}

// NewTable creates a table with the given column headers.
func NewTable(output *Output, headers ...string) *Table {
	return &Table{output: output, headers: headers, right: make(map[int]bool)}
}

// AlignRight right-aligns the given columns, typically amounts and counts.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render prints the header, a rule and every row.
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = displayWidth(h)
	}
	for _, row := range t.rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := displayWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	o := t.output
	o.Println(o.paint(styleBold, t.format(t.headers, widths)))
	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("─", w)
	}
	o.Println(o.paint(styleDim, strings.Join(rules, "──")))
	for _, row := range t.rows {
		o.Println(t.format(row, widths))
	}
}

func (t *Table) format(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if t.right[i] {
			parts[i] = padLeft(cell, w)
		} else {
			parts[i] = padRight(cell, w)
		}
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}
