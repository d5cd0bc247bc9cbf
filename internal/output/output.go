// Package output provides formatted output utilities for the CLI and the
// build transcript.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// taskLabelWidth is the column the right-aligned "[task]" label ends at.
const taskLabelWidth = 11

// Writer handles CLI output formatting.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
	quiet bool
}

// New creates a new Writer with default settings.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: IsTerminal(),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// Discard returns a Writer that drops everything.
func Discard() *Writer {
	return NewWithWriters(io.Discard, io.Discard, false)
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// Print writes to stdout.
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Error writes to stderr.
func (w *Writer) Error(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format, args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Warning prints a warning message.
func (w *Writer) Warning(format string, args ...interface{}) {
	if w.color {
		w.Errorln("\033[33mwarning: "+format+"\033[0m", args...)
	} else {
		w.Errorln("warning: "+format, args...)
	}
}

// ErrorPrefix prints an error message with gantry prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%sgantry:%s %s", red, reset, msg)
	} else {
		w.Errorln("gantry: %s", msg)
	}
}

// List prints a list of items.
func (w *Writer) List(items []string) {
	for _, item := range items {
		w.Println("  - %s", item)
	}
}

// Build transcript.
//
// The transcript is plain text compared byte-for-byte by acceptance checks,
// so none of the methods below emit color codes.

// Banner prints the first transcript line naming the descriptor.
func (w *Writer) Banner(buildfile string) {
	w.Println("Buildfile: %s", buildfile)
}

// TargetStarted prints the header of an executing target.
func (w *Writer) TargetStarted(name string) {
	if w.quiet {
		return
	}
	w.Println("")
	w.Println("%s:", name)
}

// TaskLine prints one line of task output under a right-aligned task label.
func (w *Writer) TaskLine(task, line string) {
	label := "[" + task + "]"
	w.Println("%*s %s", taskLabelWidth, label, line)
}

// TaskWriter returns an io.Writer that prints every complete line written to
// it as a TaskLine. Call Flush to print a trailing partial line.
func (w *Writer) TaskWriter(task string) *LineWriter {
	return &LineWriter{emit: func(line string) { w.TaskLine(task, line) }}
}

// BuildSuccessful prints the success trailer followed by the elapsed time.
func (w *Writer) BuildSuccessful(elapsed time.Duration) {
	w.Println("")
	w.Println("BUILD SUCCESSFUL")
	w.Println("Total time: %s", FormatElapsed(elapsed))
}

// BuildFailed prints the failure block to stderr.
func (w *Writer) BuildFailed(err error, elapsed time.Duration) {
	w.Errorln("")
	w.Errorln("BUILD FAILED")
	w.Errorln("%s", err.Error())
	w.Errorln("")
	w.Errorln("Total time: %s", FormatElapsed(elapsed))
}

// FormatElapsed renders a duration the way the transcript reports it,
// for example "0 seconds", "1 second" or "2 minutes 5 seconds".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	minutes := total / 60
	seconds := total % 60

	var parts []string
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	parts = append(parts, plural(seconds, "second"))
	return strings.Join(parts, " ")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// LineWriter splits written bytes into lines and emits each one.
type LineWriter struct {
	emit    func(string)
	pending strings.Builder
}

func (lw *LineWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\n' {
			lw.emit(strings.TrimSuffix(lw.pending.String(), "\r"))
			lw.pending.Reset()
			continue
		}
		lw.pending.WriteByte(b)
	}
	return len(p), nil
}

// Flush emits a trailing line that was not terminated by a newline.
func (lw *LineWriter) Flush() {
	if lw.pending.Len() > 0 {
		lw.emit(lw.pending.String())
		lw.pending.Reset()
	}
}

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	if fi, _ := os.Stdout.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

// Semantic color roles for help output.
const (
	colorTitle       = bold + cyan   // Main title/brand
	colorSection     = bold + yellow // Section headers
	colorCommand     = bold + cyan   // Commands and subcommands
	colorPlaceholder = green         // Placeholders like <target>, <file>
	colorFlag        = yellow        // Flags like -lib
	colorDescription = dim           // Help text descriptions
	colorExample     = cyan          // Example commands
	colorEnvVar      = yellow        // Environment variables
)

// HelpTitle formats the main help title line.
func (w *Writer) HelpTitle(title string) {
	if w.color {
		w.Println("%s%s%s", colorTitle, title, reset)
	} else {
		w.Println("%s", title)
	}
}

// HelpSection formats a section header (e.g., "Flags:").
func (w *Writer) HelpSection(title string) {
	w.Println("")
	if w.color {
		w.Println("%s%s%s", colorSection, title, reset)
	} else {
		w.Println("%s", title)
	}
}

// HelpCommand formats a command with its description.
func (w *Writer) HelpCommand(name, description string, width int) {
	if w.color {
		padding := max(width-len(name), 0)
		w.Println("  %s%s%s%s  %s%s%s", colorCommand, w.colorPlaceholders(name), reset, strings.Repeat(" ", padding), colorDescription, description, reset)
	} else {
		w.Println("  %-*s  %s", width, name, description)
	}
}

// HelpFlag formats a flag with its description.
func (w *Writer) HelpFlag(name, description string, width int) {
	if w.color {
		padding := max(width-len(name), 0)
		w.Println("  %s%s%s%s  %s%s%s", colorFlag, w.colorPlaceholders(name), reset, strings.Repeat(" ", padding), colorDescription, description, reset)
	} else {
		w.Println("  %-*s  %s", width, name, description)
	}
}

// HelpExample formats an example command with description.
func (w *Writer) HelpExample(command, description string) {
	if w.color {
		w.Println("  %s%s%s", colorExample, command, reset)
		if description != "" {
			w.Println("      %s%s%s", colorDescription, description, reset)
		}
	} else {
		w.Println("  %s", command)
		if description != "" {
			w.Println("      %s", description)
		}
	}
}

// HelpUsage formats usage lines.
func (w *Writer) HelpUsage(usage string) {
	if w.color {
		w.Println("  %s", w.colorPlaceholders(usage))
	} else {
		w.Println("  %s", usage)
	}
}

// HelpEnvVar formats an environment variable.
func (w *Writer) HelpEnvVar(name, description string, width int) {
	if w.color {
		w.Println("  %s%-*s%s  %s%s%s", colorEnvVar, width, name, reset, colorDescription, description, reset)
	} else {
		w.Println("  %-*s  %s", width, name, description)
	}
}

// SummaryPassed prints a passed items summary.
func (w *Writer) SummaryPassed(label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s%s%s", dim, label, reset, green, value, reset)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummaryFailed prints a failed items summary.
func (w *Writer) SummaryFailed(label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s%s%s", dim, label, reset, red, value, reset)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// CheckPassed prints a passed acceptance check.
func (w *Writer) CheckPassed(name string) {
	if w.color {
		w.Println("  %s✓%s %s", green, reset, name)
	} else {
		w.Println("  PASS %s", name)
	}
}

// CheckFailed prints a failed acceptance check with its reason indented below.
func (w *Writer) CheckFailed(name string, err error) {
	if w.color {
		w.Println("  %s✗%s %s", red, reset, name)
	} else {
		w.Println("  FAIL %s", name)
	}
	for _, line := range strings.Split(strings.TrimRight(err.Error(), "\n"), "\n") {
		w.Println("      %s", line)
	}
}

// colorPlaceholders highlights <placeholder> patterns in text.
func (w *Writer) colorPlaceholders(text string) string {
	var result strings.Builder
	i := 0
	for i < len(text) {
		if text[i] == '<' {
			end := strings.Index(text[i:], ">")
			if end != -1 {
				result.WriteString(reset)
				result.WriteString(colorPlaceholder)
				result.WriteString(text[i : i+end+1])
				result.WriteString(reset)
				i += end + 1
				continue
			}
		}
		result.WriteByte(text[i])
		i++
	}
	return result.String()
}
