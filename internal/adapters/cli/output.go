package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"golang.org/x/term"
)

type Output struct {
	enableColors bool
	stdout       io.Writer
	stderr       io.Writer
}

func NewOutput() *Output {
	return &Output{
		enableColors: isTerminal(),
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// NewOutputTo writes to the given streams without colours.
func NewOutputTo(stdout, stderr io.Writer) *Output {
	return &Output{
		stdout: stdout,
		stderr: stderr,
	}
}

func (o *Output) DisableColors() {
	o.enableColors = false
}

func (o *Output) Stdout() io.Writer {
	return o.stdout
}

func (o *Output) Stderr() io.Writer {
	return o.stderr
}

func (o *Output) paint(c color.Color, text string) string {
	if !o.enableColors {
		return text
	}
	return c.Sprint(text)
}

func (o *Output) Green(text string) string {
	return o.paint(color.Green, text)
}

func (o *Output) Yellow(text string) string {
	return o.paint(color.Yellow, text)
}

func (o *Output) Red(text string) string {
	return o.paint(color.Red, text)
}

func (o *Output) Gray(text string) string {
	return o.paint(color.Gray, text)
}

func (o *Output) Cyan(text string) string {
	return o.paint(color.Cyan, text)
}

func (o *Output) PrintHeader(msg string) {
	fmt.Fprintln(o.stdout, msg)
	fmt.Fprintln(o.stdout)
}

func (o *Output) PrintStep(emoji, msg string, args ...any) {
	fmt.Fprintf(o.stdout, "  "+msg+"\n", args...)
}

func (o *Output) PrintSuccess(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.stdout, "  "+o.Green("✓ ")+"%s\n", formatted)
}

func (o *Output) PrintWarning(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.stdout, "  "+o.Yellow("⚠ ")+"%s\n", formatted)
}

func (o *Output) PrintError(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.stderr, "  "+o.Red("✗ ")+"%s\n", formatted)
}

func (o *Output) PrintFile(path string) {
	fmt.Fprintf(o.stdout, "    %s\n", path)
}

func (o *Output) PrintURL(url string) {
	fmt.Fprintf(o.stdout, "  %s %s\n", o.Gray("Listening on"), o.Cyan(url))
}

func (o *Output) PrintDone(msg string) {
	fmt.Fprintln(o.stdout, msg)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
