package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

type BuildStep struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Success   bool
	Error     string
}

type WrittenFile struct {
	Path string
	Size int
}

type reportOutput interface {
	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
	Stdout() io.Writer
	Stderr() io.Writer
}

type BuildError struct {
	Stage   string
	Message string
	Details []string
}

type BuildReport struct {
	out         reportOutput
	steps       []BuildStep
	files       []WrittenFile
	warnings    []BuildError
	errors      []BuildError
	startTime   time.Time
	source      string
	outputDir   string
	hasFailures bool
	now         func() time.Time
}

func NewBuildReport(out reportOutput, source string, outputDir string) *BuildReport {
	return &BuildReport{
		out:       out,
		steps:     make([]BuildStep, 0),
		files:     make([]WrittenFile, 0),
		warnings:  make([]BuildError, 0),
		errors:    make([]BuildError, 0),
		startTime: time.Now(),
		source:    source,
		outputDir: outputDir,
		now:       time.Now,
	}
}

func (r *BuildReport) StartStep(name string) int {
	r.steps = append(r.steps, BuildStep{
		Name:      name,
		StartTime: r.now(),
	})
	return len(r.steps) - 1
}

func (r *BuildReport) EndStep(step int, success bool, err string) {
	s := &r.steps[step]
	s.EndTime = r.now()
	s.Success = success
	s.Error = err
	if !success {
		r.hasFailures = true
	}
}

func (r *BuildReport) AddFile(path string, size int) {
	r.files = append(r.files, WrittenFile{Path: path, Size: size})
}

func (r *BuildReport) AddWarning(stage string, message string, details []string) {
	r.warnings = append(r.warnings, BuildError{
		Stage:   stage,
		Message: message,
		Details: details,
	})
}

func (r *BuildReport) AddError(stage string, message string, details []string) {
	r.errors = append(r.errors, BuildError{
		Stage:   stage,
		Message: message,
		Details: details,
	})
	r.hasFailures = true
}

func (r *BuildReport) Steps() []BuildStep {
	return r.steps
}

func (r *BuildReport) Files() []WrittenFile {
	return r.files
}

func (r *BuildReport) Warnings() []BuildError {
	return r.warnings
}

func (r *BuildReport) Render() {
	duration := r.now().Sub(r.startTime)

	if len(r.errors) == 0 && len(r.warnings) == 0 {
		r.renderMinimal(duration)
	} else {
		r.renderVerbose(duration)
	}
}

func (r *BuildReport) renderMinimal(duration time.Duration) {
	w := r.out.Stdout()
	fmt.Fprintf(w, "  "+r.out.Green("✓ ")+"Compiled %s\n", r.source)

	failed := make([]string, 0)
	for _, step := range r.steps {
		if !step.Success {
			failed = append(failed, "  "+r.out.Red("✗ ")+step.Name)
		}
	}

	if len(failed) == 0 {
		fmt.Fprintf(w, "  "+r.out.Green("✓ ")+"Build complete in %s\n", formatDuration(duration))
	} else {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Failed steps:")
		for _, line := range failed {
			fmt.Fprintln(w, line)
		}
	}

	r.renderFiles()
}

func (r *BuildReport) renderVerbose(duration time.Duration) {
	w := r.out.Stdout()
	fmt.Fprintf(w, "  Compiled %s\n", r.source)

	fmt.Fprintln(w)
	for _, step := range r.steps {
		status := r.out.Green("✓")
		if !step.Success {
			status = r.out.Red("✗")
		}
		fmt.Fprintf(w, "  %s %s %s\n", status, step.Name, r.out.Gray(formatDuration(step.EndTime.Sub(step.StartTime))))
	}

	if len(r.errors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(r.out.Stderr(), "  "+r.out.Red("✗ ")+"Errors (%d):\n", len(r.errors))
		r.renderErrors(r.out.Stderr(), r.errors)
	}

	if len(r.warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  "+r.out.Yellow("⚠ ")+"Warnings (%d):\n", len(r.warnings))
		r.renderErrors(w, r.warnings)
	}

	fmt.Fprintln(w)
	if len(r.errors) > 0 {
		fmt.Fprintf(r.out.Stderr(), "  %s\n", r.out.Red(fmt.Sprintf("Build failed after %s", formatDuration(duration))))
	} else {
		fmt.Fprintf(w, "  "+r.out.Green("✓ ")+"Build complete in %s\n", formatDuration(duration))
	}

	r.renderFiles()
}

func (r *BuildReport) renderFiles() {
	if len(r.files) == 0 {
		return
	}
	w := r.out.Stdout()
	fmt.Fprintln(w)
	for _, f := range r.files {
		fmt.Fprintf(w, "    %s %s\n", f.Path, r.out.Gray(humanize.Bytes(uint64(f.Size))))
	}
	if r.outputDir != "" {
		fmt.Fprintf(w, "\n  %s\n", r.out.Gray("Output: "+r.outputDir))
	}
}

func (r *BuildReport) renderErrors(w io.Writer, errors []BuildError) {
	for _, err := range errors {
		fmt.Fprintf(w, "  %s %s\n", r.out.Red("✗"), err.Stage)
		fmt.Fprintf(w, "    %s\n", err.Message)

		for _, detail := range deduplicateStrings(err.Details) {
			fmt.Fprintf(w, "      • %s\n", detail)
		}
	}
}

func (r *BuildReport) HasFailures() bool {
	return r.hasFailures
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.1fs", float64(d)/float64(time.Second))
}

// deduplicateStrings keeps first-occurrence order.
func deduplicateStrings(items []string) []string {
	if len(items) <= 1 {
		return items
	}

	counts := make(map[string]int)
	order := make([]string, 0, len(items))
	for _, item := range items {
		if counts[item] == 0 {
			order = append(order, item)
		}
		counts[item]++
	}

	result := make([]string, 0, len(order))
	for _, item := range order {
		if n := counts[item]; n > 1 {
			result = append(result, fmt.Sprintf("%s (%d occurrences)", item, n))
		} else {
			result = append(result, item)
		}
	}
	return result
}
