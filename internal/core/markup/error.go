package markup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"
)

var (
	ErrParse       = errors.New("markup parse failure")
	ErrUnknownKind = errors.New("unknown recognizer kind")
)

// ParseFailure is returned when no recognizer matches. It carries the
// unconsumed input; no partial document accompanies it.
type ParseFailure struct {
	Offset    int
	Remainder string
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("failed to parse markup at offset %d near %q", e.Offset, e.Excerpt(40))
}

func (e *ParseFailure) Is(target error) bool {
	return target == ErrParse
}

// Excerpt returns the first line of the remainder shortened to width cells.
func (e *ParseFailure) Excerpt(width uint) string {
	line, _, _ := strings.Cut(e.Remainder, "\n")
	line = strings.TrimRight(line, "\r")
	return truncate.StringWithTail(line, width, "...")
}
