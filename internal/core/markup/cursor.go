package markup

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// cursor is an immutable position in the source. Every method returns a new
// cursor, so a failed attempt is rewound by dropping its result.
type cursor struct {
	src string
	pos int
}

func (c cursor) rest() string {
	return c.src[c.pos:]
}

func (c cursor) eof() bool {
	return c.pos >= len(c.src)
}

func (c cursor) advance(n int) cursor {
	return cursor{src: c.src, pos: c.pos + n}
}

// skipSpace consumes spaces, tabs, carriage returns and newlines.
func (c cursor) skipSpace() cursor {
	rest := c.rest()
	trimmed := strings.TrimLeft(rest, " \t\r\n")
	return c.advance(len(rest) - len(trimmed))
}

// skipBlanks consumes spaces and tabs only.
func (c cursor) skipBlanks() cursor {
	rest := c.rest()
	trimmed := strings.TrimLeft(rest, " \t")
	return c.advance(len(rest) - len(trimmed))
}

// skipNewlines consumes any run of "\n" and "\r\n".
func (c cursor) skipNewlines() cursor {
	for {
		rest := c.rest()
		switch {
		case strings.HasPrefix(rest, "\n"):
			c = c.advance(1)
		case strings.HasPrefix(rest, "\r\n"):
			c = c.advance(2)
		default:
			return c
		}
	}
}

// newline consumes a single "\n" or "\r\n" if present.
func (c cursor) newline() cursor {
	rest := c.rest()
	switch {
	case strings.HasPrefix(rest, "\n"):
		return c.advance(1)
	case strings.HasPrefix(rest, "\r\n"):
		return c.advance(2)
	}
	return c
}

func (c cursor) literal(lit string) (cursor, bool) {
	if !strings.HasPrefix(c.rest(), lit) {
		return c, false
	}
	return c.advance(len(lit)), true
}

// until returns the text before the first occurrence of delim. The returned
// cursor points at delim, which is not consumed.
func (c cursor) until(delim string) (string, cursor, bool) {
	idx := strings.Index(c.rest(), delim)
	if idx < 0 {
		return "", c, false
	}
	return c.rest()[:idx], c.advance(idx), true
}

// line returns the text up to the next newline and consumes the newline. With
// atEOF the last line of the input counts as a line too.
func (c cursor) line(atEOF bool) (string, cursor, bool) {
	text, next, ok := c.until("\n")
	if ok {
		return text, next.advance(1), true
	}
	if atEOF && !c.eof() {
		return c.rest(), c.advance(len(c.rest())), true
	}
	return "", c, false
}

func (c cursor) takeWhile(accept func(rune) bool) (string, cursor) {
	rest := c.rest()
	n := 0
	for n < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[n:])
		if !accept(r) {
			break
		}
		n += size
	}
	return rest[:n], c.advance(n)
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
