package markup

import (
	"fmt"
	"strings"
)

// Parse parses src with DefaultOrder.
func Parse(src string) (Document, error) {
	return ParseWithOrder(src, DefaultOrder)
}

// ParseWithOrder parses src trying recognizers in the given order. At each
// position whitespace is skipped and the first recognizer that matches wins.
// If none matches, the whole document is rejected with a *ParseFailure.
//
// A position starting with a code fence can only be consumed as a fenced code
// block (directly or through a paragraph), so an unterminated fence always
// fails the parse.
func ParseWithOrder(src string, order []Kind) (Document, error) {
	table := make([]recognizer, 0, len(order))
	kinds := make([]Kind, 0, len(order))
	for _, k := range order {
		r, ok := recognizers[k]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownKind, k)
		}
		table = append(table, r)
		kinds = append(kinds, k)
	}

	doc := Document{}
	c := cursor{src: src}
	for {
		c = c.skipSpace()
		if c.eof() {
			break
		}

		n, next, kind, ok := dispatch(c, kinds, table)
		if !ok {
			tracer().Errorf("no recognizer matches at offset %d", c.pos)
			return nil, &ParseFailure{Offset: c.pos, Remainder: own(c.rest())}
		}
		tracer().Debugf("%s at offset %d", kind, c.pos)
		doc = append(doc, n)
		c = next
	}
	return doc, nil
}

func dispatch(c cursor, kinds []Kind, table []recognizer) (Node, cursor, Kind, bool) {
	fenced := strings.HasPrefix(c.rest(), fenceMarker)
	for i, r := range table {
		if fenced && kinds[i] != KindCodeBlock && kinds[i] != KindParagraph {
			continue
		}
		n, next, ok := r(c)
		if !ok || next.pos <= c.pos {
			continue
		}
		return n, next, kinds[i], true
	}
	return nil, c, 0, false
}
