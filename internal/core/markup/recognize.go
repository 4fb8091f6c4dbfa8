package markup

import "strings"

const fenceMarker = "```"

// recognizer matches one construct at c. On failure the returned cursor is
// meaningless and the caller keeps its own.
type recognizer func(c cursor) (Node, cursor, bool)

var recognizers = map[Kind]recognizer{
	KindImport:     recognizeImport,
	KindLink:       recognizeLink,
	KindCodeBlock:  recognizeCodeBlock,
	KindHeading:    recognizeHeading,
	KindComponent:  recognizeComponent,
	KindList:       recognizeList,
	KindParagraph:  recognizeParagraph,
	KindText:       recognizeText,
	KindCode:       recognizeCode,
	KindEmphasis:   recognizeEmphasis,
	KindStrong:     recognizeStrong,
	KindImage:      recognizeImage,
	KindBlockQuote: recognizeBlockQuote,
}

func recognizeImport(c cursor) (Node, cursor, bool) {
	c, ok := c.skipSpace().literal("import")
	if !ok {
		return nil, c, false
	}
	afterKeyword := c
	c = c.skipSpace()
	if c.pos == afterKeyword.pos {
		return nil, c, false
	}

	form, next, ok := defaultImport(c)
	if !ok {
		form, next, ok = namedImport(c)
	}
	if !ok {
		return nil, c, false
	}
	next, _ = next.literal(";")
	return Import{Form: form}, next, true
}

func defaultImport(c cursor) (ImportForm, cursor, bool) {
	binding, c, ok := c.until(" from")
	if !ok {
		return nil, c, false
	}
	binding = strings.TrimSpace(binding)
	if binding == "" || strings.HasPrefix(binding, "{") {
		return nil, c, false
	}
	c = c.advance(len(" from")).skipSpace()
	path, c, ok := quoted(c)
	if !ok {
		return nil, c, false
	}
	return DefaultImport{Binding: own(binding), Source: own(path)}, c, true
}

func namedImport(c cursor) (ImportForm, cursor, bool) {
	c, ok := c.literal("{")
	if !ok {
		return nil, c, false
	}
	bindings, c, ok := c.until("}")
	if !ok {
		return nil, c, false
	}
	c = c.advance(1).skipSpace()
	if c, ok = c.literal("from"); !ok {
		return nil, c, false
	}
	path, c, ok := quoted(c.skipSpace())
	if !ok {
		return nil, c, false
	}
	return NamedImport{Bindings: own(strings.TrimSpace(bindings)), Source: own(path)}, c, true
}

// quoted reads a double-quoted string. Escapes are not interpreted.
func quoted(c cursor) (string, cursor, bool) {
	c, ok := c.literal(`"`)
	if !ok {
		return "", c, false
	}
	s, c, ok := c.until(`"`)
	if !ok {
		return "", c, false
	}
	return s, c.advance(1), true
}

func recognizeHeading(c cursor) (Node, cursor, bool) {
	marks, c := c.skipSpace().takeWhile(func(r rune) bool { return r == '#' })
	if len(marks) == 0 {
		return nil, c, false
	}
	c, ok := c.literal(" ")
	if !ok {
		return nil, c, false
	}
	text, c, ok := c.line(true)
	if !ok {
		return nil, c, false
	}
	return Heading{Level: len(marks), Text: own(strings.TrimSpace(text))}, c, true
}

// recognizeComponent matches <Name /> or <Name>...</Name>. The closing tag is
// the first textual </Name>, so nested tags of the same name pair up wrongly.
// Renderers downstream rely on that pairing.
func recognizeComponent(c cursor) (Node, cursor, bool) {
	c, ok := c.skipSpace().literal("<")
	if !ok {
		return nil, c, false
	}
	name, c := c.takeWhile(isAlnum)
	if name == "" {
		return nil, c, false
	}
	c = c.skipSpace()
	if next, ok := c.literal("/>"); ok {
		return Component{Name: own(name)}, next, true
	}
	if c, ok = c.literal(">"); !ok {
		return nil, c, false
	}
	closing := "</" + name + ">"
	_, c, ok = c.until(closing)
	if !ok {
		return nil, c, false
	}
	return Component{Name: own(name)}, c.advance(len(closing)), true
}

func recognizeList(c cursor) (Node, cursor, bool) {
	c = c.skipSpace().skipNewlines()

	var items []string
	for {
		item, next, ok := listItem(c)
		if !ok {
			break
		}
		items = append(items, item)
		c = next
	}
	if len(items) == 0 {
		return nil, c, false
	}
	return List{Items: items}, c.skipNewlines(), true
}

func listItem(c cursor) (string, cursor, bool) {
	c = c.skipNewlines().skipBlanks()
	next, ok := c.literal("- ")
	if !ok {
		if next, ok = c.literal("* "); !ok {
			return "", c, false
		}
	}
	c = next
	if text, at, ok := c.until("\n"); ok {
		return own(strings.TrimSpace(text)), at, true
	}
	if c.eof() {
		return "", c, false
	}
	rest := c.rest()
	return own(strings.TrimSpace(rest)), c.advance(len(rest)), true
}

func recognizeBlockQuote(c cursor) (Node, cursor, bool) {
	c, ok := c.literal(">")
	if !ok {
		return nil, c, false
	}
	text, c, ok := c.skipBlanks().line(true)
	if !ok {
		return nil, c, false
	}
	return BlockQuote{Text: own(strings.TrimSpace(text))}, c, true
}

func recognizeCodeBlock(c cursor) (Node, cursor, bool) {
	c, ok := c.literal(fenceMarker)
	if !ok {
		return nil, c, false
	}
	lang, c := c.takeWhile(isAlnum)
	c = c.newline()
	code, c, ok := c.until(fenceMarker)
	if !ok {
		return nil, c, false
	}
	c = c.advance(len(fenceMarker)).newline()
	return CodeBlock{Code: own(strings.TrimSpace(code)), Lang: own(strings.TrimSpace(lang))}, c, true
}

// recognizeParagraph takes everything up to the next blank line. A block
// fenced on both ends must be a complete code block, otherwise the paragraph
// fails. A block starting with a list marker becomes a list if the list
// recognizer consumes all of it, and stays a paragraph otherwise.
func recognizeParagraph(c cursor) (Node, cursor, bool) {
	content, c, ok := c.skipSpace().until("\n\n")
	if !ok {
		return nil, c, false
	}
	c = c.advance(2)

	content = strings.TrimSpace(content)
	switch {
	case strings.HasPrefix(content, fenceMarker):
		if !strings.HasSuffix(content, fenceMarker) {
			return nil, c, false
		}
		n, inner, ok := recognizeCodeBlock(cursor{src: content})
		if !ok || !inner.skipSpace().eof() {
			return nil, c, false
		}
		return n, c, true
	case strings.HasPrefix(content, "- ") || strings.HasPrefix(content, "* "):
		if n, inner, ok := recognizeList(cursor{src: content}); ok && inner.skipSpace().eof() {
			return n, c, true
		}
	}
	return Paragraph{Text: own(content)}, c, true
}

func recognizeText(c cursor) (Node, cursor, bool) {
	text, c, ok := c.skipSpace().line(false)
	if !ok {
		return nil, c, false
	}
	return Text{Text: own(strings.TrimSpace(text))}, c, true
}

func recognizeCode(c cursor) (Node, cursor, bool) {
	text, c, ok := delimited(c.skipSpace(), "`", "`")
	if !ok {
		return nil, c, false
	}
	return Code{Text: own(text)}, c, true
}

func recognizeEmphasis(c cursor) (Node, cursor, bool) {
	text, c, ok := delimited(c, "*", "*")
	if !ok {
		return nil, c, false
	}
	return Emphasis{Text: own(text)}, c, true
}

func recognizeStrong(c cursor) (Node, cursor, bool) {
	text, c, ok := delimited(c, "**", "**")
	if !ok {
		return nil, c, false
	}
	return Strong{Text: own(text)}, c, true
}

func recognizeImage(c cursor) (Node, cursor, bool) {
	c, ok := c.literal("!")
	if !ok {
		return nil, c, false
	}
	alt, url, c, ok := bracketed(c)
	if !ok {
		return nil, c, false
	}
	return Image{Alt: own(alt), URL: own(url)}, c, true
}

func recognizeLink(c cursor) (Node, cursor, bool) {
	text, url, c, ok := bracketed(c)
	if !ok {
		return nil, c, false
	}
	return Link{Text: own(text), URL: own(url)}, c, true
}

// delimited matches open, text up to the first close, close.
func delimited(c cursor, open, close string) (string, cursor, bool) {
	c, ok := c.literal(open)
	if !ok {
		return "", c, false
	}
	text, c, ok := c.until(close)
	if !ok {
		return "", c, false
	}
	return text, c.advance(len(close)), true
}

// bracketed matches [text](url). text must be non-empty.
func bracketed(c cursor) (string, string, cursor, bool) {
	c, ok := c.literal("[")
	if !ok {
		return "", "", c, false
	}
	text, c := c.takeWhile(func(r rune) bool { return r != ']' })
	if text == "" {
		return "", "", c, false
	}
	if c, ok = c.literal("]"); !ok {
		return "", "", c, false
	}
	url, c, ok := delimited(c, "(", ")")
	if !ok {
		return "", "", c, false
	}
	return text, url, c, true
}
