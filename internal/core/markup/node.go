package markup

import "strings"

// Node is one construct of a parsed document. The set of variants is closed:
// only types in this package implement it. A new variant needs a recognizer in
// recognizers and a case in Generate.
type Node interface {
	node()
}

// Document is the ordered node sequence of one source text.
type Document []Node

// ImportForm is the shape of an import declaration.
type ImportForm interface {
	importForm()
	Path() string
}

// NamedImport is `import { A, B } from "path"`. Bindings is the raw text
// between the braces.
type NamedImport struct {
	Bindings string
	Source   string
}

// DefaultImport is `import A from "path"`.
type DefaultImport struct {
	Binding string
	Source  string
}

func (NamedImport) importForm()   {}
func (DefaultImport) importForm() {}

func (n NamedImport) Path() string   { return n.Source }
func (d DefaultImport) Path() string { return d.Source }

type Import struct {
	Form ImportForm
}

type Link struct {
	Text string
	URL  string
}

type Heading struct {
	Level int
	Text  string
}

// Component references an externally rendered unit by name. Markup between
// an opening and closing tag is not kept.
type Component struct {
	Name string
}

type Paragraph struct {
	Text string
}

type Text struct {
	Text string
}

type Strong struct {
	Text string
}

type Emphasis struct {
	Text string
}

type Code struct {
	Text string
}

type CodeBlock struct {
	Code string
	Lang string
}

type Image struct {
	Alt string
	URL string
}

type List struct {
	Items []string
}

type BlockQuote struct {
	Text string
}

// Whitespace is never emitted by the dispatcher; it exists so callers building
// documents by hand can keep separators, and Generate ignores it.
type Whitespace struct {
	Text string
}

func (Import) node()     {}
func (Link) node()       {}
func (Heading) node()    {}
func (Component) node()  {}
func (Paragraph) node()  {}
func (Text) node()       {}
func (Strong) node()     {}
func (Emphasis) node()   {}
func (Code) node()       {}
func (CodeBlock) node()  {}
func (Image) node()      {}
func (List) node()       {}
func (BlockQuote) node() {}
func (Whitespace) node() {}

// own detaches a payload from the source buffer.
func own(s string) string {
	return strings.Clone(s)
}
