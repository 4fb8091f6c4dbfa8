package markup

import (
	"fmt"
	"strings"
)

// Kind identifies a recognizer.
type Kind int

const (
	KindImport Kind = iota
	KindLink
	KindCodeBlock
	KindHeading
	KindComponent
	KindList
	KindParagraph
	KindText
	KindCode
	KindEmphasis
	KindStrong
	KindImage
	KindBlockQuote
)

var kindNames = map[Kind]string{
	KindImport:     "import",
	KindLink:       "link",
	KindCodeBlock:  "codeblock",
	KindHeading:    "heading",
	KindComponent:  "component",
	KindList:       "list",
	KindParagraph:  "paragraph",
	KindText:       "text",
	KindCode:       "code",
	KindEmphasis:   "emphasis",
	KindStrong:     "strong",
	KindImage:      "image",
	KindBlockQuote: "blockquote",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// DefaultOrder is the priority in which recognizers are tried. The order is
// observable: paragraph and text come before the inline forms, so inline
// markup inside a paragraph or line stays literal text. Changing it changes
// the output for existing documents.
var DefaultOrder = []Kind{
	KindImport,
	KindLink,
	KindCodeBlock,
	KindHeading,
	KindComponent,
	KindList,
	KindParagraph,
	KindText,
	KindCode,
	KindEmphasis,
	KindStrong,
	KindImage,
	KindBlockQuote,
}

// ParseOrder reads a comma separated list of kind names, e.g.
// "import,heading,text".
func ParseOrder(s string) ([]Kind, error) {
	byName := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		byName[name] = k
	}

	var order []Kind
	seen := map[Kind]bool{}
	for _, field := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(field))
		if name == "" {
			continue
		}
		k, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
		}
		if seen[k] {
			return nil, fmt.Errorf("duplicate recognizer %q in order", name)
		}
		seen[k] = true
		order = append(order, k)
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("empty recognizer order")
	}
	return order, nil
}
