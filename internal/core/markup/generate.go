package markup

import (
	"fmt"
	"slices"
	"strings"
)

// Artifact is the output of code generation.
type Artifact struct {
	HTML       string   `json:"html"`
	Imports    []string `json:"imports"`
	Components []string `json:"components"`
}

// Compile parses src with DefaultOrder and generates its artifact.
func Compile(src string) (Artifact, error) {
	doc, err := Parse(src)
	if err != nil {
		return Artifact{}, err
	}
	return Generate(doc), nil
}

// Generate renders doc. Bindings from imports are appended as found, even if
// repeated; component tags add their name only once.
func Generate(doc Document) Artifact {
	var html strings.Builder
	art := Artifact{
		Imports:    []string{},
		Components: []string{},
	}

	for _, n := range doc {
		switch n := n.(type) {
		case Import:
			switch form := n.Form.(type) {
			case NamedImport:
				art.Imports = append(art.Imports, fmt.Sprintf("import { %s } from '%s';", form.Bindings, form.Source))
				for _, b := range strings.Split(form.Bindings, ",") {
					if b = strings.TrimSpace(b); b != "" {
						art.Components = append(art.Components, b)
					}
				}
			case DefaultImport:
				art.Imports = append(art.Imports, fmt.Sprintf("import %s from '%s';", form.Binding, form.Source))
				art.Components = append(art.Components, form.Binding)
			}
		case Heading:
			fmt.Fprintf(&html, "<h%d>%s</h%d>\n", n.Level, n.Text, n.Level)
		case Paragraph:
			fmt.Fprintf(&html, "<p>%s</p>\n", n.Text)
		case CodeBlock:
			fmt.Fprintf(&html, "<pre><code class=\"language-%s\">%s</code></pre>\n", n.Lang, n.Code)
		case Text:
			html.WriteString(n.Text)
			html.WriteString("\n")
		case Strong:
			fmt.Fprintf(&html, "<strong>%s</strong>", n.Text)
		case Emphasis:
			fmt.Fprintf(&html, "<em>%s</em>", n.Text)
		case Code:
			fmt.Fprintf(&html, "<code>%s</code>", n.Text)
		case Link:
			fmt.Fprintf(&html, "<a href=\"%s\">%s</a>", n.URL, n.Text)
		case Image:
			fmt.Fprintf(&html, "<img src=\"%s\" alt=\"%s\">", n.URL, n.Alt)
		case List:
			html.WriteString("<ul>\n")
			for _, item := range n.Items {
				fmt.Fprintf(&html, "  <li>%s</li>\n", item)
			}
			html.WriteString("</ul>\n")
		case BlockQuote:
			fmt.Fprintf(&html, "<blockquote>%s</blockquote>\n", n.Text)
		case Component:
			if !slices.Contains(art.Components, n.Name) {
				art.Components = append(art.Components, n.Name)
			}
			fmt.Fprintf(&html, "<%s></%s>\n", n.Name, n.Name)
		case Whitespace:
		}
	}

	art.HTML = html.String()
	return art
}
