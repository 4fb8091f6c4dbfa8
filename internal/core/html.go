package core

import (
	"fmt"
	"html"
)

// RenderHTMLShell is the page used when the client directory has no
// template.html of its own.
func RenderHTMLShell(data PageData) string {
	title := data.Title
	if title == "" {
		title = "Kaffe"
	}

	script := ""
	if data.BundlePath != "" {
		script = fmt.Sprintf("\n    <script src=\"%s\" type=\"module\" defer></script>", data.BundlePath)
	}

	return fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" /><meta name="viewport" content="width=device-width, initial-scale=1.0" /><title>%s</title>
  </head>
  <body>
    <div id="app">%s</div>%s
  </body>
</html>
`, html.EscapeString(title), data.Content, script)
}
