package core

import (
	"html/template"
	"io"
)

type ErrorData struct {
	Message string
	IsDev   bool
}

var ErrorTemplate = template.Must(template.New("error").Parse(`<!doctype html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Kaffe error</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 50px auto; padding: 0 20px; }
        h1 { color: #e74c3c; }
        pre { background: #f8f9fa; padding: 15px; border-radius: 5px; overflow-x: auto; }
    </style>
</head>
<body>
    <h1>Page build failed</h1>
    {{if .IsDev}}
    <pre>{{.Message}}</pre>
    {{else}}
    <p>The page could not be built. Check the server log for details.</p>
    {{end}}
</body>
</html>`))

func RenderError(w io.Writer, message string, isDev bool) error {
	return ErrorTemplate.Execute(w, ErrorData{Message: message, IsDev: isDev})
}
