package templates

import (
	"embed"
	"errors"
	"io/fs"
	"slices"
)

//go:embed all:defaults
var defaultsFS embed.FS

const (
	ServerEntry = "server-entry.template.tsx"
	ClientEntry = "client-entry.template.tsx"
	Page        = "template.html"
)

var validTemplates = []string{ServerEntry, ClientEntry, Page}

var ErrInvalidTemplate = errors.New("invalid template name")

// FS holds the built-in templates at its root.
func FS() fs.FS {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}

func IsValid(name string) bool {
	return slices.Contains(validTemplates, name)
}
