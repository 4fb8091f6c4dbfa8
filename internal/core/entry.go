package core

import (
	"strings"

	"github.com/3-lines-studio/kaffe/internal/core/markup"
)

const (
	ImportsPlaceholder    = "%{{ REPLACE_IMPORTS }}%"
	ComponentsPlaceholder = "%{{ REPLACE_COMPONENTS }}%"
	ContentPlaceholder    = "%{{ REPLACE_CONTENT }}%"

	SSRContentPlaceholder = "{{SSR_CONTENT}}"
	BundlePathPlaceholder = "{{CLIENT_BUNDLE_PATH}}"
	TitlePlaceholder      = "{{TITLE}}"
)

type PageData struct {
	Content    string
	BundlePath string
	Title      string
}

// RenderEntry fills a server or client entry template with an artifact.
// Substitution is a single pass, so placeholder text inside the artifact
// is left alone.
func RenderEntry(template string, art markup.Artifact) string {
	r := strings.NewReplacer(
		ImportsPlaceholder, strings.Join(art.Imports, "\n"),
		ComponentsPlaceholder, strings.Join(art.Components, ", "),
		ContentPlaceholder, art.HTML,
	)
	return r.Replace(template)
}

func RenderPage(template string, data PageData) string {
	r := strings.NewReplacer(
		SSRContentPlaceholder, data.Content,
		BundlePathPlaceholder, data.BundlePath,
		TitlePlaceholder, data.Title,
	)
	return r.Replace(template)
}
