package core

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var ErrNoFileName = errors.New("path has no file name")

func TitleFromPath(path string) (string, error) {
	if path == "" {
		return "", ErrNoFileName
	}
	base := filepath.Base(path)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", ErrNoFileName
	}
	return base, nil
}

// DocumentTitle returns the text of the first h1 in fragment, or fallback
// when there is none.
func DocumentTitle(fragment string, fallback string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fallback
	}
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		return fallback
	}
	return title
}
