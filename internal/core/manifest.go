package core

import (
	"encoding/json"
	"fmt"
)

// Manifest records what one build produced. It carries no timestamps so
// identical inputs give identical manifests.
type Manifest struct {
	Source     string   `json:"source"`
	Title      string   `json:"title"`
	Imports    []string `json:"imports"`
	Components []string `json:"components"`
	Bundle     string   `json:"bundle,omitempty"`
	BundleHash string   `json:"bundleHash,omitempty"`
	HTMLHash   string   `json:"htmlHash"`
	SSR        bool     `json:"ssr"`
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

func (m *Manifest) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
