package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run renders the envelope as indented UTF-8 JSON. HTML characters and
// non-ASCII text are written literally.
func (g *Generator) Run(envelope Envelope) ([]byte, error) {
	if envelope.Sources == nil {
		envelope.Sources = []Source{}
	}
	if envelope.Items == nil {
		envelope.Items = []Item{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(envelope); err != nil {
		return nil, fmt.Errorf("failed to encode digest: %w", err)
	}

	return buf.Bytes(), nil
}
