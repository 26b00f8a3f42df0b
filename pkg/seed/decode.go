package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Decoder reads a seed document in one file format.
type Decoder interface {
	Decode(r io.Reader) (*Document, error)
}

// DefaultDecoders returns the decoders keyed by file extension.
func DefaultDecoders() map[string]Decoder {
	return map[string]Decoder{
		".toml": TOMLDecoder{},
		".yaml": YAMLDecoder{},
		".yml":  YAMLDecoder{},
		".json": JSONDecoder{},
	}
}

// TOMLDecoder reads TOML seed files.
type TOMLDecoder struct{}

func (TOMLDecoder) Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid toml: %w", err)
	}
	return &doc, nil
}

// YAMLDecoder reads seed documents written in YAML.
type YAMLDecoder struct{}

func (YAMLDecoder) Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return &doc, nil
}

// JSONDecoder reads seed documents written in JSON.
type JSONDecoder struct{}

func (JSONDecoder) Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return &doc, nil
}

// Load decodes and validates the seed file at path, choosing the decoder by extension.
func Load(path string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := DefaultDecoders()[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported seed format %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	doc, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
