// Package parser provides ManifestCodec implementations.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/reglet-dev/arith/domain/entities"
	"github.com/reglet-dev/arith/domain/ports"
)

// YamlManifestCodec implements ManifestCodec for YAML.
// Argument schemas are omitted; they are JSON documents and read poorly
// as YAML.
type YamlManifestCodec struct{}

// NewYamlManifestCodec creates a new YamlManifestCodec.
func NewYamlManifestCodec() ports.ManifestCodec {
	return &YamlManifestCodec{}
}

// Encode marshals the manifest as YAML with two-space indentation.
func (c *YamlManifestCodec) Encode(manifest *entities.ModuleManifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(manifest); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse unmarshals YAML bytes into a ModuleManifest.
func (c *YamlManifestCodec) Parse(data []byte) (*entities.ModuleManifest, error) {
	var manifest entities.ModuleManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &manifest, nil
}

// JSONManifestCodec implements ManifestCodec for indented JSON.
type JSONManifestCodec struct{}

// NewJSONManifestCodec creates a new JSONManifestCodec.
func NewJSONManifestCodec() ports.ManifestCodec {
	return &JSONManifestCodec{}
}

// Encode marshals the manifest as indented JSON, schemas included.
func (c *JSONManifestCodec) Encode(manifest *entities.ModuleManifest) ([]byte, error) {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// Parse unmarshals JSON bytes into a ModuleManifest.
func (c *JSONManifestCodec) Parse(data []byte) (*entities.ModuleManifest, error) {
	var manifest entities.ModuleManifest
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &manifest, nil
}
