package ports

import "github.com/reglet-dev/arith/domain/entities"

// ManifestCodec encodes a module manifest for display and reads it back.
type ManifestCodec interface {
	// Encode renders the manifest.
	Encode(manifest *entities.ModuleManifest) ([]byte, error)

	// Parse reads a manifest previously produced by Encode.
	Parse(data []byte) (*entities.ModuleManifest, error)
}
