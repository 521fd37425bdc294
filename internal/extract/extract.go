// Package extract parses per-type binary metadata out of asset files.
// Extractors are pure functions over the file contents: a malformed or
// unsupported file yields nil metadata, never an error.
package extract

import (
	"path/filepath"
	"strings"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

// Metadata dispatches to the container-specific parser for the given asset
// type. Only a known subset of extensions per type gets deep parsing;
// everything else returns nil.
func Metadata(path string, assetType models.AssetType) *models.AssetMetadata {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	switch assetType {
	case models.TypeTexture:
		switch ext {
		case "png":
			return pngMetadata(path)
		case "jpg", "jpeg":
			return jpegMetadata(path)
		case "tga":
			return tgaMetadata(path)
		case "bmp", "gif":
			return decodeConfigMetadata(path)
		}
	case models.TypeModel:
		switch ext {
		case "gltf", "glb":
			return gltfMetadata(path)
		case "obj":
			return objMetadata(path)
		}
	case models.TypeAudio:
		switch ext {
		case "wav":
			return wavMetadata(path)
		case "mp3":
			return mp3Metadata(path)
		case "ogg":
			return oggMetadata(path)
		}
	}

	return nil
}

func u32ptr(v uint32) *uint32 { return &v }

func boolPtr(v bool) *bool { return &v }

func f64ptr(v float64) *float64 { return &v }
