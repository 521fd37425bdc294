package models

import "strings"

// AssetType is the coarse classification of an asset file
type AssetType string

const (
	TypeTexture   AssetType = "texture"
	TypeModel     AssetType = "model"
	TypeAudio     AssetType = "audio"
	TypeAnimation AssetType = "animation"
	TypeMaterial  AssetType = "material"
	TypePrefab    AssetType = "prefab"
	TypeScene     AssetType = "scene"
	TypeScript    AssetType = "script"
	TypeData      AssetType = "data"
	TypeOther     AssetType = "other"
)

// ClassifyExtension maps a file extension (without dot) to an asset type.
// The mapping is case-insensitive; unknown extensions map to TypeOther.
func ClassifyExtension(extension string) AssetType {
	switch strings.ToLower(extension) {
	case "png", "jpg", "jpeg", "tga", "psd", "tiff", "tif", "exr", "hdr",
		"webp", "dds", "bmp", "gif":
		return TypeTexture
	case "fbx", "obj", "gltf", "glb", "blend", "dae", "3ds", "max":
		return TypeModel
	case "wav", "mp3", "ogg", "flac", "aiff", "aac", "wma":
		return TypeAudio
	case "controller", "anim":
		return TypeAnimation
	case "mat":
		return TypeMaterial
	case "prefab":
		return TypePrefab
	case "unity":
		return TypeScene
	case "cs", "js":
		return TypeScript
	case "asset", "json", "xml", "yaml", "csv":
		return TypeData
	default:
		return TypeOther
	}
}

// AssetMetadata holds type-specific metadata extracted from an asset file.
// Every field is optional; a nil field means "not applicable or unparseable",
// never zero. Fields outside the asset's declared type are always nil.
type AssetMetadata struct {
	// Image metadata
	Width    *uint32 `json:"width,omitempty"`
	Height   *uint32 `json:"height,omitempty"`
	HasAlpha *bool   `json:"has_alpha,omitempty"`

	// Model metadata
	VertexCount   *uint32 `json:"vertex_count,omitempty"`
	FaceCount     *uint32 `json:"face_count,omitempty"`
	MaterialCount *uint32 `json:"material_count,omitempty"`

	// Audio metadata
	DurationSecs *float64 `json:"duration_secs,omitempty"`
	SampleRate   *uint32  `json:"sample_rate,omitempty"`
	Channels     *uint32  `json:"channels,omitempty"`
	BitDepth     *uint32  `json:"bit_depth,omitempty"`
}

// AssetInfo describes one cataloged asset file. Identity is the absolute
// path, unique within a single scan. Instances are created during the parse
// phase and never mutated afterwards.
type AssetInfo struct {
	Path      string         `json:"path"`
	Name      string         `json:"name"`
	Extension string         `json:"extension"`
	Type      AssetType      `json:"asset_type"`
	Size      int64          `json:"size"`
	Metadata  *AssetMetadata `json:"metadata,omitempty"`
	GUID      string         `json:"guid,omitempty"` // engine identifier, e.g. Unity meta GUID
}
