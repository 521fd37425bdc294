package extract

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

// pngFixture builds a minimal PNG header with an IHDR chunk. Only the bytes
// the extractor reads need to be present.
func pngFixture(width, height uint32, colorType byte) []byte {
	buf := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

	chunk := make([]byte, 8+13)
	binary.BigEndian.PutUint32(chunk[0:4], 13)
	copy(chunk[4:8], "IHDR")
	binary.BigEndian.PutUint32(chunk[8:12], width)
	binary.BigEndian.PutUint32(chunk[12:16], height)
	chunk[16] = 8 // bit depth
	chunk[17] = colorType

	return append(buf, chunk...)
}

// jpegFixture builds SOI, an APP0 segment, and an SOF0 frame header.
func jpegFixture(width, height uint16) []byte {
	buf := []byte{0xff, 0xd8}

	// APP0 with an empty payload.
	buf = append(buf, 0xff, 0xe0, 0x00, 0x02)

	// SOF0: length, precision, height, width.
	sof := []byte{0xff, 0xc0, 0x00, 0x08, 0x08, 0, 0, 0, 0}
	binary.BigEndian.PutUint16(sof[5:7], height)
	binary.BigEndian.PutUint16(sof[7:9], width)
	return append(buf, sof...)
}

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestPNGMetadata(t *testing.T) {
	tests := []struct {
		name      string
		width     uint32
		height    uint32
		colorType byte
		hasAlpha  bool
	}{
		{"rgb", 64, 32, 2, false},
		{"rgba", 256, 256, 6, true},
		{"grayscale alpha", 16, 16, 4, true},
		{"palette", 128, 64, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, "tex.png", pngFixture(tt.width, tt.height, tt.colorType))

			md := Metadata(path, models.TypeTexture)
			if md == nil {
				t.Fatal("expected metadata, got nil")
			}
			if *md.Width != tt.width || *md.Height != tt.height {
				t.Errorf("expected %dx%d, got %dx%d", tt.width, tt.height, *md.Width, *md.Height)
			}
			if md.HasAlpha == nil || *md.HasAlpha != tt.hasAlpha {
				t.Errorf("expected hasAlpha=%v, got %v", tt.hasAlpha, md.HasAlpha)
			}
		})
	}
}

func TestPNGMetadata_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty file", nil},
		{"wrong signature", []byte("definitely not a png file")},
		{"truncated after signature", []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}},
		{"first chunk not IHDR", append([]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a},
			0, 0, 0, 13, 'I', 'D', 'A', 'T', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, "bad.png", tt.data)
			if md := Metadata(path, models.TypeTexture); md != nil {
				t.Errorf("expected nil for malformed file, got %+v", md)
			}
		})
	}
}

func TestJPEGMetadata(t *testing.T) {
	path := writeFixture(t, "photo.jpg", jpegFixture(1920, 1080))

	md := Metadata(path, models.TypeTexture)
	if md == nil {
		t.Fatal("expected metadata, got nil")
	}
	if *md.Width != 1920 || *md.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", *md.Width, *md.Height)
	}
	if md.HasAlpha == nil || *md.HasAlpha {
		t.Error("jpeg should report no alpha channel")
	}
}

func TestJPEGMetadata_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"no soi", []byte{0x00, 0x01, 0x02}},
		{"eoi before frame", []byte{0xff, 0xd8, 0xff, 0xd9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, "bad.jpg", tt.data)
			if md := Metadata(path, models.TypeTexture); md != nil {
				t.Errorf("expected nil, got %+v", md)
			}
		})
	}
}

func tgaFixture(width, height uint16, imageType, depth, descriptor byte) []byte {
	header := make([]byte, 18)
	header[2] = imageType
	binary.LittleEndian.PutUint16(header[12:14], width)
	binary.LittleEndian.PutUint16(header[14:16], height)
	header[16] = depth
	header[17] = descriptor
	return header
}

func TestTGAMetadata(t *testing.T) {
	path := writeFixture(t, "sprite.tga", tgaFixture(512, 256, 2, 32, 8))

	md := Metadata(path, models.TypeTexture)
	if md == nil {
		t.Fatal("expected metadata, got nil")
	}
	if *md.Width != 512 || *md.Height != 256 {
		t.Errorf("expected 512x256, got %dx%d", *md.Width, *md.Height)
	}
	if md.HasAlpha == nil || !*md.HasAlpha {
		t.Error("32-bit tga should report an alpha channel")
	}

	opaque := writeFixture(t, "opaque.tga", tgaFixture(64, 64, 2, 24, 0))
	md = Metadata(opaque, models.TypeTexture)
	if md == nil {
		t.Fatal("expected metadata, got nil")
	}
	if md.HasAlpha == nil || *md.HasAlpha {
		t.Error("24-bit tga without descriptor alpha should report no alpha")
	}
}

func TestTGAMetadata_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"truncated header", make([]byte, 10)},
		{"invalid image type", tgaFixture(64, 64, 7, 24, 0)},
		{"invalid depth", tgaFixture(64, 64, 2, 13, 0)},
		{"zero dimensions", tgaFixture(0, 64, 2, 24, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, "bad.tga", tt.data)
			if md := Metadata(path, models.TypeTexture); md != nil {
				t.Errorf("expected nil, got %+v", md)
			}
		})
	}
}

func TestOBJMetadata(t *testing.T) {
	obj := `# sample mesh
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
usemtl stone
f 1 2 3
f 2 3 4
usemtl stone
usemtl moss
vt 0 0
`
	path := writeFixture(t, "rock.obj", []byte(obj))

	md := Metadata(path, models.TypeModel)
	if md == nil {
		t.Fatal("expected metadata, got nil")
	}
	if *md.VertexCount != 4 {
		t.Errorf("expected 4 vertices, got %d", *md.VertexCount)
	}
	if *md.FaceCount != 2 {
		t.Errorf("expected 2 faces, got %d", *md.FaceCount)
	}
	if *md.MaterialCount != 2 {
		t.Errorf("expected 2 distinct materials, got %d", *md.MaterialCount)
	}
}

func TestGLTFMetadata(t *testing.T) {
	doc := `{
  "meshes": [
    {"primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}
  ],
  "accessors": [
    {"count": 24},
    {"count": 36}
  ],
  "materials": [{}, {}]
}`
	path := writeFixture(t, "cube.gltf", []byte(doc))

	md := Metadata(path, models.TypeModel)
	if md == nil {
		t.Fatal("expected metadata, got nil")
	}
	if *md.VertexCount != 24 {
		t.Errorf("expected 24 vertices, got %d", *md.VertexCount)
	}
	if *md.FaceCount != 12 {
		t.Errorf("expected 12 faces, got %d", *md.FaceCount)
	}
	if *md.MaterialCount != 2 {
		t.Errorf("expected 2 materials, got %d", *md.MaterialCount)
	}
}

func TestGLBMetadata(t *testing.T) {
	jsonChunk := []byte(`{"meshes":[{"primitives":[{"attributes":{"POSITION":0}}]}],"accessors":[{"count":8}],"materials":[{}]}`)

	header := make([]byte, 12)
	copy(header[0:4], "glTF")
	binary.LittleEndian.PutUint32(header[4:8], 2)
	binary.LittleEndian.PutUint32(header[8:12], uint32(12+8+len(jsonChunk)))

	chunkHeader := make([]byte, 8)
	binary.LittleEndian.PutUint32(chunkHeader[0:4], uint32(len(jsonChunk)))
	copy(chunkHeader[4:8], "JSON")

	data := append(header, chunkHeader...)
	data = append(data, jsonChunk...)
	path := writeFixture(t, "cube.glb", data)

	md := Metadata(path, models.TypeModel)
	if md == nil {
		t.Fatal("expected metadata, got nil")
	}
	if *md.VertexCount != 8 {
		t.Errorf("expected 8 vertices, got %d", *md.VertexCount)
	}
	if *md.MaterialCount != 1 {
		t.Errorf("expected 1 material, got %d", *md.MaterialCount)
	}
}

func TestMetadata_UnknownCombinations(t *testing.T) {
	path := writeFixture(t, "strange.xyz", []byte("payload"))

	tests := []struct {
		name      string
		assetType models.AssetType
	}{
		{"script never parses", models.TypeScript},
		{"data never parses", models.TypeData},
		{"other never parses", models.TypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if md := Metadata(path, tt.assetType); md != nil {
				t.Errorf("expected nil, got %+v", md)
			}
		})
	}

	// A texture extension on disk but unparseable content.
	missing := filepath.Join(t.TempDir(), "absent.png")
	if md := Metadata(missing, models.TypeTexture); md != nil {
		t.Errorf("expected nil for missing file, got %+v", md)
	}
}
