package extract

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

// gltfDocument is the skeleton of a glTF JSON document: just enough
// structure to count vertices, faces, and materials.
type gltfDocument struct {
	Meshes []struct {
		Primitives []struct {
			Attributes map[string]int `json:"attributes"`
			Indices    *int           `json:"indices"`
		} `json:"primitives"`
	} `json:"meshes"`
	Accessors []struct {
		Count uint32 `json:"count"`
	} `json:"accessors"`
	Materials []json.RawMessage `json:"materials"`
}

// gltfMetadata counts mesh statistics in a glTF or GLB file. Vertices come
// from POSITION accessors, faces from index accessor counts divided by
// three.
func gltfMetadata(path string) *models.AssetMetadata {
	var raw []byte
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		raw = glbJSONChunk(path)
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		raw = data
	}
	if raw == nil {
		return nil
	}

	var doc gltfDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}

	accessorCount := func(index int) uint32 {
		if index < 0 || index >= len(doc.Accessors) {
			return 0
		}
		return doc.Accessors[index].Count
	}

	var vertexCount, faceCount uint32
	for _, mesh := range doc.Meshes {
		for _, primitive := range mesh.Primitives {
			if pos, ok := primitive.Attributes["POSITION"]; ok {
				vertexCount += accessorCount(pos)
			}
			if primitive.Indices != nil {
				faceCount += accessorCount(*primitive.Indices) / 3
			}
		}
	}

	return &models.AssetMetadata{
		VertexCount:   u32ptr(vertexCount),
		FaceCount:     u32ptr(faceCount),
		MaterialCount: u32ptr(uint32(len(doc.Materials))),
	}
}

// glbJSONChunk extracts the JSON chunk from a binary glTF container.
// Layout: magic "glTF"(4) version(4) length(4), then per chunk
// length(4) type(4) payload.
func glbJSONChunk(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	header := make([]byte, 12)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil
	}
	if string(header[0:4]) != "glTF" {
		return nil
	}

	chunkHeader := make([]byte, 8)
	if _, err := io.ReadFull(f, chunkHeader); err != nil {
		return nil
	}
	chunkLen := binary.LittleEndian.Uint32(chunkHeader[0:4])
	if string(chunkHeader[4:8]) != "JSON" {
		return nil
	}
	if chunkLen == 0 || chunkLen > 1<<30 {
		return nil
	}

	raw := make([]byte, chunkLen)
	if _, err := io.ReadFull(f, raw); err != nil {
		return nil
	}
	return raw
}

// objMetadata counts vertex, face, and material statements in a Wavefront
// OBJ file.
func objMetadata(path string) *models.AssetMetadata {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var vertexCount, faceCount uint32
	materials := make(map[string]struct{})

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "v "):
			vertexCount++
		case strings.HasPrefix(line, "f "):
			faceCount++
		case strings.HasPrefix(line, "usemtl "):
			materials[strings.TrimSpace(line[len("usemtl "):])] = struct{}{}
		}
	}
	if scanner.Err() != nil {
		return nil
	}
	if vertexCount == 0 && faceCount == 0 {
		return nil
	}

	return &models.AssetMetadata{
		VertexCount:   u32ptr(vertexCount),
		FaceCount:     u32ptr(faceCount),
		MaterialCount: u32ptr(uint32(len(materials))),
	}
}
