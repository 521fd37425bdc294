// Package engine holds the narrow per-engine project parsers: path in,
// structured project info out, nil on anything unparseable.
package engine

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnityReference is a GUID reference found in a Unity YAML document
type UnityReference struct {
	GUID    string `json:"guid"`
	FileID  *int64 `json:"file_id,omitempty"`
	RefType *int32 `json:"ref_type,omitempty"`
}

// UnityFileType classifies a Unity-owned file by extension
type UnityFileType string

const (
	UnityPrefab     UnityFileType = "prefab"
	UnityScene      UnityFileType = "scene"
	UnityMaterial   UnityFileType = "material"
	UnityController UnityFileType = "controller"
	UnityAsset      UnityFileType = "asset"
	UnityUnknown    UnityFileType = "unknown"
)

// UnityFileTypeFromExtension maps an extension (without dot) to a file type
func UnityFileTypeFromExtension(ext string) UnityFileType {
	switch strings.ToLower(ext) {
	case "prefab":
		return UnityPrefab
	case "unity":
		return UnityScene
	case "mat":
		return UnityMaterial
	case "controller":
		return UnityController
	case "asset":
		return UnityAsset
	default:
		return UnityUnknown
	}
}

// UnityFileInfo is the parsed view of one Unity YAML file
type UnityFileInfo struct {
	Path       string           `json:"path"`
	FileType   UnityFileType    `json:"file_type"`
	References []UnityReference `json:"references"`
	Components []string         `json:"components"`
}

type unityMeta struct {
	GUID string `yaml:"guid"`
}

// MetaGUID reads the GUID from the .meta sidecar of an asset, or returns
// the empty string if there is no parseable sidecar.
func MetaGUID(assetPath string) string {
	data, err := os.ReadFile(assetPath + ".meta")
	if err != nil {
		return ""
	}

	var meta unityMeta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		// Some meta files carry serialized blobs yaml.v3 refuses; fall
		// back to a line scan for the guid key.
		return scanMetaGUID(data)
	}
	return meta.GUID
}

func scanMetaGUID(data []byte) string {
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "guid:") {
			return strings.TrimSpace(line[len("guid:"):])
		}
	}
	return ""
}

// ParseUnityFile parses a Unity YAML document (prefab, scene, material,
// controller, asset) and extracts GUID references plus, for prefabs and
// scenes, the component type names present.
func ParseUnityFile(path string) *UnityFileInfo {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	fileType := UnityFileTypeFromExtension(ext)
	if fileType == UnityUnknown {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	content := string(data)

	info := &UnityFileInfo{
		Path:       path,
		FileType:   fileType,
		References: extractReferences(content),
	}
	if fileType == UnityPrefab || fileType == UnityScene {
		info.Components = extractComponents(content)
	}
	return info
}

var guidPattern = regexp.MustCompile(`guid:\s*([0-9a-fA-F]{32})`)

// extractReferences collects the distinct GUID references in a Unity YAML
// document. Lines look like "{fileID: 2800000, guid: ..., type: 3}".
func extractReferences(content string) []UnityReference {
	seen := make(map[string]UnityReference)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "%") {
			continue
		}

		m := guidPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		ref := UnityReference{GUID: strings.ToLower(m[1])}
		if v, ok := extractIntField(line, "fileID:"); ok {
			ref.FileID = &v
		}
		if v, ok := extractIntField(line, "type:"); ok {
			t := int32(v)
			ref.RefType = &t
		}
		seen[ref.GUID] = ref
	}

	refs := make([]UnityReference, 0, len(seen))
	for _, ref := range seen {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].GUID < refs[j].GUID })
	return refs
}

func extractIntField(line, key string) (int64, bool) {
	idx := strings.Index(line, key)
	if idx < 0 {
		return 0, false
	}
	rest := strings.TrimLeft(line[idx+len(key):], " ")
	end := 0
	for end < len(rest) && (rest[end] == '-' || (rest[end] >= '0' && rest[end] <= '9')) {
		end++
	}
	v, err := strconv.ParseInt(rest[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// extractComponents lists the component type names used by a prefab or
// scene. Unity documents start each object with "--- !u!<classID> &<id>".
func extractComponents(content string) []string {
	seen := make(map[string]struct{})

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "m_Script:") && strings.Contains(line, "guid:") {
			seen["MonoBehaviour"] = struct{}{}
			continue
		}

		if strings.HasPrefix(line, "---") {
			idx := strings.Index(line, "!u!")
			if idx < 0 {
				continue
			}
			rest := line[idx+3:]
			end := 0
			for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
				end++
			}
			if classID, err := strconv.Atoi(rest[:end]); err == nil {
				if name, ok := unityClassNames[classID]; ok {
					seen[name] = struct{}{}
				}
			}
		}
	}

	components := make([]string, 0, len(seen))
	for name := range seen {
		components = append(components, name)
	}
	sort.Strings(components)
	return components
}

// unityClassNames maps Unity serialized class IDs to readable names
var unityClassNames = map[int]string{
	1:   "GameObject",
	2:   "Component",
	4:   "Transform",
	20:  "Camera",
	21:  "Material",
	23:  "MeshRenderer",
	28:  "Texture2D",
	33:  "MeshFilter",
	43:  "Mesh",
	48:  "Shader",
	54:  "Rigidbody",
	64:  "MeshCollider",
	65:  "BoxCollider",
	82:  "AudioSource",
	83:  "AudioClip",
	91:  "AnimationClip",
	95:  "Animator",
	108: "Light",
	114: "MonoBehaviour",
	115: "MonoScript",
	120: "LineRenderer",
	137: "PhysicMaterial",
	156: "Terrain",
	212: "SpriteRenderer",
	213: "Sprite",
	221: "AnimatorController",
	222: "Canvas",
	224: "RectTransform",
	225: "CanvasRenderer",
}
