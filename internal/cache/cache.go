// Package cache persists per-project scan fingerprints so repeat scans are
// proportional to changes instead of tree size. One JSON document per
// project, named by a hash of the project path so distinct projects never
// collide and no project-identifying string appears in the file name.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

// Version is the cache schema version. A loaded cache with any other
// version is discarded, never partially trusted.
const Version = 1

// Entry is the cached fingerprint and parse result for a single file
type Entry struct {
	Path     string            `json:"path"`
	Modified int64             `json:"modified"` // unix mtime seconds
	Size     int64             `json:"size"`
	Asset    *models.AssetInfo `json:"asset"`
}

// ScanCache is the persisted fingerprint store for one project
type ScanCache struct {
	Version     int               `json:"version"`
	ProjectPath string            `json:"project_path"`
	Created     int64             `json:"created"`
	Entries     map[string]*Entry `json:"entries"`
}

// New creates an empty cache owned by the given project path
func New(projectPath string) *ScanCache {
	return &ScanCache{
		Version:     Version,
		ProjectPath: projectPath,
		Created:     time.Now().Unix(),
		Entries:     make(map[string]*Entry),
	}
}

// DefaultDir returns the per-user cache directory for scan caches
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "tidycraft", "scans"), nil
}

// FilePath returns the cache file location for a project: the first 16 hex
// characters of the sha256 of the project path, under dir.
func FilePath(dir, projectPath string) string {
	sum := sha256.Sum256([]byte(projectPath))
	name := hex.EncodeToString(sum[:])[:16]
	return filepath.Join(dir, name+".json")
}

// Load reads the cache for a project. Any failure — missing file,
// unreadable content, schema version mismatch, wrong project path — yields
// nil, identical to a cold start.
func Load(dir, projectPath string) *ScanCache {
	data, err := os.ReadFile(FilePath(dir, projectPath))
	if err != nil {
		return nil
	}

	var c ScanCache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}
	if c.Version != Version || c.ProjectPath != projectPath {
		return nil
	}
	if c.Entries == nil {
		c.Entries = make(map[string]*Entry)
	}
	return &c
}

// Save writes the cache beneath dir, creating the directory if needed
func (c *ScanCache) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(FilePath(dir, c.ProjectPath), data, 0o644)
}

// NeedsRescan reports whether a file must be reparsed: true iff the path is
// unknown or either stored fingerprint value differs.
func (c *ScanCache) NeedsRescan(path string, modified, size int64) bool {
	entry, ok := c.Entries[path]
	if !ok {
		return true
	}
	return entry.Modified != modified || entry.Size != size
}

// UpdateEntry inserts or replaces the entry for a freshly parsed asset
func (c *ScanCache) UpdateEntry(asset *models.AssetInfo, modified int64) {
	c.Entries[asset.Path] = &Entry{
		Path:     asset.Path,
		Modified: modified,
		Size:     asset.Size,
		Asset:    asset,
	}
}

// Prune drops entries for files absent from the current discovery
func (c *ScanCache) Prune(existingPaths []string) {
	existing := make(map[string]struct{}, len(existingPaths))
	for _, p := range existingPaths {
		existing[p] = struct{}{}
	}
	for path := range c.Entries {
		if _, ok := existing[path]; !ok {
			delete(c.Entries, path)
		}
	}
}

// Assets returns every cached asset, in unspecified order
func (c *ScanCache) Assets() []*models.AssetInfo {
	assets := make([]*models.AssetInfo, 0, len(c.Entries))
	for _, entry := range c.Entries {
		assets = append(assets, entry.Asset)
	}
	return assets
}

// Clear removes the persisted cache file for a project if present
func Clear(dir, projectPath string) error {
	path := FilePath(dir, projectPath)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}
