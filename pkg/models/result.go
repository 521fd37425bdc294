package models

import "sort"

// ProjectType is the engine detected to own a directory tree
type ProjectType string

const (
	ProjectUnity   ProjectType = "unity"
	ProjectUnreal  ProjectType = "unreal"
	ProjectGodot   ProjectType = "godot"
	ProjectGeneric ProjectType = "generic"
)

// DirectoryNode mirrors one directory below the scan root. FileCount and
// TotalSize aggregate the entire subtree, not just direct children.
type DirectoryNode struct {
	Name      string           `json:"name"`
	Path      string           `json:"path"`
	Children  []*DirectoryNode `json:"children"`
	FileCount int              `json:"file_count"`
	TotalSize int64            `json:"total_size"`
}

// ScanResult is the immutable snapshot produced by one scan. Assets are
// sorted case-insensitively by path so output is deterministic.
type ScanResult struct {
	RootPath      string            `json:"root_path"`
	DirectoryTree *DirectoryNode    `json:"directory_tree"`
	Assets        []*AssetInfo      `json:"assets"`
	TotalCount    int               `json:"total_count"`
	TotalSize     int64             `json:"total_size"`
	TypeCounts    map[AssetType]int `json:"type_counts"`
	ProjectType   ProjectType       `json:"project_type,omitempty"`
	Incremental   *IncrementalStats `json:"incremental,omitempty"`
}

// IncrementalStats quantifies cache effectiveness for one incremental scan.
// Invariant: TotalFiles == CachedFiles + RescannedFiles.
type IncrementalStats struct {
	TotalFiles     int `json:"total_files"`
	CachedFiles    int `json:"cached_files"`
	RescannedFiles int `json:"rescanned_files"`
}

// ExtensionTotal is an aggregate over all assets sharing one extension
type ExtensionTotal struct {
	Extension string `json:"extension"`
	Count     int    `json:"count"`
	Size      int64  `json:"size"`
}

// LargestAssets returns up to n assets ordered by descending size.
func (r *ScanResult) LargestAssets(n int) []*AssetInfo {
	assets := make([]*AssetInfo, len(r.Assets))
	copy(assets, r.Assets)
	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].Size > assets[j].Size
	})
	if len(assets) > n {
		assets = assets[:n]
	}
	return assets
}

// ExtensionTotals returns per-extension counts and sizes, largest total
// size first.
func (r *ScanResult) ExtensionTotals() []ExtensionTotal {
	byExt := make(map[string]*ExtensionTotal)
	for _, asset := range r.Assets {
		tot, ok := byExt[asset.Extension]
		if !ok {
			tot = &ExtensionTotal{Extension: asset.Extension}
			byExt[asset.Extension] = tot
		}
		tot.Count++
		tot.Size += asset.Size
	}

	totals := make([]ExtensionTotal, 0, len(byExt))
	for _, tot := range byExt {
		totals = append(totals, *tot)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Size != totals[j].Size {
			return totals[i].Size > totals[j].Size
		}
		return totals[i].Extension < totals[j].Extension
	})
	return totals
}
