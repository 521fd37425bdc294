// Package scanner walks a game-asset tree, classifies and parses every
// asset file across a worker pool, and assembles the catalog snapshot.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Lynthar/Tidycraft/internal/cache"
	"github.com/Lynthar/Tidycraft/internal/config"
	"github.com/Lynthar/Tidycraft/internal/engine"
	"github.com/Lynthar/Tidycraft/internal/extract"
	"github.com/Lynthar/Tidycraft/pkg/models"
)

var (
	// ErrPathNotFound means the scan root does not exist
	ErrPathNotFound = errors.New("path not found")
	// ErrInvalidPath means the scan root is not a directory
	ErrInvalidPath = errors.New("invalid path")
	// ErrCancelled means the shared state was cancelled mid-scan. It is a
	// normal termination mode, not a failure.
	ErrCancelled = errors.New("scan cancelled")
)

// Scanner is the scan orchestrator. One Scanner may run many scans; each
// scan owns its cache handle for the duration of the run.
type Scanner struct {
	config *config.Config
	logger *zap.Logger
	state  *models.ScanState
}

// NewScanner creates a scanner with the given configuration
func NewScanner(cfg *config.Config, logger *zap.Logger) *Scanner {
	return &Scanner{
		config: cfg,
		logger: logger,
	}
}

// SetState attaches a shared cancellation/progress token. Optional; a
// scanner without state is neither observable nor cancellable.
func (s *Scanner) SetState(state *models.ScanState) {
	s.state = state
}

func (s *Scanner) isCancelled() bool {
	return s.state != nil && s.state.IsCancelled()
}

func (s *Scanner) setPhase(phase models.ScanPhase) {
	if s.state != nil {
		s.state.SetPhase(phase)
	}
}

func (s *Scanner) setTotal(total int) {
	if s.state != nil {
		s.state.SetTotal(total)
	}
}

// checkRoot validates the scan root preconditions
func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, root)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidPath, root)
	}
	return nil
}

// Scan performs a full scan of the tree rooted at root, ignoring any cache.
func (s *Scanner) Scan(root string) (*models.ScanResult, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}

	projectType := detectProjectType(root)

	s.setPhase(models.PhaseDiscovering)
	files, err := s.discover(root)
	if err != nil {
		s.setPhase(models.PhaseCancelled)
		return nil, err
	}

	s.setTotal(len(files))
	s.setPhase(models.PhaseParsing)

	assets, err := s.parseAll(files, projectType)
	if err != nil {
		s.setPhase(models.PhaseCancelled)
		return nil, err
	}

	result := s.buildResult(root, assets, projectType)

	s.logger.Info("Scan completed",
		zap.String("root", root),
		zap.Int("assets", result.TotalCount),
		zap.Int64("total_size", result.TotalSize))

	return result, nil
}

// ScanIncremental scans root using the persisted fingerprint cache: only
// files whose (mtime, size) fingerprint changed are reparsed, the rest are
// served from the cache. A cancelled run persists nothing.
func (s *Scanner) ScanIncremental(root string) (*models.ScanResult, *models.IncrementalStats, error) {
	if err := checkRoot(root); err != nil {
		return nil, nil, err
	}

	cacheDir := s.cacheDir()
	store := cache.Load(cacheDir, root)
	if store == nil {
		s.logger.Debug("No usable scan cache, cold start", zap.String("root", root))
		store = cache.New(root)
	}

	projectType := detectProjectType(root)

	s.setPhase(models.PhaseDiscovering)
	files, err := s.discover(root)
	if err != nil {
		s.setPhase(models.PhaseCancelled)
		return nil, nil, err
	}

	// Deletion handling: drop cache entries for files that vanished.
	currentPaths := make([]string, len(files))
	for i, f := range files {
		currentPaths[i] = f.path
	}
	store.Prune(currentPaths)

	var toScan []fileEntry
	for _, f := range files {
		if store.NeedsRescan(f.path, f.modified, f.size) {
			toScan = append(toScan, f)
		}
	}

	s.setTotal(len(toScan))
	s.setPhase(models.PhaseParsing)

	parsed, err := s.parseAll(toScan, projectType)
	if err != nil {
		s.setPhase(models.PhaseCancelled)
		return nil, nil, err
	}

	for _, asset := range parsed {
		modified := int64(0)
		for _, f := range toScan {
			if f.path == asset.Path {
				modified = f.modified
				break
			}
		}
		store.UpdateEntry(asset, modified)
	}

	assets := store.Assets()
	result := s.buildResult(root, assets, projectType)

	if err := store.Save(cacheDir); err != nil {
		s.logger.Warn("Failed to persist scan cache", zap.String("root", root), zap.Error(err))
	}

	stats := &models.IncrementalStats{
		TotalFiles:     len(files),
		CachedFiles:    len(files) - len(toScan),
		RescannedFiles: len(toScan),
	}
	result.Incremental = stats

	s.logger.Info("Incremental scan completed",
		zap.String("root", root),
		zap.Int("total", stats.TotalFiles),
		zap.Int("cached", stats.CachedFiles),
		zap.Int("rescanned", stats.RescannedFiles))

	return result, stats, nil
}

// ClearCache removes the persisted cache for a project
func (s *Scanner) ClearCache(root string) error {
	return cache.Clear(s.cacheDir(), root)
}

func (s *Scanner) cacheDir() string {
	if s.config.CacheDir != "" {
		return s.config.CacheDir
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		s.logger.Warn("No user cache directory", zap.Error(err))
		return ".tidycraft-cache"
	}
	return dir
}

// parseAll fans the work list out across the worker pool. The returned
// asset order is unspecified; callers sort. Returns ErrCancelled if the
// shared state was cancelled during or after the parallel phase.
func (s *Scanner) parseAll(files []fileEntry, projectType models.ProjectType) ([]*models.AssetInfo, error) {
	workers := s.config.WorkerCount()

	jobs := make(chan fileEntry, workers*2)
	results := make(chan *models.AssetInfo, workers*2)

	var completed sync.WaitGroup

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go s.worker(&wg, jobs, results, projectType)
	}

	var assets []*models.AssetInfo
	completed.Add(1)
	go func() {
		defer completed.Done()
		for asset := range results {
			assets = append(assets, asset)
		}
	}()

	for _, f := range files {
		if s.isCancelled() {
			break
		}
		jobs <- f
	}
	close(jobs)
	wg.Wait()
	close(results)
	completed.Wait()

	if s.isCancelled() {
		return nil, ErrCancelled
	}

	return assets, nil
}

// worker parses files from the jobs channel. The cancellation flag is
// checked before each item, never mid-parse; the numeric progress counter
// advances every item while the current-file display is coalesced to one
// update per 100 items.
func (s *Scanner) worker(wg *sync.WaitGroup, jobs <-chan fileEntry, results chan<- *models.AssetInfo, projectType models.ProjectType) {
	defer wg.Done()

	for f := range jobs {
		if s.isCancelled() {
			continue
		}

		asset := parseAsset(f, projectType)
		if s.state != nil {
			current := int(s.state.AdvanceCurrent())
			if current%100 == 0 {
				s.state.SetCurrentFile(f.path)
			}
		}
		if asset != nil {
			results <- asset
		}
	}
}

// parseAsset builds the AssetInfo for one discovered file
func parseAsset(f fileEntry, projectType models.ProjectType) *models.AssetInfo {
	assetType := models.ClassifyExtension(f.extension)

	asset := &models.AssetInfo{
		Path:      f.path,
		Name:      f.name,
		Extension: f.extension,
		Type:      assetType,
		Size:      f.size,
		Metadata:  extract.Metadata(f.path, assetType),
	}
	if projectType == models.ProjectUnity {
		asset.GUID = engine.MetaGUID(f.path)
	}
	return asset
}

// buildResult sorts the asset set, aggregates the directory tree, and
// produces the immutable snapshot.
func (s *Scanner) buildResult(root string, assets []*models.AssetInfo, projectType models.ProjectType) *models.ScanResult {
	// Deterministic output ordering regardless of worker completion order
	sort.Slice(assets, func(i, j int) bool {
		return strings.ToLower(assets[i].Path) < strings.ToLower(assets[j].Path)
	})

	s.setPhase(models.PhaseBuilding)

	typeCounts := make(map[models.AssetType]int)
	var totalSize int64
	for _, asset := range assets {
		typeCounts[asset.Type]++
		totalSize += asset.Size
	}

	tree := buildDirectoryTree(root, assets)

	s.setPhase(models.PhaseCompleted)

	return &models.ScanResult{
		RootPath:      root,
		DirectoryTree: tree,
		Assets:        assets,
		TotalCount:    len(assets),
		TotalSize:     totalSize,
		TypeCounts:    typeCounts,
		ProjectType:   projectType,
	}
}
