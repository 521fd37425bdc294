package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// fileEntry is one unit of parse work produced by the discovery phase
type fileEntry struct {
	path      string
	name      string
	extension string
	size      int64
	modified  int64 // unix mtime seconds
}

// discover walks the tree single-threaded and produces the complete work
// list before parsing starts. Directories, dot-files, engine sidecar
// .meta files, and files without an extension are filtered out here.
func (s *Scanner) discover(root string) ([]fileEntry, error) {
	var files []fileEntry

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			s.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			return nil // keep walking
		}

		if s.isCancelled() {
			return ErrCancelled
		}

		name := info.Name()

		if info.IsDir() {
			if path != root && s.shouldExclude(root, path, name) {
				s.logger.Debug("Skipping excluded directory", zap.String("path", path))
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".meta") {
			return nil
		}

		extension := strings.TrimPrefix(filepath.Ext(name), ".")
		if extension == "" {
			return nil
		}

		files = append(files, fileEntry{
			path:      path,
			name:      name,
			extension: extension,
			size:      info.Size(),
			modified:  info.ModTime().Unix(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// shouldExclude checks a directory against the configured exclude list.
// Entries match either by exact name or as a doublestar glob against the
// path relative to the scan root.
func (s *Scanner) shouldExclude(root, path, name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range s.config.Exclude {
		if pattern == name {
			return true
		}
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
