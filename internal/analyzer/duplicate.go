package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

// FindDuplicates locates assets with identical content. Files are first
// grouped by size so that unique sizes never get hashed; same-size groups
// are then compared by streamed SHA-256. Within a duplicate group the
// earliest asset in input order counts as the original and every later
// copy gets a warning.
func FindDuplicates(assets []*models.AssetInfo) *models.AnalysisResult {
	result := models.NewAnalysisResult()

	bySize := make(map[int64][]*models.AssetInfo)
	var sizes []int64
	for _, a := range assets {
		if _, seen := bySize[a.Size]; !seen {
			sizes = append(sizes, a.Size)
		}
		bySize[a.Size] = append(bySize[a.Size], a)
	}

	for _, size := range sizes {
		group := bySize[size]
		if len(group) < 2 {
			continue
		}

		byHash := make(map[string][]*models.AssetInfo)
		var hashes []string
		for _, a := range group {
			sum, err := hashFile(a.Path)
			if err != nil {
				continue
			}
			if _, seen := byHash[sum]; !seen {
				hashes = append(hashes, sum)
			}
			byHash[sum] = append(byHash[sum], a)
		}

		for _, sum := range hashes {
			dupes := byHash[sum]
			if len(dupes) < 2 {
				continue
			}
			original := dupes[0]
			for _, dup := range dupes[1:] {
				result.AddIssue(models.Issue{
					RuleID:     "duplicate",
					RuleName:   "Duplicate File",
					Severity:   models.SeverityWarning,
					Message:    fmt.Sprintf("File is identical to %s", original.Path),
					AssetPath:  dup.Path,
					Suggestion: fmt.Sprintf("Remove this copy and reference %s instead", original.Path),
				})
			}
		}
	}

	return result
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, 8192)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
