package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

func writeAsset(t *testing.T, dir, name string, content []byte) *models.AssetInfo {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return &models.AssetInfo{
		Path: path,
		Name: name,
		Size: int64(len(content)),
	}
}

func TestFindDuplicates(t *testing.T) {
	dir := t.TempDir()

	payload := []byte("identical texture bytes")
	a := writeAsset(t, dir, "a.png", payload)
	b := writeAsset(t, dir, "b.png", payload)
	c := writeAsset(t, dir, "c.png", []byte("different content here!")) // same size, different bytes
	d := writeAsset(t, dir, "d.png", []byte("unique size"))

	result := FindDuplicates([]*models.AssetInfo{a, b, c, d})

	if result.IssueCount != 1 {
		t.Fatalf("expected 1 duplicate issue, got %d", result.IssueCount)
	}

	issue := result.Issues[0]
	if issue.RuleID != "duplicate" {
		t.Errorf("expected rule duplicate, got %s", issue.RuleID)
	}
	if issue.Severity != models.SeverityWarning {
		t.Errorf("expected warning severity, got %s", issue.Severity)
	}
	// The first asset in input order is the original; the copy is flagged.
	if issue.AssetPath != b.Path {
		t.Errorf("expected issue on %s, got %s", b.Path, issue.AssetPath)
	}
}

func TestFindDuplicates_ThreeCopies(t *testing.T) {
	dir := t.TempDir()

	payload := []byte("same bytes in all three")
	a := writeAsset(t, dir, "first.wav", payload)
	b := writeAsset(t, dir, "second.wav", payload)
	c := writeAsset(t, dir, "third.wav", payload)

	result := FindDuplicates([]*models.AssetInfo{a, b, c})

	// N copies produce N-1 issues, all pointing at the first as original.
	if result.IssueCount != 2 {
		t.Fatalf("expected 2 issues for 3 copies, got %d", result.IssueCount)
	}
	for _, issue := range result.Issues {
		if issue.AssetPath == a.Path {
			t.Errorf("original %s should not be flagged", a.Path)
		}
	}

	flagged := map[string]bool{}
	for _, issue := range result.Issues {
		flagged[issue.AssetPath] = true
	}
	if !flagged[b.Path] || !flagged[c.Path] {
		t.Errorf("expected both copies flagged, got %v", flagged)
	}
}

func TestFindDuplicates_EmptyFiles(t *testing.T) {
	dir := t.TempDir()

	// Zero-byte files have identical content too.
	a := writeAsset(t, dir, "empty1.txt", nil)
	b := writeAsset(t, dir, "empty2.txt", nil)

	result := FindDuplicates([]*models.AssetInfo{a, b})
	if result.IssueCount != 1 {
		t.Fatalf("expected 1 issue for 2 identical empty files, got %d", result.IssueCount)
	}
	if result.Issues[0].AssetPath != b.Path {
		t.Errorf("expected issue on %s, got %s", b.Path, result.Issues[0].AssetPath)
	}
}

func TestFindDuplicates_NoDuplicates(t *testing.T) {
	dir := t.TempDir()

	a := writeAsset(t, dir, "one.png", []byte("alpha"))
	b := writeAsset(t, dir, "two.png", []byte("beta content"))

	result := FindDuplicates([]*models.AssetInfo{a, b})
	if result.IssueCount != 0 {
		t.Errorf("expected no issues, got %d", result.IssueCount)
	}
}

func TestFindDuplicates_UnreadableFileSkipped(t *testing.T) {
	dir := t.TempDir()

	payload := []byte("content shared by pair")
	a := writeAsset(t, dir, "ok1.png", payload)
	b := writeAsset(t, dir, "ok2.png", payload)

	// Same size as the pair but the file does not exist on disk.
	ghost := &models.AssetInfo{
		Path: filepath.Join(dir, "missing.png"),
		Name: "missing.png",
		Size: int64(len(payload)),
	}

	result := FindDuplicates([]*models.AssetInfo{ghost, a, b})
	if result.IssueCount != 1 {
		t.Fatalf("expected 1 issue, got %d", result.IssueCount)
	}
	if result.Issues[0].AssetPath != b.Path {
		t.Errorf("expected issue on %s, got %s", b.Path, result.Issues[0].AssetPath)
	}
}
