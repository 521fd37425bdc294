package scanner

import (
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/Lynthar/Tidycraft/internal/analyzer"
	"github.com/Lynthar/Tidycraft/pkg/models"
)

// wavBytes builds a minimal PCM WAV: mono, 16-bit, 44.1 kHz, silence.
func wavBytes(samples int) []byte {
	dataLen := samples * 2
	buf := make([]byte, 44+dataLen)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataLen))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], 1) // mono
	binary.LittleEndian.PutUint32(buf[24:28], 44100)
	binary.LittleEndian.PutUint32(buf[28:32], 44100*2)
	binary.LittleEndian.PutUint16(buf[32:34], 2)
	binary.LittleEndian.PutUint16(buf[34:36], 16)

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataLen))
	return buf
}

// TestScanAnalyzePipeline runs the full scan-then-analyze flow over a real
// directory: a compliant icon, an oversized texture, and a duplicated
// music clip. With the default configuration the oversized texture gets
// exactly one size warning (no power-of-two complaint) and the copied
// clip gets exactly one duplicate warning.
func TestScanAnalyzePipeline(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Assets", "Textures", "T_Icon.png"), pngBytes(64, 64))
	writeFile(t, filepath.Join(root, "Assets", "Textures", "T_Terrain.png"), pngBytes(4100, 4100))

	clip := wavBytes(256)
	writeFile(t, filepath.Join(root, "Assets", "Audio", "theme_music.wav"), clip)
	writeFile(t, filepath.Join(root, "Assets", "Audio", "theme_music_copy.wav"), clip)

	s := newTestScanner(t)
	scan, err := s.Scan(root)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if scan.TotalCount != 4 {
		t.Fatalf("expected 4 assets, got %d", scan.TotalCount)
	}

	a := analyzer.NewAnalyzerWithConfig(analyzer.DefaultRuleConfig(), s.logger)
	analysis := a.AnalyzeProject(scan)

	if analysis.IssueCount != 2 {
		for _, issue := range analysis.Issues {
			t.Logf("issue: %s on %s", issue.RuleID, issue.AssetPath)
		}
		t.Fatalf("expected exactly 2 issues, got %d", analysis.IssueCount)
	}
	if analysis.WarningCount != 2 {
		t.Errorf("expected 2 warnings, got %d", analysis.WarningCount)
	}

	byRule := map[string]models.Issue{}
	for _, issue := range analysis.Issues {
		byRule[issue.RuleID] = issue
	}

	size, ok := byRule["texture.max_size"]
	if !ok {
		t.Fatal("missing texture.max_size issue")
	}
	if filepath.Base(size.AssetPath) != "T_Terrain.png" {
		t.Errorf("size warning on wrong asset: %s", size.AssetPath)
	}

	dup, ok := byRule["duplicate"]
	if !ok {
		t.Fatal("missing duplicate issue")
	}
	// The first clip in sorted order is the original; the copy is flagged.
	if filepath.Base(dup.AssetPath) != "theme_music_copy.wav" {
		t.Errorf("duplicate warning on wrong asset: %s", dup.AssetPath)
	}
}
