package analyzer

import (
	"testing"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

func u32(v uint32) *uint32 { return &v }

func textureAsset(name string, width, height uint32, size int64) *models.AssetInfo {
	return &models.AssetInfo{
		Path:      "/project/Assets/" + name,
		Name:      name,
		Extension: "png",
		Type:      models.TypeTexture,
		Size:      size,
		Metadata: &models.AssetMetadata{
			Width:  u32(width),
			Height: u32(height),
		},
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	tests := []struct {
		n        uint32
		expected bool
	}{
		{0, false},
		{1, true},
		{2, true},
		{3, false},
		{256, true},
		{300, false},
		{1024, true},
		{4096, true},
		{4100, false},
	}

	for _, tt := range tests {
		if got := isPowerOfTwo(tt.n); got != tt.expected {
			t.Errorf("isPowerOfTwo(%d): expected %v, got %v", tt.n, tt.expected, got)
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		n        uint32
		expected uint32
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{300, 512},
		{512, 512},
		{513, 1024},
		{4100, 8192},
	}

	for _, tt := range tests {
		if got := nextPowerOfTwo(tt.n); got != tt.expected {
			t.Errorf("nextPowerOfTwo(%d): expected %d, got %d", tt.n, tt.expected, got)
		}
	}
}

func TestTextureRule_CheckOrder(t *testing.T) {
	cfg := DefaultRuleConfig().Texture
	cfg.RequirePOT = true
	cfg.WarnNonSquare = true
	rule := NewTextureRule(cfg)

	tests := []struct {
		name     string
		asset    *models.AssetInfo
		expected string // rule ID, "" for no issue
	}{
		{
			name:     "compliant texture",
			asset:    textureAsset("T_Wall.png", 1024, 1024, 2048),
			expected: "",
		},
		{
			name:     "non-pot reported before max size",
			asset:    textureAsset("T_Big.png", 4100, 4100, 2048),
			expected: "texture.pot",
		},
		{
			name:     "oversized pot texture",
			asset:    textureAsset("T_Huge.png", 8192, 8192, 2048),
			expected: "texture.max_size",
		},
		{
			name:     "tiny texture",
			asset:    textureAsset("T_Dot.png", 2, 2, 16),
			expected: "texture.min_size",
		},
		{
			name:     "non-square",
			asset:    textureAsset("T_Strip.png", 1024, 512, 2048),
			expected: "texture.non_square",
		},
		{
			name:     "file too large",
			asset:    textureAsset("T_Fat.png", 1024, 1024, 11*1024*1024),
			expected: "texture.file_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := rule.Check(tt.asset)
			if tt.expected == "" {
				if issue != nil {
					t.Errorf("expected no issue, got %s", issue.RuleID)
				}
				return
			}
			if issue == nil {
				t.Fatalf("expected issue %s, got none", tt.expected)
			}
			if issue.RuleID != tt.expected {
				t.Errorf("expected rule %s, got %s", tt.expected, issue.RuleID)
			}
		})
	}
}

func TestTextureRule_DefaultPOTDisabled(t *testing.T) {
	rule := NewTextureRule(DefaultRuleConfig().Texture)

	// 4100x4100 is not a power of two, but with POT disabled the size
	// limit is the first check that fires.
	issue := rule.Check(textureAsset("T_Terrain.png", 4100, 4100, 2048))
	if issue == nil {
		t.Fatal("expected an issue for 4100x4100 texture")
	}
	if issue.RuleID != "texture.max_size" {
		t.Errorf("expected texture.max_size, got %s", issue.RuleID)
	}
	if issue.Severity != models.SeverityWarning {
		t.Errorf("expected warning severity, got %s", issue.Severity)
	}
}

func TestTextureRule_NoMetadataAbstains(t *testing.T) {
	rule := NewTextureRule(DefaultRuleConfig().Texture)

	// No extracted metadata means the rule abstains entirely, even for an
	// oversized file.
	asset := &models.AssetInfo{
		Path: "/project/Assets/T_Broken.dds",
		Name: "T_Broken.dds",
		Type: models.TypeTexture,
		Size: 11 * 1024 * 1024,
	}
	if issue := rule.Check(asset); issue != nil {
		t.Errorf("expected no issue without metadata, got %s", issue.RuleID)
	}
}

func TestTextureRule_MissingDimensions(t *testing.T) {
	rule := NewTextureRule(DefaultRuleConfig().Texture)

	// Metadata without dimensions: dimension checks abstain, file size
	// still applies.
	asset := &models.AssetInfo{
		Path:     "/project/Assets/T_Broken.png",
		Name:     "T_Broken.png",
		Type:     models.TypeTexture,
		Size:     100,
		Metadata: &models.AssetMetadata{},
	}
	if issue := rule.Check(asset); issue != nil {
		t.Errorf("expected no issue for small file, got %s", issue.RuleID)
	}

	asset.Size = 11 * 1024 * 1024
	issue := rule.Check(asset)
	if issue == nil || issue.RuleID != "texture.file_size" {
		t.Errorf("expected texture.file_size for oversized file, got %v", issue)
	}
}

func TestTextureRule_AppliesTo(t *testing.T) {
	rule := NewTextureRule(DefaultRuleConfig().Texture)

	if !rule.AppliesTo(&models.AssetInfo{Type: models.TypeTexture}) {
		t.Error("expected rule to apply to textures")
	}
	if rule.AppliesTo(&models.AssetInfo{Type: models.TypeAudio}) {
		t.Error("expected rule to skip audio")
	}
}
