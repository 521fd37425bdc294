package analyzer

import (
	"fmt"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

// TextureRule checks texture dimensions and on-disk size. The rule
// abstains entirely for textures with no extracted metadata; with
// metadata but no dimensions only the file size check applies.
type TextureRule struct {
	BaseRule
	config TextureConfig
}

// NewTextureRule creates the texture rule with the given limits
func NewTextureRule(cfg TextureConfig) *TextureRule {
	return &TextureRule{
		BaseRule: NewBaseRule("texture", "Texture Specification"),
		config:   cfg,
	}
}

// AppliesTo reports true for texture assets
func (r *TextureRule) AppliesTo(asset *models.AssetInfo) bool {
	return asset.Type == models.TypeTexture
}

// Check returns the first texture violation for the asset, if any
func (r *TextureRule) Check(asset *models.AssetInfo) *models.Issue {
	if asset.Metadata == nil {
		return nil
	}

	if asset.Metadata.Width != nil && asset.Metadata.Height != nil {
		width := *asset.Metadata.Width
		height := *asset.Metadata.Height

		if r.config.RequirePOT && (!isPowerOfTwo(width) || !isPowerOfTwo(height)) {
			return &models.Issue{
				RuleID:     "texture.pot",
				RuleName:   "Non Power of Two",
				Severity:   models.SeverityWarning,
				Message:    fmt.Sprintf("Texture is %dx%d, dimensions should be powers of two", width, height),
				AssetPath:  asset.Path,
				Suggestion: fmt.Sprintf("Resize to %dx%d", nextPowerOfTwo(width), nextPowerOfTwo(height)),
			}
		}

		if width > r.config.MaxSize || height > r.config.MaxSize {
			return &models.Issue{
				RuleID:     "texture.max_size",
				RuleName:   "Texture Too Large",
				Severity:   models.SeverityWarning,
				Message:    fmt.Sprintf("Texture is %dx%d, max allowed is %dx%d", width, height, r.config.MaxSize, r.config.MaxSize),
				AssetPath:  asset.Path,
				Suggestion: fmt.Sprintf("Resize so neither dimension exceeds %d", r.config.MaxSize),
			}
		}

		if width < r.config.MinSize || height < r.config.MinSize {
			return &models.Issue{
				RuleID:     "texture.min_size",
				RuleName:   "Texture Too Small",
				Severity:   models.SeverityInfo,
				Message:    fmt.Sprintf("Texture is %dx%d, min expected is %dx%d", width, height, r.config.MinSize, r.config.MinSize),
				AssetPath:  asset.Path,
				Suggestion: "Verify this texture is intentionally tiny",
			}
		}

		if r.config.WarnNonSquare && width != height {
			return &models.Issue{
				RuleID:     "texture.non_square",
				RuleName:   "Non-Square Texture",
				Severity:   models.SeverityInfo,
				Message:    fmt.Sprintf("Texture is %dx%d, not square", width, height),
				AssetPath:  asset.Path,
				Suggestion: "Consider a square texture for better mipmapping",
			}
		}
	}

	if asset.Size > r.config.MaxFileSize {
		return &models.Issue{
			RuleID:     "texture.file_size",
			RuleName:   "Texture File Too Large",
			Severity:   models.SeverityWarning,
			Message:    fmt.Sprintf("Texture file is %.1f MB, max allowed is %.1f MB", float64(asset.Size)/1048576.0, float64(r.config.MaxFileSize)/1048576.0),
			AssetPath:  asset.Path,
			Suggestion: "Use a compressed texture format or reduce resolution",
		}
	}

	return nil
}

func isPowerOfTwo(n uint32) bool {
	return n > 0 && (n&(n-1)) == 0
}

// nextPowerOfTwo returns the smallest power of two >= n (1 for n == 0)
func nextPowerOfTwo(n uint32) uint32 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	return n + 1
}
