package analyzer

import (
	"fmt"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

// ModelRule checks mesh complexity. Each check abstains when the
// corresponding metadata field is missing.
type ModelRule struct {
	BaseRule
	config ModelConfig
}

// NewModelRule creates the model rule with the given limits
func NewModelRule(cfg ModelConfig) *ModelRule {
	return &ModelRule{
		BaseRule: NewBaseRule("model", "Model Complexity"),
		config:   cfg,
	}
}

// AppliesTo reports true for model assets
func (r *ModelRule) AppliesTo(asset *models.AssetInfo) bool {
	return asset.Type == models.TypeModel
}

// Check returns the first model violation for the asset, if any
func (r *ModelRule) Check(asset *models.AssetInfo) *models.Issue {
	if asset.Metadata == nil {
		return nil
	}

	if asset.Metadata.VertexCount != nil && *asset.Metadata.VertexCount > r.config.MaxVertices {
		return &models.Issue{
			RuleID:     "model.vertices",
			RuleName:   "Too Many Vertices",
			Severity:   models.SeverityWarning,
			Message:    fmt.Sprintf("Model has %d vertices, max allowed is %d", *asset.Metadata.VertexCount, r.config.MaxVertices),
			AssetPath:  asset.Path,
			Suggestion: "Decimate the mesh or split it into LODs",
		}
	}

	if asset.Metadata.FaceCount != nil && *asset.Metadata.FaceCount > r.config.MaxFaces {
		return &models.Issue{
			RuleID:     "model.faces",
			RuleName:   "Too Many Faces",
			Severity:   models.SeverityWarning,
			Message:    fmt.Sprintf("Model has %d faces, max allowed is %d", *asset.Metadata.FaceCount, r.config.MaxFaces),
			AssetPath:  asset.Path,
			Suggestion: "Reduce face count for this model",
		}
	}

	if asset.Metadata.MaterialCount != nil && *asset.Metadata.MaterialCount > r.config.MaxMaterials {
		return &models.Issue{
			RuleID:     "model.materials",
			RuleName:   "Too Many Materials",
			Severity:   models.SeverityWarning,
			Message:    fmt.Sprintf("Model uses %d materials, max allowed is %d", *asset.Metadata.MaterialCount, r.config.MaxMaterials),
			AssetPath:  asset.Path,
			Suggestion: "Merge materials or atlas the textures",
		}
	}

	return nil
}
