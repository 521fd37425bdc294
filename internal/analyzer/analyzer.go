// Package analyzer runs a configurable set of policy rules over a scan
// result and aggregates the violations.
package analyzer

import (
	"go.uber.org/zap"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

// Rule is one named unit of policy. A rule reports at most one issue per
// asset: Check returns the first violation it detects, in a fixed internal
// order, or nil.
type Rule interface {
	// ID returns the rule family identifier
	ID() string

	// Name returns the human-readable rule name
	Name() string

	// AppliesTo reports whether this rule evaluates the given asset
	AppliesTo(asset *models.AssetInfo) bool

	// Check runs the rule and returns the first violation found, if any
	Check(asset *models.AssetInfo) *models.Issue
}

// BaseRule provides the identity plumbing shared by all rules
type BaseRule struct {
	id   string
	name string
}

// NewBaseRule creates the shared rule identity
func NewBaseRule(id, name string) BaseRule {
	return BaseRule{id: id, name: name}
}

// ID returns the rule family identifier
func (r *BaseRule) ID() string { return r.id }

// Name returns the human-readable rule name
func (r *BaseRule) Name() string { return r.name }

// Analyzer holds the rule set for one analysis invocation
type Analyzer struct {
	rules  []Rule
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer with no rules registered
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// NewAnalyzerWithConfig assembles the rule set from a configuration
// record. Disabled rule families are omitted entirely, not evaluated.
func NewAnalyzerWithConfig(cfg *RuleConfig, logger *zap.Logger) *Analyzer {
	a := NewAnalyzer(logger)

	if cfg.Naming.Enabled {
		a.AddRule(NewNamingRule(cfg.Naming))
	}
	if cfg.Texture.Enabled {
		a.AddRule(NewTextureRule(cfg.Texture))
	}
	if cfg.Model.Enabled {
		a.AddRule(NewModelRule(cfg.Model))
	}
	if cfg.Audio.Enabled {
		a.AddRule(NewAudioRule(cfg.Audio))
	}

	return a
}

// AddRule registers a rule
func (a *Analyzer) AddRule(rule Rule) {
	a.rules = append(a.rules, rule)
	if a.logger != nil {
		a.logger.Debug("Registered rule", zap.String("rule", rule.ID()))
	}
}

// AnalyzeAsset runs every applicable rule against one asset, in
// registration order.
func (a *Analyzer) AnalyzeAsset(asset *models.AssetInfo) []models.Issue {
	var issues []models.Issue
	for _, rule := range a.rules {
		if !rule.AppliesTo(asset) {
			continue
		}
		if issue := rule.Check(asset); issue != nil {
			issues = append(issues, *issue)
		}
	}
	return issues
}

// Analyze evaluates every asset of a scan result against the rule set
func (a *Analyzer) Analyze(scanResult *models.ScanResult) *models.AnalysisResult {
	result := models.NewAnalysisResult()
	for _, asset := range scanResult.Assets {
		for _, issue := range a.AnalyzeAsset(asset) {
			result.AddIssue(issue)
		}
	}
	return result
}

// AnalyzeProject runs the per-asset rules and the cross-asset duplicate
// pass and merges both into one result.
func (a *Analyzer) AnalyzeProject(scanResult *models.ScanResult) *models.AnalysisResult {
	result := a.Analyze(scanResult)
	result.Merge(FindDuplicates(scanResult.Assets))
	return result
}
