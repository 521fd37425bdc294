package analyzer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

// NamingRule enforces file-naming policy. Checks run in a fixed order —
// length, forbidden characters, disallowed script, required prefix, case
// style — and the first failure wins.
type NamingRule struct {
	BaseRule
	config NamingConfig
}

// NewNamingRule creates the naming rule with the given thresholds
func NewNamingRule(cfg NamingConfig) *NamingRule {
	return &NamingRule{
		BaseRule: NewBaseRule("naming", "Naming Convention"),
		config:   cfg,
	}
}

// AppliesTo reports true for every asset
func (r *NamingRule) AppliesTo(asset *models.AssetInfo) bool {
	return true
}

// Check returns the first naming violation for the asset, if any
func (r *NamingRule) Check(asset *models.AssetInfo) *models.Issue {
	name := asset.Name
	nameWithoutExt := name
	if idx := strings.LastIndex(name, "."); idx > 0 {
		nameWithoutExt = name[:idx]
	}

	if len(name) > r.config.MaxLength {
		return &models.Issue{
			RuleID:     "naming.length",
			RuleName:   "Name Too Long",
			Severity:   models.SeverityWarning,
			Message:    fmt.Sprintf("File name is %d characters, max allowed is %d", len(name), r.config.MaxLength),
			AssetPath:  asset.Path,
			Suggestion: fmt.Sprintf("Shorten the file name to %d characters", r.config.MaxLength),
		}
	}

	if c := r.firstForbiddenChar(name); c != "" {
		return &models.Issue{
			RuleID:      "naming.forbidden_char",
			RuleName:    "Forbidden Character",
			Severity:    models.SeverityWarning,
			Message:     fmt.Sprintf("File name contains forbidden character: %q", c),
			AssetPath:   asset.Path,
			Suggestion:  fmt.Sprintf("Remove %q from the file name", c),
			AutoFixable: true,
		}
	}

	if r.config.ForbidChinese && containsChinese(name) {
		return &models.Issue{
			RuleID:     "naming.chinese",
			RuleName:   "Chinese Characters",
			Severity:   models.SeverityWarning,
			Message:    "File name contains Chinese characters",
			AssetPath:  asset.Path,
			Suggestion: "Use English characters for file names",
		}
	}

	if prefix := r.missingPrefix(name, asset.Type); prefix != "" {
		return &models.Issue{
			RuleID:      "naming.prefix",
			RuleName:    "Missing Prefix",
			Severity:    models.SeverityWarning,
			Message:     fmt.Sprintf("File name should start with '%s'", prefix),
			AssetPath:   asset.Path,
			Suggestion:  fmt.Sprintf("Rename to %s%s", prefix, name),
			AutoFixable: true,
		}
	}

	// The case style applies to the stem after the type prefix, so that
	// prefixes like "T_" do not break PascalCase or camelCase checks.
	stem := strings.TrimPrefix(nameWithoutExt, r.requiredPrefix(asset.Type))
	if !r.matchesCaseStyle(stem) {
		return &models.Issue{
			RuleID:      "naming.case",
			RuleName:    "Naming Case",
			Severity:    models.SeverityInfo,
			Message:     fmt.Sprintf("File name does not follow %s convention", r.config.CaseStyle),
			AssetPath:   asset.Path,
			Suggestion:  fmt.Sprintf("Use %s for file names", r.config.CaseStyle),
			AutoFixable: true,
		}
	}

	return nil
}

func (r *NamingRule) firstForbiddenChar(name string) string {
	for _, c := range name {
		for _, forbidden := range r.config.ForbiddenChars {
			if string(c) == forbidden {
				return forbidden
			}
		}
	}
	return ""
}

// containsChinese reports whether the name carries CJK ideographs
func containsChinese(name string) bool {
	for _, c := range name {
		if (c >= 0x4E00 && c <= 0x9FFF) ||
			(c >= 0x3400 && c <= 0x4DBF) ||
			(c >= 0x20000 && c <= 0x2A6DF) {
			return true
		}
	}
	return false
}

func (r *NamingRule) requiredPrefix(assetType models.AssetType) string {
	switch assetType {
	case models.TypeTexture:
		return r.config.TexturePrefix
	case models.TypeModel:
		return r.config.ModelPrefix
	case models.TypeAudio:
		return r.config.AudioPrefix
	default:
		return ""
	}
}

func (r *NamingRule) missingPrefix(name string, assetType models.AssetType) string {
	required := r.requiredPrefix(assetType)
	if required != "" && !strings.HasPrefix(name, required) {
		return required
	}
	return ""
}

func (r *NamingRule) matchesCaseStyle(name string) bool {
	switch r.config.CaseStyle {
	case "PascalCase":
		return isPascalCase(name)
	case "snake_case":
		return isSnakeCase(name)
	case "camelCase":
		return isCamelCase(name)
	default: // "any" or unknown
		return true
	}
}

// isPascalCase: first letter uppercase, no underscores, not all-uppercase
func isPascalCase(s string) bool {
	if s == "" {
		return true
	}
	runes := []rune(s)
	if !unicode.IsUpper(runes[0]) || strings.ContainsRune(s, '_') {
		return false
	}
	for _, c := range runes {
		if !unicode.IsUpper(c) {
			return true
		}
	}
	return false
}

// isSnakeCase: every character lowercase, digit, or underscore
func isSnakeCase(s string) bool {
	for _, c := range s {
		if !unicode.IsLower(c) && !unicode.IsDigit(c) && c != '_' {
			return false
		}
	}
	return true
}

// isCamelCase: first letter lowercase, no underscores
func isCamelCase(s string) bool {
	if s == "" {
		return true
	}
	runes := []rune(s)
	return unicode.IsLower(runes[0]) && !strings.ContainsRune(s, '_')
}
