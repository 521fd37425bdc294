package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

// generateText generates a plain-text report
func (g *Generator) generateText(scan *models.ScanResult, analysis *models.AnalysisResult, outputFile string) error {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString("  TIDYCRAFT ASSET REPORT\n")
	sb.WriteString(strings.Repeat("=", 79) + "\n\n")

	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	sb.WriteString(fmt.Sprintf("Project Path:     %s\n", scan.RootPath))
	sb.WriteString(fmt.Sprintf("Project Type:     %s\n", scan.ProjectType))
	sb.WriteString(fmt.Sprintf("Total Assets:     %d\n", scan.TotalCount))
	sb.WriteString(fmt.Sprintf("Total Size:       %s\n", FormatBytes(scan.TotalSize)))
	if scan.Incremental != nil {
		sb.WriteString(fmt.Sprintf("From Cache:       %d\n", scan.Incremental.CachedFiles))
		sb.WriteString(fmt.Sprintf("Rescanned:        %d\n", scan.Incremental.RescannedFiles))
	}
	sb.WriteString("\n")

	sb.WriteString("ASSETS BY TYPE\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	for _, t := range []models.AssetType{
		models.TypeTexture, models.TypeModel, models.TypeAudio,
		models.TypeScript, models.TypeScene, models.TypeMaterial,
		models.TypeAnimation, models.TypePrefab, models.TypeData,
		models.TypeOther,
	} {
		if count := scan.TypeCounts[t]; count > 0 {
			sb.WriteString(fmt.Sprintf("  %-12s: %d\n", t, count))
		}
	}
	sb.WriteString("\n")

	if analysis != nil {
		if analysis.IssueCount > 0 {
			sb.WriteString("ISSUES BY SEVERITY\n")
			sb.WriteString(strings.Repeat("-", 79) + "\n")
			if analysis.ErrorCount > 0 {
				sb.WriteString(fmt.Sprintf("  %-10s: %d\n", "ERROR", analysis.ErrorCount))
			}
			if analysis.WarningCount > 0 {
				sb.WriteString(fmt.Sprintf("  %-10s: %d\n", "WARNING", analysis.WarningCount))
			}
			if analysis.InfoCount > 0 {
				sb.WriteString(fmt.Sprintf("  %-10s: %d\n", "INFO", analysis.InfoCount))
			}
			sb.WriteString("\n")

			sb.WriteString("DETAILED ISSUES\n")
			sb.WriteString(strings.Repeat("=", 79) + "\n\n")

			for i, issue := range analysis.Issues {
				sb.WriteString(fmt.Sprintf("[%d] %s\n", i+1, issue.RuleName))
				sb.WriteString(strings.Repeat("-", 79) + "\n")
				sb.WriteString(fmt.Sprintf("File:        %s\n", issue.AssetPath))
				sb.WriteString(fmt.Sprintf("Severity:    %s\n", strings.ToUpper(string(issue.Severity))))
				sb.WriteString(fmt.Sprintf("Rule:        %s\n", issue.RuleID))
				sb.WriteString(fmt.Sprintf("Detail:      %s\n", issue.Message))
				if issue.Suggestion != "" {
					sb.WriteString(fmt.Sprintf("Suggestion:  %s\n", issue.Suggestion))
				}
				sb.WriteString("\n")
			}
		} else {
			sb.WriteString("No issues found.\n\n")
		}
	}

	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString("End of Report\n")
	sb.WriteString(strings.Repeat("=", 79) + "\n")

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}
