package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

// generateCSV writes one issue per row, suitable for spreadsheet triage
func (g *Generator) generateCSV(analysis *models.AnalysisResult, outputFile string) error {
	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"rule_id", "rule_name", "severity", "asset_path", "message", "suggestion", "auto_fixable"}); err != nil {
		return err
	}

	if analysis != nil {
		for _, issue := range analysis.Issues {
			record := []string{
				issue.RuleID,
				issue.RuleName,
				string(issue.Severity),
				issue.AssetPath,
				issue.Message,
				issue.Suggestion,
				strconv.FormatBool(issue.AutoFixable),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}
