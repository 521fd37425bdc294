package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Lynthar/Tidycraft/pkg/models"
)

// JSONReport combines scan results with analysis issues for JSON output
type JSONReport struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Scan        *models.ScanResult     `json:"scan"`
	Analysis    *models.AnalysisResult `json:"analysis,omitempty"`
}

// generateJSON generates a JSON report
func (g *Generator) generateJSON(scan *models.ScanResult, analysis *models.AnalysisResult, outputFile string) error {
	report := &JSONReport{
		GeneratedAt: time.Now(),
		Scan:        scan,
		Analysis:    analysis,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, data, 0644)
}
