package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Lynthar/Tidycraft/pkg/models"
	"go.uber.org/zap"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
	colorGray   = "\033[38;5;245m"
)

// FormatBytes formats a byte count to a human-readable string
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.2fs", mins, secs)
}

// Generator writes scan and analysis reports in various formats
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a new report generator
func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{logger: logger}
}

// Generate writes a report for the scan and analysis results. An empty
// format prints to the console; otherwise the report goes to outputFile,
// which defaults to a timestamped name in the current directory. Returns
// the absolute path of the written file, or "" for console output.
func (g *Generator) Generate(scan *models.ScanResult, analysis *models.AnalysisResult, format, outputFile string) (string, error) {
	if format == "" {
		g.printConsole(scan, analysis)
		return "", nil
	}

	if outputFile == "" {
		timestamp := time.Now().Format("20060102-150405")
		switch format {
		case "json":
			outputFile = fmt.Sprintf("tidycraft-report-%s.json", timestamp)
		case "txt", "text":
			outputFile = fmt.Sprintf("tidycraft-report-%s.txt", timestamp)
		case "csv":
			outputFile = fmt.Sprintf("tidycraft-report-%s.csv", timestamp)
		default:
			return "", fmt.Errorf("unknown report format: %s", format)
		}
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	var err error
	switch format {
	case "json":
		err = g.generateJSON(scan, analysis, outputFile)
	case "txt", "text":
		err = g.generateText(scan, analysis, outputFile)
	case "csv":
		err = g.generateCSV(analysis, outputFile)
	}

	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}

// printConsole prints results to stdout with colors
func (g *Generator) printConsole(scan *models.ScanResult, analysis *models.AnalysisResult) {
	fmt.Println()
	fmt.Printf("%s%sSCAN COMPLETE%s\n", colorBold, colorCyan, colorReset)
	fmt.Println()

	fmt.Printf("  %sPath:%s     %s\n", colorGray, colorReset, scan.RootPath)
	fmt.Printf("  %sProject:%s  %s\n", colorGray, colorReset, scan.ProjectType)
	fmt.Printf("  %sAssets:%s   %d\n", colorGray, colorReset, scan.TotalCount)
	fmt.Printf("  %sSize:%s     %s\n", colorGray, colorReset, FormatBytes(scan.TotalSize))
	fmt.Println()

	if len(scan.TypeCounts) > 0 {
		fmt.Printf("  %sBy type:%s\n", colorGray, colorReset)
		for _, t := range []models.AssetType{
			models.TypeTexture, models.TypeModel, models.TypeAudio,
			models.TypeScript, models.TypeScene, models.TypeMaterial,
			models.TypeAnimation, models.TypePrefab, models.TypeData,
			models.TypeOther,
		} {
			if count := scan.TypeCounts[t]; count > 0 {
				fmt.Printf("    %-10s %d\n", t, count)
			}
		}
		fmt.Println()
	}

	if analysis == nil {
		return
	}

	if analysis.IssueCount == 0 {
		fmt.Printf("  %s%s✓ No issues found%s\n", colorBold, colorGreen, colorReset)
		fmt.Println()
		return
	}

	fmt.Printf("  %s%s⚠ ISSUES FOUND: %d%s (%s%d errors%s, %s%d warnings%s, %s%d info%s)\n",
		colorBold, colorYellow, analysis.IssueCount, colorReset,
		colorRed, analysis.ErrorCount, colorReset,
		colorYellow, analysis.WarningCount, colorReset,
		colorBlue, analysis.InfoCount, colorReset)
	fmt.Println()
	fmt.Printf("%s───────────────────────────────────────────────────────────────%s\n", colorGray, colorReset)

	for i, issue := range analysis.Issues {
		severityColor := getSeverityColor(issue.Severity)
		severityLabel := strings.ToUpper(string(issue.Severity))

		fmt.Printf("\n  %s%s[%d]%s %s%s%s\n", colorBold, colorWhite, i+1, colorReset, colorBold, issue.RuleName, colorReset)
		fmt.Printf("      %sSeverity:%s  %s%s%s\n", colorGray, colorReset, severityColor, severityLabel, colorReset)
		fmt.Printf("      %sFile:%s      %s\n", colorGray, colorReset, issue.AssetPath)
		fmt.Printf("      %sDetail:%s    %s\n", colorGray, colorReset, issue.Message)
		if issue.Suggestion != "" {
			fmt.Printf("      %sFix:%s       %s%s%s\n", colorGray, colorReset, colorDim, issue.Suggestion, colorReset)
		}
	}

	fmt.Println()
	fmt.Printf("%s───────────────────────────────────────────────────────────────%s\n", colorGray, colorReset)
	fmt.Println()
}

// getSeverityColor returns ANSI color for severity level
func getSeverityColor(severity models.Severity) string {
	switch severity {
	case models.SeverityError:
		return colorRed + colorBold
	case models.SeverityWarning:
		return colorYellow
	case models.SeverityInfo:
		return colorBlue
	default:
		return colorWhite
	}
}
