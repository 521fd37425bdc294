package models

// Severity ranks an issue for aggregation and display
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one policy violation reported against one asset. Issues are
// immutable once created by a rule check.
type Issue struct {
	RuleID      string   `json:"rule_id"`
	RuleName    string   `json:"rule_name"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	AssetPath   string   `json:"asset_path"`
	Suggestion  string   `json:"suggestion,omitempty"`
	AutoFixable bool     `json:"auto_fixable"`
}

// AnalysisResult is an ordered list of issues plus running totals. All
// mutation goes through AddIssue so the derived counts stay consistent:
// IssueCount == len(Issues) and ErrorCount+WarningCount+InfoCount == IssueCount.
type AnalysisResult struct {
	Issues       []Issue        `json:"issues"`
	IssueCount   int            `json:"issue_count"`
	ErrorCount   int            `json:"error_count"`
	WarningCount int            `json:"warning_count"`
	InfoCount    int            `json:"info_count"`
	ByRule       map[string]int `json:"by_rule"`
}

// NewAnalysisResult creates an empty result
func NewAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		Issues: []Issue{},
		ByRule: make(map[string]int),
	}
}

// AddIssue appends an issue and updates every derived total
func (r *AnalysisResult) AddIssue(issue Issue) {
	switch issue.Severity {
	case SeverityError:
		r.ErrorCount++
	case SeverityWarning:
		r.WarningCount++
	case SeverityInfo:
		r.InfoCount++
	}

	if r.ByRule == nil {
		r.ByRule = make(map[string]int)
	}
	r.ByRule[issue.RuleID]++
	r.IssueCount++
	r.Issues = append(r.Issues, issue)
}

// Merge folds every issue of other into r in order. Merging is associative
// and equivalent to sequential AddIssue calls.
func (r *AnalysisResult) Merge(other *AnalysisResult) {
	if other == nil {
		return
	}
	for _, issue := range other.Issues {
		r.AddIssue(issue)
	}
}
