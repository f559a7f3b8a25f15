package response

import "github.com/user/openperf-gateway/internal/entity"

type SubmitPageResponse struct {
	PageID string `json:"pageId"`
}

// StatusResponse is the fixed acknowledgement for fire-and-forget calls.
type StatusResponse struct {
	Status string `json:"status"`
}

type IssuesResponse struct {
	Issues []entity.AccessibilityIssue `json:"issues"`
}

// DisplayIssue is an accessibility finding shaped for the dashboard table.
type DisplayIssue struct {
	Element     string `json:"element"`
	Description string `json:"description"`
	Severity    int    `json:"severity"` // 3 high, 2 medium, 1 low
	Tier        string `json:"tier"`
}

type DisplayIssuesResponse struct {
	Issues []DisplayIssue `json:"issues"`
}

type SamplesResponse struct {
	Samples []entity.MetricSample `json:"samples"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// NewDisplayIssues maps engine findings onto the numeric severity scale.
func NewDisplayIssues(issues []entity.AccessibilityIssue) []DisplayIssue {
	out := make([]DisplayIssue, 0, len(issues))
	for _, issue := range issues {
		level := entity.SeverityLevel(issue.Severity)
		out = append(out, DisplayIssue{
			Element:     issue.NodeID,
			Description: issue.Message,
			Severity:    level,
			Tier:        entity.SeverityTier(level),
		})
	}
	return out
}
