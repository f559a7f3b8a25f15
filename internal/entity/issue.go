package entity

// AccessibilityIssue is a finding reported by the backend analyzer. Severity
// keeps the backend's symbolic form (e.g. "SEVERITY_ERROR").
type AccessibilityIssue struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	NodeID   string `json:"node_id"`
}
