// Package model provides data models for the blocked-mail check.
package model

import "fmt"

// Report is the final result of one log scan. It is computed once, after
// the scan completes, and never mutated afterwards.
type Report struct {
	Status         Status `json:"status"`
	BlockedCount   int    `json:"blocked_count"`
	WorrisomeCount int    `json:"worrisome_count"`
	Note           string `json:"note"`
}

// NewReport builds a Report from the final set sizes and thresholds.
// Precedence: worrisome >= critical wins over worrisome >= warning; the
// ordering of the two thresholds themselves is not enforced.
func NewReport(blockedCount, worrisomeCount, warn, crit int) *Report {
	status := StatusOK
	if worrisomeCount >= crit {
		status = StatusCritical
	} else if worrisomeCount >= warn {
		status = StatusWarning
	}

	return &Report{
		Status:         status,
		BlockedCount:   blockedCount,
		WorrisomeCount: worrisomeCount,
		Note:           formatNote(status, blockedCount, worrisomeCount),
	}
}

// NewUnscannedReport builds the Report returned when no scan was performed.
func NewUnscannedReport() *Report {
	return &Report{
		Status: StatusUnknown,
		Note:   fmt.Sprintf("%s No mail log analysis to report on", StatusUnknown),
	}
}

// formatNote renders the status line. The pipe-delimited suffix is Nagios
// performance data and must keep exactly these key names.
func formatNote(status Status, blocked, worrisome int) string {
	return fmt.Sprintf("%s %d worrisome | blocked=%d worrisome=%d",
		status, worrisome, blocked, worrisome)
}
