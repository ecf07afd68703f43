package model

import "testing"

func TestNewReport_StatusPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		worrisome int
		warn      int
		crit      int
		want      Status
	}{
		{"below both", 0, 1, 2, StatusOK},
		{"at warning", 1, 1, 2, StatusWarning},
		{"between", 1, 1, 5, StatusWarning},
		{"at critical", 2, 1, 2, StatusCritical},
		{"above critical", 9, 1, 2, StatusCritical},
		{"equal thresholds hit critical", 1, 1, 1, StatusCritical},
		{"inverted thresholds hit critical", 1, 5, 1, StatusCritical},
		{"inverted thresholds below critical", 0, 5, 1, StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewReport(10, tt.worrisome, tt.warn, tt.crit)
			if report.Status != tt.want {
				t.Errorf("status = %s, want %s", report.Status, tt.want)
			}
		})
	}
}

func TestNewReport_Note(t *testing.T) {
	report := NewReport(7, 3, 1, 5)

	want := "WARN 3 worrisome | blocked=7 worrisome=3"
	if report.Note != want {
		t.Errorf("Note = %q, want %q", report.Note, want)
	}
	if report.BlockedCount != 7 || report.WorrisomeCount != 3 {
		t.Errorf("counts = (%d, %d), want (7, 3)", report.BlockedCount, report.WorrisomeCount)
	}
}

func TestNewUnscannedReport(t *testing.T) {
	report := NewUnscannedReport()

	if report.Status != StatusUnknown {
		t.Errorf("status = %s, want UNKNOWN", report.Status)
	}
	want := "UNKNOWN No mail log analysis to report on"
	if report.Note != want {
		t.Errorf("Note = %q, want %q", report.Note, want)
	}
	if report.BlockedCount != 0 || report.WorrisomeCount != 0 {
		t.Error("unscanned report must carry zero counts")
	}
}
