// Package model provides data models for the blocked-mail check.
package model

// Status represents a monitoring check outcome, following the Nagios
// plugin convention.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
	StatusUnknown
)

// statusNames maps each status to its display name used in the status line.
var statusNames = map[Status]string{
	StatusOK:       "OK",
	StatusWarning:  "WARN",
	StatusCritical: "CRITICAL",
	StatusUnknown:  "UNKNOWN",
}

// String returns the display name for the status (OK, WARN, CRITICAL, UNKNOWN).
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ExitCode returns the process exit code for the status.
// OK=0, WARNING=1, CRITICAL=2, UNKNOWN=3.
func (s Status) ExitCode() int {
	switch s {
	case StatusOK, StatusWarning, StatusCritical:
		return int(s)
	default:
		return int(StatusUnknown)
	}
}

// IsWarning returns true if this status is at warning level.
func (s Status) IsWarning() bool {
	return s == StatusWarning
}

// IsCritical returns true if this status is at critical level.
func (s Status) IsCritical() bool {
	return s == StatusCritical
}
