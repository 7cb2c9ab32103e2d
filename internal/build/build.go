// Package build defines the normalized model for one tracked PR's CI state.
package build

import (
	"fmt"
	"time"
)

// Status is the normalized build status reported by Jenkins.
type Status int

const (
	// StatusPending means the build has not started or cannot be confirmed yet.
	StatusPending Status = iota
	// StatusRunning means the build is in progress.
	StatusRunning
	// StatusSuccess means the build completed successfully.
	StatusSuccess
	// StatusFailure means the build completed with failures.
	StatusFailure
	// StatusUnstable means the build completed but was marked unstable.
	StatusUnstable
	// StatusAborted means the build was cancelled.
	StatusAborted
	// StatusError means the last fetch itself failed.
	StatusError
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusUnstable:
		return "unstable"
	case StatusAborted:
		return "aborted"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Record is a normalized snapshot of one PR's latest known CI status.
// PRNumber is the identity key; everything else is refreshed in place.
type Record struct {
	PRNumber     string        `json:"pr_number"`
	BuildNumber  int           `json:"build_number,omitempty"`
	Status       Status        `json:"status"`
	Stage        string        `json:"stage,omitempty"`
	JobName      string        `json:"job_name,omitempty"`
	Duration     time.Duration `json:"duration,omitempty"`
	BuildURL     string        `json:"build_url,omitempty"`
	PRURL        string        `json:"pr_url,omitempty"`
	JobPath      string        `json:"job_path,omitempty"`
	LastUpdated  time.Time     `json:"last_updated"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// IsRunning reports whether the build is currently in progress.
func (r Record) IsRunning() bool {
	return r.Status == StatusRunning
}

// IsSuccess reports whether the build completed successfully.
func (r Record) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// IsFailure reports whether the build is in a failed state.
// Aborted builds and fetch errors count as failures for display purposes.
func (r Record) IsFailure() bool {
	switch r.Status {
	case StatusFailure, StatusAborted, StatusError:
		return true
	}
	return false
}

// FormatDuration renders the build duration as "1h 2m 3s", "2m 3s", or "3s".
// Returns "N/A" when the duration is unset.
func (r Record) FormatDuration() string {
	if r.Duration == 0 {
		return "N/A"
	}

	total := int(r.Duration.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
