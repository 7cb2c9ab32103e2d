package build

import (
	"testing"
	"time"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusPending, "pending"},
		{StatusRunning, "running"},
		{StatusSuccess, "success"},
		{StatusFailure, "failure"},
		{StatusUnstable, "unstable"},
		{StatusAborted, "aborted"},
		{StatusError, "error"},
		{Status(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name        string
		status      Status
		wantRunning bool
		wantSuccess bool
		wantFailure bool
	}{
		{"pending", StatusPending, false, false, false},
		{"running", StatusRunning, true, false, false},
		{"success", StatusSuccess, false, true, false},
		{"failure", StatusFailure, false, false, true},
		{"unstable", StatusUnstable, false, false, false},
		{"aborted", StatusAborted, false, false, true},
		{"error", StatusError, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{Status: tt.status}
			if got := r.IsRunning(); got != tt.wantRunning {
				t.Errorf("IsRunning() = %v, want %v", got, tt.wantRunning)
			}
			if got := r.IsSuccess(); got != tt.wantSuccess {
				t.Errorf("IsSuccess() = %v, want %v", got, tt.wantSuccess)
			}
			if got := r.IsFailure(); got != tt.wantFailure {
				t.Errorf("IsFailure() = %v, want %v", got, tt.wantFailure)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"unset", 0, "N/A"},
		{"seconds only", 45 * time.Second, "45s"},
		{"minutes and seconds", 3*time.Minute + 12*time.Second, "3m 12s"},
		{"hours", time.Hour + 5*time.Minute + 1*time.Second, "1h 5m 1s"},
		{"exact minute", time.Minute, "1m 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{Duration: tt.duration}
			if got := r.FormatDuration(); got != tt.want {
				t.Errorf("FormatDuration() = %q, want %q", got, tt.want)
			}
		})
	}
}
