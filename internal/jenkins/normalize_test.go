package jenkins

import (
	"testing"
	"time"

	"github.com/npratt/prdash/internal/build"
)

func TestNormalizeStatusPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    build.Status
	}{
		{"running state wins over success result", map[string]any{"state": "RUNNING", "result": "SUCCESS"}, build.StatusRunning},
		{"in_progress state wins over failure result", map[string]any{"state": "in_progress", "result": "failure"}, build.StatusRunning},
		{"success result", map[string]any{"state": "FINISHED", "result": "SUCCESS"}, build.StatusSuccess},
		{"failure result", map[string]any{"result": "FAILURE"}, build.StatusFailure},
		{"unstable result", map[string]any{"result": "unstable"}, build.StatusUnstable},
		{"aborted result", map[string]any{"result": "ABORTED"}, build.StatusAborted},
		{"unknown result", map[string]any{"result": "NOT_BUILT"}, build.StatusPending},
		{"missing everything", map[string]any{}, build.StatusPending},
		{"nil values", map[string]any{"state": nil, "result": nil}, build.StatusPending},
		{"non-string values", map[string]any{"state": 3, "result": true}, build.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Normalize(tt.payload, "org/app/app-eks", "3859")
			if rec.Status != tt.want {
				t.Errorf("status = %v, want %v", rec.Status, tt.want)
			}
		})
	}
}

func TestNormalizeStageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    string
	}{
		{
			"first running stage",
			map[string]any{"stages": []any{
				map[string]any{"name": "Build", "state": "FINISHED"},
				map[string]any{"name": "Test", "state": "RUNNING"},
				map[string]any{"name": "Deploy", "state": "QUEUED"},
			}},
			"Test",
		},
		{
			"in_progress stage",
			map[string]any{"stages": []any{
				map[string]any{"name": "Lint", "state": "IN_PROGRESS"},
			}},
			"Lint",
		},
		{
			"no running stage uses last",
			map[string]any{"stages": []any{
				map[string]any{"name": "Build", "state": "FINISHED"},
				map[string]any{"name": "Deploy", "state": "FINISHED"},
			}},
			"Deploy",
		},
		{"empty stage list", map[string]any{"stages": []any{}}, ""},
		{"missing stages", map[string]any{}, ""},
		{"stages of wrong shape", map[string]any{"stages": "oops"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Normalize(tt.payload, "org/app/app-eks", "1")
			if rec.Stage != tt.want {
				t.Errorf("stage = %q, want %q", rec.Stage, tt.want)
			}
		})
	}
}

func TestNormalizeJobName(t *testing.T) {
	rec := Normalize(map[string]any{"pipeline": "app-eks"}, "org/app/app-eks", "1")
	if rec.JobName != "app-eks" {
		t.Errorf("job name = %q, want pipeline field", rec.JobName)
	}

	rec = Normalize(map[string]any{}, "org/app/app-eks", "1")
	if rec.JobName != "app-eks" {
		t.Errorf("job name = %q, want last job path segment", rec.JobName)
	}
}

func TestNormalizeBuildNumber(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    int
	}{
		{"number field", map[string]any{"number": float64(142)}, 142},
		{"id field when number missing", map[string]any{"id": "57"}, 57},
		{"number wins over id", map[string]any{"number": float64(142), "id": "57"}, 142},
		{"neither", map[string]any{}, 0},
		{"unparseable id", map[string]any{"id": "latest"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Normalize(tt.payload, "org/app/app-eks", "1")
			if rec.BuildNumber != tt.want {
				t.Errorf("build number = %d, want %d", rec.BuildNumber, tt.want)
			}
		})
	}
}

func TestNormalizeDuration(t *testing.T) {
	rec := Normalize(map[string]any{"durationInMillis": float64(754000)}, "org/app/app-eks", "1")
	if rec.Duration != 754*time.Second {
		t.Errorf("duration = %v, want 754s", rec.Duration)
	}

	for name, payload := range map[string]map[string]any{
		"absent": {},
		"zero":   {"durationInMillis": float64(0)},
	} {
		if rec := Normalize(payload, "org/app/app-eks", "1"); rec.Duration != 0 {
			t.Errorf("%s: duration = %v, want unset", name, rec.Duration)
		}
	}
}

func TestNormalizeIdentity(t *testing.T) {
	rec := Normalize(map[string]any{}, "org/app/app-eks", "3859")
	if rec.PRNumber != "3859" {
		t.Errorf("pr number = %q, want 3859", rec.PRNumber)
	}
	if rec.JobPath != "org/app/app-eks" {
		t.Errorf("job path = %q", rec.JobPath)
	}
	if rec.LastUpdated.IsZero() {
		t.Error("LastUpdated should be set at construction")
	}
	if rec.ErrorMessage != "" {
		t.Errorf("error message should be empty, got %q", rec.ErrorMessage)
	}
}
