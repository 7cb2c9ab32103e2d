package jenkins

import (
	"net/url"
	"strings"
	"testing"
)

func TestParsePRNumber(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"3859", "3859", false},
		{"PR-3859", "3859", false},
		{"pr-3859", "3859", false},
		{"  3859  ", "3859", false},
		{" PR-42 ", "42", false},
		{"", "", true},
		{"PR-", "", true},
		{"abc", "", true},
		{"38a59", "", true},
		{"PR-38.59", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePRNumber(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePRNumber(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePRNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildURL(t *testing.T) {
	jobPath := "org/app/app-eks"
	got := BuildURL("https://jenkins.example.com", jobPath, "3859", 142, "")

	if !strings.Contains(got, url.PathEscape(jobPath)) {
		t.Errorf("URL %q should contain escaped job path", got)
	}
	if !strings.Contains(got, "PR-3859") {
		t.Errorf("URL %q should contain PR branch", got)
	}
	if !strings.Contains(got, "/142") {
		t.Errorf("URL %q should contain build number", got)
	}
	if strings.Contains(got, "/pipeline/") {
		t.Errorf("URL %q should not contain a stage suffix without a stage ID", got)
	}

	withStage := BuildURL("https://jenkins.example.com", jobPath, "3859", 142, "17")
	if !strings.HasSuffix(withStage, "/pipeline/17") {
		t.Errorf("URL %q should end with /pipeline/17", withStage)
	}
}

func TestPRURL(t *testing.T) {
	got := PRURL("https://github.example.com", "org", "app", "3859")
	want := "https://github.example.com/org/app/pull/3859"
	if got != want {
		t.Errorf("PRURL = %q, want %q", got, want)
	}
}

func TestInferJobPath(t *testing.T) {
	if got := InferJobPath("org", "app"); got != "org/app/app-eks" {
		t.Errorf("InferJobPath = %q, want org/app/app-eks", got)
	}
}

func TestBranchForPR(t *testing.T) {
	if got := BranchForPR("3859"); got != "PR-3859" {
		t.Errorf("BranchForPR = %q, want PR-3859", got)
	}
}
