package jenkins

import (
	"fmt"
	"net/url"
	"strings"
)

// BranchForPR returns the conventional multibranch-pipeline branch name
// for a PR number, e.g. "3859" -> "PR-3859".
func BranchForPR(prNumber string) string {
	return "PR-" + prNumber
}

// InferJobPath returns the default Jenkins job path for a repository,
// following the {owner}/{repo}/{repo}-eks convention.
func InferJobPath(owner, repo string) string {
	return fmt.Sprintf("%s/%s/%s-eks", owner, repo, repo)
}

// PRURL constructs the GitHub pull-request URL for a PR number.
func PRURL(githubBase, owner, repo, prNumber string) string {
	return fmt.Sprintf("%s/%s/%s/pull/%s", githubBase, owner, repo, prNumber)
}

// BuildURL constructs the Blue Ocean pipeline-view URL for a build.
// The job path is escaped into a single path segment. stageID, when
// non-empty, appends a /pipeline/{stageID} suffix that deep-links to a
// specific stage.
func BuildURL(jenkinsBase, jobPath, prNumber string, buildNumber int, stageID string) string {
	u := fmt.Sprintf("%s/identity/blue/organizations/jenkins/%s/detail/%s/%d",
		jenkinsBase, url.PathEscape(jobPath), BranchForPR(prNumber), buildNumber)
	if stageID != "" {
		u += "/pipeline/" + stageID
	}
	return u
}

// ParsePRNumber validates user input and returns the bare PR number.
// Accepts "3859", "PR-3859", "pr-3859", with surrounding whitespace.
func ParsePRNumber(input string) (string, error) {
	cleaned := strings.TrimSpace(input)
	if len(cleaned) >= 3 && strings.EqualFold(cleaned[:3], "PR-") {
		cleaned = cleaned[3:]
	}

	if cleaned == "" {
		return "", fmt.Errorf("PR number cannot be empty")
	}
	for _, c := range cleaned {
		if c < '0' || c > '9' {
			return "", fmt.Errorf("PR number must contain only digits, got %q", input)
		}
	}

	return cleaned, nil
}
