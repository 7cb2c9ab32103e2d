package jenkins

import (
	"strconv"
	"strings"
	"time"

	"github.com/npratt/prdash/internal/build"
)

// Normalize converts a raw Jenkins run payload into a build.Record. It is
// total: payloads of unexpected shape degrade to a Pending record with
// whatever fields could be extracted. Both Blue Ocean run objects and
// legacy build-detail objects share the field names this reads.
//
// prNumber is the tracked PR's identity and is carried through verbatim.
// The payload never supplies it; builds resolved via a real head branch
// still belong to the PR they were looked up for.
//
// Status precedence: a running/in_progress state wins over any result;
// otherwise the result field decides; anything else is Pending.
func Normalize(data map[string]any, jobPath, prNumber string) build.Record {
	state := strings.ToLower(asString(data["state"]))
	result := strings.ToLower(asString(data["result"]))

	var status build.Status
	switch {
	case state == "running" || state == "in_progress":
		status = build.StatusRunning
	case result == "success":
		status = build.StatusSuccess
	case result == "failure":
		status = build.StatusFailure
	case result == "unstable":
		status = build.StatusUnstable
	case result == "aborted":
		status = build.StatusAborted
	default:
		status = build.StatusPending
	}

	buildNumber := asInt(data["number"])
	if buildNumber == 0 {
		buildNumber = asInt(data["id"])
	}

	var duration time.Duration
	if ms := asInt(data["durationInMillis"]); ms > 0 {
		duration = time.Duration(ms) * time.Millisecond
	}

	return build.Record{
		PRNumber:    prNumber,
		BuildNumber: buildNumber,
		Status:      status,
		Stage:       extractStage(data["stages"]),
		JobName:     jobName(data, jobPath),
		Duration:    duration,
		JobPath:     jobPath,
		LastUpdated: time.Now(),
	}
}

// extractStage picks the display stage from a run's stage list: the first
// stage that is itself running, else the last stage, else empty.
func extractStage(v any) string {
	stages, ok := v.([]any)
	if !ok || len(stages) == 0 {
		return ""
	}

	for _, s := range stages {
		stage, ok := s.(map[string]any)
		if !ok {
			continue
		}
		state := strings.ToLower(asString(stage["state"]))
		if state == "running" || state == "in_progress" {
			if name := asString(stage["name"]); name != "" {
				return name
			}
		}
	}

	if last, ok := stages[len(stages)-1].(map[string]any); ok {
		return asString(last["name"])
	}
	return ""
}

// jobName prefers the payload's pipeline name, falling back to the last
// segment of the job path.
func jobName(data map[string]any, jobPath string) string {
	if name := asString(data["pipeline"]); name != "" {
		return name
	}
	if jobPath == "" {
		return ""
	}
	segments := strings.Split(jobPath, "/")
	return segments[len(segments)-1]
}

// asString converts a payload value to a string, treating nil and
// non-string scalars as empty.
func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asInt converts a payload value to an int. Jenkins returns numbers as
// JSON floats and Blue Ocean run IDs as strings, so both are accepted.
func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return 0
}
