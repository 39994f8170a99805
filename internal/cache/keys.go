package cache

import (
	"strconv"
	"strings"
)

const (
	GlobalKeyPrefix = "nerdmath"

	progressService   = "progress"
	diagnosticService = "diagnostic"
)

// GenerateCacheKey joins the prefix, service, object type and identifier with ":".
// Extra params are joined by "_" into one trailing segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// OverallProgressKey holds the catalog-wide summary of one user computed at
// the given generation.
func OverallProgressKey(userID, generation int64) string {
	return GenerateCacheKey(progressService, "overall", strconv.FormatInt(userID, 10), strconv.FormatInt(generation, 10))
}

// ProgressGenerationKey is the counter bumped on every progress write of one user.
func ProgressGenerationKey(userID int64) string {
	return GenerateCacheKey(progressService, "generation", strconv.FormatInt(userID, 10))
}

// AnalysisTrackerKey is the hash tracking the analysis hand-off of one test.
func AnalysisTrackerKey(testID string) string {
	return GenerateCacheKey(diagnosticService, "analysis", testID)
}
