package pipeline

import "strings"

// NormalizeMakeName uppercases raw and cuts it at each noise marker in list order.
// Every marker is checked against the already truncated value.
func NormalizeMakeName(raw string, markers []string) string {
	if raw == "" {
		return ""
	}
	cleaned := strings.ToUpper(raw)
	for _, marker := range markers {
		if idx := strings.Index(cleaned, marker); idx >= 0 {
			cleaned = cleaned[:idx]
		}
	}
	return strings.TrimSpace(cleaned)
}
