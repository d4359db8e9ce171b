package pipeline

import "strings"

// AllowList holds uppercased major-make names in their configured order.
type AllowList struct {
	entries []string
}

func NewAllowList(makes []string) AllowList {
	entries := make([]string, 0, len(makes))
	seen := map[string]struct{}{}
	for _, m := range makes {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		entries = append(entries, m)
	}
	return AllowList{entries: entries}
}

func (a AllowList) Len() int { return len(a.entries) }

// Match returns the first entry that equals name or sits at its start or end as a whole word.
func (a AllowList) Match(nameUpper string) (string, bool) {
	for _, major := range a.entries {
		if major == nameUpper ||
			strings.HasPrefix(nameUpper, major+" ") ||
			strings.HasSuffix(nameUpper, " "+major) {
			return major, true
		}
	}
	return "", false
}

func IsMajorMake(nameUpper string, allow AllowList) bool {
	_, ok := allow.Match(nameUpper)
	return ok
}
