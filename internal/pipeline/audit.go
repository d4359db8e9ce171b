package pipeline

import (
	"sort"
	"strings"

	"vmolist/internal"
)

type MakeName struct {
	Code       string
	Raw        string
	Normalized string
}

type AuditReport struct {
	Kept    []MakeName
	Dropped []MakeName
}

// AuditMakes lists every distinct make header and whether the allow-list keeps it.
func AuditMakes(rows []internal.RawRow, rules Ruleset) AuditReport {
	kept := map[string]MakeName{}
	dropped := map[string]MakeName{}

	for _, row := range rows {
		if ClassifyRow(row, rules.Captions) != RowMakeHeader {
			continue
		}
		code, raw := splitMakeHeader(strings.TrimSpace(row.Col0))
		name := MakeName{Code: code, Raw: raw, Normalized: NormalizeMakeName(raw, rules.Markers)}
		if IsMajorMake(strings.ToUpper(name.Normalized), rules.Allow) {
			if _, ok := kept[raw]; !ok {
				kept[raw] = name
			}
		} else if _, ok := dropped[raw]; !ok {
			dropped[raw] = name
		}
	}

	return AuditReport{Kept: sortedNames(kept), Dropped: sortedNames(dropped)}
}

func sortedNames(m map[string]MakeName) []MakeName {
	out := make([]MakeName, 0, len(m))
	for _, n := range m {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Raw < out[j].Raw })
	return out
}
