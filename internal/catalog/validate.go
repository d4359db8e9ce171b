package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"vmolist/internal"
)

var requiredFields = []string{"id", "type", "code", "model", "description", "makeCode", "makeName", "searchTerms"}

type Problem struct {
	Index   int
	ID      string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("item %d id=%s: %s", p.Index, p.ID, p.Message)
}

// ValidateJSON checks field types on the raw document, then the entry rules.
func ValidateJSON(blob []byte) ([]Problem, error) {
	var raw []map[string]any
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrInvalidCatalog, err)
	}

	problems := []Problem{}
	for i, item := range raw {
		id, _ := item["id"].(string)
		for _, field := range requiredFields {
			if _, ok := item[field].(string); !ok {
				problems = append(problems, Problem{Index: i, ID: id, Message: fmt.Sprintf("%s is not a string (%v)", field, item[field])})
			}
		}
	}
	if len(problems) > 0 {
		return problems, nil
	}

	entries, err := UnmarshalEntries(blob)
	if err != nil {
		return nil, err
	}
	return Validate(entries), nil
}

func Validate(entries []internal.CatalogEntry) []Problem {
	problems := []Problem{}
	add := func(i int, e internal.CatalogEntry, format string, args ...any) {
		problems = append(problems, Problem{Index: i, ID: e.ID, Message: fmt.Sprintf(format, args...)})
	}

	seen := map[string]int{}
	for i, e := range entries {
		if first, ok := seen[e.ID]; ok {
			add(i, e, "duplicate id, first seen at item %d", first)
		} else {
			seen[e.ID] = i
		}

		switch e.Type {
		case internal.EntryMake:
			if e.ID != internal.MakeID(e.Code) {
				add(i, e, "make id should be %q", internal.MakeID(e.Code))
			}
			if e.MakeCode != e.Code {
				add(i, e, "makeCode %q differs from code %q", e.MakeCode, e.Code)
			}
		case internal.EntryModel:
			if e.ID != internal.ModelID(e.MakeCode, e.Code) {
				add(i, e, "model id should be %q", internal.ModelID(e.MakeCode, e.Code))
			}
			if e.Code == "" {
				add(i, e, "empty model code")
			}
			if utf8.RuneCountInString(e.Code) > internal.MaxModelCodeLen {
				add(i, e, "model code longer than %d", internal.MaxModelCodeLen)
			}
			if strings.IndexFunc(e.Code, unicode.IsSpace) >= 0 {
				add(i, e, "model code contains whitespace")
			}
			if e.Model != e.Code {
				add(i, e, "model %q differs from code %q", e.Model, e.Code)
			}
		default:
			add(i, e, "unknown type %q", e.Type)
		}
	}
	return problems
}
