package catalog

import (
	"sort"

	"vmolist/internal"
)

type Index struct {
	ByID        map[string]internal.CatalogEntry
	ByMakeCode  map[string][]internal.CatalogEntry
	ByModelCode map[string][]internal.CatalogEntry
}

func BuildIndex(entries []internal.CatalogEntry) *Index {
	idx := &Index{
		ByID:        map[string]internal.CatalogEntry{},
		ByMakeCode:  map[string][]internal.CatalogEntry{},
		ByModelCode: map[string][]internal.CatalogEntry{},
	}

	for _, e := range entries {
		if _, ok := idx.ByID[e.ID]; !ok {
			idx.ByID[e.ID] = e
		}
		if e.Type != internal.EntryModel {
			continue
		}
		idx.ByMakeCode[e.MakeCode] = append(idx.ByMakeCode[e.MakeCode], e)
		idx.ByModelCode[e.Code] = append(idx.ByModelCode[e.Code], e)
	}

	return idx
}

type SharedCode struct {
	Code      string
	MakeNames []string
}

// SharedCodes lists model codes that appear under more than one make name.
func (idx *Index) SharedCodes() []SharedCode {
	out := []SharedCode{}
	for code, models := range idx.ByModelCode {
		names := map[string]struct{}{}
		for _, m := range models {
			names[m.MakeName] = struct{}{}
		}
		if len(names) < 2 {
			continue
		}
		shared := SharedCode{Code: code, MakeNames: make([]string, 0, len(names))}
		for name := range names {
			shared.MakeNames = append(shared.MakeNames, name)
		}
		sort.Strings(shared.MakeNames)
		out = append(out, shared)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
