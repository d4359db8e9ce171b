package internal

type InputType string

const (
	InputXLSX InputType = "xlsx"
	InputCSV  InputType = "csv"
	InputHTML InputType = "html"
	InputPDF  InputType = "pdf"
	InputEML  InputType = "eml"
)

// RawRow is one two-cell row as it appears in the source sheet. Missing cells are "".
type RawRow struct {
	RowNumber int
	Col0      string
	Col1      string
}

type MakeRecord struct {
	Code string
	Name string
}

type ModelRecord struct {
	Code        string
	Description string
	MakeCode    string
	MakeName    string
}

type EntryType string

const (
	EntryMake  EntryType = "make"
	EntryModel EntryType = "model"
)

// MaxModelCodeLen is the longest model code, in runes, that is still a code and not a note.
const MaxModelCodeLen = 8

func MakeID(code string) string { return "make-" + code }

func ModelID(makeCode, modelCode string) string { return "model-" + makeCode + "-" + modelCode }

type CatalogEntry struct {
	ID          string    `json:"id"`
	Type        EntryType `json:"type"`
	Code        string    `json:"code"`
	Model       string    `json:"model"`
	Description string    `json:"description"`
	MakeCode    string    `json:"makeCode"`
	MakeName    string    `json:"makeName"`
	SearchTerms string    `json:"searchTerms"`
}

type SkipReason string

const (
	SkipTooLong     SkipReason = "too long"
	SkipWhitespace  SkipReason = "contains whitespace"
	SkipDuplicateID SkipReason = "duplicate id"
)

type SkippedRow struct {
	RowNumber int
	Col0      string
	Col1      string
	ID        string
	Reason    SkipReason
}

type RunStats struct {
	Rows          int `json:"rows"`
	Ignored       int `json:"ignored"`
	MakesKept     int `json:"makesKept"`
	MakesDropped  int `json:"makesDropped"`
	Models        int `json:"models"`
	SkippedLong   int `json:"skippedLong"`
	SkippedSpaced int `json:"skippedSpaced"`
	Duplicates    int `json:"duplicates"`
	Entries       int `json:"entries"`
}
