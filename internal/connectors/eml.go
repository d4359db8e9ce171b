package connectors

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jhillyerd/enmime"

	"vmolist/internal"
)

// parseEML reads the first attachment that is a supported sheet export, falling
// back to a table in the HTML body.
func parseEML(content []byte, sheet string) ([]internal.RawRow, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	for _, att := range env.Attachments {
		t, err := DetectInputType(strings.TrimSpace(att.FileName))
		if err != nil || t == internal.InputEML {
			continue
		}
		return parseContent(t, att.Content, sheet)
	}

	if strings.Contains(strings.ToLower(env.HTML), "<table") {
		return parseHTMLTable([]byte(env.HTML))
	}
	return nil, fmt.Errorf("message has no sheet attachment or table (attachments: %s)", strings.Join(attachmentNames(env), ", "))
}

func attachmentNames(env *enmime.Envelope) []string {
	names := make([]string, 0, len(env.Attachments))
	for _, att := range env.Attachments {
		names = append(names, filepath.Base(att.FileName))
	}
	return names
}
