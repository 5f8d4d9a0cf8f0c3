package mentorhub

import (
	"bytes"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/ledongthuc/pdf"
)

// ExtractPDFText extracts the plain text of a PDF document, lowercased for
// case-insensitive matching.
func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryBadInput, "failed to read PDF")
	}

	var b strings.Builder
	for page := 1; page <= reader.NumPage(); page++ {
		p := reader.Page(page)
		if p.V.IsNull() {
			continue
		}

		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", errors.Wrap(err, errors.CategoryBadInput, "failed to extract PDF text")
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	return strings.ToLower(b.String()), nil
}

// MatchSkills returns the registered skill names mentioned in the text.
// Matching is case-insensitive; text is expected lowercased already.
func MatchSkills(text string, known []string) []string {
	if text == "" || len(known) == 0 {
		return nil
	}

	var matched []string
	seen := map[string]bool{}
	for _, name := range known {
		needle := strings.ToLower(strings.TrimSpace(name))
		if needle == "" || seen[needle] {
			continue
		}
		if strings.Contains(text, needle) {
			matched = append(matched, name)
			seen[needle] = true
		}
	}

	return matched
}
