package dataset

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

// sectionHeadingRe matches bare-act section headings like
// "Section 420. Cheating and dishonestly inducing delivery of
// property" at the start of a line.
var sectionHeadingRe = regexp.MustCompile(`(?m)^\s*Section\s+(\d+[A-Za-z]?)\.?\s+([^\n]+)`)

// LoadBareActPDF extracts a bare act's plain text and turns each
// numbered section into a QA record: the question asks what the
// section states, the answer is the section body.
func LoadBareActPDF(path, source string) ([]domain.QARecord, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDataUnavailable, "dataset.pdf", err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text %s: %w", path, err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return nil, fmt.Errorf("read pdf text %s: %w", path, err)
	}

	return sectionsToRecords(buf.String(), CategoryForFilename(path), source), nil
}

func sectionsToRecords(text, category, source string) []domain.QARecord {
	headings := sectionHeadingRe.FindAllStringSubmatchIndex(text, -1)

	var records []domain.QARecord
	for i, match := range headings {
		number := text[match[2]:match[3]]
		title := strings.TrimSpace(text[match[4]:match[5]])

		bodyStart := match[1]
		bodyEnd := len(text)
		if i+1 < len(headings) {
			bodyEnd = headings[i+1][0]
		}
		body := strings.TrimSpace(text[bodyStart:bodyEnd])

		answer := title
		if body != "" {
			answer = title + " " + body
		}
		records = append(records, domain.QARecord{
			Question: fmt.Sprintf("What does Section %s state?", number),
			Answer:   answer,
			Category: category,
			Source:   source,
		})
	}
	return records
}
