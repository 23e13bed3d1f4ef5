package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

// LoadXLSX reads a QA workbook: the first sheet, a header row naming a
// question and an answer column (any of the common spellings), one
// record per data row. An optional category column overrides the
// filename-derived category.
func LoadXLSX(path, source string) ([]domain.QARecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDataUnavailable, "dataset.xlsx", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	questionCol, qOK := anyColumnIndex(header, "question", "query", "prompt", "input")
	answerCol, aOK := anyColumnIndex(header, "answer", "response", "completion", "output")
	if !qOK || !aOK {
		return nil, fmt.Errorf("%s: no question/answer columns in header %v", path, header)
	}
	categoryCol, hasCategory := anyColumnIndex(header, "category")

	defaultCategory := CategoryForFilename(path)
	var records []domain.QARecord
	for _, row := range rows[1:] {
		question := cell(row, questionCol)
		answer := cell(row, answerCol)
		if question == "" || answer == "" {
			continue
		}
		category := defaultCategory
		if hasCategory {
			if c := cell(row, categoryCol); c != "" {
				category = c
			}
		}
		records = append(records, domain.QARecord{
			Question: question,
			Answer:   answer,
			Category: category,
			Source:   source,
		})
	}
	return records, nil
}

func anyColumnIndex(header []string, names ...string) (int, bool) {
	for _, name := range names {
		if i, ok := columnIndex(header, name); ok {
			return i, true
		}
	}
	return 0, false
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
