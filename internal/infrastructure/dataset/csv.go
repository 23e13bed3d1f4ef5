package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

const textPromptPrefixLen = 200

// LoadInstructionCSV reads a chat-transcript CSV whose "messages"
// column wraps the user turn in [INST]...[/INST] markers. Rows without
// both markers are skipped.
func LoadInstructionCSV(path, source string) ([]domain.QARecord, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	col, ok := columnIndex(header, "messages")
	if !ok {
		return nil, fmt.Errorf("%s: no messages column", path)
	}

	var records []domain.QARecord
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		question, answer, ok := splitInstruction(row[col])
		if !ok {
			continue
		}
		records = append(records, domain.QARecord{
			Question: question,
			Answer:   answer,
			Category: "legal_consultation",
			Source:   source,
		})
	}
	return records, nil
}

// LoadTextCSV reads a bare legal-text CSV (a "Text" column per row)
// and turns each passage into an explain-this QA pair, the question
// quoting the passage's first 200 characters.
func LoadTextCSV(path, source, category string) ([]domain.QARecord, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	col, ok := columnIndex(header, "text")
	if !ok {
		return nil, fmt.Errorf("%s: no text column", path)
	}

	var records []domain.QARecord
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		text := strings.TrimSpace(row[col])
		if text == "" {
			continue
		}
		prefix := text
		if len(prefix) > textPromptPrefixLen {
			prefix = prefix[:textPromptPrefixLen]
		}
		records = append(records, domain.QARecord{
			Question: fmt.Sprintf("Explain this constitutional provision: %s...", prefix),
			Answer:   text,
			Category: category,
			Source:   source,
		})
	}
	return records, nil
}

// splitInstruction extracts the last [INST] block as the question and
// the text that follows [/INST], up to the next [INST], as the answer.
func splitInstruction(messages string) (question, answer string, ok bool) {
	if !strings.Contains(messages, "[INST]") || !strings.Contains(messages, "[/INST]") {
		return "", "", false
	}
	parts := strings.SplitN(messages, "[/INST]", 2)
	if len(parts) < 2 {
		return "", "", false
	}

	instParts := strings.Split(parts[0], "[INST]")
	question = strings.TrimSpace(instParts[len(instParts)-1])
	answer = strings.TrimSpace(strings.Split(parts[1], "[INST]")[0])
	if question == "" || answer == "" {
		return "", "", false
	}
	return question, answer, true
}

func readCSV(path string) (rows [][]string, header []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, domain.WrapError(domain.ErrDataUnavailable, "dataset.csv", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err = reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header %s: %w", path, err)
	}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv row %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func columnIndex(header []string, name string) (int, bool) {
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i, true
		}
	}
	return 0, false
}
