package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
)

// LoadCaseQA reads a case-law QA file: a flat JSON array of
// {"question": ..., "answer": ...} objects.
func LoadCaseQA(path string) ([]domain.QARecord, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDataUnavailable, "dataset.case_qa", err)
	}

	var items []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("parse case qa %s: %w", path, err)
	}

	records := make([]domain.QARecord, 0, len(items))
	for _, item := range items {
		records = append(records, domain.QARecord{
			Question: item.Question,
			Answer:   item.Answer,
			Category: "case_qa",
			Source:   "IndicLegalQA",
		})
	}
	return records, nil
}

// LoadIndianLaws reads the statute QA file: an object whose
// "indian_dataset" array holds {"query", "response", "category"}
// entries.
func LoadIndianLaws(path string) ([]domain.QARecord, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDataUnavailable, "dataset.indian_laws", err)
	}

	var file struct {
		IndianDataset []struct {
			Query    string `json:"query"`
			Response string `json:"response"`
			Category string `json:"category"`
		} `json:"indian_dataset"`
	}
	if err := json.Unmarshal(payload, &file); err != nil {
		return nil, fmt.Errorf("parse indian laws %s: %w", path, err)
	}

	records := make([]domain.QARecord, 0, len(file.IndianDataset))
	for _, item := range file.IndianDataset {
		category := item.Category
		if category == "" {
			category = "law"
		}
		records = append(records, domain.QARecord{
			Question: item.Query,
			Answer:   item.Response,
			Category: category,
			Source:   "IndianLaws",
		})
	}
	return records, nil
}

// LoadFlexibleJSON reads a domain-specific QA file whose schema is not
// fixed: the payload is either an array of objects or an object whose
// "data"/"items"/"records" key holds one, and each object names its
// question and answer under any of the common field spellings. The
// record category comes from the filename.
func LoadFlexibleJSON(path string) ([]domain.QARecord, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDataUnavailable, "dataset.flexible_json", err)
	}

	var root any
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var items []any
	switch v := root.(type) {
	case []any:
		items = v
	case map[string]any:
		for _, key := range []string{"data", "items", "records"} {
			if list, ok := v[key].([]any); ok {
				items = list
				break
			}
		}
	}

	category := CategoryForFilename(path)
	var records []domain.QARecord
	for _, raw := range items {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		question := firstString(obj, "question", "query", "Q", "prompt", "input")
		answer := firstString(obj, "answer", "response", "A", "completion", "output")
		if question == "" || answer == "" {
			continue
		}
		records = append(records, domain.QARecord{
			Question: question,
			Answer:   answer,
			Category: category,
			Source:   "LawDataSet",
		})
	}
	return records, nil
}

func firstString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := obj[key].(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
