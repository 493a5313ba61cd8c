package memory

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
)

// LoadWorkbook reads Q/A pairs from the first sheet of an xlsx workbook.
// The header row must contain "Question" and "Answer" columns (case-insensitive);
// rows with an empty question or answer are skipped.
func LoadWorkbook(path string) ([]domain.Candidate, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}

	questionCol, answerCol := -1, -1
	for i, header := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "question":
			questionCol = i
		case "answer":
			answerCol = i
		}
	}
	if questionCol < 0 || answerCol < 0 {
		return nil, fmt.Errorf("sheet %s is missing Question/Answer columns", sheet)
	}

	pairs := make([]domain.Candidate, 0, len(rows)-1)
	for _, row := range rows[1:] {
		question := cellAt(row, questionCol)
		answer := cellAt(row, answerCol)
		if question == "" || answer == "" {
			continue
		}
		pairs = append(pairs, domain.Candidate{Question: question, Answer: answer})
	}
	return pairs, nil
}

func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
