package memory

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
)

type embedderStub struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (e *embedderStub) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	vector, ok := e.vectors[text]
	if !ok {
		return []float32{0, 1}, nil
	}
	return vector, nil
}

func TestSearcherRanksByCosine(t *testing.T) {
	embedder := &embedderStub{vectors: map[string][]float32{
		"chemo side effects":              {1, 0},
		"What are side effects of chemo?": {0.9, 0.4358899},
		"How is radiotherapy planned?":    {0, 1},
	}}
	searcher := NewSearcher(embedder, []domain.Candidate{
		{Question: "How is radiotherapy planned?", Answer: "With CT simulation."},
		{Question: "What are side effects of chemo?", Answer: "Nausea and fatigue."},
	})

	got, err := searcher.Search(context.Background(), "chemo side effects", 1)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one candidate, got %d", len(got))
	}
	if got[0].Question != "What are side effects of chemo?" {
		t.Fatalf("expected chemo candidate first, got %q", got[0].Question)
	}
	if got[0].Score <= 0.8 {
		t.Fatalf("expected high similarity score, got %v", got[0].Score)
	}
}

func TestSearcherEmbedsQuestionsOnce(t *testing.T) {
	embedder := &embedderStub{vectors: map[string][]float32{}}
	searcher := NewSearcher(embedder, []domain.Candidate{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
	})

	for i := 0; i < 3; i++ {
		if _, err := searcher.Search(context.Background(), "topic", 2); err != nil {
			t.Fatalf("Search returned error: %v", err)
		}
	}
	// 2 question embeddings plus one topic embedding per call.
	if embedder.calls != 2+3 {
		t.Fatalf("expected 5 embedder calls, got %d", embedder.calls)
	}
}

func TestSearcherEmbedError(t *testing.T) {
	embedder := &embedderStub{err: errors.New("embedding service down")}
	searcher := NewSearcher(embedder, []domain.Candidate{{Question: "q", Answer: "a"}})

	if _, err := searcher.Search(context.Background(), "topic", 1); err == nil {
		t.Fatal("expected error when embedder fails")
	}
}

func TestSearcherEmptyKnowledgeBase(t *testing.T) {
	embedder := &embedderStub{}
	searcher := NewSearcher(embedder, nil)

	got, err := searcher.Search(context.Background(), "topic", 5)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no candidates, got %d", len(got))
	}
	if embedder.calls != 0 {
		t.Fatalf("expected no embedder calls for empty knowledge base, got %d", embedder.calls)
	}
}

func TestLoadWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.xlsx")
	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	rows := [][]any{
		{"Question", "Answer", "Notes"},
		{"What is chemotherapy?", "Drug treatment that kills cancer cells.", "reviewed"},
		{"", "orphan answer", ""},
		{"orphan question", "", ""},
		{"  What is remission?  ", "  No detectable signs of cancer.  ", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	if err := file.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}

	pairs, err := LoadWorkbook(path)
	if err != nil {
		t.Fatalf("LoadWorkbook returned error: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].Question != "What is chemotherapy?" {
		t.Fatalf("unexpected first question: %q", pairs[0].Question)
	}
	if pairs[1].Question != "What is remission?" || pairs[1].Answer != "No detectable signs of cancer." {
		t.Fatalf("expected trimmed pair, got %+v", pairs[1])
	}
}

func TestLoadWorkbookMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	header := []any{"Prompt", "Reply"}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := file.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}

	if _, err := LoadWorkbook(path); err == nil {
		t.Fatal("expected error for workbook without Question/Answer columns")
	}
}

func TestLoadWorkbookMissingFile(t *testing.T) {
	if _, err := LoadWorkbook(filepath.Join(t.TempDir(), "absent.xlsx")); err == nil {
		t.Fatal("expected error for missing workbook")
	}
}
