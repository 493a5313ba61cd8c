package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

type embedderStub struct {
	vector []float32
	err    error
}

func (s *embedderStub) EmbedQuery(context.Context, string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vector, nil
}

func newRepoWithMock(t *testing.T, embedder *embedderStub) (*Repository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &Repository{db: db, embedder: embedder}, mock, func() { _ = db.Close() }
}

func TestSearchReturnsOrderedCandidates(t *testing.T) {
	repo, mock, done := newRepoWithMock(t, &embedderStub{vector: []float32{0.1, 0.2}})
	defer done()

	rows := sqlmock.NewRows([]string{"question", "answer", "score"}).
		AddRow("What is chemotherapy?", "A drug treatment.", 0.93).
		AddRow("What is radiotherapy?", "Radiation treatment.", 0.81)
	mock.ExpectQuery("SELECT question, answer").
		WithArgs(sqlmock.AnyArg(), 5).
		WillReturnRows(rows)

	candidates, err := repo.Search(context.Background(), "chemotherapy", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Question != "What is chemotherapy?" || candidates[0].Score != 0.93 {
		t.Fatalf("unexpected first candidate: %+v", candidates[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSearchEmbedFailureSkipsQuery(t *testing.T) {
	repo, mock, done := newRepoWithMock(t, &embedderStub{err: errors.New("embed down")})
	defer done()

	if _, err := repo.Search(context.Background(), "topic", 5); err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSearchQueryErrorPropagates(t *testing.T) {
	repo, mock, done := newRepoWithMock(t, &embedderStub{vector: []float32{0.1}})
	defer done()

	mock.ExpectQuery("SELECT question, answer").
		WillReturnError(errors.New("relation qa_pairs does not exist"))

	if _, err := repo.Search(context.Background(), "topic", 5); err == nil {
		t.Fatalf("expected error")
	}
}
