package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pgvector/pgvector-go"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
	"github.com/oncorag/oncology-assistant/internal/core/ports"
)

// Repository searches a Postgres table of verified Q/A pairs with a pgvector
// embedding column. The table is populated by an external indexing pipeline;
// this adapter is query-only.
type Repository struct {
	db       *sql.DB
	embedder ports.Embedder
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func NewRepository(db *sql.DB, embedder ports.Embedder) *Repository {
	return &Repository{db: db, embedder: embedder}
}

func (r *Repository) Search(ctx context.Context, topic string, k int) ([]domain.Candidate, error) {
	vector, err := r.embedder.EmbedQuery(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("embed topic: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT question, answer, 1 - (embedding <=> $1) AS score
FROM qa_pairs
ORDER BY embedding <=> $1
LIMIT $2
`, pgvector.NewVector(vector), k)
	if err != nil {
		return nil, fmt.Errorf("search qa pairs: %w", err)
	}
	defer rows.Close()

	var out []domain.Candidate
	for rows.Next() {
		var candidate domain.Candidate
		if err := rows.Scan(&candidate.Question, &candidate.Answer, &candidate.Score); err != nil {
			return nil, fmt.Errorf("scan qa pair: %w", err)
		}
		out = append(out, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate qa pairs: %w", err)
	}
	return out, nil
}
