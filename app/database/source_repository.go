package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// sourceRepository handles database operations for source ratings.
type sourceRepository struct {
	db *DB
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(db *DB) SourceRepository {
	return &sourceRepository{db: db}
}

// UpsertSource inserts or updates a source rating keyed by domain.
func (r *sourceRepository) UpsertSource(domain string, score int, bias, category string) error {
	query, args, err := sq.Insert("sources").
		Columns("domain", "score", "bias", "category").
		Values(domain, score, bias, category).
		Suffix(`ON CONFLICT (domain) DO UPDATE SET
			score = excluded.score,
			bias = excluded.bias,
			category = excluded.category,
			updated_at = CURRENT_TIMESTAMP`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert query: %w", err)
	}

	if _, err := r.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to upsert source: %w", err)
	}

	return nil
}

// GetSourceByDomain retrieves a source rating by its normalized domain
func (r *sourceRepository) GetSourceByDomain(domain string) (*Source, error) {
	query, args, err := sq.Select("id", "domain", "score", "bias", "category", "created_at", "updated_at").
		From("sources").
		Where(sq.Eq{"domain": domain}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var source Source
	err = r.db.QueryRow(query, args...).Scan(
		&source.ID, &source.Domain, &source.Score, &source.Bias, &source.Category,
		&source.CreatedAt, &source.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get source by domain: %w", err)
	}

	return &source, nil
}

// GetAllSources returns every source rating ordered by domain
func (r *sourceRepository) GetAllSources() ([]Source, error) {
	query, args, err := sq.Select("id", "domain", "score", "bias", "category", "created_at", "updated_at").
		From("sources").
		OrderBy("domain ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var source Source
		err := rows.Scan(
			&source.ID, &source.Domain, &source.Score, &source.Bias, &source.Category,
			&source.CreatedAt, &source.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source rows: %w", err)
	}

	return sources, nil
}

// GetSourceCount returns the total number of source ratings
func (r *sourceRepository) GetSourceCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM sources").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get source count: %w", err)
	}
	return count, nil
}
