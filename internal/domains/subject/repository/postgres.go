package repository

import (
	"context"
	"errors"
	"fmt"

	"subjectstore-backend/internal/domains/subject/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the subjects table if it does not exist. Ran once at
// startup; this is bootstrap, not a migration system.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS subjects (
			id           UUID PRIMARY KEY,
			course       TEXT NOT NULL,
			bookname     TEXT NOT NULL,
			author       TEXT NOT NULL,
			edition      TEXT NOT NULL,
			price        NUMERIC(12, 2) NOT NULL,
			description  TEXT NOT NULL,
			image        TEXT NOT NULL DEFAULT '',
			image_data   BYTEA,
			content_type TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL,
			updated_at   TIMESTAMPTZ NOT NULL
		)`

	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure subjects schema: %w", err)
	}
	return nil
}

const subjectColumns = `id, course, bookname, author, edition, price, description, image, image_data, content_type, created_at, updated_at`

// postgresRepository - Raw SQL with pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Insert(ctx context.Context, subject *model.Subject) error {
	const query = `
		INSERT INTO subjects (` + subjectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		subject.ID,
		subject.Course,
		subject.Bookname,
		subject.Author,
		subject.Edition,
		subject.Price,
		subject.Description,
		subject.Image,
		subject.ImageData,
		subject.ContentType,
		subject.CreatedAt,
		subject.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert subject: %w", err)
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]model.Subject, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM subjects`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count subjects: %w", err)
	}

	query := `
		SELECT ` + subjectColumns + `
		FROM subjects
		ORDER BY created_at ASC, id ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	subjects := make([]model.Subject, 0, limit)
	for rows.Next() {
		var s model.Subject
		if err := scanSubject(rows, &s); err != nil {
			return nil, 0, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return subjects, total, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	query := `
		SELECT ` + subjectColumns + `
		FROM subjects
		WHERE id = $1`

	var s model.Subject
	err := scanSubject(r.pool.QueryRow(ctx, query, id), &s)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrSubjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get subject %s: %w", id, err)
	}

	return &s, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, patch *model.SubjectPatch) (*model.Subject, error) {
	// COALESCE keeps columns whose patch field is nil; the image columns are
	// replaced as a unit when a new file was uploaded, so a new
	// representation fully supersedes the old one.
	query := `
		UPDATE subjects SET
			course       = COALESCE($2, course),
			bookname     = COALESCE($3, bookname),
			author       = COALESCE($4, author),
			edition      = COALESCE($5, edition),
			price        = COALESCE($6, price),
			description  = COALESCE($7, description),
			image        = CASE WHEN $8 THEN $9 ELSE image END,
			image_data   = CASE WHEN $8 THEN $10 ELSE image_data END,
			content_type = CASE WHEN $8 THEN $11 ELSE content_type END,
			updated_at   = now()
		WHERE id = $1
		RETURNING ` + subjectColumns

	var s model.Subject
	err := scanSubject(r.pool.QueryRow(ctx, query,
		id,
		textArg(patch.Course),
		textArg(patch.Bookname),
		textArg(patch.Author),
		textArg(patch.Edition),
		priceArg(patch),
		textArg(patch.Description),
		patch.ReplaceImage,
		patch.NewImage.Value,
		patch.NewImage.Data,
		patch.NewImage.ContentType,
	), &s)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrSubjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update subject %s: %w", id, err)
	}

	return &s, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subject %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrSubjectNotFound
	}

	return nil
}

// scanSubject reads one row into a Subject; works for both Query and
// QueryRow results.
func scanSubject(row pgx.Row, s *model.Subject) error {
	return row.Scan(
		&s.ID,
		&s.Course,
		&s.Bookname,
		&s.Author,
		&s.Edition,
		&s.Price,
		&s.Description,
		&s.Image,
		&s.ImageData,
		&s.ContentType,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

// textArg converts an optional patch field to a nullable query argument.
func textArg(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func priceArg(patch *model.SubjectPatch) any {
	if patch.Price == nil {
		return nil
	}
	return *patch.Price
}
