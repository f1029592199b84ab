package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"author-registry/internal/domains/author"
	"author-registry/internal/shared/apperror"
)

// DBTX is satisfied by *pgx.Conn, pgx.Tx and *pgxpool.Pool.
// The caller opens, owns and closes it.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// postgresRepository implements author.Repository with hand-written SQL over pgx
type postgresRepository struct {
	db DBTX
}

func NewPostgresRepository(db DBTX) author.Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Insert(ctx context.Context, a *author.Author) error {
	query := `
        INSERT INTO author (` + columns + `)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	row := toRow(a)
	_, err := r.db.Exec(ctx, query,
		row.ID,
		row.ActivationToken,
		row.AvatarURL,
		row.Email,
		row.Hash,
		row.Username,
	)
	if err != nil {
		return storageError("failed to insert author", err)
	}

	return nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) error {
	query := `
        UPDATE author
        SET
            author_activation_token = $1,
            author_avatar_url = $2,
            author_email = $3,
            author_hash = $4,
            author_username = $5
        WHERE author_id = $6
    `

	row := toRow(a)
	_, err := r.db.Exec(ctx, query,
		row.ActivationToken,
		row.AvatarURL,
		row.Email,
		row.Hash,
		row.Username,
		row.ID,
	)
	if err != nil {
		return storageError("failed to update author", err)
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM author WHERE author_id = $1`, id[:]); err != nil {
		return storageError("failed to delete author", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, bool, error) {
	query := `SELECT ` + columns + ` FROM author WHERE author_id = $1`

	row, err := scanRow(r.db.QueryRow(ctx, query, id[:]))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, apperror.StorageFailure("failed to get author by id", err)
	}

	a, err := row.toAuthor()
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

func (r *postgresRepository) FindByUsername(ctx context.Context, substring string) ([]*author.Author, error) {
	pattern, err := usernamePattern(substring)
	if err != nil {
		return nil, err
	}

	query := `
        SELECT ` + columns + `
        FROM author
        WHERE author_username LIKE $1 ESCAPE '\'
        ORDER BY author_username, author_id
    `

	rows, err := r.db.Query(ctx, query, pattern)
	if err != nil {
		return nil, apperror.StorageFailure("failed to query authors", err)
	}
	defer rows.Close()

	authors := make([]*author.Author, 0)
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, apperror.StorageFailure("failed to scan author", err)
		}

		a, err := row.toAuthor()
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.StorageFailure("error iterating authors", err)
	}

	return authors, nil
}

func scanRow(s pgx.Row) (authorRow, error) {
	var row authorRow
	err := s.Scan(
		&row.ID,
		&row.ActivationToken,
		&row.AvatarURL,
		&row.Email,
		&row.Hash,
		&row.Username,
	)
	return row, err
}

func storageError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperror.StorageFailure(msg+": email or username already taken", err)
	}
	return apperror.StorageFailure(msg, err)
}
