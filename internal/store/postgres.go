package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayush/gyft/backend/internal/models"
)

const pgUniqueViolation = "23505"

// PostgresStore handles user CRUD against PostgreSQL. It is used when
// USER_BACKEND=postgres; courses stay in MongoDB either way.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the users table if it doesn't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username   VARCHAR(20)  UNIQUE NOT NULL,
			email      VARCHAR(254) UNIQUE NOT NULL,
			first_name VARCHAR(50)  NOT NULL,
			last_name  VARCHAR(50)  NOT NULL,
			password   VARCHAR(255) NOT NULL,
			bio        VARCHAR(500) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ  DEFAULT NOW()
		)
	`)
	return err
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	out := *u
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, first_name, last_name, password, bio)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		u.Username, u.Email, u.FirstName, u.LastName, u.Password, u.Bio,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateCredential
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &out, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, username, email, first_name, last_name, password, bio, created_at
		 FROM users WHERE username = $1`, username,
	))
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrNotFound
	}
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, username, email, first_name, last_name, password, bio, created_at
		 FROM users WHERE id = $1`, id,
	))
}

func (s *PostgresStore) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	var taken bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id::text <> $2)`,
		email, exceptID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("email taken: %w", err)
	}
	return taken, nil
}

func (s *PostgresStore) UpdateProfile(ctx context.Context, id string, form models.ProfileForm) error {
	if _, err := uuid.Parse(id); err != nil {
		return models.ErrNotFound
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET first_name = $2, last_name = $3, email = $4, bio = $5 WHERE id = $1`,
		id, form.FirstName, form.LastName, form.Email, form.Bio,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateCredential
		}
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Password, &u.Bio, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
