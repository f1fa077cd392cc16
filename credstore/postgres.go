package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"golang.org/x/crypto/bcrypt"

	"chatrelay/credstore/migrations"
	"chatrelay/models"
)

const uniqueViolation = "23505"

// PostgresStore keeps credentials in Postgres. Schema is managed by the
// embedded goose migrations, applied on open.
type PostgresStore struct {
	conn *sql.DB
}

func NewPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	s := &PostgresStore{conn: conn}
	if err := s.runMigrations(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return s, nil
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, s.conn, ".")
}

func (s *PostgresStore) Close() error {
	return s.conn.Close()
}

func (s *PostgresStore) Register(ctx context.Context, username, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.conn.ExecContext(ctx,
		"INSERT INTO users (username, password) VALUES ($1, $2)",
		username, string(hashed),
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) Validate(ctx context.Context, username, password string) (bool, error) {
	user := models.User{}
	err := s.conn.QueryRowContext(ctx,
		"SELECT id, username, password FROM users WHERE username = $1",
		username,
	).Scan(&user.ID, &user.Username, &user.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil, nil
}
