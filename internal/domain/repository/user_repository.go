package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"osday/internal/common"
	"osday/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByGithubID(ctx context.Context, githubID string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*model.User, error)
	UpdateHandle(ctx context.Context, id, handle string) error
	Touch(ctx context.Context, id string) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, github_id, handle, profile_url, avatar_url, total_score, submission_count, last_active, created_at`

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, github_id, handle, profile_url, avatar_url, last_active, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.GithubID, user.Handle, user.ProfileURL, user.AvatarURL, user.LastActive, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given github id already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *pgUserRepository) FindByGithubID(ctx context.Context, githubID string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE github_id = $1`, githubID)
}

func (r *pgUserRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.GithubID, &user.Handle, &user.ProfileURL, &user.AvatarURL,
		&user.TotalScore, &user.SubmissionCount, &user.LastActive, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.findOne: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*model.User, error) {
	users := make(map[string]*model.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.FindByIDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		user := &model.User{}
		if err := rows.Scan(
			&user.ID, &user.GithubID, &user.Handle, &user.ProfileURL, &user.AvatarURL,
			&user.TotalScore, &user.SubmissionCount, &user.LastActive, &user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgUserRepository.FindByIDs: scan: %w", err)
		}
		users[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.FindByIDs: rows: %w", err)
	}
	return users, nil
}

func (r *pgUserRepository) UpdateHandle(ctx context.Context, id, handle string) error {
	query := `UPDATE users SET handle = $2, last_active = now() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, handle); err != nil {
		return fmt.Errorf("pgUserRepository.UpdateHandle: %w", err)
	}
	return nil
}

func (r *pgUserRepository) Touch(ctx context.Context, id string) error {
	query := `UPDATE users SET last_active = now() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("pgUserRepository.Touch: %w", err)
	}
	return nil
}
