package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"osday/internal/common"
	"osday/internal/domain/model"
)

type SubmissionStats struct {
	Total  int
	Passed int
	Failed int
}

type SubmissionRepository interface {
	// FindPassedByUserAndRepo returns the stored passed submission for the
	// exact (user, repo URL) pair, or common.ErrNotFound.
	FindPassedByUserAndRepo(ctx context.Context, userID, repoURL string) (*model.Submission, error)

	// ReplaceForUserAndRepo deletes every stored submission for the pair,
	// inserts sub, and when award is set also applies the score and
	// submission-count increment to the owning user, all in one
	// transaction.
	ReplaceForUserAndRepo(ctx context.Context, sub *model.Submission, award bool) error

	ListRecentByUser(ctx context.Context, userID string, limit int) ([]model.Submission, error)
	CountByUser(ctx context.Context, userID string) (SubmissionStats, error)
	ListPassedLevels(ctx context.Context, userID string) ([]string, error)

	// ListPassed returns every passed submission; the leaderboard recomputes
	// its ranking from this set on each read.
	ListPassed(ctx context.Context) ([]model.Submission, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

const submissionColumns = `id, user_id, level, repo_url, status, score,
	tests_total, tests_passed, tests_failed, detail, workflow_url, commit_sha,
	submitted_at, evaluated_at`

func scanSubmission(row interface{ Scan(...interface{}) error }) (*model.Submission, error) {
	sub := &model.Submission{}
	var workflowURL, commit sql.NullString
	err := row.Scan(
		&sub.ID, &sub.UserID, &sub.Level, &sub.RepoURL, &sub.Status, &sub.Score,
		&sub.TestResults.Total, &sub.TestResults.Passed, &sub.TestResults.Failed,
		&sub.TestResults.Details, &workflowURL, &commit,
		&sub.SubmittedAt, &sub.EvaluatedAt,
	)
	if err != nil {
		return nil, err
	}
	sub.TestResults.WorkflowURL = workflowURL.String
	sub.TestResults.Commit = commit.String
	return sub, nil
}

func (r *pgSubmissionRepository) FindPassedByUserAndRepo(ctx context.Context, userID, repoURL string) (*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions
	          WHERE user_id = $1 AND repo_url = $2 AND status = $3
	          LIMIT 1`
	sub, err := scanSubmission(r.db.QueryRowContext(ctx, query, userID, repoURL, model.StatusPassed))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.FindPassedByUserAndRepo: %w", err)
	}
	return sub, nil
}

func (r *pgSubmissionRepository) ReplaceForUserAndRepo(ctx context.Context, sub *model.Submission, award bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.ReplaceForUserAndRepo: begin: %w", err)
	}
	defer tx.Rollback()

	deleteQuery := `DELETE FROM submissions WHERE user_id = $1 AND repo_url = $2`
	if _, err := tx.ExecContext(ctx, deleteQuery, sub.UserID, sub.RepoURL); err != nil {
		return fmt.Errorf("pgSubmissionRepository.ReplaceForUserAndRepo: delete: %w", err)
	}

	insertQuery := `INSERT INTO submissions (` + submissionColumns + `)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = tx.ExecContext(ctx, insertQuery,
		sub.ID, sub.UserID, sub.Level, sub.RepoURL, sub.Status, sub.Score,
		sub.TestResults.Total, sub.TestResults.Passed, sub.TestResults.Failed,
		sub.TestResults.Details, nullable(sub.TestResults.WorkflowURL), nullable(sub.TestResults.Commit),
		sub.SubmittedAt, sub.EvaluatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.ReplaceForUserAndRepo: insert: %w", err)
	}

	if award {
		statsQuery := `UPDATE users
		               SET total_score = total_score + $2,
		                   submission_count = submission_count + 1,
		                   last_active = now()
		               WHERE id = $1`
		if _, err := tx.ExecContext(ctx, statsQuery, sub.UserID, sub.Score); err != nil {
			return fmt.Errorf("pgSubmissionRepository.ReplaceForUserAndRepo: award: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pgSubmissionRepository.ReplaceForUserAndRepo: commit: %w", err)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *pgSubmissionRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions
	          WHERE user_id = $1
	          ORDER BY submitted_at DESC
	          LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListRecentByUser: %w", err)
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

func (r *pgSubmissionRepository) CountByUser(ctx context.Context, userID string) (SubmissionStats, error) {
	query := `SELECT
	            count(*),
	            count(*) FILTER (WHERE status = $2),
	            count(*) FILTER (WHERE status = $3)
	          FROM submissions WHERE user_id = $1`
	var stats SubmissionStats
	err := r.db.QueryRowContext(ctx, query, userID, model.StatusPassed, model.StatusFailed).
		Scan(&stats.Total, &stats.Passed, &stats.Failed)
	if err != nil {
		return SubmissionStats{}, fmt.Errorf("pgSubmissionRepository.CountByUser: %w", err)
	}
	return stats, nil
}

func (r *pgSubmissionRepository) ListPassedLevels(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT DISTINCT level FROM submissions WHERE user_id = $1 AND status = $2`
	rows, err := r.db.QueryContext(ctx, query, userID, model.StatusPassed)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListPassedLevels: %w", err)
	}
	defer rows.Close()

	levels := []string{}
	for rows.Next() {
		var level string
		if err := rows.Scan(&level); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.ListPassedLevels: scan: %w", err)
		}
		levels = append(levels, level)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListPassedLevels: rows: %w", err)
	}
	return levels, nil
}

func (r *pgSubmissionRepository) ListPassed(ctx context.Context) ([]model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE status = $1`
	rows, err := r.db.QueryContext(ctx, query, model.StatusPassed)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListPassed: %w", err)
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

func collectSubmissions(rows *sql.Rows) ([]model.Submission, error) {
	subs := []model.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("collectSubmissions: scan: %w", err)
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("collectSubmissions: rows: %w", err)
	}
	return subs, nil
}
