package database

import "log"

// Schema is intentionally small enough to keep as idempotent DDL applied on
// startup. The (user_id, repo_url) pair on submissions is indexed but not
// unique: the lifecycle service enforces the one-live-submission invariant
// and needs to see superseded rows inside its own transaction.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id               UUID PRIMARY KEY,
    github_id        TEXT NOT NULL UNIQUE,
    handle           TEXT NOT NULL,
    profile_url      TEXT NOT NULL DEFAULT '',
    avatar_url       TEXT NOT NULL DEFAULT '',
    total_score      BIGINT NOT NULL DEFAULT 0,
    submission_count BIGINT NOT NULL DEFAULT 0,
    last_active      TIMESTAMPTZ NOT NULL DEFAULT now(),
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS submissions (
    id           UUID PRIMARY KEY,
    user_id      UUID NOT NULL REFERENCES users (id),
    level        TEXT NOT NULL DEFAULT '1',
    repo_url     TEXT NOT NULL,
    status       TEXT NOT NULL,
    score        BIGINT NOT NULL DEFAULT 0,
    tests_total  INT NOT NULL DEFAULT 0,
    tests_passed INT NOT NULL DEFAULT 0,
    tests_failed INT NOT NULL DEFAULT 0,
    detail       TEXT NOT NULL DEFAULT '',
    workflow_url TEXT,
    commit_sha   TEXT,
    submitted_at TIMESTAMPTZ NOT NULL,
    evaluated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_user_repo ON submissions (user_id, repo_url);
CREATE INDEX IF NOT EXISTS idx_submissions_status ON submissions (status);
`

func Migrate() {
	if _, err := DB.Exec(schema); err != nil {
		log.Fatalf("Error applying database schema: %v", err)
	}
	log.Println("Database schema up to date")
}
