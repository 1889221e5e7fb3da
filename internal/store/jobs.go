package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"spiderjobs-engine/internal/domain"
)

// Migrate brings the schema up to v1. The jobs table is keyed by link, the
// one field every record is guaranteed to carry.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  link TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL,
  posted_date TEXT NOT NULL,
  logo_url TEXT NOT NULL DEFAULT '',
  skills TEXT NOT NULL DEFAULT '[]',
  first_seen TEXT NOT NULL,
  last_seen TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_first_seen ON jobs(first_seen DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// UpsertJob inserts a listing or refreshes an existing row with the latest
// crawl of the same link. Returns whether the link was new.
func UpsertJob(ctx context.Context, db *sql.DB, j domain.JobListing) (added bool, err error) {
	skillsJSON, err := json.Marshal(j.Skills)
	if err != nil {
		return false, fmt.Errorf("marshal skills: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	// ON CONFLICT DO UPDATE reports changes() == 1 either way, so check
	// existence up front to know whether this link is new.
	var exists int
	err = db.QueryRowContext(ctx, `SELECT 1 FROM jobs WHERE link = ? LIMIT 1;`, j.Link).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("precheck job: %w", err)
	}

	_, err = db.ExecContext(ctx, `
INSERT INTO jobs (link, title, company, location, posted_date, logo_url, skills, first_seen, last_seen)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(link) DO UPDATE SET
  title = excluded.title,
  company = excluded.company,
  location = excluded.location,
  posted_date = excluded.posted_date,
  logo_url = excluded.logo_url,
  skills = excluded.skills,
  last_seen = excluded.last_seen;`,
		j.Link, j.Title, j.Company, j.Location, j.PostedDate, j.LogoURL, string(skillsJSON), now, now,
	)
	if err != nil {
		return false, fmt.Errorf("upsert job: %w", err)
	}
	return exists == 0, nil
}

// ListJobs returns stored listings, most recently seen first.
func ListJobs(ctx context.Context, db *sql.DB, limit int) ([]domain.JobListing, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := db.QueryContext(ctx, `
SELECT link, title, company, location, posted_date, logo_url, skills
FROM jobs
ORDER BY first_seen DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JobListing
	for rows.Next() {
		var j domain.JobListing
		var skillsJSON string
		if err := rows.Scan(&j.Link, &j.Title, &j.Company, &j.Location, &j.PostedDate, &j.LogoURL, &skillsJSON); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(skillsJSON), &j.Skills)
		out = append(out, j)
	}
	return out, rows.Err()
}
