package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spiderjobs-engine/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleJob(link string) domain.JobListing {
	return domain.JobListing{
		Title:      "Backend Engineer",
		Link:       link,
		Company:    "ACME Corp",
		Location:   "Ho Chi Minh",
		PostedDate: "Posted 2 days ago",
		LogoURL:    "https://itviec.com/logo.png",
		Skills:     []string{"Go", "Docker"},
	}
}

func TestUpsertJobNewThenSeen(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	j := sampleJob("https://itviec.com/it-jobs/1")

	added, err := UpsertJob(ctx, db.Pool, j)
	require.NoError(t, err)
	assert.True(t, added, "first insert of a link is new")

	// same link again: refreshed, not new
	j.Title = "Senior Backend Engineer"
	added, err = UpsertJob(ctx, db.Pool, j)
	require.NoError(t, err)
	assert.False(t, added)

	jobs, err := ListJobs(ctx, db.Pool, 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Senior Backend Engineer", jobs[0].Title)
}

func TestListJobsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	want := sampleJob("https://itviec.com/it-jobs/7")
	_, err := UpsertJob(ctx, db.Pool, want)
	require.NoError(t, err)

	jobs, err := ListJobs(ctx, db.Pool, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, want, jobs[0])
}

func TestListJobsEmptySkills(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	j := sampleJob("https://itviec.com/it-jobs/9")
	j.Skills = []string{}
	_, err := UpsertJob(ctx, db.Pool, j)
	require.NoError(t, err)

	jobs, err := ListJobs(ctx, db.Pool, 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Empty(t, jobs[0].Skills)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	// Open already migrated; a second pass must be a no-op
	require.NoError(t, Migrate(db.Pool))

	_, err := UpsertJob(context.Background(), db.Pool, sampleJob("https://itviec.com/it-jobs/2"))
	assert.NoError(t, err)
}
