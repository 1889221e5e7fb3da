package types

import (
	"context"

	"spiderjobs-engine/internal/domain"
)

// Result is one source's haul for a run.
type Result struct {
	Source string
	Jobs   []domain.JobListing
}

// Source is a crawlable job site. Implementations own their pagination and
// parsing; a failed page must degrade to fewer jobs, not a failed run.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (Result, error)
}
