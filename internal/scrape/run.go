package scrape

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"spiderjobs-engine/internal/domain"
	"spiderjobs-engine/internal/scrape/types"
	"spiderjobs-engine/internal/store"
)

const sourceTimeout = 5 * time.Minute

// RunOnce fans out over the configured sources, gathers their results and
// upserts them into the store when one is attached. A source erroring out
// never cancels its siblings. Returns every job seen this run plus the
// count of rows newly added to the store.
func RunOnce(ctx context.Context, db *store.DB, sources []types.Source) ([]domain.JobListing, int, error) {
	var g errgroup.Group
	results := make(chan types.Result, len(sources))

	for _, src := range sources {
		src := src
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(ctx, sourceTimeout)
			defer cancel()

			log.Info().Str("source", src.Name()).Msg("running source")
			res, err := src.Fetch(sctx)
			if err != nil {
				log.Error().Str("source", src.Name()).Err(err).Msg("source failed")
				// best-effort: keep whatever it managed to collect
			}
			if len(res.Jobs) > 0 {
				results <- res
			}
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	var all []domain.JobListing
	added := 0
	for res := range results {
		log.Info().Str("source", res.Source).Int("jobs", len(res.Jobs)).Msg("source done")
		all = append(all, res.Jobs...)

		if db == nil {
			continue
		}
		for _, j := range res.Jobs {
			ok, err := store.UpsertJob(ctx, db.Pool, j)
			if err != nil {
				log.Warn().Str("link", j.Link).Err(err).Msg("upsert failed")
				continue
			}
			if ok {
				added++
			}
		}
	}

	return all, added, nil
}
