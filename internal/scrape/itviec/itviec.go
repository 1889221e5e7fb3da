package itviec

import (
	"context"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"spiderjobs-engine/internal/domain"
	"spiderjobs-engine/internal/extract"
	"spiderjobs-engine/internal/fetch"
	"spiderjobs-engine/internal/scrape/types"
)

type Config struct {
	BaseURL  string // https://itviec.com
	JobsPath string // /it-jobs
	Query    string
	MaxPages int
}

// Source crawls itviec.com listing pages. The extraction rules live in
// extract.ITviec; this type only owns pagination.
type Source struct {
	cfg       Config
	client    *fetch.Client
	extractor *extract.Extractor
}

func New(cfg Config, client *fetch.Client) *Source {
	if cfg.JobsPath == "" {
		cfg.JobsPath = "/it-jobs"
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 3
	}
	return &Source{
		cfg:       cfg,
		client:    client,
		extractor: extract.New(extract.ITviec()),
	}
}

func (s *Source) Name() string { return "itviec" }

// Fetch walks the listing pages in order. A page that fails to download is
// skipped; a page that parses to zero jobs means we ran past the last page
// and the walk stops.
func (s *Source) Fetch(ctx context.Context) (types.Result, error) {
	var out []domain.JobListing
	for page := 1; page <= s.cfg.MaxPages; page++ {
		if ctx.Err() != nil {
			return types.Result{Source: s.Name(), Jobs: out}, ctx.Err()
		}

		pageURL := s.pageURL(page)
		html, err := s.client.Get(ctx, pageURL)
		if err != nil {
			log.Warn().Str("url", pageURL).Err(err).Msg("[itviec] page fetch failed, skipping")
			continue
		}

		jobs, err := s.extractor.Parse(html, s.cfg.BaseURL)
		if err != nil {
			log.Warn().Int("page", page).Err(err).Msg("[itviec] page parse failed, skipping")
			continue
		}
		if len(jobs) == 0 {
			log.Info().Int("page", page).Msg("[itviec] empty page, stopping")
			break
		}

		log.Info().Int("page", page).Int("jobs", len(jobs)).Msg("[itviec] parsed page")
		out = append(out, jobs...)
	}
	return types.Result{Source: s.Name(), Jobs: out}, nil
}

func (s *Source) pageURL(page int) string {
	base := s.cfg.BaseURL + s.cfg.JobsPath
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if s.cfg.Query != "" {
		q.Set("query", s.cfg.Query)
	}
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}
