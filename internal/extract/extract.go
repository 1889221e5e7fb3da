package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"spiderjobs-engine/internal/domain"
)

// NA is the sentinel substituted for text fields the markup didn't carry.
const NA = "N/A"

// Extractor turns listing-page HTML into JobListing records. It holds only
// an immutable Ruleset, so a single Extractor is safe for concurrent use as
// long as each call parses its own document.
type Extractor struct {
	rules *Ruleset
}

func New(rules *Ruleset) *Extractor {
	return &Extractor{rules: rules}
}

// Parse extracts job records from one already-fetched page. Records come
// back in document order; an empty slice is a normal result for a page with
// no recognizable listings. A candidate that blows up mid-extraction is
// logged and skipped without affecting the rest of the page.
func (e *Extractor) Parse(htmlContent, baseURL string) ([]domain.JobListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}

	containers := e.findContainers(doc)
	if len(containers) == 0 {
		log.Debug().Msg("no job containers found on page")
		return nil, nil
	}
	log.Debug().Int("containers", len(containers)).Msg("located job containers")

	jobs := make([]domain.JobListing, 0, len(containers))
	for i, c := range containers {
		if job, ok := e.extractOne(c, base, i); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

// extractOne runs every field extractor against one candidate and assembles
// the record. The extractors run independently; none of them can fail the
// candidate on its own, but a panic on a malformed subtree skips this
// candidate only.
func (e *Extractor) extractOne(c *goquery.Selection, base *url.URL, idx int) (job domain.JobListing, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Int("candidate", idx).Interface("cause", r).Msg("skipping unparsable job container")
			ok = false
		}
	}()

	title, link := e.extractTitleLink(c, base)
	company := e.extractCompany(c)
	location := e.extractLocation(c)
	postedDate := e.extractPostedDate(c)
	logoURL := e.extractLogoURL(c, base)
	skills := e.extractSkills(c)

	// Acceptance is decided on the raw values: a candidate without title
	// text or without a link anywhere in its subtree is not a listing. An
	// empty link is never defaulted.
	if title == "" || link == "" {
		return domain.JobListing{}, false
	}

	return domain.JobListing{
		Title:      orNA(title),
		Link:       link,
		Company:    orNA(company),
		Location:   orNA(location),
		PostedDate: orNA(postedDate),
		LogoURL:    logoURL,
		Skills:     skills,
	}, true
}

func orNA(s string) string {
	if s == "" {
		return NA
	}
	return s
}
