package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims user input and checks the crawl settings,
// returning a normalized copy plus any errors and warnings.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Crawler.BaseURL = strings.TrimRight(strings.TrimSpace(out.Crawler.BaseURL), "/")
	out.Crawler.Query = strings.TrimSpace(out.Crawler.Query)
	out.Output.CSVPath = strings.TrimSpace(out.Output.CSVPath)

	if out.Crawler.BaseURL == "" {
		res.addErr("crawler.base_url is required")
	} else if u, err := url.Parse(out.Crawler.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		res.addErr("crawler.base_url must be an absolute http(s) URL, got %q", out.Crawler.BaseURL)
	}

	if out.Crawler.JobsPath != "" && !strings.HasPrefix(out.Crawler.JobsPath, "/") {
		out.Crawler.JobsPath = "/" + out.Crawler.JobsPath
	}

	if out.Crawler.Pages <= 0 {
		res.addErr("crawler.pages must be > 0")
	} else if out.Crawler.Pages > 50 {
		res.addWarn("crawler.pages is high (%d); most listings end well before that.", out.Crawler.Pages)
	}

	if out.HTTP.TimeoutSeconds <= 0 {
		res.addErr("http.timeout_seconds must be > 0")
	}
	if out.HTTP.MaxAttempts <= 0 {
		res.addErr("http.max_attempts must be > 0")
	}
	if out.HTTP.RequestsPerSec <= 0 {
		res.addErr("http.requests_per_sec must be > 0")
	} else if out.HTTP.RequestsPerSec > 2 {
		res.addWarn("http.requests_per_sec (%.1f) is impolite for a public site.", out.HTTP.RequestsPerSec)
	}

	if out.Output.CSVPath == "" && !out.Output.Store {
		res.addWarn("no csv_path and store disabled; crawl results will only be logged.")
	}

	return out, res
}
