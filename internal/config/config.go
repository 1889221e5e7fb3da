package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Crawler struct {
		BaseURL  string `yaml:"base_url"`
		JobsPath string `yaml:"jobs_path"`
		Pages    int    `yaml:"pages"`
		Query    string `yaml:"query"`
	} `yaml:"crawler"`

	HTTP struct {
		UserAgent      string  `yaml:"user_agent"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		MaxAttempts    int     `yaml:"max_attempts"`
		BackoffMS      int     `yaml:"backoff_ms"`
		RequestsPerSec float64 `yaml:"requests_per_sec"`
		Burst          int     `yaml:"burst"`
	} `yaml:"http"`

	Output struct {
		CSVPath string `yaml:"csv_path"`
		Store   bool   `yaml:"store"` // also persist to the sqlite db
	} `yaml:"output"`
}

// Default mirrors the shipped config/config.yml: three listing pages of
// itviec.com at one request per second.
func Default() Config {
	var cfg Config
	cfg.Crawler.BaseURL = "https://itviec.com"
	cfg.Crawler.JobsPath = "/it-jobs"
	cfg.Crawler.Pages = 3
	cfg.HTTP.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36"
	cfg.HTTP.TimeoutSeconds = 10
	cfg.HTTP.MaxAttempts = 3
	cfg.HTTP.BackoffMS = 1000
	cfg.HTTP.RequestsPerSec = 1.0
	cfg.HTTP.Burst = 1
	cfg.Output.CSVPath = "outputs/itviec_jobs.csv"
	cfg.Output.Store = true
	return cfg
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

func (c Config) Backoff() time.Duration {
	return time.Duration(c.HTTP.BackoffMS) * time.Millisecond
}
