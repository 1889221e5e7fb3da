package extract

import "regexp"

// Ruleset holds every table the engine matches against: selector cascades,
// keyword allowlists, regex pattern lists and the skill vocabulary. A
// Ruleset is built once at startup and never mutated afterwards, so one
// value can back any number of concurrent extractions.
type Ruleset struct {
	// Container cascade. ContainerPrimary is tried first; if it yields
	// nothing, ContainerAlt selectors are tried in order and the first one
	// with any match wins; only then does the keyword heuristic run.
	ContainerPrimary  string
	ContainerAlt      []string
	ContainerKeywords []string // lowercase; candidate text must contain one
	JobLinkHints      []string // href fragments that look like job links
	MaxHeuristic      int      // cap on heuristic-tier candidates

	Title    []string
	TitleAlt []string

	Company         []string
	CompanyLinkHint string   // href fragment marking a company page link
	CompanyJunk     []string // lowercase substrings that disqualify a match

	Location         []string
	Cities           []string // lowercase; preferred among location matches
	LocationPatterns []*regexp.Regexp

	Date         []string
	DateHints    []string // lowercase; a selector match must contain one
	DatePatterns []*regexp.Regexp

	Logo []string

	Skills     []string
	SkillVocab []string
	skillRE    []*regexp.Regexp // compiled whole-word vocab, parallel to SkillVocab
}

// ITviec returns the rule tables for itviec.com listing pages.
func ITviec() *Ruleset {
	r := &Ruleset{
		ContainerPrimary:  "div[data-search-id]",
		ContainerAlt:      []string{".job-item", ".search-result-item", "[class*='job']"},
		ContainerKeywords: []string{"developer", "engineer", "manager", "analyst", "designer"},
		JobLinkHints:      []string{"/it-jobs/", "/jobs/", "job"},
		MaxHeuristic:      20,

		Title:    []string{"h3 a", ".job-title a", "[class*='title'] a"},
		TitleAlt: []string{"h3", ".job-title", "[class*='title']"},

		Company: []string{
			"a[href*='/companies/']",
			"[class*='company'] a",
			".company-name a",
			".employer a",
			"[class*='company']",
			".company-name",
			".employer",
		},
		CompanyLinkHint: "/companies/",
		CompanyJunk:     []string{"view", "jobs", "sign in", "salary", "image"},

		Location: []string{"[class*='location']", ".job-location", ".location"},
		Cities:   []string{"ho chi minh", "ha noi", "da nang", "can tho"},
		LocationPatterns: compilePatterns(
			`Ho Chi Minh`,
			`Ha Noi`,
			`Da Nang`,
			`Can Tho`,
			`Hybrid`,
			`Remote`,
			`At office`,
		),

		Date:      []string{"[class*='date']", ".posted-date", ".time", "[class*='time']"},
		DateHints: []string{"posted", "ago", "hour", "minute", "day", "week"},
		DatePatterns: compilePatterns(
			`Posted \d+ \w+ ago`,
			`\d+ hours? ago`,
			`\d+ minutes? ago`,
			`\d+ days? ago`,
			`HOT Posted \d+ \w+ ago`,
			`SUPER HOT Posted \d+ \w+ ago`,
		),

		Logo: []string{"img[src*='logo']", "img[alt*='logo']", ".company-logo img", ".logo img"},

		Skills: []string{"[class*='skill']", ".skills a", ".tag", "[class*='tag']"},
		SkillVocab: []string{
			"Python", "Java", "JavaScript", "TypeScript", "ReactJS", "VueJS", "Angular",
			"NodeJS", "PHP", "C#", "C++", "Go", "Rust", "Swift", "Kotlin",
			"AWS", "Azure", "GCP", "Docker", "Kubernetes", "MongoDB", "PostgreSQL",
			"MySQL", "Redis", "Git", "Jenkins", "CI/CD", "Agile", "Scrum",
		},
	}

	r.skillRE = make([]*regexp.Regexp, len(r.SkillVocab))
	for i, term := range r.SkillVocab {
		r.skillRE[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return r
}

func compilePatterns(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}
