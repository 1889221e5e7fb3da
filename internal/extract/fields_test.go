package extract

import (
	"net/url"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var itviecBase, _ = url.Parse("https://itviec.com")

func container(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	return mustDoc(t, `<div data-search-id="t">`+html+`</div>`).Find("div[data-search-id]").First()
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "https://itviec.com/companies/acme", resolveURL(itviecBase, "/companies/acme"))
	assert.Equal(t, "https://cdn.example.com/x.png", resolveURL(itviecBase, "https://cdn.example.com/x.png"))
	assert.Equal(t, "", resolveURL(itviecBase, ""))
	assert.Equal(t, "", resolveURL(itviecBase, "   "))
}

func TestTitleLinkPrimary(t *testing.T) {
	c := container(t, `<h3><a href="/it-jobs/123">Backend Engineer</a></h3>`)
	e := New(ITviec())

	title, link := e.extractTitleLink(c, itviecBase)
	assert.Equal(t, "Backend Engineer", title)
	assert.Equal(t, "https://itviec.com/it-jobs/123", link)
}

func TestTitleLinkFallbackAnchorSearch(t *testing.T) {
	// title from a heading with no anchor; link hunted elsewhere in the candidate
	c := container(t, `<h3>DevOps Engineer</h3><a href="/it-jobs/999">details</a>`)
	e := New(ITviec())

	title, link := e.extractTitleLink(c, itviecBase)
	assert.Equal(t, "DevOps Engineer", title)
	assert.Equal(t, "https://itviec.com/it-jobs/999", link)
}

func TestTitleLinkMixedStrategies(t *testing.T) {
	// primary selectors supply the title (href-less anchor); the fallback
	// supplies the link from a different element
	c := container(t, `<div class="job-title"><a>Senior Dev</a></div><h3>Openings</h3><a href="/it-jobs/7">apply</a>`)
	e := New(ITviec())

	title, link := e.extractTitleLink(c, itviecBase)
	assert.Equal(t, "Senior Dev", title)
	assert.Equal(t, "https://itviec.com/it-jobs/7", link)
}

func TestTitleLinkAbsent(t *testing.T) {
	c := container(t, `<p>just text, no heading, no anchor</p>`)
	e := New(ITviec())

	title, link := e.extractTitleLink(c, itviecBase)
	assert.Equal(t, "", title)
	assert.Equal(t, "", link)
}

func TestCompanyLinkRanksHighest(t *testing.T) {
	c := container(t, `
<a href="/companies/acme">ACME Corp</a>
<div class="company-name">Other Name</div>`)
	e := New(ITviec())
	assert.Equal(t, "ACME Corp", e.extractCompany(c))
}

func TestCompanyJunkFilter(t *testing.T) {
	// the highest-ranked match is junk ("view", "jobs"); the next selector wins
	c := container(t, `
<a href="/companies/acme">View 12 jobs</a>
<div class="company-name"><a href="/companies/acme">ACME Corp</a></div>`)
	e := New(ITviec())
	assert.Equal(t, "ACME Corp", e.extractCompany(c))
}

func TestCompanyLengthFilter(t *testing.T) {
	long := ""
	for i := 0; i < 25; i++ {
		long += "word "
	}
	c := container(t, `<div class="company">`+long+`</div>`)
	e := New(ITviec())
	assert.Equal(t, "", e.extractCompany(c))
}

func TestCompanyAnchorScanLastResort(t *testing.T) {
	// the selector only sees the first company anchor, which is junk; the
	// last-resort scan walks all anchors and finds the real name
	c := container(t, `
<a href="/companies/globex">View all jobs</a>
<a href="/companies/globex">Globex</a>`)
	e := New(ITviec())
	assert.Equal(t, "Globex", e.extractCompany(c))
}

func TestLocationPrefersKnownCity(t *testing.T) {
	c := container(t, `
<span class="location">Anywhere</span>
<span class="job-location">District 1, Ho Chi Minh</span>`)
	e := New(ITviec())
	assert.Equal(t, "District 1, Ho Chi Minh", e.extractLocation(c))
}

func TestLocationFirstMatchWithoutCity(t *testing.T) {
	c := container(t, `<span class="location">Somewhere Else</span>`)
	e := New(ITviec())
	assert.Equal(t, "Somewhere Else", e.extractLocation(c))
}

func TestLocationTextPatternFallback(t *testing.T) {
	c := container(t, `<p>Work from District 7, Ho Chi Minh City</p>`)
	e := New(ITviec())
	assert.Equal(t, "Ho Chi Minh", e.extractLocation(c))
}

func TestLocationRemotePattern(t *testing.T) {
	c := container(t, `<p>This role is fully Remote within Vietnam</p>`)
	e := New(ITviec())
	assert.Equal(t, "Remote", e.extractLocation(c))
}

func TestPostedDateSelectorWithHint(t *testing.T) {
	c := container(t, `<span class="posted-date">Posted 3 days ago</span>`)
	e := New(ITviec())
	assert.Equal(t, "Posted 3 days ago", e.extractPostedDate(c))
}

func TestPostedDateSelectorWithoutHintFallsThrough(t *testing.T) {
	// .time matches but carries no recency hint, and the body text has no
	// date phrasing either
	c := container(t, `<span class="time">4 PM</span>`)
	e := New(ITviec())
	assert.Equal(t, "", e.extractPostedDate(c))
}

func TestPostedDatePatternFallback(t *testing.T) {
	c := container(t, `<p>SUPER HOT Posted 2 days ago</p>`)
	e := New(ITviec())
	// the plain "Posted N unit ago" pattern ranks first, so the prefix is
	// not part of the match
	assert.Equal(t, "Posted 2 days ago", e.extractPostedDate(c))
}

func TestLogoSelector(t *testing.T) {
	c := container(t, `<img src="/assets/acme-logo.png" alt="ACME">`)
	e := New(ITviec())
	assert.Equal(t, "https://itviec.com/assets/acme-logo.png", e.extractLogoURL(c, itviecBase))
}

func TestLogoFallbackByAlt(t *testing.T) {
	c := container(t, `<img src="/img/acme.png" alt="company emblem">`)
	e := New(ITviec())
	assert.Equal(t, "https://itviec.com/img/acme.png", e.extractLogoURL(c, itviecBase))
}

func TestLogoAbsent(t *testing.T) {
	c := container(t, `<img src="/img/banner.png" alt="sale">`)
	e := New(ITviec())
	assert.Equal(t, "", e.extractLogoURL(c, itviecBase))
}

func TestSkillsCollectAcrossSelectors(t *testing.T) {
	c := container(t, `
<span class="skill-tag">Python</span>
<span class="tag">Docker</span>`)
	e := New(ITviec())
	got := e.extractSkills(c)
	require.Len(t, got, 2)
	assert.Contains(t, got, "Python")
	assert.Contains(t, got, "Docker")
}

func TestSkillsExactMatchDedup(t *testing.T) {
	c := container(t, `
<span class="tag">Java</span>
<span class="tag">java</span>
<span class="tag">Java</span>`)
	e := New(ITviec())
	// case variants are distinct skills
	assert.Equal(t, []string{"Java", "java"}, e.extractSkills(c))
}

func TestSkillsVocabularyFallback(t *testing.T) {
	c := container(t, `<p>We use Python and Docker heavily, plus PostgreSQL.</p>`)
	e := New(ITviec())
	assert.Equal(t, []string{"Python", "Docker", "PostgreSQL"}, e.extractSkills(c))
}

func TestSkillsLengthFilter(t *testing.T) {
	long := "This is a long marketing sentence that is clearly not a skill tag"
	c := container(t, `<span class="tag">`+long+`</span>`)
	e := New(ITviec())
	assert.Empty(t, e.extractSkills(c))
}
