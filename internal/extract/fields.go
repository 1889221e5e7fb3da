package extract

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	companyMaxLen = 100 // anything longer is a blurb, not a company name
	skillMaxLen   = 50
)

// extractTitleLink resolves the job title and its link. The primary
// selectors want an anchor carrying both; when that anchor has no href the
// broader title selectors run and the link is hunted separately (descendant
// anchor, then ancestor anchor, then any anchor in the candidate). Title and
// link can therefore come from two different elements.
func (e *Extractor) extractTitleLink(c *goquery.Selection, base *url.URL) (title, link string) {
	for _, sel := range e.rules.Title {
		el := c.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		title = Clean(el.Text())
		if href, ok := el.Attr("href"); ok {
			link = resolveURL(base, href)
		}
		break
	}

	if link == "" {
		for _, sel := range e.rules.TitleAlt {
			el := c.Find(sel).First()
			if el.Length() == 0 {
				continue
			}
			if title == "" {
				title = Clean(el.Text())
			}
			a := el.Find("a").First()
			if a.Length() == 0 {
				a = el.ParentsFiltered("a").First()
			}
			if a.Length() == 0 {
				a = c.Find("a[href]").First()
			}
			if href, ok := a.Attr("href"); ok {
				link = resolveURL(base, href)
			}
			break
		}
	}

	return title, link
}

// extractCompany walks the company selectors most-specific-first and takes
// the first match that survives the length and junk-word filters. As a last
// resort every anchor in the candidate is checked for a company-page href.
func (e *Extractor) extractCompany(c *goquery.Selection) string {
	for _, sel := range e.rules.Company {
		el := c.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		if text := Clean(el.Text()); e.companyOK(text) {
			return text
		}
	}

	company := ""
	c.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if !strings.Contains(href, e.rules.CompanyLinkHint) {
			return true
		}
		if text := Clean(a.Text()); e.companyOK(text) {
			company = text
			return false
		}
		return true
	})
	return company
}

func (e *Extractor) companyOK(text string) bool {
	if text == "" || utf8.RuneCountInString(text) >= companyMaxLen {
		return false
	}
	return !containsAny(strings.ToLower(text), e.rules.CompanyJunk)
}

// extractLocation prefers a selector match naming a known city, falls back
// to the first selector match, and finally regex-scans the whole candidate
// text against the literal location patterns.
func (e *Extractor) extractLocation(c *goquery.Selection) string {
	first := ""
	for _, sel := range e.rules.Location {
		el := c.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		text := Clean(el.Text())
		if text == "" {
			continue
		}
		if first == "" {
			first = text
		}
		if containsAny(strings.ToLower(text), e.rules.Cities) {
			return text
		}
	}
	if first != "" {
		return first
	}

	full := c.Text()
	for _, re := range e.rules.LocationPatterns {
		if m := re.FindString(full); m != "" {
			return m
		}
	}
	return ""
}

// extractPostedDate accepts a selector match only when its text carries a
// recency hint ("posted", "ago", ...), otherwise scans the candidate text
// for the known date phrasings.
func (e *Extractor) extractPostedDate(c *goquery.Selection) string {
	for _, sel := range e.rules.Date {
		el := c.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		text := Clean(el.Text())
		if containsAny(strings.ToLower(text), e.rules.DateHints) {
			return text
		}
	}

	full := c.Text()
	for _, re := range e.rules.DatePatterns {
		if m := re.FindString(full); m != "" {
			return m
		}
	}
	return ""
}

// extractLogoURL takes the first logo selector match with a usable src,
// then falls back to any image whose src or alt mentions a logo (or whose
// alt mentions the company).
func (e *Extractor) extractLogoURL(c *goquery.Selection, base *url.URL) string {
	for _, sel := range e.rules.Logo {
		el := c.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		if src, ok := el.Attr("src"); ok && strings.TrimSpace(src) != "" {
			return resolveURL(base, src)
		}
	}

	logo := ""
	c.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src, _ := img.Attr("src")
		if strings.TrimSpace(src) == "" {
			return true
		}
		alt, _ := img.Attr("alt")
		lowSrc, lowAlt := strings.ToLower(src), strings.ToLower(alt)
		if strings.Contains(lowSrc, "logo") || strings.Contains(lowAlt, "logo") || strings.Contains(lowAlt, "company") {
			logo = resolveURL(base, src)
			return false
		}
		return true
	})
	return logo
}

// extractSkills collects cleaned text from every match of every skill
// selector (no cascade stop), then falls back to a whole-word vocabulary
// scan over the candidate text. Dedup is exact-match: "Java" and "java" are
// distinct skills.
func (e *Extractor) extractSkills(c *goquery.Selection) []string {
	var skills []string
	for _, sel := range e.rules.Skills {
		c.Find(sel).Each(func(_ int, el *goquery.Selection) {
			text := Clean(el.Text())
			if text != "" && utf8.RuneCountInString(text) < skillMaxLen {
				skills = append(skills, text)
			}
		})
	}

	if len(skills) == 0 {
		full := c.Text()
		for i, re := range e.rules.skillRE {
			if re.MatchString(full) {
				skills = append(skills, e.rules.SkillVocab[i])
			}
		}
	}

	return dedupExact(skills)
}

// dedupExact removes exact duplicates preserving first-seen order, which
// keeps Parse deterministic.
func dedupExact(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// resolveURL resolves href against the page base URL. Empty or unparsable
// refs resolve to "" rather than the base itself.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
