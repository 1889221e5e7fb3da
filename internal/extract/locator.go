package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// findContainers locates candidate listing elements with a three-tier
// cascade: the dedicated result marker, then the known class-fragment
// selectors, then a content-keyword heuristic over block elements. The first
// tier with any match wins. Nested matches are collapsed ancestor-first so
// no returned candidate sits inside another; only the heuristic tier is
// capped, since its keyword test can false-positive on arbitrary markup.
func (e *Extractor) findContainers(doc *goquery.Document) []*goquery.Selection {
	if found := splitSelection(doc.Find(e.rules.ContainerPrimary)); len(found) > 0 {
		return dropNested(found, 0)
	}

	for _, sel := range e.rules.ContainerAlt {
		if found := splitSelection(doc.Find(sel)); len(found) > 0 {
			return dropNested(found, 0)
		}
	}

	var found []*goquery.Selection
	doc.Find("div, article, section").Each(func(_ int, s *goquery.Selection) {
		text := strings.ToLower(s.Text())
		if !containsAny(text, e.rules.ContainerKeywords) {
			return
		}
		href, ok := s.Find("a[href]").First().Attr("href")
		if !ok || !containsAny(href, e.rules.JobLinkHints) {
			return
		}
		found = append(found, s)
	})
	return dropNested(found, e.rules.MaxHeuristic)
}

// splitSelection breaks a multi-node selection into per-node selections,
// preserving document order.
func splitSelection(sel *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s)
	})
	return out
}

// dropNested removes every candidate that is a descendant of an earlier
// kept candidate. Candidates arrive in document order, so ancestors are
// seen first and win. max > 0 caps the result length.
func dropNested(candidates []*goquery.Selection, max int) []*goquery.Selection {
	kept := make(map[*html.Node]bool, len(candidates))
	var out []*goquery.Selection
	for _, c := range candidates {
		node := c.Get(0)
		nested := false
		for p := node.Parent; p != nil; p = p.Parent {
			if kept[p] {
				nested = true
				break
			}
		}
		if nested {
			continue
		}
		kept[node] = true
		out = append(out, c)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
