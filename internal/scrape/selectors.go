package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extractor pulls one string out of a parsed page. Extractors are chained
// in declarative lists so that an upstream markup change means editing a
// list, not control flow.
type Extractor func(*goquery.Document) string

// Text extracts the trimmed text of the first node matching selector.
func Text(selector string) Extractor {
	return func(doc *goquery.Document) string {
		return strings.TrimSpace(doc.Find(selector).First().Text())
	}
}

// Attr extracts the named attribute of the first node matching selector.
func Attr(selector, attr string) Extractor {
	return func(doc *goquery.Document) string {
		v, _ := doc.Find(selector).First().Attr(attr)
		return strings.TrimSpace(v)
	}
}

// Chain runs extractors in order and returns the first non-empty result.
func Chain(doc *goquery.Document, extractors ...Extractor) string {
	for _, extract := range extractors {
		if v := extract(doc); v != "" {
			return v
		}
	}
	return ""
}

// TextList collects the trimmed text of every node matching the first
// selector that matches anything at all.
func TextList(doc *goquery.Document, selectors ...string) []string {
	for _, selector := range selectors {
		var out []string
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				out = append(out, t)
			}
		})
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
