package service

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"seo_insight/internal/domain/models"
)

// ExtractSignals reads every SEO-relevant fact out of a parsed document.
// It is a pure function of (document, source URL); no network calls happen
// here. baseURL must already be normalized.
func ExtractSignals(doc *html.Node, baseURL *url.URL) models.PageSignals {
	title := extractTitle(doc)
	description := extractMetaDescription(doc)
	return models.PageSignals{
		Title:                 title,
		TitleLength:           len(title),
		MetaDescription:       description,
		MetaDescriptionLength: len(description),
		HeadingCounts:         extractHeadings(doc),
		Images:                extractImages(doc),
		Links:                 extractLinks(doc, baseURL),
		Social:                extractSocial(doc),
		StructuredData:        extractStructuredData(doc),
		Technical:             extractTechnical(doc),
	}
}

func extractTitle(doc *html.Node) string {
	var title string
	var found bool
	walk(doc, func(n *html.Node) {
		if found || n.Type != html.ElementNode || n.Data != "title" {
			return
		}
		found = true
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			title = n.FirstChild.Data
		}
	})
	return title
}

func extractMetaDescription(doc *html.Node) string {
	var description string
	var found bool
	walk(doc, func(n *html.Node) {
		if found || !isElement(n, "meta") {
			return
		}
		if attr(n, "name") == "description" {
			found = true
			description = attr(n, "content")
		}
	})
	return description
}

func extractHeadings(doc *html.Node) models.HeadingCounts {
	counts := models.HeadingCounts{}
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.Data {
		case "h1":
			counts.H1++
			counts.Total++
		case "h2":
			counts.H2++
			counts.Total++
		case "h3":
			counts.H3++
			counts.Total++
		case "h4", "h5", "h6":
			counts.Total++
		}
	})
	return counts
}

// extractImages treats an empty alt attribute the same as a missing one.
// That conflates decorative images with unlabeled ones, but the scoring
// rubric depends on this exact split.
func extractImages(doc *html.Node) models.ImageCounts {
	counts := models.ImageCounts{}
	walk(doc, func(n *html.Node) {
		if !isElement(n, "img") {
			return
		}
		counts.Total++
		if hasNonEmptyAttr(n, "alt") {
			counts.WithAlt++
		} else {
			counts.WithoutAlt++
		}
	})
	return counts
}

// extractLinks keeps the three-way split: anchors whose href is neither
// site-relative nor absolute http (mailto:, #fragment, empty) count toward
// Total only.
func extractLinks(doc *html.Node, baseURL *url.URL) models.LinkCounts {
	origin := baseURL.Scheme + "://" + baseURL.Host
	counts := models.LinkCounts{}
	walk(doc, func(n *html.Node) {
		if !isElement(n, "a") {
			return
		}
		counts.Total++
		href := attr(n, "href")
		switch {
		case strings.HasPrefix(href, "/") || strings.HasPrefix(href, origin):
			counts.Internal++
		case strings.HasPrefix(href, "http"):
			counts.External++
		}
	})
	return counts
}

func extractSocial(doc *html.Node) models.SocialTags {
	tags := models.SocialTags{}
	walk(doc, func(n *html.Node) {
		if !isElement(n, "meta") {
			return
		}
		switch attr(n, "property") {
		case "og:title":
			tags.HasOgTitle = true
		case "og:description":
			tags.HasOgDescription = true
		case "og:image":
			tags.HasOgImage = true
		}
		if attr(n, "name") == "twitter:card" {
			tags.HasTwitterCard = true
		}
	})
	return tags
}

func extractStructuredData(doc *html.Node) models.StructuredData {
	data := models.StructuredData{}
	walk(doc, func(n *html.Node) {
		if isElement(n, "script") && attr(n, "type") == "application/ld+json" {
			data.Count++
		}
	})
	data.Present = data.Count > 0
	return data
}

func extractTechnical(doc *html.Node) models.TechnicalTags {
	tags := models.TechnicalTags{}
	walk(doc, func(n *html.Node) {
		if isElement(n, "meta") {
			switch attr(n, "name") {
			case "viewport":
				tags.HasViewport = true
			case "robots":
				tags.HasRobots = true
			}
		}
		if isElement(n, "link") {
			switch attr(n, "rel") {
			case "canonical":
				tags.HasCanonical = true
			case "preconnect":
				tags.PreconnectCount++
			case "dns-prefetch":
				tags.DNSPrefetchCount++
			}
		}
	})
	return tags
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func isElement(n *html.Node, name string) bool {
	return n.Type == html.ElementNode && n.Data == name
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasNonEmptyAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val != ""
		}
	}
	return false
}
