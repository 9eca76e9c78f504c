package service

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseDoc(t *testing.T, content string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(content))
	require.NoError(t, err)
	return doc
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestExtractSignals_TitleAndMeta(t *testing.T) {
	doc := parseDoc(t, `<!DOCTYPE html><html><head>
		<title>My Example Page</title>
		<meta name="description" content="A short description.">
	</head><body></body></html>`)

	signals := ExtractSignals(doc, mustURL(t, "https://example.com"))

	assert.Equal(t, "My Example Page", signals.Title)
	assert.Equal(t, len("My Example Page"), signals.TitleLength)
	assert.Equal(t, "A short description.", signals.MetaDescription)
	assert.Equal(t, len("A short description."), signals.MetaDescriptionLength)
}

func TestExtractSignals_MissingTitleAndMeta(t *testing.T) {
	doc := parseDoc(t, `<html><body><p>no head content</p></body></html>`)

	signals := ExtractSignals(doc, mustURL(t, "https://example.com"))

	assert.Equal(t, "", signals.Title)
	assert.Equal(t, 0, signals.TitleLength)
	assert.Equal(t, "", signals.MetaDescription)
	assert.Equal(t, 0, signals.MetaDescriptionLength)
}

func TestExtractSignals_HeadingTotalsIncludeH4ToH6(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<h1>a</h1><h2>b</h2><h2>c</h2><h3>d</h3><h4>e</h4><h5>f</h5><h6>g</h6>
	</body></html>`)

	signals := ExtractSignals(doc, mustURL(t, "https://example.com"))

	assert.Equal(t, 1, signals.HeadingCounts.H1)
	assert.Equal(t, 2, signals.HeadingCounts.H2)
	assert.Equal(t, 1, signals.HeadingCounts.H3)
	// h4-h6 are not tracked individually but count toward the total
	assert.Equal(t, 7, signals.HeadingCounts.Total)
}

func TestExtractSignals_ImageAltInvariant(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<img src="a.png" alt="labeled">
		<img src="b.png" alt="">
		<img src="c.png">
	</body></html>`)

	signals := ExtractSignals(doc, mustURL(t, "https://example.com"))

	assert.Equal(t, 3, signals.Images.Total)
	assert.Equal(t, 1, signals.Images.WithAlt)
	// empty alt counts as missing, same as no attribute
	assert.Equal(t, 2, signals.Images.WithoutAlt)
	assert.Equal(t, signals.Images.Total, signals.Images.WithAlt+signals.Images.WithoutAlt)
}

func TestExtractSignals_LinkThreeWaySplit(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<a href="/about">internal relative</a>
		<a href="https://example.com/pricing">internal absolute</a>
		<a href="https://other.org">external</a>
		<a href="http://other.org/page">external http</a>
		<a href="mailto:hi@example.com">mail</a>
		<a href="#section">anchor</a>
	</body></html>`)

	signals := ExtractSignals(doc, mustURL(t, "https://example.com"))

	assert.Equal(t, 6, signals.Links.Total)
	assert.Equal(t, 2, signals.Links.Internal)
	assert.Equal(t, 2, signals.Links.External)
	// mailto and fragment links count in total but in neither bucket
	assert.Equal(t, 2, signals.Links.Total-signals.Links.Internal-signals.Links.External)
}

func TestExtractSignals_SocialAndStructuredData(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<meta property="og:title" content="t">
		<meta property="og:image" content="i.png">
		<meta name="twitter:card" content="summary">
		<script type="application/ld+json">{"@type":"Organization"}</script>
		<script type="application/ld+json">{"@type":"WebSite"}</script>
		<script>var notSchema = 1;</script>
	</head><body></body></html>`)

	signals := ExtractSignals(doc, mustURL(t, "https://example.com"))

	assert.True(t, signals.Social.HasOgTitle)
	assert.False(t, signals.Social.HasOgDescription)
	assert.True(t, signals.Social.HasOgImage)
	assert.True(t, signals.Social.HasTwitterCard)
	assert.True(t, signals.StructuredData.Present)
	assert.Equal(t, 2, signals.StructuredData.Count)
}

func TestExtractSignals_TechnicalTags(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<meta name="viewport" content="width=device-width">
		<meta name="robots" content="index,follow">
		<link rel="canonical" href="https://example.com/">
		<link rel="preconnect" href="https://fonts.gstatic.com">
		<link rel="preconnect" href="https://cdn.example.com">
		<link rel="dns-prefetch" href="https://api.example.com">
	</head><body></body></html>`)

	signals := ExtractSignals(doc, mustURL(t, "https://example.com"))

	assert.True(t, signals.Technical.HasViewport)
	assert.True(t, signals.Technical.HasCanonical)
	assert.True(t, signals.Technical.HasRobots)
	assert.Equal(t, 2, signals.Technical.PreconnectCount)
	assert.Equal(t, 1, signals.Technical.DNSPrefetchCount)
}

func TestExtractSignals_Idempotent(t *testing.T) {
	doc := parseDoc(t, `<html><head><title>Stable</title></head><body>
		<h1>one</h1><img src="a.png"><a href="/x">x</a>
	</body></html>`)
	base := mustURL(t, "https://example.com")

	first := ExtractSignals(doc, base)
	second := ExtractSignals(doc, base)

	assert.Equal(t, first, second)
}
