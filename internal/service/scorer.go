package service

import (
	"fmt"
	"strings"

	"seo_insight/internal/domain/models"
)

const (
	maxScore           = 100
	maxRecommendations = 10
)

// ScoreSignals applies the weighted rubric to extracted signals. Each check
// contributes independently; the sum is clamped to 100. Recommendations are
// collected in check order and truncated to the first ten.
func ScoreSignals(signals models.PageSignals) (int, []string) {
	score := 0
	recommendations := make([]string, 0, maxRecommendations)

	// Title: full points inside [30,60], partial when present but off-size.
	switch {
	case signals.TitleLength == 0:
		recommendations = append(recommendations, "Add a title tag to your page")
	case signals.TitleLength >= 30 && signals.TitleLength <= 60:
		score += 15
	default:
		score += 8
		recommendations = append(recommendations,
			fmt.Sprintf("Title length should be 30-60 characters (currently %d)", signals.TitleLength))
	}

	// Meta description: same shape with [120,160].
	switch {
	case signals.MetaDescriptionLength == 0:
		recommendations = append(recommendations, "Add a meta description to your page")
	case signals.MetaDescriptionLength >= 120 && signals.MetaDescriptionLength <= 160:
		score += 15
	default:
		score += 8
		recommendations = append(recommendations,
			fmt.Sprintf("Meta description should be 120-160 characters (currently %d)", signals.MetaDescriptionLength))
	}

	// Exactly one H1.
	switch signals.HeadingCounts.H1 {
	case 1:
		score += 5
	case 0:
		recommendations = append(recommendations, "Add exactly one H1 tag to your page")
	default:
		recommendations = append(recommendations,
			fmt.Sprintf("Found %d H1 tags, should have exactly one", signals.HeadingCounts.H1))
	}

	// Heading richness.
	if signals.HeadingCounts.Total >= 3 {
		score += 5
	} else {
		recommendations = append(recommendations, "Use more heading tags (H2, H3) to structure your content")
	}

	// Image alt coverage, only scored when images exist.
	if signals.Images.Total > 0 {
		switch {
		case signals.Images.WithoutAlt == 0:
			score += 10
		case float64(signals.Images.WithAlt)/float64(signals.Images.Total) >= 0.8:
			score += 7
			recommendations = append(recommendations,
				fmt.Sprintf("%d images are missing alt text", signals.Images.WithoutAlt))
		default:
			score += 3
			recommendations = append(recommendations,
				fmt.Sprintf("%d images are missing alt text", signals.Images.WithoutAlt))
		}
	}

	// Link count.
	if signals.Links.Total >= 5 {
		score += 5
	} else {
		recommendations = append(recommendations, "Add more links to improve site navigation")
	}

	// Open Graph: five points per present tag.
	var missingOg []string
	if !signals.Social.HasOgTitle {
		missingOg = append(missingOg, "og:title")
	}
	if !signals.Social.HasOgDescription {
		missingOg = append(missingOg, "og:description")
	}
	if !signals.Social.HasOgImage {
		missingOg = append(missingOg, "og:image")
	}
	score += (3 - len(missingOg)) * 5
	if len(missingOg) > 0 {
		recommendations = append(recommendations,
			"Add Open Graph tags: "+strings.Join(missingOg, ", "))
	}

	// Twitter card.
	if signals.Social.HasTwitterCard {
		score += 5
	} else {
		recommendations = append(recommendations, "Add Twitter Card tags for better social sharing")
	}

	// Structured data.
	switch {
	case signals.StructuredData.Count >= 2:
		score += 15
	case signals.StructuredData.Count == 1:
		score += 10
		recommendations = append(recommendations, "Add more schema types to enrich your structured data")
	default:
		recommendations = append(recommendations, "Add JSON-LD structured data markup")
	}

	// Technical tags.
	if signals.Technical.HasViewport {
		score += 3
	} else {
		recommendations = append(recommendations, "Add a viewport meta tag for mobile rendering")
	}
	if signals.Technical.HasCanonical {
		score += 3
	} else {
		recommendations = append(recommendations, "Add a canonical link tag to avoid duplicate content")
	}
	if signals.Technical.HasRobots {
		score += 2
	} else {
		recommendations = append(recommendations, "Add a robots meta tag")
	}
	if signals.Technical.PreconnectCount > 0 || signals.Technical.DNSPrefetchCount > 0 {
		score += 2
	} else {
		recommendations = append(recommendations, "Add resource hints (preconnect or dns-prefetch) to speed up loading")
	}

	if score > maxScore {
		score = maxScore
	}
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return score, recommendations
}
