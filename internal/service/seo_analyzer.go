package service

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"seo_insight/internal/domain/adaptors"
	"seo_insight/internal/domain/models"
	"seo_insight/internal/pkg/errors"
	"seo_insight/internal/pkg/metrics"
	"seo_insight/internal/pkg/worker_pool"
)

const htmlRubricStrategy = "html_rubric"

// SEOAnalyzer is the HTML-rubric strategy: fetch the page, extract signals,
// score them against the rubric.
type SEOAnalyzer struct {
	log       *log.Logger
	webClient adaptors.WebClient
}

func NewSEOAnalyzer(log *log.Logger, webClient adaptors.WebClient) *SEOAnalyzer {
	return &SEOAnalyzer{
		log:       log,
		webClient: webClient,
	}
}

func (a *SEOAnalyzer) Analyze(ctx context.Context, rawURL string) (*models.ScoreReport, error) {
	a.log.Debug(`seo analysis started...`)
	start := time.Now()

	base, err := NormalizeURL(rawURL)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(htmlRubricStrategy, "invalid_url").Inc()
		return nil, err
	}

	body, statusCode, err := a.webClient.Do(ctx, base.String(), http.MethodGet)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(htmlRubricStrategy, "transport_error").Inc()
		a.log.WithContext(ctx).WithError(err).Error(`failed to get web page`)
		return nil, errors.Wrap(err, `failed to get web page`)
	}

	if statusCode < 200 || statusCode > 299 {
		metrics.AnalysesTotal.WithLabelValues(htmlRubricStrategy, "fetch_failed").Inc()
		a.log.WithContext(ctx).Errorf(`target returned status code: %v`, statusCode)
		return nil, &errors.FetchError{Status: statusCode, StatusText: http.StatusText(statusCode)}
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(htmlRubricStrategy, "parse_error").Inc()
		a.log.WithContext(ctx).WithError(err).Error(`failed to parse html`)
		return nil, errors.Wrap(err, `failed to parse html`)
	}

	signals := a.extractConcurrently(ctx, doc, base)
	score, recommendations := ScoreSignals(signals)

	metrics.AnalysesTotal.WithLabelValues(htmlRubricStrategy, "success").Inc()
	metrics.AnalysisDuration.WithLabelValues(htmlRubricStrategy).Observe(time.Since(start).Seconds())
	metrics.AnalysisScore.WithLabelValues(htmlRubricStrategy).Observe(float64(score))

	a.log.Debug(`seo analysis ended...`)
	return &models.ScoreReport{
		Score:           score,
		URL:             base.String(),
		Analysis:        signals,
		Recommendations: recommendations,
	}, nil
}

type textSignals struct {
	title           string
	metaDescription string
}

// extractConcurrently runs the independent extraction passes on the worker
// pool. The parsed tree is read-only, so concurrent walks are safe.
func (a *SEOAnalyzer) extractConcurrently(ctx context.Context, doc *html.Node, base *url.URL) models.PageSignals {
	pool := worker_pool.NewWorkerPool(ctx, 4, a.log)
	defer pool.Stop()

	tasks := map[string]worker_pool.TaskFunc{
		"text": func(context.Context) (any, error) {
			return textSignals{title: extractTitle(doc), metaDescription: extractMetaDescription(doc)}, nil
		},
		"headings": func(context.Context) (any, error) {
			return extractHeadings(doc), nil
		},
		"images": func(context.Context) (any, error) {
			return extractImages(doc), nil
		},
		"links": func(context.Context) (any, error) {
			return extractLinks(doc, base), nil
		},
		"social": func(context.Context) (any, error) {
			return extractSocial(doc), nil
		},
		"structured": func(context.Context) (any, error) {
			return extractStructuredData(doc), nil
		},
		"technical": func(context.Context) (any, error) {
			return extractTechnical(doc), nil
		},
	}
	for id, task := range tasks {
		if err := pool.Submit(id, task); err != nil {
			a.log.WithContext(ctx).WithError(err).Warn(`extraction task rejected, falling back to serial pass`)
			return ExtractSignals(doc, base)
		}
	}

	results, err := pool.Collect(len(tasks))
	if err != nil {
		a.log.WithContext(ctx).WithError(err).Warn(`extraction interrupted, falling back to serial pass`)
		return ExtractSignals(doc, base)
	}

	signals := models.PageSignals{}
	if text, ok := results["text"].Result.(textSignals); ok {
		signals.Title = text.title
		signals.TitleLength = len(text.title)
		signals.MetaDescription = text.metaDescription
		signals.MetaDescriptionLength = len(text.metaDescription)
	}
	if headings, ok := results["headings"].Result.(models.HeadingCounts); ok {
		signals.HeadingCounts = headings
	}
	if images, ok := results["images"].Result.(models.ImageCounts); ok {
		signals.Images = images
	}
	if links, ok := results["links"].Result.(models.LinkCounts); ok {
		signals.Links = links
	}
	if social, ok := results["social"].Result.(models.SocialTags); ok {
		signals.Social = social
	}
	if structured, ok := results["structured"].Result.(models.StructuredData); ok {
		signals.StructuredData = structured
	}
	if technical, ok := results["technical"].Result.(models.TechnicalTags); ok {
		signals.Technical = technical
	}
	return signals
}
