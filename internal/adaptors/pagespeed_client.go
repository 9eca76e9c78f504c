package adaptors

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"seo_insight/internal/domain/models"
	"seo_insight/internal/pkg/errors"
	"seo_insight/internal/pkg/metrics"
)

const unavailableMsg = "Failed to fetch PageSpeed data. The service might be temporarily unavailable."

var auditCategories = []string{"performance", "accessibility", "best-practices", "seo"}

// PageSpeedClient calls a Lighthouse-style audit API and normalizes its
// response into PerformanceSignals. One Run covers one device strategy.
type PageSpeedClient struct {
	apiURL string
	apiKey string
	client *http.Client
	log    *log.Logger
}

func NewPageSpeedClient(apiURL, apiKey string, timeout time.Duration, log *log.Logger) *PageSpeedClient {
	rTripper := promhttp.InstrumentRoundTripperDuration(
		metrics.HTTPClientRequestDuration,
		promhttp.InstrumentRoundTripperCounter(metrics.HTTPClientRequestsTotal, http.DefaultTransport))

	return &PageSpeedClient{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{
			Timeout:   timeout,
			Transport: rTripper,
		},
		log: log,
	}
}

func (c *PageSpeedClient) Run(ctx context.Context, targetURL string, strategy string) (*models.PerformanceSignals, error) {
	params := url.Values{}
	params.Set("url", targetURL)
	params.Set("strategy", strategy)
	for _, cat := range auditCategories {
		params.Add("category", cat)
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		c.log.WithError(err).Error(`failed to create pagespeed request`)
		return nil, &errors.AuditError{Strategy: strategy, Message: unavailableMsg}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("strategy", strategy).Error(`pagespeed fetch failed`)
		return nil, &errors.AuditError{Strategy: strategy, Message: unavailableMsg}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &errors.AuditError{Strategy: strategy, Message: upstreamErrorMessage(resp)}
	}

	var payload lighthouseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.WithError(err).WithField("strategy", strategy).Error(`failed to decode pagespeed response`)
		return nil, &errors.AuditError{Strategy: strategy, Message: unavailableMsg}
	}

	return normalize(&payload), nil
}

func upstreamErrorMessage(resp *http.Response) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

// Upstream response shapes. Every field is optional; anything that fails to
// decode is treated as absent so scoring defaults apply.
type lighthouseResponse struct {
	LighthouseResult *lighthouseResult `json:"lighthouseResult"`
}

type lighthouseResult struct {
	Categories map[string]lighthouseCategory `json:"categories"`
	Audits     map[string]lighthouseAudit    `json:"audits"`
	FetchTime  string                        `json:"fetchTime"`
}

type lighthouseCategory struct {
	Score *float64 `json:"score"`
}

type lighthouseAudit struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Score        *float64        `json:"score"`
	DisplayValue string          `json:"displayValue"`
	Details      json.RawMessage `json:"details"`
}

func (a *lighthouseAudit) savingsMs() float64 {
	var d struct {
		OverallSavingsMs float64 `json:"overallSavingsMs"`
	}
	if json.Unmarshal(a.Details, &d) != nil {
		return 0
	}
	return d.OverallSavingsMs
}

func (a *lighthouseAudit) itemsCount() int {
	var d struct {
		Items []json.RawMessage `json:"items"`
	}
	if json.Unmarshal(a.Details, &d) != nil {
		return 0
	}
	return len(d.Items)
}

func (a *lighthouseAudit) screenshotData() string {
	var d struct {
		Data string `json:"data"`
	}
	if json.Unmarshal(a.Details, &d) != nil {
		return ""
	}
	return d.Data
}

func normalize(payload *lighthouseResponse) *models.PerformanceSignals {
	result := payload.LighthouseResult
	if result == nil {
		result = &lighthouseResult{}
	}

	signals := &models.PerformanceSignals{
		Performance:   categoryScore(result.Categories, "performance"),
		Accessibility: categoryScore(result.Categories, "accessibility"),
		BestPractices: categoryScore(result.Categories, "best-practices"),
		SEO:           categoryScore(result.Categories, "seo"),
		FetchTime:     result.FetchTime,
	}
	if signals.FetchTime == "" {
		signals.FetchTime = time.Now().UTC().Format(time.RFC3339)
	}

	signals.LCP, signals.LCPScore = metricAudit(result.Audits, "largest-contentful-paint")
	signals.FID, signals.FIDScore = metricAudit(result.Audits, "max-potential-fid")
	signals.CLS, signals.CLSScore = metricAudit(result.Audits, "cumulative-layout-shift")
	signals.FCP, signals.FCPScore = metricAudit(result.Audits, "first-contentful-paint")
	signals.TTI, signals.TTIScore = metricAudit(result.Audits, "interactive")
	signals.SI, signals.SIScore = metricAudit(result.Audits, "speed-index")
	signals.TBT, signals.TBTScore = metricAudit(result.Audits, "total-blocking-time")

	signals.Opportunities = collectOpportunities(result.Audits)
	signals.Diagnostics = collectDiagnostics(result.Audits)

	if shot, ok := result.Audits["final-screenshot"]; ok {
		signals.Screenshot = shot.screenshotData()
	}

	return signals
}

func categoryScore(categories map[string]lighthouseCategory, name string) int {
	cat, ok := categories[name]
	if !ok || cat.Score == nil {
		return 0
	}
	return int(math.Round(*cat.Score * 100))
}

func metricAudit(audits map[string]lighthouseAudit, name string) (string, float64) {
	audit, ok := audits[name]
	if !ok {
		return "N/A", 0
	}
	display := audit.DisplayValue
	if display == "" {
		display = "N/A"
	}
	score := 0.0
	if audit.Score != nil {
		score = *audit.Score
	}
	return display, score
}

// collectOpportunities keeps audits with realizable savings, largest first,
// truncated to five. Keys are sorted before filtering so repeated runs over
// the same payload produce identical output.
func collectOpportunities(audits map[string]lighthouseAudit) []models.Opportunity {
	type scored struct {
		audit   lighthouseAudit
		savings float64
	}
	var candidates []scored
	for _, key := range sortedKeys(audits) {
		audit := audits[key]
		savings := audit.savingsMs()
		if audit.Score != nil && *audit.Score < 0.9 && savings > 0 {
			candidates = append(candidates, scored{audit: audit, savings: savings})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].savings > candidates[j].savings
	})
	if len(candidates) > 5 {
		candidates = candidates[:5]
	}

	opportunities := make([]models.Opportunity, 0, len(candidates))
	for _, c := range candidates {
		savings := c.audit.DisplayValue
		if savings == "" {
			savings = fmt.Sprintf("%gms", c.savings)
		}
		opportunities = append(opportunities, models.Opportunity{
			Title:       c.audit.Title,
			Description: c.audit.Description,
			Savings:     savings,
		})
	}
	return opportunities
}

// collectDiagnostics keeps failing audits with at least one affected item,
// truncated to five.
func collectDiagnostics(audits map[string]lighthouseAudit) []models.Diagnostic {
	diagnostics := make([]models.Diagnostic, 0, 5)
	for _, key := range sortedKeys(audits) {
		audit := audits[key]
		count := audit.itemsCount()
		if audit.Score == nil || *audit.Score >= 1 || count == 0 {
			continue
		}
		diagnostics = append(diagnostics, models.Diagnostic{
			Title:       audit.Title,
			Description: audit.Description,
			ItemsCount:  count,
		})
		if len(diagnostics) == 5 {
			break
		}
	}
	return diagnostics
}

func sortedKeys(audits map[string]lighthouseAudit) []string {
	keys := make([]string, 0, len(audits))
	for key := range audits {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
