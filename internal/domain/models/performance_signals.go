package models

// PerformanceSignals is the normalized result of one audit-API run for a
// single device strategy. Category scores are 0-100; metric scores are the
// upstream 0-1 fractions, defaulting to 0 when the audit is absent.
type PerformanceSignals struct {
	Performance   int `json:"performance"`
	Accessibility int `json:"accessibility"`
	BestPractices int `json:"bestPractices"`
	SEO           int `json:"seo"`

	LCP      string  `json:"lcp"`
	LCPScore float64 `json:"lcpScore"`
	FID      string  `json:"fid"`
	FIDScore float64 `json:"fidScore"`
	CLS      string  `json:"cls"`
	CLSScore float64 `json:"clsScore"`
	FCP      string  `json:"fcp"`
	FCPScore float64 `json:"fcpScore"`
	TTI      string  `json:"tti"`
	TTIScore float64 `json:"ttiScore"`
	SI       string  `json:"si"`
	SIScore  float64 `json:"siScore"`
	TBT      string  `json:"tbt"`
	TBTScore float64 `json:"tbtScore"`

	Opportunities []Opportunity `json:"opportunities"`
	Diagnostics   []Diagnostic  `json:"diagnostics"`

	Screenshot string `json:"screenshot,omitempty"`
	FetchTime  string `json:"fetchTime"`
}

// Opportunity is an audit with realizable time savings, largest first.
type Opportunity struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Savings     string `json:"savings"`
}

// Diagnostic is a failing audit with at least one affected item.
type Diagnostic struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ItemsCount  int    `json:"itemsCount"`
}
