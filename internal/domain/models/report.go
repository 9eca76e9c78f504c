package models

// ScoreReport is the outcome of the HTML-rubric strategy for one request.
// Score is clamped to [0,100]; Recommendations holds at most ten entries in
// rubric evaluation order.
type ScoreReport struct {
	Score           int         `json:"score"`
	URL             string      `json:"url"`
	Analysis        PageSignals `json:"analysis"`
	Recommendations []string    `json:"recommendations"`
}

// AuditReport is the outcome of the external-audit strategy: one
// PerformanceSignals per device, no blended score across categories.
type AuditReport struct {
	Mobile    *PerformanceSignals `json:"mobile"`
	Desktop   *PerformanceSignals `json:"desktop"`
	URL       string              `json:"url"`
	Timestamp string              `json:"timestamp"`
}
