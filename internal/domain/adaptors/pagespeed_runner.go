package adaptors

import (
	"context"

	"seo_insight/internal/domain/models"
)

// PageSpeedRunner executes one external audit run for a device strategy
// ("mobile" or "desktop") and returns the normalized signals.
type PageSpeedRunner interface {
	Run(ctx context.Context, url string, strategy string) (*models.PerformanceSignals, error)
}
