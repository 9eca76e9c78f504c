package service

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"seo_insight/internal/domain/adaptors"
	"seo_insight/internal/domain/models"
	"seo_insight/internal/pkg/errors"
	"seo_insight/internal/pkg/metrics"
)

const externalAuditStrategy = "external_audit"

// PageSpeedAuditor is the external-audit strategy: run the audit API for
// mobile and desktop in parallel and hand back both normalized results.
type PageSpeedAuditor struct {
	log    *log.Logger
	runner adaptors.PageSpeedRunner
}

func NewPageSpeedAuditor(log *log.Logger, runner adaptors.PageSpeedRunner) *PageSpeedAuditor {
	return &PageSpeedAuditor{
		log:    log,
		runner: runner,
	}
}

// Audit runs both device strategies to completion before inspecting either
// outcome; one device failing must not cancel or corrupt the other run, so
// the closures keep their own result and always return nil to the group.
func (s *PageSpeedAuditor) Audit(ctx context.Context, rawURL string) (*models.AuditReport, error) {
	s.log.Debug(`pagespeed audit started...`)
	start := time.Now()

	base, err := NormalizeURL(rawURL)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(externalAuditStrategy, "invalid_url").Inc()
		return nil, err
	}
	target := base.String()

	var (
		mobile, desktop       *models.PerformanceSignals
		mobileErr, desktopErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		mobile, mobileErr = s.runner.Run(gctx, target, "mobile")
		return nil
	})
	g.Go(func() error {
		desktop, desktopErr = s.runner.Run(gctx, target, "desktop")
		return nil
	})
	_ = g.Wait()

	if mobileErr != nil || desktopErr != nil {
		metrics.AnalysesTotal.WithLabelValues(externalAuditStrategy, "fetch_failed").Inc()
		s.log.WithContext(ctx).WithFields(log.Fields{
			"mobile_error":  mobileErr,
			"desktop_error": desktopErr,
		}).Error(`pagespeed audit failed`)
		return nil, combineAuditErrors(mobileErr, desktopErr)
	}

	metrics.AnalysesTotal.WithLabelValues(externalAuditStrategy, "success").Inc()
	metrics.AnalysisDuration.WithLabelValues(externalAuditStrategy).Observe(time.Since(start).Seconds())

	s.log.Debug(`pagespeed audit ended...`)
	return &models.AuditReport{
		Mobile:    mobile,
		Desktop:   desktop,
		URL:       target,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// combineAuditErrors prefers the mobile failure, then desktop, then a
// generic message.
func combineAuditErrors(mobileErr, desktopErr error) error {
	for _, err := range []error{mobileErr, desktopErr} {
		if err == nil {
			continue
		}
		var auditErr *errors.AuditError
		if errors.As(err, &auditErr) {
			return &errors.AuditError{Strategy: auditErr.Strategy, Message: auditErr.Message}
		}
		return &errors.AuditError{Message: err.Error()}
	}
	return &errors.AuditError{Message: "Failed to analyze URL"}
}
