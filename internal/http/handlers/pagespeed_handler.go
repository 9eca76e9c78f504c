package handlers

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"seo_insight/internal/domain/models"
	"seo_insight/internal/http/middleware"
	"seo_insight/internal/pkg/errors"
	"seo_insight/internal/service"
)

// PageSpeedHandler serves the external-audit strategy.
type PageSpeedHandler struct {
	service *service.PageSpeedAuditor
	log     *log.Logger
}

type PageSpeedResponse struct {
	Success   bool                       `json:"success"`
	Mobile    *models.PerformanceSignals `json:"mobile"`
	Desktop   *models.PerformanceSignals `json:"desktop"`
	URL       string                     `json:"url"`
	Timestamp string                     `json:"timestamp"`
}

func NewPageSpeedHandler(service *service.PageSpeedAuditor, log *log.Logger) *PageSpeedHandler {
	return &PageSpeedHandler{
		service: service,
		log:     log,
	}
}

func (h *PageSpeedHandler) Handle(w http.ResponseWriter, r *http.Request) {
	h.log.WithField(`request_id`, middleware.RequestIDFromContext(r.Context())).Debug(`pagespeed handler called`)

	var request AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.log.WithError(err).Error(`failed to decode request body`)
		sendError(w, `Failed to analyze page. Please try again later.`, err, http.StatusInternalServerError)
		return
	}

	if request.URL == "" {
		sendError(w, `URL is required`, errors.New(`url is empty`), http.StatusBadRequest)
		return
	}

	report, err := h.service.Audit(r.Context(), request.URL)
	if err != nil {
		var invalidErr *errors.InvalidURLError
		var auditErr *errors.AuditError
		switch {
		case errors.As(err, &invalidErr):
			sendError(w, `Invalid URL format. Please include http:// or https://`, err, http.StatusBadRequest)
		case errors.As(err, &auditErr):
			sendError(w, auditErr.Message, err, http.StatusBadRequest)
		default:
			sendError(w, `Failed to analyze page. Please try again later.`, err, http.StatusInternalServerError)
		}
		return
	}

	response := PageSpeedResponse{
		Success:   true,
		Mobile:    report.Mobile,
		Desktop:   report.Desktop,
		URL:       report.URL,
		Timestamp: report.Timestamp,
	}

	w.Header().Set(`Content-Type`, `application/json`)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.WithError(err).Error(`failed to encode response`)
	}
}
