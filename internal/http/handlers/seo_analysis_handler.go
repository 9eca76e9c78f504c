package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"seo_insight/internal/http/middleware"
	"seo_insight/internal/pkg/errors"
	"seo_insight/internal/service"
)

// SEOAnalysisHandler serves the HTML-rubric strategy.
type SEOAnalysisHandler struct {
	service *service.SEOAnalyzer
	log     *log.Logger
}

type AnalysisRequest struct {
	URL string `json:"url"`
}

func NewSEOAnalysisHandler(service *service.SEOAnalyzer, log *log.Logger) *SEOAnalysisHandler {
	return &SEOAnalysisHandler{
		service: service,
		log:     log,
	}
}

func (h *SEOAnalysisHandler) Handle(w http.ResponseWriter, r *http.Request) {
	h.log.WithField(`request_id`, middleware.RequestIDFromContext(r.Context())).Debug(`seo analysis handler called`)

	var request AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.log.WithError(err).Error(`failed to decode request body`)
		sendError(w, `Failed to analyze URL. Please try again.`, err, http.StatusInternalServerError)
		return
	}

	if request.URL == "" {
		sendError(w, `URL is required`, errors.New(`url is empty`), http.StatusBadRequest)
		return
	}

	report, err := h.service.Analyze(r.Context(), request.URL)
	if err != nil {
		var invalidErr *errors.InvalidURLError
		var fetchErr *errors.FetchError
		switch {
		case errors.As(err, &invalidErr):
			sendError(w, `Invalid URL format`, err, http.StatusBadRequest)
		case errors.As(err, &fetchErr):
			sendError(w, fmt.Sprintf(`Failed to fetch URL: %d`, fetchErr.Status), err, http.StatusBadRequest)
		default:
			sendError(w, `Failed to analyze URL. Please try again.`, err, http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set(`Content-Type`, `application/json`)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		h.log.WithError(err).Error(`failed to encode response`)
	}
}
