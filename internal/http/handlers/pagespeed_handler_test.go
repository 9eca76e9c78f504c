package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"seo_insight/internal/domain/models"
	"seo_insight/internal/pkg/errors"
	"seo_insight/internal/service"
)

// MockPageSpeedRunner is a mock implementation of the PageSpeedRunner interface
type MockPageSpeedRunner struct {
	mock.Mock
}

func (m *MockPageSpeedRunner) Run(ctx context.Context, url string, strategy string) (*models.PerformanceSignals, error) {
	args := m.Called(ctx, url, strategy)
	signals, _ := args.Get(0).(*models.PerformanceSignals)
	return signals, args.Error(1)
}

func newPageSpeedHandler(runner *MockPageSpeedRunner) *PageSpeedHandler {
	logger := log.New()
	return NewPageSpeedHandler(service.NewPageSpeedAuditor(logger, runner), logger)
}

func postPageSpeed(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/analyze/pagespeed", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestPageSpeedHandler_MissingURL(t *testing.T) {
	rec := postPageSpeed(t, newPageSpeedHandler(new(MockPageSpeedRunner)).Handle, `{"url":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "URL is required", decodeError(t, rec))
}

func TestPageSpeedHandler_MalformedURL(t *testing.T) {
	rec := postPageSpeed(t, newPageSpeedHandler(new(MockPageSpeedRunner)).Handle, `{"url":"example dot com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid URL format. Please include http:// or https://", decodeError(t, rec))
}

func TestPageSpeedHandler_DeviceFailureBecomes400(t *testing.T) {
	runner := new(MockPageSpeedRunner)
	runner.On("Run", mock.Anything, "https://example.com", "mobile").
		Return(nil, &errors.AuditError{Strategy: "mobile", Message: "Failed to fetch PageSpeed data. The service might be temporarily unavailable."})
	runner.On("Run", mock.Anything, "https://example.com", "desktop").
		Return(&models.PerformanceSignals{Performance: 90}, nil)

	rec := postPageSpeed(t, newPageSpeedHandler(runner).Handle, `{"url":"https://example.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Failed to fetch PageSpeed data. The service might be temporarily unavailable.", decodeError(t, rec))
}

func TestPageSpeedHandler_Success(t *testing.T) {
	runner := new(MockPageSpeedRunner)
	runner.On("Run", mock.Anything, "https://example.com", "mobile").
		Return(&models.PerformanceSignals{Performance: 55, SEO: 92}, nil)
	runner.On("Run", mock.Anything, "https://example.com", "desktop").
		Return(&models.PerformanceSignals{Performance: 88, SEO: 95}, nil)

	rec := postPageSpeed(t, newPageSpeedHandler(runner).Handle, `{"url":"https://example.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp PageSpeedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Mobile)
	require.NotNil(t, resp.Desktop)
	assert.Equal(t, 55, resp.Mobile.Performance)
	assert.Equal(t, 88, resp.Desktop.Performance)
	assert.Equal(t, "https://example.com", resp.URL)
	assert.NotEmpty(t, resp.Timestamp)
}
