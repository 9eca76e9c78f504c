package service

import (
	"context"
	"net/http"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"seo_insight/internal/pkg/errors"
)

// MockWebClient is a mock implementation of the WebClient interface
type MockWebClient struct {
	mock.Mock
}

func (m *MockWebClient) Do(ctx context.Context, url string, method string) ([]byte, int, error) {
	args := m.Called(ctx, url, method)
	return args.Get(0).([]byte), args.Int(1), args.Error(2)
}

func TestAnalyze(t *testing.T) {
	logger := log.New()
	mockWebClient := new(MockWebClient)
	analyzer := NewSEOAnalyzer(logger, mockWebClient)

	ctx := context.Background()
	testURL := "http://example.com"

	htmlContent := `<!DOCTYPE html><html><head>
		<title>An Example Page Title Of Reasonable Size</title>
		<meta name="description" content="Short description.">
		<meta property="og:title" content="t">
		<meta name="viewport" content="width=device-width">
	</head><body>
		<h1>Header</h1><h2>Sub</h2><h3>Deeper</h3>
		<img src="a.png" alt="labeled">
		<a href="/one">1</a><a href="/two">2</a><a href="https://other.org">3</a>
		<a href="/four">4</a><a href="/five">5</a>
	</body></html>`
	mockWebClient.On("Do", mock.Anything, testURL, http.MethodGet).Return([]byte(htmlContent), http.StatusOK, nil)

	report, err := analyzer.Analyze(ctx, testURL)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, "http://example.com", report.URL)
	assert.Equal(t, "An Example Page Title Of Reasonable Size", report.Analysis.Title)
	assert.Equal(t, 1, report.Analysis.HeadingCounts.H1)
	assert.Equal(t, 3, report.Analysis.HeadingCounts.Total)
	assert.Equal(t, 5, report.Analysis.Links.Total)
	assert.Equal(t, 4, report.Analysis.Links.Internal)
	assert.Equal(t, 1, report.Analysis.Links.External)
	assert.Equal(t, 1, report.Analysis.Images.WithAlt)
	assert.True(t, report.Analysis.Social.HasOgTitle)
	assert.True(t, report.Analysis.Technical.HasViewport)

	// title 40 chars (15) + meta out of range (8) + one H1 (5) + 3 headings (5)
	// + full alt coverage (10) + 5 links (5) + one og tag (5) + viewport (3)
	assert.Equal(t, 56, report.Score)
	assert.GreaterOrEqual(t, report.Score, 0)
	assert.LessOrEqual(t, report.Score, 100)
	assert.LessOrEqual(t, len(report.Recommendations), 10)

	mockWebClient.AssertExpectations(t)
}

func TestAnalyze_DeterministicForSameInput(t *testing.T) {
	logger := log.New()
	mockWebClient := new(MockWebClient)
	analyzer := NewSEOAnalyzer(logger, mockWebClient)

	htmlContent := `<html><head><title>Same Input Same Output Every Time OK</title></head>
		<body><h1>h</h1><img src="a.png"><a href="/x">x</a></body></html>`
	mockWebClient.On("Do", mock.Anything, "http://example.com", http.MethodGet).
		Return([]byte(htmlContent), http.StatusOK, nil)

	first, err := analyzer.Analyze(context.Background(), "http://example.com")
	require.NoError(t, err)
	second, err := analyzer.Analyze(context.Background(), "http://example.com")
	require.NoError(t, err)

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Analysis, second.Analysis)
	assert.Equal(t, first.Recommendations, second.Recommendations)
}

func TestAnalyze_InvalidURL(t *testing.T) {
	logger := log.New()
	analyzer := NewSEOAnalyzer(logger, new(MockWebClient))

	for _, raw := range []string{"not-a-url", "ftp://example.com", ""} {
		report, err := analyzer.Analyze(context.Background(), raw)
		assert.Nil(t, report)
		var invalidErr *errors.InvalidURLError
		assert.True(t, errors.As(err, &invalidErr), "input %q", raw)
	}
}

func TestAnalyze_FetchFailure(t *testing.T) {
	logger := log.New()
	mockWebClient := new(MockWebClient)
	analyzer := NewSEOAnalyzer(logger, mockWebClient)

	mockWebClient.On("Do", mock.Anything, "http://example.com", http.MethodGet).
		Return([]byte(nil), http.StatusNotFound, nil)

	report, err := analyzer.Analyze(context.Background(), "http://example.com")
	assert.Nil(t, report)

	var fetchErr *errors.FetchError
	assert.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.Status)
}

func TestAnalyze_TransportError(t *testing.T) {
	logger := log.New()
	mockWebClient := new(MockWebClient)
	analyzer := NewSEOAnalyzer(logger, mockWebClient)

	mockWebClient.On("Do", mock.Anything, "http://unreachable.example", http.MethodGet).
		Return([]byte(nil), 0, errors.New("connection refused"))

	report, err := analyzer.Analyze(context.Background(), "http://unreachable.example")
	assert.Nil(t, report)
	assert.Error(t, err)

	var fetchErr *errors.FetchError
	assert.False(t, errors.As(err, &fetchErr))
}
