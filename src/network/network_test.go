package network

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"corona-observer/src/config"
	"corona-observer/src/helpers"
	"corona-observer/src/logger"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "https://example.com/confirmed.csv"

func newTestManager(t *testing.T, retries int) (*HTTPNetworkManager, *httpmock.MockTransport) {
	t.Helper()
	cfg := config.Default()
	cfg.Network.MaxRetries = retries
	cfg.Network.RetryBaseDelayMs = 1

	nm := NewHTTPNetworkManager(cfg.MConfig, logger.NewLogger("test"))
	mock := httpmock.NewMockTransport()
	nm.SetTransport(mock)
	return nm, mock
}

func TestGetSuccess(t *testing.T) {
	nm, mock := newTestManager(t, 2)
	mock.RegisterResponder("GET", testURL, httpmock.NewStringResponder(200, "a,b\n1,2\n"))

	body, err := nm.Get(context.Background(), testURL)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(body))
	assert.Equal(t, 1, mock.GetTotalCallCount())
}

func TestGetRetriesServerErrors(t *testing.T) {
	nm, mock := newTestManager(t, 2)
	mock.RegisterResponder("GET", testURL,
		httpmock.NewStringResponder(503, "busy").
			Then(httpmock.NewStringResponder(200, "ok")))

	body, err := nm.Get(context.Background(), testURL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, 2, mock.GetTotalCallCount())
}

func TestGetDoesNotRetryNotFound(t *testing.T) {
	nm, mock := newTestManager(t, 3)
	mock.RegisterResponder("GET", testURL, httpmock.NewStringResponder(404, "missing"))

	_, err := nm.Get(context.Background(), testURL)
	require.Error(t, err)
	assert.Equal(t, 1, mock.GetTotalCallCount())

	var netErr *helpers.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, 404, netErr.StatusCode)
}

func TestGetGivesUpAfterRetries(t *testing.T) {
	nm, mock := newTestManager(t, 2)
	mock.RegisterResponder("GET", testURL, httpmock.NewErrorResponder(errors.New("connection reset")))

	_, err := nm.Get(context.Background(), testURL)
	require.Error(t, err)
	assert.Equal(t, 3, mock.GetTotalCallCount())
	assert.Contains(t, err.Error(), "connection reset")
}

func TestGetSendsUserAgent(t *testing.T) {
	cfg := config.Default()
	cfg.Network.UserAgent = "dash-test/2.0"
	nm := NewHTTPNetworkManager(cfg.MConfig, logger.NewLogger("test"))
	mock := httpmock.NewMockTransport()
	nm.SetTransport(mock)

	mock.RegisterResponder("GET", testURL, func(req *http.Request) (*http.Response, error) {
		return httpmock.NewStringResponse(200, req.Header.Get("User-Agent")), nil
	})

	body, err := nm.Get(context.Background(), testURL)
	require.NoError(t, err)
	assert.Equal(t, "dash-test/2.0", string(body))
}
