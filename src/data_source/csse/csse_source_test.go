package csse

import (
	"context"
	"errors"
	"testing"

	"corona-observer/src/config"
	"corona-observer/src/logger"
	"corona-observer/src/models"
	"corona-observer/src/network"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deathsCSV = `Province/State,Country/Region,Lat,Long,1/22/20,1/23/20
Hubei,China,30.97,112.27,0,1
`

const recoveredCSV = `Province/State,Country/Region,Lat,Long,1/22/20,1/23/20
Hubei,China,30.97,112.27,0,0
,Italy,43.0,12.0,0,1
`

func newMockedSource(t *testing.T) (*CSSESource, *httpmock.MockTransport) {
	t.Helper()
	cfg := config.Default()
	cfg.Network.MaxRetries = 0

	nm := network.NewHTTPNetworkManager(cfg.MConfig, logger.NewLogger("test"))
	mock := httpmock.NewMockTransport()
	nm.SetTransport(mock)

	return NewCSSESource(cfg.MConfig, nm, logger.NewLogger("CSSESourceTest")), mock
}

func TestFetchTables(t *testing.T) {
	src, mock := newMockedSource(t)
	mock.RegisterResponder("GET", config.DefaultConfirmedURL, httpmock.NewStringResponder(200, confirmedCSV))
	mock.RegisterResponder("GET", config.DefaultDeathsURL, httpmock.NewStringResponder(200, deathsCSV))
	mock.RegisterResponder("GET", config.DefaultRecoveredURL, httpmock.NewStringResponder(200, recoveredCSV))

	tables, err := src.FetchTables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 3)

	assert.Len(t, tables[models.MetricConfirmed].Rows, 3)
	assert.Len(t, tables[models.MetricDeaths].Rows, 1)
	assert.Len(t, tables[models.MetricRecovered].Rows, 2)
	assert.Equal(t, 3, mock.GetTotalCallCount())
}

func TestFetchTablesFailsWhenOneDownloadFails(t *testing.T) {
	src, mock := newMockedSource(t)
	mock.RegisterResponder("GET", config.DefaultConfirmedURL, httpmock.NewStringResponder(200, confirmedCSV))
	mock.RegisterResponder("GET", config.DefaultDeathsURL, httpmock.NewStringResponder(404, "gone"))
	mock.RegisterResponder("GET", config.DefaultRecoveredURL, httpmock.NewStringResponder(200, recoveredCSV))

	tables, err := src.FetchTables(context.Background())
	assert.Nil(t, tables)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deaths")
}

type stubNetwork map[string]string

func (s stubNetwork) Get(_ context.Context, url string) ([]byte, error) {
	body, ok := s[url]
	if !ok {
		return nil, errors.New("no such url")
	}
	return []byte(body), nil
}

func TestFetchTablesParseError(t *testing.T) {
	cfg := config.Default()
	src := NewCSSESource(cfg.MConfig, stubNetwork{
		config.DefaultConfirmedURL: confirmedCSV,
		config.DefaultDeathsURL:    "Province/State,Country/Region,Lat,Long,1/22/20\n,China,0,0,x\n",
		config.DefaultRecoveredURL: recoveredCSV,
	}, logger.NewLogger("CSSESourceTest"))

	_, err := src.FetchTables(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1/22/20")
}

func TestNewCSSESourceUsesGivenLogger(t *testing.T) {
	log := logger.NewLogger("App").Named("CSSESource")
	src := NewCSSESource(config.Default().MConfig, stubNetwork{}, log)
	assert.Same(t, log, src.Logger)
}
