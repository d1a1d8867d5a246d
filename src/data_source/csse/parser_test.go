package csse

import (
	"errors"
	"strings"
	"testing"

	"corona-observer/src/helpers"
	"corona-observer/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const confirmedCSV = `Province/State,Country/Region,Lat,Long,1/22/20,1/23/20
Hubei,China,30.97,112.27,1,2
Beijing,China,40.18,116.41,3,4
,Italy,43.0,12.0,0,5
`

func TestParseTimeSeries(t *testing.T) {
	table, err := ParseTimeSeries(models.MetricConfirmed, strings.NewReader(confirmedCSV))
	require.NoError(t, err)

	assert.Equal(t, models.MetricConfirmed, table.Metric)
	assert.Equal(t, []string{"1/22/20", "1/23/20"}, table.Dates)
	require.Len(t, table.Rows, 3)

	assert.Equal(t, models.MTimeSeriesRow{Province: "Hubei", Country: "China", Values: []int64{1, 2}}, table.Rows[0])
	assert.Equal(t, "", table.Rows[2].Province)
	assert.Equal(t, []int64{0, 5}, table.Rows[2].Values)
}

func TestParseTimeSeriesQuotedCountryAndEmptyCell(t *testing.T) {
	in := "Province/State,Country/Region,Lat,Long,3/1/20,3/2/20\n" +
		",\"Korea, South\",36.0,128.0,,7\n"

	table, err := ParseTimeSeries(models.MetricDeaths, strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Korea, South", table.Rows[0].Country)
	assert.Equal(t, []int64{0, 7}, table.Rows[0].Values)
}

func TestParseTimeSeriesLocatesCountryByHeader(t *testing.T) {
	in := "UID,Province_State,Country_Region,Lat,Long_,12/31/21\n" +
		"1,,Chile,-35.6,-71.5,42\n"

	table, err := ParseTimeSeries(models.MetricRecovered, strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Chile", table.Rows[0].Country)
	assert.Equal(t, []int64{42}, table.Rows[0].Values)
}

func TestParseTimeSeriesErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"non numeric", "Province/State,Country/Region,Lat,Long,1/22/20\n,China,0,0,lots\n"},
		{"ragged row", "Province/State,Country/Region,Lat,Long,1/22/20\n,China,0,0\n"},
		{"missing country", "Province/State,Country/Region,Lat,Long,1/22/20\nX,,0,0,1\n"},
	}

	for _, test := range tests {
		_, err := ParseTimeSeries(models.MetricConfirmed, strings.NewReader(test.in))
		require.Error(t, err, test.name)

		var pe *helpers.ParseError
		assert.True(t, errors.As(err, &pe), test.name)
	}
}
