package csse

import (
	"encoding/csv"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"corona-observer/src/helpers"
	"corona-observer/src/models"
)

// dateHeader matches the M/D/YY column labels of the CSSE time series.
var dateHeader = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2}$`)

var countryHeaders = []string{"Country/Region", "Country_Region"}
var provinceHeaders = []string{"Province/State", "Province_State"}

const (
	fallbackProvinceColumn = 0
	fallbackCountryColumn  = 1
)

// ParseTimeSeries reads one CSSE time-series CSV. Date columns are recognised
// by their header, so extra leading columns (Lat, Long, ...) are ignored.
// Empty cells count as 0; anything else that is not an integer is an error.
func ParseTimeSeries(metric models.Metric, r io.Reader) (*models.MTimeSeriesTable, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, helpers.NewParseError(nil, "%s: empty CSV", metric)
		}
		return nil, helpers.NewParseError(err, "%s: reading header", metric)
	}

	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	countryCol := findColumn(header, countryHeaders, fallbackCountryColumn)
	provinceCol := findColumn(header, provinceHeaders, fallbackProvinceColumn)
	if countryCol >= len(header) {
		return nil, helpers.NewParseError(nil, "%s: header has no country column", metric)
	}

	table := &models.MTimeSeriesTable{Metric: metric}
	var dateCols []int
	for i, h := range header {
		h = strings.TrimSpace(h)
		if dateHeader.MatchString(h) {
			dateCols = append(dateCols, i)
			table.Dates = append(table.Dates, h)
		}
	}

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, helpers.NewParseError(err, "%s: line %d", metric, line)
		}

		row := models.MTimeSeriesRow{
			Country: strings.TrimSpace(record[countryCol]),
			Values:  make([]int64, len(dateCols)),
		}
		if provinceCol < len(record) {
			row.Province = strings.TrimSpace(record[provinceCol])
		}
		if row.Country == "" {
			return nil, helpers.NewParseError(nil, "%s: line %d has no country", metric, line)
		}

		for j, col := range dateCols {
			cell := strings.TrimSpace(record[col])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseInt(cell, 10, 64)
			if err != nil {
				return nil, helpers.NewParseError(err, "%s: line %d column %q", metric, line, table.Dates[j])
			}
			row.Values[j] = v
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func findColumn(header []string, names []string, fallback int) int {
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return fallback
}
