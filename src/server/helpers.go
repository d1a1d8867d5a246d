package server

import (
	"net/http"
	"strings"

	"corona-observer/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------

func notReady(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "dataset not loaded yet"})
}

// -----------------------------------------------------------------------------

// findCountry looks the name up exactly first, then case-insensitively.
func findCountry(ds *models.MDataset, name string) *models.MCountry {
	if c, ok := ds.Countries[name]; ok {
		return c
	}
	for key, c := range ds.Countries {
		if strings.EqualFold(key, name) {
			return c
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *APIServer) defaultMetric() models.Metric {
	m, err := models.ParseMetric(s.Config.UI.DefaultSort)
	if err != nil {
		return models.MetricConfirmed
	}
	return m
}

func (s *APIServer) sortMetric(query string) (models.Metric, error) {
	if query == "" {
		return s.defaultMetric(), nil
	}
	return models.ParseMetric(query)
}
