package models

import "time"

const (
	DatasetOriginNetwork  = "network"
	DatasetOriginSnapshot = "snapshot"
)

// MDataset is one complete load: the date header plus every country record,
// TOTAL included. It is not mutated after construction.
type MDataset struct {
	Headers   []string             `json:"headers"`
	Countries map[string]*MCountry `json:"countries"`
	FetchedAt time.Time            `json:"fetched_at"`
	Origin    string               `json:"origin"`
}

// Total returns the synthetic TOTAL record, or nil if the dataset has none.
func (d *MDataset) Total() *MCountry {
	if d == nil {
		return nil
	}
	return d.Countries[TotalCountry]
}
