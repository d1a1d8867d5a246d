package models

import "strconv"

// MSummary holds the figures shown in the dashboard footer.
type MSummary struct {
	Updated      string `json:"updated"`
	Confirmed    int64  `json:"confirmed"`
	Deaths       int64  `json:"deaths"`
	DeathRate    string `json:"death_rate"`
	Recovered    int64  `json:"recovered"`
	RecoveryRate string `json:"recovery_rate"`
	Countries    int    `json:"countries"`
	Origin       string `json:"origin"`
}

// MCountryRow is a rendered table row.
type MCountryRow struct {
	Country      string `json:"country"`
	Confirmed    int64  `json:"confirmed"`
	Deaths       int64  `json:"deaths"`
	DeathRate    string `json:"death_rate"`
	Recovered    int64  `json:"recovered"`
	RecoveryRate string `json:"recovery_rate"`
}

// Cells returns the row as the six table columns.
func (r MCountryRow) Cells() []string {
	return []string{
		r.Country,
		strconv.FormatInt(r.Confirmed, 10),
		strconv.FormatInt(r.Deaths, 10),
		r.DeathRate,
		strconv.FormatInt(r.Recovered, 10),
		r.RecoveryRate,
	}
}
