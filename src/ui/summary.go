package ui

import (
	"fmt"
	"strings"
	"time"

	"corona-observer/src/models"

	"github.com/dustin/go-humanize"
)

const summaryHeight = 6

const keyHelp = "↑/k ↓/j select  c/d/r sort  o open source  q quit"

// renderSummary draws the footer: update date, totals, rates and data origin.
func renderSummary(s models.MSummary, fetchedAt time.Time, status string, width int) string {
	origin := s.Origin
	if !fetchedAt.IsZero() {
		origin = fmt.Sprintf("%s, fetched %s", s.Origin, humanize.Time(fetchedAt))
	}

	lines := []string{
		fmt.Sprintf("Updated: %s  (%s countries, data from %s)", s.Updated, humanize.Comma(int64(s.Countries)), origin),
		fmt.Sprintf("Total confirmed: %s", humanize.Comma(s.Confirmed)),
		fmt.Sprintf("Deaths: %s (%s)  Recovered: %s (%s)",
			humanize.Comma(s.Deaths), s.DeathRate, humanize.Comma(s.Recovered), s.RecoveryRate),
	}

	footer := mutedStyle.Render(keyHelp)
	if status != "" {
		footer += "  " + errorStyle.Render(status)
	}
	lines = append(lines, footer)

	return boxStyle.
		Width(max(width-2, 0)).
		Height(summaryHeight - 2).
		MaxHeight(summaryHeight).
		Render(strings.Join(lines, "\n"))
}
