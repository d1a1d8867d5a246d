package ui

import (
	"errors"
	"strings"
	"testing"

	"corona-observer/src/analysis"
	"corona-observer/src/logger"
	"corona-observer/src/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() *models.MDataset {
	country := func(name string, confirmed, deaths, recovered int64) *models.MCountry {
		return &models.MCountry{
			Country:         name,
			ConfirmedSeries: []int64{0, confirmed},
			DeathsSeries:    []int64{0, deaths},
			RecoveredSeries: []int64{0, recovered},
		}
	}
	ds, err := analysis.Finalize([]string{"1/22/20", "1/23/20"}, map[string]*models.MCountry{
		"Italy": country("Italy", 100, 5, 10),
		"Spain": country("Spain", 50, 9, 0),
		"China": country("China", 6, 1, 6),
	})
	if err != nil {
		panic(err)
	}
	return ds
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	log := logger.NewLogger("UITest")
	m := NewModel(testDataset(), analysis.NewAnalysisFacade(log), models.MetricConfirmed, "https://example.org", log)
	m.openURL = func(string) error { return nil }
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func names(rows []models.MCountryRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Country
	}
	return out
}

func TestSelectionWraparound(t *testing.T) {
	assert.Equal(t, 3, PrevIndex(0, 4))
	assert.Equal(t, 0, NextIndex(3, 4))
	assert.Equal(t, 2, NextIndex(1, 4))
	assert.Equal(t, 0, PrevIndex(1, 4))
	assert.Equal(t, 0, NextIndex(0, 0))
	assert.Equal(t, 0, PrevIndex(0, 0))
}

func TestScrollOffset(t *testing.T) {
	tests := []struct {
		name                              string
		selected, offset, visible, n, want int
	}{
		{"fits", 3, 0, 10, 5, 0},
		{"inside window", 4, 2, 5, 20, 2},
		{"below window", 9, 0, 5, 20, 5},
		{"above window", 1, 5, 5, 20, 1},
		{"wrap to top", 0, 15, 5, 20, 0},
		{"wrap to bottom", 19, 0, 5, 20, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scrollOffset(tt.selected, tt.offset, tt.visible, tt.n))
		})
	}
}

func TestModel_InitialOrder(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, []string{"TOTAL", "Italy", "Spain", "China"}, names(m.Rows()))
	assert.Equal(t, 0, m.SelectedIndex())
	assert.Equal(t, models.TotalCountry, m.Selected().Country)
}

func TestModel_Navigation(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, key("up"))
	assert.Equal(t, 3, m.SelectedIndex(), "up from the first row wraps to the last")

	m = update(t, m, key("down"))
	assert.Equal(t, 0, m.SelectedIndex(), "down from the last row wraps to the first")

	m = update(t, m, key("j"))
	m = update(t, m, key("j"))
	assert.Equal(t, "Spain", m.Selected().Country)

	m = update(t, m, key("k"))
	assert.Equal(t, "Italy", m.Selected().Country)
}

func TestModel_ResortKeepsIndex(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("down"))
	require.Equal(t, "Italy", m.Selected().Country)

	m = update(t, m, key("d"))
	assert.Equal(t, models.MetricDeaths, m.Metric())
	assert.Equal(t, []string{"TOTAL", "Spain", "Italy", "China"}, names(m.Rows()))
	assert.Equal(t, 1, m.SelectedIndex())
	assert.Equal(t, "Spain", m.Selected().Country, "chart follows the row at the kept index")

	m = update(t, m, key("r"))
	assert.Equal(t, []string{"TOTAL", "Italy", "China", "Spain"}, names(m.Rows()))

	m = update(t, m, key("c"))
	assert.Equal(t, models.MetricConfirmed, m.Metric())
}

func TestModel_SortIsNonIncreasing(t *testing.T) {
	m := newTestModel(t)
	for _, k := range []string{"c", "d", "r"} {
		m = update(t, m, key(k))
		metric := m.Metric()
		rows := m.Rows()
		for i := 1; i < len(rows); i++ {
			prev := models.MCountry{Confirmed: rows[i-1].Confirmed, Deaths: rows[i-1].Deaths, Recovered: rows[i-1].Recovered}
			cur := models.MCountry{Confirmed: rows[i].Confirmed, Deaths: rows[i].Deaths, Recovered: rows[i].Recovered}
			assert.GreaterOrEqual(t, prev.Value(metric), cur.Value(metric), "sort %s at row %d", k, i)
		}
	}
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []string{"q", "esc", "ctrl+c"} {
		m := newTestModel(t)
		_, cmd := m.Update(key(k))
		require.NotNil(t, cmd, k)
		assert.Equal(t, tea.QuitMsg{}, cmd(), k)
	}
}

func TestModel_OpenHome(t *testing.T) {
	m := newTestModel(t)
	var opened string
	m.openURL = func(u string) error {
		opened = u
		return nil
	}

	_, cmd := m.Update(key("o"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, "https://example.org", opened)

	m.openURL = func(string) error { return errors.New("no browser") }
	_, cmd = m.Update(key("o"))
	m = update(t, m, cmd())
	assert.Contains(t, m.View(), "could not open browser")
}

func TestModel_DatasetRefresh(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("up"))
	require.Equal(t, 3, m.SelectedIndex())

	smaller, err := analysis.Finalize([]string{"1/22/20"}, map[string]*models.MCountry{
		"Chad": {Country: "Chad", ConfirmedSeries: []int64{2}, DeathsSeries: []int64{0}, RecoveredSeries: []int64{1}},
	})
	require.NoError(t, err)
	m = update(t, m, DatasetMsg{Dataset: smaller})

	assert.Equal(t, []string{"TOTAL", "Chad"}, names(m.Rows()))
	assert.Equal(t, 1, m.SelectedIndex(), "selection is clamped to the new row count")

	m = update(t, m, RefreshErrMsg{Err: errors.New("timeout")})
	assert.Contains(t, m.View(), "refresh failed: timeout")
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)
	view := m.View()

	assert.Contains(t, view, tableTitle)
	for _, col := range tableColumns {
		assert.Contains(t, view, col)
	}
	assert.Contains(t, view, "Italy")
	assert.Contains(t, view, "5.00%")
	assert.Contains(t, view, "Updated: 1/23/20")
	assert.Contains(t, view, "Total confirmed: 156")
	assert.LessOrEqual(t, len(strings.Split(view, "\n")), 40)
}

func TestModel_ViewBeforeResize(t *testing.T) {
	log := logger.NewLogger("UITest")
	m := NewModel(testDataset(), analysis.NewAnalysisFacade(log), models.MetricConfirmed, "", log)
	assert.Equal(t, "loading...", m.View())
}

func TestPlotData(t *testing.T) {
	out := plotData([][]float64{{}, {3}, {1, 2, 3}})
	assert.Equal(t, []float64{0, 0}, out[0])
	assert.Equal(t, []float64{3, 3}, out[1])
	assert.Equal(t, []float64{1, 2, 3}, out[2])
}

func TestYBound(t *testing.T) {
	assert.InDelta(t, 121.2, yBound(&models.MCountry{Confirmed: 100}), 1e-9)
}
