package ui

import (
	"io"

	"corona-observer/src/analysis"
	"corona-observer/src/logger"
	"corona-observer/src/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cli/browser"
)

// DatasetMsg replaces the displayed dataset, e.g. after a scheduled refresh.
type DatasetMsg struct {
	Dataset *models.MDataset
}

// RefreshErrMsg reports a failed refresh; the current dataset stays on screen.
type RefreshErrMsg struct {
	Err error
}

type statusMsg string

// Model is the dashboard state driven by the bubbletea update loop.
type Model struct {
	Analyzer *analysis.AnalysisFacade
	Logger   *logger.Logger
	HomeURL  string

	dataset  *models.MDataset
	sorted   []*models.MCountry
	rows     []models.MCountryRow
	summary  models.MSummary
	metric   models.Metric
	selected int
	offset   int
	width    int
	height   int
	status   string

	openURL func(string) error
}

// NewModel builds the dashboard for ds sorted by metric.
func NewModel(ds *models.MDataset, analyzer *analysis.AnalysisFacade, metric models.Metric, homeURL string, log *logger.Logger) Model {
	// the browser launcher must not write over the alternate screen
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	m := Model{
		Analyzer: analyzer,
		Logger:   log,
		HomeURL:  homeURL,
		metric:   metric,
		openURL:  browser.OpenURL,
	}
	m.setDataset(ds)
	return m
}

// -----------------------------------------------------------------------------

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.scroll()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case DatasetMsg:
		if msg.Dataset != nil {
			m.setDataset(msg.Dataset)
			m.status = ""
		}

	case RefreshErrMsg:
		m.status = "refresh failed: " + msg.Err.Error()

	case statusMsg:
		m.status = string(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.selected = PrevIndex(m.selected, len(m.rows))
		m.scroll()

	case "down", "j":
		m.selected = NextIndex(m.selected, len(m.rows))
		m.scroll()

	case "c", "d", "r":
		metric, _ := models.ParseMetric(msg.String())
		m.metric = metric
		m.resort()

	case "o":
		return m, m.openHome()
	}
	return m, nil
}

// -----------------------------------------------------------------------------

// Selected returns the record shown in the chart.
func (m Model) Selected() *models.MCountry {
	if m.selected < 0 || m.selected >= len(m.sorted) {
		return nil
	}
	return m.sorted[m.selected]
}

// SelectedIndex returns the highlighted row.
func (m Model) SelectedIndex() int {
	return m.selected
}

// Metric returns the active sort metric.
func (m Model) Metric() models.Metric {
	return m.metric
}

// Rows returns the table rows in display order.
func (m Model) Rows() []models.MCountryRow {
	return m.rows
}

// -----------------------------------------------------------------------------

func (m *Model) setDataset(ds *models.MDataset) {
	m.dataset = ds
	if ds == nil {
		m.sorted, m.rows = nil, nil
		m.summary = models.MSummary{}
		return
	}
	m.summary = m.Analyzer.Summary(ds)
	m.resort()
}

// resort re-sorts with the active metric. The selected index is kept, so the
// chart follows whichever country now occupies that row.
func (m *Model) resort() {
	if m.dataset == nil {
		return
	}
	m.sorted = m.Analyzer.SortCountries(m.dataset, m.metric)
	m.rows = make([]models.MCountryRow, len(m.sorted))
	for i, c := range m.sorted {
		m.rows[i] = m.Analyzer.Row(c)
	}
	m.selected = clampIndex(m.selected, len(m.rows))
	m.scroll()
}

func (m *Model) scroll() {
	tableH, _ := m.layout()
	m.offset = scrollOffset(m.selected, m.offset, tableVisibleRows(tableH), len(m.rows))
}

// layout gives the table 45% of the screen, the summary a fixed height and
// the chart the rest.
func (m Model) layout() (tableH, chartH int) {
	tableH = m.height * 45 / 100
	chartH = m.height - tableH - summaryHeight
	if chartH < 0 {
		chartH = 0
	}
	return tableH, chartH
}

func (m Model) openHome() tea.Cmd {
	url, open, log := m.HomeURL, m.openURL, m.Logger
	return func() tea.Msg {
		if url == "" {
			return statusMsg("no home URL configured")
		}
		if err := open(url); err != nil {
			if log != nil {
				log.Warning("Failed to open %s: %v", url, err)
			}
			return statusMsg("could not open browser")
		}
		return statusMsg("")
	}
}

// -----------------------------------------------------------------------------

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}
	if m.dataset == nil {
		return "no data"
	}

	tableH, chartH := m.layout()
	var series [][]float64
	selected := m.Selected()
	if selected != nil {
		series = m.Analyzer.ChartSeries(selected)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderTable(m.rows, m.metric, m.selected, m.offset, m.width, tableH),
		renderChart(selected, series, m.width, chartH),
		renderSummary(m.summary, m.dataset.FetchedAt, m.status, m.width),
	)
}
