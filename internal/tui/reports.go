package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ecamli/daykeep/internal/dateutil"
	"github.com/ecamli/daykeep/internal/store"
)

type reportMode int

const (
	reportDaily reportMode = iota
	reportWeekly
)

type reportsModel struct {
	store  *store.Store
	clock  dateutil.Clock
	width  int
	height int

	mode      reportMode
	summaries []store.DailySummary
	offset    int // weeks or 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newReportsModel(s *store.Store, clock dateutil.Clock) reportsModel {
	return reportsModel{
		store: s,
		clock: clock,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	summaries []store.DailySummary
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := r.dateRange()
		summaries, err := r.store.GetDailySummary(dateutil.DateString(from), dateutil.DateString(to))
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load report: %v", err), isError: true}
		}
		return reportsDataMsg{summaries: summaries}
	}
}

func (r reportsModel) dateRange() (time.Time, time.Time) {
	today := dateutil.CalendarDay(r.clock.Now())

	switch r.mode {
	case reportWeekly:
		// Monday-anchored week
		back := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -back-7*r.offset)
		return start, start.AddDate(0, 0, 7)
	default:
		// Rolling 7-day window ending today
		end := today.AddDate(0, 0, 1-7*r.offset)
		return end.AddDate(0, 0, -7), end
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.summaries = msg.summaries
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		case key.Matches(msg, keys.Tab):
			if r.mode == reportDaily {
				r.mode = reportWeekly
			} else {
				r.mode = reportDaily
			}
			r.offset = 0
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	from, to := r.dateRange()

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dateStr := dateutil.DateString(d)
		label := d.Format("Mon 02")

		var values []barchart.BarValue
		for _, s := range r.summaries {
			if s.Date == dateStr {
				hours := float64(s.TotalMinutes) / 60.0
				style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.ActivityColor))
				values = append(values, barchart.BarValue{
					Name:  s.ActivityName,
					Value: hours,
					Style: style,
				})
			}
		}

		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	dailyTab := inactiveTabStyle.Render("Daily")
	weeklyTab := inactiveTabStyle.Render("Weekly")
	if r.mode == reportDaily {
		dailyTab = activeTabStyle.Render("Daily")
	} else {
		weeklyTab = activeTabStyle.Render("Weekly")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, dailyTab, weeklyTab)

	from, to := r.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s", from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", modeTabs, "  ", dateLabel,
	)

	chartView := r.chart.View()
	tableView := r.renderSummaryTable(w)
	legend := r.renderLegend()
	nav := mutedStyle.Render("  ←/→: navigate  tab: switch mode  E: export")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", legend, "", tableView, "", nav,
		),
	)
}

func (r reportsModel) renderSummaryTable(w int) string {
	if len(r.summaries) == 0 {
		return mutedStyle.Render("  No entries for this period")
	}

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-12s %-20s %10s %8s", "Date", "Activity", "Time", "Entries"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 54))))

	for _, s := range r.summaries {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(s.ActivityColor)).Render("●")
		rows = append(rows, fmt.Sprintf("  %-12s %s %-18s %10s %8d",
			s.Date, colorDot, s.ActivityName, formatMinutes(s.TotalMinutes), s.EntryCount,
		))
	}

	return strings.Join(rows, "\n")
}

func (r reportsModel) renderLegend() string {
	seen := make(map[int64]bool)
	var items []string
	for _, s := range r.summaries {
		if seen[s.ActivityID] {
			continue
		}
		seen[s.ActivityID] = true
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(s.ActivityColor)).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, s.ActivityName))
	}
	if len(items) == 0 {
		return ""
	}
	return "  " + strings.Join(items, "  ")
}
