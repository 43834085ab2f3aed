package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ecamli/daykeep/internal/config"
	"github.com/ecamli/daykeep/internal/dateutil"
	"github.com/ecamli/daykeep/internal/export"
	"github.com/ecamli/daykeep/internal/store"
	"github.com/ecamli/daykeep/internal/tracking"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	clock  dateutil.Clock
	timer  *tracking.Timer
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	ticking       bool

	countdowns countdownsModel
	track      trackModel
	todos      todosModel
	reports    reportsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store, cfg config.Config) App {
	h := help.New()
	h.ShowAll = false

	clock := dateutil.SystemClock{}
	timer := tracking.NewTimer(s, clock)

	period := tracking.Period(cfg.DefaultPeriod)
	switch period {
	case tracking.PeriodWeek, tracking.PeriodMonth, tracking.PeriodAll:
	default:
		period = tracking.PeriodWeek
	}

	defaultColor := cfg.DefaultColor
	if defaultColor == "" {
		defaultColor = countdownColors[0]
	}

	return App{
		store:      s,
		clock:      clock,
		timer:      timer,
		activeView: viewCountdowns,
		countdowns: newCountdownsModel(s, clock, defaultColor),
		track:      newTrackModel(s, clock, timer, period, defaultColor),
		todos:      newTodosModel(s, clock),
		reports:    newReportsModel(s, clock),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.restoreTimer(),
		a.countdowns.refresh(),
		a.track.refresh(),
		hourlyTickCmd(),
		midnightTickCmd(a.clock.Now()),
	)
}

// restoreTimer resumes a session that survived a process restart.
// Elapsed is recomputed from the persisted start, not the stale counter.
func (a App) restoreTimer() tea.Cmd {
	return func() tea.Msg {
		if err := a.timer.Restore(); err != nil {
			return statusMsg{text: fmt.Sprintf("Restore timer: %v", err), isError: true}
		}
		if a.timer.Running() {
			return timerRestoredMsg{activityName: a.timer.ActivityName()}
		}
		return nil
	}
}

// startTicking begins the one-second loop for a running timer. The guard
// keeps a single loop alive even if start messages arrive back to back.
func (a *App) startTicking() tea.Cmd {
	if a.ticking {
		return nil
	}
	a.ticking = true
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func hourlyTickCmd() tea.Cmd {
	return tea.Tick(time.Hour, func(t time.Time) tea.Msg {
		return hourlyTickMsg(t)
	})
}

// midnightTickCmd fires shortly after the next local midnight. The small
// buffer keeps the wakeup on the far side of the day boundary even if the
// process timer drifts.
func midnightTickCmd(now time.Time) tea.Cmd {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, 1).
		Add(5 * time.Second)
	return tea.Tick(next.Sub(now), func(t time.Time) tea.Msg {
		return midnightTickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.countdowns.setSize(a.width, contentHeight)
		a.track.setSize(a.width, contentHeight)
		a.todos.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewCountdowns
			return a, a.countdowns.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTrack
			return a, a.track.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewTodos
			return a, a.todos.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewReports
			return a, a.reports.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		// The loop runs only while a timer is running; once it stops the
		// final tick falls through without rescheduling.
		if !a.timer.Running() {
			a.ticking = false
			return a, nil
		}
		cmds = append(cmds, tickCmd())
		// Ticks always reach the track view so a running timer keeps
		// counting no matter which tab is showing.
		var cmd tea.Cmd
		a.track, cmd = a.track.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case hourlyTickMsg:
		cmds = append(cmds, hourlyTickCmd(), a.countdowns.refresh())
		return a, tea.Batch(cmds...)

	case midnightTickMsg:
		// New day: day counts, buckets, the week window and todo due
		// labels may all have changed.
		cmds = append(cmds,
			midnightTickCmd(a.clock.Now()),
			a.countdowns.refresh(),
			a.track.refresh(),
			a.todos.refresh(),
		)
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		return a, nil

	case timerStartedMsg:
		a.status = "Tracking " + msg.activityName
		return a, a.startTicking()

	case timerRestoredMsg:
		a.status = "Resumed tracking " + msg.activityName
		return a, a.startTicking()

	case timerStoppedMsg:
		a.status = fmt.Sprintf("Saved %s", formatMinutes(msg.entry.DurationMinutes))
		return a, nil

	case timerDiscardedMsg:
		a.status = "Timer discarded"
		return a, nil

	case entryRecordedMsg:
		a.status = fmt.Sprintf("Recorded %s", formatMinutes(msg.minutes))
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewCountdowns:
		a.countdowns, cmd = a.countdowns.update(msg)
	case viewTrack:
		a.track, cmd = a.track.update(msg)
	case viewTodos:
		a.todos, cmd = a.todos.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewCountdowns:
		return a.countdowns.formActive
	case viewTrack:
		return a.track.formActive
	case viewTodos:
		return a.todos.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewCountdowns:
		return a.countdowns.refresh()
	case viewTrack:
		return a.track.refresh()
	case viewTodos:
		return a.todos.refresh()
	case viewReports:
		return a.reports.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewCountdowns:
		content = a.countdowns.view()
	case viewTrack:
		content = a.track.view()
	case viewTodos:
		content = a.todos.view()
	case viewReports:
		content = a.reports.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker(contentHeight)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("daykeep")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Running timer stays visible in the footer on every tab.
	timerInfo := ""
	if a.timer.Running() {
		timerInfo = successStyle.Render(" ● " + formatDuration(a.timer.Elapsed()))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker(_ int) string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV (time entries)", "JSON (everything)"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		entries, err := a.store.ListTimeEntries(store.EntryFilter{})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export: %v", err), isError: true}
		}

		activities := make(map[int64]*store.Activity)
		alist, err := a.store.ListActivities()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export: %v", err), isError: true}
		}
		for i := range alist {
			activities[alist[i].ID] = &alist[i]
		}

		home, _ := os.UserHomeDir()
		dateStr := dateutil.DateString(a.clock.Now())

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("daykeep-export-%s.csv", dateStr))
			if err := export.ToCSV(entries, activities, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV export: %v", err), isError: true}
			}
		} else {
			countdowns, err := a.store.ListCountdowns()
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Export: %v", err), isError: true}
			}
			todos, err := a.store.ListTodos()
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Export: %v", err), isError: true}
			}
			path = filepath.Join(home, fmt.Sprintf("daykeep-export-%s.json", dateStr))
			if err := export.ToJSON(countdowns, alist, entries, todos, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON export: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
