package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ecamli/daykeep/internal/dateutil"
	"github.com/ecamli/daykeep/internal/store"
	"github.com/ecamli/daykeep/internal/tracking"
)

type trackModel struct {
	store        *store.Store
	clock        dateutil.Clock
	timer        *tracking.Timer
	defaultColor string
	width        int
	height       int

	period     tracking.Period
	activities []store.Activity
	totals     map[int64]int
	cursor     int

	formActive bool
	form       *huh.Form
	formKind   string // "activity", "edit" or "record"
	editID     int64

	// Form field pointers (survive value copies)
	formName     *string
	formEmoji    *string
	formGoal     *string
	formColor    *string
	formActivity *int64
	formMinutes  *string
}

func newTrackModel(s *store.Store, clock dateutil.Clock, timer *tracking.Timer, period tracking.Period, defaultColor string) trackModel {
	name, emoji, goal, color, minutes := "", "", "180", defaultColor, "30"
	var activityID int64
	return trackModel{
		store:        s,
		clock:        clock,
		timer:        timer,
		defaultColor: defaultColor,
		period:       period,
		formName:     &name,
		formEmoji:    &emoji,
		formGoal:     &goal,
		formColor:    &color,
		formActivity: &activityID,
		formMinutes:  &minutes,
	}
}

func (m *trackModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type trackDataMsg struct {
	activities []store.Activity
	totals     map[int64]int
}

func (m trackModel) refresh() tea.Cmd {
	return func() tea.Msg {
		activities, err := m.store.ListActivities()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load activities: %v", err), isError: true}
		}

		now := m.clock.Now()
		filter := store.EntryFilter{}
		if start, ok := tracking.WindowStart(m.period, now); ok {
			filter.DateFrom = dateutil.DateString(start)
		}
		entries, err := m.store.ListTimeEntries(filter)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load entries: %v", err), isError: true}
		}

		return trackDataMsg{
			activities: activities,
			totals:     tracking.Totals(entries, m.period, now),
		}
	}
}

func (m trackModel) update(msg tea.Msg) (trackModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case trackDataMsg:
		m.activities = msg.activities
		m.totals = msg.totals
		if m.cursor >= len(m.activities) {
			m.cursor = max(0, len(m.activities)-1)
		}
		return m, nil

	case tickMsg:
		// Guarded no-op when idle: a stray tick after stop/discard must
		// not touch anything.
		m.timer.Tick()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.activities)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Left):
			m.period = prevPeriod(m.period)
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			m.period = nextPeriod(m.period)
			return m, m.refresh()
		case key.Matches(msg, keys.Start):
			return m.startTimer()
		case key.Matches(msg, keys.Stop):
			return m.stopTimer()
		case key.Matches(msg, keys.Discard):
			return m.discardTimer()
		case key.Matches(msg, keys.New):
			return m.showActivityForm()
		case key.Matches(msg, keys.Edit):
			if m.cursor < len(m.activities) {
				return m.showEditForm(m.activities[m.cursor])
			}
		case key.Matches(msg, keys.Record):
			return m.showRecordForm()
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(m.activities) {
				a := m.activities[m.cursor]
				if m.timer.Running() && m.timer.ActivityID() == a.ID {
					return m, func() tea.Msg {
						return statusMsg{text: "Stop the timer before deleting its activity", isError: true}
					}
				}
				if err := m.store.DeleteActivity(a.ID); err != nil {
					return m, func() tea.Msg {
						return statusMsg{text: fmt.Sprintf("Delete: %v", err), isError: true}
					}
				}
				return m, m.refresh()
			}
		}
	}
	return m, nil
}

func prevPeriod(p tracking.Period) tracking.Period {
	switch p {
	case tracking.PeriodAll:
		return tracking.PeriodMonth
	case tracking.PeriodMonth:
		return tracking.PeriodWeek
	default:
		return tracking.PeriodAll
	}
}

func nextPeriod(p tracking.Period) tracking.Period {
	switch p {
	case tracking.PeriodWeek:
		return tracking.PeriodMonth
	case tracking.PeriodMonth:
		return tracking.PeriodAll
	default:
		return tracking.PeriodWeek
	}
}

func (m trackModel) startTimer() (trackModel, tea.Cmd) {
	if m.cursor >= len(m.activities) {
		return m, func() tea.Msg {
			return statusMsg{text: "No activity selected. Press n to create one.", isError: true}
		}
	}
	a := m.activities[m.cursor]
	if err := m.timer.Start(a.ID, a.Name); err != nil {
		if errors.Is(err, tracking.ErrTimerActive) {
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("A timer is already active (%s)", m.timer.ActivityName()), isError: true}
			}
		}
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Start: %v", err), isError: true}
		}
	}
	return m, func() tea.Msg { return timerStartedMsg{activityName: a.Name} }
}

func (m trackModel) stopTimer() (trackModel, tea.Cmd) {
	entry, err := m.timer.Stop()
	if err != nil {
		if errors.Is(err, tracking.ErrNoActiveTimer) {
			// Deliberately quiet: stopping an idle timer is a no-op.
			return m, nil
		}
		if entry != nil {
			// The entry was recorded; only clearing the persisted snapshot
			// failed. Surface that rather than claiming the save failed.
			return m, tea.Batch(
				func() tea.Msg {
					return statusMsg{
						text:    fmt.Sprintf("Saved %s, but clearing the session failed: %v", formatMinutes(entry.DurationMinutes), err),
						isError: true,
					}
				},
				m.refresh(),
			)
		}
		// Entry write failed; the session is still intact for a retry.
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Save entry: %v", err), isError: true}
		}
	}
	return m, tea.Batch(
		func() tea.Msg { return timerStoppedMsg{entry: entry} },
		m.refresh(),
	)
}

func (m trackModel) discardTimer() (trackModel, tea.Cmd) {
	if err := m.timer.Discard(); err != nil {
		if errors.Is(err, tracking.ErrNoActiveTimer) {
			return m, nil
		}
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Discard: %v", err), isError: true}
		}
	}
	return m, func() tea.Msg { return timerDiscardedMsg{} }
}

func (m trackModel) showActivityForm() (trackModel, tea.Cmd) {
	m.editID = 0
	*m.formName = ""
	*m.formEmoji = ""
	*m.formGoal = "180"
	*m.formColor = m.defaultColor
	colorOpts := colorOptions(m.defaultColor)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(m.formName),
			huh.NewInput().Title("Emoji").Value(m.formEmoji),
			huh.NewInput().Title("Weekly goal (minutes)").Value(m.formGoal),
			huh.NewSelect[string]().Title("Color").Options(colorOpts...).Value(m.formColor),
		),
	)
	m.formKind = "activity"
	m.formActive = true
	return m, m.form.Init()
}

func (m trackModel) showEditForm(a store.Activity) (trackModel, tea.Cmd) {
	m.editID = a.ID
	*m.formName = a.Name
	*m.formGoal = strconv.Itoa(a.WeeklyGoalMinutes)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(m.formName),
			huh.NewInput().Title("Weekly goal (minutes)").Value(m.formGoal),
		),
	)
	m.formKind = "edit"
	m.formActive = true
	return m, m.form.Init()
}

func (m trackModel) showRecordForm() (trackModel, tea.Cmd) {
	if len(m.activities) == 0 {
		return m, func() tea.Msg {
			return statusMsg{text: "No activities yet. Press n to create one.", isError: true}
		}
	}

	var opts []huh.Option[int64]
	for _, a := range m.activities {
		opts = append(opts, huh.NewOption(a.Name, a.ID))
	}
	*m.formActivity = m.activities[m.cursor].ID
	*m.formMinutes = "30"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().Title("Activity").Options(opts...).Value(m.formActivity),
			huh.NewInput().Title("Minutes").Value(m.formMinutes),
		),
	)
	m.formKind = "record"
	m.formActive = true
	return m, m.form.Init()
}

func (m trackModel) updateForm(msg tea.Msg) (trackModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.Back) {
		m.formActive = false
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		switch m.formKind {
		case "activity", "edit":
			return m.submitActivity()
		default:
			return m.submitRecord()
		}
	}

	return m, cmd
}

func (m trackModel) submitActivity() (trackModel, tea.Cmd) {
	name := strings.TrimSpace(*m.formName)
	if name == "" {
		return m, func() tea.Msg {
			return statusMsg{text: "Name cannot be empty", isError: true}
		}
	}
	goal, err := strconv.Atoi(strings.TrimSpace(*m.formGoal))
	if err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Invalid goal %q", *m.formGoal), isError: true}
		}
	}
	var saveErr error
	if m.formKind == "edit" && m.editID != 0 {
		saveErr = m.store.UpdateActivity(m.editID, name, goal)
	} else {
		_, saveErr = m.store.CreateActivity(name, *m.formEmoji, *m.formColor, goal)
	}
	if saveErr != nil {
		if errors.Is(saveErr, store.ErrInvalidGoal) {
			return m, func() tea.Msg {
				return statusMsg{text: "Weekly goal must be at least one minute", isError: true}
			}
		}
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Save: %v", saveErr), isError: true}
		}
	}
	return m, m.refresh()
}

// submitRecord is the manual quick-entry path: n minutes ending now.
func (m trackModel) submitRecord() (trackModel, tea.Cmd) {
	minutes, err := strconv.Atoi(strings.TrimSpace(*m.formMinutes))
	if err != nil || minutes < 1 {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Invalid duration %q", *m.formMinutes), isError: true}
		}
	}

	now := m.clock.Now()
	start := now.Add(-time.Duration(minutes) * time.Minute)
	if _, err := m.store.CreateTimeEntry(*m.formActivity, start, now, minutes, dateutil.DateString(now)); err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Record: %v", err), isError: true}
		}
	}
	return m, tea.Batch(
		func() tea.Msg { return entryRecordedMsg{minutes: minutes} },
		m.refresh(),
	)
}

func (m trackModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := "New Activity"
		switch m.formKind {
		case "record":
			title = "Quick Record"
		case "edit":
			title = "Edit Activity"
		}
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", m.form.View()),
		)
	}

	var rows []string
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Track"), "  ", m.periodTabs(),
	))

	if m.timer.Running() {
		rows = append(rows, "", timerRunningStyle.Render(fmt.Sprintf(
			"● %s — %s", m.timer.ActivityName(), formatDuration(m.timer.Elapsed()),
		)), mutedStyle.Render("  x: stop & save  X: discard"))
	}

	if len(m.activities) == 0 {
		rows = append(rows, "", mutedStyle.Render("  No activities yet. Press n to add one."))
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	rows = append(rows, "")
	for i, a := range m.activities {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		total := m.totals[a.ID]
		label := formatMinutes(total)
		if percent, ok := tracking.GoalProgress(total, a.WeeklyGoalMinutes, m.period); ok {
			goal := a.WeeklyGoalMinutes
			if m.period == tracking.PeriodMonth {
				goal *= 4
			}
			label = fmt.Sprintf("%s / %s  %s %d%%",
				formatMinutes(total), formatMinutes(goal),
				progressBar(percent, 20, a.Color), percent,
			)
		}

		running := ""
		if m.timer.Running() && m.timer.ActivityID() == a.ID {
			running = successStyle.Render(" ● tracking")
		}

		emoji := a.Emoji
		if emoji == "" {
			emoji = "•"
		}
		rows = append(rows, fmt.Sprintf("%s%s %s%s", cursor, emoji, style.Render(a.Name), running))
		rows = append(rows, mutedStyle.Render("     "+label))
	}

	rows = append(rows, "", mutedStyle.Render("  s: start  r: quick record  n: new  e: edit  d: delete  ←/→: period"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m trackModel) periodTabs() string {
	var tabs []string
	for _, p := range []tracking.Period{tracking.PeriodWeek, tracking.PeriodMonth, tracking.PeriodAll} {
		label := string(p)
		if p == m.period {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func progressBar(percent, width int, color string) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(bar)
}
