package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ecamli/daykeep/internal/countdown"
	"github.com/ecamli/daykeep/internal/dateutil"
	"github.com/ecamli/daykeep/internal/store"
)

var countdownColors = []string{"#0EA5E9", "#10B981", "#F59E0B", "#8B5CF6", "#EF4444", "#EC4899"}

type countdownsModel struct {
	store        *store.Store
	clock        dateutil.Clock
	defaultColor string
	width        int
	height       int

	groups []countdown.Group
	total  int
	cursor int

	formActive bool
	form       *huh.Form
	editID     int64 // 0 means the form creates a new countdown
	formLabel  string

	// Form field pointers (survive value copies)
	formTitle  *string
	formDate   *string
	formRepeat *string
	formColor  *string
}

func newCountdownsModel(s *store.Store, clock dateutil.Clock, defaultColor string) countdownsModel {
	title, date, repeat, color := "", "", string(store.RepeatNone), defaultColor
	return countdownsModel{
		store:        s,
		clock:        clock,
		defaultColor: defaultColor,
		formTitle:    &title,
		formDate:     &date,
		formRepeat:   &repeat,
		formColor:    &color,
	}
}

func (c *countdownsModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type countdownsDataMsg struct {
	groups []countdown.Group
	total  int
}

// refresh re-reads the store and re-derives every resolved date and
// bucket. Runs on data changes and on the hourly/midnight ticks; all
// derived state is recomputed from the current instant.
func (c countdownsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		countdowns, err := c.store.ListCountdowns()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load countdowns: %v", err), isError: true}
		}
		items := countdown.BuildList(countdowns, c.clock.Now())
		return countdownsDataMsg{groups: countdown.GroupBuckets(items), total: len(items)}
	}
}

func (c countdownsModel) update(msg tea.Msg) (countdownsModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case countdownsDataMsg:
		c.groups = msg.groups
		c.total = msg.total
		if c.cursor >= c.total {
			c.cursor = max(0, c.total-1)
		}
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < c.total-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.New):
			return c.showAddForm()
		case key.Matches(msg, keys.Edit):
			if it, ok := c.selected(); ok {
				return c.showEditForm(it.Countdown)
			}
		case key.Matches(msg, keys.Delete):
			if it, ok := c.selected(); ok {
				if err := c.store.DeleteCountdown(it.Countdown.ID); err != nil {
					return c, func() tea.Msg {
						return statusMsg{text: fmt.Sprintf("Delete: %v", err), isError: true}
					}
				}
				return c, c.refresh()
			}
		}
	}
	return c, nil
}

// selected returns the item under the cursor, walking groups in display
// order.
func (c countdownsModel) selected() (countdown.Item, bool) {
	idx := 0
	for _, g := range c.groups {
		for _, it := range g.Items {
			if idx == c.cursor {
				return it, true
			}
			idx++
		}
	}
	return countdown.Item{}, false
}

func (c countdownsModel) showAddForm() (countdownsModel, tea.Cmd) {
	c.editID = 0
	*c.formTitle = ""
	*c.formDate = dateutil.DateString(c.clock.Now())
	*c.formRepeat = string(store.RepeatNone)
	*c.formColor = c.defaultColor
	return c.showForm("New Countdown")
}

func (c countdownsModel) showEditForm(cd store.Countdown) (countdownsModel, tea.Cmd) {
	c.editID = cd.ID
	*c.formTitle = cd.Title
	// The stored anchor comes back in UTC; format the date the user picked,
	// not the UTC date it serialized under.
	*c.formDate = dateutil.DateString(cd.TargetDate.In(c.clock.Now().Location()))
	*c.formRepeat = string(cd.Repeat)
	*c.formColor = cd.Color
	return c.showForm("Edit Countdown")
}

func (c countdownsModel) showForm(label string) (countdownsModel, tea.Cmd) {
	c.formLabel = label
	colorOpts := colorOptions(c.defaultColor, *c.formColor)

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(c.formTitle),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(c.formDate),
			huh.NewSelect[string]().Title("Repeat").Options(
				huh.NewOption("None", string(store.RepeatNone)),
				huh.NewOption("Weekly", string(store.RepeatWeekly)),
				huh.NewOption("Yearly", string(store.RepeatYearly)),
			).Value(c.formRepeat),
			huh.NewSelect[string]().Title("Color").Options(colorOpts...).Value(c.formColor),
		),
	)
	c.formActive = true
	return c, c.form.Init()
}

func (c countdownsModel) updateForm(msg tea.Msg) (countdownsModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.Back) {
		c.formActive = false
		c.form = nil
		return c, nil
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		target, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(*c.formDate), c.clock.Now().Location())
		if err != nil {
			return c, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Invalid date %q", *c.formDate), isError: true}
			}
		}
		title := strings.TrimSpace(*c.formTitle)
		if title == "" {
			return c, func() tea.Msg {
				return statusMsg{text: "Title cannot be empty", isError: true}
			}
		}
		if c.editID != 0 {
			if err := c.store.UpdateCountdown(c.editID, title, target, store.Repeat(*c.formRepeat), *c.formColor); err != nil {
				return c, func() tea.Msg {
					return statusMsg{text: fmt.Sprintf("Update: %v", err), isError: true}
				}
			}
		} else if _, err := c.store.CreateCountdown(title, target, store.Repeat(*c.formRepeat), *c.formColor); err != nil {
			return c, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Create: %v", err), isError: true}
			}
		}
		return c, c.refresh()
	}

	return c, cmd
}

func (c countdownsModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				titleStyle.Render(c.formLabel), "", c.form.View(),
			),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Countdowns"))

	if c.total == 0 {
		rows = append(rows, "", mutedStyle.Render("  No countdowns yet. Press n to add one."))
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	idx := 0
	for _, g := range c.groups {
		rows = append(rows, "", bucketStyle(g.Bucket).Render(fmt.Sprintf("%s (%d)", g.Bucket, len(g.Items))))
		for _, it := range g.Items {
			cursor := "  "
			style := normalItemStyle
			if idx == c.cursor {
				cursor = "> "
				style = selectedItemStyle
			}

			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(it.Countdown.Color)).Render("●")
			repeat := ""
			if it.Countdown.Repeat.Recurring() {
				repeat = mutedStyle.Render(" ↻" + string(it.Countdown.Repeat))
			}
			line := fmt.Sprintf("%s%s %s  %s · %s%s",
				cursor, dot, style.Render(it.Countdown.Title),
				it.Resolved.Format("Mon, Jan 02 2006"),
				daysLabel(it.Days), repeat,
			)
			rows = append(rows, line)
			idx++
		}
	}

	rows = append(rows, "", mutedStyle.Render("  n: new  e: edit  d: delete  ↑/↓: move"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
