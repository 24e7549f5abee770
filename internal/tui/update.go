package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/skateday/internal/constants"
	"github.com/julianstephens/skateday/internal/exchange"
	"github.com/julianstephens/skateday/internal/logger"
	"github.com/julianstephens/skateday/internal/state"
	"github.com/julianstephens/skateday/internal/tui/components/habitlist"
	"github.com/julianstephens/skateday/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		var cmd tea.Cmd
		if m.playback.Advance(msg.Token, msg.Time) {
			cmd = frame(msg.Token)
		}
		m.updateSkater()
		return m, cmd

	case pushedMsg:
		if msg.err != nil {
			logger.Warn("Failed to push days to sync server", "error", msg.err)
			m.status = "Sync failed"
		}
		return m, nil
	}

	switch m.state {
	case constants.StateAddHabit:
		return m.updateAddHabit(msg)
	case constants.StateImport:
		return m.updateImport(msg)
	}

	switch msg := msg.(type) {
	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{}
		m.formError = ""
		m.form = m.NewHabitForm(m.habitForm)
		m.state = constants.StateAddHabit
		return m, m.form.Init()

	case habitlist.ToggleHabitMsg:
		day, _ := m.days.ActiveDay()
		cmd, err := m.apply(state.ToggleHabit{ID: msg.ID}, day.ID)
		if err != nil {
			m.status = err.Error()
		}
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.NextDay):
			m.shiftDay(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevDay):
			m.shiftDay(-1)
			return m, nil
		case key.Matches(msg, m.keys.Play):
			if tok, ok := m.playback.Play(m.timeline.Path(), m.env.Now()); ok {
				m.updateSkater()
				return m, frame(tok)
			}
			return m, nil
		case key.Matches(msg, m.keys.Replay):
			if tok, ok := m.playback.Replay(m.timeline.Path(), m.env.Now()); ok {
				m.updateSkater()
				return m, frame(tok)
			}
			return m, nil
		case key.Matches(msg, m.keys.Export):
			if m.state == constants.StateExport {
				m.state = constants.StateHabits
			} else {
				m.state = constants.StateExport
			}
			return m, nil
		case key.Matches(msg, m.keys.Import):
			m.importForm = &ImportFormModel{}
			if m.state == constants.StateExport {
				if data, err := exchange.Export(m.days.Days); err == nil {
					m.importForm.JSON = string(data)
				}
			}
			m.form = NewImportForm(m.importForm)
			m.state = constants.StateImport
			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	if m.state == constants.StateExport {
		m.exportPane, cmd = m.exportPane.Update(msg)
		return m, cmd
	}
	m.habitList, cmd = m.habitList.Update(msg)
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	listHeight := height / 3
	if listHeight < 5 {
		listHeight = 5
	}
	// title, tabs, controls, status and help take six rows
	canvasHeight := height - listHeight - 6
	if canvasHeight < 8 {
		canvasHeight = 8
	}
	m.habitList.SetSize(width-2, listHeight)
	m.timeline.SetSize(width-2, canvasHeight)
	m.exportPane.Width = width - 2
	m.exportPane.Height = listHeight + canvasHeight
}

// shiftDay selects the neighbouring day and rewinds the skater
func (m *Model) shiftDay(delta int) {
	ids := m.days.DayIDs()
	if len(ids) == 0 {
		return
	}
	day, _ := m.days.ActiveDay()
	cur := 0
	for i, id := range ids {
		if id == day.ID {
			cur = i
			break
		}
	}
	next := ids[(cur+delta+len(ids))%len(ids)]
	m.selectDay(next)
}

func (m *Model) selectDay(id string) {
	if _, err := m.apply(state.SelectDay{ID: id}); err != nil {
		m.status = err.Error()
		return
	}
	m.playback.Reset()
	m.status = ""
	m.refresh()
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateHabits
		m.formError = ""
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		day, _ := m.days.ActiveDay()
		save, err := m.apply(state.AddHabit{Name: m.habitForm.Name, Time: m.habitForm.Time}, day.ID)
		if err != nil {
			// Keep the entered values so the user can correct them
			m.formError = validation.FormMessage(err)
			m.form = m.NewHabitForm(m.habitForm)
			return m, m.form.Init()
		}
		m.formError = ""
		m.state = constants.StateHabits
		cmds = append(cmds, save)
	case huh.StateAborted:
		m.state = constants.StateHabits
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateImport(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateHabits
		m.formError = ""
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		save, err := m.importJSON(m.importForm.JSON)
		if err != nil {
			m.formError = importInvalidMessage
			m.form = NewImportForm(m.importForm)
			return m, m.form.Init()
		}
		m.formError = ""
		m.state = constants.StateHabits
		cmds = append(cmds, save)
	case huh.StateAborted:
		m.state = constants.StateHabits
	}
	return m, tea.Batch(cmds...)
}

// importJSON upserts the days in data. Nothing changes if data is malformed.
func (m *Model) importJSON(data string) (tea.Cmd, error) {
	days, err := exchange.Parse([]byte(data))
	if err != nil {
		logger.Warn("Rejected import", "error", err)
		return nil, err
	}

	ids := make([]string, len(days))
	for i, d := range days {
		ids[i] = d.ID
	}
	save, err := m.apply(state.ImportDays{Days: days}, ids...)
	if err != nil {
		return nil, err
	}
	m.playback.Reset()
	m.updateSkater()
	m.status = fmt.Sprintf("Imported %d day(s)", len(days))
	return save, nil
}
