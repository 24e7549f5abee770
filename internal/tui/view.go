package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/skateday/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateAddHabit, constants.StateImport:
		content = m.viewForm()
	case constants.StateExport:
		content = docStyle.Render(m.exportPane.View())
	default:
		content = lipgloss.JoinVertical(lipgloss.Left,
			docStyle.Render(m.habitList.View()),
			m.viewControls(),
			docStyle.Render(m.timeline.View()),
		)
	}

	parts := []string{
		titleStyle.Render("Skate Your Day 🛹"),
		m.viewTabs(),
		content,
	}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	active, _ := m.days.ActiveDay()
	var tabs []string
	for _, id := range m.days.DayIDs() {
		label := id
		if id == m.today {
			label += todayStyle.Render(" (Today)")
		}
		if id == active.ID {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
		tabs = append(tabs, " ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewControls() string {
	path := m.timeline.Path()
	button := func(label string, enabled bool) string {
		if enabled {
			return enabledStyle.Render(label)
		}
		return disabledStyle.Render(label)
	}
	return docStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		button("[p] ▶ Play Day", m.playback.CanPlay(path)),
		"   ",
		button("[r] ↺ Replay", m.playback.CanReplay(path)),
		"   ",
		button("[e] Show JSON", true),
	))
}

func (m Model) viewForm() string {
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, dangerStyle.Render(m.formError))
	}
	return docStyle.Render(view)
}
