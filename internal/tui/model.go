package tui

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/skateday/internal/constants"
	"github.com/julianstephens/skateday/internal/engine"
	"github.com/julianstephens/skateday/internal/exchange"
	"github.com/julianstephens/skateday/internal/logger"
	"github.com/julianstephens/skateday/internal/models"
	"github.com/julianstephens/skateday/internal/state"
	"github.com/julianstephens/skateday/internal/storage"
	"github.com/julianstephens/skateday/internal/tui/components/habitlist"
	"github.com/julianstephens/skateday/internal/tui/components/timeline"
	"github.com/julianstephens/skateday/internal/utils"
)

// Pusher uploads changed days to a sync server
type Pusher interface {
	PutDays(ctx context.Context, days []models.Day) error
}

// Options configure the TUI
type Options struct {
	Store  storage.Provider
	UserID int64
	// Today overrides the current day id, mostly for tests
	Today    string
	Now      func() time.Time
	Rand     *rand.Rand
	Duration time.Duration
	Pusher   Pusher
}

type HabitFormModel struct {
	Name string
	Time string
}

type ImportFormModel struct {
	JSON string
}

// FrameMsg is one animation tick of the playback run identified by Token
type FrameMsg struct {
	Token engine.Token
	Time  time.Time
}

type pushedMsg struct {
	err error
}

type Model struct {
	store      storage.Provider
	userID     int64
	pusher     Pusher
	env        state.Env
	today      string
	days       state.State
	playback   *engine.Playback
	state      constants.SessionState
	keys       KeyMap
	help       help.Model
	habitList  habitlist.Model
	timeline   timeline.Model
	exportPane viewport.Model
	form       *huh.Form
	habitForm  *HabitFormModel
	importForm *ImportFormModel
	formError  string
	status     string
	width      int
	height     int
	quitting   bool
}

func NewModel(opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	today := opts.Today
	if today == "" {
		today = utils.DayID(now())
	}

	loaded, err := opts.Store.GetDays(opts.UserID)
	if err != nil {
		logger.Warn("Failed to load days, showing examples", "error", err)
	}
	st := state.Restore(loaded, err, today, opts.Rand)

	m := Model{
		store:      opts.Store,
		userID:     opts.UserID,
		pusher:     opts.Pusher,
		env:        state.Env{Now: now, Rand: opts.Rand},
		today:      today,
		days:       st,
		playback:   engine.NewPlayback(opts.Duration),
		state:      constants.StateHabits,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		habitList:  habitlist.New(nil, 80, 8),
		timeline:   timeline.New(80, 16),
		exportPane: viewport.New(80, 16),
	}

	// Persist whatever Restore synthesised so the next start sees it
	var fresh []models.Day
	for _, d := range st.Days {
		if !containsDay(loaded, d.ID) {
			fresh = append(fresh, d)
		}
	}
	if len(fresh) > 0 {
		if err := m.store.ReplaceDays(m.userID, fresh); err != nil {
			logger.Warn("Failed to save initial days", "error", err)
		}
	}

	m.refresh()
	return m
}

func containsDay(days []models.Day, id string) bool {
	for _, d := range days {
		if d.ID == id {
			return true
		}
	}
	return false
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.NextDay, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateHabits:
		keys = append(keys, m.keys.Add, m.keys.Toggle, m.keys.Play, m.keys.Replay, m.keys.Export)
	case constants.StateExport:
		keys = append(keys, m.keys.Export, m.keys.Import)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return nil
}

// State returns the days shown by the TUI
func (m Model) State() state.State {
	return m.days
}

// Playback exposes the skater's playback for inspection
func (m Model) Playback() *engine.Playback {
	return m.playback
}

// activeHabits returns the habits of the day being shown
func (m Model) activeHabits() []models.Habit {
	day, ok := m.days.ActiveDay()
	if !ok {
		return nil
	}
	return day.Habits
}

// refresh pushes the active day into every view
func (m *Model) refresh() {
	habits := m.activeHabits()
	m.habitList.SetHabits(habits)
	m.timeline.SetDay(habits)
	m.updateSkater()

	if data, err := exchange.Export(m.days.Days); err == nil {
		m.exportPane.SetContent(string(data))
	}
}

func (m *Model) updateSkater() {
	path := m.timeline.Path()
	pos, ok := engine.PositionAt(m.playback.Progress(), path, engine.PlanSegments(path))
	m.timeline.SetSkater(pos, ok)
}

// apply runs a state command; the days in ids are saved on success
func (m *Model) apply(cmd state.Command, ids ...string) (tea.Cmd, error) {
	next, err := state.Apply(m.days, cmd, m.env)
	if err != nil {
		return nil, err
	}
	m.days = next
	m.refresh()
	return m.save(ids...), nil
}

// save writes the named days to the store and, when a sync server is
// configured, pushes them in the background
func (m *Model) save(ids ...string) tea.Cmd {
	if len(ids) == 0 {
		return nil
	}
	days := make([]models.Day, 0, len(ids))
	for _, id := range ids {
		if d, ok := m.days.Day(id); ok {
			days = append(days, d)
		}
	}

	if err := m.store.ReplaceDays(m.userID, days); err != nil {
		logger.Error("Failed to save days", "error", err)
		m.status = "Save failed: " + err.Error()
		return nil
	}
	return m.push(days)
}

func (m Model) push(days []models.Day) tea.Cmd {
	if m.pusher == nil {
		return nil
	}
	pusher := m.pusher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.RemoteTimeout)
		defer cancel()
		return pushedMsg{err: pusher.PutDays(ctx, days)}
	}
}

func frame(tok engine.Token) tea.Cmd {
	return tea.Tick(constants.FrameInterval, func(t time.Time) tea.Msg {
		return FrameMsg{Token: tok, Time: t}
	})
}
