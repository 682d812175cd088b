// Package tui is the interactive terminal front end for a roster.
//
// The view re-renders from roster snapshots. Changes made here and changes
// made by anything else sharing the store arrive the same way, through the
// store's subscription.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mcoot/benched/internal/dependencies/random"
	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/palette"
	"github.com/mcoot/benched/internal/services/roster"
)

// inputMode says what the text input is being used for
type inputMode int

const (
	modeBrowse inputMode = iota // Navigating the roster
	modeAdd                     // Typing a new player's name
	modeEdit                    // Renaming the selected player
)

// snapshotMsg carries a roster change from the store subscription
type snapshotMsg roster.Snapshot

// App is the bubbletea model for the roster view
type App struct {
	store  *roster.Store
	random random.Random

	snap     roster.Snapshot
	selected model.PlayerID
	mode     inputMode
	editing  model.PlayerID

	input textinput.Model
	keys  keyMap
	help  help.Model

	status string
	err    error
	width  int

	updates     chan roster.Snapshot
	unsubscribe func()
}

// NewApp creates the roster view for a loaded store. Call Close when done to
// stop listening for changes.
func NewApp(store *roster.Store, rnd random.Random) *App {
	input := textinput.New()
	input.Placeholder = "name"
	input.CharLimit = 64

	a := &App{
		store:   store,
		random:  rnd,
		snap:    store.Snapshot(),
		input:   input,
		keys:    defaultKeyMap(),
		help:    help.New(),
		updates: make(chan roster.Snapshot, 1),
	}
	a.unsubscribe = store.Subscribe(a.publish)
	if order := a.order(); len(order) > 0 {
		a.selected = order[0].ID
	}
	return a
}

// Run shows the roster view until the user quits or ctx is done
func Run(ctx context.Context, store *roster.Store, rnd random.Random) error {
	app := NewApp(store, rnd)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Close stops listening for roster changes
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// publish keeps only the newest snapshot; the view never needs the ones it
// missed
func (a *App) publish(snap roster.Snapshot) {
	for {
		select {
		case a.updates <- snap:
			return
		default:
		}
		select {
		case <-a.updates:
		default:
		}
	}
}

func (a *App) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-a.updates)
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.waitForUpdate()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.help.Width = msg.Width
		return a, nil

	case snapshotMsg:
		a.applySnapshot(roster.Snapshot(msg))
		return a, a.waitForUpdate()

	case tea.KeyMsg:
		if a.mode != modeBrowse {
			return a.updateInput(msg)
		}
		return a.updateBrowse(msg)
	}
	return a, nil
}

func (a *App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.err = nil
	a.status = ""

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(msg, a.keys.Up):
		a.move(-1)
	case key.Matches(msg, a.keys.Down):
		a.move(1)
	case key.Matches(msg, a.keys.Toggle):
		if p, ok := a.current(); ok {
			a.run(func() error {
				_, err := a.store.ToggleActive(p.ID)
				return err
			})
		}
	case key.Matches(msg, a.keys.Add):
		a.startInput(modeAdd, "", "")
		return a, textinput.Blink
	case key.Matches(msg, a.keys.Edit):
		if p, ok := a.current(); ok {
			a.startInput(modeEdit, p.ID, p.Name)
			return a, textinput.Blink
		}
	case key.Matches(msg, a.keys.Recolor):
		if p, ok := a.current(); ok {
			a.run(func() error {
				_, _, err := a.store.AddOrEdit(p.ID, p.Name, palette.RandomDark(a.random))
				return err
			})
		}
	case key.Matches(msg, a.keys.Remove):
		if p, ok := a.current(); ok {
			a.selectNeighbour(p.ID)
			a.run(func() error {
				_, err := a.store.QuickRemove(p.ID)
				return err
			})
			if a.err == nil {
				a.status = fmt.Sprintf("removed %s (u to undo)", p.Name)
			}
		}
	case key.Matches(msg, a.keys.ActivateAll):
		a.run(a.store.BulkActivate)
	case key.Matches(msg, a.keys.BenchAll):
		a.run(a.store.BulkDeactivate)
	case key.Matches(msg, a.keys.Shuffle):
		a.setTeamSize(a.snap.TeamSize)
	case key.Matches(msg, a.keys.Teams2):
		a.setTeamSize(2)
	case key.Matches(msg, a.keys.Teams3):
		a.setTeamSize(3)
	case key.Matches(msg, a.keys.Teams4):
		a.setTeamSize(4)
	case key.Matches(msg, a.keys.Undo):
		var entry model.HistoryEntry
		a.run(func() error {
			var err error
			entry, err = a.store.Undo()
			return err
		})
		if a.err == nil {
			a.status = "undid " + describe(entry)
		}
	}
	return a, nil
}

func (a *App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.stopInput()
		return a, nil
	case tea.KeyEnter:
		a.submitInput()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) startInput(mode inputMode, target model.PlayerID, value string) {
	a.mode = mode
	a.editing = target
	a.input.SetValue(value)
	a.input.CursorEnd()
	a.input.Focus()
}

func (a *App) stopInput() {
	a.mode = modeBrowse
	a.editing = ""
	a.input.Blur()
	a.input.Reset()
}

func (a *App) submitInput() {
	name := a.input.Value()

	switch a.mode {
	case modeAdd:
		p, _, err := a.store.AddOrEdit("", name, palette.RandomDark(a.random))
		if err != nil {
			// stay in the input so the name can be fixed
			a.err = err
			return
		}
		a.selected = p.ID
		a.status = "added " + p.Name
	case modeEdit:
		current, err := a.store.Get(a.editing)
		if err != nil {
			a.err = err
			break
		}
		if _, _, err := a.store.AddOrEdit(current.ID, name, current.Color); err != nil {
			a.err = err
			return
		}
	}

	a.stopInput()
	a.refresh()
}

// run applies a store operation and refreshes the view from the store
func (a *App) run(op func() error) {
	if err := op(); err != nil {
		a.err = err
	}
	a.refresh()
}

func (a *App) setTeamSize(n int) {
	a.run(func() error { return a.store.SetTeamSize(n) })
}

func (a *App) refresh() {
	a.applySnapshot(a.store.Snapshot())
}

func (a *App) applySnapshot(snap roster.Snapshot) {
	a.snap = snap
	for _, p := range a.order() {
		if p.ID == a.selected {
			return
		}
	}
	// selection vanished, fall back to the first player
	a.selected = ""
	if order := a.order(); len(order) > 0 {
		a.selected = order[0].ID
	}
}

// order is the navigation order: active players, then the bench
func (a *App) order() []model.Player {
	out := make([]model.Player, 0, len(a.snap.Active)+len(a.snap.Benched))
	out = append(out, a.snap.Active...)
	return append(out, a.snap.Benched...)
}

func (a *App) current() (model.Player, bool) {
	for _, p := range a.order() {
		if p.ID == a.selected {
			return p, true
		}
	}
	return model.Player{}, false
}

func (a *App) move(delta int) {
	order := a.order()
	if len(order) == 0 {
		return
	}
	idx := 0
	for i, p := range order {
		if p.ID == a.selected {
			idx = i
			break
		}
	}
	idx = min(max(idx+delta, 0), len(order)-1)
	a.selected = order[idx].ID
}

// selectNeighbour moves the selection off id before it is removed
func (a *App) selectNeighbour(id model.PlayerID) {
	order := a.order()
	for i, p := range order {
		if p.ID != id {
			continue
		}
		switch {
		case i+1 < len(order):
			a.selected = order[i+1].ID
		case i > 0:
			a.selected = order[i-1].ID
		}
		return
	}
}

func describe(e model.HistoryEntry) string {
	switch {
	case e.Action == model.ActionRemove:
		return "removal of " + e.Player.Name
	case e.IsAdd():
		return "adding " + e.Player.Name
	case e.Previous.Name != e.Player.Name:
		return "rename of " + e.Previous.Name
	default:
		return "edit of " + e.Player.Name
	}
}
