package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/eco-defender/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	name := msg.String()

	// Global quit keys
	switch name {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch name {
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "f", "e":
		return core.ActionInteract, false
	case " ":
		return core.ActionAttack, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MapMouse translates a mouse message to a game action.
// A left-button press attacks; everything else is ignored.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) core.Action {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		return core.ActionAttack
	}
	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	name := msg.String()

	switch name {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// GameKeyMap describes the in-game bindings for the help line.
type GameKeyMap struct {
	Move     key.Binding
	Interact key.Binding
	Attack   key.Binding
	Pause    key.Binding
	Restart  key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Interact, k.Attack, k.Pause, k.Restart, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Interact, k.Attack},
		{k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns the in-game bindings matching KeyMapper.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Move: key.NewBinding(
			key.WithKeys("w", "a", "s", "d", "up", "down", "left", "right"),
			key.WithHelp("wasd/arrows", "move"),
		),
		Interact: key.NewBinding(
			key.WithKeys("f", "e"),
			key.WithHelp("f/e", "interact"),
		),
		Attack: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space/click", "attack"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Hold windows for movement keys. Terminals only report presses, so a held
// key shows up as one press, a pause of the keyboard repeat delay, and then
// a stream of repeats. The first press is held long enough to bridge the
// repeat delay; each repeat extends the hold by the shorter window.
const (
	DefaultInitialHold = 300 * time.Millisecond
	DefaultRepeatHold  = 100 * time.Millisecond
)

// InputState turns discrete key events into per-tick input snapshots.
// Movement keys stay active for a hold window after each press; every
// other action fires once, on the next snapshot.
type InputState struct {
	initialHold time.Duration
	repeatHold  time.Duration
	held        map[core.Action]time.Time
	pending     map[core.Action]bool
	lastFrame   time.Time
}

// NewInputState creates an input state with the given hold windows.
func NewInputState(initialHold, repeatHold time.Duration) *InputState {
	return &InputState{
		initialHold: initialHold,
		repeatHold:  repeatHold,
		held:        make(map[core.Action]time.Time),
		pending:     make(map[core.Action]bool),
	}
}

// Press records an action at the given time.
func (s *InputState) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	if !a.IsMovement() {
		s.pending[a] = true
		return
	}

	// Pressing a direction releases its opposite immediately.
	delete(s.held, opposite(a))

	if until, ok := s.held[a]; ok && now.Before(until) {
		s.held[a] = now.Add(s.repeatHold)
		return
	}
	s.held[a] = now.Add(s.initialHold)
}

// Frame builds the snapshot for a tick at the given time and consumes the
// pending one-shot actions. Elapsed is zero for the first frame.
func (s *InputState) Frame(now time.Time) core.InputFrame {
	in := core.NewInputFrame()
	if !s.lastFrame.IsZero() && now.After(s.lastFrame) {
		in.Elapsed = now.Sub(s.lastFrame)
	}
	s.lastFrame = now

	for a, until := range s.held {
		if now.Before(until) {
			in.Set(a)
		} else {
			delete(s.held, a)
		}
	}
	for a := range s.pending {
		in.Set(a)
		delete(s.pending, a)
	}
	return in
}

// Reset drops all held and pending input and restarts elapsed tracking.
func (s *InputState) Reset() {
	clear(s.held)
	clear(s.pending)
	s.lastFrame = time.Time{}
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	default:
		return core.ActionNone
	}
}
