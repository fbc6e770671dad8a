package nav

import (
	tea "charm.land/bubbletea/v2"

	"github.com/nmehta/noggin/internal/screen"
)

// PushMsg requests the stack to push a new screen.
type PushMsg struct {
	Screen screen.Screen
}

// PopMsg requests the stack to pop the current screen.
type PopMsg struct{}

// ReplaceMsg requests the stack to replace the current screen in place,
// used when the play screen hands over to the summary screen.
type ReplaceMsg struct {
	Screen screen.Screen
}

// Push wraps a screen in a PushMsg command.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushMsg{Screen: s} }
}

// Pop returns a PopMsg command.
func Pop() tea.Cmd {
	return func() tea.Msg { return PopMsg{} }
}

// Replace wraps a screen in a ReplaceMsg command.
func Replace(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceMsg{Screen: s} }
}

// Stack manages a stack of screens.
type Stack struct {
	stack []screen.Screen
}

// New creates a new Stack with the given initial screen.
func New(initial screen.Screen) *Stack {
	return &Stack{stack: []screen.Screen{initial}}
}

// Push adds a screen on top of the stack and calls its Init().
func (n *Stack) Push(s screen.Screen) tea.Cmd {
	n.stack = append(n.stack, s)
	return s.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0.
func (n *Stack) Pop() tea.Cmd {
	if len(n.stack) <= 1 {
		return nil
	}
	n.stack = n.stack[:len(n.stack)-1]
	return nil
}

// Replace swaps the top screen and calls the new screen's Init().
func (n *Stack) Replace(s screen.Screen) tea.Cmd {
	n.stack[len(n.stack)-1] = s
	return s.Init()
}

// Active returns the top screen on the stack.
func (n *Stack) Active() screen.Screen {
	if len(n.stack) == 0 {
		return nil
	}
	return n.stack[len(n.stack)-1]
}

// Depth returns the number of screens on the stack.
func (n *Stack) Depth() int {
	return len(n.stack)
}

// Update forwards a message to the active screen and handles navigation
// messages.
func (n *Stack) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushMsg:
		return n.Push(msg.Screen)
	case PopMsg:
		return n.Pop()
	case ReplaceMsg:
		return n.Replace(msg.Screen)
	}

	active := n.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	n.stack[len(n.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (n *Stack) View(width, height int) string {
	active := n.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
