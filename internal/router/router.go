// Package router keeps the stack of open screens. Screens navigate by
// returning the commands built by Open, Back and Home.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/curanostics/curanostics/internal/screen"
)

// OpenMsg asks the router to show Screen on top of the current one.
type OpenMsg struct {
	Screen screen.Screen
}

// BackMsg closes the active screen.
type BackMsg struct{}

// HomeMsg closes every screen above the dashboard.
type HomeMsg struct{}

// Open returns a command that opens s.
func Open(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return OpenMsg{Screen: s} }
}

// Back returns a command that closes the active screen.
func Back() tea.Cmd {
	return func() tea.Msg { return BackMsg{} }
}

// Home returns a command that returns to the dashboard.
func Home() tea.Cmd {
	return func() tea.Msg { return HomeMsg{} }
}

// Router is a stack of screens. The root screen is never closed.
type Router struct {
	stack []screen.Screen
}

// New creates a Router with root at the bottom of the stack.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the active screen unless it is the root.
func (r *Router) Pop() {
	if len(r.stack) > 1 {
		r.stack[len(r.stack)-1] = nil
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// PopToRoot closes everything above the root.
func (r *Router) PopToRoot() {
	for len(r.stack) > 1 {
		r.Pop()
	}
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of open screens, root included.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Trail returns the titles of the open screens from the root up.
func (r *Router) Trail() []string {
	titles := make([]string, len(r.stack))
	for i, s := range r.stack {
		titles[i] = s.Title()
	}
	return titles
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case OpenMsg:
		return r.Push(msg.Screen)
	case BackMsg:
		r.Pop()
		return nil
	case HomeMsg:
		r.PopToRoot()
		return nil
	}

	top := len(r.stack) - 1
	updated, cmd := r.stack[top].Update(msg)
	r.stack[top] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
