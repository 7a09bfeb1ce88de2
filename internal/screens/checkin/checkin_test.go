package checkin

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curanostics/curanostics/internal/store"
	"github.com/curanostics/curanostics/internal/symptoms"
)

var (
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyLeft  = tea.KeyPressMsg{Code: tea.KeyLeft}
	keyRight = tea.KeyPressMsg{Code: tea.KeyRight}
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyEsc   = tea.KeyPressMsg{Code: tea.KeyEscape}
)

func typed(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func newService(t *testing.T) *symptoms.Service {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return symptoms.NewService(st.EventRepo(), nil)
}

func send(s *Screen, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = s.Update(m)
	}
	return cmd
}

func TestSlidersClamp(t *testing.T) {
	s := New(nil)

	send(s, keyRight)
	assert.Equal(t, 4, s.Entry().Fatigue)

	send(s, keyDown, keyLeft, keyLeft)
	assert.Equal(t, 0, s.Entry().Nausea)

	send(s, keyDown, keyDown)
	for range 5 {
		send(s, keyRight)
	}
	assert.Equal(t, symptoms.MaxScore, s.Entry().Mood)
}

func TestNotesCaptureLetters(t *testing.T) {
	s := New(nil)
	send(s, keyDown, keyDown, keyDown, keyDown)
	require.Equal(t, focusNotes, s.focus)

	// j and k are text here, not navigation.
	send(s, typed('j'), typed('k'))
	assert.Equal(t, focusNotes, s.focus)
	assert.Equal(t, "jk", s.Entry().Notes)

	send(s, keyEnter)
	assert.Equal(t, focusSave, s.focus)
}

func TestSave(t *testing.T) {
	svc := newService(t)
	s := New(svc)

	send(s, keyRight, keyRight) // fatigue 5
	send(s, keyDown, keyDown, keyDown, keyDown)
	send(s, typed('o'), typed('k'), keyEnter)

	cmd := send(s, keyEnter)
	require.NotNil(t, cmd)
	assert.True(t, s.saving)
	assert.Contains(t, ansi.Strip(s.View(100, 40)), "Saving...")

	msg := cmd()
	saved, ok := msg.(savedMsg)
	require.True(t, ok, "got %T", msg)
	require.NoError(t, saved.Err)

	next := send(s, saved)
	require.NotNil(t, next)
	require.NotNil(t, s.saved)
	assert.Equal(t, 5, s.saved.Fatigue)
	assert.Equal(t, "ok", s.saved.Notes)

	logs, err := svc.History(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, s.saved.ID, logs[0].ID)

	// Further keys are ignored once saved.
	assert.Nil(t, send(s, keyEnter))
}

func TestEscHeldWhileSaving(t *testing.T) {
	s := New(newService(t))
	assert.False(t, s.HandlesEscape())

	send(s, keyDown, keyDown, keyDown, keyDown, keyDown)
	cmd := send(s, keyEnter)
	require.NotNil(t, cmd)
	assert.True(t, s.HandlesEscape())
	assert.Nil(t, send(s, keyEsc))

	next := send(s, cmd())
	require.NotNil(t, next)
	assert.False(t, s.HandlesEscape())
	require.NotNil(t, s.saved)
}

func TestSaveWithoutService(t *testing.T) {
	s := New(nil)
	send(s, keyDown, keyDown, keyDown, keyDown, keyDown)

	assert.Nil(t, send(s, keyEnter))
	assert.Contains(t, ansi.Strip(s.View(100, 40)), "unavailable")
}

func TestView(t *testing.T) {
	view := ansi.Strip(New(nil).View(100, 40))
	for _, want := range []string{"How are you feeling today?", "Fatigue", "3/10", "Mood", "7/10", "Save Check-in"} {
		assert.True(t, strings.Contains(view, want), "view missing %q", want)
	}
}

func TestKeyHints(t *testing.T) {
	s := New(nil)
	assert.Equal(t, "←→", s.KeyHints()[1].Key)

	send(s, keyDown, keyDown, keyDown, keyDown, keyDown)
	assert.Equal(t, "Save", s.KeyHints()[1].Description)
}
