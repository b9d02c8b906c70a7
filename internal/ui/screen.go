// Package ui provides terminal rendering using tcell.
package ui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{}
	once   sync.Once
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewScreenFrom(s)
}

// NewScreenFrom initializes an existing tcell screen, such as a simulation
// screen in tests.
func NewScreenFrom(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.EnableMouse()
	s.Clear()
	return &Screen{screen: s, done: make(chan struct{})}, nil
}

// Close finalizes the screen, restores terminal state and stops the event
// pump. Repeated calls are no-ops.
func (s *Screen) Close() {
	s.once.Do(func() {
		close(s.done)
		s.screen.Fini()
	})
}

// PollEvent waits for and returns the next terminal event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Events starts a goroutine that forwards terminal events so a ticking loop
// can select on them. The channel is closed once the screen is closed, even
// if nobody is receiving. Repeated calls return the same channel.
func (s *Screen) Events() <-chan tcell.Event {
	if s.events != nil {
		return s.events
	}
	s.events = make(chan tcell.Event, 16)
	go func(ch chan<- tcell.Event) {
		defer close(ch)
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case ch <- ev:
			case <-s.done:
				return
			}
		}
	}(s.events)
	return s.events
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// Content returns the rune and style at the given position.
func (s *Screen) Content(x, y int) (rune, tcell.Style) {
	r, _, style, _ := s.screen.GetContent(x, y)
	return r, style
}

// Size returns the current terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync forces a complete redraw of the screen.
func (s *Screen) Sync() {
	s.screen.Sync()
}
