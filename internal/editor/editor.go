// Package editor runs the interactive loop: draw a frame, decode one key,
// apply it to the viewport, repeat until the quit key.
package editor

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/glance/internal/buffer"
	"github.com/xonecas/glance/internal/keys"
	"github.com/xonecas/glance/internal/render"
	"github.com/xonecas/glance/internal/store"
	"github.com/xonecas/glance/internal/viewport"
)

// QuitKey ends the session.
const QuitKey = 'q'

// State is the loop state.
type State uint8

const (
	Running State = iota
	Quit
)

func (s State) String() string {
	if s == Quit {
		return "quit"
	}
	return "running"
}

// Options configure a Session.
type Options struct {
	ScreenRows int // Text area rows, bars excluded
	ScreenCols int
	TabWidth   int
	Hint       string
	History    *store.History // Optional
}

// Session is one viewing session of one buffer. It owns all editor state;
// nothing is kept in package variables.
type Session struct {
	buf      *buffer.Buffer
	vp       *viewport.Model
	renderer *render.Renderer
	decoder  *keys.Decoder
	out      io.Writer
	history  *store.History
	state    State
}

// New returns a Session reading keys from src and drawing to out. With a
// history, the cursor starts at the last saved position of the file.
func New(buf *buffer.Buffer, src keys.Source, out io.Writer, opts Options) *Session {
	s := &Session{
		buf:      buf,
		vp:       viewport.New(buf.Lines, opts.ScreenRows, opts.ScreenCols, opts.TabWidth),
		renderer: render.New(buf.Name, opts.Hint),
		decoder:  keys.NewDecoder(src),
		out:      out,
		history:  opts.History,
	}
	if p, ok := s.history.Get(buf.Path); ok {
		s.vp.SetCursor(p.Row, p.Col)
		log.Debug().Str("file", buf.Path).Int("row", p.Row).Int("col", p.Col).Msg("restored cursor")
	}
	return s
}

// Viewport exposes the cursor and scroll state.
func (s *Session) Viewport() *viewport.Model { return s.vp }

// State returns the loop state.
func (s *Session) State() State { return s.state }

// Run loops until the quit key or the end of input. On every exit, errors
// included, the screen is cleared and, with a history, the cursor position
// is saved.
func (s *Session) Run() error {
	err := s.loop()
	s.history.Put(s.buf.Path, store.Position{Row: s.vp.Row(), Col: s.vp.Col()})
	if _, werr := s.out.Write(render.ClearSequence()); werr != nil && err == nil {
		err = fmt.Errorf("clear screen: %w", werr)
	}
	return err
}

func (s *Session) loop() error {
	for s.state == Running {
		if err := s.Refresh(); err != nil {
			return err
		}
		ev, err := s.decoder.Decode()
		if errors.Is(err, io.EOF) {
			log.Debug().Msg("input closed")
			s.state = Quit
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode key: %w", err)
		}
		s.Dispatch(ev)
	}
	return nil
}

// Refresh draws the current frame.
func (s *Session) Refresh() error {
	return s.renderer.Render(s.out, s.vp)
}

// Dispatch applies one key. Unbound keys are ignored.
func (s *Session) Dispatch(ev keys.Event) {
	log.Debug().Stringer("key", ev).Msg("key")

	switch ev.Key {
	case keys.KeyChar:
		switch ev.Char {
		case QuitKey:
			s.state = Quit
		case '\t':
			s.vp.TabStop()
		}
	case keys.KeyUp:
		s.vp.Move(viewport.Up)
	case keys.KeyDown:
		s.vp.Move(viewport.Down)
	case keys.KeyLeft:
		s.vp.Move(viewport.Left)
	case keys.KeyRight:
		s.vp.Move(viewport.Right)
	case keys.KeyHome:
		s.vp.Home()
	case keys.KeyEnd:
		s.vp.End()
	case keys.KeyPageUp:
		s.vp.PageUp()
	case keys.KeyPageDown:
		s.vp.PageDown()
	}
}
