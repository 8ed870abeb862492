package keys

import (
	"errors"
	"io"
)

// ErrNoData is returned by Source.PollByte when no byte arrived within the
// source's escape window. It is a short read, not an end of stream.
var ErrNoData = errors.New("keys: no data available")

// Source is a byte-at-a-time input device.
type Source interface {
	// ReadByte blocks until a byte is available.
	ReadByte() (byte, error)
	// PollByte returns the next byte if one arrives within the source's
	// escape window, or ErrNoData if none does.
	PollByte() (byte, error)
}

// Script is an in-memory Source that delivers input in chunks, the way a
// terminal delivers bytes in separate reads. PollByte only sees bytes of the
// chunk currently being consumed; starting the next chunk needs a blocking
// ReadByte. A single chunk models a sequence delivered all at once.
type Script struct {
	cur  []byte
	rest [][]byte
}

// NewScript returns a Script that delivers the given chunks in order.
func NewScript(chunks ...[]byte) *Script {
	s := &Script{}
	for _, c := range chunks {
		if len(c) > 0 {
			s.rest = append(s.rest, c)
		}
	}
	return s
}

// ReadByte returns the next byte, starting the next chunk if needed.
// It returns io.EOF once every chunk is consumed.
func (s *Script) ReadByte() (byte, error) {
	if len(s.cur) == 0 {
		if len(s.rest) == 0 {
			return 0, io.EOF
		}
		s.cur, s.rest = s.rest[0], s.rest[1:]
	}
	b := s.cur[0]
	s.cur = s.cur[1:]
	return b, nil
}

// PollByte returns the next byte of the current chunk, or ErrNoData when
// the current chunk is used up.
func (s *Script) PollByte() (byte, error) {
	if len(s.cur) == 0 {
		return 0, ErrNoData
	}
	b := s.cur[0]
	s.cur = s.cur[1:]
	return b, nil
}

// Pending reports the number of undelivered bytes.
func (s *Script) Pending() int {
	n := len(s.cur)
	for _, c := range s.rest {
		n += len(c)
	}
	return n
}
