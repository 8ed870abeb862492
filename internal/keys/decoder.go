package keys

import (
	"errors"
	"io"
)

const escByte = 0x1b

// state of the escape-sequence machine. Only stateIntro, stateCSI and
// stateTilde are live; stateReject and stateAccept end the sequence.
type state uint8

const (
	stateReject state = iota // End: bare Escape
	stateAccept              // End: the pending key
	stateIntro               // Saw ESC, want '['
	stateCSI                 // Saw ESC [, want a final letter or a digit
	stateTilde               // Saw ESC [ digit, want '~'
	stateCount
)

// rule is one transition. A non-zero key becomes the pending key, emitted
// when the machine reaches stateAccept.
type rule struct {
	next state
	key  Key
}

// transitions[s][b] is the rule for byte b in state s. Missing entries are
// the zero rule, which rejects.
var transitions = buildTransitions()

func buildTransitions() *[stateCount][256]rule {
	var t [stateCount][256]rule

	t[stateIntro]['['] = rule{next: stateCSI}

	for final, k := range map[byte]Key{
		'A': KeyUp,
		'B': KeyDown,
		'C': KeyRight,
		'D': KeyLeft,
		'H': KeyHome,
		'F': KeyEnd,
	} {
		t[stateCSI][final] = rule{next: stateAccept, key: k}
	}

	// Every digit waits for '~'; digits without a key decode to Escape.
	for d := byte('0'); d <= '9'; d++ {
		t[stateCSI][d] = rule{next: stateTilde, key: KeyEscape}
	}
	for digit, k := range map[byte]Key{
		'1': KeyHome,
		'3': KeyDelete,
		'4': KeyEnd,
		'5': KeyPageUp,
		'6': KeyPageDown,
		'7': KeyHome,
		'8': KeyEnd,
	} {
		t[stateCSI][digit] = rule{next: stateTilde, key: k}
	}

	t[stateTilde]['~'] = rule{next: stateAccept}
	return &t
}

// Decoder reads key events from a Source.
type Decoder struct {
	src Source
}

// NewDecoder returns a Decoder reading from src.
func NewDecoder(src Source) *Decoder {
	return &Decoder{src: src}
}

// Decode blocks for one byte and returns the key it starts. After ESC the
// continuation bytes are polled, never awaited: a byte that is not there
// ends the sequence as a bare Escape.
//
// Errors are only returned from the blocking read, or from a poll that
// fails for a reason other than missing data.
func (d *Decoder) Decode() (Event, error) {
	b, err := d.src.ReadByte()
	if err != nil {
		return Event{}, err
	}
	if b != escByte {
		return Char(b), nil
	}
	return d.escape()
}

func (d *Decoder) escape() (Event, error) {
	st := stateIntro
	pending := KeyEscape
	for {
		b, err := d.src.PollByte()
		if err != nil {
			// The ESC itself was real; a stream ending right after it
			// surfaces on the next blocking read.
			if errors.Is(err, ErrNoData) || errors.Is(err, io.EOF) {
				return Special(KeyEscape), nil
			}
			return Event{}, err
		}

		r := transitions[st][b]
		if r.key != KeyNone {
			pending = r.key
		}
		switch r.next {
		case stateReject:
			return Special(KeyEscape), nil
		case stateAccept:
			return Special(pending), nil
		}
		st = r.next
	}
}
