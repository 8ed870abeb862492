// Package keys turns a raw terminal byte stream into logical key events.
//
// Plain bytes pass straight through as KeyChar events. The escape byte starts
// a small state machine that recognises the VT100/xterm cursor and editing
// keys (arrows, Home/End, PageUp/PageDown, Delete). Anything it does not
// recognise, including sequences cut short by fragmented delivery, decodes
// to a bare KeyEscape.
package keys

import "strconv"

// Key identifies a logical key.
type Key uint8

const (
	KeyNone Key = iota
	KeyChar     // Plain byte, see Event.Char
	KeyEscape   // Lone ESC or unrecognised escape sequence

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
)

// keyToName maps keys to the names used in logs.
var keyToName = map[Key]string{
	KeyNone:     "none",
	KeyChar:     "char",
	KeyEscape:   "escape",
	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyDelete:   "delete",
}

func (k Key) String() string {
	if name, ok := keyToName[k]; ok {
		return name
	}
	return "key(" + strconv.Itoa(int(k)) + ")"
}

// Event is one decoded key press.
type Event struct {
	Key  Key
	Char byte // Valid when Key == KeyChar
}

// Char returns a plain character event.
func Char(b byte) Event { return Event{Key: KeyChar, Char: b} }

// Special returns a named key event.
func Special(k Key) Event { return Event{Key: k} }

// Is reports whether e is the plain character b.
func (e Event) Is(b byte) bool { return e.Key == KeyChar && e.Char == b }

func (e Event) String() string {
	if e.Key != KeyChar {
		return e.Key.String()
	}
	if e.Char >= 0x20 && e.Char < 0x7f {
		return "char(" + string(rune(e.Char)) + ")"
	}
	return "char(0x" + strconv.FormatUint(uint64(e.Char), 16) + ")"
}
