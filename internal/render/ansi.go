package render

import "strconv"

// VT100 sequences written to the terminal. These are the exact bytes the
// viewer relies on; dumb terminals understand nothing richer.
const (
	clearScreen    = "\x1b[2J"
	cursorHome     = "\x1b[H"
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
	reverseVideo   = "\x1b[7m"
	resetVideo     = "\x1b[m"
	eraseLineRight = "\x1b[K"
	lineEnd        = "\r\n"
	emptyRowMarker = "~"
)

// cursorPosition returns CUP for a 1-based row and column.
func cursorPosition(row, col int) string {
	return "\x1b[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// ClearSequence returns the bytes that clear the screen and home the cursor.
func ClearSequence() []byte {
	return []byte(clearScreen + cursorHome)
}
