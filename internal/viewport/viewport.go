// Package viewport holds the cursor and scroll state of a read-only line
// buffer and the tab-stop arithmetic shared by everything that draws it.
package viewport

import "github.com/xonecas/glance/internal/constants"

// Direction is an arrow-key cursor move.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Advance returns the rendered column after byte c is drawn at rendered
// column rx: a tab moves to the next multiple of tabWidth, anything else
// moves one cell.
func Advance(rx int, c byte, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	if c == '\t' {
		return rx + tabWidth - rx%tabWidth
	}
	return rx + 1
}

// RenderX returns the rendered column of logical column col in line.
// Columns past the end of the line count only the bytes that exist.
func RenderX(line []byte, col, tabWidth int) int {
	rx := 0
	for i := 0; i < col && i < len(line); i++ {
		rx = Advance(rx, line[i], tabWidth)
	}
	return rx
}

// Model is the cursor and scroll window over a slice of lines. Lines are
// never modified.
type Model struct {
	lines [][]byte

	row int // Cursor row (0-indexed into lines)
	col int // Cursor column (0-indexed into the row's bytes)

	rowOffset int // First visible row

	screenRows int // Text area height, bars excluded
	screenCols int // Text area width
	tabWidth   int
}

// New returns a Model with the cursor at the origin.
func New(lines [][]byte, screenRows, screenCols, tabWidth int) *Model {
	if tabWidth < 1 {
		tabWidth = constants.TabWidth
	}
	m := &Model{
		lines:    lines,
		tabWidth: tabWidth,
	}
	m.SetSize(screenRows, screenCols)
	return m
}

func (m *Model) NumRows() int      { return len(m.lines) }
func (m *Model) Row() int          { return m.row }
func (m *Model) Col() int          { return m.col }
func (m *Model) RowOffset() int    { return m.rowOffset }
func (m *Model) ScreenRows() int   { return m.screenRows }
func (m *Model) ScreenCols() int   { return m.screenCols }
func (m *Model) TabWidth() int     { return m.tabWidth }
func (m *Model) Line(i int) []byte { return m.lines[i] }

// CurrentLine returns the line under the cursor, or nil if there are no lines.
func (m *Model) CurrentLine() []byte {
	if m.row < 0 || m.row >= len(m.lines) {
		return nil
	}
	return m.lines[m.row]
}

// RenderX returns the rendered column of the cursor.
func (m *Model) RenderX() int {
	return RenderX(m.CurrentLine(), m.col, m.tabWidth)
}

// SetSize changes the text area dimensions and restores the invariants.
func (m *Model) SetSize(screenRows, screenCols int) {
	if screenRows < 1 {
		screenRows = 1
	}
	if screenCols < 1 {
		screenCols = 1
	}
	m.screenRows = screenRows
	m.screenCols = screenCols
	m.Reconcile()
}

// SetCursor places the cursor and restores the invariants, so positions
// outside the buffer are clamped.
func (m *Model) SetCursor(row, col int) {
	m.row = row
	m.col = col
	m.Reconcile()
}

// ---------------------------------------------------------------------------
// Cursor movement
// ---------------------------------------------------------------------------

// Move steps the cursor one cell. Left and Right stop at the line
// boundaries; they do not wrap to the adjacent line.
func (m *Model) Move(d Direction) {
	switch d {
	case Left:
		if m.col > 0 {
			m.col--
		}
	case Right:
		if m.col < len(m.CurrentLine()) {
			m.col++
		}
	case Up:
		if m.row > 0 {
			m.row--
			m.clampCol()
		}
	case Down:
		if m.row < len(m.lines)-1 {
			m.row++
			m.clampCol()
		}
	}
	m.Reconcile()
}

// Home moves to column 0.
func (m *Model) Home() {
	m.col = 0
	m.Reconcile()
}

// End moves past the last byte of the line.
func (m *Model) End() {
	m.col = len(m.CurrentLine())
	m.Reconcile()
}

// PageUp moves the cursor and the scroll offset up by one screen. The two
// are clamped separately.
func (m *Model) PageUp() {
	m.row = max(m.row-m.screenRows, 0)
	m.rowOffset = max(m.rowOffset-m.screenRows, 0)
	m.Reconcile()
}

// PageDown moves the cursor and the scroll offset down by one screen. The
// cursor stops at the last row, the offset at the last full screen.
func (m *Model) PageDown() {
	m.row = max(min(m.row+m.screenRows, len(m.lines)-1), 0)
	m.rowOffset = min(m.rowOffset+m.screenRows, m.maxOffset())
	m.Reconcile()
}

// TabStop moves the cursor right to the first column whose rendered
// position reaches the next tab stop, or to the end of the line.
func (m *Model) TabStop() {
	line := m.CurrentLine()
	if line == nil {
		return
	}
	rx := RenderX(line, m.col, m.tabWidth)
	next := Advance(rx, '\t', m.tabWidth)
	col := m.col
	for col < len(line) && rx < next {
		rx = Advance(rx, line[col], m.tabWidth)
		col++
	}
	m.col = col
	m.Reconcile()
}

// ---------------------------------------------------------------------------
// Invariants
// ---------------------------------------------------------------------------

// Reconcile clamps the cursor into the buffer and scrolls so the cursor row
// is visible: rowOffset <= row < rowOffset+screenRows, and the window never
// starts past the last full screen.
func (m *Model) Reconcile() {
	if m.row >= len(m.lines) {
		m.row = len(m.lines) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	m.clampCol()

	if m.row < m.rowOffset {
		m.rowOffset = m.row
	}
	if m.row >= m.rowOffset+m.screenRows {
		m.rowOffset = m.row - m.screenRows + 1
	}
	if m.rowOffset > m.maxOffset() {
		m.rowOffset = m.maxOffset()
	}
	if m.rowOffset < 0 {
		m.rowOffset = 0
	}
}

func (m *Model) clampCol() {
	if m.col > len(m.CurrentLine()) {
		m.col = len(m.CurrentLine())
	}
	if m.col < 0 {
		m.col = 0
	}
}

func (m *Model) maxOffset() int {
	return max(len(m.lines)-m.screenRows, 0)
}
