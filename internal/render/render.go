// Package render draws a viewport frame as raw ANSI bytes: the text rows,
// a reverse-video status bar, a reverse-video message bar, and finally the
// cursor. A frame is built in memory and written with a single Write.
package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/xonecas/glance/internal/constants"
	"github.com/xonecas/glance/internal/viewport"
)

// Renderer turns viewport state into terminal output.
type Renderer struct {
	Name string // Display name; empty shows constants.NoName
	Hint string // Message bar text
}

// New returns a Renderer for the named buffer.
func New(name, hint string) *Renderer {
	return &Renderer{Name: name, Hint: hint}
}

// Render writes one complete frame to w.
func (r *Renderer) Render(w io.Writer, vp *viewport.Model) error {
	var b bytes.Buffer
	r.Frame(&b, vp)
	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Frame appends one complete frame to b.
func (r *Renderer) Frame(b *bytes.Buffer, vp *viewport.Model) {
	beginFrame(b)
	drawRows(b, vp)
	r.drawStatusBar(b, vp)
	r.drawMessageBar(b, vp.ScreenCols())
	placeCursor(b, vp)
	b.WriteString(showCursor)
}

func beginFrame(b *bytes.Buffer) {
	b.WriteString(clearScreen)
	b.WriteString(cursorHome)
	b.WriteString(hideCursor)
}

// drawRows writes screenRows text rows. Tabs expand to spaces up to the next
// tab stop; output stops at screenCols rendered columns.
func drawRows(b *bytes.Buffer, vp *viewport.Model) {
	cols := vp.ScreenCols()
	tw := vp.TabWidth()
	for y := 0; y < vp.ScreenRows(); y++ {
		fileRow := y + vp.RowOffset()
		if fileRow >= vp.NumRows() {
			b.WriteString(emptyRowMarker)
			b.WriteString(lineEnd)
			continue
		}

		rx := 0
		for _, c := range vp.Line(fileRow) {
			if rx >= cols {
				break
			}
			next := viewport.Advance(rx, c, tw)
			if c != '\t' {
				b.WriteByte(c)
				rx = next
				continue
			}
			for ; rx < next && rx < cols; rx++ {
				b.WriteByte(' ')
			}
		}
		b.WriteString(lineEnd)
	}
}

// fit cuts s to width cells and pads it with spaces to exactly width.
func fit(s string, width int) string {
	return runewidth.FillRight(ansi.Truncate(s, width, ""), width)
}

// displayName is the file name as shown in the status bar: at most
// StatusNameWidth cells, padded to exactly that width.
func (r *Renderer) displayName() string {
	name := r.Name
	if name == "" {
		name = constants.NoName
	}
	return fit(name, constants.StatusNameWidth)
}

// statusText is the unpadded status line.
func (r *Renderer) statusText(vp *viewport.Model) string {
	row, rows := vp.Row()+1, vp.NumRows()
	if rows == 0 {
		row = 0
	}
	return fmt.Sprintf("File: %s  Line: %d/%d  Col: %d/%d",
		r.displayName(), row, rows, vp.Col()+1, len(vp.CurrentLine())+1)
}

func (r *Renderer) drawStatusBar(b *bytes.Buffer, vp *viewport.Model) {
	b.WriteString(reverseVideo)
	b.WriteString(fit(r.statusText(vp), vp.ScreenCols()))
	b.WriteString(resetVideo)
	b.WriteString(lineEnd)
}

// drawMessageBar writes the last screen row. It has no line terminator so
// the screen never scrolls.
func (r *Renderer) drawMessageBar(b *bytes.Buffer, cols int) {
	b.WriteString(eraseLineRight)
	b.WriteString(reverseVideo)
	b.WriteString(fit(r.Hint, cols))
	b.WriteString(resetVideo)
}

// placeCursor moves the terminal cursor to the rendered cursor cell.
func placeCursor(b *bytes.Buffer, vp *viewport.Model) {
	b.WriteString(cursorPosition(vp.Row()-vp.RowOffset()+1, vp.RenderX()+1))
}
