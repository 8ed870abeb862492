package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"

	"github.com/xonecas/glance/internal/viewport"
)

func lines(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

func TestBeginFrame(t *testing.T) {
	var b bytes.Buffer
	beginFrame(&b)
	if got, want := b.String(), "\x1b[2J\x1b[H\x1b[?25l"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDrawRows(t *testing.T) {
	cases := []struct {
		name  string
		lines [][]byte
		rows  int
		cols  int
		want  string
	}{
		{
			"filler after last line",
			lines("abc"),
			3, 10,
			"abc\r\n~\r\n~\r\n",
		},
		{
			"tab expands to next stop",
			lines("a\tb", "\t\tc"),
			2, 20,
			"a   b\r\n        c\r\n",
		},
		{
			"truncated at screen width",
			lines("abcdefghij"),
			1, 4,
			"abcd\r\n",
		},
		{
			"tab cut at screen width",
			lines("ab\tcd"),
			1, 3,
			"ab \r\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vp := viewport.New(tc.lines, tc.rows, tc.cols, 4)
			var b bytes.Buffer
			drawRows(&b, vp)
			if got := b.String(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDrawRowsWidthMatchesRenderX(t *testing.T) {
	for _, l := range []string{"\t", "a\tb", "\t\tc", "abc\td\t", "abcd\t", "x\ty\tz\t\t"} {
		for _, tw := range []int{1, 2, 4, 8} {
			vp := viewport.New(lines(l), 1, 200, tw)
			var b bytes.Buffer
			drawRows(&b, vp)
			drawn := strings.TrimSuffix(b.String(), "\r\n")
			if want := viewport.RenderX([]byte(l), len(l), tw); len(drawn) != want {
				t.Errorf("%q tab %d: drawn width %d, RenderX %d", l, tw, len(drawn), want)
			}
		}
	}
}

func TestDrawRowsScrolled(t *testing.T) {
	vp := viewport.New(lines("one", "two", "three", "four"), 2, 10, 4)
	vp.SetCursor(3, 0)
	var b bytes.Buffer
	drawRows(&b, vp)
	if got, want := b.String(), "three\r\nfour\r\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStatusBar(t *testing.T) {
	vp := viewport.New(lines("hello", "hi"), 5, 60, 4)
	vp.SetCursor(1, 1)
	r := New("notes.txt", "")

	var b bytes.Buffer
	r.drawStatusBar(&b, vp)
	got := b.String()

	if !strings.HasPrefix(got, "\x1b[7m") || !strings.HasSuffix(got, "\x1b[m\r\n") {
		t.Fatalf("status bar not wrapped in reverse video: %q", got)
	}
	text := strings.TrimSuffix(strings.TrimPrefix(got, "\x1b[7m"), "\x1b[m\r\n")
	if len(text) != 60 {
		t.Errorf("status width = %d, want 60", len(text))
	}
	want := "File: notes.txt             Line: 2/2  Col: 2/3"
	if !strings.HasPrefix(text, want) {
		t.Errorf("status = %q, want prefix %q", text, want)
	}
	if strings.TrimRight(text, " ") != want {
		t.Errorf("status padding not blank: %q", text)
	}
}

func TestStatusBarName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"", "No Name             "},
		{"a-very-long-file-name-indeed.txt", "a-very-long-file-nam"},
		{"x", "x                   "},
	}
	for _, tc := range cases {
		r := New(tc.name, "")
		if got := r.displayName(); got != tc.want {
			t.Errorf("displayName(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFit(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abcd"},
		{"abcd", 4, "abcd"},
		{"日本語", 5, "日本 "},
	}
	for _, tc := range cases {
		if got := fit(tc.in, tc.width); got != tc.want {
			t.Errorf("fit(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestStatusBarFitsNarrowScreen(t *testing.T) {
	vp := viewport.New(lines("abc"), 3, 12, 4)
	var b bytes.Buffer
	New("file.go", "").drawStatusBar(&b, vp)
	if got, want := b.String(), "\x1b[7mFile: file.g\x1b[m\r\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStatusBarEmptyBuffer(t *testing.T) {
	vp := viewport.New(nil, 3, 40, 4)
	r := New("", "")
	if got, want := r.statusText(vp), "File: No Name               Line: 0/0  Col: 1/1"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMessageBar(t *testing.T) {
	var b bytes.Buffer
	New("", "q quit").drawMessageBar(&b, 10)
	if got, want := b.String(), "\x1b[K\x1b[7mq quit    \x1b[m"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	b.Reset()
	New("", "a long hint text").drawMessageBar(&b, 6)
	if got, want := b.String(), "\x1b[K\x1b[7ma long\x1b[m"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPlaceCursor(t *testing.T) {
	vp := viewport.New(lines("x", "x", "\tab", "x", "x"), 2, 20, 4)
	vp.SetCursor(2, 2)
	var b bytes.Buffer
	placeCursor(&b, vp)
	// Row 2 scrolled to the bottom of a two-row window; tab + "a" = column 5.
	if got, want := b.String(), "\x1b[2;6H"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderWritesWholeFrame(t *testing.T) {
	vp := viewport.New(lines("abc"), 2, 20, 4)
	var b bytes.Buffer
	if err := New("f", "hint").Render(&b, vp); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := b.String()
	if !strings.HasPrefix(out, "\x1b[2J\x1b[H\x1b[?25l") {
		t.Errorf("frame does not start with clear/home/hide: %q", out)
	}
	if !strings.HasSuffix(out, "\x1b[1;1H\x1b[?25h") {
		t.Errorf("frame does not end with cursor/show: %q", out)
	}
	// Two text rows + status bar end in CRLF; the message bar does not.
	if n := strings.Count(out, "\r\n"); n != 3 {
		t.Errorf("CRLF count = %d, want 3", n)
	}
	visible := ansi.Strip(out)
	for _, want := range []string{"abc", "~", "File: f", "hint"} {
		if !strings.Contains(visible, want) {
			t.Errorf("visible text missing %q: %q", want, visible)
		}
	}
}

func TestFrameGolden(t *testing.T) {
	cases := []struct {
		name  string
		lines [][]byte
		rows  int
		cols  int
		row   int
		col   int
		file  string
		hint  string
	}{
		{"tabs_and_filler", lines("abc", "a\tb"), 3, 40, 1, 2, "notes.txt", "q quit"},
		{"scrolled", lines("1", "2", "3", "4", "5"), 2, 30, 4, 1, "", "hint"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vp := viewport.New(tc.lines, tc.rows, tc.cols, 4)
			vp.SetCursor(tc.row, tc.col)
			var b bytes.Buffer
			New(tc.file, tc.hint).Frame(&b, vp)
			golden.RequireEqual(t, b.Bytes())
		})
	}
}
