package keys

import (
	"errors"
	"io"
	"testing"
)

func decodeAll(t *testing.T, src Source) []Event {
	t.Helper()
	d := NewDecoder(src)
	var out []Event
	for {
		ev, err := d.Decode()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		out = append(out, ev)
	}
}

func TestDecodeSequences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Event
	}{
		{"up", "\x1b[A", Special(KeyUp)},
		{"down", "\x1b[B", Special(KeyDown)},
		{"right", "\x1b[C", Special(KeyRight)},
		{"left", "\x1b[D", Special(KeyLeft)},
		{"home letter", "\x1b[H", Special(KeyHome)},
		{"end letter", "\x1b[F", Special(KeyEnd)},
		{"home 1~", "\x1b[1~", Special(KeyHome)},
		{"home 7~", "\x1b[7~", Special(KeyHome)},
		{"end 4~", "\x1b[4~", Special(KeyEnd)},
		{"end 8~", "\x1b[8~", Special(KeyEnd)},
		{"page up", "\x1b[5~", Special(KeyPageUp)},
		{"page down", "\x1b[6~", Special(KeyPageDown)},
		{"delete", "\x1b[3~", Special(KeyDelete)},
		{"plain char", "q", Char('q')},
		{"tab", "\t", Char('\t')},
		{"lone escape", "\x1b", Special(KeyEscape)},
		{"unknown final", "\x1b[Z", Special(KeyEscape)},
		{"unknown digit", "\x1b[2~", Special(KeyEscape)},
		{"digit without tilde", "\x1b[5x", Special(KeyEscape)},
		{"ss3 intro", "\x1bOA", Special(KeyEscape)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := NewScript([]byte(tc.in))
			ev, err := NewDecoder(src).Decode()
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if ev != tc.want {
				t.Errorf("Decode(%q) = %v, want %v", tc.in, ev, tc.want)
			}
		})
	}
}

func TestDecodeLoneEscapeDoesNotWaitForNextChunk(t *testing.T) {
	// ESC arrives on its own, the user then types "[A" as plain keys.
	src := NewScript([]byte{escByte}, []byte("[A"))
	got := decodeAll(t, src)
	want := []Event{Special(KeyEscape), Char('['), Char('A')}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecodeFragmentedSequenceFallsBackToEscape(t *testing.T) {
	cases := []struct {
		name   string
		chunks [][]byte
		want   []Event
	}{
		{
			"split after bracket",
			[][]byte{[]byte("\x1b["), []byte("A")},
			[]Event{Special(KeyEscape), Char('A')},
		},
		{
			"split before tilde",
			[][]byte{[]byte("\x1b[5"), []byte("~")},
			[]Event{Special(KeyEscape), Char('~')},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeAll(t, NewScript(tc.chunks...))
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("event %d = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestDecodeStream(t *testing.T) {
	src := NewScript([]byte("a\x1b[B\x1b[6~q"))
	got := decodeAll(t, src)
	want := []Event{Char('a'), Special(KeyDown), Special(KeyPageDown), Char('q')}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if src.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", src.Pending())
	}
}

type failingSource struct {
	first bool
	err   error
}

func (f *failingSource) ReadByte() (byte, error) {
	if !f.first {
		f.first = true
		return escByte, nil
	}
	return 0, f.err
}

func (f *failingSource) PollByte() (byte, error) { return 0, f.err }

func TestDecodeErrors(t *testing.T) {
	t.Run("eof on blocking read", func(t *testing.T) {
		_, err := NewDecoder(NewScript()).Decode()
		if !errors.Is(err, io.EOF) {
			t.Fatalf("err = %v, want io.EOF", err)
		}
	})

	t.Run("poll failure propagates", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := NewDecoder(&failingSource{err: boom}).Decode()
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want %v", err, boom)
		}
	})

	t.Run("eof during continuation is escape", func(t *testing.T) {
		ev, err := NewDecoder(&failingSource{err: io.EOF}).Decode()
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if ev != Special(KeyEscape) {
			t.Errorf("got %v, want escape", ev)
		}
	})
}

func TestEventString(t *testing.T) {
	cases := map[Event]string{
		Char('q'):            "char(q)",
		Char('\t'):           "char(0x9)",
		Special(KeyPageDown): "page_down",
		Special(KeyEscape):   "escape",
	}
	for ev, want := range cases {
		if got := ev.String(); got != want {
			t.Errorf("%#v.String() = %q, want %q", ev, got, want)
		}
	}
}

func TestDecodeDoesNotAllocate(t *testing.T) {
	input := []byte("\x1b[5~")
	src := &Script{}
	d := NewDecoder(src)
	allocs := testing.AllocsPerRun(100, func() {
		src.cur = input
		if _, err := d.Decode(); err != nil {
			t.Fatal(err)
		}
	})
	if allocs != 0 {
		t.Errorf("Decode allocated %.0f times per run", allocs)
	}
}
