//go:build unix

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/glance/internal/buffer"
	"github.com/xonecas/glance/internal/config"
	"github.com/xonecas/glance/internal/constants"
	"github.com/xonecas/glance/internal/editor"
	"github.com/xonecas/glance/internal/logging"
	"github.com/xonecas/glance/internal/render"
	"github.com/xonecas/glance/internal/store"
	"github.com/xonecas/glance/internal/tty"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: glance [file]")
		os.Exit(1)
	}
	var path string
	if len(os.Args) == 2 {
		path = os.Args[1]
	}

	if err := run(path); err != nil {
		fmt.Fprintf(os.Stderr, "glance: %v\n", err)
		if errors.Is(err, errPanicked) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// errPanicked marks an error recovered from a panic in the viewer.
var errPanicked = errors.New("panic")

func run(path string) (err error) {
	cfgPath, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logCloser, err := logging.Setup(cfg.Log.File, cfg.Log.LevelOrDefault())
	if err != nil {
		return err
	}
	defer logCloser.Close()

	buf := buffer.Load(path, buffer.Limits{MaxLines: cfg.MaxLines, MaxLineLength: cfg.MaxLineLength})
	log.Info().Str("file", buf.Path).Int("lines", buf.NumRows()).Msg("starting")

	history := openHistory(cfg)
	defer history.Close()

	t := tty.New(os.Stdin, os.Stdout, cfg.EscapeTimeout())
	if err := t.EnableRawMode(); err != nil {
		return err
	}
	defer t.DisableRawMode()
	defer recoverTerminal(t, os.Stdout, &err)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go restoreOnSignal(t, os.Stdout, sigCh, os.Exit)

	rows, cols := t.Size()
	s := editor.New(buf, t, t, editor.Options{
		ScreenRows: textRows(rows),
		ScreenCols: cols,
		TabWidth:   cfg.TabWidthOrDefault(),
		Hint:       cfg.HintOrDefault(),
		History:    history,
	})
	if err := s.Run(); err != nil {
		log.Error().Err(err).Msg("editor loop failed")
		return err
	}
	log.Info().Msg("quit")
	return nil
}

// openHistory returns nil when history is disabled or unavailable. A nil
// history is valid and simply remembers nothing.
func openHistory(cfg *config.Config) *store.History {
	if !cfg.History.EnabledOrDefault() {
		return nil
	}
	dbPath, err := cfg.History.PathOrDefault()
	if err != nil {
		log.Warn().Err(err).Msg("no history path")
		return nil
	}
	h, err := store.Open(dbPath, cfg.History.RetentionOrDefault())
	if err != nil {
		log.Warn().Err(err).Str("path", dbPath).Msg("history unavailable")
		return nil
	}
	return h
}

// textRows is the terminal height left for file content.
func textRows(termRows int) int {
	return max(termRows-constants.ReservedRows, 1)
}

// restoreTerminal leaves raw mode and clears the screen.
func restoreTerminal(t *tty.Terminal, w io.Writer) {
	if err := t.DisableRawMode(); err != nil {
		log.Error().Err(err).Msg("failed to restore terminal")
	}
	w.Write(render.ClearSequence())
}

// recoverTerminal is deferred around the viewer. A panic restores the
// terminal and comes back as an errPanicked error in *errp, so the
// remaining defers still run.
func recoverTerminal(t *tty.Terminal, w io.Writer, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	restoreTerminal(t, w)
	log.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("panic")
	*errp = fmt.Errorf("%w: %v", errPanicked, r)
}

// restoreOnSignal puts the terminal back when the process is told to stop
// while in raw mode, then exits.
func restoreOnSignal(t *tty.Terminal, w io.Writer, sigCh <-chan os.Signal, exit func(int)) {
	sig, ok := <-sigCh
	if !ok {
		return
	}
	restoreTerminal(t, w)
	log.Info().Str("signal", sig.String()).Msg("terminated")
	exit(1)
}
