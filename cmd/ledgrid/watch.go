package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ledkit/ledgrid"
	"github.com/ledkit/ledgrid/internal/script"
)

// debounceDelay batches the bursts of events editors produce on save.
const debounceDelay = 100 * time.Millisecond

// errQuit ends the watch loop when the user presses Escape or q.
var errQuit = errors.New("quit")

// watch command
var watchCmd = &cobra.Command{
	Use:   "watch SCRIPT",
	Short: "Re-run a scene script every time it changes",
	Long: `Run a scene script, then run it again every time the file is saved.

Meant for --sink term: press Escape or q to quit. Parse and run errors are
logged and the previous frame stays up.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	d, err := openDevice()
	if err != nil {
		return err
	}
	defer d.close()

	g, err := ledgrid.New(d.sink, 0, d.opts...)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error setting up file watcher: %w", err)
	}
	defer watcher.Close()
	// Editors often replace the file; watch the directory instead.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(cmd.Context())
	eg.Go(func() error {
		return watchLoop(ctx, watcher, path, func() { rerun(ctx, g, path) })
	})
	if d.screen != nil {
		eg.Go(func() error { return eventLoop(ctx, d) })
	}
	err = eg.Wait()
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return d.finish()
	}
	return err
}

// rerun parses and runs the script from a clean grid, logging failures.
func rerun(ctx context.Context, g *ledgrid.Grid, path string) {
	log := ledgrid.Logger()
	s, err := script.ParseFile(path)
	if err != nil {
		log.Error("parse", "err", err)
		return
	}
	if err := g.Clear(); err != nil {
		log.Error("clear", "err", err)
		return
	}
	if err := s.Run(ctx, g); err != nil {
		log.Error("run", "err", err)
		return
	}
	if err := g.Present(); err != nil {
		log.Error("present", "err", err)
	}
	log.Debug("rendered", "path", path, "commands", len(s.Commands))
}

// watchLoop calls onChange once at start and again, debounced, whenever
// path is written or replaced.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, onChange func()) error {
	onChange()

	timer := time.NewTimer(debounceDelay)
	timer.Stop()
	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(debounceDelay)
			}
		case <-timer.C:
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			ledgrid.Logger().Warn("watcher", "err", err)
		}
	}
}

// eventLoop handles terminal input until the user quits or ctx is done.
func eventLoop(ctx context.Context, d *device) error {
	go func() {
		<-ctx.Done()
		d.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()
	for {
		switch ev := d.screen.PollEvent().(type) {
		case nil:
			return errQuit
		case *tcell.EventInterrupt:
			return ctx.Err()
		case *tcell.EventResize:
			d.screen.Sync()
			d.term.Redraw()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return errQuit
			}
		}
	}
}
