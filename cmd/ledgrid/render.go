package main

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/ledkit/ledgrid"
	"github.com/ledkit/ledgrid/internal/script"
)

// render command
var renderCmd = &cobra.Command{
	Use:   "render SCRIPT",
	Short: "Run a scene script once",
	Long: `Run a scene script once and present the result.

With --sink mem the displayed bank is written to --out as a PNG. With
--sink term the panel stays on screen until a key is pressed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	s, err := script.ParseFile(args[0])
	if err != nil {
		return err
	}
	d, err := openDevice()
	if err != nil {
		return err
	}
	defer d.close()

	g, err := ledgrid.New(d.sink, 0, d.opts...)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := s.Run(ctx, g); err != nil {
		return err
	}
	if err := g.Present(); err != nil {
		return err
	}
	if d.screen != nil {
		waitKey(ctx, d)
	}
	return d.finish()
}

// waitKey blocks until a key is pressed or ctx is done, repainting on
// resize.
func waitKey(ctx context.Context, d *device) {
	go func() {
		<-ctx.Done()
		d.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()
	for {
		switch d.screen.PollEvent().(type) {
		case nil, *tcell.EventKey, *tcell.EventInterrupt:
			return
		case *tcell.EventResize:
			d.screen.Sync()
			d.term.Redraw()
		}
	}
}
