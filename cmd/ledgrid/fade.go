package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ledkit/ledgrid"
)

var (
	fadeFrom  int
	fadeTo    int
	fadeStep  int
	fadeDelay time.Duration
)

// fade command
var fadeCmd = &cobra.Command{
	Use:   "fade",
	Short: "Fill the panel and fade it to another level",
	Args:  cobra.NoArgs,
	RunE:  runFade,
}

func init() {
	fadeCmd.Flags().IntVar(&fadeFrom, "from", 255, "starting brightness")
	fadeCmd.Flags().IntVar(&fadeTo, "to", 0, "target brightness")
	fadeCmd.Flags().IntVar(&fadeStep, "step", 10, "brightness change per pass")
	fadeCmd.Flags().DurationVar(&fadeDelay, "delay", ledgrid.DefaultFadeDelay, "pause between passes")
	rootCmd.AddCommand(fadeCmd)
}

func runFade(cmd *cobra.Command, _ []string) error {
	d, err := openDevice()
	if err != nil {
		return err
	}
	defer d.close()

	opts := append(d.opts, ledgrid.WithPacer(ledgrid.Delay(fadeDelay)))
	g, err := ledgrid.New(d.sink, 0, opts...)
	if err != nil {
		return err
	}
	if err := g.Fill(fadeFrom); err != nil {
		return err
	}
	if err := g.Present(); err != nil {
		return err
	}

	start := time.Now()
	f, err := g.NewFadeAll(fadeTo, fadeStep)
	if err != nil {
		return err
	}
	if err := f.Run(cmd.Context()); err != nil {
		return err
	}
	ledgrid.Logger().Info("fade done", "passes", f.Passes(), "elapsed", time.Since(start).Round(time.Millisecond))
	return d.finish()
}
