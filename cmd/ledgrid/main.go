// Command ledgrid draws scene scripts on LED matrices.
//
// It renders to a PNG file, to an emulated panel in the terminal, or to
// IS31FL3731 chips on an I²C bus:
//
//	ledgrid render scene.led --out scene.png
//	ledgrid watch scene.led --sink term
//	ledgrid fade --sink i2c --addr 0x74 --addr 0x75 --from 255 --to 0
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ledkit/ledgrid"
)

// global flags
var (
	flagWidth   int
	flagHeight  int
	flagSink    string
	flagBus     string
	flagAddrs   []string
	flagWing    bool
	flagOut     string
	flagScale   int
	flagVerbose bool
)

// root command
var rootCmd = &cobra.Command{
	Use:           "ledgrid",
	Short:         "Draw on monochrome LED matrices",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(*cobra.Command, []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		ledgrid.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagWidth, "width", 16, "panel width in LEDs (mem and term sinks)")
	pf.IntVar(&flagHeight, "height", 9, "panel height in LEDs (mem and term sinks)")
	pf.StringVar(&flagSink, "sink", "mem", "output: mem, term or i2c")
	pf.StringVar(&flagBus, "bus", "", "I²C bus name (empty for the first one)")
	pf.StringSliceVar(&flagAddrs, "addr", []string{"0x74"}, "IS31FL3731 address; repeat to chain panels left to right")
	pf.BoolVar(&flagWing, "wing", false, "panels are 15x7 CharliePlex FeatherWings")
	pf.StringVarP(&flagOut, "out", "o", "", "PNG file to write (mem sink)")
	pf.IntVar(&flagScale, "scale", 16, "PNG pixels per LED")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log debug output")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
