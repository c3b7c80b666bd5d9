// Command blochterm draws a qubit's Bloch-sphere animation in the terminal.
//
// Keys x, y, z, s, t and h apply gates, e toggles sampled estimates, r
// resets and q or Esc quits.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"

	"github.com/theapemachine/qbloch"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var gates string
	var duration time.Duration
	var estimates bool

	flagSet := pflag.NewFlagSet("blochterm", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to a YAML config file")
	flagSet.StringVar(&gates, "gates", "", "comma-separated gates to apply on start, e.g. H,T,X")
	flagSet.DurationVar(&duration, "duration", 0, "rotation duration per gate (overrides config)")
	flagSet.BoolVar(&estimates, "estimates", false, "show sampled measurement estimates")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	config := qbloch.NewConfig()
	if configPath != "" {
		loaded, err := qbloch.LoadConfig(configPath)
		if err != nil {
			return err
		}
		config = loaded
	}
	if duration > 0 {
		config.RotationDuration = duration
	}
	if estimates {
		config.ShowEstimates = true
	}
	if err := config.Validate(); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broadcaster := qbloch.NewBroadcaster()
	defer broadcaster.Close()

	status := &statusLine{}
	view := qbloch.NewView(
		qbloch.WithConfig(config),
		qbloch.WithScheduler(qbloch.NewTickerScheduler(ctx, config.FrameInterval)),
		qbloch.WithRenderer(broadcaster),
		qbloch.WithDiagnostics(status),
	)

	canvas := newCanvas(screen, view, status)
	frames := broadcaster.Subscribe("terminal", 64, nil)

	go func() {
		for frame := range frames {
			canvas.apply(frame)
		}
	}()

	for _, name := range strings.Split(gates, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		_ = view.Apply(name)
	}

	canvas.draw()

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			canvas.draw()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return nil
			}
			if ev.Key() != tcell.KeyRune {
				continue
			}

			switch r := ev.Rune(); r {
			case 'q', 'Q':
				return nil
			case 'r', 'R':
				view.Reset()
			case 'e', 'E':
				canvas.toggleEstimates()
			default:
				_ = view.Apply(string(r))
			}

			canvas.draw()
		}
	}
}
