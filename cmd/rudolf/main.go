package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/lixenwraith/rudolf/audio"
	"github.com/lixenwraith/rudolf/config"
	"github.com/lixenwraith/rudolf/constant"
	"github.com/lixenwraith/rudolf/editor"
	"github.com/lixenwraith/rudolf/navigation"
	"github.com/lixenwraith/rudolf/render"
	"github.com/lixenwraith/rudolf/status"
	"github.com/lixenwraith/rudolf/terminal"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	// Panic Recovery: Ensure terminal is reset even if the editor crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)

			// Print error and stack trace to stderr so it's visible after reset
			fmt.Fprintf(os.Stderr, "\n\x1b[31mRUDOLF CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			code = 1
		}
	}()

	cfg, err := config.Load(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", constant.AppName, err)
		return 2
	}

	if logFile := setupLogging(cfg.LogDir, cfg.Debug); logFile != nil {
		defer logFile.Close()
	}
	log.Printf("rudolf %s starting: backend=%s poll=%v config=%q", constant.Version, cfg.Backend, cfg.PollInterval, cfg.Path)

	backend, err := terminal.NewBackend(cfg.Backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open terminal: %v\n", err)
		return 1
	}
	term := terminal.New(backend)

	// Viewport is fixed for the run; size failure aborts before raw mode
	w, h, err := term.Size()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to query terminal size: %v\n", err)
		return 2
	}
	vp, err := navigation.NewViewport(w, h)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unusable terminal size: %v\n", err)
		return 2
	}

	opts := render.DefaultOptions()
	opts.Welcome = cfg.Welcome
	opts.Marker = cfg.Marker
	output, err := render.NewOutput(term, vp, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
		return 1
	}

	keymap, err := cfg.Keymap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", constant.AppName, err)
		return 2
	}

	// Audio is optional, the editor runs silent without it
	var notifier editor.EdgeNotifier
	if cfg.Sound {
		cue := audio.NewEdgeCue(audio.DefaultCueConfig())
		if err := cue.Init(); err != nil {
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		} else {
			notifier = cue
			defer cue.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	// Normal exit terminal cleanup
	defer term.Fini()

	metrics := status.NewRegistry()
	ed := editor.New(output, term, editor.Options{
		PollInterval: cfg.PollInterval,
		Keymap:       keymap,
		Notifier:     notifier,
		Metrics:      metrics,
	})

	runErr := ed.Run(ctx)
	if err := output.ClearScreen(); err != nil {
		log.Printf("clear screen: %v", err)
	}
	log.Printf("rudolf exiting: %s", metrics)

	if runErr != nil {
		// Restore the tty before reporting so the message is readable
		term.Fini()
		fmt.Fprintf(os.Stderr, "%s: %v\n", constant.AppName, runErr)
		return 1
	}
	return 0
}
