// @lixen: #focus{sys[loop,input]}
package editor

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/rudolf/constant"
	"github.com/lixenwraith/rudolf/input"
	"github.com/lixenwraith/rudolf/render"
	"github.com/lixenwraith/rudolf/status"
	"github.com/lixenwraith/rudolf/terminal"
)

// EventSource yields decoded key events with a bounded wait
type EventSource interface {
	PollEvent(timeout time.Duration) (terminal.Event, bool, error)
}

// EdgeNotifier is told when a cursor move is blocked at the viewport edge
type EdgeNotifier interface {
	Notify()
}

// Options configures an Editor; zero values select defaults
type Options struct {
	PollInterval time.Duration
	Keymap       *input.Keymap
	Notifier     EdgeNotifier
	Metrics      *status.Registry
}

// Editor runs the render-then-wait dispatch loop
type Editor struct {
	output  *render.Output
	source  EventSource
	keymap  *input.Keymap
	machine *input.Machine

	notifier EdgeNotifier
	poll     time.Duration

	metrics      *status.Registry
	frames       *atomic.Int64
	keys         *atomic.Int64
	unrecognized *atomic.Int64
	moves        *atomic.Int64
	blocked      *atomic.Int64
	idle         *atomic.Int64
}

// New creates an editor drawing to output and reading from source
func New(output *render.Output, source EventSource, opts Options) *Editor {
	if opts.PollInterval <= 0 {
		opts.PollInterval = constant.PollInterval
	}
	if opts.Keymap == nil {
		opts.Keymap = input.DefaultKeymap()
	}
	if opts.Metrics == nil {
		opts.Metrics = status.NewRegistry()
	}

	m := opts.Metrics
	return &Editor{
		output:       output,
		source:       source,
		keymap:       opts.Keymap,
		machine:      input.NewMachine(output),
		notifier:     opts.Notifier,
		poll:         opts.PollInterval,
		metrics:      m,
		frames:       m.Counter(status.Frames),
		keys:         m.Counter(status.Keys),
		unrecognized: m.Counter(status.Unrecognized),
		moves:        m.Counter(status.Moves),
		blocked:      m.Counter(status.Blocked),
		idle:         m.Counter(status.PollIdle),
	}
}

// State returns the dispatch state
func (e *Editor) State() input.State { return e.machine.State() }

// Metrics returns the run counters
func (e *Editor) Metrics() *status.Registry { return e.metrics }

// Run renders a frame, waits for one key and dispatches it until quit
// Returns nil on quit or context cancellation
func (e *Editor) Run(ctx context.Context) error {
	for e.machine.State() == input.StateRunning {
		if err := e.output.RenderFrame(); err != nil {
			return fmt.Errorf("render frame: %w", err)
		}
		e.frames.Add(1)

		ev, ok, err := e.readKey(ctx)
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		if !ok {
			log.Printf("editor: run cancelled: %v", ctx.Err())
			return nil
		}

		e.Dispatch(e.keymap.Classify(ev))
	}
	return nil
}

// Dispatch applies one intent and returns the resulting state
func (e *Editor) Dispatch(in input.Intent) input.State {
	switch e.machine.Dispatch(in) {
	case input.OutcomeMoved:
		e.moves.Add(1)
	case input.OutcomeBlocked:
		e.blocked.Add(1)
		if e.notifier != nil {
			e.notifier.Notify()
		}
	case input.OutcomeIgnored:
		if e.machine.State() == input.StateRunning {
			e.unrecognized.Add(1)
		}
	case input.OutcomeQuit:
		log.Printf("editor: quit requested")
	}
	return e.machine.State()
}

// readKey polls until an event arrives; false means ctx ended first
func (e *Editor) readKey(ctx context.Context) (terminal.Event, bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return terminal.Event{}, false, nil
		}

		ev, ok, err := e.source.PollEvent(e.poll)
		if err != nil {
			return terminal.Event{}, false, err
		}
		if ok {
			e.keys.Add(1)
			return ev, true, nil
		}
		e.idle.Add(1)
	}
}
