// FILE: loggen/src/internal/generator/generator.go
package generator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"loggen/src/internal/catalog"
	"loggen/src/internal/core"
	"loggen/src/internal/format"

	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"
)

// LineWriter persists one formatted line for a component.
type LineWriter interface {
	Write(line []byte) error
	Path() string
}

// Settings is the immutable per-component configuration of a generator.
type Settings struct {
	Component catalog.Component
	Levels    []string
	MinDelay  time.Duration
	MaxDelay  time.Duration

	// Zero draws a random seed
	Seed uint64
}

// Deps are the collaborators a generator writes through.
type Deps struct {
	Formatter format.Formatter
	Writer    LineWriter

	// Optional cap shared by all generators
	Limiter *rate.Limiter
	Logger  *log.Logger

	// Optional clock, time.Now when nil
	Now func() time.Time
}

// Generator produces entries for a single component until its context is
// cancelled. The random source is owned by the Run goroutine.
type Generator struct {
	settings  Settings
	formatter format.Formatter
	writer    LineWriter
	limiter   *rate.Limiter
	logger    *log.Logger
	now       func() time.Time
	rng       *rand.Rand

	state atomic.Int32

	// Statistics
	totalGenerated atomic.Uint64
	totalWritten   atomic.Uint64
	totalFailed    atomic.Uint64
	lastEntry      atomic.Value // time.Time
}

// Stats is a snapshot of a generator's counters.
type Stats struct {
	Component      string
	Path           string
	State          State
	TotalGenerated uint64
	TotalWritten   uint64
	TotalFailed    uint64
	LastEntry      time.Time
}

// New validates the settings and builds a stopped generator.
func New(settings Settings, deps Deps) (*Generator, error) {
	if settings.Component.Name == "" {
		return nil, fmt.Errorf("generator requires a component name")
	}
	if len(settings.Component.Messages) == 0 {
		return nil, fmt.Errorf("component '%s': no messages", settings.Component.Name)
	}
	if len(settings.Levels) == 0 {
		return nil, fmt.Errorf("component '%s': no severity levels", settings.Component.Name)
	}
	if settings.MinDelay <= 0 || settings.MaxDelay < settings.MinDelay {
		return nil, fmt.Errorf("component '%s': invalid delay range [%s, %s]",
			settings.Component.Name, settings.MinDelay, settings.MaxDelay)
	}
	if deps.Formatter == nil || deps.Writer == nil || deps.Logger == nil {
		return nil, fmt.Errorf("component '%s': formatter, writer and logger are required", settings.Component.Name)
	}

	// Private copies keep the settings immutable
	settings.Component.Messages = append([]string(nil), settings.Component.Messages...)
	settings.Levels = append([]string(nil), settings.Levels...)

	seed := settings.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	g := &Generator{
		settings:  settings,
		formatter: deps.Formatter,
		writer:    deps.Writer,
		limiter:   deps.Limiter,
		logger:    deps.Logger,
		now:       now,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	g.lastEntry.Store(time.Time{})
	return g, nil
}

// Run generates entries until ctx is cancelled. Write failures are logged and
// the loop moves on to the next cycle.
func (g *Generator) Run(ctx context.Context) error {
	if !g.state.CompareAndSwap(int32(StateStopped), int32(StateRunning)) {
		return fmt.Errorf("generator '%s' is already running", g.settings.Component.Name)
	}
	defer g.state.Store(int32(StateStopped))

	g.logger.Info("msg", "Generator started",
		"component", "generator",
		"source", g.settings.Component.Name,
		"path", g.writer.Path())

	for {
		if ctx.Err() != nil {
			break
		}

		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				break
			}
		}

		g.cycle()

		timer := time.NewTimer(g.nextDelay())
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}

	g.logger.Info("msg", "Generator stopped",
		"component", "generator",
		"source", g.settings.Component.Name,
		"generated", g.totalGenerated.Load())
	return nil
}

// cycle builds, formats and writes one entry.
func (g *Generator) cycle() {
	entry := g.NextEntry(g.now())
	g.totalGenerated.Add(1)

	line, err := g.formatter.Format(entry)
	if err != nil {
		g.totalFailed.Add(1)
		g.logger.Error("msg", "Failed to format log entry",
			"component", "generator",
			"source", g.settings.Component.Name,
			"error", err)
		return
	}

	if err := g.writer.Write(line); err != nil {
		g.totalFailed.Add(1)
		g.logger.Error("msg", "Failed to write log entry",
			"component", "generator",
			"source", g.settings.Component.Name,
			"path", g.writer.Path(),
			"error", err)
		return
	}

	g.totalWritten.Add(1)
	g.lastEntry.Store(entry.Time)
}

// NextEntry draws a level, a message and, for JSON components, the numeric
// fields. Not safe for use concurrently with Run.
func (g *Generator) NextEntry(now time.Time) core.LogEntry {
	comp := g.settings.Component
	entry := core.LogEntry{
		Time:      now,
		Level:     g.settings.Levels[g.rng.IntN(len(g.settings.Levels))],
		Component: comp.Name,
		Message:   comp.Messages[g.rng.IntN(len(comp.Messages))],
	}

	if comp.Format == core.FormatJSON {
		entry.TransactionID = g.intInRange(core.TransactionIDMin, core.TransactionIDMax)
		entry.UserID = g.intInRange(core.UserIDMin, core.UserIDMax)
	}
	return entry
}

// nextDelay draws a duration uniformly from [MinDelay, MaxDelay].
func (g *Generator) nextDelay() time.Duration {
	span := int64(g.settings.MaxDelay - g.settings.MinDelay)
	return g.settings.MinDelay + time.Duration(g.rng.Int64N(span+1))
}

func (g *Generator) intInRange(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) Name() string {
	return g.settings.Component.Name
}

func (g *Generator) Path() string {
	return g.writer.Path()
}

func (g *Generator) State() State {
	return State(g.state.Load())
}

func (g *Generator) GetStats() Stats {
	last, _ := g.lastEntry.Load().(time.Time)
	return Stats{
		Component:      g.settings.Component.Name,
		Path:           g.writer.Path(),
		State:          g.State(),
		TotalGenerated: g.totalGenerated.Load(),
		TotalWritten:   g.totalWritten.Load(),
		TotalFailed:    g.totalFailed.Load(),
		LastEntry:      last,
	}
}
