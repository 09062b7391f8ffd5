// Package autosave persists work-in-progress answers on a fixed interval
// without user action. The coordinator is owned by one editing session,
// started when the session begins, and cancelled exactly once when it
// ends, so a stray save can never race a newly loaded assessment.
package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// State is the coordinator's lifecycle state
type State string

const (
	StateIdle      State = "idle"      // Constructed, timer not armed
	StateScheduled State = "scheduled" // Timer armed, waiting for a tick
	StateSaving    State = "saving"    // Save in flight
	StateCancelled State = "cancelled" // Torn down, terminal
)

// DefaultInterval is how often in-progress answers are persisted
const DefaultInterval = 15 * time.Second

// failureWarnThreshold is how many consecutive silent failures escalate
// to one visible warning
const failureWarnThreshold = 3

// SaveFunc persists the current answer snapshot.
type SaveFunc func(ctx context.Context) error

// Coordinator runs the autosave timer for one editing session. Failures
// are logged and swallowed: explicit save remains the visible feedback
// channel. A tick that fires while a save is still in flight is skipped,
// never queued.
type Coordinator struct {
	interval  time.Duration
	save      SaveFunc
	log       zerolog.Logger
	onWarning func(consecutiveFailures int)

	mu       sync.Mutex
	state    State
	inFlight bool
	failures int
	warned   bool
	cancel   context.CancelFunc
	done     chan struct{}
}

// New creates a coordinator. onWarning may be nil; when set it is invoked
// once per failure streak after failureWarnThreshold consecutive
// failures.
func New(save SaveFunc, interval time.Duration, log zerolog.Logger, onWarning func(int)) *Coordinator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Coordinator{
		interval:  interval,
		save:      save,
		log:       log.With().Str("component", "autosave").Logger(),
		onWarning: onWarning,
		state:     StateIdle,
		done:      make(chan struct{}),
	}
}

// Start arms the timer. Starting twice, or after Stop, is a no-op.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = StateScheduled
	go c.run(runCtx)
}

// Stop tears the timer down and waits for the loop to exit. Idempotent.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if c.cancel == nil || c.state == StateCancelled {
		if c.state == StateIdle {
			// Never started: nothing to wait for
			c.state = StateCancelled
		}
		c.mu.Unlock()
		return
	}
	cancel := c.cancel
	c.mu.Unlock()

	cancel()
	<-c.done
}

// CurrentState returns the coordinator state.
func (c *Coordinator) CurrentState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ConsecutiveFailures returns the length of the current failure streak.
func (c *Coordinator) ConsecutiveFailures() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failures
}

func (c *Coordinator) run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			c.state = StateCancelled
			c.mu.Unlock()
			return
		case <-ticker.C:
			c.tick(ctx)
		}
	}
}

// tick runs one save attempt unless one is already in flight.
func (c *Coordinator) tick(ctx context.Context) {
	c.mu.Lock()
	if c.inFlight || c.state == StateCancelled {
		c.mu.Unlock()
		c.log.Debug().Msg("autosave tick skipped, save in flight")
		return
	}
	c.inFlight = true
	c.state = StateSaving
	c.mu.Unlock()

	go func() {
		err := c.save(ctx)

		c.mu.Lock()
		c.inFlight = false
		if c.state != StateCancelled {
			c.state = StateScheduled
		}

		warnAt := 0
		if err != nil {
			c.failures++
			c.log.Warn().Err(err).Int("consecutiveFailures", c.failures).Msg("autosave failed")
			if c.failures >= failureWarnThreshold && !c.warned {
				c.warned = true
				warnAt = c.failures
			}
		} else {
			c.failures = 0
			c.warned = false
		}
		c.mu.Unlock()

		if warnAt > 0 && c.onWarning != nil {
			c.onWarning(warnAt)
		}
	}()
}
