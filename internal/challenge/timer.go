package challenge

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"health_edu_backend/pkg/logger"
)

var (
	ErrTimerRunning  = errors.New("timer already running")
	ErrTimerNotFound = errors.New("timer not running")
)

// FinishFunc receives the elapsed seconds when a timer reaches its target.
// It runs on the timer's own goroutine.
type FinishFunc func(seconds int)

type timer struct {
	base    int
	target  int
	started time.Time
	quit    chan struct{}
	done    chan struct{}
}

// TimerRegistry owns one ticking timer per challenge instance. Running state
// lives only in memory; callers persist what Stop or the finish callback hand
// back.
type TimerRegistry struct {
	mu       sync.Mutex
	timers   map[string]*timer
	interval time.Duration
	now      func() time.Time
}

func NewTimerRegistry(interval time.Duration) *TimerRegistry {
	if interval <= 0 {
		interval = time.Second
	}
	return &TimerRegistry{
		timers:   make(map[string]*timer),
		interval: interval,
		now:      time.Now,
	}
}

// SetClock swaps the time source. Tests only.
func (r *TimerRegistry) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// Start begins counting from base seconds towards target. onFinish fires once
// if the target is reached before Stop or Cancel.
func (r *TimerRegistry) Start(instanceID string, base, target int, onFinish FinishFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.timers[instanceID]; ok {
		return ErrTimerRunning
	}
	t := &timer{
		base:    base,
		target:  target,
		started: r.now(),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	r.timers[instanceID] = t
	go r.run(instanceID, t, onFinish)
	return nil
}

func (r *TimerRegistry) run(instanceID string, t *timer, onFinish FinishFunc) {
	defer close(t.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.quit:
			return
		case <-ticker.C:
			r.mu.Lock()
			if r.timers[instanceID] != t {
				r.mu.Unlock()
				return
			}
			elapsed := t.base + r.elapsed(t)
			if elapsed < t.target {
				r.mu.Unlock()
				continue
			}
			delete(r.timers, instanceID)
			r.mu.Unlock()

			logger.Log.Debug("challenge timer reached target",
				zap.String("instance_id", instanceID),
				zap.Int("seconds", elapsed))
			if onFinish != nil {
				onFinish(elapsed)
			}
			return
		}
	}
}

// elapsed must be called with mu held.
func (r *TimerRegistry) elapsed(t *timer) int {
	d := r.now().Sub(t.started)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// Stop halts the timer and returns the total seconds to persist.
func (r *TimerRegistry) Stop(instanceID string) (int, error) {
	r.mu.Lock()
	t, ok := r.timers[instanceID]
	if !ok {
		r.mu.Unlock()
		return 0, ErrTimerNotFound
	}
	seconds := t.base + r.elapsed(t)
	delete(r.timers, instanceID)
	r.mu.Unlock()

	close(t.quit)
	<-t.done
	return seconds, nil
}

// Cancel halts the timer and discards the elapsed time.
func (r *TimerRegistry) Cancel(instanceID string) bool {
	r.mu.Lock()
	t, ok := r.timers[instanceID]
	if ok {
		delete(r.timers, instanceID)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}
	close(t.quit)
	<-t.done
	return true
}

// Elapsed reports the live total for a running timer.
func (r *TimerRegistry) Elapsed(instanceID string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.timers[instanceID]
	if !ok {
		return 0, false
	}
	return t.base + r.elapsed(t), true
}

// Running lists the instance ids with a live timer.
func (r *TimerRegistry) Running() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.timers))
	for id := range r.timers {
		ids = append(ids, id)
	}
	return ids
}

// Close cancels every running timer.
func (r *TimerRegistry) Close() {
	for _, id := range r.Running() {
		r.Cancel(id)
	}
}
