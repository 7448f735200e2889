package timer

import (
	"sync"
	"time"
)

// Interval runs a callback every period on its own goroutine between Start and Stop.
// Callbacks of one run never overlap.
type Interval struct {
	clock  Clock
	period time.Duration

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewInterval builds an Interval; it does nothing until Start is called.
func NewInterval(clock Clock, period time.Duration) *Interval {
	if clock == nil {
		clock = RealClock()
	}
	return &Interval{clock: clock, period: period}
}

// Start begins a run calling fn on every tick. It is a no-op while already running.
func (iv *Interval) Start(fn func()) {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	if iv.stop != nil {
		return
	}
	stop := make(chan struct{})
	iv.stop = stop
	ticker := iv.clock.NewTicker(iv.period)
	iv.wg.Add(1)
	go iv.run(ticker, stop, fn)
}

// Stop signals the running goroutine to exit and returns immediately.
// It is idempotent and may be called from inside the callback.
func (iv *Interval) Stop() {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	if iv.stop == nil {
		return
	}
	close(iv.stop)
	iv.stop = nil
}

// Wait blocks until every goroutine started by Start has exited.
// Never call it from inside the callback.
func (iv *Interval) Wait() {
	iv.wg.Wait()
}

// Running reports whether the interval is between Start and Stop.
func (iv *Interval) Running() bool {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	return iv.stop != nil
}

func (iv *Interval) run(ticker Ticker, stop <-chan struct{}, fn func()) {
	defer iv.wg.Done()
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			select {
			case <-stop:
				return
			default:
			}
			fn()
		}
	}
}
