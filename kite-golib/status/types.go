package status

import (
	"sync"
	"sync/atomic"
)

// Counter is a basic counter metric
type Counter struct {
	Value int64
}

func newCounter() *Counter {
	return &Counter{}
}

// Add increments the counter by delta
func (c *Counter) Add(delta int64) {
	atomic.AddInt64(&c.Value, delta)
}

// Set sets the counter to val
func (c *Counter) Set(val int64) {
	atomic.StoreInt64(&c.Value, val)
}

// GetValue returns the current count
func (c *Counter) GetValue() int64 {
	return atomic.LoadInt64(&c.Value)
}

// Ratio reports the percentage of events that were hits.
type Ratio struct {
	Numerator   int64
	Denominator int64
}

func newRatio() *Ratio {
	return &Ratio{}
}

// Hit counts a hit
func (r *Ratio) Hit() {
	atomic.AddInt64(&r.Numerator, 1)
	atomic.AddInt64(&r.Denominator, 1)
}

// Miss counts a miss
func (r *Ratio) Miss() {
	atomic.AddInt64(&r.Denominator, 1)
}

// Value returns the current ratio as a percentage.
func (r *Ratio) Value() float64 {
	numerator, denominator := atomic.LoadInt64(&r.Numerator), atomic.LoadInt64(&r.Denominator)
	if denominator == 0 {
		return 0
	}
	return 100.0 * float64(numerator) / float64(denominator)
}

// Breakdown shows how often each category of some event occurs.
// Categories are added on first hit.
type Breakdown struct {
	rw          sync.RWMutex
	Categories  []string
	Numerators  []int64
	Denominator int64
}

func newBreakdown() *Breakdown {
	return &Breakdown{}
}

// HitAndAdd counts one event in the named category, creating the category if needed.
func (b *Breakdown) HitAndAdd(name string) {
	b.rw.RLock()
	for idx, c := range b.Categories {
		if c == name {
			atomic.AddInt64(&b.Numerators[idx], 1)
			atomic.AddInt64(&b.Denominator, 1)
			b.rw.RUnlock()
			return
		}
	}
	b.rw.RUnlock()

	b.rw.Lock()
	defer b.rw.Unlock()
	for idx, c := range b.Categories {
		if c == name {
			b.Numerators[idx]++
			b.Denominator++
			return
		}
	}
	b.Categories = append(b.Categories, name)
	b.Numerators = append(b.Numerators, 1)
	b.Denominator++
}

// Value returns a map of category to percentage value.
func (b *Breakdown) Value() map[string]float64 {
	b.rw.RLock()
	defer b.rw.RUnlock()

	values := make(map[string]float64)
	total := atomic.LoadInt64(&b.Denominator)
	for idx, c := range b.Categories {
		if total == 0 {
			values[c] = 0
			continue
		}
		values[c] = 100.0 * float64(atomic.LoadInt64(&b.Numerators[idx])) / float64(total)
	}
	return values
}
