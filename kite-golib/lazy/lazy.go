// Package lazy defers loading of shared read-only data until first use.
package lazy

import (
	"sync"
)

// Loader runs load at most once until Unload is called.
type Loader struct {
	load   func() error
	unload func()

	lock    sync.RWMutex
	once    sync.Once
	loadErr error
}

// NewLoader creates a new Loader. unload may be nil.
func NewLoader(load func() error, unload func()) *Loader {
	return &Loader{
		load:   load,
		unload: unload,
	}
}

// LoadAndLock ensures the data is loaded and holds it against Unload until Unlock is called.
// Unlock must only be called when LoadAndLock returned nil.
func (l *Loader) LoadAndLock() error {
	l.lock.RLock()
	locked := true
	defer func() {
		if locked {
			l.lock.RUnlock()
		}
	}()

	l.once.Do(func() { l.loadErr = l.load() })
	if l.loadErr != nil {
		return l.loadErr
	}
	locked = false
	return nil
}

// Load ensures the data is loaded without holding it.
func (l *Loader) Load() error {
	if err := l.LoadAndLock(); err != nil {
		return err
	}
	l.Unlock()
	return nil
}

// Unlock releases a hold taken by LoadAndLock
func (l *Loader) Unlock() {
	l.lock.RUnlock()
}

// Unload drops the data; the next LoadAndLock loads it again.
func (l *Loader) Unload() {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.once = sync.Once{}
	if l.unload != nil {
		l.unload()
	}
	l.loadErr = nil
}
