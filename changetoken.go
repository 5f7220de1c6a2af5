package vfs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// ChangeToken signals a single change below a watched root. Once changed a
// token stays changed; watch again for the next change.
type ChangeToken interface {
	// HasChanged reports whether a change has happened.
	HasChanged() bool
	// ActiveChangeCallbacks reports whether registered callbacks are
	// invoked. When false, callers must poll HasChanged.
	ActiveChangeCallbacks() bool
	// RegisterChangeCallback adds a callback run once on change. A callback
	// registered after the change runs immediately.
	RegisterChangeCallback(callback func()) (unregister func())
}

// callbackList is the registration and firing logic shared by tokens.
type callbackList struct {
	mu        sync.Mutex
	changed   atomic.Bool
	callbacks map[int]func()
	next      int
}

func (l *callbackList) HasChanged() bool {
	return l.changed.Load()
}

func (l *callbackList) RegisterChangeCallback(callback func()) (unregister func()) {
	l.mu.Lock()
	if l.changed.Load() {
		l.mu.Unlock()
		callback()
		return func() {}
	}
	if l.callbacks == nil {
		l.callbacks = make(map[int]func())
	}
	id := l.next
	l.next++
	l.callbacks[id] = callback
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.callbacks, id)
		l.mu.Unlock()
	}
}

// fire marks the change and runs the callbacks outside the lock. Only the
// first call has an effect.
func (l *callbackList) fire() {
	l.mu.Lock()
	if l.changed.Swap(true) {
		l.mu.Unlock()
		return
	}
	pending := make([]func(), 0, len(l.callbacks))
	for _, cb := range l.callbacks {
		pending = append(pending, cb)
	}
	l.callbacks = nil
	l.mu.Unlock()

	for _, cb := range pending {
		cb()
	}
}

// CallbackChangeToken is fired by whoever observes the change, typically a
// filesystem event loop.
type CallbackChangeToken struct {
	callbackList
}

var _ ChangeToken = (*CallbackChangeToken)(nil)

// NewCallbackChangeToken returns an unchanged token.
func NewCallbackChangeToken() *CallbackChangeToken {
	return &CallbackChangeToken{}
}

func (t *CallbackChangeToken) ActiveChangeCallbacks() bool { return true }

// SignalChange marks the token changed and runs its callbacks.
func (t *CallbackChangeToken) SignalChange() {
	t.fire()
}

// PollingConfig configures a PollingChangeToken.
type PollingConfig struct {
	// Interval between checks (default: 2 seconds)
	Interval time.Duration
	// CheckFunc returns true once a change is detected
	CheckFunc func() bool
}

// PollingChangeToken checks for a change at a fixed interval. It is used
// where no change events exist, such as the members of an archive.
//
// The polling goroutine ends on the first change, when ctx is done, or on
// Stop.
type PollingChangeToken struct {
	callbackList
	cancel context.CancelFunc
}

var _ ChangeToken = (*PollingChangeToken)(nil)

// NewPollingChangeToken starts polling cfg.CheckFunc.
func NewPollingChangeToken(ctx context.Context, cfg PollingConfig) *PollingChangeToken {
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	ctx, cancel := context.WithCancel(ctx)
	t := &PollingChangeToken{cancel: cancel}
	go t.poll(ctx, cfg)
	return t
}

func (t *PollingChangeToken) poll(ctx context.Context, cfg PollingConfig) {
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if cfg.CheckFunc != nil && cfg.CheckFunc() {
				t.fire()
				return
			}
		}
	}
}

func (t *PollingChangeToken) ActiveChangeCallbacks() bool { return true }

// Stop ends polling. It is safe to call more than once.
func (t *PollingChangeToken) Stop() {
	t.cancel()
}

// OnChange runs action after every change, asking produce for a fresh token
// each time. It stops when produce fails or cancel is called.
func OnChange(produce func() (ChangeToken, error), action func()) (cancel func()) {
	ctx, cancelFunc := context.WithCancel(context.Background())

	go func() {
		for {
			token, err := produce()
			if err != nil {
				return
			}

			done := make(chan struct{})
			var once sync.Once
			unregister := token.RegisterChangeCallback(func() {
				once.Do(func() { close(done) })
			})

			select {
			case <-ctx.Done():
				unregister()
				return
			case <-done:
				unregister()
				action()
			}
		}
	}()

	return cancelFunc
}
