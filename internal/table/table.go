package table

import (
	"log"
	"sync"
	"time"

	"influence/internal/game"
)

// Table owns one game session and is the only writer to it. Commands run
// one at a time under the table lock; response windows are closed by a
// timer armed from the session deadline.
type Table struct {
	code string

	mu         sync.Mutex
	session    *game.Session
	version    uint64
	lastActive time.Time
	closed     bool

	timer    *time.Timer
	timerGen uint64
	armedFor time.Time

	subMu       sync.RWMutex
	subscribers map[chan uint64]struct{}
}

// New creates a table in the lobby
func New(code string, rules game.Rules, opts ...game.Option) *Table {
	return &Table{
		code:        code,
		session:     game.NewSession(rules, opts...),
		lastActive:  time.Now(),
		subscribers: make(map[chan uint64]struct{}),
	}
}

// Code returns the table's join code
func (t *Table) Code() string { return t.code }

// Do runs a command against the session. A command that returns an error
// leaves the session untouched, so nothing is published.
func (t *Table) Do(cmd func(s *game.Session) error) (uint64, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0, ErrClosed
	}
	t.lastActive = time.Now()
	if err := cmd(t.session); err != nil {
		v := t.version
		t.mu.Unlock()
		return v, err
	}
	v := t.changedLocked()
	t.mu.Unlock()

	t.publish(v)
	return v, nil
}

// Read gives fn consistent access to the session without counting as a change
func (t *Table) Read(fn func(s *game.Session)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.session)
}

// Snapshot returns the view for one viewer and the version it reflects
func (t *Table) Snapshot(viewerID string) (game.View, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.View(viewerID), t.version
}

// Events returns the session log from since onward
func (t *Table) Events(since int) []game.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.Events(since)
}

// Version counts the changes applied to the session
func (t *Table) Version() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.version
}

// LastActive returns when the last command arrived
func (t *Table) LastActive() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastActive
}

// changedLocked bumps the version and re-arms the window timer
func (t *Table) changedLocked() uint64 {
	t.version++
	t.armLocked()
	return t.version
}

func (t *Table) armLocked() {
	deadline, open := t.session.Deadline()
	if open && deadline.Equal(t.armedFor) && t.timer != nil {
		return
	}
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.timerGen++
	t.armedFor = time.Time{}
	if !open {
		return
	}

	gen := t.timerGen
	t.armedFor = deadline
	t.timer = time.AfterFunc(max(0, time.Until(deadline)), func() { t.expire(gen) })
}

// expire closes the response window the timer was armed for. A timer
// that lost the race against a player command finds a newer generation
// and does nothing.
func (t *Table) expire(gen uint64) {
	t.mu.Lock()
	if t.closed || gen != t.timerGen {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.armedFor = time.Time{}
	if !t.session.CompleteAction() {
		t.mu.Unlock()
		return
	}
	v := t.changedLocked()
	t.mu.Unlock()

	log.Printf("⏱️ Table %s: response window closed (v%d)", t.code, v)
	t.publish(v)
}

// Subscribe returns a channel that receives the new version after every
// change. Notifications coalesce: a slow reader sees only the latest.
func (t *Table) Subscribe() (<-chan uint64, func()) {
	t.subMu.Lock()
	defer t.subMu.Unlock()

	ch := make(chan uint64, 1)
	if t.subscribers == nil {
		close(ch)
		return ch, func() {}
	}
	t.subscribers[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() { t.unsubscribe(ch) })
	}
}

func (t *Table) unsubscribe(ch chan uint64) {
	t.subMu.Lock()
	defer t.subMu.Unlock()
	if _, ok := t.subscribers[ch]; ok {
		delete(t.subscribers, ch)
		close(ch)
	}
}

// Subscribers returns the number of open subscriptions
func (t *Table) Subscribers() int {
	t.subMu.RLock()
	defer t.subMu.RUnlock()
	return len(t.subscribers)
}

func (t *Table) publish(v uint64) {
	t.subMu.RLock()
	defer t.subMu.RUnlock()

	for ch := range t.subscribers {
		select {
		case ch <- v:
		default:
			// Drop the stale version so the reader wakes to the newest one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}

// Close stops the window timer and ends every subscription
func (t *Table) Close() {
	t.mu.Lock()
	t.closed = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.timerGen++
	t.mu.Unlock()

	t.subMu.Lock()
	defer t.subMu.Unlock()
	for ch := range t.subscribers {
		close(ch)
	}
	t.subscribers = nil
}
