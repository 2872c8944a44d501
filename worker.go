package tmi

import (
	"sync"
	"time"

	"gopkg.in/tomb.v2"
)

// wakeInterval caps the Worker's condition-wait whenever an action is
// awaiting a response, so timeouts get re-checked at a steady cadence
// instead of only when new mailbox traffic arrives.
const wakeInterval = 50 * time.Millisecond

// mailbox is the FIFO shared between the Worker and every other goroutine
// that calls the public API or a Connection callback. wake is a buffered
// channel standing in for a condition variable with a timed wait, which
// the standard library's sync.Cond doesn't offer.
type mailbox struct {
	mu    sync.Mutex
	queue []Action
	wake  chan struct{}
	stop  bool
}

func newMailbox() *mailbox {
	return &mailbox{wake: make(chan struct{}, 1)}
}

func (m *mailbox) push(a Action) {
	m.mu.Lock()
	m.queue = append(m.queue, a)
	m.mu.Unlock()
	m.signal()
}

func (m *mailbox) requestStop() {
	m.mu.Lock()
	m.stop = true
	m.mu.Unlock()
	m.signal()
}

func (m *mailbox) signal() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *mailbox) pop() (Action, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return Action{}, false
	}
	a := m.queue[0]
	m.queue = m.queue[1:]
	return a, true
}

func (m *mailbox) stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// Worker runs the single goroutine that owns sessionState. Its lifecycle is
// supervised by a tomb.Tomb (in the style of demfloro-ircfw's use of the
// same package) rather than a hand-rolled done-channel/error pair; the
// mailbox itself remains the mutex+condition+FIFO design the concurrency
// model calls for — tomb only replaces the goroutine bookkeeping around it.
type Worker struct {
	mailbox    *mailbox
	session    *sessionState
	timeKeeper TimeKeeper
	t          tomb.Tomb
}

func newWorker(session *sessionState, timeKeeper TimeKeeper) *Worker {
	w := &Worker{
		mailbox:    newMailbox(),
		session:    session,
		timeKeeper: timeKeeper,
	}
	session.enqueue = w.enqueue
	w.t.Go(w.run)
	return w
}

// enqueue appends a to the mailbox and wakes the Worker. Safe to call from
// any goroutine.
func (w *Worker) enqueue(a Action) {
	w.mailbox.push(a)
}

// close requests the Worker to stop, waits for it to exit, and propagates
// any error from run (always nil in practice, since run never returns one).
// Actions still queued when the stop request is seen are not performed.
func (w *Worker) close() error {
	w.mailbox.requestStop()
	w.t.Kill(nil)
	return w.t.Wait()
}

func (w *Worker) run() error {
	for {
		w.session.sweepTimeouts(w.timeKeeper.Now())

		for !w.mailbox.stopped() {
			a, ok := w.mailbox.pop()
			if !ok {
				break
			}
			w.perform(a)
		}

		if w.mailbox.stopped() {
			return nil
		}

		var timeout <-chan time.Time
		if len(w.session.awaiting) > 0 {
			timeout = time.After(wakeInterval)
		}

		select {
		case <-w.mailbox.wake:
		case <-timeout:
		}
	}
}

func (w *Worker) perform(a Action) {
	performer, ok := actionPerformers[a.Type]
	if !ok {
		w.session.diagnose(LevelDebug, "no performer registered for action")
		return
	}
	performer(w.session, &a)
}
