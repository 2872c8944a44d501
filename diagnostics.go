package tmi

import (
	"log"
	"sync"
)

// Level is a diagnostic message's severity. Lower numbers are more severe;
// zero is delivered to every subscriber regardless of the minimum level it
// registered with.
type Level int

const (
	LevelError   Level = 0
	LevelWarning Level = 1
	LevelInfo    Level = 2
	LevelDebug   Level = 3
)

// DiagnosticSink receives one diagnostic message at a time. Sinks are
// called synchronously from the Worker goroutine and must not block.
type DiagnosticSink func(level Level, message string)

// Diagnostics is a small leveled pub/sub built on the standard logger, in
// the same spirit as Client.ErrorLog: an injectable *log.Logger that prints
// nothing when nil, generalized here to support more than one subscriber
// at a time.
type Diagnostics struct {
	mu   sync.Mutex
	log  *log.Logger
	subs map[int]subscription
	next int
}

type subscription struct {
	sink     DiagnosticSink
	minLevel Level
}

// NewDiagnostics returns a Diagnostics that also logs every message through
// logger. If logger is nil, messages are still delivered to subscribers but
// nothing is printed.
func NewDiagnostics(logger *log.Logger) *Diagnostics {
	return &Diagnostics{log: logger, subs: make(map[int]subscription)}
}

// Subscribe registers sink to receive every message at or below minLevel
// (i.e. minLevel or more severe), plus every Level-0 message regardless.
// The returned function unsubscribes sink; calling it more than once is a
// no-op.
func (d *Diagnostics) Subscribe(sink DiagnosticSink, minLevel Level) (unsubscribe func()) {
	d.mu.Lock()
	id := d.next
	d.next++
	d.subs[id] = subscription{sink: sink, minLevel: minLevel}
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.subs, id)
			d.mu.Unlock()
		})
	}
}

// emit delivers message to every subscriber whose minLevel admits it, and
// to the backing logger if one was given. Called only from the Worker
// goroutine, so message ordering matches the order events occurred in.
func (d *Diagnostics) emit(level Level, message string) {
	if d.log != nil {
		d.log.Println(message)
	}
	d.mu.Lock()
	subs := make([]subscription, 0, len(d.subs))
	for _, s := range d.subs {
		subs = append(subs, s)
	}
	d.mu.Unlock()

	for _, s := range subs {
		if level == LevelError || level <= s.minLevel {
			s.sink(level, message)
		}
	}
}
