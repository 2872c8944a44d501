package tmi

import (
	"fmt"
	"log"
	"math/rand/v2"
)

// Engine is the embedder-facing handle on a TMI session: construct one with
// NewEngine, drive it with LogIn/Join/SendMessage/etc., and read events
// back through the User given to NewEngine. Every method is safe to call
// from any goroutine; the work itself always runs on the Worker.
type Engine struct {
	connFactory ConnectionFactory
	timeKeeper  TimeKeeper
	user        User
	diag        *Diagnostics
	worker      *Worker
}

// Option configures an Engine at construction time. There is no equivalent
// of calling setConnectionFactory/setTimeKeeper/setUser after the fact:
// the Worker goroutine starts inside NewEngine and these capabilities are
// exactly the Worker-exclusive state it owns from then on.
type Option func(*Engine)

// WithConnectionFactory overrides the default TLS connection factory
// (irc.chat.twitch.tv:6697).
func WithConnectionFactory(f ConnectionFactory) Option {
	return func(e *Engine) { e.connFactory = f }
}

// WithTimeKeeper overrides the default system-clock TimeKeeper. Tests use
// this to inject a controllable clock.
func WithTimeKeeper(tk TimeKeeper) Option {
	return func(e *Engine) { e.timeKeeper = tk }
}

// WithUser sets the event sink. Omitting this leaves every event silently
// discarded rather than panicking on a nil interface.
func WithUser(u User) Option {
	return func(e *Engine) { e.user = u }
}

// WithDiagnosticsLogger routes every diagnostic message through logger, in
// addition to any subscribers registered with SubscribeToDiagnostics.
func WithDiagnosticsLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.diag = NewDiagnostics(logger) }
}

// NewEngine constructs an Engine and starts its Worker goroutine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.connFactory == nil {
		e.connFactory = NewTLSConnection("irc.chat.twitch.tv:6697")
	}
	if e.timeKeeper == nil {
		e.timeKeeper = realTimeKeeper{}
	}
	if e.user == nil {
		e.user = noopUser{}
	}
	if e.diag == nil {
		e.diag = NewDiagnostics(nil)
	}

	session := newSessionState(e.connFactory, e.timeKeeper, e.user, e.diag, nil)
	e.worker = newWorker(session, e.timeKeeper)
	return e
}

// LogIn begins an authenticated session as nickname, using token as the
// OAuth password.
func (e *Engine) LogIn(nickname, token string) {
	e.worker.enqueue(Action{Type: ActionLogIn, Nickname: nickname, Token: token})
}

// LogInAnonymously begins a read-mostly session under a random
// justinfan<N> nickname. No PASS is sent, and SendMessage/SendWhisper
// become silent no-ops for the rest of the session.
func (e *Engine) LogInAnonymously() {
	e.worker.enqueue(Action{
		Type:      ActionLogIn,
		Nickname:  generateAnonymousNickname(),
		Anonymous: true,
	})
}

// generateAnonymousNickname mirrors the original client's use of a
// pseudo-random integer for the "justinfan" nickname; this is not a
// security boundary, so math/rand/v2 is fine.
func generateAnonymousNickname() string {
	return fmt.Sprintf("justinfan%d", rand.IntN(100000000))
}

// LogOut ends the session. If farewell is non-empty it is sent to the
// server as the QUIT reason.
func (e *Engine) LogOut(farewell string) {
	e.worker.enqueue(Action{Type: ActionLogOut, Message: farewell})
}

// Join requests membership in channel, given without its leading '#'.
func (e *Engine) Join(channel string) {
	e.worker.enqueue(Action{Type: ActionJoin, Channel: channel})
}

// Leave departs channel, given without its leading '#'.
func (e *Engine) Leave(channel string) {
	e.worker.enqueue(Action{Type: ActionLeave, Channel: channel})
}

// SendMessage sends content to channel, given without its leading '#'.
// Silently dropped if the session is anonymous.
func (e *Engine) SendMessage(channel, content string) {
	e.worker.enqueue(Action{Type: ActionSendMessage, Channel: channel, Message: content})
}

// SendWhisper sends content to nickname as a whisper. Silently dropped if
// the session is anonymous.
func (e *Engine) SendWhisper(nickname, content string) {
	e.worker.enqueue(Action{Type: ActionSendWhisper, Channel: nickname, Message: content})
}

// SubscribeToDiagnostics registers sink for every diagnostic message at or
// more severe than minLevel. The returned function unsubscribes it.
func (e *Engine) SubscribeToDiagnostics(sink DiagnosticSink, minLevel Level) (unsubscribe func()) {
	return e.diag.Subscribe(sink, minLevel)
}

// Close stops the Worker goroutine and waits for it to exit. Any actions
// still in the mailbox are dropped; no further User callbacks fire once
// Close returns.
func (e *Engine) Close() error {
	return e.worker.close()
}

// noopUser is the default User when none is supplied: every event is
// silently discarded instead of panicking on a nil interface.
type noopUser struct{}

func (noopUser) Doom()                             {}
func (noopUser) LogIn()                            {}
func (noopUser) LogOut()                           {}
func (noopUser) Join(MembershipInfo)               {}
func (noopUser) Leave(MembershipInfo)              {}
func (noopUser) Message(MessageInfo)               {}
func (noopUser) PrivateMessage(MessageInfo)        {}
func (noopUser) Whisper(WhisperInfo)               {}
func (noopUser) Notice(NoticeInfo)                 {}
func (noopUser) Host(HostInfo)                     {}
func (noopUser) RoomModeChange(RoomModeChangeInfo) {}
func (noopUser) Clear(ClearInfo)                   {}
func (noopUser) Mod(ModInfo)                       {}
func (noopUser) UserState(UserStateInfo)           {}
func (noopUser) Sub(SubInfo)                       {}
func (noopUser) Raid(RaidInfo)                     {}
func (noopUser) Ritual(RitualInfo)                 {}
