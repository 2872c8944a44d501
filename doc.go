/*
Package tmi implements an embeddable client for Twitch's chat protocol
(TMI), an IRCv3-derived wire format layered with Twitch-specific @-tags
and pseudo-commands.

The package is split into four pieces, each small enough to reason about
on its own:

  - A wire codec (Parse, in lexer.go) that turns a byte buffer into one
    Message at a time, one CRLF-terminated line per call.
  - A tag decoder (decodeTags, in tags.go) that turns a raw IRCv3 tags
    string into a TagsInfo with the handful of Twitch tags that carry
    structured data (badges, emotes, color, timestamps, numeric IDs)
    parsed out, and everything else left as raw key/value pairs.
  - A session state machine (sessionState, in session.go) that owns the
    login handshake and the steady-state dispatch of server commands
    to User callbacks.
  - An action worker (Worker, in worker.go) that serializes every
    mutation of session state and every User callback onto a single
    goroutine, so embedders never need their own locking around this
    package's calls.

Embedders talk to the package through Engine. Construct one with
NewEngine and a User implementation, call LogIn or LogInAnonymously,
and then Join channels and send messages:

	user := myUserImpl{}
	e := tmi.NewEngine(tmi.WithUser(user))
	e.LogIn("myusername", "myoauthtoken")
	e.Join("somechannel")
	e.SendMessage("somechannel", "Hello!")
	defer e.Close()

Every Engine method is safe to call from any goroutine; the work itself
always happens on the Worker, and every User callback is delivered from
that same goroutine in the order the frames producing them arrived.

Connections

By default, Engine connects over TLS to irc.chat.twitch.tv:6697. An
embedder that wants Twitch's WebSocket endpoint instead, or a fake
connection for tests, supplies its own ConnectionFactory with
WithConnectionFactory; see the tmitest package for a connection double
meant for exactly that.

Anonymous sessions

LogInAnonymously begins a read-mostly session under a randomly
generated justinfan<N> nickname. No PASS is sent, and SendMessage and
SendWhisper become silent no-ops for the life of that session, since an
anonymous connection has nothing to authenticate outgoing chat with.
*/
package tmi
