package tmi

// ActionType names the kind of work a mailbox Action represents. LogIn's
// Type mutates in place as login advances through its phases; every other
// action keeps its Type fixed for its whole life.
type ActionType int

const (
	// ActionLogIn begins a login: connect, negotiate capabilities,
	// authenticate, and wait for the end-of-MOTD numeric.
	ActionLogIn ActionType = iota

	// ActionRequestCaps is the LogIn action after it has sent CAP REQ for
	// specific capabilities and is waiting on the ACK/NAK. While waiting on
	// the server's CAP LS capability list the action is still ActionLogIn.
	ActionRequestCaps

	// ActionAwaitMotd is the LogIn action after CAP END/PASS/NICK have
	// been sent, waiting for numeric 376 (or an auth-failure NOTICE).
	ActionAwaitMotd

	// ActionLogOut tears the connection down and reports User.LogOut.
	ActionLogOut

	// ActionProcessBytes carries a chunk of bytes read from the
	// connection for the Wire Codec and Session State Machine to consume.
	ActionProcessBytes

	// ActionServerDisconnected reports that the connection closed on its
	// own, without a local LogOut having been requested.
	ActionServerDisconnected

	// ActionJoin requests membership in a channel.
	ActionJoin

	// ActionLeave requests departure from a channel.
	ActionLeave

	// ActionSendMessage sends a chat message to a channel.
	ActionSendMessage

	// ActionSendWhisper sends a whisper to a user.
	ActionSendWhisper
)

// Action is the single type carried through the mailbox: every public API
// call and every transport callback becomes one of these. Only the fields
// relevant to Type are populated; the rest are zero.
type Action struct {
	Type ActionType

	Nickname  string // LogIn
	Token     string // LogIn
	Anonymous bool   // LogIn

	Channel string // Join, Leave, SendMessage (target channel); SendWhisper (recipient nickname)
	Message string // SendMessage, SendWhisper, LogOut (farewell)

	Bytes []byte // ProcessBytes

	// Expiration is the absolute time (per the engine's TimeKeeper) at
	// which this action, if still on the awaiting list, should time out.
	// Only ever set on the single LogIn action while it awaits a server
	// reply.
	Expiration float64
}
