package tmi

// Commands sent or received on a TMI connection. This is a small subset of
// the full IRC command set: Twitch's chat servers only speak these plus the
// "376" numeric below.
const (
	CmdCap             = "CAP"             // IRCv3 capability negotiation.
	CmdPass            = "PASS"            // Connection password (OAuth token).
	CmdNick            = "NICK"            // Define a nickname.
	CmdJoin            = "JOIN"            // Join a channel.
	CmdPart            = "PART"            // Leave a channel.
	CmdPrivmsg         = "PRIVMSG"         // Channel message, or whisper when encoded as a ".w" command to #jtv.
	CmdNotice          = "NOTICE"          // Server notice, including auth failures during login.
	CmdPing            = "PING"            // Server keepalive probe.
	CmdPong            = "PONG"            // Client keepalive reply.
	CmdQuit            = "QUIT"            // Terminate the connection.
	CmdWhisper         = "WHISPER"         // Incoming whisper (Twitch's own non-standard command, not ".w").
	CmdHostTarget      = "HOSTTARGET"      // Channel host/unhost announcement.
	CmdClearChat       = "CLEARCHAT"       // Chat clear, single-user ban, or single-user timeout.
	CmdClearMsg        = "CLEARMSG"        // Single message deletion.
	CmdRoomState       = "ROOMSTATE"       // Room setting change (e.g. slow mode, sub-only).
	CmdMode            = "MODE"            // Channel moderator grant/revoke ("+o"/"-o").
	CmdGlobalUserState = "GLOBALUSERSTATE" // Per-connection global user info, sent once after login.
	CmdUserState       = "USERSTATE"       // Per-channel user info, sent on join and on some state changes.
	CmdUserNotice      = "USERNOTICE"      // Sub, resub, raid, ritual, and other celebratory events.
	CmdReconnect       = "RECONNECT"       // Server-requested graceful reconnect.
)

// RplEndOfMotd is sent once after successful login, completing the
// handshake. Twitch's chat servers skip every other numeric in the usual
// RPL_MOTD family and jump straight to this one.
const RplEndOfMotd = "376"
