package tmi

import "strings"

// The functions below build outbound wire lines, without CRLF: framing is
// sessionState.sendLine's job, which appends "\r\n" once, in a single
// place, rather than every command having to remember to.

// capLS requests the server's capability list at negotiation version 302.
func capLS() string {
	return "CAP LS 302"
}

// capReq requests zero or more capabilities be enabled.
func capReq(caps ...string) string {
	return "CAP REQ :" + strings.Join(caps, " ")
}

// capEnd ends capability negotiation.
func capEnd() string {
	return "CAP END"
}

// pass supplies the connection's OAuth token.
func pass(token string) string {
	return "PASS oauth:" + token
}

// nick sets the connection's nickname.
func nick(nickname string) string {
	return "NICK " + nickname
}

// join requests membership in channel (without its leading '#').
func join(channel string) string {
	return "JOIN #" + channel
}

// part leaves channel (without its leading '#').
func part(channel string) string {
	return "PART #" + channel
}

// privmsg sends content to channel (without its leading '#').
func privmsg(channel, content string) string {
	return "PRIVMSG #" + channel + " :" + content
}

// whisper encodes a whisper as the ".w" PRIVMSG convention Twitch uses in
// place of a real WHISPER command: it is always addressed to the special
// #jtv channel.
func whisper(nickname, content string) string {
	return "PRIVMSG #jtv :.w " + nickname + " " + content
}

// pong replies to a PING with the same trailing parameter.
func pong(reply string) string {
	return "PONG :" + reply
}

// quit closes the connection, optionally with a farewell message shown to
// the server (and, on some servers, to other clients).
func quit(farewell string) string {
	if farewell == "" {
		return "QUIT"
	}
	return "QUIT :" + farewell
}
