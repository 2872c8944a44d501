package tmi

import "strings"

// Message represents a single fully-parsed TMI/IRCv3 line.
//
// Command is the uppercase verb or 3-digit numeric reply. An empty Command
// means the line was not a valid frame and callers must discard it; the
// codec never returns a nil *Message for a complete line, only an empty
// Command.
type Message struct {
	// Tags holds the decoded projection of the line's IRCv3 @-tags.
	// Tags is always present, even for lines with no tags section.
	Tags TagsInfo

	// Prefix is the raw message source (everything between ':' and the
	// first space), or "" if the line had no prefix. It is not split into
	// nick/user/host because TMI never sends full nick!user@host prefixes;
	// see Nick for extracting the nickname portion.
	Prefix string

	// Command is the verb ("PRIVMSG", "JOIN", ...) or numeric ("376").
	Command string

	// Parameters holds the middle parameters followed by the trailing
	// parameter (if any), in order, with IRC framing characters stripped.
	Parameters []string
}

// Param returns the 1-indexed parameter n, or "" if n is out of range.
// Following IRC convention, callers cannot distinguish an explicitly empty
// parameter from an absent one; command handlers shouldn't need to.
func (m *Message) Param(n int) string {
	if n < 1 || n > len(m.Parameters) {
		return ""
	}
	return m.Parameters[n-1]
}

// Nick returns the nickname portion of Prefix, i.e. everything before the
// first '!'. For server-originated lines (prefix is a hostname with no
// '!'), Nick returns the whole prefix.
func (m *Message) Nick() string {
	return prefixNick(m.Prefix)
}

func prefixNick(prefix string) string {
	if i := strings.IndexByte(prefix, '!'); i >= 0 {
		return prefix[:i]
	}
	return prefix
}

// stripChannelPrefix strips the leading '#' from a channel parameter. TMI
// always prefixes channel names with '#' on the wire; the embedder API
// never sees the '#'.
func stripChannelPrefix(s string) string {
	return strings.TrimPrefix(s, "#")
}
