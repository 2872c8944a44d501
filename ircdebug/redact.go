/*
Package ircdebug contains helper functions that are useful while writing an IRC client.
*/
package ircdebug

import "strings"

// Redact returns line with an OAuth token stripped out, for safe inclusion
// in diagnostic output. Twitch's login handshake sends "PASS oauth:<token>"
// in the clear on the wire; logging that line verbatim would leak the
// token into logs.
func Redact(line string) string {
	const prefix = "PASS oauth:"
	if !strings.HasPrefix(line, prefix) {
		return line
	}
	return prefix + "<redacted>"
}
