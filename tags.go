package tmi

import (
	"strconv"
	"strings"
)

// EmoteSpan is one occurrence of an emote within a message, given as
// character offsets into the message content.
type EmoteSpan struct {
	Begin int
	End   int
}

// TagsInfo is the typed projection of a line's IRCv3 @-tags.
//
// AllTags preserves every tag as received, including ones this decoder
// doesn't know about, with escape sequences untouched. Handlers that need
// to expose a free-form human-text tag (ban-reason, system-msg, and
// friends) to the embedder must call unescapeTagValue themselves; the
// decoder does not unescape blanket.
type TagsInfo struct {
	AllTags map[string]string

	DisplayName      string
	Badges           map[string]struct{}
	Emotes           map[string][]EmoteSpan
	Color            uint32
	Timestamp        int64
	TimeMilliseconds int
	ChannelID        uint64
	UserID           uint64
}

// defaultColor is used whenever a color tag is absent or unparseable.
const defaultColor = 0xFFFFFF

// Has reports whether tag was present in the line's tags, known or not.
func (t TagsInfo) Has(tag string) bool {
	_, ok := t.AllTags[tag]
	return ok
}

// Get returns the raw (still-escaped) value of tag, or "" if absent.
func (t TagsInfo) Get(tag string) string {
	return t.AllTags[tag]
}

// HasBadge reports whether badge (e.g. "moderator/1") was present.
func (t TagsInfo) HasBadge(badge string) bool {
	_, ok := t.Badges[badge]
	return ok
}

// decodeTags parses the raw semicolon-separated tag string from a line
// (everything between the leading '@' and the following space, exclusive
// of both) into a TagsInfo. raw may be empty, in which case AllTags is
// still non-nil but empty.
func decodeTags(raw string) TagsInfo {
	info := TagsInfo{AllTags: make(map[string]string)}

	if raw != "" {
		for _, pair := range splitNonEmpty(raw, ';') {
			key, value, hasValue := cutOnce(pair, '=')
			if !hasValue {
				key, value = pair, ""
			}
			info.AllTags[key] = value
		}
	}

	info.DisplayName = info.AllTags["display-name"]
	info.Color = decodeColor(info.AllTags["color"])
	info.Badges = decodeBadges(info.AllTags["badges"])
	info.Emotes = decodeEmotes(info.AllTags["emotes"])
	info.Timestamp, info.TimeMilliseconds = decodeTimestamp(info.AllTags["tmi-sent-ts"])
	info.ChannelID = decodeUint(info.AllTags["room-id"])
	info.UserID = decodeUint(info.AllTags["user-id"])

	return info
}

func decodeColor(raw string) uint32 {
	if len(raw) != 7 || raw[0] != '#' {
		return defaultColor
	}
	v, err := strconv.ParseUint(raw[1:], 16, 32)
	if err != nil {
		return defaultColor
	}
	return uint32(v)
}

func decodeBadges(raw string) map[string]struct{} {
	badges := make(map[string]struct{})
	if raw == "" {
		return badges
	}
	for _, b := range splitNonEmpty(raw, ',') {
		badges[b] = struct{}{}
	}
	return badges
}

// decodeEmotes parses "id:begin-end,begin-end/id2:begin-end" into a map
// from emote ID to its spans. Malformed groups or spans are skipped
// individually rather than invalidating the whole tag, consistent with
// the codec's general policy of discarding what it can't parse instead of
// failing the message.
func decodeEmotes(raw string) map[string][]EmoteSpan {
	emotes := make(map[string][]EmoteSpan)
	if raw == "" {
		return emotes
	}
	for _, group := range strings.Split(raw, "/") {
		id, spans := splitOnce(group, ':')
		if id == "" || spans == "" {
			continue
		}
		for _, span := range splitNonEmpty(spans, ',') {
			begin, end := splitOnce(span, '-')
			b, errB := strconv.Atoi(begin)
			e, errE := strconv.Atoi(end)
			if errB != nil || errE != nil {
				continue
			}
			emotes[id] = append(emotes[id], EmoteSpan{Begin: b, End: e})
		}
	}
	return emotes
}

// decodeTimestamp splits tmi-sent-ts (integer milliseconds since the
// epoch) into whole seconds and the sub-second millisecond remainder.
func decodeTimestamp(raw string) (seconds int64, millis int) {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, 0
	}
	return ms / 1000, int(ms % 1000)
}

func decodeUint(raw string) uint64 {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// unescapeTagValue translates the IRCv3 message-tag escape sequences
// relevant to free-form human text: \s (space), \: (semicolon), \r, \n,
// and \\. This package only applies it to specific fields the session
// state machine hands to the embedder (ban-reason, system-msg, and
// similar), not blanket across every tag, per the tag table's "at
// minimum \s must be translated" requirement.
func unescapeTagValue(s string) string {
	return tagUnescaper.Replace(s)
}

var tagUnescaper = strings.NewReplacer(
	`\:`, ";",
	`\r`, "\r",
	`\n`, "\n",
	`\s`, " ",
	`\\`, `\`,
)

// splitNonEmpty splits s on sep, discarding any empty fields — TMI tag and
// badge lists don't carry empty entries, but a trailing separator or a
// doubled one shouldn't produce a spurious one.
func splitNonEmpty(s string, sep byte) []string {
	fields := strings.Split(s, string(sep))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// splitOnce splits s on the first occurrence of sep into (before, after).
// If sep is not present, before is "" and after is s.
func splitOnce(s string, sep byte) (before, after string) {
	before, after, _ = cutOnce(s, sep)
	return before, after
}

// cutOnce splits s on the first occurrence of sep into (before, after,
// true), or returns ("", s, false) if sep is not present.
func cutOnce(s string, sep byte) (before, after string, found bool) {
	if i := strings.IndexByte(s, sep); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return "", s, false
}
