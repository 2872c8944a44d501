package tmi

import "testing"

func TestDecodeTagsEmpty(t *testing.T) {
	info := decodeTags("")
	if len(info.AllTags) != 0 {
		t.Errorf("AllTags = %#v, want empty", info.AllTags)
	}
	if info.Color != defaultColor {
		t.Errorf("Color = %#x, want default %#x", info.Color, defaultColor)
	}
}

func TestDecodeTagsColor(t *testing.T) {
	cases := []struct {
		raw  string
		want uint32
	}{
		{"#FF0000", 0xFF0000},
		{"#00ff00", 0x00ff00},
		{"", defaultColor},
		{"not-a-color", defaultColor},
		{"#ZZZZZZ", defaultColor},
	}
	for _, tt := range cases {
		info := decodeTags("color=" + tt.raw)
		if info.Color != tt.want {
			t.Errorf("decodeTags(color=%q).Color = %#x, want %#x", tt.raw, info.Color, tt.want)
		}
	}
}

func TestDecodeTagsBadges(t *testing.T) {
	info := decodeTags("badges=broadcaster/1,subscriber/12")
	if !info.HasBadge("broadcaster/1") || !info.HasBadge("subscriber/12") {
		t.Errorf("Badges = %#v, missing expected entries", info.Badges)
	}
	if info.HasBadge("moderator/1") {
		t.Errorf("Badges unexpectedly contains moderator/1")
	}
}

func TestDecodeTagsEmotes(t *testing.T) {
	info := decodeTags("emotes=25:0-4,6-10/1902:12-16")
	if len(info.Emotes["25"]) != 2 {
		t.Fatalf("emotes[25] = %#v, want 2 spans", info.Emotes["25"])
	}
	if info.Emotes["25"][0] != (EmoteSpan{Begin: 0, End: 4}) {
		t.Errorf("emotes[25][0] = %#v, want {0 4}", info.Emotes["25"][0])
	}
	if len(info.Emotes["1902"]) != 1 || info.Emotes["1902"][0] != (EmoteSpan{Begin: 12, End: 16}) {
		t.Errorf("emotes[1902] = %#v, want [{12 16}]", info.Emotes["1902"])
	}
}

func TestDecodeTagsTimestamp(t *testing.T) {
	info := decodeTags("tmi-sent-ts=1539652354185")
	if info.Timestamp != 1539652354 || info.TimeMilliseconds != 185 {
		t.Errorf("Timestamp/TimeMilliseconds = %d/%d, want 1539652354/185", info.Timestamp, info.TimeMilliseconds)
	}

	info = decodeTags("tmi-sent-ts=not-a-number")
	if info.Timestamp != 0 || info.TimeMilliseconds != 0 {
		t.Errorf("malformed tmi-sent-ts should decode to 0/0, got %d/%d", info.Timestamp, info.TimeMilliseconds)
	}
}

func TestDecodeTagsIDs(t *testing.T) {
	info := decodeTags("room-id=12345;user-id=1122334455")
	if info.ChannelID != 12345 || info.UserID != 1122334455 {
		t.Errorf("ChannelID/UserID = %d/%d, want 12345/1122334455", info.ChannelID, info.UserID)
	}
}

func TestDecodeTagsPreservesAllTags(t *testing.T) {
	info := decodeTags("foo=bar;baz")
	if info.Get("foo") != "bar" {
		t.Errorf("Get(foo) = %q, want bar", info.Get("foo"))
	}
	if !info.Has("baz") || info.Get("baz") != "" {
		t.Errorf("Has(baz)/Get(baz) = %v/%q, want true/\"\"", info.Has("baz"), info.Get("baz"))
	}
	if info.Has("missing") {
		t.Errorf("Has(missing) = true, want false")
	}
}

func TestUnescapeTagValue(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`just\sa\stest`, "just a test"},
		{`a\:b`, "a;b"},
		{`a\\b`, `a\b`},
		{`a\rb`, "a\rb"},
		{`a\nb`, "a\nb"},
		{"plain", "plain"},
	}
	for _, tt := range cases {
		if got := unescapeTagValue(tt.raw); got != tt.want {
			t.Errorf("unescapeTagValue(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
