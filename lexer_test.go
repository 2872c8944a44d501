package tmi

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, line string) *Message {
	t.Helper()
	buf := []byte(line + "\r\n")
	m, consumed, ok := Parse(buf)
	if !ok {
		t.Fatalf("Parse(%q) returned ok=false", line)
	}
	if consumed != len(buf) {
		t.Fatalf("Parse(%q) consumed %d bytes, want %d", line, consumed, len(buf))
	}
	return m
}

func TestParseIncompleteLine(t *testing.T) {
	_, _, ok := Parse([]byte("PRIVMSG #foo :bar"))
	if ok {
		t.Fatalf("Parse should return ok=false without a trailing CRLF")
	}
}

func TestParseConsumesOneLineAtATime(t *testing.T) {
	buf := []byte("PING :one\r\nPING :two\r\n")

	m, consumed, ok := Parse(buf)
	if !ok || m.Param(1) != "one" {
		t.Fatalf("first Parse call = %#v, %d, %v", m, consumed, ok)
	}

	m, consumed, ok = Parse(buf[consumed:])
	if !ok || m.Param(1) != "two" {
		t.Fatalf("second Parse call = %#v, %d, %v", m, consumed, ok)
	}
}

func TestParseCommandAndParams(t *testing.T) {
	cases := []struct {
		line   string
		params []string
	}{
		{"PRIVMSG #foo :bar", []string{"#foo", "bar"}},
		{"PRIVMSG #foo :", []string{"#foo", ""}},
		{"JOIN #foo", []string{"#foo"}},
		{"CAP * LS :twitch.tv/tags", []string{"*", "LS", "twitch.tv/tags"}},
		{"CAP * LS * :twitch.tv/tags", []string{"*", "LS", "*", "twitch.tv/tags"}},
		{"PRIVMSG #foo :a  b", []string{"#foo", "a  b"}},
		{"PRIVMSG #foo ::p1", []string{"#foo", ":p1"}},
	}
	for _, tt := range cases {
		m := mustParse(t, tt.line)
		if len(m.Parameters) != len(tt.params) {
			t.Errorf("%q: got params %#v, want %#v", tt.line, m.Parameters, tt.params)
			continue
		}
		for i, p := range tt.params {
			if m.Parameters[i] != p {
				t.Errorf("%q: param %d = %q, want %q", tt.line, i, m.Parameters[i], p)
			}
		}
	}
}

func TestParseCommandIsUppercased(t *testing.T) {
	m := mustParse(t, "privmsg #foo :bar")
	if m.Command != "PRIVMSG" {
		t.Errorf("Command = %q, want PRIVMSG", m.Command)
	}
}

func TestParsePrefix(t *testing.T) {
	m := mustParse(t, ":tmi.twitch.tv 376 foobar1124 :>")
	if m.Prefix != "tmi.twitch.tv" {
		t.Errorf("Prefix = %q, want tmi.twitch.tv", m.Prefix)
	}
	if m.Command != "376" {
		t.Errorf("Command = %q, want 376", m.Command)
	}
}

func TestParseInvalidFrameHasEmptyCommand(t *testing.T) {
	m := mustParse(t, "")
	if m.Command != "" {
		t.Errorf("expected empty command for empty line, got %q", m.Command)
	}

	m = mustParse(t, "@foo=bar")
	if m.Command != "" {
		t.Errorf("expected empty command for a tags-only line, got %q", m.Command)
	}
}

func TestParseLineWithTagsDecodesThem(t *testing.T) {
	line := "@badge-info=;badges=broadcaster/1;color=#FF0000;display-name=foo :foo!foo@foo.tmi.twitch.tv PRIVMSG #foo :hi"
	m := mustParse(t, line)
	if m.Tags.DisplayName != "foo" {
		t.Errorf("DisplayName = %q, want foo", m.Tags.DisplayName)
	}
	if m.Tags.Color != 0xFF0000 {
		t.Errorf("Color = %#x, want 0xFF0000", m.Tags.Color)
	}
	if !m.Tags.HasBadge("broadcaster/1") {
		t.Errorf("expected badge broadcaster/1, got %#v", m.Tags.Badges)
	}
}

func TestParseLongTrailerDoesNotPanic(t *testing.T) {
	line := "PRIVMSG #foo :" + strings.Repeat("a", 1000)
	m := mustParse(t, line)
	if len(m.Param(2)) != 1000 {
		t.Errorf("trailer length = %d, want 1000", len(m.Param(2)))
	}
}
