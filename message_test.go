package tmi

import "testing"

func TestMessageParam(t *testing.T) {
	m := &Message{Parameters: []string{"a", "b", "c"}}

	cases := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "a"},
		{2, "b"},
		{3, "c"},
		{4, ""},
		{-1, ""},
	}
	for _, tt := range cases {
		if got := m.Param(tt.n); got != tt.want {
			t.Errorf("Param(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestMessageNick(t *testing.T) {
	cases := []struct {
		prefix string
		want   string
	}{
		{"", ""},
		{"tmi.twitch.tv", "tmi.twitch.tv"},
		{"foobar1124!foobar1124@foobar1124.tmi.twitch.tv", "foobar1124"},
		{"jtv", "jtv"},
	}
	for _, tt := range cases {
		m := &Message{Prefix: tt.prefix}
		if got := m.Nick(); got != tt.want {
			t.Errorf("Nick() with prefix %q = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}

func TestStripChannelPrefix(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"#foobar1125", "foobar1125"},
		{"foobar1125", "foobar1125"},
		{"", ""},
	}
	for _, tt := range cases {
		if got := stripChannelPrefix(tt.in); got != tt.want {
			t.Errorf("stripChannelPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
