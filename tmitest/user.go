package tmitest

import (
	"sync"

	tmi "github.com/rhymu8354/go-twitch-messaging"
)

// RecordingUser is a tmi.User that appends every callback it receives to
// an in-memory log, for tests to assert against instead of wiring up real
// application behavior.
type RecordingUser struct {
	mu      sync.Mutex
	LogIns  int
	LogOuts int
	Dooms   int
	Events  []string

	Messages        []tmi.MessageInfo
	Whispers        []tmi.WhisperInfo
	Notices         []tmi.NoticeInfo
	Hosts           []tmi.HostInfo
	RoomModeChanges []tmi.RoomModeChangeInfo
	Clears          []tmi.ClearInfo
	Mods            []tmi.ModInfo
	UserStates      []tmi.UserStateInfo
	Subs            []tmi.SubInfo
	Raids           []tmi.RaidInfo
	Rituals         []tmi.RitualInfo
	Joins           []tmi.MembershipInfo
	Leaves          []tmi.MembershipInfo
}

func NewRecordingUser() *RecordingUser {
	return &RecordingUser{}
}

func (u *RecordingUser) record(event string) {
	u.mu.Lock()
	u.Events = append(u.Events, event)
	u.mu.Unlock()
}

func (u *RecordingUser) Doom() {
	u.mu.Lock()
	u.Dooms++
	u.mu.Unlock()
	u.record("Doom")
}

func (u *RecordingUser) LogIn() {
	u.mu.Lock()
	u.LogIns++
	u.mu.Unlock()
	u.record("LogIn")
}

func (u *RecordingUser) LogOut() {
	u.mu.Lock()
	u.LogOuts++
	u.mu.Unlock()
	u.record("LogOut")
}

func (u *RecordingUser) Join(info tmi.MembershipInfo) {
	u.mu.Lock()
	u.Joins = append(u.Joins, info)
	u.mu.Unlock()
	u.record("Join")
}

func (u *RecordingUser) Leave(info tmi.MembershipInfo) {
	u.mu.Lock()
	u.Leaves = append(u.Leaves, info)
	u.mu.Unlock()
	u.record("Leave")
}

func (u *RecordingUser) Message(info tmi.MessageInfo) {
	u.mu.Lock()
	u.Messages = append(u.Messages, info)
	u.mu.Unlock()
	u.record("Message")
}

func (u *RecordingUser) PrivateMessage(info tmi.MessageInfo) {
	u.mu.Lock()
	u.Messages = append(u.Messages, info)
	u.mu.Unlock()
	u.record("PrivateMessage")
}

func (u *RecordingUser) Whisper(info tmi.WhisperInfo) {
	u.mu.Lock()
	u.Whispers = append(u.Whispers, info)
	u.mu.Unlock()
	u.record("Whisper")
}

func (u *RecordingUser) Notice(info tmi.NoticeInfo) {
	u.mu.Lock()
	u.Notices = append(u.Notices, info)
	u.mu.Unlock()
	u.record("Notice")
}

func (u *RecordingUser) Host(info tmi.HostInfo) {
	u.mu.Lock()
	u.Hosts = append(u.Hosts, info)
	u.mu.Unlock()
	u.record("Host")
}

func (u *RecordingUser) RoomModeChange(info tmi.RoomModeChangeInfo) {
	u.mu.Lock()
	u.RoomModeChanges = append(u.RoomModeChanges, info)
	u.mu.Unlock()
	u.record("RoomModeChange")
}

func (u *RecordingUser) Clear(info tmi.ClearInfo) {
	u.mu.Lock()
	u.Clears = append(u.Clears, info)
	u.mu.Unlock()
	u.record("Clear")
}

func (u *RecordingUser) Mod(info tmi.ModInfo) {
	u.mu.Lock()
	u.Mods = append(u.Mods, info)
	u.mu.Unlock()
	u.record("Mod")
}

func (u *RecordingUser) UserState(info tmi.UserStateInfo) {
	u.mu.Lock()
	u.UserStates = append(u.UserStates, info)
	u.mu.Unlock()
	u.record("UserState")
}

func (u *RecordingUser) Sub(info tmi.SubInfo) {
	u.mu.Lock()
	u.Subs = append(u.Subs, info)
	u.mu.Unlock()
	u.record("Sub")
}

func (u *RecordingUser) Raid(info tmi.RaidInfo) {
	u.mu.Lock()
	u.Raids = append(u.Raids, info)
	u.mu.Unlock()
	u.record("Raid")
}

func (u *RecordingUser) Ritual(info tmi.RitualInfo) {
	u.mu.Lock()
	u.Rituals = append(u.Rituals, info)
	u.mu.Unlock()
	u.record("Ritual")
}
