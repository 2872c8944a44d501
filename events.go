package tmi

// User is the embedder's event sink: one method per event kind, called
// synchronously from the Worker goroutine in the order the frames that
// produced them were parsed. Implementations must not block.
type User interface {
	// Doom reports that the server announced an imminent shutdown
	// (RECONNECT) and the connection should be expected to drop soon.
	Doom()

	// LogIn reports that the login handshake completed successfully.
	// Called at most once per successful login.
	LogIn()

	// LogOut reports that the session has ended, for any reason:
	// a local LogOut call, a server disconnect, a failed connection
	// attempt, a handshake timeout, or a rejected login. It is always
	// the last callback delivered for a given connection attempt.
	LogOut()

	Join(MembershipInfo)
	Leave(MembershipInfo)
	Message(MessageInfo)
	PrivateMessage(MessageInfo)
	Whisper(WhisperInfo)
	Notice(NoticeInfo)
	Host(HostInfo)
	RoomModeChange(RoomModeChangeInfo)
	Clear(ClearInfo)
	Mod(ModInfo)
	UserState(UserStateInfo)
	Sub(SubInfo)
	Raid(RaidInfo)
	Ritual(RitualInfo)
}

// MembershipInfo describes a JOIN or PART.
type MembershipInfo struct {
	User    string
	Channel string
}

// MessageInfo describes a channel PRIVMSG.
type MessageInfo struct {
	Tags           TagsInfo
	User           string
	Channel        string
	MessageContent string
	MessageID      string
	Bits           int
	IsAction       bool
}

// WhisperInfo describes an incoming WHISPER.
type WhisperInfo struct {
	Tags           TagsInfo
	User           string
	MessageContent string
}

// NoticeInfo describes a server NOTICE.
type NoticeInfo struct {
	ID      string // msg-id tag, may be empty
	Channel string // empty when the target was "*"
	Content string
}

// HostInfo describes a HOSTTARGET.
type HostInfo struct {
	Hoster      string
	On          bool
	BeingHosted string
	Viewers     uint64
}

// RoomModeChangeInfo describes one changed room mode from a ROOMSTATE
// frame. One is emitted per recognized mode tag present on the frame.
type RoomModeChangeInfo struct {
	ChannelName string
	ChannelID   uint64
	Mode        string
	Parameter   int
}

// ClearType distinguishes the four shapes a chat-clearing event can take.
type ClearType int

const (
	ClearAll ClearType = iota
	ClearBan
	ClearTimeout
	ClearMessage
)

// ClearInfo unifies CLEARCHAT (ClearAll/ClearBan/ClearTimeout) and CLEARMSG
// (ClearMessage) into a single event shape, since both describe the
// embedder's chat-history display being asked to remove something.
type ClearInfo struct {
	Type    ClearType
	Channel string

	// Tags is the frame's decoded tag set. ChannelID/Timestamp/
	// TimeMilliseconds come straight from it; UserID is overridden below
	// since CLEARCHAT carries the target's ID under target-user-id, not
	// the generic user-id tag TagsInfo.UserID normally decodes.
	Tags TagsInfo

	// Populated for ClearBan and ClearTimeout.
	User     string
	UserID   uint64
	Reason   string
	Duration int // seconds; ClearTimeout only

	// Populated for ClearMessage.
	OffendingMessageContent string
	OffendingMessageID      string
	UserName                string
}

// ModInfo describes a MODE +o/-o change.
type ModInfo struct {
	Channel string
	User    string
	Mod     bool
}

// UserStateInfo describes a GLOBALUSERSTATE or USERSTATE frame.
type UserStateInfo struct {
	Tags    TagsInfo
	Channel string // empty when Global is true
	Global  bool
}

// SubType distinguishes the USERNOTICE msg-id values this engine decodes.
type SubType int

const (
	SubNew SubType = iota
	SubResub
	SubGifted
	SubMysteryGift
	SubUnknown
)

// SubInfo describes a sub, resub, or gift-sub USERNOTICE.
type SubInfo struct {
	Type          SubType
	Channel       string
	User          string
	Months        int
	PlanID        string
	PlanName      string
	SystemMessage string

	// Populated for SubGifted.
	RecipientDisplayName string
	RecipientUserName    string
	RecipientID          uint64
	SenderCount          int

	// Populated for SubMysteryGift.
	MassGiftCount int
}

// RaidInfo describes a raid USERNOTICE.
type RaidInfo struct {
	Channel string
	Raider  string
	Viewers int
}

// RitualInfo describes a ritual USERNOTICE (e.g. new-chatter greeting).
type RitualInfo struct {
	Channel string
	User    string
	Ritual  string
}
