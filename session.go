package tmi

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rhymu8354/go-twitch-messaging/ircdebug"
)

// loginTimeoutSeconds is the absolute timeout, in seconds, given to every
// phase of the login handshake (CAP LS, CAP REQ, and the MOTD wait alike).
const loginTimeoutSeconds = 5.0

var anonymousNickname = regexp.MustCompile(`^justinfan\d+$`)

var wantedCaps = []string{"twitch.tv/commands", "twitch.tv/membership", "twitch.tv/tags"}

// sessionState is owned exclusively by the Worker goroutine: only code
// running on that goroutine's call stack may read or mutate it. Everything
// else communicates with it through the mailbox.
type sessionState struct {
	connFactory ConnectionFactory
	timeKeeper  TimeKeeper
	user        User
	diag        *Diagnostics
	enqueue     func(Action)

	conn         Connection
	dataReceived []byte
	loggedIn     bool
	anonymous    bool
	nickname     string
	token        string

	// awaiting holds actions waiting on a server reply. The invariant
	// from the login sub-state machine keeps this at no more than one
	// entry at a time: the single LogIn action, whose Type mutates as
	// login advances through CapLs (Type==ActionLogIn itself) ->
	// RequestCaps -> AwaitMotd.
	awaiting []*Action

	capsSupported map[string]struct{}
}

func newSessionState(connFactory ConnectionFactory, timeKeeper TimeKeeper, user User, diag *Diagnostics, enqueue func(Action)) *sessionState {
	return &sessionState{
		connFactory: connFactory,
		timeKeeper:  timeKeeper,
		user:        user,
		diag:        diag,
		enqueue:     enqueue,
	}
}

func (s *sessionState) diagnose(level Level, message string) {
	if s.diag != nil {
		s.diag.emit(level, message)
	}
}

// sendLine frames text with CRLF and writes it to the connection, logging a
// redacted copy to diagnostics. It is a no-op if there is no connection.
func (s *sessionState) sendLine(text string) {
	if s.conn == nil {
		return
	}
	s.conn.Send(text + "\r\n")
	s.diagnose(LevelDebug, "-> "+ircdebug.Redact(text))
}

func (s *sessionState) onBytesReceived(data []byte) {
	s.enqueue(Action{Type: ActionProcessBytes, Bytes: data})
}

func (s *sessionState) onConnectionDisconnected() {
	s.enqueue(Action{Type: ActionServerDisconnected})
}

// disconnect implements the shared teardown both LogOut and
// ServerDisconnected use: send a QUIT (if farewell is non-empty and a
// connection exists), tear down the transport, and report User.LogOut. A
// second call after the connection has already been cleared is a no-op.
func (s *sessionState) disconnect(farewell string) {
	if s.conn == nil {
		return
	}
	if farewell != "" {
		s.sendLine(quit(farewell))
	}
	s.conn.Disconnect()
	s.conn = nil
	s.loggedIn = false
	s.awaiting = nil
	s.user.LogOut()
}

func (s *sessionState) findAwaiting(t ActionType) *Action {
	for _, a := range s.awaiting {
		if a.Type == t {
			return a
		}
	}
	return nil
}

func (s *sessionState) removeAwaiting(t ActionType) {
	remaining := s.awaiting[:0]
	for _, a := range s.awaiting {
		if a.Type != t {
			remaining = append(remaining, a)
		}
	}
	s.awaiting = remaining
}

// sweepTimeouts drops every awaiting action whose expiration has passed,
// dispatching each to its timeout handler first. Called on every Worker
// wake-up.
func (s *sessionState) sweepTimeouts(now float64) {
	if len(s.awaiting) == 0 {
		return
	}
	remaining := s.awaiting[:0]
	for _, a := range s.awaiting {
		if now < a.Expiration {
			remaining = append(remaining, a)
			continue
		}
		s.timeoutAwaiting(a)
		if s.conn == nil {
			// disconnect() already cleared the awaiting list.
			return
		}
	}
	s.awaiting = remaining
}

func (s *sessionState) timeoutAwaiting(a *Action) {
	switch a.Type {
	case ActionLogIn:
		s.sendLine(quit("Timeout waiting for capability list"))
	case ActionRequestCaps:
		s.sendLine(quit("Timeout waiting for response to capability request"))
	case ActionAwaitMotd:
		s.sendLine(quit("Timeout waiting for MOTD"))
	default:
		return
	}
	s.disconnect("")
}

// ---- action performers ----

func (s *sessionState) performLogIn(a *Action) {
	if s.conn != nil {
		return
	}
	s.anonymous = a.Anonymous
	s.nickname = a.Nickname
	s.token = a.Token

	conn := s.connFactory()
	conn.SetMessageReceivedDelegate(s.onBytesReceived)
	conn.SetDisconnectedDelegate(s.onConnectionDisconnected)

	if !conn.Connect() {
		s.diagnose(LevelError, "connection attempt failed")
		s.user.LogOut()
		return
	}

	s.conn = conn
	s.capsSupported = make(map[string]struct{})
	s.sendLine(capLS())

	a.Expiration = s.timeKeeper.Now() + loginTimeoutSeconds
	s.awaiting = append(s.awaiting, a)
}

func (s *sessionState) performLogOut(a *Action) {
	s.disconnect(a.Message)
}

func (s *sessionState) performServerDisconnected(a *Action) {
	s.disconnect("")
}

func (s *sessionState) performProcessBytes(a *Action) {
	s.dataReceived = append(s.dataReceived, a.Bytes...)
	for {
		msg, consumed, ok := Parse(s.dataReceived)
		if !ok {
			return
		}
		s.dataReceived = s.dataReceived[consumed:]

		if msg.Command == "" {
			s.diagnose(LevelWarning, "discarding malformed frame")
			continue
		}
		handler, known := serverCommandHandlers[msg.Command]
		if !known {
			s.diagnose(LevelDebug, "unknown command: "+msg.Command)
			continue
		}
		handler(s, msg)
	}
}

func (s *sessionState) performJoin(a *Action) {
	s.sendLine(join(a.Channel))
}

func (s *sessionState) performLeave(a *Action) {
	s.sendLine(part(a.Channel))
}

func (s *sessionState) performSendMessage(a *Action) {
	if s.anonymous {
		return
	}
	s.sendLine(privmsg(a.Channel, a.Message))
}

func (s *sessionState) performSendWhisper(a *Action) {
	if s.anonymous {
		return
	}
	s.sendLine(whisper(a.Channel, a.Message))
}

// actionPerformers is the dispatch table for mailbox actions, built once
// and treated as a constant, per the engine's static-dispatch-table
// convention for closed sums.
var actionPerformers = map[ActionType]func(*sessionState, *Action){
	ActionLogIn:              (*sessionState).performLogIn,
	ActionLogOut:             (*sessionState).performLogOut,
	ActionProcessBytes:       (*sessionState).performProcessBytes,
	ActionServerDisconnected: (*sessionState).performServerDisconnected,
	ActionJoin:               (*sessionState).performJoin,
	ActionLeave:              (*sessionState).performLeave,
	ActionSendMessage:        (*sessionState).performSendMessage,
	ActionSendWhisper:        (*sessionState).performSendWhisper,
}

// ---- server-command handlers ----

func (s *sessionState) handleCap(m *Message) {
	if len(m.Parameters) < 2 {
		return
	}
	switch strings.ToUpper(m.Parameters[1]) {
	case "LS":
		s.handleCapLS(m)
	case "ACK", "NAK":
		s.handleCapAck(m)
	}
}

func (s *sessionState) handleCapLS(m *Message) {
	awaiting := s.findAwaiting(ActionLogIn)
	if awaiting == nil {
		return
	}

	if len(m.Parameters) >= 4 && m.Parameters[2] == "*" {
		s.addSupportedCaps(m.Parameters[3])
		return // more CAP LS lines are coming
	}
	if len(m.Parameters) >= 3 {
		s.addSupportedCaps(m.Parameters[2])
	}
	s.decideCaps(awaiting)
}

func (s *sessionState) addSupportedCaps(raw string) {
	for _, c := range strings.Fields(raw) {
		s.capsSupported[c] = struct{}{}
	}
}

func (s *sessionState) decideCaps(awaiting *Action) {
	for _, c := range wantedCaps {
		if _, ok := s.capsSupported[c]; !ok {
			s.proceedToAuth(awaiting)
			return
		}
	}
	s.sendLine(capReq(wantedCaps...))
	awaiting.Type = ActionRequestCaps
	awaiting.Expiration = s.timeKeeper.Now() + loginTimeoutSeconds
}

func (s *sessionState) handleCapAck(m *Message) {
	awaiting := s.findAwaiting(ActionRequestCaps)
	if awaiting == nil {
		return
	}
	s.proceedToAuth(awaiting)
}

func (s *sessionState) proceedToAuth(awaiting *Action) {
	s.sendLine(capEnd())
	if !s.anonymous {
		s.sendLine(pass(s.token))
	}
	s.sendLine(nick(s.nickname))
	awaiting.Type = ActionAwaitMotd
	awaiting.Expiration = s.timeKeeper.Now() + loginTimeoutSeconds
}

func (s *sessionState) handleEndOfMotd(m *Message) {
	if s.loggedIn {
		return
	}
	s.loggedIn = true
	s.removeAwaiting(ActionAwaitMotd)
	s.user.LogIn()
}

func isAuthFailureNotice(content string) bool {
	return strings.Contains(content, "Login authentication failed") ||
		strings.Contains(content, "Login unsuccessful")
}

func (s *sessionState) handleNotice(m *Message) {
	content := m.Param(len(m.Parameters))
	target := m.Param(1)
	channel := ""
	if target != "*" {
		channel = stripChannelPrefix(target)
	}

	s.user.Notice(NoticeInfo{
		ID:      m.Tags.Get("msg-id"),
		Channel: channel,
		Content: content,
	})

	if !s.loggedIn && isAuthFailureNotice(content) {
		s.removeAwaiting(ActionAwaitMotd)
		s.disconnect("")
	}
}

func (s *sessionState) handlePing(m *Message) {
	s.sendLine(pong(m.Param(1)))
}

func (s *sessionState) handleJoinFrame(m *Message) {
	user := m.Nick()
	if s.anonymous && anonymousNickname.MatchString(user) {
		return
	}
	s.user.Join(MembershipInfo{User: user, Channel: stripChannelPrefix(m.Param(1))})
}

func (s *sessionState) handlePartFrame(m *Message) {
	user := m.Nick()
	if s.anonymous && anonymousNickname.MatchString(user) {
		return
	}
	s.user.Leave(MembershipInfo{User: user, Channel: stripChannelPrefix(m.Param(1))})
}

const actionEnvelopePrefix = "\x01ACTION"
const actionEnvelopeSuffix = "\x01"

func (s *sessionState) handlePrivmsgFrame(m *Message) {
	target := m.Param(1)
	content := m.Param(2)
	user := m.Nick()

	if user == "jtv" && !strings.HasPrefix(target, "#") {
		s.user.PrivateMessage(MessageInfo{Tags: m.Tags, User: user, MessageContent: content})
		return
	}

	isAction := false
	if strings.HasPrefix(content, actionEnvelopePrefix) && strings.HasSuffix(content, actionEnvelopeSuffix) {
		isAction = true
		content = strings.TrimPrefix(content, actionEnvelopePrefix)
		content = strings.TrimSuffix(content, actionEnvelopeSuffix)
		content = strings.TrimPrefix(content, " ")
	}

	bits := 0
	if v, err := strconv.Atoi(m.Tags.Get("bits")); err == nil {
		bits = v
	}

	s.user.Message(MessageInfo{
		Tags:           m.Tags,
		User:           user,
		Channel:        stripChannelPrefix(target),
		MessageContent: content,
		MessageID:      m.Tags.Get("id"),
		Bits:           bits,
		IsAction:       isAction,
	})
}

func (s *sessionState) handleWhisperFrame(m *Message) {
	s.user.Whisper(WhisperInfo{
		Tags:           m.Tags,
		User:           m.Nick(),
		MessageContent: m.Param(2),
	})
}

func (s *sessionState) handleHostTargetFrame(m *Message) {
	hoster := stripChannelPrefix(m.Param(1))
	fields := strings.Fields(m.Param(2))

	target := ""
	viewersRaw := ""
	if len(fields) > 0 {
		target = fields[0]
	}
	if len(fields) > 1 {
		viewersRaw = fields[1]
	}

	on := target != "" && target != "-"
	beingHosted := ""
	if on {
		beingHosted = target
	}
	viewers, _ := strconv.ParseUint(viewersRaw, 10, 64)

	s.user.Host(HostInfo{Hoster: hoster, On: on, BeingHosted: beingHosted, Viewers: viewers})
}

var roomModeTags = []string{"slow", "followers-only", "r9k", "emote-only", "subs-only"}

func (s *sessionState) handleRoomStateFrame(m *Message) {
	channel := stripChannelPrefix(m.Param(1))
	for _, mode := range roomModeTags {
		if !m.Tags.Has(mode) {
			continue
		}
		v, _ := strconv.Atoi(m.Tags.Get(mode))
		s.user.RoomModeChange(RoomModeChangeInfo{
			ChannelName: channel,
			ChannelID:   m.Tags.ChannelID,
			Mode:        mode,
			Parameter:   v,
		})
	}
}

// clearChatTags projects m.Tags for a ClearInfo, overriding UserID from
// target-user-id since CLEARCHAT identifies its target that way rather
// than through the generic user-id tag.
func clearChatTags(m *Message) TagsInfo {
	tags := m.Tags
	tags.UserID = decodeUint(m.Tags.Get("target-user-id"))
	return tags
}

func (s *sessionState) handleClearChatFrame(m *Message) {
	channel := stripChannelPrefix(m.Param(1))
	user := m.Param(2)

	if user == "" {
		s.user.Clear(ClearInfo{Type: ClearAll, Channel: channel, Tags: clearChatTags(m)})
		return
	}

	info := ClearInfo{
		Channel: channel,
		Tags:    clearChatTags(m),
		User:    user,
		UserID:  decodeUint(m.Tags.Get("target-user-id")),
		Reason:  unescapeTagValue(m.Tags.Get("ban-reason")),
	}
	if d := m.Tags.Get("ban-duration"); d != "" {
		info.Type = ClearTimeout
		info.Duration, _ = strconv.Atoi(d)
	} else {
		info.Type = ClearBan
	}
	s.user.Clear(info)
}

func (s *sessionState) handleClearMsgFrame(m *Message) {
	s.user.Clear(ClearInfo{
		Type:                    ClearMessage,
		Channel:                 stripChannelPrefix(m.Param(1)),
		Tags:                    m.Tags,
		OffendingMessageContent: m.Param(2),
		OffendingMessageID:      m.Tags.Get("target-msg-id"),
		UserName:                m.Tags.Get("login"),
	})
}

func (s *sessionState) handleModeFrame(m *Message) {
	var mod bool
	switch m.Param(2) {
	case "+o":
		mod = true
	case "-o":
		mod = false
	default:
		return
	}
	s.user.Mod(ModInfo{
		Channel: stripChannelPrefix(m.Param(1)),
		User:    m.Param(3),
		Mod:     mod,
	})
}

func (s *sessionState) handleGlobalUserStateFrame(m *Message) {
	s.user.UserState(UserStateInfo{Tags: m.Tags, Global: true})
}

func (s *sessionState) handleUserStateFrame(m *Message) {
	s.user.UserState(UserStateInfo{Tags: m.Tags, Channel: stripChannelPrefix(m.Param(1)), Global: false})
}

func (s *sessionState) handleUserNoticeFrame(m *Message) {
	channel := stripChannelPrefix(m.Param(1))
	switch m.Tags.Get("msg-id") {
	case "sub", "resub":
		s.emitSub(channel, m)
	case "subgift":
		s.emitGiftedSub(channel, m)
	case "submysterygift":
		s.emitMysteryGift(channel, m)
	case "raid":
		s.emitRaid(channel, m)
	case "ritual":
		s.emitRitual(channel, m)
	default:
		s.user.Sub(SubInfo{Type: SubUnknown, Channel: channel, User: m.Tags.Get("login")})
	}
}

func (s *sessionState) emitSub(channel string, m *Message) {
	typ := SubNew
	if m.Tags.Get("msg-id") == "resub" {
		typ = SubResub
	}
	months, _ := strconv.Atoi(m.Tags.Get("msg-param-months"))
	s.user.Sub(SubInfo{
		Type:          typ,
		Channel:       channel,
		User:          m.Tags.Get("login"),
		Months:        months,
		PlanID:        m.Tags.Get("msg-param-sub-plan"),
		PlanName:      unescapeTagValue(m.Tags.Get("msg-param-sub-plan-name")),
		SystemMessage: unescapeTagValue(m.Tags.Get("system-msg")),
	})
}

func (s *sessionState) emitGiftedSub(channel string, m *Message) {
	senderCount, _ := strconv.Atoi(m.Tags.Get("msg-param-sender-count"))
	s.user.Sub(SubInfo{
		Type:                 SubGifted,
		Channel:              channel,
		User:                 m.Tags.Get("login"),
		PlanID:               m.Tags.Get("msg-param-sub-plan"),
		PlanName:             unescapeTagValue(m.Tags.Get("msg-param-sub-plan-name")),
		SystemMessage:        unescapeTagValue(m.Tags.Get("system-msg")),
		RecipientDisplayName: m.Tags.Get("msg-param-recipient-display-name"),
		RecipientUserName:    m.Tags.Get("msg-param-recipient-user-name"),
		RecipientID:          decodeUint(m.Tags.Get("msg-param-recipient-id")),
		SenderCount:          senderCount,
	})
}

func (s *sessionState) emitMysteryGift(channel string, m *Message) {
	massGiftCount, _ := strconv.Atoi(m.Tags.Get("msg-param-mass-gift-count"))
	senderCount, _ := strconv.Atoi(m.Tags.Get("msg-param-sender-count"))
	s.user.Sub(SubInfo{
		Type:          SubMysteryGift,
		Channel:       channel,
		User:          m.Tags.Get("login"),
		MassGiftCount: massGiftCount,
		SenderCount:   senderCount,
	})
}

func (s *sessionState) emitRaid(channel string, m *Message) {
	viewers, _ := strconv.Atoi(m.Tags.Get("msg-param-viewerCount"))
	s.user.Raid(RaidInfo{
		Channel: channel,
		Raider:  m.Tags.Get("msg-param-login"),
		Viewers: viewers,
	})
}

func (s *sessionState) emitRitual(channel string, m *Message) {
	s.user.Ritual(RitualInfo{
		Channel: channel,
		User:    m.Tags.Get("login"),
		Ritual:  m.Tags.Get("msg-param-ritual-name"),
	})
}

func (s *sessionState) handleReconnect(m *Message) {
	s.user.Doom()
}

// serverCommandHandlers is the dispatch table for parsed frames, keyed by
// command/numeric. Built once and treated as a constant; unlike
// actionPerformers it is keyed by the wire string rather than a closed
// enum, because the set of commands a server might send is open-world, and
// a command missing from it is logged and skipped.
var serverCommandHandlers = map[string]func(*sessionState, *Message){
	RplEndOfMotd:       (*sessionState).handleEndOfMotd,
	CmdPing:            (*sessionState).handlePing,
	CmdJoin:            (*sessionState).handleJoinFrame,
	CmdPart:            (*sessionState).handlePartFrame,
	CmdPrivmsg:         (*sessionState).handlePrivmsgFrame,
	CmdCap:             (*sessionState).handleCap,
	CmdWhisper:         (*sessionState).handleWhisperFrame,
	CmdNotice:          (*sessionState).handleNotice,
	CmdHostTarget:      (*sessionState).handleHostTargetFrame,
	CmdRoomState:       (*sessionState).handleRoomStateFrame,
	CmdClearChat:       (*sessionState).handleClearChatFrame,
	CmdClearMsg:        (*sessionState).handleClearMsgFrame,
	CmdMode:            (*sessionState).handleModeFrame,
	CmdGlobalUserState: (*sessionState).handleGlobalUserStateFrame,
	CmdUserState:       (*sessionState).handleUserStateFrame,
	CmdUserNotice:      (*sessionState).handleUserNoticeFrame,
	CmdReconnect:       (*sessionState).handleReconnect,
}
