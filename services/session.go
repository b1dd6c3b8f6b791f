package services

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrNoConversation: a format was picked but the chat has no link on record.
	ErrNoConversation = errors.New("no link on record for this chat")
	// ErrStaleChoice: the format was picked from a menu that a newer link replaced.
	ErrStaleChoice = errors.New("format choice belongs to an older link")
	// ErrRetrievalInProgress: the chat already has a retrieval running.
	ErrRetrievalInProgress = errors.New("a retrieval is already running for this chat")
)

// Phase is where a chat is in the request flow.
type Phase string

const (
	PhaseIdle                 Phase = "idle"
	PhaseAwaitingFormatChoice Phase = "awaiting_format_choice"
	PhaseRetrieving           Phase = "retrieving"
	PhaseDelivering           Phase = "delivering"
	PhaseFailed               Phase = "failed"
)

// ConversationContext is what the bot remembers about one chat: the last
// submitted link and the menu offered for it.
type ConversationContext struct {
	URL           string
	Title         string
	VideoID       string
	MenuMessageID int
	Phase         Phase
	UpdatedAt     time.Time
}

// sessionTTL bounds how long an untouched chat is remembered.
const sessionTTL = 24 * time.Hour

// SessionStore holds per-chat conversation state. A new link overwrites the
// previous one.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*ConversationContext
	limiters map[int64]*rate.Limiter

	limit rate.Limit
	burst int
	now   func() time.Time
}

// NewSessionStore creates a store allowing perMinute links per chat;
// zero or less disables the limit.
func NewSessionStore(perMinute int) *SessionStore {
	s := &SessionStore{
		sessions: make(map[int64]*ConversationContext),
		limiters: make(map[int64]*rate.Limiter),
		limit:    rate.Inf,
		now:      time.Now,
	}
	if perMinute > 0 {
		s.limit = rate.Every(time.Minute / time.Duration(perMinute))
		s.burst = perMinute
	}
	return s
}

// Allow consumes one submission token for chatID.
func (s *SessionStore) Allow(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[chatID]
	if !ok {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters[chatID] = limiter
	}
	return limiter.AllowN(s.now(), 1)
}

// Remember records a freshly described link for chatID, replacing anything
// stored before.
func (s *SessionStore) Remember(chatID int64, url string, meta VideoMetadata) ConversationContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()

	conv := &ConversationContext{
		URL:       url,
		Title:     meta.Title,
		VideoID:   meta.VideoID,
		Phase:     PhaseIdle,
		UpdatedAt: s.now(),
	}
	s.sessions[chatID] = conv
	return *conv
}

// SetMenu binds messageID as the format menu of url. It reports false and
// changes nothing when the chat has since moved on to another link, so a
// menu is never attached to a URL it was not built for.
func (s *SessionStore) SetMenu(chatID int64, url string, messageID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.sessions[chatID]
	if !ok || conv.URL != url {
		return false
	}
	conv.MenuMessageID = messageID
	conv.Phase = PhaseAwaitingFormatChoice
	conv.UpdatedAt = s.now()
	return true
}

// Get returns a copy of the chat's context.
func (s *SessionStore) Get(chatID int64) (ConversationContext, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.sessions[chatID]
	if !ok {
		return ConversationContext{}, false
	}
	return *conv, true
}

// BeginRetrieval validates a format choice made on menuMessageID and moves
// the chat into PhaseRetrieving.
func (s *SessionStore) BeginRetrieval(chatID int64, menuMessageID int) (ConversationContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.sessions[chatID]
	if !ok || conv.URL == "" {
		return ConversationContext{}, ErrNoConversation
	}
	if conv.MenuMessageID != menuMessageID {
		return ConversationContext{}, ErrStaleChoice
	}
	if conv.Phase == PhaseRetrieving || conv.Phase == PhaseDelivering {
		return ConversationContext{}, ErrRetrievalInProgress
	}

	conv.Phase = PhaseRetrieving
	conv.UpdatedAt = s.now()
	return *conv, nil
}

// SetPhase moves the chat to phase. Terminal phases settle back to idle so
// another format can be picked from the same menu.
func (s *SessionStore) SetPhase(chatID int64, phase Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.sessions[chatID]
	if !ok {
		return
	}
	if phase == PhaseFailed {
		phase = PhaseIdle
	}
	conv.Phase = phase
	conv.UpdatedAt = s.now()
}

// Len is the number of chats currently remembered.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) pruneLocked() {
	cutoff := s.now().Add(-sessionTTL)
	for chatID, conv := range s.sessions {
		if conv.UpdatedAt.Before(cutoff) && conv.Phase != PhaseRetrieving {
			delete(s.sessions, chatID)
			delete(s.limiters, chatID)
		}
	}
}
