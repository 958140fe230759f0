package domain

import "time"

// Step is the dialogue position of a session. Steps only move forward except
// for an explicit restart, which resets the session to StepCollecting.
type Step string

const (
	StepCollecting   Step = "collecting"
	StepConfirming   Step = "confirming"
	StepSearching    Step = "searching"
	StepResultsReady Step = "results_ready"
)

// Speaker identifies who produced a history entry
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// HistoryEntry is one chat turn kept on the session
type HistoryEntry struct {
	Speaker Speaker   `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
}

// DialogueSession is one user's ongoing conversation. A session exclusively
// owns its query and cached result for its lifetime; the chat service is the
// only mutator between Get and Save.
type DialogueSession struct {
	ID         string         `json:"id"`
	Step       Step           `json:"step"`
	History    []HistoryEntry `json:"history"`
	Query      TravelQuery    `json:"query"`
	LastResult *SearchResult  `json:"last_result,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Append records a chat turn on the session history
func (s *DialogueSession) Append(speaker Speaker, text string) {
	s.History = append(s.History, HistoryEntry{Speaker: speaker, Text: text, At: time.Now()})
}

// Reset returns the session to collecting with a fresh query seeded from the
// given values. The cached result is dropped so a stale search cannot be
// served for the new trip.
func (s *DialogueSession) Reset(seed TravelQuery) {
	s.Step = StepCollecting
	s.Query = seed
	s.LastResult = nil
}

// SessionStore is the shared conversation store. Implementations must be safe
// for concurrent use and must guarantee at most one in-flight search per
// session id via TryLockForSearch/Unlock.
type SessionStore interface {
	// Get returns the session for the id, creating a new collecting session
	// when the id has not been seen before. The session is handed out under
	// its turn lock: a second Get for the same id blocks until Save, so only
	// one caller at a time mutates a session.
	Get(id string) *DialogueSession

	// Save persists the session state and releases the turn lock taken by
	// the matching Get.
	Save(session *DialogueSession)

	// Peek returns a read-only copy of the session, or nil when the id is
	// unknown. It never creates a session.
	Peek(id string) *DialogueSession

	// TryLockForSearch acquires the session's search slot without blocking.
	// It returns false when a search for this session is already running.
	TryLockForSearch(id string) bool

	// Unlock releases the session's search slot.
	Unlock(id string)
}
