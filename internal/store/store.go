// Package store holds all mutable application state for the journal: diary
// entries, liberation sessions, companion chat history, progress counters and
// the community feed. Every mutation is serialized to a durable Backend before
// the call returns; on start the envelope is read back and migrated to the
// current schema version.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// envelope is the versioned wrapper written to durable storage.
type envelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

// Store is the single source of truth for application state. All methods are
// safe for concurrent use; mutations apply in the order invoked.
type Store struct {
	mu      sync.Mutex
	backend Backend
	logger  *slog.Logger
	now     func() time.Time

	state State

	// Transient selection state, never persisted.
	currentEmotion  string
	currentPrompt   *WritingPrompt
	currentCategory string
	writingContent  string
	isWriting       bool
	showPrivate     bool
	dailyQuote      *Quote

	lastSaveErr error

	subscribers map[int]func()
	nextSubID   int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithClock overrides the time source. Tests use it to pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open hydrates a Store from the backend. A missing envelope initializes
// empty collections and default settings; an envelope with an older version
// is migrated step by step before loading.
func Open(backend Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend:     backend,
		logger:      slog.Default(),
		now:         time.Now,
		subscribers: map[int]func(){},
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := backend.Read()
	if errors.Is(err, ErrNotExist) {
		s.state = newState()
		s.persistLocked()
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read persisted state: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to parse persisted envelope: %w", err)
	}

	switch {
	case env.Version == CurrentVersion:
		if err := json.Unmarshal(env.State, &s.state); err != nil {
			return nil, fmt.Errorf("failed to parse persisted state: %w", err)
		}
	case env.Version < CurrentVersion:
		var doc map[string]any
		if err := json.Unmarshal(env.State, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse persisted state: %w", err)
		}
		doc, err = Migrate(doc, env.Version)
		if err != nil {
			return nil, err
		}
		migrated, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize migrated state: %w", err)
		}
		if err := json.Unmarshal(migrated, &s.state); err != nil {
			return nil, fmt.Errorf("failed to load migrated state: %w", err)
		}
	default:
		return nil, fmt.Errorf("persisted version %d is newer than supported version %d", env.Version, CurrentVersion)
	}

	s.state.normalize()
	if env.Version < CurrentVersion {
		s.logger.Info("migrated persisted state", "from", env.Version, "to", CurrentVersion)
		s.persistLocked()
	}
	return s, nil
}

// persistLocked serializes the full state and writes it to the backend. A
// write failure is logged and remembered but never aborts the mutation; the
// in-memory state stays authoritative for the rest of the session.
func (s *Store) persistLocked() {
	raw, err := json.Marshal(s.state)
	if err != nil {
		s.lastSaveErr = err
		s.logger.Error("failed to serialize state", "error", err)
		return
	}
	data, err := json.Marshal(envelope{State: raw, Version: CurrentVersion})
	if err != nil {
		s.lastSaveErr = err
		s.logger.Error("failed to serialize envelope", "error", err)
		return
	}
	if err := s.backend.Write(data); err != nil {
		s.lastSaveErr = err
		s.logger.Error("storage write failed, in-memory state remains authoritative", "error", err)
		return
	}
	s.lastSaveErr = nil
}

// notify invokes every subscriber outside the lock.
func (s *Store) notify() {
	s.mu.Lock()
	listeners := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// Subscribe registers a listener called after every mutation. The returned
// function unsubscribes it.
func (s *Store) Subscribe(listener func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = listener
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// LastSaveError reports whether the most recent durable write failed. A nil
// result means the durable copy is current.
func (s *Store) LastSaveError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaveErr
}

// Export returns the serialized envelope exactly as it would be persisted.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(s.state)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{State: raw, Version: CurrentVersion})
}

// EntryDraft is caller-supplied entry content. Prompt and category context is
// copied in from the current selection at save time.
type EntryDraft struct {
	Title     string
	Content   string
	Emotion   string
	IsPrivate bool
	Tags      []string
	Mood      int
}

// SaveEntry constructs a DiaryEntry from the draft and the currently selected
// prompt/category, prepends it to the collection, clears the selection and
// recomputes progress. Drafts with empty content are rejected: SaveEntry is a
// no-op returning nil, matching the caller-validates contract of the UI.
func (s *Store) SaveEntry(draft EntryDraft) *DiaryEntry {
	if draft.Content == "" {
		return nil
	}

	s.mu.Lock()
	entry := DiaryEntry{
		ID:        "entry_" + uuid.New().String(),
		Title:     draft.Title,
		Content:   draft.Content,
		Emotion:   draft.Emotion,
		Date:      s.now(),
		IsPrivate: draft.IsPrivate,
		Tags:      draft.Tags,
		Mood:      draft.Mood,
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	// Origin context is fixed at creation and never recomputed. The selected
	// category is copied whether or not a prompt is active; only the entry
	// type depends on the prompt.
	entry.Category = s.currentCategory
	switch {
	case s.currentPrompt != nil && s.currentCategory != "":
		entry.EntryType = EntryCategory
		entry.PromptID = s.currentPrompt.ID
		entry.PromptText = s.currentPrompt.Text
	case s.currentPrompt != nil:
		entry.EntryType = EntryRandom
		entry.PromptID = s.currentPrompt.ID
		entry.PromptText = s.currentPrompt.Text
	default:
		entry.EntryType = EntryFree
	}

	s.state.DiaryEntries = append([]DiaryEntry{entry}, s.state.DiaryEntries...)
	s.currentPrompt = nil
	s.currentCategory = ""
	s.writingContent = ""
	s.isWriting = false
	s.recomputeProgressLocked()
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return &entry
}

// DeleteEntry removes the entry with the given id. Deleting an absent id is a
// no-op, so the operation is idempotent.
func (s *Store) DeleteEntry(id string) {
	s.mu.Lock()
	filtered := s.state.DiaryEntries[:0]
	for _, entry := range s.state.DiaryEntries {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	s.state.DiaryEntries = filtered
	s.recomputeProgressLocked()
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// EntryUpdate holds the fields an edit may change. Nil pointers leave the
// existing value untouched.
type EntryUpdate struct {
	Title     *string
	Content   *string
	Emotion   *string
	IsPrivate *bool
	Tags      []string
	Mood      *int
}

// UpdateEntry merges the update into the entry with the given id. Unknown ids
// are a no-op.
func (s *Store) UpdateEntry(id string, update EntryUpdate) {
	s.mu.Lock()
	for i := range s.state.DiaryEntries {
		if s.state.DiaryEntries[i].ID != id {
			continue
		}
		entry := &s.state.DiaryEntries[i]
		if update.Title != nil {
			entry.Title = *update.Title
		}
		if update.Content != nil {
			entry.Content = *update.Content
		}
		if update.Emotion != nil {
			entry.Emotion = *update.Emotion
		}
		if update.IsPrivate != nil {
			entry.IsPrivate = *update.IsPrivate
		}
		if update.Tags != nil {
			entry.Tags = update.Tags
		}
		if update.Mood != nil {
			entry.Mood = *update.Mood
		}
		break
	}
	s.recomputeProgressLocked()
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// LiberationDraft is the input for a single release action.
type LiberationDraft struct {
	Content     string
	Emotion     string
	Action      LiberationAction
	IsDestroyed bool
	// KeepContent keeps a copy of the released text. When false the stored
	// content is replaced with RedactedContent.
	KeepContent bool
}

// SaveLiberationSession constructs and prepends a write-once liberation
// session and recomputes progress.
func (s *Store) SaveLiberationSession(draft LiberationDraft) LiberationSession {
	content := draft.Content
	if !draft.KeepContent {
		content = RedactedContent
	}

	s.mu.Lock()
	session := LiberationSession{
		ID:          uuid.New().String(),
		Content:     content,
		Emotion:     draft.Emotion,
		Action:      draft.Action,
		Date:        s.now(),
		IsDestroyed: draft.IsDestroyed,
	}
	s.state.LiberationSessions = append([]LiberationSession{session}, s.state.LiberationSessions...)
	s.recomputeProgressLocked()
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return session
}

// ChatDraft is the input for one appended conversation turn.
type ChatDraft struct {
	Role    string // "user" or "assistant"
	Content string
}

// AddChatMessage appends a message with a generated id and timestamp.
func (s *Store) AddChatMessage(draft ChatDraft) ChatMessage {
	s.mu.Lock()
	msg := ChatMessage{
		ID:        "msg_" + uuid.New().String(),
		Role:      draft.Role,
		Content:   draft.Content,
		Timestamp: s.now(),
	}
	s.state.ChatMessages = append(s.state.ChatMessages, msg)
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return msg
}

// ClearChatHistory removes every chat message.
func (s *Store) ClearChatHistory() {
	s.mu.Lock()
	s.state.ChatMessages = []ChatMessage{}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// ConciencIASettingsUpdate holds the settings fields an update may change.
type ConciencIASettingsUpdate struct {
	APIKey                  *string
	Personality             *string
	ResponseStyle           *string
	IncludeEmotionalSupport *bool
}

// UpdateConciencIASettings merges the update into the companion settings.
func (s *Store) UpdateConciencIASettings(update ConciencIASettingsUpdate) {
	s.mu.Lock()
	settings := &s.state.ConciencIASettings
	if update.APIKey != nil {
		settings.APIKey = *update.APIKey
	}
	if update.Personality != nil {
		settings.Personality = *update.Personality
	}
	if update.ResponseStyle != nil {
		settings.ResponseStyle = *update.ResponseStyle
	}
	if update.IncludeEmotionalSupport != nil {
		settings.IncludeEmotionalSupport = *update.IncludeEmotionalSupport
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// SetCurrentEmotion records the emotion the user is exploring.
func (s *Store) SetCurrentEmotion(emotion string) {
	s.mu.Lock()
	s.currentEmotion = emotion
	s.mu.Unlock()
}

// SetCurrentPrompt selects the prompt the next entry will be written from.
func (s *Store) SetCurrentPrompt(prompt *WritingPrompt) {
	s.mu.Lock()
	s.currentPrompt = prompt
	s.mu.Unlock()
}

// SetCurrentCategory selects the category the next entry will be attributed to.
func (s *Store) SetCurrentCategory(category string) {
	s.mu.Lock()
	s.currentCategory = category
	s.mu.Unlock()
}

// SetWritingContent updates the in-progress writing buffer.
func (s *Store) SetWritingContent(content string) {
	s.mu.Lock()
	s.writingContent = content
	s.mu.Unlock()
}

// SetIsWriting toggles the writing flow flag.
func (s *Store) SetIsWriting(writing bool) {
	s.mu.Lock()
	s.isWriting = writing
	s.mu.Unlock()
}

// TogglePrivateEntries flips visibility of private entries and returns the
// new value.
func (s *Store) TogglePrivateEntries() bool {
	s.mu.Lock()
	s.showPrivate = !s.showPrivate
	v := s.showPrivate
	s.mu.Unlock()
	return v
}

// SetDailyQuote installs the quote for today unless today's quote is already
// set. It returns the active quote.
func (s *Store) SetDailyQuote(quote Quote) Quote {
	s.mu.Lock()
	today := dayStamp(s.now())
	if s.dailyQuote == nil || s.dailyQuote.Date != today {
		quote.Date = today
		s.dailyQuote = &quote
	}
	q := *s.dailyQuote
	s.mu.Unlock()
	return q
}

// DailyQuote returns today's quote, if one has been set.
func (s *Store) DailyQuote() *Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dailyQuote == nil {
		return nil
	}
	q := *s.dailyQuote
	return &q
}

// CurrentPrompt returns the currently selected writing prompt, if any.
func (s *Store) CurrentPrompt() *WritingPrompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentPrompt == nil {
		return nil
	}
	p := *s.currentPrompt
	return &p
}

// CurrentCategory returns the currently selected category.
func (s *Store) CurrentCategory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentCategory
}

// Entries returns a copy of the diary entries, newest first.
func (s *Store) Entries() []DiaryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]DiaryEntry, len(s.state.DiaryEntries))
	copy(out, s.state.DiaryEntries)
	return out
}

// EntriesByEmotion returns entries tagged with the given emotion.
func (s *Store) EntriesByEmotion(emotion string) []DiaryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []DiaryEntry
	for _, entry := range s.state.DiaryEntries {
		if entry.Emotion == emotion {
			out = append(out, entry)
		}
	}
	return out
}

// LiberationSessions returns a copy of the liberation sessions, newest first.
func (s *Store) LiberationSessions() []LiberationSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LiberationSession, len(s.state.LiberationSessions))
	copy(out, s.state.LiberationSessions)
	return out
}

// ChatMessages returns a copy of the conversation history in append order.
func (s *Store) ChatMessages() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatMessage, len(s.state.ChatMessages))
	copy(out, s.state.ChatMessages)
	return out
}

// Progress returns the current aggregate counters.
func (s *Store) Progress() UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UserProgress
}

// CategoryProgress returns a copy of the per-category exploration counts.
func (s *Store) CategoryProgress() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.state.CategoryProgress))
	for k, v := range s.state.CategoryProgress {
		out[k] = v
	}
	return out
}

// Settings returns the companion settings.
func (s *Store) Settings() ConciencIASettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ConciencIASettings
}
