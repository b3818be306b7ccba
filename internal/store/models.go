package store

import "time"

// EntryType records how a diary entry was started. It is fixed at creation
// time and never recomputed.
type EntryType string

const (
	EntryCategory EntryType = "category"
	EntryRandom   EntryType = "random"
	EntryFree     EntryType = "free"
)

// LiberationAction is the symbolic release gesture chosen by the user.
type LiberationAction string

const (
	ActionBurn    LiberationAction = "burn"
	ActionTear    LiberationAction = "tear"
	ActionBury    LiberationAction = "bury"
	ActionRelease LiberationAction = "release"
)

// RedactedContent replaces liberation text the user chose not to keep.
const RedactedContent = "[contenido liberado]"

// DiaryEntry is a single journal record.
type DiaryEntry struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Emotion    string    `json:"emotion"`
	Date       time.Time `json:"date"`
	IsPrivate  bool      `json:"isPrivate"`
	Tags       []string  `json:"tags"`
	Mood       int       `json:"mood,omitempty"` // 1-10 scale, 0 means unset
	Category   string    `json:"category,omitempty"`
	PromptID   string    `json:"promptId,omitempty"`
	PromptText string    `json:"promptText,omitempty"`
	EntryType  EntryType `json:"entryType"`
}

// LiberationSession is a write-once release record. Created on a single user
// action and never mutated afterward.
type LiberationSession struct {
	ID          string           `json:"id"`
	Content     string           `json:"content"`
	Emotion     string           `json:"emotion"`
	Action      LiberationAction `json:"action"`
	Date        time.Time        `json:"date"`
	IsDestroyed bool             `json:"isDestroyed"`
}

// ChatMessage is one turn of the companion conversation. The message list is
// append-only; it is only ever bulk-cleared by ClearChatHistory.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// UserProgress holds aggregate counters. The counters are recomputed from the
// primary collections after every entry or session mutation, so they always
// agree with the derived values.
type UserProgress struct {
	TotalEntries       int      `json:"totalEntries"`
	ConsecutiveDays    int      `json:"consecutiveDays"`
	FavoriteEmotion    string   `json:"favoriteEmotion"`
	CompletedPrompts   []string `json:"completedPrompts"`
	LiberationSessions int      `json:"liberationSessions"`
	LastActiveDate     string   `json:"lastActiveDate"` // YYYY-MM-DD
	CategoriesExplored []string `json:"categoriesExplored"`
}

// ConciencIASettings configures the companion's voice and the optional
// locally held upstream credential.
type ConciencIASettings struct {
	APIKey                  string `json:"apiKey,omitempty"`
	Personality             string `json:"personality"`   // empathetic, creative, supportive
	ResponseStyle           string `json:"responseStyle"` // brief, detailed, creative
	IncludeEmotionalSupport bool   `json:"includeEmotionalSupport"`
}

// WritingPrompt is a suggestion the user may write from. Prompt data itself is
// static; the store only tracks which prompt is currently selected.
type WritingPrompt struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Category   string `json:"category,omitempty"`
	Emotion    string `json:"emotion,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// Quote is the daily inspirational quote, stamped with the day it was picked.
type Quote struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Author   string `json:"author,omitempty"`
	Category string `json:"category,omitempty"`
	Date     string `json:"date,omitempty"` // YYYY-MM-DD of selection
}

// User is a community profile.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	JoinDate    time.Time `json:"joinDate"`
	IsVerified  bool      `json:"isVerified,omitempty"`
}

// CommunityPost is a feed item owned by exactly one author. HasLiked is scoped
// to the viewing user.
type CommunityPost struct {
	ID               string    `json:"id"`
	AuthorID         string    `json:"authorId"`
	Author           User      `json:"author"`
	PromptID         string    `json:"promptId,omitempty"`
	Title            string    `json:"title,omitempty"`
	Content          string    `json:"content"`
	Type             string    `json:"type"` // original, prompt_response, fortune_cookie, creative_share
	IsPublic         bool      `json:"isPublic"`
	Tags             []string  `json:"tags"`
	PublicCategories []string  `json:"publicCategories"`
	Likes            int       `json:"likes"`
	Comments         int       `json:"comments"`
	Shares           int       `json:"shares"`
	HasLiked         bool      `json:"hasLiked,omitempty"`
	HasBookmarked    bool      `json:"hasBookmarked,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CommunitySettings holds the user's social preferences.
type CommunitySettings struct {
	AllowPublicPosts bool `json:"allowPublicPosts"`
	AllowComments    bool `json:"allowComments"`
	AllowFollowers   bool `json:"allowFollowers"`
	ShowRealName     bool `json:"showRealName"`
	NotifyOnLikes    bool `json:"notifyOnLikes"`
	NotifyOnComments bool `json:"notifyOnComments"`
	NotifyOnFollows  bool `json:"notifyOnFollows"`
}

// State is everything written to durable storage. Transient UI selection
// (current prompt, current category, writing buffer) lives on the Store and is
// intentionally not part of the envelope.
type State struct {
	DiaryEntries       []DiaryEntry        `json:"diaryEntries"`
	LiberationSessions []LiberationSession `json:"liberationSessions"`
	UserProgress       UserProgress        `json:"userProgress"`
	CategoryProgress   map[string]int      `json:"categoryProgress"`
	ChatMessages       []ChatMessage       `json:"chatMessages"`
	ConciencIASettings ConciencIASettings  `json:"concienciaSettings"`
	CurrentUser        *User               `json:"currentUser"`
	CommunityPosts     []CommunityPost     `json:"communityPosts"`
	FollowedUsers      []string            `json:"followedUsers"`
	CommunitySettings  CommunitySettings   `json:"communitySettings"`
}

func defaultProgress() UserProgress {
	return UserProgress{
		CompletedPrompts:   []string{},
		CategoriesExplored: []string{},
	}
}

func defaultConciencIASettings() ConciencIASettings {
	return ConciencIASettings{
		Personality:             "empathetic",
		ResponseStyle:           "detailed",
		IncludeEmotionalSupport: true,
	}
}

func defaultCommunitySettings() CommunitySettings {
	return CommunitySettings{
		AllowPublicPosts: true,
		AllowComments:    true,
		AllowFollowers:   true,
		ShowRealName:     false,
		NotifyOnLikes:    true,
		NotifyOnComments: true,
		NotifyOnFollows:  true,
	}
}

func newState() State {
	return State{
		DiaryEntries:       []DiaryEntry{},
		LiberationSessions: []LiberationSession{},
		UserProgress:       defaultProgress(),
		CategoryProgress:   map[string]int{},
		ChatMessages:       []ChatMessage{},
		ConciencIASettings: defaultConciencIASettings(),
		CommunityPosts:     []CommunityPost{},
		FollowedUsers:      []string{},
		CommunitySettings:  defaultCommunitySettings(),
	}
}

// normalize fills collections that older envelopes may have stored as null so
// callers never see nil slices or maps.
func (s *State) normalize() {
	if s.DiaryEntries == nil {
		s.DiaryEntries = []DiaryEntry{}
	}
	if s.LiberationSessions == nil {
		s.LiberationSessions = []LiberationSession{}
	}
	if s.CategoryProgress == nil {
		s.CategoryProgress = map[string]int{}
	}
	if s.ChatMessages == nil {
		s.ChatMessages = []ChatMessage{}
	}
	if s.CommunityPosts == nil {
		s.CommunityPosts = []CommunityPost{}
	}
	if s.FollowedUsers == nil {
		s.FollowedUsers = []string{}
	}
	if s.UserProgress.CompletedPrompts == nil {
		s.UserProgress.CompletedPrompts = []string{}
	}
	if s.UserProgress.CategoriesExplored == nil {
		s.UserProgress.CategoriesExplored = []string{}
	}
}
