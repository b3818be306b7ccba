package store

import (
	"sort"

	"github.com/google/uuid"
)

// SetCurrentUser installs the profile that owns new posts and scopes the
// hasLiked flags.
func (s *Store) SetCurrentUser(user *User) {
	s.mu.Lock()
	s.state.CurrentUser = user
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// CurrentUser returns the active community profile, if any.
func (s *Store) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentUser == nil {
		return nil
	}
	u := *s.state.CurrentUser
	return &u
}

// PostDraft is caller-supplied post content.
type PostDraft struct {
	Title            string
	Content          string
	Type             string
	IsPublic         bool
	Tags             []string
	PublicCategories []string
	PromptID         string
}

// CreatePost prepends a post authored by the current user. Without a current
// user it is a no-op returning nil.
func (s *Store) CreatePost(draft PostDraft) *CommunityPost {
	s.mu.Lock()
	if s.state.CurrentUser == nil {
		s.mu.Unlock()
		return nil
	}
	author := *s.state.CurrentUser
	post := CommunityPost{
		ID:               "post_" + uuid.New().String(),
		AuthorID:         author.ID,
		Author:           author,
		PromptID:         draft.PromptID,
		Title:            draft.Title,
		Content:          draft.Content,
		Type:             draft.Type,
		IsPublic:         draft.IsPublic,
		Tags:             draft.Tags,
		PublicCategories: draft.PublicCategories,
		CreatedAt:        s.now(),
		UpdatedAt:        s.now(),
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if post.PublicCategories == nil {
		post.PublicCategories = []string{}
	}
	s.state.CommunityPosts = append([]CommunityPost{post}, s.state.CommunityPosts...)
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return &post
}

// LikePost toggles the viewing user's like on a post, adjusting the counter
// in the same direction.
func (s *Store) LikePost(postID string) {
	s.mu.Lock()
	for i := range s.state.CommunityPosts {
		post := &s.state.CommunityPosts[i]
		if post.ID != postID {
			continue
		}
		if post.HasLiked {
			post.Likes--
		} else {
			post.Likes++
		}
		post.HasLiked = !post.HasLiked
		break
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// UnlikePost removes the viewing user's like, only if one is present.
func (s *Store) UnlikePost(postID string) {
	s.mu.Lock()
	for i := range s.state.CommunityPosts {
		post := &s.state.CommunityPosts[i]
		if post.ID == postID && post.HasLiked {
			post.Likes--
			post.HasLiked = false
			break
		}
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// FollowUser adds a user id to the followed set.
func (s *Store) FollowUser(userID string) {
	s.mu.Lock()
	found := false
	for _, id := range s.state.FollowedUsers {
		if id == userID {
			found = true
			break
		}
	}
	if !found {
		s.state.FollowedUsers = append(s.state.FollowedUsers, userID)
		s.persistLocked()
	}
	s.mu.Unlock()
	s.notify()
}

// UnfollowUser removes a user id from the followed set.
func (s *Store) UnfollowUser(userID string) {
	s.mu.Lock()
	filtered := s.state.FollowedUsers[:0]
	for _, id := range s.state.FollowedUsers {
		if id != userID {
			filtered = append(filtered, id)
		}
	}
	s.state.FollowedUsers = filtered
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// FollowedUsers returns a copy of the followed user ids.
func (s *Store) FollowedUsers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.state.FollowedUsers))
	copy(out, s.state.FollowedUsers)
	return out
}

// CommunitySettingsUpdate holds the settings fields an update may change.
type CommunitySettingsUpdate struct {
	AllowPublicPosts *bool
	AllowComments    *bool
	AllowFollowers   *bool
	ShowRealName     *bool
	NotifyOnLikes    *bool
	NotifyOnComments *bool
	NotifyOnFollows  *bool
}

// UpdateCommunitySettings merges the update into the community settings.
func (s *Store) UpdateCommunitySettings(update CommunitySettingsUpdate) {
	s.mu.Lock()
	settings := &s.state.CommunitySettings
	if update.AllowPublicPosts != nil {
		settings.AllowPublicPosts = *update.AllowPublicPosts
	}
	if update.AllowComments != nil {
		settings.AllowComments = *update.AllowComments
	}
	if update.AllowFollowers != nil {
		settings.AllowFollowers = *update.AllowFollowers
	}
	if update.ShowRealName != nil {
		settings.ShowRealName = *update.ShowRealName
	}
	if update.NotifyOnLikes != nil {
		settings.NotifyOnLikes = *update.NotifyOnLikes
	}
	if update.NotifyOnComments != nil {
		settings.NotifyOnComments = *update.NotifyOnComments
	}
	if update.NotifyOnFollows != nil {
		settings.NotifyOnFollows = *update.NotifyOnFollows
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// CommunitySettings returns the current social preferences.
func (s *Store) CommunitySettings() CommunitySettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CommunitySettings
}

// PublicFeed returns public posts, newest first.
func (s *Store) PublicFeed() []CommunityPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	var feed []CommunityPost
	for _, post := range s.state.CommunityPosts {
		if post.IsPublic {
			feed = append(feed, post)
		}
	}
	sortPostsByCreated(feed)
	return feed
}

// FollowingFeed returns public posts authored by followed users or the
// current user, newest first.
func (s *Store) FollowingFeed() []CommunityPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	followed := make(map[string]bool, len(s.state.FollowedUsers))
	for _, id := range s.state.FollowedUsers {
		followed[id] = true
	}
	var selfID string
	if s.state.CurrentUser != nil {
		selfID = s.state.CurrentUser.ID
	}

	var feed []CommunityPost
	for _, post := range s.state.CommunityPosts {
		if post.IsPublic && (followed[post.AuthorID] || (selfID != "" && post.AuthorID == selfID)) {
			feed = append(feed, post)
		}
	}
	sortPostsByCreated(feed)
	return feed
}

func sortPostsByCreated(posts []CommunityPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
