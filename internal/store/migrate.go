package store

import "fmt"

// CurrentVersion is the schema version written with every envelope.
//
// History:
//
//	1: diaryEntries, userProgress
//	2: + categoryProgress, userProgress.categoriesExplored
//	3: + liberationSessions, userProgress.liberationSessions
//	4: + chatMessages, concienciaSettings
//	5: + currentUser, communityPosts, followedUsers, communitySettings
const CurrentVersion = 5

// migration upgrades a raw state document by exactly one version. Migrations
// only add missing fields with their defaults; they never remove or rewrite
// existing user data.
type migration func(state map[string]any) map[string]any

// migrations[i] upgrades version i+1 to i+2.
var migrations = []migration{
	migrateCategoryProgress,
	migrateLiberation,
	migrateConciencIA,
	migrateCommunity,
}

// Migrate upgrades a raw state document from the given version to
// CurrentVersion by applying each step in order. It returns an error for
// versions that never shipped.
func Migrate(state map[string]any, from int) (map[string]any, error) {
	if from < 1 || from > CurrentVersion {
		return nil, fmt.Errorf("unknown schema version %d", from)
	}
	if state == nil {
		state = map[string]any{}
	}
	for v := from; v < CurrentVersion; v++ {
		state = migrations[v-1](state)
	}
	return state, nil
}

// migrateCategoryProgress upgrades v1 to v2: per-category exploration counts.
func migrateCategoryProgress(state map[string]any) map[string]any {
	setDefault(state, "categoryProgress", map[string]any{})
	progress := progressDoc(state)
	setDefault(progress, "categoriesExplored", []any{})
	return state
}

// migrateLiberation upgrades v2 to v3: liberation sessions and their counter.
func migrateLiberation(state map[string]any) map[string]any {
	setDefault(state, "liberationSessions", []any{})
	progress := progressDoc(state)
	setDefault(progress, "liberationSessions", float64(0))
	return state
}

// migrateConciencIA upgrades v3 to v4: companion chat history and settings.
func migrateConciencIA(state map[string]any) map[string]any {
	setDefault(state, "chatMessages", []any{})
	setDefault(state, "concienciaSettings", map[string]any{
		"personality":             "empathetic",
		"responseStyle":           "detailed",
		"includeEmotionalSupport": true,
	})
	return state
}

// migrateCommunity upgrades v4 to v5: the social feed state.
func migrateCommunity(state map[string]any) map[string]any {
	setDefault(state, "currentUser", nil)
	setDefault(state, "communityPosts", []any{})
	setDefault(state, "followedUsers", []any{})
	setDefault(state, "communitySettings", map[string]any{
		"allowPublicPosts": true,
		"allowComments":    true,
		"allowFollowers":   true,
		"showRealName":     false,
		"notifyOnLikes":    true,
		"notifyOnComments": true,
		"notifyOnFollows":  true,
	})
	return state
}

// setDefault sets key to def only when the key is absent or null.
func setDefault(doc map[string]any, key string, def any) {
	if v, ok := doc[key]; !ok || v == nil {
		doc[key] = def
	}
}

// progressDoc returns the userProgress sub-document, creating it if an old
// envelope stored it as null.
func progressDoc(state map[string]any) map[string]any {
	if progress, ok := state["userProgress"].(map[string]any); ok {
		return progress
	}
	progress := map[string]any{}
	state["userProgress"] = progress
	return progress
}
