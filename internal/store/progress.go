package store

import (
	"sort"
	"time"
)

// ProgressKind names the activity being counted.
type ProgressKind string

const (
	ProgressEntry      ProgressKind = "entry"
	ProgressLiberation ProgressKind = "liberation"
)

// dayStamp truncates a time to its calendar day.
func dayStamp(t time.Time) string {
	return t.Format("2006-01-02")
}

// daysBetween returns the number of calendar days from b to a, ignoring the
// time of day.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ad.Sub(bd).Hours() / 24)
}

// StreakDays derives the current consecutive-day writing streak from the
// entry collection. Walking the unique entry days from most recent, the
// streak grows while each day is exactly one calendar day behind the previous
// count and stops at the first gap. This is a pure read; the stored
// ConsecutiveDays counter is recomputed to agree with it.
func (s *Store) StreakDays() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streakDaysLocked()
}

func (s *Store) streakDaysLocked() int {
	if len(s.state.DiaryEntries) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(s.state.DiaryEntries))
	days := make([]time.Time, 0, len(s.state.DiaryEntries))
	for _, entry := range s.state.DiaryEntries {
		stamp := dayStamp(entry.Date)
		if !seen[stamp] {
			seen[stamp] = true
			days = append(days, entry.Date)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := s.now()
	streak := 0
	for _, day := range days {
		diff := daysBetween(today, day)
		if diff == streak {
			streak++
		} else {
			break
		}
	}
	return streak
}

// recomputeProgressLocked rebuilds every aggregate counter from the primary
// collections so the counters can never drift from the derived values.
func (s *Store) recomputeProgressLocked() {
	emotionCounts := map[string]int{}
	favorite := ""
	best := 0
	for _, entry := range s.state.DiaryEntries {
		emotionCounts[entry.Emotion]++
		if emotionCounts[entry.Emotion] > best {
			best = emotionCounts[entry.Emotion]
			favorite = entry.Emotion
		}
	}

	explored := make([]string, 0, len(s.state.CategoryProgress))
	for category := range s.state.CategoryProgress {
		explored = append(explored, category)
	}
	sort.Strings(explored)

	progress := &s.state.UserProgress
	progress.TotalEntries = len(s.state.DiaryEntries)
	progress.ConsecutiveDays = s.streakDaysLocked()
	progress.FavoriteEmotion = favorite
	progress.LiberationSessions = len(s.state.LiberationSessions)
	progress.LastActiveDate = dayStamp(s.now())
	progress.CategoriesExplored = explored
}

// IncrementProgress bumps the counter for one completed activity, records
// today as last-active, tracks category exploration and updates the streak.
func (s *Store) IncrementProgress(kind ProgressKind, category string) {
	s.mu.Lock()
	// The streak check runs before today is recorded as last-active, so a
	// first activity on a new day still advances or resets the counter.
	s.updateStreakLocked()

	progress := &s.state.UserProgress
	switch kind {
	case ProgressEntry:
		progress.TotalEntries++
	case ProgressLiberation:
		progress.LiberationSessions++
	}
	progress.LastActiveDate = dayStamp(s.now())

	if category != "" {
		s.state.CategoryProgress[category]++
		found := false
		for _, explored := range progress.CategoriesExplored {
			if explored == category {
				found = true
				break
			}
		}
		if !found {
			progress.CategoriesExplored = append(progress.CategoriesExplored, category)
		}
	}

	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// UpdateStreakIfNeeded advances the consecutive-day counter once per day: if
// yesterday was active the streak grows, otherwise it resets to 1. Calling it
// again on the same day is a no-op.
func (s *Store) UpdateStreakIfNeeded() {
	s.mu.Lock()
	changed := s.updateStreakLocked()
	if changed {
		s.persistLocked()
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Store) updateStreakLocked() bool {
	progress := &s.state.UserProgress
	today := dayStamp(s.now())
	if progress.LastActiveDate == today {
		return false
	}
	yesterday := dayStamp(s.now().AddDate(0, 0, -1))
	if progress.LastActiveDate == yesterday {
		progress.ConsecutiveDays++
	} else {
		progress.ConsecutiveDays = 1
	}
	progress.LastActiveDate = today
	return true
}
