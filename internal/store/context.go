package store

import (
	"fmt"
	"strings"
	"time"
)

// EntryRef is the metadata the companion needs to link a reply back to a
// diary entry.
type EntryRef struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Date    time.Time `json:"date"`
	Emotion string    `json:"emotion"`
}

// SessionRef is the metadata for a liberation session reference.
type SessionRef struct {
	ID      string           `json:"id"`
	Emotion string           `json:"emotion"`
	Action  LiberationAction `json:"action"`
	Date    time.Time        `json:"date"`
}

// ContextReferences pairs the serialized journal with the ids the companion
// may cite via [REF:id] markers.
type ContextReferences struct {
	Context            string       `json:"context"`
	DiaryEntries       []EntryRef   `json:"diaryEntries"`
	LiberationSessions []SessionRef `json:"liberationSessions"`
}

// ContextDocument serializes every entry and liberation session into the
// plain-text context block handed to the companion.
func (s *Store) ContextDocument() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	b.WriteString("Estas son todas las ideas y pensamientos del usuario:\n\n")

	if len(s.state.DiaryEntries) > 0 {
		b.WriteString("=== ENTRADAS DE DIARIO ===\n")
		for _, entry := range s.state.DiaryEntries {
			fmt.Fprintf(&b, "[ID: %s] Fecha: %s\n", entry.ID, entry.Date.Format("02/01/2006"))
			fmt.Fprintf(&b, "Título: %s\n", entry.Title)
			fmt.Fprintf(&b, "Emoción: %s\n", entry.Emotion)
			fmt.Fprintf(&b, "Contenido: %s\n", entry.Content)
			if len(entry.Tags) > 0 {
				fmt.Fprintf(&b, "Etiquetas: %s\n", strings.Join(entry.Tags, ", "))
			}
			b.WriteString("---\n")
		}
	}

	if len(s.state.LiberationSessions) > 0 {
		b.WriteString("\n=== SESIONES DE LIBERACIÓN ===\n")
		for _, session := range s.state.LiberationSessions {
			fmt.Fprintf(&b, "[ID: %s] Fecha: %s\n", session.ID, session.Date.Format("02/01/2006"))
			fmt.Fprintf(&b, "Emoción: %s\n", session.Emotion)
			fmt.Fprintf(&b, "Acción: %s\n", session.Action)
			fmt.Fprintf(&b, "Contenido: %s\n", session.Content)
			b.WriteString("---\n")
		}
	}

	return b.String()
}

// References returns the context document together with the reference
// metadata for every entry and session.
func (s *Store) References() ContextReferences {
	context := s.ContextDocument()

	s.mu.Lock()
	defer s.mu.Unlock()
	refs := ContextReferences{
		Context:            context,
		DiaryEntries:       make([]EntryRef, 0, len(s.state.DiaryEntries)),
		LiberationSessions: make([]SessionRef, 0, len(s.state.LiberationSessions)),
	}
	for _, entry := range s.state.DiaryEntries {
		refs.DiaryEntries = append(refs.DiaryEntries, EntryRef{
			ID:      entry.ID,
			Title:   entry.Title,
			Date:    entry.Date,
			Emotion: entry.Emotion,
		})
	}
	for _, session := range s.state.LiberationSessions {
		refs.LiberationSessions = append(refs.LiberationSessions, SessionRef{
			ID:      session.ID,
			Emotion: session.Emotion,
			Action:  session.Action,
			Date:    session.Date,
		})
	}
	return refs
}
