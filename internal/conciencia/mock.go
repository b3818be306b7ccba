package conciencia

import (
	"context"
	"hash/fnv"
	"strings"
	"time"
)

// MockResponder simulates the companion for installations without an API
// key. Replies are canned and selection is deterministic per message; an
// artificial delay models network latency.
type MockResponder struct {
	// Delay before a reply is produced. Zero disables the delay.
	Delay time.Duration
}

// NewMockResponder creates a MockResponder with the default latency.
func NewMockResponder() *MockResponder {
	return &MockResponder{Delay: 800 * time.Millisecond}
}

var supportReplies = []string{
	"Gracias por compartir esto conmigo. Lo que sientes es completamente válido, y escribirlo ya es un acto de cuidado contigo.",
	"Te escucho. A veces poner las emociones en palabras les quita peso. ¿Quieres contarme un poco más sobre cómo llegaste a sentirte así?",
	"Estoy aquí contigo. No tienes que resolverlo todo hoy; escribirlo ya es un paso.",
}

var creativeReplies = []string{
	"Me encanta hacia dónde va esta idea. ¿Qué pasaría si la miraras desde la emoción opuesta?",
	"Hay un hilo interesante entre lo que escribes hoy y tus notas anteriores. ¿Qué tema sientes que se repite?",
	"Esa imagen tiene mucha fuerza. Prueba a escribir tres frases que empiecen con ella y mira a dónde te llevan.",
	"A veces las mejores ideas nacen de lo que casi no nos atrevemos a escribir. ¿Qué dejaste fuera?",
}

var distressKeywords = []string{"triste", "miedo", "ansie", "sola", "solo", "duele", "llorar", "angustia"}

// Respond produces a simulated reply. It honors ctx cancellation during the
// artificial delay.
func (m *MockResponder) Respond(ctx context.Context, message string) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	replies := creativeReplies
	lower := strings.ToLower(message)
	for _, kw := range distressKeywords {
		if strings.Contains(lower, kw) {
			replies = supportReplies
			break
		}
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(message))
	// Modulo in uint32 space: the hash can exceed MaxInt32.
	return replies[h.Sum32()%uint32(len(replies))], nil
}
