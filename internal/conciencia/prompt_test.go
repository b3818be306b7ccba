package conciencia

import (
	"strings"
	"testing"

	"ideas-para/internal/store"
)

func TestSystemPrompt(t *testing.T) {
	settings := store.ConciencIASettings{
		Personality:             "creative",
		ResponseStyle:           "brief",
		IncludeEmotionalSupport: true,
	}
	prompt := SystemPrompt(settings, "=== ENTRADAS DE DIARIO ===\ncontexto del diario")

	if !strings.Contains(prompt, "innovador y estimulante") {
		t.Error("prompt missing the creative personality")
	}
	if !strings.Contains(prompt, "concisas pero significativas") {
		t.Error("prompt missing the brief style")
	}
	if !strings.Contains(prompt, "prioriza el bienestar emocional") {
		t.Error("prompt missing the emotional support instruction")
	}
	if !strings.Contains(prompt, "[REF:entry_id_here]") {
		t.Error("prompt missing the reference citation contract")
	}
	if !strings.Contains(prompt, "contexto del diario") {
		t.Error("prompt missing the user context")
	}
}

func TestSystemPromptDefaults(t *testing.T) {
	prompt := SystemPrompt(store.ConciencIASettings{Personality: "nope", ResponseStyle: "nope"}, "")

	if !strings.Contains(prompt, "extremadamente empático") {
		t.Error("unknown personality did not fall back to empathetic")
	}
	if !strings.Contains(prompt, "profundas y detalladas") {
		t.Error("unknown style did not fall back to detailed")
	}
	if strings.Contains(prompt, "prioriza el bienestar emocional") {
		t.Error("emotional support instruction present though disabled")
	}
}
