package handlers

import (
	"strings"
	"testing"

	"example.com/travel-genie/backend/internal/models"
)

// TestAIFailureMessage checks the localized upstream failure message.
func TestAIFailureMessage(t *testing.T) {
	if msg := aiFailureMessage(models.LanguageItalian); !strings.Contains(msg, "Impossibile") {
		t.Fatalf("unexpected italian message: %s", msg)
	}

	if msg := aiFailureMessage(models.LanguageEnglish); !strings.Contains(msg, "Could not generate") {
		t.Fatalf("unexpected english message: %s", msg)
	}

	if msg := aiFailureMessage(models.Language("fr")); !strings.Contains(msg, "Could not generate") {
		t.Fatalf("expected english fallback, got %s", msg)
	}
}
