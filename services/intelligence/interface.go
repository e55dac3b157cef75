package intelligence

import (
	"context"
	"time"

	"flightagent/models"
)

// Completer is the single operation consumed from the language-model
// backend: one system instruction plus one user message in, text out.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// IntentParser turns one utterance into a FlightIntent. A reply that
// cannot be decoded yields an *InvalidIntentError carrying the raw
// text.
type IntentParser interface {
	Parse(ctx context.Context, utterance string, today time.Time) (models.FlightIntent, error)
}
