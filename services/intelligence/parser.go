package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"flightagent/models"

	"go.uber.org/zap"
)

// The model infers wrong relative dates unless today's date is spelled
// out in the instruction.
const promptTemplate = `Today's date is %s
Provide your response in the following JSON format:
origin: { 3-letter IATA code }
destination: { 3-letter IATA code }
departure_date: { year-month-day }
change_departure_date: { true if they want to change their previous departure_date and false if they want to book a new reservation }`

// InvalidIntentError carries the model's raw reply when it cannot be
// decoded into a FlightIntent. The raw text is surfaced to the user
// verbatim.
type InvalidIntentError struct {
	Raw string
}

func (e *InvalidIntentError) Error() string {
	return "invalid intent: " + e.Raw
}

type Parser struct {
	Completer Completer
	Logger    *zap.Logger
}

// Parse makes exactly one model call per invocation and retains no
// state between calls. Field values are taken from the reply as-is:
// IATA codes and dates are not validated here, the marketplace rejects
// malformed ones.
func (p *Parser) Parse(ctx context.Context, utterance string, today time.Time) (models.FlightIntent, error) {
	system := fmt.Sprintf(promptTemplate, today.Format("2006-01-02"))
	reply, err := p.Completer.Complete(ctx, system, utterance)
	if err != nil {
		return models.FlightIntent{}, fmt.Errorf("intent model call failed: %w", err)
	}
	raw := strings.Trim(reply, "\n")

	var decoded struct {
		Origin              *string `json:"origin"`
		Destination         *string `json:"destination"`
		DepartureDate       *string `json:"departure_date"`
		ChangeDepartureDate *bool   `json:"change_departure_date"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		p.Logger.Debug("model reply is not valid JSON", zap.String("reply", raw))
		return models.FlightIntent{}, &InvalidIntentError{Raw: raw}
	}
	if decoded.Origin == nil || decoded.Destination == nil ||
		decoded.DepartureDate == nil || decoded.ChangeDepartureDate == nil {
		p.Logger.Debug("model reply is missing intent fields", zap.String("reply", raw))
		return models.FlightIntent{}, &InvalidIntentError{Raw: raw}
	}

	return models.FlightIntent{
		Origin:              *decoded.Origin,
		Destination:         *decoded.Destination,
		DepartureDate:       *decoded.DepartureDate,
		ChangeDepartureDate: *decoded.ChangeDepartureDate,
	}, nil
}
