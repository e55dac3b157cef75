package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"flightagent/models"
	"flightagent/services/booking"
	"flightagent/services/intelligence"

	"go.uber.org/zap"
)

var exitTokens = []string{":q", "quit", "exit"}

// Session is the interactive loop. It exclusively owns the single
// current-order reference; the booking service is stateless and gets
// handed the order it needs each turn.
type Session struct {
	Parser   intelligence.IntentParser
	Booking  booking.Service
	Traveler models.Passenger
	In       io.Reader
	Out      io.Writer
	Logger   *zap.Logger

	current *models.Order
}

// Run reads one utterance per turn until an exit token or EOF. Turn
// failures are reported and never terminate the loop.
func (s *Session) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.In)
	for {
		fmt.Fprint(s.Out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if isExitToken(line) {
			return nil
		}
		s.handleTurn(ctx, line)
	}
}

func isExitToken(line string) bool {
	for _, token := range exitTokens {
		if line == token {
			return true
		}
	}
	return false
}

func (s *Session) handleTurn(ctx context.Context, utterance string) {
	intent, err := s.Parser.Parse(ctx, utterance, time.Now())
	if err != nil {
		var invalid *intelligence.InvalidIntentError
		if errors.As(err, &invalid) {
			// The model did not produce an intent; show its reply
			// verbatim and leave the order untouched.
			fmt.Fprintln(s.Out, invalid.Raw)
			return
		}
		s.Logger.Warn("intent extraction failed", zap.Error(err))
		fmt.Fprintf(s.Out, "could not process the request: %v\n", err)
		return
	}

	if intent.ChangeDepartureDate {
		change, err := s.Booking.ChangeBooking(ctx, s.current, intent)
		if err != nil {
			s.Logger.Warn("change workflow failed", zap.Error(err))
			fmt.Fprintf(s.Out, "change failed: %v\n", err)
			return
		}
		// The change mutated the existing order server-side; the
		// session keeps the same order reference.
		fmt.Fprintf(s.Out, "Processed change to order %s costing %s (%s)\n",
			s.current.ID, change.ChangeTotalAmount, change.ChangeTotalCurrency)
		fmt.Fprintf(s.Out, "\n🎉 Created order %s with booking reference: %s\n",
			s.current.ID, s.current.BookingReference)
		return
	}

	order, err := s.Booking.CreateBooking(ctx, intent, s.Traveler)
	if err != nil {
		s.Logger.Warn("booking workflow failed", zap.Error(err))
		fmt.Fprintf(s.Out, "booking failed: %v\n", err)
		return
	}
	s.current = order
	fmt.Fprintf(s.Out, "\n🎉 Created order %s with booking reference: %s\n",
		order.ID, order.BookingReference)
}
