package booking

import (
	"context"

	"flightagent/models"
)

// Service runs the booking workflows. Implementations retain no state
// between calls; the caller owns the current order and passes it in.
type Service interface {
	CreateBooking(ctx context.Context, intent models.FlightIntent, traveler models.Passenger) (*models.Order, error)
	ChangeBooking(ctx context.Context, order *models.Order, intent models.FlightIntent) (*models.OrderChange, error)
}
