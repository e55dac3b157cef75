package booking

import (
	"context"
	"fmt"

	"flightagent/models"
	"flightagent/services/marketplace"

	"go.uber.org/zap"
)

// DefaultBookingService drives the marketplace workflows. Every call is
// sequential: each step needs an id produced by the previous one.
type DefaultBookingService struct {
	Marketplace marketplace.API
	Logger      *zap.Logger
}

// CreateBooking searches the intent's route, commits the first offer
// returned, and pays for it from the account balance. There is no
// confirmation step: once an offer is chosen the order is created
// unconditionally.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, intent models.FlightIntent, traveler models.Passenger) (*models.Order, error) {
	offers, err := s.Marketplace.SearchOffers(ctx, marketplace.SearchParams{
		Slices: []models.SearchSlice{{
			Origin:        intent.Origin,
			Destination:   intent.Destination,
			DepartureDate: intent.DepartureDate,
		}},
		Passengers: []marketplace.PassengerSpec{{Type: models.PassengerTypeAdult}},
	})
	if err != nil {
		return nil, fmt.Errorf("searching offers: %w", err)
	}
	if len(offers) == 0 {
		return nil, NewNoOffersError(fmt.Sprintf("no offers returned for %s-%s on %s",
			intent.Origin, intent.Destination, intent.DepartureDate))
	}

	// The marketplace returns offers sorted by price ascending, so the
	// first offer is the cheapest.
	selected := offers[0]

	// The offer must be re-fetched before it can be used in an order.
	offer, err := s.Marketplace.GetOffer(ctx, selected.ID)
	if err != nil {
		return nil, fmt.Errorf("fetching offer %s: %w", selected.ID, err)
	}
	if len(offer.Passengers) == 0 {
		return nil, NewNoOffersError(fmt.Sprintf("offer %s has no generated passengers", offer.ID))
	}

	s.Logger.Info("making an order for the best (cheapest) option",
		zap.String("carrier", offer.Owner.Name),
		zap.String("departing_at", offer.DepartingAt()),
		zap.String("total", offer.TotalAmount+" "+offer.TotalCurrency))

	traveler.ID = offer.Passengers[0].ID
	payment := models.BalancePayment(offer.TotalCurrency, offer.TotalAmount)

	order, err := s.Marketplace.CreateOrder(ctx, marketplace.CreateOrderParams{
		SelectedOffers: []string{offer.ID},
		Passengers:     []models.Passenger{traveler},
		Payments:       []models.Payment{payment},
	})
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}
	return order, nil
}

// ChangeBooking replaces the order's first slice with the intent's
// route, picks the first change offer returned, and confirms it with a
// balance payment. The order itself is mutated server-side; the caller
// keeps its existing reference.
func (s *DefaultBookingService) ChangeBooking(ctx context.Context, order *models.Order, intent models.FlightIntent) (*models.OrderChange, error) {
	if order == nil {
		return nil, ErrNoActiveOrder
	}
	if len(order.Slices) == 0 {
		return nil, &WorkflowError{Code: "noSlices", Message: "order " + order.ID + " has no slices to replace"}
	}

	// Only the order's first slice is ever replaced; orders with
	// multiple slices are not fully supported.
	slices := models.ChangeSlices{
		Add: []models.SliceToAdd{{
			Origin:        intent.Origin,
			Destination:   intent.Destination,
			DepartureDate: intent.DepartureDate,
			CabinClass:    models.CabinClassEconomy,
		}},
		Remove: []models.SliceToRemove{{SliceID: order.Slices[0].ID}},
	}

	changeReq, err := s.Marketplace.CreateOrderChangeRequest(ctx, order.ID, slices)
	if err != nil {
		return nil, fmt.Errorf("requesting order change: %w", err)
	}

	changeOffers, err := s.Marketplace.ListOrderChangeOffers(ctx, changeReq.ID)
	if err != nil {
		return nil, fmt.Errorf("listing change offers: %w", err)
	}
	if len(changeOffers) == 0 {
		return nil, NewNoOffersError("no change offers returned for order " + order.ID)
	}

	s.Logger.Info("picking first change option",
		zap.Int("options", len(changeOffers)),
		zap.String("change_offer_id", changeOffers[0].ID))

	change, err := s.Marketplace.CreateOrderChange(ctx, changeOffers[0].ID)
	if err != nil {
		return nil, fmt.Errorf("creating order change: %w", err)
	}

	s.Logger.Info("confirming order change", zap.String("order_change_id", change.ID))

	payment := models.BalancePayment(change.ChangeTotalCurrency, change.ChangeTotalAmount)
	confirmed, err := s.Marketplace.ConfirmOrderChange(ctx, change.ID, payment)
	if err != nil {
		return nil, fmt.Errorf("confirming order change: %w", err)
	}
	return confirmed, nil
}
