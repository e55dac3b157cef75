package marketplace

import (
	"context"

	"flightagent/models"
)

// PassengerSpec declares a passenger count/type on a search; the
// marketplace generates a concrete passenger id per spec.
type PassengerSpec struct {
	Type string `json:"type"`
}

// SearchParams describes a one-way or multi-leg offer search.
type SearchParams struct {
	Slices     []models.SearchSlice
	Passengers []PassengerSpec
}

// CreateOrderParams carries everything needed to commit an order.
type CreateOrderParams struct {
	SelectedOffers []string
	Passengers     []models.Passenger
	Payments       []models.Payment
}

// API is the set of marketplace operations the booking workflows
// consume. Offers returned by SearchOffers arrive sorted by total price
// ascending; callers rely on that ordering and never re-sort.
type API interface {
	SearchOffers(ctx context.Context, params SearchParams) ([]models.Offer, error)
	GetOffer(ctx context.Context, offerID string) (*models.Offer, error)
	CreateOrder(ctx context.Context, params CreateOrderParams) (*models.Order, error)
	CreateOrderChangeRequest(ctx context.Context, orderID string, slices models.ChangeSlices) (*models.OrderChangeRequest, error)
	ListOrderChangeOffers(ctx context.Context, changeRequestID string) ([]models.OrderChangeOffer, error)
	CreateOrderChange(ctx context.Context, changeOfferID string) (*models.OrderChange, error)
	ConfirmOrderChange(ctx context.Context, orderChangeID string, payment models.Payment) (*models.OrderChange, error)
}
