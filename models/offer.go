package models

// SearchSlice is one origin-destination-date leg of a search request.
type SearchSlice struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
}

// Airline identifies the carrier owning an offer.
type Airline struct {
	Name     string `json:"name"`
	IATACode string `json:"iata_code,omitempty"`
}

// Segment is a single flight within a slice.
type Segment struct {
	ID          string `json:"id,omitempty"`
	DepartingAt string `json:"departing_at"`
	ArrivingAt  string `json:"arriving_at,omitempty"`
}

// Slice is one leg of an itinerary. Its ID identifies what to remove
// when changing an order.
type Slice struct {
	ID       string    `json:"id"`
	Segments []Segment `json:"segments,omitempty"`
}

// OfferPassenger is the marketplace-generated passenger attached to an
// offer; its ID must be merged into the traveler before order creation.
type OfferPassenger struct {
	ID   string `json:"id"`
	Type string `json:"type,omitempty"`
}

// Offer is one priced itinerary option returned by a search.
type Offer struct {
	ID            string           `json:"id"`
	Owner         Airline          `json:"owner"`
	Slices        []Slice          `json:"slices"`
	Passengers    []OfferPassenger `json:"passengers"`
	TotalAmount   string           `json:"total_amount"`
	TotalCurrency string           `json:"total_currency"`
}

// DepartingAt returns the departure time of the first segment of the
// first slice, or an empty string when the itinerary is empty.
func (o Offer) DepartingAt() string {
	if len(o.Slices) == 0 || len(o.Slices[0].Segments) == 0 {
		return ""
	}
	return o.Slices[0].Segments[0].DepartingAt
}
