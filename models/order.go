package models

// Order is a committed, paid booking. It is created once per new
// booking and referenced, never copied, across subsequent changes.
type Order struct {
	ID               string  `json:"id"`
	BookingReference string  `json:"booking_reference"`
	Slices           []Slice `json:"slices"`
	TotalAmount      string  `json:"total_amount,omitempty"`
	TotalCurrency    string  `json:"total_currency,omitempty"`
}

const CabinClassEconomy = "economy"

// SliceToAdd describes a new leg requested on an order change.
type SliceToAdd struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	CabinClass    string `json:"cabin_class"`
}

// SliceToRemove names an existing order slice by id.
type SliceToRemove struct {
	SliceID string `json:"slice_id"`
}

// ChangeSlices is the add/remove set submitted with an order change
// request.
type ChangeSlices struct {
	Add    []SliceToAdd    `json:"add"`
	Remove []SliceToRemove `json:"remove"`
}

// OrderChangeRequest is the accepted request to change an order; its ID
// keys the list of change offers.
type OrderChangeRequest struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id,omitempty"`
}

// OrderChangeOffer is one priced alternative satisfying a change
// request.
type OrderChangeOffer struct {
	ID                  string `json:"id"`
	ChangeTotalAmount   string `json:"change_total_amount,omitempty"`
	ChangeTotalCurrency string `json:"change_total_currency,omitempty"`
}

// OrderChange is the change promoted from a selected change offer; it
// is finalized by confirming it with a payment.
type OrderChange struct {
	ID                  string `json:"id"`
	OrderID             string `json:"order_id,omitempty"`
	ChangeTotalAmount   string `json:"change_total_amount"`
	ChangeTotalCurrency string `json:"change_total_currency"`
	ConfirmedAt         string `json:"confirmed_at,omitempty"`
}
