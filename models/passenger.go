package models

const PassengerTypeAdult = "adult"

// Passenger is the traveler attached to an order. ID is assigned by the
// marketplace once an offer has been selected and must be merged in
// before order creation.
type Passenger struct {
	ID          string `json:"id,omitempty"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Title       string `json:"title"`
	Gender      string `json:"gender"`
	FamilyName  string `json:"family_name"`
	GivenName   string `json:"given_name"`
	BornOn      string `json:"born_on"`
	Type        string `json:"type"`
}
