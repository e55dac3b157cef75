package models

// FlightIntent is the structured travel request extracted from a single
// user utterance. All four fields must be present in the model's reply
// for the intent to be usable.
type FlightIntent struct {
	Origin        string `json:"origin"`         // 3-letter IATA code
	Destination   string `json:"destination"`    // 3-letter IATA code
	DepartureDate string `json:"departure_date"` // year-month-day
	// ChangeDepartureDate is true when the user wants to modify the
	// active order rather than book a new reservation.
	ChangeDepartureDate bool `json:"change_departure_date"`
}
