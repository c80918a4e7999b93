package request_models

// Location types accepted on the wire.
const (
	LocationHotel        = "Hotel"
	LocationAttraction   = "Attraction"
	LocationRestaurant   = "Restaurant"
	LocationMeetingPoint = "Meeting Point"
	LocationOther        = "Other"
)

var LocationTypes = []string{
	LocationHotel,
	LocationAttraction,
	LocationRestaurant,
	LocationMeetingPoint,
	LocationOther,
}

// TourPayload is the wire form of a tour, as exchanged with the backend.
// Dates are ISO-8601 strings and maxMemberCount is always a bare integer.
type TourPayload struct {
	Name             string            `json:"name" validate:"min=1"`
	StartDate        string            `json:"startDate" validate:"isodate"`
	EndDate          string            `json:"endDate" validate:"isodate"`
	RefundDueDate    string            `json:"refundDueDate" validate:"isodate"`
	OverviewLocation string            `json:"overviewLocation"`
	Description      string            `json:"description"`
	Price            float64           `json:"price" validate:"gt=0"`
	MaxMemberCount   int               `json:"maxMemberCount" validate:"min=1,max=100"`
	Activities       []ActivityPayload `json:"activities" validate:"dive"`
}

type ActivityPayload struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	StartTimestamp string          `json:"startTimestamp" validate:"isodate"`
	EndTimestamp   string          `json:"endTimestamp" validate:"isodate"`
	Location       LocationPayload `json:"location"`
}

type LocationPayload struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Type      string  `json:"type" validate:"oneof=Hotel Attraction Restaurant 'Meeting Point' Other"`
	Address   string  `json:"address"`
}

// UpdateTourRequest carries the full new values together with the snapshot
// the client loaded before editing.
type UpdateTourRequest struct {
	Tour     TourPayload `json:"tour"`
	Baseline TourPayload `json:"baseline"`
}
