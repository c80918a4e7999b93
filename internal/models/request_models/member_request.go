package request_models

type JoinTourRequest struct {
	JoinedMembers   []MemberPayload `json:"joinedMembers" validate:"dive"`
	TourID          *int            `json:"tourId,omitempty"`
	TouristUsername string          `json:"touristUsername" validate:"min=1,max=50"`
}

// MemberPayload is one joined member. Age is checked separately so every
// member with a non-positive age is reported.
type MemberPayload struct {
	MemberID  *int   `json:"memberId,omitempty"`
	FirstName string `json:"firstName" validate:"min=1,max=50"`
	LastName  string `json:"lastName" validate:"min=1,max=50"`
	Age       int    `json:"age"`
}
