package response_models

import "tourdesk/internal/models/request_models"

type TourResponse struct {
	ID   string                     `json:"id"`
	Tour request_models.TourPayload `json:"tour"`
}

type TourUpdateResponse struct {
	ID   string                     `json:"id"`
	Tour request_models.TourPayload `json:"tour"`
	// Changes lists the field paths that differ from the baseline.
	Changes []string `json:"changes"`
}

type JoinTourResponse struct {
	TourID      string `json:"tourId"`
	Joined      int    `json:"joined"`
	MemberCount int    `json:"memberCount"`
}
