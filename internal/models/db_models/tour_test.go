package db_models

import (
	"errors"
	"reflect"
	"testing"

	"tourdesk/internal/models/request_models"
	"tourdesk/pkg/utils"
)

func TestPayloadSurvivesPersistenceMapping(t *testing.T) {
	p := request_models.TourPayload{
		Name:           "Pai",
		StartDate:      "2025-11-01T01:00:00.000Z",
		EndDate:        "2025-11-03T11:00:00.000Z",
		RefundDueDate:  "2025-10-20T00:00:00.000Z",
		Price:          3200,
		MaxMemberCount: 12,
		Activities: []request_models.ActivityPayload{
			{Name: "Canyon", StartTimestamp: "2025-11-01T10:00:00.000Z", EndTimestamp: "2025-11-01T11:00:00.000Z",
				Location: request_models.LocationPayload{Type: request_models.LocationAttraction, Latitude: 19.33, Longitude: 98.43}},
			{Name: "Hot spring", StartTimestamp: "2025-11-02T03:00:00.000Z", EndTimestamp: "2025-11-02T05:00:00.000Z",
				Location: request_models.LocationPayload{Type: request_models.LocationOther}},
		},
	}
	tour, err := NewTourFromPayload(p)
	if err != nil {
		t.Fatalf("to db: %v", err)
	}
	tour.Activities[0], tour.Activities[1] = tour.Activities[1], tour.Activities[0]

	if got := BuildTourPayload(tour); !reflect.DeepEqual(got, p) {
		t.Fatalf("mapping mismatch\nwant %#v\ngot  %#v", p, got)
	}
}

func TestNewTourFromPayloadRejectsBadDate(t *testing.T) {
	_, err := NewTourFromPayload(request_models.TourPayload{StartDate: "x"})
	if !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
