package form_models

import (
	"time"

	"tourdesk/internal/models/request_models"
)

const (
	DefaultPrice          = 1
	DefaultMaxMemberCount = 50
)

// MemberCountRange is the value of the member-count slider. The slider works
// on a tuple of values, so the edit form keeps the count wrapped in a
// single-element container. It is never sent to the server as is.
type MemberCountRange [1]int

func NewMemberCountRange(n int) MemberCountRange {
	return MemberCountRange{n}
}

func (r MemberCountRange) Value() int {
	return r[0]
}

// TourForm is the edit form of a tour, bound to the form controls.
type TourForm struct {
	Name             string           `json:"name" validate:"min=1"`
	StartDate        time.Time        `json:"startDate" validate:"required"`
	EndDate          time.Time        `json:"endDate" validate:"required"`
	RefundDueDate    time.Time        `json:"refundDueDate" validate:"required"`
	OverviewLocation string           `json:"overviewLocation"`
	Description      string           `json:"description"`
	Price            float64          `json:"price" validate:"gt=0"`
	MaxMemberCount   MemberCountRange `json:"maxMemberCount" validate:"dive,min=1,max=100"`
	Activities       []ActivityForm   `json:"activities" validate:"dive"`
}

type ActivityForm struct {
	// Key identifies the row for list reconciliation only.
	Key            string       `json:"-"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	StartTimestamp time.Time    `json:"startTimestamp" validate:"required"`
	EndTimestamp   time.Time    `json:"endTimestamp" validate:"required"`
	Location       LocationForm `json:"location"`
}

type LocationForm struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Type      string  `json:"type" validate:"oneof=Hotel Attraction Restaurant 'Meeting Point' Other"`
	Address   string  `json:"address"`
}

// NewTourForm returns the form shown when creating a brand-new tour.
func NewTourForm(now time.Time) *TourForm {
	return &TourForm{
		StartDate:      now,
		EndDate:        now,
		RefundDueDate:  now,
		Price:          DefaultPrice,
		MaxMemberCount: NewMemberCountRange(DefaultMaxMemberCount),
		Activities:     []ActivityForm{},
	}
}

func DefaultLocation() LocationForm {
	return LocationForm{Type: request_models.LocationOther}
}

// Clone returns a deep copy of the form.
func (f *TourForm) Clone() *TourForm {
	out := *f
	out.Activities = make([]ActivityForm, len(f.Activities))
	copy(out.Activities, f.Activities)
	return &out
}

// ActivityKeys lists the synthetic keys in display order.
func (f *TourForm) ActivityKeys() []string {
	keys := make([]string, 0, len(f.Activities))
	for _, a := range f.Activities {
		keys = append(keys, a.Key)
	}
	return keys
}
