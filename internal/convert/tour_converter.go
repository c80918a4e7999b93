// Package convert maps tours between the wire form exchanged with the
// backend and the edit form bound to the form controls.
package convert

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tourdesk/internal/models/form_models"
	"tourdesk/internal/models/request_models"
	"tourdesk/pkg/utils"
)

// ConversionError lists every wire field that could not be converted.
type ConversionError struct {
	Fields []FieldFailure
}

type FieldFailure struct {
	Path  string
	Value string
}

func (e *ConversionError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s=%q", f.Path, f.Value))
	}
	return "cannot convert tour: unparseable dates " + strings.Join(parts, ", ")
}

type dateReader struct {
	failures []FieldFailure
}

func (r *dateReader) read(path, value string) time.Time {
	t, err := utils.ParseISODate(value)
	if err != nil {
		r.failures = append(r.failures, FieldFailure{Path: path, Value: value})
	}
	return t
}

// NewKey returns a fresh synthetic key for an activity row.
func NewKey() string {
	return uuid.NewString()
}

// ToEditForm converts a wire tour into its edit form. Every activity gets a
// fresh synthetic key. Nothing is returned when a date fails to parse.
func ToEditForm(w request_models.TourPayload) (*form_models.TourForm, error) {
	dates := &dateReader{}
	form := &form_models.TourForm{
		Name:             w.Name,
		StartDate:        dates.read("startDate", w.StartDate),
		EndDate:          dates.read("endDate", w.EndDate),
		RefundDueDate:    dates.read("refundDueDate", w.RefundDueDate),
		OverviewLocation: w.OverviewLocation,
		Description:      w.Description,
		Price:            w.Price,
		MaxMemberCount:   form_models.NewMemberCountRange(w.MaxMemberCount),
		Activities:       make([]form_models.ActivityForm, 0, len(w.Activities)),
	}
	for i, a := range w.Activities {
		prefix := fmt.Sprintf("activities.%d.", i)
		form.Activities = append(form.Activities, form_models.ActivityForm{
			Key:            NewKey(),
			Name:           a.Name,
			Description:    a.Description,
			StartTimestamp: dates.read(prefix+"startTimestamp", a.StartTimestamp),
			EndTimestamp:   dates.read(prefix+"endTimestamp", a.EndTimestamp),
			Location: form_models.LocationForm{
				Name:      a.Location.Name,
				Latitude:  a.Location.Latitude,
				Longitude: a.Location.Longitude,
				Type:      a.Location.Type,
				Address:   a.Location.Address,
			},
		})
	}
	if len(dates.failures) > 0 {
		return nil, &ConversionError{Fields: dates.failures}
	}
	return form, nil
}

// ToWireForm converts an edit form into the payload sent to the backend.
// The member-count container is unpacked and synthetic keys are dropped.
func ToWireForm(f form_models.TourForm) request_models.TourPayload {
	out := request_models.TourPayload{
		Name:             f.Name,
		StartDate:        utils.FormatISODate(f.StartDate),
		EndDate:          utils.FormatISODate(f.EndDate),
		RefundDueDate:    utils.FormatISODate(f.RefundDueDate),
		OverviewLocation: f.OverviewLocation,
		Description:      f.Description,
		Price:            f.Price,
		MaxMemberCount:   f.MaxMemberCount.Value(),
		Activities:       make([]request_models.ActivityPayload, 0, len(f.Activities)),
	}
	for _, a := range f.Activities {
		out.Activities = append(out.Activities, request_models.ActivityPayload{
			Name:           a.Name,
			Description:    a.Description,
			StartTimestamp: utils.FormatISODate(a.StartTimestamp),
			EndTimestamp:   utils.FormatISODate(a.EndTimestamp),
			Location: request_models.LocationPayload{
				Name:      a.Location.Name,
				Latitude:  a.Location.Latitude,
				Longitude: a.Location.Longitude,
				Type:      a.Location.Type,
				Address:   a.Location.Address,
			},
		})
	}
	return out
}

// Canonical re-renders every date of a wire tour in the canonical layout and
// turns a nil activity list into an empty one. Two payloads describing the
// same tour are equal after Canonical.
func Canonical(w request_models.TourPayload) (request_models.TourPayload, error) {
	form, err := ToEditForm(w)
	if err != nil {
		return request_models.TourPayload{}, err
	}
	return ToWireForm(*form), nil
}
