package db_models

import (
	"fmt"
	"sort"
	"time"

	"tourdesk/internal/models/request_models"
	"tourdesk/pkg/utils"
)

type Tour struct {
	BaseModel
	Name             string `gorm:"not null"`
	StartDate        time.Time
	EndDate          time.Time
	RefundDueDate    time.Time
	OverviewLocation string
	Description      string
	Price            float64
	MaxMemberCount   int

	Activities []Activity   `gorm:"constraint:OnDelete:CASCADE;"`
	Members    []TourMember `gorm:"constraint:OnDelete:CASCADE;"`
}

// NewTourFromPayload builds the persistent tour from a validated payload.
func NewTourFromPayload(p request_models.TourPayload) (*Tour, error) {
	start, err := parseField("startDate", p.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseField("endDate", p.EndDate)
	if err != nil {
		return nil, err
	}
	refund, err := parseField("refundDueDate", p.RefundDueDate)
	if err != nil {
		return nil, err
	}

	tour := &Tour{
		Name:             p.Name,
		StartDate:        start,
		EndDate:          end,
		RefundDueDate:    refund,
		OverviewLocation: p.OverviewLocation,
		Description:      p.Description,
		Price:            p.Price,
		MaxMemberCount:   p.MaxMemberCount,
		Activities:       make([]Activity, 0, len(p.Activities)),
	}
	for i, a := range p.Activities {
		actStart, err := parseField(fmt.Sprintf("activities.%d.startTimestamp", i), a.StartTimestamp)
		if err != nil {
			return nil, err
		}
		actEnd, err := parseField(fmt.Sprintf("activities.%d.endTimestamp", i), a.EndTimestamp)
		if err != nil {
			return nil, err
		}
		tour.Activities = append(tour.Activities, Activity{
			Position:       i,
			Name:           a.Name,
			Description:    a.Description,
			StartTimestamp: actStart,
			EndTimestamp:   actEnd,
			Location: Location{
				Name:      a.Location.Name,
				Latitude:  a.Location.Latitude,
				Longitude: a.Location.Longitude,
				Type:      a.Location.Type,
				Address:   a.Location.Address,
			},
		})
	}
	return tour, nil
}

func parseField(path, value string) (time.Time, error) {
	t, err := utils.ParseISODate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", utils.ErrInvalidInput, path)
	}
	return t.UTC(), nil
}

// BuildTourPayload renders a stored tour in wire form, activities in
// position order.
func BuildTourPayload(t *Tour) request_models.TourPayload {
	acts := make([]Activity, len(t.Activities))
	copy(acts, t.Activities)
	sort.SliceStable(acts, func(i, j int) bool { return acts[i].Position < acts[j].Position })

	out := request_models.TourPayload{
		Name:             t.Name,
		StartDate:        utils.FormatISODate(t.StartDate),
		EndDate:          utils.FormatISODate(t.EndDate),
		RefundDueDate:    utils.FormatISODate(t.RefundDueDate),
		OverviewLocation: t.OverviewLocation,
		Description:      t.Description,
		Price:            t.Price,
		MaxMemberCount:   t.MaxMemberCount,
		Activities:       make([]request_models.ActivityPayload, 0, len(acts)),
	}
	for _, a := range acts {
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
