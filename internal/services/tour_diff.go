package services

import (
	"fmt"
	"reflect"

	"tourdesk/internal/models/request_models"
)

// DiffTours lists the wire field names whose values differ between a and b.
// Activities are compared by position; a changed length reports "activities".
func DiffTours(a, b request_models.TourPayload) []string {
	changes := make([]string, 0)
	add := func(name string, differ bool) {
		if differ {
			changes = append(changes, name)
		}
	}

	add("name", a.Name != b.Name)
	add("startDate", a.StartDate != b.StartDate)
	add("endDate", a.EndDate != b.EndDate)
	add("refundDueDate", a.RefundDueDate != b.RefundDueDate)
	add("overviewLocation", a.OverviewLocation != b.OverviewLocation)
	add("description", a.Description != b.Description)
	add("price", a.Price != b.Price)
	add("maxMemberCount", a.MaxMemberCount != b.MaxMemberCount)

	if len(a.Activities) != len(b.Activities) {
		return append(changes, "activities")
	}
	for i := range a.Activities {
		if !reflect.DeepEqual(a.Activities[i], b.Activities[i]) {
			changes = append(changes, fmt.Sprintf("activities.%d", i))
		}
	}
	return changes
}
