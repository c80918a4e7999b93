package editor

import (
	"errors"
	"time"

	"tourdesk/internal/convert"
	"tourdesk/internal/models/form_models"
)

var (
	ErrActivityIndexOutOfRange = errors.New("activity index out of range")
	ErrActivitiesLocked        = errors.New("activities cannot be added or removed for this tour")
)

// ActivityPolicy tells whether the activity list of a tour may change shape.
type ActivityPolicy struct {
	// NestedActivitiesAvailable is false while the backend cannot yet store
	// activity changes of an existing tour.
	NestedActivitiesAvailable bool
}

// AllowsReshape reports whether activities may be appended or removed for
// the tour with the given persisted id. New tours (empty id) always may.
func (p ActivityPolicy) AllowsReshape(tourID string) bool {
	return p.NestedActivitiesAvailable || tourID == ""
}

// NewActivity returns an empty activity located at the default location.
func NewActivity(now time.Time) form_models.ActivityForm {
	return form_models.ActivityForm{
		StartTimestamp: now,
		EndTimestamp:   now,
		Location:       form_models.DefaultLocation(),
	}
}

// AppendActivity returns a copy of acts with a appended under a fresh key.
func AppendActivity(acts []form_models.ActivityForm, a form_models.ActivityForm) []form_models.ActivityForm {
	used := make(map[string]struct{}, len(acts))
	for _, existing := range acts {
		used[existing.Key] = struct{}{}
	}
	a.Key = convert.NewKey()
	for {
		if _, taken := used[a.Key]; !taken {
			break
		}
		a.Key = convert.NewKey()
	}

	out := make([]form_models.ActivityForm, len(acts), len(acts)+1)
	copy(out, acts)
	return append(out, a)
}

// RemoveActivityAt returns a copy of acts without the element at index.
// Remaining elements keep their keys and relative order.
func RemoveActivityAt(acts []form_models.ActivityForm, index int) ([]form_models.ActivityForm, error) {
	if index < 0 || index >= len(acts) {
		return nil, ErrActivityIndexOutOfRange
	}
	out := make([]form_models.ActivityForm, 0, len(acts)-1)
	out = append(out, acts[:index]...)
	return append(out, acts[index+1:]...), nil
}
