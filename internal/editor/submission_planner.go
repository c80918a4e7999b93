package editor

import (
	"errors"
	"fmt"

	"tourdesk/internal/convert"
	"tourdesk/internal/models/form_models"
	"tourdesk/internal/models/request_models"
	"tourdesk/internal/schema"
)

type SubmitKind string

const (
	SubmitCreate SubmitKind = "create"
	SubmitUpdate SubmitKind = "update"
)

var ErrMissingBaseline = errors.New("update requires the baseline captured at load time")

// SubmitRequest is what gets sent to the backend. Baseline is only set for
// updates.
type SubmitRequest struct {
	Kind     SubmitKind
	TourID   string
	Payload  request_models.TourPayload
	Baseline *request_models.TourPayload
}

// SubmissionError means the backend did not accept the request.
type SubmissionError struct {
	Kind SubmitKind
	Err  error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("failed to %s tour: %v", e.Kind, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// PlanSubmission validates form and builds a create request when existingID
// is empty, or an update request carrying the baseline otherwise.
func PlanSubmission(form *form_models.TourForm, baseline *request_models.TourPayload, existingID string) (*SubmitRequest, error) {
	if err := schema.ValidateForm(form); err != nil {
		return nil, err
	}

	payload := convert.ToWireForm(*form)
	if err := schema.ValidatePayload(&payload); err != nil {
		return nil, err
	}

	if existingID == "" {
		return &SubmitRequest{Kind: SubmitCreate, Payload: payload}, nil
	}
	if baseline == nil {
		return nil, ErrMissingBaseline
	}
	snapshot := clonePayload(*baseline)
	return &SubmitRequest{
		Kind:     SubmitUpdate,
		TourID:   existingID,
		Payload:  payload,
		Baseline: &snapshot,
	}, nil
}

func clonePayload(p request_models.TourPayload) request_models.TourPayload {
	out := p
	out.Activities = make([]request_models.ActivityPayload, len(p.Activities))
	copy(out.Activities, p.Activities)
	return out
}
