package editor

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tourdesk/internal/models/form_models"
	"tourdesk/internal/models/request_models"
	"tourdesk/internal/schema"
)

func namedForm() *form_models.TourForm {
	f := form_models.NewTourForm(time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC))
	f.Name = "Sukhothai"
	return f
}

func TestPlanCreateHasNoBaseline(t *testing.T) {
	f := namedForm()
	f.Activities = AppendActivity(f.Activities, NewActivity(f.StartDate))
	f.Activities[0].Name = "Bike ride"

	req, err := PlanSubmission(f, nil, "")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if req.Kind != SubmitCreate || req.Baseline != nil || req.TourID != "" {
		t.Fatalf("unexpected request %#v", req)
	}
	if len(req.Payload.Activities) != 1 || req.Payload.Activities[0].Name != "Bike ride" {
		t.Fatalf("activities not carried: %#v", req.Payload.Activities)
	}
}

func TestPlanUpdateCarriesBaselineSnapshot(t *testing.T) {
	f := namedForm()
	baseline := request_models.TourPayload{Name: "old", MaxMemberCount: 10, Activities: []request_models.ActivityPayload{{Name: "x"}}}

	req, err := PlanSubmission(f, &baseline, "42")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if req.Kind != SubmitUpdate || req.TourID != "42" || req.Baseline == nil {
		t.Fatalf("unexpected request %#v", req)
	}
	if req.Baseline.Name != "old" || req.Payload.Name != "Sukhothai" {
		t.Fatalf("payload/baseline mixed up")
	}

	baseline.Activities[0].Name = "changed later"
	if req.Baseline.Activities[0].Name != "x" {
		t.Fatalf("baseline must be a snapshot")
	}
}

func TestPlanUpdateWithoutBaselineFails(t *testing.T) {
	if _, err := PlanSubmission(namedForm(), nil, "42"); !errors.Is(err, ErrMissingBaseline) {
		t.Fatalf("expected ErrMissingBaseline, got %v", err)
	}
}

func TestPlanRejectsInvalidForm(t *testing.T) {
	f := namedForm()
	f.Name = ""
	f.MaxMemberCount = form_models.NewMemberCountRange(0)
	_, err := PlanSubmission(f, nil, "")
	errs, ok := schema.AsFieldErrors(err)
	if !ok || !errs.Has("name") || !errs.Has("maxMemberCount.0") {
		t.Fatalf("expected field errors, got %v", err)
	}
}

func TestPlannedPayloadNeverCarriesMemberCountArray(t *testing.T) {
	for n := 1; n <= 100; n += 11 {
		f := namedForm()
		f.MaxMemberCount = form_models.NewMemberCountRange(n)
		req, err := PlanSubmission(f, nil, "")
		if err != nil {
			t.Fatalf("plan n=%d: %v", n, err)
		}
		buf, _ := json.Marshal(req.Payload)
		var generic map[string]any
		_ = json.Unmarshal(buf, &generic)
		if v, ok := generic["maxMemberCount"].(float64); !ok || int(v) != n {
			t.Fatalf("n=%d: maxMemberCount on the wire = %#v", n, generic["maxMemberCount"])
		}
	}
}
