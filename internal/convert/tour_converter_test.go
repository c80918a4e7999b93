package convert

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"tourdesk/internal/models/form_models"
	"tourdesk/internal/models/request_models"
)

func sampleWire() request_models.TourPayload {
	return request_models.TourPayload{
		Name:             "Doi Inthanon",
		StartDate:        "2025-03-01T09:00:00.000Z",
		EndDate:          "2025-03-02T18:30:00.000Z",
		RefundDueDate:    "2025-02-20T00:00:00.000Z",
		OverviewLocation: "Chiang Mai",
		Description:      "two days in the mountains",
		Price:            1500.5,
		MaxMemberCount:   30,
		Activities: []request_models.ActivityPayload{
			{
				Name:           "Hiking",
				Description:    "to the summit",
				StartTimestamp: "2025-03-01T10:00:00.000Z",
				EndTimestamp:   "2025-03-01T12:15:00.250Z",
				Location: request_models.LocationPayload{
					Name: "Peak", Latitude: 18.5883, Longitude: 98.4869,
					Type: request_models.LocationAttraction, Address: "Chom Thong",
				},
			},
			{
				Name:           "Dinner",
				StartTimestamp: "2025-03-01T19:00:00.000Z",
				EndTimestamp:   "2025-03-01T21:00:00.000Z",
				Location: request_models.LocationPayload{
					Name: "Camp", Type: request_models.LocationRestaurant,
				},
			},
		},
	}
}

func TestRoundTripIsIdentity(t *testing.T) {
	w := sampleWire()
	form, err := ToEditForm(w)
	if err != nil {
		t.Fatalf("to edit: %v", err)
	}
	back := ToWireForm(*form)
	if !reflect.DeepEqual(w, back) {
		t.Fatalf("round trip mismatch\nwant %#v\ngot  %#v", w, back)
	}
}

func TestToEditFormWrapsMemberCountAndParsesDates(t *testing.T) {
	form, err := ToEditForm(sampleWire())
	if err != nil {
		t.Fatalf("to edit: %v", err)
	}
	if form.MaxMemberCount != (form_models.MemberCountRange{30}) {
		t.Fatalf("maxMemberCount = %v", form.MaxMemberCount)
	}
	want := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	if !form.StartDate.Equal(want) {
		t.Fatalf("startDate = %v", form.StartDate)
	}
	if !form.Activities[0].EndTimestamp.Equal(time.Date(2025, 3, 1, 12, 15, 0, 250e6, time.UTC)) {
		t.Fatalf("endTimestamp = %v", form.Activities[0].EndTimestamp)
	}
}

func TestToEditFormAssignsDistinctKeys(t *testing.T) {
	form, err := ToEditForm(sampleWire())
	if err != nil {
		t.Fatalf("to edit: %v", err)
	}
	a, b := form.Activities[0].Key, form.Activities[1].Key
	if a == "" || b == "" || a == b {
		t.Fatalf("keys not distinct: %q %q", a, b)
	}
}

func TestNilActivitiesBecomeEmptyBothWays(t *testing.T) {
	w := sampleWire()
	w.Activities = nil
	form, err := ToEditForm(w)
	if err != nil {
		t.Fatalf("to edit: %v", err)
	}
	if form.Activities == nil || len(form.Activities) != 0 {
		t.Fatalf("edit activities = %#v", form.Activities)
	}

	form.Activities = nil
	out := ToWireForm(*form)
	if out.Activities == nil {
		t.Fatalf("wire activities must not be nil")
	}
	buf, _ := json.Marshal(out)
	if !strings.Contains(string(buf), `"activities":[]`) {
		t.Fatalf("payload should carry an empty list: %s", buf)
	}
}

func TestWirePayloadCarriesBareMemberCount(t *testing.T) {
	form := form_models.NewTourForm(time.Now())
	form.MaxMemberCount = form_models.NewMemberCountRange(45)
	buf, err := json.Marshal(ToWireForm(*form))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var generic map[string]any
	if err := json.Unmarshal(buf, &generic); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := generic["maxMemberCount"].(float64); !ok || v != 45 {
		t.Fatalf("maxMemberCount on the wire = %#v", generic["maxMemberCount"])
	}
	if strings.Contains(string(buf), "Key") {
		t.Fatalf("synthetic keys leaked: %s", buf)
	}
}

func TestMalformedDatesReportEveryPath(t *testing.T) {
	w := sampleWire()
	w.EndDate = "not a date"
	w.Activities[1].StartTimestamp = "31/02/2025"

	form, err := ToEditForm(w)
	if form != nil {
		t.Fatalf("no form expected on failure")
	}
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if len(convErr.Fields) != 2 ||
		convErr.Fields[0].Path != "endDate" ||
		convErr.Fields[1].Path != "activities.1.startTimestamp" {
		t.Fatalf("unexpected failures: %#v", convErr.Fields)
	}
}

func TestCanonicalNormalizesDateSpellings(t *testing.T) {
	w := sampleWire()
	w.StartDate = "2025-03-01T16:00:00+07:00"
	got, err := Canonical(w)
	if err != nil {
		t.Fatalf("canonical: %v", err)
	}
	if got.StartDate != "2025-03-01T09:00:00.000Z" {
		t.Fatalf("startDate = %s", got.StartDate)
	}
}
