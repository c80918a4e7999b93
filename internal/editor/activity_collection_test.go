package editor

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"tourdesk/internal/models/form_models"
	"tourdesk/internal/models/request_models"
)

func threeActivities() []form_models.ActivityForm {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var acts []form_models.ActivityForm
	for _, name := range []string{"a", "b", "c"} {
		a := NewActivity(now)
		a.Name = name
		acts = AppendActivity(acts, a)
	}
	return acts
}

func TestNewActivityUsesDefaultLocation(t *testing.T) {
	a := NewActivity(time.Now())
	if a.Location.Type != request_models.LocationOther || a.Location.Latitude != 0 || a.Location.Longitude != 0 {
		t.Fatalf("unexpected default location %#v", a.Location)
	}
	if a.Name != "" || a.Description != "" {
		t.Fatalf("expected empty name and description")
	}
}

func TestAppendAssignsUniqueKeysWithoutMutatingInput(t *testing.T) {
	acts := threeActivities()
	before := make([]form_models.ActivityForm, len(acts))
	copy(before, acts)

	out := AppendActivity(acts, NewActivity(time.Now()))
	if len(out) != 4 || len(acts) != 3 {
		t.Fatalf("lengths: out=%d in=%d", len(out), len(acts))
	}
	if !reflect.DeepEqual(acts, before) {
		t.Fatalf("input was mutated")
	}
	seen := map[string]bool{}
	for _, a := range out {
		if a.Key == "" || seen[a.Key] {
			t.Fatalf("duplicate or empty key %q", a.Key)
		}
		seen[a.Key] = true
	}
}

func TestRemoveKeepsSiblingKeysAndOrder(t *testing.T) {
	acts := threeActivities()
	out, err := RemoveActivityAt(acts, 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(out) != 2 || out[0].Key != acts[0].Key || out[1].Key != acts[2].Key {
		t.Fatalf("unexpected result %#v", out)
	}
	if out[0].Name != "a" || out[1].Name != "c" {
		t.Fatalf("order changed: %s %s", out[0].Name, out[1].Name)
	}
	if acts[1].Name != "b" {
		t.Fatalf("input was mutated")
	}
}

func TestAppendThenRemoveRestoresCollection(t *testing.T) {
	acts := threeActivities()
	grown := AppendActivity(acts, NewActivity(time.Now()))
	restored, err := RemoveActivityAt(grown, len(grown)-1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !reflect.DeepEqual(restored, acts) {
		t.Fatalf("collection not restored\nwant %#v\ngot  %#v", acts, restored)
	}
}

func TestRemoveOutOfRange(t *testing.T) {
	acts := threeActivities()
	for _, i := range []int{-1, 3} {
		if _, err := RemoveActivityAt(acts, i); !errors.Is(err, ErrActivityIndexOutOfRange) {
			t.Errorf("index %d: expected out of range, got %v", i, err)
		}
	}
}

func TestActivityPolicyGate(t *testing.T) {
	locked := ActivityPolicy{NestedActivitiesAvailable: false}
	if !locked.AllowsReshape("") {
		t.Errorf("new tours are never locked")
	}
	if locked.AllowsReshape("42") {
		t.Errorf("existing tour must be locked while nested activities are unavailable")
	}
	if !(ActivityPolicy{NestedActivitiesAvailable: true}).AllowsReshape("42") {
		t.Errorf("existing tour is editable once nested activities are available")
	}
}
