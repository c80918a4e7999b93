package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// normalizer coerces an untyped JSON document in place so that it decodes
// cleanly into the typed payload. Values that cannot be coerced are removed
// and recorded as violations.
type normalizer struct {
	errs FieldErrors
}

func (n *normalizer) fail(path, rule, msg string) {
	n.errs = append(n.errs, FieldError{Path: path, Rule: rule, Message: msg})
}

func decodeObject(raw []byte) (map[string]any, FieldErrors) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, FieldErrors{{Rule: "json", Message: "malformed JSON: " + err.Error()}}
	}
	if obj == nil {
		return nil, FieldErrors{{Rule: "type", Message: "expected an object"}}
	}
	return obj, nil
}

func join(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func (n *normalizer) str(obj map[string]any, parent, key string) {
	v, ok := obj[key]
	if !ok || v == nil {
		delete(obj, key)
		return
	}
	if _, ok := v.(string); !ok {
		n.fail(join(parent, key), "type", "must be a string")
		delete(obj, key)
	}
}

func (n *normalizer) number(obj map[string]any, parent, key string) {
	v, ok := obj[key]
	if !ok || v == nil {
		delete(obj, key)
		return
	}
	f, ok := toFloat(v)
	if !ok {
		n.fail(join(parent, key), "type", "must be a number")
		delete(obj, key)
		return
	}
	obj[key] = f
}

func toFloat(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err = strconv.ParseFloat(s, 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// integer accepts whole JSON numbers and digit-only strings.
func (n *normalizer) integer(obj map[string]any, parent, key string, optional bool) {
	v, ok := obj[key]
	if !ok || v == nil {
		delete(obj, key)
		if !optional {
			n.fail(join(parent, key), "required", "is required")
		}
		return
	}
	i, ok := toInt(v)
	if !ok {
		n.fail(join(parent, key), "type", "must be a whole number")
		delete(obj, key)
		return
	}
	obj[key] = i
}

func toInt(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, true
		}
		f, err := t.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return 0, false
		}
		return int64(f), true
	case string:
		if !digitsOnly.MatchString(t) {
			return 0, false
		}
		i, err := strconv.ParseInt(t, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// collapseMemberCount replaces a single-element slider container around
// maxMemberCount with its element. It works on the parsed document, never on
// the serialized text.
func (n *normalizer) collapseMemberCount(obj map[string]any) bool {
	arr, ok := obj["maxMemberCount"].([]any)
	if !ok {
		return true
	}
	if len(arr) != 1 {
		n.fail("maxMemberCount", "type", "must be a single value")
		delete(obj, "maxMemberCount")
		return false
	}
	obj["maxMemberCount"] = arr[0]
	return true
}

func (n *normalizer) array(obj map[string]any, parent, key string) []any {
	v, ok := obj[key]
	if !ok || v == nil {
		obj[key] = []any{}
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		n.fail(join(parent, key), "type", "must be a list")
		obj[key] = []any{}
		return nil
	}
	return arr
}

// object returns arr[i] as an object, replacing it with an empty one when it
// is not.
func (n *normalizer) element(arr []any, i int, path string) map[string]any {
	if m, ok := arr[i].(map[string]any); ok {
		return m
	}
	n.fail(path, "type", "must be an object")
	m := map[string]any{}
	arr[i] = m
	return m
}

func (n *normalizer) tour(obj map[string]any) {
	for _, key := range []string{"name", "startDate", "endDate", "refundDueDate", "overviewLocation", "description"} {
		n.str(obj, "", key)
	}
	n.number(obj, "", "price")
	if n.collapseMemberCount(obj) {
		n.integer(obj, "", "maxMemberCount", false)
	}

	activities := n.array(obj, "", "activities")
	for i := range activities {
		path := fmt.Sprintf("activities.%d", i)
		n.activity(n.element(activities, i, path), path)
	}
}

func (n *normalizer) activity(obj map[string]any, path string) {
	for _, key := range []string{"name", "description", "startTimestamp", "endTimestamp"} {
		n.str(obj, path, key)
	}
	locPath := join(path, "location")
	loc, ok := obj["location"].(map[string]any)
	if !ok {
		n.fail(locPath, "required", "must be an object")
		obj["location"] = map[string]any{}
		return
	}
	for _, key := range []string{"name", "type", "address"} {
		n.str(loc, locPath, key)
	}
	n.number(loc, locPath, "latitude")
	n.number(loc, locPath, "longitude")
}

func (n *normalizer) memberJoin(obj map[string]any) {
	n.integer(obj, "", "tourId", true)
	n.str(obj, "", "touristUsername")

	members := n.array(obj, "", "joinedMembers")
	for i := range members {
		path := fmt.Sprintf("joinedMembers.%d", i)
		m := n.element(members, i, path)
		n.integer(m, path, "memberId", true)
		n.str(m, path, "firstName")
		n.str(m, path, "lastName")
		n.integer(m, path, "age", false)
	}
}

// decodeNormalized re-encodes the normalized document into out.
func decodeNormalized(obj map[string]any, out any) error {
	buf, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, out)
}
