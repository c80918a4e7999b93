package schema

import (
	"fmt"

	"tourdesk/internal/models/request_models"
)

const ageMessage = "Age must be more than zero"

// ParseMemberJoin decodes and validates a member-join request. Ages may be
// given as digit-only strings.
func ParseMemberJoin(raw []byte) (*request_models.JoinTourRequest, error) {
	obj, errs := decodeObject(raw)
	if errs != nil {
		return nil, errs
	}

	n := &normalizer{}
	n.memberJoin(obj)

	var req request_models.JoinTourRequest
	if err := decodeNormalized(obj, &req); err != nil {
		n.fail("", "json", err.Error())
		return nil, n.errs
	}
	if req.JoinedMembers == nil {
		req.JoinedMembers = []request_models.MemberPayload{}
	}

	all := n.errs
	for _, fe := range check(&req) {
		if !n.errs.covers(fe.Path) {
			all = append(all, fe)
		}
	}
	for _, fe := range memberAges(req.JoinedMembers) {
		if !n.errs.covers(fe.Path) {
			all = append(all, fe)
		}
	}
	if len(all) > 0 {
		return nil, all
	}
	return &req, nil
}

// ValidateMemberJoin checks an already typed member-join request.
func ValidateMemberJoin(req *request_models.JoinTourRequest) error {
	if req == nil {
		return FieldErrors{{Rule: "required", Message: "request is required"}}
	}
	errs := append(check(req), memberAges(req.JoinedMembers)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// memberAges folds the age rule over every member; each member with a
// non-positive age contributes its own error.
func memberAges(members []request_models.MemberPayload) FieldErrors {
	var errs FieldErrors
	for i, m := range members {
		if m.Age <= 0 {
			errs = append(errs, FieldError{
				Path:    fmt.Sprintf("joinedMembers.%d.age", i),
				Rule:    "gt",
				Message: ageMessage,
			})
		}
	}
	return errs
}
