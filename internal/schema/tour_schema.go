// Package schema holds the validation rules for tours and member-join
// requests. Validation never stops at the first problem: every violation is
// returned as a FieldErrors value.
package schema

import (
	"tourdesk/internal/models/form_models"
	"tourdesk/internal/models/request_models"
)

// ValidateForm checks the edit form of a tour.
func ValidateForm(form *form_models.TourForm) error {
	if form == nil {
		return FieldErrors{{Rule: "required", Message: "tour is required"}}
	}
	if errs := check(form); len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidatePayload checks a typed wire payload.
func ValidatePayload(p *request_models.TourPayload) error {
	if p == nil {
		return FieldErrors{{Rule: "required", Message: "tour is required"}}
	}
	if errs := check(p); len(errs) > 0 {
		return errs
	}
	return nil
}

// ParseTour decodes an untyped tour candidate, coercing numeric strings and
// collapsing a slider container around maxMemberCount, and validates it.
func ParseTour(raw []byte) (*request_models.TourPayload, error) {
	obj, errs := decodeObject(raw)
	if errs != nil {
		return nil, errs
	}

	n := &normalizer{}
	n.tour(obj)

	var p request_models.TourPayload
	if err := decodeNormalized(obj, &p); err != nil {
		n.fail("", "json", err.Error())
		return nil, n.errs
	}
	if p.Activities == nil {
		p.Activities = []request_models.ActivityPayload{}
	}

	all := n.errs
	for _, fe := range check(&p) {
		if !n.errs.covers(fe.Path) {
			all = append(all, fe)
		}
	}
	if len(all) > 0 {
		return nil, all
	}
	return &p, nil
}
