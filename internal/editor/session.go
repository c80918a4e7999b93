// Package editor holds the client side of tour editing: the activity list
// operations, the submission planner and the per-form edit session.
package editor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tourdesk/internal/convert"
	"tourdesk/internal/models/form_models"
	"tourdesk/internal/models/request_models"
)

var (
	ErrSubmitPending  = errors.New("a submission is already in progress")
	ErrLoadSuperseded = errors.New("a newer load replaced this one")
)

// TourGateway is the backend as seen by an edit session.
type TourGateway interface {
	FetchTour(ctx context.Context, id string) (*request_models.TourPayload, error)
	// CreateTour returns the id assigned by the backend.
	CreateTour(ctx context.Context, payload request_models.TourPayload, idempotencyKey string) (string, error)
	UpdateTour(ctx context.Context, id string, payload, baseline request_models.TourPayload, idempotencyKey string) error
}

// Session owns the edit state of one tour: the form, the last server
// confirmed baseline and the persisted id. Sessions share nothing.
type Session struct {
	gateway TourGateway
	policy  ActivityPolicy
	logger  *zap.Logger
	now     func() time.Time

	mu         sync.Mutex
	tourID     string
	form       *form_models.TourForm
	baseline   *request_models.TourPayload
	submitting bool

	// loadSeq orders overlapping loads; stateVersion moves only when a load
	// replaced form, baseline and id; formRev moves on every form change.
	loadSeq      uint64
	stateVersion uint64
	formRev      uint64
}

type Option func(*Session)

func WithPolicy(p ActivityPolicy) Option {
	return func(s *Session) { s.policy = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession starts editing a brand-new tour.
func NewSession(gateway TourGateway, opts ...Option) *Session {
	s := &Session{
		gateway: gateway,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.form = form_models.NewTourForm(s.now())
	return s
}

func (s *Session) TourID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tourID
}

// Form returns a copy of the current edit form.
func (s *Session) Form() *form_models.TourForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Clone()
}

// Baseline returns a copy of the last server confirmed state, or nil.
func (s *Session) Baseline() *request_models.TourPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.baseline == nil {
		return nil
	}
	b := clonePayload(*s.baseline)
	return &b
}

// CanReshapeActivities reports whether activities may be appended or removed.
// Existing activities stay readable either way.
func (s *Session) CanReshapeActivities() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy.AllowsReshape(s.tourID)
}

// Load fetches the tour and replaces form, baseline and id in one step.
// When the fetched tour cannot be converted the form falls back to the
// defaults with no baseline, so an update cannot be planned from it.
func (s *Session) Load(ctx context.Context, id string) error {
	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.mu.Unlock()

	wire, err := s.gateway.FetchTour(ctx, id)
	if err != nil {
		return fmt.Errorf("load tour %s: %w", id, err)
	}
	if wire == nil {
		return fmt.Errorf("load tour %s: empty response", id)
	}
	form, convErr := convert.ToEditForm(*wire)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.loadSeq {
		s.logger.Debug("discarding superseded load", zap.String("tour_id", id))
		return ErrLoadSuperseded
	}

	s.stateVersion++
	s.formRev++
	s.tourID = id
	if convErr != nil {
		s.logger.Warn("loaded tour could not be converted", zap.String("tour_id", id), zap.Error(convErr))
		s.form = form_models.NewTourForm(s.now())
		s.baseline = nil
		return convErr
	}

	baseline := convert.ToWireForm(*form)
	s.form = form
	s.baseline = &baseline
	s.logger.Info("tour loaded", zap.String("tour_id", id), zap.Int("activities", len(form.Activities)))
	return nil
}

// Edit applies fn to a draft of the form. fn runs without the session lock,
// so it may read the session; when the form changed meanwhile fn runs again
// on a fresh draft. When the activity list is locked, a draft that adds,
// removes or reorders activities is rejected.
func (s *Session) Edit(fn func(f *form_models.TourForm)) error {
	for {
		s.mu.Lock()
		draft := s.form.Clone()
		rev := s.formRev
		s.mu.Unlock()

		fn(draft)

		s.mu.Lock()
		if rev != s.formRev {
			s.mu.Unlock()
			continue
		}
		if !s.policy.AllowsReshape(s.tourID) && !slices.Equal(s.form.ActivityKeys(), draft.ActivityKeys()) {
			s.mu.Unlock()
			return ErrActivitiesLocked
		}
		ensureKeys(draft.Activities)
		s.form = draft
		s.formRev++
		s.mu.Unlock()
		return nil
	}
}

// SetMaxMemberCount stores the slider value.
func (s *Session) SetMaxMemberCount(r form_models.MemberCountRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.MaxMemberCount = r
	s.formRev++
}

// AppendActivity adds an empty activity and returns its key.
func (s *Session) AppendActivity() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.policy.AllowsReshape(s.tourID) {
		return "", ErrActivitiesLocked
	}
	s.form.Activities = AppendActivity(s.form.Activities, NewActivity(s.now()))
	s.formRev++
	return s.form.Activities[len(s.form.Activities)-1].Key, nil
}

func (s *Session) RemoveActivity(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.policy.AllowsReshape(s.tourID) {
		return ErrActivitiesLocked
	}
	acts, err := RemoveActivityAt(s.form.Activities, index)
	if err != nil {
		return err
	}
	s.form.Activities = acts
	s.formRev++
	return nil
}

// Submit plans and sends the current form. Only one submission may be in
// flight; the baseline advances only once the backend accepted the request.
func (s *Session) Submit(ctx context.Context) (*SubmitRequest, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitPending
	}
	req, err := PlanSubmission(s.form, s.baseline, s.tourID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.submitting = true
	version := s.stateVersion
	s.mu.Unlock()

	key := uuid.NewString()
	var createdID string
	switch req.Kind {
	case SubmitCreate:
		createdID, err = s.gateway.CreateTour(ctx, req.Payload, key)
	case SubmitUpdate:
		err = s.gateway.UpdateTour(ctx, req.TourID, req.Payload, *req.Baseline, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		s.logger.Warn("tour submission rejected", zap.String("kind", string(req.Kind)), zap.String("tour_id", req.TourID), zap.Error(err))
		return req, &SubmissionError{Kind: req.Kind, Err: err}
	}
	if version != s.stateVersion {
		s.logger.Info("tour was reloaded during submission; keeping the reloaded baseline", zap.String("tour_id", req.TourID))
		return req, nil
	}

	saved := clonePayload(req.Payload)
	s.baseline = &saved
	if req.Kind == SubmitCreate && createdID != "" {
		s.tourID = createdID
		req.TourID = createdID
	}
	s.logger.Info("tour submitted", zap.String("kind", string(req.Kind)), zap.String("tour_id", s.tourID))
	return req, nil
}

// ensureKeys gives a fresh key to rows without one or sharing one.
func ensureKeys(acts []form_models.ActivityForm) {
	seen := make(map[string]struct{}, len(acts))
	for i := range acts {
		if _, dup := seen[acts[i].Key]; acts[i].Key == "" || dup {
			acts[i].Key = convert.NewKey()
		}
		seen[acts[i].Key] = struct{}{}
	}
}
