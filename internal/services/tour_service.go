package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourdesk/internal/config"
	"tourdesk/internal/convert"
	"tourdesk/internal/models/db_models"
	"tourdesk/internal/models/request_models"
	"tourdesk/internal/models/response_models"
	"tourdesk/internal/repositories"
	mem "tourdesk/pkg/memcache"
	"tourdesk/pkg/utils"
)

type TourServiceInterface interface {
	// CreateTour stores a new tour. The bool is false when submitKey was
	// already used and the earlier tour is returned instead.
	CreateTour(ctx context.Context, payload request_models.TourPayload, submitKey string) (*response_models.TourResponse, bool, error)
	GetTourById(ctx context.Context, id string) (*response_models.TourResponse, error)
	UpdateTour(ctx context.Context, id string, req request_models.UpdateTourRequest, submitKey string) (*response_models.TourUpdateResponse, error)
	DeleteTour(ctx context.Context, id string) error
}

type TourService struct {
	tourRepo   repositories.TourRepository
	submitKeys mem.SubmitKeyStore
	keyTTL     time.Duration

	// serialises submissions that carry an idempotency key
	keyMu sync.Mutex
}

func NewTourService(tourRepo repositories.TourRepository, submitKeys mem.SubmitKeyStore, cfg *config.Config) TourServiceInterface {
	return &TourService{
		tourRepo:   tourRepo,
		submitKeys: submitKeys,
		keyTTL:     cfg.Submission.KeyTTL,
	}
}

func parseTourID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, utils.ErrTourNotFound
	}
	return uid, nil
}

func canonicalPayload(p request_models.TourPayload) (request_models.TourPayload, error) {
	out, err := convert.Canonical(p)
	if err != nil {
		return request_models.TourPayload{}, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}
	return out, nil
}

func (t *TourService) CreateTour(ctx context.Context, payload request_models.TourPayload, submitKey string) (*response_models.TourResponse, bool, error) {
	if submitKey != "" {
		t.keyMu.Lock()
		defer t.keyMu.Unlock()

		if id, ok := t.submitKeys.Lookup(submitKey); ok {
			existing, err := t.GetTourById(ctx, id)
			if err == nil {
				return existing, false, nil
			}
			if !errors.Is(err, utils.ErrTourNotFound) {
				return nil, false, err
			}
		}
	}

	canonical, err := canonicalPayload(payload)
	if err != nil {
		return nil, false, err
	}
	tour, err := db_models.NewTourFromPayload(canonical)
	if err != nil {
		return nil, false, err
	}

	if err := t.tourRepo.CreateTour(ctx, tour); err != nil {
		return nil, false, utils.ErrDatabaseError
	}

	id := tour.ID.String()
	t.submitKeys.Remember(submitKey, id, t.keyTTL)

	return &response_models.TourResponse{
		ID:   id,
		Tour: db_models.BuildTourPayload(tour),
	}, true, nil
}

func (t *TourService) GetTourById(ctx context.Context, id string) (*response_models.TourResponse, error) {
	uid, err := parseTourID(id)
	if err != nil {
		return nil, err
	}

	tour, err := t.tourRepo.GetTourById(ctx, uid)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if tour == nil {
		return nil, utils.ErrTourNotFound
	}

	return &response_models.TourResponse{
		ID:   tour.ID.String(),
		Tour: db_models.BuildTourPayload(tour),
	}, nil
}

// UpdateTour writes the full new values when the stored tour still matches
// the baseline the caller loaded. Changes are reported relative to that
// baseline; an update without changes writes nothing.
func (t *TourService) UpdateTour(ctx context.Context, id string, req request_models.UpdateTourRequest, submitKey string) (*response_models.TourUpdateResponse, error) {
	uid, err := parseTourID(id)
	if err != nil {
		return nil, err
	}

	if submitKey != "" {
		t.keyMu.Lock()
		defer t.keyMu.Unlock()

		if prev, ok := t.submitKeys.Lookup(submitKey); ok && prev == id {
			current, err := t.GetTourById(ctx, id)
			if err != nil {
				return nil, err
			}
			return &response_models.TourUpdateResponse{ID: id, Tour: current.Tour, Changes: []string{}}, nil
		}
	}

	next, err := canonicalPayload(req.Tour)
	if err != nil {
		return nil, err
	}
	baseline, err := canonicalPayload(req.Baseline)
	if err != nil {
		return nil, err
	}

	guard := func(current *db_models.Tour) error {
		if stale := DiffTours(db_models.BuildTourPayload(current), baseline); len(stale) > 0 {
			return utils.ErrTourConflict
		}
		return nil
	}

	changes := DiffTours(baseline, next)
	if len(changes) == 0 {
		current, err := t.tourRepo.GetTourById(ctx, uid)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if current == nil {
			return nil, utils.ErrTourNotFound
		}
		if err := guard(current); err != nil {
			return nil, err
		}
		return &response_models.TourUpdateResponse{ID: id, Tour: next, Changes: changes}, nil
	}

	tour, err := db_models.NewTourFromPayload(next)
	if err != nil {
		return nil, err
	}
	if err := t.tourRepo.ReplaceTour(ctx, uid, tour, guard); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, utils.ErrTourNotFound
		case errors.Is(err, utils.ErrTourConflict):
			return nil, utils.ErrTourConflict
		default:
			return nil, utils.ErrDatabaseError
		}
	}

	t.submitKeys.Remember(submitKey, id, t.keyTTL)

	return &response_models.TourUpdateResponse{ID: id, Tour: next, Changes: changes}, nil
}

func (t *TourService) DeleteTour(ctx context.Context, id string) error {
	uid, err := parseTourID(id)
	if err != nil {
		return err
	}

	found, err := t.tourRepo.DeleteTour(ctx, uid)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !found {
		return utils.ErrTourNotFound
	}
	return nil
}
