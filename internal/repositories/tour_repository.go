package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbm "tourdesk/internal/models/db_models"
)

// TourGuard inspects the locked current tour before a replace is written.
// Returning an error aborts the transaction.
type TourGuard func(current *dbm.Tour) error

type TourRepository interface {
	CreateTour(ctx context.Context, tour *dbm.Tour) error
	GetTourById(ctx context.Context, id uuid.UUID) (*dbm.Tour, error)
	ReplaceTour(ctx context.Context, id uuid.UUID, next *dbm.Tour, guard TourGuard) error
	DeleteTour(ctx context.Context, id uuid.UUID) (bool, error)
}

type tourRepository struct {
	db *gorm.DB
}

func NewTourRepository(db *gorm.DB) TourRepository {
	return &tourRepository{db: db}
}

func (r *tourRepository) CreateTour(ctx context.Context, tour *dbm.Tour) error {
	for i := range tour.Activities {
		tour.Activities[i].Position = i
	}
	return r.db.WithContext(ctx).Create(tour).Error
}

func (r *tourRepository) GetTourById(ctx context.Context, id uuid.UUID) (*dbm.Tour, error) {
	tour, err := loadTour(r.db.WithContext(ctx), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return tour, nil
}

func loadTour(db *gorm.DB, id uuid.UUID) (*dbm.Tour, error) {
	var tour dbm.Tour
	err := db.
		Where("id = ?", id).
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Activities.Location").
		First(&tour).Error
	if err != nil {
		return nil, err
	}
	return &tour, nil
}

func lockTour(tx *gorm.DB, id uuid.UUID) (*dbm.Tour, error) {
	var tour dbm.Tour
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&tour).Error
	if err != nil {
		return nil, err
	}
	return &tour, nil
}

// ReplaceTour overwrites the scalar fields of a tour and swaps its activity
// list for next.Activities. A missing tour yields gorm.ErrRecordNotFound.
func (r *tourRepository) ReplaceTour(ctx context.Context, id uuid.UUID, next *dbm.Tour, guard TourGuard) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockTour(tx, id); err != nil {
			return err
		}

		if guard != nil {
			current, err := loadTour(tx, id)
			if err != nil {
				return err
			}
			if err := guard(current); err != nil {
				return err
			}
		}

		// map form so zero values are written too
		if err := tx.Model(&dbm.Tour{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":              next.Name,
			"start_date":        next.StartDate,
			"end_date":          next.EndDate,
			"refund_due_date":   next.RefundDueDate,
			"overview_location": next.OverviewLocation,
			"description":       next.Description,
			"price":             next.Price,
			"max_member_count":  next.MaxMemberCount,
		}).Error; err != nil {
			return err
		}

		activityIDs := tx.Model(&dbm.Activity{}).Select("id").Where("tour_id = ?", id)
		if err := tx.Unscoped().Where("activity_id IN (?)", activityIDs).Delete(&dbm.Location{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("tour_id = ?", id).Delete(&dbm.Activity{}).Error; err != nil {
			return err
		}

		if len(next.Activities) == 0 {
			return nil
		}
		acts := make([]dbm.Activity, len(next.Activities))
		for i, a := range next.Activities {
			a.ID = uuid.Nil
			a.TourID = id
			a.Position = i
			a.Location.ID = uuid.Nil
			acts[i] = a
		}
		return tx.Create(&acts).Error
	})
}

func (r *tourRepository) DeleteTour(ctx context.Context, id uuid.UUID) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockTour(tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		activityIDs := tx.Model(&dbm.Activity{}).Select("id").Where("tour_id = ?", id)
		if err := tx.Where("activity_id IN (?)", activityIDs).Delete(&dbm.Location{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tour_id = ?", id).Delete(&dbm.Activity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tour_id = ?", id).Delete(&dbm.TourMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&dbm.Tour{}, "id = ?", id).Error
	})
	return found, err
}
