package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tourdesk/internal/models/db_models"
)

var ErrCapacityExceeded = errors.New("tour capacity exceeded")

type TourMemberRepository interface {
	// AddMembers stores members for the tour when the seats allow it and
	// returns the resulting member count.
	AddMembers(ctx context.Context, tourID uuid.UUID, members []dbm.TourMember) (int, error)
	CountMembers(ctx context.Context, tourID uuid.UUID) (int, error)
}

type tourMemberRepository struct {
	db *gorm.DB
}

func NewTourMemberRepository(db *gorm.DB) TourMemberRepository {
	return &tourMemberRepository{db: db}
}

func (r *tourMemberRepository) AddMembers(ctx context.Context, tourID uuid.UUID, members []dbm.TourMember) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tour, err := lockTour(tx, tourID)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&dbm.TourMember{}).Where("tour_id = ?", tourID).Count(&count).Error; err != nil {
			return err
		}
		if int(count)+len(members) > tour.MaxMemberCount {
			return ErrCapacityExceeded
		}

		if len(members) > 0 {
			rows := make([]dbm.TourMember, len(members))
			for i, m := range members {
				m.ID = uuid.Nil
				m.TourID = tourID
				rows[i] = m
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		total = int(count) + len(members)
		return nil
	})
	return total, err
}

func (r *tourMemberRepository) CountMembers(ctx context.Context, tourID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbm.TourMember{}).Where("tour_id = ?", tourID).Count(&count).Error
	return int(count), err
}
