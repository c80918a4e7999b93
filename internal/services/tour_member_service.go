package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tourdesk/internal/models/db_models"
	"tourdesk/internal/models/request_models"
	"tourdesk/internal/models/response_models"
	"tourdesk/internal/repositories"
	"tourdesk/pkg/utils"
)

type TourMemberServiceInterface interface {
	JoinTour(ctx context.Context, tourID string, req request_models.JoinTourRequest) (*response_models.JoinTourResponse, error)
}

type TourMemberService struct {
	memberRepo repositories.TourMemberRepository
}

func NewTourMemberService(memberRepo repositories.TourMemberRepository) TourMemberServiceInterface {
	return &TourMemberService{memberRepo: memberRepo}
}

// JoinTour adds every member of req in one step, or none when the tour
// cannot seat them all.
func (s *TourMemberService) JoinTour(ctx context.Context, tourID string, req request_models.JoinTourRequest) (*response_models.JoinTourResponse, error) {
	uid, err := parseTourID(tourID)
	if err != nil {
		return nil, err
	}
	if len(req.JoinedMembers) == 0 {
		return nil, utils.ErrInvalidInput
	}

	members := make([]db_models.TourMember, 0, len(req.JoinedMembers))
	for _, m := range req.JoinedMembers {
		members = append(members, db_models.TourMember{
			MemberID:        m.MemberID,
			FirstName:       m.FirstName,
			LastName:        m.LastName,
			Age:             m.Age,
			TouristUsername: req.TouristUsername,
		})
	}

	total, err := s.memberRepo.AddMembers(ctx, uid, members)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, utils.ErrTourNotFound
		case errors.Is(err, repositories.ErrCapacityExceeded):
			return nil, utils.ErrTourFull
		default:
			return nil, utils.ErrDatabaseError
		}
	}

	return &response_models.JoinTourResponse{
		TourID:      tourID,
		Joined:      len(members),
		MemberCount: total,
	}, nil
}
