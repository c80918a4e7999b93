package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tourdesk/internal/models/db_models"
	"tourdesk/internal/models/request_models"
	"tourdesk/internal/repositories"
	"tourdesk/pkg/utils"
)

type fakeMemberRepo struct {
	capacity map[uuid.UUID]int
	members  map[uuid.UUID][]dbm.TourMember
}

func (f *fakeMemberRepo) AddMembers(_ context.Context, tourID uuid.UUID, members []dbm.TourMember) (int, error) {
	limit, ok := f.capacity[tourID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	if len(f.members[tourID])+len(members) > limit {
		return 0, repositories.ErrCapacityExceeded
	}
	f.members[tourID] = append(f.members[tourID], members...)
	return len(f.members[tourID]), nil
}

func (f *fakeMemberRepo) CountMembers(_ context.Context, tourID uuid.UUID) (int, error) {
	return len(f.members[tourID]), nil
}

func joinRequest(n int) request_models.JoinTourRequest {
	req := request_models.JoinTourRequest{TouristUsername: "linh"}
	for i := 0; i < n; i++ {
		req.JoinedMembers = append(req.JoinedMembers, request_models.MemberPayload{FirstName: "A", LastName: "B", Age: 20 + i})
	}
	return req
}

func TestJoinTourRespectsCapacity(t *testing.T) {
	id := uuid.New()
	repo := &fakeMemberRepo{
		capacity: map[uuid.UUID]int{id: 3},
		members:  map[uuid.UUID][]dbm.TourMember{},
	}
	svc := NewTourMemberService(repo)
	ctx := context.Background()

	resp, err := svc.JoinTour(ctx, id.String(), joinRequest(2))
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if resp.Joined != 2 || resp.MemberCount != 2 || resp.TourID != id.String() {
		t.Fatalf("unexpected response %#v", resp)
	}
	if got := repo.members[id][0].TouristUsername; got != "linh" {
		t.Fatalf("tourist username not stored: %q", got)
	}

	if _, err := svc.JoinTour(ctx, id.String(), joinRequest(2)); !errors.Is(err, utils.ErrTourFull) {
		t.Fatalf("expected ErrTourFull, got %v", err)
	}
	if len(repo.members[id]) != 2 {
		t.Fatalf("rejected join must not add members")
	}
}

func TestJoinTourUnknownTour(t *testing.T) {
	svc := NewTourMemberService(&fakeMemberRepo{capacity: map[uuid.UUID]int{}, members: map[uuid.UUID][]dbm.TourMember{}})
	if _, err := svc.JoinTour(context.Background(), uuid.NewString(), joinRequest(1)); !errors.Is(err, utils.ErrTourNotFound) {
		t.Fatalf("expected ErrTourNotFound, got %v", err)
	}
	if _, err := svc.JoinTour(context.Background(), uuid.NewString(), joinRequest(0)); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
