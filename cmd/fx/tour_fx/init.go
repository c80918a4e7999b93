package tour_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tourdesk/internal/config"
	"tourdesk/internal/repositories"
	"tourdesk/internal/services"
	mem "tourdesk/pkg/memcache"
)

var Module = fx.Provide(
	provideTourRepo,
	provideTourMemberRepo,
	provideTourService,
	provideTourMemberService,
)

func provideTourRepo(db *gorm.DB) repositories.TourRepository {
	return repositories.NewTourRepository(db)
}

func provideTourMemberRepo(db *gorm.DB) repositories.TourMemberRepository {
	return repositories.NewTourMemberRepository(db)
}

func provideTourService(tourRepo repositories.TourRepository, keys mem.SubmitKeyStore, cfg *config.Config) services.TourServiceInterface {
	return services.NewTourService(tourRepo, keys, cfg)
}

func provideTourMemberService(memberRepo repositories.TourMemberRepository) services.TourMemberServiceInterface {
	return services.NewTourMemberService(memberRepo)
}
