package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tourdesk/cmd/fx/config_fx"
	"tourdesk/cmd/fx/controllers_fx"
	"tourdesk/cmd/fx/db_fx"
	"tourdesk/cmd/fx/logger_fx"
	"tourdesk/cmd/fx/memcache_fx"
	"tourdesk/cmd/fx/tour_fx"
	"tourdesk/internal/api/controllers"
	"tourdesk/internal/config"
	"tourdesk/pkg/middleware"
	"tourdesk/pkg/utils"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		tour_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	logger *zap.Logger,
	tourController *controllers.TourController,
	memberController *controllers.TourMemberController) *gin.Engine {

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS))

	RegisterRoutes(r, cfg, tourController, memberController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	cfg *config.Config,
	tourController *controllers.TourController,
	memberController *controllers.TourMemberController) {

	r.GET("/healthz", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "")
	})

	auth := middleware.NewBearerAuth(cfg.JWT.Secret)

	tours := r.Group("/api/v1/tours")
	tours.GET("/:id", tourController.GetTourById)
	tours.POST("/:id/members", memberController.JoinTour)

	write := tours.Group("", auth.Authenticate())
	write.POST("", tourController.CreateTour)
	write.PUT("/:id", tourController.UpdateTour)
	write.DELETE("/:id", auth.RequireRole("admin"), tourController.DeleteTour)
}
