package logger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"tourdesk/internal/config"
)

var Module = fx.Options(
	fx.Provide(provideLogger),
	fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: l.Named("fx")}
	}),
)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if cfg.IsProduction() {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	for _, w := range cfg.Warnings() {
		l.Warn("config", zap.String("warning", w))
	}

	undo := zap.ReplaceGlobals(l)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			undo()
			_ = l.Sync()
			return nil
		},
	})
	return l, nil
}
