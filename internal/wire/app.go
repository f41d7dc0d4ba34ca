package wire

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mithrel/finreply/internal/logging"
	"github.com/mithrel/finreply/internal/metrics"
	"github.com/mithrel/finreply/internal/render"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg      *viper.Viper
	Log      *zap.Logger
	Metrics  *metrics.Metrics
	Renderer *render.Renderer
}

// BuildApp wires dependencies with the provided config.
func BuildApp(ctx context.Context, v *viper.Viper) (*App, error) {
	logger, err := logging.New(logging.Config{
		Level: v.GetString("log.level"),
		Dev:   v.GetBool("log.dev"),
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	m := metrics.New()
	r := render.New(
		render.WithMarker(v.GetString("render.card_marker")),
		render.WithLogger(logger.Named("render")),
		render.WithObserver(m),
	)
	return &App{
		Cfg:      v,
		Log:      logger,
		Metrics:  m,
		Renderer: r,
	}, nil
}
