package wire

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildApp(t *testing.T) {
	v := viper.New()
	v.Set("log.level", "warn")
	v.Set("render.card_marker", "<<CARD>>")

	app, err := BuildApp(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, "<<CARD>>", app.Renderer.Marker())

	app.Renderer.Render("hola<<CARD>>{}")
	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics.MessagesRendered))
	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics.Cards.WithLabelValues("degraded")))
}

func TestBuildApp_BadLevel(t *testing.T) {
	v := viper.New()
	v.Set("log.level", "loud")
	_, err := BuildApp(context.Background(), v)
	assert.Error(t, err)
}
