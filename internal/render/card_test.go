package render

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCard = `{"ticker":"AAPL","nombre":"Apple Inc.","precio":189.5,"moneda":"USD",` +
	`"rsi":72.4,"sma20":185.1,"sma20_signal":"arriba","sma50":180.25,"sma50_signal":"abajo"}`

func TestClassifyRSI(t *testing.T) {
	cases := []struct {
		rsi  float64
		want RSIZone
	}{
		{70, RSIOverbought},
		{69.99, RSINeutral},
		{30, RSIOversold},
		{30.01, RSINeutral},
		{50, RSINeutral},
		{0, RSIOversold},
		{100, RSIOverbought},
		{-5, RSIOversold},
		{150, RSIOverbought},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyRSI(tc.rsi), "rsi=%v", tc.rsi)
	}
	assert.Equal(t, "overbought", RSIOverbought.String())
	assert.Equal(t, "tag-red", RSIOverbought.Class())
	assert.Equal(t, "tag-green", RSIOversold.Class())
	assert.Equal(t, "tag-muted", RSINeutral.Class())
}

func TestGaugeFill(t *testing.T) {
	assert.Equal(t, 56, GaugeFill(55.5))
	assert.Equal(t, 72, GaugeFill(72.4))
	assert.Equal(t, 150, GaugeFill(150.2), "no clamping above 100")
	assert.Equal(t, -3, GaugeFill(-3.4), "no clamping below 0")
	assert.Equal(t, math.MaxInt32, GaugeFill(1e20), "huge readings saturate without flipping sign")
	assert.Equal(t, math.MinInt32, GaugeFill(-1e20))
	assert.Equal(t, 0, GaugeFill(math.NaN()))
}

func TestParseSignal(t *testing.T) {
	assert.Equal(t, SignalAbove, ParseSignal("arriba"))
	assert.Equal(t, SignalBelow, ParseSignal("abajo"))
	assert.Equal(t, SignalBelow, ParseSignal(""))
	assert.Equal(t, SignalBelow, ParseSignal("Arriba"))
	assert.Equal(t, "above", SignalAbove.String())
}

func TestParseCard(t *testing.T) {
	c, err := ParseCard(sampleCard)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", c.Ticker)
	assert.Equal(t, 189.5, c.Precio)
	require.NotNil(t, c.SMA50)
	assert.Equal(t, 180.25, *c.SMA50)
	require.NotNil(t, c.SMA50Signal)
	assert.Equal(t, "abajo", *c.SMA50Signal)

	bad := map[string]string{
		"not json":        "not json",
		"truncated":       `{"ticker":"AAPL"`,
		"wrong type":      `{"ticker":"AAPL","precio":1,"rsi":"alto","sma20":1}`,
		"array":           `[1,2,3]`,
		"missing ticker":  `{"precio":1,"rsi":50,"sma20":1}`,
		"blank ticker":    `{"ticker":" ","precio":1,"rsi":50,"sma20":1}`,
		"missing numbers": `{"ticker":"AAPL"}`,
		"null":            `null`,
		"trailing text":   `{"ticker":"AAPL","precio":1,"rsi":50,"sma20":1} y más`,
	}
	for name, payload := range bad {
		_, err := ParseCard(payload)
		assert.True(t, errors.Is(err, ErrInvalidCard), "%s: got %v", name, err)
	}

	_, err = ParseCard(`{"ticker":"AAPL"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing precio, rsi, sma20")
}

func TestRenderCard(t *testing.T) {
	html, ok := RenderCard(sampleCard)
	require.True(t, ok)

	assert.Contains(t, html, `<div class="tech-card">`)
	assert.Contains(t, html, `<span class="tc-ticker">AAPL</span>`)
	assert.Contains(t, html, `<span class="tc-name">Apple Inc.</span>`)
	assert.Contains(t, html, `<span class="tc-price">189.50 USD</span>`)
	assert.Contains(t, html, `<span class="tc-value">72.4</span>`)
	assert.Contains(t, html, `class="tc-gauge-fill tag-red" style="width: 72%"`)
	assert.Contains(t, html, `<span class="tc-tag tag-red">Sobrecompra</span>`)
	assert.Contains(t, html, `<span class="tc-label">SMA 20</span><span class="tc-value">185.10</span><span class="tc-tag tag-green">▲ Alcista</span>`)
	assert.Contains(t, html, `<span class="tc-label">SMA 50</span><span class="tc-value">180.25</span><span class="tc-tag tag-red">▼ Bajista</span>`)
}

func TestRenderCard_OptionalSMA50(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		html, ok := RenderCard(`{"ticker":"MELI","nombre":"MercadoLibre","precio":1500,"moneda":"USD","rsi":25,"sma20":1550,"sma20_signal":"abajo"}`)
		require.True(t, ok)
		assert.NotContains(t, html, "SMA 50")
		assert.Contains(t, html, `<span class="tc-tag tag-green">Sobreventa</span>`)
	})

	t.Run("value without signal drops only the row", func(t *testing.T) {
		html, ok := RenderCard(`{"ticker":"SPY","precio":500,"rsi":50,"sma20":495,"sma20_signal":"arriba","sma50":480}`)
		require.True(t, ok)
		assert.NotContains(t, html, "SMA 50")
		assert.Contains(t, html, "SMA 20")
		assert.Contains(t, html, `<span class="tc-tag tag-muted">Neutral</span>`)
	})
}

func TestRenderCard_Invalid(t *testing.T) {
	html, ok := RenderCard("not json")
	assert.False(t, ok)
	assert.Empty(t, html)
}

func TestRenderCard_EscapesFields(t *testing.T) {
	html, ok := RenderCard(`{"ticker":"X","nombre":"<b>Evil</b>","precio":1,"rsi":50,"sma20":1}`)
	require.True(t, ok)
	assert.Contains(t, html, "&lt;b&gt;Evil&lt;/b&gt;")
	assert.NotContains(t, html, "<b>Evil</b>")
}

func TestRenderCard_HugeRSIWidth(t *testing.T) {
	html, ok := RenderCard(`{"ticker":"X","precio":1,"rsi":1e20,"sma20":1,"sma20_signal":"arriba"}`)
	require.True(t, ok)
	assert.Contains(t, html, `style="width: 2147483647%"`)
}
