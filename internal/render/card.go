package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/mithrel/finreply/pkg/api"
)

// ErrInvalidCard reports a payload that is not a usable technical card.
var ErrInvalidCard = errors.New("invalid card payload")

// RSIZone is the band an RSI reading falls in.
type RSIZone int

const (
	RSINeutral RSIZone = iota
	RSIOverbought
	RSIOversold
)

const (
	rsiOverbought = 70
	rsiOversold   = 30
)

// ClassifyRSI maps an RSI reading to its zone. Both thresholds are inclusive.
func ClassifyRSI(rsi float64) RSIZone {
	switch {
	case rsi >= rsiOverbought:
		return RSIOverbought
	case rsi <= rsiOversold:
		return RSIOversold
	default:
		return RSINeutral
	}
}

func (z RSIZone) String() string {
	switch z {
	case RSIOverbought:
		return "overbought"
	case RSIOversold:
		return "oversold"
	default:
		return "neutral"
	}
}

// Class is the CSS class used to color the zone.
func (z RSIZone) Class() string {
	switch z {
	case RSIOverbought:
		return "tag-red"
	case RSIOversold:
		return "tag-green"
	default:
		return "tag-muted"
	}
}

// Label is the display text shown in the zone tag.
func (z RSIZone) Label() string {
	switch z {
	case RSIOverbought:
		return "Sobrecompra"
	case RSIOversold:
		return "Sobreventa"
	default:
		return "Neutral"
	}
}

// GaugeFill is the gauge width percentage. Out-of-range readings pass through
// unclamped, saturating at the int32 range so huge values keep their sign.
func GaugeFill(rsi float64) int {
	switch {
	case math.IsNaN(rsi):
		return 0
	case rsi >= math.MaxInt32:
		return math.MaxInt32
	case rsi <= math.MinInt32:
		return math.MinInt32
	}
	return int(math.Round(rsi))
}

// Signal is the price position relative to a moving average.
type Signal int

const (
	SignalBelow Signal = iota
	SignalAbove
)

// ParseSignal treats "arriba" as above; every other value is below.
func ParseSignal(s string) Signal {
	if s == "arriba" {
		return SignalAbove
	}
	return SignalBelow
}

func (s Signal) String() string {
	if s == SignalAbove {
		return "above"
	}
	return "below"
}

func (s Signal) Class() string {
	if s == SignalAbove {
		return "tag-green"
	}
	return "tag-red"
}

func (s Signal) Label() string {
	if s == SignalAbove {
		return "▲ Alcista"
	}
	return "▼ Bajista"
}

// cardWire mirrors api.TechnicalCard with pointers so missing fields are detectable.
type cardWire struct {
	Ticker      *string  `json:"ticker"`
	Nombre      string   `json:"nombre"`
	Precio      *float64 `json:"precio"`
	Moneda      string   `json:"moneda"`
	RSI         *float64 `json:"rsi"`
	SMA20       *float64 `json:"sma20"`
	SMA20Signal string   `json:"sma20_signal"`
	SMA50       *float64 `json:"sma50"`
	SMA50Signal *string  `json:"sma50_signal"`
}

// ParseCard decodes a card payload. Any failure wraps ErrInvalidCard.
func ParseCard(payload string) (api.TechnicalCard, error) {
	var w cardWire
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &w); err != nil {
		return api.TechnicalCard{}, fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}
	var missing []string
	if w.Ticker == nil || strings.TrimSpace(*w.Ticker) == "" {
		missing = append(missing, "ticker")
	}
	if w.Precio == nil {
		missing = append(missing, "precio")
	}
	if w.RSI == nil {
		missing = append(missing, "rsi")
	}
	if w.SMA20 == nil {
		missing = append(missing, "sma20")
	}
	if len(missing) > 0 {
		return api.TechnicalCard{}, fmt.Errorf("%w: missing %s", ErrInvalidCard, strings.Join(missing, ", "))
	}
	return api.TechnicalCard{
		Ticker:      *w.Ticker,
		Nombre:      w.Nombre,
		Precio:      *w.Precio,
		Moneda:      w.Moneda,
		RSI:         *w.RSI,
		SMA20:       *w.SMA20,
		SMA20Signal: w.SMA20Signal,
		SMA50:       w.SMA50,
		SMA50Signal: w.SMA50Signal,
	}, nil
}

// SMARow is one moving-average line of a card.
type SMARow struct {
	Label  string
	Value  string
	Signal Signal
}

// CardView is the display-ready form of a card shared by every output surface.
type CardView struct {
	Ticker string
	Nombre string
	Precio string
	Moneda string
	RSI    string
	Fill   int
	Zone   RSIZone
	SMAs   []SMARow
}

// NewCardView formats numbers and derives the RSI zone, gauge fill and SMA signals.
func NewCardView(c api.TechnicalCard) CardView {
	v := CardView{
		Ticker: c.Ticker,
		Nombre: c.Nombre,
		Precio: formatNumber(c.Precio, 2),
		Moneda: c.Moneda,
		RSI:    formatNumber(c.RSI, 1),
		Fill:   GaugeFill(c.RSI),
		Zone:   ClassifyRSI(c.RSI),
		SMAs: []SMARow{
			{Label: "SMA 20", Value: formatNumber(c.SMA20, 2), Signal: ParseSignal(c.SMA20Signal)},
		},
	}
	// sma50 without its signal is malformed; only that row is dropped.
	if c.SMA50 != nil && c.SMA50Signal != nil {
		v.SMAs = append(v.SMAs, SMARow{Label: "SMA 50", Value: formatNumber(*c.SMA50, 2), Signal: ParseSignal(*c.SMA50Signal)})
	}
	return v
}

func formatNumber(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}

var cardTmpl = template.Must(template.New("card").Parse(
	`<div class="tech-card">` +
		`<div class="tc-header">` +
		`<span class="tc-ticker">{{.Ticker}}</span>` +
		`<span class="tc-name">{{.Nombre}}</span>` +
		`<span class="tc-price">{{.Precio}} {{.Moneda}}</span>` +
		`</div>` +
		`<div class="tc-grid">` +
		`<div class="tc-indicator tc-rsi">` +
		`<span class="tc-label">RSI 14</span>` +
		`<span class="tc-value">{{.RSI}}</span>` +
		`<div class="tc-gauge"><div class="tc-gauge-fill {{.Zone.Class}}" style="width: {{.Fill}}%"></div></div>` +
		`<span class="tc-tag {{.Zone.Class}}">{{.Zone.Label}}</span>` +
		`</div>` +
		`{{range .SMAs}}` +
		`<div class="tc-indicator tc-sma">` +
		`<span class="tc-label">{{.Label}}</span>` +
		`<span class="tc-value">{{.Value}}</span>` +
		`<span class="tc-tag {{.Signal.Class}}">{{.Signal.Label}}</span>` +
		`</div>` +
		`{{end}}` +
		`</div>` +
		`</div>`))

func renderCard(payload string) (string, error) {
	card, err := ParseCard(payload)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := cardTmpl.Execute(&b, NewCardView(card)); err != nil {
		return "", fmt.Errorf("execute card template: %w", err)
	}
	return b.String(), nil
}

// RenderCard renders a card payload. ok is false when the payload must be
// rendered as plain text instead.
func RenderCard(payload string) (string, bool) {
	html, err := renderCard(payload)
	if err != nil {
		return "", false
	}
	return html, true
}
