// Package render turns raw assistant replies into HTML fragments: a restricted
// markdown renderer for prose plus templated technical-indicator cards for
// JSON payloads embedded after a marker.
//
// Rendering never fails. A payload that cannot be decoded as a card is
// rendered as ordinary text. A Renderer holds no mutable state and is safe
// for concurrent use.
package render

import (
	"strings"

	"go.uber.org/zap"

	"github.com/mithrel/finreply/pkg/api"
)

// Observer receives rendering events, e.g. for metrics.
type Observer interface {
	MessageRendered()
	CardRendered()
	CardDegraded()
}

type Option func(*Renderer)

// WithMarker overrides the card marker. An empty marker is ignored.
func WithMarker(marker string) Option {
	return func(r *Renderer) {
		if marker != "" {
			r.marker = marker
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(r *Renderer) { r.obs = o }
}

type Renderer struct {
	marker string
	log    *zap.Logger
	obs    Observer
}

func New(opts ...Option) *Renderer {
	r := &Renderer{marker: DefaultMarker, log: zap.NewNop()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Marker returns the card marker this renderer splits on.
func (r *Renderer) Marker() string { return r.marker }

// Extract splits text into ordered plain-text and card-payload segments.
func (r *Renderer) Extract(text string) []api.Segment {
	return extract(text, r.marker)
}

// Render runs the full pipeline and returns the concatenated markup.
func (r *Renderer) Render(text string) string {
	return r.RenderResult(text).HTML
}

// RenderResult renders text and reports how many cards rendered or degraded.
func (r *Renderer) RenderResult(text string) api.Rendered {
	var (
		b   strings.Builder
		res api.Rendered
	)
	for _, seg := range r.Extract(text) {
		if seg.Kind != api.SegmentCardPayload {
			b.WriteString(RenderPlainText(seg.Content))
			continue
		}
		html, err := renderCard(seg.Content)
		if err != nil {
			r.log.Debug("card payload rendered as text",
				zap.Int("payload_len", len(seg.Content)),
				zap.Error(err))
			res.Degraded++
			if r.obs != nil {
				r.obs.CardDegraded()
			}
			b.WriteString(RenderPlainText(seg.Content))
			continue
		}
		res.Cards++
		if r.obs != nil {
			r.obs.CardRendered()
		}
		b.WriteString(html)
	}
	if r.obs != nil {
		r.obs.MessageRendered()
	}
	res.HTML = b.String()
	res.Hash = api.Reply{Text: text}.Hash()
	return res
}

var defaultRenderer = New()

// Render renders text with the default marker.
func Render(text string) string {
	return defaultRenderer.Render(text)
}
