package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/finreply/internal/render"
	"github.com/mithrel/finreply/pkg/api"
)

const gaugeCells = 20

var (
	cardBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	tickerSty = lipgloss.NewStyle().Bold(true)
	mutedSty  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	redSty    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	greenSty  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// PrettyOptions configures the terminal preview.
type PrettyOptions struct {
	Style string
	Width int
}

// WritePretty renders segments for a terminal: prose through glamour, cards as
// bordered boxes. Payloads that are not valid cards are shown as prose.
func WritePretty(w io.Writer, segs []api.Segment, opts PrettyOptions) error {
	style := opts.Style
	if style == "" {
		style = "dark"
	}
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	for _, seg := range segs {
		if seg.Kind == api.SegmentCardPayload {
			if card, err := render.ParseCard(seg.Content); err == nil {
				if _, err := io.WriteString(w, CardBox(render.NewCardView(card))+"\n"); err != nil {
					return err
				}
				continue
			}
		}
		out, err := r.Render(seg.Content)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}
	return nil
}

// CardBox draws a card for the terminal.
func CardBox(v render.CardView) string {
	var b strings.Builder
	b.WriteString(tickerSty.Render(v.Ticker))
	if v.Nombre != "" {
		b.WriteString("  " + v.Nombre)
	}
	b.WriteString("  " + strings.TrimSpace(v.Precio+" "+v.Moneda) + "\n")

	zone := styleFor(v.Zone.Class())
	b.WriteString(fmt.Sprintf("RSI 14  %s  %s %s", v.RSI, gauge(v.Fill, zone), zone.Render(v.Zone.Label())))
	for _, row := range v.SMAs {
		b.WriteString(fmt.Sprintf("\n%s  %s  %s", row.Label, row.Value, styleFor(row.Signal.Class()).Render(row.Signal.Label())))
	}
	return cardBox.Render(b.String())
}

// gauge clamps the fill to [0, 100]; the markup output leaves that to CSS.
func gauge(fill int, sty lipgloss.Style) string {
	if fill < 0 {
		fill = 0
	}
	if fill > 100 {
		fill = 100
	}
	n := fill * gaugeCells / 100
	return sty.Render(strings.Repeat("█", n)) + mutedSty.Render(strings.Repeat("░", gaugeCells-n))
}

func styleFor(class string) lipgloss.Style {
	switch class {
	case "tag-red":
		return redSty
	case "tag-green":
		return greenSty
	default:
		return mutedSty
	}
}
