package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mithrel/finreply/pkg/api"
)

func plain(s string) api.Segment { return api.Segment{Kind: api.SegmentPlainText, Content: s} }
func card(s string) api.Segment  { return api.Segment{Kind: api.SegmentCardPayload, Content: s} }

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []api.Segment
	}{
		{"no marker", "hola\nmundo", []api.Segment{plain("hola\nmundo")}},
		{"no marker blank text kept", "\n\n", []api.Segment{plain("\n\n")}},
		{"empty text", "", []api.Segment{plain("")}},
		{
			"prose card prose",
			"Mirá esto:\n[[TECH_CARD]]{\"ticker\":\"AAPL\"}\nSaludos",
			[]api.Segment{plain("Mirá esto:"), card(`{"ticker":"AAPL"}`), plain("Saludos")},
		},
		{
			"card only",
			"[[TECH_CARD]] {\"ticker\":\"AAPL\"} ",
			[]api.Segment{card(`{"ticker":"AAPL"}`)},
		},
		{
			"whitespace pieces dropped",
			"  [[TECH_CARD]]   [[TECH_CARD]]{}",
			[]api.Segment{card("{}")},
		},
		{
			"non json payload kept whole",
			"[[TECH_CARD]]not json\n",
			[]api.Segment{card("not json")},
		},
		{
			"unterminated object kept whole",
			"[[TECH_CARD]]{\"ticker\": ",
			[]api.Segment{card(`{"ticker":`)},
		},
		{
			"braces inside strings",
			`[[TECH_CARD]]{"nombre":"a}b"} fin`,
			[]api.Segment{card(`{"nombre":"a}b"}`), plain("fin")},
		},
		{
			"two cards in order",
			"A\n[[TECH_CARD]]{\"n\":1}\nB\n[[TECH_CARD]]{\"n\":2}",
			[]api.Segment{plain("A"), card(`{"n":1}`), plain("B"), card(`{"n":2}`)},
		},
		{
			"prose keeps inner blank lines",
			"A\n\nB\n[[TECH_CARD]]{}",
			[]api.Segment{plain("A\n\nB"), card("{}")},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Extract(tc.in))
		})
	}
}

func TestExtract_CustomMarker(t *testing.T) {
	r := New(WithMarker("@@CARD@@"))
	assert.Equal(t, "@@CARD@@", r.Marker())
	assert.Equal(t, []api.Segment{plain("x"), card("{}")}, r.Extract("x\n@@CARD@@{}"))
	// The default marker means nothing to this renderer.
	assert.Equal(t, []api.Segment{plain("[[TECH_CARD]]{}")}, r.Extract("[[TECH_CARD]]{}"))
}
