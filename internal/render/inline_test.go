package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatInline(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text unchanged", "hola mundo", "hola mundo"},
		{"bold and positive delta", "**Apple** subió +2.5% hoy",
			`<strong>Apple</strong> subió <span class="tag-green">+2.5%</span> hoy`},
		{"italic", "*muy* bien", "<em>muy</em> bien"},
		{"bold is not two italics", "**a** y *b*", "<strong>a</strong> y <em>b</em>"},
		{"spaced asterisks are not italic", "2 * 3 * 4", "2 * 3 * 4"},
		{"code span", "usa `go test`", "usa <code>go test</code>"},
		{"delta inside code is not tagged", "valor `+5%` y `-3`", "valor <code>+5%</code> y <code>-3</code>"},
		{"bold inside code is left alone", "`**x**`", "<code>**x**</code>"},
		{"negative hyphen", "cayó -1,2% ayer", `cayó <span class="tag-red">-1,2%</span> ayer`},
		{"negative unicode minus", "bajó −0.8", `bajó <span class="tag-red">−0.8</span>`},
		{"thousands separators", "+1.234,56", `<span class="tag-green">+1.234,56</span>`},
		{"trailing period excluded", "+2.5%.", `<span class="tag-green">+2.5%</span>.`},
		{"dates are not deltas", "el 2024-01-05", "el 2024-01-05"},
		{"sign glued to a word is not a delta", "x+1 y a-2", "x+1 y a-2"},
		{"delta in parentheses", "(+3%)", `(<span class="tag-green">+3%</span>)`},
		{"delta inside bold", "**+3%**", `<strong><span class="tag-green">+3%</span></strong>`},
		{"both signs on one line", "+1% y -2%",
			`<span class="tag-green">+1%</span> y <span class="tag-red">-2%</span>`},
		{"lone sign", "+ y -", "+ y -"},
		{"bold wrapping a code span", "**ejecutá `go test`**", "<strong>ejecutá <code>go test</code></strong>"},
		{"italic wrapping a code span", "*usa `x`*", "<em>usa <code>x</code></em>"},
		{"bold italic nests properly", "***x***", "<strong><em>x</em></strong>"},
		{"adjacent deltas", "+1%+2%",
			`<span class="tag-green">+1%</span><span class="tag-green">+2%</span>`},
		{"adjacent negative deltas", "-1%-2%",
			`<span class="tag-red">-1%</span><span class="tag-red">-2%</span>`},
		{"leading decimal separator", "+.5% y −,3%",
			`<span class="tag-green">+.5%</span> y <span class="tag-red">−,3%</span>`},
		{"code span between deltas", "+1% `+2%` -3%",
			`<span class="tag-green">+1%</span> <code>+2%</code> <span class="tag-red">-3%</span>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatInline(tc.in))
		})
	}
}
