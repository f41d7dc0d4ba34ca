//go:build ignore

// generate_sample writes NDJSON render requests for `finreply render --batch`.
//
//	go run scripts/generate_sample.go > sample.ndjson
package main

import (
	"encoding/json"
	"fmt"
	mrand "math/rand"
	"os"
	"strings"

	"github.com/mithrel/finreply/internal/render"
	"github.com/mithrel/finreply/pkg/api"
)

type quote struct {
	ticker, name, currency string
	price                  float64
}

var quotes = []quote{
	{"AAPL", "Apple Inc.", "USD", 189.5},
	{"MSFT", "Microsoft Corp.", "USD", 415.2},
	{"SAN.MC", "Banco Santander", "EUR", 4.31},
	{"ITX.MC", "Inditex", "EUR", 47.9},
	{"NVDA", "NVIDIA Corp.", "USD", 121.4},
	{"BBVA.MC", "BBVA", "EUR", 9.87},
}

func main() {
	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))

	const total = 500
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	for i := 0; i < total; i++ {
		q := quotes[mr.Intn(len(quotes))]
		if err := enc.Encode(api.RenderRequest{Texto: sampleReply(mr, q, i)}); err != nil {
			panic(err)
		}
	}
}

func sampleReply(r *mrand.Rand, q quote, i int) string {
	var b strings.Builder
	delta := (r.Float64() - 0.5) * 8
	fmt.Fprintf(&b, "## %s (%s)\n", q.name, q.ticker)
	fmt.Fprintf(&b, "La acción se movió **%+.2f%%** en la sesión.\n\n", delta)

	// Roughly one reply in ten carries a malformed card.
	if i%10 == 9 {
		b.WriteString(render.DefaultMarker + "{\"ticker\": \"" + q.ticker + "\", \"rsi\": \"alto\"}\n")
	} else {
		card := api.TechnicalCard{
			Ticker:      q.ticker,
			Nombre:      q.name,
			Precio:      q.price * (1 + delta/100),
			Moneda:      q.currency,
			RSI:         10 + r.Float64()*80,
			SMA20:       q.price * (0.95 + r.Float64()*0.1),
			SMA20Signal: signal(r),
		}
		if r.Intn(2) == 0 {
			sma50 := q.price * (0.9 + r.Float64()*0.2)
			sig := signal(r)
			card.SMA50, card.SMA50Signal = &sma50, &sig
		}
		payload, _ := json.Marshal(card)
		b.WriteString(render.DefaultMarker + string(payload) + "\n")
	}

	b.WriteString("| Indicador | Lectura |\n|---|---|\n")
	fmt.Fprintf(&b, "| Volumen | %d |\n", 1000+r.Intn(90000))
	b.WriteString("- Riesgo: `moderado`\n- *No es una recomendación de inversión*")
	return b.String()
}

func signal(r *mrand.Rand) string {
	if r.Intn(2) == 0 {
		return "arriba"
	}
	return "abajo"
}
