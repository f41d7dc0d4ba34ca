package api

// SegmentKind tags a piece of a reply as prose or an embedded card payload.
type SegmentKind int

const (
	SegmentPlainText SegmentKind = iota
	SegmentCardPayload
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentPlainText:
		return "plain"
	case SegmentCardPayload:
		return "card"
	default:
		return "unknown"
	}
}

// Segment is one ordered piece of a reply after splitting on the card marker.
type Segment struct {
	Kind    SegmentKind `json:"kind"`
	Content string      `json:"content"`
}

// TechnicalCard is the structured snapshot embedded in replies after the card marker.
// Field names follow the upstream generator's JSON.
type TechnicalCard struct {
	Ticker      string   `json:"ticker"`
	Nombre      string   `json:"nombre"`
	Precio      float64  `json:"precio"`
	Moneda      string   `json:"moneda"`
	RSI         float64  `json:"rsi"`
	SMA20       float64  `json:"sma20"`
	SMA20Signal string   `json:"sma20_signal"`
	SMA50       *float64 `json:"sma50,omitempty"`
	SMA50Signal *string  `json:"sma50_signal,omitempty"`
}

// Rendered is the outcome of rendering one reply.
type Rendered struct {
	HTML     string `json:"html"`
	Hash     string `json:"hash"`
	Cards    int    `json:"cards"`
	Degraded int    `json:"degraded"`
}

// RenderRequest is the HTTP and batch input body.
type RenderRequest struct {
	Texto string `json:"texto"`
}
