package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/finreply/pkg/api"
)

func newEncoder(w io.Writer, indent bool) *json.Encoder {
	enc := json.NewEncoder(w)
	// Rendered markup is the payload; keep it readable instead of <-escaped.
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc
}

// WriteJSON writes a single rendered reply as a JSON object.
func WriteJSON(w io.Writer, r api.Rendered, indent bool) error {
	return newEncoder(w, indent).Encode(r)
}

// WriteJSONBatch writes rendered replies as one JSON array.
func WriteJSONBatch(w io.Writer, rs []api.Rendered, indent bool) error {
	if rs == nil {
		rs = []api.Rendered{}
	}
	return newEncoder(w, indent).Encode(rs)
}
