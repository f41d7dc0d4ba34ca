package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/finreply/pkg/api"
)

// NDJSONStreamWriter incrementally writes rendered replies as NDJSON.
type NDJSONStreamWriter struct {
	enc *json.Encoder
}

// NewNDJSONStreamWriter creates a streaming NDJSON writer.
func NewNDJSONStreamWriter(w io.Writer) *NDJSONStreamWriter {
	return &NDJSONStreamWriter{enc: newEncoder(w, false)}
}

// Write emits one rendered reply.
func (nw *NDJSONStreamWriter) Write(r api.Rendered) error {
	return nw.enc.Encode(r)
}

// Close is a no-op for NDJSON output.
func (nw *NDJSONStreamWriter) Close() error { return nil }
