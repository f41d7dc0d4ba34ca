package format

import (
	"io"

	"github.com/mithrel/finreply/pkg/api"
)

// WriteNDJSON writes rendered replies as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, rs ...api.Rendered) error {
	enc := newEncoder(w, false)
	for _, r := range rs {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
