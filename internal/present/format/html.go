package format

import (
	"io"

	"github.com/mithrel/finreply/pkg/api"
)

// WriteHTML writes the markup fragment followed by a newline.
func WriteHTML(w io.Writer, r api.Rendered) error {
	if _, err := io.WriteString(w, r.HTML); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
