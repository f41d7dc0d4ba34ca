package api

import (
	"encoding/hex"
	"strings"

	"github.com/zeebo/blake3"
)

// Reply is the raw assistant text handed to the renderer.
type Reply struct {
	Text string
}

// Hash returns a deterministic BLAKE3 hex digest of the reply text.
// Line endings are normalized so CRLF and LF variants of a reply hash alike.
func (r Reply) Hash() string {
	h := blake3.New()
	h.Write([]byte(strings.ReplaceAll(r.Text, "\r\n", "\n")))
	return hex.EncodeToString(h.Sum(nil))
}
