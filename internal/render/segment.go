package render

import (
	"encoding/json"
	"strings"

	"github.com/mithrel/finreply/pkg/api"
)

// DefaultMarker precedes each embedded card payload in a reply.
const DefaultMarker = "[[TECH_CARD]]"

// Extract splits text on DefaultMarker into ordered segments.
func Extract(text string) []api.Segment {
	return extract(text, DefaultMarker)
}

func extract(text, marker string) []api.Segment {
	if marker == "" || !strings.Contains(text, marker) {
		return []api.Segment{{Kind: api.SegmentPlainText, Content: text}}
	}

	pieces := strings.Split(text, marker)
	segs := make([]api.Segment, 0, len(pieces)+1)
	if lead := trimTrailingBreak(pieces[0]); strings.TrimSpace(lead) != "" {
		segs = append(segs, api.Segment{Kind: api.SegmentPlainText, Content: lead})
	}
	for _, p := range pieces[1:] {
		if strings.TrimSpace(p) == "" {
			continue
		}
		payload, rest := splitPayload(p)
		segs = append(segs, api.Segment{Kind: api.SegmentCardPayload, Content: payload})
		if rest = trimTrailingBreak(trimLeadingBreak(rest)); strings.TrimSpace(rest) != "" {
			segs = append(segs, api.Segment{Kind: api.SegmentPlainText, Content: rest})
		}
	}
	return segs
}

// splitPayload separates a leading JSON object from any prose that follows it
// before the next marker. A piece that does not start with a decodable object
// is returned whole as the payload.
func splitPayload(piece string) (payload, rest string) {
	trimmed := strings.TrimLeft(piece, " \t\r\n")
	if !strings.HasPrefix(trimmed, "{") {
		return strings.TrimSpace(piece), ""
	}
	dec := json.NewDecoder(strings.NewReader(trimmed))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return strings.TrimSpace(piece), ""
	}
	end := int(dec.InputOffset())
	return trimmed[:end], trimmed[end:]
}

// trimLeadingBreak and trimTrailingBreak drop the single line break that
// separates prose from a marker or payload, so it does not render as an extra
// blank line.
func trimLeadingBreak(s string) string {
	s = strings.TrimLeft(s, " \t")
	s = strings.TrimPrefix(s, "\r")
	return strings.TrimPrefix(s, "\n")
}

func trimTrailingBreak(s string) string {
	s = strings.TrimRight(s, " \t")
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
