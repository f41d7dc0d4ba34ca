package present

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mithrel/finreply/internal/present/format"
	"github.com/mithrel/finreply/internal/render"
	"github.com/mithrel/finreply/internal/util"
	"github.com/mithrel/finreply/pkg/api"
)

type Mode int

const (
	ModeHTML Mode = iota
	ModeJSON
	ModeNDJSON
	ModePretty
)

var modeNames = []string{"html", "json", "ndjson", "pretty"}

func (m Mode) String() string {
	if int(m) >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ErrUnknownMode is returned by ParseMode for names outside html|json|ndjson|pretty.
var ErrUnknownMode = errors.New("unknown output format")

// ParseMode parses a string like "html", "json", "ndjson", "pretty".
// For unknown names the error suggests the closest known mode.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	if best, ok := util.Suggest(name, modeNames); ok {
		return ModeHTML, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownMode, s, best)
	}
	return ModeHTML, fmt.Errorf("%w %q (want one of %s)", ErrUnknownMode, s, strings.Join(modeNames, ", "))
}

type Options struct {
	Mode       Mode
	JSONIndent bool
	Style      string
	Width      int
	// Workers bounds concurrent renders in RenderBatch.
	Workers int
}

// RenderReply renders one reply and writes it according to options.
func RenderReply(w io.Writer, r *render.Renderer, text string, opts Options) error {
	switch opts.Mode {
	case ModePretty:
		return format.WritePretty(w, r.Extract(text), format.PrettyOptions{Style: opts.Style, Width: opts.Width})
	case ModeJSON:
		return format.WriteJSON(w, r.RenderResult(text), opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSON(w, r.RenderResult(text))
	default:
		return format.WriteHTML(w, r.RenderResult(text))
	}
}

// RenderBatch renders texts concurrently and writes the results in input order.
func RenderBatch(ctx context.Context, w io.Writer, r *render.Renderer, texts []string, opts Options) error {
	if opts.Mode == ModePretty {
		for _, t := range texts {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := RenderReply(w, r, t, opts); err != nil {
				return err
			}
		}
		return nil
	}

	results := make([]api.Rendered, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)
	for i, t := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.RenderResult(t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONBatch(w, results, opts.JSONIndent)
	case ModeNDJSON:
		sw := format.NewNDJSONStreamWriter(w)
		for _, res := range results {
			if err := sw.Write(res); err != nil {
				return err
			}
		}
		return sw.Close()
	default:
		for _, res := range results {
			if err := format.WriteHTML(w, res); err != nil {
				return err
			}
		}
		return nil
	}
}
