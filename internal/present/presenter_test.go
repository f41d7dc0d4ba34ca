package present

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/finreply/internal/render"
	"github.com/mithrel/finreply/pkg/api"
)

func TestParseMode(t *testing.T) {
	for i, name := range []string{"html", "json", "ndjson", "pretty"} {
		m, err := ParseMode(name)
		require.NoError(t, err)
		assert.Equal(t, Mode(i), m)
		assert.Equal(t, name, m.String())
	}

	m, err := ParseMode(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, ModeJSON, m)

	_, err = ParseMode("prety")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMode))
	assert.Contains(t, err.Error(), `did you mean "pretty"?`)

	_, err = ParseMode("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want one of html, json, ndjson, pretty")
}

func TestRenderReply(t *testing.T) {
	r := render.New()
	text := "**Apple** subió +2.5% hoy"

	var buf bytes.Buffer
	require.NoError(t, RenderReply(&buf, r, text, Options{Mode: ModeHTML}))
	assert.Equal(t, render.Render(text)+"\n", buf.String())

	buf.Reset()
	require.NoError(t, RenderReply(&buf, r, text, Options{Mode: ModeJSON}))
	var got api.Rendered
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, render.Render(text), got.HTML)
	assert.Equal(t, api.Reply{Text: text}.Hash(), got.Hash)
}

func TestRenderBatch_PreservesOrder(t *testing.T) {
	r := render.New()
	texts := make([]string, 50)
	for i := range texts {
		texts[i] = fmt.Sprintf("mensaje %d", i)
	}

	var buf bytes.Buffer
	require.NoError(t, RenderBatch(context.Background(), &buf, r, texts, Options{Mode: ModeNDJSON, Workers: 8}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(texts))
	for i, line := range lines {
		var got api.Rendered
		require.NoError(t, json.Unmarshal([]byte(line), &got))
		assert.Equal(t, fmt.Sprintf("<p>mensaje %d</p>", i), got.HTML)
	}
}

func TestRenderBatch_JSONArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBatch(context.Background(), &buf, render.New(), []string{"a", "[[TECH_CARD]]x"}, Options{Mode: ModeJSON, Workers: 2}))
	var got []api.Rendered
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[1].Degraded)
}

func TestRenderBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	err := RenderBatch(ctx, &buf, render.New(), []string{"a", "b"}, Options{Mode: ModeHTML, Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}
