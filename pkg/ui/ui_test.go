package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/binlink/pkg/errors"
	"github.com/arthur-debert/binlink/pkg/ui"
	"github.com/arthur-debert/binlink/pkg/ui/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *display.DisplayResult {
	return &display.DisplayResult{
		Command: "install",
		DryRun:  true,
		Root:    "/work",
		Links: []display.DisplayLink{
			{Source: "app/1.sh", Destination: "bin/1.sh", Target: "../app/1.sh", Filemode: "0755", Status: "planned"},
			{Source: "app/2.sh", Destination: "bin/2.sh", Target: "../app/2.sh", Status: "planned"},
		},
	}
}

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		name        string
		format      ui.Format
		expectError bool
	}{
		{name: "terminal", format: ui.FormatTerminal},
		{name: "text", format: ui.FormatText},
		{name: "json", format: ui.FormatJSON},
		{name: "auto with buffer", format: ui.FormatAuto},
		{name: "invalid", format: ui.Format(999), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, err := ui.NewRenderer(tt.format, &bytes.Buffer{})
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, renderer)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, renderer)
		})
	}
}

func TestTextRenderer_Result(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	require.NoError(t, renderer.RenderResult(sampleResult()))
	assert.Equal(t, `install (dry run)
  bin/1.sh -> ../app/1.sh [0755] planned
  bin/2.sh -> ../app/2.sh planned
2 links: 2 planned
`, buf.String())
}

func TestTextRenderer_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	require.NoError(t, renderer.RenderResult(&display.DisplayResult{Command: "install", Message: "skipped"}))
	assert.Equal(t, "install\n  skipped\n", buf.String())

	buf.Reset()
	require.NoError(t, renderer.RenderResult(&display.DisplayResult{Command: "plan"}))
	assert.Equal(t, "plan\n  No links to process\n", buf.String())
}

func TestTerminalRenderer_Result(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatTerminal, buf)
	require.NoError(t, err)

	require.NoError(t, renderer.RenderResult(sampleResult()))
	out := buf.String()
	assert.Contains(t, out, "binlink install")
	assert.Contains(t, out, "dry run")
	assert.Contains(t, out, "bin/1.sh")
	assert.Contains(t, out, "../app/2.sh")
	assert.Contains(t, out, "0755")
	assert.Contains(t, out, "2 links: 2 planned")
}

func TestJSONRenderer_Result(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatJSON, buf)
	require.NoError(t, err)

	require.NoError(t, renderer.RenderResult(sampleResult()))

	var decoded display.DisplayResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "install", decoded.Command)
	assert.True(t, decoded.DryRun)
	require.Len(t, decoded.Links, 2)
	assert.Equal(t, "0755", decoded.Links[0].Filemode)
}

func TestJSONRenderer_Error(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatJSON, buf)
	require.NoError(t, err)

	linkErr := errors.New(errors.ErrLinkConflict, "link conflict").WithDetail("to", "/work/bin/3.sh")
	require.NoError(t, renderer.RenderError(linkErr))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "LINK_CONFLICT", decoded["code"])
	assert.Equal(t, "/work/bin/3.sh", decoded["details"].(map[string]interface{})["to"])
}

func TestRenderMessageAndError(t *testing.T) {
	for _, format := range []ui.Format{ui.FormatText, ui.FormatTerminal} {
		t.Run(format.String(), func(t *testing.T) {
			buf := &bytes.Buffer{}
			renderer, err := ui.NewRenderer(format, buf)
			require.NoError(t, err)

			require.NoError(t, renderer.RenderMessage("hello"))
			require.NoError(t, renderer.RenderError(errors.New(errors.ErrChmod, "boom")))
			assert.Contains(t, buf.String(), "hello\n")
			assert.Contains(t, buf.String(), "Error:")
			assert.Contains(t, buf.String(), "boom")
		})
	}
}
