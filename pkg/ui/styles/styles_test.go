package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStylesLoaded(t *testing.T) {
	for _, name := range []string{"Header", "Created", "Replaced", "Unchanged", "Planned", "Pending", "Error"} {
		_, ok := StyleRegistry[name]
		assert.True(t, ok, "missing style %s", name)
	}
}

func TestLoad(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, Load(defaultStyles)) })

	tests := []struct {
		name        string
		data        string
		wantErr     string
		wantStyle   string
		wantMissing string
	}{
		{
			name: "valid",
			data: `colors:
  testcolor:
    light: "#123456"
    dark: "#654321"
styles:
  TestStyle:
    bold: true
    foreground: testcolor
`,
			wantStyle:   "TestStyle",
			wantMissing: "Header",
		},
		{
			name:    "invalid yaml",
			data:    "colors: [",
			wantErr: "failed to parse styles",
		},
		{
			name: "unknown color",
			data: `styles:
  Broken:
    foreground: nope
`,
			wantErr: `unknown color "nope"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Load([]byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			style := GetStyle(tt.wantStyle)
			assert.True(t, style.GetBold())
			_, ok := StyleRegistry[tt.wantMissing]
			assert.False(t, ok)
		})
	}
}

func TestForStatus(t *testing.T) {
	assert.True(t, ForStatus("created").GetBold())
	assert.True(t, ForStatus("planned").GetItalic())
	assert.False(t, ForStatus("").GetBold())
	assert.False(t, ForStatus("bogus").GetBold())
}
