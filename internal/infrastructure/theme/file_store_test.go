package theme

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/pkg/logger"
)

func TestLoad_FallsBackToDefault(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing file"},
		{name: "empty file", content: ptr("")},
		{name: "malformed json", content: ptr("{not json")},
		{name: "retired theme", content: ptr(`{"name":"Neon Nights","colors":{}}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewFileStore(t.TempDir(), logger.Discard())
			if tt.content != nil {
				require.NoError(t, os.WriteFile(store.Path(), []byte(*tt.content), domain.FilePermissions))
			}
			got, err := store.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, domain.DefaultTheme(), got)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	store := NewFileStore(t.TempDir(), logger.Discard())
	matrix, err := domain.FindTheme("matrix")
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), matrix))
	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, matrix, got)
}

func TestSave_WritesThemeObject(t *testing.T) {
	store := NewFileStore(t.TempDir(), logger.Discard())
	boiler, err := domain.FindTheme("Boiler Up")
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), boiler))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Boiler Up", raw["name"])
	colors, ok := raw["colors"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "#CEB888", colors["charts"])
	assert.Equal(t, "#1D1D1D", colors["background"])
	assert.Equal(t, "#FFFFFF", colors["contrastText"])
}

func TestLoad_UsesBuiltInPalette(t *testing.T) {
	store := NewFileStore(t.TempDir(), logger.Discard())
	stale := `{"name":"Matrix","colors":{"background":"#000000","charts":"#000000","contrastText":"#000000"}}`
	require.NoError(t, os.WriteFile(store.Path(), []byte(stale), domain.FilePermissions))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "#2AD03D", got.Colors.Charts)
}

func ptr(s string) *string { return &s }
