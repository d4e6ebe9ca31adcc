package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/dicelog/internal/domain"
)

func sampleEvents() []domain.RollEvent {
	base := time.Date(2024, time.February, 29, 9, 0, 0, 0, time.UTC)
	return []domain.RollEvent{
		{ID: "a", Timestamp: base, Dice: domain.D20.Spec(), DiceCount: 1, Rolls: []int{20}, Total: 20},
		{ID: "b", Timestamp: base.Add(time.Minute), Dice: domain.D6.Spec(), DiceCount: 3, Rolls: []int{1, 2, 3}, Modifier: -2, Total: 4},
	}
}

func TestCompressionFor(t *testing.T) {
	assert.Equal(t, CompressionNone, CompressionFor("rolls.jsonl"))
	assert.Equal(t, CompressionGzip, CompressionFor("rolls.jsonl.gz"))
	assert.Equal(t, CompressionXZ, CompressionFor("ROLLS.JSONL.XZ"))
	assert.Equal(t, "xz", CompressionXZ.String())
}

func TestWriteJSONL_OneEventPerLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONL(&buf, sampleEvents()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"diceType":{"diceNum":20,"diceName":"d20","display":"individual"}`)
	assert.Contains(t, lines[1], `"modifier":-2`)
}

func TestToFile_EveryCompression(t *testing.T) {
	for _, name := range []string{"rolls.jsonl", "rolls.jsonl.gz", "rolls.jsonl.xz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, ToFile(path, sampleEvents()))

			got, err := ReadJSONL(path)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, []int{1, 2, 3}, got[1].Rolls)
			assert.True(t, got[0].Timestamp.Equal(sampleEvents()[0].Timestamp))
		})
	}
}

func TestToFile_GzipHasMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rolls.gz")
	require.NoError(t, ToFile(path, sampleEvents()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0x1f, 0x8b}))
}

func TestToFile_EmptyRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	require.NoError(t, ToFile(path, nil))
	got, err := ReadJSONL(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}
