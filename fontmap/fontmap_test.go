package fontmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeset/burro/fontstyle"
)

func TestFontIDAllocatesStableFamilyIDs(t *testing.T) {
	m := New()

	id1 := m.FontID("Georgia", fontstyle.Roman)
	id2 := m.FontID("Georgia", fontstyle.Bold)
	id3 := m.FontID("Helvetica", fontstyle.Roman)

	assert.Equal(t, id1>>16, id2>>16, "same family should share its high-16-bit id")
	assert.NotEqual(t, id1>>16, id3>>16)
	assert.Equal(t, uint32(fontstyle.Roman.FontNum()), id1&0xFFFF)
	assert.Equal(t, uint32(fontstyle.Bold.FontNum()), id2&0xFFFF)
}

func TestRegisterAndResolve(t *testing.T) {
	m := New()
	m.Register("Georgia", fontstyle.Bold, []byte("fake-font-bytes"))

	id := m.FontID("Georgia", fontstyle.Bold)
	data, ok := m.Resolve(id)
	require.True(t, ok)
	assert.Equal(t, []byte("fake-font-bytes"), data)

	_, ok = m.Resolve(m.FontID("Georgia", fontstyle.Italic))
	assert.False(t, ok)
}

func TestFamilyRecoversNameAndStyle(t *testing.T) {
	m := New()
	id := m.FontID("Times", fontstyle.Italic)

	family, style, ok := m.Family(id)
	require.True(t, ok)
	assert.Equal(t, "Times", family)
	assert.Equal(t, fontstyle.Italic, style)

	_, _, ok = m.Family(0xFFFF0000)
	assert.False(t, ok)
}

func TestLoadReadsYAMLFontMap(t *testing.T) {
	dir := t.TempDir()
	fontPath := filepath.Join(dir, "georgia-bold.ttf")
	require.NoError(t, os.WriteFile(fontPath, []byte("not-really-a-font"), 0o644))

	cfgPath := filepath.Join(dir, "fonts.yaml")
	cfg := "families:\n  Georgia:\n    bold: " + fontPath + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	m, err := Load(cfgPath)
	require.NoError(t, err)

	id := m.FontID("Georgia", fontstyle.Bold)
	data, ok := m.Resolve(id)
	require.True(t, ok)
	assert.Equal(t, []byte("not-really-a-font"), data)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
